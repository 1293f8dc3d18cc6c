package series

import "time"

// Observation is one joined daily row: a date present in both series
// with both values non-null.
type Observation struct {
	Date     time.Time
	VixClose float64
	Sunspot  float64
}

// prepare sorts, truncates, and validates one side of a join.
func prepare(s Series) (Series, error) {
	out := Series{Name: s.Name, Points: make([]TimePoint, len(s.Points))}
	copy(out.Points, s.Points)
	out.TruncateDates()
	out.SortByDate()
	if err := out.CheckUniqueDates(); err != nil {
		return Series{}, err
	}
	return out, nil
}

// InnerJoin joins the VIX and sunspot series on calendar date, keeping
// only dates present in both with valid values. Output is ordered by
// date ascending. Empty inputs yield an empty result, not an error.
func InnerJoin(vix, sunspot Series) ([]Observation, error) {
	v, err := prepare(vix)
	if err != nil {
		return nil, err
	}
	s, err := prepare(sunspot)
	if err != nil {
		return nil, err
	}

	var obs []Observation
	i, j := 0, 0
	for i < len(v.Points) && j < len(s.Points) {
		vd, sd := v.Points[i].Date, s.Points[j].Date
		switch {
		case vd.Before(sd):
			i++
		case sd.Before(vd):
			j++
		default:
			if v.Points[i].Valid && s.Points[j].Valid {
				obs = append(obs, Observation{
					Date:     vd,
					VixClose: v.Points[i].Value,
					Sunspot:  s.Points[j].Value,
				})
			}
			i++
			j++
		}
	}
	return obs, nil
}

// LeftJoinDropNull starts from the sunspot series with valid values,
// left-joins the VIX series on date, and drops rows without a VIX
// match. On inputs where the sunspot series has no nulls this produces
// the same row set as InnerJoin; it exists because the two KPI query
// shapes differ upstream and must be shown equivalent.
func LeftJoinDropNull(sunspot, vix Series) ([]Observation, error) {
	s, err := prepare(sunspot)
	if err != nil {
		return nil, err
	}
	v, err := prepare(vix)
	if err != nil {
		return nil, err
	}

	byDate := make(map[time.Time]TimePoint, len(v.Points))
	for _, p := range v.Points {
		byDate[p.Date] = p
	}

	var obs []Observation
	for _, p := range s.Points {
		if !p.Valid {
			continue
		}
		m, ok := byDate[p.Date]
		if !ok || !m.Valid {
			continue
		}
		obs = append(obs, Observation{
			Date:     p.Date,
			VixClose: m.Value,
			Sunspot:  p.Value,
		})
	}
	return obs, nil
}
