package series

// FillLinear fills interior missing values by linear interpolation
// between the nearest valid neighbors on either side. Leading and
// trailing gaps have only one neighbor and stay missing. Returns the
// filled series and the number of interpolated points.
//
// Interpolation weight is positional (row index within the gap), which
// matches the upstream cleaning behavior: weekends and holidays are
// absent from the sequence, so the walk is over trading rows, not
// calendar days.
func FillLinear(s Series) (Series, int) {
	out := Series{Name: s.Name, Points: make([]TimePoint, len(s.Points))}
	copy(out.Points, s.Points)

	filled := 0
	prev := -1 // index of last valid point seen

	for i := 0; i < len(out.Points); i++ {
		if out.Points[i].Valid {
			if prev >= 0 && i-prev > 1 {
				lo := out.Points[prev].Value
				hi := out.Points[i].Value
				span := float64(i - prev)
				for j := prev + 1; j < i; j++ {
					frac := float64(j-prev) / span
					out.Points[j].Value = lo + (hi-lo)*frac
					out.Points[j].Valid = true
					filled++
				}
			}
			prev = i
		}
	}

	return out, filled
}
