package common

import "sync/atomic"

// Counters tracks per-stage row accounting for the pipeline tools.
// Counts are atomic so a tool may bump them from parallel file
// workers and still print a consistent summary.
type Counters struct {
	RowsParsed  atomic.Uint64 // rows read from source files
	RowsFilled  atomic.Uint64 // missing values interpolated
	RowsDropped atomic.Uint64 // rows discarded (unfillable or out of range)
	RowsWritten atomic.Uint64 // rows written to the output sink
}

// Summary returns a snapshot of the counters for logging.
func (c *Counters) Summary() (parsed, filled, dropped, written uint64) {
	return c.RowsParsed.Load(), c.RowsFilled.Load(), c.RowsDropped.Load(), c.RowsWritten.Load()
}
