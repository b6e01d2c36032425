package model

// Interval is one contiguous span of time attributed to a named activity.
// Times are seconds since the Unix epoch. EndTime is nil while the activity
// is still running; at most one interval may be open at a time.
type Interval struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	StartTime int64  `json:"startTime"`
	EndTime   *int64 `json:"endTime,omitempty"`
}

// Open reports whether the interval is still running.
func (i Interval) Open() bool {
	return i.EndTime == nil
}

// ClearMarker records the instant a clear was issued. Intervals started
// before the latest marker are excluded from time aggregation but stay in
// the database. The table is seeded with a marker at epoch time 0 so
// aggregation always has a lower bound.
type ClearMarker struct {
	ID   int64 `json:"id"`
	Time int64 `json:"time"`
}
