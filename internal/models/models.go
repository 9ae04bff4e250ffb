package models

import "time"

// Interval represents one tracked span of time attributed to a single activity.
// An interval with a nil End is open: the activity is still running.
type Interval struct {
	ID    int64      `json:"id"`
	Label string     `json:"activity_label"` // activity name, open string set
	Start time.Time  `json:"start"`          // set at creation, immutable
	End   *time.Time `json:"end,omitempty"`  // set once when the interval closes
}

// Open reports whether the interval has no recorded end.
func (i *Interval) Open() bool {
	return i.End == nil
}

// CurrentStatus mirrors the presently open interval. At most one instance
// exists; a nil *CurrentStatus means nothing is being tracked.
type CurrentStatus struct {
	Label     string    `json:"activity_label"`
	LastStart time.Time `json:"last_start"` // matches the open interval's start
}

// Record is a query-result row: an interval together with its derived
// duration. Start may be clipped to a range boundary by day queries; End
// holds the raw end, or the query's "now" for an open interval.
type Record struct {
	Label    string        `json:"activity_label"`
	Start    time.Time     `json:"start"`
	End      time.Time     `json:"end"`
	Open     bool          `json:"open"`
	Duration time.Duration `json:"duration"` // max(0, end_or_now - start)
}

// Valid reports whether the record carries a positive duration. Zero-length
// intervals (closed immediately after opening) are excluded from reporting.
func (r Record) Valid() bool {
	return r.Duration > 0
}

// CoveredDay marks a calendar day excluded from monthly-average statistics,
// independent of interval data.
type CoveredDay struct {
	Day       time.Time `json:"day"`        // midnight, local time
	CoverType string    `json:"cover_type"` // default "gradient"
}

// DayTotal aggregates one calendar day of a monthly breakdown.
type DayTotal struct {
	Day     time.Time                `json:"day"`
	Totals  map[string]time.Duration `json:"totals"` // per activity label
	Covered bool                     `json:"covered"`
}

// Sum returns the total tracked duration across all labels for the day.
func (d DayTotal) Sum() time.Duration {
	var sum time.Duration
	for _, v := range d.Totals {
		sum += v
	}
	return sum
}
