package tracker

import (
	"time"

	"github.com/benoctopus/quartertime/internal/db"
	"github.com/benoctopus/quartertime/internal/models"
	"github.com/rotisserie/eris"
)

// Status returns the presently active activity, or nil when idle.
func (t *Tracker) Status() (*models.CurrentStatus, error) {
	return db.ReadCurrentStatus(t.db)
}

// DayRecords returns all intervals intersecting the calendar day of date,
// ordered by start. Starts are clipped up to the day boundary (a session
// begun the prior evening reads as starting at midnight) and the duration is
// computed over the two-sided clip, so a midnight-spanning session splits its
// seconds exactly across the two days. The End field keeps the raw
// end-or-now. A day with no data yields an empty slice.
func (t *Tracker) DayRecords(date time.Time) ([]models.Record, error) {
	now := t.now().Truncate(time.Second)
	from := dayStart(date)
	to := from.AddDate(0, 0, 1)

	records, err := db.IntervalsOverlapping(t.db, from, to, now)
	if err != nil {
		return nil, err
	}

	for i := range records {
		if records[i].Start.Before(from) {
			records[i].Start = from
		}
		end := records[i].End
		if end.After(to) {
			end = to
		}
		records[i].Duration = 0
		if d := end.Sub(records[i].Start); d > 0 {
			records[i].Duration = d
		}
	}

	return records, nil
}

// MonthRecords returns all intervals intersecting the calendar month,
// unclipped and ordered by start; callers clip per day when building
// aggregates. Month must be 1..12.
func (t *Tracker) MonthRecords(year int, month time.Month) ([]models.Record, error) {
	if month < time.January || month > time.December {
		return nil, eris.Wrapf(ErrInvalidInput, "invalid month: %d", month)
	}

	now := t.now().Truncate(time.Second)
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	to := from.AddDate(0, 1, 0)

	return db.IntervalsOverlapping(t.db, from, to, now)
}

// History returns every interval ordered by start ascending; the last one may
// be open.
func (t *Tracker) History() ([]models.Record, error) {
	return db.AllIntervals(t.db, t.now().Truncate(time.Second))
}

// CoveredDays returns all covered-day marks ordered by day.
func (t *Tracker) CoveredDays() ([]models.CoveredDay, error) {
	return db.CoveredDays(t.db)
}
