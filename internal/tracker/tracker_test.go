package tracker_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benoctopus/quartertime/internal/db"
	"github.com/benoctopus/quartertime/internal/tracker"
)

// fakeClock is a controllable clock for driving the tracker in tests.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func setupTracker(t *testing.T, start time.Time) (*tracker.Tracker, *fakeClock) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	database, err := db.InitDB(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	clock := &fakeClock{now: start}
	return tracker.NewWithClock(database, clock.Now), clock
}

func TestRecord_FromIdle(t *testing.T) {
	assert := assert.New(t)
	base := time.Date(2026, 8, 20, 9, 0, 0, 0, time.Local)
	trk, _ := setupTracker(t, base)

	changed, err := trk.Record("Work")
	assert.NoError(err)
	assert.True(changed)

	status, err := trk.Status()
	assert.NoError(err)
	if assert.NotNil(status) {
		assert.Equal("Work", status.Label)
		assert.True(status.LastStart.Equal(base))
	}

	records, err := trk.History()
	assert.NoError(err)
	if assert.Len(records, 1) {
		assert.Equal("Work", records[0].Label)
		assert.True(records[0].Open)
	}
}

func TestRecord_SameLabelIsNoOp(t *testing.T) {
	assert := assert.New(t)
	base := time.Date(2026, 8, 20, 9, 0, 0, 0, time.Local)
	trk, clock := setupTracker(t, base)

	changed, err := trk.Record("Work")
	assert.NoError(err)
	assert.True(changed)

	// Redundant presses must not fragment the history.
	clock.Advance(time.Hour)
	changed, err = trk.Record("Work")
	assert.NoError(err)
	assert.False(changed)

	records, err := trk.History()
	assert.NoError(err)
	assert.Len(records, 1)

	status, err := trk.Status()
	assert.NoError(err)
	if assert.NotNil(status) {
		assert.True(status.LastStart.Equal(base), "no-op press must not move the start")
	}
}

func TestRecord_TransitionLeavesNoGap(t *testing.T) {
	assert := assert.New(t)
	base := time.Date(2026, 8, 20, 9, 0, 0, 0, time.Local)
	trk, clock := setupTracker(t, base)

	_, err := trk.Record("Work")
	assert.NoError(err)

	clock.Advance(2 * time.Hour)
	changed, err := trk.Record("Chores")
	assert.NoError(err)
	assert.True(changed)

	records, err := trk.History()
	assert.NoError(err)
	if assert.Len(records, 2) {
		assert.Equal("Work", records[0].Label)
		assert.False(records[0].Open)
		assert.Equal("Chores", records[1].Label)
		assert.True(records[1].Open)
		// Previous end and next start must coincide exactly.
		assert.True(records[0].End.Equal(records[1].Start))
		assert.Equal(2*time.Hour, records[0].Duration)
	}

	status, err := trk.Status()
	assert.NoError(err)
	if assert.NotNil(status) {
		assert.Equal("Chores", status.Label)
	}
}

func TestRecord_EmptyLabel(t *testing.T) {
	assert := assert.New(t)
	base := time.Date(2026, 8, 20, 9, 0, 0, 0, time.Local)
	trk, _ := setupTracker(t, base)

	_, err := trk.Record("")
	assert.Error(err)
	assert.True(eris.Is(err, tracker.ErrInvalidInput))

	records, err := trk.History()
	assert.NoError(err)
	assert.Empty(records)
}

func TestManualInsert_SplitsOpenInterval(t *testing.T) {
	assert := assert.New(t)
	base := time.Date(2026, 8, 20, 9, 0, 0, 0, time.Local)
	trk, clock := setupTracker(t, base)

	_, err := trk.Record("Work")
	assert.NoError(err)

	// Two hours later, realize a meeting started an hour ago.
	clock.Advance(2 * time.Hour)
	err = trk.ManualInsert("Meeting", base.Add(time.Hour))
	assert.NoError(err)

	records, err := trk.History()
	assert.NoError(err)
	if assert.Len(records, 2) {
		assert.Equal("Work", records[0].Label)
		assert.False(records[0].Open)
		assert.Equal(time.Hour, records[0].Duration)

		assert.Equal("Meeting", records[1].Label)
		assert.True(records[1].Open)
		assert.True(records[1].Start.Equal(base.Add(time.Hour)))
	}

	// The open insert takes over the current status.
	status, err := trk.Status()
	assert.NoError(err)
	if assert.NotNil(status) {
		assert.Equal("Meeting", status.Label)
		assert.True(status.LastStart.Equal(base.Add(time.Hour)))
	}
}

func TestManualInsert_SplitsClosedInterval(t *testing.T) {
	assert := assert.New(t)
	base := time.Date(2026, 8, 20, 9, 0, 0, 0, time.Local)
	trk, clock := setupTracker(t, base)

	_, err := trk.Record("Work")
	assert.NoError(err)
	clock.Advance(4 * time.Hour)
	_, err = trk.Record("Rest")
	assert.NoError(err)

	// Split the closed Work interval; Rest must be untouched.
	err = trk.ManualInsert("Meeting", base.Add(time.Hour))
	assert.NoError(err)

	records, err := trk.History()
	assert.NoError(err)
	if assert.Len(records, 3) {
		assert.Equal("Work", records[0].Label)
		assert.Equal(time.Hour, records[0].Duration)

		assert.Equal("Meeting", records[1].Label)
		assert.False(records[1].Open)
		// The inserted interval inherits the victim's original end.
		assert.True(records[1].End.Equal(base.Add(4 * time.Hour)))
		assert.Equal(3*time.Hour, records[1].Duration)

		assert.Equal("Rest", records[2].Label)
		assert.True(records[2].Start.Equal(base.Add(4 * time.Hour)))
		assert.True(records[2].Open)
	}

	// Splitting a closed interval leaves the current activity alone.
	status, err := trk.Status()
	assert.NoError(err)
	if assert.NotNil(status) {
		assert.Equal("Rest", status.Label)
	}
}

func TestManualInsert_GapSnapsToNextStart(t *testing.T) {
	assert := assert.New(t)
	base := time.Date(2026, 8, 20, 9, 0, 0, 0, time.Local)
	trk, clock := setupTracker(t, base.Add(2*time.Hour))

	_, err := trk.Record("Work")
	assert.NoError(err)
	clock.Advance(time.Hour)

	// Insert before any recorded activity: ends where Work begins.
	err = trk.ManualInsert("Commute", base)
	assert.NoError(err)

	records, err := trk.History()
	assert.NoError(err)
	if assert.Len(records, 2) {
		assert.Equal("Commute", records[0].Label)
		assert.False(records[0].Open)
		assert.True(records[0].End.Equal(base.Add(2 * time.Hour)))
		assert.Equal("Work", records[1].Label)
	}
}

func TestManualInsert_EmptyHistoryBecomesOpen(t *testing.T) {
	assert := assert.New(t)
	base := time.Date(2026, 8, 20, 9, 0, 0, 0, time.Local)
	trk, _ := setupTracker(t, base.Add(time.Hour))

	err := trk.ManualInsert("Work", base)
	assert.NoError(err)

	records, err := trk.History()
	assert.NoError(err)
	if assert.Len(records, 1) {
		assert.True(records[0].Open)
	}

	status, err := trk.Status()
	assert.NoError(err)
	if assert.NotNil(status) {
		assert.Equal("Work", status.Label)
	}
}

func TestManualInsert_RejectsFutureStart(t *testing.T) {
	assert := assert.New(t)
	base := time.Date(2026, 8, 20, 9, 0, 0, 0, time.Local)
	trk, _ := setupTracker(t, base)

	_, err := trk.Record("Work")
	assert.NoError(err)

	err = trk.ManualInsert("Meeting", base.Add(time.Hour))
	assert.Error(err)
	assert.True(eris.Is(err, tracker.ErrInvalidInput))

	// Rejected before any mutation.
	records, err := trk.History()
	assert.NoError(err)
	assert.Len(records, 1)

	status, err := trk.Status()
	assert.NoError(err)
	if assert.NotNil(status) {
		assert.Equal("Work", status.Label)
	}
}

func TestManualInsert_EmptyLabel(t *testing.T) {
	assert := assert.New(t)
	base := time.Date(2026, 8, 20, 9, 0, 0, 0, time.Local)
	trk, _ := setupTracker(t, base)

	err := trk.ManualInsert("", base.Add(-time.Hour))
	assert.Error(err)
	assert.True(eris.Is(err, tracker.ErrInvalidInput))
}

func TestDayRecords_ClipsAtMidnight(t *testing.T) {
	assert := assert.New(t)
	eveningStart := time.Date(2026, 8, 20, 23, 0, 0, 0, time.Local)
	trk, clock := setupTracker(t, eveningStart)

	_, err := trk.Record("Sleep")
	assert.NoError(err)
	clock.Advance(3 * time.Hour) // ends 02:00 next day
	_, err = trk.Record("Work")
	assert.NoError(err)
	clock.Advance(time.Hour)

	day1, err := trk.DayRecords(eveningStart)
	assert.NoError(err)
	if assert.Len(day1, 1) {
		// Only the hour before midnight counts for day one.
		assert.Equal("Sleep", day1[0].Label)
		assert.Equal(time.Hour, day1[0].Duration)
		assert.True(day1[0].Start.Equal(eveningStart))
	}

	day2, err := trk.DayRecords(eveningStart.AddDate(0, 0, 1))
	assert.NoError(err)
	if assert.Len(day2, 2) {
		midnight := time.Date(2026, 8, 21, 0, 0, 0, 0, time.Local)
		assert.Equal("Sleep", day2[0].Label)
		assert.True(day2[0].Start.Equal(midnight), "spanning start clips to midnight")
		assert.Equal(2*time.Hour, day2[0].Duration)

		assert.Equal("Work", day2[1].Label)
		assert.True(day2[1].Open)
		assert.Equal(time.Hour, day2[1].Duration)
	}
}

func TestDayRecords_EmptyDay(t *testing.T) {
	assert := assert.New(t)
	base := time.Date(2026, 8, 20, 9, 0, 0, 0, time.Local)
	trk, _ := setupTracker(t, base)

	records, err := trk.DayRecords(base.AddDate(0, 0, -30))
	assert.NoError(err)
	assert.Empty(records)
}

func TestMonthRecords(t *testing.T) {
	assert := assert.New(t)
	base := time.Date(2026, 8, 20, 9, 0, 0, 0, time.Local)
	trk, clock := setupTracker(t, base)

	_, err := trk.Record("Work")
	assert.NoError(err)
	clock.Advance(2 * time.Hour)
	_, err = trk.Record("Rest")
	assert.NoError(err)

	records, err := trk.MonthRecords(2026, time.August)
	assert.NoError(err)
	assert.Len(records, 2)

	records, err = trk.MonthRecords(2026, time.July)
	assert.NoError(err)
	assert.Empty(records)
}

func TestMonthRecords_InvalidMonth(t *testing.T) {
	assert := assert.New(t)
	base := time.Date(2026, 8, 20, 9, 0, 0, 0, time.Local)
	trk, _ := setupTracker(t, base)

	_, err := trk.MonthRecords(2026, time.Month(13))
	assert.Error(err)
	assert.True(eris.Is(err, tracker.ErrInvalidInput))
}

func TestStatus_Idle(t *testing.T) {
	assert := assert.New(t)
	base := time.Date(2026, 8, 20, 9, 0, 0, 0, time.Local)
	trk, _ := setupTracker(t, base)

	status, err := trk.Status()
	assert.NoError(err)
	assert.Nil(status)
}

func TestClearAll(t *testing.T) {
	assert := assert.New(t)
	base := time.Date(2026, 8, 20, 9, 0, 0, 0, time.Local)
	trk, clock := setupTracker(t, base)

	_, err := trk.Record("Work")
	assert.NoError(err)
	clock.Advance(time.Hour)
	_, err = trk.Record("Rest")
	assert.NoError(err)
	assert.NoError(trk.CoverDay(base, ""))

	assert.NoError(trk.ClearAll())

	records, err := trk.History()
	assert.NoError(err)
	assert.Empty(records)

	status, err := trk.Status()
	assert.NoError(err)
	assert.Nil(status)

	// Covered-day marks survive a clear.
	days, err := trk.CoveredDays()
	assert.NoError(err)
	assert.Len(days, 1)

	// Tracking starts cleanly afterwards.
	changed, err := trk.Record("Work")
	assert.NoError(err)
	assert.True(changed)
}

func TestCoverDay_DefaultType(t *testing.T) {
	assert := assert.New(t)
	base := time.Date(2026, 8, 20, 9, 0, 0, 0, time.Local)
	trk, _ := setupTracker(t, base)

	assert.NoError(trk.CoverDay(base, ""))

	days, err := trk.CoveredDays()
	assert.NoError(err)
	if assert.Len(days, 1) {
		assert.Equal(tracker.DefaultCoverType, days[0].CoverType)
		// Keyed by calendar day, not the timestamp within it.
		assert.True(days[0].Day.Equal(time.Date(2026, 8, 20, 0, 0, 0, 0, time.Local)))
	}

	assert.NoError(trk.UncoverDay(base))
	days, err = trk.CoveredDays()
	assert.NoError(err)
	assert.Empty(days)
}

func TestHistory_Ordering(t *testing.T) {
	assert := assert.New(t)
	base := time.Date(2026, 8, 20, 9, 0, 0, 0, time.Local)
	trk, clock := setupTracker(t, base)

	labels := []string{"Work", "Chores", "Rest", "Study"}
	for _, label := range labels {
		_, err := trk.Record(label)
		assert.NoError(err)
		clock.Advance(30 * time.Minute)
	}

	records, err := trk.History()
	assert.NoError(err)
	if assert.Len(records, len(labels)) {
		for i, label := range labels {
			assert.Equal(label, records[i].Label)
		}
		for i := 0; i < len(records)-1; i++ {
			assert.True(records[i].End.Equal(records[i+1].Start))
			assert.False(records[i].Open)
		}
		assert.True(records[len(records)-1].Open)
	}
}
