package tracker

import (
	"database/sql"
	"time"

	"github.com/benoctopus/quartertime/internal/db"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog/log"
)

// ErrInvalidInput marks input rejected before any mutation: empty labels,
// future-dated manual inserts, malformed calendar dates. Check with eris.Is.
var ErrInvalidInput = eris.New("invalid input")

// DefaultCoverType is used when a covered day is marked without an explicit type.
const DefaultCoverType = "gradient"

// Tracker enforces the single-active-activity state machine on top of the
// interval store and exposes the reporting queries. Every state-changing
// operation runs in one transaction; "now" is sampled once per operation.
type Tracker struct {
	db  *sql.DB
	now func() time.Time
}

// New creates a Tracker using the wall clock.
func New(database *sql.DB) *Tracker {
	return NewWithClock(database, time.Now)
}

// NewWithClock creates a Tracker with an injected clock, for tests.
func NewWithClock(database *sql.DB, clock func() time.Time) *Tracker {
	return &Tracker{db: database, now: clock}
}

// Record handles an activity button press. Pressing the already-active
// activity is a no-op and returns false; otherwise the open interval (if any)
// is closed at now, the status singleton is overwritten, and a new open
// interval is appended. There is no stop transition: once tracking starts,
// time is always attributed to some activity.
func (t *Tracker) Record(label string) (bool, error) {
	if label == "" {
		return false, eris.Wrap(ErrInvalidInput, "activity label must not be empty")
	}

	now := t.now().Truncate(time.Second)

	tx, err := t.db.Begin()
	if err != nil {
		return false, eris.Wrap(err, "failed to begin transaction")
	}
	//nolint:errcheck // Rollback is a no-op after commit
	defer tx.Rollback()

	status, err := db.ReadCurrentStatus(tx)
	if err != nil {
		return false, err
	}

	if status != nil && status.Label == label {
		// Idempotent: redundant presses must not fragment the history.
		return false, nil
	}

	if status != nil {
		if err := db.CloseOpenInterval(tx, now); err != nil {
			return false, err
		}
	}

	if err := db.ReplaceCurrentStatus(tx, label, now); err != nil {
		return false, err
	}
	if _, err := db.AppendInterval(tx, label, now); err != nil {
		return false, err
	}

	if err := tx.Commit(); err != nil {
		return false, eris.Wrap(err, "failed to commit transition")
	}

	prev := "idle"
	if status != nil {
		prev = status.Label
	}
	log.Debug().Str("from", prev).Str("to", label).Time("at", now).Msg("activity transition")

	return true, nil
}

// ManualInsert retroactively inserts an interval starting at the given time,
// splitting whatever interval covers that moment. The split preserves the
// covered timeline: [s,e) becomes [s,p) plus a new [p,e) with the new label.
// When the insert lands after all recorded activity it becomes the open
// interval. Future-dated starts are rejected before any mutation.
func (t *Tracker) ManualInsert(label string, start time.Time) error {
	if label == "" {
		return eris.Wrap(ErrInvalidInput, "activity label must not be empty")
	}

	now := t.now().Truncate(time.Second)
	start = start.Truncate(time.Second)
	if start.After(now) {
		return eris.Wrapf(ErrInvalidInput, "start time %s is in the future", start.Format("2006-01-02 15:04:05"))
	}

	tx, err := t.db.Begin()
	if err != nil {
		return eris.Wrap(err, "failed to begin transaction")
	}
	//nolint:errcheck // Rollback is a no-op after commit
	defer tx.Rollback()

	containing, err := db.FindIntervalContaining(tx, start)
	if err != nil {
		return err
	}

	var end *time.Time
	if containing != nil {
		// Close the victim early; the new interval inherits its end, so the
		// successor (which starts exactly at that end) needs no rewrite.
		end = containing.End
		if err := db.SetIntervalEnd(tx, containing.ID, start); err != nil {
			return err
		}
	} else {
		// Gap or tail insert: snap the end to the next interval's start.
		next, err := db.FindIntervalAfter(tx, start)
		if err != nil {
			return err
		}
		if next != nil {
			end = &next.Start
		}
	}

	if _, err := db.InsertInterval(tx, label, start, end); err != nil {
		return err
	}

	// An open insert replaces the current activity.
	if end == nil {
		if err := db.ReplaceCurrentStatus(tx, label, start); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return eris.Wrap(err, "failed to commit manual insert")
	}

	log.Debug().Str("label", label).Time("at", start).Bool("open", end == nil).Msg("manual insert")

	return nil
}

// ClearAll deletes every interval and resets the current status. Irreversible;
// the caller is responsible for confirming with the user first. Covered-day
// marks are kept.
func (t *Tracker) ClearAll() error {
	tx, err := t.db.Begin()
	if err != nil {
		return eris.Wrap(err, "failed to begin transaction")
	}
	//nolint:errcheck // Rollback is a no-op after commit
	defer tx.Rollback()

	if err := db.ClearAll(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return eris.Wrap(err, "failed to commit clear")
	}

	log.Info().Msg("history cleared")

	return nil
}

// CoverDay marks a calendar day to be excluded from monthly averages.
// An empty cover type defaults to "gradient".
func (t *Tracker) CoverDay(day time.Time, coverType string) error {
	if coverType == "" {
		coverType = DefaultCoverType
	}
	return db.CoverDay(t.db, dayStart(day), coverType)
}

// UncoverDay removes a covered-day mark.
func (t *Tracker) UncoverDay(day time.Time) error {
	return db.UncoverDay(t.db, dayStart(day))
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}
