package db

import (
	"database/sql"
	"time"

	"github.com/benoctopus/quartertime/internal/models"
	"github.com/rotisserie/eris"
)

const dayKeyFormat = "2006-01-02"

// ==================== Interval Operations ====================

// AppendInterval creates a new open interval starting at the given time.
// The partial unique index rejects a second open interval.
func AppendInterval(q Queryer, label string, start time.Time) (*models.Interval, error) {
	result, err := q.Exec(
		"INSERT INTO intervals (activity_label, start_time) VALUES (?, ?)",
		label, start.Unix(),
	)
	if err != nil {
		return nil, eris.Wrapf(err, "failed to insert interval for %s", label)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, eris.Wrap(err, "failed to get last insert id")
	}

	return &models.Interval{
		ID:    id,
		Label: label,
		Start: time.Unix(start.Unix(), 0),
	}, nil
}

// InsertInterval creates an interval with an explicit end; a nil end inserts
// an open interval. Used by the manual splice.
func InsertInterval(q Queryer, label string, start time.Time, end *time.Time) (*models.Interval, error) {
	var endVal any
	if end != nil {
		endVal = end.Unix()
	}

	result, err := q.Exec(
		"INSERT INTO intervals (activity_label, start_time, end_time) VALUES (?, ?, ?)",
		label, start.Unix(), endVal,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "failed to insert interval for %s", label)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, eris.Wrap(err, "failed to get last insert id")
	}

	interval := &models.Interval{
		ID:    id,
		Label: label,
		Start: time.Unix(start.Unix(), 0),
	}
	if end != nil {
		e := time.Unix(end.Unix(), 0)
		interval.End = &e
	}
	return interval, nil
}

// CloseOpenInterval sets the end on the interval currently open, if any.
// No-op when nothing is open.
func CloseOpenInterval(q Queryer, end time.Time) error {
	_, err := q.Exec(
		"UPDATE intervals SET end_time = ? WHERE end_time IS NULL",
		end.Unix(),
	)
	if err != nil {
		return eris.Wrap(err, "failed to close open interval")
	}
	return nil
}

// SetIntervalEnd closes a specific interval at the given time.
func SetIntervalEnd(q Queryer, id int64, end time.Time) error {
	result, err := q.Exec(
		"UPDATE intervals SET end_time = ? WHERE id = ?",
		end.Unix(), id,
	)
	if err != nil {
		return eris.Wrapf(err, "failed to set end on interval %d", id)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "failed to get rows affected")
	}
	if rows == 0 {
		return eris.Errorf("interval not found with id: %d", id)
	}
	return nil
}

// FindIntervalContaining returns the interval containing the given point:
// start <= t and (end >= t or open). Ties are broken by the latest start.
// Returns nil when no interval contains the point.
func FindIntervalContaining(q Queryer, t time.Time) (*models.Interval, error) {
	row := q.QueryRow(
		`SELECT id, activity_label, start_time, end_time FROM intervals
		 WHERE start_time <= ? AND (end_time IS NULL OR end_time >= ?)
		 ORDER BY start_time DESC LIMIT 1`,
		t.Unix(), t.Unix(),
	)

	interval, err := scanInterval(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "failed to query containing interval")
	}
	return interval, nil
}

// FindIntervalAfter returns the earliest interval starting strictly after
// the given point, or nil when none exists.
func FindIntervalAfter(q Queryer, t time.Time) (*models.Interval, error) {
	row := q.QueryRow(
		`SELECT id, activity_label, start_time, end_time FROM intervals
		 WHERE start_time > ? ORDER BY start_time ASC LIMIT 1`,
		t.Unix(),
	)

	interval, err := scanInterval(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "failed to query next interval")
	}
	return interval, nil
}

// IntervalsOverlapping returns every interval whose [start, end_or_now) span
// intersects [from, to), ordered by start ascending, with durations derived
// against the supplied now. Rows are returned raw; callers clip to boundaries
// when building per-day views.
func IntervalsOverlapping(q Queryer, from, to, now time.Time) ([]models.Record, error) {
	rows, err := q.Query(
		`SELECT activity_label, start_time, end_time FROM intervals
		 WHERE start_time < ? AND COALESCE(end_time, ?) > ?
		 ORDER BY start_time ASC`,
		to.Unix(), now.Unix(), from.Unix(),
	)
	if err != nil {
		return nil, eris.Wrap(err, "failed to query overlapping intervals")
	}
	defer rows.Close()

	return collectRecords(rows, now)
}

// AllIntervals returns every interval ordered by start ascending, with
// durations derived against the supplied now.
func AllIntervals(q Queryer, now time.Time) ([]models.Record, error) {
	rows, err := q.Query(
		`SELECT activity_label, start_time, end_time FROM intervals
		 ORDER BY start_time ASC`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "failed to query all intervals")
	}
	defer rows.Close()

	return collectRecords(rows, now)
}

// CountIntervals returns the number of stored intervals.
func CountIntervals(q Queryer) (int, error) {
	var count int
	if err := q.QueryRow("SELECT COUNT(*) FROM intervals").Scan(&count); err != nil {
		return 0, eris.Wrap(err, "failed to count intervals")
	}
	return count, nil
}

// ==================== Current Status Operations ====================

// ReplaceCurrentStatus overwrites the current-activity singleton.
func ReplaceCurrentStatus(q Queryer, label string, start time.Time) error {
	_, err := q.Exec(
		"REPLACE INTO current_status (id, activity_label, last_start) VALUES (1, ?, ?)",
		label, start.Unix(),
	)
	if err != nil {
		return eris.Wrap(err, "failed to replace current status")
	}
	return nil
}

// ReadCurrentStatus returns the current-activity singleton, or nil when
// nothing is being tracked.
func ReadCurrentStatus(q Queryer) (*models.CurrentStatus, error) {
	var label sql.NullString
	var lastStart sql.NullInt64

	err := q.QueryRow(
		"SELECT activity_label, last_start FROM current_status WHERE id = 1",
	).Scan(&label, &lastStart)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "failed to query current status")
	}
	if !label.Valid || !lastStart.Valid {
		return nil, nil
	}

	return &models.CurrentStatus{
		Label:     label.String,
		LastStart: time.Unix(lastStart.Int64, 0),
	}, nil
}

// ==================== Covered Day Operations ====================

// CoverDay marks a calendar day as covered, replacing any existing mark.
func CoverDay(q Queryer, day time.Time, coverType string) error {
	_, err := q.Exec(
		"REPLACE INTO covered_days (day, cover_type) VALUES (?, ?)",
		day.Format(dayKeyFormat), coverType,
	)
	if err != nil {
		return eris.Wrapf(err, "failed to cover day %s", day.Format(dayKeyFormat))
	}
	return nil
}

// UncoverDay removes a covered-day mark. No-op when the day is not covered.
func UncoverDay(q Queryer, day time.Time) error {
	_, err := q.Exec(
		"DELETE FROM covered_days WHERE day = ?",
		day.Format(dayKeyFormat),
	)
	if err != nil {
		return eris.Wrapf(err, "failed to uncover day %s", day.Format(dayKeyFormat))
	}
	return nil
}

// CoveredDays returns all covered-day marks ordered by day.
func CoveredDays(q Queryer) ([]models.CoveredDay, error) {
	rows, err := q.Query("SELECT day, cover_type FROM covered_days ORDER BY day ASC")
	if err != nil {
		return nil, eris.Wrap(err, "failed to query covered days")
	}
	defer rows.Close()

	var days []models.CoveredDay
	for rows.Next() {
		var dayStr, coverType string
		if err := rows.Scan(&dayStr, &coverType); err != nil {
			return nil, eris.Wrap(err, "failed to scan covered day row")
		}

		day, err := time.ParseInLocation(dayKeyFormat, dayStr, time.Local)
		if err != nil {
			return nil, eris.Wrapf(err, "corrupt covered day: %s", dayStr)
		}

		days = append(days, models.CoveredDay{Day: day, CoverType: coverType})
	}

	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "error iterating covered day rows")
	}

	return days, nil
}

// ==================== Clear ====================

// ClearAll deletes every interval and resets the current status. Covered-day
// marks are calendar metadata and survive. Unconditional: confirmation is the
// caller's concern.
func ClearAll(q Queryer) error {
	if _, err := q.Exec("DELETE FROM intervals"); err != nil {
		return eris.Wrap(err, "failed to clear intervals")
	}
	if _, err := q.Exec("DELETE FROM current_status"); err != nil {
		return eris.Wrap(err, "failed to clear current status")
	}
	return nil
}

// ==================== Helpers ====================

func scanInterval(row *sql.Row) (*models.Interval, error) {
	interval := &models.Interval{}
	var start int64
	var end sql.NullInt64

	if err := row.Scan(&interval.ID, &interval.Label, &start, &end); err != nil {
		return nil, err
	}

	interval.Start = time.Unix(start, 0)
	if end.Valid {
		e := time.Unix(end.Int64, 0)
		interval.End = &e
	}
	return interval, nil
}

func collectRecords(rows *sql.Rows, now time.Time) ([]models.Record, error) {
	var records []models.Record
	for rows.Next() {
		var label string
		var start int64
		var end sql.NullInt64

		if err := rows.Scan(&label, &start, &end); err != nil {
			return nil, eris.Wrap(err, "failed to scan interval row")
		}

		record := models.Record{
			Label: label,
			Start: time.Unix(start, 0),
			Open:  !end.Valid,
		}
		if end.Valid {
			record.End = time.Unix(end.Int64, 0)
		} else {
			record.End = time.Unix(now.Unix(), 0)
		}

		if d := record.End.Sub(record.Start); d > 0 {
			record.Duration = d
		}

		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "error iterating interval rows")
	}

	return records, nil
}
