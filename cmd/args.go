package cmd

import (
	"time"

	"github.com/rotisserie/eris"

	"github.com/benoctopus/quartertime/internal/tracker"
)

const (
	dateLayout  = "2006-01-02"
	monthLayout = "2006-01"
)

var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// parseDate parses a YYYY-MM-DD argument as a local calendar day.
func parseDate(arg string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, arg, time.Local)
	if err != nil {
		return time.Time{}, eris.Wrapf(tracker.ErrInvalidInput, "invalid date %q (want YYYY-MM-DD)", arg)
	}
	return t, nil
}

// parseMonth parses a YYYY-MM argument.
func parseMonth(arg string) (int, time.Month, error) {
	t, err := time.ParseInLocation(monthLayout, arg, time.Local)
	if err != nil {
		return 0, 0, eris.Wrapf(tracker.ErrInvalidInput, "invalid month %q (want YYYY-MM)", arg)
	}
	return t.Year(), t.Month(), nil
}

// parseTimestamp parses a local wall-clock timestamp in a handful of
// unambiguous layouts. A bare date reads as that day's midnight.
func parseTimestamp(arg string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, arg, time.Local); err == nil {
			return t, nil
		}
	}
	if t, err := time.ParseInLocation(dateLayout, arg, time.Local); err == nil {
		return t, nil
	}
	return time.Time{}, eris.Wrapf(tracker.ErrInvalidInput,
		"invalid timestamp %q (want \"YYYY-MM-DD HH:MM[:SS]\")", arg)
}
