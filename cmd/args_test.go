package cmd

import (
	"testing"
	"time"

	"github.com/rotisserie/eris"

	"github.com/benoctopus/quartertime/internal/tracker"
)

func TestParseDate(t *testing.T) {
	got, err := parseDate("2026-08-20")
	if err != nil {
		t.Fatalf("parseDate() returned error: %v", err)
	}

	want := time.Date(2026, 8, 20, 0, 0, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Errorf("parseDate() = %v, want %v", got, want)
	}
}

func TestParseDate_Invalid(t *testing.T) {
	for _, arg := range []string{"", "20-08-2026", "2026/08/20", "yesterday"} {
		_, err := parseDate(arg)
		if err == nil {
			t.Errorf("parseDate(%q) should fail", arg)
			continue
		}
		if !eris.Is(err, tracker.ErrInvalidInput) {
			t.Errorf("parseDate(%q) error should wrap ErrInvalidInput", arg)
		}
	}
}

func TestParseMonth(t *testing.T) {
	year, month, err := parseMonth("2026-08")
	if err != nil {
		t.Fatalf("parseMonth() returned error: %v", err)
	}
	if year != 2026 || month != time.August {
		t.Errorf("parseMonth() = %d-%d, want 2026-8", year, month)
	}

	if _, _, err := parseMonth("2026-13"); err == nil {
		t.Error("parseMonth(2026-13) should fail")
	}
	if _, _, err := parseMonth("August"); err == nil {
		t.Error("parseMonth(August) should fail")
	}
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		arg  string
		want time.Time
	}{
		{"2026-08-20 10:30:15", time.Date(2026, 8, 20, 10, 30, 15, 0, time.Local)},
		{"2026-08-20 10:30", time.Date(2026, 8, 20, 10, 30, 0, 0, time.Local)},
		{"2026-08-20T10:30:15", time.Date(2026, 8, 20, 10, 30, 15, 0, time.Local)},
		{"2026-08-20T10:30", time.Date(2026, 8, 20, 10, 30, 0, 0, time.Local)},
		// Bare date reads as midnight.
		{"2026-08-20", time.Date(2026, 8, 20, 0, 0, 0, 0, time.Local)},
	}

	for _, tt := range tests {
		got, err := parseTimestamp(tt.arg)
		if err != nil {
			t.Errorf("parseTimestamp(%q) returned error: %v", tt.arg, err)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("parseTimestamp(%q) = %v, want %v", tt.arg, got, tt.want)
		}
	}
}

func TestParseTimestamp_Invalid(t *testing.T) {
	for _, arg := range []string{"", "10:30", "2026-08-20 25:00", "now"} {
		_, err := parseTimestamp(arg)
		if err == nil {
			t.Errorf("parseTimestamp(%q) should fail", arg)
			continue
		}
		if !eris.Is(err, tracker.ErrInvalidInput) {
			t.Errorf("parseTimestamp(%q) error should wrap ErrInvalidInput", arg)
		}
	}
}
