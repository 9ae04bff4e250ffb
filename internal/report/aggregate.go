// Package report turns query results into the per-day and per-activity
// aggregates the presentation layer renders. Everything here is pure
// arithmetic over in-memory records.
package report

import (
	"sort"
	"time"

	"github.com/benoctopus/quartertime/internal/models"
)

// Summary is a per-activity total.
type Summary struct {
	Label string
	Total time.Duration
}

// Block is one clipped, contiguous timeline segment within a day.
type Block struct {
	Label    string
	Start    time.Time
	End      time.Time
	Duration time.Duration
}

// Valid filters out records with non-positive durations. Zero-length
// intervals are bookkeeping artifacts, not activity.
func Valid(records []models.Record) []models.Record {
	out := make([]models.Record, 0, len(records))
	for _, r := range records {
		if r.Valid() {
			out = append(out, r)
		}
	}
	return out
}

// TotalsByLabel sums valid record durations per activity label.
func TotalsByLabel(records []models.Record) map[string]time.Duration {
	totals := make(map[string]time.Duration)
	for _, r := range records {
		if r.Valid() {
			totals[r.Label] += r.Duration
		}
	}
	return totals
}

// Summaries returns per-activity totals sorted by total descending, ties
// broken by label.
func Summaries(records []models.Record) []Summary {
	totals := TotalsByLabel(records)

	out := make([]Summary, 0, len(totals))
	for label, total := range totals {
		out = append(out, Summary{Label: label, Total: total})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Label < out[j].Label
	})
	return out
}

// DailyBreakdown distributes month records across the month's calendar days,
// one day at a time, so an interval spanning midnight contributes the right
// portion to each day. Returns one entry per day of the month, in order, with
// covered days flagged.
func DailyBreakdown(records []models.Record, year int, month time.Month, covered []models.CoveredDay) []models.DayTotal {
	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	monthEnd := monthStart.AddDate(0, 1, 0)
	// Calendar length, not hour arithmetic: a DST transition makes one day
	// of the month 23 or 25 hours long.
	numDays := monthEnd.AddDate(0, 0, -1).Day()

	coveredSet := make(map[string]bool, len(covered))
	for _, c := range covered {
		coveredSet[c.Day.Format("2006-01-02")] = true
	}

	days := make([]models.DayTotal, numDays)
	for i := range days {
		day := monthStart.AddDate(0, 0, i)
		days[i] = models.DayTotal{
			Day:     day,
			Totals:  make(map[string]time.Duration),
			Covered: coveredSet[day.Format("2006-01-02")],
		}
	}

	for _, r := range records {
		if !r.Valid() {
			continue
		}

		// Walk the interval one calendar day at a time.
		for day := startOfDay(r.Start); day.Before(r.End); day = day.AddDate(0, 0, 1) {
			next := day.AddDate(0, 0, 1)

			segStart := r.Start
			if day.After(segStart) {
				segStart = day
			}
			segEnd := r.End
			if next.Before(segEnd) {
				segEnd = next
			}
			if !segEnd.After(segStart) {
				continue
			}

			if day.Before(monthStart) || !day.Before(monthEnd) {
				continue
			}

			days[day.Day()-1].Totals[r.Label] += segEnd.Sub(segStart)
		}
	}

	return days
}

// AverageByLabel computes the per-day average for each activity across the
// breakdown, counting only uncovered days that have any tracked time.
func AverageByLabel(days []models.DayTotal) map[string]time.Duration {
	totals := make(map[string]time.Duration)
	counted := 0
	for _, d := range days {
		if d.Covered || d.Sum() == 0 {
			continue
		}
		counted++
		for label, v := range d.Totals {
			totals[label] += v
		}
	}

	if counted == 0 {
		return map[string]time.Duration{}
	}

	averages := make(map[string]time.Duration, len(totals))
	for label, total := range totals {
		averages[label] = total / time.Duration(counted)
	}
	return averages
}

// TimelineBlocks clips valid records to [from, to) and returns them as
// ordered render-ready segments.
func TimelineBlocks(records []models.Record, from, to time.Time) []Block {
	var blocks []Block
	for _, r := range records {
		start := r.Start
		if start.Before(from) {
			start = from
		}
		end := r.End
		if end.After(to) {
			end = to
		}
		if !end.After(start) {
			continue
		}
		blocks = append(blocks, Block{
			Label:    r.Label,
			Start:    start,
			End:      end,
			Duration: end.Sub(start),
		})
	}

	sort.Slice(blocks, func(i, j int) bool { return blocks[i].Start.Before(blocks[j].Start) })
	return blocks
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
