package cmd

import (
	"fmt"
	"sort"
	"time"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/benoctopus/quartertime/internal/report"
	"github.com/benoctopus/quartertime/internal/timeutil"
)

var monthCmd = &cobra.Command{
	Use:   "month [YYYY-MM]",
	Short: "Show the per-day breakdown for a calendar month",
	Long: `Show per-day activity totals for a month, with multi-day intervals
split across the days they span. Days marked as covered are flagged and
excluded from the per-activity daily averages.

Defaults to the current month.

Examples:
  quartertime month
  quartertime month 2026-07`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMonth,
}

func init() {
	rootCmd.AddCommand(monthCmd)
}

func runMonth(cmd *cobra.Command, args []string) error {
	now := time.Now()
	year, month := now.Year(), now.Month()
	if len(args) == 1 {
		var err error
		year, month, err = parseMonth(args[0])
		if err != nil {
			return err
		}
	}

	database, trk, err := openTracker()
	if err != nil {
		return err
	}
	defer database.Close()

	records, err := trk.MonthRecords(year, month)
	if err != nil {
		return err
	}

	covered, err := trk.CoveredDays()
	if err != nil {
		return err
	}

	days := report.DailyBreakdown(report.Valid(records), year, month, covered)

	table := uitable.New()
	table.AddRow("DAY", "TRACKED", "TOP ACTIVITIES", "")
	tracked := 0
	for _, d := range days {
		if d.Sum() == 0 && !d.Covered {
			continue
		}
		tracked++

		note := ""
		if d.Covered {
			note = "(covered)"
		}
		table.AddRow(
			d.Day.Format(dateLayout),
			timeutil.FormatClock(d.Sum()),
			topActivities(d.Totals, 3),
			note,
		)
	}

	if tracked == 0 {
		fmt.Printf("No records for %04d-%02d.\n", year, month)
		return nil
	}
	fmt.Println(table)

	averages := report.AverageByLabel(days)
	if len(averages) == 0 {
		return nil
	}

	fmt.Println()
	avgTable := uitable.New()
	avgTable.AddRow("ACTIVITY", "DAILY AVERAGE")
	for _, s := range sortedAverages(averages) {
		avgTable.AddRow(s.Label, timeutil.FormatClock(s.Total))
	}
	fmt.Println(avgTable)

	return nil
}

func topActivities(totals map[string]time.Duration, n int) string {
	summaries := summariesFromTotals(totals)
	out := ""
	for i, s := range summaries {
		if i >= n {
			break
		}
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%s %s", s.Label, timeutil.FormatClock(s.Total))
	}
	return out
}

func sortedAverages(averages map[string]time.Duration) []report.Summary {
	return summariesFromTotals(averages)
}

func summariesFromTotals(totals map[string]time.Duration) []report.Summary {
	out := make([]report.Summary, 0, len(totals))
	for label, total := range totals {
		out = append(out, report.Summary{Label: label, Total: total})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Label < out[j].Label
	})
	return out
}
