package cmd

import (
	"fmt"
	"time"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/benoctopus/quartertime/internal/models"
	"github.com/benoctopus/quartertime/internal/report"
	"github.com/benoctopus/quartertime/internal/timeutil"
)

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's timeline and totals",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDay(time.Now())
	},
}

var dayCmd = &cobra.Command{
	Use:   "day <YYYY-MM-DD>",
	Short: "Show the timeline and totals for a calendar day",
	Long: `Show every interval intersecting the given day, clipped to the day
boundaries, plus per-activity totals. A session spanning midnight counts
only its in-day portion.

Examples:
  quartertime day 2026-08-20`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := parseDate(args[0])
		if err != nil {
			return err
		}
		return runDay(date)
	},
}

func init() {
	rootCmd.AddCommand(todayCmd)
	rootCmd.AddCommand(dayCmd)
}

func runDay(date time.Time) error {
	database, trk, err := openTracker()
	if err != nil {
		return err
	}
	defer database.Close()

	records, err := trk.DayRecords(date)
	if err != nil {
		return err
	}

	valid := report.Valid(records)
	if len(valid) == 0 {
		fmt.Printf("No records for %s.\n", date.Format(dateLayout))
		return nil
	}

	dayFrom := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.Local)
	dayTo := dayFrom.AddDate(0, 0, 1)

	table := uitable.New()
	table.AddRow("ACTIVITY", "START", "END", "DURATION")
	for _, block := range report.TimelineBlocks(valid, dayFrom, dayTo) {
		table.AddRow(
			block.Label,
			block.Start.Format("15:04:05"),
			block.End.Format("15:04:05"),
			timeutil.FormatDuration(block.Duration),
		)
	}
	fmt.Println(table)

	fmt.Println()
	printSummaries(valid)
	return nil
}

// printSummaries renders the per-activity totals shared by the day and month
// views.
func printSummaries(records []models.Record) {
	table := uitable.New()
	table.AddRow("ACTIVITY", "TOTAL")
	var total time.Duration
	for _, s := range report.Summaries(records) {
		table.AddRow(s.Label, timeutil.FormatClock(s.Total))
		total += s.Total
	}
	table.AddRow("", "")
	table.AddRow("all", timeutil.FormatClock(total))
	fmt.Println(table)
}
