package cmd

import (
	"fmt"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/benoctopus/quartertime/internal/timeutil"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the full interval history",
	Long: `Show every recorded interval, ordered by start time. The last
interval may still be running.

Examples:
  quartertime history`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	database, trk, err := openTracker()
	if err != nil {
		return err
	}
	defer database.Close()

	records, err := trk.History()
	if err != nil {
		return err
	}

	if len(records) == 0 {
		fmt.Println("No records yet.")
		return nil
	}

	table := uitable.New()
	table.AddRow("ACTIVITY", "START", "END", "DURATION")
	for _, r := range records {
		end := r.End.Format("2006-01-02 15:04:05")
		if r.Open {
			end = "running"
		}
		table.AddRow(
			r.Label,
			r.Start.Format("2006-01-02 15:04:05"),
			end,
			timeutil.FormatDuration(r.Duration),
		)
	}
	fmt.Println(table)

	return nil
}
