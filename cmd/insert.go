package cmd

import (
	"github.com/spf13/cobra"

	"github.com/benoctopus/quartertime/internal/display"
)

var insertCmd = &cobra.Command{
	Use:   "insert <activity> <when>",
	Short: "Retroactively insert an activity change",
	Long: `Insert an activity change at a past point in time.

The interval covering that moment is split in two: it ends at the given
time and the new activity takes over until the original end (or until now,
if it was still running). Timestamps in the future are rejected.

Examples:
  quartertime insert Meeting "2026-08-23 10:00"
  quartertime insert Sleep "2026-08-22 23:30:00"`,
	Args:              cobra.ExactArgs(2),
	ValidArgsFunction: completeActivities,
	RunE:              runInsert,
}

func init() {
	rootCmd.AddCommand(insertCmd)
}

func runInsert(cmd *cobra.Command, args []string) error {
	label := args[0]

	start, err := parseTimestamp(args[1])
	if err != nil {
		return err
	}

	database, trk, err := openTracker()
	if err != nil {
		return err
	}
	defer database.Close()

	if err := trk.ManualInsert(label, start); err != nil {
		return err
	}

	display.NewStderr().Successf("inserted %s at %s", label, start.Format("2006-01-02 15:04:05"))
	return nil
}
