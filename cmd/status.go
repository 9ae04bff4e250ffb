package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/benoctopus/quartertime/internal/display"
	"github.com/benoctopus/quartertime/internal/timeutil"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current activity",
	Long: `Display the activity currently being tracked and when it started.

Examples:
  quartertime status`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	database, trk, err := openTracker()
	if err != nil {
		return err
	}
	defer database.Close()

	status, err := trk.Status()
	if err != nil {
		return err
	}

	out := display.NewStdout()
	if status == nil {
		out.Println("Not tracking anything.")
		return nil
	}

	elapsed := time.Since(status.LastStart)
	out.Printf("Current: %s\n", out.Bold(status.Label))
	out.Printf("Since:   %s %s\n",
		status.LastStart.Format("2006-01-02 15:04:05"),
		out.Faint(fmt.Sprintf("(%s ago)", timeutil.FormatDuration(elapsed.Truncate(time.Second)))),
	)
	return nil
}
