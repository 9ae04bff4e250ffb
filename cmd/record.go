package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/benoctopus/quartertime/internal/display"
	"github.com/benoctopus/quartertime/internal/models"
)

var recordCmd = &cobra.Command{
	Use:   "record <activity>",
	Short: "Start tracking an activity",
	Long: `Record an activity button press.

If a different activity is running it is closed at the current time and a
new interval opens. Pressing the already-active activity changes nothing.

Examples:
  quartertime record Work
  quartertime record Sleep
  quartertime record "Rest/Entertain"`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeActivities,
	RunE:              runRecord,
}

func init() {
	rootCmd.AddCommand(recordCmd)
}

func runRecord(cmd *cobra.Command, args []string) error {
	label := args[0]
	out := display.NewStderr()

	database, trk, err := openTracker()
	if err != nil {
		return err
	}
	defer database.Close()

	changed, err := trk.Record(label)
	if err != nil {
		return err
	}

	if !changed {
		out.Infof("%s is already being tracked", label)
		return nil
	}

	// Report the start the tracker actually stored, not a second clock read.
	status, err := trk.Status()
	if err != nil {
		return err
	}
	out.Success(trackingMessage(label, status))
	return nil
}

func trackingMessage(label string, status *models.CurrentStatus) string {
	if status == nil {
		return fmt.Sprintf("now tracking %s", label)
	}
	return fmt.Sprintf("now tracking %s (since %s)", label, status.LastStart.Format("15:04:05"))
}
