package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/benoctopus/quartertime/internal/display"
)

var clearYesFlag bool

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the entire interval history",
	Long: `Delete every recorded interval and reset the current status.

This cannot be undone. Without --yes an interactive confirmation is
required. Covered-day marks are kept.

Examples:
  quartertime clear
  quartertime clear --yes`,
	Args: cobra.NoArgs,
	RunE: runClear,
}

func init() {
	clearCmd.Flags().BoolVar(&clearYesFlag, "yes", false, "skip the confirmation prompt")
	rootCmd.AddCommand(clearCmd)
}

func runClear(cmd *cobra.Command, args []string) error {
	out := display.NewStderr()

	if !clearYesFlag {
		fmt.Fprint(os.Stderr, "Delete ALL recorded history? This cannot be undone. [y/N]: ")
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		answer = strings.TrimSpace(strings.ToLower(answer))
		if answer != "y" && answer != "yes" {
			out.Info("aborted")
			return nil
		}
	}

	database, trk, err := openTracker()
	if err != nil {
		return err
	}
	defer database.Close()

	if err := trk.ClearAll(); err != nil {
		return err
	}

	out.Success("history cleared")
	return nil
}
