package cmd

import (
	"fmt"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/benoctopus/quartertime/internal/display"
	"github.com/benoctopus/quartertime/internal/tracker"
	"github.com/rotisserie/eris"
)

var (
	coverTypeFlag   string
	coverListFlag   bool
	coverRemoveFlag bool
)

var coverCmd = &cobra.Command{
	Use:   "cover [YYYY-MM-DD]",
	Short: "Mark a day as excluded from monthly averages",
	Long: `Mark a calendar day as covered: it still shows up in reports but is
excluded from the monthly daily-average computation, e.g. a day with
incomplete tracking.

Examples:
  quartertime cover 2026-08-20
  quartertime cover 2026-08-20 --type solid
  quartertime cover --list
  quartertime cover 2026-08-20 --remove`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCover,
}

func init() {
	coverCmd.Flags().StringVar(&coverTypeFlag, "type", tracker.DefaultCoverType, "cover type to record")
	coverCmd.Flags().BoolVar(&coverListFlag, "list", false, "list covered days")
	coverCmd.Flags().BoolVar(&coverRemoveFlag, "remove", false, "remove the covered-day mark")
	rootCmd.AddCommand(coverCmd)
}

func runCover(cmd *cobra.Command, args []string) error {
	database, trk, err := openTracker()
	if err != nil {
		return err
	}
	defer database.Close()

	if coverListFlag {
		days, err := trk.CoveredDays()
		if err != nil {
			return err
		}
		if len(days) == 0 {
			fmt.Println("No covered days.")
			return nil
		}

		table := uitable.New()
		table.AddRow("DAY", "TYPE")
		for _, d := range days {
			table.AddRow(d.Day.Format(dateLayout), d.CoverType)
		}
		fmt.Println(table)
		return nil
	}

	if len(args) != 1 {
		return eris.Wrap(tracker.ErrInvalidInput, "a day argument is required unless --list is given")
	}

	day, err := parseDate(args[0])
	if err != nil {
		return err
	}

	out := display.NewStderr()

	if coverRemoveFlag {
		if err := trk.UncoverDay(day); err != nil {
			return err
		}
		out.Successf("uncovered %s", day.Format(dateLayout))
		return nil
	}

	if err := trk.CoverDay(day, coverTypeFlag); err != nil {
		return err
	}
	out.Successf("covered %s (%s)", day.Format(dateLayout), coverTypeFlag)
	return nil
}
