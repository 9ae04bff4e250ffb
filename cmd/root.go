package cmd

import (
	"database/sql"
	"fmt"
	"io/fs"
	"os"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/benoctopus/quartertime/internal/config"
	"github.com/benoctopus/quartertime/internal/db"
	"github.com/benoctopus/quartertime/internal/tracker"
)

var debugFlag bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "quartertime",
	Short: "Personal activity time tracker",
	Long: `quartertime records which activity you are doing and when.

Press an activity button (record) and the tracker closes the previous
interval and opens a new one; history, daily and monthly breakdowns are
rendered from the recorded intervals.

Examples:
  quartertime record Work      # start (or switch to) Work
  quartertime status           # show the current activity
  quartertime today            # today's timeline and totals
  quartertime dashboard        # interactive button panel`,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%+v\n", eris.ToString(err, true))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "enable debug logging")
}

// setupLogging sends the zerolog output to a log file under the config dir.
// Logging failures are not fatal: the tracker must keep working without it.
func setupLogging(cmd *cobra.Command, args []string) error {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if debugFlag {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	logPath, err := config.GetLogPath()
	if err != nil {
		log.Logger = zerolog.Nop()
		return nil
	}

	if err := config.EnsureConfigDir(); err != nil {
		log.Logger = zerolog.Nop()
		return nil
	}

	logFile, err := os.OpenFile(logPath, os.O_RDWR|os.O_CREATE|os.O_APPEND, fs.FileMode(0o666))
	if err != nil {
		log.Logger = zerolog.Nop()
		return nil
	}

	log.Logger = log.With().Caller().Logger().Output(zerolog.ConsoleWriter{
		Out: logFile, TimeFormat: "2006-01-02_15:04:05", NoColor: true,
	})

	return nil
}

// openTracker initializes the database and wraps it in a Tracker.
// The caller owns closing the returned database handle.
func openTracker() (*sql.DB, *tracker.Tracker, error) {
	if err := config.EnsureConfigDir(); err != nil {
		return nil, nil, eris.Wrap(err, "failed to ensure config directory")
	}

	dbPath, err := config.GetDBPath()
	if err != nil {
		return nil, nil, eris.Wrap(err, "failed to get database path")
	}

	database, err := db.InitDB(dbPath)
	if err != nil {
		return nil, nil, eris.Wrap(err, "failed to initialize database")
	}

	return database, tracker.New(database), nil
}
