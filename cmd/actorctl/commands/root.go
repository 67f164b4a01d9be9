package commands

import (
	"os"

	"github.com/btcsuite/btclog/v2"
	"github.com/spf13/cobra"

	"github.com/catalystlabs/meioactor/internal/actor"
	"github.com/catalystlabs/meioactor/internal/build"
)

var (
	// logDir is the directory rotating log files are written to. Empty
	// disables file logging and logs to stderr only.
	logDir string

	// maxLogFiles caps the number of rotated log files kept on disk.
	maxLogFiles int

	// maxLogFileSize caps, in megabytes, the size of a log file before
	// rotation occurs.
	maxLogFileSize int
)

// rootCmd is the base command for the CLI.
var rootCmd = &cobra.Command{
	Use:   "actorctl",
	Short: "actorctl demonstrates the actor runtime's supervision tree",
	Long: `actorctl spawns a small supervision tree built on the actor
runtime: a root actor with a heartbeat lite task bound beneath it. Ctrl-C
once to request a graceful stop; Ctrl-C again to exit immediately.`,
	PersistentPreRunE: setupLogging,
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&logDir, "log-dir", "",
		"Directory for rotating log files (default: stderr only)",
	)
	rootCmd.PersistentFlags().IntVar(
		&maxLogFiles, "max-log-files", build.DefaultMaxLogFiles,
		"Maximum number of rotated log files to keep",
	)
	rootCmd.PersistentFlags().IntVar(
		&maxLogFileSize, "max-log-file-size", build.DefaultMaxLogFileSize,
		"Maximum log file size in megabytes before rotation",
	)

	rootCmd.AddCommand(runCmd)
}

// setupLogging wires the actor package's logger to a console handler and,
// if log-dir is set, a rotating file handler, combined via
// build.HandlerSet.
func setupLogging(cmd *cobra.Command, args []string) error {
	var handlers []btclog.Handler
	handlers = append(handlers, btclog.NewDefaultHandler(os.Stderr))

	if logDir != "" {
		rotator := build.NewRotatingLogWriter()
		cfg := build.DefaultLogRotatorConfig()
		cfg.LogDir = logDir
		cfg.MaxLogFiles = maxLogFiles
		cfg.MaxLogFileSize = maxLogFileSize

		if err := rotator.InitLogRotator(cfg); err != nil {
			return err
		}
		handlers = append(handlers, btclog.NewDefaultHandler(rotator))
	}

	combined := build.NewHandlerSet(handlers...)
	actor.UseLogger(btclog.NewSLogger(combined))

	return nil
}
