// Command tracker extracts project action items from meeting notes with an
// LLM and reconciles them into a per-project JSON document.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Persistent flags
	configPath string
	verbose    bool

	// Logger, built once per invocation
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "tracker",
	Short: "Stateful project action item tracker",
	Long: `tracker extracts action items from meeting notes with an LLM and
reconciles them into a per-project JSON document.

Candidates carrying a known id update the stored item in place (with a
change history), candidates with a task but no id become new items, and
everything else is skipped. Running tracker with no subcommand behaves
like "tracker track".`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env is optional; a missing file is not an error.
		_ = godotenv.Load()

		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runTrack,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "tracker.yaml", "path to the YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	// The root command doubles as `track`, so it carries the same flags.
	addTrackFlags(rootCmd)

	rootCmd.AddCommand(trackCmd, listCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
