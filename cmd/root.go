// Package cmd provides the CLI commands for pomo.
package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/xvierd/pomo/internal/adapters/tui"
	"github.com/xvierd/pomo/internal/domain"
	"github.com/xvierd/pomo/internal/services"
)

var (
	// Version info (set at build time via ldflags)
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"

	// Global flags
	dbPath       string
	configPath   string
	logPath      string
	outputFormat string
	inlineMode   bool
	journalMode  bool
	debugMode    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pomo",
	Short: "pomo - a Focus/Break Pomodoro timer for the terminal",
	Long: `pomo counts down a 25 minute Focus period and a 5 minute Break,
switching between them automatically when a countdown reaches zero.

Run "pomo" with no arguments to open the timer.
Keys: space start/pause · r reset · 1/2 or tab choose mode · q quit`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if isStandalone(cmd) {
			return validateOutputFormat(outputFormat)
		}
		return initializeServices(cmd)
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return cleanupServices()
	},
	RunE: runTimer,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	err := rootCmd.Execute()
	// PersistentPostRunE is skipped when a command fails.
	_ = cleanupServices()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to the journal database (default: ~/.pomo/journal.db)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to the config file (default: ~/.pomo/config.toml)")
	rootCmd.PersistentFlags().StringVar(&logPath, "log-file", "", "Path to the log file (default: ~/.pomo/pomo.log)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "text", "Output format: text, json, yaml")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Log at debug level")

	rootCmd.Flags().BoolVarP(&inlineMode, "inline", "i", false, "Compact inline timer (no fullscreen)")
	rootCmd.Flags().BoolVar(&journalMode, "journal", false, "Record every transition to the journal")

	// Set version - cobra handles --version automatically
	rootCmd.Version = fmt.Sprintf("%s (commit %s, built %s)", Version, GitCommit, BuildDate)
	rootCmd.SetVersionTemplate("pomo\nVersion: {{.Version}}\n")

	// Add subcommands
	rootCmd.AddCommand(formatCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(configCmd)
}

// runTimer opens the interactive timer.
func runTimer(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := []services.Option{services.WithLogger(app.logger)}
	journaling := journalMode || app.config.Journal.Enabled
	if journaling {
		store, err := openStorage()
		if err != nil {
			return err
		}
		opts = append(opts, services.WithJournal(store.Journal()))
		pruneJournal(ctx, store.Journal())
	}

	timer := services.NewTimerService(opts...)
	inline := inlineMode || app.config.Inline
	app.logger.Info("timer.launch", "run", timer.RunID(), "inline", inline, "journal", journaling)

	err := tui.Run(ctx, timer, tui.Options{
		Theme:        &app.config.Theme,
		TickInterval: app.config.Interval(),
		Inline:       inline,
	})
	if err != nil {
		return err
	}

	app.logger.Info("timer.exit", "run", timer.RunID(), "state", domain.Serialize(timer.State()))
	if journaling {
		fmt.Fprintf(cmd.OutOrStdout(), "Run %s recorded. Replay with: pomo replay %s\n", timer.RunID(), timer.RunID())
	}
	return nil
}
