package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xvierd/pomo/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Inspect the configuration pomo runs with. Values come from the config
file, overridden by POMO_* environment variables (POMO_JOURNAL_ENABLED=true).`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		view := newConfigView(app.config)
		if structured() {
			return writeStructured(cmd.OutOrStdout(), view)
		}

		w := cmd.OutOrStdout()
		fmt.Fprintln(w)
		fmt.Fprintln(w, "  Current configuration:")
		fmt.Fprintln(w)
		fmt.Fprintf(w, "    Config file:      %s\n", view.ConfigFile)
		fmt.Fprintf(w, "    Tick interval:    %s\n", view.TickInterval)
		fmt.Fprintf(w, "    Inline:           %v\n", view.Inline)
		fmt.Fprintf(w, "    Journal:          %s\n", onOff(view.JournalEnabled))
		fmt.Fprintf(w, "    Retention:        %d days\n", view.RetentionDays)
		fmt.Fprintf(w, "    Database:         %s\n", view.Database)
		fmt.Fprintf(w, "    Log file:         %s (%s)\n", view.LogFile, view.LogLevel)
		fmt.Fprintln(w)
		fmt.Fprintln(w, "  Focus is 25:00 and Break is 05:00.")
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolvedConfigPath()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
}

type configView struct {
	ConfigFile     string `json:"config_file" yaml:"config_file"`
	TickInterval   string `json:"tick_interval" yaml:"tick_interval"`
	Inline         bool   `json:"inline" yaml:"inline"`
	JournalEnabled bool   `json:"journal_enabled" yaml:"journal_enabled"`
	RetentionDays  int    `json:"retention_days" yaml:"retention_days"`
	Database       string `json:"database" yaml:"database"`
	LogFile        string `json:"log_file" yaml:"log_file"`
	LogLevel       string `json:"log_level" yaml:"log_level"`
}

func newConfigView(cfg *config.Config) configView {
	path, _ := resolvedConfigPath()
	return configView{
		ConfigFile:     path,
		TickInterval:   cfg.Interval().String(),
		Inline:         cfg.Inline,
		JournalEnabled: cfg.Journal.Enabled,
		RetentionDays:  cfg.Journal.RetentionDays,
		Database:       app.dbPath,
		LogFile:        app.logPath,
		LogLevel:       cfg.Log.Level,
	}
}

func resolvedConfigPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	return config.GetConfigPath()
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
