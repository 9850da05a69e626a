package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/timeclock/internal/config"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "timeclock",
	Short: "Keep track of working hours with simple shell commands",
	Long: `timeclock records in/out/pause/resume/tag stamps as plain files and
reconstructs work-day and week summaries from them.`,
	SilenceUsage: true,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Config file (default: <user config dir>/timeclock/config.toml)")
	rootCmd.AddCommand(clockCmd)
	rootCmd.AddCommand(timesheetCmd)
	rootCmd.AddCommand(scheduleCmd)
}

// loadConfig reads the config selected by --config.
func loadConfig() (config.Config, error) {
	return config.Load(cfgFile)
}
