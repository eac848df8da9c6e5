package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"retail.GO/config"
	"retail.GO/core/logging"
)

var rootCmd = &cobra.Command{
	Use:   "retail",
	Short: "retail.GO command line: CSV import, schema and scheduled jobs",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg := config.LoadAppConfig()
		logging.Setup(cfg.LogLevel, cfg.LogFormat)
	},
}

// Execute applies registered commands and runs the root command.
func Execute() {
	Apply()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
