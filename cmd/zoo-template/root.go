package main

import (
	"github.com/spf13/cobra"

	"github.com/ZOO-Project/zoo-template-common/pkg/logger"
)

// Version is the current version number.
const Version = "0.1.0"

var (
	debug     bool
	logFormat string
)

var rootCmd = &cobra.Command{
	Use:   "zoo-template",
	Short: "Operator tooling for ZOO CWL execution services",
	Long: `zoo-template inspects the runtime surface the execution handlers
depend on: STAC catalog locations (local or object store) and the
processing secrets files.`,
	Version: Version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := "info"
		if debug {
			level = "debug"
		}
		logger.Init(&logger.Config{Level: level, Format: logFormat})
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "console", "log format (console, json)")

	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
