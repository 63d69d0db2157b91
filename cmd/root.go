package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Catskill909/radio-sub001/pkg/config"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "radio-api",
	Short: "Radio Calendar API server",
	Long: `Radio Calendar API - broadcast scheduling and automated recording

This API manages a radio station's broadcast calendar and records live
streams according to it.

Features:
  • Conflict-checked schedule slots with weekly recurrence
  • Automated stream capture driven by the calendar
  • Destructive audio editing (trim, fade, normalize) with rollback
  • Episode publishing and RSS feed generation`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// NewRootCmd creates a new root command (exported for testing)
func NewRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	cobra.OnInitialize(initConfig)
}

// initConfig loads the configuration when a command needs it. Version
// and help run without config.
func initConfig() {
	cmd, _, _ := rootCmd.Find(os.Args[1:])
	if cmd != nil && (cmd.Name() == "version" || cmd.Name() == "help") {
		return
	}

	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing config: %v\n", err)
		os.Exit(1)
	}
}
