// Package cli wires the archive engine to its cobra command surface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/forcearc/forcearc/internal/logger"
)

var version = "dev"

var (
	configPath  string
	verboseFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "forcearc",
	Short: "Archive Salesforce files onto local disk",
	Long: `forcearc archives files attached to Salesforce records onto local
disk and validates the archived copies against Salesforce metadata.

Runs are incremental: metadata snapshots and progress ledgers on disk
make re-running a command skip everything already done.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "path to the configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging")
}

// Execute runs the root command. It returns an error when the run
// failed and the process should exit nonzero.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string printed by the version command.
func SetVersion(v string) {
	version = v
}
