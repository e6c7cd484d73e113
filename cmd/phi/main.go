package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/teranos/phi/cmd/phi/commands"
	"github.com/teranos/phi/logger"
)

var rootCmd = &cobra.Command{
	Use:   "phi",
	Short: "phi - concept-style integrated information search",
	Long: `phi - concept-style integrated information (Φ) search.

phi loads a network description, enumerates the concept-style cuts of a
subsystem, and reports the minimum-information partition in the past and
future directions.

Available commands:
  compute - Compute Φ for a network file
  cuts    - List the concept cuts of a set of nodes
  cache   - Manage the result cache
  am      - Manage phi configuration ("I am")
  version - Show version information

Examples:
  phi compute basic.toml                    # Φ of the whole network
  phi compute basic.toml --nodes 0,2 -j     # Φ of a subsystem, as JSON
  phi cuts --direction past 0 1 2           # Candidate cuts for three nodes
  phi am show                               # Show current configuration`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, _ := cmd.Flags().GetCount("verbose")
		jsonLogs, _ := cmd.Flags().GetBool("log-json")
		if !jsonLogs {
			// A broken config is reported by the command itself
			if cfg, err := commands.LoadConfig(cmd); err == nil {
				jsonLogs = cfg.Log.JSON
			}
		}
		if err := logger.Initialize(jsonLogs, verbosity); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Cleanup()
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
	rootCmd.PersistentFlags().Bool("log-json", false, "Emit logs as JSON")
	rootCmd.PersistentFlags().String("config", "", "Read configuration from this file instead of the cascade")

	rootCmd.AddCommand(commands.ComputeCmd)
	rootCmd.AddCommand(commands.CutsCmd)
	rootCmd.AddCommand(commands.CacheCmd)
	rootCmd.AddCommand(commands.AmCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
