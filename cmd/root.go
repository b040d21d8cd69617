package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mqzhang/stabwatch/internal/log"
)

// New creates the root command with all subcommands registered.
func New() *cobra.Command {
	opts := &Options{}

	rootCmd := &cobra.Command{
		Use:   "stabwatch",
		Short: "Sample stability warning reporter",
		Long: `A CLI tool that extracts tables from folders of Word documents,
merges them, and flags records whose tracked date interval exceeds the
configured warning thresholds.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.Initialize(opts.Verbosity, os.Stderr)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(cmd, opts)
		},
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.PersistentFlags().CountVarP(&opts.Verbosity, "verbose", "v",
		"Increase verbosity (-v, -vv, -vvv)")

	// Add run flags to the root command so `stabwatch` and `stabwatch run`
	// behave identically.
	addRunFlags(rootCmd, opts)

	// Register subcommands
	rootCmd.AddCommand(NewCmdRun(opts))
	rootCmd.AddCommand(NewCmdFolder(opts))
	rootCmd.AddCommand(NewCmdConfig())
	rootCmd.AddCommand(NewCmdHistory())
	rootCmd.AddCommand(NewCmdVersion())

	return rootCmd
}
