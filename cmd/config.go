package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mqzhang/stabwatch/config"
)

// NewCmdConfig creates the config command with subcommands.
func NewCmdConfig() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or manage the application configuration",
		Long: `Show or manage the application configuration (output format,
artifact directory, near-band override). The watched folders themselves
are managed with 'stabwatch folder'.`,
		RunE: runConfigShow,
	}

	cmd.AddCommand(NewCmdConfigShow())
	cmd.AddCommand(NewCmdConfigInit())
	cmd.AddCommand(NewCmdConfigPath())

	return cmd
}

// NewCmdConfigShow creates the config show subcommand.
func NewCmdConfigShow() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current merged configuration",
		RunE:  runConfigShow,
	}
}

// NewCmdConfigInit creates the config init subcommand.
func NewCmdConfigInit() *cobra.Command {
	var local bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a minimal config file",
		Long: `Create a minimal config file with starter settings.

By default the file is created at the global location
(~/.config/stabwatch/config.yaml). Use --local to create ./.stabwatch.yaml
instead, which applies only in the current directory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigInit(cmd, local)
		},
	}

	cmd.Flags().BoolVar(&local, "local", false, "Create local config file (./.stabwatch.yaml)")

	return cmd
}

// NewCmdConfigPath creates the config path subcommand.
func NewCmdConfigPath() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show config file locations",
		RunE:  runConfigPath,
	}
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	yamlStr, err := cfg.ToYAML()
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), yamlStr)
	return nil
}

func runConfigInit(cmd *cobra.Command, local bool) error {
	paths := config.GetConfigPaths()
	targetPath := paths.GlobalPath
	if local {
		targetPath = paths.LocalPath
	}

	if _, err := os.Stat(targetPath); err == nil {
		return fmt.Errorf("config file already exists: %s\nUse 'stabwatch config show' to view the current config", targetPath)
	}

	if err := config.SaveTo(targetPath, config.MinimalConfig()); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created config file: %s\n", targetPath)
	return nil
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	paths := config.GetConfigPaths()
	w := cmd.OutOrStdout()

	fmt.Fprintln(w, "Configuration file locations:")
	fmt.Fprintln(w)

	globalStatus := "not found"
	if paths.GlobalExists {
		globalStatus = "exists"
	}
	fmt.Fprintf(w, "  Global: %s (%s)\n", paths.GlobalPath, globalStatus)

	localStatus := "not found"
	if paths.LocalExists {
		localStatus = "exists"
	}
	fmt.Fprintf(w, "  Local:  %s (%s)\n", paths.LocalPath, localStatus)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Load order: defaults -> global -> local (local overrides global)")

	return nil
}
