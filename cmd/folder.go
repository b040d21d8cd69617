package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mqzhang/stabwatch/internal/model"
	"github.com/mqzhang/stabwatch/internal/store"
)

// NewCmdFolder creates the folder command with subcommands.
func NewCmdFolder(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "folder",
		Short: "Manage the configured folders and their warning rules",
		Long: `Manage the ordered list of watched folders. Each entry binds a
filesystem path to one date-warning rule. Every change is written to the
folder configuration file immediately.

Entries are addressed by their position (see 'folder list'); names may
repeat. There is no in-place edit: remove an entry and add it again.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFolderList(cmd, opts)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.FoldersPath, "folders", "", "Folder configuration file (default from config)")

	cmd.AddCommand(NewCmdFolderAdd(opts))
	cmd.AddCommand(NewCmdFolderList(opts))
	cmd.AddCommand(NewCmdFolderRemove(opts))
	cmd.AddCommand(NewCmdFolderClear(opts))
	cmd.AddCommand(NewCmdFolderImport(opts))
	cmd.AddCommand(NewCmdFolderExport(opts))

	return cmd
}

// NewCmdFolderAdd creates the folder add subcommand.
func NewCmdFolderAdd(opts *Options) *cobra.Command {
	var entry model.FolderEntry

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a folder entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, st, err := openStores(opts)
			if err != nil {
				return err
			}
			if err := st.Add(entry); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added folder %q (%d configured).\n", entry.Name, st.Count())
			return nil
		},
	}

	cmd.Flags().StringVar(&entry.Name, "name", "", "Display name for the folder")
	cmd.Flags().StringVar(&entry.Path, "path", "", "Filesystem path to scan for Word documents")
	cmd.Flags().StringVar(&entry.Rule.StartColumn, "start-column", "", "Column holding the interval's start date")
	cmd.Flags().StringVar(&entry.Rule.EndColumn, "end-column", "", "Column holding the end date (optional; current date if unset)")
	cmd.Flags().IntVar(&entry.Rule.WarningDays, "warning-days", 180, "Elapsed-day threshold for flagging a row")
	cmd.Flags().IntVar(&entry.Rule.StabilityDays, "stability-days", 365, "Total allowed interval length in days")
	_ = cmd.MarkFlagRequired("path")
	_ = cmd.MarkFlagRequired("start-column")

	return cmd
}

// NewCmdFolderList creates the folder list subcommand.
func NewCmdFolderList(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the configured folders",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFolderList(cmd, opts)
		},
	}
}

func runFolderList(cmd *cobra.Command, opts *Options) error {
	_, st, err := openStores(opts)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	entries := st.All()
	if len(entries) == 0 {
		fmt.Fprintln(w, "No folders configured. Use 'stabwatch folder add' to add one.")
		return nil
	}

	for i, e := range entries {
		name := e.Name
		if name == "" {
			name = fmt.Sprintf("folder %d", i+1)
		}
		fmt.Fprintf(w, "[%d] %s\n", i, name)
		fmt.Fprintf(w, "    path:           %s\n", e.Path)
		fmt.Fprintf(w, "    start column:   %s\n", e.Rule.StartColumn)
		fmt.Fprintf(w, "    end column:     %s\n", e.Rule.EndColumnDisplay())
		fmt.Fprintf(w, "    warning days:   %d\n", e.Rule.WarningDays)
		fmt.Fprintf(w, "    stability days: %d\n", e.Rule.StabilityDays)
	}
	return nil
}

// NewCmdFolderRemove creates the folder remove subcommand.
func NewCmdFolderRemove(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <position>",
		Short: "Remove the folder entry at the given position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid position %q: %w", args[0], err)
			}
			_, st, err := openStores(opts)
			if err != nil {
				return err
			}
			removed, err := st.Remove(index)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed folder %q (%d remaining).\n", removed.Name, st.Count())
			return nil
		},
	}
}

// NewCmdFolderClear creates the folder clear subcommand.
func NewCmdFolderClear(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every folder entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, st, err := openStores(opts)
			if err != nil {
				return err
			}
			n := st.Count()
			if err := st.Clear(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d folder(s).\n", n)
			return nil
		},
	}
}

// NewCmdFolderImport creates the folder import subcommand.
func NewCmdFolderImport(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the configuration with an exported document",
		Long: `Replace the folder configuration with the given JSON document. The
document must carry the top-level "folders" key; otherwise the import is
rejected and the current configuration is left unchanged.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, st, err := openStores(opts)
			if err != nil {
				return err
			}

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open configuration document: %w", err)
			}
			defer func() { _ = f.Close() }()

			n, err := st.Import(f)
			if err != nil {
				if errors.Is(err, store.ErrMissingFolders) {
					return fmt.Errorf("invalid configuration document %s: %w", args[0], err)
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d folder(s) from %s.\n", n, args[0])
			return nil
		},
	}
}

// NewCmdFolderExport creates the folder export subcommand.
func NewCmdFolderExport(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "export <file>",
		Short: "Write the current configuration to a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, st, err := openStores(opts)
			if err != nil {
				return err
			}

			f, err := os.Create(args[0])
			if err != nil {
				return fmt.Errorf("create export file: %w", err)
			}
			defer func() { _ = f.Close() }()

			if err := st.Export(f); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d folder(s) to %s.\n", st.Count(), args[0])
			return nil
		},
	}
}
