package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mqzhang/stabwatch/config"
	"github.com/mqzhang/stabwatch/internal/aggregate"
	"github.com/mqzhang/stabwatch/internal/history"
	"github.com/mqzhang/stabwatch/internal/log"
	"github.com/mqzhang/stabwatch/internal/output"
	"github.com/mqzhang/stabwatch/internal/pipeline"
	"github.com/mqzhang/stabwatch/internal/report"
	"github.com/mqzhang/stabwatch/internal/store"
)

// NewCmdRun creates the run command.
func NewCmdRun(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Process all configured folders and report warnings",
		Long: `Walks every configured folder, extracts the tables of each Word
document, merges them, and evaluates the folder's date-warning rule.
Writes the merged dataset and the warning-only dataset as xlsx files
named with the run timestamp.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(cmd, opts)
		},
	}
	addRunFlags(cmd, opts)
	return cmd
}

func addRunFlags(cmd *cobra.Command, opts *Options) {
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format (table, json, markdown)")
	cmd.Flags().StringVarP(&opts.OutputDir, "out", "o", "", "Directory for xlsx artifacts (default from config, else .)")
	cmd.Flags().StringVar(&opts.FoldersPath, "folders", "", "Folder configuration file (default from config)")
	cmd.Flags().BoolVar(&opts.NoArtifacts, "no-files", false, "Do not write xlsx artifacts")
}

// openStores loads the application config and the folder store. A
// malformed folder configuration degrades to an empty one with a warning;
// it never aborts the command.
func openStores(opts *Options) (*config.Config, *store.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	path := opts.FoldersPath
	if path == "" {
		path = cfg.FoldersPath
	}
	if path == "" {
		path = store.DefaultPath()
	}

	st, err := store.New(path)
	if err != nil {
		log.Warn("folder configuration could not be read, starting with an empty one", "error", err)
		fmt.Fprintf(os.Stderr, "Warning: %v (continuing with an empty configuration)\n", err)
	}
	return cfg, st, nil
}

func runRun(cmd *cobra.Command, opts *Options) error {
	cfg, st, err := openStores(opts)
	if err != nil {
		return err
	}

	res := pipeline.Run(st.All(), pipeline.Options{
		NearBandDays:     cfg.NearBand(),
		ExtraDateLayouts: cfg.DateLayouts,
	})

	w := cmd.OutOrStdout()

	if !opts.NoArtifacts {
		outDir := opts.OutputDir
		if outDir == "" {
			outDir = cfg.OutputDir
		}
		if err := writeArtifacts(res, outDir, w); err != nil {
			return err
		}
	}

	format := output.Format(opts.Format)
	if format == "" {
		format = output.Format(cfg.DefaultFormat)
	}
	formatter := output.NewFormatter(format)
	if err := formatter.Format(res, w); err != nil {
		return err
	}

	recordHistory(res)
	return nil
}

// writeArtifacts serializes the merged and warning datasets. An empty run
// produces no files; that is the normal empty-state, not an error.
func writeArtifacts(res *pipeline.RunResult, outDir string, w io.Writer) error {
	if res.Merged.Empty() {
		return nil
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	mergedPath := filepath.Join(outDir, report.ArtifactName("merged", res.StartedAt))
	data, err := report.Workbook(res.Merged)
	if err != nil {
		return fmt.Errorf("build merged workbook: %w", err)
	}
	if err := os.WriteFile(mergedPath, data, 0o644); err != nil {
		return fmt.Errorf("write merged workbook: %w", err)
	}
	fmt.Fprintf(w, "Wrote %s (%d rows)\n", mergedPath, res.Merged.Len())

	if res.WarningData.Empty() {
		return nil
	}
	warnPath := filepath.Join(outDir, report.ArtifactName("warnings", res.StartedAt))
	data, err = report.Workbook(res.WarningData)
	if err != nil {
		return fmt.Errorf("build warnings workbook: %w", err)
	}
	if err := os.WriteFile(warnPath, data, 0o644); err != nil {
		return fmt.Errorf("write warnings workbook: %w", err)
	}
	fmt.Fprintf(w, "Wrote %s (%d rows)\n", warnPath, res.WarningData.Len())
	return nil
}

// recordHistory appends a run snapshot; failures only log.
func recordHistory(res *pipeline.RunResult) {
	hs, err := history.NewStore()
	if err != nil {
		log.Debug("run history unavailable", "error", err)
		return
	}
	snap := history.Snapshot{
		Timestamp:     res.StartedAt,
		Folders:       len(res.Folders),
		Success:       res.CountByStatus(aggregate.StatusSuccess),
		Empty:         res.CountByStatus(aggregate.StatusEmpty),
		Errors:        res.CountByStatus(aggregate.StatusPathError),
		FilesFailed:   res.FailedFiles(),
		Rows:          res.Merged.Len(),
		Overdue:       res.Summary.Overdue,
		Near:          res.Summary.Near,
		Warnings:      res.Summary.Total,
		ParseFailures: res.ParseFailures,
	}
	if err := hs.Append(snap); err != nil {
		log.Debug("could not record run history", "error", err)
	}
}
