// Package aggregate walks configured folders, extracts document tables and
// concatenates them into per-folder datasets. Failures are confined to the
// narrowest scope: a bad file is recorded and skipped, a bad folder is
// reported and the next folder still runs.
package aggregate

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/mqzhang/stabwatch/internal/log"
	"github.com/mqzhang/stabwatch/internal/model"
)

// ExtractFunc extracts the tables of one document file. Implemented by
// the docx package; tests substitute their own.
type ExtractFunc func(path string) ([]model.Table, error)

// FolderStatus classifies the outcome of collecting one folder.
type FolderStatus string

const (
	// StatusSuccess means at least one file yielded tables.
	StatusSuccess FolderStatus = "success"
	// StatusEmpty means the folder exists but holds no document files.
	StatusEmpty FolderStatus = "empty"
	// StatusNoData means document files were found but none yielded tables.
	StatusNoData FolderStatus = "no_data"
	// StatusPathError means the configured path does not exist.
	StatusPathError FolderStatus = "path_error"
)

// FolderReport is the per-folder result: the concatenated dataset plus the
// status record the run summary is built from.
type FolderReport struct {
	Name      string
	Path      string
	Rule      model.Rule
	Status    FolderStatus
	Dataset   *model.Dataset
	Processed int      // files that yielded at least one table
	Failed    []string // files skipped (extraction error or no tables)
	Err       error    // set for StatusPathError
}

// Collect gathers every document table under the entry's path into one
// dataset, injecting the source_file and source_folder columns. Row order
// is file enumeration order, then in-file table order, then row order.
func Collect(entry model.FolderEntry, extract ExtractFunc) FolderReport {
	report := FolderReport{
		Name: entry.Name,
		Path: entry.Path,
		Rule: entry.Rule,
	}

	if _, err := os.Stat(entry.Path); err != nil {
		report.Status = StatusPathError
		report.Err = fmt.Errorf("folder path does not exist: %s", entry.Path)
		return report
	}

	files, err := documentFiles(entry.Path)
	if err != nil {
		report.Status = StatusPathError
		report.Err = fmt.Errorf("scan folder %s: %w", entry.Path, err)
		return report
	}
	if len(files) == 0 {
		report.Status = StatusEmpty
		return report
	}

	ds := model.NewDataset()
	for _, file := range files {
		base := filepath.Base(file)
		tables, err := extract(file)
		if err != nil {
			log.Debug("file extraction failed", "folder", entry.Name, "file", base, "error", err)
			report.Failed = append(report.Failed, base)
			continue
		}
		if len(tables) == 0 {
			log.Debug("no tables in file", "folder", entry.Name, "file", base)
			report.Failed = append(report.Failed, base)
			continue
		}

		fileDS := model.NewDataset()
		for _, t := range tables {
			fileDS.AppendTable(t)
		}
		fileDS.SetAll(model.ColumnSourceFile, base)
		ds.Merge(fileDS)
		report.Processed++
	}

	if ds.Empty() {
		report.Status = StatusNoData
		return report
	}

	ds.SetAll(model.ColumnSourceFolder, entry.Name)
	report.Status = StatusSuccess
	report.Dataset = ds
	log.Info("folder collected", "folder", entry.Name,
		"files", report.Processed, "failed", len(report.Failed), "rows", ds.Len())
	return report
}

// documentFiles enumerates Word documents under root, recursively. Office
// lock files (~$ prefix) are ignored. filepath.WalkDir is lexical, so the
// order is deterministic on a given filesystem.
func documentFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		name := d.Name()
		if strings.HasPrefix(name, "~$") {
			return nil
		}
		if strings.EqualFold(filepath.Ext(name), ".docx") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
