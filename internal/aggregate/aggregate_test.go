package aggregate

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/mqzhang/stabwatch/internal/model"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
}

// fakeExtract maps file base names to canned outcomes.
func fakeExtract(byName map[string][]model.Table) ExtractFunc {
	return func(path string) ([]model.Table, error) {
		tables, ok := byName[filepath.Base(path)]
		if !ok {
			return nil, errors.New("cannot read document")
		}
		return tables, nil
	}
}

func entryFor(dir string) model.FolderEntry {
	return model.FolderEntry{
		Name: "lab",
		Path: dir,
		Rule: model.Rule{StartColumn: "start", WarningDays: 180, StabilityDays: 365},
	}
}

func TestCollect(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.docx"))
	touch(t, filepath.Join(dir, "b.docx"))
	touch(t, filepath.Join(dir, "corrupt.docx"))
	touch(t, filepath.Join(dir, "empty.docx"))
	// notes.txt has the wrong extension; ~$a.docx is an office lock file;
	// deep.docx checks recursion.
	touch(t, filepath.Join(dir, "notes.txt"))
	touch(t, filepath.Join(dir, "~$a.docx"))
	touch(t, filepath.Join(dir, "nested", "deep.docx"))

	tableA := []model.Table{{Header: []string{"start"}, Rows: [][]string{{"2024-01-01"}}}}
	tableB := []model.Table{{Header: []string{"start", "batch"}, Rows: [][]string{{"2024-02-01", "B7"}}}}
	tableDeep := []model.Table{{Header: []string{"start"}, Rows: [][]string{{"2024-03-01"}}}}

	// corrupt.docx is absent from the map, so extraction errors for it.
	extract := fakeExtract(map[string][]model.Table{
		"a.docx":     tableA,
		"b.docx":     tableB,
		"deep.docx":  tableDeep,
		"empty.docx": {},
	})

	report := Collect(entryFor(dir), extract)

	if report.Status != StatusSuccess {
		t.Fatalf("status = %s, want %s", report.Status, StatusSuccess)
	}
	if report.Processed != 3 {
		t.Errorf("processed = %d, want 3", report.Processed)
	}
	wantFailed := []string{"corrupt.docx", "empty.docx"}
	if !reflect.DeepEqual(report.Failed, wantFailed) {
		t.Errorf("failed = %v, want %v", report.Failed, wantFailed)
	}

	ds := report.Dataset
	if ds.Len() != 3 {
		t.Fatalf("rows = %d, want 3", ds.Len())
	}
	if !ds.HasColumn(model.ColumnSourceFile) || !ds.HasColumn(model.ColumnSourceFolder) {
		t.Fatal("source columns missing")
	}
	if !ds.HasColumn("batch") {
		t.Error("column union should carry b.docx's extra column")
	}
	for i, row := range ds.Rows {
		if row[model.ColumnSourceFolder] != "lab" {
			t.Errorf("row %d: source_folder = %q", i, row[model.ColumnSourceFolder])
		}
		if row[model.ColumnSourceFile] == "" {
			t.Errorf("row %d: source_file empty", i)
		}
	}
}

func TestCollectMissingPath(t *testing.T) {
	report := Collect(entryFor(filepath.Join(t.TempDir(), "nope")), fakeExtract(nil))
	if report.Status != StatusPathError {
		t.Errorf("status = %s, want %s", report.Status, StatusPathError)
	}
	if report.Err == nil {
		t.Error("expected error to be recorded")
	}
}

func TestCollectEmptyFolder(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "readme.txt"))
	report := Collect(entryFor(dir), fakeExtract(nil))
	if report.Status != StatusEmpty {
		t.Errorf("status = %s, want %s", report.Status, StatusEmpty)
	}
}

func TestCollectAllFilesFail(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "bad.docx"))
	report := Collect(entryFor(dir), fakeExtract(nil))
	if report.Status != StatusNoData {
		t.Errorf("status = %s, want %s", report.Status, StatusNoData)
	}
	if len(report.Failed) != 1 {
		t.Errorf("failed = %v", report.Failed)
	}
}
