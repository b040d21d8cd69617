package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/mqzhang/stabwatch/internal/aggregate"
	"github.com/mqzhang/stabwatch/internal/model"
	"github.com/mqzhang/stabwatch/internal/pipeline"
	"github.com/mqzhang/stabwatch/internal/report"
	"github.com/mqzhang/stabwatch/internal/warn"
)

func sampleResult() *pipeline.RunResult {
	merged := model.NewDataset()
	merged.AppendTable(model.Table{
		Header: []string{"start", model.ColumnSourceFile, model.ColumnSourceFolder},
		Rows: [][]string{
			{"2023-01-01", "a.docx", "lab"},
			{"2024-05-01", "b.docx", "lab"},
		},
	})

	warnings := []warn.WarningRow{
		{
			Row: model.Row{
				"start":                  "2023-01-01",
				model.ColumnSourceFile:   "a.docx",
				model.ColumnSourceFolder: "lab",
			},
			ElapsedDays:   517,
			RemainingDays: -152,
			Status:        model.StatusOverdue,
		},
	}

	return &pipeline.RunResult{
		StartedAt: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		Folders: []aggregate.FolderReport{
			{Name: "lab", Path: "/data/lab", Status: aggregate.StatusSuccess, Processed: 2, Failed: []string{"bad.docx"}},
			{Name: "void", Path: "/data/void", Status: aggregate.StatusPathError, Err: errors.New("folder path does not exist: /data/void")},
		},
		Merged:        merged,
		Warnings:      warnings,
		WarningData:   report.WarningDataset(merged.Columns, warnings),
		Summary:       report.Summarize(warnings),
		ParseFailures: 1,
	}
}

func TestNewFormatter(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{FormatTable, "*output.TableFormatter"},
		{FormatJSON, "*output.JSONFormatter"},
		{FormatMarkdown, "*output.MarkdownFormatter"},
		{Format("bogus"), "*output.TableFormatter"},
	}
	for _, tt := range tests {
		f := NewFormatter(tt.format)
		if got := typeName(f); got != tt.want {
			t.Errorf("NewFormatter(%q) = %s, want %s", tt.format, got, tt.want)
		}
	}
}

func typeName(v any) string {
	switch v.(type) {
	case *TableFormatter:
		return "*output.TableFormatter"
	case *JSONFormatter:
		return "*output.JSONFormatter"
	case *MarkdownFormatter:
		return "*output.MarkdownFormatter"
	}
	return "unknown"
}

func TestTableFormatter(t *testing.T) {
	var buf bytes.Buffer
	if err := (&TableFormatter{}).Format(sampleResult(), &buf); err != nil {
		t.Fatal(err)
	}
	out := stripAnsi(buf.String())

	for _, want := range []string{
		"Folders",
		"lab: processed 2 file(s)",
		"skipped: bad.docx",
		"folder path does not exist",
		"Overdue",
		"a.docx",
		"517",
		"-152",
		"Overdue: 1",
		"Total warnings: 1",
		"1 row(s) had unparseable dates",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestTableFormatterEmptyRun(t *testing.T) {
	res := &pipeline.RunResult{
		Merged:      model.NewDataset(),
		WarningData: model.NewDataset(),
	}
	var buf bytes.Buffer
	if err := (&TableFormatter{}).Format(res, &buf); err != nil {
		t.Fatal(err)
	}
	out := stripAnsi(buf.String())
	if !strings.Contains(out, "(no folders configured)") {
		t.Errorf("missing empty-state line:\n%s", out)
	}
	if !strings.Contains(out, "(none)") {
		t.Errorf("missing empty warnings line:\n%s", out)
	}
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	if err := (&JSONFormatter{}).Format(sampleResult(), &buf); err != nil {
		t.Fatal(err)
	}

	var doc map[string]any
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}

	summary, ok := doc["summary"].(map[string]any)
	if !ok {
		t.Fatalf("missing summary: %v", doc)
	}
	if summary["overdue"] != float64(1) || summary["total"] != float64(1) {
		t.Errorf("summary = %v", summary)
	}

	folders, ok := doc["folders"].([]any)
	if !ok || len(folders) != 2 {
		t.Fatalf("folders = %v", doc["folders"])
	}
	second := folders[1].(map[string]any)
	if second["status"] != "path_error" || second["error"] == "" {
		t.Errorf("path-error folder = %v", second)
	}

	warnings, ok := doc["warnings"].([]any)
	if !ok || len(warnings) != 1 {
		t.Fatalf("warnings = %v", doc["warnings"])
	}
}

func TestMarkdownFormatter(t *testing.T) {
	var buf bytes.Buffer
	if err := (&MarkdownFormatter{}).Format(sampleResult(), &buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	for _, want := range []string{
		"# Stability Warning Report",
		"| Overdue | Near expiry | Total warnings |",
		"| 1 | 0 | 1 |",
		"## ❌ Overdue (1)",
		"a.docx",
		"1 row(s) with unparseable dates were excluded",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown missing %q:\n%s", want, out)
		}
	}
}

func TestDisplayHelpers(t *testing.T) {
	t.Run("stripAnsi", func(t *testing.T) {
		if got := stripAnsi("\x1b[31mred\x1b[0m"); got != "red" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("displayWidth wide runes", func(t *testing.T) {
		if got := displayWidth("样品"); got != 4 {
			t.Errorf("width = %d, want 4", got)
		}
	})

	t.Run("truncateToWidth", func(t *testing.T) {
		if got := truncateToWidth("short", 10); got != "short" {
			t.Errorf("got %q", got)
		}
		got := truncateToWidth("a very long file name.docx", 10)
		if displayWidth(got) > 10 {
			t.Errorf("truncated width = %d: %q", displayWidth(got), got)
		}
		if !strings.HasSuffix(got, "...") {
			t.Errorf("got %q, want ellipsis suffix", got)
		}
	})

	t.Run("padRight", func(t *testing.T) {
		if got := padRight("ab", 5); got != "ab   " {
			t.Errorf("got %q", got)
		}
		if got := padRight("abcdef", 3); got != "abcdef" {
			t.Errorf("got %q", got)
		}
	})
}
