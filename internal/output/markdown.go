package output

import (
	"fmt"
	"io"

	"github.com/mqzhang/stabwatch/internal/aggregate"
	"github.com/mqzhang/stabwatch/internal/model"
	"github.com/mqzhang/stabwatch/internal/pipeline"
	"github.com/mqzhang/stabwatch/internal/warn"
)

// MarkdownFormatter formats a run result as Markdown
type MarkdownFormatter struct{}

// Format outputs the run result as a Markdown report
func (f *MarkdownFormatter) Format(res *pipeline.RunResult, w io.Writer) error {
	fmt.Fprintln(w, "# Stability Warning Report")
	fmt.Fprintf(w, "\n*Generated: %s*\n\n", res.StartedAt.Format("2006-01-02 15:04"))

	fmt.Fprintln(w, "## Processing status")
	fmt.Fprintln(w)
	for _, fr := range res.Folders {
		switch fr.Status {
		case aggregate.StatusSuccess:
			fmt.Fprintf(w, "- **%s**: processed %d file(s), skipped %d\n", fr.Name, fr.Processed, len(fr.Failed))
		case aggregate.StatusEmpty:
			fmt.Fprintf(w, "- **%s**: no Word documents found\n", fr.Name)
		case aggregate.StatusNoData:
			fmt.Fprintf(w, "- **%s**: no tables extracted from %d file(s)\n", fr.Name, len(fr.Failed))
		case aggregate.StatusPathError:
			fmt.Fprintf(w, "- **%s**: %v\n", fr.Name, fr.Err)
		}
	}
	if len(res.Folders) == 0 {
		fmt.Fprintln(w, "- no folders configured")
	}

	fmt.Fprintf(w, "\n## Summary\n\n")
	fmt.Fprintf(w, "| Overdue | Near expiry | Total warnings |\n")
	fmt.Fprintf(w, "|---|---|---|\n")
	fmt.Fprintf(w, "| %d | %d | %d |\n", res.Summary.Overdue, res.Summary.Near, res.Summary.Total)

	// Warnings grouped by status, overdue first.
	for _, status := range []model.Status{model.StatusOverdue, model.StatusNear} {
		var group []warn.WarningRow
		for _, wr := range res.Warnings {
			if wr.Status == status {
				group = append(group, wr)
			}
		}
		if len(group) == 0 {
			continue
		}

		fmt.Fprintf(w, "\n## %s %s (%d)\n\n", status.Icon(), status.Display(), len(group))
		for _, wr := range group {
			fmt.Fprintf(w, "- **%s** / %s: elapsed %d day(s), remaining %d day(s)\n",
				wr.Row[model.ColumnSourceFolder],
				wr.Row[model.ColumnSourceFile],
				wr.ElapsedDays,
				wr.RemainingDays)
		}
	}

	if res.ParseFailures > 0 {
		fmt.Fprintf(w, "\n*%d row(s) with unparseable dates were excluded.*\n", res.ParseFailures)
	}
	return nil
}
