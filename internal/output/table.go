package output

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/mqzhang/stabwatch/internal/aggregate"
	"github.com/mqzhang/stabwatch/internal/model"
	"github.com/mqzhang/stabwatch/internal/pipeline"
)

// ansiRegex matches ANSI escape sequences
var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// Summary block styles.
var (
	overdueStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
	nearStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3"))
	totalStyle   = lipgloss.NewStyle().Bold(true)
	headerStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
)

// TableFormatter formats a run result as terminal tables
type TableFormatter struct{}

// stripAnsi removes ANSI escape sequences from a string
func stripAnsi(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

// displayWidth returns the visible width of a string in terminal columns
// accounting for wide characters (CJK, emoji) and ANSI escape sequences
func displayWidth(s string) int {
	return runewidth.StringWidth(stripAnsi(s))
}

// truncateToWidth truncates a string to fit within maxWidth display columns
func truncateToWidth(s string, maxWidth int) string {
	plain := stripAnsi(s)
	if runewidth.StringWidth(plain) <= maxWidth {
		return s
	}

	cutWidth := 0
	for i, r := range plain {
		rw := runewidth.RuneWidth(r)
		if cutWidth+rw > maxWidth-3 { // leave room for "..."
			return plain[:i] + "..."
		}
		cutWidth += rw
	}
	return plain
}

// padRight pads a string with spaces to reach the target visible width
func padRight(s string, targetWidth int) string {
	w := displayWidth(s)
	if w >= targetWidth {
		return s
	}
	return s + strings.Repeat(" ", targetWidth-w)
}

// terminalWidth returns the terminal width of w, or 0 when w is not a
// terminal.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}

// Format renders the folder status section, the warning table and the
// summary counts.
func (f *TableFormatter) Format(res *pipeline.RunResult, w io.Writer) error {
	f.formatFolderStatus(res, w)
	f.formatWarnings(res, w)
	f.formatSummary(res, w)
	return nil
}

func (f *TableFormatter) formatFolderStatus(res *pipeline.RunResult, w io.Writer) {
	fmt.Fprintln(w, headerStyle.Render("Folders"))
	if len(res.Folders) == 0 {
		fmt.Fprintln(w, "  (no folders configured)")
		fmt.Fprintln(w)
		return
	}

	for _, fr := range res.Folders {
		switch fr.Status {
		case aggregate.StatusSuccess:
			line := fmt.Sprintf("  %s %s: processed %d file(s)", color.GreenString("ok"), fr.Name, fr.Processed)
			if len(fr.Failed) > 0 {
				line += color.YellowString(", skipped %d", len(fr.Failed))
			}
			fmt.Fprintln(w, line)
		case aggregate.StatusEmpty:
			fmt.Fprintf(w, "  %s %s: no Word documents found\n", color.YellowString("empty"), fr.Name)
		case aggregate.StatusNoData:
			fmt.Fprintf(w, "  %s %s: %d file(s) found, none yielded tables\n",
				color.YellowString("no data"), fr.Name, len(fr.Failed))
		case aggregate.StatusPathError:
			fmt.Fprintf(w, "  %s %s: %v\n", color.RedString("error"), fr.Name, fr.Err)
		}
		for _, file := range fr.Failed {
			fmt.Fprintf(w, "      skipped: %s\n", file)
		}
	}
	fmt.Fprintln(w)
}

func (f *TableFormatter) formatWarnings(res *pipeline.RunResult, w io.Writer) {
	fmt.Fprintln(w, headerStyle.Render("Warnings"))
	if len(res.Warnings) == 0 {
		fmt.Fprintln(w, "  (none)")
		fmt.Fprintln(w)
		return
	}

	// Column widths; the file column absorbs spare terminal width.
	colStatus := 12
	colFolder := 16
	colFile := 32
	const colDays = 9

	if tw := terminalWidth(w); tw > 0 {
		if spare := tw - (colStatus + colFolder + 2*colDays + 10); spare > colFile {
			colFile = spare
		}
	}

	fmt.Fprintf(w, "  %s  %s  %s  %s  %s\n",
		padRight("Status", colStatus),
		padRight("Folder", colFolder),
		padRight("File", colFile),
		padRight("Elapsed", colDays),
		"Remaining")
	fmt.Fprintln(w, "  "+strings.Repeat("-", colStatus+colFolder+colFile+2*colDays+8))

	for _, wr := range res.Warnings {
		status := wr.Status.Icon() + " " + wr.Status.Display()
		switch wr.Status {
		case model.StatusOverdue:
			status = color.RedString(status)
		case model.StatusNear:
			status = color.YellowString(status)
		}

		folder := truncateToWidth(wr.Row[model.ColumnSourceFolder], colFolder)
		file := truncateToWidth(wr.Row[model.ColumnSourceFile], colFile)

		fmt.Fprintf(w, "  %s  %s  %s  %s  %s\n",
			padRight(status, colStatus),
			padRight(folder, colFolder),
			padRight(file, colFile),
			padRight(strconv.Itoa(wr.ElapsedDays), colDays),
			strconv.Itoa(wr.RemainingDays))
	}
	fmt.Fprintln(w)
}

func (f *TableFormatter) formatSummary(res *pipeline.RunResult, w io.Writer) {
	s := res.Summary
	fmt.Fprintf(w, "%s  %s  %s\n",
		overdueStyle.Render(fmt.Sprintf("Overdue: %d", s.Overdue)),
		nearStyle.Render(fmt.Sprintf("Near expiry: %d", s.Near)),
		totalStyle.Render(fmt.Sprintf("Total warnings: %d", s.Total)))
	if res.ParseFailures > 0 {
		fmt.Fprintf(w, "%d row(s) had unparseable dates and were excluded.\n", res.ParseFailures)
	}
}
