// Package output provides formatted output utilities for the CLI.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Writer handles CLI output formatting.
type Writer struct {
	out   io.Writer
	err   io.Writer
	color bool
	quiet bool
}

// New creates a new Writer with default settings.
func New() *Writer {
	return &Writer{
		out:   os.Stdout,
		err:   os.Stderr,
		color: isTerminal(),
	}
}

// NewWithWriters creates a Writer with custom io.Writers (for testing).
func NewWithWriters(out, err io.Writer, color bool) *Writer {
	return &Writer{
		out:   out,
		err:   err,
		color: color,
	}
}

// SetQuiet enables or disables quiet mode.
func (w *Writer) SetQuiet(quiet bool) {
	w.quiet = quiet
}

// SetColor enables or disables colored output.
func (w *Writer) SetColor(color bool) {
	w.color = color
}

// Color reports whether colored output is enabled.
func (w *Writer) Color() bool {
	return w.color
}

// Stdout returns the writer used for regular output.
func (w *Writer) Stdout() io.Writer {
	return w.out
}

// Stderr returns the writer used for diagnostics.
func (w *Writer) Stderr() io.Writer {
	return w.err
}

// Println writes a line to stdout.
func (w *Writer) Println(format string, args ...interface{}) {
	fmt.Fprintf(w.out, format+"\n", args...)
}

// Errorln writes a line to stderr.
func (w *Writer) Errorln(format string, args ...interface{}) {
	fmt.Fprintf(w.err, format+"\n", args...)
}

// paint applies colors when enabled.
func (w *Writer) paint(colors text.Colors, s string) string {
	if !w.color {
		return s
	}
	return colors.Sprint(s)
}

// Info prints an info message (skipped in quiet mode).
func (w *Writer) Info(format string, args ...interface{}) {
	if w.quiet {
		return
	}
	w.Println(format, args...)
}

// Success prints a success message.
func (w *Writer) Success(format string, args ...interface{}) {
	w.Println("%s", w.paint(text.Colors{text.FgGreen}, fmt.Sprintf(format, args...)))
}

// Warning prints a warning message.
func (w *Writer) Warning(format string, args ...interface{}) {
	w.Errorln("%s", w.paint(text.Colors{text.FgYellow}, "warning: "+fmt.Sprintf(format, args...)))
}

// Failure prints an error line to stdout, interleaved with progress output.
func (w *Writer) Failure(format string, args ...interface{}) {
	w.Println("%s", w.paint(text.Colors{text.FgRed}, fmt.Sprintf(format, args...)))
}

// Detail prints an indented, dimmed detail line (skipped in quiet mode).
func (w *Writer) Detail(format string, args ...interface{}) {
	if w.quiet {
		return
	}
	w.Println("  %s", w.paint(text.Colors{text.Faint}, fmt.Sprintf(format, args...)))
}

// Section prints a section header.
func (w *Writer) Section(title string) {
	if w.quiet {
		return
	}
	title = cases.Title(language.English).String(title)
	w.Println("")
	w.Println("%s", w.paint(text.Colors{text.Bold}, "=== "+title+" ==="))
}

// SummaryItem prints a labeled summary item with value.
func (w *Writer) SummaryItem(label, value string) {
	if w.quiet {
		return
	}
	w.Println("%s %s", w.paint(text.Colors{text.Faint}, fmt.Sprintf("%-22s:", label)), value)
}

// Table renders a table with a header row. Columns listed in rightAligned
// (by index) are right-aligned.
func (w *Writer) Table(headers []string, rows [][]string, rightAligned ...int) {
	t := table.NewWriter()
	t.SetOutputMirror(w.out)

	header := make(table.Row, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	t.AppendHeader(header)

	var configs []table.ColumnConfig
	for _, idx := range rightAligned {
		configs = append(configs, table.ColumnConfig{Number: idx + 1, Align: text.AlignRight, AlignHeader: text.AlignRight})
	}
	t.SetColumnConfigs(configs)

	for _, row := range rows {
		r := make(table.Row, len(row))
		for i, cell := range row {
			r[i] = cell
		}
		t.AppendRow(r)
	}

	style := table.StyleLight
	style.Format.Header = text.FormatDefault
	if w.color {
		style.Color.Header = text.Colors{text.Bold}
	}
	t.SetStyle(style)
	t.Render()
}

// ErrorPrefix prints an error message with the regsuite prefix to stderr.
func (w *Writer) ErrorPrefix(format string, args ...interface{}) {
	w.Errorln("%s %s", w.paint(text.Colors{text.FgRed}, "regsuite:"), fmt.Sprintf(format, args...))
}

// FinalSuccess prints a final success message.
func (w *Writer) FinalSuccess(format string, args ...interface{}) {
	w.Println("")
	w.Println("%s", w.paint(text.Colors{text.FgGreen, text.Bold}, fmt.Sprintf(format, args...)))
}

// FinalFailure prints a final failure message.
func (w *Writer) FinalFailure(format string, args ...interface{}) {
	w.Println("")
	w.Println("%s", w.paint(text.Colors{text.FgRed, text.Bold}, fmt.Sprintf(format, args...)))
}

// DryRunStart prints the dry run header.
func (w *Writer) DryRunStart() {
	w.Println("")
	w.Println("%s", w.paint(text.Colors{text.Bold, text.FgYellow}, "=== DRY RUN ==="))
	w.Println("")
}

// DryRunEnd prints the dry run footer.
func (w *Writer) DryRunEnd() {
	w.Println("")
	w.Println("%s", w.paint(text.Colors{text.Bold, text.FgYellow}, "=== END DRY RUN ==="))
}

// Hint prints a hint message for the user.
func (w *Writer) Hint(format string, args ...interface{}) {
	w.Println("%s", w.paint(text.Colors{text.Faint}, fmt.Sprintf(format, args...)))
}

// isTerminal returns true if stdout is a terminal.
func isTerminal() bool {
	if fi, _ := os.Stdout.Stat(); fi != nil {
		return (fi.Mode() & os.ModeCharDevice) != 0
	}
	return false
}
