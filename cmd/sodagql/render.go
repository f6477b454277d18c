package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"sodagql/internal/diag"
	"sodagql/internal/driver"
	"sodagql/internal/source"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan)

	okSummaryStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	failSummaryStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
)

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return errorColor
	case diag.SevWarning:
		return warningColor
	default:
		return infoColor
	}
}

// renderDiagnostic prints one span diagnostic as
// <path>:<line>:<col>: <SEVERITY> <CODE>: <message>
// followed by the source line and a ^~~~ underline covering the span.
func renderDiagnostic(w io.Writer, fs *source.FileSet, d diag.Diagnostic) {
	label := severityColor(d.Severity).Sprintf("%s %s", d.Severity, d.Code.ID())
	if !d.Span.Valid() {
		fmt.Fprintf(w, "%s: %s\n", label, d.Message)
		return
	}

	f := fs.Get(d.Span.File)
	start, end := fs.Resolve(d.Span)
	fmt.Fprintf(w, "%s:%d:%d: %s: %s\n", f.Path, start.Line, start.Col, label, d.Message)

	line := f.GetLine(start.Line)
	if line == "" {
		return
	}
	fmt.Fprintf(w, "  %s\n", line)

	// columns are byte offsets; pad by display width so wide runes and
	// tabs keep the caret under the right character
	prefix := line[:min(int(start.Col-1), len(line))]
	span := spanOnLine(line, start, end)
	pad := strings.Repeat(" ", runewidth.StringWidth(prefix))
	underline := "^"
	if width := runewidth.StringWidth(span); width > 1 {
		underline += strings.Repeat("~", width-1)
	}
	fmt.Fprintf(w, "  %s%s\n", pad, severityColor(d.Severity).Sprint(underline))
}

// spanOnLine clips the diagnostic span to its first line.
func spanOnLine(line string, start, end source.LineCol) string {
	from := min(int(start.Col-1), len(line))
	to := len(line)
	if end.Line == start.Line {
		to = min(int(end.Col-1), len(line))
	}
	if to <= from {
		to = min(from+1, len(line))
	}
	return line[from:to]
}

// renderFileResults prints per-file fatal errors and wire diagnostics.
func renderFileResults(w io.Writer, results []driver.FileResult) {
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(w, "%s: %s\n", r.Path, errorColor.Sprint(r.Err.Error()))
			continue
		}
		if r.Result == nil {
			continue
		}
		for _, e := range r.Result.Errors {
			fmt.Fprintf(w, "%s: %s\n", r.Path, errorColor.Sprint(e.Format()))
		}
	}
}

func renderSummary(w io.Writer, results []driver.FileResult, colorize bool) {
	var transformed, cached, failed int
	for _, r := range results {
		if r.Err != nil {
			failed++
			continue
		}
		if r.Result != nil {
			if len(r.Result.Errors) > 0 {
				failed++
			}
			if r.Result.Transformed {
				transformed++
			}
		}
		if r.Cached {
			cached++
		}
	}

	line := fmt.Sprintf("%d files, %d transformed, %d cached, %d failed",
		len(results), transformed, cached, failed)
	if !colorize {
		fmt.Fprintln(w, line)
		return
	}
	style := okSummaryStyle
	if failed > 0 {
		style = failSummaryStyle
	}
	fmt.Fprintln(w, style.Render(line))
}
