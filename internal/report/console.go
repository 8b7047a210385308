package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
)

var (
	consoleTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	consoleOKStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	consoleSkipStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

// WriteSummary prints a console overview of a generated report.
func WriteSummary(w io.Writer, rep *Report) {
	_, _ = fmt.Fprintln(w, consoleTitleStyle.Render(ReportTitle))
	_, _ = fmt.Fprintln(w)

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Section", "Status", "Highlights"})

	for _, sec := range rep.Sections {
		status := consoleOKStyle.Render("ok")
		highlight := ""
		if !sec.Available {
			status = consoleSkipStyle.Render("skipped")
			highlight = oneLine(sec.Missing, 60)
		} else if len(sec.Findings) > 0 {
			highlight = oneLine(sec.Findings[0], 60)
		}
		t.AppendRow(table.Row{sec.Title, status, highlight})
	}
	t.Render()

	_, _ = fmt.Fprintf(w, "\n%d figures in %s\n", len(rep.Figures), rep.FigureDir)
	_, _ = fmt.Fprintf(w, "HTML report: %s\n", rep.HTMLPath)
	_, _ = fmt.Fprintf(w, "PDF report:  %s\n", rep.PDFPath)
}

func oneLine(s string, maxLen int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
