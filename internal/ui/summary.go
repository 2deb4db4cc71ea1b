package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"symgraph/internal/encode"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	moduleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	synthStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

// RenderSummary lists every emitted graph with node and edge counts.
func RenderSummary(payloads []encode.GraphPayload) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("symbol graphs"))
	b.WriteString("\n\n")
	for _, p := range payloads {
		label := p.Module
		if p.DeclaringModule != "" && p.DeclaringModule != p.Module {
			label = p.Module + "@" + p.DeclaringModule
		}
		b.WriteString(fmt.Sprintf("  %s  %s\n",
			moduleStyle.Render(fmt.Sprintf("%-24s", label)),
			dimStyle.Render(fmt.Sprintf("%4d symbols %4d relationships",
				len(p.Symbols), len(p.Relationships)))))
	}
	return b.String()
}

// RenderGraph prints one graph's symbols and relationships, truncated to
// the terminal width.
func RenderGraph(p encode.GraphPayload, width int) string {
	if width < 40 {
		width = 40
	}
	var b strings.Builder
	title := p.Module
	if p.DeclaringModule != "" {
		title += " @ " + p.DeclaringModule
	}
	b.WriteString(headerStyle.Render(title))
	b.WriteString("\n\n")

	for _, sym := range p.Symbols {
		b.WriteString("  ")
		b.WriteString(symbolLine(sym, width-2))
		b.WriteString("\n")
	}
	if len(p.Relationships) > 0 {
		b.WriteString("\n")
		b.WriteString(headerStyle.Render("relationships"))
		b.WriteString("\n\n")
		for _, rel := range p.Relationships {
			line := fmt.Sprintf("  %s %s %s", rel.Source, dimStyle.Render(rel.Kind), rel.Target)
			b.WriteString(truncate(line, width))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func symbolLine(sym encode.SymbolRecord, width int) string {
	kind := dimStyle.Render(fmt.Sprintf("%-14s", sym.Kind))
	name := sym.Name
	if name == "" {
		name = sym.ID
	}
	if sym.Synthesized {
		name += synthStyle.Render(" (synthesized)")
	}
	return truncate(fmt.Sprintf("%s %s  %s", kind, name, dimStyle.Render(sym.ID)), width)
}

// truncate shortens s to the given display width, ellipsis included.
func truncate(s string, width int) string {
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}
