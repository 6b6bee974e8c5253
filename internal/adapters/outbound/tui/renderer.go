package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/docscan/docscan/internal/domain"
)

// ── warm palette ──
var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
	info    = lipgloss.Color("#8B949E") // soft blue-gray
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	dimStyle           = lipgloss.NewStyle().Foreground(dim)
	faintStyle         = lipgloss.NewStyle().Foreground(faint)
	warnStyle          = lipgloss.NewStyle().Foreground(warning)
	fileStyle          = lipgloss.NewStyle().Foreground(fg)
	titleStyle         = lipgloss.NewStyle().Bold(true).Foreground(fg)
	sectionHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	tagStyle           = lipgloss.NewStyle().Foreground(info)
	valueStyle         = lipgloss.NewStyle().Bold(true).Foreground(fg)
	separatorLine      = faintStyle.Render(strings.Repeat("─", 64))
)

// RenderExtraction formats the aggregate structure of a run, followed by any
// skipped files.
func RenderExtraction(ext *domain.Extraction) string {
	var b strings.Builder
	b.WriteString(RenderStructure(&ext.Structure))

	if len(ext.Skipped) > 0 {
		fmt.Fprintf(&b, "  %s %s\n",
			sectionHeaderStyle.Render("Skipped"),
			dimStyle.Render(fmt.Sprintf("(%d)", len(ext.Skipped))),
		)
		for _, s := range ext.Skipped {
			fmt.Fprintf(&b, "    %s %s\n", warnStyle.Render("●"), fileStyle.Render(s.RelativePath))
			fmt.Fprintf(&b, "      %s\n", dimStyle.Render(s.Reason))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// RenderStructure formats an aggregate structure for the terminal.
func RenderStructure(s *domain.AggregateProjectStructure) string {
	var b strings.Builder

	// ── Header ──
	title := headerStyle.Render("docscan")
	subtitle := dimStyle.Render("Project Structure")
	lang := valueStyle.Render(string(s.Language))
	if hash := shortHash(s.CommitHash); hash != "" {
		lang += "  " + faintStyle.Render(hash)
	}
	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + lang))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "  %s\n\n", dimStyle.Render(s.RootPath))

	// ── Totals ──
	b.WriteString("  " + titleStyle.Render("Totals") + "\n")
	if s.SolutionFiles > 0 || s.ProjectFiles > 0 {
		renderCount(&b, "solution files", s.SolutionFiles)
		renderCount(&b, "project files", s.ProjectFiles)
	}
	renderCount(&b, "source files", s.TotalFiles)
	renderCount(&b, "types", s.TotalTypes)
	renderCount(&b, "methods", s.TotalMethods)
	b.WriteString("\n")

	renderShare(&b, "files with types", s.FilesWithTypes, s.TotalFiles)
	renderShare(&b, "files with interfaces", s.FilesWithInterfaces, s.TotalFiles)
	renderShare(&b, "files with enums", s.FilesWithEnums, s.TotalFiles)

	b.WriteString("\n")
	b.WriteString("  " + separatorLine)
	b.WriteString("\n\n")

	// ── Files ──
	if len(s.Files) == 0 {
		b.WriteString("  " + dimStyle.Render("No source files found.") + "\n\n")
		return b.String()
	}

	fmt.Fprintf(&b, "  %s %s\n",
		sectionHeaderStyle.Render("Files"),
		dimStyle.Render(fmt.Sprintf("(%d of %d)", len(s.Files), s.TotalFiles)),
	)
	for _, f := range s.Files {
		renderFileSummary(&b, f)
	}
	if s.Truncated {
		fmt.Fprintf(&b, "    %s\n", faintStyle.Render(fmt.Sprintf("… and %d more", s.TotalFiles-len(s.Files))))
	}
	b.WriteString("\n")

	// ── Vocabulary ──
	if len(s.Vocabulary) > 0 {
		b.WriteString("  " + sectionHeaderStyle.Render("Vocabulary") + "\n")
		words := make([]string, 0, len(s.Vocabulary))
		for _, t := range s.Vocabulary {
			words = append(words, fmt.Sprintf("%s %s", t.Word, faintStyle.Render(fmt.Sprintf("%d", t.Count))))
		}
		b.WriteString("    " + strings.Join(words, dimStyle.Render(" · ")) + "\n\n")
	}

	return b.String()
}

// RenderRecord formats the full structural record of one file.
func RenderRecord(rec domain.StructuralRecord) string {
	var b strings.Builder

	b.WriteString("  " + titleStyle.Render(rec.File.RelativePath))
	if rec.HasNamespace() {
		b.WriteString("  " + dimStyle.Render(rec.Namespace))
	}
	if tags := markerTags(rec.Markers); tags != "" {
		b.WriteString("  " + tags)
	}
	b.WriteString("\n")

	for _, t := range rec.Types {
		fmt.Fprintf(&b, "    %s %s %s\n",
			tagStyle.Render(padRight(t.Kind, 13)),
			valueStyle.Render(t.Name),
			faintStyle.Render(fmt.Sprintf(":%d", t.Line)),
		)
		for _, m := range t.Methods {
			fmt.Fprintf(&b, "      %s %s\n", dimStyle.Render("·"), formatMethod(m))
		}
	}
	for _, i := range rec.Interfaces {
		fmt.Fprintf(&b, "    %s %s\n", tagStyle.Render(padRight("interface", 13)), valueStyle.Render(i.Name))
	}
	for _, e := range rec.Enums {
		fmt.Fprintf(&b, "    %s %s\n", tagStyle.Render(padRight("enum", 13)), valueStyle.Render(e.Name))
	}
	for _, fn := range rec.Functions {
		fmt.Fprintf(&b, "    %s %s\n", tagStyle.Render(padRight("function", 13)), valueStyle.Render(fn))
	}

	return b.String()
}

func renderCount(b *strings.Builder, label string, n int) {
	fmt.Fprintf(b, "    %s %s\n", dimStyle.Render(padRight(label, 24)), valueStyle.Render(fmt.Sprintf("%d", n)))
}

func renderShare(b *strings.Builder, label string, n, total int) {
	pct := 0
	if total > 0 {
		pct = n * 100 / total
	}
	fmt.Fprintf(b, "    %s %s  %s\n",
		dimStyle.Render(padRight(label, 24)),
		coloredBar(pct, 20),
		valueStyle.Render(fmt.Sprintf("%d/%d", n, total)),
	)
}

func renderFileSummary(b *strings.Builder, f domain.FileSummary) {
	var parts []string
	if f.Types > 0 {
		parts = append(parts, plural(f.Types, "type"))
	}
	if f.Interfaces > 0 {
		parts = append(parts, plural(f.Interfaces, "interface"))
	}
	if f.Enums > 0 {
		parts = append(parts, plural(f.Enums, "enum"))
	}
	if f.Methods > 0 {
		parts = append(parts, plural(f.Methods, "method"))
	}

	line := fmt.Sprintf("    %s %s", dimStyle.Render("●"), fileStyle.Render(f.RelativePath))
	if f.Namespace != "" {
		line += "  " + faintStyle.Render(f.Namespace)
	}
	if len(parts) > 0 {
		line += "  " + dimStyle.Render(strings.Join(parts, ", "))
	}
	b.WriteString(line + "\n")
}

func formatMethod(m domain.MethodSignature) string {
	params := make([]string, 0, len(m.Parameters))
	for _, p := range m.Parameters {
		params = append(params, p.Type+" "+p.Name)
	}
	sig := m.Name + "(" + strings.Join(params, ", ") + ")"
	if m.ReturnType != "" {
		return dimStyle.Render(m.ReturnType) + " " + sig
	}
	return sig
}

func markerTags(m domain.Markers) string {
	var tags []string
	for _, t := range []struct {
		on   bool
		name string
	}{
		{m.Component, "component"},
		{m.Injectable, "injectable"},
		{m.NgModule, "ngmodule"},
		{m.Template, "template"},
		{m.Scripts, "scripts"},
		{m.Styles, "styles"},
		{m.MediaQueries, "media"},
	} {
		if t.on {
			tags = append(tags, "@"+t.name)
		}
	}
	return tagStyle.Render(strings.Join(tags, " "))
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

func coloredBar(pct, width int) string {
	filled := max(0, min(pct*width/100, width))
	empty := width - filled

	color := shareColor(pct)
	filledStr := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled))
	emptyStr := lipgloss.NewStyle().Foreground(faint).Render(strings.Repeat("░", empty))
	return filledStr + emptyStr
}

func shareColor(pct int) lipgloss.Color {
	switch {
	case pct >= 60:
		return success
	case pct >= 30:
		return warning
	case pct > 0:
		return danger
	default:
		return dim
	}
}

func shortHash(hash string) string {
	if len(hash) > 7 {
		return hash[:7]
	}
	return hash
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
