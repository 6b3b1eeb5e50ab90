// Package report renders check reports and dependency listings.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"go.trai.ch/envspec/internal/core/domain"
	"go.trai.ch/envspec/internal/core/ports"
	"go.trai.ch/envspec/internal/ui/output"
	"go.trai.ch/envspec/internal/ui/style"
)

var _ ports.Renderer = (*TextRenderer)(nil)

const columnGap = "  "

// TextRenderer writes human-readable output, one finding per line in the
// "path:line: severity rule: message" form editors understand.
type TextRenderer struct {
	profile func(io.Writer) termenv.Profile
}

// NewTextRenderer creates a text renderer that colors only terminal output and honours NO_COLOR.
func NewTextRenderer() *TextRenderer {
	return &TextRenderer{profile: output.ProfileFor}
}

// Render writes the findings followed by a summary line.
func (r *TextRenderer) Render(w io.Writer, report *domain.Report) error {
	out := output.NewWithProfile(w, r.profile(w))
	var b strings.Builder

	for _, f := range report.Findings {
		loc := report.Path
		if f.Line > 0 {
			loc = fmt.Sprintf("%s:%d", report.Path, f.Line)
		}
		sev := f.Severity.String()
		fmt.Fprintf(&b, "%s: %s %s: %s\n",
			loc,
			paint(out, sev, style.SeverityColor(sev)),
			paint(out, string(f.Rule), style.Slate),
			f.Message,
		)
	}
	b.WriteString(summaryLine(out, report))
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func summaryLine(out *termenv.Output, report *domain.Report) string {
	s := report.Summary()
	deps := plural(s.Dependencies, "dependency", "dependencies")

	if len(report.Findings) == 0 {
		msg := fmt.Sprintf("%s %s: %s, no problems", style.Check, report.Path, deps)
		return paint(out, msg, style.Green)
	}

	worst := style.SeverityInfo
	switch {
	case s.Errors > 0:
		worst = style.SeverityError
	case s.Warnings > 0:
		worst = style.SeverityWarning
	}
	msg := fmt.Sprintf("%s %s: %s, %s, %s in %s",
		style.SeverityIcon(worst),
		report.Path,
		plural(s.Errors, "error", "errors"),
		plural(s.Warnings, "warning", "warnings"),
		plural(s.Infos, "info", "infos"),
		deps,
	)
	return paint(out, msg, style.SeverityColor(worst))
}

// RenderDependencies writes an aligned table of name, constraint and range.
func (r *TextRenderer) RenderDependencies(w io.Writer, deps []domain.Dependency) error {
	out := output.NewWithProfile(w, r.profile(w))

	rows := make([][]string, 0, len(deps))
	for _, dep := range deps {
		rows = append(rows, dependencyRow(dep))
	}

	widths := make([]int, 3)
	for _, row := range rows {
		for i := range widths {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}

	var b strings.Builder
	for i, row := range rows {
		name := pad(row[0], widths[0])
		if deps[i].Source == domain.SourcePip || deps[i].Passthrough {
			name = paint(out, name, style.Blue)
		} else {
			name = paint(out, name, style.Iris)
		}
		line := name + columnGap + pad(row[1], widths[1]) + columnGap + pad(row[2], widths[2])
		if row[3] != "" {
			line += columnGap + paint(out, row[3], style.Slate)
		}
		b.WriteString(strings.TrimRight(line, " ") + "\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// dependencyRow returns name, constraint, range and a trailing note.
func dependencyRow(dep domain.Dependency) []string {
	name := dep.DisplayName
	switch {
	case dep.SpecErr != nil:
		return []string{dep.Raw, "", "invalid", ""}
	case dep.Passthrough && name == "":
		name = dep.Raw
	}

	constraint := dep.Constraint
	if constraint == "" {
		constraint = "*"
	}
	rng := dep.Versions.String()
	switch {
	case dep.Passthrough:
		constraint, rng = "-", "-"
	case dep.ConstraintErr != nil:
		rng = "invalid"
	}

	var notes []string
	if dep.Source == domain.SourcePip {
		notes = append(notes, "(pip)")
	}
	if dep.Channel != "" {
		notes = append(notes, "channel="+dep.Channel)
	}
	if dep.Build != "" {
		notes = append(notes, "build="+dep.Build)
	}
	if dep.Comment != "" {
		notes = append(notes, "# "+dep.Comment)
	}
	return []string{name, constraint, rng, strings.Join(notes, " ")}
}

func pad(s string, width int) string {
	if n := width - lipgloss.Width(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}

func paint(out *termenv.Output, s string, color lipgloss.Color) string {
	return out.String(s).Foreground(termenv.RGBColor(string(color))).String()
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}
