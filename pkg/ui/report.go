package ui

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/fumiya-kume/ccrefactor/pkg/compare"
	"github.com/fumiya-kume/ccrefactor/pkg/refactor"
)

var titleCaser = cases.Title(language.English)

// Reporter renders results as styled terminal text
type Reporter struct {
	theme    Theme
	maxWidth int
	// minLevel hides change records below it
	minLevel compare.Level
}

// NewReporter creates a reporter. A non-positive maxWidth disables truncation.
func NewReporter(theme Theme, maxWidth int) *Reporter {
	return &Reporter{theme: theme, maxWidth: maxWidth}
}

// WithMinSignificance returns a copy that only lists changes at or above level
func (r *Reporter) WithMinSignificance(level compare.Level) *Reporter {
	c := *r
	c.minLevel = level
	return &c
}

// RenderComparison renders a full comparison report
func (r *Reporter) RenderComparison(title string, result *compare.ComparisonResult) string {
	var b strings.Builder
	s := r.theme.Styles

	b.WriteString(s.Title.Render(title))
	b.WriteString("\n")

	b.WriteString(r.heading("metrics"))
	m := result.Metrics
	b.WriteString(r.field("total changes", fmt.Sprintf("%d", m.TotalChanges)))
	b.WriteString(r.field("significant changes", fmt.Sprintf("%d", m.SignificantChanges)))
	b.WriteString(r.field("complexity score", fmt.Sprintf("%.1f / 10", m.ComplexityScore)))
	b.WriteString(r.field("maintainability impact",
		r.theme.LevelStyle(m.MaintainabilityImpact).Render(titleCaser.String(m.MaintainabilityImpact.String()))))

	b.WriteString("\n")
	b.WriteString(r.heading("changes"))
	shown := 0
	for _, c := range result.Changes {
		if c.Significance < r.minLevel {
			continue
		}
		shown++
		marker := r.theme.ChangeStyle(c.Kind).Render(ChangeMarker(c.Kind))
		level := r.theme.LevelStyle(c.Significance).Render(fmt.Sprintf("%-6s", c.Significance))
		b.WriteString(fmt.Sprintf("  %s %4d %s %s\n", marker, c.LineNumber, level, r.truncate(strings.TrimSpace(c.Content))))
	}
	if shown == 0 {
		b.WriteString(s.Muted.Render("  none"))
		b.WriteString("\n")
	}

	if len(result.Relationships) > 0 {
		b.WriteString("\n")
		b.WriteString(r.heading("relationships"))
		for _, rel := range result.Relationships {
			kind := titleCaser.String(strings.ReplaceAll(string(rel.Kind), "_", " "))
			b.WriteString(fmt.Sprintf("  %s %s -> %s %s\n",
				s.Bold.Render(kind),
				s.Code.Render(rel.OldReference),
				s.Code.Render(rel.NewReference),
				s.Muted.Render(fmt.Sprintf("(%.0f%%)", rel.Confidence*100))))
			if rel.Description != "" {
				b.WriteString("    " + r.truncate(rel.Description) + "\n")
			}
		}
	}

	if len(result.Recommendations) > 0 {
		b.WriteString("\n")
		b.WriteString(r.heading("recommendations"))
		for _, rec := range result.Recommendations {
			b.WriteString("  • " + rec + "\n")
		}
	}

	return b.String()
}

// RenderAnalysis renders the method and logic change lists of an analysis
func (r *Reporter) RenderAnalysis(analysis *compare.ChangeAnalysis) string {
	var b strings.Builder
	s := r.theme.Styles

	b.WriteString(s.Title.Render("Change Analysis"))
	b.WriteString("\n")

	sections := []struct {
		name    string
		records []compare.RelationshipRecord
	}{
		{"method changes", analysis.MethodChanges},
		{"logic changes", analysis.LogicChanges},
	}
	for _, section := range sections {
		if len(section.records) == 0 {
			continue
		}
		b.WriteString(r.heading(section.name))
		for _, rec := range section.records {
			b.WriteString(fmt.Sprintf("  %s -> %s\n", s.Code.Render(rec.OldReference), s.Code.Render(rec.NewReference)))
			b.WriteString("    " + r.truncate(rec.Description) + "\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(analysis.Summary)
	b.WriteString("\n")
	return b.String()
}

// RenderRefactoring renders the files and rule changes of a refactoring run
func (r *Reporter) RenderRefactoring(result *refactor.RefactoringResult) string {
	var b strings.Builder
	s := r.theme.Styles

	title := "Refactoring"
	if result.DryRun {
		title += " (dry run)"
	}
	b.WriteString(s.Title.Render(title))
	b.WriteString("\n")
	b.WriteString(r.field("operation", result.ID))
	if result.BackupPath != "" {
		b.WriteString(r.field("backup", result.BackupPath))
	}

	if len(result.Changes) == 0 {
		b.WriteString(s.StatusSuccess.Render("No changes needed"))
		b.WriteString("\n")
		return b.String()
	}

	byFile := make(map[string][]refactor.RefactoringChange)
	for _, c := range result.Changes {
		byFile[c.File] = append(byFile[c.File], c)
	}

	for _, file := range result.Files {
		b.WriteString("\n")
		b.WriteString(s.Bold.Render(file))
		b.WriteString("\n")
		for _, c := range byFile[file] {
			b.WriteString(fmt.Sprintf("  %s %s %s\n",
				s.StatusInfo.Render(fmt.Sprintf("[%s]", c.Rule)),
				c.Description,
				s.Muted.Render(formatLines(c.LineNumbers))))
		}
	}

	verb := "Rewrote"
	if result.DryRun {
		verb = "Would rewrite"
	}
	b.WriteString("\n")
	b.WriteString(s.StatusSuccess.Render(fmt.Sprintf("%s %d file(s) with %d change(s)", verb, len(result.Files), len(result.Changes))))
	b.WriteString("\n")
	return b.String()
}

func (r *Reporter) heading(name string) string {
	return r.theme.Styles.Heading.Render(titleCaser.String(name)) + "\n"
}

func (r *Reporter) field(name, value string) string {
	return fmt.Sprintf("  %s: %s\n", titleCaser.String(name), value)
}

func (r *Reporter) truncate(text string) string {
	if r.maxWidth <= 0 {
		return text
	}
	return truncateText(text, r.maxWidth)
}

// formatLines renders line numbers compactly, collapsing consecutive runs
func formatLines(lines []int) string {
	if len(lines) == 0 {
		return ""
	}

	var parts []string
	start, prev := lines[0], lines[0]
	flush := func() {
		if start == prev {
			parts = append(parts, fmt.Sprintf("%d", start))
		} else {
			parts = append(parts, fmt.Sprintf("%d-%d", start, prev))
		}
	}
	for _, n := range lines[1:] {
		if n == prev+1 {
			prev = n
			continue
		}
		flush()
		start, prev = n, n
	}
	flush()

	label := "line"
	if len(lines) > 1 {
		label = "lines"
	}
	return fmt.Sprintf("(%s %s)", label, strings.Join(parts, ", "))
}

// truncateText truncates text to fit within a given width
func truncateText(text string, width int) string {
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}

	if width < 3 {
		return string(runes[:width])
	}

	return string(runes[:width-3]) + "..."
}
