package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/fumiya-kume/ccrefactor/pkg/compare"
)

// Theme defines colors and styles for reports and the viewer
type Theme struct {
	Name string

	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Background lipgloss.Color
	Surface    lipgloss.Color

	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Info    lipgloss.Color

	Text      lipgloss.Color
	TextMuted lipgloss.Color

	Border lipgloss.Color

	Styles ThemeStyles
}

// ThemeStyles contains pre-configured lipgloss styles
type ThemeStyles struct {
	Title   lipgloss.Style
	Heading lipgloss.Style
	Footer  lipgloss.Style
	Panel   lipgloss.Style

	Added    lipgloss.Style
	Removed  lipgloss.Style
	Modified lipgloss.Style

	StatusInfo    lipgloss.Style
	StatusSuccess lipgloss.Style
	StatusWarning lipgloss.Style
	StatusError   lipgloss.Style

	Bold  lipgloss.Style
	Muted lipgloss.Style
	Code  lipgloss.Style
}

// NewDarkTheme creates a dark theme
func NewDarkTheme() Theme {
	theme := Theme{
		Name:       "dark",
		Primary:    lipgloss.Color("#7c3aed"), // Purple
		Accent:     lipgloss.Color("#f59e0b"), // Amber
		Background: lipgloss.Color("#1f2937"), // Dark gray
		Surface:    lipgloss.Color("#374151"), // Medium gray

		Success: lipgloss.Color("#10b981"), // Green
		Warning: lipgloss.Color("#f59e0b"), // Amber
		Error:   lipgloss.Color("#ef4444"), // Red
		Info:    lipgloss.Color("#3b82f6"), // Blue

		Text:      lipgloss.Color("#f9fafb"), // Light gray
		TextMuted: lipgloss.Color("#9ca3af"), // Muted gray

		Border: lipgloss.Color("#4b5563"), // Gray
	}

	theme.Styles = createThemeStyles(theme)
	return theme
}

// NewLightTheme creates a light theme
func NewLightTheme() Theme {
	theme := Theme{
		Name:       "light",
		Primary:    lipgloss.Color("#5b21b6"), // Purple
		Accent:     lipgloss.Color("#d97706"), // Amber
		Background: lipgloss.Color("#ffffff"), // White
		Surface:    lipgloss.Color("#f9fafb"), // Light gray

		Success: lipgloss.Color("#059669"), // Green
		Warning: lipgloss.Color("#d97706"), // Amber
		Error:   lipgloss.Color("#dc2626"), // Red
		Info:    lipgloss.Color("#2563eb"), // Blue

		Text:      lipgloss.Color("#111827"), // Dark
		TextMuted: lipgloss.Color("#6b7280"), // Muted gray

		Border: lipgloss.Color("#d1d5db"), // Light gray
	}

	theme.Styles = createThemeStyles(theme)
	return theme
}

// NewPlainTheme creates a theme without colors, for NO_COLOR terminals and pipes
func NewPlainTheme() Theme {
	plain := lipgloss.NewStyle()
	return Theme{
		Name: "plain",
		Styles: ThemeStyles{
			Title:         plain,
			Heading:       plain,
			Footer:        plain,
			Panel:         plain,
			Added:         plain,
			Removed:       plain,
			Modified:      plain,
			StatusInfo:    plain,
			StatusSuccess: plain,
			StatusWarning: plain,
			StatusError:   plain,
			Bold:          plain,
			Muted:         plain,
			Code:          plain,
		},
	}
}

// ThemeByName resolves a configured theme. "auto" follows the terminal background.
func ThemeByName(name string, noColor bool) Theme {
	if noColor {
		return NewPlainTheme()
	}

	switch strings.ToLower(name) {
	case "light":
		return NewLightTheme()
	case "auto":
		if lipgloss.HasDarkBackground() {
			return NewDarkTheme()
		}
		return NewLightTheme()
	default:
		return NewDarkTheme()
	}
}

// createThemeStyles creates all the lipgloss styles for a theme
func createThemeStyles(theme Theme) ThemeStyles {
	return ThemeStyles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Primary).
			Margin(0, 0, 1, 0),

		Heading: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Accent),

		Footer: lipgloss.NewStyle().
			Foreground(theme.TextMuted),

		Panel: lipgloss.NewStyle().
			Foreground(theme.Text).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border),

		Added: lipgloss.NewStyle().
			Foreground(theme.Success),

		Removed: lipgloss.NewStyle().
			Foreground(theme.Error),

		Modified: lipgloss.NewStyle().
			Foreground(theme.Warning),

		StatusInfo: lipgloss.NewStyle().
			Foreground(theme.Info).
			Bold(true),

		StatusSuccess: lipgloss.NewStyle().
			Foreground(theme.Success).
			Bold(true),

		StatusWarning: lipgloss.NewStyle().
			Foreground(theme.Warning).
			Bold(true),

		StatusError: lipgloss.NewStyle().
			Foreground(theme.Error).
			Bold(true),

		Bold: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Text),

		Muted: lipgloss.NewStyle().
			Italic(true).
			Foreground(theme.TextMuted),

		Code: lipgloss.NewStyle().
			Foreground(theme.Accent),
	}
}

// GetStatusStyle returns the appropriate style for a status type
func (t Theme) GetStatusStyle(statusType StatusType) lipgloss.Style {
	switch statusType {
	case StatusSuccess:
		return t.Styles.StatusSuccess
	case StatusWarning:
		return t.Styles.StatusWarning
	case StatusError:
		return t.Styles.StatusError
	default:
		return t.Styles.StatusInfo
	}
}

// ChangeStyle returns the style for a changed line
func (t Theme) ChangeStyle(kind compare.ChangeKind) lipgloss.Style {
	switch kind {
	case compare.ChangeAdded:
		return t.Styles.Added
	case compare.ChangeRemoved:
		return t.Styles.Removed
	default:
		return t.Styles.Modified
	}
}

// LevelStyle returns the status style matching a significance or impact level
func (t Theme) LevelStyle(level compare.Level) lipgloss.Style {
	return t.GetStatusStyle(LevelStatus(level))
}

// LevelStatus maps a level onto a status
func LevelStatus(level compare.Level) StatusType {
	switch level {
	case compare.High:
		return StatusError
	case compare.Medium:
		return StatusWarning
	default:
		return StatusSuccess
	}
}

// ChangeMarker returns the diff-style marker for a changed line
func ChangeMarker(kind compare.ChangeKind) string {
	switch kind {
	case compare.ChangeAdded:
		return "+"
	case compare.ChangeRemoved:
		return "-"
	default:
		return "~"
	}
}
