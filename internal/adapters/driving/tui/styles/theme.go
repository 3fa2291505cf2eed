// Package styles provides colour themes and styling for the TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the colour palette for the chat.
type Theme struct {
	// Accent colours titles and the selected item.
	Accent lipgloss.Color

	// User colours the user's messages.
	User lipgloss.Color

	// Assistant colours answers.
	Assistant lipgloss.Color

	// Text is the default text colour.
	Text lipgloss.Color

	// Muted is for sources, hints and metadata.
	Muted lipgloss.Color

	// Good marks high-confidence answers and successes.
	Good lipgloss.Color

	// Warn marks low-confidence answers.
	Warn lipgloss.Color

	// Bad marks errors.
	Bad lipgloss.Color

	// Border is the border colour.
	Border lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Accent:    lipgloss.Color("#7C3AED"), // Purple
		User:      lipgloss.Color("#06B6D4"), // Cyan
		Assistant: lipgloss.Color("#CBA6F7"), // Lavender
		Text:      lipgloss.Color("#CDD6F4"), // Light gray
		Muted:     lipgloss.Color("#6C7086"), // Medium gray
		Good:      lipgloss.Color("#A6E3A1"), // Green
		Warn:      lipgloss.Color("#F9E2AF"), // Yellow
		Bad:       lipgloss.Color("#F38BA8"), // Red
		Border:    lipgloss.Color("#45475A"), // Border gray
	}
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	theme *Theme

	Title      lipgloss.Style
	Normal     lipgloss.Style
	Muted      lipgloss.Style
	Selected   lipgloss.Style
	Error      lipgloss.Style
	Success    lipgloss.Style
	Warning    lipgloss.Style
	InputField lipgloss.Style
	StatusBar  lipgloss.Style
	Help       lipgloss.Style
	Border     lipgloss.Style

	// UserLabel prefixes the user's messages.
	UserLabel lipgloss.Style

	// AssistantLabel prefixes answers.
	AssistantLabel lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	return &Styles{
		theme: theme,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Accent),

		Normal: lipgloss.NewStyle().
			Foreground(theme.Text),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Text).
			Background(theme.Accent),

		Error: lipgloss.NewStyle().
			Foreground(theme.Bad),

		Success: lipgloss.NewStyle().
			Foreground(theme.Good),

		Warning: lipgloss.NewStyle().
			Foreground(theme.Warn),

		InputField: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		StatusBar: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Background(lipgloss.Color("#181825")).
			Padding(0, 1),

		Help: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Border: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border),

		UserLabel: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.User),

		AssistantLabel: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Assistant),
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}

// Confidence picks the style for an answer confidence: good at 0.6 and
// above, warning from 0.3, error below.
func (s *Styles) Confidence(c float64) lipgloss.Style {
	switch {
	case c >= 0.6:
		return s.Success
	case c >= 0.3:
		return s.Warning
	default:
		return s.Error
	}
}
