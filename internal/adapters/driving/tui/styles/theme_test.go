package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTheme(t *testing.T) {
	theme := DefaultTheme()

	require.NotNil(t, theme)
	assert.NotEmpty(t, string(theme.Accent))
	assert.NotEmpty(t, string(theme.User))
	assert.NotEmpty(t, string(theme.Assistant))
	assert.NotEmpty(t, string(theme.Text))
	assert.NotEmpty(t, string(theme.Muted))
	assert.NotEmpty(t, string(theme.Good))
	assert.NotEmpty(t, string(theme.Warn))
	assert.NotEmpty(t, string(theme.Bad))
	assert.NotEmpty(t, string(theme.Border))
}

func TestDefaultTheme_SpeakersAreDistinct(t *testing.T) {
	theme := DefaultTheme()

	assert.NotEqual(t, theme.User, theme.Assistant)
	assert.NotEqual(t, theme.Good, theme.Bad)
}

func TestNewStyles_WithTheme(t *testing.T) {
	theme := DefaultTheme()
	styles := NewStyles(theme)

	require.NotNil(t, styles)
	assert.Equal(t, theme, styles.Theme())
}

func TestNewStyles_NilTheme(t *testing.T) {
	styles := NewStyles(nil)

	require.NotNil(t, styles)
	assert.NotNil(t, styles.Theme())
}

func TestStyles_AllStylesInitialised(t *testing.T) {
	styles := DefaultStyles()

	for name, style := range map[string]lipgloss.Style{
		"Title":          styles.Title,
		"Normal":         styles.Normal,
		"Muted":          styles.Muted,
		"Selected":       styles.Selected,
		"Error":          styles.Error,
		"Success":        styles.Success,
		"Warning":        styles.Warning,
		"InputField":     styles.InputField,
		"StatusBar":      styles.StatusBar,
		"Help":           styles.Help,
		"Border":         styles.Border,
		"UserLabel":      styles.UserLabel,
		"AssistantLabel": styles.AssistantLabel,
	} {
		assert.NotEqual(t, lipgloss.Style{}, style, name)
	}
}

func TestStyles_Confidence(t *testing.T) {
	styles := DefaultStyles()

	assert.Equal(t, styles.Success, styles.Confidence(0.9))
	assert.Equal(t, styles.Success, styles.Confidence(0.6))
	assert.Equal(t, styles.Warning, styles.Confidence(0.45))
	assert.Equal(t, styles.Error, styles.Confidence(0.1))
}
