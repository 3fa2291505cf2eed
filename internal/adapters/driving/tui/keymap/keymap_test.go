package keymap

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()

	require.NotNil(t, km)
}

func TestDefaultKeyMap_Bindings(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		name    string
		binding key.Binding
		key     string
	}{
		{"quit", km.Quit, "ctrl+c"},
		{"help", km.Help, "f1"},
		{"back", km.Back, "esc"},
		{"send", km.Send, "enter"},
		{"documents", km.Documents, "tab"},
		{"up arrow", km.Up, "up"},
		{"up vim", km.Up, "k"},
		{"down arrow", km.Down, "down"},
		{"down vim", km.Down, "j"},
		{"page up", km.PageUp, "pgup"},
		{"page down", km.PageDown, "pgdown"},
		{"delete", km.Delete, "d"},
		{"reload", km.Reload, "r"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, tt.binding.Keys(), tt.key)
		})
	}
}

func TestQuitDoesNotCaptureTyping(t *testing.T) {
	km := DefaultKeyMap()

	// Chat input must accept plain letters.
	assert.NotContains(t, km.Quit.Keys(), "q")
	assert.NotContains(t, km.Help.Keys(), "?")
}

func TestShortHelp(t *testing.T) {
	km := DefaultKeyMap()

	bindings := km.ShortHelp()
	require.Len(t, bindings, 4)
	assert.Equal(t, "send", bindings[0].Help().Desc)
	assert.Equal(t, "quit", bindings[3].Help().Desc)
}

func TestDocumentsHelp(t *testing.T) {
	km := DefaultKeyMap()

	descs := make([]string, 0)
	for _, b := range km.DocumentsHelp() {
		descs = append(descs, b.Help().Desc)
	}
	assert.Contains(t, descs, "delete")
	assert.Contains(t, descs, "back")
}

func TestHints(t *testing.T) {
	km := DefaultKeyMap()

	assert.Equal(t, "[d] delete  [r] reload", Hints([]key.Binding{km.Delete, km.Reload}))
	assert.Empty(t, Hints(nil))
}

func TestFullHelp(t *testing.T) {
	km := DefaultKeyMap()

	groups := km.FullHelp()
	require.Len(t, groups, 3)
	for _, g := range groups {
		assert.NotEmpty(t, g)
	}
}

func TestMatches(t *testing.T) {
	km := DefaultKeyMap()

	assert.True(t, Matches("tab", km.Documents))
	assert.True(t, Matches("j", km.Down))
	assert.False(t, Matches("x", km.Down))
	assert.False(t, Matches("", km.Quit))
}
