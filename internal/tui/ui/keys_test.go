package ui_test

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/makeflow/internal/tui/ui"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestDefaultKeyMap(t *testing.T) {
	t.Parallel()

	km := ui.DefaultKeyMap()

	assert.NotEmpty(t, km.Up.Keys())
	assert.NotEmpty(t, km.Down.Keys())
	assert.NotEmpty(t, km.Toggle.Keys())
	assert.NotEmpty(t, km.Confirm.Keys())
	assert.NotEmpty(t, km.Quit.Keys())
	assert.Len(t, km.ShortHelp(), 6)
}

func TestKeyMap_IsUp(t *testing.T) {
	t.Parallel()

	km := ui.DefaultKeyMap()

	tests := []struct {
		name     string
		msg      tea.KeyMsg
		expected bool
	}{
		{"arrow up", tea.KeyMsg{Type: tea.KeyUp}, true},
		{"vim k", runes("k"), true},
		{"arrow down", tea.KeyMsg{Type: tea.KeyDown}, false},
		{"j key", runes("j"), false},
		{"random key", runes("z"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, km.IsUp(tt.msg))
		})
	}
}

func TestKeyMap_IsDown(t *testing.T) {
	t.Parallel()

	km := ui.DefaultKeyMap()

	tests := []struct {
		name     string
		msg      tea.KeyMsg
		expected bool
	}{
		{"arrow down", tea.KeyMsg{Type: tea.KeyDown}, true},
		{"vim j", runes("j"), true},
		{"arrow up", tea.KeyMsg{Type: tea.KeyUp}, false},
		{"k key", runes("k"), false},
		{"random key", runes("z"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, km.IsDown(tt.msg))
		})
	}
}

func TestKeyMap_SelectionKeys(t *testing.T) {
	t.Parallel()

	km := ui.DefaultKeyMap()

	assert.True(t, key.Matches(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, km.Toggle))
	assert.True(t, key.Matches(runes("x"), km.Toggle))
	assert.True(t, key.Matches(runes("a"), km.ToggleAll))
	assert.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyEnter}, km.Confirm))
	assert.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyEsc}, km.Quit))
	assert.True(t, key.Matches(runes("q"), km.Quit))
}

func TestDefaultStyles(t *testing.T) {
	t.Parallel()

	styles := ui.DefaultStyles()

	assert.NotEmpty(t, styles.Title.Render("Test"))
	assert.NotEmpty(t, styles.Checked.Render("x"))
	assert.Equal(t, 80, styles.WithWidth(80).App.GetWidth())
}

func TestKeyMap_Help(t *testing.T) {
	t.Parallel()

	km := ui.DefaultKeyMap()

	full := km.FullHelp()
	require.Len(t, full, 3)
	assert.Equal(t, km.Quit.Help().Key, full[2][1].Help().Key)
}
