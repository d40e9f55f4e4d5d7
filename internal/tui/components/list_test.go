package components

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func threeItems() []ListItem {
	return []ListItem{
		{ID: "build", Title: "build", Description: "exec"},
		{ID: "test", Title: "test", Description: "exec"},
		{ID: "all", Title: "all", Description: "phony"},
	}
}

func TestNewList(t *testing.T) {
	t.Parallel()

	list := NewList(threeItems())

	assert.Len(t, list.Items(), 3)
	assert.Equal(t, 0, list.SelectedIndex())
	assert.Equal(t, "build", list.SelectedItem().ID)
	assert.Empty(t, list.CheckedIDs())
}

func TestList_EmptyList(t *testing.T) {
	t.Parallel()

	list := NewList(nil)

	assert.Empty(t, list.Items())
	assert.Nil(t, list.SelectedItem())

	list, _ = list.Update(keyRunes(" "))
	assert.Empty(t, list.CheckedIDs())
	assert.Contains(t, list.View(), "No items")
}

func TestList_Navigation(t *testing.T) {
	t.Parallel()

	list := NewList(threeItems())

	list, _ = list.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, list.SelectedIndex())

	list, _ = list.Update(keyRunes("j"))
	assert.Equal(t, 2, list.SelectedIndex())

	list, _ = list.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 2, list.SelectedIndex())

	list, _ = list.Update(keyRunes("k"))
	assert.Equal(t, 1, list.SelectedIndex())

	list, _ = list.Update(keyRunes("g"))
	assert.Equal(t, 0, list.SelectedIndex())

	list, _ = list.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, list.SelectedIndex())

	list, _ = list.Update(keyRunes("G"))
	assert.Equal(t, 2, list.SelectedIndex())
}

func TestList_Toggle(t *testing.T) {
	t.Parallel()

	list := NewList(threeItems())

	list, _ = list.Update(keyRunes(" "))
	list, _ = list.Update(tea.KeyMsg{Type: tea.KeyDown})
	list, _ = list.Update(tea.KeyMsg{Type: tea.KeyDown})
	list, _ = list.Update(keyRunes("x"))
	assert.Equal(t, []string{"build", "all"}, list.CheckedIDs())

	list, _ = list.Update(keyRunes("x"))
	assert.Equal(t, []string{"build"}, list.CheckedIDs())
}

func TestList_ToggleDoesNotMutateEarlierValue(t *testing.T) {
	t.Parallel()

	before := NewList(threeItems())
	after, _ := before.Update(keyRunes(" "))

	assert.Empty(t, before.CheckedIDs())
	assert.Equal(t, []string{"build"}, after.CheckedIDs())
}

func TestList_ToggleAll(t *testing.T) {
	t.Parallel()

	list := NewList(threeItems())
	list, _ = list.Update(keyRunes(" "))

	list, _ = list.Update(keyRunes("a"))
	assert.Equal(t, []string{"build", "test", "all"}, list.CheckedIDs())

	list, _ = list.Update(keyRunes("a"))
	assert.Empty(t, list.CheckedIDs())
}

func TestList_View(t *testing.T) {
	t.Parallel()

	list := NewList(threeItems())
	list, _ = list.Update(keyRunes(" "))

	view := list.View()
	assert.Contains(t, view, "▸ ")
	assert.Contains(t, view, "[x]")
	assert.Contains(t, view, "[ ]")
	assert.Contains(t, view, "phony")
}

func TestList_ViewScrolls(t *testing.T) {
	t.Parallel()

	list := NewList(threeItems()).WithHeight(1)
	assert.Equal(t, 1, list.Height())
	assert.NotContains(t, list.View(), "test")

	list, _ = list.Update(tea.KeyMsg{Type: tea.KeyDown})
	view := list.View()
	assert.Contains(t, view, "test")
	assert.NotContains(t, view, "build")

	assert.Equal(t, 1, NewList(nil).WithHeight(0).Height())
}
