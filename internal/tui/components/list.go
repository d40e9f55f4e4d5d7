// Package components provides reusable TUI components built on Bubble Tea.
package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/felixgeelhaar/makeflow/internal/tui/ui"
)

// ListItem represents a single row of the list.
type ListItem struct {
	ID          string
	Title       string
	Description string
	Checked     bool
}

// FilterValue returns the value used for filtering.
func (i ListItem) FilterValue() string {
	return i.Title
}

// List is a navigable multi-select list.
type List struct {
	items    []ListItem
	selected int
	height   int
	keys     ui.KeyMap
	styles   ui.Styles
}

// NewList creates a new list with the given items.
func NewList(items []ListItem) List {
	return List{
		items:  items,
		height: ui.DefaultListHeight,
		keys:   ui.DefaultKeyMap(),
		styles: ui.DefaultStyles(),
	}
}

// Items returns all items in the list.
func (l List) Items() []ListItem {
	result := make([]ListItem, len(l.items))
	copy(result, l.items)
	return result
}

// SelectedIndex returns the cursor position.
func (l List) SelectedIndex() int {
	return l.selected
}

// SelectedItem returns the item under the cursor, or nil if empty.
func (l List) SelectedItem() *ListItem {
	if len(l.items) == 0 {
		return nil
	}
	item := l.items[l.selected]
	return &item
}

// CheckedIDs returns the IDs of the checked items in list order.
func (l List) CheckedIDs() []string {
	var ids []string
	for _, item := range l.items {
		if item.Checked {
			ids = append(ids, item.ID)
		}
	}
	return ids
}

// Height returns the number of visible rows.
func (l List) Height() int {
	return l.height
}

// WithHeight returns the list with a new height.
func (l List) WithHeight(height int) List {
	if height < 1 {
		height = 1
	}
	l.height = height
	return l
}

// WithStyles returns the list with custom styles.
func (l List) WithStyles(styles ui.Styles) List {
	l.styles = styles
	return l
}

// Init implements tea.Model.
func (l List) Init() tea.Cmd {
	return nil
}

// Update moves the cursor and toggles items.
func (l List) Update(msg tea.Msg) (List, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		return l.handleKeyMsg(msg), nil
	}
	return l, nil
}

func (l List) handleKeyMsg(msg tea.KeyMsg) List {
	if len(l.items) == 0 {
		return l
	}

	switch {
	case l.keys.IsUp(msg):
		if l.selected > 0 {
			l.selected--
		}
	case l.keys.IsDown(msg):
		if l.selected < len(l.items)-1 {
			l.selected++
		}
	case key.Matches(msg, l.keys.Home):
		l.selected = 0
	case key.Matches(msg, l.keys.End):
		l.selected = len(l.items) - 1
	case key.Matches(msg, l.keys.Toggle):
		l.items = l.copyItems()
		l.items[l.selected].Checked = !l.items[l.selected].Checked
	case key.Matches(msg, l.keys.ToggleAll):
		l.items = l.copyItems()
		check := len(l.CheckedIDs()) < len(l.items)
		for i := range l.items {
			l.items[i].Checked = check
		}
	}
	return l
}

// copyItems keeps earlier List values unaffected by toggles.
func (l List) copyItems() []ListItem {
	items := make([]ListItem, len(l.items))
	copy(items, l.items)
	return items
}

// View renders the visible window of rows.
func (l List) View() string {
	if len(l.items) == 0 {
		return l.styles.Help.Render("No items")
	}

	visibleCount := l.height
	if visibleCount > len(l.items) {
		visibleCount = len(l.items)
	}

	start := 0
	if l.selected >= visibleCount {
		start = l.selected - visibleCount + 1
	}
	end := start + visibleCount

	var b strings.Builder
	for i := start; i < end; i++ {
		item := l.items[i]

		cursor := "  "
		style := l.styles.ListItem
		if i == l.selected {
			cursor = "▸ "
			style = l.styles.ListItemActive
		}

		box := "[ ]"
		if item.Checked {
			box = l.styles.Checked.Render("[x]")
		}

		b.WriteString(cursor + box + " " + style.Render(item.Title))
		if item.Description != "" {
			b.WriteString("  " + l.styles.Kind.Render(item.Description))
		}
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
