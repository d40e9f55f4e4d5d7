package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/felixgeelhaar/makeflow/internal/domain/target"
	"github.com/felixgeelhaar/makeflow/internal/tui/components"
	"github.com/felixgeelhaar/makeflow/internal/tui/ui"
)

// pickerModel lets the user check the targets to build.
type pickerModel struct {
	list      components.List
	help      help.Model
	styles    ui.Styles
	keys      ui.KeyMap
	width     int
	height    int
	selected  []string
	confirmed bool
	cancelled bool
	warning   string
}

func newPickerModel(targets []*target.Target) pickerModel {
	styles := ui.DefaultStyles()
	return pickerModel{
		list:   components.NewList(targetsToListItems(targets)).WithStyles(styles),
		help:   help.New(),
		styles: styles,
		keys:   ui.DefaultKeyMap(),
		width:  ui.DefaultWidth,
		height: ui.DefaultHeight,
	}
}

// targetsToListItems describes each target by its kind and direct dependencies.
func targetsToListItems(targets []*target.Target) []components.ListItem {
	caser := cases.Title(language.English)
	items := make([]components.ListItem, 0, len(targets))
	for _, t := range targets {
		desc := caser.String(t.Kind())
		if len(t.Depends) > 0 {
			desc = fmt.Sprintf("%s, needs %s", desc, strings.Join(t.Depends, ", "))
		}
		if t.Options.Prefix != "" {
			desc = fmt.Sprintf("%s [%s]", desc, t.Options.Prefix)
		}
		items = append(items, components.ListItem{
			ID:          t.Name,
			Title:       t.Name,
			Description: desc,
		})
	}
	return items
}

func (m pickerModel) Init() tea.Cmd {
	return tea.WindowSize()
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.styles = m.styles.WithWidth(msg.Width)
		m.help.Width = msg.Width
		// title, summary and footer take six rows
		m.list = m.list.WithHeight(msg.Height - 6).WithStyles(m.styles)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.cancelled = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Confirm):
			checked := m.list.CheckedIDs()
			if len(checked) == 0 {
				m.warning = "Select at least one target."
				return m, nil
			}
			m.selected = checked
			m.confirmed = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}

		m.warning = ""
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m pickerModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Select targets to build"))
	b.WriteString("\n")

	total := len(m.list.Items())
	if total == 0 {
		b.WriteString(m.styles.Help.Render("No targets defined."))
		b.WriteString("\n\n")
		b.WriteString(m.styles.Help.Render("Press q or Esc to exit"))
		return m.styles.App.Render(b.String())
	}

	summary := fmt.Sprintf("%d of %d selected", len(m.list.CheckedIDs()), total)
	b.WriteString(m.styles.Subtitle.Render(summary))
	b.WriteString("\n\n")
	b.WriteString(m.list.View())
	b.WriteString("\n\n")

	if m.warning != "" {
		b.WriteString(m.styles.Warning.Render(m.warning))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))

	return m.styles.App.Render(b.String())
}
