// Package tui provides the interactive terminal entry points for makeflow.
package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/felixgeelhaar/makeflow/internal/domain/target"
)

// PickResult holds the outcome of the target picker.
type PickResult struct {
	Selected  []string
	Cancelled bool
}

// RunPicker shows targets as a checklist and returns the names the user
// confirmed, in registration order.
func RunPicker(ctx context.Context, targets []*target.Target, opts ...tea.ProgramOption) (*PickResult, error) {
	model := newPickerModel(targets)

	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)
	p := tea.NewProgram(model, opts...)
	finalModel, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("target picker failed: %w", err)
	}

	m, ok := finalModel.(pickerModel)
	if !ok {
		return nil, fmt.Errorf("unexpected model type")
	}

	return &PickResult{
		Selected:  m.selected,
		Cancelled: m.cancelled || !m.confirmed,
	}, nil
}
