package controller

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pegstep/pegstep/internal/domain"
)

// DebugTUI runs the interactive stepping view over a started session.
type DebugTUI struct {
	output io.Writer
}

// NewDebugTUI creates a new DebugTUI writing to output.
func NewDebugTUI(output io.Writer) *DebugTUI {
	return &DebugTUI{output: output}
}

// Run blocks until the user quits the stepping view. The session must
// already hold a recorded trace.
func (t *DebugTUI) Run(session *domain.Session) error {
	model := newDebugModel(session)

	program := tea.NewProgram(model, tea.WithOutput(t.output), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}

	return nil
}
