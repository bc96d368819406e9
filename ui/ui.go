// Package ui provides the interactive terminal front end for speechclip.
package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

const (
	statusMessageTimeout = time.Second * 3 // how long to show status messages like "Queued"
	ellipsis             = "…"
)

// NewProgram returns a new Tea program running m.
func NewProgram(cfg Config, m Model) *tea.Program {
	log.Debug("Starting speechclip UI", "progress_width", cfg.ProgressWidth, "show_queue", cfg.ShowQueue)

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.EnableMouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	return tea.NewProgram(m, opts...)
}
