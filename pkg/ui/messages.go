// Package ui renders ccrefactor reports with lipgloss and shows them in a bubbletea viewer
package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/fumiya-kume/ccrefactor/pkg/compare"
)

// ResultUpdatedMsg replaces the comparison shown by the viewer
type ResultUpdatedMsg struct {
	Result *compare.ComparisonResult
}

// StatusUpdateMsg updates the status line
type StatusUpdateMsg struct {
	Message string
	Type    StatusType
}

// StatusType defines the type of status message
type StatusType int

const (
	StatusInfo StatusType = iota
	StatusSuccess
	StatusWarning
	StatusError
)

// ResultUpdated returns a command that swaps in a new comparison
func ResultUpdated(result *compare.ComparisonResult) tea.Cmd {
	return func() tea.Msg {
		return ResultUpdatedMsg{Result: result}
	}
}

// StatusUpdate returns a command to update status
func StatusUpdate(message string, statusType StatusType) tea.Cmd {
	return func() tea.Msg {
		return StatusUpdateMsg{
			Message: message,
			Type:    statusType,
		}
	}
}
