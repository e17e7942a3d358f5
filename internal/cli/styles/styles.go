// Package styles provides the lipgloss styles used by CLI output.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	Title   = lipgloss.NewStyle().Bold(true)
	Subtle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#909090"))
	Success = lipgloss.NewStyle().Foreground(lipgloss.Color("#4ade80"))
	Warning = lipgloss.NewStyle().Foreground(lipgloss.Color("#fbbf24"))
	Error   = lipgloss.NewStyle().Foreground(lipgloss.Color("#f87171")).Bold(true)
)

// Severity returns the style for an audit severity name.
func Severity(severity string) lipgloss.Style {
	switch severity {
	case "error":
		return Error
	case "warning":
		return Warning
	default:
		return Subtle
	}
}
