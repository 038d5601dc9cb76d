// Package ui provides styled terminal output helpers for the CLI surface.
package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	infoStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	valueStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	successStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	warningStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	highlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true)
)

// PrintError prints an error message in red.
func PrintError(msg string, args ...interface{}) {
	if len(args) > 0 {
		fmt.Println(errorStyle.Render(msg + ": " + fmt.Sprintf("%v", args[0])))
	} else {
		fmt.Println(errorStyle.Render(msg))
	}
}

// PrintSuccess prints a success message in green.
func PrintSuccess(msg string) {
	fmt.Println(successStyle.Render(msg))
}

// PrintInfo prints a labeled value.
func PrintInfo(label string, value string) {
	fmt.Printf("%s: %s\n", infoStyle.Render(label), valueStyle.Render(value))
}

// PrintWarning prints a warning message in yellow.
func PrintWarning(msg string, args ...interface{}) {
	if len(args) > 0 {
		fmt.Println(warningStyle.Render(msg + ": " + fmt.Sprintf("%v", args[0])))
	} else {
		fmt.Println(warningStyle.Render(msg))
	}
}

// PrintHighlight prints a highlighted message.
func PrintHighlight(msg string) {
	fmt.Println(highlightStyle.Render(msg))
}
