package root

import "github.com/fatih/color"

const (
	iconOK    = "✓"
	iconError = "✗"
)

var (
	bold    = color.New(color.Bold).SprintFunc()
	dim     = color.New(color.Faint).SprintFunc()
	cyan    = color.New(color.FgCyan).SprintFunc()
	green   = color.New(color.FgGreen).SprintFunc()
	boldRed = color.New(color.Bold, color.FgRed).SprintFunc()
)
