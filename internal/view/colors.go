package view

import "github.com/fatih/color"

var (
	green   = color.New(color.FgGreen).SprintFunc()
	yellow  = color.New(color.FgYellow).SprintFunc()
	red     = color.New(color.FgRed).SprintFunc()
	cyan    = color.New(color.FgCyan).SprintFunc()
	magenta = color.New(color.FgMagenta).SprintFunc()
	grey    = color.New(color.FgHiBlack).SprintFunc()
	bold    = color.New(color.Bold).SprintFunc()
	dim     = color.New(color.Faint).SprintFunc()
)

func colorFor(action string) func(a ...interface{}) string {
	switch action {
	case "SHIELD":
		return green
	case "UNSHIELD":
		return yellow
	case "SEND":
		return red
	case "RECEIVE":
		return cyan
	default:
		return grey
	}
}
