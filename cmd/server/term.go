package main

import (
	"github.com/fatih/color"

	"github.com/phrazzld/dayplan-api/internal/domain"
)

// Color definitions for command output.
var (
	colorHeader   = color.New(color.Bold)
	colorWeekday  = color.New(color.FgCyan)
	colorWeekend  = color.New(color.FgMagenta)
	colorApplied  = color.New(color.FgGreen)
	colorPending  = color.New(color.FgYellow)
	colorMuted    = color.New(color.FgWhite, color.Faint)
	colorAssigned = color.New(color.FgGreen, color.Bold)
)

// disableColor turns off colored output for the whole process.
func disableColor() {
	color.NoColor = true
}

// formatDate colors a date by day type.
func formatDate(d domain.Date) string {
	if domain.IsWeekend(d.ISOWeekday()) {
		return colorWeekend.Sprint(d.String())
	}
	return colorWeekday.Sprint(d.String())
}
