package main

import (
	styles "github.com/charmbracelet/lipgloss"
)

var (
	selectedColor = styles.AdaptiveColor{Light: "0", Dark: "9"}
	borderColor   = styles.AdaptiveColor{Light: "#555", Dark: "#555"}
	dimColor      = styles.AdaptiveColor{Light: "#bbb", Dark: "#444"}
	barColor      = styles.AdaptiveColor{Light: "#4682b4", Dark: "#5f9ea0"}
	errColor      = styles.AdaptiveColor{Light: "1", Dark: "9"}

	selectedFg = styles.NewStyle().Foreground(selectedColor)
	borderFg   = styles.NewStyle().Foreground(borderColor)
	dimFg      = styles.NewStyle().Foreground(dimColor)
	barFg      = styles.NewStyle().Foreground(barColor)
	activeFg   = styles.NewStyle().Foreground(selectedColor).Bold(true)
	errFg      = styles.NewStyle().Foreground(errColor)
	plotStyle  = styles.NewStyle().
			BorderStyle(styles.NormalBorder()).
			Foreground(borderColor).
			BorderForeground(borderColor)

	republicanFg = styles.NewStyle().Foreground(styles.Color("#bf2c34")).Bold(true)
	democratFg   = styles.NewStyle().Foreground(styles.Color("#1f5fbf")).Bold(true)
)

// raceColors is the fixed palette assigned to the sorted race domain.
var raceColors = []styles.Color{"#000fff", "#fad000", "#dc7633", "#633974", "#009900", "#bf2c34"}

// paneTitle renders a pane heading, highlighted when the pane has focus.
func paneTitle(title string, focused bool) string {
	if focused {
		return selectedFg.Render("▌" + title)
	}
	return borderFg.Render(" " + title)
}

func cursorMark(on bool) string {
	if on {
		return selectedFg.Render("›")
	}
	return " "
}
