package main

import (
	"fmt"
	"strings"

	styles "github.com/charmbracelet/lipgloss"
	plot "github.com/chriskim06/drawille-go"

	"github.com/keilerkonzept/condemned-dash/internal/crossfilter"
)

// trendPlot draws cases per sentencing year across the slider range.
type trendPlot struct {
	minYear, maxYear int
	series           []float64
	peak, peakYear   int
	plot             *plot.Canvas
}

func newTrendPlot(minYear, maxYear int) *trendPlot {
	t := &trendPlot{
		minYear: minYear,
		maxYear: maxYear,
		series:  make([]float64, maxYear-minYear+1),
	}
	t.resize(40, 8)
	return t
}

func (t *trendPlot) resize(w, h int) {
	p := plot.NewCanvas(max(1, w), max(1, h))
	p.NumDataPoints = len(t.series)
	p.ShowAxis = false
	p.LineColors = []plot.Color{plot.Red}
	if !styles.DefaultRenderer().HasDarkBackground() {
		p.LineColors[0] = plot.Black
	}
	t.plot = &p
	t.plot.Fill([][]float64{t.series})
}

func (t *trendPlot) Refresh(fr crossfilter.Frame) {
	for i := range t.series {
		t.series[i] = 0
	}
	for _, rec := range fr.Records {
		if y := rec.SentencingYear; y >= t.minYear && y <= t.maxYear {
			t.series[y-t.minYear]++
		}
	}
	t.peak, t.peakYear = 0, t.minYear
	for i, v := range t.series {
		if int(v) > t.peak {
			t.peak, t.peakYear = int(v), t.minYear+i
		}
	}
	t.plot.Fill([][]float64{t.series})
}

// render draws the plot and an axis line marking the active year window.
func (t *trendPlot) render(width int, window crossfilter.YearRange, hasWindow bool) string {
	w := max(1, width-2)
	span := max(1, t.maxYear-t.minYear)
	col := func(year int) int {
		year = max(t.minYear, min(t.maxYear, year))
		return (year - t.minYear) * (w - 1) / span
	}

	axis := borderFg.Render(strings.Repeat("─", w))
	if hasWindow && window.End >= t.minYear && window.Start <= t.maxYear {
		from, to := col(window.Start), col(window.End)
		axis = borderFg.Render(strings.Repeat("─", from)) +
			selectedFg.Render(strings.Repeat("━", to-from+1)) +
			borderFg.Render(strings.Repeat("─", w-to-1))
	}

	left := fmt.Sprint(t.minYear)
	right := fmt.Sprint(t.maxYear)
	mid := fmt.Sprintf("peak %d (%d)", t.peak, t.peakYear)
	if hasWindow {
		mid = window.String() + "  " + mid
	}
	gap := w - len(left) - len(right) - len(mid)
	labels := left + " " + mid
	if gap >= 2 {
		labels = left + strings.Repeat(" ", gap/2) + mid + strings.Repeat(" ", gap-gap/2) + right
	}
	return plotStyle.Render(styles.JoinVertical(styles.Left, t.plot.String(), axis, labels))
}
