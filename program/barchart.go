package main

import (
	"fmt"
	"strings"

	"github.com/keilerkonzept/condemned-dash/internal/crossfilter"
	"github.com/keilerkonzept/condemned-dash/internal/dataset"
)

var genderOrder = []dataset.Gender{dataset.GenderMale, dataset.GenderFemale, dataset.GenderOther}

// barChart shows case counts per gender. It never filters on gender itself,
// so every gender stays selectable.
type barChart struct {
	categories []string
	counts     map[string]int
	domain     int
	state      *crossfilter.State
	cursor     int
}

func newBarChart(records []dataset.Record) *barChart {
	present := make(map[dataset.Gender]bool)
	for _, r := range records {
		present[r.Gender] = true
	}
	b := &barChart{counts: map[string]int{}, state: crossfilter.NewState()}
	for _, g := range genderOrder {
		if present[g] {
			b.categories = append(b.categories, string(g))
		}
	}
	return b
}

func (b *barChart) Refresh(fr crossfilter.Frame) {
	b.counts = make(map[string]int, len(b.categories))
	for _, c := range crossfilter.CountBy(fr.Records, crossfilter.ByGender) {
		b.counts[c.Key] = c.Count
	}
	// The axis spans male plus female cases; Other is drawn on the same scale.
	b.domain = b.counts[string(dataset.GenderMale)] + b.counts[string(dataset.GenderFemale)]
	b.state = fr.State
}

func (b *barChart) moveCursor(delta int) {
	if len(b.categories) == 0 {
		return
	}
	b.cursor = max(0, min(len(b.categories)-1, b.cursor+delta))
}

func (b *barChart) selected() (string, bool) {
	if b.cursor >= len(b.categories) {
		return "", false
	}
	return b.categories[b.cursor], true
}

func (b *barChart) tooltip() string {
	g, ok := b.selected()
	if !ok {
		return "No data available"
	}
	return fmt.Sprintf("%s: %d", g, b.counts[g])
}

func (b *barChart) height() int { return 1 + max(1, len(b.categories)) }

func (b *barChart) render(width int, focused bool) string {
	lines := []string{paneTitle("Gender", focused)}
	if len(b.categories) == 0 {
		return strings.Join(append(lines, dimFg.Render("  no records")), "\n")
	}

	labelW := 0
	peak := 0
	for _, c := range b.categories {
		labelW = max(labelW, len(c))
		peak = max(peak, b.counts[c])
	}
	countW := len(fmt.Sprint(max(peak, b.domain)))
	barW := max(1, width-labelW-countW-4)
	domain := b.domain
	if domain == 0 {
		domain = peak
	}

	filtering := len(b.state.Genders()) > 0
	for i, c := range b.categories {
		n := b.counts[c]
		fill := 0
		if domain > 0 {
			fill = min(barW, n*barW/domain)
		}
		bar := strings.Repeat("█", fill)
		switch {
		case b.state.HasGender(c):
			bar = activeFg.Render(bar)
		case filtering:
			bar = dimFg.Render(bar)
		default:
			bar = barFg.Render(bar)
		}
		lines = append(lines, fmt.Sprintf("%s%-*s %s%s %*d",
			cursorMark(focused && i == b.cursor), labelW, c, bar, strings.Repeat(" ", barW-fill), countW, n))
	}
	return strings.Join(lines, "\n")
}
