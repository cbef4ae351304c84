package main

import (
	"fmt"
	"sort"
	"strings"

	styles "github.com/charmbracelet/lipgloss"

	"github.com/keilerkonzept/condemned-dash/internal/crossfilter"
	"github.com/keilerkonzept/condemned-dash/internal/dataset"
)

// raceChart is the proportion chart over races: a stacked bar plus a legend.
// Colors come from the race domain of the full dataset, so a race keeps its
// color while filters change.
type raceChart struct {
	races  []string
	colors map[string]styles.Color
	counts map[string]int
	total  int
	state  *crossfilter.State
	cursor int
}

func newRaceChart(records []dataset.Record) *raceChart {
	seen := make(map[string]bool)
	for _, r := range records {
		seen[r.Race] = true
	}
	p := &raceChart{
		colors: make(map[string]styles.Color),
		counts: map[string]int{},
		state:  crossfilter.NewState(),
	}
	for race := range seen {
		p.races = append(p.races, race)
	}
	sort.Strings(p.races)
	for i, race := range p.races {
		p.colors[race] = raceColors[i%len(raceColors)]
	}
	return p
}

func (p *raceChart) Refresh(fr crossfilter.Frame) {
	p.counts = make(map[string]int, len(p.races))
	p.total = len(fr.Records)
	for _, c := range crossfilter.CountBy(fr.Records, crossfilter.ByRace) {
		p.counts[c.Key] = c.Count
	}
	p.state = fr.State
}

func (p *raceChart) moveCursor(delta int) {
	if len(p.races) == 0 {
		return
	}
	p.cursor = max(0, min(len(p.races)-1, p.cursor+delta))
}

func (p *raceChart) selected() (string, bool) {
	if p.cursor >= len(p.races) {
		return "", false
	}
	return p.races[p.cursor], true
}

func (p *raceChart) share(race string) float64 {
	if p.total == 0 {
		return 0
	}
	return 100 * float64(p.counts[race]) / float64(p.total)
}

func (p *raceChart) tooltip() string {
	race, ok := p.selected()
	if !ok || p.counts[race] == 0 {
		return "No data available"
	}
	return fmt.Sprintf("%s: %d (%.1f%%)", displayRace(race), p.counts[race], p.share(race))
}

func (p *raceChart) height() int { return 2 + max(1, len(p.races)) }

// segments splits width cells between races in domain order. Cumulative
// flooring makes the widths add up to exactly width.
func (p *raceChart) segments(width int) []int {
	out := make([]int, len(p.races))
	if p.total == 0 {
		return out
	}
	cum, prev := 0, 0
	for i, race := range p.races {
		cum += p.counts[race]
		pos := cum * width / p.total
		out[i] = pos - prev
		prev = pos
	}
	return out
}

func (p *raceChart) render(width int, focused bool) string {
	lines := []string{paneTitle("Race", focused)}
	if p.total == 0 {
		lines = append(lines, dimFg.Render(strings.Repeat("░", max(1, width-2))))
	} else {
		filtering := len(p.state.Races()) > 0
		var sb strings.Builder
		for i, w := range p.segments(max(1, width-2)) {
			if w == 0 {
				continue
			}
			race := p.races[i]
			cell := "█"
			if filtering && !p.state.HasRace(race) {
				cell = "░"
			}
			sb.WriteString(styles.NewStyle().Foreground(p.colors[race]).Render(strings.Repeat(cell, w)))
		}
		lines = append(lines, " "+sb.String())
	}

	labelW := 0
	for _, race := range p.races {
		labelW = max(labelW, len(displayRace(race)))
	}
	for i, race := range p.races {
		swatch := styles.NewStyle().Foreground(p.colors[race]).Render("■")
		label := fmt.Sprintf("%-*s %5.1f%% %d", labelW, displayRace(race), p.share(race), p.counts[race])
		switch {
		case p.state.HasRace(race):
			label = activeFg.Render(label)
		case p.counts[race] == 0:
			label = dimFg.Render(label)
		}
		lines = append(lines, cursorMark(focused && i == p.cursor)+swatch+" "+label)
	}
	return strings.Join(lines, "\n")
}

func displayRace(race string) string {
	if race == "" {
		return "(unknown)"
	}
	return race
}
