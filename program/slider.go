package main

import (
	"fmt"
	"strings"

	"github.com/keilerkonzept/condemned-dash/internal/crossfilter"
	"github.com/keilerkonzept/condemned-dash/internal/dataset"
)

// yearSlider renders the year control. The position itself lives in the hub.
type yearSlider struct {
	min, max, step int
	presidents     dataset.Presidents
}

// next returns the slider year one step from cur in direction dir, clamped
// to the slider bounds.
func (s *yearSlider) next(cur, dir int) int {
	return max(s.min, min(s.max, cur+dir*s.step))
}

// president formats the office holder for year, colored by party.
func (s *yearSlider) president(year int) string {
	p, ok := s.presidents.Lookup(year)
	if !ok {
		return ""
	}
	switch p.Party {
	case dataset.PartyRepublican:
		return republicanFg.Render(p.Name)
	case dataset.PartyDemocrat:
		return democratFg.Render(p.Name)
	}
	return p.Name
}

func (s *yearSlider) tooltip(year int) string {
	p, ok := s.presidents.Lookup(year)
	if !ok {
		return fmt.Sprintf("%d", year)
	}
	return fmt.Sprintf("%d: %s (%s)", year, p.Name, p.Party)
}

func (s *yearSlider) render(width, year int, window crossfilter.YearRange, hasWindow, focused bool) string {
	label := fmt.Sprintf("Year %d", year)
	if hasWindow {
		label += " [" + window.String() + "]"
	} else {
		label += " [all years]"
	}
	if pres := s.president(year); pres != "" {
		label += " " + pres
	}

	head := paneTitle("Year", focused)
	lo, hi := fmt.Sprint(s.min), fmt.Sprint(s.max)
	trackW := max(3, width/2-len(lo)-len(hi)-4)
	pos := 0
	if s.max > s.min {
		pos = (max(s.min, min(s.max, year)) - s.min) * (trackW - 1) / (s.max - s.min)
	}
	track := borderFg.Render(strings.Repeat("─", pos)) +
		selectedFg.Render("●") +
		borderFg.Render(strings.Repeat("─", trackW-pos-1))
	return fmt.Sprintf("%s %s %s %s  %s", head, lo, track, hi, label)
}
