package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"

	styles "github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/keilerkonzept/condemned-dash/internal/crossfilter"
	"github.com/keilerkonzept/condemned-dash/internal/geo"
)

type summaryFilter struct {
	genders   []string
	races     []string
	year      int // 0 = no year window
	resetYear int
}

type categoryCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type summary struct {
	Filter     string          `json:"filter"`
	Gender     []categoryCount `json:"gender"`
	Race       []categoryCount `json:"race"`
	Period     string          `json:"period"`
	States     []categoryCount `json:"states"`
	Unresolved int             `json:"unresolved"`
}

// buildSummary applies f through a hub wired like the dashboard and collects
// what each view would show.
func buildSummary(data *inputs, f summaryFilter) summary {
	var s summary
	h := crossfilter.NewHub(data.store.Records(),
		crossfilter.WithLogger(logger),
		crossfilter.WithResetYear(f.resetYear))

	gender := crossfilter.MaskOf(crossfilter.Gender)
	race := crossfilter.MaskOf(crossfilter.Race)
	year := crossfilter.MaskOf(crossfilter.Year)
	h.Register("bar", race|year, crossfilter.All, crossfilter.ViewFunc(func(fr crossfilter.Frame) {
		s.Gender = toCategoryCounts(crossfilter.CountBy(fr.Records, crossfilter.ByGender))
	}))
	h.Register("pie", gender|year, crossfilter.All, crossfilter.ViewFunc(func(fr crossfilter.Frame) {
		s.Race = toCategoryCounts(crossfilter.CountBy(fr.Records, crossfilter.ByRace))
	}))
	h.Register("map", gender|race, crossfilter.All, crossfilter.ViewFunc(func(fr crossfilter.Frame) {
		counts, stats := mapCounts(fr, data.resolver, data.counts)
		idx := geo.Clamp(fr.SliderYear)
		s.Period = geo.Periods[idx].Label()
		s.States = s.States[:0]
		for name, n := range counts.Period(idx) {
			s.States = append(s.States, categoryCount{Name: name, Count: n})
		}
		sortCounts(s.States)
		s.Unresolved = stats.Unresolved
	}))

	h.Reset()
	for _, g := range f.genders {
		h.ToggleGender(g)
	}
	for _, r := range f.races {
		h.ToggleRace(r)
	}
	if f.year != 0 {
		h.SetYear(f.year)
	}
	s.Filter = h.State().String()
	return s
}

func toCategoryCounts(counts []crossfilter.Count) []categoryCount {
	out := make([]categoryCount, len(counts))
	for i, c := range counts {
		out[i] = categoryCount{Name: c.Key, Count: c.Count}
	}
	sortCounts(out)
	return out
}

func sortCounts(c []categoryCount) {
	sort.SliceStable(c, func(i, j int) bool {
		if c[i].Count != c[j].Count {
			return c[i].Count > c[j].Count
		}
		return c[i].Name < c[j].Name
	})
}

func writeSummary(w io.Writer, s summary, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	}

	header := styles.NewStyle().Bold(true)
	section := func(title string, counts []categoryCount) string {
		t := table.New().
			Border(styles.NormalBorder()).
			BorderStyle(borderFg).
			StyleFunc(func(row, col int) styles.Style {
				if row == table.HeaderRow {
					return header.Padding(0, 1)
				}
				return styles.NewStyle().Padding(0, 1)
			}).
			Headers(title, "CASES")
		for _, c := range counts {
			t.Row(displayRace(c.Name), strconv.Itoa(c.Count))
		}
		return t.Render()
	}

	_, err := fmt.Fprintf(w, "%s\n%s\n%s\n%s\nunresolved: %d\n",
		s.Filter,
		section("GENDER", s.Gender),
		section("RACE", s.Race),
		section("STATE "+s.Period, s.States),
		s.Unresolved)
	return err
}
