package main

import (
	"fmt"
	"strings"

	styles "github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"go.uber.org/zap"

	"github.com/keilerkonzept/condemned-dash/internal/crossfilter"
	"github.com/keilerkonzept/condemned-dash/internal/geo"
)

var (
	rampLow, _  = colorful.Hex("#d1d1d1")
	rampHigh, _ = colorful.Hex("#1f1f1f")
)

// rampColor maps count onto the grey ramp over [lo, hi], blending in HCL.
func rampColor(count, lo, hi int) colorful.Color {
	t := 1.0
	if hi > lo {
		t = float64(count-lo) / float64(hi-lo)
	}
	t = max(0, min(1, t))
	return rampLow.BlendHcl(rampHigh, t).Clamped()
}

// stateMap is the tile-grid map of case counts for the slider's period.
type stateMap struct {
	resolver    *geo.Resolver
	precomputed *geo.CountTable
	logger      *zap.Logger

	table  geo.CountTable
	stats  geo.AggregateStats
	period int
	cursor int
	cells  [geo.GridRows][geo.GridCols]int
}

func newStateMap(resolver *geo.Resolver, precomputed *geo.CountTable, logger *zap.Logger) *stateMap {
	m := &stateMap{resolver: resolver, precomputed: precomputed, logger: logger, table: geo.NewCountTable()}
	for r := range m.cells {
		for c := range m.cells[r] {
			m.cells[r][c] = -1
		}
	}
	for i, t := range geo.Grid {
		m.cells[t.Row][t.Col] = i
	}
	if tx, ok := geo.TileAt(7, 3); ok {
		m.cursor = tx
	}
	return m
}

// mapCounts returns the per-state counts for a map frame. A precomputed table
// stands in for aggregation while neither gender nor race is filtered.
func mapCounts(fr crossfilter.Frame, resolver *geo.Resolver, precomputed *geo.CountTable) (geo.CountTable, geo.AggregateStats) {
	if precomputed != nil && len(fr.State.Genders()) == 0 && len(fr.State.Races()) == 0 {
		return *precomputed, geo.AggregateStats{}
	}
	return geo.Aggregate(fr.Records, resolver)
}

func (m *stateMap) Refresh(fr crossfilter.Frame) {
	m.table, m.stats = mapCounts(fr, m.resolver, m.precomputed)
	m.period = geo.Clamp(fr.SliderYear)
	if m.stats.Unresolved > 0 {
		m.logger.Debug("records without a state",
			zap.Int("unresolved", m.stats.Unresolved),
			zap.Int("outOfPeriods", m.stats.OutOfPeriods))
	}
}

func (m *stateMap) move(dRow, dCol int) {
	if i, ok := geo.Neighbor(m.cursor, dRow, dCol); ok {
		m.cursor = i
	}
}

func (m *stateMap) selected() geo.Tile { return geo.Grid[m.cursor] }

func (m *stateMap) tooltip() string {
	t := m.selected()
	n, ok := m.table.Count(m.period, t.Name)
	if !ok {
		return t.Name + ": No data available"
	}
	return fmt.Sprintf("%s: %d", t.Name, n)
}

func (m *stateMap) height() int { return geo.GridRows + 2 }

func (m *stateMap) render(width int, focused bool) string {
	tileW := max(3, min(5, width/geo.GridCols))
	lo, hi, _ := m.table.Extent(m.period)
	noData := dimFg

	lines := []string{paneTitle("States "+geo.Periods[m.period].Label(), focused)}
	for r := range m.cells {
		var sb strings.Builder
		for c := range m.cells[r] {
			i := m.cells[r][c]
			if i < 0 {
				sb.WriteString(strings.Repeat(" ", tileW))
				continue
			}
			t := geo.Grid[i]
			text := center(t.Code, tileW)
			var st styles.Style
			if n, ok := m.table.Count(m.period, t.Name); ok {
				bg := rampColor(n, lo, hi)
				fg := styles.Color("#000000")
				if _, _, l := bg.Hcl(); l < 0.55 {
					fg = styles.Color("#ffffff")
				}
				st = styles.NewStyle().Background(styles.Color(bg.Hex())).Foreground(fg)
			} else {
				text = strings.ReplaceAll(text, " ", "░")
				st = noData
			}
			if i == m.cursor && focused {
				st = st.Bold(true).Underline(true).Reverse(true)
			}
			sb.WriteString(st.Render(text))
		}
		lines = append(lines, sb.String())
	}
	legend := fmt.Sprintf("%s %d %s %d  %s no data",
		styles.NewStyle().Foreground(styles.Color(rampLow.Hex())).Render("█"), lo,
		styles.NewStyle().Foreground(styles.Color(rampHigh.Hex())).Render("█"), hi,
		noData.Render("░"))
	lines = append(lines, legend)
	return strings.Join(lines, "\n")
}

func center(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	left := (width - len(s)) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-len(s)-left)
}
