package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tui "github.com/charmbracelet/bubbletea"
	styles "github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/keilerkonzept/condemned-dash/internal/config"
	"github.com/keilerkonzept/condemned-dash/internal/crossfilter"
)

type pane int

const (
	paneBar pane = iota
	panePie
	paneMap
	paneSlider
	paneCounties
	numPanes
)

type model struct {
	cfg    *config.Config
	logger *zap.Logger

	width, height  int
	leftPaneWidth  int
	rightPaneWidth int

	focus     pane
	showStats bool
	err       error

	data     *inputs
	hub      *crossfilter.Hub
	bar      *barChart
	pie      *raceChart
	states   *stateMap
	trend    *trendPlot
	counties *countyBoard
	slider   *yearSlider

	help    help.Model
	metrics *refreshMetrics
}

func newModel(cfg *config.Config, logger *zap.Logger) *model {
	const defaultWidth = 80

	metrics := newRefreshMetrics(cfg.Stats.Window)
	metrics.setEnabled(cfg.Stats.Enabled)

	m := &model{
		cfg:       cfg,
		logger:    logger,
		showStats: cfg.Stats.Enabled,
		help:      help.New(),
		metrics:   metrics,
		slider: &yearSlider{
			min:  cfg.Filter.MinYear,
			max:  cfg.Filter.MaxYear,
			step: cfg.Filter.Step,
		},
	}
	m.leftPaneWidth, m.rightPaneWidth = computePaneWidths(defaultWidth, cfg.View.Split)
	return m
}

func (m *model) Init() tui.Cmd {
	return loadCmd(m.cfg.Data, m.logger)
}

// attach builds the views over freshly loaded data and wires them to a hub.
func (m *model) attach(data *inputs) {
	records := data.store.Records()
	m.data = data
	m.slider.presidents = data.presidents

	m.bar = newBarChart(records)
	m.pie = newRaceChart(records)
	m.states = newStateMap(data.resolver, data.counts, m.logger)
	m.trend = newTrendPlot(m.cfg.Filter.MinYear, m.cfg.Filter.MaxYear)
	m.counties = newCountyBoard(m.cfg.View.TopCounties)

	m.hub = crossfilter.NewHub(records,
		crossfilter.WithLogger(m.logger),
		crossfilter.WithResetYear(m.cfg.Filter.ResetYear),
		crossfilter.WithObserver(m.metrics.observeRefresh),
	)
	gender := crossfilter.MaskOf(crossfilter.Gender)
	race := crossfilter.MaskOf(crossfilter.Race)
	year := crossfilter.MaskOf(crossfilter.Year)
	m.hub.Register("bar", race|year, crossfilter.All, m.bar)
	m.hub.Register("pie", gender|year, crossfilter.All, m.pie)
	m.hub.Register("map", gender|race, crossfilter.All, m.states)
	m.hub.Register("trend", gender|race, gender|race, m.trend)
	m.hub.Register("counties", gender|race, crossfilter.All, m.counties)
	m.hub.Start(m.cfg.Filter.InitialYear)
	m.layout()
}

func (m *model) Update(msg tui.Msg) (tui.Model, tui.Cmd) {
	switch msg := msg.(type) {
	case errMsg:
		m.err = msg.err
		m.logger.Error("load failed", zap.Error(msg.err))
		return m, nil
	case dataLoadedMsg:
		m.metrics.observeLoad(msg.data.store.Len(), msg.took)
		m.attach(msg.data)
		return m, nil
	case tui.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.leftPaneWidth, m.rightPaneWidth = computePaneWidths(m.width, m.cfg.View.Split)
		m.help.Width = m.width
		m.layout()
		return m, nil
	case tui.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *model) handleKey(msg tui.KeyMsg) (tui.Model, tui.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tui.Quit
	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.layout()
		return m, nil
	case key.Matches(msg, keys.Stats):
		m.showStats = !m.showStats
		m.metrics.setEnabled(m.showStats)
		m.layout()
		return m, nil
	}
	if m.hub == nil {
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.Next):
		m.focus = (m.focus + 1) % numPanes
	case key.Matches(msg, keys.Prev):
		m.focus = (m.focus + numPanes - 1) % numPanes
	case key.Matches(msg, keys.Reset):
		m.hub.Reset()
	case key.Matches(msg, keys.YearPrev):
		m.moveYear(-1)
	case key.Matches(msg, keys.YearNext):
		m.moveYear(1)
	case key.Matches(msg, keys.Toggle):
		m.toggleSelected()
	case key.Matches(msg, keys.Up):
		m.moveCursor(-1, 0)
	case key.Matches(msg, keys.Down):
		m.moveCursor(1, 0)
	case key.Matches(msg, keys.Left):
		m.moveCursor(0, -1)
	case key.Matches(msg, keys.Right):
		m.moveCursor(0, 1)
	}
	return m, nil
}

func (m *model) moveYear(dir int) {
	m.hub.SetYear(m.slider.next(m.hub.SliderYear(), dir))
}

func (m *model) toggleSelected() {
	switch m.focus {
	case paneBar:
		if g, ok := m.bar.selected(); ok {
			m.hub.ToggleGender(g)
		}
	case panePie:
		if r, ok := m.pie.selected(); ok {
			m.hub.ToggleRace(r)
		}
	}
}

func (m *model) moveCursor(dRow, dCol int) {
	switch m.focus {
	case paneBar:
		m.bar.moveCursor(dRow)
	case panePie:
		m.pie.moveCursor(dRow)
	case paneMap:
		m.states.move(dRow, dCol)
	case paneSlider:
		if dCol != 0 {
			m.moveYear(dCol)
		}
	case paneCounties:
		if dRow < 0 {
			m.counties.list.CursorUp()
		} else if dRow > 0 {
			m.counties.list.CursorDown()
		}
	}
}

func (m *model) tooltip() string {
	switch m.focus {
	case paneBar:
		return m.bar.tooltip()
	case panePie:
		return m.pie.tooltip()
	case paneMap:
		return m.states.tooltip()
	case paneSlider:
		return m.slider.tooltip(m.hub.SliderYear())
	case paneCounties:
		return m.counties.tooltip()
	}
	return ""
}

func (m *model) statsLines() int {
	if !m.showStats {
		return 0
	}
	// title + records + refreshes + filter + one line per view
	return 4 + len(m.metrics.snapshot().views)
}

func (m *model) helpLines() int {
	if m.help.ShowAll {
		return len(keys.FullHelp()[0])
	}
	return 1
}

// layout sizes the leaderboard and trend plot to the space left over by the
// fixed-height panes.
func (m *model) layout() {
	if m.hub == nil || m.height == 0 {
		return
	}
	// slider + tooltip
	chrome := 2 + m.statsLines() + m.helpLines()
	available := max(1, m.height-chrome)

	listHeight := available - m.bar.height() - m.pie.height() - 1
	m.counties.setSize(max(1, m.leftWidth()-1), max(2, listHeight))

	// Right side is: map, then the plot with its axis and label lines, wrapped in a border.
	plotHeight := max(1, available-m.states.height()-4)
	m.trend.resize(max(1, m.rightWidth()-2), plotHeight)
}

func (m *model) leftWidth() int {
	if m.leftPaneWidth > 0 {
		return m.leftPaneWidth
	}
	left, _ := computePaneWidths(m.width, m.cfg.View.Split)
	return left
}

func (m *model) rightWidth() int {
	if m.rightPaneWidth > 0 {
		return m.rightPaneWidth
	}
	_, right := computePaneWidths(m.width, m.cfg.View.Split)
	return right
}

func (m *model) View() string {
	if m.hub == nil {
		status := borderFg.Render("loading records...")
		if m.err != nil {
			status = errFg.Render("ERROR: " + m.err.Error())
		}
		return styles.JoinVertical(styles.Left, status, m.help.View(keys))
	}

	leftW, rightW := m.leftWidth(), m.rightWidth()
	window, hasWindow := m.hub.State().Years()

	top := m.slider.render(m.width, m.hub.SliderYear(), window, hasWindow, m.focus == paneSlider)
	left := styles.NewStyle().Width(leftW).Render(styles.JoinVertical(styles.Left,
		m.bar.render(leftW-1, m.focus == paneBar),
		m.pie.render(leftW-1, m.focus == panePie),
		m.counties.render(leftW-1, m.focus == paneCounties),
	))
	right := styles.NewStyle().Width(rightW).Render(styles.JoinVertical(styles.Left,
		m.states.render(rightW, m.focus == paneMap),
		m.trend.render(rightW, window, hasWindow),
	))
	body := styles.JoinHorizontal(styles.Top, left, right)
	detail := selectedFg.Render("› ") + m.tooltip()

	parts := []string{top, body, detail}
	if m.err != nil {
		parts = append(parts, errFg.Render("ERROR: "+m.err.Error()))
	}
	if m.showStats {
		parts = append(parts, errFg.Render(strings.Join(m.statsBlock(), "\n")))
	}
	parts = append(parts, m.help.View(keys))
	return styles.JoinVertical(styles.Left, parts...)
}

func (m *model) statsBlock() []string {
	snap := m.metrics.snapshot()
	block := []string{
		"PERF STATS",
		fmt.Sprintf("records: %d (skipped %d, load %s)", snap.records, m.data.stats.Skipped, formatMetricDuration(snap.load)),
		fmt.Sprintf("refreshes: %d", snap.refreshes),
		fmt.Sprintf("filter: %s", m.hub.State()),
	}
	for _, v := range snap.views {
		block = append(block, fmt.Sprintf("%-8s n=%-5d rec=%-6d last %s avg %s max %s",
			v.name, v.refreshes, v.records,
			formatMetricDuration(v.latency.last),
			formatMetricDuration(v.latency.avg),
			formatMetricDuration(v.latency.max)))
	}
	return block
}

func formatMetricDuration(d time.Duration) string {
	if d <= 0 {
		return "0.000ms"
	}
	return fmt.Sprintf("%.3fms", float64(d)/float64(time.Millisecond))
}

func computePaneWidths(totalWidth int, splitPercent int) (left, right int) {
	if totalWidth <= 1 {
		return 1, 1
	}
	left = totalWidth * splitPercent / 100
	left = max(1, min(totalWidth-1, left))
	right = totalWidth - left

	// Keep panes readable when the terminal is wide enough.
	const minPane = 18
	if totalWidth >= minPane*2 {
		if left < minPane {
			left = minPane
			right = totalWidth - left
		}
		if right < minPane {
			right = minPane
			left = totalWidth - right
		}
	}
	return max(1, left), max(1, right)
}
