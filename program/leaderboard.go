package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	styles "github.com/charmbracelet/lipgloss"
	"github.com/keilerkonzept/topk/heap"

	"github.com/keilerkonzept/condemned-dash/internal/crossfilter"
	"github.com/keilerkonzept/condemned-dash/internal/dataset"
	"github.com/keilerkonzept/condemned-dash/internal/geo"
)

// countyBoard lists the counties with the most cases in the map's period.
type countyBoard struct {
	k      int
	ranker *countyRanker
	list   list.Model
	items  []heap.Item
	period int
}

func newCountyBoard(k int) *countyBoard {
	const (
		defaultWidth  = 40
		defaultHeight = 10
	)

	d := list.NewDefaultDelegate()
	d.Styles.SelectedTitle = styles.NewStyle().
		Border(styles.NormalBorder(), false, false, false, true).
		BorderForeground(borderColor).
		Foreground(selectedColor).
		Bold(false).
		Padding(0, 0, 0, 1)
	d.Styles.SelectedDesc = d.Styles.SelectedTitle.
		Foreground(selectedColor)
	d.ShowDescription = true

	l := list.New(make([]list.Item, 0), d, defaultWidth, defaultHeight)
	l.Styles.NoItems = l.Styles.NoItems.
		Padding(0, 2)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)

	return &countyBoard{k: k, ranker: newCountyRanker(k), list: l}
}

func (c *countyBoard) Refresh(fr crossfilter.Frame) {
	c.period = geo.Clamp(fr.SliderYear)
	p := geo.Periods[c.period]
	inPeriod := make([]dataset.Record, 0, len(fr.Records))
	for _, rec := range fr.Records {
		if p.Contains(rec.SentencingYear) {
			inPeriod = append(inPeriod, rec)
		}
	}
	c.items = c.ranker.Rank(inPeriod)

	selected := ""
	if li, ok := c.list.SelectedItem().(listItem); ok {
		selected = li.Item.Item
	}

	numDecimals := 1 + int(math.Ceil(math.Log10(float64(c.k+1))))
	padToItemRankWidth := strings.Repeat(" ", numDecimals+1)
	itemRankFormat := "#%-" + fmt.Sprint(numDecimals) + "d"
	items := make([]list.Item, len(c.items))
	keep := 0
	for i, item := range c.items {
		items[i] = listItem{
			DescriptionPrefix: padToItemRankWidth,
			TitlePrefix:       fmt.Sprintf(itemRankFormat, i+1),
			Item:              item,
		}
		if item.Item == selected {
			keep = i
		}
	}
	c.list.SetItems(items)
	c.list.Select(keep)
}

func (c *countyBoard) setSize(w, h int) { c.list.SetSize(max(1, w), max(1, h)) }

func (c *countyBoard) tooltip() string {
	li, ok := c.list.SelectedItem().(listItem)
	if !ok {
		return "No data available"
	}
	return fmt.Sprintf("%s: %d", li.Item.Item, li.Count)
}

func (c *countyBoard) render(width int, focused bool) string {
	title := paneTitle("Top counties "+geo.Periods[c.period].Label(), focused)
	return styles.JoinVertical(styles.Left, title, styles.NewStyle().Width(width).Render(c.list.View()))
}

type listItem struct {
	DescriptionPrefix string
	TitlePrefix       string
	heap.Item
}

func (i listItem) Title() string       { return fmt.Sprintf("%s %s", i.TitlePrefix, i.Item.Item) }
func (i listItem) Description() string { return fmt.Sprintf("%s %d", i.DescriptionPrefix, i.Count) }
func (i listItem) FilterValue() string { return i.Item.Item }
