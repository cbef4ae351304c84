package main

import (
	"sort"

	"github.com/keilerkonzept/topk"
	"github.com/keilerkonzept/topk/heap"

	"github.com/keilerkonzept/condemned-dash/internal/dataset"
)

// countyRanker ranks counties by number of cases using a top-K sketch. The
// sketch tracks more than k items so that ties at the cut are broken by name
// rather than by insertion order.
type countyRanker struct {
	k        int
	capacity int
	width    int
	depth    int
}

func newCountyRanker(k int) *countyRanker {
	if k < 1 {
		k = 1
	}
	return &countyRanker{
		k:        k,
		capacity: 4 * k,
		width:    max(1024, 64*k),
		depth:    3,
	}
}

// Rank returns at most k counties, most cases first. Ties are ordered by name
// so the list does not shuffle between refreshes.
func (r *countyRanker) Rank(records []dataset.Record) []heap.Item {
	sketch := topk.New(r.capacity, topk.WithWidth(r.width), topk.WithDepth(r.depth))
	for _, rec := range records {
		if key := countyLabel(rec); key != "" {
			sketch.Incr(key)
		}
	}

	items := sketch.SortedSlice()
	sort.SliceStable(items, func(i, j int) bool {
		li := items[i]
		lj := items[j]
		if li.Count != lj.Count {
			return li.Count > lj.Count
		}
		return li.Item < lj.Item
	})
	if len(items) > r.k {
		items = items[:r.k]
	}
	return items
}

func countyLabel(rec dataset.Record) string {
	if rec.County == "" {
		return ""
	}
	if rec.State == "" {
		return rec.County
	}
	return rec.County + ", " + rec.State
}
