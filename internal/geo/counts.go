package geo

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/keilerkonzept/condemned-dash/internal/dataset"
)

// CountTable holds record counts per period and state.
type CountTable struct {
	periods []map[string]int
}

// NewCountTable returns an empty table with one slot per period.
func NewCountTable() CountTable {
	t := CountTable{periods: make([]map[string]int, len(Periods))}
	for i := range t.periods {
		t.periods[i] = make(map[string]int)
	}
	return t
}

// AggregateStats reports records left out of a CountTable.
type AggregateStats struct {
	Counted      int
	Unresolved   int
	OutOfPeriods int
}

// Aggregate counts records per (state, period). Records whose state cannot be
// resolved or whose year lies outside every period are skipped.
func Aggregate(records []dataset.Record, r *Resolver) (CountTable, AggregateStats) {
	var stats AggregateStats
	t := NewCountTable()
	for _, rec := range records {
		state, ok := r.State(rec.County, rec.State)
		if !ok {
			stats.Unresolved++
			continue
		}
		idx, ok := Lookup(rec.SentencingYear)
		if !ok {
			stats.OutOfPeriods++
			continue
		}
		t.periods[idx][state]++
		stats.Counted++
	}
	return t, stats
}

// Count returns the count for state in period idx. ok is false when the state
// has no entry, which the map renders as "no data".
func (t CountTable) Count(idx int, state string) (int, bool) {
	if idx < 0 || idx >= len(t.periods) {
		return 0, false
	}
	n, ok := t.periods[idx][state]
	return n, ok
}

// Period returns the counts of period idx keyed by state. The map is shared;
// callers must not modify it.
func (t CountTable) Period(idx int) map[string]int {
	if idx < 0 || idx >= len(t.periods) {
		return nil
	}
	return t.periods[idx]
}

// Extent returns the smallest and largest count in period idx.
func (t CountTable) Extent(idx int) (lo, hi int, ok bool) {
	for _, n := range t.Period(idx) {
		if !ok {
			lo, hi, ok = n, n, true
			continue
		}
		lo = min(lo, n)
		hi = max(hi, n)
	}
	return lo, hi, ok
}

// States returns every state with an entry in any period, sorted.
func (t CountTable) States() []string {
	seen := make(map[string]struct{})
	for _, p := range t.periods {
		for s := range p {
			seen[s] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// WriteCSV writes region,year,pop_density rows: every known state for every
// period, with zero where a state had no records in that period.
func (t CountTable) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"region", "year", "pop_density"}); err != nil {
		return fmt.Errorf("write count header: %w", err)
	}
	states := t.States()
	for i, p := range Periods {
		for _, s := range states {
			row := []string{s, p.Label(), strconv.Itoa(t.periods[i][s])}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("write count row: %w", err)
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// LoadCountTableFile reads a region,year,pop_density CSV from disk.
func LoadCountTableFile(path string) (CountTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return NewCountTable(), fmt.Errorf("open count table: %w", err)
	}
	defer f.Close()
	return ReadCountTable(f)
}

// ReadCountTable parses the output of WriteCSV. Rows naming an unknown period
// are ignored.
func ReadCountTable(r io.Reader) (CountTable, error) {
	t := NewCountTable()
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return t, nil
		}
		return t, fmt.Errorf("read count header: %w", err)
	}
	ri, yi, ci := -1, -1, -1
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "region":
			ri = i
		case "year":
			yi = i
		case "pop_density":
			ci = i
		}
	}
	if ri < 0 || yi < 0 || ci < 0 {
		return t, fmt.Errorf("count table needs region, year and pop_density columns")
	}
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return t, fmt.Errorf("read count row: %w", err)
		}
		idx, ok := PeriodByLabel(strings.TrimSpace(row[yi]))
		if !ok {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(row[ci]))
		if err != nil {
			return t, fmt.Errorf("count for %s %s: %w", row[ri], row[yi], err)
		}
		t.periods[idx][strings.TrimSpace(row[ri])] = n
	}
	return t, nil
}
