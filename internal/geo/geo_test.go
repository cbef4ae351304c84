package geo

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keilerkonzept/condemned-dash/internal/dataset"
)

func TestPeriodsCoverEveryYearExactlyOnce(t *testing.T) {
	for y := FirstYear; y <= LastYear; y++ {
		hits := 0
		for _, p := range Periods {
			if p.Contains(y) {
				hits++
			}
		}
		assert.Equalf(t, 1, hits, "year %d falls in %d periods", y, hits)
	}
}

func TestLookup(t *testing.T) {
	tests := []struct {
		year   int
		want   int
		wantOK bool
	}{
		{year: 1975, want: -1},
		{year: 1976, want: 0, wantOK: true},
		{year: 1979, want: 0, wantOK: true},
		{year: 1980, want: 1, wantOK: true},
		{year: 2015, want: 9, wantOK: true},
		{year: 2016, want: 10, wantOK: true},
		{year: 2019, want: 10, wantOK: true},
		{year: 2020, want: -1},
	}
	for _, tt := range tests {
		got, ok := Lookup(tt.year)
		assert.Equalf(t, tt.wantOK, ok, "Lookup(%d) ok", tt.year)
		assert.Equalf(t, tt.want, got, "Lookup(%d)", tt.year)
	}
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0, Clamp(1900))
	assert.Equal(t, 3, Clamp(1990))
	assert.Equal(t, len(Periods)-1, Clamp(2020))
}

func TestPeriodLabel(t *testing.T) {
	assert.Equal(t, "1976-1980", Periods[0].Label())
	assert.Equal(t, "2016-2019", Periods[len(Periods)-1].Label())
	idx, ok := PeriodByLabel("1984-1988")
	require.True(t, ok)
	assert.Equal(t, 2, idx)
	_, ok = PeriodByLabel("2019-2023")
	assert.False(t, ok)
}

func TestStateName(t *testing.T) {
	name, ok := StateName("tx")
	require.True(t, ok)
	assert.Equal(t, "Texas", name)

	name, ok = StateName("  new york ")
	require.True(t, ok)
	assert.Equal(t, "New York", name)

	_, ok = StateName("Atlantis")
	assert.False(t, ok)
}

func TestResolverFallback(t *testing.T) {
	r, err := LoadResolver(strings.NewReader("StateCode,CountyName\nTX,Harris County\nAL,Washington County\nOH,Washington County\nZZ,Nowhere County\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, r.Counties())

	tests := []struct {
		name, county, state string
		want                string
		wantOK              bool
	}{
		{name: "county wins", county: "Harris", state: "", want: "Texas", wantOK: true},
		{name: "county suffix stripped", county: "Harris County", state: "CA", want: "Texas", wantOK: true},
		{name: "ambiguous county prefers own state", county: "Washington", state: "OH", want: "Ohio", wantOK: true},
		{name: "ambiguous county falls to first entry", county: "Washington", state: "", want: "Alabama", wantOK: true},
		{name: "unknown county uses state code", county: "Travis", state: "TX", want: "Texas", wantOK: true},
		{name: "unknown state code dropped", county: "Nowhere", state: "ZZ", wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := r.State(tt.county, tt.state)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadResolverRequiresColumns(t *testing.T) {
	_, err := LoadResolver(strings.NewReader("code,name\nTX,Harris\n"))
	assert.Error(t, err)

	r, err := LoadResolver(strings.NewReader(""))
	require.NoError(t, err)
	assert.Zero(t, r.Counties())
}

func TestAggregate(t *testing.T) {
	records := []dataset.Record{
		{State: "TX", SentencingYear: 1976},
		{State: "TX", SentencingYear: 1979},
		{State: "TX", SentencingYear: 1980},
		{State: "FL", SentencingYear: 2019},
		{State: "ZZ", SentencingYear: 1990},
		{State: "FL", SentencingYear: 1970},
	}
	table, stats := Aggregate(records, NewResolver())

	assert.Equal(t, AggregateStats{Counted: 4, Unresolved: 1, OutOfPeriods: 1}, stats)
	if diff := cmp.Diff(map[string]int{"Texas": 2}, table.Period(0)); diff != "" {
		t.Errorf("period 0 mismatch (-want +got):\n%s", diff)
	}
	n, ok := table.Count(10, "Florida")
	assert.True(t, ok)
	assert.Equal(t, 1, n)

	_, ok = table.Count(0, "Florida")
	assert.False(t, ok, "absent state is no data, not zero")

	lo, hi, ok := table.Extent(0)
	assert.True(t, ok)
	assert.Equal(t, 2, lo)
	assert.Equal(t, 2, hi)
	_, _, ok = table.Extent(5)
	assert.False(t, ok)
	assert.Equal(t, []string{"Florida", "Texas"}, table.States())
}

func TestCountTableCSVFile(t *testing.T) {
	records := []dataset.Record{
		{State: "TX", SentencingYear: 1976},
		{State: "TX", SentencingYear: 1977},
		{State: "GA", SentencingYear: 1985},
	}
	table, _ := Aggregate(records, NewResolver())

	path := filepath.Join(t.TempDir(), "interactive-data.csv")
	var buf bytes.Buffer
	require.NoError(t, table.WriteCSV(&buf))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, "region,year,pop_density", lines[0])
	assert.Len(t, lines, 1+2*len(Periods))
	assert.Contains(t, lines, "Texas,1976-1980,2")
	assert.Contains(t, lines, "Georgia,1976-1980,0")

	back, err := LoadCountTableFile(path)
	require.NoError(t, err)

	n, ok := back.Count(0, "Texas")
	assert.True(t, ok)
	assert.Equal(t, 2, n)
	n, ok = back.Count(2, "Georgia")
	assert.True(t, ok)
	assert.Equal(t, 1, n)
}

func TestGridLayout(t *testing.T) {
	assert.Len(t, Grid, 51)
	seen := make(map[[2]int]string)
	for _, tile := range Grid {
		require.NotEmptyf(t, tile.Name, "tile %s has no name", tile.Code)
		key := [2]int{tile.Row, tile.Col}
		if other, ok := seen[key]; ok {
			t.Fatalf("%s and %s share a cell", tile.Code, other)
		}
		seen[key] = tile.Code
	}
}

func TestNeighbor(t *testing.T) {
	tx, ok := TileAt(7, 3)
	require.True(t, ok)
	assert.Equal(t, "TX", Grid[tx].Code)

	up, ok := Neighbor(tx, -1, 0)
	require.True(t, ok)
	assert.Equal(t, "OK", Grid[up].Code)

	right, ok := Neighbor(tx, 0, 1)
	require.True(t, ok)
	assert.Equal(t, "FL", Grid[right].Code)

	_, ok = Neighbor(tx, 1, 0)
	assert.False(t, ok, "bottom edge")
	_, ok = Neighbor(tx, 0, 0)
	assert.False(t, ok)
}

func TestReadCountTableErrors(t *testing.T) {
	_, err := LoadCountTableFile(filepath.Join(t.TempDir(), "missing.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = ReadCountTable(strings.NewReader("state,count\nTexas,3\n"))
	assert.Error(t, err)

	_, err = ReadCountTable(strings.NewReader("region,year,pop_density\nTexas,1976-1980,many\n"))
	assert.Error(t, err)

	table, err := ReadCountTable(strings.NewReader("region,year,pop_density\nTexas,2019-2023,4\nTexas,2016-2019,2\n"))
	require.NoError(t, err)
	_, ok := table.Count(len(Periods)-1, "Texas")
	assert.True(t, ok, "known period kept")
	assert.Len(t, table.States(), 1)
}
