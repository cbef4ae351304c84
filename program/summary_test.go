package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keilerkonzept/condemned-dash/internal/geo"
)

func TestBuildSummary(t *testing.T) {
	tests := []struct {
		name   string
		filter summaryFilter
		want   summary
	}{
		{
			name:   "male in the first window",
			filter: summaryFilter{genders: []string{"Male"}, year: 1976, resetYear: 2020},
			want: summary{
				Filter: "gender=[Male] race=[] year=1976-1979",
				Gender: []categoryCount{{"Female", 2}, {"Male", 2}, {"Other", 1}},
				Race:   []categoryCount{{"Black", 1}, {"White", 1}},
				Period: "1976-1980",
				States: []categoryCount{{"Texas", 2}},
			},
		},
		{
			name:   "no filter uses the reset year",
			filter: summaryFilter{resetYear: 2020},
			want: summary{
				Filter: "gender=[] race=[] year=all",
				Gender: []categoryCount{{"Female", 3}, {"Male", 3}, {"Other", 1}},
				Race:   []categoryCount{{"Black", 3}, {"White", 3}, {"Latino", 1}},
				Period: "2016-2019",
				States: []categoryCount{{"Florida", 1}},
			},
		},
		{
			name:   "race filter reaches bar and map",
			filter: summaryFilter{races: []string{"Black"}, year: 1977, resetYear: 2020},
			want: summary{
				Filter: "gender=[] race=[Black] year=1977-1980",
				Gender: []categoryCount{{"Male", 1}, {"Other", 1}},
				Race:   []categoryCount{{"Black", 2}, {"Latino", 1}, {"White", 1}},
				Period: "1976-1980",
				States: []categoryCount{{"Texas", 2}},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := buildSummary(fixtureInputs(), tt.filter)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("summary mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBuildSummaryPrecomputedCounts(t *testing.T) {
	data := fixtureInputs()
	counts, err := geo.ReadCountTable(strings.NewReader("region,year,pop_density\nFlorida,2016-2019,9\nTexas,2016-2019,4\n"))
	require.NoError(t, err)
	data.counts = &counts

	got := buildSummary(data, summaryFilter{resetYear: 2020})
	assert.Equal(t, []categoryCount{{"Florida", 9}, {"Texas", 4}}, got.States)

	got = buildSummary(data, summaryFilter{races: []string{"Black"}, resetYear: 2020})
	assert.Equal(t, []categoryCount{{"Florida", 1}}, got.States, "filtered summary aggregates records")
}

func TestWriteSummary(t *testing.T) {
	s := buildSummary(fixtureInputs(), summaryFilter{genders: []string{"Male"}, year: 1976, resetYear: 2020})

	var buf bytes.Buffer
	require.NoError(t, writeSummary(&buf, s, true))
	var decoded summary
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, s, decoded)

	buf.Reset()
	require.NoError(t, writeSummary(&buf, s, false))
	out := buf.String()
	for _, want := range []string{"gender=[Male]", "GENDER", "RACE", "STATE 1976-1980", "Texas", "unresolved: 0"} {
		assert.Contains(t, out, want)
	}
}
