package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	tui "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/keilerkonzept/condemned-dash/internal/config"
	"github.com/keilerkonzept/condemned-dash/internal/dataset"
	"github.com/keilerkonzept/condemned-dash/internal/geo"
)

func rec(g dataset.Gender, race, state, county string, year int) dataset.Record {
	return dataset.Record{Gender: g, Race: race, State: state, County: county, SentencingYear: year}
}

// fixtureInputs has five cases in 1976-1979 and two later ones.
func fixtureInputs() *inputs {
	records := []dataset.Record{
		rec(dataset.GenderMale, "White", "TX", "Harris", 1976),
		rec(dataset.GenderMale, "Black", "TX", "Harris", 1977),
		rec(dataset.GenderFemale, "White", "FL", "Duval", 1978),
		rec(dataset.GenderFemale, "Latino", "GA", "Fulton", 1979),
		rec(dataset.GenderOther, "Black", "TX", "Dallas", 1979),
		rec(dataset.GenderMale, "White", "CA", "Los Angeles", 1990),
		rec(dataset.GenderFemale, "Black", "FL", "Duval", 2018),
	}
	return &inputs{
		store:    dataset.NewStore(records),
		resolver: geo.NewResolver(),
		presidents: dataset.Presidents{
			1976: {Year: 1976, Name: "Gerald Ford", Party: dataset.PartyRepublican},
			1977: {Year: 1977, Name: "Jimmy Carter", Party: dataset.PartyDemocrat},
		},
	}
}

func newTestModel(t *testing.T) *model {
	t.Helper()
	m := newModel(config.DefaultConfig(), zap.NewNop())
	m.Update(dataLoadedMsg{data: fixtureInputs(), took: time.Millisecond})
	m.Update(tui.WindowSizeMsg{Width: 120, Height: 60})
	require.NotNil(t, m.hub)
	return m
}

func keyMsg(k string) tui.KeyMsg {
	switch k {
	case "tab":
		return tui.KeyMsg{Type: tui.KeyTab}
	case "shift+tab":
		return tui.KeyMsg{Type: tui.KeyShiftTab}
	case "enter":
		return tui.KeyMsg{Type: tui.KeyEnter}
	case "space":
		return tui.KeyMsg{Type: tui.KeySpace, Runes: []rune{' '}}
	case "up":
		return tui.KeyMsg{Type: tui.KeyUp}
	case "down":
		return tui.KeyMsg{Type: tui.KeyDown}
	case "left":
		return tui.KeyMsg{Type: tui.KeyLeft}
	case "right":
		return tui.KeyMsg{Type: tui.KeyRight}
	}
	return tui.KeyMsg{Type: tui.KeyRunes, Runes: []rune(k)}
}

func press(m *model, keys ...string) {
	for _, k := range keys {
		m.Update(keyMsg(k))
	}
}

func TestResolveConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dash.yaml")
	require.NoError(t, os.WriteFile(path, []byte("filter:\n  initial_year: 1984\nview:\n  top_counties: 5\n  split: 95\n"), 0o644))

	oldPath, oldOverrides := configPath, overrides
	t.Cleanup(func() { configPath, overrides = oldPath, oldOverrides })
	configPath = path

	newFlags := func(args ...string) *pflag.FlagSet {
		fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
		fs.IntVar(&overrides.Filter.InitialYear, "initial-year", 1976, "")
		fs.IntVar(&overrides.Filter.ResetYear, "reset-year", 2020, "")
		fs.StringVar(&overrides.Data.Counts, "counts", "", "")
		require.NoError(t, fs.Parse(args))
		return fs
	}

	c, err := resolveConfig(newFlags())
	require.NoError(t, err)
	assert.Equal(t, 1984, c.Filter.InitialYear, "file overrides defaults")
	assert.Equal(t, 5, c.View.TopCounties)
	assert.Equal(t, 80, c.View.Split, "split is clamped")

	c, err = resolveConfig(newFlags("--initial-year=1990", "--reset-year=2016", "--counts=interactive-data.csv"))
	require.NoError(t, err)
	assert.Equal(t, "interactive-data.csv", c.Data.Counts)
	assert.Equal(t, 1990, c.Filter.InitialYear, "flags override the file")
	assert.Equal(t, 2016, c.Filter.ResetYear)

	_, err = resolveConfig(newFlags("--initial-year=1900"))
	assert.Error(t, err)
}

func TestSummaryYearHelp(t *testing.T) {
	f := summaryCmd.Flags().Lookup("year")
	require.NotNil(t, f)
	assert.Equal(t, "0", f.DefValue)
	assert.Contains(t, f.Usage, "period of the reset year")
}
