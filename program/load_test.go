package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/keilerkonzept/condemned-dash/internal/config"
)

const recordsCSV = `state,sentencing_date,sentencing_year,race,County,gender
TX,03/14/1977,1977,White,Harris,Male
TX,01/02/1978,1978,Black,Travis,Female
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadInputs(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DataConfig{
		Records:    writeFile(t, dir, "records.csv", recordsCSV),
		Counties:   writeFile(t, dir, "county-state.csv", "StateCode,CountyName\nTX,Harris County\n"),
		Presidents: writeFile(t, dir, "presidents.csv", "Years,President,Party\n1977,Jimmy Carter,Democrat\n"),
		Counts:     writeFile(t, dir, "interactive-data.csv", "region,year,pop_density\nTexas,1976-1980,12\n"),
	}

	data, err := loadInputs(cfg, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 2, data.store.Len())
	assert.Equal(t, 1, data.resolver.Counties())
	_, ok := data.presidents.Lookup(1977)
	assert.True(t, ok)
	require.NotNil(t, data.counts)
	n, ok := data.counts.Count(0, "Texas")
	assert.True(t, ok)
	assert.Equal(t, 12, n)
}

func TestLoadInputsOptionalTables(t *testing.T) {
	dir := t.TempDir()
	data, err := loadInputs(config.DataConfig{Records: writeFile(t, dir, "records.csv", recordsCSV)}, zap.NewNop())
	require.NoError(t, err)
	assert.Zero(t, data.resolver.Counties())
	assert.Nil(t, data.presidents)
	assert.Nil(t, data.counts)
}

func TestLoadInputsErrors(t *testing.T) {
	dir := t.TempDir()
	records := writeFile(t, dir, "records.csv", recordsCSV)

	_, err := loadInputs(config.DataConfig{Records: filepath.Join(dir, "missing.csv")}, zap.NewNop())
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = loadInputs(config.DataConfig{Records: records, Counties: filepath.Join(dir, "nope.csv")}, zap.NewNop())
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "load counties")

	_, err = loadInputs(config.DataConfig{Records: records, Counts: filepath.Join(dir, "nope.csv")}, zap.NewNop())
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "load counts")

	_, err = loadInputs(config.DataConfig{Records: writeFile(t, dir, "bad.csv", "state,race\nTX,White\n")}, zap.NewNop())
	assert.Error(t, err)
}

func TestLoadCmd(t *testing.T) {
	dir := t.TempDir()
	msg := loadCmd(config.DataConfig{Records: writeFile(t, dir, "records.csv", recordsCSV)}, zap.NewNop())()
	loaded, ok := msg.(dataLoadedMsg)
	require.True(t, ok, "got %T", msg)
	assert.Equal(t, 2, loaded.data.store.Len())

	msg = loadCmd(config.DataConfig{Records: filepath.Join(dir, "missing.csv")}, zap.NewNop())()
	assert.IsType(t, errMsg{}, msg)
}
