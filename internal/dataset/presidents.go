package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Party of a sitting president.
type Party string

const (
	PartyRepublican Party = "Republican"
	PartyDemocrat   Party = "Democrat"
)

// President is the office holder for a given year.
type President struct {
	Year  int
	Name  string
	Party Party
}

// Presidents maps a year to the president in office.
type Presidents map[int]President

// Lookup returns the president for year, if known.
func (p Presidents) Lookup(year int) (President, bool) {
	pres, ok := p[year]
	return pres, ok
}

// LoadPresidentsFile reads a Years,President,Party CSV from disk.
func LoadPresidentsFile(path string) (Presidents, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open presidents: %w", err)
	}
	defer f.Close()
	return LoadPresidents(f)
}

// LoadPresidents reads a Years,President,Party CSV. Rows with a non-numeric
// year are ignored.
func LoadPresidents(r io.Reader) (Presidents, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Presidents{}, nil
		}
		return nil, fmt.Errorf("read presidents header: %w", err)
	}
	idx := indexColumns(header)
	yi, ok1 := idx["years"]
	ni, ok2 := idx["president"]
	pi, ok3 := idx["party"]
	if !ok1 || !ok2 || !ok3 {
		return nil, fmt.Errorf("presidents CSV needs Years, President and Party columns")
	}

	out := make(Presidents)
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read presidents row: %w", err)
		}
		if len(row) <= yi || len(row) <= ni || len(row) <= pi {
			continue
		}
		year, err := strconv.Atoi(strings.TrimSpace(row[yi]))
		if err != nil {
			continue
		}
		out[year] = President{
			Year:  year,
			Name:  strings.TrimSpace(row[ni]),
			Party: Party(strings.TrimSpace(row[pi])),
		}
	}
	return out, nil
}
