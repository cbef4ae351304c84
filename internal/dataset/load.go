package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// Column names in the records CSV. Matching is case-insensitive.
const (
	colState              = "state"
	colSentencingDate     = "sentencing_date"
	colSentencingYear     = "sentencing_year"
	colRace               = "race"
	colCounty             = "county"
	colGender             = "gender"
	colVolunteerExecution = "volunteer_execution"
	colDied               = "died"
	colSuicide            = "suicide"
	colCommuted           = "commuted"
	colExonerated         = "exonerated"
	colResentenced        = "resentenced"
	colReleased           = "released"
)

var requiredColumns = []string{colState, colSentencingYear, colRace, colGender}

// LoadStats describes what happened while reading a records file.
type LoadStats struct {
	Rows        int
	Skipped     int
	BadYears    int
	BadDates    int
	MissingCols []string
}

// Store is the full immutable dataset.
type Store struct {
	records []Record
}

// NewStore wraps records. The slice is copied so later writes by the caller
// cannot leak into the store.
func NewStore(records []Record) *Store {
	out := make([]Record, len(records))
	copy(out, records)
	return &Store{records: out}
}

// Records returns the loaded records. Callers must treat the slice as read-only.
func (s *Store) Records() []Record {
	if s == nil {
		return nil
	}
	return s.records
}

// Len is the number of records.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.records)
}

// YearBounds returns the smallest and largest non-zero sentencing year.
func (s *Store) YearBounds() (min, max int, ok bool) {
	for _, r := range s.Records() {
		if r.SentencingYear == 0 {
			continue
		}
		if !ok {
			min, max, ok = r.SentencingYear, r.SentencingYear, true
			continue
		}
		if r.SentencingYear < min {
			min = r.SentencingYear
		}
		if r.SentencingYear > max {
			max = r.SentencingYear
		}
	}
	return min, max, ok
}

// LoadFile reads a records CSV from disk.
func LoadFile(path string) (*Store, LoadStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, LoadStats{}, fmt.Errorf("open records: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load reads a records CSV. The first row must be a header.
func Load(r io.Reader) (*Store, LoadStats, error) {
	var stats LoadStats

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, stats, fmt.Errorf("records CSV is empty")
		}
		return nil, stats, fmt.Errorf("read records header: %w", err)
	}
	idx := indexColumns(header)
	for _, c := range requiredColumns {
		if _, ok := idx[c]; !ok {
			stats.MissingCols = append(stats.MissingCols, c)
		}
	}
	if len(stats.MissingCols) > 0 {
		return nil, stats, fmt.Errorf("records CSV is missing columns %s", strings.Join(stats.MissingCols, ", "))
	}

	var records []Record
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, stats, fmt.Errorf("read records row %d: %w", stats.Rows+2, err)
		}
		stats.Rows++
		if len(row) < len(header) {
			stats.Skipped++
			continue
		}
		rec, badYear, badDate := parseRow(row, idx)
		if badYear {
			stats.BadYears++
		}
		if badDate {
			stats.BadDates++
		}
		records = append(records, rec)
	}
	return &Store{records: records}, stats, nil
}

func indexColumns(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimPrefix(strings.TrimSpace(name), "\ufeff")
		idx[strings.ToLower(name)] = i
	}
	return idx
}

func parseRow(row []string, idx map[string]int) (rec Record, badYear, badDate bool) {
	field := func(name string) string {
		i, ok := idx[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	rec = Record{
		Gender: ParseGender(field(colGender)),
		Race:   strings.TrimSpace(field(colRace)),
		State:  strings.TrimSpace(field(colState)),
		County: strings.TrimSpace(field(colCounty)),

		VolunteerExecution: parseFlag(field(colVolunteerExecution)),
		Died:               parseFlag(field(colDied)),
		Suicide:            parseFlag(field(colSuicide)),
		Commuted:           parseFlag(field(colCommuted)),
		Exonerated:         parseFlag(field(colExonerated)),
		Resentenced:        parseFlag(field(colResentenced)),
		Released:           parseFlag(field(colReleased)),
	}

	if y, err := strconv.Atoi(strings.TrimSpace(field(colSentencingYear))); err == nil {
		rec.SentencingYear = y
	} else {
		badYear = true
	}

	if raw := strings.TrimSpace(field(colSentencingDate)); raw != "" {
		if t, err := time.Parse(DateLayout, raw); err == nil {
			rec.SentencingDate = t
		} else {
			badDate = true
		}
	}
	return rec, badYear, badDate
}
