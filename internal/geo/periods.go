// Package geo buckets sentencing records into per-state, per-period counts for
// the map view.
package geo

import "fmt"

// Period is a span of sentencing years. Periods are half-open [Start, End)
// unless Inclusive is set, in which case End is included.
type Period struct {
	Start     int
	End       int
	Inclusive bool
}

// Contains reports whether year falls in the period.
func (p Period) Contains(year int) bool {
	if year < p.Start {
		return false
	}
	if p.Inclusive {
		return year <= p.End
	}
	return year < p.End
}

// Label formats the period the way the count table stores it, e.g. "1976-1980".
func (p Period) Label() string {
	return fmt.Sprintf("%d-%d", p.Start, p.End)
}

// Periods are the fixed 4-year buckets used by the map. The last bucket stops
// at the final year of the dataset and includes it.
var Periods = []Period{
	{Start: 1976, End: 1980},
	{Start: 1980, End: 1984},
	{Start: 1984, End: 1988},
	{Start: 1988, End: 1992},
	{Start: 1992, End: 1996},
	{Start: 1996, End: 2000},
	{Start: 2000, End: 2004},
	{Start: 2004, End: 2008},
	{Start: 2008, End: 2012},
	{Start: 2012, End: 2016},
	{Start: 2016, End: 2019, Inclusive: true},
}

// FirstYear and LastYear bound the years covered by Periods.
var (
	FirstYear = Periods[0].Start
	LastYear  = Periods[len(Periods)-1].End
)

// Lookup returns the index of the first period containing year.
func Lookup(year int) (int, bool) {
	for i, p := range Periods {
		if p.Contains(year) {
			return i, true
		}
	}
	return -1, false
}

// Clamp returns the period containing year, or the nearest one when year lies
// outside every period.
func Clamp(year int) int {
	if i, ok := Lookup(year); ok {
		return i
	}
	if year < FirstYear {
		return 0
	}
	return len(Periods) - 1
}

// PeriodByLabel finds a period from its Label.
func PeriodByLabel(label string) (int, bool) {
	for i, p := range Periods {
		if p.Label() == label {
			return i, true
		}
	}
	return -1, false
}
