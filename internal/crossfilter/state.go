package crossfilter

import (
	"fmt"
	"sort"
	"strings"
)

// YearWindow is the width of the year range set from a single slider value.
const YearWindow = 4

// YearRange is a closed interval of sentencing years.
type YearRange struct {
	Start int
	End   int
}

// Contains reports whether Start <= year <= End.
func (r YearRange) Contains(year int) bool {
	return year >= r.Start && year <= r.End
}

func (r YearRange) String() string {
	return fmt.Sprintf("%d-%d", r.Start, r.End)
}

// State is the mutable filter state. An empty set or an unset year range means
// the dimension is unfiltered, never that nothing matches.
//
// State is not safe for concurrent use; all mutation happens on the UI event loop.
type State struct {
	genders  map[string]struct{}
	races    map[string]struct{}
	years    YearRange
	hasYears bool
}

// NewState returns an unfiltered state.
func NewState() *State {
	return &State{
		genders: make(map[string]struct{}),
		races:   make(map[string]struct{}),
	}
}

// ToggleGender adds g to the gender filter, or removes it if present.
func (s *State) ToggleGender(g string) {
	toggle(s.genders, g)
}

// ToggleRace adds r to the race filter, or removes it if present.
func (s *State) ToggleRace(r string) {
	toggle(s.races, r)
}

// SetYearRange sets the year filter to [startYear, startYear+3].
func (s *State) SetYearRange(startYear int) {
	s.years = YearRange{Start: startYear, End: startYear + YearWindow - 1}
	s.hasYears = true
}

// ResetAll clears every filter.
func (s *State) ResetAll() {
	clear(s.genders)
	clear(s.races)
	s.years = YearRange{}
	s.hasYears = false
}

// HasGender reports whether g is selected.
func (s *State) HasGender(g string) bool {
	_, ok := s.genders[g]
	return ok
}

// HasRace reports whether r is selected.
func (s *State) HasRace(r string) bool {
	_, ok := s.races[r]
	return ok
}

// Genders returns the selected genders, sorted.
func (s *State) Genders() []string { return sortedKeys(s.genders) }

// Races returns the selected races, sorted.
func (s *State) Races() []string { return sortedKeys(s.races) }

// Years returns the year filter and whether one is set.
func (s *State) Years() (YearRange, bool) {
	return s.years, s.hasYears
}

// Empty reports whether no filter is active.
func (s *State) Empty() bool {
	return len(s.genders) == 0 && len(s.races) == 0 && !s.hasYears
}

// Clone returns an independent copy, used to hand views a snapshot.
func (s *State) Clone() *State {
	c := NewState()
	for k := range s.genders {
		c.genders[k] = struct{}{}
	}
	for k := range s.races {
		c.races[k] = struct{}{}
	}
	c.years, c.hasYears = s.years, s.hasYears
	return c
}

func (s *State) String() string {
	years := "all"
	if s.hasYears {
		years = s.years.String()
	}
	return fmt.Sprintf("gender=[%s] race=[%s] year=%s",
		strings.Join(s.Genders(), ","), strings.Join(s.Races(), ","), years)
}

func toggle(set map[string]struct{}, v string) {
	if _, ok := set[v]; ok {
		delete(set, v)
		return
	}
	set[v] = struct{}{}
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
