package crossfilter

import "github.com/keilerkonzept/condemned-dash/internal/dataset"

// Match reports whether rec passes every dimension in mask.
func Match(rec dataset.Record, s *State, mask Mask) bool {
	if mask.Has(Gender) && len(s.genders) > 0 {
		if _, ok := s.genders[string(rec.Gender)]; !ok {
			return false
		}
	}
	if mask.Has(Race) && len(s.races) > 0 {
		if _, ok := s.races[rec.Race]; !ok {
			return false
		}
	}
	if mask.Has(Year) && s.hasYears && !s.years.Contains(rec.SentencingYear) {
		return false
	}
	return true
}

// ComputeView returns the records that pass every dimension in mask, in input
// order. It allocates a new slice on each call and never mutates its inputs.
func ComputeView(records []dataset.Record, s *State, mask Mask) []dataset.Record {
	out := make([]dataset.Record, 0, len(records))
	for _, rec := range records {
		if Match(rec, s, mask) {
			out = append(out, rec)
		}
	}
	return out
}

// Count is the number of records in one category.
type Count struct {
	Key   string
	Count int
}

// CountBy groups records by key and returns the counts in first-seen order.
func CountBy(records []dataset.Record, key func(dataset.Record) string) []Count {
	pos := make(map[string]int)
	var out []Count
	for _, rec := range records {
		k := key(rec)
		i, ok := pos[k]
		if !ok {
			i = len(out)
			pos[k] = i
			out = append(out, Count{Key: k})
		}
		out[i].Count++
	}
	return out
}

// ByGender is a CountBy key.
func ByGender(r dataset.Record) string { return string(r.Gender) }

// ByRace is a CountBy key.
func ByRace(r dataset.Record) string { return r.Race }

// ByState is a CountBy key.
func ByState(r dataset.Record) string { return r.State }
