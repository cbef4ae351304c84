package crossfilter

import (
	"testing"

	"go.uber.org/goleak"

	"github.com/keilerkonzept/condemned-dash/internal/dataset"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func rec(g dataset.Gender, race string, year int) dataset.Record {
	return dataset.Record{Gender: g, Race: race, State: "Texas", SentencingYear: year}
}

// fiveRecords is the gender scenario: two Male, two Female, one Other.
func fiveRecords() []dataset.Record {
	return []dataset.Record{
		rec(dataset.GenderMale, "White", 1976),
		rec(dataset.GenderMale, "Black", 1977),
		rec(dataset.GenderFemale, "White", 1978),
		rec(dataset.GenderFemale, "Latino", 1979),
		rec(dataset.GenderOther, "Black", 1979),
	}
}

func countMap(counts []Count) map[string]int {
	out := make(map[string]int, len(counts))
	for _, c := range counts {
		out[c.Key] = c.Count
	}
	return out
}
