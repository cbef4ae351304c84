// Package dataset holds the immutable sentencing records the dashboard filters over.
package dataset

import (
	"strings"
	"time"
)

// Gender is the categorical gender of a case. Missing values load as GenderOther.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

// DateLayout is the layout of the sentencing_date column.
const DateLayout = "01/02/2006"

// ParseGender maps a raw column value to a Gender. Anything that is not Male or
// Female (including the empty string) becomes GenderOther.
func ParseGender(raw string) Gender {
	switch Gender(strings.TrimSpace(raw)) {
	case GenderMale:
		return GenderMale
	case GenderFemale:
		return GenderFemale
	default:
		return GenderOther
	}
}

// Record is one sentencing case.
type Record struct {
	Gender         Gender
	Race           string
	State          string
	County         string
	SentencingYear int
	SentencingDate time.Time

	VolunteerExecution bool
	Died               bool
	Suicide            bool
	Commuted           bool
	Exonerated         bool
	Resentenced        bool
	Released           bool
}

func parseFlag(raw string) bool {
	return raw == "Y"
}
