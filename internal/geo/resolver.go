package geo

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// stateNames maps USPS codes to the state names used by the map grid.
var stateNames = map[string]string{
	"AL": "Alabama", "AK": "Alaska", "AZ": "Arizona", "AR": "Arkansas",
	"CA": "California", "CO": "Colorado", "CT": "Connecticut", "DE": "Delaware",
	"DC": "District of Columbia", "FL": "Florida", "GA": "Georgia", "HI": "Hawaii",
	"ID": "Idaho", "IL": "Illinois", "IN": "Indiana", "IA": "Iowa",
	"KS": "Kansas", "KY": "Kentucky", "LA": "Louisiana", "ME": "Maine",
	"MD": "Maryland", "MA": "Massachusetts", "MI": "Michigan", "MN": "Minnesota",
	"MS": "Mississippi", "MO": "Missouri", "MT": "Montana", "NE": "Nebraska",
	"NV": "Nevada", "NH": "New Hampshire", "NJ": "New Jersey", "NM": "New Mexico",
	"NY": "New York", "NC": "North Carolina", "ND": "North Dakota", "OH": "Ohio",
	"OK": "Oklahoma", "OR": "Oregon", "PA": "Pennsylvania", "RI": "Rhode Island",
	"SC": "South Carolina", "SD": "South Dakota", "TN": "Tennessee", "TX": "Texas",
	"UT": "Utah", "VT": "Vermont", "VA": "Virginia", "WA": "Washington",
	"WV": "West Virginia", "WI": "Wisconsin", "WY": "Wyoming",
}

var stateByName = func() map[string]string {
	out := make(map[string]string, len(stateNames))
	for _, name := range stateNames {
		out[strings.ToLower(name)] = name
	}
	return out
}()

// StateName resolves a USPS code or a full state name (any case) to the
// canonical state name.
func StateName(codeOrName string) (string, bool) {
	s := strings.TrimSpace(codeOrName)
	if name, ok := stateNames[strings.ToUpper(s)]; ok {
		return name, true
	}
	if name, ok := stateByName[strings.ToLower(s)]; ok {
		return name, true
	}
	return "", false
}

// Resolver maps a record's county, then its state column, to a state name.
type Resolver struct {
	// county name -> state names in table order
	counties map[string][]string
}

// NewResolver returns a resolver with an empty county table; only the state
// column fallback is used.
func NewResolver() *Resolver {
	return &Resolver{counties: make(map[string][]string)}
}

// AddCounty registers a county. A trailing " County" is stripped.
func (r *Resolver) AddCounty(county, state string) {
	key := countyKey(county)
	if key == "" || state == "" {
		return
	}
	for _, s := range r.counties[key] {
		if s == state {
			return
		}
	}
	r.counties[key] = append(r.counties[key], state)
}

// Counties is the number of distinct county names known.
func (r *Resolver) Counties() int { return len(r.counties) }

// State resolves the state of a record. The county table is consulted first;
// when a county name exists in several states the record's own state wins if
// it is one of them, otherwise the first table entry is used. If the county is
// unknown the state column is resolved instead.
func (r *Resolver) State(county, stateCode string) (string, bool) {
	fallback, fallbackOK := StateName(stateCode)
	if states := r.counties[countyKey(county)]; len(states) > 0 {
		if fallbackOK {
			for _, s := range states {
				if s == fallback {
					return s, true
				}
			}
		}
		return states[0], true
	}
	return fallback, fallbackOK
}

func countyKey(county string) string {
	c := strings.TrimSpace(county)
	c = strings.TrimSuffix(c, " County")
	return strings.ToLower(c)
}

// LoadResolverFile reads a StateCode,CountyName CSV from disk.
func LoadResolverFile(path string) (*Resolver, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open county table: %w", err)
	}
	defer f.Close()
	return LoadResolver(f)
}

// LoadResolver reads a StateCode,CountyName CSV. Rows whose state code is
// unknown are ignored.
func LoadResolver(r io.Reader) (*Resolver, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return NewResolver(), nil
		}
		return nil, fmt.Errorf("read county header: %w", err)
	}
	si, ci := -1, -1
	for i, h := range header {
		switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(h), "\ufeff")) {
		case "statecode":
			si = i
		case "countyname":
			ci = i
		}
	}
	if si < 0 || ci < 0 {
		return nil, fmt.Errorf("county table needs StateCode and CountyName columns")
	}

	res := NewResolver()
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read county row: %w", err)
		}
		if len(row) <= si || len(row) <= ci {
			continue
		}
		state, ok := StateName(row[si])
		if !ok {
			continue
		}
		res.AddCounty(row[ci], state)
	}
	return res, nil
}
