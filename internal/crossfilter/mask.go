// Package crossfilter holds the shared filter state of the dashboard and the
// rules that recompute each chart's records when one filter dimension changes.
//
// A view registers with the Hub using two masks. Honors lists the dimensions
// applied to the view's own records and Watches lists the dimensions whose
// changes trigger a refresh. A chart that visualizes a dimension leaves that
// dimension out of Honors so every category of it stays visible and clickable.
package crossfilter

import "strings"

// Dimension is one axis records can be restricted along.
type Dimension uint8

const (
	Gender Dimension = 1 << iota
	Race
	Year
)

func (d Dimension) String() string {
	switch d {
	case Gender:
		return "gender"
	case Race:
		return "race"
	case Year:
		return "year"
	default:
		return "unknown"
	}
}

// Mask is a set of dimensions.
type Mask uint8

// All dimensions.
const All = Mask(Gender | Race | Year)

// MaskOf builds a mask from dimensions.
func MaskOf(dims ...Dimension) Mask {
	var m Mask
	for _, d := range dims {
		m |= Mask(d)
	}
	return m
}

// Has reports whether d is in the mask.
func (m Mask) Has(d Dimension) bool {
	return m&Mask(d) != 0
}

// Intersects reports whether the two masks share a dimension.
func (m Mask) Intersects(o Mask) bool {
	return m&o != 0
}

func (m Mask) String() string {
	if m == 0 {
		return "none"
	}
	var parts []string
	for _, d := range []Dimension{Gender, Race, Year} {
		if m.Has(d) {
			parts = append(parts, d.String())
		}
	}
	return strings.Join(parts, "+")
}
