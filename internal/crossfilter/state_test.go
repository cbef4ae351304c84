package crossfilter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToggleRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		initial []string
		value   string
	}{
		{name: "absent value on empty set", value: "Male"},
		{name: "absent value on populated set", initial: []string{"Female"}, value: "Male"},
		{name: "present value", initial: []string{"Male", "Other"}, value: "Male"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewState()
			for _, v := range tt.initial {
				s.ToggleGender(v)
				s.ToggleRace(v)
			}
			beforeGenders, beforeRaces := s.Genders(), s.Races()

			s.ToggleGender(tt.value)
			s.ToggleGender(tt.value)
			s.ToggleRace(tt.value)
			s.ToggleRace(tt.value)

			assert.Equal(t, beforeGenders, s.Genders())
			assert.Equal(t, beforeRaces, s.Races())
		})
	}
}

func TestToggleAddsAndRemoves(t *testing.T) {
	s := NewState()
	s.ToggleRace("White")
	assert.True(t, s.HasRace("White"))
	assert.Equal(t, []string{"White"}, s.Races())

	s.ToggleRace("White")
	assert.False(t, s.HasRace("White"))
	assert.Empty(t, s.Races())
}

func TestSetYearRange(t *testing.T) {
	s := NewState()
	_, ok := s.Years()
	assert.False(t, ok, "new state has no year filter")

	s.SetYearRange(1976)
	yr, ok := s.Years()
	assert.True(t, ok)
	assert.Equal(t, YearRange{Start: 1976, End: 1979}, yr)

	s.SetYearRange(2001)
	yr, _ = s.Years()
	assert.Equal(t, YearRange{Start: 2001, End: 2004}, yr)
}

func TestResetAll(t *testing.T) {
	s := NewState()
	s.ToggleGender("Male")
	s.ToggleRace("Black")
	s.SetYearRange(1990)
	assert.False(t, s.Empty())

	s.ResetAll()
	assert.True(t, s.Empty())
	assert.Empty(t, s.Genders())
	assert.Empty(t, s.Races())
	_, ok := s.Years()
	assert.False(t, ok)
}

func TestCloneIsIndependent(t *testing.T) {
	s := NewState()
	s.ToggleGender("Male")
	c := s.Clone()

	s.ToggleGender("Female")
	s.SetYearRange(1980)

	assert.Equal(t, []string{"Male"}, c.Genders())
	_, ok := c.Years()
	assert.False(t, ok)
}

func TestStateString(t *testing.T) {
	s := NewState()
	assert.Equal(t, "gender=[] race=[] year=all", s.String())
	s.ToggleGender("Male")
	s.ToggleRace("White")
	s.ToggleRace("Black")
	s.SetYearRange(1976)
	assert.Equal(t, "gender=[Male] race=[Black,White] year=1976-1979", s.String())
}

func TestMaskString(t *testing.T) {
	assert.Equal(t, "none", Mask(0).String())
	assert.Equal(t, "gender+year", MaskOf(Year, Gender).String())
	assert.Equal(t, "gender+race+year", All.String())
	assert.True(t, MaskOf(Race).Intersects(All))
	assert.False(t, MaskOf(Race).Intersects(MaskOf(Gender, Year)))
}
