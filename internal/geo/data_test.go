package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountriesFor(t *testing.T) {
	assert.Contains(t, CountriesFor("Europe (Southern)"), "Greece")
	assert.Nil(t, CountriesFor("Atlantis"))
}

func TestCitiesForFallback(t *testing.T) {
	assert.Contains(t, CitiesFor("Greece"), "Athens")
	assert.Equal(t, []string{"Capital City", "Major Port", "Historic Town", "Trade Center"}, CitiesFor("Mongolia"))
}

func TestReferenceDataIsCopied(t *testing.T) {
	ref := ReferenceData()
	ref.Topics[0] = "mutated"
	ref.Cities["Greece"][0] = "mutated"
	assert.Equal(t, "General Summary", Topics()[0])
	assert.Equal(t, "Athens", CitiesFor("Greece")[0])
}

func TestRegionsSorted(t *testing.T) {
	rs := Regions()
	assert.NotEmpty(t, rs)
	for i := 1; i < len(rs); i++ {
		assert.LessOrEqual(t, rs[i-1], rs[i])
	}
}
