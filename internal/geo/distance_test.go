package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type point struct {
	name     string
	lat, lon float64
}

func (p point) LatLng() (float64, float64) { return p.lat, p.lon }

func TestDistance_SamePointIsZero(t *testing.T) {
	points := []point{
		{lat: 0, lon: 0},
		{lat: 35.6588, lon: 139.7034},
		{lat: -89.9, lon: 179.9},
		{lat: 90, lon: -180},
	}
	for _, p := range points {
		assert.Equal(t, 0.0, Distance(p, p))
	}
}

func TestDistance_Symmetric(t *testing.T) {
	pairs := [][2]point{
		{{lat: 35.6588, lon: 139.7034}, {lat: 35.6595, lon: 139.7040}},
		{{lat: 55.7558, lon: 37.6173}, {lat: 59.9343, lon: 30.3351}},
		{{lat: -33.8688, lon: 151.2093}, {lat: 51.5074, lon: -0.1278}},
		{{lat: 0, lon: 179.999}, {lat: 0, lon: -179.999}},
	}
	for _, pair := range pairs {
		ab := Distance(pair[0], pair[1])
		ba := Distance(pair[1], pair[0])
		assert.Equal(t, ab, ba)
		assert.GreaterOrEqual(t, ab, 0.0)
	}
}

func TestDistance_EightyMetersAtEquator(t *testing.T) {
	a := point{lat: 0, lon: 0}
	b := point{lat: 0.00072, lon: 0}

	assert.InDelta(t, 80.0, Distance(a, b), 0.5)
}

func TestDistance_KnownCities(t *testing.T) {
	moscow := point{lat: 55.7558, lon: 37.6173}
	spb := point{lat: 59.9343, lon: 30.3351}

	// ~634 км по большому кругу
	assert.InDelta(t, 634000, Distance(moscow, spb), 3000)
}

func TestValidLatLng(t *testing.T) {
	assert.True(t, ValidLatLng(90, 180))
	assert.True(t, ValidLatLng(-90, -180))
	assert.False(t, ValidLatLng(90.1, 0))
	assert.False(t, ValidLatLng(0, -180.5))
}

func TestSortByDistance(t *testing.T) {
	origin := point{lat: 35.6588, lon: 139.7034}
	far := point{name: "far", lat: 35.70, lon: 139.75}
	near := point{name: "near", lat: 35.6590, lon: 139.7035}
	middle := point{name: "middle", lat: 35.665, lon: 139.71}
	nearTwin := point{name: "near-twin", lat: 35.6590, lon: 139.7035}

	sorted := SortByDistance(origin, []point{far, near, middle, nearTwin})

	names := make([]string, len(sorted))
	for i, p := range sorted {
		names[i] = p.name
	}
	assert.Equal(t, []string{"near", "near-twin", "middle", "far"}, names)
}

func TestSortByDistance_DoesNotMutateInput(t *testing.T) {
	origin := point{lat: 0, lon: 0}
	input := []point{{name: "b", lat: 1}, {name: "a", lat: 0.5}}

	_ = SortByDistance(origin, input)

	assert.Equal(t, "b", input[0].name)
}
