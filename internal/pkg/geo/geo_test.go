package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineDistance(t *testing.T) {
	t.Run("same point", func(t *testing.T) {
		assert.Equal(t, 0.0, HaversineDistance(55.7558, 37.6176, 55.7558, 37.6176, EarthRadiusM))
	})

	t.Run("one degree of latitude", func(t *testing.T) {
		d := HaversineDistance(0, 0, 1, 0, EarthRadiusM)
		assert.InDelta(t, EarthRadiusM*math.Pi/180, d, 1e-6)
	})

	t.Run("moscow to saint petersburg", func(t *testing.T) {
		d := HaversineDistance(55.7558, 37.6176, 59.9343, 30.3351, EarthRadiusM)
		assert.InDelta(t, 634_000, d, 5_000)
	})

	t.Run("symmetric", func(t *testing.T) {
		a := HaversineDistance(41.3851, 2.1734, 48.8566, 2.3522, EarthRadiusM)
		b := HaversineDistance(48.8566, 2.3522, 41.3851, 2.1734, EarthRadiusM)
		assert.InDelta(t, a, b, 1e-6)
	})

	t.Run("radius is configurable", func(t *testing.T) {
		d := HaversineDistance(0, 0, 0, 90, 1)
		assert.InDelta(t, math.Pi/2, d, 1e-12)
	})
}

func TestRadiusContains(t *testing.T) {
	center := Point{Lat: 55.7558, Lon: 37.6176}
	building := Point{Lat: 55.7600, Lon: 37.6300}
	d := HaversineDistance(center.Lat, center.Lon, building.Lat, building.Lon, EarthRadiusM)

	t.Run("exactly on the boundary is included", func(t *testing.T) {
		r := Radius{Lat: center.Lat, Lon: center.Lon, RadiusM: d}
		assert.True(t, r.Contains(building, EarthRadiusM))
	})

	t.Run("one metre short is excluded", func(t *testing.T) {
		r := Radius{Lat: center.Lat, Lon: center.Lon, RadiusM: d - 1}
		assert.False(t, r.Contains(building, EarthRadiusM))
	})

	t.Run("centre is always included", func(t *testing.T) {
		r := Radius{Lat: center.Lat, Lon: center.Lon, RadiusM: 1}
		assert.True(t, r.Contains(center, EarthRadiusM))
	})

	t.Run("last-ulp overshoot stays inside", func(t *testing.T) {
		r := Radius{Lat: center.Lat, Lon: center.Lon, RadiusM: math.Nextafter(d, 0)}
		assert.True(t, r.Contains(building, EarthRadiusM))
		assert.Greater(t, r.LimitM(), r.RadiusM)
		assert.Less(t, r.LimitM()-r.RadiusM, 1e-3)
	})
}

func TestBBoxContains(t *testing.T) {
	box := BBox{LatMin: 55, LatMax: 56, LonMin: 37, LonMax: 38}

	tests := []struct {
		name string
		p    Point
		want bool
	}{
		{"inside", Point{55.5, 37.5}, true},
		{"on lat_min edge", Point{55, 37.5}, true},
		{"on lon_max edge", Point{55.5, 38}, true},
		{"on corner", Point{56, 37}, true},
		{"north of box", Point{56.0001, 37.5}, false},
		{"west of box", Point{55.5, 36.9999}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, box.Contains(tt.p, EarthRadiusM))
		})
	}
}

func TestFilterValidate(t *testing.T) {
	assert.NoError(t, Radius{Lat: 10, Lon: 10, RadiusM: 100_000}.Validate())
	assert.Error(t, Radius{Lat: 10, Lon: 10, RadiusM: 0}.Validate())
	assert.Error(t, Radius{Lat: 10, Lon: 10, RadiusM: 100_001}.Validate())
	assert.Error(t, Radius{Lat: 91, Lon: 10, RadiusM: 10}.Validate())

	assert.NoError(t, BBox{LatMin: -1, LatMax: 1, LonMin: -1, LonMax: 1}.Validate())
	assert.Error(t, BBox{LatMin: 1, LatMax: 1, LonMin: -1, LonMax: 1}.Validate())
	assert.Error(t, BBox{LatMin: -1, LatMax: 1, LonMin: 170, LonMax: -170}.Validate())
	assert.Error(t, BBox{LatMin: -91, LatMax: 1, LonMin: -1, LonMax: 1}.Validate())
}
