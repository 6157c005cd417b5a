package geo

import "github.com/org-directory/internal/pkg/errors"

// Kind - дискриминант гео-фильтра
type Kind string

const (
	KindRadius Kind = "radius"
	KindBBox   Kind = "bbox"
)

// Filter is the sum type over Radius and BBox. Storage layers dispatch on the
// concrete type to build their query fragment; the in-memory store calls
// Contains directly.
type Filter interface {
	Kind() Kind
	// Contains reports whether p satisfies the filter on a sphere of the
	// given radius. BBox ignores the radius.
	Contains(p Point, earthRadiusM float64) bool
	// Validate returns one of the validation_error sentinels of pkg/errors.
	Validate() error
	isFilter()
}

// Radius matches points within RadiusM metres of the centre, boundary
// inclusive.
type Radius struct {
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	RadiusM float64 `json:"radius_m"`
}

func (Radius) Kind() Kind { return KindRadius }
func (Radius) isFilter()  {}

func (r Radius) Contains(p Point, earthRadiusM float64) bool {
	return HaversineDistance(r.Lat, r.Lon, p.Lat, p.Lon, earthRadiusM) <= r.LimitM()
}

// LimitM - RadiusM с относительным допуском RadiusTolerance
func (r Radius) LimitM() float64 {
	return r.RadiusM * (1 + RadiusTolerance)
}

func (r Radius) Validate() error {
	if !ValidateCoordinates(r.Lat, r.Lon) {
		return errors.ErrInvalidCoordinates
	}
	if !ValidateRadius(r.RadiusM) {
		return errors.ErrInvalidRadius
	}
	return nil
}

// BBox matches points inside the rectangle, edges inclusive. Boxes crossing
// the antimeridian are not supported: LonMin must be below LonMax.
type BBox struct {
	LatMin float64 `json:"lat_min"`
	LatMax float64 `json:"lat_max"`
	LonMin float64 `json:"lon_min"`
	LonMax float64 `json:"lon_max"`
}

func (BBox) Kind() Kind { return KindBBox }
func (BBox) isFilter()  {}

func (b BBox) Contains(p Point, _ float64) bool {
	return b.LatMin <= p.Lat && p.Lat <= b.LatMax &&
		b.LonMin <= p.Lon && p.Lon <= b.LonMax
}

func (b BBox) Validate() error {
	if !ValidateCoordinates(b.LatMin, b.LonMin) || !ValidateCoordinates(b.LatMax, b.LonMax) {
		return errors.ErrInvalidCoordinates
	}
	if !(b.LatMin < b.LatMax && b.LonMin < b.LonMax) {
		return errors.ErrInvalidBBox
	}
	return nil
}
