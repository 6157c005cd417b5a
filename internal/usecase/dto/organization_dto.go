package dto

import (
	"github.com/google/uuid"

	"github.com/org-directory/internal/domain"
	"github.com/org-directory/internal/pkg/errors"
	"github.com/org-directory/internal/pkg/geo"
)

type CreateOrganizationRequest struct {
	Name           string      `json:"name" validate:"required,min=1,max=255"`
	BuildingID     uuid.UUID   `json:"building_id" validate:"required"`
	ActivityIDs    []uuid.UUID `json:"activity_ids"`
	PhoneNumberIDs []uuid.UUID `json:"phone_number_ids"`
}

type UpdateOrganizationRequest struct {
	Name       string    `json:"name" validate:"required,min=1,max=255"`
	BuildingID uuid.UUID `json:"building_id" validate:"required"`
}

// SearchOrganizationsQuery - плоские query-параметры поиска организаций
type SearchOrganizationsQuery struct {
	Name       *string  `query:"name"`
	BuildingID *string  `query:"building_id"`
	ActivityID *string  `query:"activity_id"`
	GeoKind    *string  `query:"geo_kind"`
	Lat        *float64 `query:"lat"`
	Lon        *float64 `query:"lon"`
	RadiusM    *float64 `query:"radius_m"`
	LatMin     *float64 `query:"lat_min"`
	LatMax     *float64 `query:"lat_max"`
	LonMin     *float64 `query:"lon_min"`
	LonMax     *float64 `query:"lon_max"`
}

// GeoQuery is the untyped geo part of a search: a kind plus whichever
// coordinates were supplied.
type GeoQuery struct {
	Kind    geo.Kind
	Lat     *float64
	Lon     *float64
	RadiusM *float64
	LatMin  *float64
	LatMax  *float64
	LonMin  *float64
	LonMax  *float64
}

// SearchOrganizationsRequest - разобранный запрос поиска
type SearchOrganizationsRequest struct {
	Name       *string
	BuildingID *uuid.UUID
	ActivityID *uuid.UUID
	Geo        *GeoQuery
	Page       domain.Pagination
}

func (q SearchOrganizationsQuery) hasGeo() bool {
	return q.GeoKind != nil || q.Lat != nil || q.Lon != nil || q.RadiusM != nil ||
		q.LatMin != nil || q.LatMax != nil || q.LonMin != nil || q.LonMax != nil
}

// ToRequest parses identifiers; cross-field rules are checked by the use case.
func (q SearchOrganizationsQuery) ToRequest(page domain.Pagination) (SearchOrganizationsRequest, error) {
	req := SearchOrganizationsRequest{Name: q.Name, Page: page}

	if q.BuildingID != nil {
		id, err := ParseID("building_id", *q.BuildingID)
		if err != nil {
			return req, err
		}
		req.BuildingID = &id
	}

	if q.ActivityID != nil {
		id, err := ParseID("activity_id", *q.ActivityID)
		if err != nil {
			return req, err
		}
		req.ActivityID = &id
	}

	if q.hasGeo() {
		g := &GeoQuery{
			Lat:     q.Lat,
			Lon:     q.Lon,
			RadiusM: q.RadiusM,
			LatMin:  q.LatMin,
			LatMax:  q.LatMax,
			LonMin:  q.LonMin,
			LonMax:  q.LonMax,
		}
		if q.GeoKind != nil {
			g.Kind = geo.Kind(*q.GeoKind)
		}
		req.Geo = g
	}

	return req, nil
}

// ToFilter checks that the fields required by the kind are present and that
// their values are in range.
func (g *GeoQuery) ToFilter() (geo.Filter, error) {
	var f geo.Filter

	switch g.Kind {
	case geo.KindRadius:
		if g.Lat == nil || g.Lon == nil || g.RadiusM == nil {
			return nil, errors.Validation("lat, lon and radius_m are required for geo_kind=radius")
		}
		f = geo.Radius{Lat: *g.Lat, Lon: *g.Lon, RadiusM: *g.RadiusM}

	case geo.KindBBox:
		if g.LatMin == nil || g.LatMax == nil || g.LonMin == nil || g.LonMax == nil {
			return nil, errors.Validation("lat_min, lat_max, lon_min and lon_max are required for geo_kind=bbox")
		}
		f = geo.BBox{LatMin: *g.LatMin, LatMax: *g.LatMax, LonMin: *g.LonMin, LonMax: *g.LonMax}

	case "":
		return nil, errors.Validation("geo_kind is required when geo parameters are given")

	default:
		return nil, errors.Validation("geo_kind must be one of: radius, bbox")
	}

	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}
