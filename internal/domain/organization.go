package domain

import (
	"github.com/google/uuid"

	"github.com/org-directory/internal/pkg/geo"
)

// Organization - организация, расположенная ровно в одном здании
type Organization struct {
	ID           uuid.UUID     `json:"id" db:"id"`
	Name         string        `json:"name" db:"name"`
	BuildingID   uuid.UUID     `json:"building_id" db:"building_id"`
	Activities   []Activity    `json:"activities"`
	PhoneNumbers []PhoneNumber `json:"phone_numbers"`
}

// OrganizationFilter is the combined predicate handed to storage. Every set
// field narrows the result; the zero value matches all organizations.
type OrganizationFilter struct {
	// Name is matched as a case-insensitive substring.
	Name *string
	// BuildingID is an exact match.
	BuildingID *uuid.UUID
	// ActivityIDs is the eligibility set: an organization matches when any of
	// its activities is in the set. Empty means no activity constraint.
	ActivityIDs []uuid.UUID
	// Geo is evaluated against the building coordinate.
	Geo geo.Filter
}

// AssociationKind names the target of an organization association.
type AssociationKind string

const (
	AssociationActivity    AssociationKind = "Activity"
	AssociationPhoneNumber AssociationKind = "PhoneNumber"
)
