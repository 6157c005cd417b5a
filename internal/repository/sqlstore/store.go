package sqlstore

import (
	"context"

	"github.com/org-directory/internal/domain/repository"
)

// Store - реализация repository.Store поверх SQL-базы
type Store struct {
	*DB
	activities    repository.ActivityRepository
	buildings     repository.BuildingRepository
	phoneNumbers  repository.PhoneNumberRepository
	organizations repository.OrganizationRepository
}

func NewStore(db *DB, earthRadiusM float64) *Store {
	return &Store{
		DB:            db,
		activities:    NewActivityRepository(db),
		buildings:     NewBuildingRepository(db),
		phoneNumbers:  NewPhoneNumberRepository(db),
		organizations: NewOrganizationRepository(db, earthRadiusM),
	}
}

func (s *Store) Activities() repository.ActivityRepository        { return s.activities }
func (s *Store) Buildings() repository.BuildingRepository         { return s.buildings }
func (s *Store) PhoneNumbers() repository.PhoneNumberRepository   { return s.phoneNumbers }
func (s *Store) Organizations() repository.OrganizationRepository { return s.organizations }

func (s *Store) Ping(ctx context.Context) error {
	return s.Health(ctx)
}
