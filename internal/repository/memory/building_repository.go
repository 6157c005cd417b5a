package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/org-directory/internal/domain"
)

type buildingRepository struct {
	s *Store
}

func (r *buildingRepository) GetAll(ctx context.Context, page domain.Pagination) ([]domain.Building, error) {
	var out []domain.Building
	r.s.read(ctx, func(st *state) {
		all := make([]domain.Building, 0, len(st.buildings))
		for _, b := range st.buildings {
			all = append(all, b)
		}
		sortByID(all, buildingID)
		out = paginate(all, page)
	})
	return out, nil
}

func (r *buildingRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Building, error) {
	var out *domain.Building
	r.s.read(ctx, func(st *state) {
		if b, ok := st.buildings[id]; ok {
			out = &b
		}
	})
	return out, nil
}

func (r *buildingRepository) Create(ctx context.Context, building *domain.Building) error {
	if building.ID == uuid.Nil {
		building.ID = uuid.New()
	}
	return r.s.write(ctx, func(st *state) error {
		st.buildings[building.ID] = *building
		return nil
	})
}

func (r *buildingRepository) Update(ctx context.Context, building *domain.Building) (bool, error) {
	var found bool
	err := r.s.write(ctx, func(st *state) error {
		if _, found = st.buildings[building.ID]; found {
			st.buildings[building.ID] = *building
		}
		return nil
	})
	return found, err
}

// DeleteByID removes the building together with its organizations.
func (r *buildingRepository) DeleteByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var found bool
	err := r.s.write(ctx, func(st *state) error {
		if _, found = st.buildings[id]; !found {
			return nil
		}
		delete(st.buildings, id)
		for orgID, o := range st.organizations {
			if o.BuildingID == id {
				st.deleteOrganization(orgID)
			}
		}
		return nil
	})
	return found, err
}
