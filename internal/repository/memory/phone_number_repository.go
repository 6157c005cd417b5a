package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/org-directory/internal/domain"
)

type phoneNumberRepository struct {
	s *Store
}

func (r *phoneNumberRepository) GetAll(ctx context.Context, page domain.Pagination) ([]domain.PhoneNumber, error) {
	var out []domain.PhoneNumber
	r.s.read(ctx, func(st *state) {
		all := make([]domain.PhoneNumber, 0, len(st.phoneNumbers))
		for _, p := range st.phoneNumbers {
			all = append(all, p)
		}
		sortByID(all, phoneNumberID)
		out = paginate(all, page)
	})
	return out, nil
}

func (r *phoneNumberRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.PhoneNumber, error) {
	var out *domain.PhoneNumber
	r.s.read(ctx, func(st *state) {
		if p, ok := st.phoneNumbers[id]; ok {
			out = &p
		}
	})
	return out, nil
}

func (r *phoneNumberRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.PhoneNumber, error) {
	out := []domain.PhoneNumber{}
	r.s.read(ctx, func(st *state) {
		seen := make(idSet, len(ids))
		for _, id := range ids {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			if p, ok := st.phoneNumbers[id]; ok {
				out = append(out, p)
			}
		}
	})
	sortByID(out, phoneNumberID)
	return out, nil
}

func (r *phoneNumberRepository) Create(ctx context.Context, phone *domain.PhoneNumber) error {
	if phone.ID == uuid.Nil {
		phone.ID = uuid.New()
	}
	return r.s.write(ctx, func(st *state) error {
		st.phoneNumbers[phone.ID] = *phone
		return nil
	})
}

func (r *phoneNumberRepository) Update(ctx context.Context, phone *domain.PhoneNumber) (bool, error) {
	var found bool
	err := r.s.write(ctx, func(st *state) error {
		if _, found = st.phoneNumbers[phone.ID]; found {
			st.phoneNumbers[phone.ID] = *phone
		}
		return nil
	})
	return found, err
}

func (r *phoneNumberRepository) DeleteByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var found bool
	err := r.s.write(ctx, func(st *state) error {
		if _, found = st.phoneNumbers[id]; !found {
			return nil
		}
		delete(st.phoneNumbers, id)
		unlink(st.orgPhones, id)
		return nil
	})
	return found, err
}
