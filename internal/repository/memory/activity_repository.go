package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/org-directory/internal/domain"
)

type activityRepository struct {
	s *Store
}

// stored strips Children and unshares ParentID.
func storedActivity(a domain.Activity) domain.Activity {
	return domain.Activity{ID: a.ID, Name: a.Name, ParentID: copyUUIDPtr(a.ParentID)}
}

func (r *activityRepository) GetAll(ctx context.Context, page domain.Pagination) ([]domain.Activity, error) {
	var out []domain.Activity
	r.s.read(ctx, func(st *state) {
		all := make([]domain.Activity, 0, len(st.activities))
		for _, a := range st.activities {
			all = append(all, storedActivity(a))
		}
		sortByID(all, activityID)
		out = paginate(all, page)
	})
	return out, nil
}

func (r *activityRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Activity, error) {
	var out *domain.Activity
	r.s.read(ctx, func(st *state) {
		if a, ok := st.activities[id]; ok {
			cp := storedActivity(a)
			out = &cp
		}
	})
	return out, nil
}

func (r *activityRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Activity, error) {
	out := []domain.Activity{}
	r.s.read(ctx, func(st *state) {
		seen := make(idSet, len(ids))
		for _, id := range ids {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			if a, ok := st.activities[id]; ok {
				out = append(out, storedActivity(a))
			}
		}
	})
	sortByID(out, activityID)
	return out, nil
}

func (r *activityRepository) GetChildren(ctx context.Context, parentIDs []uuid.UUID) ([]domain.Activity, error) {
	out := []domain.Activity{}
	if len(parentIDs) == 0 {
		return out, nil
	}

	parents := make(idSet, len(parentIDs))
	for _, id := range parentIDs {
		parents[id] = struct{}{}
	}

	r.s.read(ctx, func(st *state) {
		for _, a := range st.activities {
			if a.ParentID == nil {
				continue
			}
			if _, ok := parents[*a.ParentID]; ok {
				out = append(out, storedActivity(a))
			}
		}
	})
	sortByID(out, activityID)
	return out, nil
}

func (r *activityRepository) Create(ctx context.Context, activity *domain.Activity) error {
	if activity.ID == uuid.Nil {
		activity.ID = uuid.New()
	}
	return r.s.write(ctx, func(st *state) error {
		st.activities[activity.ID] = storedActivity(*activity)
		return nil
	})
}

func (r *activityRepository) Update(ctx context.Context, activity *domain.Activity) (bool, error) {
	var found bool
	err := r.s.write(ctx, func(st *state) error {
		if _, found = st.activities[activity.ID]; found {
			st.activities[activity.ID] = storedActivity(*activity)
		}
		return nil
	})
	return found, err
}

// DeleteByID detaches the children and drops organization links.
func (r *activityRepository) DeleteByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var found bool
	err := r.s.write(ctx, func(st *state) error {
		if _, found = st.activities[id]; !found {
			return nil
		}
		delete(st.activities, id)
		for childID, a := range st.activities {
			if a.ParentID != nil && *a.ParentID == id {
				a.ParentID = nil
				st.activities[childID] = a
			}
		}
		unlink(st.orgActivities, id)
		return nil
	})
	return found, err
}
