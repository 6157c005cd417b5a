package usecase_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/org-directory/internal/domain"
	"github.com/org-directory/internal/pkg/errors"
	"github.com/org-directory/internal/repository/memory"
	"github.com/org-directory/internal/usecase"
	"github.com/org-directory/internal/usecase/dto"
)

func newActivityUseCase(store *memory.Store, depth int) *usecase.ActivityUseCase {
	logger := zap.NewNop()
	return usecase.NewActivityUseCase(
		store,
		store.Activities(),
		usecase.NewActivityTree(store.Activities(), logger),
		depth,
		logger,
	)
}

func TestActivityUseCase_Create(t *testing.T) {
	ctx := context.Background()
	store, _ := newMemoryStore(t)
	uc := newActivityUseCase(store, 3)

	root, err := uc.Create(ctx, dto.CreateActivityRequest{Name: "Food"})
	require.NoError(t, err)
	assert.True(t, root.IsRoot())
	assert.NotNil(t, root.Children)

	child, err := uc.Create(ctx, dto.CreateActivityRequest{Name: "Meat", ParentID: &root.ID})
	require.NoError(t, err)
	require.NotNil(t, child.ParentID)
	assert.Equal(t, root.ID, *child.ParentID)

	got, err := uc.GetByID(ctx, root.ID, nil)
	require.NoError(t, err)
	require.Len(t, got.Children, 1)
	assert.Equal(t, "Meat", got.Children[0].Name)

	missing := uuid.New()
	_, err = uc.Create(ctx, dto.CreateActivityRequest{Name: "orphan", ParentID: &missing})
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestActivityUseCase_UpdateRejectsCycles(t *testing.T) {
	ctx := context.Background()
	store, fx := newMemoryStore(t)
	uc := newActivityUseCase(store, 3)

	root := fx.Activity("root", nil)
	a := fx.Activity("A", &root)
	b := fx.Activity("B", &a)

	t.Run("parent is the node itself", func(t *testing.T) {
		_, err := uc.Update(ctx, a.ID, dto.UpdateActivityRequest{Name: "A", ParentID: &a.ID})
		assert.ErrorIs(t, err, errors.ErrActivityCycle)
	})

	t.Run("parent is a descendant", func(t *testing.T) {
		_, err := uc.Update(ctx, root.ID, dto.UpdateActivityRequest{Name: "root", ParentID: &b.ID})
		assert.ErrorIs(t, err, errors.ErrActivityCycle)
	})

	t.Run("moving under a sibling branch", func(t *testing.T) {
		other := fx.Activity("other", nil)
		updated, err := uc.Update(ctx, b.ID, dto.UpdateActivityRequest{Name: "B2", ParentID: &other.ID})
		require.NoError(t, err)
		assert.Equal(t, "B2", updated.Name)
		assert.Equal(t, other.ID, *updated.ParentID)
	})

	t.Run("detaching to a root", func(t *testing.T) {
		updated, err := uc.Update(ctx, a.ID, dto.UpdateActivityRequest{Name: "A"})
		require.NoError(t, err)
		assert.True(t, updated.IsRoot())
	})

	t.Run("unknown activity", func(t *testing.T) {
		_, err := uc.Update(ctx, uuid.New(), dto.UpdateActivityRequest{Name: "x"})
		assert.True(t, errors.IsNotFound(err))
	})
}

func TestActivityUseCase_DepthIsCapped(t *testing.T) {
	ctx := context.Background()
	store, fx := newMemoryStore(t)
	uc := newActivityUseCase(store, 1)

	root := fx.Activity("root", nil)
	a := fx.Activity("A", &root)
	fx.Activity("B", &a)

	got, err := uc.GetByID(ctx, root.ID, ptr(5))
	require.NoError(t, err)
	require.Len(t, got.Children, 1)
	assert.Nil(t, got.Children[0].Children)

	got, err = uc.GetByID(ctx, root.ID, ptr(0))
	require.NoError(t, err)
	assert.Nil(t, got.Children)

	ids, err := uc.Descendants(ctx, root.ID, nil)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{root.ID, a.ID}, ids)
}

func TestActivityUseCase_GetAllAndDelete(t *testing.T) {
	ctx := context.Background()
	store, fx := newMemoryStore(t)
	uc := newActivityUseCase(store, 3)

	root := fx.Activity("root", nil)
	child := fx.Activity("child", &root)

	all, err := uc.GetAll(ctx, domain.DefaultPagination(), nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = uc.GetAll(ctx, domain.Pagination{Limit: 0}, nil)
	assert.ErrorIs(t, err, errors.ErrInvalidPagination)

	require.NoError(t, uc.Delete(ctx, root.ID))
	assert.True(t, errors.IsNotFound(uc.Delete(ctx, root.ID)))

	got, err := uc.GetByID(ctx, child.ID, nil)
	require.NoError(t, err)
	assert.True(t, got.IsRoot(), "children of a deleted node become roots")

	_, err = uc.Descendants(ctx, root.ID, nil)
	assert.True(t, errors.IsNotFound(err))
}
