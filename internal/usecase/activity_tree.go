package usecase

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/org-directory/internal/domain"
	"github.com/org-directory/internal/domain/repository"
)

// ActivityTree раскрывает дерево видов деятельности уровень за уровнем.
// На каждый уровень приходится один вызов GetChildren, сколько бы узлов в нём ни было.
type ActivityTree struct {
	repo   repository.ActivityRepository
	logger *zap.Logger
}

func NewActivityTree(repo repository.ActivityRepository, logger *zap.Logger) *ActivityTree {
	return &ActivityTree{
		repo:   repo,
		logger: logger,
	}
}

// Subtree returns the activity with descendants materialised down to
// depthLimit levels, or nil when the id does not exist.
func (t *ActivityTree) Subtree(ctx context.Context, id uuid.UUID, depthLimit int) (*domain.Activity, error) {
	root, err := t.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if root == nil {
		return nil, nil
	}

	nodes, err := t.Expand(ctx, []domain.Activity{*root}, depthLimit)
	if err != nil {
		return nil, err
	}
	return &nodes[0], nil
}

// Expand materialises children for every node in roots. Roots are level 0;
// nodes on level depthLimit keep Children nil, shallower nodes get a non-nil
// slice, empty when they have no children.
func (t *ActivityTree) Expand(ctx context.Context, roots []domain.Activity, depthLimit int) ([]domain.Activity, error) {
	if depthLimit < 0 {
		depthLimit = 0
	}

	children := make(map[uuid.UUID][]domain.Activity)
	visited := make(map[uuid.UUID]struct{}, len(roots))
	frontier := make([]uuid.UUID, 0, len(roots))
	for _, r := range roots {
		if _, ok := visited[r.ID]; ok {
			continue
		}
		visited[r.ID] = struct{}{}
		frontier = append(frontier, r.ID)
	}

	for level := 0; level < depthLimit && len(frontier) > 0; level++ {
		kids, err := t.repo.GetChildren(ctx, frontier)
		if err != nil {
			t.logger.Error("Failed to expand activity level", zap.Int("level", level), zap.Error(err))
			return nil, err
		}

		next := make([]uuid.UUID, 0, len(kids))
		for _, kid := range kids {
			if kid.ParentID == nil {
				continue
			}
			children[*kid.ParentID] = append(children[*kid.ParentID], kid)
			if _, ok := visited[kid.ID]; ok {
				continue
			}
			visited[kid.ID] = struct{}{}
			next = append(next, kid.ID)
		}
		frontier = next
	}

	var build func(a domain.Activity, level int) domain.Activity
	build = func(a domain.Activity, level int) domain.Activity {
		node := domain.Activity{ID: a.ID, Name: a.Name, ParentID: a.ParentID}
		if level >= depthLimit {
			return node
		}
		kids := children[a.ID]
		node.Children = make([]domain.Activity, 0, len(kids))
		for _, kid := range kids {
			node.Children = append(node.Children, build(kid, level+1))
		}
		return node
	}

	out := make([]domain.Activity, 0, len(roots))
	for _, r := range roots {
		out = append(out, build(r, 0))
	}
	return out, nil
}

// DescendantIDs returns rootID and every descendant at most depthLimit levels
// below it. The result is empty when rootID does not exist.
func (t *ActivityTree) DescendantIDs(ctx context.Context, rootID uuid.UUID, depthLimit int) ([]uuid.UUID, error) {
	root, err := t.repo.GetByID(ctx, rootID)
	if err != nil {
		return nil, err
	}
	if root == nil {
		return []uuid.UUID{}, nil
	}

	result := []uuid.UUID{rootID}
	visited := map[uuid.UUID]struct{}{rootID: {}}
	frontier := []uuid.UUID{rootID}

	for round := 0; round < depthLimit && len(frontier) > 0; round++ {
		kids, err := t.repo.GetChildren(ctx, frontier)
		if err != nil {
			t.logger.Error("Failed to collect activity descendants", zap.Int("round", round), zap.Error(err))
			return nil, err
		}

		next := make([]uuid.UUID, 0, len(kids))
		for _, kid := range kids {
			if _, ok := visited[kid.ID]; ok {
				continue
			}
			visited[kid.ID] = struct{}{}
			result = append(result, kid.ID)
			next = append(next, kid.ID)
		}
		frontier = next
	}

	return result, nil
}

// createsCycle reports whether making parentID the parent of id would close a
// loop, by walking the ancestors of parentID.
func (t *ActivityTree) createsCycle(ctx context.Context, id, parentID uuid.UUID) (bool, error) {
	seen := make(map[uuid.UUID]struct{})
	current := &parentID
	for current != nil {
		if *current == id {
			return true, nil
		}
		if _, ok := seen[*current]; ok {
			return true, nil
		}
		seen[*current] = struct{}{}

		node, err := t.repo.GetByID(ctx, *current)
		if err != nil {
			return false, err
		}
		if node == nil {
			return false, nil
		}
		current = node.ParentID
	}
	return false, nil
}
