package usecase

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/org-directory/internal/domain"
	"github.com/org-directory/internal/domain/repository"
	"github.com/org-directory/internal/pkg/errors"
	"github.com/org-directory/internal/usecase/dto"
)

type OrganizationUseCase struct {
	uow          repository.UnitOfWork
	orgRepo      repository.OrganizationRepository
	buildingRepo repository.BuildingRepository
	activityRepo repository.ActivityRepository
	phoneRepo    repository.PhoneNumberRepository
	tree         *ActivityTree
	depth        int
	logger       *zap.Logger
}

func NewOrganizationUseCase(
	uow repository.UnitOfWork,
	orgRepo repository.OrganizationRepository,
	buildingRepo repository.BuildingRepository,
	activityRepo repository.ActivityRepository,
	phoneRepo repository.PhoneNumberRepository,
	tree *ActivityTree,
	depth int,
	logger *zap.Logger,
) *OrganizationUseCase {
	return &OrganizationUseCase{
		uow:          uow,
		orgRepo:      orgRepo,
		buildingRepo: buildingRepo,
		activityRepo: activityRepo,
		phoneRepo:    phoneRepo,
		tree:         tree,
		depth:        depth,
		logger:       logger,
	}
}

// plan validates the request and builds the storage filter. It never touches
// storage, so malformed requests are rejected before any query runs.
func (uc *OrganizationUseCase) plan(req dto.SearchOrganizationsRequest) (domain.OrganizationFilter, error) {
	if !req.Page.Valid() {
		return domain.OrganizationFilter{}, errors.ErrInvalidPagination
	}
	if req.BuildingID != nil && req.Geo != nil {
		return domain.OrganizationFilter{}, errors.ErrGeoWithBuilding
	}

	filter := domain.OrganizationFilter{
		Name:       req.Name,
		BuildingID: req.BuildingID,
	}

	if req.Geo != nil {
		f, err := req.Geo.ToFilter()
		if err != nil {
			return domain.OrganizationFilter{}, err
		}
		filter.Geo = f
	}

	return filter, nil
}

// Search - поиск организаций по комбинации фильтров.
// Фильтр по виду деятельности учитывает вложенные виды в пределах настроенной
// глубины. Для неизвестного вида деятельности возвращается пустая страница.
func (uc *OrganizationUseCase) Search(ctx context.Context, req dto.SearchOrganizationsRequest) ([]domain.Organization, error) {
	filter, err := uc.plan(req)
	if err != nil {
		return nil, err
	}

	result := []domain.Organization{}
	err = uc.uow.View(ctx, func(ctx context.Context) error {
		if req.ActivityID != nil {
			ids, err := uc.tree.DescendantIDs(ctx, *req.ActivityID, uc.depth)
			if err != nil {
				return err
			}
			if len(ids) == 0 {
				return nil
			}
			filter.ActivityIDs = ids
		}

		orgs, err := uc.orgRepo.Search(ctx, filter, req.Page)
		if err != nil {
			return err
		}

		result, err = uc.hydrate(ctx, orgs)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Debug("Organizations search",
		zap.Bool("by_name", req.Name != nil),
		zap.Bool("by_building", req.BuildingID != nil),
		zap.Bool("by_activity", req.ActivityID != nil),
		zap.Bool("by_geo", req.Geo != nil),
		zap.Int("found", len(result)),
	)
	return result, nil
}

func (uc *OrganizationUseCase) GetByID(ctx context.Context, id uuid.UUID) (*domain.Organization, error) {
	var result *domain.Organization
	err := uc.uow.View(ctx, func(ctx context.Context) error {
		var err error
		result, err = uc.load(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, errors.NotFound(domain.EntityOrganization, id)
	}
	return result, nil
}

func (uc *OrganizationUseCase) Create(ctx context.Context, req dto.CreateOrganizationRequest) (*domain.Organization, error) {
	org := domain.Organization{ID: uuid.New(), Name: req.Name, BuildingID: req.BuildingID}

	var result *domain.Organization
	err := uc.uow.Do(ctx, func(ctx context.Context) error {
		if err := uc.checkBuilding(ctx, req.BuildingID); err != nil {
			return err
		}
		if err := uc.orgRepo.Create(ctx, &org); err != nil {
			return err
		}
		if err := uc.assignActivities(ctx, org.ID, req.ActivityIDs); err != nil {
			return err
		}
		if err := uc.assignPhoneNumbers(ctx, org.ID, req.PhoneNumberIDs); err != nil {
			return err
		}

		var err error
		result, err = uc.load(ctx, org.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if result == nil {
		uc.logger.Error("Created organization is missing", zap.String("id", org.ID.String()))
		return nil, errors.Internal()
	}

	uc.logger.Info("Organization created", zap.String("id", org.ID.String()))
	return result, nil
}

func (uc *OrganizationUseCase) Update(ctx context.Context, id uuid.UUID, req dto.UpdateOrganizationRequest) (*domain.Organization, error) {
	org := domain.Organization{ID: id, Name: req.Name, BuildingID: req.BuildingID}

	var result *domain.Organization
	err := uc.uow.Do(ctx, func(ctx context.Context) error {
		if err := uc.checkOrganization(ctx, id); err != nil {
			return err
		}
		if err := uc.checkBuilding(ctx, req.BuildingID); err != nil {
			return err
		}
		if _, err := uc.orgRepo.Update(ctx, &org); err != nil {
			return err
		}

		var err error
		result, err = uc.load(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Delete удаляет организацию; связи удаляются вместе с ней
func (uc *OrganizationUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	return uc.uow.Do(ctx, func(ctx context.Context) error {
		found, err := uc.orgRepo.DeleteByID(ctx, id)
		if err != nil {
			return err
		}
		if !found {
			return errors.NotFound(domain.EntityOrganization, id)
		}
		return nil
	})
}

func (uc *OrganizationUseCase) AssignActivities(ctx context.Context, orgID uuid.UUID, activityIDs []uuid.UUID) error {
	return uc.uow.Do(ctx, func(ctx context.Context) error {
		if err := uc.checkOrganization(ctx, orgID); err != nil {
			return err
		}
		return uc.assignActivities(ctx, orgID, activityIDs)
	})
}

// UnassignActivities is a no-op for an empty list and for pairs that are not
// linked.
func (uc *OrganizationUseCase) UnassignActivities(ctx context.Context, orgID uuid.UUID, activityIDs []uuid.UUID) error {
	if len(activityIDs) == 0 {
		return nil
	}
	return uc.uow.Do(ctx, func(ctx context.Context) error {
		if err := uc.checkOrganization(ctx, orgID); err != nil {
			return err
		}
		return uc.orgRepo.UnassignActivities(ctx, orgID, activityIDs)
	})
}

func (uc *OrganizationUseCase) AssignPhoneNumbers(ctx context.Context, orgID uuid.UUID, phoneIDs []uuid.UUID) error {
	return uc.uow.Do(ctx, func(ctx context.Context) error {
		if err := uc.checkOrganization(ctx, orgID); err != nil {
			return err
		}
		return uc.assignPhoneNumbers(ctx, orgID, phoneIDs)
	})
}

func (uc *OrganizationUseCase) UnassignPhoneNumbers(ctx context.Context, orgID uuid.UUID, phoneIDs []uuid.UUID) error {
	if len(phoneIDs) == 0 {
		return nil
	}
	return uc.uow.Do(ctx, func(ctx context.Context) error {
		if err := uc.checkOrganization(ctx, orgID); err != nil {
			return err
		}
		return uc.orgRepo.UnassignPhoneNumbers(ctx, orgID, phoneIDs)
	})
}

func (uc *OrganizationUseCase) assignActivities(ctx context.Context, orgID uuid.UUID, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	found, err := uc.activityRepo.GetByIDs(ctx, ids)
	if err != nil {
		return err
	}
	existing := make(map[uuid.UUID]struct{}, len(found))
	for _, a := range found {
		existing[a.ID] = struct{}{}
	}
	if missing, ok := firstMissing(ids, existing); ok {
		return errors.NotFound(domain.EntityActivity, missing)
	}

	return uc.orgRepo.AssignActivities(ctx, orgID, ids)
}

func (uc *OrganizationUseCase) assignPhoneNumbers(ctx context.Context, orgID uuid.UUID, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	found, err := uc.phoneRepo.GetByIDs(ctx, ids)
	if err != nil {
		return err
	}
	existing := make(map[uuid.UUID]struct{}, len(found))
	for _, p := range found {
		existing[p.ID] = struct{}{}
	}
	if missing, ok := firstMissing(ids, existing); ok {
		return errors.NotFound(domain.EntityPhoneNumber, missing)
	}

	return uc.orgRepo.AssignPhoneNumbers(ctx, orgID, ids)
}

func firstMissing(ids []uuid.UUID, existing map[uuid.UUID]struct{}) (uuid.UUID, bool) {
	for _, id := range ids {
		if _, ok := existing[id]; !ok {
			return id, true
		}
	}
	return uuid.Nil, false
}

func (uc *OrganizationUseCase) checkOrganization(ctx context.Context, id uuid.UUID) error {
	org, err := uc.orgRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if org == nil {
		return errors.NotFound(domain.EntityOrganization, id)
	}
	return nil
}

func (uc *OrganizationUseCase) checkBuilding(ctx context.Context, id uuid.UUID) error {
	b, err := uc.buildingRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if b == nil {
		return errors.NotFound(domain.EntityBuilding, id)
	}
	return nil
}

// load reads one organization and hydrates it; nil when absent.
func (uc *OrganizationUseCase) load(ctx context.Context, id uuid.UUID) (*domain.Organization, error) {
	org, err := uc.orgRepo.GetByID(ctx, id)
	if err != nil || org == nil {
		return nil, err
	}

	hydrated, err := uc.hydrate(ctx, []domain.Organization{*org})
	if err != nil {
		return nil, err
	}
	return &hydrated[0], nil
}

// hydrate attaches activities (expanded through the tree) and phone numbers.
// Activities of all organizations are expanded together.
func (uc *OrganizationUseCase) hydrate(ctx context.Context, orgs []domain.Organization) ([]domain.Organization, error) {
	if len(orgs) == 0 {
		return []domain.Organization{}, nil
	}

	ids := make([]uuid.UUID, 0, len(orgs))
	for _, o := range orgs {
		ids = append(ids, o.ID)
	}

	activitiesByOrg, err := uc.orgRepo.ActivitiesOf(ctx, ids)
	if err != nil {
		return nil, err
	}
	phonesByOrg, err := uc.orgRepo.PhoneNumbersOf(ctx, ids)
	if err != nil {
		return nil, err
	}

	var flat []domain.Activity
	seen := make(map[uuid.UUID]struct{})
	for _, activities := range activitiesByOrg {
		for _, a := range activities {
			if _, ok := seen[a.ID]; ok {
				continue
			}
			seen[a.ID] = struct{}{}
			flat = append(flat, a)
		}
	}

	expanded, err := uc.tree.Expand(ctx, flat, uc.depth)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]domain.Activity, len(expanded))
	for _, a := range expanded {
		byID[a.ID] = a
	}

	out := make([]domain.Organization, 0, len(orgs))
	for _, o := range orgs {
		o.Activities = make([]domain.Activity, 0, len(activitiesByOrg[o.ID]))
		for _, a := range activitiesByOrg[o.ID] {
			o.Activities = append(o.Activities, byID[a.ID])
		}

		o.PhoneNumbers = phonesByOrg[o.ID]
		if o.PhoneNumbers == nil {
			o.PhoneNumbers = []domain.PhoneNumber{}
		}
		out = append(out, o)
	}
	return out, nil
}
