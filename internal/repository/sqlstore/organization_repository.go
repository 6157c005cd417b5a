package sqlstore

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/org-directory/internal/domain"
	"github.com/org-directory/internal/domain/repository"
	"github.com/org-directory/internal/pkg/errors"
)

type organizationRepository struct {
	db           *DB
	logger       *zap.Logger
	earthRadiusM float64
}

func NewOrganizationRepository(db *DB, earthRadiusM float64) repository.OrganizationRepository {
	return &organizationRepository{
		db:           db,
		logger:       db.logger,
		earthRadiusM: earthRadiusM,
	}
}

// Search строит один запрос из всех заданных условий фильтра.
// Условие по видам деятельности - подзапрос EXISTS, поэтому организация,
// связанная с несколькими подходящими видами, возвращается один раз.
func (r *organizationRepository) Search(
	ctx context.Context,
	filter domain.OrganizationFilter,
	page domain.Pagination,
) ([]domain.Organization, error) {
	var (
		sb    strings.Builder
		conds []string
		args  []interface{}
	)

	sb.WriteString("SELECT o.id, o.name, o.building_id FROM organizations o")

	if filter.Geo != nil {
		sb.WriteString(" JOIN buildings b ON b.id = o.building_id")
		cond, geoArgs, err := geoCondition(filter.Geo, r.earthRadiusM)
		if err != nil {
			r.logger.Error("Failed to build geo condition", zap.Error(err))
			return nil, errors.ErrDatabaseError
		}
		conds = append(conds, cond)
		args = append(args, geoArgs...)
	}

	if filter.Name != nil {
		conds = append(conds, `LOWER(o.name) LIKE ? ESCAPE '\'`)
		args = append(args, "%"+escapeLike(strings.ToLower(*filter.Name))+"%")
	}

	if filter.BuildingID != nil {
		conds = append(conds, "o.building_id = ?")
		args = append(args, *filter.BuildingID)
	}

	if len(filter.ActivityIDs) > 0 {
		conds = append(conds, "EXISTS (SELECT 1 FROM organization_activities oa"+
			" WHERE oa.organization_id = o.id AND oa.activity_id IN (?))")
		args = append(args, filter.ActivityIDs)
	}

	if len(conds) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(conds, " AND "))
	}

	sb.WriteString(" ORDER BY o.id LIMIT ? OFFSET ?")
	args = append(args, page.Limit, page.Offset)

	orgs := []domain.Organization{}
	if err := r.db.selectIn(ctx, &orgs, sb.String(), args...); err != nil {
		r.logger.Error("Failed to search organizations", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return orgs, nil
}

func (r *organizationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Organization, error) {
	var o domain.Organization
	found, err := r.db.get(ctx, &o, "SELECT id, name, building_id FROM organizations WHERE id = ?", id)
	if err != nil {
		r.logger.Error("Failed to get organization", zap.String("id", id.String()), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	if !found {
		return nil, nil
	}
	return &o, nil
}

func (r *organizationRepository) Create(ctx context.Context, org *domain.Organization) error {
	if org.ID == uuid.Nil {
		org.ID = uuid.New()
	}

	_, err := r.db.exec(ctx, "INSERT INTO organizations (id, name, building_id) VALUES (?, ?, ?)",
		org.ID, org.Name, org.BuildingID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return errors.ErrReferenceConflict
		}
		r.logger.Error("Failed to create organization", zap.String("name", org.Name), zap.Error(err))
		return errors.ErrDatabaseError
	}
	return nil
}

func (r *organizationRepository) Update(ctx context.Context, org *domain.Organization) (bool, error) {
	n, err := r.db.exec(ctx, "UPDATE organizations SET name = ?, building_id = ? WHERE id = ?",
		org.Name, org.BuildingID, org.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return false, errors.ErrReferenceConflict
		}
		r.logger.Error("Failed to update organization", zap.String("id", org.ID.String()), zap.Error(err))
		return false, errors.ErrDatabaseError
	}
	return n > 0, nil
}

func (r *organizationRepository) DeleteByID(ctx context.Context, id uuid.UUID) (bool, error) {
	n, err := r.db.exec(ctx, "DELETE FROM organizations WHERE id = ?", id)
	if err != nil {
		r.logger.Error("Failed to delete organization", zap.String("id", id.String()), zap.Error(err))
		return false, errors.ErrDatabaseError
	}
	return n > 0, nil
}

type organizationActivityRow struct {
	OrganizationID uuid.UUID `db:"organization_id"`
	domain.Activity
}

func (r *organizationRepository) ActivitiesOf(
	ctx context.Context,
	orgIDs []uuid.UUID,
) (map[uuid.UUID][]domain.Activity, error) {
	result := make(map[uuid.UUID][]domain.Activity, len(orgIDs))
	if len(orgIDs) == 0 {
		return result, nil
	}

	query := `
		SELECT oa.organization_id, a.id, a.name, a.parent_id
		FROM organization_activities oa
		JOIN activities a ON a.id = oa.activity_id
		WHERE oa.organization_id IN (?)
		ORDER BY oa.organization_id, a.id
	`

	var rows []organizationActivityRow
	if err := r.db.selectIn(ctx, &rows, query, orgIDs); err != nil {
		r.logger.Error("Failed to load organization activities", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	for _, row := range rows {
		result[row.OrganizationID] = append(result[row.OrganizationID], row.Activity)
	}
	return result, nil
}

type organizationPhoneRow struct {
	OrganizationID uuid.UUID `db:"organization_id"`
	domain.PhoneNumber
}

func (r *organizationRepository) PhoneNumbersOf(
	ctx context.Context,
	orgIDs []uuid.UUID,
) (map[uuid.UUID][]domain.PhoneNumber, error) {
	result := make(map[uuid.UUID][]domain.PhoneNumber, len(orgIDs))
	if len(orgIDs) == 0 {
		return result, nil
	}

	query := `
		SELECT op.organization_id, p.id, p.phone_number
		FROM organization_phone_numbers op
		JOIN phone_numbers p ON p.id = op.phone_number_id
		WHERE op.organization_id IN (?)
		ORDER BY op.organization_id, p.id
	`

	var rows []organizationPhoneRow
	if err := r.db.selectIn(ctx, &rows, query, orgIDs); err != nil {
		r.logger.Error("Failed to load organization phone numbers", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	for _, row := range rows {
		result[row.OrganizationID] = append(result[row.OrganizationID], row.PhoneNumber)
	}
	return result, nil
}

func (r *organizationRepository) AssignActivities(ctx context.Context, orgID uuid.UUID, activityIDs []uuid.UUID) error {
	err := r.db.insertPairs(ctx, "organization_activities", "organization_id", "activity_id", orgID, activityIDs)
	if err != nil {
		if isForeignKeyViolation(err) {
			r.logger.Warn("Assign activities hit a missing reference",
				zap.String("organization_id", orgID.String()),
				zap.Error(err),
			)
			return errors.ErrReferenceConflict
		}
		r.logger.Error("Failed to assign activities",
			zap.String("organization_id", orgID.String()),
			zap.Error(err),
		)
		return errors.ErrDatabaseError
	}
	return nil
}

func (r *organizationRepository) UnassignActivities(ctx context.Context, orgID uuid.UUID, activityIDs []uuid.UUID) error {
	if len(activityIDs) == 0 {
		return nil
	}

	_, err := r.db.execIn(ctx,
		"DELETE FROM organization_activities WHERE organization_id = ? AND activity_id IN (?)",
		orgID, activityIDs,
	)
	if err != nil {
		r.logger.Error("Failed to unassign activities",
			zap.String("organization_id", orgID.String()),
			zap.Error(err),
		)
		return errors.ErrDatabaseError
	}
	return nil
}

func (r *organizationRepository) AssignPhoneNumbers(ctx context.Context, orgID uuid.UUID, phoneIDs []uuid.UUID) error {
	err := r.db.insertPairs(ctx, "organization_phone_numbers", "organization_id", "phone_number_id", orgID, phoneIDs)
	if err != nil {
		if isForeignKeyViolation(err) {
			r.logger.Warn("Assign phone numbers hit a missing reference",
				zap.String("organization_id", orgID.String()),
				zap.Error(err),
			)
			return errors.ErrReferenceConflict
		}
		r.logger.Error("Failed to assign phone numbers",
			zap.String("organization_id", orgID.String()),
			zap.Error(err),
		)
		return errors.ErrDatabaseError
	}
	return nil
}

func (r *organizationRepository) UnassignPhoneNumbers(ctx context.Context, orgID uuid.UUID, phoneIDs []uuid.UUID) error {
	if len(phoneIDs) == 0 {
		return nil
	}

	_, err := r.db.execIn(ctx,
		"DELETE FROM organization_phone_numbers WHERE organization_id = ? AND phone_number_id IN (?)",
		orgID, phoneIDs,
	)
	if err != nil {
		r.logger.Error("Failed to unassign phone numbers",
			zap.String("organization_id", orgID.String()),
			zap.Error(err),
		)
		return errors.ErrDatabaseError
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
