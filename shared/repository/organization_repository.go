package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"organizations-backend/shared/authz"
	"organizations-backend/shared/database/models"
	"organizations-backend/shared/utils/query"
)

// maxSlugAttempts bounds retries when a concurrent insert takes the slug we picked
const maxSlugAttempts = 3

var (
	organizationFilters = map[string]string{
		"type": "type",
	}
	organizationSortFields = map[string]string{
		"name":       "name",
		"slug":       "slug",
		"created_at": "created_at",
		"updated_at": "updated_at",
	}
	organizationSearchFields = []string{"name", "slug"}
)

// ListQuery selects a page of organizations out of a known id set
type ListQuery struct {
	IDs         []uuid.UUID
	WorkspaceID string
	Params      query.FilterParams
}

type OrganizationRepository struct {
	db *gorm.DB
}

func NewOrganizationRepository(db *gorm.DB) *OrganizationRepository {
	return &OrganizationRepository{db: db}
}

// Create inserts the organization and grants its owner the owner role in the
// same transaction. It returns ErrDuplicateName when the owner already has an
// organization with that name.
func (r *OrganizationRepository) Create(ctx context.Context, org *models.Organization) error {
	taken, err := r.NameTaken(ctx, org.Owner(), org.Name, uuid.Nil)
	if err != nil {
		return err
	}
	if taken {
		return ErrDuplicateName
	}

	for attempt := 0; attempt < maxSlugAttempts; attempt++ {
		org.ID = uuid.Nil
		org.Slug, err = r.uniqueSlug(ctx, org.Name, uuid.Nil)
		if err != nil {
			return err
		}

		err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(org).Error; err != nil {
				return err
			}
			owner := models.RoleAssignment{
				SubjectID:   org.OwnerID,
				Role:        string(authz.RoleOwner),
				ContextType: models.ContextTypeOrganization,
				ContextID:   org.ID.String(),
			}
			return tx.Create(&owner).Error
		})
		if err == nil {
			return nil
		}
		if !isDuplicateKey(err) {
			return fmt.Errorf("create organization: %w", err)
		}

		// either the (owner, name) index or the slug index fired
		taken, checkErr := r.NameTaken(ctx, org.Owner(), org.Name, uuid.Nil)
		if checkErr != nil {
			return checkErr
		}
		if taken {
			return ErrDuplicateName
		}
	}

	return fmt.Errorf("create organization: no free slug for %q after %d attempts", org.Name, maxSlugAttempts)
}

// FindByID returns an organization that is not soft-deleted
func (r *OrganizationRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Organization, error) {
	var org models.Organization
	if err := r.db.WithContext(ctx).First(&org, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find organization %s: %w", id, err)
	}
	return &org, nil
}

// NameTaken reports whether owner already has an organization called name,
// soft-deleted ones included, ignoring the organization excludeID.
func (r *OrganizationRepository) NameTaken(ctx context.Context, owner models.Owner, name string, excludeID uuid.UUID) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).Unscoped().Model(&models.Organization{}).
		Where("owner_type = ? AND owner_id = ? AND name = ?", owner.Kind, owner.ID, name)
	if excludeID != uuid.Nil {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, fmt.Errorf("check organization name: %w", err)
	}
	return count > 0, nil
}

// Update writes every mutable column of org. When regenerateSlug is set the
// slug is derived again from the current name.
func (r *OrganizationRepository) Update(ctx context.Context, org *models.Organization, regenerateSlug bool) error {
	taken, err := r.NameTaken(ctx, org.Owner(), org.Name, org.ID)
	if err != nil {
		return err
	}
	if taken {
		return ErrDuplicateName
	}

	if regenerateSlug {
		org.Slug, err = r.uniqueSlug(ctx, org.Name, org.ID)
		if err != nil {
			return err
		}
	}

	result := r.db.WithContext(ctx).Model(org).
		Select("*").
		Omit("id", "owner_type", "owner_id", "created_at", "deleted_at").
		Updates(org)
	if result.Error != nil {
		if isDuplicateKey(result.Error) {
			return ErrDuplicateName
		}
		return fmt.Errorf("update organization %s: %w", org.ID, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SoftDelete marks the organization deleted, leaving the row in place
func (r *OrganizationRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Organization{})
	if result.Error != nil {
		return fmt.Errorf("delete organization %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns one page of the organizations in q.IDs and the total count
func (r *OrganizationRepository) List(ctx context.Context, q ListQuery) ([]models.Organization, int64, error) {
	organizations := []models.Organization{}
	if len(q.IDs) == 0 {
		return organizations, 0, nil
	}

	dbQuery := r.db.WithContext(ctx).Model(&models.Organization{}).Where("id IN ?", q.IDs)
	if q.WorkspaceID != "" {
		dbQuery = dbQuery.Where("workspace_id = ?", q.WorkspaceID)
	}
	if raw, ok := q.Params.Filters["is_active"]; ok {
		if active, err := strconv.ParseBool(raw); err == nil {
			dbQuery = dbQuery.Where("is_active = ?", active)
		}
	}
	dbQuery = query.ApplyFilters(dbQuery, q.Params.Filters, organizationFilters)
	dbQuery = query.ApplySearch(dbQuery, q.Params.Search, organizationSearchFields)

	var total int64
	if err := dbQuery.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count organizations: %w", err)
	}

	dbQuery = query.ApplySort(dbQuery, q.Params.Sort, organizationSortFields)
	dbQuery = query.ApplyPagination(dbQuery, q.Params.Page, q.Params.PerPage)
	if err := dbQuery.Find(&organizations).Error; err != nil {
		return nil, 0, fmt.Errorf("list organizations: %w", err)
	}
	return organizations, total, nil
}

// uniqueSlug derives a slug from name that no other organization uses,
// soft-deleted ones included.
func (r *OrganizationRepository) uniqueSlug(ctx context.Context, name string, excludeID uuid.UUID) (string, error) {
	base := slug.Make(name)
	if base == "" {
		base = "organization"
	}

	var existing []string
	q := r.db.WithContext(ctx).Unscoped().Model(&models.Organization{}).
		Where("slug = ? OR slug LIKE ?", base, base+"-%")
	if excludeID != uuid.Nil {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Pluck("slug", &existing).Error; err != nil {
		return "", fmt.Errorf("load slugs: %w", err)
	}

	used := make(map[string]struct{}, len(existing))
	for _, s := range existing {
		used[s] = struct{}{}
	}
	if _, ok := used[base]; !ok {
		return base, nil
	}
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s-%d", base, i)
		if _, ok := used[candidate]; !ok {
			return candidate, nil
		}
	}
}
