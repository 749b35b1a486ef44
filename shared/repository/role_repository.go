package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"organizations-backend/shared/authz"
	"organizations-backend/shared/database/models"
)

// RoleRepository stores role assignments and implements authz.RoleOracle
type RoleRepository struct {
	db *gorm.DB
}

var _ authz.RoleOracle = (*RoleRepository)(nil)

func NewRoleRepository(db *gorm.DB) *RoleRepository {
	return &RoleRepository{db: db}
}

func (r *RoleRepository) RoleOf(ctx context.Context, subject uuid.UUID, c authz.Context) (authz.Role, error) {
	var assignment models.RoleAssignment
	err := r.db.WithContext(ctx).
		Where("subject_id = ? AND context_type = ? AND context_id = ?", subject, c.Type, c.ID).
		First(&assignment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("load role of %s in %s:%s: %w", subject, c.Type, c.ID, err)
	}
	return authz.Role(assignment.Role), nil
}

func (r *RoleRepository) HasRole(ctx context.Context, subject uuid.UUID, role authz.Role, c authz.Context) (bool, error) {
	held, err := r.RoleOf(ctx, subject, c)
	if err != nil {
		return false, err
	}
	return held == role, nil
}

func (r *RoleRepository) AssignRole(ctx context.Context, subject uuid.UUID, role authz.Role, c authz.Context) error {
	if !role.Valid() {
		return fmt.Errorf("assign role: unknown role %q", role)
	}

	assignment := models.RoleAssignment{
		SubjectID:   subject,
		Role:        string(role),
		ContextType: c.Type,
		ContextID:   c.ID,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "subject_id"}, {Name: "context_type"}, {Name: "context_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"role", "updated_at"}),
	}).Create(&assignment).Error
	if err != nil {
		return fmt.Errorf("assign role %s to %s: %w", role, subject, err)
	}
	return nil
}

// RemoveRole deletes the assignment only if the subject holds exactly role in c
func (r *RoleRepository) RemoveRole(ctx context.Context, subject uuid.UUID, role authz.Role, c authz.Context) error {
	err := r.db.WithContext(ctx).
		Where("subject_id = ? AND role = ? AND context_type = ? AND context_id = ?", subject, string(role), c.Type, c.ID).
		Delete(&models.RoleAssignment{}).Error
	if err != nil {
		return fmt.Errorf("remove role %s from %s: %w", role, subject, err)
	}
	return nil
}

func (r *RoleRepository) ContextIDs(ctx context.Context, subject uuid.UUID, contextType string) ([]string, error) {
	ids := []string{}
	err := r.db.WithContext(ctx).Model(&models.RoleAssignment{}).
		Where("subject_id = ? AND context_type = ?", subject, contextType).
		Pluck("context_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("list %s contexts of %s: %w", contextType, subject, err)
	}
	return ids, nil
}

func (r *RoleRepository) Members(ctx context.Context, c authz.Context) ([]authz.Assignment, error) {
	var rows []models.RoleAssignment
	err := r.db.WithContext(ctx).
		Where("context_type = ? AND context_id = ?", c.Type, c.ID).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list members of %s:%s: %w", c.Type, c.ID, err)
	}

	members := make([]authz.Assignment, 0, len(rows))
	for _, row := range rows {
		members = append(members, authz.Assignment{
			SubjectID: row.SubjectID,
			Role:      authz.Role(row.Role),
			Context:   c,
			CreatedAt: row.CreatedAt,
		})
	}
	return members, nil
}
