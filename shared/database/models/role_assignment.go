package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Context types a role assignment can be scoped to
const (
	ContextTypeOrganization = "organization"
	ContextTypeWorkspace    = "workspace"
)

// RoleAssignment grants a subject one role inside a context (type, id).
// A subject holds at most one role per context.
type RoleAssignment struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	SubjectID   uuid.UUID `json:"subject_id" gorm:"type:uuid;not null;uniqueIndex:idx_role_assignments_subject_context,priority:1"`
	Role        string    `json:"role" gorm:"size:50;not null"`
	ContextType string    `json:"context_type" gorm:"size:50;not null;uniqueIndex:idx_role_assignments_subject_context,priority:2;index:idx_role_assignments_context,priority:1"`
	ContextID   string    `json:"context_id" gorm:"size:100;not null;uniqueIndex:idx_role_assignments_subject_context,priority:3;index:idx_role_assignments_context,priority:2"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (RoleAssignment) TableName() string {
	return "role_assignments"
}

func (r *RoleAssignment) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
