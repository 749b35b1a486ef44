package handlers

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"organizations-backend/shared/database/models"
)

// OrganizationRequest is the body of create and update
type OrganizationRequest struct {
	Name        string                 `json:"name" binding:"required,max=255" example:"Acme"`
	Type        string                 `json:"type" binding:"required,oneof=organization individual" example:"organization"`
	Email       string                 `json:"email" binding:"required,email,max=255" example:"contact@acme.test"`
	Phone       *string                `json:"phone" binding:"omitempty,max=50"`
	Address     *string                `json:"address" binding:"omitempty,max=500"`
	Website     *string                `json:"website" binding:"omitempty,url,max=255"`
	Description *string                `json:"description" binding:"omitempty,max=1000"`
	Industry    *string                `json:"industry" binding:"omitempty,max=255"`
	Size        *string                `json:"size" binding:"omitempty,max=50"`
	ContactInfo map[string]interface{} `json:"contact_info"`
	Settings    map[string]interface{} `json:"settings"`
	WorkspaceID *string                `json:"workspace_id" binding:"omitempty,max=100"`
	IsActive    *bool                  `json:"is_active"`
}

// apply copies the mutable fields onto org. Workspace and is_active are only
// touched when present.
func (r *OrganizationRequest) apply(org *models.Organization) {
	org.Name = r.Name
	org.Type = models.OrganizationType(r.Type)
	org.Email = r.Email
	org.Phone = r.Phone
	org.Address = r.Address
	org.Website = r.Website
	org.Description = r.Description
	org.Industry = r.Industry
	org.Size = r.Size
	org.ContactInfo = jsonMap(r.ContactInfo)
	org.Settings = jsonMap(r.Settings)
	if r.IsActive != nil {
		org.IsActive = *r.IsActive
	}
}

func jsonMap(m map[string]interface{}) datatypes.JSONMap {
	if m == nil {
		return nil
	}
	return datatypes.JSONMap(m)
}

// MemberRequest is the body of add-member. Role defaults to member.
type MemberRequest struct {
	Email string `json:"email" binding:"required,email" example:"member@acme.test"`
	Role  string `json:"role" binding:"omitempty,oneof=member admin" example:"member"`
}

// MemberResponse is one entry of list-members
type MemberResponse struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name,omitempty"`
	Email    string    `json:"email,omitempty"`
	Role     string    `json:"role" example:"admin"`
	JoinedAt time.Time `json:"joined_at"`
}
