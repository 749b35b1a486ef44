package models

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// OrganizationType is the kind of entity an organization represents
type OrganizationType string

const (
	OrganizationTypeOrganization OrganizationType = "organization"
	OrganizationTypeIndividual   OrganizationType = "individual"
)

// OwnerKind tags the owner reference of an organization
type OwnerKind string

const (
	OwnerKindUser OwnerKind = "user"
)

// Valid reports whether k is a known owner kind
func (k OwnerKind) Valid() bool {
	switch k {
	case OwnerKindUser:
		return true
	}
	return false
}

// Value implements driver.Valuer and refuses unknown kinds
func (k OwnerKind) Value() (driver.Value, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("unknown owner kind %q", string(k))
	}
	return string(k), nil
}

// Scan implements sql.Scanner
func (k *OwnerKind) Scan(value interface{}) error {
	var raw string
	switch v := value.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("cannot scan %T into OwnerKind", value)
	}
	kind := OwnerKind(raw)
	if !kind.Valid() {
		return fmt.Errorf("unknown owner kind %q", raw)
	}
	*k = kind
	return nil
}

// Owner is the polymorphic owner reference of an organization
type Owner struct {
	Kind OwnerKind
	ID   uuid.UUID
}

// UserOwner returns an owner reference pointing at a user
func UserOwner(userID uuid.UUID) Owner {
	return Owner{Kind: OwnerKindUser, ID: userID}
}

type Organization struct {
	ID          uuid.UUID         `json:"id" gorm:"type:uuid;primaryKey"`
	Name        string            `json:"name" gorm:"size:255;not null;uniqueIndex:idx_organizations_owner_name,priority:3"`
	Slug        string            `json:"slug" gorm:"size:255;uniqueIndex;not null"`
	Description *string           `json:"description" gorm:"type:text"`
	Website     *string           `json:"website" gorm:"size:255"`
	Email       string            `json:"email" gorm:"size:255"`
	Phone       *string           `json:"phone" gorm:"size:50"`
	Address     *string           `json:"address" gorm:"size:500"`
	Type        OrganizationType  `json:"type" gorm:"size:20"`
	Industry    *string           `json:"industry" gorm:"size:255"`
	Size        *string           `json:"size" gorm:"size:50"`
	ContactInfo datatypes.JSONMap `json:"contact_info"`
	Settings    datatypes.JSONMap `json:"settings"`
	OwnerType   OwnerKind         `json:"owner_type" gorm:"size:50;not null;uniqueIndex:idx_organizations_owner_name,priority:1"`
	OwnerID     uuid.UUID         `json:"owner_id" gorm:"type:uuid;not null;uniqueIndex:idx_organizations_owner_name,priority:2"`
	WorkspaceID *string           `json:"workspace_id" gorm:"size:100;index"`
	IsActive    bool              `json:"is_active" gorm:"not null;default:true;index"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
	DeletedAt   gorm.DeletedAt    `json:"-" gorm:"index"`
}

// TableName returns the table name for Organization
func (Organization) TableName() string {
	return "organizations"
}

// BeforeCreate assigns the primary key
func (o *Organization) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// Owner returns the tagged owner reference
func (o *Organization) Owner() Owner {
	return Owner{Kind: o.OwnerType, ID: o.OwnerID}
}

// SetOwner stores the owner reference
func (o *Organization) SetOwner(owner Owner) {
	o.OwnerType = owner.Kind
	o.OwnerID = owner.ID
}
