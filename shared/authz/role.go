// Package authz holds the organization role model and the authorization gate
// every organization endpoint passes through.
package authz

import (
	"context"
	"time"

	"github.com/google/uuid"

	"organizations-backend/shared/database/models"
)

// Role is a closed set of roles a subject can hold inside a context
type Role string

const (
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"

	RoleWorkspaceOwner  Role = "workspace-owner"
	RoleWorkspaceAdmin  Role = "workspace-admin"
	RoleWorkspaceMember Role = "workspace-member"
)

// OrganizationRoles are the roles valid in an organization context
var OrganizationRoles = []Role{RoleOwner, RoleAdmin, RoleMember}

// WorkspaceRoles grant access to the organizations of a workspace
var WorkspaceRoles = []Role{RoleWorkspaceMember, RoleWorkspaceOwner, RoleWorkspaceAdmin}

// Valid reports whether r is one of the known roles
func (r Role) Valid() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleMember, RoleWorkspaceOwner, RoleWorkspaceAdmin, RoleWorkspaceMember:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}

// ParseInvitableRole parses a role that can be granted through add-member.
// An empty value defaults to member.
func ParseInvitableRole(value string) (Role, bool) {
	switch Role(value) {
	case "":
		return RoleMember, true
	case RoleMember, RoleAdmin:
		return Role(value), true
	}
	return "", false
}

// Context identifies the scope a role applies to
type Context struct {
	Type string
	ID   string
}

func OrganizationContext(id uuid.UUID) Context {
	return Context{Type: models.ContextTypeOrganization, ID: id.String()}
}

func WorkspaceContext(id string) Context {
	return Context{Type: models.ContextTypeWorkspace, ID: id}
}

// Assignment is one (subject, role, context) fact
type Assignment struct {
	SubjectID uuid.UUID
	Role      Role
	Context   Context
	CreatedAt time.Time
}

// RoleOracle answers and mutates role membership facts
type RoleOracle interface {
	// RoleOf returns the role the subject holds in c, or "" when it holds none
	RoleOf(ctx context.Context, subject uuid.UUID, c Context) (Role, error)
	HasRole(ctx context.Context, subject uuid.UUID, role Role, c Context) (bool, error)
	// AssignRole grants role in c, replacing any role the subject already held there
	AssignRole(ctx context.Context, subject uuid.UUID, role Role, c Context) error
	RemoveRole(ctx context.Context, subject uuid.UUID, role Role, c Context) error
	// ContextIDs lists the ids of every context of contextType the subject holds a role in
	ContextIDs(ctx context.Context, subject uuid.UUID, contextType string) ([]string, error)
	Members(ctx context.Context, c Context) ([]Assignment, error)
}
