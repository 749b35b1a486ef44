package authz

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"organizations-backend/shared/apperror"
)

// WorkspaceAccess decides whether a subject may work inside a workspace
type WorkspaceAccess interface {
	CanAccessWorkspace(ctx context.Context, subject uuid.UUID, workspaceID string) (bool, error)
}

// RoleWorkspaceAccess grants workspace access to holders of any workspace role
type RoleWorkspaceAccess struct {
	roles RoleOracle
}

func NewRoleWorkspaceAccess(roles RoleOracle) *RoleWorkspaceAccess {
	return &RoleWorkspaceAccess{roles: roles}
}

func (a *RoleWorkspaceAccess) CanAccessWorkspace(ctx context.Context, subject uuid.UUID, workspaceID string) (bool, error) {
	role, err := a.roles.RoleOf(ctx, subject, WorkspaceContext(workspaceID))
	if err != nil {
		return false, err
	}
	for _, r := range WorkspaceRoles {
		if role == r {
			return true, nil
		}
	}
	return false, nil
}

// Gate checks every organization request against the permission table
type Gate struct {
	roles           RoleOracle
	workspaces      WorkspaceAccess
	workspaceScoped bool
}

// NewGate builds a gate. workspaces may be nil when no workspace collaborator
// is installed; workspace ids are then accepted without an access check.
func NewGate(roles RoleOracle, workspaces WorkspaceAccess, workspaceScoped bool) *Gate {
	return &Gate{
		roles:           roles,
		workspaces:      workspaces,
		workspaceScoped: workspaceScoped,
	}
}

// ScopedWorkspace returns the workspace id a request is restricted to, or ""
// when workspace scoping is disabled or no id was supplied.
func (g *Gate) ScopedWorkspace(workspaceID string) string {
	if !g.workspaceScoped {
		return ""
	}
	return workspaceID
}

// AuthorizeWorkspace fails with 403 when the subject has no access to the workspace
func (g *Gate) AuthorizeWorkspace(ctx context.Context, subject uuid.UUID, workspaceID string) error {
	if g.ScopedWorkspace(workspaceID) == "" || g.workspaces == nil {
		return nil
	}

	ok, err := g.workspaces.CanAccessWorkspace(ctx, subject, workspaceID)
	if err != nil {
		return fmt.Errorf("check workspace access: %w", err)
	}
	if !ok {
		return apperror.Unauthorized()
	}
	return nil
}

// Authorize checks op against the role the subject holds in the organization
// and returns that role ("" when none). Operations open to any subject skip
// the role lookup.
func (g *Gate) Authorize(ctx context.Context, subject uuid.UUID, op Operation, organizationID uuid.UUID) (Role, error) {
	if !RequiresRole(op) {
		return "", nil
	}

	role, err := g.roles.RoleOf(ctx, subject, OrganizationContext(organizationID))
	if err != nil {
		return "", fmt.Errorf("resolve role for %s: %w", op, err)
	}
	if !Allows(op, role) {
		return role, apperror.Unauthorized()
	}
	return role, nil
}
