package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllows(t *testing.T) {
	tests := []struct {
		op       Operation
		role     Role
		expected bool
	}{
		{OpRead, RoleOwner, true},
		{OpRead, RoleAdmin, true},
		{OpRead, RoleMember, true},
		{OpRead, "", false},
		{OpListMembers, RoleMember, true},
		{OpListMembers, "", false},
		{OpCreate, "", true},
		{OpUpdate, RoleOwner, true},
		{OpUpdate, RoleAdmin, true},
		{OpUpdate, RoleMember, false},
		{OpDelete, RoleOwner, true},
		{OpDelete, RoleAdmin, false},
		{OpDelete, RoleMember, false},
		{OpAddMember, RoleAdmin, true},
		{OpAddMember, RoleMember, false},
		{OpRemoveMember, RoleOwner, true},
		{OpRemoveMember, RoleMember, false},
		{OpRead, RoleWorkspaceOwner, false},
		{Operation(99), RoleOwner, false},
	}

	for _, tt := range tests {
		t.Run(tt.op.String()+"/"+string(tt.role), func(t *testing.T) {
			assert.Equal(t, tt.expected, Allows(tt.op, tt.role))
		})
	}
}

func TestRequiresRole(t *testing.T) {
	assert.False(t, RequiresRole(OpCreate))
	assert.True(t, RequiresRole(OpRead))
	assert.True(t, RequiresRole(OpDelete))
	assert.True(t, RequiresRole(Operation(99)))
}

func TestParseInvitableRole(t *testing.T) {
	role, ok := ParseInvitableRole("")
	assert.True(t, ok)
	assert.Equal(t, RoleMember, role)

	role, ok = ParseInvitableRole("admin")
	assert.True(t, ok)
	assert.Equal(t, RoleAdmin, role)

	_, ok = ParseInvitableRole("owner")
	assert.False(t, ok)

	_, ok = ParseInvitableRole("workspace-admin")
	assert.False(t, ok)
}
