package authz

// Operation is an action on an organization that requires authorization
type Operation int

const (
	OpRead Operation = iota
	OpCreate
	OpUpdate
	OpDelete
	OpListMembers
	OpAddMember
	OpRemoveMember
)

var operationNames = map[Operation]string{
	OpRead:         "read",
	OpCreate:       "create",
	OpUpdate:       "update",
	OpDelete:       "delete",
	OpListMembers:  "list-members",
	OpAddMember:    "add-member",
	OpRemoveMember: "remove-member",
}

func (op Operation) String() string {
	if name, ok := operationNames[op]; ok {
		return name
	}
	return "unknown"
}

// permissions is the role table for organization-scoped operations.
// A nil entry means any authenticated subject may perform the operation.
var permissions = map[Operation][]Role{
	OpRead:         {RoleOwner, RoleAdmin, RoleMember},
	OpCreate:       nil,
	OpUpdate:       {RoleOwner, RoleAdmin},
	OpDelete:       {RoleOwner},
	OpListMembers:  {RoleOwner, RoleAdmin, RoleMember},
	OpAddMember:    {RoleOwner, RoleAdmin},
	OpRemoveMember: {RoleOwner, RoleAdmin},
}

// RequiresRole reports whether op needs a prior role in the organization.
// Unknown operations always do.
func RequiresRole(op Operation) bool {
	allowed, known := permissions[op]
	return !known || allowed != nil
}

// Allows reports whether holding role permits op
func Allows(op Operation, role Role) bool {
	allowed, known := permissions[op]
	if !known {
		return false
	}
	if allowed == nil {
		return true
	}
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}
