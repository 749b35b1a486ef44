package handlers

const (
	MessageOrganizationsRetrieved = "Organizations retrieved successfully"
	MessageOrganizationCreated    = "Organization created successfully"
	MessageOrganizationRetrieved  = "Organization retrieved successfully"
	MessageOrganizationUpdated    = "Organization updated successfully"
	MessageOrganizationDeleted    = "Organization deleted successfully"
	MessageMembersRetrieved       = "Members retrieved successfully"
	MessageMemberAdded            = "Member added successfully"
	MessageMemberRemoved          = "Member removed successfully"

	MessageNameTaken       = "Organization name already exists."
	MessageAlreadyInvited  = "User has already been invited to this organization."
	MessageOwnerRemoval    = "The organization owner cannot be removed."
	MessageSelfRemoval     = "You cannot remove yourself from this organization."
	MessageNotAMember      = "This user is not a member of this organization."
	MessageUnauthenticated = "Unauthenticated."
)
