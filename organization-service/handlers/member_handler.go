package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"organizations-backend/shared/apperror"
	"organizations-backend/shared/authz"
	"organizations-backend/shared/repository"
	"organizations-backend/shared/response"
	"organizations-backend/shared/validation"
)

// ListMembers godoc
// @Summary List organization members
// @Description Every user holding a role in the organization
// @Tags members
// @Produce json
// @Param id path string true "Organization ID"
// @Security BearerAuth
// @Success 200 {object} response.Envelope{data=[]MemberResponse}
// @Failure 403 {object} response.ErrorEnvelope
// @Failure 404 {object} response.ErrorEnvelope
// @Router /organizations/{id}/members [get]
func (h *OrganizationHandler) ListMembers(c *gin.Context) {
	subject, ok := h.subject(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	org, err := h.authorizedOrganization(c, subject, authz.OpListMembers)
	if err != nil {
		h.fail(c, err)
		return
	}

	assignments, err := h.roles.Members(ctx, authz.OrganizationContext(org.ID))
	if err != nil {
		h.fail(c, err)
		return
	}

	ids := make([]uuid.UUID, 0, len(assignments))
	for _, a := range assignments {
		ids = append(ids, a.SubjectID)
	}
	users, err := h.users.FindByIDs(ctx, ids)
	if err != nil {
		h.fail(c, err)
		return
	}

	members := make([]MemberResponse, 0, len(assignments))
	for _, a := range assignments {
		member := MemberResponse{
			ID:       a.SubjectID,
			Role:     a.Role.String(),
			JoinedAt: a.CreatedAt,
		}
		if user, found := users[a.SubjectID]; found {
			member.Name = user.Name
			member.Email = user.Email
		}
		members = append(members, member)
	}

	response.Success(c, http.StatusOK, MessageMembersRetrieved, members)
}

// AddMember godoc
// @Summary Add organization member
// @Description Grants an existing user the member (default) or admin role. Owner or admin only.
// @Tags members
// @Accept json
// @Produce json
// @Param id path string true "Organization ID"
// @Param member body MemberRequest true "Member data"
// @Security BearerAuth
// @Success 200 {object} response.MessageEnvelope
// @Failure 400 {object} response.ErrorEnvelope "Unknown user or already invited"
// @Failure 403 {object} response.ErrorEnvelope
// @Failure 404 {object} response.ErrorEnvelope
// @Failure 422 {object} response.ErrorEnvelope
// @Router /organizations/{id}/members [post]
func (h *OrganizationHandler) AddMember(c *gin.Context) {
	subject, ok := h.subject(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	var req MemberRequest
	if err := validation.BindJSON(c, &req); err != nil {
		h.fail(c, err)
		return
	}
	role, valid := authz.ParseInvitableRole(req.Role)
	if !valid {
		h.fail(c, apperror.Validation(map[string][]string{"role": {"The selected role is invalid."}}))
		return
	}

	org, err := h.authorizedOrganization(c, subject, authz.OpAddMember)
	if err != nil {
		h.fail(c, err)
		return
	}

	target, err := h.users.FindByEmail(ctx, req.Email)
	if err != nil {
		h.fail(c, userError(err))
		return
	}

	orgContext := authz.OrganizationContext(org.ID)
	held, err := h.roles.RoleOf(ctx, target.ID, orgContext)
	if err != nil {
		h.fail(c, err)
		return
	}

	switch held {
	case authz.RoleMember, authz.RoleAdmin:
		h.fail(c, apperror.Conflict(MessageAlreadyInvited))
		return
	case authz.RoleOwner:
		// the owner keeps its role
		h.logger.Info("add-member targeted the owner, leaving role unchanged",
			zap.String("organization_id", org.ID.String()),
			zap.String("user_id", target.ID.String()),
		)
	default:
		if err := h.roles.AssignRole(ctx, target.ID, role, orgContext); err != nil {
			h.fail(c, err)
			return
		}
	}

	response.Message(c, MessageMemberAdded)
}

// RemoveMember godoc
// @Summary Remove organization member
// @Description Revokes a member or admin role. The owner can not be removed and callers can not remove themselves.
// @Tags members
// @Produce json
// @Param id path string true "Organization ID"
// @Param member_id path string true "User ID of the member"
// @Security BearerAuth
// @Success 200 {object} response.MessageEnvelope
// @Failure 400 {object} response.ErrorEnvelope
// @Failure 403 {object} response.ErrorEnvelope
// @Failure 404 {object} response.ErrorEnvelope
// @Router /organizations/{id}/members/{member_id} [delete]
func (h *OrganizationHandler) RemoveMember(c *gin.Context) {
	subject, ok := h.subject(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	org, err := h.authorizedOrganization(c, subject, authz.OpRemoveMember)
	if err != nil {
		h.fail(c, err)
		return
	}

	targetID, err := uuid.Parse(c.Param("member_id"))
	if err != nil {
		h.fail(c, apperror.BadRequest(apperror.MessageUserNotFound))
		return
	}
	target, err := h.users.FindByID(ctx, targetID)
	if err != nil {
		h.fail(c, userError(err))
		return
	}

	orgContext := authz.OrganizationContext(org.ID)
	held, err := h.roles.RoleOf(ctx, target.ID, orgContext)
	if err != nil {
		h.fail(c, err)
		return
	}

	switch {
	case held == authz.RoleOwner:
		h.fail(c, apperror.Forbidden(MessageOwnerRemoval))
		return
	case target.ID == subject:
		h.fail(c, apperror.BadRequest(MessageSelfRemoval))
		return
	case held != authz.RoleMember && held != authz.RoleAdmin:
		h.fail(c, apperror.BadRequest(MessageNotAMember))
		return
	}

	if err := h.roles.RemoveRole(ctx, target.ID, held, orgContext); err != nil {
		h.fail(c, err)
		return
	}

	response.Message(c, MessageMemberRemoved)
}

// userError turns a failed account lookup into the 400 the member endpoints report
func userError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperror.BadRequest(apperror.MessageUserNotFound)
	}
	return err
}
