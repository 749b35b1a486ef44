package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"organizations-backend/shared/apperror"
	"organizations-backend/shared/authz"
	"organizations-backend/shared/config"
	"organizations-backend/shared/database/models"
	"organizations-backend/shared/events"
	"organizations-backend/shared/repository"
	"organizations-backend/shared/response"
	"organizations-backend/shared/utils/query"
	"organizations-backend/shared/validation"
)

// OrganizationStore persists organizations
type OrganizationStore interface {
	Create(ctx context.Context, org *models.Organization) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Organization, error)
	Update(ctx context.Context, org *models.Organization, regenerateSlug bool) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, q repository.ListQuery) ([]models.Organization, int64, error)
}

// UserDirectory resolves accounts owned by the identity system
type UserDirectory interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.User, error)
}

// EventDispatcher receives events after their write committed
type EventDispatcher interface {
	Dispatch(ctx context.Context, event events.Event)
}

// OrganizationHandler serves the organization and membership endpoints
type OrganizationHandler struct {
	store          OrganizationStore
	users          UserDirectory
	roles          authz.RoleOracle
	gate           *authz.Gate
	events         EventDispatcher
	regenerateSlug bool
	logger         *zap.Logger
}

// NewOrganizationHandler creates a new organization handler
func NewOrganizationHandler(
	store OrganizationStore,
	users UserDirectory,
	roles authz.RoleOracle,
	gate *authz.Gate,
	dispatcher EventDispatcher,
	cfg *config.Config,
	logger *zap.Logger,
) *OrganizationHandler {
	return &OrganizationHandler{
		store:          store,
		users:          users,
		roles:          roles,
		gate:           gate,
		events:         dispatcher,
		regenerateSlug: cfg.RegenerateSlugOnRename,
		logger:         logger,
	}
}

// ListOrganizations godoc
// @Summary List organizations
// @Description Organizations in which the caller holds any role
// @Tags organizations
// @Produce json
// @Param workspaceId path string false "Workspace ID (workspace-prefixed route only)"
// @Param page query int false "Page number (default: 1)"
// @Param per_page query int false "Items per page (default: 10, max: 100)"
// @Param search query string false "Search term across name and slug"
// @Param filters[type] query string false "Filter by type (organization, individual)"
// @Param filters[is_active] query bool false "Filter by active flag"
// @Param sort[field] query string false "Sort field (name, slug, created_at, updated_at)"
// @Param sort[order] query string false "Sort order (asc, desc)"
// @Security BearerAuth
// @Success 200 {object} response.PagedEnvelope{data=[]models.Organization}
// @Failure 403 {object} response.ErrorEnvelope
// @Router /organizations [get]
// @Router /workspaces/{workspaceId}/organizations [get]
func (h *OrganizationHandler) ListOrganizations(c *gin.Context) {
	subject, ok := h.subject(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	workspaceID := c.Param("workspaceId")
	if err := h.gate.AuthorizeWorkspace(ctx, subject, workspaceID); err != nil {
		h.fail(c, err)
		return
	}

	params := query.ParseQueryParams(c)

	contextIDs, err := h.roles.ContextIDs(ctx, subject, models.ContextTypeOrganization)
	if err != nil {
		h.fail(c, err)
		return
	}
	ids := make([]uuid.UUID, 0, len(contextIDs))
	for _, raw := range contextIDs {
		if id, err := uuid.Parse(raw); err == nil {
			ids = append(ids, id)
		}
	}

	organizations, total, err := h.store.List(ctx, repository.ListQuery{
		IDs:         ids,
		WorkspaceID: h.gate.ScopedWorkspace(workspaceID),
		Params:      params,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Paged(c, MessageOrganizationsRetrieved, organizations,
		query.BuildPaginationResponse(params.Page, params.PerPage, total))
}

// CreateOrganization godoc
// @Summary Create organization
// @Description Creates an organization owned by the caller, who is granted the owner role
// @Tags organizations
// @Accept json
// @Produce json
// @Param workspaceId path string false "Workspace ID (workspace-prefixed route only)"
// @Param organization body OrganizationRequest true "Organization data"
// @Security BearerAuth
// @Success 201 {object} response.Envelope{data=models.Organization}
// @Failure 400 {object} response.ErrorEnvelope "Duplicate name"
// @Failure 403 {object} response.ErrorEnvelope
// @Failure 422 {object} response.ErrorEnvelope
// @Router /organizations [post]
// @Router /workspaces/{workspaceId}/organizations [post]
func (h *OrganizationHandler) CreateOrganization(c *gin.Context) {
	subject, ok := h.subject(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	var req OrganizationRequest
	if err := validation.BindJSON(c, &req); err != nil {
		h.fail(c, err)
		return
	}

	workspaceID := c.Param("workspaceId")
	if workspaceID == "" && req.WorkspaceID != nil {
		workspaceID = *req.WorkspaceID
	}
	if err := h.gate.AuthorizeWorkspace(ctx, subject, workspaceID); err != nil {
		h.fail(c, err)
		return
	}

	org := &models.Organization{IsActive: true}
	req.apply(org)
	org.SetOwner(models.UserOwner(subject))
	if scoped := h.gate.ScopedWorkspace(workspaceID); scoped != "" {
		org.WorkspaceID = &scoped
	}

	if err := h.store.Create(ctx, org); err != nil {
		h.fail(c, err)
		return
	}

	created, err := h.store.FindByID(ctx, org.ID)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.events.Dispatch(ctx, events.New(events.OrganizationCreated, *created, subject))
	response.Success(c, http.StatusCreated, MessageOrganizationCreated, created)
}

// GetOrganization godoc
// @Summary Get organization
// @Tags organizations
// @Produce json
// @Param id path string true "Organization ID"
// @Security BearerAuth
// @Success 200 {object} response.Envelope{data=models.Organization}
// @Failure 403 {object} response.ErrorEnvelope
// @Failure 404 {object} response.ErrorEnvelope
// @Router /organizations/{id} [get]
func (h *OrganizationHandler) GetOrganization(c *gin.Context) {
	subject, ok := h.subject(c)
	if !ok {
		return
	}

	org, err := h.authorizedOrganization(c, subject, authz.OpRead)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, MessageOrganizationRetrieved, org)
}

// UpdateOrganization godoc
// @Summary Update organization
// @Description Replaces every mutable field. Owner or admin only.
// @Tags organizations
// @Accept json
// @Produce json
// @Param id path string true "Organization ID"
// @Param organization body OrganizationRequest true "Organization data"
// @Security BearerAuth
// @Success 200 {object} response.Envelope{data=models.Organization}
// @Failure 400 {object} response.ErrorEnvelope "Duplicate name"
// @Failure 403 {object} response.ErrorEnvelope
// @Failure 404 {object} response.ErrorEnvelope
// @Failure 422 {object} response.ErrorEnvelope
// @Router /organizations/{id} [put]
func (h *OrganizationHandler) UpdateOrganization(c *gin.Context) {
	subject, ok := h.subject(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	var req OrganizationRequest
	if err := validation.BindJSON(c, &req); err != nil {
		h.fail(c, err)
		return
	}

	org, err := h.authorizedOrganization(c, subject, authz.OpUpdate)
	if err != nil {
		h.fail(c, err)
		return
	}

	if req.WorkspaceID != nil {
		if err := h.gate.AuthorizeWorkspace(ctx, subject, *req.WorkspaceID); err != nil {
			h.fail(c, err)
			return
		}
		if scoped := h.gate.ScopedWorkspace(*req.WorkspaceID); scoped != "" {
			org.WorkspaceID = &scoped
		}
	}

	req.apply(org)
	if err := h.store.Update(ctx, org, h.regenerateSlug); err != nil {
		h.fail(c, err)
		return
	}

	updated, err := h.store.FindByID(ctx, org.ID)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.events.Dispatch(ctx, events.New(events.OrganizationUpdated, *updated, subject))
	response.Success(c, http.StatusOK, MessageOrganizationUpdated, updated)
}

// DeleteOrganization godoc
// @Summary Delete organization
// @Description Soft deletes the organization. Owner only.
// @Tags organizations
// @Produce json
// @Param id path string true "Organization ID"
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.ErrorEnvelope
// @Failure 404 {object} response.ErrorEnvelope
// @Router /organizations/{id} [delete]
func (h *OrganizationHandler) DeleteOrganization(c *gin.Context) {
	subject, ok := h.subject(c)
	if !ok {
		return
	}

	org, err := h.authorizedOrganization(c, subject, authz.OpDelete)
	if err != nil {
		h.fail(c, err)
		return
	}

	if err := h.store.SoftDelete(c.Request.Context(), org.ID); err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, MessageOrganizationDeleted, nil)
}

// authorizedOrganization loads the organization named by the :id path
// parameter and checks op against the caller's role in it.
func (h *OrganizationHandler) authorizedOrganization(c *gin.Context, subject uuid.UUID, op authz.Operation) (*models.Organization, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return nil, apperror.NotFound(apperror.MessageOrganizationNotFound)
	}

	ctx := c.Request.Context()
	org, err := h.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, err := h.gate.Authorize(ctx, subject, op, org.ID); err != nil {
		return nil, err
	}
	return org, nil
}

// subject returns the authenticated caller set by the auth middleware
func (h *OrganizationHandler) subject(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get("userID")
	if !exists {
		response.Failure(c, http.StatusUnauthorized, MessageUnauthenticated, nil)
		return uuid.Nil, false
	}
	subject, ok := value.(uuid.UUID)
	if !ok || subject == uuid.Nil {
		response.Failure(c, http.StatusUnauthorized, MessageUnauthenticated, nil)
		return uuid.Nil, false
	}
	return subject, true
}

// fail maps repository sentinels onto user-facing errors and renders them
func (h *OrganizationHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		err = apperror.NotFound(apperror.MessageOrganizationNotFound)
	case errors.Is(err, repository.ErrDuplicateName):
		err = apperror.Conflict(MessageNameTaken)
	}
	response.Error(c, h.logger, err)
}
