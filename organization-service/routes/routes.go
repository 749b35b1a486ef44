package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"organizations-backend/organization-service/handlers"
)

// RegisterOrganizationRoutes mounts the organization API below prefix behind
// the given middlewares, auth first.
func RegisterOrganizationRoutes(router gin.IRouter, prefix string, h *handlers.OrganizationHandler, middlewares ...gin.HandlerFunc) {
	api := router.Group(prefix, middlewares...)

	api.GET("/organizations", h.ListOrganizations)
	api.POST("/organizations", h.CreateOrganization)
	api.GET("/organizations/:id", h.GetOrganization)
	api.PUT("/organizations/:id", h.UpdateOrganization)
	api.DELETE("/organizations/:id", h.DeleteOrganization)

	api.GET("/organizations/:id/members", h.ListMembers)
	api.POST("/organizations/:id/members", h.AddMember)
	api.DELETE("/organizations/:id/members/:member_id", h.RemoveMember)

	// Workspace scoped index and create
	api.GET("/workspaces/:workspaceId/organizations", h.ListOrganizations)
	api.POST("/workspaces/:workspaceId/organizations", h.CreateOrganization)
}

// RegisterHealthRoutes mounts the liveness endpoint
func RegisterHealthRoutes(router gin.IRouter, service string) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": service,
		})
	})
}
