package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"organizations-backend/notification-service/services"
	"organizations-backend/shared/response"
	"organizations-backend/shared/utils/auth"
)

// WebSocketHandler authenticates websocket clients and hands them to the manager
type WebSocketHandler struct {
	manager *services.WebSocketManager
	secret  string
	logger  *zap.Logger
}

// NewWebSocketHandler creates a new websocket handler
func NewWebSocketHandler(manager *services.WebSocketManager, secret string, logger *zap.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		manager: manager,
		secret:  secret,
		logger:  logger,
	}
}

// Connect godoc
// @Summary WebSocket connection
// @Description Streams organization events for every organization the caller belongs to. Browsers pass the JWT as the token query parameter.
// @Tags websocket
// @Param token query string false "JWT access token"
// @Security BearerAuth
// @Failure 401 {object} response.ErrorEnvelope
// @Router /ws/organizations [get]
func (h *WebSocketHandler) Connect(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		token = bearerToken(c.GetHeader("Authorization"))
	}
	if token == "" {
		response.Failure(c, http.StatusUnauthorized, "Authorization token is required", nil)
		return
	}

	claims, err := utils.ValidateJWT(token, h.secret)
	if err != nil {
		response.Failure(c, http.StatusUnauthorized, "Invalid or expired token", nil)
		return
	}
	userID, err := claims.UserUUID()
	if err != nil {
		response.Failure(c, http.StatusUnauthorized, "Invalid user ID in token", nil)
		return
	}

	if err := h.manager.HandleConnection(c.Writer, c.Request, userID); err != nil {
		// the upgrader already answered the client
		h.logger.Warn("websocket upgrade failed", zap.String("user_id", userID.String()), zap.Error(err))
	}
}

// Connections godoc
// @Summary Connection count
// @Tags websocket
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /ws/connections [get]
func (h *WebSocketHandler) Connections(c *gin.Context) {
	response.Success(c, http.StatusOK, "", gin.H{
		"connections": h.manager.GetConnectionCount(),
	})
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && header[:len(prefix)] == prefix {
		return header[len(prefix):]
	}
	return ""
}
