// Package response writes the JSON envelope every organization endpoint returns.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"organizations-backend/shared/apperror"
	"organizations-backend/shared/utils/query"
)

// Envelope is the success body. Data is always present, null included.
type Envelope struct {
	Success bool        `json:"success" example:"true"`
	Message string      `json:"message" example:"Operation successful"`
	Data    interface{} `json:"data"`
}

// PagedEnvelope is a success body carrying one page of a list
type PagedEnvelope struct {
	Success bool                     `json:"success" example:"true"`
	Message string                   `json:"message"`
	Data    interface{}              `json:"data"`
	Meta    query.PaginationResponse `json:"meta"`
}

// MessageEnvelope is a success body without a payload
type MessageEnvelope struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message"`
}

// ErrorEnvelope is the failure body
type ErrorEnvelope struct {
	Success bool                `json:"success" example:"false"`
	Message string              `json:"message" example:"The given data was invalid."`
	Errors  map[string][]string `json:"errors,omitempty"`
}

const DefaultMessage = "Operation successful"

// Success writes data with the given status
func Success(c *gin.Context, status int, message string, data interface{}) {
	if message == "" {
		message = DefaultMessage
	}
	c.JSON(status, Envelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Paged writes one page of items with its pagination metadata
func Paged(c *gin.Context, message string, items interface{}, meta query.PaginationResponse) {
	if message == "" {
		message = DefaultMessage
	}
	c.JSON(http.StatusOK, PagedEnvelope{
		Success: true,
		Message: message,
		Data:    items,
		Meta:    meta,
	})
}

// Message writes a 200 with a message and no data
func Message(c *gin.Context, message string) {
	c.JSON(http.StatusOK, MessageEnvelope{
		Success: true,
		Message: message,
	})
}

// Failure writes an error body with the given status
func Failure(c *gin.Context, status int, message string, fields map[string][]string) {
	c.AbortWithStatusJSON(status, ErrorEnvelope{
		Success: false,
		Message: message,
		Errors:  fields,
	})
}

// Error renders err. Internal errors are logged with their cause and
// reported with a generic message.
func Error(c *gin.Context, log *zap.Logger, err error) {
	appErr := apperror.From(err)
	if appErr.Kind == apperror.KindInternal {
		log.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.String("request_id", c.GetString("request_id")),
			zap.Error(appErr.Err),
		)
	}
	Failure(c, appErr.Status(), appErr.Message, appErr.Fields)
}
