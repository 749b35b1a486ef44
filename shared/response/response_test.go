package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"organizations-backend/shared/apperror"
	"organizations-backend/shared/utils/query"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestSuccessKeepsNullData(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Success(c, http.StatusOK, "Organization deleted successfully", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Organization deleted successfully", body["message"])
	data, ok := body["data"]
	assert.True(t, ok)
	assert.Nil(t, data)
}

func TestMessageHasNoData(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Message(c, "Member added successfully")

	body := decode(t, w)
	_, ok := body["data"]
	assert.False(t, ok)
	assert.Equal(t, "Member added successfully", body["message"])
}

func TestPaged(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Paged(c, "", []string{"a"}, query.BuildPaginationResponse(1, 10, 1))

	body := decode(t, w)
	assert.Equal(t, DefaultMessage, body["message"])
	meta := body["meta"].(map[string]interface{})
	assert.EqualValues(t, 1, meta["total"])
	assert.EqualValues(t, 10, meta["per_page"])
}

func TestErrorRendersAppErrors(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"validation", apperror.Validation(map[string][]string{"name": {"The name field is required."}}), http.StatusUnprocessableEntity, apperror.MessageInvalidData},
		{"unauthorized", apperror.Unauthorized(), http.StatusForbidden, apperror.MessageUnauthorized},
		{"not found", apperror.NotFound(apperror.MessageOrganizationNotFound), http.StatusNotFound, apperror.MessageOrganizationNotFound},
		{"conflict", apperror.Conflict("Organization name already exists."), http.StatusBadRequest, "Organization name already exists."},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			Error(c, zap.NewNop(), tc.err)

			assert.Equal(t, tc.status, w.Code)
			body := decode(t, w)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tc.message, body["message"])
		})
	}
}

func TestErrorHidesInternalCause(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/organizations", nil)

	Error(c, zap.New(core), errors.New("connection refused"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "connection refused")
	assert.Equal(t, apperror.MessageInternal, decode(t, w)["message"])

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "connection refused", logs.All()[0].ContextMap()["error"])
}
