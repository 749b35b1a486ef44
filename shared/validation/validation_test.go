package validation

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"organizations-backend/shared/apperror"
)

type sampleRequest struct {
	Name    string                 `json:"name" binding:"required,max=5"`
	Type    string                 `json:"type" binding:"required,oneof=organization individual"`
	Email   string                 `json:"email" binding:"required,email"`
	Website *string                `json:"website" binding:"omitempty,url"`
	Phone   *string                `json:"phone" binding:"omitempty,max=3"`
	Extra   map[string]interface{} `json:"contact_info"`
}

func bind(t *testing.T, body string) (*sampleRequest, *apperror.Error) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	var req sampleRequest
	err := BindJSON(c, &req)
	if err == nil {
		return &req, nil
	}
	var appErr *apperror.Error
	require.True(t, errors.As(err, &appErr))
	return nil, appErr
}

func TestBindJSONValid(t *testing.T) {
	req, appErr := bind(t, `{"name":"Acme","type":"individual","email":"a@x.com","contact_info":{"a":1}}`)
	require.Nil(t, appErr)
	assert.Equal(t, "Acme", req.Name)
	assert.Nil(t, req.Website)
	assert.EqualValues(t, 1, req.Extra["a"])
}

func TestBindJSONFieldMessages(t *testing.T) {
	_, appErr := bind(t, `{"name":"Too long","type":"company","email":"nope","website":"not a url","phone":"12345"}`)
	require.NotNil(t, appErr)
	assert.Equal(t, apperror.KindValidation, appErr.Kind)
	assert.Equal(t, apperror.MessageInvalidData, appErr.Message)

	assert.Equal(t, []string{"The name field must not be greater than 5 characters."}, appErr.Fields["name"])
	assert.Equal(t, []string{"The selected type is invalid."}, appErr.Fields["type"])
	assert.Equal(t, []string{"The email field must be a valid email address."}, appErr.Fields["email"])
	assert.Equal(t, []string{"The website field must be a valid URL."}, appErr.Fields["website"])
	assert.Equal(t, []string{"The phone field must not be greater than 3 characters."}, appErr.Fields["phone"])
}

func TestBindJSONEmptyBody(t *testing.T) {
	_, appErr := bind(t, "")
	require.NotNil(t, appErr)
	assert.Equal(t, []string{"The name field is required."}, appErr.Fields["name"])
	assert.Equal(t, []string{"The type field is required."}, appErr.Fields["type"])
	assert.Equal(t, []string{"The email field is required."}, appErr.Fields["email"])
}

func TestBindJSONTypeMismatch(t *testing.T) {
	_, appErr := bind(t, `{"name":"Acme","type":"individual","email":"a@x.com","contact_info":"x"}`)
	require.NotNil(t, appErr)
	assert.Equal(t, []string{"The contact info field must be an object."}, appErr.Fields["contact_info"])
}

func TestBindJSONMalformed(t *testing.T) {
	_, appErr := bind(t, `{"name":`)
	require.NotNil(t, appErr)
	assert.Contains(t, appErr.Fields, "body")
}
