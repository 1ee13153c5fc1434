package utils

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func performError(t *testing.T, err error) (*httptest.ResponseRecorder, ApiResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	RespondError(c, err)

	var envelope ApiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return w, envelope
}

func TestRespondErrorWithApiError(t *testing.T) {
	w, envelope := performError(t, NewApiError(http.StatusBadRequest, "no videos available"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, http.StatusBadRequest, envelope.StatusCode)
	assert.Equal(t, "no videos available", envelope.Message)
	assert.False(t, envelope.Success)
	assert.Nil(t, envelope.Data)
}

func TestRespondErrorWithPlainError(t *testing.T) {
	w, envelope := performError(t, errors.New("boom"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "boom", envelope.Message)
	assert.False(t, envelope.Success)
}

func TestRespondSuccessEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	Respond(c, http.StatusCreated, gin.H{"id": "abc"}, "created")

	var envelope ApiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, envelope.Success)
	assert.Equal(t, "created", envelope.Message)
}
