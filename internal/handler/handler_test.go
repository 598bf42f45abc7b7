package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/yourusername/predictor-api/internal/pkg/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestGinContext creates a *gin.Context with an optional JSON body.
func newTestGinContext(method, path string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()

	var req *http.Request
	if body != nil {
		bodyBytes, _ := json.Marshal(body)
		req, _ = http.NewRequest(method, path, bytes.NewReader(bodyBytes))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, _ = http.NewRequest(method, path, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	return c, w
}

// parseJSONResponse parses the JSON body of a recorded response.
func parseJSONResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err, "Response body should be valid JSON: %s", w.Body.String())
	return resp
}

// ============================================================================
// Request validation tests. Binding fails before any service call, so the
// handlers run with nil services.
// ============================================================================

func TestRegister_ValidationErrors(t *testing.T) {
	handler := &AuthHandler{}

	tests := []struct {
		name string
		body interface{}
	}{
		{
			name: "empty body",
			body: nil,
		},
		{
			name: "missing email",
			body: map[string]string{"username": "alice", "password": "secret123"},
		},
		{
			name: "missing password",
			body: map[string]string{"username": "alice", "email": "alice@test.com"},
		},
		{
			name: "invalid email format",
			body: map[string]string{"username": "alice", "email": "not-an-email", "password": "secret123"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestGinContext("POST", "/api/auth/register", tt.body)
			handler.Register(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			resp := parseJSONResponse(t, w)
			assert.NotEmpty(t, resp["error"])
		})
	}
}

func TestLogin_ValidationErrors(t *testing.T) {
	handler := &AuthHandler{}

	tests := []struct {
		name string
		body interface{}
	}{
		{
			name: "empty body",
			body: nil,
		},
		{
			name: "missing email",
			body: map[string]string{"password": "secret123"},
		},
		{
			name: "missing password",
			body: map[string]string{"email": "alice@test.com"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestGinContext("POST", "/api/auth/login", tt.body)
			handler.Login(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			resp := parseJSONResponse(t, w)
			assert.NotEmpty(t, resp["error"])
		})
	}
}

func TestSubmitPrediction_ValidationErrors(t *testing.T) {
	handler := &PredictionHandler{}

	tests := []struct {
		name string
		body interface{}
	}{
		{
			name: "empty body",
			body: nil,
		},
		{
			name: "missing home prediction",
			body: map[string]int{"away_prediction": 1},
		},
		{
			name: "missing away prediction",
			body: map[string]int{"home_prediction": 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestGinContext("PUT", "/api/fixtures/1/prediction", tt.body)
			handler.Submit(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			resp := parseJSONResponse(t, w)
			assert.NotEmpty(t, resp["error"])
		})
	}
}

func TestSubmitPrediction_ZeroZeroBinds(t *testing.T) {
	// 0-0 is a legitimate forecast; pointer fields keep "absent" and "zero"
	// distinct under binding:"required".
	body := map[string]int{"home_prediction": 0, "away_prediction": 0}
	c, _ := newTestGinContext("PUT", "/api/fixtures/1/prediction", body)

	var req struct {
		HomePrediction *int `json:"home_prediction" binding:"required"`
		AwayPrediction *int `json:"away_prediction" binding:"required"`
	}
	err := c.ShouldBindJSON(&req)

	require.NoError(t, err)
	require.NotNil(t, req.HomePrediction)
	require.NotNil(t, req.AwayPrediction)
	assert.Equal(t, 0, *req.HomePrediction)
	assert.Equal(t, 0, *req.AwayPrediction)
}

func TestFinalizeScore_ValidationErrors(t *testing.T) {
	handler := &FixtureHandler{}

	tests := []struct {
		name string
		body interface{}
	}{
		{
			name: "empty body",
			body: nil,
		},
		{
			name: "missing away score",
			body: map[string]int{"home_score": 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestGinContext("POST", "/api/fixtures/1/result", tt.body)
			handler.FinalizeScore(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestJoinLeague_ValidationErrors(t *testing.T) {
	handler := &LeagueHandler{}

	c, w := newTestGinContext("POST", "/api/leagues/join", map[string]string{})
	handler.Join(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := parseJSONResponse(t, w)
	assert.NotEmpty(t, resp["error"])
}

func TestDeleteAccount_ValidationErrors(t *testing.T) {
	handler := &AccountHandler{}

	c, w := newTestGinContext("POST", "/api/account/delete", map[string]string{"password": "secret"})
	handler.DeleteAccount(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// ============================================================================
// respondError mapping
// ============================================================================

func TestRespondError_SentinelMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{
			name:       "not found",
			err:        apperrors.ErrNotFound,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "wrapped not found",
			err:        fmt.Errorf("%w: fixture 7", apperrors.ErrNotFound),
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "validation",
			err:        apperrors.ErrValidation,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unauthorized",
			err:        apperrors.ErrUnauthorized,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "forbidden",
			err:        apperrors.ErrForbidden,
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "conflict",
			err:        apperrors.ErrConflict,
			wantStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestGinContext("GET", "/test", nil)
			respondError(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			resp := parseJSONResponse(t, w)
			assert.NotEmpty(t, resp["error"])
		})
	}
}

func TestRespondError_UnknownErrorHidesDetails(t *testing.T) {
	c, w := newTestGinContext("GET", "/test", nil)
	respondError(c, assert.AnError)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	resp := parseJSONResponse(t, w)
	assert.Equal(t, "Internal server error", resp["error"])
}
