package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/course-portal-api/internal/models"
	appErrors "github.com/noah-isme/course-portal-api/pkg/errors"
)

type stubValidator struct {
	claims *models.JWTClaims
}

func (s stubValidator) ValidateToken(token string) (*models.JWTClaims, error) {
	if token != "good" {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token")
	}
	return s.claims, nil
}

func newProtectedRouter(claims *models.JWTClaims) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(WithResponseMeta())
	r.GET("/admin", JWT(stubValidator{claims: claims}), RequireRoles(models.RoleAdmin), func(c *gin.Context) {
		SetCacheHit(c, true)
		c.JSON(http.StatusOK, gin.H{"meta": ExtractMeta(c)})
	})
	return r
}

func doRequest(r *gin.Engine, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAndRoles(t *testing.T) {
	admin := &models.JWTClaims{UserID: "admin", Role: models.RoleAdmin}

	cases := []struct {
		name   string
		claims *models.JWTClaims
		header string
		status int
	}{
		{"missing header", admin, "", http.StatusUnauthorized},
		{"wrong scheme", admin, "Basic good", http.StatusUnauthorized},
		{"bad token", admin, "Bearer bad", http.StatusUnauthorized},
		{"wrong role", &models.JWTClaims{UserID: "x", Role: "VIEWER"}, "Bearer good", http.StatusForbidden},
		{"admin", admin, "Bearer good", http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doRequest(newProtectedRouter(tc.claims), tc.header)
			assert.Equal(t, tc.status, w.Code)
		})
	}
}

func TestResponseMetaCarriesCacheHit(t *testing.T) {
	w := doRequest(newProtectedRouter(&models.JWTClaims{Role: models.RoleAdmin}), "Bearer good")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Meta map[string]interface{} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body.Meta["cache_hit"])
	assert.Contains(t, body.Meta, "processing_time_ms")
	assert.NotContains(t, body.Meta, "started_at")
}
