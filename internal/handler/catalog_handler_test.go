package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/course-portal-api/internal/dto"
	"github.com/noah-isme/course-portal-api/internal/middleware"
	"github.com/noah-isme/course-portal-api/internal/models"
	appErrors "github.com/noah-isme/course-portal-api/pkg/errors"
)

type fakeCatalogSrv struct {
	resp       *dto.DashboardResponse
	hit        bool
	err        error
	lastFilter models.CatalogFilter
	course     *models.Course
	courseErr  error
}

func (f *fakeCatalogSrv) Dashboard(_ context.Context, filter models.CatalogFilter) (*dto.DashboardResponse, bool, error) {
	f.lastFilter = filter
	return f.resp, f.hit, f.err
}

func (f *fakeCatalogSrv) Course(context.Context, string) (*models.Course, error) {
	return f.course, f.courseErr
}

type responseEnvelope struct {
	Data  map[string]interface{} `json:"data"`
	Error *appErrors.Error       `json:"error"`
	Meta  map[string]interface{} `json:"meta"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) responseEnvelope {
	t.Helper()
	var envelope responseEnvelope
	_ = json.Unmarshal(rec.Body.Bytes(), &envelope)
	return envelope
}

func TestCatalogHandlerDashboardSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeCatalogSrv{resp: &dto.DashboardResponse{NotificationCount: 3}, hit: true}
	handler := NewCatalogHandler(srv)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/dashboard?search=english&category=lang", nil)
	middleware.WithResponseMeta()(c)

	handler.Dashboard(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	envelope := decodeEnvelope(t, rec)
	assert.Equal(t, true, envelope.Meta["cache_hit"])
	assert.Equal(t, float64(3), envelope.Data["notification_count"])
	assert.Equal(t, models.CatalogFilter{Search: "english", Category: "lang"}, srv.lastFilter)
}

func TestCatalogHandlerDashboardUpstreamError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewCatalogHandler(&fakeCatalogSrv{err: appErrors.Wrap(errors.New("down"), appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "Failed to load dashboard")})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/dashboard", nil)

	handler.Dashboard(c)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.NotContains(t, rec.Body.String(), "down")
}

func TestCatalogHandlerCourseNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewCatalogHandler(&fakeCatalogSrv{courseErr: appErrors.Clone(appErrors.ErrNotFound, "course not found")})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/courses/zz", nil)
	c.Params = gin.Params{{Key: "id", Value: "zz"}}

	handler.Course(c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "course not found", decodeEnvelope(t, rec).Error.Message)
}
