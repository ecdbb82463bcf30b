package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/course-portal-api/internal/dto"
	"github.com/noah-isme/course-portal-api/internal/middleware"
	"github.com/noah-isme/course-portal-api/internal/models"
	"github.com/noah-isme/course-portal-api/pkg/response"
)

type catalogService interface {
	Dashboard(ctx context.Context, filter models.CatalogFilter) (*dto.DashboardResponse, bool, error)
	Course(ctx context.Context, id string) (*models.Course, error)
}

// CatalogHandler serves the public dashboard and course pages.
type CatalogHandler struct {
	service catalogService
}

// NewCatalogHandler constructs the handler.
func NewCatalogHandler(service catalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// Dashboard godoc
// @Summary Public dashboard
// @Description Notification count, categories, and courses newest first
// @Tags Catalog
// @Produce json
// @Param search query string false "Case-insensitive title search"
// @Param category query string false "Category ID or all"
// @Success 200 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /dashboard [get]
func (h *CatalogHandler) Dashboard(c *gin.Context) {
	filter := models.CatalogFilter{Search: c.Query("search"), Category: c.Query("category")}
	res, cacheHit, err := h.service.Dashboard(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	ok(c, res)
}

// Course godoc
// @Summary Course details
// @Tags Catalog
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /courses/{id} [get]
func (h *CatalogHandler) Course(c *gin.Context) {
	course, err := h.service.Course(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	ok(c, course)
}
