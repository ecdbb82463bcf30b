package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/course-portal-api/internal/middleware"
	"github.com/noah-isme/course-portal-api/internal/models"
	"github.com/noah-isme/course-portal-api/pkg/response"
)

type applicantLister interface {
	List(ctx context.Context, filter models.ApplicationFilter) ([]models.Application, error)
	Export(ctx context.Context, filter models.ApplicationFilter) ([]byte, error)
}

type meetLinkAdmin interface {
	List(ctx context.Context) ([]models.MeetLink, error)
	Create(ctx context.Context, link models.MeetLink) (*models.MeetLink, error)
}

// AdminHandler serves the applicant review and meet link screens.
type AdminHandler struct {
	applications applicantLister
	meetLinks    meetLinkAdmin
}

// NewAdminHandler constructs the handler.
func NewAdminHandler(applications applicantLister, meetLinks meetLinkAdmin) *AdminHandler {
	return &AdminHandler{applications: applications, meetLinks: meetLinks}
}

// Applications godoc
// @Summary List applicants
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "PENDING, SELECTED or REJECTED"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /admin/applications [get]
func (h *AdminHandler) Applications(c *gin.Context) {
	apps, err := h.applications.List(c.Request.Context(), applicationFilter(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	meta := map[string]interface{}{"total": len(apps)}
	for k, v := range middleware.ExtractMeta(c) {
		meta[k] = v
	}
	response.JSON(c, http.StatusOK, apps, meta)
}

// ExportApplications godoc
// @Summary Export applicants as CSV
// @Tags Admin
// @Produce text/csv
// @Security BearerAuth
// @Param status query string false "PENDING, SELECTED or REJECTED"
// @Success 200 {file} binary
// @Router /admin/applications/export [get]
func (h *AdminHandler) ExportApplications(c *gin.Context) {
	out, err := h.applications.Export(c.Request.Context(), applicationFilter(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.AttachmentBytes(c, "applicants.csv", "text/csv; charset=utf-8", out)
}

// MeetLinks godoc
// @Summary List meet links
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /admin/meetlinks [get]
func (h *AdminHandler) MeetLinks(c *gin.Context) {
	links, err := h.meetLinks.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	ok(c, links)
}

// CreateMeetLink godoc
// @Summary Create a meet link
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.MeetLink true "Meet link"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /admin/meetlinks [post]
func (h *AdminHandler) CreateMeetLink(c *gin.Context) {
	var link models.MeetLink
	if !bindJSON(c, &link, "invalid meet link payload") {
		return
	}
	created, err := h.meetLinks.Create(c.Request.Context(), link)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, created)
}

func applicationFilter(c *gin.Context) models.ApplicationFilter {
	return models.ApplicationFilter{Status: models.ApplicationStatus(c.Query("status"))}
}
