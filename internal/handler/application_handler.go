package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/course-portal-api/internal/dto"
	"github.com/noah-isme/course-portal-api/internal/models"
	appErrors "github.com/noah-isme/course-portal-api/pkg/errors"
	"github.com/noah-isme/course-portal-api/pkg/response"
)

type applicationSubmitter interface {
	Submit(ctx context.Context, form models.ApplicationForm, course models.Course) (*dto.SubmitApplicationResponse, error)
}

type courseResolver interface {
	Course(ctx context.Context, id string) (*models.Course, error)
}

type statusResolver interface {
	Resolve(ctx context.Context, id string) (*models.Application, error)
}

type meetLinkFinder interface {
	Find(ctx context.Context, id string) (*dto.MeetLinkResponse, error)
}

// ApplicationHandler serves applicant-facing submission and lookup endpoints.
type ApplicationHandler struct {
	submitter applicationSubmitter
	courses   courseResolver
	status    statusResolver
	meetLinks meetLinkFinder
}

// NewApplicationHandler constructs the handler.
func NewApplicationHandler(submitter applicationSubmitter, courses courseResolver, status statusResolver, meetLinks meetLinkFinder) *ApplicationHandler {
	return &ApplicationHandler{submitter: submitter, courses: courses, status: status, meetLinks: meetLinks}
}

// Submit godoc
// @Summary Submit an application
// @Description Validates the form, stores the application and returns a receipt link
// @Tags Applications
// @Accept json
// @Produce json
// @Param payload body dto.SubmitApplicationRequest true "Application form"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /applications [post]
func (h *ApplicationHandler) Submit(c *gin.Context) {
	var req dto.SubmitApplicationRequest
	if !bindJSON(c, &req, "invalid application payload") {
		return
	}
	courseID := strings.TrimSpace(req.CourseID)
	if courseID == "" {
		response.Error(c, appErrors.Field("courseId", "Please select a course"))
		return
	}
	course, err := h.courses.Course(c.Request.Context(), courseID)
	if err != nil {
		response.Error(c, err)
		return
	}

	res, err := h.submitter.Submit(c.Request.Context(), req.ApplicationForm, *course)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, res)
}

// Status godoc
// @Summary Application status
// @Tags Applications
// @Produce json
// @Param id query string true "Application ID"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 429 {object} response.Envelope
// @Router /applications/status [get]
func (h *ApplicationHandler) Status(c *gin.Context) {
	app, err := h.status.Resolve(c.Request.Context(), c.Query("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	ok(c, dto.ApplicationStatusResponse{Application: *app})
}

// MeetLink godoc
// @Summary Meeting link for a selected applicant
// @Description Fails with 412 and the application summary when the application is not SELECTED
// @Tags Applications
// @Produce json
// @Param id query string true "Application ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 412 {object} response.Envelope
// @Failure 429 {object} response.Envelope
// @Router /applications/meet-link [get]
func (h *ApplicationHandler) MeetLink(c *gin.Context) {
	res, err := h.meetLinks.Find(c.Request.Context(), c.Query("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res)
}
