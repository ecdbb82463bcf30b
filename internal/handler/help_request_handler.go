package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/course-portal-api/internal/models"
	"github.com/noah-isme/course-portal-api/pkg/response"
)

type helpRequestService interface {
	Submit(ctx context.Context, input models.HelpRequestInput) error
	List(ctx context.Context) ([]models.HelpRequest, error)
	Delete(ctx context.Context, id string) error
}

// HelpRequestHandler accepts concerns publicly and lists them for admins.
type HelpRequestHandler struct {
	service helpRequestService
}

// NewHelpRequestHandler constructs the handler.
func NewHelpRequestHandler(service helpRequestService) *HelpRequestHandler {
	return &HelpRequestHandler{service: service}
}

// Submit godoc
// @Summary Raise a concern
// @Tags Help
// @Accept json
// @Produce json
// @Param payload body models.HelpRequestInput true "Concern"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /help-requests [post]
func (h *HelpRequestHandler) Submit(c *gin.Context) {
	var input models.HelpRequestInput
	if !bindJSON(c, &input, "invalid help request payload") {
		return
	}
	if err := h.service.Submit(c.Request.Context(), input); err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"message": "Thank you! We'll get back to you soon."})
}

// List godoc
// @Summary List concerns
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /admin/help-requests [get]
func (h *HelpRequestHandler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	ok(c, items)
}

// Delete godoc
// @Summary Delete a concern
// @Tags Admin
// @Security BearerAuth
// @Param id path string true "Help request ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /admin/help-requests/{id} [delete]
func (h *HelpRequestHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
