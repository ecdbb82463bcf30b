package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/course-portal-api/internal/models"
	"github.com/noah-isme/course-portal-api/pkg/response"
)

type notificationService interface {
	List(ctx context.Context) ([]models.Notification, error)
	Create(ctx context.Context, input models.NotificationInput) error
	Update(ctx context.Context, id string, input models.NotificationInput) error
	Delete(ctx context.Context, id string) error
}

// NotificationHandler serves announcements.
type NotificationHandler struct {
	service notificationService
}

// NewNotificationHandler constructs the handler.
func NewNotificationHandler(service notificationService) *NotificationHandler {
	return &NotificationHandler{service: service}
}

// List godoc
// @Summary List notifications
// @Tags Notifications
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /notifications [get]
func (h *NotificationHandler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	ok(c, items)
}

// Create godoc
// @Summary Create a notification
// @Tags Admin
// @Accept json
// @Security BearerAuth
// @Param payload body models.NotificationInput true "Notification"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /admin/notifications [post]
func (h *NotificationHandler) Create(c *gin.Context) {
	var input models.NotificationInput
	if !bindJSON(c, &input, "invalid notification payload") {
		return
	}
	if err := h.service.Create(c.Request.Context(), input); err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"message": "Notification added successfully"})
}

// Update godoc
// @Summary Update a notification
// @Tags Admin
// @Accept json
// @Security BearerAuth
// @Param id path string true "Notification ID"
// @Param payload body models.NotificationInput true "Notification"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/notifications/{id} [put]
func (h *NotificationHandler) Update(c *gin.Context) {
	var input models.NotificationInput
	if !bindJSON(c, &input, "invalid notification payload") {
		return
	}
	if err := h.service.Update(c.Request.Context(), c.Param("id"), input); err != nil {
		response.Error(c, err)
		return
	}
	ok(c, gin.H{"message": "Notification updated successfully"})
}

// Delete godoc
// @Summary Delete a notification
// @Tags Admin
// @Security BearerAuth
// @Param id path string true "Notification ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /admin/notifications/{id} [delete]
func (h *NotificationHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
