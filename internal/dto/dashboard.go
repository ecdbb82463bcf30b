package dto

import "github.com/noah-isme/course-portal-api/internal/models"

// DashboardResponse is the public landing page payload.
type DashboardResponse struct {
	NotificationCount int               `json:"notification_count"`
	Categories        []models.Category `json:"categories"`
	Courses           []models.Course   `json:"courses"`
}
