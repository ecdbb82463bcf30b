package dto

import (
	"time"

	"github.com/noah-isme/course-portal-api/internal/models"
)

// SubmitApplicationRequest is the public application form plus the chosen course.
type SubmitApplicationRequest struct {
	CourseID string `json:"courseId"`
	models.ApplicationForm
}

// ReceiptLink points at a generated receipt.
type ReceiptLink struct {
	Filename    string    `json:"filename"`
	DownloadURL string    `json:"download_url"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// SubmitApplicationResponse tells the front end what to show after a successful submission.
type SubmitApplicationResponse struct {
	ApplicationID  string       `json:"application_id"`
	Confirmation   string       `json:"confirmation"`
	DisplaySeconds int          `json:"display_seconds"`
	ClearForm      bool         `json:"clear_form"`
	Receipt        *ReceiptLink `json:"receipt,omitempty"`
	ReceiptError   string       `json:"receipt_error,omitempty"`
}

// ApplicationStatusResponse wraps a resolved application.
type ApplicationStatusResponse struct {
	Application models.Application `json:"application"`
}

// MeetLinkResponse is the successful meet-link lookup.
type MeetLinkResponse struct {
	Application models.ApplicationSummary `json:"application"`
	MeetLink    models.MeetLink           `json:"meet_link"`
}
