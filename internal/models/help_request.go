package models

// HelpRequest is a concern raised by an applicant.
type HelpRequest struct {
	ID            string         `json:"id"`
	ApplicationID string         `json:"applicationId,omitempty"`
	Name          string         `json:"name"`
	PhoneNumber   string         `json:"phoneNumber"`
	Concern       string         `json:"concern"`
	ImageBase64   string         `json:"imageBase64,omitempty"`
	CreatedAt     StoreTimestamp `json:"createdAt"`
}

// HelpRequestInput is the public submission payload.
type HelpRequestInput struct {
	ApplicationID string `json:"applicationId"`
	Name          string `json:"name" validate:"notblank"`
	PhoneNumber   string `json:"phoneNumber" validate:"notblank"`
	Concern       string `json:"concern" validate:"notblank"`
	ImageBase64   string `json:"imageBase64,omitempty"`
}
