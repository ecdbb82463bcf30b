package models

// Notification is an announcement shown on the public dashboard.
type Notification struct {
	ID        string         `json:"id"`
	Title     string         `json:"title,omitempty"`
	Message   string         `json:"message"`
	Timestamp StoreTimestamp `json:"timestamp"`
}

// NotificationInput is the admin create/update payload.
type NotificationInput struct {
	Title   string `json:"title,omitempty"`
	Message string `json:"message" validate:"notblank"`
}
