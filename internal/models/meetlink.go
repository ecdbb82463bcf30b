package models

// MeetLink maps a course title to its meeting URL.
// Titles, not course IDs, are the join key.
type MeetLink struct {
	ID          string `json:"id,omitempty"`
	CourseTitle string `json:"courseTitle" validate:"notblank"`
	MeetLink    string `json:"meetLink" validate:"required,url"`
}
