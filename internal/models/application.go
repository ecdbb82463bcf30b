package models

// ApplicationStatus is the workflow state of an application.
type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "PENDING"
	ApplicationStatusSelected ApplicationStatus = "SELECTED"
	ApplicationStatusRejected ApplicationStatus = "REJECTED"
)

// Normalize treats an absent status as PENDING.
func (s ApplicationStatus) Normalize() ApplicationStatus {
	if s == "" {
		return ApplicationStatusPending
	}
	return s
}

// Valid reports whether s is one of the known states.
func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationStatusPending, ApplicationStatusSelected, ApplicationStatusRejected:
		return true
	}
	return false
}

// Application is the record persisted in the store at submission time.
// Course fields are a snapshot and do not follow later course edits.
type Application struct {
	ApplicationID   string            `json:"applicationId"`
	CourseID        string            `json:"courseId"`
	CourseName      string            `json:"courseName"`
	CourseFees      Amount            `json:"courseFees"`
	Name            string            `json:"name"`
	Email           string            `json:"email,omitempty"`
	Phone           string            `json:"phone"`
	Address         string            `json:"address"`
	City            string            `json:"city"`
	State           string            `json:"state"`
	Pincode         string            `json:"pincode"`
	DOB             string            `json:"dob"`
	ApplicationDate string            `json:"applicationDate"`
	Status          ApplicationStatus `json:"status,omitempty"`
}

// ApplicationForm holds the applicant-supplied fields in validation order.
type ApplicationForm struct {
	Name    string `json:"name" validate:"notblank"`
	Phone   string `json:"phone" validate:"notblank,phone10"`
	Address string `json:"address" validate:"notblank"`
	City    string `json:"city" validate:"notblank"`
	State   string `json:"state" validate:"notblank"`
	Pincode string `json:"pincode" validate:"pincode6"`
	DOB     string `json:"dob" validate:"notblank"`
	Email   string `json:"email"`
}

// ApplicationSummary is the subset shown next to a meet link.
type ApplicationSummary struct {
	ApplicationID   string            `json:"applicationId"`
	CourseName      string            `json:"courseName"`
	Name            string            `json:"name"`
	ApplicationDate string            `json:"applicationDate"`
	Status          ApplicationStatus `json:"status"`
}

// Summary projects the application onto its display summary.
func (a Application) Summary() ApplicationSummary {
	return ApplicationSummary{
		ApplicationID:   a.ApplicationID,
		CourseName:      a.CourseName,
		Name:            a.Name,
		ApplicationDate: a.ApplicationDate,
		Status:          a.Status.Normalize(),
	}
}

// ApplicationFilter narrows the admin applicant listing.
type ApplicationFilter struct {
	Status ApplicationStatus
}
