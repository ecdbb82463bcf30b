package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/course-portal-api/internal/dto"
	"github.com/noah-isme/course-portal-api/internal/models"
	"github.com/noah-isme/course-portal-api/internal/repository"
	"github.com/noah-isme/course-portal-api/pkg/datefmt"
	appErrors "github.com/noah-isme/course-portal-api/pkg/errors"
	"github.com/noah-isme/course-portal-api/pkg/export"
	"github.com/noah-isme/course-portal-api/pkg/storeclient"
)

const (
	submitRejectedMsg  = "Failed to submit application. Please try again."
	submitTransportMsg = "An error occurred. Please try again later."
	confirmationFormat = "Application submitted successfully! Your application ID is: %s, our team will reach you soon!"
	confirmationSecs   = 5
)

type applicationStore interface {
	All(ctx context.Context) (map[string]models.Application, error)
	Create(ctx context.Context, app *models.Application) error
}

type idIssuer interface {
	Issue(ctx context.Context) (string, error)
}

type receiptGenerator interface {
	Generate(ctx context.Context, app models.Application, course models.Course) (*dto.ReceiptLink, error)
}

// ApplicationService runs the submission workflow and the admin applicant listing.
type ApplicationService struct {
	repo      applicationStore
	ids       idIssuer
	receipts  receiptGenerator
	validator *validator.Validate
	metrics   *MetricsService
	logger    *zap.Logger
	csv       *export.CSVExporter
	now       func() time.Time
}

// NewApplicationService constructs ApplicationService.
func NewApplicationService(repo applicationStore, ids idIssuer, receipts receiptGenerator, validate *validator.Validate, metrics *MetricsService, logger *zap.Logger) *ApplicationService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ApplicationService{
		repo:      repo,
		ids:       ids,
		receipts:  receipts,
		validator: validate,
		metrics:   metrics,
		logger:    logger,
		csv:       export.NewCSVExporter(),
		now:       time.Now,
	}
}

// Submit validates form, persists one application for course and renders its receipt.
// A receipt failure does not fail the submission; it is reported in ReceiptError.
func (s *ApplicationService) Submit(ctx context.Context, form models.ApplicationForm, course models.Course) (*dto.SubmitApplicationResponse, error) {
	if err := firstViolation(s.validator, form); err != nil {
		s.metrics.RecordSubmission("invalid")
		return nil, err
	}

	id, err := s.ids.Issue(ctx)
	if err != nil {
		s.metrics.RecordSubmission("failed")
		return nil, err
	}

	app := models.Application{
		ApplicationID:   id,
		CourseID:        course.ID,
		CourseName:      course.Title,
		CourseFees:      course.Fees,
		Name:            form.Name,
		Email:           form.Email,
		Phone:           form.Phone,
		Address:         form.Address,
		City:            form.City,
		State:           form.State,
		Pincode:         form.Pincode,
		DOB:             form.DOB,
		ApplicationDate: s.now().UTC().Format("2006-01-02T15:04:05.000Z07:00"),
	}

	if err := s.repo.Create(ctx, &app); err != nil {
		return nil, s.submitFailure(id, err)
	}
	s.metrics.RecordSubmission("accepted")
	s.logger.Info("application submitted", zap.String("application_id", id), zap.String("course_id", course.ID))

	resp := &dto.SubmitApplicationResponse{
		ApplicationID:  id,
		Confirmation:   fmt.Sprintf(confirmationFormat, id),
		DisplaySeconds: confirmationSecs,
		ClearForm:      true,
	}
	link, err := s.receipts.Generate(ctx, app, course)
	if err != nil {
		resp.ReceiptError = appErrors.FromError(err).Message
		return resp, nil
	}
	resp.Receipt = link
	return resp, nil
}

func (s *ApplicationService) submitFailure(id string, err error) error {
	_, rejected := repository.AsRejected(err)
	_, status := storeclient.AsStatusError(err)
	if rejected || status {
		s.metrics.RecordSubmission("rejected")
		s.logger.Warn("store rejected application", zap.String("application_id", id), zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, submitRejectedMsg)
	}
	s.metrics.RecordSubmission("failed")
	s.logger.Error("application submission failed", zap.String("application_id", id), zap.Error(err))
	return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, submitTransportMsg)
}

// List returns every application with normalised status, newest first, optionally filtered by status.
func (s *ApplicationService) List(ctx context.Context, filter models.ApplicationFilter) ([]models.Application, error) {
	if filter.Status != "" {
		filter.Status = models.ApplicationStatus(strings.ToUpper(string(filter.Status)))
		if !filter.Status.Valid() {
			return nil, appErrors.Field("status", "status must be one of PENDING, SELECTED, REJECTED")
		}
	}
	all, err := s.repo.All(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "Failed to fetch applications")
	}
	out := make([]models.Application, 0, len(all))
	for _, app := range all {
		app.Status = app.Status.Normalize()
		if filter.Status != "" && app.Status != filter.Status {
			continue
		}
		out = append(out, app)
	}
	sort.SliceStable(out, func(i, j int) bool {
		ti, tj := submittedAt(out[i]), submittedAt(out[j])
		if ti.Equal(tj) {
			return out[i].ApplicationID < out[j].ApplicationID
		}
		return ti.After(tj)
	})
	return out, nil
}

func submittedAt(app models.Application) time.Time {
	t, err := datefmt.ParseDate(app.ApplicationDate)
	if err != nil {
		return time.Time{}
	}
	return t
}

var applicantColumns = []string{
	"Application ID", "Status", "Course", "Fees", "Name", "Email", "Phone",
	"Date of Birth", "Address", "City", "State", "Pincode", "Applied On",
}

// Export renders the filtered applicant list as CSV.
func (s *ApplicationService) Export(ctx context.Context, filter models.ApplicationFilter) ([]byte, error) {
	apps, err := s.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	rows := make([]map[string]string, 0, len(apps))
	for _, app := range apps {
		rows = append(rows, map[string]string{
			"Application ID": app.ApplicationID,
			"Status":         string(app.Status),
			"Course":         app.CourseName,
			"Fees":           app.CourseFees.String(),
			"Name":           app.Name,
			"Email":          app.Email,
			"Phone":          app.Phone,
			"Date of Birth":  app.DOB,
			"Address":        app.Address,
			"City":           app.City,
			"State":          app.State,
			"Pincode":        app.Pincode,
			"Applied On":     app.ApplicationDate,
		})
	}
	out, err := s.csv.Render(export.Dataset{Headers: applicantColumns, Rows: rows})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to export applications")
	}
	return out, nil
}
