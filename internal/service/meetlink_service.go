package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/course-portal-api/internal/dto"
	"github.com/noah-isme/course-portal-api/internal/models"
	appErrors "github.com/noah-isme/course-portal-api/pkg/errors"
)

// MeetLinkStage names the pipeline step that produced a result.
type MeetLinkStage string

const (
	StageLookup     MeetLinkStage = "lookup"
	StageStatusGate MeetLinkStage = "status_gate"
	StageLinkMatch  MeetLinkStage = "link_match"
)

const (
	msgApplicationsFetch = "Failed to fetch applications"
	msgMeetLinksFetch    = "Failed to fetch meet links"
	msgMeetLinkMissing   = "Meet link not found for this course"
	msgNotSelectedFormat = "Your application status is: %s. Only selected applications can access the meet link."
)

type meetLinkStore interface {
	All(ctx context.Context) ([]models.MeetLink, error)
	Create(ctx context.Context, link *models.MeetLink) error
}

// stageResult carries one stage's output to the next.
type stageResult struct {
	stage    MeetLinkStage
	app      models.Application
	meetLink models.MeetLink
	err      error
}

// MeetLinkService matches selected applicants to their course meeting link.
type MeetLinkService struct {
	apps      applicationReader
	links     meetLinkStore
	validator *validator.Validate
	metrics   *MetricsService
	logger    *zap.Logger
}

// NewMeetLinkService constructs MeetLinkService.
func NewMeetLinkService(apps applicationReader, links meetLinkStore, validate *validator.Validate, metrics *MetricsService, logger *zap.Logger) *MeetLinkService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MeetLinkService{apps: apps, links: links, validator: validate, metrics: metrics, logger: logger}
}

// Find runs lookup, status gate and link match, stopping at the first failing stage.
// Errors carry details.stage and, once the application is known, details.application.
func (s *MeetLinkService) Find(ctx context.Context, id string) (*dto.MeetLinkResponse, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, appErrors.Field("id", msgEnterApplicationID)
	}

	res := s.lookup(ctx, id)
	if res.err == nil {
		res = s.gate(res)
	}
	if res.err == nil {
		res = s.match(ctx, res)
	}
	if res.err != nil {
		s.metrics.RecordLookup("meet_link", string(res.stage))
		return nil, s.withStage(res)
	}
	s.metrics.RecordLookup("meet_link", "found")
	return &dto.MeetLinkResponse{Application: res.app.Summary(), MeetLink: res.meetLink}, nil
}

func (s *MeetLinkService) lookup(ctx context.Context, id string) stageResult {
	apps, err := s.apps.All(ctx)
	if err != nil {
		s.logger.Warn("meet link lookup failed", zap.Error(err))
		return stageResult{stage: StageLookup, err: appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, msgApplicationsFetch)}
	}
	app, ok := findApplication(apps, id)
	if !ok {
		return stageResult{stage: StageLookup, err: appErrors.Clone(appErrors.ErrNotFound, msgApplicationMissing)}
	}
	app.Status = app.Status.Normalize()
	return stageResult{stage: StageLookup, app: app}
}

func (s *MeetLinkService) gate(prev stageResult) stageResult {
	res := stageResult{stage: StageStatusGate, app: prev.app}
	if prev.app.Status != models.ApplicationStatusSelected {
		res.err = appErrors.Clone(appErrors.ErrPreconditionFailed, fmt.Sprintf(msgNotSelectedFormat, prev.app.Status))
	}
	return res
}

func (s *MeetLinkService) match(ctx context.Context, prev stageResult) stageResult {
	res := stageResult{stage: StageLinkMatch, app: prev.app}
	links, err := s.links.All(ctx)
	if err != nil {
		s.logger.Warn("meet link fetch failed", zap.Error(err))
		res.err = appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, msgMeetLinksFetch)
		return res
	}
	for _, link := range links {
		if strings.EqualFold(link.CourseTitle, prev.app.CourseName) {
			res.meetLink = link
			return res
		}
	}
	res.err = appErrors.Clone(appErrors.ErrNotFound, msgMeetLinkMissing)
	return res
}

func (s *MeetLinkService) withStage(res stageResult) error {
	appErr := appErrors.FromError(res.err)
	details := map[string]interface{}{"stage": string(res.stage)}
	if res.app.ApplicationID != "" {
		details["application"] = res.app.Summary()
	}
	return appErrors.WithDetails(appErr, details)
}

// List returns every configured meet link.
func (s *MeetLinkService) List(ctx context.Context) ([]models.MeetLink, error) {
	links, err := s.links.All(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, msgMeetLinksFetch)
	}
	return links, nil
}

// Create validates and stores a meet link.
func (s *MeetLinkService) Create(ctx context.Context, link models.MeetLink) (*models.MeetLink, error) {
	link.CourseTitle = strings.TrimSpace(link.CourseTitle)
	link.MeetLink = strings.TrimSpace(link.MeetLink)
	if err := firstViolation(s.validator, link); err != nil {
		return nil, err
	}
	if err := s.links.Create(ctx, &link); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "Failed to create meet link")
	}
	s.logger.Info("meet link created", zap.String("course_title", link.CourseTitle))
	return &link, nil
}
