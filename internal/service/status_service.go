package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/course-portal-api/internal/models"
	"github.com/noah-isme/course-portal-api/internal/repository"
	appErrors "github.com/noah-isme/course-portal-api/pkg/errors"
	"github.com/noah-isme/course-portal-api/pkg/storeclient"
)

const (
	msgEnterApplicationID = "Please enter an application ID"
	msgApplicationMissing = "Application not found"
	msgStatusFetchFailed  = "Failed to fetch application details"
	msgStatusTransport    = "Error checking application status"
)

type applicationReader interface {
	All(ctx context.Context) (map[string]models.Application, error)
}

// findApplication looks id up by store key first, then by the applicationId field.
func findApplication(apps map[string]models.Application, id string) (models.Application, bool) {
	if app, ok := apps[id]; ok {
		return app, true
	}
	for _, app := range apps {
		if app.ApplicationID == id {
			return app, true
		}
	}
	return models.Application{}, false
}

// StatusService resolves an application's workflow state.
type StatusService struct {
	repo    applicationReader
	metrics *MetricsService
	logger  *zap.Logger
}

// NewStatusService constructs StatusService.
func NewStatusService(repo applicationReader, metrics *MetricsService, logger *zap.Logger) *StatusService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatusService{repo: repo, metrics: metrics, logger: logger}
}

// Resolve returns the application for id with its status normalised.
func (s *StatusService) Resolve(ctx context.Context, id string) (*models.Application, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, appErrors.Field("id", msgEnterApplicationID)
	}

	apps, err := s.repo.All(ctx)
	if err != nil {
		s.metrics.RecordLookup("status", "error")
		_, rejected := repository.AsRejected(err)
		_, status := storeclient.AsStatusError(err)
		if rejected || status {
			return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, msgStatusFetchFailed)
		}
		s.logger.Warn("status lookup transport failure", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, msgStatusTransport)
	}

	app, ok := findApplication(apps, id)
	if !ok {
		s.metrics.RecordLookup("status", "not_found")
		return nil, appErrors.Clone(appErrors.ErrNotFound, msgApplicationMissing)
	}
	app.Status = app.Status.Normalize()
	s.metrics.RecordLookup("status", "found")
	return &app, nil
}
