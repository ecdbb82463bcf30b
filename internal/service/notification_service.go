package service

import (
	"context"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/course-portal-api/internal/models"
	appErrors "github.com/noah-isme/course-portal-api/pkg/errors"
)

type notificationStore interface {
	List(ctx context.Context) ([]models.Notification, error)
	Create(ctx context.Context, input models.NotificationInput) error
	Update(ctx context.Context, id string, input models.NotificationInput) error
	Delete(ctx context.Context, id string) error
}

// NotificationService manages dashboard announcements.
type NotificationService struct {
	repo      notificationStore
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewNotificationService constructs NotificationService.
func NewNotificationService(repo notificationStore, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *NotificationService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{repo: repo, cache: cache, validator: validate, logger: logger}
}

// List returns notifications newest first.
func (s *NotificationService) List(ctx context.Context) ([]models.Notification, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "Failed to fetch notifications")
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Timestamp.After(items[j].Timestamp.Time)
	})
	return items, nil
}

// Create posts a notification.
func (s *NotificationService) Create(ctx context.Context, input models.NotificationInput) error {
	input.Title = strings.TrimSpace(input.Title)
	if err := firstViolation(s.validator, input); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, input); err != nil {
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "Failed to create notification")
	}
	s.cache.InvalidateCatalog(ctx)
	return nil
}

// Update replaces notification id.
func (s *NotificationService) Update(ctx context.Context, id string, input models.NotificationInput) error {
	if strings.TrimSpace(id) == "" {
		return appErrors.Field("id", "notification id is required")
	}
	input.Title = strings.TrimSpace(input.Title)
	if err := firstViolation(s.validator, input); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, id, input); err != nil {
		return s.mutationFailure(err, "Failed to update notification")
	}
	s.cache.InvalidateCatalog(ctx)
	return nil
}

// Delete removes notification id.
func (s *NotificationService) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return appErrors.Field("id", "notification id is required")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.mutationFailure(err, "Failed to delete notification")
	}
	s.cache.InvalidateCatalog(ctx)
	return nil
}

func (s *NotificationService) mutationFailure(err error, msg string) error {
	if notFound(err) {
		return appErrors.Clone(appErrors.ErrNotFound, "notification not found")
	}
	s.logger.Warn("notification mutation failed", zap.Error(err))
	return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, msg)
}
