package service

import (
	"context"
	"encoding/base64"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/course-portal-api/internal/models"
	appErrors "github.com/noah-isme/course-portal-api/pkg/errors"
)

const (
	defaultMaxImageBytes = 5 << 20
	msgImageTooLarge     = "Image size must be less than 5MB"
	msgConcernFailed     = "Failed to submit your concern. Please try again."
)

type helpRequestStore interface {
	List(ctx context.Context) ([]models.HelpRequest, error)
	Create(ctx context.Context, input models.HelpRequestInput) error
	Delete(ctx context.Context, id string) error
}

// HelpRequestService accepts applicant concerns and serves them to admins.
type HelpRequestService struct {
	repo          helpRequestStore
	validator     *validator.Validate
	logger        *zap.Logger
	maxImageBytes int64
}

// NewHelpRequestService constructs HelpRequestService.
func NewHelpRequestService(repo helpRequestStore, validate *validator.Validate, logger *zap.Logger, maxImageBytes int64) *HelpRequestService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxImageBytes <= 0 {
		maxImageBytes = defaultMaxImageBytes
	}
	return &HelpRequestService{repo: repo, validator: validate, logger: logger, maxImageBytes: maxImageBytes}
}

// Submit validates and forwards a concern.
func (s *HelpRequestService) Submit(ctx context.Context, input models.HelpRequestInput) error {
	input.ApplicationID = strings.TrimSpace(input.ApplicationID)
	if err := firstViolation(s.validator, input); err != nil {
		return err
	}
	if input.ImageBase64 != "" {
		size, err := decodedImageSize(input.ImageBase64)
		if err != nil {
			return appErrors.Field("imageBase64", "Invalid image data")
		}
		if size > s.maxImageBytes {
			return appErrors.Field("imageBase64", msgImageTooLarge)
		}
	}

	if err := s.repo.Create(ctx, input); err != nil {
		s.logger.Warn("help request submission failed", zap.Error(err))
		msg := storeMessage(err)
		if msg == "" {
			msg = msgConcernFailed
		}
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, msg)
	}
	s.logger.Info("help request submitted", zap.String("application_id", input.ApplicationID))
	return nil
}

// List returns help requests newest first.
func (s *HelpRequestService) List(ctx context.Context) ([]models.HelpRequest, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "Failed to fetch help requests")
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt.Time)
	})
	return items, nil
}

// Delete removes help request id.
func (s *HelpRequestService) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return appErrors.Field("id", "help request id is required")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if notFound(err) {
			return appErrors.Clone(appErrors.ErrNotFound, "help request not found")
		}
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "Failed to delete help request")
	}
	return nil
}

// decodedImageSize accepts a bare base64 payload or a data URL.
func decodedImageSize(value string) (int64, error) {
	payload := value
	if strings.HasPrefix(payload, "data:") {
		idx := strings.Index(payload, ",")
		if idx < 0 {
			return 0, base64.CorruptInputError(0)
		}
		payload = payload[idx+1:]
	}
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(payload))
	if err != nil {
		return 0, err
	}
	return int64(len(decoded)), nil
}
