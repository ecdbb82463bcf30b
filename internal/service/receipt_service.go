package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/course-portal-api/internal/dto"
	"github.com/noah-isme/course-portal-api/internal/models"
	appErrors "github.com/noah-isme/course-portal-api/pkg/errors"
	"github.com/noah-isme/course-portal-api/pkg/jobs"
	"github.com/noah-isme/course-portal-api/pkg/receipt"
	"github.com/noah-isme/course-portal-api/pkg/storage"
)

const (
	receiptCleanupJob = "receipt.cleanup"
	receiptFailureMsg = "Failed to generate PDF. Please try again."
)

type receiptStorage interface {
	Save(relPath string, data []byte) (string, error)
	Open(relPath string) (*os.File, error)
	CleanupOlderThan(ttl time.Duration) ([]string, error)
}

type receiptSigner interface {
	Generate(subject, relPath string) (string, time.Time, error)
	Parse(token string, allowExpired bool) (storage.DownloadToken, error)
	TTL() time.Duration
}

// ReceiptConfig tunes receipt links and retention.
type ReceiptConfig struct {
	APIPrefix       string
	CleanupInterval time.Duration
}

// ReceiptFile is an opened receipt ready to stream.
type ReceiptFile struct {
	Filename string
	File     *os.File
}

// ReceiptService renders, stores and serves application receipts.
type ReceiptService struct {
	storage receiptStorage
	signer  receiptSigner
	render  func(receipt.Details) ([]byte, error)
	metrics *MetricsService
	logger  *zap.Logger
	cfg     ReceiptConfig
	queue   *jobs.Queue
	now     func() time.Time
}

// NewReceiptService constructs the receipt service and its cleanup queue.
func NewReceiptService(store receiptStorage, signer receiptSigner, metrics *MetricsService, logger *zap.Logger, cfg ReceiptConfig) *ReceiptService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &ReceiptService{
		storage: store,
		signer:  signer,
		render:  receipt.Render,
		metrics: metrics,
		logger:  logger,
		cfg:     cfg,
		now:     time.Now,
	}
	s.queue = jobs.NewQueue("receipt-cleanup", s.handleCleanup, jobs.QueueConfig{
		Workers:    1,
		BufferSize: 2,
		MaxRetries: 1,
		RetryDelay: 30 * time.Second,
		Logger:     logger,
	})
	return s
}

// Generate renders the receipt for app, stores it and returns a signed download link.
// The error is always a RECEIPT_ERROR carrying the user-facing message.
func (s *ReceiptService) Generate(ctx context.Context, app models.Application, course models.Course) (*dto.ReceiptLink, error) {
	doc, err := s.render(detailsFor(app, course, s.now()))
	if err != nil {
		return nil, s.fail(app.ApplicationID, "render", err)
	}

	filename := receipt.FileName(storage.SafeName(app.Name))
	relPath := path.Join(app.ApplicationID, filename)
	if _, err := s.storage.Save(relPath, doc); err != nil {
		return nil, s.fail(app.ApplicationID, "store", err)
	}

	token, expiresAt, err := s.signer.Generate(app.ApplicationID, relPath)
	if err != nil {
		return nil, s.fail(app.ApplicationID, "sign", err)
	}

	s.metrics.RecordReceipt(true)
	s.logger.Info("receipt generated", zap.String("application_id", app.ApplicationID), zap.Int("bytes", len(doc)))
	return &dto.ReceiptLink{
		Filename:    receipt.FileName(app.Name),
		DownloadURL: fmt.Sprintf("%s/receipts/download?token=%s", strings.TrimRight(s.cfg.APIPrefix, "/"), url.QueryEscape(token)),
		ExpiresAt:   expiresAt,
	}, nil
}

// Open resolves a download token to its stored receipt.
func (s *ReceiptService) Open(ctx context.Context, token string) (*ReceiptFile, error) {
	if strings.TrimSpace(token) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "download token is required")
	}
	parsed, err := s.signer.Parse(token, false)
	if err != nil {
		if errors.Is(err, storage.ErrTokenExpired) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "download link has expired")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid download token")
	}
	if !strings.HasPrefix(parsed.Path, parsed.Subject+"/") {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid download token")
	}
	file, err := s.storage.Open(parsed.Path)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrNotFound.Code, appErrors.ErrNotFound.Status, "receipt not found")
	}
	return &ReceiptFile{Filename: path.Base(parsed.Path), File: file}, nil
}

// StartCleanup starts the cleanup queue and enqueues a purge every CleanupInterval until ctx ends.
func (s *ReceiptService) StartCleanup(ctx context.Context) {
	if s.cfg.CleanupInterval <= 0 {
		return
	}
	s.queue.Start(ctx)
	ticker := time.NewTicker(s.cfg.CleanupInterval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.scheduleCleanup()
			}
		}
	}()
}

// StopCleanup stops the cleanup workers.
func (s *ReceiptService) StopCleanup() {
	s.queue.Stop()
}

func (s *ReceiptService) scheduleCleanup() {
	job := jobs.Job{ID: uuid.NewString(), Key: receiptCleanupJob, Type: receiptCleanupJob}
	if err := s.queue.TryEnqueue(job); err != nil {
		if errors.Is(err, jobs.ErrDuplicate) {
			return
		}
		s.logger.Warn("receipt cleanup not scheduled", zap.Error(err))
	}
}

func (s *ReceiptService) handleCleanup(ctx context.Context, job jobs.Job) error {
	_, err := s.Cleanup(ctx)
	return err
}

// Cleanup removes receipts older than the signed link lifetime.
func (s *ReceiptService) Cleanup(ctx context.Context) (int, error) {
	removed, err := s.storage.CleanupOlderThan(s.signer.TTL())
	if err != nil {
		s.logger.Warn("receipt cleanup failed", zap.Error(err))
		return 0, err
	}
	if len(removed) > 0 {
		s.logger.Info("expired receipts removed", zap.Int("count", len(removed)))
	}
	return len(removed), nil
}

func (s *ReceiptService) fail(applicationID, stage string, err error) error {
	s.metrics.RecordReceipt(false)
	s.logger.Error("receipt generation failed",
		zap.String("application_id", applicationID),
		zap.String("stage", stage),
		zap.Error(err))
	return appErrors.Wrap(err, appErrors.ErrReceipt.Code, appErrors.ErrReceipt.Status, receiptFailureMsg)
}

func detailsFor(app models.Application, course models.Course, now time.Time) receipt.Details {
	return receipt.Details{
		ApplicationID:   app.ApplicationID,
		CourseName:      course.Title,
		CourseFees:      course.Fees.String(),
		StartDate:       course.StartDate,
		StartTime:       course.StartTime,
		EndTime:         course.EndTime,
		LastDateToApply: course.LastDateToApply,
		Name:            app.Name,
		Email:           app.Email,
		Phone:           app.Phone,
		DOB:             app.DOB,
		Address:         app.Address,
		City:            app.City,
		State:           app.State,
		Pincode:         app.Pincode,
		ApplicationDate: now,
	}
}
