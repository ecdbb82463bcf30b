package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/course-portal-api/internal/service"
	appErrors "github.com/noah-isme/course-portal-api/pkg/errors"
	"github.com/noah-isme/course-portal-api/pkg/response"
)

type receiptOpener interface {
	Open(ctx context.Context, token string) (*service.ReceiptFile, error)
}

// ReceiptHandler streams stored receipts behind signed tokens.
type ReceiptHandler struct {
	receipts receiptOpener
	logger   *zap.Logger
}

// NewReceiptHandler constructs the handler.
func NewReceiptHandler(receipts receiptOpener, logger *zap.Logger) *ReceiptHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReceiptHandler{receipts: receipts, logger: logger}
}

// Download godoc
// @Summary Download an application receipt
// @Tags Receipts
// @Produce application/pdf
// @Param token query string true "Signed download token"
// @Success 200 {file} binary
// @Failure 401 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /receipts/download [get]
func (h *ReceiptHandler) Download(c *gin.Context) {
	file, err := h.receipts.Open(c.Request.Context(), c.Query("token"))
	if err != nil {
		response.Error(c, err)
		return
	}
	defer file.File.Close() //nolint:errcheck

	info, err := file.File.Stat()
	if err != nil {
		h.logger.Error("stat receipt failed", zap.Error(err))
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read receipt"))
		return
	}

	response.Attachment(c, file.Filename, "application/pdf", info.Size(), file.File)
}
