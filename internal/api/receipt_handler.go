package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ajharbinger/receipt-processor/internal/errors"
	"github.com/ajharbinger/receipt-processor/internal/logger"
	"github.com/ajharbinger/receipt-processor/internal/models"
	"github.com/ajharbinger/receipt-processor/internal/services"
)

const requestTimeout = 5 * time.Second

// ProcessResponse is returned after a receipt is scored
type ProcessResponse struct {
	ID int64 `json:"id"`
}

// PointsResponse is returned by a points lookup
type PointsResponse struct {
	Points int `json:"points"`
}

// ReceiptHandler exposes receipt scoring over HTTP
type ReceiptHandler struct {
	receiptService services.ReceiptService
	logger         logger.Logger
}

// NewReceiptHandler creates a new receipt handler
func NewReceiptHandler(receiptService services.ReceiptService, log logger.Logger) *ReceiptHandler {
	if log == nil {
		log = logger.NewNop()
	}
	return &ReceiptHandler{
		receiptService: receiptService,
		logger:         log,
	}
}

// ProcessReceipt scores a submitted receipt and returns its identifier
func (h *ReceiptHandler) ProcessReceipt(c *gin.Context) {
	var payload models.ReceiptPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.respondError(c, errors.ValidationError("The receipt is invalid.", err).WithDetails(err.Error()))
		return
	}

	receipt, err := payload.ToReceipt()
	if err != nil {
		h.respondError(c, errors.ValidationError("The receipt is invalid.", err).WithDetails(err.Error()))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	id, err := h.receiptService.ProcessReceipt(ctx, receipt)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ProcessResponse{ID: id})
}

// GetPoints returns the points stored for a receipt
func (h *ReceiptHandler) GetPoints(c *gin.Context) {
	rawID := c.Param("id")
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		// ids are only ever issued as integers
		h.respondError(c, errors.ReceiptNotFound(rawID))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	points, err := h.receiptService.GetPoints(ctx, id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, PointsResponse{Points: points})
}

// respondError maps an application error onto the client error body
func (h *ReceiptHandler) respondError(c *gin.Context, err error) {
	route := c.Request.URL.Path
	h.logger.Debug("Receipt request failed", "route", route, "code", errors.CodeOf(err), "error", err.Error())

	switch errors.CodeOf(err) {
	case errors.ErrCodeNotFound:
		c.JSON(http.StatusNotFound, errors.NewErrorDetails(route, errors.MessageOf(err), errors.ErrCodeNotFound))
	case errors.ErrCodeValidationError, errors.ErrCodeInvalidInput:
		c.JSON(http.StatusBadRequest, errors.NewErrorDetails(route, errors.MessageOf(err), errors.ErrCodeValidationError))
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, errors.NewErrorDetails(route,
			"An unexpected error occurred while handling the receipt.", errors.ErrCodeInternalError))
	}
}
