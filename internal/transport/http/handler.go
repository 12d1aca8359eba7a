package rest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Gunvolt24/order_intake/internal/domain"
	"github.com/Gunvolt24/order_intake/internal/ports"
	"github.com/Gunvolt24/order_intake/pkg/httpx"
	"github.com/Gunvolt24/order_intake/pkg/validate"
	"github.com/gin-gonic/gin"
)

// maxBodyBytes — предел тела заявки.
const maxBodyBytes = 1 << 20

const (
	msgSubmitted      = "Order submitted successfully"
	msgInvalidBody    = "Invalid request body"
	msgTimeout        = "Request timed out"
	msgStatusInternal = "Unable to retrieve order status"
)

// SubmitResponse — ответ на успешный приём заказа.
type SubmitResponse struct {
	Message  string             `json:"message"`
	OrderUID string             `json:"order_uid"`
	Status   domain.OrderStatus `json:"status"`
}

// Handler — HTTP-обработчики над портами приёма и чтения статуса.
type Handler struct {
	submitter      ports.OrderSubmitter
	statuses       ports.OrderStatusReader
	log            ports.Logger
	handlerTimeout time.Duration
}

// NewHandler — handlerTimeout <= 0 отключает собственный дедлайн обработчика.
func NewHandler(
	submitter ports.OrderSubmitter,
	statuses ports.OrderStatusReader,
	log ports.Logger,
	handlerTimeout time.Duration,
) *Handler {
	return &Handler{submitter: submitter, statuses: statuses, log: log, handlerTimeout: handlerTimeout}
}

func (h *Handler) submitOrder(c *gin.Context) {
	raw, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes))
	if err != nil {
		httpx.AbortWithMessage(c, http.StatusBadRequest, msgInvalidBody)
		return
	}
	req, err := validate.DecodeRequest(raw)
	if err != nil {
		h.log.Warnf(c.Request.Context(), "submit: %v", err)
		httpx.AbortWithMessage(c, http.StatusBadRequest, msgInvalidBody)
		return
	}

	ctx, cancel := h.withTimeout(c.Request.Context())
	defer cancel()

	order, err := h.submitter.ProcessNewOrder(ctx, req)
	if err != nil {
		status, msg := submitError(err, req.OrderUID)
		httpx.AbortWithMessage(c, status, msg)
		return
	}

	c.JSON(http.StatusOK, SubmitResponse{
		Message:  msgSubmitted,
		OrderUID: order.OrderUID,
		Status:   order.Status,
	})
}

func (h *Handler) getOrderStatus(c *gin.Context) {
	id := c.Param("id")

	ctx, cancel := h.withTimeout(c.Request.Context())
	defer cancel()

	view, err := h.statuses.GetOrderStatus(ctx, id)
	if err != nil {
		status, msg := statusError(err, id)
		if status == http.StatusInternalServerError {
			h.log.Errorf(ctx, "GetOrderStatus failed id=%s err=%v", id, err)
		}
		httpx.AbortWithMessage(c, status, msg)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *Handler) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if h.handlerTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, h.handlerTimeout)
}

// submitError — код и сообщение для ошибки приёма. Детали хранилища наружу не уходят.
func submitError(err error, orderUID string) (int, string) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest, ve.Message
	case errors.Is(err, domain.ErrInvalidOrder):
		return http.StatusBadRequest, "Invalid order"
	case errors.Is(err, domain.ErrDuplicateOrder):
		return http.StatusConflict, fmt.Sprintf("Order already exists: %s", orderUID)
	case isTimeout(err):
		return http.StatusGatewayTimeout, msgTimeout
	default:
		return http.StatusInternalServerError, fmt.Sprintf("Error processing order: %s", orderUID)
	}
}

func statusError(err error, orderUID string) (int, string) {
	switch {
	case errors.Is(err, domain.ErrOrderNotFound):
		return http.StatusNotFound, fmt.Sprintf("Order not found: %s", orderUID)
	case isTimeout(err):
		return http.StatusGatewayTimeout, msgTimeout
	default:
		return http.StatusInternalServerError, msgStatusInternal
	}
}

func isTimeout(err error) bool {
	return errors.Is(err, domain.ErrTimeout) || errors.Is(err, context.DeadlineExceeded)
}
