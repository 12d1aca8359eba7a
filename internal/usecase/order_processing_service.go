package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Gunvolt24/order_intake/internal/domain"
	"github.com/Gunvolt24/order_intake/internal/ports"
	"github.com/Gunvolt24/order_intake/pkg/ctxmeta"
	"github.com/Gunvolt24/order_intake/pkg/metrics"
)

var _ ports.OrderSubmitter = (*OrderProcessingService)(nil)

// OrderProcessingService — приём новых заказов (без знаний о транспорте).
type OrderProcessingService struct {
	repo      ports.OrderRepository
	validator ports.OrderValidator
	guard     *DuplicateGuard
	publisher ports.EventPublisher // может быть nil — публикация отключена
	log       ports.Logger
	now       func() time.Time
}

// NewOrderProcessingService — DI-конструктор.
func NewOrderProcessingService(
	repo ports.OrderRepository,
	validator ports.OrderValidator,
	publisher ports.EventPublisher,
	log ports.Logger,
) *OrderProcessingService {
	return &OrderProcessingService{
		repo:      repo,
		validator: validator,
		guard:     NewDuplicateGuard(repo),
		publisher: publisher,
		log:       log,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// ProcessNewOrder — принять заявку.
// Шаги:
//  1. валидация цепочкой (первая ошибка — *domain.ValidationError, в хранилище ничего не пишем);
//  2. проверка дубля по order_uid;
//  3. сохранение заказа с позициями в статусе RECEIVED;
//  4. публикация OrderReceivedEvent (best effort).
func (s *OrderProcessingService) ProcessNewOrder(ctx context.Context, req *domain.SubmitOrderRequest) (*domain.Order, error) {
	if req != nil {
		ctx = ctxmeta.WithOrderUID(ctx, req.OrderUID)
	}

	if err := s.validator.Validate(ctx, req); err != nil {
		metrics.OrdersSubmitted.WithLabelValues(metrics.ResultInvalid).Inc()
		s.log.Warnf(ctx, "order rejected by validation: %v", err)
		return nil, err
	}

	exists, err := s.guard.Exists(ctx, req.OrderUID)
	if err != nil {
		return nil, s.fail(ctx, storeError("exists", err))
	}
	if exists {
		return nil, s.duplicate(ctx, req.OrderUID)
	}

	order := domain.NewOrderFromRequest(req, s.now())
	if err := s.repo.Save(ctx, order); err != nil {
		if errors.Is(err, domain.ErrUniqueViolation) {
			// Проиграли гонку между Exists и Save.
			return nil, s.duplicate(ctx, req.OrderUID)
		}
		return nil, s.fail(ctx, storeError("save", err))
	}

	metrics.OrdersSubmitted.WithLabelValues(metrics.ResultAccepted).Inc()
	s.log.Infof(ctx, "order accepted id=%d items=%d", order.ID, len(order.Items))

	s.publish(ctx, order)
	return order, nil
}

func (s *OrderProcessingService) publish(ctx context.Context, order *domain.Order) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishOrderReceived(ctx, order); err != nil {
		s.log.Warnf(ctx, "publish order.received failed: %v", err)
	}
}

func (s *OrderProcessingService) duplicate(ctx context.Context, orderUID string) error {
	metrics.OrdersSubmitted.WithLabelValues(metrics.ResultDuplicate).Inc()
	s.log.Warnf(ctx, "duplicate order rejected")
	return domain.NewDuplicateOrderError(orderUID)
}

func (s *OrderProcessingService) fail(ctx context.Context, err error) error {
	if errors.Is(err, domain.ErrTimeout) {
		metrics.OrdersSubmitted.WithLabelValues(metrics.ResultTimeout).Inc()
	} else {
		metrics.OrdersSubmitted.WithLabelValues(metrics.ResultError).Inc()
	}
	s.log.Errorf(ctx, "order intake failed: %v", err)
	return fmt.Errorf("process order: %w", err)
}
