package usecase

import (
	"context"
	"time"

	"github.com/Gunvolt24/order_intake/internal/domain"
	"github.com/Gunvolt24/order_intake/internal/ports"
	"github.com/Gunvolt24/order_intake/pkg/ctxmeta"
	"github.com/Gunvolt24/order_intake/pkg/metrics"
)

var _ ports.OrderStatusReader = (*OrderStatusService)(nil)

// OrderStatusService — чтение статуса заказа. В хранилище не пишет.
// В кэш попадают только терминальные статусы: они больше не меняются,
// поэтому кэш не может отдать устаревшее значение.
type OrderStatusService struct {
	repo  ports.OrderRepository
	cache ports.StatusCache // может быть nil
	log   ports.Logger
}

func NewOrderStatusService(repo ports.OrderRepository, cache ports.StatusCache, log ports.Logger) *OrderStatusService {
	return &OrderStatusService{repo: repo, cache: cache, log: log}
}

// GetOrderStatus — кэш -> заказ -> позиции. Неизвестный order_uid -> domain.ErrOrderNotFound.
func (s *OrderStatusService) GetOrderStatus(ctx context.Context, orderUID string) (*domain.OrderStatusView, error) {
	ctx = ctxmeta.WithOrderUID(ctx, orderUID)

	if s.cache != nil {
		if view, ok := s.cache.Get(ctx, orderUID); ok {
			metrics.OrderStatusLookups.WithLabelValues(metrics.ResultFound).Inc()
			return view, nil
		}
	}

	view, err := loadView(ctx, s.repo, orderUID)
	if err != nil {
		s.countFailure(err)
		return nil, err
	}
	if view == nil {
		metrics.OrderStatusLookups.WithLabelValues(metrics.ResultNotFound).Inc()
		return nil, domain.NewOrderNotFoundError(orderUID)
	}

	metrics.OrderStatusLookups.WithLabelValues(metrics.ResultFound).Inc()
	s.remember(ctx, view)
	return view, nil
}

// WarmUpCache — прогрев кэша терминальными заказами из последних n.
// Если n <= 0, прогрев не выполняется (но это не ошибка).
func (s *OrderStatusService) WarmUpCache(ctx context.Context, n int) error {
	if n <= 0 || s.cache == nil {
		s.log.Warnf(ctx, "cache warm-up skipped (n=%d)", n)
		return nil
	}

	start := time.Now()
	orders, err := s.repo.LastN(ctx, n)
	if err != nil {
		s.log.Errorf(ctx, "repo.LastN failed n=%d err=%v", n, err)
		return err
	}

	// LastN отдаёт от свежих к старым; в кэш кладём в обратном порядке,
	// чтобы при нехватке ёмкости остались самые свежие.
	views := make([]*domain.OrderStatusView, 0, len(orders))
	for i := len(orders) - 1; i >= 0; i-- {
		order := orders[i]
		if !order.Status.IsTerminal() {
			continue
		}
		items, err := s.repo.FindItemsByOrderID(ctx, order.ID)
		if err != nil {
			s.log.Errorf(ctx, "repo.FindItemsByOrderID failed order_uid=%s err=%v", order.OrderUID, err)
			return err
		}
		views = append(views, domain.NewStatusView(order, items))
	}

	if err := s.cache.WarmUp(ctx, views); err != nil {
		s.log.Warnf(ctx, "cache.WarmUp failed err=%v", err)
	}
	s.log.Infof(ctx, "cache warmed with %d of %d orders in %s", len(views), len(orders), time.Since(start))
	return nil
}

func (s *OrderStatusService) remember(ctx context.Context, view *domain.OrderStatusView) {
	if s.cache == nil || !view.Status.IsTerminal() {
		return
	}
	if err := s.cache.Set(ctx, view); err != nil {
		s.log.Warnf(ctx, "cache.Set failed err=%v", err)
	}
}

func (s *OrderStatusService) countFailure(err error) {
	result := metrics.ResultError
	if isTimeout(err) {
		result = metrics.ResultTimeout
	}
	metrics.OrderStatusLookups.WithLabelValues(result).Inc()
}

// loadView — проекция из хранилища; (nil, nil), если заказа нет.
func loadView(ctx context.Context, repo ports.OrderRepository, orderUID string) (*domain.OrderStatusView, error) {
	order, err := repo.FindByUID(ctx, orderUID)
	if err != nil {
		return nil, storeError("find order", err)
	}
	if order == nil {
		return nil, nil
	}
	items, err := repo.FindItemsByOrderID(ctx, order.ID)
	if err != nil {
		return nil, storeError("find items", err)
	}
	return domain.NewStatusView(order, items), nil
}
