package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/Gunvolt24/order_intake/internal/domain"
	"github.com/Gunvolt24/order_intake/internal/ports"
	"github.com/Gunvolt24/order_intake/pkg/ctxmeta"
	"github.com/Gunvolt24/order_intake/pkg/metrics"
)

// OrderStatusUpdater — применяет события смены статуса от контура исполнения.
type OrderStatusUpdater struct {
	repo  ports.OrderRepository
	cache ports.StatusCache // может быть nil
	log   ports.Logger
}

func NewOrderStatusUpdater(repo ports.OrderRepository, cache ports.StatusCache, log ports.Logger) *OrderStatusUpdater {
	return &OrderStatusUpdater{repo: repo, cache: cache, log: log}
}

// UpdateFromMessage — разобрать событие (raw JSON) и применить переход.
// Ошибки бизнес-уровня (ErrInvalidStatusEvent, ErrInvalidTransition, ErrOrderNotFound)
// повторять бессмысленно; остальные — временные.
func (u *OrderStatusUpdater) UpdateFromMessage(ctx context.Context, raw []byte) error {
	// Строгое декодирование: запрещаем неизвестные поля.
	var ev domain.StatusEvent
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&ev); err != nil {
		u.log.Warnf(ctx, "invalid status event json err=%v", err)
		return fmt.Errorf("%w: %v", domain.ErrInvalidStatusEvent, err)
	}
	// После объекта не должно быть лишних данных.
	if err := dec.Decode(new(struct{})); !errors.Is(err, io.EOF) {
		u.log.Warnf(ctx, "invalid status event json: trailing data")
		return fmt.Errorf("%w: trailing data", domain.ErrInvalidStatusEvent)
	}

	return u.ApplyStatus(ctx, ev)
}

// ApplyStatus — условный переход заказа в ev.Status.
func (u *OrderStatusUpdater) ApplyStatus(ctx context.Context, ev domain.StatusEvent) error {
	if ev.OrderUID == "" || !ev.Status.Valid() {
		u.log.Warnf(ctx, "invalid status event order_uid=%q status=%q", ev.OrderUID, ev.Status)
		return fmt.Errorf("%w: order_uid=%q status=%q", domain.ErrInvalidStatusEvent, ev.OrderUID, ev.Status)
	}
	ctx = ctxmeta.WithOrderUID(ctx, ev.OrderUID)

	from := domain.Predecessors(ev.Status)
	if len(from) == 0 {
		u.log.Warnf(ctx, "status %s cannot be set by event", ev.Status)
		return fmt.Errorf("%w: -> %s", domain.ErrInvalidTransition, ev.Status)
	}

	order, err := u.repo.UpdateStatus(ctx, ev.OrderUID, from, ev.Status)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrOrderNotFound), errors.Is(err, domain.ErrInvalidTransition):
		u.log.Warnf(ctx, "status event rejected: %v", err)
		return err
	default:
		u.log.Errorf(ctx, "repo.UpdateStatus failed: %v", err)
		return storeError("update status", err)
	}

	metrics.OrderStatusTransitions.WithLabelValues(string(ev.Status)).Inc()
	u.log.Infof(ctx, "order status changed to %s", ev.Status)

	if order.Status.IsTerminal() && u.cache != nil {
		u.cacheTerminal(ctx, order)
	}
	return nil
}

// cacheTerminal — положить финальную проекцию в кэш; ошибки не фатальны.
func (u *OrderStatusUpdater) cacheTerminal(ctx context.Context, order *domain.Order) {
	items, err := u.repo.FindItemsByOrderID(ctx, order.ID)
	if err != nil {
		u.log.Warnf(ctx, "load items for cache failed: %v", err)
		return
	}
	if err := u.cache.Set(ctx, domain.NewStatusView(order, items)); err != nil {
		u.log.Warnf(ctx, "cache.Set failed err=%v", err)
	}
}
