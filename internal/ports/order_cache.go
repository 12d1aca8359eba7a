package ports

import (
	"context"

	"github.com/Gunvolt24/order_intake/internal/domain"
)

// StatusCache — кэш проекций статуса.
// Требования к реализации: потокобезопасность; доступ по ключу не хуже O(1); возврат копий.
type StatusCache interface {
	// Get — (view, true) при попадании, (nil, false) при промахе/истечении.
	Get(ctx context.Context, orderUID string) (*domain.OrderStatusView, bool)

	// Set — сохранить/обновить проекцию.
	Set(ctx context.Context, view *domain.OrderStatusView) error

	// WarmUp — массовая загрузка (например, при старте).
	WarmUp(ctx context.Context, views []*domain.OrderStatusView) error
}
