package ports

import (
	"context"

	"github.com/Gunvolt24/order_intake/internal/domain"
)

// OrderRepository — хранилище заказов.
// Требования к реализации: Save атомарно пишет заказ и позиции и возвращает
// domain.ErrUniqueViolation при повторном order_uid; чтение по order_uid видит
// последнюю зафиксированную запись.
type OrderRepository interface {
	// Save — сохранить новый заказ с позициями; проставляет ID заказа и позиций.
	Save(ctx context.Context, order *domain.Order) error
	// FindByUID — заказ без позиций; (nil, nil), если не найден.
	FindByUID(ctx context.Context, orderUID string) (*domain.Order, error)
	// FindItemsByOrderID — позиции заказа по его ID.
	FindItemsByOrderID(ctx context.Context, orderID int64) ([]domain.OrderItem, error)
	// ExistsByUID — быстрая проверка существования.
	ExistsByUID(ctx context.Context, orderUID string) (bool, error)
	// UpdateStatus — условный переход: меняет статус, только если текущий входит в from.
	// Возвращает обновлённый заказ; domain.ErrOrderNotFound или domain.ErrInvalidTransition.
	UpdateStatus(ctx context.Context, orderUID string, from []domain.OrderStatus, to domain.OrderStatus) (*domain.Order, error)
	// LastN — последние N заказов (для прогрева кэша).
	LastN(ctx context.Context, n int) ([]*domain.Order, error)
}
