package ports

import (
	"context"

	"github.com/Gunvolt24/order_intake/internal/domain"
)

// OrderSubmitter — приём новых заказов.
type OrderSubmitter interface {
	ProcessNewOrder(ctx context.Context, req *domain.SubmitOrderRequest) (*domain.Order, error)
}

// OrderStatusReader — чтение статуса заказа.
type OrderStatusReader interface {
	GetOrderStatus(ctx context.Context, orderUID string) (*domain.OrderStatusView, error)
}
