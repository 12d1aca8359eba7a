package ports

import (
	"context"

	"github.com/Gunvolt24/order_intake/internal/domain"
)

// EventPublisher — публикация событий о принятых заказах.
type EventPublisher interface {
	PublishOrderReceived(ctx context.Context, order *domain.Order) error
	Close() error
}
