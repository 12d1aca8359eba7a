package ports

import (
	"context"

	"github.com/Gunvolt24/order_intake/internal/domain"
)

// OrderValidator — проверка входящей заявки; первая ошибка — *domain.ValidationError.
type OrderValidator interface {
	Validate(ctx context.Context, req *domain.SubmitOrderRequest) error
}
