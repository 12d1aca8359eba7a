package validate

import (
	"context"
	"strconv"

	"github.com/Gunvolt24/order_intake/internal/domain"
)

var _ Validator[*domain.OrderItemRequest] = (*OrderItemValidator)(nil)

// OrderItemValidator — позиция должна ссылаться на товар и иметь положительное количество.
type OrderItemValidator struct{}

func NewOrderItemValidator() *OrderItemValidator { return &OrderItemValidator{} }

func (v *OrderItemValidator) Validate(_ context.Context, item *domain.OrderItemRequest) error {
	if item.ProductID == "" {
		return domain.NewValidationError("items.product_id", "", "Item product id cannot be null or empty")
	}
	if item.Quantity <= 0 {
		q := strconv.Itoa(item.Quantity)
		return domain.NewValidationError("items.quantity", q,
			"Invalid quantity provided for product "+item.ProductID+": "+q)
	}
	return nil
}
