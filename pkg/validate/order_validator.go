package validate

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/Gunvolt24/order_intake/internal/domain"
	"github.com/Gunvolt24/order_intake/internal/ports"
)

// Проверка, что OrderValidator удовлетворяет интерфейсу OrderValidator.
var _ ports.OrderValidator = (*OrderValidator)(nil)

// MaxOrderUIDLen — ограничение длины order_uid (колонка VARCHAR(64)).
const MaxOrderUIDLen = 64

// OrderValidator — валидация входящей заявки цепочкой правил:
// order_uid -> данные клиента -> позиции. Останавливается на первой ошибке.
type OrderValidator struct {
	chain *Chain[*domain.SubmitOrderRequest]
}

// NewOrderValidator — цепочка по умолчанию.
func NewOrderValidator() *OrderValidator {
	return NewOrderValidatorWith(NewCustomerDetailsValidator(), NewOrderItemValidator())
}

// NewOrderValidatorWith — цепочка с подменяемыми валидаторами вложенных сущностей.
func NewOrderValidatorWith(
	customer Validator[*domain.CustomerDetails],
	item Validator[*domain.OrderItemRequest],
) *OrderValidator {
	return &OrderValidator{chain: NewChain[*domain.SubmitOrderRequest](
		Func[*domain.SubmitOrderRequest](validateOrderUID),
		Func[*domain.SubmitOrderRequest](func(ctx context.Context, req *domain.SubmitOrderRequest) error {
			return customer.Validate(ctx, req.Customer)
		}),
		Func[*domain.SubmitOrderRequest](func(ctx context.Context, req *domain.SubmitOrderRequest) error {
			return validateItems(ctx, item, req.Items)
		}),
	)}
}

// Validate — проверяет заявку; nil-заявка — тоже ошибка валидации.
func (v *OrderValidator) Validate(ctx context.Context, req *domain.SubmitOrderRequest) error {
	if req == nil {
		return domain.NewValidationError("order", "", "Order request cannot be empty")
	}
	return v.chain.Validate(ctx, req)
}

func validateOrderUID(_ context.Context, req *domain.SubmitOrderRequest) error {
	uid := req.OrderUID
	switch {
	case uid == "":
		return domain.NewValidationError("order_uid", uid, "Order uid cannot be null or empty")
	case strings.TrimSpace(uid) != uid:
		return domain.NewValidationError("order_uid", uid, "Invalid order uid provided: "+strconv.Quote(uid))
	case len(uid) > MaxOrderUIDLen:
		return domain.NewValidationError("order_uid", uid,
			fmt.Sprintf("Order uid must be at most %d characters", MaxOrderUIDLen))
	}
	return nil
}

func validateItems(ctx context.Context, v Validator[*domain.OrderItemRequest], items []domain.OrderItemRequest) error {
	if len(items) == 0 {
		return domain.NewValidationError("items", "", "Order must contain at least one item")
	}
	for i := range items {
		if err := v.Validate(ctx, &items[i]); err != nil {
			return err
		}
	}
	return nil
}
