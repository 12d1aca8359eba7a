package validate

import "context"

// Validator — проверка одной сущности типа T.
// Возвращает *domain.ValidationError на первом нарушении, nil — если всё корректно.
type Validator[T any] interface {
	Validate(ctx context.Context, value T) error
}

// Func — адаптер функции к Validator.
type Func[T any] func(ctx context.Context, value T) error

// Validate — вызывает саму функцию.
func (f Func[T]) Validate(ctx context.Context, value T) error { return f(ctx, value) }

// Chain — упорядоченная цепочка валидаторов, fail-fast.
type Chain[T any] struct {
	validators []Validator[T]
}

// NewChain — цепочка в переданном порядке.
func NewChain[T any](validators ...Validator[T]) *Chain[T] {
	return &Chain[T]{validators: validators}
}

// Validate — прогоняет валидаторы по порядку и возвращает первую ошибку.
func (c *Chain[T]) Validate(ctx context.Context, value T) error {
	for _, v := range c.validators {
		if err := v.Validate(ctx, value); err != nil {
			return err
		}
	}
	return nil
}

// Len — число валидаторов в цепочке.
func (c *Chain[T]) Len() int { return len(c.validators) }
