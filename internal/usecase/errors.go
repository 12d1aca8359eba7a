package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/Gunvolt24/order_intake/internal/domain"
)

// storeError — сворачивает ошибку хранилища в ErrTimeout или ErrPersistence.
// Детали остаются в тексте для логов, но не в цепочке errors.Is.
func storeError(op string, err error) error {
	if errors.Is(err, domain.ErrTimeout) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w: %v", op, domain.ErrTimeout, err)
	}
	return fmt.Errorf("%s: %w: %v", op, domain.ErrPersistence, err)
}

func isTimeout(err error) bool { return errors.Is(err, domain.ErrTimeout) }
