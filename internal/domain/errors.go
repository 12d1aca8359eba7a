package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidOrder — базовая ошибка валидации заявки (ошибка клиента).
	ErrInvalidOrder = errors.New("order validation failed")
	// ErrDuplicateOrder — заказ с таким order_uid уже принят.
	ErrDuplicateOrder = errors.New("order already exists")
	// ErrOrderNotFound — заказа с таким order_uid нет.
	ErrOrderNotFound = errors.New("order not found")
	// ErrPersistence — сбой хранилища; наружу отдаётся без деталей.
	ErrPersistence = errors.New("order persistence failed")
	// ErrUniqueViolation — хранилище отклонило вставку по уникальному ключу (гонка).
	// Сервис приёма переводит её в ErrDuplicateOrder.
	ErrUniqueViolation = errors.New("order uid unique violation")
	// ErrTimeout — истёк дедлайн вызова хранилища.
	ErrTimeout = errors.New("order store deadline exceeded")
	// ErrInvalidTransition — недопустимый переход статуса.
	ErrInvalidTransition = errors.New("invalid order status transition")
	// ErrInvalidStatusEvent — событие статуса не разобрано или содержит неизвестный статус.
	ErrInvalidStatusEvent = errors.New("invalid status event")
)

// ValidationError — нарушение правила валидации: поле, значение и читаемое сообщение.
type ValidationError struct {
	Field   string
	Value   string
	Message string
}

// NewValidationError — конструктор ValidationError.
func NewValidationError(field, value, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

func (e *ValidationError) Error() string { return e.Message }

// Unwrap — позволяет errors.Is(err, ErrInvalidOrder).
func (e *ValidationError) Unwrap() error { return ErrInvalidOrder }

// NewDuplicateOrderError — ошибка дубля с идентификатором заказа в тексте.
func NewDuplicateOrderError(orderUID string) error {
	return fmt.Errorf("%w: %s", ErrDuplicateOrder, orderUID)
}

// NewOrderNotFoundError — ошибка отсутствия заказа с идентификатором в тексте.
func NewOrderNotFoundError(orderUID string) error {
	return fmt.Errorf("%w: %s", ErrOrderNotFound, orderUID)
}
