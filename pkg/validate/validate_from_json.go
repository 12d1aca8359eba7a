package validate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/Gunvolt24/order_intake/internal/domain"
	"github.com/Gunvolt24/order_intake/internal/ports"
)

// ErrInvalidJSON — тело заявки не разбирается как JSON заявки.
var ErrInvalidJSON = errors.New("invalid json")

// DecodeRequest — строгий разбор заявки: неизвестные поля и хвост после объекта запрещены.
func DecodeRequest(raw []byte) (*domain.SubmitOrderRequest, error) {
	var req domain.SubmitOrderRequest
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	// гарантируем отсутствие данных после объекта
	if err := dec.Decode(new(struct{})); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data", ErrInvalidJSON)
	}
	return &req, nil
}

// ValidateRequestFromJSON — разбор и валидация заявки из JSON.
func ValidateRequestFromJSON(ctx context.Context, validator ports.OrderValidator, raw []byte) (*domain.SubmitOrderRequest, error) {
	req, err := DecodeRequest(raw)
	if err != nil {
		return nil, err
	}
	if err := validator.Validate(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}
