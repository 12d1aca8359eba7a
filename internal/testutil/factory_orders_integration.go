//go:build integration

package testutil

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/Gunvolt24/order_intake/internal/domain"
)

func randHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func UniqSuffix() string { return randHex(6) }

// MakeRequest — валидная заявка на заказ с уникальным order_uid.
func MakeRequest(opts ...func(*domain.SubmitOrderRequest)) domain.SubmitOrderRequest {
	req := domain.SubmitOrderRequest{
		OrderUID: "ord-" + UniqSuffix(),
		Customer: &domain.CustomerDetails{
			Name:  "John Smith",
			Email: "john@example.com",
			Phone: "+1-202-555-0173",
		},
		Items: []domain.OrderItemRequest{{ProductID: "sku-1", Quantity: 1}},
	}
	for _, fn := range opts {
		fn(&req)
	}
	return req
}

// MakeOrder — новый заказ в статусе RECEIVED, построенный из MakeRequest.
func MakeOrder(opts ...func(*domain.SubmitOrderRequest)) domain.Order {
	req := MakeRequest(opts...)
	return *domain.NewOrderFromRequest(&req, time.Now().UTC().Truncate(time.Microsecond))
}

func WithOrderUID(uid string) func(*domain.SubmitOrderRequest) {
	return func(r *domain.SubmitOrderRequest) { r.OrderUID = uid }
}

func WithItems(n int) func(*domain.SubmitOrderRequest) {
	return func(r *domain.SubmitOrderRequest) {
		r.Items = make([]domain.OrderItemRequest, 0, n)
		for i := 0; i < n; i++ {
			r.Items = append(r.Items, domain.OrderItemRequest{
				ProductID: fmt.Sprintf("sku-%d", i+1),
				Quantity:  i + 1,
			})
		}
	}
}

func WithEmail(email string) func(*domain.SubmitOrderRequest) {
	return func(r *domain.SubmitOrderRequest) { r.Customer.Email = email }
}
