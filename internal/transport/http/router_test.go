package rest_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Gunvolt24/order_intake/internal/domain"
	"github.com/Gunvolt24/order_intake/internal/ports/mocks"
	rest "github.com/Gunvolt24/order_intake/internal/transport/http"
	"github.com/golang/mock/gomock"
)

type noopLogger struct{}

func (noopLogger) Infof(context.Context, string, ...any)  {}
func (noopLogger) Warnf(context.Context, string, ...any)  {}
func (noopLogger) Errorf(context.Context, string, ...any) {}

const validBody = `{
	"order_uid": "order-1",
	"customer": {"name": "Ann Lee", "email": "ann@example.com", "phone": "+1-202-555-0173"},
	"items": [{"product_id": "sku-1", "quantity": 2}]
}`

type fixture struct {
	submitter *mocks.MockOrderSubmitter
	statuses  *mocks.MockOrderStatusReader
	router    http.Handler
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)
	f := &fixture{
		submitter: mocks.NewMockOrderSubmitter(ctrl),
		statuses:  mocks.NewMockOrderStatusReader(ctrl),
	}
	h := rest.NewHandler(f.submitter, f.statuses, noopLogger{}, time.Second)
	f.router = rest.NewRouter(h, "")
	return f
}

func (f *fixture) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func message(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v body=%s", err, w.Body.String())
	}
	return body.Message
}

func TestSubmitOrder_OK(t *testing.T) {
	f := newFixture(t)

	f.submitter.EXPECT().ProcessNewOrder(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, req *domain.SubmitOrderRequest) (*domain.Order, error) {
			if _, ok := ctx.Deadline(); !ok {
				t.Fatalf("handler timeout must be applied")
			}
			if req.OrderUID != "order-1" || req.Customer.Email != "ann@example.com" || req.Items[0].Quantity != 2 {
				t.Fatalf("request decoded wrong: %+v", req)
			}
			return &domain.Order{OrderUID: req.OrderUID, Status: domain.OrderStatusReceived}, nil
		})

	w := f.do(http.MethodPost, "/order/submit", validBody)
	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d, body=%s", w.Code, w.Body.String())
	}
	var got rest.SubmitResponse
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if got.Message != "Order submitted successfully" || got.OrderUID != "order-1" || got.Status != domain.OrderStatusReceived {
		t.Fatalf("unexpected response %+v", got)
	}
}

func TestSubmitOrder_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{
			"validation",
			domain.NewValidationError("customer.name", "", "Customer name cannot be null or empty"),
			http.StatusBadRequest, "Customer name cannot be null or empty",
		},
		{
			"duplicate",
			domain.NewDuplicateOrderError("order-1"),
			http.StatusConflict, "Order already exists: order-1",
		},
		{
			"timeout",
			fmt.Errorf("process order: %w", domain.ErrTimeout),
			http.StatusGatewayTimeout, "Request timed out",
		},
		{
			"persistence",
			fmt.Errorf("process order: %w: pq: relation orders does not exist", domain.ErrPersistence),
			http.StatusInternalServerError, "Error processing order: order-1",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.submitter.EXPECT().ProcessNewOrder(gomock.Any(), gomock.Any()).Return(nil, tt.err)

			w := f.do(http.MethodPost, "/order/submit", validBody)
			if w.Code != tt.wantCode {
				t.Fatalf("want %d, got %d, body=%s", tt.wantCode, w.Code, w.Body.String())
			}
			if msg := message(t, w); msg != tt.wantMsg {
				t.Fatalf("want message %q, got %q", tt.wantMsg, msg)
			}
		})
	}
}

func TestSubmitOrder_BadJSON(t *testing.T) {
	for name, body := range map[string]string{
		"broken":        `{"order_uid":`,
		"unknown field": `{"order_uid":"o-1","coupon":"X"}`,
		"trailing":      validBody + `{}`,
		"empty":         ``,
	} {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t) // сервис не вызывается
			w := f.do(http.MethodPost, "/order/submit", body)
			if w.Code != http.StatusBadRequest || message(t, w) != "Invalid request body" {
				t.Fatalf("want 400 Invalid request body, got %d %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestGetOrderStatus_OK(t *testing.T) {
	f := newFixture(t)

	view := &domain.OrderStatusView{
		OrderUID: "order-1",
		Status:   domain.OrderStatusAccepted,
		Items:    []domain.OrderItemView{{ProductID: "sku-1", Quantity: 2}},
	}
	f.statuses.EXPECT().GetOrderStatus(gomock.Any(), "order-1").Return(view, nil)

	w := f.do(http.MethodGet, "/order/status/order-1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d, body=%s", w.Code, w.Body.String())
	}
	var got domain.OrderStatusView
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if got.Status != domain.OrderStatusAccepted || len(got.Items) != 1 {
		t.Fatalf("unexpected view %+v", got)
	}
}

func TestGetOrderStatus_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"not found", domain.NewOrderNotFoundError("missing"), http.StatusNotFound, "Order not found: missing"},
		{"timeout", context.DeadlineExceeded, http.StatusGatewayTimeout, "Request timed out"},
		{"internal", errors.New("db error"), http.StatusInternalServerError, "Unable to retrieve order status"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.statuses.EXPECT().GetOrderStatus(gomock.Any(), "missing").Return(nil, tt.err)

			w := f.do(http.MethodGet, "/order/status/missing", "")
			if w.Code != tt.wantCode || message(t, w) != tt.wantMsg {
				t.Fatalf("want %d %q, got %d %s", tt.wantCode, tt.wantMsg, w.Code, w.Body.String())
			}
		})
	}
}

func TestNoRoute_404(t *testing.T) {
	f := newFixture(t)
	if w := f.do(http.MethodGet, "/no-such-route", ""); w.Code != http.StatusNotFound {
		t.Fatalf("want 404, got %d", w.Code)
	}
}

func TestMethodNotAllowed_405(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodGet, "/order/submit", "")
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("want 405, got %d, body=%s", w.Code, w.Body.String())
	}
	if allow := w.Header().Get("Allow"); allow != "POST" {
		t.Fatalf("want Allow: POST, got %q", allow)
	}
}

func TestPingAndMetrics_200(t *testing.T) {
	f := newFixture(t)

	if w := f.do(http.MethodGet, "/ping", ""); w.Code != http.StatusOK || w.Body.String() != "pong" {
		t.Fatalf("ping: %d %s", w.Code, w.Body.String())
	}
	if w := f.do(http.MethodGet, "/metrics", ""); w.Code != http.StatusOK {
		t.Fatalf("metrics: %d", w.Code)
	}
}

func TestRequestID_EchoedInResponse(t *testing.T) {
	f := newFixture(t)
	if w := f.do(http.MethodGet, "/ping", ""); w.Header().Get("X-Request-ID") == "" {
		t.Fatalf("X-Request-ID must be set on every response")
	}
}
