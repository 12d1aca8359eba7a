package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/segmentio/kafka-go"

	"github.com/Gunvolt24/order_intake/internal/domain"
	"github.com/Gunvolt24/order_intake/internal/kafka/mocks"
	"github.com/Gunvolt24/order_intake/pkg/ctxmeta"
)

func testOrder() *domain.Order {
	return &domain.Order{
		ID:        1,
		OrderUID:  "o-1",
		Status:    domain.OrderStatusReceived,
		CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		Items:     []domain.OrderItem{{ProductID: "sku-1", Quantity: 3}},
	}
}

func TestPublishOrderReceived_WritesKeyedEvent(t *testing.T) {
	ctrl := gomock.NewController(t)
	w := mocks.NewMockwriter(ctrl)

	w.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, msgs ...kafka.Message) error {
			if len(msgs) != 1 {
				t.Fatalf("want 1 message, got %d", len(msgs))
			}
			msg := msgs[0]
			if string(msg.Key) != "o-1" {
				t.Fatalf("key must be order_uid, got %q", msg.Key)
			}
			var ev domain.OrderReceivedEvent
			if err := json.Unmarshal(msg.Value, &ev); err != nil {
				t.Fatalf("payload is not json: %v", err)
			}
			if ev.OrderUID != "o-1" || ev.Status != domain.OrderStatusReceived || len(ev.Items) != 1 || ev.Items[0].Quantity != 3 {
				t.Fatalf("unexpected event %+v", ev)
			}
			if len(msg.Headers) != 1 || msg.Headers[0].Key != HeaderRequestID || string(msg.Headers[0].Value) != "rid-1" {
				t.Fatalf("request id header missing: %+v", msg.Headers)
			}
			return nil
		})

	p := &Producer{writer: w, topic: "order-events"}
	ctx := ctxmeta.WithRequestID(context.Background(), "rid-1")
	if err := p.PublishOrderReceived(ctx, testOrder()); err != nil {
		t.Fatal(err)
	}
}

func TestPublishOrderReceived_WriteError(t *testing.T) {
	ctrl := gomock.NewController(t)
	w := mocks.NewMockwriter(ctrl)
	w.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(errors.New("leader not available"))

	p := &Producer{writer: w, topic: "order-events"}
	if err := p.PublishOrderReceived(context.Background(), testOrder()); err == nil {
		t.Fatalf("write error must be returned")
	}
}

func TestProducerClose_Once(t *testing.T) {
	ctrl := gomock.NewController(t)
	w := mocks.NewMockwriter(ctrl)
	w.EXPECT().Close().Return(nil).Times(1)

	p := &Producer{writer: w, topic: "order-events"}
	_ = p.Close()
	_ = p.Close()
}
