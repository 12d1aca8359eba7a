package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/Gunvolt24/order_intake/internal/domain"
	"github.com/Gunvolt24/order_intake/internal/ports"
	"github.com/Gunvolt24/order_intake/pkg/ctxmeta"
	"github.com/Gunvolt24/order_intake/pkg/metrics"
	"github.com/segmentio/kafka-go"
)

//go:generate mockgen -source=producer.go -destination=mocks/mock_producer.go -package=mocks

var _ ports.EventPublisher = (*Producer)(nil)

// HeaderRequestID — заголовок сообщения с request id исходного HTTP-запроса.
const HeaderRequestID = "X-Request-ID"

// writer — минимальный контракт над kafka.Writer.
type writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer — публикация событий order.received.
type Producer struct {
	writer    writer
	topic     string
	closeOnce sync.Once
}

func NewProducer(cfg *ProducerConfig) *Producer {
	return &Producer{writer: cfg.Writer(), topic: cfg.Topic}
}

// PublishOrderReceived — JSON-событие с ключом order_uid.
func (p *Producer) PublishOrderReceived(ctx context.Context, order *domain.Order) error {
	payload, err := json.Marshal(domain.NewOrderReceivedEvent(order))
	if err != nil {
		return fmt.Errorf("marshal order.received: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(order.OrderUID),
		Value: payload,
		Time:  time.Now().UTC(),
	}
	if rid, ok := ctxmeta.RequestIDFromContext(ctx); ok {
		msg.Headers = append(msg.Headers, kafka.Header{Key: HeaderRequestID, Value: []byte(rid)})
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		metrics.KafkaMessagesPublished.WithLabelValues(p.topic, "error").Inc()
		return fmt.Errorf("write order.received: %w", err)
	}
	metrics.KafkaMessagesPublished.WithLabelValues(p.topic, "ok").Inc()
	return nil
}

// Close — дожидается отправки буфера и закрывает writer.
func (p *Producer) Close() (retErr error) {
	p.closeOnce.Do(func() {
		retErr = p.writer.Close()
	})
	return retErr
}
