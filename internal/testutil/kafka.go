//go:build integration

package testutil

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

// OrderTopics — топики и consumer group одного интеграционного теста:
// события статуса (вход) и order.received (выход).
type OrderTopics struct {
	Status string
	Events string
	Group  string
}

// NewOrderTopics — уникальные имена от base (обычно имя теста) и метки времени.
func NewOrderTopics(base string) OrderTopics {
	suffix := strings.ReplaceAll(time.Now().UTC().Format("20060102T150405.000000000"), ".", "")
	prefix := fmt.Sprintf("%s-%s", base, suffix)
	return OrderTopics{
		Status: prefix + "-status",
		Events: prefix + "-events",
		Group:  prefix + "-intake",
	}
}

// CreateOrderTopics — создаёт оба топика теста и ждёт их появления в метаданных.
func (e *KafkaEnv) CreateOrderTopics(ctx context.Context, base string) (OrderTopics, error) {
	topics := NewOrderTopics(e.BaseTopic + "-" + base)
	if err := e.createTopics(ctx, topics.Status, topics.Events); err != nil {
		return OrderTopics{}, err
	}
	return topics, nil
}

func (e *KafkaEnv) createTopics(ctx context.Context, names ...string) error {
	client := &kafka.Client{Addr: kafka.TCP(e.Brokers...), Timeout: 10 * time.Second}

	cfgs := make([]kafka.TopicConfig, 0, len(names))
	for _, n := range names {
		cfgs = append(cfgs, kafka.TopicConfig{Topic: n, NumPartitions: 1, ReplicationFactor: 1})
	}
	resp, err := client.CreateTopics(ctx, &kafka.CreateTopicsRequest{Topics: cfgs})
	if err != nil {
		return fmt.Errorf("create topics: %w", err)
	}
	for topic, terr := range resp.Errors {
		if terr != nil && !errors.Is(terr, kafka.TopicAlreadyExists) {
			return fmt.Errorf("create topic %s: %w", topic, terr)
		}
	}

	return waitTopicsReady(ctx, client, names)
}

// waitTopicsReady — опрашивает метаданные, пока у каждого топика не появится партиция.
func waitTopicsReady(ctx context.Context, client *kafka.Client, names []string) error {
	deadline := time.Now().Add(10 * time.Second)
	for {
		meta, err := client.Metadata(ctx, &kafka.MetadataRequest{Topics: names})
		if err == nil {
			ready := 0
			for _, tp := range meta.Topics {
				if tp.Error == nil && len(tp.Partitions) > 0 {
					ready++
				}
			}
			if ready == len(names) {
				return nil
			}
			err = fmt.Errorf("%d of %d topics ready", ready, len(names))
		}

		if time.Now().After(deadline) {
			return fmt.Errorf("topics %v not ready: %w", names, err)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(200 * time.Millisecond):
		}
	}
}
