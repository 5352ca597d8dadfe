// Package marketdata publishes level updates for downstream feeds.
package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/segmentio/kafka-go"

	"vela/orderbook"
)

// Publisher streams level updates to a Kafka topic. Updates are
// best-effort: the full depth is reconstructible from snapshots and the
// trade stream, so they bypass the outbox and are written
// asynchronously.
type Publisher struct {
	writer *kafka.Writer
}

func NewPublisher(brokers []string, topic string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			RequiredAcks: kafka.RequireOne,
			Async:        true,
			BatchTimeout: 10 * time.Millisecond,
			Completion: func(_ []kafka.Message, err error) {
				if err != nil {
					log.Printf("[marketdata] publish failed: %v", err)
				}
			},
		},
	}
}

// Publish enqueues one level update, keyed by side and price so a
// compacted topic retains the latest state per level.
func (p *Publisher) Publish(ctx context.Context, u orderbook.LevelUpdate) error {
	value, err := json.Marshal(u)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(fmt.Sprintf("%s:%d", u.Side, u.Price)),
		Value: value,
	})
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
