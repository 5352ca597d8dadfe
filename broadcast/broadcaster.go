// Package broadcast drains the trade outbox to Kafka.
package broadcast

import (
	"context"
	"encoding/binary"
	"log"
	"time"

	"github.com/IBM/sarama"

	"vela/outbox"
)

// Broadcaster periodically scans the outbox and publishes pending
// trade events with a synchronous producer. Delivery is at-least-once:
// a crash between send and ack replays the event, and consumers must
// deduplicate on the sequence key.
type Broadcaster struct {
	outbox   *outbox.Outbox
	producer sarama.SyncProducer
	topic    string
	interval time.Duration
}

func New(ob *outbox.Outbox, brokers []string, topic string, interval time.Duration) (*Broadcaster, error) {
	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 5

	producer, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, err
	}

	return &Broadcaster{
		outbox:   ob,
		producer: producer,
		topic:    topic,
		interval: interval,
	}, nil
}

// Run drains until ctx is canceled. Intended as a goroutine.
func (b *Broadcaster) Run(ctx context.Context) {
	log.Println("[broadcast] started")

	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			b.drainOnce()
		}
	}
}

func (b *Broadcaster) drainOnce() {
	err := b.outbox.ScanPending(func(rec *outbox.Record) error {
		if err := b.outbox.MarkSent(rec.Seq); err != nil {
			return err
		}

		key := make([]byte, 8)
		binary.BigEndian.PutUint64(key, rec.Seq)
		msg := &sarama.ProducerMessage{
			Topic: b.topic,
			Key:   sarama.ByteEncoder(key),
			Value: sarama.ByteEncoder(rec.Payload),
		}
		if _, _, err := b.producer.SendMessage(msg); err != nil {
			// Left in SENT state; retried on the next drain.
			return nil
		}

		return b.outbox.MarkAcked(rec.Seq)
	})
	if err != nil {
		log.Printf("[broadcast] drain failed: %v", err)
	}
}

func (b *Broadcaster) Close() error {
	return b.producer.Close()
}
