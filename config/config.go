// Package config loads engine settings from the environment.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	GRPCAddr string

	WALDir         string
	WALSegmentSize int64
	OutboxDir      string
	SnapshotDir    string

	SnapshotInterval  time.Duration
	BroadcastInterval time.Duration

	// KafkaBrokers empty disables the trade broadcaster and the
	// level-update publisher.
	KafkaBrokers []string
	TradesTopic  string
	LevelsTopic  string
}

func Load() Config {
	return Config{
		GRPCAddr:          envStr("GRPC_ADDR", ":50051"),
		WALDir:            envStr("WAL_DIR", "./data/wal"),
		WALSegmentSize:    envInt64("WAL_SEGMENT_SIZE", 2*1024*1024),
		OutboxDir:         envStr("OUTBOX_DIR", "./data/outbox"),
		SnapshotDir:       envStr("SNAPSHOT_DIR", "./data/snapshot"),
		SnapshotInterval:  envDuration("SNAPSHOT_INTERVAL", time.Minute),
		BroadcastInterval: envDuration("BROADCAST_INTERVAL", 2*time.Second),
		KafkaBrokers:      envList("KAFKA_BROKERS"),
		TradesTopic:       envStr("TRADES_TOPIC", "vela.trades"),
		LevelsTopic:       envStr("LEVELS_TOPIC", "vela.levels"),
	}
}

func (c Config) KafkaEnabled() bool { return len(c.KafkaBrokers) > 0 }

func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt64(key string, def int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return def
	}
	return n
}

func envDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func envList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
