// Package kafka connects a stream.Pipeline to a Kafka topic.
package kafka

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/born-ml/seqnet/internal/stream"
)

// Offset reset policies for consumer groups without a committed offset.
const (
	OffsetEarliest = "earliest"
	OffsetLatest   = "latest"
)

// autoCommitInterval is how often offsets are flushed when auto commit is on.
const autoCommitInterval = time.Second

// Config selects the brokers, group and topic to consume.
type Config struct {
	Brokers         []string
	GroupID         string
	Topic           string
	AutoOffsetReset string // OffsetEarliest or OffsetLatest
	AutoCommit      bool   // Flush commits periodically instead of synchronously
}

// Reader is a consumer-group reader implementing stream.Source.
type Reader struct {
	r *kafka.Reader
}

var _ stream.Source = (*Reader)(nil)

// NewReader creates a reader subscribed to cfg.Topic. No connection is made
// until the first Fetch.
func NewReader(cfg Config, logger *slog.Logger) (*Reader, error) {
	rc, err := readerConfig(cfg, logger)
	if err != nil {
		return nil, err
	}
	return &Reader{r: kafka.NewReader(rc)}, nil
}

func readerConfig(cfg Config, logger *slog.Logger) (kafka.ReaderConfig, error) {
	if len(cfg.Brokers) == 0 {
		return kafka.ReaderConfig{}, fmt.Errorf("kafka: no brokers configured")
	}
	if cfg.Topic == "" {
		return kafka.ReaderConfig{}, fmt.Errorf("kafka: no topic configured")
	}

	var start int64
	switch cfg.AutoOffsetReset {
	case OffsetEarliest, "":
		start = kafka.FirstOffset
	case OffsetLatest:
		start = kafka.LastOffset
	default:
		return kafka.ReaderConfig{}, fmt.Errorf("kafka: unknown auto offset reset %q", cfg.AutoOffsetReset)
	}

	rc := kafka.ReaderConfig{
		Brokers:     cfg.Brokers,
		GroupID:     cfg.GroupID,
		Topic:       cfg.Topic,
		StartOffset: start,
	}
	if cfg.AutoCommit {
		rc.CommitInterval = autoCommitInterval
	}
	if logger != nil {
		rc.Logger = kafka.LoggerFunc(func(msg string, args ...any) {
			logger.Debug(fmt.Sprintf(msg, args...), "component", "kafka")
		})
		rc.ErrorLogger = kafka.LoggerFunc(func(msg string, args ...any) {
			logger.Error(fmt.Sprintf(msg, args...), "component", "kafka")
		})
	}
	return rc, nil
}

// Fetch blocks until the next message is available.
func (r *Reader) Fetch(ctx context.Context) (stream.Message, error) {
	m, err := r.r.FetchMessage(ctx)
	if err != nil {
		return stream.Message{}, err
	}
	return fromKafka(m), nil
}

// Commit marks messages as consumed for the group.
//
// With AutoCommit the offsets are queued and flushed every second;
// otherwise the call waits for the broker to acknowledge them.
func (r *Reader) Commit(ctx context.Context, msgs ...stream.Message) error {
	km := make([]kafka.Message, len(msgs))
	for i, m := range msgs {
		km[i] = toKafka(m)
	}
	return r.r.CommitMessages(ctx, km...)
}

// Close closes the underlying reader and leaves the consumer group.
func (r *Reader) Close() error {
	return r.r.Close()
}

func fromKafka(m kafka.Message) stream.Message {
	return stream.Message{
		Topic:     m.Topic,
		Partition: m.Partition,
		Offset:    m.Offset,
		Key:       m.Key,
		Value:     m.Value,
		Time:      m.Time,
	}
}

func toKafka(m stream.Message) kafka.Message {
	return kafka.Message{
		Topic:     m.Topic,
		Partition: m.Partition,
		Offset:    m.Offset,
	}
}
