package kafka

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RelayProducer publishes command messages to the bus. The command name is the
// topic; the downstream order service subscribes by command. One shared writer
// is created at startup and reused by every request.
type RelayProducer struct {
	writer *kafka.Writer
	logger *zap.Logger
}

func NewRelayProducer(brokers []string, logger *zap.Logger) *RelayProducer {
	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
	}
	logger.Info("relay producer initialized", zap.Strings("brokers", brokers))
	return &RelayProducer{writer: w, logger: logger}
}

// Publish marshals payload and writes it to the topic named by cmd, keyed so
// messages for the same order land on the same partition. Delivery beyond the
// broker ack is the bus's problem; there is no local retry or outbox.
func (p *RelayProducer) Publish(ctx context.Context, cmd, key string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Topic: cmd,
		Key:   []byte(key),
		Value: data,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("failed to publish message",
			zap.String("cmd", cmd),
			zap.String("key", key),
			zap.Error(err),
		)
		return err
	}

	p.logger.Info("message published",
		zap.String("cmd", cmd),
		zap.String("key", key),
	)
	return nil
}

func (p *RelayProducer) Close() {
	_ = p.writer.Close()
	p.logger.Info("relay producer closed")
}
