package services

import (
	"context"
	"encoding/json"

	"payments-service/models"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// SessionProvider and SessionPublisher mirror the controller-side interfaces
// so the consumer can be exercised without a live Stripe account or broker.
type SessionProvider interface {
	CreateCheckoutSession(ctx context.Context, req models.CheckoutRequest) (*models.CheckoutSession, error)
}

type SessionPublisher interface {
	Publish(ctx context.Context, cmd, key string, payload any) error
}

// SessionRequestConsumer lets internal services request checkout sessions over
// the bus instead of HTTP. Each request produces either an
// order-session-created or order-session-failed message keyed by orderId.
type SessionRequestConsumer struct {
	reader    *kafkago.Reader
	stripeSvc SessionProvider
	publisher SessionPublisher
	logger    *zap.Logger
	topic     string
}

func NewSessionRequestConsumer(brokers []string, topic, groupID string, stripeSvc SessionProvider, publisher SessionPublisher, logger *zap.Logger) *SessionRequestConsumer {
	r := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 1e3,
		MaxBytes: 10e6,
	})
	logger.Info("session request consumer initialized",
		zap.String("topic", topic),
		zap.Strings("brokers", brokers),
		zap.String("group_id", groupID),
	)
	return &SessionRequestConsumer{reader: r, stripeSvc: stripeSvc, publisher: publisher, logger: logger, topic: topic}
}

// Start blocks consuming session requests until the context is cancelled or
// the reader is closed. Run it in its own goroutine.
func (c *SessionRequestConsumer) Start(ctx context.Context) {
	c.logger.Info("starting session request consumer", zap.String("topic", c.topic))
	for {
		m, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			c.logger.Warn("error reading session request", zap.Error(err))
			continue
		}
		c.handleMessage(ctx, m.Value)
	}
}

func (c *SessionRequestConsumer) handleMessage(ctx context.Context, value []byte) {
	var req models.CheckoutRequest
	if err := json.Unmarshal(value, &req); err != nil {
		c.logger.Warn("invalid session request JSON", zap.Error(err), zap.String("payload", string(value)))
		return
	}

	if err := req.Validate(); err != nil {
		c.logger.Warn("invalid session request",
			zap.String("order_id", req.OrderID),
			zap.Error(err),
		)
		return
	}

	sess, err := c.stripeSvc.CreateCheckoutSession(ctx, req)
	if err != nil {
		c.logger.Warn("checkout session creation failed",
			zap.String("order_id", req.OrderID),
			zap.Error(err),
		)
		c.publish(ctx, models.CmdOrderSessionFailed, req.OrderID, models.SessionFailedPayload{
			OrderID: req.OrderID,
			Reason:  err.Error(),
		})
		return
	}

	c.logger.Info("checkout session created",
		zap.String("order_id", req.OrderID),
		zap.String("session_url", sess.URL),
	)
	c.publish(ctx, models.CmdOrderSessionCreated, req.OrderID, models.SessionCreatedPayload{
		OrderID:    req.OrderID,
		URL:        sess.URL,
		SuccessURL: sess.SuccessURL,
		CancelURL:  sess.CancelURL,
	})
}

func (c *SessionRequestConsumer) publish(ctx context.Context, cmd, key string, payload any) {
	if err := c.publisher.Publish(ctx, cmd, key, payload); err != nil {
		c.logger.Warn("failed to publish session result",
			zap.String("cmd", cmd),
			zap.String("order_id", key),
			zap.Error(err),
		)
	}
}

func (c *SessionRequestConsumer) Close() error {
	return c.reader.Close()
}
