package events

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

type Message struct {
	Topic     string
	Key       string
	EventType string
	Payload   []byte
}

type Consumer interface {
	Poll(ctx context.Context, max int) ([]Message, error)
}

// Handler applies one inbound message. Errors are logged and the message is
// dropped; handlers dedupe on event id so redelivery is safe.
type Handler func(ctx context.Context, payload []byte) error

type ConsumerWorker struct {
	logger   *slog.Logger
	consumer Consumer
	handlers map[string]Handler
	interval time.Duration
}

func NewConsumerWorker(logger *slog.Logger, consumer Consumer, handlers map[string]Handler, interval time.Duration) *ConsumerWorker {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	return &ConsumerWorker{
		logger: logger, consumer: consumer, handlers: handlers, interval: interval,
	}
}

func (w *ConsumerWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		if err := w.processOnce(ctx); err != nil && !errors.Is(err, context.Canceled) {
			w.logger.ErrorContext(ctx, "consumer iteration failed",
				"module", "marketplace.events.consumer_worker",
				"layer", "adapter",
				"operation", "process_once",
				"outcome", "failure",
				"error", err,
			)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (w *ConsumerWorker) processOnce(ctx context.Context) error {
	msgs, err := w.consumer.Poll(ctx, 50)
	if err != nil {
		return err
	}
	for _, msg := range msgs {
		handle, ok := w.handlers[msg.Topic]
		if !ok {
			w.logger.DebugContext(ctx, "ignoring message on unhandled topic",
				"module", "marketplace.events.consumer_worker",
				"topic", msg.Topic,
			)
			continue
		}
		if err := handle(ctx, msg.Payload); err != nil {
			w.logger.WarnContext(ctx, "failed to handle message",
				"module", "marketplace.events.consumer_worker",
				"layer", "adapter",
				"operation", "handle",
				"outcome", "failure",
				"topic", msg.Topic,
				"event_type", msg.EventType,
				"error", err,
			)
		}
	}
	return nil
}
