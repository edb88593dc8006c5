package events

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// KafkaConsumer reads identity events for the marketplace consumer group.
type KafkaConsumer struct {
	reader      *kafka.Reader
	idleTimeout time.Duration
}

func NewKafkaConsumer(brokers []string, groupID string, topics []string) (*KafkaConsumer, error) {
	switch {
	case len(brokers) == 0:
		return nil, errors.New("kafka consumer requires at least one broker")
	case groupID == "":
		return nil, errors.New("kafka consumer requires group id")
	case len(topics) == 0:
		return nil, errors.New("kafka consumer requires at least one topic")
	}
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     brokers,
		GroupID:     groupID,
		GroupTopics: topics,
		StartOffset: kafka.FirstOffset,
		MaxWait:     500 * time.Millisecond,
	})
	return &KafkaConsumer{reader: reader, idleTimeout: 250 * time.Millisecond}, nil
}

// Poll returns up to max messages. It stops early once the reader has been
// idle for idleTimeout so the worker tick stays short.
func (c *KafkaConsumer) Poll(ctx context.Context, max int) ([]Message, error) {
	if max <= 0 {
		max = 1
	}
	var out []Message
	for len(out) < max {
		readCtx, cancel := context.WithTimeout(ctx, c.idleTimeout)
		msg, err := c.reader.ReadMessage(readCtx)
		cancel()
		switch {
		case err == nil:
		case ctx.Err() != nil:
			return out, ctx.Err()
		case errors.Is(err, context.DeadlineExceeded):
			return out, nil
		default:
			return out, fmt.Errorf("read %s: %w", c.reader.Config().GroupID, err)
		}
		if decoded, ok := fromKafkaMessage(msg); ok {
			out = append(out, decoded)
		}
	}
	return out, nil
}

// fromKafkaMessage drops tombstones and lifts the event_type header that the
// marketplace publisher stamps on every record.
func fromKafkaMessage(msg kafka.Message) (Message, bool) {
	if len(msg.Value) == 0 {
		return Message{}, false
	}
	out := Message{Topic: msg.Topic, Key: string(msg.Key), Payload: msg.Value}
	for _, h := range msg.Headers {
		if h.Key == eventTypeHeader {
			out.EventType = string(h.Value)
		}
	}
	return out, true
}

func (c *KafkaConsumer) Close() error {
	return c.reader.Close()
}
