package events

import (
	"context"
	"encoding/json"
	"log/slog"
)

// LogPublisher writes outbox envelopes to the log instead of a broker. The
// worker uses it when no kafka brokers are configured so local runs still
// drain the outbox.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

type envelopeHeader struct {
	EventID       string `json:"event_id"`
	SourceService string `json:"source_service"`
	SchemaVersion string `json:"schema_version"`
}

func (p *LogPublisher) Publish(ctx context.Context, eventType string, payload []byte, partitionKey string) error {
	var head envelopeHeader
	if err := json.Unmarshal(payload, &head); err != nil {
		return err
	}
	p.logger.InfoContext(ctx, "marketplace event relayed to log",
		"module", "marketplace.events.log_publisher",
		"layer", "adapter",
		"operation", "publish",
		"outcome", "success",
		"event_id", head.EventID,
		"event_type", eventType,
		"source_service", head.SourceService,
		"schema_version", head.SchemaVersion,
		"partition_key", partitionKey,
	)
	return nil
}
