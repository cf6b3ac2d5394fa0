package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Stream field names for bookmark events.
const (
	fieldEventID   = "event_id"
	fieldEventType = "event_type"
	fieldSource    = "source"
	fieldCreatedAt = "created_at"
	fieldPayload   = "payload"
	fieldMetadata  = "metadata"
)

// Event is one bookmark event drawn from the stream.
type Event struct {
	// MessageID is the Redis Stream message ID.
	MessageID string
	// EventID is the unique event identifier.
	EventID string
	// EventType names the bookmark event (BookmarkSaved, BookmarksImported).
	EventType string
	// Source is the service that produced the event.
	Source string
	// CreatedAt is when the event was created.
	CreatedAt time.Time
	// Payload is the event-specific data.
	Payload json.RawMessage
	// Metadata contains additional context.
	Metadata map[string]string
}

// EventHandler processes events from the stream.
type EventHandler interface {
	HandleEvent(ctx context.Context, event Event) error
}

// Consumer reads bookmark events from a Redis Stream consumer group and
// hands them to an EventHandler. Handled messages are acknowledged;
// failed ones stay pending and are reclaimed once they sit idle past
// the claim threshold, so a crashed peer's backlog is not lost.
type Consumer struct {
	client       *redis.Client
	config       Config
	handler      EventHandler
	logger       *slog.Logger
	shutdownChan chan struct{}
}

// NewConsumer creates a new Redis Streams consumer.
func NewConsumer(config Config, handler EventHandler, logger *slog.Logger) (*Consumer, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if !config.Enabled {
		return &Consumer{config: config, logger: logger}, nil
	}

	opts, err := redis.ParseURL(config.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	return &Consumer{
		client:       redis.NewClient(opts),
		config:       config,
		handler:      handler,
		logger:       logger,
		shutdownChan: make(chan struct{}),
	}, nil
}

// Start begins consuming events from the stream.
func (c *Consumer) Start(ctx context.Context) error {
	if !c.config.Enabled {
		c.logger.Info("consumer disabled, not starting")
		return nil
	}

	if err := c.ensureConsumerGroup(ctx); err != nil {
		return err
	}

	c.logger.Info("starting bookmark event consumer",
		"stream", c.config.StreamKey,
		"group", c.config.GroupName,
		"consumer", c.config.ConsumerName,
	)

	go c.consumeLoop(ctx)
	return nil
}

// Stop gracefully stops the consumer.
func (c *Consumer) Stop() {
	if c.shutdownChan != nil {
		close(c.shutdownChan)
	}
	if c.client != nil {
		c.client.Close()
	}
}

// IsEnabled returns true if the consumer is enabled.
func (c *Consumer) IsEnabled() bool {
	return c.config.Enabled
}

// ensureConsumerGroup creates the consumer group if it doesn't exist.
func (c *Consumer) ensureConsumerGroup(ctx context.Context) error {
	err := c.client.XGroupCreateMkStream(ctx, c.config.StreamKey, c.config.GroupName, "0").Err()
	if err != nil && !strings.HasPrefix(err.Error(), "BUSYGROUP") {
		return err
	}
	return nil
}

// consumeLoop alternates between claiming stale pending messages and
// reading fresh ones until shut down.
func (c *Consumer) consumeLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			c.logger.Info("consumer context cancelled, stopping")
			return
		case <-c.shutdownChan:
			c.logger.Info("consumer shutdown requested, stopping")
			return
		default:
			if err := c.claimStale(ctx); err != nil {
				c.logger.Error("error claiming stale messages", "error", err)
			}
			if err := c.readAndProcess(ctx); err != nil {
				c.logger.Error("error processing events", "error", err)
				time.Sleep(time.Second) // Back off on error
			}
		}
	}
}

// claimStale takes over pending messages another consumer left idle
// longer than ClaimIdleTime and runs them through the normal path.
func (c *Consumer) claimStale(ctx context.Context) error {
	if c.config.ClaimIdleTime <= 0 {
		return nil
	}

	messages, _, err := c.client.XAutoClaim(ctx, &redis.XAutoClaimArgs{
		Stream:   c.config.StreamKey,
		Group:    c.config.GroupName,
		Consumer: c.config.ConsumerName,
		MinIdle:  c.config.ClaimIdleTime,
		Start:    "0-0",
		Count:    c.config.BatchSize,
	}).Result()
	if err != nil {
		return err
	}

	if len(messages) > 0 {
		c.logger.Info("claimed stale pending messages", "count", len(messages))
		c.processMessages(ctx, messages)
	}
	return nil
}

// readAndProcess reads fresh events from the stream and processes them.
func (c *Consumer) readAndProcess(ctx context.Context) error {
	streams, err := c.client.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    c.config.GroupName,
		Consumer: c.config.ConsumerName,
		Streams:  []string{c.config.StreamKey, ">"},
		Count:    c.config.BatchSize,
		Block:    c.config.BlockTimeout,
	}).Result()

	if err == redis.Nil {
		// No messages available
		return nil
	}
	if err != nil {
		return err
	}

	for _, stream := range streams {
		c.processMessages(ctx, stream.Messages)
	}
	return nil
}

// processMessages parses, handles, and acknowledges a batch of messages.
// Malformed messages are acknowledged and dropped: redelivering them can
// never succeed, and leaving them pending would wedge the group.
func (c *Consumer) processMessages(ctx context.Context, messages []redis.XMessage) {
	for _, message := range messages {
		event, err := parseEvent(message)
		if err != nil {
			c.logger.Warn("dropping malformed stream message",
				"message_id", message.ID,
				"error", err,
			)
			c.ack(ctx, message.ID)
			continue
		}

		if err := c.handler.HandleEvent(ctx, event); err != nil {
			c.logger.Error("failed to process event",
				"message_id", message.ID,
				"event_type", event.EventType,
				"error", err,
			)
			// Left unacknowledged; the claim pass retries it later.
			continue
		}

		c.ack(ctx, message.ID)
	}
}

func (c *Consumer) ack(ctx context.Context, messageID string) {
	if err := c.client.XAck(ctx, c.config.StreamKey, c.config.GroupName, messageID).Err(); err != nil {
		c.logger.Error("failed to acknowledge message",
			"message_id", messageID,
			"error", err,
		)
	}
}

// parseEvent validates a Redis Stream message as a bookmark event.
// event_type and payload are required; everything else is best-effort.
func parseEvent(message redis.XMessage) (Event, error) {
	event := Event{
		MessageID: message.ID,
		Metadata:  make(map[string]string),
	}

	eventType, ok := message.Values[fieldEventType].(string)
	if !ok || eventType == "" {
		return Event{}, fmt.Errorf("message %s has no %s field", message.ID, fieldEventType)
	}
	event.EventType = eventType

	payload, ok := message.Values[fieldPayload].(string)
	if !ok || payload == "" {
		return Event{}, fmt.Errorf("message %s has no %s field", message.ID, fieldPayload)
	}
	event.Payload = json.RawMessage(payload)

	if v, ok := message.Values[fieldEventID].(string); ok {
		event.EventID = v
	}
	if v, ok := message.Values[fieldSource].(string); ok {
		event.Source = v
	}
	if v, ok := message.Values[fieldCreatedAt].(string); ok {
		event.CreatedAt, _ = time.Parse(time.RFC3339, v)
	}
	if v, ok := message.Values[fieldMetadata].(string); ok {
		_ = json.Unmarshal([]byte(v), &event.Metadata)
	}

	return event, nil
}
