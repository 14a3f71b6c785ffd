package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"streetnetwork.app/kinship/common/logger"
)

type ConsumerConfig struct {
	Stream       string        // Redis stream name
	Group        string        // Redis consumer group name
	Consumer     string        // Redis consumer name
	DLQStream    string        // Dead letter queue stream for failed messages
	BatchSize    int64         // Number of messages to process per batch
	Block        time.Duration // How long to block/poll for new messages
	RequeueDelay time.Duration // Delay before retrying failed messages
}

type Message struct {
	ID       string
	TaskType TaskType
	Attempt  int
	TraceID  string

	Template  string
	Recipient string
	Params    map[string]string

	UserID        *int64
	RelatedUserID *int64
	GraphOp       GraphOp

	MilestoneID *int64

	Raw redis.XMessage
}

// Task rebuilds the task a message was enqueued from.
func (m Message) Task() Task {
	t := Task{
		TaskType:      m.TaskType,
		Attempt:       m.Attempt,
		Template:      m.Template,
		Recipient:     m.Recipient,
		Params:        m.Params,
		UserID:        m.UserID,
		RelatedUserID: m.RelatedUserID,
		GraphOp:       m.GraphOp,
		MilestoneID:   m.MilestoneID,
	}
	if m.TraceID != "" {
		t.TraceID = &m.TraceID
	}
	return t
}

// MessageProcessor processes a queue message.
type MessageProcessor func(ctx context.Context, msg Message) error

type RedisConsumer struct {
	client *redis.Client
	cfg    ConsumerConfig
}

func NewRedisConsumer(ctx context.Context, client *redis.Client, cfg ConsumerConfig) (*RedisConsumer, error) {
	consumer := &RedisConsumer{
		client: client,
		cfg:    cfg,
	}

	if err := consumer.ensureGroup(ctx); err != nil {
		return nil, err
	}

	return consumer, nil
}

func (c *RedisConsumer) ensureGroup(ctx context.Context) error {
	// Starting from "0" keeps messages enqueued before the group existed.
	if err := c.client.XGroupCreateMkStream(ctx, c.cfg.Stream, c.cfg.Group, "0").Err(); err != nil && err.Error() != "BUSYGROUP Consumer Group name already exists" {
		return fmt.Errorf("creating consumer group: %w", err)
	}
	return nil
}

func (c *RedisConsumer) Read(ctx context.Context) ([]Message, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		Component: "kinship.queue.consumer",
	})

	streams, err := c.client.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    c.cfg.Group,
		Consumer: c.cfg.Consumer,
		// ">" reads only never-delivered messages; stale pending ones belong to the reclaimer.
		Streams: []string{c.cfg.Stream, ">"},
		Count:   c.cfg.BatchSize,
		Block:   c.cfg.Block,
	}).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []Message{}, nil
		}
		return nil, fmt.Errorf("reading from stream: %w", err)
	}

	var messages []Message
	for _, stream := range streams {
		for _, msg := range stream.Messages {
			parsed, parseErr := ParseMessage(msg)
			if parseErr != nil {
				slog.ErrorContext(ctx, "failed to parse message",
					"error", parseErr,
					"raw_message_id", msg.ID,
					"stream", c.cfg.Stream)
				_ = c.Ack(ctx, Message{ID: msg.ID, Raw: msg})
				continue
			}
			messages = append(messages, parsed)
		}
	}

	if len(messages) > 0 {
		slog.DebugContext(ctx, "read messages from stream",
			"count", len(messages),
			"stream", c.cfg.Stream,
			"consumer", c.cfg.Consumer)
	}

	return messages, nil
}

func (c *RedisConsumer) Ack(ctx context.Context, msg Message) error {
	if err := c.client.XAck(ctx, c.cfg.Stream, c.cfg.Group, msg.ID).Err(); err != nil {
		return fmt.Errorf("xack (stream=%s): %w", c.cfg.Stream, err)
	}

	slog.DebugContext(ctx, "message acknowledged", "stream", c.cfg.Stream)
	return nil
}

// Requeue acks msg and appends a copy with the next attempt number.
func (c *RedisConsumer) Requeue(ctx context.Context, msg Message, errMsg string) error {
	if err := c.Ack(ctx, msg); err != nil {
		return fmt.Errorf("acking failed message for requeue: %w", err)
	}

	attempt := msg.Attempt + 1
	values, err := taskValues(msg.Task(), attempt)
	if err != nil {
		return err
	}
	if errMsg != "" {
		values["last_error"] = errMsg
	}

	if c.cfg.RequeueDelay > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.cfg.RequeueDelay * time.Duration(msg.Attempt)):
		}
	}

	if err := c.client.XAdd(ctx, &redis.XAddArgs{
		Stream: c.cfg.Stream,
		Values: values,
	}).Err(); err != nil {
		return fmt.Errorf("xadd requeue: %w", err)
	}

	slog.InfoContext(ctx, "message requeued for retry",
		"next_attempt", attempt,
		"reason", errMsg)
	return nil
}

func (c *RedisConsumer) SendDLQ(ctx context.Context, msg Message, errMsg string) error {
	if err := c.Ack(ctx, msg); err != nil {
		return fmt.Errorf("acking failed message for dlq: %w", err)
	}

	values, err := taskValues(msg.Task(), msg.Attempt)
	if err != nil {
		return err
	}
	values["error"] = errMsg

	if err := c.client.XAdd(ctx, &redis.XAddArgs{
		Stream: c.cfg.DLQStream,
		Values: values,
	}).Err(); err != nil {
		return fmt.Errorf("xadd dlq (stream=%s): %w", c.cfg.DLQStream, err)
	}

	slog.ErrorContext(ctx, "message sent to DLQ",
		"final_error", errMsg,
		"dlq_stream", c.cfg.DLQStream)
	return nil
}

func ParseMessage(msg redis.XMessage) (Message, error) {
	taskType := TaskType(optionalString(msg.Values, "task_type"))
	if taskType == "" {
		return Message{}, fmt.Errorf("missing task_type")
	}

	attempt, err := parseOptionalInt(msg.Values, "attempt")
	if err != nil {
		return Message{}, err
	}
	if attempt == 0 {
		attempt = 1
	}

	userID, err := parseOptionalInt64(msg.Values, "user_id")
	if err != nil {
		return Message{}, err
	}
	relatedUserID, err := parseOptionalInt64(msg.Values, "related_user_id")
	if err != nil {
		return Message{}, err
	}
	milestoneID, err := parseOptionalInt64(msg.Values, "milestone_id")
	if err != nil {
		return Message{}, err
	}

	var params map[string]string
	if raw := optionalString(msg.Values, "params"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &params); err != nil {
			return Message{}, fmt.Errorf("parsing params: %w", err)
		}
	}

	parsed := Message{
		ID:            msg.ID,
		TaskType:      taskType,
		Attempt:       attempt,
		TraceID:       optionalString(msg.Values, "trace_id"),
		Template:      optionalString(msg.Values, "template"),
		Recipient:     optionalString(msg.Values, "recipient"),
		Params:        params,
		UserID:        userID,
		RelatedUserID: relatedUserID,
		GraphOp:       GraphOp(optionalString(msg.Values, "graph_op")),
		MilestoneID:   milestoneID,
		Raw:           msg,
	}

	if err := parsed.Task().Validate(); err != nil {
		return Message{}, err
	}
	return parsed, nil
}

func parseOptionalInt64(values map[string]any, key string) (*int64, error) {
	raw, ok := values[key]
	if !ok {
		return nil, nil
	}
	num, err := strconv.ParseInt(fmt.Sprint(raw), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", key, err)
	}
	return &num, nil
}

func parseOptionalInt(values map[string]any, key string) (int, error) {
	raw, ok := values[key]
	if !ok {
		return 0, nil
	}
	num, err := strconv.Atoi(fmt.Sprint(raw))
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", key, err)
	}
	return num, nil
}

func optionalString(values map[string]any, key string) string {
	raw, ok := values[key]
	if !ok {
		return ""
	}
	return fmt.Sprint(raw)
}

func taskValues(t Task, attempt int) (map[string]any, error) {
	values := map[string]any{
		"task_type": string(t.TaskType),
		"attempt":   attempt,
	}

	switch t.TaskType {
	case TaskTypeSendEmail:
		values["template"] = t.Template
		values["recipient"] = t.Recipient
		if len(t.Params) > 0 {
			raw, err := json.Marshal(t.Params)
			if err != nil {
				return nil, fmt.Errorf("encoding params: %w", err)
			}
			values["params"] = string(raw)
		}
	case TaskTypeGraphSync:
		if t.UserID != nil {
			values["user_id"] = *t.UserID
		}
		if t.RelatedUserID != nil {
			values["related_user_id"] = *t.RelatedUserID
		}
		values["graph_op"] = string(t.GraphOp)
	case TaskTypePinMilestone:
		if t.MilestoneID != nil {
			values["milestone_id"] = *t.MilestoneID
		}
	}

	if t.TraceID != nil && *t.TraceID != "" {
		values["trace_id"] = *t.TraceID
	}

	return values, nil
}
