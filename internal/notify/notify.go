// Package notify hands user-facing notifications to the worker through a
// Redis stream. Delivery happens in cmd/worker.
package notify

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

type Type string

const (
	TypePasswordRecovery   Type = "password_recovery"
	TypeOnboardingReminder Type = "onboarding_reminder"
)

type Message struct {
	Type   Type
	UserID int64
	Email  string
	Name   string
	Token  string
}

// Values flattens the message into stream fields.
func (m Message) Values() map[string]any {
	values := map[string]any{
		"type":   string(m.Type),
		"userId": strconv.FormatInt(m.UserID, 10),
		"email":  m.Email,
	}
	if m.Name != "" {
		values["name"] = m.Name
	}
	if m.Token != "" {
		values["token"] = m.Token
	}
	return values
}

// Decode reads a message back from stream fields. Redis returns every field
// as a string.
func Decode(values map[string]any) (Message, error) {
	field := func(key string) string {
		if v, ok := values[key]; ok {
			if s, ok := v.(string); ok {
				return s
			}
			return fmt.Sprint(v)
		}
		return ""
	}

	msg := Message{
		Type:  Type(field("type")),
		Email: field("email"),
		Name:  field("name"),
		Token: field("token"),
	}
	if msg.Type == "" {
		return Message{}, fmt.Errorf("missing type")
	}
	if raw := field("userId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return Message{}, fmt.Errorf("parse userId: %w", err)
		}
		msg.UserID = id
	}
	return msg, nil
}

type Publisher struct {
	client *redis.Client
	stream string
}

func NewPublisher(client *redis.Client, stream string) *Publisher {
	return &Publisher{client: client, stream: stream}
}

func (p *Publisher) Publish(ctx context.Context, msg Message) error {
	if err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		Values: msg.Values(),
	}).Err(); err != nil {
		return fmt.Errorf("xadd %s: %w", p.stream, err)
	}
	return nil
}
