package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/twmb/franz-go/pkg/kgo"

	"respass/pkg/platform/sentinel"
)

// Producer is the subset of *kgo.Client used by KafkaNotifier.
type Producer interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
}

// Event is the record value published for every notifier call. A downstream
// relay forwards events to the provider.
type Event struct {
	ID          string         `json:"id"`
	Type        string         `json:"type"`
	Workflow    string         `json:"workflow,omitempty"`
	Recipients  []string       `json:"recipients,omitempty"`
	Data        map[string]any `json:"data,omitempty"`
	Attachments []Attachment   `json:"attachments,omitempty"`
	User        *User          `json:"user,omitempty"`
	OccurredAt  time.Time      `json:"occurred_at"`
}

const (
	EventTrigger    = "workflow.trigger"
	EventIdentify   = "user.identify"
	EventDeleteUser = "user.delete"
)

// KafkaNotifier publishes notifier calls to a topic instead of calling the
// provider directly.
type KafkaNotifier struct {
	producer Producer
	topic    string
	now      func() time.Time
}

func NewKafkaNotifier(producer Producer, topic string) *KafkaNotifier {
	return &KafkaNotifier{producer: producer, topic: topic, now: time.Now}
}

func (k *KafkaNotifier) Trigger(ctx context.Context, t Trigger) error {
	return k.publish(ctx, t.Workflow, Event{
		Type:        EventTrigger,
		Workflow:    t.Workflow,
		Recipients:  t.Recipients,
		Data:        t.Data,
		Attachments: t.Attachments,
	})
}

func (k *KafkaNotifier) Identify(ctx context.Context, u User) error {
	return k.publish(ctx, u.ID, Event{Type: EventIdentify, User: &u})
}

func (k *KafkaNotifier) DeleteUser(ctx context.Context, id string) error {
	return k.publish(ctx, id, Event{Type: EventDeleteUser, User: &User{ID: id}})
}

// GetUser cannot be answered from a write-only topic.
func (k *KafkaNotifier) GetUser(context.Context, string) (*User, error) {
	return nil, fmt.Errorf("kafka notifier get user: %w", sentinel.ErrUnsupported)
}

func (k *KafkaNotifier) publish(ctx context.Context, key string, ev Event) error {
	ev.ID = uuid.NewString()
	ev.OccurredAt = k.now().UTC()
	value, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode %s event: %w", ev.Type, err)
	}
	rec := &kgo.Record{
		Topic: k.topic,
		Key:   []byte(key),
		Value: value,
		Headers: []kgo.RecordHeader{
			{Key: "event_type", Value: []byte(ev.Type)},
		},
	}
	if err := k.producer.ProduceSync(ctx, rec).FirstErr(); err != nil {
		return fmt.Errorf("publish %s event: %w", ev.Type, err)
	}
	return nil
}
