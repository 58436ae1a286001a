// Package events publishes domain events. Publishing is best effort: callers
// go through Emit, which logs failures instead of returning them.
package events

import (
	"context"
	"time"

	"github.com/Skotchmaster/job_board/pkg/logging"
)

const (
	TopicUsers        = "user_events"
	TopicJobs         = "job_events"
	TopicApplications = "application_events"
)

const (
	UserRegistered  = "user_registered"
	UserLoggedIn    = "user_logged_in"
	UserLoggedOut   = "user_logged_out"
	PasswordChanged = "password_changed"

	JobCreated = "job_created"
	JobUpdated = "job_updated"
	JobDeleted = "job_deleted"

	ApplicationSubmitted     = "application_submitted"
	ApplicationStatusChanged = "application_status_changed"
)

const publishTimeout = 5 * time.Second

type Event struct {
	Type       string         `json:"type"`
	OccurredAt time.Time      `json:"occurredAt"`
	Data       map[string]any `json:"data,omitempty"`
}

func New(eventType string, data map[string]any) Event {
	return Event{Type: eventType, OccurredAt: time.Now().UTC(), Data: data}
}

type Publisher interface {
	PublishEvent(ctx context.Context, topic, key string, event Event) error
	Close() error
}

// Emit publishes ev and logs instead of failing. A nil publisher is a no-op.
func Emit(ctx context.Context, p Publisher, topic, key string, ev Event) {
	if p == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := p.PublishEvent(ctx, topic, key, ev); err != nil {
		logging.FromContext(ctx).Warn("event_publish_failed",
			"topic", topic,
			"event", ev.Type,
			"error", err,
		)
	}
}

type Noop struct{}

func (Noop) PublishEvent(context.Context, string, string, Event) error { return nil }
func (Noop) Close() error                                              { return nil }
