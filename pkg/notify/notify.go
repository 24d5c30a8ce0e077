// Package notify is the user-notification channel: the place failures are
// reported to so they can be shown to the user.
package notify

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Level classifies an event.
type Level string

const (
	LevelError Level = "error"
	LevelInfo  Level = "info"
)

// Reporter receives failures. Notify is fire-and-forget; implementations
// must not block the caller on delivery.
type Reporter interface {
	Notify(ctx context.Context, err error)
	Clear(ctx context.Context)
}

// Event is a notification as it is displayed or published.
type Event struct {
	ID        uuid.UUID `json:"id"`
	Level     Level     `json:"level"`
	Message   string    `json:"message"`
	ServiceID string    `json:"service_id,omitempty"`
	Time      time.Time `json:"time"`
}

type serviceIDKey struct{}

// WithServiceID tags ctx so events built from it carry the service id.
func WithServiceID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, serviceIDKey{}, id)
}

// ServiceIDFrom returns the service id stored by WithServiceID.
func ServiceIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(serviceIDKey{}).(string)
	return id
}

// NewEvent builds an error event for err.
func NewEvent(ctx context.Context, err error) Event {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	return Event{
		ID:        uuid.New(),
		Level:     LevelError,
		Message:   msg,
		ServiceID: ServiceIDFrom(ctx),
		Time:      time.Now().UTC(),
	}
}

// Multi fans a notification out to several reporters.
type Multi []Reporter

func (m Multi) Notify(ctx context.Context, err error) {
	for _, r := range m {
		r.Notify(ctx, err)
	}
}

func (m Multi) Clear(ctx context.Context) {
	for _, r := range m {
		r.Clear(ctx)
	}
}

// Discard drops everything.
var Discard Reporter = discard{}

type discard struct{}

func (discard) Notify(context.Context, error) {}
func (discard) Clear(context.Context)         {}
