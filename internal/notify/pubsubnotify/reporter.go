// Package pubsubnotify publishes user notifications to a Google Cloud Pub/Sub
// topic so they can be displayed by other surfaces.
package pubsubnotify

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"cloud.google.com/go/pubsub/v2"
	"github.com/illmade-knight/service-info/pkg/notify"
	"github.com/rs/zerolog"
)

// ClearedMessage is the message of the info event published by Clear.
const ClearedMessage = "cleared"

// Reporter implements notify.Reporter by publishing notify.Event JSON.
// Publishing happens in the background; delivery failures are logged.
type Reporter struct {
	publisher *pubsub.Publisher
	logger    zerolog.Logger
	timeout   time.Duration
	wg        sync.WaitGroup
}

// NewReporter creates a reporter publishing to topicID.
func NewReporter(client *pubsub.Client, topicID string, logger zerolog.Logger) *Reporter {
	return &Reporter{
		publisher: client.Publisher(topicID),
		logger:    logger.With().Str("component", "pubsub-reporter").Str("topic", topicID).Logger(),
		timeout:   10 * time.Second,
	}
}

// Notify publishes an error event for err.
func (r *Reporter) Notify(ctx context.Context, err error) {
	r.publish(ctx, notify.NewEvent(ctx, err))
}

// Clear publishes an info event telling displays to drop the current message.
func (r *Reporter) Clear(ctx context.Context) {
	ev := notify.NewEvent(ctx, nil)
	ev.Level = notify.LevelInfo
	ev.Message = ClearedMessage
	r.publish(ctx, ev)
}

func (r *Reporter) publish(ctx context.Context, ev notify.Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		r.logger.Error().Err(err).Msg("Failed to marshal notification event")
		return
	}

	// The caller's context may end as soon as Notify returns.
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.timeout)
	result := r.publisher.Publish(pubCtx, &pubsub.Message{
		Data:       data,
		Attributes: map[string]string{"level": string(ev.Level), "service_id": ev.ServiceID},
	})

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer cancel()
		msgID, err := result.Get(pubCtx)
		if err != nil {
			r.logger.Error().Err(err).Str("event_id", ev.ID.String()).Msg("Failed to publish notification")
			return
		}
		r.logger.Debug().Str("message_id", msgID).Str("event_id", ev.ID.String()).Msg("Published notification")
	}()
}

// Stop waits for pending publishes and stops the publisher.
func (r *Reporter) Stop() {
	r.wg.Wait()
	r.publisher.Stop()
}
