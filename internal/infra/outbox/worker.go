package outbox

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"hoteldesk/internal/infra/storage/memory"
)

var ErrWorkerNotConfigured = errors.New("outbox: worker requires a store and a producer")

const drainBatchSize = 32

type Producer interface {
	Publish(ctx context.Context, topic string, key string, payload []byte, headers map[string]string) error
}

// Worker drains the outbox on an interval and publishes each record to the
// broker. Records that fail to publish are re-queued and retried on the next
// tick.
type Worker struct {
	Store       *memory.Outbox
	Producer    Producer
	Logger      *slog.Logger
	Interval    time.Duration
	TopicPrefix string
}

func (w *Worker) Run(ctx context.Context) error {
	if w.Store == nil || w.Producer == nil {
		return ErrWorkerNotConfigured
	}
	ticker := time.NewTicker(w.interval())
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.processOnce(ctx)
		}
	}
}

func (w *Worker) processOnce(ctx context.Context) {
	records, err := w.Store.Drain(ctx, drainBatchSize)
	if err != nil || len(records) == 0 {
		return
	}
	for i, rec := range records {
		if err := w.Producer.Publish(ctx, w.topicFor(rec.Name), rec.Aggregate, rec.Payload, rec.Headers); err != nil {
			if w.Logger != nil {
				w.Logger.Warn("outbox publish failed, re-queueing", "event", rec.Name, "error", err)
			}
			for _, requeue := range records[i:] {
				_ = w.Store.Add(ctx, requeue)
			}
			return
		}
	}
}

// topicFor maps an event name like "rates.bulk_committed" to its topic,
// applying the configured prefix.
func (w *Worker) topicFor(eventName string) string {
	topic := strings.ReplaceAll(eventName, ".", "-")
	if w.TopicPrefix != "" {
		topic = w.TopicPrefix + "-" + topic
	}
	return topic
}

func (w *Worker) interval() time.Duration {
	if w.Interval > 0 {
		return w.Interval
	}
	return 500 * time.Millisecond
}
