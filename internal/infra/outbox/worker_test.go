package outbox

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appoutbox "hoteldesk/internal/app/outbox"
	"hoteldesk/internal/infra/storage/memory"
)

type fakeProducer struct {
	published []publishedRecord
	failAfter int // fail every Publish once this many calls succeeded; -1 never fails
	calls     int
}

type publishedRecord struct {
	topic   string
	key     string
	payload []byte
}

func (p *fakeProducer) Publish(_ context.Context, topic, key string, payload []byte, _ map[string]string) error {
	p.calls++
	if p.failAfter >= 0 && p.calls > p.failAfter {
		return errors.New("broker down")
	}
	p.published = append(p.published, publishedRecord{topic: topic, key: key, payload: payload})
	return nil
}

func TestProcessOncePublishesAndEmptiesTheOutbox(t *testing.T) {
	store := memory.NewOutbox()
	ctx := context.Background()
	require.NoError(t, store.Add(ctx, appoutbox.EventRecord{ID: "1", Name: "rates.bulk_committed", Aggregate: "Deluxe – BB", Payload: []byte(`{}`)}))
	require.NoError(t, store.Add(ctx, appoutbox.EventRecord{ID: "2", Name: "booking.confirmed", Aggregate: "b1", Payload: []byte(`{}`)}))

	producer := &fakeProducer{failAfter: -1}
	w := &Worker{Store: store, Producer: producer}
	w.processOnce(ctx)

	require.Len(t, producer.published, 2)
	assert.Equal(t, "rates-bulk_committed", producer.published[0].topic)
	assert.Equal(t, "booking-confirmed", producer.published[1].topic)
	assert.Equal(t, "b1", producer.published[1].key)
	assert.Zero(t, store.Pending())
}

func TestProcessOnceRequeuesOnPublishFailure(t *testing.T) {
	store := memory.NewOutbox()
	ctx := context.Background()
	for _, id := range []string{"1", "2", "3"} {
		require.NoError(t, store.Add(ctx, appoutbox.EventRecord{ID: id, Name: "booking.confirmed", Payload: []byte(`{}`)}))
	}

	producer := &fakeProducer{failAfter: 1}
	w := &Worker{Store: store, Producer: producer}
	w.processOnce(ctx)

	// one published, the failed one and the rest are back in the store
	assert.Len(t, producer.published, 1)
	assert.Equal(t, 2, store.Pending())
}

func TestTopicForAppliesPrefix(t *testing.T) {
	w := &Worker{TopicPrefix: "hoteldesk"}
	assert.Equal(t, "hoteldesk-rates-bulk_committed", w.topicFor("rates.bulk_committed"))

	bare := &Worker{}
	assert.Equal(t, "rates-bulk_committed", bare.topicFor("rates.bulk_committed"))
}

func TestRunRequiresDependencies(t *testing.T) {
	w := &Worker{}
	assert.ErrorIs(t, w.Run(context.Background()), ErrWorkerNotConfigured)
}
