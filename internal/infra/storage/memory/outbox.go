package memory

import (
	"context"
	"sync"

	appoutbox "hoteldesk/internal/app/outbox"
)

// Outbox buffers event records in memory until the publishing worker drains
// them. With no worker attached it simply accumulates, which is fine for a
// single-process deployment without a broker.
type Outbox struct {
	mu      sync.Mutex
	records []appoutbox.EventRecord
}

func NewOutbox() *Outbox {
	return &Outbox{}
}

func (o *Outbox) Add(ctx context.Context, record appoutbox.EventRecord) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.records = append(o.records, record)
	return nil
}

// Drain removes and returns up to max buffered records, oldest first.
func (o *Outbox) Drain(ctx context.Context, max int) ([]appoutbox.EventRecord, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if len(o.records) == 0 {
		return nil, nil
	}
	n := len(o.records)
	if max > 0 && max < n {
		n = max
	}
	out := make([]appoutbox.EventRecord, n)
	copy(out, o.records[:n])
	o.records = append([]appoutbox.EventRecord(nil), o.records[n:]...)
	return out, nil
}

// Pending reports the buffered record count.
func (o *Outbox) Pending() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.records)
}

var _ appoutbox.Outbox = (*Outbox)(nil)
