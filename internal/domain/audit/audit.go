package audit

import (
	"context"
	"time"
)

// Entry is one append-only audit record. Bulk commits and policy mutations
// write exactly one entry each.
type Entry struct {
	ID        string
	Actor     string
	Action    string
	Details   map[string]string
	CreatedAt time.Time
}

type Log interface {
	Append(ctx context.Context, entry Entry) error
	List(ctx context.Context) ([]Entry, error)
}
