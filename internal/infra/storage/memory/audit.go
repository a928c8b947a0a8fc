package memory

import (
	"context"
	"sync"

	domainaudit "hoteldesk/internal/domain/audit"
)

// AuditLog is the append-only in-memory audit store.
type AuditLog struct {
	mu      sync.RWMutex
	entries []domainaudit.Entry
}

func NewAuditLog() *AuditLog {
	return &AuditLog{}
}

func (l *AuditLog) Append(ctx context.Context, entry domainaudit.Entry) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, entry)
	return nil
}

func (l *AuditLog) List(ctx context.Context) ([]domainaudit.Entry, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]domainaudit.Entry, len(l.entries))
	copy(out, l.entries)
	return out, nil
}
