package memory

import (
	"context"

	"github.com/aimarketsim/backend/internal/domain"
)

// TransactionLogRepository is the in-memory implementation of
// domain.TransactionLogRepository. Entries are kept newest-first.
type TransactionLogRepository struct {
	s *Store
}

// NewTransactionLogRepository creates a log repository backed by the store.
func NewTransactionLogRepository(s *Store) *TransactionLogRepository {
	return &TransactionLogRepository{s: s}
}

// Prepend inserts an entry at the head of the log.
func (r *TransactionLogRepository) Prepend(ctx context.Context, entry *domain.TransactionLogEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	entries := make([]*domain.TransactionLogEntry, 0, len(r.s.logEntries)+1)
	entries = append(entries, cloneLogEntry(entry))
	entries = append(entries, r.s.logEntries...)
	r.s.logEntries = entries
	return nil
}

// List retrieves all entries, newest first.
func (r *TransactionLogRepository) List(ctx context.Context) ([]*domain.TransactionLogEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*domain.TransactionLogEntry, 0, len(r.s.logEntries))
	for _, e := range r.s.logEntries {
		out = append(out, cloneLogEntry(e))
	}
	return out, nil
}

// Truncate drops entries from the tail until at most max remain.
func (r *TransactionLogRepository) Truncate(ctx context.Context, max int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if max >= 0 && len(r.s.logEntries) > max {
		r.s.logEntries = r.s.logEntries[:max]
	}
	return nil
}
