// Package auditlog maintains the bounded, newest-first transaction log
// that records the outcome of every engine operation.
package auditlog

import (
	"context"
	"log/slog"
	"sync"

	"github.com/aimarketsim/backend/internal/domain"
)

// Capacity is the maximum number of entries retained; the oldest are
// evicted first.
const Capacity = 50

// FilterAll selects every entry regardless of type.
const FilterAll = "all"

// subscriberBuffer is the per-subscriber channel depth. Entries are
// dropped for subscribers that fall this far behind.
const subscriberBuffer = 64

// Service appends to and reads from the transaction log, and fans
// appended entries out to live subscribers.
type Service struct {
	entries domain.TransactionLogRepository
	ids     domain.IDGenerator
	clock   domain.Clock
	logger  *slog.Logger

	mu          sync.Mutex
	subscribers []chan domain.TransactionLogEntry
}

// NewService creates a new audit log service.
func NewService(entries domain.TransactionLogRepository, ids domain.IDGenerator, clock domain.Clock, logger *slog.Logger) *Service {
	return &Service{
		entries: entries,
		ids:     ids,
		clock:   clock,
		logger:  logger,
	}
}

// Append records one operation outcome: the entry is prepended, the log
// is truncated to Capacity, and subscribers are notified. The entry is
// also mirrored to the operational logger.
func (s *Service) Append(ctx context.Context, typ domain.LogType, message string, details domain.LogDetails) {
	entry := &domain.TransactionLogEntry{
		ID:        s.ids.NewID(),
		Type:      typ,
		Message:   message,
		Details:   details,
		Timestamp: s.clock.Now(),
	}

	if err := s.entries.Prepend(ctx, entry); err != nil {
		s.logger.Warn("audit log append failed", slog.String("error", err.Error()))
		return
	}
	if err := s.entries.Truncate(ctx, Capacity); err != nil {
		s.logger.Warn("audit log truncate failed", slog.String("error", err.Error()))
	}

	switch typ {
	case domain.LogError:
		s.logger.Error(message)
	default:
		s.logger.Info(message, slog.String("outcome", string(typ)))
	}

	s.notify(*entry)
}

// Info appends an info entry.
func (s *Service) Info(ctx context.Context, message string, details domain.LogDetails) {
	s.Append(ctx, domain.LogInfo, message, details)
}

// Success appends a success entry.
func (s *Service) Success(ctx context.Context, message string, details domain.LogDetails) {
	s.Append(ctx, domain.LogSuccess, message, details)
}

// Error appends an error entry.
func (s *Service) Error(ctx context.Context, message string, details domain.LogDetails) {
	s.Append(ctx, domain.LogError, message, details)
}

// Entries returns log entries newest-first. filter is a domain.LogType
// string or FilterAll.
func (s *Service) Entries(ctx context.Context, filter string) ([]*domain.TransactionLogEntry, error) {
	all, err := s.entries.List(ctx)
	if err != nil {
		return nil, err
	}
	if filter == "" || filter == FilterAll {
		return all, nil
	}
	out := make([]*domain.TransactionLogEntry, 0, len(all))
	for _, e := range all {
		if string(e.Type) == filter {
			out = append(out, e)
		}
	}
	return out, nil
}

// Subscribe returns a channel receiving every entry appended after the
// call. Slow subscribers have entries dropped rather than blocking the
// engine.
func (s *Service) Subscribe() <-chan domain.TransactionLogEntry {
	ch := make(chan domain.TransactionLogEntry, subscriberBuffer)
	s.mu.Lock()
	s.subscribers = append(s.subscribers, ch)
	s.mu.Unlock()
	return ch
}

func (s *Service) notify(entry domain.TransactionLogEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ch := range s.subscribers {
		select {
		case ch <- entry:
		default:
			// Subscriber is not keeping up; drop.
		}
	}
}
