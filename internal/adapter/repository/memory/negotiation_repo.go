package memory

import (
	"context"
	"fmt"

	"github.com/aimarketsim/backend/internal/domain"
)

// NegotiationRepository is the in-memory implementation of
// domain.NegotiationRepository.
type NegotiationRepository struct {
	s *Store
}

// NewNegotiationRepository creates a negotiation repository backed by the store.
func NewNegotiationRepository(s *Store) *NegotiationRepository {
	return &NegotiationRepository{s: s}
}

// Add stores a new negotiation.
func (r *NegotiationRepository) Add(ctx context.Context, negotiation *domain.Negotiation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.negotiations[negotiation.ID]; ok {
		return fmt.Errorf("%w: negotiation id %q already exists", domain.ErrValidation, negotiation.ID)
	}
	r.s.negotiations[negotiation.ID] = cloneNegotiation(negotiation)
	r.s.negotiationOrder = append(r.s.negotiationOrder, negotiation.ID)
	return nil
}

// GetByID retrieves a negotiation by ID.
func (r *NegotiationRepository) GetByID(ctx context.Context, id string) (*domain.Negotiation, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n, ok := r.s.negotiations[id]
	if !ok {
		return nil, fmt.Errorf("%w: negotiation %q", domain.ErrNotFound, id)
	}
	return cloneNegotiation(n), nil
}

// Update replaces the stored negotiation with the same ID.
func (r *NegotiationRepository) Update(ctx context.Context, negotiation *domain.Negotiation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.negotiations[negotiation.ID]; !ok {
		return fmt.Errorf("%w: negotiation %q", domain.ErrNotFound, negotiation.ID)
	}
	r.s.negotiations[negotiation.ID] = cloneNegotiation(negotiation)
	return nil
}

// ListByStatus retrieves negotiations in the given status, in insertion order.
func (r *NegotiationRepository) ListByStatus(ctx context.Context, status domain.NegotiationStatus) ([]*domain.Negotiation, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*domain.Negotiation
	for _, id := range r.s.negotiationOrder {
		if n := r.s.negotiations[id]; n.Status == status {
			out = append(out, cloneNegotiation(n))
		}
	}
	return out, nil
}
