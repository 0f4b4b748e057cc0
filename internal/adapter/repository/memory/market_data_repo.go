package memory

import (
	"context"

	"github.com/aimarketsim/backend/internal/domain"
)

// MarketDataRepository is the in-memory implementation of
// domain.MarketDataRepository.
type MarketDataRepository struct {
	s *Store
}

// NewMarketDataRepository creates a market data repository backed by the store.
func NewMarketDataRepository(s *Store) *MarketDataRepository {
	return &MarketDataRepository{s: s}
}

// Add appends a market sample.
func (r *MarketDataRepository) Add(ctx context.Context, sample *domain.MarketSample) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.samples = append(r.s.samples, cloneSample(sample))
	return nil
}

// ListByCompany retrieves the samples for a company in recording order.
func (r *MarketDataRepository) ListByCompany(ctx context.Context, companyID string) ([]*domain.MarketSample, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*domain.MarketSample
	for _, sm := range r.s.samples {
		if sm.CompanyID == companyID {
			out = append(out, cloneSample(sm))
		}
	}
	return out, nil
}
