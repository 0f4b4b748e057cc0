package memory

import (
	"context"

	"github.com/aimarketsim/backend/internal/domain"
)

// InvestmentRepository is the in-memory implementation of
// domain.InvestmentRepository. The ledger is append-only.
type InvestmentRepository struct {
	s *Store
}

// NewInvestmentRepository creates an investment repository backed by the store.
func NewInvestmentRepository(s *Store) *InvestmentRepository {
	return &InvestmentRepository{s: s}
}

// Add appends an investment to the ledger.
func (r *InvestmentRepository) Add(ctx context.Context, investment *domain.Investment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.investments = append(r.s.investments, cloneInvestment(investment))
	return nil
}

// List retrieves all investments in insertion order.
func (r *InvestmentRepository) List(ctx context.Context) ([]*domain.Investment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*domain.Investment, 0, len(r.s.investments))
	for _, inv := range r.s.investments {
		out = append(out, cloneInvestment(inv))
	}
	return out, nil
}

// ListByCompany retrieves the investments referencing a company.
func (r *InvestmentRepository) ListByCompany(ctx context.Context, companyID string) ([]*domain.Investment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*domain.Investment
	for _, inv := range r.s.investments {
		if inv.CompanyID == companyID {
			out = append(out, cloneInvestment(inv))
		}
	}
	return out, nil
}

// ListByInvestor retrieves the investments made by an investor.
func (r *InvestmentRepository) ListByInvestor(ctx context.Context, investor string) ([]*domain.Investment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*domain.Investment
	for _, inv := range r.s.investments {
		if inv.Investor == investor {
			out = append(out, cloneInvestment(inv))
		}
	}
	return out, nil
}
