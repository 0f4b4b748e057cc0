package memory

import (
	"context"
	"fmt"

	"github.com/aimarketsim/backend/internal/domain"
)

// CompanyRepository is the in-memory implementation of
// domain.CompanyRepository. Companies are listed in insertion order.
type CompanyRepository struct {
	s *Store
}

// NewCompanyRepository creates a company repository backed by the store.
func NewCompanyRepository(s *Store) *CompanyRepository {
	return &CompanyRepository{s: s}
}

// Create stores a new company.
func (r *CompanyRepository) Create(ctx context.Context, company *domain.Company) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.companies[company.ID]; ok {
		return fmt.Errorf("%w: company id %q already registered", domain.ErrValidation, company.ID)
	}
	r.s.companies[company.ID] = cloneCompany(company)
	r.s.companyOrder = append(r.s.companyOrder, company.ID)
	return nil
}

// GetByID retrieves a company by ID.
func (r *CompanyRepository) GetByID(ctx context.Context, id string) (*domain.Company, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.companies[id]
	if !ok {
		return nil, fmt.Errorf("%w: company %q", domain.ErrNotFound, id)
	}
	return cloneCompany(c), nil
}

// Update replaces the stored company with the same ID.
func (r *CompanyRepository) Update(ctx context.Context, company *domain.Company) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.companies[company.ID]; !ok {
		return fmt.Errorf("%w: company %q", domain.ErrNotFound, company.ID)
	}
	r.s.companies[company.ID] = cloneCompany(company)
	return nil
}

// List retrieves all companies in insertion order.
func (r *CompanyRepository) List(ctx context.Context) ([]*domain.Company, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*domain.Company, 0, len(r.s.companyOrder))
	for _, id := range r.s.companyOrder {
		out = append(out, cloneCompany(r.s.companies[id]))
	}
	return out, nil
}
