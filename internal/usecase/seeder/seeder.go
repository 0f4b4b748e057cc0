// Package seeder populates a fresh market with its launch companies.
package seeder

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/aimarketsim/backend/internal/domain"
)

// Seeder writes the launch companies straight into the repository so a
// freshly started simulation begins with a populated market and an
// empty transaction log.
type Seeder struct {
	companies domain.CompanyRepository
}

// NewSeeder creates a new seeder.
func NewSeeder(companies domain.CompanyRepository) *Seeder {
	return &Seeder{companies: companies}
}

// launchCompanies are the companies present at market open.
func launchCompanies() []*domain.Company {
	return []*domain.Company{
		{
			ID:          domain.CompanyID("NVIDIA"),
			Name:        "NVIDIA",
			Symbol:      "NVDA",
			Description: "AI chip and GPU leader",
			Address:     "0x1234567890abcdef",
			StockPrice:  decimal.NewFromInt(1000),
			TotalShares: 1000000,
			Color:       "#76b900",
		},
		{
			ID:          domain.CompanyID("OpenAI"),
			Name:        "OpenAI",
			Symbol:      "OPENAI",
			Description: "AGI research lab",
			Address:     "0xabcdef1234567890",
			StockPrice:  decimal.NewFromInt(5000),
			TotalShares: 500000,
			Color:       "#10a37f",
		},
		{
			ID:          domain.CompanyID("Meta"),
			Name:        "Meta",
			Symbol:      "META",
			Description: "Social platforms and AI research",
			Address:     "0xfedcba0987654321",
			StockPrice:  decimal.NewFromInt(2000),
			TotalShares: 800000,
			Color:       "#0866ff",
		},
	}
}

// Seed creates any launch company that does not already exist.
// Companies already present are left untouched.
func (s *Seeder) Seed(ctx context.Context) error {
	for _, company := range launchCompanies() {
		_, err := s.companies.GetByID(ctx, company.ID)
		if err == nil {
			continue
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("checking company %q: %w", company.ID, err)
		}

		company.AvailableShares = company.TotalShares
		company.RecalculateMarketCap()
		if err := company.Validate(); err != nil {
			return fmt.Errorf("seed company %q: %w", company.ID, err)
		}
		if err := s.companies.Create(ctx, company); err != nil {
			return fmt.Errorf("seed company %q: %w", company.ID, err)
		}
	}
	return nil
}
