// Package registry owns the set of companies, their share accounting
// and derived market capitalization.
package registry

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/aimarketsim/backend/internal/domain"
	"github.com/aimarketsim/backend/internal/usecase/auditlog"
)

// RegisterCompanyInput carries the caller-supplied fields for a new
// company. Address is optional; a placeholder is synthesized if empty.
type RegisterCompanyInput struct {
	Name        string
	Symbol      string
	Description string
	Address     string
	StockPrice  decimal.Decimal
	TotalShares int64
	Color       string
}

// Service handles company registration, price updates and share
// reservation.
type Service struct {
	companies domain.CompanyRepository
	audit     *auditlog.Service
}

// NewService creates a new registry service.
func NewService(companies domain.CompanyRepository, audit *auditlog.Service) *Service {
	return &Service{
		companies: companies,
		audit:     audit,
	}
}

// RegisterCompany validates and stores a new company. The company ID is
// derived from the name and all shares start available. Every attempt,
// including a failed one, produces exactly one log entry.
func (s *Service) RegisterCompany(ctx context.Context, input RegisterCompanyInput) (*domain.Company, error) {
	company := &domain.Company{
		ID:              domain.CompanyID(input.Name),
		Name:            input.Name,
		Symbol:          input.Symbol,
		Description:     input.Description,
		Address:         input.Address,
		StockPrice:      input.StockPrice,
		TotalShares:     input.TotalShares,
		AvailableShares: input.TotalShares,
		Color:           input.Color,
	}
	if company.Address == "" {
		company.Address = domain.PlaceholderAddress()
	}
	company.RecalculateMarketCap()

	if err := company.Validate(); err != nil {
		s.audit.Error(ctx, fmt.Sprintf("company registration failed: %v", err), nil)
		return nil, err
	}

	if err := s.checkUnique(ctx, company); err != nil {
		s.audit.Error(ctx, fmt.Sprintf("company registration failed: %v", err), nil)
		return nil, err
	}

	if err := s.companies.Create(ctx, company); err != nil {
		s.audit.Error(ctx, fmt.Sprintf("company registration failed: %v", err), nil)
		return nil, err
	}

	s.audit.Success(ctx, fmt.Sprintf("company %q registered", company.Name), domain.CompanyRegistered{Company: *company})
	return company, nil
}

// checkUnique enforces registry-wide uniqueness of company ID and symbol.
func (s *Service) checkUnique(ctx context.Context, company *domain.Company) error {
	existing, err := s.companies.List(ctx)
	if err != nil {
		return err
	}
	for _, c := range existing {
		if c.ID == company.ID {
			return fmt.Errorf("%w: company id %q already registered", domain.ErrValidation, company.ID)
		}
		if c.Symbol == company.Symbol {
			return fmt.Errorf("%w: company symbol %q already registered", domain.ErrValidation, company.Symbol)
		}
	}
	return nil
}

// UpdateStockPrice changes a company's stock price and recomputes its
// market cap from the current total shares.
func (s *Service) UpdateStockPrice(ctx context.Context, companyID string, newPrice decimal.Decimal) error {
	company, err := s.companies.GetByID(ctx, companyID)
	if err != nil {
		s.audit.Error(ctx, fmt.Sprintf("price update failed: company %q not found", companyID), nil)
		return err
	}

	if !newPrice.IsPositive() {
		err := fmt.Errorf("%w: stock price must be positive", domain.ErrValidation)
		s.audit.Error(ctx, fmt.Sprintf("price update failed for %q: %v", company.Name, err), nil)
		return err
	}

	oldPrice := company.StockPrice
	company.StockPrice = newPrice
	company.RecalculateMarketCap()
	if err := s.companies.Update(ctx, company); err != nil {
		s.audit.Error(ctx, fmt.Sprintf("price update failed for %q: %v", company.Name, err), nil)
		return err
	}

	s.audit.Info(ctx,
		fmt.Sprintf("%s stock price updated from $%s to $%s", company.Name, oldPrice.String(), newPrice.String()),
		domain.PriceUpdated{CompanyID: companyID, OldPrice: oldPrice, NewPrice: newPrice})
	return nil
}

// FindByID retrieves a company. Pure lookup, no side effects.
func (s *Service) FindByID(ctx context.Context, companyID string) (*domain.Company, error) {
	return s.companies.GetByID(ctx, companyID)
}

// List retrieves all companies in registration order.
func (s *Service) List(ctx context.Context) ([]*domain.Company, error) {
	return s.companies.List(ctx)
}

// ReserveShares decrements a company's available shares. Internal
// operation invoked by settlement paths that have already validated
// availability; the defensive re-check guards the share-conservation
// invariant and never logs on its own.
func (s *Service) ReserveShares(ctx context.Context, companyID string, shares int64) error {
	company, err := s.companies.GetByID(ctx, companyID)
	if err != nil {
		return err
	}
	if shares > company.AvailableShares {
		return fmt.Errorf("%w: %q has %d shares available, %d requested",
			domain.ErrInsufficientShares, companyID, company.AvailableShares, shares)
	}
	company.AvailableShares -= shares
	return s.companies.Update(ctx, company)
}
