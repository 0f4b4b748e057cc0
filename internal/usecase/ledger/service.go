// Package ledger records investments as an append-only history and
// answers aggregate questions about it.
package ledger

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/aimarketsim/backend/internal/domain"
	"github.com/aimarketsim/backend/internal/usecase/auditlog"
	"github.com/aimarketsim/backend/internal/usecase/registry"
)

// Holding is one investor position in a company, aggregated across all
// of that investor's investments into it.
type Holding struct {
	CompanyID   string          `json:"companyId"`
	CompanyName string          `json:"companyName"`
	Shares      int64           `json:"shares"`
	TotalValue  decimal.Decimal `json:"totalValue"`
}

// Portfolio summarizes everything one investor holds.
type Portfolio struct {
	Investor   string          `json:"investor"`
	Holdings   []Holding       `json:"holdings"`
	TotalValue decimal.Decimal `json:"totalValue"`
}

// Service settles investments against the registry and keeps the
// immutable investment history.
type Service struct {
	investments domain.InvestmentRepository
	samples     domain.MarketDataRepository
	registry    *registry.Service
	audit       *auditlog.Service
	ids         domain.IDGenerator
	clock       domain.Clock
}

// NewService creates a new ledger service.
func NewService(
	investments domain.InvestmentRepository,
	samples domain.MarketDataRepository,
	reg *registry.Service,
	audit *auditlog.Service,
	ids domain.IDGenerator,
	clock domain.Clock,
) *Service {
	return &Service{
		investments: investments,
		samples:     samples,
		registry:    reg,
		audit:       audit,
		ids:         ids,
		clock:       clock,
	}
}

// RecordDirectInvestment buys shares at the company's current stock
// price. On success the shares are reserved, the investment is appended
// and a market sample is recorded. Every attempt produces exactly one
// log entry.
func (s *Service) RecordDirectInvestment(ctx context.Context, investor, companyID string, shares int64) (*domain.Investment, error) {
	company, err := s.registry.FindByID(ctx, companyID)
	if err != nil {
		s.audit.Error(ctx, fmt.Sprintf("investment failed: company %q not found", companyID), nil)
		return nil, err
	}

	if shares <= 0 {
		err := fmt.Errorf("%w: shares must be positive", domain.ErrValidation)
		s.audit.Error(ctx, fmt.Sprintf("investment in %s failed: %v", company.Name, err), nil)
		return nil, err
	}

	if shares > company.AvailableShares {
		err := fmt.Errorf("%w: %q has %d shares available, %d requested",
			domain.ErrInsufficientShares, companyID, company.AvailableShares, shares)
		s.audit.Error(ctx, fmt.Sprintf("investment in %s failed: %v", company.Name, err), nil)
		return nil, err
	}

	if err := s.registry.ReserveShares(ctx, companyID, shares); err != nil {
		s.audit.Error(ctx, fmt.Sprintf("investment in %s failed: %v", company.Name, err), nil)
		return nil, err
	}

	investment := &domain.Investment{
		ID:          s.ids.NewID(),
		Investor:    investor,
		CompanyID:   companyID,
		CompanyName: company.Name,
		Shares:      shares,
		TotalValue:  company.StockPrice.Mul(decimal.NewFromInt(shares)),
		Timestamp:   s.clock.Now(),
		Kind:        domain.InvestmentKindDirect,
	}
	if err := s.investments.Add(ctx, investment); err != nil {
		s.audit.Error(ctx, fmt.Sprintf("investment in %s failed: %v", company.Name, err), nil)
		return nil, err
	}

	// Shares sold so far, counting this purchase. company still holds
	// the pre-reservation availability.
	sold := company.TotalShares - (company.AvailableShares - shares)
	sample := &domain.MarketSample{
		CompanyID:   companyID,
		CompanyName: company.Name,
		Price:       company.StockPrice,
		SharesSold:  sold,
		Timestamp:   investment.Timestamp,
	}
	if err := s.samples.Add(ctx, sample); err != nil {
		s.audit.Error(ctx, fmt.Sprintf("investment in %s failed: %v", company.Name, err), nil)
		return nil, err
	}

	s.audit.Success(ctx,
		fmt.Sprintf("%s invested $%s in %s (%d shares)", investor, investment.TotalValue.String(), company.Name, shares),
		domain.InvestmentMade{Investment: *investment})
	return investment, nil
}

// RecordNegotiatedInvestment settles an accepted negotiation at its
// snapshotted terms. Availability is re-checked at settlement time
// since it may have shrunk while the negotiation was pending. The
// caller owns the log entry for the overall operation.
func (s *Service) RecordNegotiatedInvestment(ctx context.Context, negotiation *domain.Negotiation) (*domain.Investment, error) {
	company, err := s.registry.FindByID(ctx, negotiation.TargetCompanyID)
	if err != nil {
		return nil, err
	}
	if negotiation.Shares > company.AvailableShares {
		return nil, fmt.Errorf("%w: %q has %d shares available, %d requested",
			domain.ErrInsufficientShares, company.ID, company.AvailableShares, negotiation.Shares)
	}
	if err := s.registry.ReserveShares(ctx, company.ID, negotiation.Shares); err != nil {
		return nil, err
	}

	investment := &domain.Investment{
		ID:          s.ids.NewID(),
		Investor:    negotiation.InvestorID,
		CompanyID:   company.ID,
		CompanyName: company.Name,
		Shares:      negotiation.Shares,
		TotalValue:  negotiation.TotalValue,
		Timestamp:   s.clock.Now(),
		Kind:        domain.InvestmentKindNegotiated,
	}
	if err := s.investments.Add(ctx, investment); err != nil {
		return nil, err
	}
	return investment, nil
}

// All retrieves the full investment history in recording order.
func (s *Service) All(ctx context.Context) ([]*domain.Investment, error) {
	return s.investments.List(ctx)
}

// InvestmentsByCompany retrieves the investments made into one company.
func (s *Service) InvestmentsByCompany(ctx context.Context, companyID string) ([]*domain.Investment, error) {
	return s.investments.ListByCompany(ctx, companyID)
}

// TotalInvestedIn sums the value invested into one company.
func (s *Service) TotalInvestedIn(ctx context.Context, companyID string) (decimal.Decimal, error) {
	investments, err := s.investments.ListByCompany(ctx, companyID)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, inv := range investments {
		total = total.Add(inv.TotalValue)
	}
	return total, nil
}

// InvestmentsByInvestor retrieves one investor's investments.
func (s *Service) InvestmentsByInvestor(ctx context.Context, investor string) ([]*domain.Investment, error) {
	return s.investments.ListByInvestor(ctx, investor)
}

// TotalInvestmentValue sums the value of every investment ever made.
func (s *Service) TotalInvestmentValue(ctx context.Context) (decimal.Decimal, error) {
	investments, err := s.investments.List(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, inv := range investments {
		total = total.Add(inv.TotalValue)
	}
	return total, nil
}

// Portfolio aggregates an investor's investments into per-company
// holdings, ordered by first investment.
func (s *Service) Portfolio(ctx context.Context, investor string) (*Portfolio, error) {
	investments, err := s.investments.ListByInvestor(ctx, investor)
	if err != nil {
		return nil, err
	}

	index := make(map[string]int)
	portfolio := &Portfolio{Investor: investor, TotalValue: decimal.Zero}
	for _, inv := range investments {
		i, ok := index[inv.CompanyID]
		if !ok {
			i = len(portfolio.Holdings)
			index[inv.CompanyID] = i
			portfolio.Holdings = append(portfolio.Holdings, Holding{
				CompanyID:   inv.CompanyID,
				CompanyName: inv.CompanyName,
				TotalValue:  decimal.Zero,
			})
		}
		portfolio.Holdings[i].Shares += inv.Shares
		portfolio.Holdings[i].TotalValue = portfolio.Holdings[i].TotalValue.Add(inv.TotalValue)
		portfolio.TotalValue = portfolio.TotalValue.Add(inv.TotalValue)
	}
	return portfolio, nil
}
