// Package analytics derives read-only views over the market state and
// investment history.
package analytics

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/aimarketsim/backend/internal/domain"
)

// MarketCapSlice is one company's share of the market capitalization
// distribution.
type MarketCapSlice struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
	Color string          `json:"color"`
}

// TimelinePoint is the cumulative invested value as of one investment.
type TimelinePoint struct {
	Time            time.Time       `json:"time"`
	CumulativeValue decimal.Decimal `json:"cumulativeValue"`
}

// Holding aggregates one investor's position in a company.
type Holding struct {
	CompanyID   string          `json:"companyId"`
	CompanyName string          `json:"companyName"`
	Shares      int64           `json:"shares"`
	Value       decimal.Decimal `json:"value"`
}

// Service computes analytics views. All methods are pure reads.
type Service struct {
	companies   domain.CompanyRepository
	investments domain.InvestmentRepository
	samples     domain.MarketDataRepository
}

// NewService creates a new analytics service.
func NewService(companies domain.CompanyRepository, investments domain.InvestmentRepository, samples domain.MarketDataRepository) *Service {
	return &Service{
		companies:   companies,
		investments: investments,
		samples:     samples,
	}
}

// MarketCapDistribution returns one slice per company, in registration
// order.
func (s *Service) MarketCapDistribution(ctx context.Context) ([]MarketCapSlice, error) {
	companies, err := s.companies.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]MarketCapSlice, 0, len(companies))
	for _, c := range companies {
		out = append(out, MarketCapSlice{
			Name:  c.Name,
			Value: c.MarketCap,
			Color: c.Color,
		})
	}
	return out, nil
}

// InvestmentTimeline returns cumulative invested value over time, one
// point per investment, ordered by timestamp. Investments sharing a
// timestamp keep their recording order.
func (s *Service) InvestmentTimeline(ctx context.Context) ([]TimelinePoint, error) {
	investments, err := s.investments.List(ctx)
	if err != nil {
		return nil, err
	}

	ordered := make([]*domain.Investment, len(investments))
	copy(ordered, investments)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Timestamp.Before(ordered[j].Timestamp)
	})

	out := make([]TimelinePoint, 0, len(ordered))
	cumulative := decimal.Zero
	for _, inv := range ordered {
		cumulative = cumulative.Add(inv.TotalValue)
		out = append(out, TimelinePoint{Time: inv.Timestamp, CumulativeValue: cumulative})
	}
	return out, nil
}

// HoldingsOf groups an investor's investments by company, ordered by
// first investment. Company names come from the registry; a company
// that has since disappeared falls back to its raw ID.
func (s *Service) HoldingsOf(ctx context.Context, investor string) ([]Holding, error) {
	investments, err := s.investments.ListByInvestor(ctx, investor)
	if err != nil {
		return nil, err
	}

	index := make(map[string]int)
	var out []Holding
	for _, inv := range investments {
		i, ok := index[inv.CompanyID]
		if !ok {
			i = len(out)
			index[inv.CompanyID] = i
			name := inv.CompanyID
			if c, err := s.companies.GetByID(ctx, inv.CompanyID); err == nil {
				name = c.Name
			}
			out = append(out, Holding{CompanyID: inv.CompanyID, CompanyName: name, Value: decimal.Zero})
		}
		out[i].Shares += inv.Shares
		out[i].Value = out[i].Value.Add(inv.TotalValue)
	}
	return out, nil
}

// PriceHistory returns the market samples recorded for a company, in
// recording order.
func (s *Service) PriceHistory(ctx context.Context, companyID string) ([]*domain.MarketSample, error) {
	return s.samples.ListByCompany(ctx, companyID)
}
