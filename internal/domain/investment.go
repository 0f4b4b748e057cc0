package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// InvestmentKind distinguishes how a share purchase was executed.
type InvestmentKind string

const (
	InvestmentKindDirect     InvestmentKind = "direct"
	InvestmentKindNegotiated InvestmentKind = "negotiated"
)

// Investment represents a completed share purchase. Ledger entries are
// append-only and immutable once created.
type Investment struct {
	ID          string          `json:"id"`
	Investor    string          `json:"investor"`
	CompanyID   string          `json:"companyId"`
	CompanyName string          `json:"companyName"`
	Shares      int64           `json:"shares"`
	TotalValue  decimal.Decimal `json:"totalValue"`
	Timestamp   time.Time       `json:"timestamp"`
	Kind        InvestmentKind  `json:"kind"`
}

// Validate ensures the investment adheres to domain rules.
func (i *Investment) Validate() error {
	if i.Shares <= 0 {
		return fmt.Errorf("%w: shares must be positive", ErrValidation)
	}
	if i.Kind != InvestmentKindDirect && i.Kind != InvestmentKindNegotiated {
		return fmt.Errorf("%w: investment kind must be direct or negotiated", ErrValidation)
	}
	return nil
}

// MarketSample is a price/volume data point recorded when shares change
// hands, used by the price-history analytics view.
type MarketSample struct {
	CompanyID   string          `json:"companyId"`
	CompanyName string          `json:"companyName"`
	Price       decimal.Decimal `json:"price"`
	SharesSold  int64           `json:"sharesSold"`
	Timestamp   time.Time       `json:"timestamp"`
}
