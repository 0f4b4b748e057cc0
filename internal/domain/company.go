package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Company represents a registered AI company in the domain layer.
// The registry is the sole owner of Company records; other entities
// reference companies by ID only.
type Company struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Symbol          string          `json:"symbol"`
	Description     string          `json:"description"`
	Address         string          `json:"address"`
	StockPrice      decimal.Decimal `json:"stockPrice"`
	TotalShares     int64           `json:"totalShares"`
	AvailableShares int64           `json:"availableShares"`
	MarketCap       decimal.Decimal `json:"marketCap"`
	Color           string          `json:"color"`
}

// CompanyID derives the registry identifier from a company name:
// lowercased, with whitespace runs replaced by hyphens. The ID is fixed
// at registration and never changes afterwards.
func CompanyID(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), "-"))
}

// Validate ensures the company adheres to domain rules.
// Returns an error wrapping ErrValidation if any rule is violated.
func (c *Company) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: company name cannot be empty", ErrValidation)
	}
	if strings.TrimSpace(c.Symbol) == "" {
		return fmt.Errorf("%w: company symbol cannot be empty", ErrValidation)
	}
	if !c.StockPrice.IsPositive() {
		return fmt.Errorf("%w: stock price must be positive", ErrValidation)
	}
	if c.TotalShares <= 0 {
		return fmt.Errorf("%w: total shares must be positive", ErrValidation)
	}
	if c.AvailableShares < 0 || c.AvailableShares > c.TotalShares {
		return fmt.Errorf("%w: available shares must be between 0 and total shares", ErrValidation)
	}
	return nil
}

// RecalculateMarketCap recomputes MarketCap from the current stock
// price and total shares. Must be called after every price or
// total-shares change to keep marketCap == stockPrice * totalShares.
func (c *Company) RecalculateMarketCap() {
	c.MarketCap = c.StockPrice.Mul(decimal.NewFromInt(c.TotalShares))
}
