package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LogType classifies the outcome a transaction log entry records.
type LogType string

const (
	LogInfo    LogType = "info"
	LogSuccess LogType = "success"
	LogError   LogType = "error"
)

// TransactionLogEntry is one record in the bounded, newest-first audit
// trail. Every engine operation appends exactly one entry per attempt,
// including failed ones.
type TransactionLogEntry struct {
	ID        string     `json:"id"`
	Type      LogType    `json:"type"`
	Message   string     `json:"message"`
	Details   LogDetails `json:"details,omitempty"`
	Timestamp time.Time  `json:"timestamp"`
}

// LogDetails is the closed set of structured payloads a log entry may
// carry, keyed by the originating operation.
type LogDetails interface {
	isLogDetails()
}

// CompanyRegistered is attached when a company joins the registry.
type CompanyRegistered struct {
	Company Company `json:"company"`
}

// PriceUpdated records an old-to-new stock price change.
type PriceUpdated struct {
	CompanyID string          `json:"companyId"`
	OldPrice  decimal.Decimal `json:"oldPrice"`
	NewPrice  decimal.Decimal `json:"newPrice"`
}

// InvestmentMade is attached when a share purchase settles.
type InvestmentMade struct {
	Investment Investment `json:"investment"`
}

// NegotiationProposed is attached when a negotiation is initiated.
type NegotiationProposed struct {
	Negotiation Negotiation `json:"negotiation"`
}

// NegotiationResolved is attached when a pending negotiation is
// accepted or rejected.
type NegotiationResolved struct {
	NegotiationID string `json:"negotiationId"`
	Accepted      bool   `json:"accepted"`
}

func (CompanyRegistered) isLogDetails()   {}
func (PriceUpdated) isLogDetails()        {}
func (InvestmentMade) isLogDetails()      {}
func (NegotiationProposed) isLogDetails() {}
func (NegotiationResolved) isLogDetails() {}
