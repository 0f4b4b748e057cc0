package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// NegotiationStatus is the lifecycle state of a proposed investment.
// pending is the initial state; accepted and rejected are terminal.
type NegotiationStatus string

const (
	NegotiationPending  NegotiationStatus = "pending"
	NegotiationAccepted NegotiationStatus = "accepted"
	NegotiationRejected NegotiationStatus = "rejected"
)

// Negotiation represents a proposed-but-unconfirmed investment.
// PricePerShare is snapshotted from the target company at proposal time
// and never changes, even if the company's price later moves.
type Negotiation struct {
	ID                string            `json:"id"`
	InvestorID        string            `json:"investorId"`
	CompanyName       string            `json:"companyName"`
	TargetCompanyID   string            `json:"targetCompanyId"`
	TargetCompanyName string            `json:"targetCompanyName"`
	Shares            int64             `json:"shares"`
	PricePerShare     decimal.Decimal   `json:"pricePerShare"`
	TotalValue        decimal.Decimal   `json:"totalValue"`
	Status            NegotiationStatus `json:"status"`
	Timestamp         time.Time         `json:"timestamp"`
}

// Resolve transitions the negotiation out of pending exactly once.
// Returns an error wrapping ErrInvalidState if the negotiation has
// already been resolved.
func (n *Negotiation) Resolve(accept bool) error {
	if n.Status != NegotiationPending {
		return fmt.Errorf("%w: negotiation %s is already %s", ErrInvalidState, n.ID, n.Status)
	}
	if accept {
		n.Status = NegotiationAccepted
	} else {
		n.Status = NegotiationRejected
	}
	return nil
}
