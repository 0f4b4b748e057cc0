// Package negotiation drives the propose/respond lifecycle for
// negotiated share purchases.
package negotiation

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/aimarketsim/backend/internal/domain"
	"github.com/aimarketsim/backend/internal/usecase/auditlog"
	"github.com/aimarketsim/backend/internal/usecase/ledger"
	"github.com/aimarketsim/backend/internal/usecase/registry"
)

// Service manages negotiation proposals and their resolution.
type Service struct {
	negotiations domain.NegotiationRepository
	ledger       *ledger.Service
	registry     *registry.Service
	audit        *auditlog.Service
	ids          domain.IDGenerator
	clock        domain.Clock
}

// NewService creates a new negotiation service.
func NewService(
	negotiations domain.NegotiationRepository,
	led *ledger.Service,
	reg *registry.Service,
	audit *auditlog.Service,
	ids domain.IDGenerator,
	clock domain.Clock,
) *Service {
	return &Service{
		negotiations: negotiations,
		ledger:       led,
		registry:     reg,
		audit:        audit,
		ids:          ids,
		clock:        clock,
	}
}

// Initiate proposes a negotiated purchase. The price per share is
// snapshotted from the target's current stock price and holds for the
// lifetime of the negotiation. Shares are not reserved until the
// proposal is accepted, so the availability check here is advisory.
func (s *Service) Initiate(ctx context.Context, investorID, companyName, targetCompanyID string, shares int64) (*domain.Negotiation, error) {
	target, err := s.registry.FindByID(ctx, targetCompanyID)
	if err != nil {
		s.audit.Error(ctx, fmt.Sprintf("negotiation failed: company %q not found", targetCompanyID), nil)
		return nil, err
	}

	if shares <= 0 {
		err := fmt.Errorf("%w: shares must be positive", domain.ErrValidation)
		s.audit.Error(ctx, fmt.Sprintf("negotiation with %s failed: %v", target.Name, err), nil)
		return nil, err
	}

	if shares > target.AvailableShares {
		err := fmt.Errorf("%w: %q has %d shares available, %d requested",
			domain.ErrInsufficientShares, targetCompanyID, target.AvailableShares, shares)
		s.audit.Error(ctx, fmt.Sprintf("negotiation with %s failed: %v", target.Name, err), nil)
		return nil, err
	}

	negotiation := &domain.Negotiation{
		ID:                s.ids.NewID(),
		InvestorID:        investorID,
		CompanyName:       companyName,
		TargetCompanyID:   targetCompanyID,
		TargetCompanyName: target.Name,
		Shares:            shares,
		PricePerShare:     target.StockPrice,
		TotalValue:        target.StockPrice.Mul(decimal.NewFromInt(shares)),
		Status:            domain.NegotiationPending,
		Timestamp:         s.clock.Now(),
	}
	if err := s.negotiations.Add(ctx, negotiation); err != nil {
		s.audit.Error(ctx, fmt.Sprintf("negotiation with %s failed: %v", target.Name, err), nil)
		return nil, err
	}

	s.audit.Info(ctx,
		fmt.Sprintf("%s proposed buying %d shares of %s for $%s", companyName, shares, target.Name, negotiation.TotalValue.String()),
		domain.NegotiationProposed{Negotiation: *negotiation})
	return negotiation, nil
}

// Respond accepts or rejects a pending negotiation. Accepting settles
// the purchase at the snapshotted terms; if settlement fails the
// negotiation stays pending so it can be retried or rejected.
func (s *Service) Respond(ctx context.Context, negotiationID string, accept bool) (*domain.Negotiation, error) {
	negotiation, err := s.negotiations.GetByID(ctx, negotiationID)
	if err != nil {
		s.audit.Error(ctx, fmt.Sprintf("negotiation response failed: negotiation %q not found", negotiationID), nil)
		return nil, err
	}

	if negotiation.Status != domain.NegotiationPending {
		err := fmt.Errorf("%w: negotiation %q already %s", domain.ErrInvalidState, negotiationID, negotiation.Status)
		s.audit.Error(ctx, fmt.Sprintf("negotiation response failed: %v", err), nil)
		return nil, err
	}

	if !accept {
		if err := negotiation.Resolve(false); err != nil {
			s.audit.Error(ctx, fmt.Sprintf("negotiation response failed: %v", err), nil)
			return nil, err
		}
		if err := s.negotiations.Update(ctx, negotiation); err != nil {
			s.audit.Error(ctx, fmt.Sprintf("negotiation response failed: %v", err), nil)
			return nil, err
		}
		s.audit.Info(ctx,
			fmt.Sprintf("%s rejected the offer from %s", negotiation.TargetCompanyName, negotiation.CompanyName),
			domain.NegotiationResolved{NegotiationID: negotiationID, Accepted: false})
		return negotiation, nil
	}

	if _, err := s.ledger.RecordNegotiatedInvestment(ctx, negotiation); err != nil {
		s.audit.Error(ctx, fmt.Sprintf("negotiation settlement for %s failed: %v", negotiation.TargetCompanyName, err), nil)
		return nil, err
	}
	if err := negotiation.Resolve(true); err != nil {
		s.audit.Error(ctx, fmt.Sprintf("negotiation response failed: %v", err), nil)
		return nil, err
	}
	if err := s.negotiations.Update(ctx, negotiation); err != nil {
		s.audit.Error(ctx, fmt.Sprintf("negotiation response failed: %v", err), nil)
		return nil, err
	}

	s.audit.Success(ctx,
		fmt.Sprintf("%s accepted the offer: %s bought %d shares for $%s",
			negotiation.TargetCompanyName, negotiation.CompanyName, negotiation.Shares, negotiation.TotalValue.String()),
		domain.NegotiationResolved{NegotiationID: negotiationID, Accepted: true})
	return negotiation, nil
}

// Pending retrieves negotiations awaiting a response, in proposal order.
func (s *Service) Pending(ctx context.Context) ([]*domain.Negotiation, error) {
	return s.negotiations.ListByStatus(ctx, domain.NegotiationPending)
}
