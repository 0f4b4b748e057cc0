package domain

import "context"

// CompanyRepository defines the interface for company state operations.
// Implementations must preserve insertion order in List, since analytics
// views report companies in registration order.
type CompanyRepository interface {
	// Create stores a new company. Fails if the ID is already taken.
	Create(ctx context.Context, company *Company) error

	// GetByID retrieves a company by its ID. Returns an error wrapping
	// ErrNotFound if the ID is unknown.
	GetByID(ctx context.Context, id string) (*Company, error)

	// Update replaces the stored company with the same ID.
	Update(ctx context.Context, company *Company) error

	// List retrieves all companies in insertion order.
	List(ctx context.Context) ([]*Company, error)
}

// InvestmentRepository defines the interface for the append-only ledger.
type InvestmentRepository interface {
	// Add appends an investment to the ledger.
	Add(ctx context.Context, investment *Investment) error

	// List retrieves all investments in insertion order.
	List(ctx context.Context) ([]*Investment, error)

	// ListByCompany retrieves the investments referencing a company.
	ListByCompany(ctx context.Context, companyID string) ([]*Investment, error)

	// ListByInvestor retrieves the investments made by an investor.
	ListByInvestor(ctx context.Context, investor string) ([]*Investment, error)
}

// NegotiationRepository defines the interface for negotiation state.
type NegotiationRepository interface {
	// Add stores a new negotiation.
	Add(ctx context.Context, negotiation *Negotiation) error

	// GetByID retrieves a negotiation by its ID. Returns an error
	// wrapping ErrNotFound if the ID is unknown.
	GetByID(ctx context.Context, id string) (*Negotiation, error)

	// Update replaces the stored negotiation with the same ID.
	Update(ctx context.Context, negotiation *Negotiation) error

	// ListByStatus retrieves negotiations in the given status, in
	// insertion order.
	ListByStatus(ctx context.Context, status NegotiationStatus) ([]*Negotiation, error)
}

// TransactionLogRepository defines the interface for the audit trail.
// Entries are kept newest-first.
type TransactionLogRepository interface {
	// Prepend inserts an entry at the head of the log.
	Prepend(ctx context.Context, entry *TransactionLogEntry) error

	// List retrieves all entries, newest first.
	List(ctx context.Context) ([]*TransactionLogEntry, error)

	// Truncate drops entries from the tail until at most max remain.
	Truncate(ctx context.Context, max int) error
}

// MarketDataRepository defines the interface for recorded market samples.
type MarketDataRepository interface {
	// Add appends a market sample.
	Add(ctx context.Context, sample *MarketSample) error

	// ListByCompany retrieves the samples for a company in recording order.
	ListByCompany(ctx context.Context, companyID string) ([]*MarketSample, error)
}
