// Package simulation assembles the services into a single engine with
// one consistent view of the market.
package simulation

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/aimarketsim/backend/internal/adapter/repository/memory"
	"github.com/aimarketsim/backend/internal/domain"
	"github.com/aimarketsim/backend/internal/usecase/analytics"
	"github.com/aimarketsim/backend/internal/usecase/auditlog"
	"github.com/aimarketsim/backend/internal/usecase/ledger"
	"github.com/aimarketsim/backend/internal/usecase/negotiation"
	"github.com/aimarketsim/backend/internal/usecase/registry"
	"github.com/aimarketsim/backend/internal/usecase/seeder"
)

// Config customizes an Engine. Zero values fall back to UUID IDs, the
// system clock and a discarding logger.
type Config struct {
	IDs    domain.IDGenerator
	Clock  domain.Clock
	Logger *slog.Logger
}

// Engine is the single entry point into the simulation. Mutating
// operations are serialized behind a writer lock so that composite
// operations such as negotiation settlement are observed atomically.
type Engine struct {
	mu sync.RWMutex

	registry     *registry.Service
	ledger       *ledger.Service
	negotiations *negotiation.Service
	audit        *auditlog.Service
	analytics    *analytics.Service
	seeder       *seeder.Seeder
}

// NewEngine builds an engine over a fresh in-memory store.
func NewEngine(cfg Config) *Engine {
	if cfg.IDs == nil {
		cfg.IDs = domain.UUIDGenerator{}
	}
	if cfg.Clock == nil {
		cfg.Clock = domain.SystemClock{}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	store := memory.NewStore()
	companies := memory.NewCompanyRepository(store)
	investments := memory.NewInvestmentRepository(store)
	negotiations := memory.NewNegotiationRepository(store)
	logEntries := memory.NewTransactionLogRepository(store)
	samples := memory.NewMarketDataRepository(store)

	audit := auditlog.NewService(logEntries, cfg.IDs, cfg.Clock, cfg.Logger)
	reg := registry.NewService(companies, audit)
	led := ledger.NewService(investments, samples, reg, audit, cfg.IDs, cfg.Clock)
	neg := negotiation.NewService(negotiations, led, reg, audit, cfg.IDs, cfg.Clock)

	return &Engine{
		registry:     reg,
		ledger:       led,
		negotiations: neg,
		audit:        audit,
		analytics:    analytics.NewService(companies, investments, samples),
		seeder:       seeder.NewSeeder(companies),
	}
}

// Seed installs the launch companies. Idempotent and silent in the
// transaction log.
func (e *Engine) Seed(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.seeder.Seed(ctx)
}

// RegisterCompany adds a new company to the market.
func (e *Engine) RegisterCompany(ctx context.Context, input registry.RegisterCompanyInput) (*domain.Company, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.registry.RegisterCompany(ctx, input)
}

// UpdateStockPrice changes a company's stock price.
func (e *Engine) UpdateStockPrice(ctx context.Context, companyID string, newPrice decimal.Decimal) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.registry.UpdateStockPrice(ctx, companyID, newPrice)
}

// MakeDirectInvestment buys shares at the current stock price.
func (e *Engine) MakeDirectInvestment(ctx context.Context, investor, companyID string, shares int64) (*domain.Investment, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ledger.RecordDirectInvestment(ctx, investor, companyID, shares)
}

// InitiateNegotiation proposes a negotiated purchase.
func (e *Engine) InitiateNegotiation(ctx context.Context, investorID, companyName, targetCompanyID string, shares int64) (*domain.Negotiation, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.negotiations.Initiate(ctx, investorID, companyName, targetCompanyID, shares)
}

// RespondToNegotiation accepts or rejects a pending negotiation.
func (e *Engine) RespondToNegotiation(ctx context.Context, negotiationID string, accept bool) (*domain.Negotiation, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.negotiations.Respond(ctx, negotiationID, accept)
}

// LogTransaction appends a free-form entry to the transaction log.
func (e *Engine) LogTransaction(ctx context.Context, typ domain.LogType, message string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.audit.Append(ctx, typ, message, nil)
}

// FindCompany retrieves one company.
func (e *Engine) FindCompany(ctx context.Context, companyID string) (*domain.Company, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.registry.FindByID(ctx, companyID)
}

// Companies retrieves all companies in registration order.
func (e *Engine) Companies(ctx context.Context) ([]*domain.Company, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.registry.List(ctx)
}

// Investments retrieves the full investment history.
func (e *Engine) Investments(ctx context.Context) ([]*domain.Investment, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.ledger.All(ctx)
}

// InvestmentsByCompany retrieves the investments made into one company.
func (e *Engine) InvestmentsByCompany(ctx context.Context, companyID string) ([]*domain.Investment, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.ledger.InvestmentsByCompany(ctx, companyID)
}

// TotalInvestedIn sums the value invested into one company.
func (e *Engine) TotalInvestedIn(ctx context.Context, companyID string) (decimal.Decimal, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.ledger.TotalInvestedIn(ctx, companyID)
}

// InvestmentsByInvestor retrieves one investor's investments.
func (e *Engine) InvestmentsByInvestor(ctx context.Context, investor string) ([]*domain.Investment, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.ledger.InvestmentsByInvestor(ctx, investor)
}

// TotalInvestmentValue sums the value of every investment ever made.
func (e *Engine) TotalInvestmentValue(ctx context.Context) (decimal.Decimal, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.ledger.TotalInvestmentValue(ctx)
}

// Portfolio aggregates one investor's holdings.
func (e *Engine) Portfolio(ctx context.Context, investor string) (*ledger.Portfolio, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.ledger.Portfolio(ctx, investor)
}

// PendingNegotiations retrieves negotiations awaiting a response.
func (e *Engine) PendingNegotiations(ctx context.Context) ([]*domain.Negotiation, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.negotiations.Pending(ctx)
}

// TransactionLog retrieves log entries newest-first, optionally
// filtered by type.
func (e *Engine) TransactionLog(ctx context.Context, filter string) ([]*domain.TransactionLogEntry, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.audit.Entries(ctx, filter)
}

// MarketCapDistribution returns the market cap of each company.
func (e *Engine) MarketCapDistribution(ctx context.Context) ([]analytics.MarketCapSlice, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.analytics.MarketCapDistribution(ctx)
}

// InvestmentTimeline returns cumulative invested value over time.
func (e *Engine) InvestmentTimeline(ctx context.Context) ([]analytics.TimelinePoint, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.analytics.InvestmentTimeline(ctx)
}

// HoldingsOf groups an investor's investments by company.
func (e *Engine) HoldingsOf(ctx context.Context, investor string) ([]analytics.Holding, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.analytics.HoldingsOf(ctx, investor)
}

// PriceHistory returns the market samples recorded for a company.
func (e *Engine) PriceHistory(ctx context.Context, companyID string) ([]*domain.MarketSample, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.analytics.PriceHistory(ctx, companyID)
}

// SubscribeLog returns a channel receiving future transaction log
// entries.
func (e *Engine) SubscribeLog() <-chan domain.TransactionLogEntry {
	return e.audit.Subscribe()
}
