package memory

import (
	"sync"

	"github.com/aimarketsim/backend/internal/domain"
)

// Store holds the whole engine state: companies, investments,
// negotiations, market samples and the transaction log. All repositories
// created from one Store share its lock, so a reader never observes a
// repository mid-update.
//
// Engine-level atomicity across repositories (e.g. reserve shares +
// append investment as one unit) is provided by the simulation engine's
// own writer lock, not here.
type Store struct {
	mu sync.RWMutex

	companies    map[string]*domain.Company
	companyOrder []string

	investments []*domain.Investment

	negotiations     map[string]*domain.Negotiation
	negotiationOrder []string

	logEntries []*domain.TransactionLogEntry // newest first

	samples []*domain.MarketSample
}

// NewStore creates an empty state container.
func NewStore() *Store {
	return &Store{
		companies:    make(map[string]*domain.Company),
		negotiations: make(map[string]*domain.Negotiation),
	}
}

// Copy helpers: repositories hand out copies so callers cannot mutate
// stored state except through Update.

func cloneCompany(c *domain.Company) *domain.Company {
	cc := *c
	return &cc
}

func cloneInvestment(i *domain.Investment) *domain.Investment {
	ci := *i
	return &ci
}

func cloneNegotiation(n *domain.Negotiation) *domain.Negotiation {
	cn := *n
	return &cn
}

func cloneLogEntry(e *domain.TransactionLogEntry) *domain.TransactionLogEntry {
	ce := *e
	return &ce
}

func cloneSample(s *domain.MarketSample) *domain.MarketSample {
	cs := *s
	return &cs
}
