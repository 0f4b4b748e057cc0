package simulation

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aimarketsim/backend/internal/domain"
	"github.com/aimarketsim/backend/internal/usecase/auditlog"
	"github.com/aimarketsim/backend/internal/usecase/registry"
)

type seqIDs struct {
	mu sync.Mutex
	n  int
}

func (s *seqIDs) NewID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return fmt.Sprintf("id-%d", s.n)
}

type stepClock struct {
	mu   sync.Mutex
	t    time.Time
	step time.Duration
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(c.step)
	return c.t
}

func newTestEngine() *Engine {
	return NewEngine(Config{
		IDs:   &seqIDs{},
		Clock: &stepClock{t: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC), step: time.Second},
	})
}

func seededEngine(t *testing.T) *Engine {
	t.Helper()
	e := newTestEngine()
	require.NoError(t, e.Seed(context.Background()))
	return e
}

func TestSeededMarket(t *testing.T) {
	ctx := context.Background()
	e := seededEngine(t)

	companies, err := e.Companies(ctx)
	require.NoError(t, err)
	require.Len(t, companies, 3)
	assert.Equal(t, "nvidia", companies[0].ID)
	assert.Equal(t, "openai", companies[1].ID)
	assert.Equal(t, "meta", companies[2].ID)

	// Seeding is silent in the transaction log.
	entries, err := e.TransactionLog(ctx, auditlog.FilterAll)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDirectInvestmentScenario(t *testing.T) {
	ctx := context.Background()
	e := seededEngine(t)

	investment, err := e.MakeDirectInvestment(ctx, "alice", "nvidia", 100)
	require.NoError(t, err)
	assert.True(t, investment.TotalValue.Equal(decimal.NewFromInt(100000)))

	nvidia, err := e.FindCompany(ctx, "nvidia")
	require.NoError(t, err)
	assert.Equal(t, int64(999900), nvidia.AvailableShares)
	assert.Equal(t, int64(1000000), nvidia.TotalShares)
	assert.True(t, nvidia.MarketCap.Equal(decimal.NewFromInt(1000000000)))

	total, err := e.TotalInvestedIn(ctx, "nvidia")
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromInt(100000)))

	history, err := e.PriceHistory(ctx, "nvidia")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, int64(100), history[0].SharesSold)

	entries, err := e.TransactionLog(ctx, auditlog.FilterAll)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.LogSuccess, entries[0].Type)
}

func TestNegotiationRoundTrip(t *testing.T) {
	ctx := context.Background()
	e := seededEngine(t)

	proposed, err := e.InitiateNegotiation(ctx, "investor-1", "Stark Industries", "meta", 50)
	require.NoError(t, err)
	assert.True(t, proposed.PricePerShare.Equal(decimal.NewFromInt(2000)))
	assert.True(t, proposed.TotalValue.Equal(decimal.NewFromInt(100000)))

	// Price moves while pending; the snapshot holds.
	require.NoError(t, e.UpdateStockPrice(ctx, "meta", decimal.NewFromInt(3000)))

	resolved, err := e.RespondToNegotiation(ctx, proposed.ID, true)
	require.NoError(t, err)
	assert.Equal(t, domain.NegotiationAccepted, resolved.Status)

	investments, err := e.InvestmentsByInvestor(ctx, "investor-1")
	require.NoError(t, err)
	require.Len(t, investments, 1)
	assert.Equal(t, domain.InvestmentKindNegotiated, investments[0].Kind)
	assert.True(t, investments[0].TotalValue.Equal(decimal.NewFromInt(100000)))

	meta, err := e.FindCompany(ctx, "meta")
	require.NoError(t, err)
	assert.Equal(t, int64(799950), meta.AvailableShares)

	// Negotiated purchases leave no market sample.
	history, err := e.PriceHistory(ctx, "meta")
	require.NoError(t, err)
	assert.Empty(t, history)

	pending, err := e.PendingNegotiations(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestOverSubscriptionIsAtomic(t *testing.T) {
	ctx := context.Background()
	e := seededEngine(t)

	_, err := e.MakeDirectInvestment(ctx, "whale", "nvidia", 1000001)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientShares))

	nvidia, err := e.FindCompany(ctx, "nvidia")
	require.NoError(t, err)
	assert.Equal(t, int64(1000000), nvidia.AvailableShares)

	investments, err := e.Investments(ctx)
	require.NoError(t, err)
	assert.Empty(t, investments)

	// The failed attempt still logs exactly once.
	entries, err := e.TransactionLog(ctx, auditlog.FilterAll)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.LogError, entries[0].Type)
}

func TestShareConservation(t *testing.T) {
	ctx := context.Background()
	e := seededEngine(t)

	_, err := e.MakeDirectInvestment(ctx, "alice", "nvidia", 300)
	require.NoError(t, err)
	_, err = e.MakeDirectInvestment(ctx, "bob", "nvidia", 200)
	require.NoError(t, err)

	proposed, err := e.InitiateNegotiation(ctx, "carol", "Carol Capital", "nvidia", 100)
	require.NoError(t, err)
	_, err = e.RespondToNegotiation(ctx, proposed.ID, true)
	require.NoError(t, err)

	nvidia, err := e.FindCompany(ctx, "nvidia")
	require.NoError(t, err)

	investments, err := e.InvestmentsByCompany(ctx, "nvidia")
	require.NoError(t, err)
	var sold int64
	for _, inv := range investments {
		sold += inv.Shares
	}
	assert.Equal(t, nvidia.TotalShares, nvidia.AvailableShares+sold)
}

func TestTransactionLogBound(t *testing.T) {
	ctx := context.Background()
	e := seededEngine(t)

	for i := 0; i < auditlog.Capacity+20; i++ {
		_, err := e.MakeDirectInvestment(ctx, fmt.Sprintf("investor-%d", i), "nvidia", 1)
		require.NoError(t, err)
	}

	entries, err := e.TransactionLog(ctx, auditlog.FilterAll)
	require.NoError(t, err)
	require.Len(t, entries, auditlog.Capacity)

	// Newest first: the last purchase heads the log.
	details, ok := entries[0].Details.(domain.InvestmentMade)
	require.True(t, ok)
	assert.Equal(t, fmt.Sprintf("investor-%d", auditlog.Capacity+19), details.Investment.Investor)
}

func TestRegisterCompanyThroughEngine(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine()

	company, err := e.RegisterCompany(ctx, registry.RegisterCompanyInput{
		Name:        "Stark Industries",
		Symbol:      "STRK",
		StockPrice:  decimal.NewFromInt(500),
		TotalShares: 10000,
		Color:       "#aa0000",
	})
	require.NoError(t, err)
	assert.Equal(t, "stark-industries", company.ID)

	_, err = e.RegisterCompany(ctx, registry.RegisterCompanyInput{
		Name:        "Stark   Industries",
		Symbol:      "STRK2",
		StockPrice:  decimal.NewFromInt(100),
		TotalShares: 100,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestMarketCapDistributionThroughEngine(t *testing.T) {
	ctx := context.Background()
	e := seededEngine(t)

	slices, err := e.MarketCapDistribution(ctx)
	require.NoError(t, err)
	require.Len(t, slices, 3)
	assert.Equal(t, "NVIDIA", slices[0].Name)
	assert.True(t, slices[0].Value.Equal(decimal.NewFromInt(1000000000)))
	assert.True(t, slices[1].Value.Equal(decimal.NewFromInt(2500000000)))
	assert.True(t, slices[2].Value.Equal(decimal.NewFromInt(1600000000)))
}

func TestConcurrentInvestors(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine()

	_, err := e.RegisterCompany(ctx, registry.RegisterCompanyInput{
		Name:        "Tiny Labs",
		Symbol:      "TINY",
		StockPrice:  decimal.NewFromInt(10),
		TotalShares: 100,
	})
	require.NoError(t, err)

	const investors = 150
	var wg sync.WaitGroup
	for i := 0; i < investors; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _ = e.MakeDirectInvestment(ctx, fmt.Sprintf("investor-%d", i), "tiny-labs", 1)
		}(i)
	}
	wg.Wait()

	company, err := e.FindCompany(ctx, "tiny-labs")
	require.NoError(t, err)
	assert.Equal(t, int64(0), company.AvailableShares)

	investments, err := e.InvestmentsByCompany(ctx, "tiny-labs")
	require.NoError(t, err)
	assert.Len(t, investments, 100)
}

func TestSubscribeLogThroughEngine(t *testing.T) {
	ctx := context.Background()
	e := seededEngine(t)

	ch := e.SubscribeLog()
	e.LogTransaction(ctx, domain.LogInfo, "market opened")

	select {
	case entry := <-ch:
		assert.Equal(t, "market opened", entry.Message)
	case <-time.After(time.Second):
		t.Fatal("expected a log entry on the subscription channel")
	}
}
