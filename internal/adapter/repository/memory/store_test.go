package memory

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aimarketsim/backend/internal/domain"
)

func newTestCompany(name, symbol string) *domain.Company {
	c := &domain.Company{
		ID:              domain.CompanyID(name),
		Name:            name,
		Symbol:          symbol,
		StockPrice:      decimal.NewFromInt(100),
		TotalShares:     1000,
		AvailableShares: 1000,
	}
	c.RecalculateMarketCap()
	return c
}

func TestCompanyRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewCompanyRepository(NewStore())

	t.Run("create and get", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, newTestCompany("NVIDIA", "NVDA")))

		got, err := repo.GetByID(ctx, "nvidia")
		require.NoError(t, err)
		assert.Equal(t, "NVIDIA", got.Name)
	})

	t.Run("duplicate id rejected", func(t *testing.T) {
		err := repo.Create(ctx, newTestCompany("NVIDIA", "NVDA2"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrValidation))
	})

	t.Run("get missing returns not found", func(t *testing.T) {
		_, err := repo.GetByID(ctx, "ghost")
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrNotFound))
	})

	t.Run("update missing returns not found", func(t *testing.T) {
		err := repo.Update(ctx, newTestCompany("Ghost", "GST"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrNotFound))
	})

	t.Run("list preserves insertion order", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, newTestCompany("OpenAI", "OPENAI")))
		require.NoError(t, repo.Create(ctx, newTestCompany("Meta", "META")))

		companies, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, companies, 3)
		assert.Equal(t, "nvidia", companies[0].ID)
		assert.Equal(t, "openai", companies[1].ID)
		assert.Equal(t, "meta", companies[2].ID)
	})

	t.Run("reads return copies", func(t *testing.T) {
		got, err := repo.GetByID(ctx, "nvidia")
		require.NoError(t, err)
		got.AvailableShares = 0

		again, err := repo.GetByID(ctx, "nvidia")
		require.NoError(t, err)
		assert.Equal(t, int64(1000), again.AvailableShares)
	})
}

func TestInvestmentRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewInvestmentRepository(NewStore())

	add := func(investor, companyID string, shares int64) {
		t.Helper()
		require.NoError(t, repo.Add(ctx, &domain.Investment{
			ID:         fmt.Sprintf("inv-%s-%s-%d", investor, companyID, shares),
			Investor:   investor,
			CompanyID:  companyID,
			Shares:     shares,
			TotalValue: decimal.NewFromInt(shares * 10),
			Timestamp:  time.Now(),
			Kind:       domain.InvestmentKindDirect,
		}))
	}

	add("alice", "nvidia", 10)
	add("bob", "nvidia", 20)
	add("alice", "meta", 30)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	byCompany, err := repo.ListByCompany(ctx, "nvidia")
	require.NoError(t, err)
	require.Len(t, byCompany, 2)
	assert.Equal(t, int64(10), byCompany[0].Shares)
	assert.Equal(t, int64(20), byCompany[1].Shares)

	byInvestor, err := repo.ListByInvestor(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, byInvestor, 2)
	assert.Equal(t, "nvidia", byInvestor[0].CompanyID)
	assert.Equal(t, "meta", byInvestor[1].CompanyID)
}

func TestNegotiationRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewNegotiationRepository(NewStore())

	add := func(id string, status domain.NegotiationStatus) {
		t.Helper()
		require.NoError(t, repo.Add(ctx, &domain.Negotiation{
			ID:              id,
			InvestorID:      "investor-1",
			TargetCompanyID: "meta",
			Shares:          10,
			PricePerShare:   decimal.NewFromInt(2000),
			TotalValue:      decimal.NewFromInt(20000),
			Status:          status,
		}))
	}

	add("neg-1", domain.NegotiationPending)
	add("neg-2", domain.NegotiationAccepted)
	add("neg-3", domain.NegotiationPending)

	t.Run("duplicate id rejected", func(t *testing.T) {
		err := repo.Add(ctx, &domain.Negotiation{ID: "neg-1", Status: domain.NegotiationPending})
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrValidation))
	})

	t.Run("list by status in insertion order", func(t *testing.T) {
		pending, err := repo.ListByStatus(ctx, domain.NegotiationPending)
		require.NoError(t, err)
		require.Len(t, pending, 2)
		assert.Equal(t, "neg-1", pending[0].ID)
		assert.Equal(t, "neg-3", pending[1].ID)
	})

	t.Run("update replaces stored state", func(t *testing.T) {
		n, err := repo.GetByID(ctx, "neg-1")
		require.NoError(t, err)
		require.NoError(t, n.Resolve(false))
		require.NoError(t, repo.Update(ctx, n))

		got, err := repo.GetByID(ctx, "neg-1")
		require.NoError(t, err)
		assert.Equal(t, domain.NegotiationRejected, got.Status)
	})

	t.Run("missing negotiation returns not found", func(t *testing.T) {
		_, err := repo.GetByID(ctx, "ghost")
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrNotFound))
	})
}

func TestTransactionLogRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewTransactionLogRepository(NewStore())

	for i := 1; i <= 5; i++ {
		require.NoError(t, repo.Prepend(ctx, &domain.TransactionLogEntry{
			ID:      fmt.Sprintf("entry-%d", i),
			Type:    domain.LogInfo,
			Message: fmt.Sprintf("message %d", i),
		}))
	}

	t.Run("list is newest first", func(t *testing.T) {
		entries, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, entries, 5)
		assert.Equal(t, "entry-5", entries[0].ID)
		assert.Equal(t, "entry-1", entries[4].ID)
	})

	t.Run("truncate drops oldest", func(t *testing.T) {
		require.NoError(t, repo.Truncate(ctx, 3))
		entries, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, entries, 3)
		assert.Equal(t, "entry-5", entries[0].ID)
		assert.Equal(t, "entry-3", entries[2].ID)
	})

	t.Run("truncate above length is a no-op", func(t *testing.T) {
		require.NoError(t, repo.Truncate(ctx, 50))
		entries, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Len(t, entries, 3)
	})
}

func TestMarketDataRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMarketDataRepository(NewStore())

	for i := 1; i <= 3; i++ {
		require.NoError(t, repo.Add(ctx, &domain.MarketSample{
			CompanyID:  "nvidia",
			Price:      decimal.NewFromInt(int64(1000 + i)),
			SharesSold: int64(i * 10),
		}))
	}
	require.NoError(t, repo.Add(ctx, &domain.MarketSample{CompanyID: "meta", Price: decimal.NewFromInt(2000)}))

	samples, err := repo.ListByCompany(ctx, "nvidia")
	require.NoError(t, err)
	require.Len(t, samples, 3)
	assert.True(t, samples[0].Price.Equal(decimal.NewFromInt(1001)))
	assert.True(t, samples[2].Price.Equal(decimal.NewFromInt(1003)))
}
