package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfwatch/backend/internal/domain"
)

func sampleRecord(id string) *domain.ProductRecord {
	observed := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	return &domain.ProductRecord{
		ID:           id,
		Name:         "Anchor Blue Milk",
		Size:         "2L",
		CurrentPrice: 6.49,
		Category:     []string{"milk"},
		SourceSite:   "paknsave.co.nz",
		PriceHistory: []domain.DatedPrice{{Date: observed, Price: 6.49}},
		LastUpdated:  observed,
		LastChecked:  observed,
	}
}

func TestMemoryStore_GetNotFound(t *testing.T) {
	s := NewMemoryStore()

	_, err := s.Get(context.Background(), "paknsave.co.nz", "P404")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestMemoryStore_UpsertAndGet(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Upsert(ctx, sampleRecord("P1")))

	got, err := s.Get(ctx, "paknsave.co.nz", "P1")
	require.NoError(t, err)
	assert.Equal(t, "Anchor Blue Milk", got.Name)
	assert.Equal(t, 6.49, got.CurrentPrice)
	assert.Len(t, got.PriceHistory, 1)

	// Mutating the returned record must not leak into the store
	got.PriceHistory = append(got.PriceHistory, domain.DatedPrice{Price: 1.00})
	got.Category[0] = "changed"

	again, err := s.Get(ctx, "paknsave.co.nz", "P1")
	require.NoError(t, err)
	assert.Len(t, again.PriceHistory, 1)
	assert.Equal(t, []string{"milk"}, again.Category)
}

func TestMemoryStore_UpsertReplaces(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Upsert(ctx, sampleRecord("P1")))

	updated := sampleRecord("P1")
	updated.CurrentPrice = 7.99
	require.NoError(t, s.Upsert(ctx, updated))

	got, err := s.Get(ctx, "paknsave.co.nz", "P1")
	require.NoError(t, err)
	assert.Equal(t, 7.99, got.CurrentPrice)
	assert.Equal(t, 1, s.Size())
}

func TestMemoryStore_List(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Upsert(ctx, sampleRecord("P1")))

	bread := sampleRecord("P2")
	bread.Name = "Vogel's Bread"
	bread.Category = []string{"bakery"}
	require.NoError(t, s.Upsert(ctx, bread))

	otherSite := sampleRecord("P3")
	otherSite.SourceSite = "countdown.co.nz"
	require.NoError(t, s.Upsert(ctx, otherSite))

	all, err := s.List(ctx, "paknsave.co.nz", "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	milkOnly, err := s.List(ctx, "paknsave.co.nz", "milk")
	require.NoError(t, err)
	require.Len(t, milkOnly, 1)
	assert.Equal(t, "P1", milkOnly[0].ID)
}
