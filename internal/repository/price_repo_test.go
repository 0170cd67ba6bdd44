package repository

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/phonevilla/store_api/internal/models"
	"github.com/phonevilla/store_api/internal/utils"
)

func TestPriceOverrideUpsertAndGet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "product-prices.json")
	repo, err := NewPriceOverrideRepository(path)
	require.NoError(t, err)

	require.NoError(t, repo.Upsert(models.PriceOverride{ProductID: "iphone-15", Storage: "128GB", Price: 48000}))
	require.NoError(t, repo.Upsert(models.PriceOverride{ProductID: "iphone-15", Storage: "256GB", Price: 58000}))

	ov := repo.Get("iphone-15", "128GB")
	require.NotNil(t, ov)
	require.Equal(t, int64(48000), ov.Price)

	// exact pair only
	require.Nil(t, repo.Get("iphone-15", "512GB"))
	require.Nil(t, repo.Get("iphone-14", "128GB"))

	// upsert replaces
	require.NoError(t, repo.Upsert(models.PriceOverride{ProductID: "iphone-15", Storage: "128GB", Price: 47000}))
	require.Equal(t, int64(47000), repo.Get("iphone-15", "128GB").Price)
	require.Len(t, repo.List(), 2)
}

func TestPriceOverrideDelete(t *testing.T) {
	repo, err := NewPriceOverrideRepository(filepath.Join(t.TempDir(), "product-prices.json"))
	require.NoError(t, err)

	require.NoError(t, repo.Upsert(models.PriceOverride{ProductID: "iphone-15", Storage: "128GB", Price: 48000}))
	require.NoError(t, repo.Delete("iphone-15", "128GB"))
	require.Nil(t, repo.Get("iphone-15", "128GB"))
	require.ErrorIs(t, repo.Delete("iphone-15", "128GB"), utils.ErrOverrideNotFound)
}

func TestPriceOverrideSurvivesReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "product-prices.json")
	repo, err := NewPriceOverrideRepository(path)
	require.NoError(t, err)

	require.NoError(t, repo.Upsert(models.PriceOverride{ProductID: "iphone-16", Storage: "256GB", Price: 70000}))

	reloaded, err := NewPriceOverrideRepository(path)
	require.NoError(t, err)
	require.Equal(t, int64(70000), reloaded.Get("iphone-16", "256GB").Price)
}
