package service

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/phonevilla/store_api/internal/models"
	"github.com/phonevilla/store_api/internal/repository"
	"github.com/phonevilla/store_api/internal/utils"
)

func newTestCatalog(t *testing.T) *CatalogService {
	t.Helper()
	dir := t.TempDir()

	configRepo := repository.NewConfigRepository(filepath.Join(dir, "store-config.json"))
	err := configRepo.Write(&models.StoreConfig{
		Products: []models.Product{
			{
				ID:          "p1",
				DeviceName:  "Apple iPhone 15",
				DisplayName: "iPhone 15",
				Model:       "iPhone 15",
				StorageOptions: []models.StorageOption{
					{Capacity: "128GB", Price: 50000},
					{Capacity: "256GB", Price: 60000},
				},
			},
			{
				ID:          "p2",
				DeviceName:  "Apple iPhone 14",
				DisplayName: "iPhone 14",
				Model:       "iPhone 14",
				StorageOptions: []models.StorageOption{
					{Capacity: "128GB", Price: 42000},
				},
			},
		},
		PaymentConfig: models.PaymentConfig{
			UpiID:                 "phonevilla@upi",
			DefaultAdvancePayment: 550,
		},
	})
	require.NoError(t, err)

	priceRepo, err := repository.NewPriceOverrideRepository(filepath.Join(dir, "product-prices.json"))
	require.NoError(t, err)

	return NewCatalogService(configRepo, priceRepo)
}

func TestOverrideAffectsOnlyItsPair(t *testing.T) {
	catalog := newTestCatalog(t)

	require.NoError(t, catalog.SetOverride(models.PriceOverride{ProductID: "p1", Storage: "128GB", Price: 47500}))

	products, err := catalog.Products()
	require.NoError(t, err)

	byID := map[string]models.Product{}
	for _, p := range products {
		byID[p.ID] = p
	}
	require.Equal(t, int64(47500), byID["p1"].StorageOptions[0].Price)
	require.Equal(t, int64(60000), byID["p1"].StorageOptions[1].Price)
	require.Equal(t, int64(42000), byID["p2"].StorageOptions[0].Price)
}

func TestDeleteOverrideRevertsToCatalogPrice(t *testing.T) {
	catalog := newTestCatalog(t)

	require.NoError(t, catalog.SetOverride(models.PriceOverride{ProductID: "p1", Storage: "128GB", Price: 47500}))
	require.NoError(t, catalog.DeleteOverride("p1", "128GB"))

	products, err := catalog.Products()
	require.NoError(t, err)
	require.Equal(t, int64(50000), products[0].StorageOptions[0].Price)

	require.ErrorIs(t, catalog.DeleteOverride("p1", "128GB"), utils.ErrOverrideNotFound)
}

func TestSetOverrideRejectsUnknownPair(t *testing.T) {
	catalog := newTestCatalog(t)

	err := catalog.SetOverride(models.PriceOverride{ProductID: "nope", Storage: "128GB", Price: 1000})
	require.ErrorIs(t, err, utils.ErrProductNotFound)

	err = catalog.SetOverride(models.PriceOverride{ProductID: "p1", Storage: "1TB", Price: 1000})
	require.ErrorIs(t, err, utils.ErrStorageOptionNotFound)

	var vErr *utils.ValidationError
	err = catalog.SetOverride(models.PriceOverride{ProductID: "p1", Storage: "128GB", Price: -1})
	require.ErrorAs(t, err, &vErr)
}

func TestResolvePricingAdvance(t *testing.T) {
	catalog := newTestCatalog(t)

	pricing, err := catalog.ResolvePricing("p1", "128GB", models.PaymentTypeAdvance)
	require.NoError(t, err)
	require.Equal(t, "iPhone 15", pricing.ProductName)
	require.Equal(t, int64(50000), pricing.FullPrice)
	require.Equal(t, int64(550), pricing.PaidAmount)
	require.Equal(t, int64(49450), pricing.RemainingBalance)
}

func TestResolvePricingFull(t *testing.T) {
	catalog := newTestCatalog(t)

	pricing, err := catalog.ResolvePricing("p1", "256GB", models.PaymentTypeFull)
	require.NoError(t, err)
	require.Equal(t, int64(60000), pricing.FullPrice)
	require.Equal(t, int64(60000), pricing.PaidAmount)
	require.Equal(t, int64(0), pricing.RemainingBalance)
}

func TestResolvePricingUsesOverride(t *testing.T) {
	catalog := newTestCatalog(t)

	require.NoError(t, catalog.SetOverride(models.PriceOverride{ProductID: "p1", Storage: "128GB", Price: 47500}))

	pricing, err := catalog.ResolvePricing("p1", "128GB", models.PaymentTypeFull)
	require.NoError(t, err)
	require.Equal(t, int64(47500), pricing.FullPrice)
}

func TestResolvePricingNotFound(t *testing.T) {
	catalog := newTestCatalog(t)

	_, err := catalog.ResolvePricing("nope", "128GB", models.PaymentTypeFull)
	require.ErrorIs(t, err, utils.ErrProductNotFound)

	_, err = catalog.ResolvePricing("p1", "1TB", models.PaymentTypeFull)
	require.ErrorIs(t, err, utils.ErrStorageOptionNotFound)
}
