package repository

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/phonevilla/store_api/internal/models"
	"github.com/phonevilla/store_api/internal/utils"
)

func int64Ptr(v int64) *int64 { return &v }
func intPtr(v int) *int       { return &v }

func newTestConfigRepo(t *testing.T) *ConfigRepository {
	t.Helper()
	repo := NewConfigRepository(filepath.Join(t.TempDir(), "store-config.json"))
	require.NoError(t, repo.EnsureExists())
	return repo
}

func TestConfigEnsureExistsCreatesDefault(t *testing.T) {
	repo := newTestConfigRepo(t)

	cfg, err := repo.Read()
	require.NoError(t, err)
	require.Empty(t, cfg.Products)
}

func TestAddProductDerivesDiscountedPrice(t *testing.T) {
	repo := newTestConfigRepo(t)

	created, err := repo.AddProduct(models.Product{
		ID:          "iphone-15",
		DisplayName: "iPhone 15 (Refurbished)",
		StorageOptions: []models.StorageOption{
			{Capacity: "128GB", OriginalPrice: int64Ptr(60000), Discount: intPtr(15)},
			{Capacity: "256GB", Price: 62000},
		},
	})
	require.NoError(t, err)

	// round(60000 * 0.85) = 51000
	require.Equal(t, int64(51000), created.StorageOptions[0].Price)
	// no original price: keeps the price it came with
	require.Equal(t, int64(62000), created.StorageOptions[1].Price)

	_, err = repo.AddProduct(models.Product{ID: "iphone-15", DisplayName: "dup"})
	require.ErrorIs(t, err, utils.ErrDuplicateProduct)
}

func TestUpdateProductPartial(t *testing.T) {
	repo := newTestConfigRepo(t)

	_, err := repo.AddProduct(models.Product{
		ID:          "iphone-14",
		DisplayName: "iPhone 14",
		StorageOptions: []models.StorageOption{
			{Capacity: "128GB", Price: 40000},
		},
	})
	require.NoError(t, err)

	name := "iPhone 14 (Renewed)"
	updated, err := repo.UpdateProduct("iphone-14", &ProductUpdate{DisplayName: &name})
	require.NoError(t, err)
	require.Equal(t, name, updated.DisplayName)
	require.Len(t, updated.StorageOptions, 1, "untouched fields must survive a partial update")

	_, err = repo.UpdateProduct("missing", &ProductUpdate{DisplayName: &name})
	require.ErrorIs(t, err, utils.ErrProductNotFound)
}

func TestDeleteProduct(t *testing.T) {
	repo := newTestConfigRepo(t)

	_, err := repo.AddProduct(models.Product{
		ID:             "iphone-13",
		DisplayName:    "iPhone 13",
		StorageOptions: []models.StorageOption{{Capacity: "128GB", Price: 30000}},
	})
	require.NoError(t, err)

	require.NoError(t, repo.DeleteProduct("iphone-13"))
	require.ErrorIs(t, repo.DeleteProduct("iphone-13"), utils.ErrProductNotFound)

	cfg, err := repo.Read()
	require.NoError(t, err)
	require.Empty(t, cfg.Products)
}

func TestMutateAppliesEditUnderLock(t *testing.T) {
	repo := newTestConfigRepo(t)

	_, err := repo.AddProduct(models.Product{
		ID:             "iphone-15",
		DisplayName:    "iPhone 15",
		StorageOptions: []models.StorageOption{{Capacity: "128GB", Price: 50000}},
	})
	require.NoError(t, err)

	err = repo.Mutate(func(cfg *models.StoreConfig) error {
		cfg.Product("iphone-15").ReleaseDate = "2023-09-22"
		return nil
	})
	require.NoError(t, err)

	cfg, err := repo.Read()
	require.NoError(t, err)
	require.Equal(t, "2023-09-22", cfg.Product("iphone-15").ReleaseDate)

	// A failing closure must leave the file untouched.
	mutateErr := errors.New("lookup failed")
	err = repo.Mutate(func(cfg *models.StoreConfig) error {
		cfg.Product("iphone-15").DisplayName = "clobbered"
		return mutateErr
	})
	require.ErrorIs(t, err, mutateErr)

	cfg, err = repo.Read()
	require.NoError(t, err)
	require.Equal(t, "iPhone 15", cfg.Product("iphone-15").DisplayName)
}

func TestSetUpiIDRegeneratesQRCodeURL(t *testing.T) {
	repo := newTestConfigRepo(t)

	require.NoError(t, repo.SetUpiID("phonevilla@upi"))

	cfg, err := repo.Read()
	require.NoError(t, err)
	require.Equal(t, "phonevilla@upi", cfg.PaymentConfig.UpiID)
	require.Contains(t, cfg.PaymentConfig.QRCodeURL, "api.qrserver.com")
	require.Contains(t, cfg.PaymentConfig.QRCodeURL, "phonevilla%40upi")
}
