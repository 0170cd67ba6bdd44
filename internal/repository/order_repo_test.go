package repository

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/phonevilla/store_api/internal/models"
	"github.com/phonevilla/store_api/internal/utils"
)

func testDraft(productID string) models.OrderDraft {
	return models.OrderDraft{
		CustomerName:      "Asha Verma",
		Phone:             "9876543210",
		Address:           "12 MG Road, Bengaluru",
		PinCode:           "560001",
		ProductID:         productID,
		ProductName:       "iPhone 15",
		Storage:           "128GB",
		FullPrice:         50000,
		PaidAmount:        550,
		RemainingBalance:  49450,
		PaymentType:       models.PaymentTypeAdvance,
		PaymentScreenshot: "payment-123.jpg",
	}
}

func TestOrderCreateStampsIDAndTimestamp(t *testing.T) {
	repo, err := NewOrderRepository(filepath.Join(t.TempDir(), "orders.json"))
	require.NoError(t, err)

	order, err := repo.Create(testDraft("iphone-15"))
	require.NoError(t, err)
	require.NotEmpty(t, order.ID)
	require.NotEmpty(t, order.CreatedAt)
	require.Equal(t, order.FullPrice-order.PaidAmount, order.RemainingBalance)

	got, err := repo.Get(order.ID)
	require.NoError(t, err)
	require.Equal(t, order.ID, got.ID)
}

func TestOrderGetMissing(t *testing.T) {
	repo, err := NewOrderRepository(filepath.Join(t.TempDir(), "orders.json"))
	require.NoError(t, err)

	_, err = repo.Get("does-not-exist")
	require.ErrorIs(t, err, utils.ErrOrderNotFound)
}

func TestOrderCreateBatchPersistsAll(t *testing.T) {
	repo, err := NewOrderRepository(filepath.Join(t.TempDir(), "orders.json"))
	require.NoError(t, err)

	drafts := []models.OrderDraft{testDraft("iphone-15"), testDraft("iphone-14"), testDraft("iphone-13")}
	orders, err := repo.CreateBatch(drafts)
	require.NoError(t, err)
	require.Len(t, orders, 3)

	seen := map[string]bool{}
	for _, o := range orders {
		require.NotEmpty(t, o.ID)
		require.False(t, seen[o.ID], "batch orders must get distinct ids")
		seen[o.ID] = true
		require.Equal(t, "Asha Verma", o.CustomerName)
	}
	require.Len(t, repo.List(), 3)
}

func TestOrderSurvivesReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.json")
	repo, err := NewOrderRepository(path)
	require.NoError(t, err)

	order, err := repo.Create(testDraft("iphone-15"))
	require.NoError(t, err)

	reloaded, err := NewOrderRepository(path)
	require.NoError(t, err)

	got, err := reloaded.Get(order.ID)
	require.NoError(t, err)
	require.Equal(t, order.PaidAmount, got.PaidAmount)
	require.Equal(t, order.PaymentScreenshot, got.PaymentScreenshot)
}
