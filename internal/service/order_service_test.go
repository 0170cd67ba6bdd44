package service

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/phonevilla/store_api/internal/models"
	"github.com/phonevilla/store_api/internal/repository"
	"github.com/phonevilla/store_api/internal/utils"
)

func newTestOrderService(t *testing.T) *OrderService {
	t.Helper()
	orderRepo, err := repository.NewOrderRepository(filepath.Join(t.TempDir(), "orders.json"))
	require.NoError(t, err)
	return NewOrderService(orderRepo, newTestCatalog(t))
}

func validCustomer() CustomerInfo {
	return CustomerInfo{
		CustomerName: "Asha Verma",
		Phone:        "9876543210",
		Address:      "14 MG Road, Indiranagar, Bengaluru",
		PinCode:      "560038",
		PaymentType:  models.PaymentTypeAdvance,
	}
}

func TestCreateOrderAdvancePayment(t *testing.T) {
	svc := newTestOrderService(t)

	order, err := svc.Create(validCustomer(), OrderItem{ProductID: "p1", Storage: "128GB", Color: "Black"}, "payment-123.jpg")
	require.NoError(t, err)
	require.NotEmpty(t, order.ID)
	require.Equal(t, "iPhone 15", order.ProductName)
	require.Equal(t, int64(50000), order.FullPrice)
	require.Equal(t, int64(550), order.PaidAmount)
	require.Equal(t, int64(49450), order.RemainingBalance)
	require.Equal(t, "payment-123.jpg", order.PaymentScreenshot)
}

func TestCreateOrderFullPayment(t *testing.T) {
	svc := newTestOrderService(t)

	customer := validCustomer()
	customer.PaymentType = models.PaymentTypeFull

	order, err := svc.Create(customer, OrderItem{ProductID: "p1", Storage: "256GB"}, "payment-123.jpg")
	require.NoError(t, err)
	require.Equal(t, int64(60000), order.FullPrice)
	require.Equal(t, int64(60000), order.PaidAmount)
	require.Equal(t, int64(0), order.RemainingBalance)
}

func TestCreateOrderValidatesCustomer(t *testing.T) {
	svc := newTestOrderService(t)

	customer := CustomerInfo{
		CustomerName: "A",
		Phone:        "12345",
		Address:      "short",
		PinCode:      "56",
		PaymentType:  models.PaymentType("cod"),
	}

	_, err := svc.Create(customer, OrderItem{ProductID: "p1", Storage: "128GB"}, "s.jpg")
	var vErr *utils.ValidationError
	require.ErrorAs(t, err, &vErr)
	require.Contains(t, vErr.Fields, "customerName")
	require.Contains(t, vErr.Fields, "phone")
	require.Contains(t, vErr.Fields, "address")
	require.Contains(t, vErr.Fields, "pinCode")
	require.Contains(t, vErr.Fields, "paymentType")
}

func TestCreateOrderUnknownVariant(t *testing.T) {
	svc := newTestOrderService(t)

	_, err := svc.Create(validCustomer(), OrderItem{ProductID: "nope", Storage: "128GB"}, "s.jpg")
	require.ErrorIs(t, err, utils.ErrProductNotFound)

	_, err = svc.Create(validCustomer(), OrderItem{ProductID: "p1", Storage: "1TB"}, "s.jpg")
	require.ErrorIs(t, err, utils.ErrStorageOptionNotFound)
}

func TestCreateBatchSharesCustomerAndScreenshot(t *testing.T) {
	svc := newTestOrderService(t)

	items := []OrderItem{
		{ProductID: "p1", Storage: "128GB", Color: "Black"},
		{ProductID: "p1", Storage: "256GB", Color: "Blue"},
		{ProductID: "p2", Storage: "128GB"},
	}
	orders, err := svc.CreateBatch(validCustomer(), items, "payment-batch.jpg")
	require.NoError(t, err)
	require.Len(t, orders, 3)

	ids := map[string]bool{}
	for _, o := range orders {
		ids[o.ID] = true
		require.Equal(t, "Asha Verma", o.CustomerName)
		require.Equal(t, "9876543210", o.Phone)
		require.Equal(t, "payment-batch.jpg", o.PaymentScreenshot)
		require.Equal(t, int64(550), o.PaidAmount)
	}
	require.Len(t, ids, 3)
	require.Equal(t, int64(50000), orders[0].FullPrice)
	require.Equal(t, int64(60000), orders[1].FullPrice)
	require.Equal(t, int64(42000), orders[2].FullPrice)
}

func TestCreateBatchRejectsWholeCheckoutOnBadItem(t *testing.T) {
	svc := newTestOrderService(t)

	items := []OrderItem{
		{ProductID: "p1", Storage: "128GB"},
		{ProductID: "nope", Storage: "128GB"},
	}
	_, err := svc.CreateBatch(validCustomer(), items, "s.jpg")
	require.ErrorIs(t, err, utils.ErrProductNotFound)
	require.Empty(t, svc.List())
}

func TestCreateBatchRequiresItems(t *testing.T) {
	svc := newTestOrderService(t)

	_, err := svc.CreateBatch(validCustomer(), nil, "s.jpg")
	var vErr *utils.ValidationError
	require.ErrorAs(t, err, &vErr)
	require.Contains(t, vErr.Fields, "items")
}
