package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/phonevilla/store_api/internal/config"
	"github.com/phonevilla/store_api/internal/models"
	"github.com/phonevilla/store_api/internal/repository"
	"github.com/phonevilla/store_api/internal/service"
	"github.com/phonevilla/store_api/pkg/telegram"
)

func newOrderRouter(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	dir := t.TempDir()

	configRepo := repository.NewConfigRepository(filepath.Join(dir, "store-config.json"))
	err := configRepo.Write(&models.StoreConfig{
		Products: []models.Product{
			{
				ID:          "p1",
				DisplayName: "iPhone 15",
				StorageOptions: []models.StorageOption{
					{Capacity: "128GB", Price: 50000},
					{Capacity: "256GB", Price: 60000},
				},
			},
		},
		PaymentConfig: models.PaymentConfig{DefaultAdvancePayment: 550},
	})
	require.NoError(t, err)

	priceRepo, err := repository.NewPriceOverrideRepository(filepath.Join(dir, "product-prices.json"))
	require.NoError(t, err)
	orderRepo, err := repository.NewOrderRepository(filepath.Join(dir, "orders.json"))
	require.NoError(t, err)
	settingsRepo := repository.NewSettingsRepository(filepath.Join(dir, "admin-settings.json"))

	screenshotDir := filepath.Join(dir, "payment-screenshots")
	orderSvc := service.NewOrderService(orderRepo, service.NewCatalogService(configRepo, priceRepo))
	notifier := service.NewNotifierService(telegram.NewClient(), settingsRepo, config.TelegramConfig{}, screenshotDir)

	h := NewOrderHandler(orderSvc, notifier, screenshotDir, 10<<20)

	router := gin.New()
	router.POST("/api/orders", h.CreateOrder)
	router.POST("/api/orders/batch", h.CreateBatchOrders)
	router.GET("/api/orders/:id", h.GetOrder)
	return router, screenshotDir
}

func orderFields(productID string) map[string]string {
	return map[string]string{
		"customerName": "Asha Verma",
		"phone":        "9876543210",
		"address":      "14 MG Road, Indiranagar, Bengaluru",
		"pinCode":      "560038",
		"paymentType":  "advance",
		"productId":    productID,
		"storage":      "128GB",
		"color":        "Black",
	}
}

func postMultipart(t *testing.T, router *gin.Engine, path string, fields map[string]string, withScreenshot bool) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if withScreenshot {
		hdr := textproto.MIMEHeader{}
		hdr.Set("Content-Disposition", `form-data; name="screenshot"; filename="payment.jpg"`)
		hdr.Set("Content-Type", "image/jpeg")
		part, err := w.CreatePart(hdr)
		require.NoError(t, err)
		_, err = part.Write([]byte("not really a jpeg"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func screenshotFiles(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil
	}
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestCreateOrderStoresScreenshot(t *testing.T) {
	router, screenshotDir := newOrderRouter(t)

	w := postMultipart(t, router, "/api/orders", orderFields("p1"), true)
	require.Equal(t, 201, w.Code)

	resp := decodeResponse(t, w)
	require.True(t, resp.Success)

	var order models.Order
	raw, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &order))
	require.Equal(t, int64(50000), order.FullPrice)
	require.Equal(t, int64(550), order.PaidAmount)
	require.Equal(t, int64(49450), order.RemainingBalance)

	files := screenshotFiles(t, screenshotDir)
	require.Len(t, files, 1)
	require.Equal(t, files[0], order.PaymentScreenshot)
}

func TestCreateOrderUnknownProductRemovesScreenshot(t *testing.T) {
	router, screenshotDir := newOrderRouter(t)

	w := postMultipart(t, router, "/api/orders", orderFields("nope"), true)
	require.Equal(t, 404, w.Code)

	resp := decodeResponse(t, w)
	require.False(t, resp.Success)
	require.Equal(t, "PRODUCT_NOT_FOUND", resp.Error.Code)
	require.Empty(t, screenshotFiles(t, screenshotDir), "failed checkout must delete the saved screenshot")
}

func TestCreateOrderValidationRemovesScreenshot(t *testing.T) {
	router, screenshotDir := newOrderRouter(t)

	fields := orderFields("p1")
	fields["phone"] = "12345"

	w := postMultipart(t, router, "/api/orders", fields, true)
	require.Equal(t, 400, w.Code)

	resp := decodeResponse(t, w)
	require.Equal(t, "VALIDATION_FAILED", resp.Error.Code)
	require.Contains(t, resp.Error.Fields, "phone")
	require.Empty(t, screenshotFiles(t, screenshotDir))
}

func TestCreateOrderRequiresScreenshot(t *testing.T) {
	router, _ := newOrderRouter(t)

	w := postMultipart(t, router, "/api/orders", orderFields("p1"), false)
	require.Equal(t, 400, w.Code)

	resp := decodeResponse(t, w)
	require.Equal(t, "SCREENSHOT_REQUIRED", resp.Error.Code)
}

func TestCreateBatchOrders(t *testing.T) {
	router, screenshotDir := newOrderRouter(t)

	items, err := json.Marshal([]service.OrderItem{
		{ProductID: "p1", Storage: "128GB", Color: "Black"},
		{ProductID: "p1", Storage: "256GB"},
	})
	require.NoError(t, err)

	fields := orderFields("")
	delete(fields, "productId")
	delete(fields, "storage")
	delete(fields, "color")
	fields["items"] = string(items)

	w := postMultipart(t, router, "/api/orders/batch", fields, true)
	require.Equal(t, 201, w.Code)

	resp := decodeResponse(t, w)
	var orders []models.Order
	raw, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &orders))
	require.Len(t, orders, 2)

	// the batch shares one upload
	require.Len(t, screenshotFiles(t, screenshotDir), 1)
	require.Equal(t, orders[0].PaymentScreenshot, orders[1].PaymentScreenshot)
}
