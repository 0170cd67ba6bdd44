package handler

import (
	"encoding/json"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/phonevilla/store_api/internal/models"
	"github.com/phonevilla/store_api/internal/service"
	"github.com/phonevilla/store_api/internal/utils"
)

// OrderHandler serves order creation and retrieval. Order creation is a
// multipart request carrying the payment screenshot; the file is written
// before the order is validated, so every failure path has to unlink it
// again.
type OrderHandler struct {
	orderService  *service.OrderService
	notifier      *service.NotifierService
	screenshotDir string
	maxSize       int64
}

// NewOrderHandler constructs an OrderHandler.
func NewOrderHandler(orderService *service.OrderService, notifier *service.NotifierService, screenshotDir string, maxSize int64) *OrderHandler {
	return &OrderHandler{
		orderService:  orderService,
		notifier:      notifier,
		screenshotDir: screenshotDir,
		maxSize:       maxSize,
	}
}

// CreateOrder handles POST /api/orders (multipart, field "screenshot").
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	screenshot, ok := h.saveScreenshot(c)
	if !ok {
		return
	}

	customer := service.CustomerInfo{
		CustomerName: c.PostForm("customerName"),
		Phone:        c.PostForm("phone"),
		Address:      c.PostForm("address"),
		PinCode:      c.PostForm("pinCode"),
		PaymentType:  models.PaymentType(c.PostForm("paymentType")),
	}
	item := service.OrderItem{
		ProductID: c.PostForm("productId"),
		Storage:   c.PostForm("storage"),
		Color:     c.PostForm("color"),
	}

	order, err := h.orderService.Create(customer, item, screenshot)
	if err != nil {
		h.compensate(screenshot)
		h.writeOrderError(c, err, "Failed to create order")
		return
	}

	// Fire-and-forget: the response never waits on Telegram.
	h.notifier.DispatchOrder(*order)

	utils.Success(c, 201, "Order created", order)
}

// CreateBatchOrders handles POST /api/orders/batch (multipart, field
// "items" holding a JSON-encoded cart item array).
func (h *OrderHandler) CreateBatchOrders(c *gin.Context) {
	screenshot, ok := h.saveScreenshot(c)
	if !ok {
		return
	}

	rawItems := c.PostForm("items")
	if rawItems == "" {
		h.compensate(screenshot)
		utils.Error(c, 400, "INVALID_REQUEST", "Items are required")
		return
	}
	var items []service.OrderItem
	if err := json.Unmarshal([]byte(rawItems), &items); err != nil {
		h.compensate(screenshot)
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid items format")
		return
	}

	customer := service.CustomerInfo{
		CustomerName: c.PostForm("customerName"),
		Phone:        c.PostForm("phone"),
		Address:      c.PostForm("address"),
		PinCode:      c.PostForm("pinCode"),
		PaymentType:  models.PaymentType(c.PostForm("paymentType")),
	}

	orders, err := h.orderService.CreateBatch(customer, items, screenshot)
	if err != nil {
		h.compensate(screenshot)
		h.writeOrderError(c, err, "Failed to create orders")
		return
	}

	h.notifier.DispatchBatch(orders)

	utils.Success(c, 201, "Orders created", orders)
}

// GetOrder handles GET /api/orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	order, err := h.orderService.Get(c.Param("id"))
	if err != nil {
		utils.Error(c, 404, "ORDER_NOT_FOUND", "Order not found")
		return
	}
	utils.Success(c, 200, "Order retrieved", order)
}

// ListOrders handles GET /api/orders (admin, paginated).
func (h *OrderHandler) ListOrders(c *gin.Context) {
	page, limit := 1, 50
	if v := c.Query("page"); v != "" {
		if p, err := strconv.Atoi(v); err == nil && p > 0 {
			page = p
		}
	}
	if v := c.Query("limit"); v != "" {
		if l, err := strconv.Atoi(v); err == nil && l > 0 {
			limit = l
		}
	}

	orders := h.orderService.List()
	total := len(orders)
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	utils.SuccessWithPagination(c, 200, "Orders retrieved", orders[start:end], page, limit, total)
}

// saveScreenshot stores the uploaded payment screenshot, writing the error
// response itself when the upload is missing or invalid.
func (h *OrderHandler) saveScreenshot(c *gin.Context) (string, bool) {
	filename, err := utils.SaveUploadedImage(c, "screenshot", h.screenshotDir, "payment", h.maxSize)
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrFileMissing):
			utils.Error(c, 400, "SCREENSHOT_REQUIRED", "Payment screenshot is required")
		case errors.Is(err, utils.ErrFileTooLarge):
			utils.Error(c, 400, "FILE_TOO_LARGE", "Screenshot exceeds the size limit")
		case errors.Is(err, utils.ErrNotAnImage):
			utils.Error(c, 400, "INVALID_FILE_TYPE", "Only image files are allowed")
		default:
			log.Error().Err(err).Msg("Failed to store screenshot")
			utils.Error(c, 500, "INTERNAL_ERROR", "Failed to store screenshot")
		}
		return "", false
	}
	return filename, true
}

// compensate removes an already-saved screenshot after a failed creation.
func (h *OrderHandler) compensate(screenshot string) {
	if err := utils.RemoveUpload(h.screenshotDir, screenshot); err != nil {
		log.Error().Err(err).Str("file", screenshot).Msg("Failed to delete uploaded screenshot")
	}
}

func (h *OrderHandler) writeOrderError(c *gin.Context, err error, fallback string) {
	var verr *utils.ValidationError
	switch {
	case errors.As(err, &verr):
		utils.ValidationFailed(c, "Invalid order data", verr.Fields)
	case errors.Is(err, utils.ErrProductNotFound):
		utils.Error(c, 404, "PRODUCT_NOT_FOUND", "Product not found")
	case errors.Is(err, utils.ErrStorageOptionNotFound):
		utils.Error(c, 404, "STORAGE_OPTION_NOT_FOUND", "Storage option not found")
	default:
		log.Error().Err(err).Msg(fallback)
		utils.Error(c, 500, "INTERNAL_ERROR", fallback)
	}
}
