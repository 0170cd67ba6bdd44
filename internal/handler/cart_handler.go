package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/phonevilla/store_api/internal/service"
	"github.com/phonevilla/store_api/internal/utils"
)

// CartHandler serves the shopping cart endpoints.
type CartHandler struct {
	cartService *service.CartService
}

// NewCartHandler constructs a CartHandler.
func NewCartHandler(cartService *service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// GetCart handles GET /api/cart
func (h *CartHandler) GetCart(c *gin.Context) {
	utils.Success(c, 200, "Cart retrieved", h.cartService.List())
}

// AddItem handles POST /api/cart
func (h *CartHandler) AddItem(c *gin.Context) {
	var req service.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid cart item data")
		return
	}

	item, err := h.cartService.Add(&req)
	if err != nil {
		var verr *utils.ValidationError
		switch {
		case errors.As(err, &verr):
			utils.ValidationFailed(c, "Invalid cart item data", verr.Fields)
		case errors.Is(err, utils.ErrProductNotFound):
			utils.Error(c, 404, "PRODUCT_NOT_FOUND", "Product not found")
		case errors.Is(err, utils.ErrStorageOptionNotFound):
			utils.Error(c, 404, "STORAGE_OPTION_NOT_FOUND", "Storage option not found")
		default:
			log.Error().Err(err).Msg("Failed to add item to cart")
			utils.Error(c, 500, "INTERNAL_ERROR", "Failed to add item to cart")
		}
		return
	}

	utils.Success(c, 201, "Item added to cart", item)
}

// updateQuantityRequest is the PATCH /api/cart/:id payload.
type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateItem handles PATCH /api/cart/:id
func (h *CartHandler) UpdateItem(c *gin.Context) {
	var req updateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Quantity < 1 {
		utils.Error(c, 400, "INVALID_QUANTITY", "Invalid quantity")
		return
	}

	item, err := h.cartService.UpdateQuantity(c.Param("id"), req.Quantity)
	if err != nil {
		if errors.Is(err, utils.ErrCartItemNotFound) {
			utils.Error(c, 404, "CART_ITEM_NOT_FOUND", "Cart item not found")
			return
		}
		log.Error().Err(err).Msg("Failed to update cart item")
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to update cart item")
		return
	}

	utils.Success(c, 200, "Cart item updated", item)
}

// RemoveItem handles DELETE /api/cart/:id
func (h *CartHandler) RemoveItem(c *gin.Context) {
	if err := h.cartService.Remove(c.Param("id")); err != nil {
		if errors.Is(err, utils.ErrCartItemNotFound) {
			utils.Error(c, 404, "CART_ITEM_NOT_FOUND", "Cart item not found")
			return
		}
		log.Error().Err(err).Msg("Failed to remove cart item")
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to remove cart item")
		return
	}
	c.Status(204)
}

// ClearCart handles DELETE /api/cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	if err := h.cartService.Clear(); err != nil {
		log.Error().Err(err).Msg("Failed to clear cart")
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to clear cart")
		return
	}
	c.Status(204)
}
