package service

import (
	"github.com/phonevilla/store_api/internal/models"
	"github.com/phonevilla/store_api/internal/repository"
	"github.com/phonevilla/store_api/internal/utils"
)

// CartService applies cart business rules on top of the cart repository.
type CartService struct {
	cartRepo   *repository.CartRepository
	configRepo *repository.ConfigRepository
}

// NewCartService constructs a CartService.
func NewCartService(cartRepo *repository.CartRepository, configRepo *repository.ConfigRepository) *CartService {
	return &CartService{cartRepo: cartRepo, configRepo: configRepo}
}

// AddItemRequest is the payload for adding a line to the cart.
type AddItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Storage   string `json:"storage" binding:"required"`
	Color     string `json:"color"`
	Quantity  int    `json:"quantity"`
}

// List returns the cart contents.
func (s *CartService) List() []models.CartItem {
	return s.cartRepo.List()
}

// Add validates the referenced variant against the catalog and merges the
// line into the cart. A quantity of zero defaults to one.
func (s *CartService) Add(req *AddItemRequest) (*models.CartItem, error) {
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	if req.Quantity < 1 {
		return nil, utils.NewValidationError(map[string]string{"quantity": "Quantity must be at least 1"})
	}

	cfg, err := s.configRepo.Read()
	if err != nil {
		return nil, err
	}
	product := cfg.Product(req.ProductID)
	if product == nil {
		return nil, utils.ErrProductNotFound
	}
	if product.StorageOption(req.Storage) == nil {
		return nil, utils.ErrStorageOptionNotFound
	}

	return s.cartRepo.Add(req.ProductID, req.Storage, req.Color, req.Quantity)
}

// UpdateQuantity changes the quantity of one line. Quantities below 1 are rejected.
func (s *CartService) UpdateQuantity(id string, quantity int) (*models.CartItem, error) {
	return s.cartRepo.UpdateQuantity(id, quantity)
}

// Remove deletes one line.
func (s *CartService) Remove(id string) error {
	return s.cartRepo.Remove(id)
}

// Clear empties the cart after checkout.
func (s *CartService) Clear() error {
	return s.cartRepo.Clear()
}
