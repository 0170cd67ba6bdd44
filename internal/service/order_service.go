package service

import (
	"regexp"
	"strings"

	"github.com/phonevilla/store_api/internal/models"
	"github.com/phonevilla/store_api/internal/repository"
	"github.com/phonevilla/store_api/internal/utils"
)

var (
	phonePattern   = regexp.MustCompile(`^[6-9]\d{9}$`)
	pinCodePattern = regexp.MustCompile(`^\d{6}$`)
)

// CustomerInfo holds the fields shared by every order of a checkout.
type CustomerInfo struct {
	CustomerName string
	Phone        string
	Address      string
	PinCode      string
	PaymentType  models.PaymentType
}

// OrderItem identifies one purchasable variant within a checkout.
type OrderItem struct {
	ProductID string `json:"productId"`
	Storage   string `json:"storage"`
	Color     string `json:"color,omitempty"`
}

// OrderService validates checkouts, resolves prices against the catalog
// and persists orders. Notification dispatch is left to the caller so the
// HTTP response never waits on Telegram.
type OrderService struct {
	orderRepo *repository.OrderRepository
	catalog   *CatalogService
}

// NewOrderService constructs an OrderService.
func NewOrderService(orderRepo *repository.OrderRepository, catalog *CatalogService) *OrderService {
	return &OrderService{orderRepo: orderRepo, catalog: catalog}
}

// Create validates and persists a single-item order.
func (s *OrderService) Create(customer CustomerInfo, item OrderItem, screenshot string) (*models.Order, error) {
	if err := validateCustomer(&customer); err != nil {
		return nil, err
	}
	draft, err := s.buildDraft(customer, item, screenshot)
	if err != nil {
		return nil, err
	}
	return s.orderRepo.Create(*draft)
}

// CreateBatch validates and persists one order per cart item, sharing the
// customer fields and the uploaded screenshot. Price resolution for every
// item happens before anything is persisted, so a missing product or
// storage option rejects the whole checkout without creating orders.
func (s *OrderService) CreateBatch(customer CustomerInfo, items []OrderItem, screenshot string) ([]models.Order, error) {
	if err := validateCustomer(&customer); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, utils.NewValidationError(map[string]string{"items": "Items must be a non-empty array"})
	}

	drafts := make([]models.OrderDraft, 0, len(items))
	for _, item := range items {
		draft, err := s.buildDraft(customer, item, screenshot)
		if err != nil {
			return nil, err
		}
		drafts = append(drafts, *draft)
	}
	return s.orderRepo.CreateBatch(drafts)
}

// Get returns one order by id.
func (s *OrderService) Get(id string) (*models.Order, error) {
	return s.orderRepo.Get(id)
}

// List returns all orders, newest first.
func (s *OrderService) List() []models.Order {
	return s.orderRepo.List()
}

func (s *OrderService) buildDraft(customer CustomerInfo, item OrderItem, screenshot string) (*models.OrderDraft, error) {
	pricing, err := s.catalog.ResolvePricing(item.ProductID, item.Storage, customer.PaymentType)
	if err != nil {
		return nil, err
	}
	return &models.OrderDraft{
		CustomerName:      customer.CustomerName,
		Phone:             customer.Phone,
		Address:           customer.Address,
		PinCode:           customer.PinCode,
		ProductID:         item.ProductID,
		ProductName:       pricing.ProductName,
		Storage:           item.Storage,
		Color:             item.Color,
		FullPrice:         pricing.FullPrice,
		PaidAmount:        pricing.PaidAmount,
		RemainingBalance:  pricing.RemainingBalance,
		PaymentType:       customer.PaymentType,
		PaymentScreenshot: screenshot,
	}, nil
}

// validateCustomer enforces the checkout form rules: a real name, a valid
// Indian mobile number, a complete address and a 6-digit PIN code.
func validateCustomer(c *CustomerInfo) error {
	fields := map[string]string{}
	if len(strings.TrimSpace(c.CustomerName)) < 2 {
		fields["customerName"] = "Name must be at least 2 characters"
	}
	if !phonePattern.MatchString(c.Phone) {
		fields["phone"] = "Enter a valid 10-digit Indian mobile number"
	}
	if len(strings.TrimSpace(c.Address)) < 10 {
		fields["address"] = "Please provide a complete delivery address"
	}
	if !pinCodePattern.MatchString(c.PinCode) {
		fields["pinCode"] = "Enter a valid 6-digit PIN code"
	}
	if !c.PaymentType.Valid() {
		fields["paymentType"] = "Payment type must be 'full' or 'advance'"
	}
	if len(fields) > 0 {
		return utils.NewValidationError(fields)
	}
	return nil
}
