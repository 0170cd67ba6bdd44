package service

import (
	"github.com/phonevilla/store_api/internal/models"
	"github.com/phonevilla/store_api/internal/repository"
	"github.com/phonevilla/store_api/internal/utils"
)

// CatalogService serves catalog and payment config reads with admin price
// overrides merged in, and routes admin catalog mutations to the config file.
type CatalogService struct {
	configRepo *repository.ConfigRepository
	priceRepo  *repository.PriceOverrideRepository
}

// NewCatalogService constructs a CatalogService.
func NewCatalogService(configRepo *repository.ConfigRepository, priceRepo *repository.PriceOverrideRepository) *CatalogService {
	return &CatalogService{configRepo: configRepo, priceRepo: priceRepo}
}

// Config returns the store config with overrides applied to product prices.
// The file is read fresh on every call so admin edits are immediately visible.
func (s *CatalogService) Config() (*models.StoreConfig, error) {
	cfg, err := s.configRepo.Read()
	if err != nil {
		return nil, err
	}
	s.applyOverrides(cfg.Products)
	return cfg, nil
}

// Products returns the catalog with overrides applied.
func (s *CatalogService) Products() ([]models.Product, error) {
	cfg, err := s.Config()
	if err != nil {
		return nil, err
	}
	return cfg.Products, nil
}

// Pricing is the resolved price breakdown for one order line.
type Pricing struct {
	ProductName      string
	FullPrice        int64
	PaidAmount       int64
	RemainingBalance int64
}

// ResolvePricing cross-references a (productId, storage) pair against the
// catalog and computes the amounts for the requested payment type. Advance
// payments use the configured default advance; the remainder is collected
// on delivery.
func (s *CatalogService) ResolvePricing(productID, storage string, paymentType models.PaymentType) (*Pricing, error) {
	cfg, err := s.Config()
	if err != nil {
		return nil, err
	}
	product := cfg.Product(productID)
	if product == nil {
		return nil, utils.ErrProductNotFound
	}
	option := product.StorageOption(storage)
	if option == nil {
		return nil, utils.ErrStorageOptionNotFound
	}

	fullPrice := option.Price
	paidAmount := fullPrice
	if paymentType == models.PaymentTypeAdvance {
		paidAmount = cfg.PaymentConfig.DefaultAdvancePayment
	}
	return &Pricing{
		ProductName:      product.DisplayName,
		FullPrice:        fullPrice,
		PaidAmount:       paidAmount,
		RemainingBalance: fullPrice - paidAmount,
	}, nil
}

// AddProduct validates and appends a catalog entry.
func (s *CatalogService) AddProduct(p models.Product) (*models.Product, error) {
	if err := validateProduct(&p); err != nil {
		return nil, err
	}
	return s.configRepo.AddProduct(p)
}

// UpdateProduct applies a partial catalog edit.
func (s *CatalogService) UpdateProduct(id string, upd *repository.ProductUpdate) (*models.Product, error) {
	return s.configRepo.UpdateProduct(id, upd)
}

// DeleteProduct removes a catalog entry.
func (s *CatalogService) DeleteProduct(id string) error {
	return s.configRepo.DeleteProduct(id)
}

// Overrides lists the current price overrides.
func (s *CatalogService) Overrides() []models.PriceOverride {
	return s.priceRepo.List()
}

// SetOverride stores a price override for one (productId, storage) pair.
// The pair must exist in the catalog.
func (s *CatalogService) SetOverride(o models.PriceOverride) error {
	if o.Price < 0 {
		return utils.NewValidationError(map[string]string{"price": "Price must be positive"})
	}
	cfg, err := s.configRepo.Read()
	if err != nil {
		return err
	}
	product := cfg.Product(o.ProductID)
	if product == nil {
		return utils.ErrProductNotFound
	}
	if product.StorageOption(o.Storage) == nil {
		return utils.ErrStorageOptionNotFound
	}
	return s.priceRepo.Upsert(o)
}

// DeleteOverride reverts one pair to its catalog price.
func (s *CatalogService) DeleteOverride(productID, storage string) error {
	return s.priceRepo.Delete(productID, storage)
}

// applyOverrides replaces catalog prices with override values in place.
// Only the exact (productId, storage) pair of an override is affected.
func (s *CatalogService) applyOverrides(products []models.Product) {
	for pi := range products {
		for oi := range products[pi].StorageOptions {
			opt := &products[pi].StorageOptions[oi]
			if ov := s.priceRepo.Get(products[pi].ID, opt.Capacity); ov != nil {
				opt.Price = ov.Price
				if ov.OriginalPrice != nil {
					opt.OriginalPrice = ov.OriginalPrice
				}
				if ov.Discount != nil {
					opt.Discount = ov.Discount
				}
			}
		}
	}
}

func validateProduct(p *models.Product) error {
	fields := map[string]string{}
	if p.ID == "" {
		fields["id"] = "Product id is required"
	}
	if p.DisplayName == "" {
		fields["displayName"] = "Display name is required"
	}
	if len(p.StorageOptions) == 0 {
		fields["storageOptions"] = "At least one storage option is required"
	}
	for _, opt := range p.StorageOptions {
		if opt.Capacity == "" {
			fields["storageOptions"] = "Storage option capacity is required"
		}
		if opt.Price < 0 || (opt.OriginalPrice != nil && *opt.OriginalPrice < 0) {
			fields["storageOptions"] = "Prices must be positive"
		}
	}
	if len(fields) > 0 {
		return utils.NewValidationError(fields)
	}
	return nil
}
