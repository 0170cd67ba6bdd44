package repository

import (
	"fmt"
	"math"
	"net/url"
	"sync"

	"github.com/phonevilla/store_api/internal/models"
	"github.com/phonevilla/store_api/internal/utils"
)

// qrServiceURL is the third-party QR image service used to render the UPI
// payment QR from the configured UPI id.
const qrServiceURL = "https://api.qrserver.com/v1/create-qr-code/?size=300x300&data=%s"

// ConfigRepository handles data access for the store config file
// (catalog + payment settings). Every read hits the file so admin edits are
// visible on the next request; the mutex serializes the read-modify-write
// cycles of admin mutations.
type ConfigRepository struct {
	mu   sync.Mutex
	path string
}

// NewConfigRepository creates a ConfigRepository backed by the given file.
func NewConfigRepository(path string) *ConfigRepository {
	return &ConfigRepository{path: path}
}

// EnsureExists writes a default empty config when the file is missing.
func (r *ConfigRepository) EnsureExists() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	var cfg models.StoreConfig
	if err := readJSONFile(r.path, &cfg); err != nil {
		if !isNotExist(err) {
			return err
		}
		cfg = models.StoreConfig{Products: []models.Product{}}
		return writeJSONFile(r.path, &cfg)
	}
	return nil
}

// Read loads the store config fresh from disk.
func (r *ConfigRepository) Read() (*models.StoreConfig, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.read()
}

func (r *ConfigRepository) read() (*models.StoreConfig, error) {
	var cfg models.StoreConfig
	if err := readJSONFile(r.path, &cfg); err != nil {
		if isNotExist(err) {
			return &models.StoreConfig{Products: []models.Product{}}, nil
		}
		return nil, err
	}
	return &cfg, nil
}

// Write replaces the whole store config file.
func (r *ConfigRepository) Write(cfg *models.StoreConfig) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return writeJSONFile(r.path, cfg)
}

// Mutate runs fn on the current config and persists the result, all under
// the repository lock, so the read-modify-write cannot clobber a
// concurrent admin edit. When fn returns an error nothing is written.
func (r *ConfigRepository) Mutate(fn func(*models.StoreConfig) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cfg, err := r.read()
	if err != nil {
		return err
	}
	if err := fn(cfg); err != nil {
		return err
	}
	return writeJSONFile(r.path, cfg)
}

// SetUpiID updates the payment UPI id and regenerates the QR code URL from it.
func (r *ConfigRepository) SetUpiID(upiID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cfg, err := r.read()
	if err != nil {
		return err
	}
	cfg.PaymentConfig.UpiID = upiID
	cfg.PaymentConfig.QRCodeURL = fmt.Sprintf(qrServiceURL, url.QueryEscape("upi://pay?pa="+upiID))
	return writeJSONFile(r.path, cfg)
}

// AddProduct appends a product to the catalog. The id must be unique.
func (r *ConfigRepository) AddProduct(p models.Product) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cfg, err := r.read()
	if err != nil {
		return nil, err
	}
	if cfg.Product(p.ID) != nil {
		return nil, utils.ErrDuplicateProduct
	}
	derivePrices(p.StorageOptions)
	cfg.Products = append(cfg.Products, p)
	if err := writeJSONFile(r.path, cfg); err != nil {
		return nil, err
	}
	return &p, nil
}

// ProductUpdate carries partial catalog edits; nil fields are left untouched.
type ProductUpdate struct {
	DeviceName     *string                `json:"deviceName"`
	DisplayName    *string                `json:"displayName"`
	Model          *string                `json:"model"`
	ColorOptions   []string               `json:"colorOptions"`
	StorageOptions []models.StorageOption `json:"storageOptions"`
	Rating         *float64               `json:"rating"`
	Specs          []string               `json:"specs"`
	ReleaseDate    *string                `json:"releaseDate"`
	ImagePath      *string                `json:"imagePath"`
}

// UpdateProduct applies a partial update to one catalog entry.
func (r *ConfigRepository) UpdateProduct(id string, upd *ProductUpdate) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cfg, err := r.read()
	if err != nil {
		return nil, err
	}
	p := cfg.Product(id)
	if p == nil {
		return nil, utils.ErrProductNotFound
	}
	if upd.DeviceName != nil {
		p.DeviceName = *upd.DeviceName
	}
	if upd.DisplayName != nil {
		p.DisplayName = *upd.DisplayName
	}
	if upd.Model != nil {
		p.Model = *upd.Model
	}
	if upd.ColorOptions != nil {
		p.ColorOptions = upd.ColorOptions
	}
	if upd.StorageOptions != nil {
		derivePrices(upd.StorageOptions)
		p.StorageOptions = upd.StorageOptions
	}
	if upd.Rating != nil {
		p.Rating = upd.Rating
	}
	if upd.Specs != nil {
		p.Specs = upd.Specs
	}
	if upd.ReleaseDate != nil {
		p.ReleaseDate = *upd.ReleaseDate
	}
	if upd.ImagePath != nil {
		p.ImagePath = *upd.ImagePath
	}
	if err := writeJSONFile(r.path, cfg); err != nil {
		return nil, err
	}
	out := *p
	return &out, nil
}

// DeleteProduct removes a product from the catalog.
func (r *ConfigRepository) DeleteProduct(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cfg, err := r.read()
	if err != nil {
		return err
	}
	for i := range cfg.Products {
		if cfg.Products[i].ID == id {
			cfg.Products = append(cfg.Products[:i], cfg.Products[i+1:]...)
			return writeJSONFile(r.path, cfg)
		}
	}
	return utils.ErrProductNotFound
}

// derivePrices fills the selling price of each storage option from its
// original price and discount: price = round(originalPrice * (1 - discount/100)).
// Options without an original price keep the price they came with.
func derivePrices(opts []models.StorageOption) {
	for i := range opts {
		if opts[i].OriginalPrice == nil {
			continue
		}
		discount := 0
		if opts[i].Discount != nil {
			discount = *opts[i].Discount
		}
		opts[i].Price = int64(math.Round(float64(*opts[i].OriginalPrice) * (1 - float64(discount)/100)))
	}
}
