package models

// StorageOption is a purchasable (capacity, price) variant of a product.
// Price is whole INR. OriginalPrice/Discount are present when the listing
// shows a struck-through price.
type StorageOption struct {
	Capacity      string `json:"capacity"`
	Price         int64  `json:"price"`
	OriginalPrice *int64 `json:"originalPrice,omitempty"`
	Discount      *int   `json:"discount,omitempty"`
}

// Product represents a catalog entry owned by the store config file.
type Product struct {
	ID             string          `json:"id"`
	DeviceName     string          `json:"deviceName"`
	DisplayName    string          `json:"displayName"`
	Model          string          `json:"model"`
	ColorOptions   []string        `json:"colorOptions,omitempty"`
	StorageOptions []StorageOption `json:"storageOptions"`
	Rating         *float64        `json:"rating,omitempty"`
	Specs          []string        `json:"specs"`
	ReleaseDate    string          `json:"releaseDate,omitempty"`
	ImagePath      string          `json:"imagePath,omitempty"`
}

// StorageOption returns the variant matching capacity, or nil.
func (p *Product) StorageOption(capacity string) *StorageOption {
	for i := range p.StorageOptions {
		if p.StorageOptions[i].Capacity == capacity {
			return &p.StorageOptions[i]
		}
	}
	return nil
}

// PaymentConfig holds the manual UPI payment settings shown at checkout.
type PaymentConfig struct {
	UpiID                 string `json:"upiId"`
	QRCodeURL             string `json:"qrCodeUrl"`
	DefaultAdvancePayment int64  `json:"defaultAdvancePayment"`
}

// StoreConfig is the single global catalog + payment record backed by
// config/store-config.json.
type StoreConfig struct {
	Products      []Product     `json:"products"`
	PaymentConfig PaymentConfig `json:"paymentConfig"`
}

// Product returns the catalog entry with the given id, or nil.
func (c *StoreConfig) Product(id string) *Product {
	for i := range c.Products {
		if c.Products[i].ID == id {
			return &c.Products[i]
		}
	}
	return nil
}

// PriceOverride supersedes the catalog-derived price for one
// (productId, storage) pair. Kept in its own table so the catalog price
// survives and the override is independently revertible.
type PriceOverride struct {
	ProductID     string `json:"productId"`
	Storage       string `json:"storage"`
	Price         int64  `json:"price"`
	OriginalPrice *int64 `json:"originalPrice,omitempty"`
	Discount      *int   `json:"discount,omitempty"`
}
