package models

// CartItem is one line of the shopping cart. The dedup identity of a line
// is the (ProductID, Storage, Color) triple; adding the same combination
// again increments Quantity instead of appending a new line.
type CartItem struct {
	ID        string `json:"id"`
	ProductID string `json:"productId"`
	Storage   string `json:"storage"`
	Color     string `json:"color,omitempty"`
	Quantity  int    `json:"quantity"`
	AddedAt   string `json:"addedAt"`
}

// SameVariant reports whether two lines refer to the same purchasable variant.
func (i *CartItem) SameVariant(productID, storage, color string) bool {
	return i.ProductID == productID && i.Storage == storage && i.Color == color
}
