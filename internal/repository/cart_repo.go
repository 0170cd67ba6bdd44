package repository

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/phonevilla/store_api/internal/models"
	"github.com/phonevilla/store_api/internal/utils"
)

// CartRepository handles data access for cart lines. Lines live in an
// in-memory map and every mutation rewrites data/cart.json in full; the
// mutex makes each mutation's read-modify-write atomic within the process.
type CartRepository struct {
	mu    sync.RWMutex
	path  string
	items map[string]models.CartItem
}

// NewCartRepository creates a CartRepository backed by the given file and
// loads any persisted lines.
func NewCartRepository(path string) (*CartRepository, error) {
	r := &CartRepository{path: path, items: make(map[string]models.CartItem)}
	var persisted []models.CartItem
	if err := readJSONFile(path, &persisted); err != nil {
		if !isNotExist(err) {
			return nil, err
		}
		if err := writeJSONFile(path, []models.CartItem{}); err != nil {
			return nil, err
		}
		return r, nil
	}
	for _, it := range persisted {
		r.items[it.ID] = it
	}
	return r, nil
}

// List returns all cart lines, oldest first.
func (r *CartRepository) List() []models.CartItem {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshot()
}

// Add merges the item into an existing line when the (productId, storage,
// color) triple matches, incrementing its quantity; otherwise it appends a
// new line. The returned line reflects the post-merge state.
func (r *CartRepository) Add(productID, storage, color string, quantity int) (*models.CartItem, error) {
	if quantity < 1 {
		return nil, utils.ErrInvalidQuantity
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, it := range r.items {
		if it.SameVariant(productID, storage, color) {
			prev := it
			it.Quantity += quantity
			r.items[id] = it
			if err := r.save(); err != nil {
				r.items[id] = prev
				return nil, err
			}
			return &it, nil
		}
	}

	item := models.CartItem{
		ID:        uuid.New().String(),
		ProductID: productID,
		Storage:   storage,
		Color:     color,
		Quantity:  quantity,
		AddedAt:   time.Now().Format(time.RFC3339),
	}
	r.items[item.ID] = item
	if err := r.save(); err != nil {
		delete(r.items, item.ID)
		return nil, err
	}
	return &item, nil
}

// UpdateQuantity sets the quantity of an existing line.
func (r *CartRepository) UpdateQuantity(id string, quantity int) (*models.CartItem, error) {
	if quantity < 1 {
		return nil, utils.ErrInvalidQuantity
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.items[id]
	if !ok {
		return nil, utils.ErrCartItemNotFound
	}
	prev := it
	it.Quantity = quantity
	r.items[id] = it
	if err := r.save(); err != nil {
		r.items[id] = prev
		return nil, err
	}
	return &it, nil
}

// Remove deletes one cart line.
func (r *CartRepository) Remove(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.items[id]
	if !ok {
		return utils.ErrCartItemNotFound
	}
	delete(r.items, id)
	if err := r.save(); err != nil {
		r.items[id] = it
		return err
	}
	return nil
}

// Clear removes every line, used after a successful checkout.
func (r *CartRepository) Clear() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	prev := r.items
	r.items = make(map[string]models.CartItem)
	if err := r.save(); err != nil {
		r.items = prev
		return err
	}
	return nil
}

func (r *CartRepository) snapshot() []models.CartItem {
	out := make([]models.CartItem, 0, len(r.items))
	for _, it := range r.items {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AddedAt < out[j].AddedAt })
	return out
}

func (r *CartRepository) save() error {
	return writeJSONFile(r.path, r.snapshot())
}
