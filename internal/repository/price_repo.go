package repository

import (
	"sort"
	"sync"

	"github.com/phonevilla/store_api/internal/models"
	"github.com/phonevilla/store_api/internal/utils"
)

// PriceOverrideRepository handles the admin price override table backed by
// data/product-prices.json. Overrides are keyed by (productId, storage) and
// supersede catalog prices at read time without touching the config file,
// so removing an override reverts to the catalog price.
type PriceOverrideRepository struct {
	mu        sync.RWMutex
	path      string
	overrides map[string]models.PriceOverride
}

// NewPriceOverrideRepository creates the repository and loads persisted overrides.
func NewPriceOverrideRepository(path string) (*PriceOverrideRepository, error) {
	r := &PriceOverrideRepository{path: path, overrides: make(map[string]models.PriceOverride)}
	var persisted []models.PriceOverride
	if err := readJSONFile(path, &persisted); err != nil {
		if !isNotExist(err) {
			return nil, err
		}
		return r, nil
	}
	for _, o := range persisted {
		r.overrides[overrideKey(o.ProductID, o.Storage)] = o
	}
	return r, nil
}

// List returns all overrides ordered by product then storage.
func (r *PriceOverrideRepository) List() []models.PriceOverride {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.PriceOverride, 0, len(r.overrides))
	for _, o := range r.overrides {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ProductID != out[j].ProductID {
			return out[i].ProductID < out[j].ProductID
		}
		return out[i].Storage < out[j].Storage
	})
	return out
}

// Get returns the override for one (productId, storage) pair, or nil.
func (r *PriceOverrideRepository) Get(productID, storage string) *models.PriceOverride {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if o, ok := r.overrides[overrideKey(productID, storage)]; ok {
		return &o
	}
	return nil
}

// Upsert inserts or replaces the override for its (productId, storage) pair.
func (r *PriceOverrideRepository) Upsert(o models.PriceOverride) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := overrideKey(o.ProductID, o.Storage)
	prev, had := r.overrides[key]
	r.overrides[key] = o
	if err := r.save(); err != nil {
		if had {
			r.overrides[key] = prev
		} else {
			delete(r.overrides, key)
		}
		return err
	}
	return nil
}

// Delete removes the override for one pair, reverting it to the catalog price.
func (r *PriceOverrideRepository) Delete(productID, storage string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := overrideKey(productID, storage)
	if _, ok := r.overrides[key]; !ok {
		return utils.ErrOverrideNotFound
	}
	delete(r.overrides, key)
	return r.save()
}

func (r *PriceOverrideRepository) save() error {
	out := make([]models.PriceOverride, 0, len(r.overrides))
	for _, o := range r.overrides {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ProductID != out[j].ProductID {
			return out[i].ProductID < out[j].ProductID
		}
		return out[i].Storage < out[j].Storage
	})
	return writeJSONFile(r.path, out)
}

func overrideKey(productID, storage string) string {
	return productID + "|" + storage
}
