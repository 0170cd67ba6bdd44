package repository

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/phonevilla/store_api/internal/models"
	"github.com/phonevilla/store_api/internal/utils"
)

// OrderRepository handles data access for orders. Orders are append-only:
// there is no update or delete path. The in-memory map is the source of
// truth; data/orders.json is rewritten after each successful creation.
type OrderRepository struct {
	mu     sync.RWMutex
	path   string
	orders map[string]models.Order
}

// NewOrderRepository creates an OrderRepository backed by the given file and
// loads any persisted orders.
func NewOrderRepository(path string) (*OrderRepository, error) {
	r := &OrderRepository{path: path, orders: make(map[string]models.Order)}
	var persisted []models.Order
	if err := readJSONFile(path, &persisted); err != nil {
		if !isNotExist(err) {
			return nil, err
		}
		if err := writeJSONFile(path, []models.Order{}); err != nil {
			return nil, err
		}
		return r, nil
	}
	for _, o := range persisted {
		r.orders[o.ID] = o
	}
	return r, nil
}

// Create stamps id and creation time on the draft and persists the order.
func (r *OrderRepository) Create(draft models.OrderDraft) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order := r.insert(draft)
	if err := r.save(); err != nil {
		delete(r.orders, order.ID)
		return nil, err
	}
	return &order, nil
}

// CreateBatch persists one order per draft with a single file write at the
// end. If that write fails, the batch's entries are removed from the map
// again so a failed checkout leaves no half-created orders behind.
func (r *OrderRepository) CreateBatch(drafts []models.OrderDraft) ([]models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	created := make([]models.Order, 0, len(drafts))
	for _, d := range drafts {
		created = append(created, r.insert(d))
	}
	if err := r.save(); err != nil {
		for _, o := range created {
			delete(r.orders, o.ID)
		}
		return nil, err
	}
	return created, nil
}

// Get returns one order by id.
func (r *OrderRepository) Get(id string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, utils.ErrOrderNotFound
	}
	return &o, nil
}

// List returns all orders, newest first.
func (r *OrderRepository) List() []models.Order {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := r.snapshot()
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt > out[j].CreatedAt })
	return out
}

func (r *OrderRepository) insert(d models.OrderDraft) models.Order {
	order := models.Order{
		ID:                uuid.New().String(),
		CustomerName:      d.CustomerName,
		Phone:             d.Phone,
		Address:           d.Address,
		PinCode:           d.PinCode,
		ProductID:         d.ProductID,
		ProductName:       d.ProductName,
		Storage:           d.Storage,
		Color:             d.Color,
		FullPrice:         d.FullPrice,
		PaidAmount:        d.PaidAmount,
		RemainingBalance:  d.RemainingBalance,
		PaymentType:       d.PaymentType,
		PaymentScreenshot: d.PaymentScreenshot,
		CreatedAt:         time.Now().Format(time.RFC3339),
	}
	r.orders[order.ID] = order
	return order
}

func (r *OrderRepository) snapshot() []models.Order {
	out := make([]models.Order, 0, len(r.orders))
	for _, o := range r.orders {
		out = append(out, o)
	}
	return out
}

func (r *OrderRepository) save() error {
	out := r.snapshot()
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt < out[j].CreatedAt })
	return writeJSONFile(r.path, out)
}
