package storefront

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrEmptyCart = errors.New("cart is empty")

type OrderItem struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Qty       int    `json:"qty"`
	Price     int64  `json:"price"`
}

type Order struct {
	ID           string      `json:"id"`
	CustomerName string      `json:"customer_name"`
	Items        []OrderItem `json:"items"`
	Total        int64       `json:"total"`
	Status       string      `json:"status"`
	CreatedAt    time.Time   `json:"created_at"`
}

// OrderStore is the in-memory order book, seeded with the two demo orders.
type OrderStore struct {
	mu sync.RWMutex
	m  map[string]Order
}

func NewOrderStore() *OrderStore {
	s := &OrderStore{m: map[string]Order{}}
	for _, o := range sampleOrders() {
		s.m[o.ID] = o
	}
	return s
}

func (s *OrderStore) Create(ctx context.Context, o Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.m[o.ID] = o
	return nil
}

func (s *OrderStore) ListNewestFirst(ctx context.Context) ([]Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Order, 0, len(s.m))
	for _, o := range s.m {
		out = append(out, o)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// Checkout turns the current cart into a pending order and clears the cart.
func Checkout(ctx context.Context, cart *CartStore, orders *OrderStore, customerName string) (Order, error) {
	items := cart.Items(ctx)
	if len(items) == 0 {
		return Order{}, ErrEmptyCart
	}

	var total int64
	lines := make([]OrderItem, 0, len(items))
	for _, it := range items {
		lines = append(lines, OrderItem{
			ProductID: it.ID,
			Name:      it.Name,
			Qty:       it.Quantity,
			Price:     it.Price,
		})
		total += it.Price * int64(it.Quantity)
	}

	o := Order{
		ID:           "o_" + uuid.NewString(),
		CustomerName: customerName,
		Items:        lines,
		Total:        total,
		Status:       "pending",
		CreatedAt:    time.Now().UTC(),
	}

	if err := orders.Create(ctx, o); err != nil {
		return Order{}, err
	}
	if err := cart.Clear(ctx); err != nil {
		return Order{}, err
	}
	return o, nil
}

func sampleOrders() []Order {
	now := time.Now().UTC()
	return []Order{
		{
			ID:           "o_sample_1",
			CustomerName: "Priya Sharma",
			Items:        []OrderItem{{ProductID: "1", Name: "Fresh Tomatoes", Qty: 2, Price: 45}},
			Total:        90,
			Status:       "pending",
			CreatedAt:    now,
		},
		{
			ID:           "o_sample_2",
			CustomerName: "Raj Kumar",
			Items:        []OrderItem{{ProductID: "2", Name: "Handmade Pottery", Qty: 1, Price: 299}},
			Total:        299,
			Status:       "confirmed",
			CreatedAt:    now.Add(-24 * time.Hour),
		},
	}
}
