package storefront

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"Audilog/pkg/kv"
)

const cartKey = "localCommerce_cart"

var (
	ErrCorruptCart    = errors.New("stored cart data is corrupt")
	ErrUnknownProduct = errors.New("unknown product")
)

type CartItem struct {
	Product
	Quantity int `json:"quantity"`
}

// CartStore holds the cart in memory and writes it through to durable storage
// on every mutation. It is loaded exactly once, at construction; persistence
// is an explicit Save, not a lifecycle side effect.
type CartStore struct {
	mu    sync.Mutex
	kv    kv.Store
	items []CartItem
}

func NewCartStore(ctx context.Context, store kv.Store) (*CartStore, error) {
	c := &CartStore{kv: store}
	if err := c.load(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *CartStore) load(ctx context.Context) error {
	raw, ok, err := c.kv.Get(ctx, cartKey)
	if err != nil {
		return err
	}
	if !ok {
		c.items = nil
		return nil
	}

	var items []CartItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptCart, err)
	}
	c.items = items
	return nil
}

func (c *CartStore) save(ctx context.Context) error {
	items := c.items
	if items == nil {
		items = []CartItem{}
	}

	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return c.kv.Set(ctx, cartKey, string(raw))
}

// Items returns a copy of the cart contents.
func (c *CartStore) Items(ctx context.Context) []CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]CartItem, len(c.items))
	copy(out, c.items)
	return out
}

// Add puts one unit of p in the cart, incrementing the quantity when the
// product is already present.
func (c *CartStore) Add(ctx context.Context, p Product) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ID == p.ID {
			c.items[i].Quantity++
			return c.save(ctx)
		}
	}

	c.items = append(c.items, CartItem{Product: p, Quantity: 1})
	return c.save(ctx)
}

// UpdateQuantity sets the quantity for a product already in the cart. A
// quantity of zero or less removes the line.
func (c *CartStore) UpdateQuantity(ctx context.Context, productID string, qty int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if qty <= 0 {
		return c.removeLocked(ctx, productID)
	}

	for i := range c.items {
		if c.items[i].ID == productID {
			c.items[i].Quantity = qty
			return c.save(ctx)
		}
	}
	return ErrUnknownProduct
}

func (c *CartStore) Remove(ctx context.Context, productID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.removeLocked(ctx, productID)
}

func (c *CartStore) removeLocked(ctx context.Context, productID string) error {
	n := 0
	for _, it := range c.items {
		if it.ID != productID {
			c.items[n] = it
			n++
		}
	}
	c.items = c.items[:n]
	return c.save(ctx)
}

func (c *CartStore) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = nil
	return c.save(ctx)
}
