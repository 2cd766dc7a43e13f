// Package storefront is the marketplace side of the demo: a seeded product
// catalog, a durable shopping cart, a language preference, and a small order
// book fed by checkout.
package storefront

import (
	"context"
	"sort"
	"sync"
)

type Product struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Price       int64    `json:"price"`
	Image       string   `json:"image"`
	Seller      string   `json:"seller"`
	Category    string   `json:"category"`
	DistanceKM  float64  `json:"distance_km"`
	Tags        []string `json:"tags"`
	Description string   `json:"description"`
}

// Catalog is the in-memory product list, seeded with the fixed demo data at
// startup. It is never mutated afterwards.
type Catalog struct {
	mu sync.RWMutex
	m  map[string]Product
}

func NewCatalog() *Catalog {
	c := &Catalog{m: map[string]Product{}}
	for _, p := range sampleProducts() {
		c.m[p.ID] = p
	}
	return c
}

func (c *Catalog) ListSortedByID(ctx context.Context, category string) ([]Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Product, 0, len(c.m))
	for _, p := range c.m {
		if category != "" && p.Category != category {
			continue
		}
		out = append(out, p)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (c *Catalog) Get(ctx context.Context, id string) (Product, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	p, ok := c.m[id]
	return p, ok, nil
}

func sampleProducts() []Product {
	return []Product{
		{
			ID:          "1",
			Name:        "Fresh Tomatoes",
			Price:       45,
			Image:       "/api/placeholder/200/200",
			Seller:      "Kumar Vegetables",
			Category:    "vegetables",
			DistanceKM:  0.5,
			Tags:        []string{"Fresh", "Organic", "Local"},
			Description: "Fresh locally grown tomatoes, picked this morning",
		},
		{
			ID:          "2",
			Name:        "Handmade Pottery",
			Price:       299,
			Image:       "/api/placeholder/200/200",
			Seller:      "Chennai Crafts",
			Category:    "handicrafts",
			DistanceKM:  2.3,
			Tags:        []string{"Handmade", "Traditional", "Offers"},
			Description: "Beautiful handcrafted pottery made by local artisans",
		},
		{
			ID:          "3",
			Name:        "Coconut Oil",
			Price:       150,
			Image:       "/api/placeholder/200/200",
			Seller:      "Organic Store",
			Category:    "food",
			DistanceKM:  1.8,
			Tags:        []string{"Organic", "Pure", "Local"},
			Description: "Cold-pressed coconut oil from Kerala coconuts",
		},
	}
}
