package ledger

import (
	"context"
	"strings"
	"sync"

	"Audilog/pkg/kv"
)

// Product is the derived, read-only projection of one purchasable listing.
// It is recomputed from the ledger on every read and never stored.
type Product struct {
	Key          ProductKey
	VendorID     string
	Name         string
	Description  string
	Image        string
	Remaining    int
	Manufactured string
	Expires      string
	VendorPhone  string
}

// ListingInput is what a vendor submits to list an item.
type ListingInput struct {
	Phone        string
	Item         string
	Count        int
	Manufactured string
	Expires      string
	Description  string
	Image        string
}

// Receipt describes one applied purchase.
type Receipt struct {
	RecordID   string `json:"record_id"`
	CustomerID string `json:"customer_id"`
	Item       string `json:"item_name"`
	Quantity   int    `json:"quantity"`
	Remaining  int    `json:"remaining_count"`
}

// Service owns the ledger. HTTP handlers run concurrently, so a single mutex
// serializes every read-modify-write and the log behaves as if it had one
// writer.
type Service struct {
	mu    sync.Mutex
	store *RecordStore
	alloc *Allocator
}

func NewService(store kv.Store) *Service {
	return &Service{
		store: NewRecordStore(store),
		alloc: NewAllocator(store),
	}
}

func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

// CreateListing allocates a vendor id and appends the listing, returning the
// assigned id for the vendor to keep.
func (s *Service) CreateListing(ctx context.Context, in ListingInput) (string, error) {
	if strings.TrimSpace(in.Phone) == "" || strings.TrimSpace(in.Item) == "" {
		return "", ErrInvalidListing
	}
	if in.Count < 0 {
		return "", ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.alloc.Allocate(ctx, KindVendor)
	if err != nil {
		return "", err
	}

	rec := Record{
		ID:   id,
		Kind: KindVendor,
		Vendor: &VendorListing{
			Phone:        in.Phone,
			Item:         in.Item,
			Count:        in.Count,
			Manufactured: in.Manufactured,
			Expires:      in.Expires,
			Description:  in.Description,
			Image:        in.Image,
		},
	}

	if err := s.store.Append(ctx, rec); err != nil {
		return "", err
	}
	return id, nil
}

// RegisterCustomer hands out the next customer identifier.
func (s *Service) RegisterCustomer(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.alloc.Allocate(ctx, KindCustomer)
}

// Records returns the full ledger in insertion order.
func (s *Service) Records(ctx context.Context) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.store.ReadAll(ctx)
}

// AvailableProducts projects the vendor records with stock remaining, in
// ledger insertion order. Calling it twice with no intervening mutation
// yields equal output.
func (s *Service) AvailableProducts(ctx context.Context) ([]Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.availableLocked(ctx)
}

func (s *Service) availableLocked(ctx context.Context) ([]Product, error) {
	records, err := s.store.ReadAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]Product, 0, len(records))
	for _, r := range records {
		if r.Kind != KindVendor || r.Vendor == nil || r.Vendor.Count <= 0 {
			continue
		}
		out = append(out, Product{
			Key:          ProductKey{VendorID: r.ID, Item: r.Vendor.Item},
			VendorID:     r.ID,
			Name:         r.Vendor.Item,
			Description:  r.Vendor.Description,
			Image:        r.Vendor.Image,
			Remaining:    r.Vendor.Count,
			Manufactured: r.Vendor.Manufactured,
			Expires:      r.Vendor.Expires,
			VendorPhone:  r.Vendor.Phone,
		})
	}
	return out, nil
}

// Purchase decrements the matching vendor listing and appends the purchase
// snapshot as one unit: the ledger is read once, both changes are computed
// against that snapshot, and the result is written back once. On any failed
// precondition nothing is written.
func (s *Service) Purchase(ctx context.Context, customerID string, key ProductKey, qty int) (Receipt, error) {
	if qty <= 0 {
		return Receipt{}, ErrInvalidQuantity
	}
	if strings.TrimSpace(customerID) == "" {
		return Receipt{}, ErrInvalidCustomer
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.store.ReadAll(ctx)
	if err != nil {
		return Receipt{}, err
	}

	idx := -1
	for i, r := range records {
		if r.Kind == KindVendor && r.ID == key.VendorID && r.Vendor != nil && r.Vendor.Item == key.Item {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Receipt{}, ErrProductNotFound
	}

	listing := records[idx].Vendor
	if listing.Count < qty {
		return Receipt{}, ErrInsufficientStock
	}

	// All preconditions hold; only now may anything durable change. The
	// purchase record id comes from the customer namespace so ledger-wide id
	// uniqueness survives repeat purchases by the same customer.
	recID, err := s.alloc.Allocate(ctx, KindCustomer)
	if err != nil {
		return Receipt{}, err
	}

	listing.Count -= qty
	records = append(records, Record{
		ID:   recID,
		Kind: KindCustomer,
		Customer: &PurchaseEntry{
			CustomerID:   customerID,
			Item:         key.Item,
			Quantity:     qty,
			Manufactured: listing.Manufactured,
			Expires:      listing.Expires,
		},
	})

	if err := s.store.WriteAll(ctx, records); err != nil {
		return Receipt{}, err
	}

	return Receipt{
		RecordID:   recID,
		CustomerID: customerID,
		Item:       key.Item,
		Quantity:   qty,
		Remaining:  listing.Count,
	}, nil
}
