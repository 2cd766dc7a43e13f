package ledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"Audilog/pkg/kv"
)

func newTestService(t *testing.T) (*Service, *kv.MemStore) {
	t.Helper()
	store := kv.NewMemStore()
	return NewService(store), store
}

func listRice(t *testing.T, svc *Service, count int) string {
	t.Helper()

	id, err := svc.CreateListing(context.Background(), ListingInput{
		Phone:        "+91 98400 00001",
		Item:         "Rice",
		Count:        count,
		Manufactured: "2026-01-10",
		Expires:      "2026-07-10",
		Description:  "Ponni raw rice",
	})
	require.NoError(t, err)
	return id
}

func rawLedger(t *testing.T, store *kv.MemStore) string {
	t.Helper()

	raw, _, err := store.Get(context.Background(), recordsKey)
	require.NoError(t, err)
	return raw
}

func TestService_ListingThenProjection(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	id := listRice(t, svc, 10)
	require.Equal(t, "v1", id)

	products, err := svc.AvailableProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)

	p := products[0]
	require.Equal(t, ProductKey{VendorID: "v1", Item: "Rice"}, p.Key)
	require.Equal(t, 10, p.Remaining)
	require.Equal(t, "2026-01-10", p.Manufactured)
	require.Equal(t, "+91 98400 00001", p.VendorPhone)
}

func TestService_ProjectionIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	listRice(t, svc, 10)

	first, err := svc.AvailableProducts(ctx)
	require.NoError(t, err)
	second, err := svc.AvailableProducts(ctx)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestService_ProjectionSkipsDepletedListings(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	_, err := svc.CreateListing(ctx, ListingInput{Phone: "+91 98400 00002", Item: "Jaggery", Count: 0})
	require.NoError(t, err)

	products, err := svc.AvailableProducts(ctx)
	require.NoError(t, err)
	require.Empty(t, products)
}

func TestService_PurchaseDecrementsAndAppends(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	listRice(t, svc, 10)

	receipt, err := svc.Purchase(ctx, "c1", ProductKey{VendorID: "v1", Item: "Rice"}, 3)
	require.NoError(t, err)
	require.Equal(t, 3, receipt.Quantity)
	require.Equal(t, 7, receipt.Remaining)
	require.Equal(t, "c1", receipt.CustomerID)

	products, err := svc.AvailableProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	require.Equal(t, 7, products[0].Remaining)

	records, err := svc.Records(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)

	purchase := records[1]
	require.Equal(t, KindCustomer, purchase.Kind)
	require.NotNil(t, purchase.Customer)
	require.Equal(t, 3, purchase.Customer.Quantity)
	require.Equal(t, "c1", purchase.Customer.CustomerID)
	require.Equal(t, "2026-01-10", purchase.Customer.Manufactured)
	require.NotEqual(t, "c1", purchase.ID, "purchase record id must stay unique across the ledger")
}

func TestService_DepletedListingLeavesProjection(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	listRice(t, svc, 10)

	_, err := svc.Purchase(ctx, "c1", ProductKey{VendorID: "v1", Item: "Rice"}, 3)
	require.NoError(t, err)
	_, err = svc.Purchase(ctx, "c2", ProductKey{VendorID: "v1", Item: "Rice"}, 7)
	require.NoError(t, err)

	products, err := svc.AvailableProducts(ctx)
	require.NoError(t, err)
	require.Empty(t, products)

	// Depleted vendor records stay in the ledger at zero, they are only
	// filtered from the projection.
	records, err := svc.Records(ctx)
	require.NoError(t, err)
	require.Equal(t, "v1", records[0].ID)
	require.Equal(t, 0, records[0].Vendor.Count)
}

func TestService_PurchaseFailuresLeaveLedgerUntouched(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)
	listRice(t, svc, 5)

	before := rawLedger(t, store)

	cases := []struct {
		name       string
		customerID string
		key        ProductKey
		qty        int
		wantErr    error
	}{
		{"insufficient stock", "c1", ProductKey{"v1", "Rice"}, 10, ErrInsufficientStock},
		{"zero quantity", "c1", ProductKey{"v1", "Rice"}, 0, ErrInvalidQuantity},
		{"negative quantity", "c1", ProductKey{"v1", "Rice"}, -2, ErrInvalidQuantity},
		{"missing customer", "  ", ProductKey{"v1", "Rice"}, 1, ErrInvalidCustomer},
		{"unknown vendor", "c1", ProductKey{"v9", "Rice"}, 1, ErrProductNotFound},
		{"unknown item", "c1", ProductKey{"v1", "Dal"}, 1, ErrProductNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Purchase(ctx, tc.customerID, tc.key, tc.qty)
			require.ErrorIs(t, err, tc.wantErr)
			require.Equal(t, before, rawLedger(t, store), "ledger must be byte-for-byte unchanged")
		})
	}
}

func TestService_RepeatCustomerKeepsIDsUnique(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	listRice(t, svc, 10)

	for i := 0; i < 3; i++ {
		_, err := svc.Purchase(ctx, "c1", ProductKey{VendorID: "v1", Item: "Rice"}, 1)
		require.NoError(t, err)
	}

	records, err := svc.Records(ctx)
	require.NoError(t, err)

	ids := map[string]bool{}
	for _, r := range records {
		require.False(t, ids[r.ID], "duplicate record id %q", r.ID)
		ids[r.ID] = true
	}
}

func TestService_ItemNameContainingSeparator(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	_, err := svc.CreateListing(ctx, ListingInput{Phone: "+91 98400 00003", Item: "Basmati-Rice", Count: 4})
	require.NoError(t, err)

	products, err := svc.AvailableProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)

	key, err := ParseProductKey(products[0].Key.String())
	require.NoError(t, err)

	receipt, err := svc.Purchase(ctx, "c1", key, 1)
	require.NoError(t, err)
	require.Equal(t, "Basmati-Rice", receipt.Item)
}

func TestService_RegisterCustomer(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	id, err := svc.RegisterCustomer(ctx)
	require.NoError(t, err)
	require.Equal(t, "c1", id)

	id, err = svc.RegisterCustomer(ctx)
	require.NoError(t, err)
	require.Equal(t, "c2", id)
}

func TestService_CreateListingValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	_, err := svc.CreateListing(ctx, ListingInput{Phone: "", Item: "Rice", Count: 1})
	require.ErrorIs(t, err, ErrInvalidListing)

	_, err = svc.CreateListing(ctx, ListingInput{Phone: "+91 98400 00004", Item: " ", Count: 1})
	require.ErrorIs(t, err, ErrInvalidListing)

	_, err = svc.CreateListing(ctx, ListingInput{Phone: "+91 98400 00004", Item: "Rice", Count: -1})
	require.ErrorIs(t, err, ErrInvalidQuantity)
}
