package ledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"Audilog/pkg/kv"
)

func vendorRecord(id, item string, count int) Record {
	return Record{
		ID:   id,
		Kind: KindVendor,
		Vendor: &VendorListing{
			Phone: "+1-555-0100",
			Item:  item,
			Count: count,
		},
	}
}

func TestRecordStore_EmptyUntilInitialized(t *testing.T) {
	ctx := context.Background()
	s := NewRecordStore(kv.NewMemStore())

	records, err := s.ReadAll(ctx)
	require.NoError(t, err)
	require.Empty(t, records)
}

func TestRecordStore_AppendPreservesOrder(t *testing.T) {
	ctx := context.Background()
	s := NewRecordStore(kv.NewMemStore())

	require.NoError(t, s.Append(ctx, vendorRecord("v1", "Rice", 10)))
	require.NoError(t, s.Append(ctx, vendorRecord("v2", "Dal", 4)))
	require.NoError(t, s.Append(ctx, vendorRecord("v3", "Ghee", 2)))

	records, err := s.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 3)
	for i, want := range []string{"v1", "v2", "v3"} {
		require.Equal(t, want, records[i].ID)
	}
}

func TestRecordStore_WriteAllReplaces(t *testing.T) {
	ctx := context.Background()
	s := NewRecordStore(kv.NewMemStore())

	require.NoError(t, s.Append(ctx, vendorRecord("v1", "Rice", 10)))
	require.NoError(t, s.WriteAll(ctx, []Record{vendorRecord("v2", "Dal", 4)}))

	records, err := s.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "v2", records[0].ID)
}

func TestRecordStore_UpdateByID(t *testing.T) {
	ctx := context.Background()
	s := NewRecordStore(kv.NewMemStore())

	require.NoError(t, s.Append(ctx, vendorRecord("v1", "Rice", 10)))
	require.NoError(t, s.Append(ctx, vendorRecord("v2", "Dal", 4)))

	err := s.UpdateByID(ctx, "v2", func(r *Record) { r.Vendor.Count = 1 })
	require.NoError(t, err)

	records, err := s.ReadAll(ctx)
	require.NoError(t, err)
	require.Equal(t, 10, records[0].Vendor.Count)
	require.Equal(t, 1, records[1].Vendor.Count)
}

func TestRecordStore_UpdateByIDMissingIsNoOp(t *testing.T) {
	ctx := context.Background()
	s := NewRecordStore(kv.NewMemStore())

	require.NoError(t, s.Append(ctx, vendorRecord("v1", "Rice", 10)))

	err := s.UpdateByID(ctx, "v99", func(r *Record) { r.Vendor.Count = 0 })
	require.NoError(t, err)

	records, err := s.ReadAll(ctx)
	require.NoError(t, err)
	require.Equal(t, 10, records[0].Vendor.Count)
}

func TestRecordStore_CorruptValue(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemStore()
	require.NoError(t, store.Set(ctx, recordsKey, "{definitely not an array"))

	s := NewRecordStore(store)
	_, err := s.ReadAll(ctx)
	require.ErrorIs(t, err, ErrCorruptStore)
}
