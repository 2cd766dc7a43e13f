package ledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"Audilog/pkg/kv"
)

func TestAllocator_SequentialVendorIDs(t *testing.T) {
	ctx := context.Background()
	a := NewAllocator(kv.NewMemStore())

	for _, want := range []string{"v1", "v2", "v3"} {
		id, err := a.Allocate(ctx, KindVendor)
		require.NoError(t, err)
		require.Equal(t, want, id)
	}
}

func TestAllocator_FirstCustomerIDIsC1(t *testing.T) {
	ctx := context.Background()
	a := NewAllocator(kv.NewMemStore())

	id, err := a.Allocate(ctx, KindCustomer)
	require.NoError(t, err)
	require.Equal(t, "c1", id)
}

func TestAllocator_MixedKindsStayDistinct(t *testing.T) {
	ctx := context.Background()
	a := NewAllocator(kv.NewMemStore())

	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		kind := KindVendor
		if i%2 == 1 {
			kind = KindCustomer
		}

		id, err := a.Allocate(ctx, kind)
		require.NoError(t, err)
		require.False(t, seen[id], "duplicate id %q", id)
		require.Equal(t, kindPrefixes[kind], id[:1])
		seen[id] = true
	}
}

func TestAllocator_IssuedIDsSurviveReload(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemStore()

	a := NewAllocator(store)
	id, err := a.Allocate(ctx, KindVendor)
	require.NoError(t, err)
	require.Equal(t, "v1", id)

	// A fresh allocator over the same storage must not reissue v1.
	b := NewAllocator(store)
	id, err = b.Allocate(ctx, KindVendor)
	require.NoError(t, err)
	require.Equal(t, "v2", id)
}

func TestAllocator_UnknownKind(t *testing.T) {
	ctx := context.Background()
	a := NewAllocator(kv.NewMemStore())

	_, err := a.Allocate(ctx, Kind("warehouse"))
	require.Error(t, err)
}
