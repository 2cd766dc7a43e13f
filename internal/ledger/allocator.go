package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"Audilog/pkg/kv"
)

// issuedIDsKey holds the JSON array of every identifier ever handed out.
const issuedIDsKey = "audilog_issued_ids"

var kindPrefixes = map[Kind]string{
	KindVendor:   "v",
	KindCustomer: "c",
}

// Allocator assigns sequential per-kind identifiers: the kind's prefix letter
// followed by the smallest positive integer not already issued. Each id is
// durably recorded before it is returned, so a retry after a crash cannot
// reissue it.
type Allocator struct {
	kv kv.Store
}

func NewAllocator(store kv.Store) *Allocator {
	return &Allocator{kv: store}
}

func (a *Allocator) Allocate(ctx context.Context, kind Kind) (string, error) {
	prefix, ok := kindPrefixes[kind]
	if !ok {
		return "", fmt.Errorf("unknown record kind %q", kind)
	}

	issued, err := a.readIssued(ctx)
	if err != nil {
		return "", err
	}

	taken := make(map[string]struct{}, len(issued))
	for _, id := range issued {
		taken[id] = struct{}{}
	}

	for n := 1; ; n++ {
		id := prefix + strconv.Itoa(n)
		if _, used := taken[id]; used {
			continue
		}
		if err := a.writeIssued(ctx, append(issued, id)); err != nil {
			return "", err
		}
		return id, nil
	}
}

func (a *Allocator) readIssued(ctx context.Context) ([]string, error) {
	raw, ok, err := a.kv.Get(ctx, issuedIDsKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	var issued []string
	if err := json.Unmarshal([]byte(raw), &issued); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptStore, err)
	}
	return issued, nil
}

func (a *Allocator) writeIssued(ctx context.Context, issued []string) error {
	raw, err := json.Marshal(issued)
	if err != nil {
		return err
	}
	return a.kv.Set(ctx, issuedIDsKey, string(raw))
}
