package ledger

import (
	"context"
	"encoding/json"
	"fmt"

	"Audilog/pkg/kv"
)

// recordsKey is the single durable key holding the whole ledger as a JSON
// array, insertion order preserved.
const recordsKey = "audilog_csv_data"

// RecordStore reads and writes the flat record log. Every mutation is a full
// read-modify-write of the backing value; there is no partial-write
// visibility.
type RecordStore struct {
	kv kv.Store
}

func NewRecordStore(store kv.Store) *RecordStore {
	return &RecordStore{kv: store}
}

func (s *RecordStore) Ping(ctx context.Context) error {
	return s.kv.Ping(ctx)
}

// ReadAll returns every record in insertion order. An absent key is an empty
// ledger; a present but undecodable value fails with ErrCorruptStore.
func (s *RecordStore) ReadAll(ctx context.Context) ([]Record, error) {
	raw, ok, err := s.kv.Get(ctx, recordsKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	var records []Record
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptStore, err)
	}
	return records, nil
}

// WriteAll replaces the entire store in one Set.
func (s *RecordStore) WriteAll(ctx context.Context, records []Record) error {
	if records == nil {
		records = []Record{}
	}

	raw, err := json.Marshal(records)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, recordsKey, string(raw))
}

func (s *RecordStore) Append(ctx context.Context, rec Record) error {
	records, err := s.ReadAll(ctx)
	if err != nil {
		return err
	}
	return s.WriteAll(ctx, append(records, rec))
}

// UpdateByID applies patch to the first record with a matching id and writes
// the result back. A missing id is a silent no-op, not an error.
func (s *RecordStore) UpdateByID(ctx context.Context, id string, patch func(*Record)) error {
	records, err := s.ReadAll(ctx)
	if err != nil {
		return err
	}

	for i := range records {
		if records[i].ID == id {
			patch(&records[i])
			return s.WriteAll(ctx, records)
		}
	}
	return nil
}
