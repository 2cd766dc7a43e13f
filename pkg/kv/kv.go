// Package kv is the durable key-value collaborator the ledger and storefront
// persist through: string keys, string values, no expiry.
package kv

import "context"

// Store is the persistence surface. Get reports absence via the bool rather
// than an error, since an uninitialized key is a normal state.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Ping(ctx context.Context) error
}
