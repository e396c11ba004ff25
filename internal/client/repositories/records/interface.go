// Package records is the key/value table behind the vault. Values are opaque
// blobs; encryption and the meaning of individual keys live in the vault.
package records

import "context"

// Repository stores opaque values by key.
//
// Get returns (nil, nil) for a missing key. Set overwrites any prior value.
// Delete of a missing key is not an error.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
