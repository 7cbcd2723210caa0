// Package cache provides the resume-stamp store for the ordering pipeline.
//
// After each successful text → binary conversion the pipeline records the
// content hash of the attribute file. On a later run against the same data
// directory, an attribute whose recorded hash still matches its source file
// (and whose binary output still exists) is skipped. Stamps live in the
// user's cache directory; deleting them only costs a reconversion.
package cache

import "context"

// Cache stores resume stamps under string keys.
type Cache interface {
	// Get retrieves a stamp. The second return value reports whether the
	// key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a stamp, overwriting any previous value under the key.
	Set(ctx context.Context, key string, data []byte) error

	// Close releases any resources held by the store.
	Close() error
}
