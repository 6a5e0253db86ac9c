package cache

import "time"

type Cache[K comparable, V any] interface {
	Get(key K) (V, bool)
	Set(key K, value V)
	Delete(key K)
	Keys() []K
	Len() int
	// UpdatedAt reports when key was last written.
	UpdatedAt(key K) (time.Time, bool)
}
