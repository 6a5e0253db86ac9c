package memcache

import (
	"sync"
	"time"

	"bitfolio/pkg/types/cache"
)

var _ cache.Cache[string, any] = (*Cache[string, any])(nil)

type entry[V any] struct {
	value     V
	updatedAt time.Time
}

type Cache[K comparable, V any] struct {
	data  map[K]entry[V]
	mutex sync.RWMutex
	now   func() time.Time
}

type Option[K comparable, V any] func(*Cache[K, V])

func WithClock[K comparable, V any](now func() time.Time) Option[K, V] {
	return func(c *Cache[K, V]) {
		c.now = now
	}
}

func New[K comparable, V any](opts ...Option[K, V]) *Cache[K, V] {
	c := &Cache[K, V]{
		data: make(map[K]entry[V]),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	e, ok := c.data[key]
	return e.value, ok
}

func (c *Cache[K, V]) UpdatedAt(key K) (time.Time, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	e, ok := c.data[key]
	return e.updatedAt, ok
}

func (c *Cache[K, V]) Set(key K, value V) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.data[key] = entry[V]{value: value, updatedAt: c.now()}
}

func (c *Cache[K, V]) Delete(key K) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	delete(c.data, key)
}

func (c *Cache[K, V]) Keys() []K {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	keys := make([]K, 0, len(c.data))
	for k := range c.data {
		keys = append(keys, k)
	}
	return keys
}

func (c *Cache[K, V]) Len() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.data)
}
