/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package cache memoizes resolution results under a selectable retention
// strategy. Every Cache returned by New is safe for concurrent use.
package cache

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"dirpx.dev/bindx/cache/strategy"
)

// ErrInvalidSize is returned when a bounded strategy gets a non-positive size.
var ErrInvalidSize = errors.New("bindx(cache): size must be positive")

// Cache is a concurrency-safe key/value memo.
type Cache[K comparable, V any] interface {
	Get(key K) (V, bool)
	Add(key K, value V)
	Len() int
	Purge()
	// Strategy reports the retention policy.
	Strategy() strategy.Strategy
}

// New returns a cache for s. size bounds LRU, LFU and TTL caches; ttl is the
// entry lifetime of TTL caches. Lookups are counted in the
// bindx_cache_requests_total metric.
func New[K comparable, V any](s strategy.Strategy, size int, ttl time.Duration) (Cache[K, V], error) {
	var c Cache[K, V]
	switch s {
	case strategy.LRU:
		if size <= 0 {
			return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
		}
		l, err := lru.New[K, V](size)
		if err != nil {
			return nil, err
		}
		c = &lruCache[K, V]{c: l}
	case strategy.LFU:
		if size <= 0 {
			return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
		}
		q, err := lru.New2Q[K, V](size)
		if err != nil {
			return nil, err
		}
		c = &twoQueueCache[K, V]{c: q}
	case strategy.TTL:
		if size <= 0 {
			return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
		}
		if ttl <= 0 {
			return nil, fmt.Errorf("bindx(cache): ttl must be positive: %s", ttl)
		}
		c = &ttlCache[K, V]{c: expirable.NewLRU[K, V](size, nil, ttl)}
	case strategy.Unbounded:
		c = &mapCache[K, V]{}
	case strategy.None:
		c = noCache[K, V]{}
	default:
		return nil, fmt.Errorf("%w: %s", strategy.ErrUnknownStrategy, s)
	}
	return instrument(c), nil
}

type lruCache[K comparable, V any] struct{ c *lru.Cache[K, V] }

func (l *lruCache[K, V]) Get(key K) (V, bool)         { return l.c.Get(key) }
func (l *lruCache[K, V]) Add(key K, value V)          { l.c.Add(key, value) }
func (l *lruCache[K, V]) Len() int                    { return l.c.Len() }
func (l *lruCache[K, V]) Purge()                      { l.c.Purge() }
func (l *lruCache[K, V]) Strategy() strategy.Strategy { return strategy.LRU }

type twoQueueCache[K comparable, V any] struct{ c *lru.TwoQueueCache[K, V] }

func (q *twoQueueCache[K, V]) Get(key K) (V, bool)         { return q.c.Get(key) }
func (q *twoQueueCache[K, V]) Add(key K, value V)          { q.c.Add(key, value) }
func (q *twoQueueCache[K, V]) Len() int                    { return q.c.Len() }
func (q *twoQueueCache[K, V]) Purge()                      { q.c.Purge() }
func (q *twoQueueCache[K, V]) Strategy() strategy.Strategy { return strategy.LFU }

type ttlCache[K comparable, V any] struct{ c *expirable.LRU[K, V] }

func (e *ttlCache[K, V]) Get(key K) (V, bool)         { return e.c.Get(key) }
func (e *ttlCache[K, V]) Add(key K, value V)          { e.c.Add(key, value) }
func (e *ttlCache[K, V]) Len() int                    { return e.c.Len() }
func (e *ttlCache[K, V]) Purge()                      { e.c.Purge() }
func (e *ttlCache[K, V]) Strategy() strategy.Strategy { return strategy.TTL }

// mapCache retains everything. Racing Adds on one key keep the last value.
type mapCache[K comparable, V any] struct {
	m sync.Map // key: K, val: V
	n atomic.Int64
}

func (u *mapCache[K, V]) Get(key K) (V, bool) {
	v, ok := u.m.Load(key)
	if !ok {
		var zero V
		return zero, false
	}
	return v.(V), true
}

func (u *mapCache[K, V]) Add(key K, value V) {
	if _, loaded := u.m.Swap(key, value); !loaded {
		u.n.Add(1)
	}
}

func (u *mapCache[K, V]) Len() int { return int(u.n.Load()) }

func (u *mapCache[K, V]) Purge() {
	u.m.Range(func(k, _ any) bool {
		if _, ok := u.m.LoadAndDelete(k); ok {
			u.n.Add(-1)
		}
		return true
	})
}

func (u *mapCache[K, V]) Strategy() strategy.Strategy { return strategy.Unbounded }

type noCache[K comparable, V any] struct{}

func (noCache[K, V]) Get(K) (V, bool) {
	var zero V
	return zero, false
}
func (noCache[K, V]) Add(K, V)                    {}
func (noCache[K, V]) Len() int                    { return 0 }
func (noCache[K, V]) Purge()                      {}
func (noCache[K, V]) Strategy() strategy.Strategy { return strategy.None }
