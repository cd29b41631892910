// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package wallet - short lived cache for expensive wallet reads
package wallet

import (
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"

	"github.com/bitmark-inc/lnpayd/fault"
)

// ComputeFunc - produce a fresh value for a cache key
type ComputeFunc func() (interface{}, error)

type entry struct {
	value      interface{}
	insertedAt time.Time
}

// Cache - values kept for a caller supplied time to live
//
// expiry is checked on read, nothing runs in the background
type Cache struct {
	entries *cache.Cache
	flight  singleflight.Group
	now     func() time.Time
}

// New - create an empty cache
func New() *Cache {
	return NewWithClock(time.Now)
}

// NewWithClock - create an empty cache using a specific time source
func NewWithClock(now func() time.Time) *Cache {
	return &Cache{
		entries: cache.New(cache.NoExpiration, 0),
		now:     now,
	}
}

func (c *Cache) fresh(key string, ttl time.Duration) (interface{}, bool) {
	item, found := c.entries.Get(key)
	if !found {
		return nil, false
	}
	e := item.(entry)
	if c.now().Sub(e.insertedAt) >= ttl {
		return nil, false
	}
	return e.value, true
}

// Get - return the cached value if fresh, otherwise compute and store it
//
// concurrent misses for one key share a single compute, a failed
// compute leaves any previous entry in place
func (c *Cache) Get(key string, ttl time.Duration, compute ComputeFunc) (interface{}, error) {
	if value, ok := c.fresh(key, ttl); ok {
		return value, nil
	}

	value, err, _ := c.flight.Do(key, func() (interface{}, error) {
		if value, ok := c.fresh(key, ttl); ok {
			return value, nil
		}
		value, err := compute()
		if nil != err {
			return nil, err
		}
		c.entries.Set(key, entry{value: value, insertedAt: c.now()}, cache.NoExpiration)
		return value, nil
	})
	if nil != err {
		return nil, fmt.Errorf("%w: %q: %w", fault.ErrCacheComputeFailed, key, err)
	}
	return value, nil
}

// Invalidate - drop one key
func (c *Cache) Invalidate(key string) {
	c.entries.Delete(key)
}

// Flush - drop every key
func (c *Cache) Flush() {
	c.entries.Flush()
}

// Len - number of stored entries, fresh or not
func (c *Cache) Len() int {
	return c.entries.ItemCount()
}
