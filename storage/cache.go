// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"time"

	cache "github.com/patrickmn/go-cache"
)

// Cache - committed read cache in front of leveldb
type Cache interface {
	Get(string) ([]byte, bool, bool)
	Set(string, []byte)
	SetDeleted(string)
	Clear()
}

const (
	defaultExpiration = 2 * time.Minute
	cleanupInterval   = 1 * time.Minute
)

type dbCache struct {
	cache *cache.Cache
}

type cacheData struct {
	deleted bool
	value   []byte
}

func newCache() Cache {
	return &dbCache{
		cache: cache.New(defaultExpiration, cleanupInterval),
	}
}

// Get - returns value, deleted flag and found flag
func (c *dbCache) Get(key string) ([]byte, bool, bool) {
	obj, found := c.cache.Get(key)
	if !found {
		return nil, false, false
	}
	data := obj.(cacheData)
	return data.value, data.deleted, true
}

func (c *dbCache) Set(key string, value []byte) {
	c.cache.Set(key, cacheData{value: value}, cache.DefaultExpiration)
}

func (c *dbCache) SetDeleted(key string) {
	c.cache.Set(key, cacheData{deleted: true}, cache.DefaultExpiration)
}

func (c *dbCache) Clear() {
	c.cache.Flush()
}
