// Copyright 2025 The packetd Authors
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package storage

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// cacheKey 是缓存的复合键 (provider, id)
type cacheKey struct {
	provider string
	id       string
}

// Cache 是容量有界、按 TTL 过期的 (provider, id) -> Record 映射
//
// 命中的新鲜度判断 TTL 淘汰策略均委托给 expirable.LRU: 它在每次写入时重置条目的过期时间
// (对应 "TTL 相对于最后一次写入计时" 的不变式) 并在超出容量时淘汰最久未使用的条目
//
// 这与 common/socket/ttlcache.go 里手写的 `mutex + map + 后台 gc()` 思路一致 区别只是
// 淘汰结构换成了现成的 LRU 队列 以便同时满足容量上限 而不是另起一个定时扫描 goroutine
type Cache struct {
	lru *expirable.LRU[cacheKey, Record]
}

// NewCache 创建并返回 *Cache 实例
func NewCache(maxEntries int, ttl time.Duration) *Cache {
	return &Cache{
		lru: expirable.NewLRU[cacheKey, Record](maxEntries, nil, ttl),
	}
}

// Get 查找 (provider, id) 过期或不存在的条目都返回 ok=false
func (c *Cache) Get(provider, id string) (Record, bool) {
	return c.lru.Get(cacheKey{provider: provider, id: id})
}

// Set 写入或刷新 (provider, id) 的条目 重置其 TTL
func (c *Cache) Set(provider, id string, record Record) {
	c.lru.Add(cacheKey{provider: provider, id: id}, record)
}

// Len 返回当前存活的条目数量 不超过构造时设置的 maxEntries
func (c *Cache) Len() int {
	return c.lru.Len()
}
