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

// Package gateway wires the RESP wire codec (resp), the connection
// pipeline and the read-through storage service (storage) into the
// single process that listens for Redis clients and serves them.
package gateway

import (
	"time"

	"github.com/prismcache/prismcache/storage"
)

// MaxCommandBytes 是单个连接 read buffer 在未能解出完整 Frame 前允许增长到的上限
//
// 超出该上限即认为客户端发送了畸形或过大的命令 回复错误并清空 buffer
const MaxCommandBytes = 10 * 1024

// Config 是网关的静态配置 对应 spec.md §6 的 YAML schema
type Config struct {
	Database struct {
		Providers []storage.ProviderConfig `config:"providers"`
	} `config:"database"`

	Cache struct {
		MaxEntries int `config:"max_entries"`
		TTLSeconds int `config:"ttl_seconds"`
	} `config:"cache"`

	Server struct {
		BindAddress string `config:"bind_address"`
	} `config:"server"`
}

func (c Config) maxEntries() int {
	if c.Cache.MaxEntries <= 0 {
		return 10000
	}
	return c.Cache.MaxEntries
}

func (c Config) ttl() time.Duration {
	if c.Cache.TTLSeconds <= 0 {
		return 300 * time.Second
	}
	return time.Duration(c.Cache.TTLSeconds) * time.Second
}

func (c Config) bindAddress() string {
	if c.Server.BindAddress == "" {
		return "127.0.0.1:6379"
	}
	return c.Server.BindAddress
}
