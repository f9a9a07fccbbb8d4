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

// Package storage composes the cache and the provider registry into the
// single read-through operation the gateway exposes: Service.Fetch.
package storage

import "github.com/pkg/errors"

var (
	// ErrRecordNotFound 代表 entity/id 在后端中不存在 对应 GET/HGET 回复 Null
	ErrRecordNotFound = errors.New("storage: record not in database")

	// ErrProviderNotFound 代表 provider 名称未在 Registry 中注册 对应 GET/HGET 回复 Null
	ErrProviderNotFound = errors.New("storage: provider not found")

	// ErrBackend 代表适配器查询后端时发生的不可恢复错误 对应 -ERR Internal: <msg>
	ErrBackend = errors.New("storage: backend error")

	// ErrConfig 代表适配器构造阶段缺少必需配置 构造失败即为致命错误 不会进入运行时
	ErrConfig = errors.New("storage: config error")
)

func newBackendError(format string, args ...any) error {
	return errors.Wrapf(ErrBackend, format, args...)
}

func newConfigError(format string, args ...any) error {
	return errors.Wrapf(ErrConfig, format, args...)
}
