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
	"context"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/trace"
)

// Service 组合 Cache 与 Registry 对外暴露唯一的读路径 Fetch
type Service struct {
	cache    *Cache
	registry *Registry
	tracer   trace.Tracer
}

// NewService 创建并返回 *Service 实例
func NewService(cache *Cache, registry *Registry) *Service {
	return &Service{
		cache:    cache,
		registry: registry,
		tracer:   trace.NewNoopTracerProvider().Tracer("storage"),
	}
}

// SetTracer 替换默认的 no-op tracer 供上层以真实的 TracerProvider 接入
func (s *Service) SetTracer(tracer trace.Tracer) {
	s.tracer = tracer
}

// Fetch 实现读穿透语义: 先查缓存 未命中则查后端 查到后回填缓存
//
// 1. 查 Cache 命中直接返回
// 2. 在 Registry 中解析 provider 未注册返回 ErrProviderNotFound
// 3. 调用 adapter.FetchRecord
//   - 非空结果: 取第一条 写回 Cache(Cache.Set 没有失败路径) 返回
//   - 空结果或 ErrRecordNotFound: 返回 ErrRecordNotFound
//   - 其余错误(均已被适配器包裹为 ErrBackend): 原样向上抛出
func (s *Service) Fetch(ctx context.Context, provider, id string) (Record, error) {
	ctx, span := s.tracer.Start(ctx, "storage.Fetch")
	defer span.End()

	if record, ok := s.cache.Get(provider, id); ok {
		return record, nil
	}

	adapter, err := s.registry.Lookup(provider)
	if err != nil {
		return nil, err
	}

	records, err := adapter.FetchRecord(ctx, provider, id)
	switch {
	case err != nil && errors.Is(err, ErrRecordNotFound):
		return nil, ErrRecordNotFound
	case err != nil:
		return nil, err
	case len(records) == 0:
		return nil, ErrRecordNotFound
	}

	record := records[0]
	s.cache.Set(provider, id, record)
	return record, nil
}
