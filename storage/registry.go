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

import "github.com/hashicorp/go-multierror"

// Registry 持有启动时构造的全部 Adapter 实例 按 provider 名称索引
//
// Registry 在构造完成后只读 并发读取无需加锁
type Registry struct {
	adapters map[string]Adapter
}

// NewRegistry 依据 cfgs 逐一构造 Adapter 任意一个构造失败都会终止整个构造过程
//
// 使用 multierror 聚合所有失败的 provider 以便一次性报告多个配置问题
func NewRegistry(cfgs []ProviderConfig) (*Registry, error) {
	adapters := make(map[string]Adapter, len(cfgs))

	var errs *multierror.Error
	for _, cfg := range cfgs {
		if _, dup := adapters[cfg.Name]; dup {
			errs = multierror.Append(errs, newConfigError("duplicate provider name %q", cfg.Name))
			continue
		}

		adapter, err := NewAdapter(cfg)
		if err != nil {
			errs = multierror.Append(errs, err)
			continue
		}
		adapters[cfg.Name] = adapter
	}

	if errs.ErrorOrNil() != nil {
		return nil, errs.ErrorOrNil()
	}
	return &Registry{adapters: adapters}, nil
}

// Lookup 按名称精确匹配查找 Adapter 未注册返回 ErrProviderNotFound
func (r *Registry) Lookup(provider string) (Adapter, error) {
	adapter, ok := r.adapters[provider]
	if !ok {
		return nil, ErrProviderNotFound
	}
	return adapter, nil
}
