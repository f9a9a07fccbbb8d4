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

import "context"

// Record 是后端返回的一条 JSON 记录 网关将其视为不透明的字段映射
//
// HGET 只对顶层 key 做精确匹配投影 不关心嵌套结构
type Record map[string]any

// Adapter 是后端数据源的统一抽象 每个 provider 在启动时绑定到唯一一个 Adapter 实例
//
// FetchRecord 的四种结果:
//   - (records, nil) 其中 len(records) > 0: 命中 调用方取首条
//   - ([]Record{}, nil): 查询成功但没有匹配记录 等价于 not-found
//   - (nil, ErrRecordNotFound): 显式声明 id 不存在
//   - (nil, 包裹了 ErrBackend 的错误): 后端不可用或查询失败
//
// entity 即 provider 名称(不是表名) 透传给适配器用于日志以及查询模板中可能包含的占位符
type Adapter interface {
	FetchRecord(ctx context.Context, entity, id string) ([]Record, error)
}

// Kind 枚举已知的适配器类型 构建时集合固定
type Kind string

const (
	KindMock    Kind = "mock"
	KindSQL     Kind = "postgres"
	KindAzDelta Kind = "azdelta"
)

// ProviderConfig 描述一个 provider 的静态配置
type ProviderConfig struct {
	Name     string            `config:"name"`
	Provider Kind              `config:"provider"`
	Settings map[string]string `config:"settings"`
}

// NewAdapter 依据 cfg.Provider 构造对应的 Adapter 实例
//
// 构造失败(缺少必需 setting 或后端不可达)是致命的 调用方应在启动阶段终止进程
func NewAdapter(cfg ProviderConfig) (Adapter, error) {
	switch cfg.Provider {
	case KindMock:
		return NewMockAdapter(cfg.Settings)
	case KindSQL:
		return NewPostgresAdapter(cfg.Settings)
	case KindAzDelta:
		return NewAzDeltaAdapter(cfg.Settings)
	default:
		return nil, newConfigError("unknown provider kind %q for provider %q", cfg.Provider, cfg.Name)
	}
}
