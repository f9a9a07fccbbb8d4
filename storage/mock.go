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
	_ "embed"

	"github.com/goccy/go-json"
)

//go:embed fixtures/mock_records.json
var mockFixtureContent []byte

// MockAdapter 是一个以内存 map 为后端的测试替身 用内部固定的 fixture 数据加
// 可选的 settings 覆盖来构造记录 供本地开发以及端到端测试使用 不连接任何真实后端
type MockAdapter struct {
	records map[string]Record
}

// NewMockAdapter 从内置 fixture 构造 MockAdapter
//
// 支持的可选 settings:
//   - name_prefix: 为每条记录的 "name" 字段加上前缀
//   - default_age: 为没有 "age" 字段的记录补上该值
func NewMockAdapter(settings map[string]string) (*MockAdapter, error) {
	var fixtures []Record
	if err := json.Unmarshal(mockFixtureContent, &fixtures); err != nil {
		return nil, newConfigError("mock: failed to decode embedded fixture: %v", err)
	}

	namePrefix := settings["name_prefix"]
	defaultAge := settings["default_age"]

	records := make(map[string]Record, len(fixtures))
	for _, rec := range fixtures {
		id, ok := rec["id"].(string)
		if !ok {
			continue
		}

		if namePrefix != "" {
			if name, ok := rec["name"].(string); ok {
				rec["name"] = namePrefix + name
			}
		}
		if defaultAge != "" {
			if _, ok := rec["age"]; !ok {
				rec["age"] = defaultAge
			}
		}

		records[id] = rec
	}

	return &MockAdapter{records: records}, nil
}

// FetchRecord 返回 "id" 字段等于 id 的记录 entity 只用于区分调用来源 不影响查找
func (a *MockAdapter) FetchRecord(_ context.Context, _ string, id string) ([]Record, error) {
	rec, ok := a.records[id]
	if !ok {
		return nil, ErrRecordNotFound
	}
	return []Record{rec}, nil
}
