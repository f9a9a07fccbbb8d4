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

package confengine

import (
	"os"
	"strings"

	"github.com/elastic/go-ucfg"
)

// DefaultEnvPrefix 是环境变量覆盖的前缀 spec.md §6 要求的 schema
const DefaultEnvPrefix = "PRISM_CACHE__"

// LoadConfigPathWithEnv 加载 YAML 文件后 再用前缀为 DefaultEnvPrefix 的环境变量覆盖
//
// 环境变量名去掉前缀后 以 "__" 分隔 映射为 ucfg 的路径分段 例如:
//
//	PRISM_CACHE__CACHE__TTL_SECONDS=60  ->  cache.ttl_seconds: 60
//
// 所有匹配的变量先汇总为一个 overlay 在 YAML 文档加载之后一次性 Merge 行为上相当于"环境变量优先于文件"
func LoadConfigPathWithEnv(path string) (*Config, error) {
	cfg, err := LoadConfigPath(path)
	if err != nil {
		return nil, err
	}
	return applyEnvOverlay(cfg, DefaultEnvPrefix, os.Environ())
}

func applyEnvOverlay(cfg *Config, prefix string, environ []string) (*Config, error) {
	overlay := map[string]any{}
	for _, kv := range environ {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, prefix) {
			continue
		}

		path := strings.Split(strings.TrimPrefix(name, prefix), "__")
		setNestedValue(overlay, path, value)
	}
	if len(overlay) == 0 {
		return cfg, nil
	}

	overlayCfg, err := ucfg.NewFrom(overlay, ucfg.PathSep("."))
	if err != nil {
		return nil, err
	}
	if err := cfg.conf.Merge(overlayCfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setNestedValue 把用 "__" 切分的路径段小写化后构造出嵌套 map 最后一段写入 value
func setNestedValue(root map[string]any, path []string, value string) {
	cur := root
	for i, segment := range path {
		key := strings.ToLower(segment)
		if i == len(path)-1 {
			cur[key] = value
			return
		}

		next, ok := cur[key].(map[string]any)
		if !ok {
			next = map[string]any{}
			cur[key] = next
		}
		cur = next
	}
}
