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

package gateway

import (
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"

	"github.com/prismcache/prismcache/resp"
	"github.com/prismcache/prismcache/storage"
)

// dispatch 把一个已解析的 Command 映射为一个响应 Frame
//
// 实现 spec.md §4.4 的 command-to-storage mapping: PING/SET 不触碰 storage
// GET/HGET 都先把 key 在第一个冒号处切开 再调用 Service.Fetch
func (g *Gateway) dispatch(ctx context.Context, cmd resp.Command) resp.Frame {
	switch cmd.Name {
	case "PING":
		requestsTotal.WithLabelValues("PING").Inc()
		return resp.SimpleString("PONG")

	case "SET":
		requestsTotal.WithLabelValues("SET").Inc()
		if len(cmd.Args) < 2 {
			return wrongArity("set")
		}
		// SET 永远不修改可见存储状态 只是应答 ack 本身
		return resp.SimpleString("OK")

	case "GET":
		requestsTotal.WithLabelValues("GET").Inc()
		if len(cmd.Args) != 1 {
			return wrongArity("get")
		}
		return g.handleGet(ctx, cmd.Args[0])

	case "HGET":
		requestsTotal.WithLabelValues("HGET").Inc()
		if len(cmd.Args) < 2 {
			return wrongArity("hget")
		}
		return g.handleHGet(ctx, cmd.Args[0], cmd.Args[1:])

	default:
		requestsTotal.WithLabelValues("UNKNOWN").Inc()
		return resp.Error(fmt.Sprintf("ERR unknown command '%s'", cmd.Name))
	}
}

// splitKey 把 "<provider>:<id>" 在第一个冒号处切开 id 本身允许包含冒号
func splitKey(key string) (provider, id string, ok bool) {
	idx := strings.IndexByte(key, ':')
	if idx < 0 {
		return "", "", false
	}
	return key[:idx], key[idx+1:], true
}

func (g *Gateway) handleGet(ctx context.Context, key string) resp.Frame {
	provider, id, ok := splitKey(key)
	if !ok {
		return resp.Error(fmt.Sprintf("ERR invalid key %q: missing provider separator", key))
	}

	record, err := g.storage.Fetch(ctx, provider, id)
	if frame, handled := errorFrame(err); handled {
		return frame
	}

	body, err := json.Marshal(record)
	if err != nil {
		return resp.Error("ERR Internal: failed to encode record")
	}
	return resp.BulkString(body)
}

func (g *Gateway) handleHGet(ctx context.Context, key string, fields []string) resp.Frame {
	provider, id, ok := splitKey(key)
	if !ok {
		return resp.Error(fmt.Sprintf("ERR invalid key %q: missing provider separator", key))
	}

	record, err := g.storage.Fetch(ctx, provider, id)
	if frame, handled := errorFrame(err); handled {
		return frame
	}

	if len(fields) == 1 {
		return projectField(record, fields[0])
	}

	items := make([]resp.Frame, len(fields))
	for i, f := range fields {
		items[i] = projectField(record, f)
	}
	return resp.Array(items...)
}

// projectField 投影单个顶层字段 只对 JSON object 做精确字符串匹配 其余返回 Null
func projectField(record storage.Record, field string) resp.Frame {
	v, ok := record[field]
	if !ok {
		return resp.Null()
	}
	b, err := json.Marshal(v)
	if err != nil {
		return resp.Null()
	}
	return resp.BulkString(b)
}

// errorFrame 把 storage 层错误映射为回复 Frame
//
// record-not-in-database 与 provider-not-found 都折叠为 Null
// backend-err 与其他内部错误映射为 -ERR Internal: <msg>
func errorFrame(err error) (resp.Frame, bool) {
	switch {
	case err == nil:
		return resp.Frame{}, false
	case errors.Is(err, storage.ErrRecordNotFound), errors.Is(err, storage.ErrProviderNotFound):
		return resp.Null(), true
	default:
		return resp.Error(fmt.Sprintf("ERR Internal: %v", err)), true
	}
}

func wrongArity(name string) resp.Frame {
	return resp.Error(fmt.Sprintf("ERR wrong number of arguments for '%s'", name))
}
