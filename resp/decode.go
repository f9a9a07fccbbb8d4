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

package resp

import (
	"bytes"
	"strconv"
)

var crlf = []byte("\r\n")

// Decode 解析 b 中起始于位置 0 的一个完整 Frame
//
// 返回值三元组:
//   - (f, n, nil): 解析成功 f 为解析出的 Frame n 为消费的字节数
//   - (_, 0, ErrIncomplete): b 中的数据尚不足以构成一个完整 Frame 调用方应等待更多数据
//   - (_, 0, *ProtocolError): b 中的数据违反 RESP2 语法 调用方应丢弃整个 buffer
//
// Decode 只消费一个顶层 Frame 的字节 不会越界读取后续内容 嵌套数组递归解析
//
// 如果首个非空白字节不属于 RESP2 的五个类型前缀之一(`+-:$*`) Decode 会退化为旧版
// inline 命令解析 将 buffer 视为以空白分隔的命令行 返回一个 BulkString 数组 这是为了
// 兼容使用 `nc`/telnet 之类工具的交互式探测 不要求高性能
func Decode(b []byte) (Frame, int, error) {
	i := 0
	for i < len(b) && isInlineSpace(b[i]) {
		i++
	}
	if i == len(b) {
		return Frame{}, 0, ErrIncomplete
	}

	switch b[i] {
	case byte(KindSimpleString), byte(KindError), byte(KindInteger), byte(KindBulkString), byte(KindArray):
		f, n, err := decodeOne(b[i:])
		if err != nil {
			return Frame{}, 0, err
		}
		return f, i + n, nil
	default:
		return decodeInline(b, i)
	}
}

// decodeOne 实际的递归解析入口 要求 b[0] 是五种类型前缀之一
func decodeOne(b []byte) (Frame, int, error) {
	if len(b) == 0 {
		return Frame{}, 0, ErrIncomplete
	}

	switch Kind(b[0]) {
	case KindSimpleString:
		line, n, ok := readLine(b[1:])
		if !ok {
			return Frame{}, 0, ErrIncomplete
		}
		return SimpleString(string(line)), n + 1, nil

	case KindError:
		line, n, ok := readLine(b[1:])
		if !ok {
			return Frame{}, 0, ErrIncomplete
		}
		return Error(string(line)), n + 1, nil

	case KindInteger:
		line, n, ok := readLine(b[1:])
		if !ok {
			return Frame{}, 0, ErrIncomplete
		}
		i, err := strconv.ParseInt(string(line), 10, 64)
		if err != nil {
			return Frame{}, 0, newProtocolError("invalid integer %q", line)
		}
		return Integer(i), n + 1, nil

	case KindBulkString:
		return decodeBulkString(b)

	case KindArray:
		return decodeArray(b)

	default:
		return Frame{}, 0, newProtocolError("unknown type byte %q", b[0])
	}
}

// decodeBulkString 解析 `$n\r\n<n bytes>\r\n` 或 `$-1\r\n` (Null)
func decodeBulkString(b []byte) (Frame, int, error) {
	line, n, ok := readLine(b[1:])
	if !ok {
		return Frame{}, 0, ErrIncomplete
	}
	consumed := 1 + n

	length, err := strconv.Atoi(string(line))
	if err != nil {
		return Frame{}, 0, newProtocolError("invalid bulk string length %q", line)
	}
	if length < 0 {
		if length != -1 {
			return Frame{}, 0, newProtocolError("invalid bulk string length %d", length)
		}
		return Null(), consumed, nil
	}

	rest := b[consumed:]
	if len(rest) < length+2 {
		return Frame{}, 0, ErrIncomplete
	}
	if rest[length] != '\r' || rest[length+1] != '\n' {
		return Frame{}, 0, newProtocolError("bulk string missing CRLF terminator")
	}

	data := make([]byte, length)
	copy(data, rest[:length])
	return BulkString(data), consumed + length + 2, nil
}

// decodeArray 解析 `*n\r\n` 后跟 n 个任意类型的 Frame 支持嵌套
func decodeArray(b []byte) (Frame, int, error) {
	line, n, ok := readLine(b[1:])
	if !ok {
		return Frame{}, 0, ErrIncomplete
	}
	consumed := 1 + n

	count, err := strconv.Atoi(string(line))
	if err != nil {
		return Frame{}, 0, newProtocolError("invalid array length %q", line)
	}
	if count < 0 {
		if count != -1 {
			return Frame{}, 0, newProtocolError("invalid array length %d", count)
		}
		return Null(), consumed, nil
	}
	if count == 0 {
		return Array(), consumed, nil
	}

	items := make([]Frame, 0, count)
	for i := 0; i < count; i++ {
		item, m, err := decodeOne(b[consumed:])
		if err != nil {
			return Frame{}, 0, err
		}
		items = append(items, item)
		consumed += m
	}
	return Array(items...), consumed, nil
}

// readLine 在 b 中寻找第一个 CRLF 返回其前面的内容(不含 CRLF)以及消费的总字节数
func readLine(b []byte) ([]byte, int, bool) {
	idx := bytes.Index(b, crlf)
	if idx < 0 {
		return nil, 0, false
	}
	return b[:idx], idx + 2, true
}

func isInlineSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}

// decodeInline 解析旧版 inline 命令 将 buffer 中第一个 CR 或 LF 之前的内容 按空白切分
// 构建成一个 BulkString 数组
func decodeInline(b []byte, skipped int) (Frame, int, error) {
	body := b[skipped:]
	idx := bytes.IndexAny(body, "\r\n")
	if idx < 0 {
		return Frame{}, 0, ErrIncomplete
	}

	consumed := idx + 1
	if body[idx] == '\r' {
		if idx+1 >= len(body) {
			return Frame{}, 0, ErrIncomplete
		}
		if body[idx+1] == '\n' {
			consumed = idx + 2
		}
	}

	fields := bytes.Fields(body[:idx])
	items := make([]Frame, len(fields))
	for i, f := range fields {
		b := make([]byte, len(f))
		copy(b, f)
		items[i] = BulkString(b)
	}
	return Array(items...), skipped + consumed, nil
}
