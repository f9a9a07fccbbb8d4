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
	"strconv"

	"github.com/valyala/bytebufferpool"
)

// Encode 将 f 编码为 RESP2 字节序列
//
// 对任意合法 f 都满足 Decode(Encode(f)) == (f, len(Encode(f)), nil)
func Encode(f Frame) []byte {
	bb := bytebufferpool.Get()
	defer bytebufferpool.Put(bb)

	encodeTo(bb, f)

	out := make([]byte, bb.Len())
	copy(out, bb.B)
	return out
}

// encodeTo 将 f 递归追加写入 bb bb 由 Encode 从 bytebufferpool 取得并在返回前归还
func encodeTo(bb *bytebufferpool.ByteBuffer, f Frame) {
	switch f.Kind {
	case KindSimpleString:
		bb.WriteByte(byte(KindSimpleString))
		bb.WriteString(f.Str)
		bb.Write(crlf)

	case KindError:
		bb.WriteByte(byte(KindError))
		bb.WriteString(f.Str)
		bb.Write(crlf)

	case KindInteger:
		bb.WriteByte(byte(KindInteger))
		bb.WriteString(strconv.FormatInt(f.Int, 10))
		bb.Write(crlf)

	case KindBulkString:
		bb.WriteByte(byte(KindBulkString))
		bb.WriteString(strconv.Itoa(len(f.Bulk)))
		bb.Write(crlf)
		bb.Write(f.Bulk)
		bb.Write(crlf)

	case KindNull:
		bb.WriteString("$-1\r\n")

	case KindArray:
		bb.WriteByte(byte(KindArray))
		bb.WriteString(strconv.Itoa(len(f.Items)))
		bb.Write(crlf)
		for _, item := range f.Items {
			encodeTo(bb, item)
		}
	}
}
