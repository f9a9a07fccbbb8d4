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

import "github.com/pkg/errors"

// ErrIncomplete 代表 buffer 中的数据还不足以构成一个完整的 Frame
//
// 调用方应该等待更多数据到达后重试 而不是将其当作错误处理
var ErrIncomplete = errors.New("resp: incomplete frame")

// ProtocolError 代表 buffer 中的数据违反了 RESP2 语法
//
// 一旦出现 调用方无法可靠地重新同步 应当丢弃整个 buffer
type ProtocolError struct {
	Reason string
}

func (e *ProtocolError) Error() string {
	return "resp: " + e.Reason
}

func newProtocolError(format string, args ...any) error {
	return &ProtocolError{Reason: errors.Errorf(format, args...).Error()}
}

// IsProtocolError 判断 err 是否为 *ProtocolError
func IsProtocolError(err error) bool {
	_, ok := err.(*ProtocolError)
	return ok
}
