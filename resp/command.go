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

import "strings"

// Command 是一个已经从 Frame 中提取出来的 RESP 命令
//
// Name 已标准化为大写 Args 为命令参数(不含命令名本身)
type Command struct {
	Name string
	Args []string
}

// ParseCommand 将一个 Array Frame 解析为 Command
//
// 要求 f 是非空数组 且首个元素是 BulkString 否则返回 *ProtocolError
func ParseCommand(f Frame) (Command, error) {
	if f.Kind != KindArray || len(f.Items) == 0 {
		return Command{}, newProtocolError("command must be a non-empty array")
	}

	head := f.Items[0]
	if head.Kind != KindBulkString {
		return Command{}, newProtocolError("command name must be a bulk string")
	}

	args := make([]string, 0, len(f.Items)-1)
	for _, item := range f.Items[1:] {
		if item.Kind != KindBulkString {
			return Command{}, newProtocolError("command argument must be a bulk string")
		}
		args = append(args, string(item.Bulk))
	}

	return Command{Name: strings.ToUpper(string(head.Bulk)), Args: args}, nil
}
