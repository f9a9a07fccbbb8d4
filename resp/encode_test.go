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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name  string
		frame Frame
		want  string
	}{
		{"SimpleString", SimpleString("PONG"), "+PONG\r\n"},
		{"Error", Error("ERR boom"), "-ERR boom\r\n"},
		{"Integer", Integer(1000), ":1000\r\n"},
		{"NegativeInteger", Integer(-7), ":-7\r\n"},
		{"BulkString", BulkStringFromString("foobar"), "$6\r\nfoobar\r\n"},
		{"EmptyBulkString", BulkString([]byte{}), "$0\r\n\r\n"},
		{"Null", Null(), "$-1\r\n"},
		{"EmptyArray", Array(), "*0\r\n"},
		{
			"ArrayOfBulkStrings",
			Array(BulkStringFromString("GET"), BulkStringFromString("users:1")),
			"*2\r\n$3\r\nGET\r\n$7\r\nusers:1\r\n",
		},
		{
			"NestedArray",
			Array(Integer(1), Array(BulkStringFromString("foobar"))),
			"*2\r\n:1\r\n*1\r\n$6\r\nfoobar\r\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, string(Encode(tt.frame)))
		})
	}
}
