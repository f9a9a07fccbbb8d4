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
	"io"
	"net"

	"github.com/pkg/errors"

	"github.com/prismcache/prismcache/internal/rescue"
	"github.com/prismcache/prismcache/logger"
	"github.com/prismcache/prismcache/resp"
)

// conn 持有一条 TCP 连接的读缓冲 实现 spec.md §4.2 的状态机:
//
//	Reading -> Decoding <-> Writing -> Reading 直到 Closed
//
// buffer 的生命周期与连接相同 不与其他连接共享 一次只处理一个命令
// 同一条连接内响应帧的顺序与请求帧的顺序一致 多条连接之间没有顺序保证
type conn struct {
	gw  *Gateway
	nc  net.Conn
	buf []byte
}

func (g *Gateway) serveConn(nc net.Conn) {
	defer rescue.HandleCrash()
	defer nc.Close()

	activeConns.Inc()
	defer activeConns.Dec()

	c := &conn{gw: g, nc: nc}
	c.run()
}

func (c *conn) run() {
	readBuf := make([]byte, 4096)

	for {
		n, err := c.nc.Read(readBuf)
		if n > 0 {
			c.buf = append(c.buf, readBuf[:n]...)
			c.drain()
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				logger.Debugf("gateway: connection %s read error: %v", c.nc.RemoteAddr(), err)
			}
			return
		}
	}
}

// drain 反复尝试从 buffer 头部解出一个 Frame 直到 incomplete 或 buffer 耗尽
func (c *conn) drain() {
	for len(c.buf) > 0 {
		frame, n, err := resp.Decode(c.buf)
		switch {
		case err == nil:
			c.handle(frame)
			c.buf = c.buf[n:]

		case errors.Is(err, resp.ErrIncomplete):
			if len(c.buf) > MaxCommandBytes {
				c.write(resp.Error("ERR Command too large"))
				c.buf = nil
			}
			return

		default:
			// protocol-error: 无法可靠重新同步 丢弃整个 buffer
			c.write(resp.Error("ERR " + err.Error()))
			c.buf = nil
			return
		}
	}
}

func (c *conn) handle(frame resp.Frame) {
	cmd, err := resp.ParseCommand(frame)
	if err != nil {
		c.write(resp.Error("ERR " + err.Error()))
		return
	}

	reply := c.gw.dispatch(context.Background(), cmd)
	c.write(reply)
}

func (c *conn) write(f resp.Frame) {
	if _, err := c.nc.Write(resp.Encode(f)); err != nil {
		logger.Debugf("gateway: connection %s write error: %v", c.nc.RemoteAddr(), err)
	}
}
