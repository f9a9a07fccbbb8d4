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
	"io"
	"net"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/prismcache/prismcache/common"
	"github.com/prismcache/prismcache/confengine"
	"github.com/prismcache/prismcache/logger"
	"github.com/prismcache/prismcache/server"
	"github.com/prismcache/prismcache/storage"
)

// Gateway 组合 C1-C4: 接受 TCP 连接 解码 RESP 帧 分派给存储服务 编码响应
//
// 构造与 Start/Stop/Reload 的整体形状取自教师的 controller.Controller:
// New 负责一次性装配全部依赖 Start 开始对外服务 Stop 释放资源 Reload 热更新
// provider 配置(不中断现有连接)
type Gateway struct {
	cfg       Config
	buildInfo common.BuildInfo

	storage  *storage.Service
	registry *storage.Registry
	cache    *storage.Cache

	svr      *server.Server
	listener net.Listener
}

func setupLogger(conf *confengine.Config) error {
	var opts logger.Options
	if err := conf.UnpackChild("logging", &opts); err != nil {
		return err
	}

	if opts.Filename == "" {
		opts.Filename = "prismcache.log"
	}
	if opts.MaxBackups <= 0 {
		opts.MaxBackups = 10
	}
	if opts.MaxAge <= 0 {
		opts.MaxAge = 7
	}
	if opts.MaxSize <= 0 {
		opts.MaxSize = 100
	}

	logger.SetOptions(opts)
	return nil
}

// New 装配一个尚未开始服务的 Gateway 启动失败(坏配置 适配器构造失败)是致命的
// 调用方应在 listener bind 之前以非零状态退出 对应 spec.md §6 的 exit behavior
func New(conf *confengine.Config, buildInfo common.BuildInfo) (*Gateway, error) {
	if err := setupLogger(conf); err != nil {
		return nil, err
	}

	var cfg Config
	if err := conf.Unpack(&cfg); err != nil {
		return nil, errors.Wrap(err, "gateway: failed to unpack config")
	}

	registry, err := storage.NewRegistry(cfg.Database.Providers)
	if err != nil {
		return nil, errors.Wrap(err, "gateway: failed to construct provider registry")
	}

	cache := storage.NewCache(cfg.maxEntries(), cfg.ttl())
	svc := storage.NewService(cache, registry)

	svr, err := server.New(conf)
	if err != nil {
		return nil, errors.Wrap(err, "gateway: failed to construct admin server")
	}

	return &Gateway{
		cfg:       cfg,
		buildInfo: buildInfo,
		storage:   svc,
		registry:  registry,
		cache:     cache,
		svr:       svr,
	}, nil
}

// Start 绑定 RESP 监听端口并为每条已接受的连接启动一个独立的 goroutine
//
// 连接之间互不共享状态 一条连接的 I/O 错误或 panic 只终止该连接 绝不影响 accept 循环
func (g *Gateway) Start() error {
	g.setupAdminRoutes()

	l, err := net.Listen("tcp", g.cfg.bindAddress())
	if err != nil {
		return errors.Wrap(err, "gateway: failed to bind listener")
	}
	g.listener = l
	logger.Infof("gateway listening on %s", l.Addr())

	if g.svr != nil {
		go func() {
			err := g.svr.ListenAndServe()
			if !errors.Is(err, io.EOF) {
				logger.Errorf("failed to start admin server: %v", err)
			}
		}()
	}

	go g.acceptLoop()
	return nil
}

func (g *Gateway) acceptLoop() {
	for {
		nc, err := g.listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			logger.Errorf("gateway: accept failed: %v", err)
			continue
		}
		go g.serveConn(nc)
	}
}

// Stop 关闭监听端口 不再接受新连接 已接受的连接不会被关闭 会继续服务直到客户端断开
func (g *Gateway) Stop() {
	if g.listener != nil {
		g.listener.Close()
	}
}

// Reload 重建 provider registry 原地替换 不打断已接受的连接
//
// 缓存不随 reload 清空: 旧条目在新 registry 下依然按 (provider, id) 命中
// 直到自然过期 这与教师 Controller.Reload 只重建 sniffer 规则、不重启监听端口的
// 思路一致
func (g *Gateway) Reload(conf *confengine.Config) error {
	var cfg Config
	if err := conf.Unpack(&cfg); err != nil {
		return errors.Wrap(err, "gateway: failed to unpack config")
	}

	registry, err := storage.NewRegistry(cfg.Database.Providers)
	if err != nil {
		return errors.Wrap(err, "gateway: failed to reload provider registry")
	}

	g.registry = registry
	g.storage = storage.NewService(g.cache, registry)
	g.cfg.Database = cfg.Database
	return nil
}

func (g *Gateway) setupAdminRoutes() {
	if g.svr == nil {
		return
	}

	g.svr.RegisterGetRoute("/metrics", func(w http.ResponseWriter, r *http.Request) {
		g.recordMetrics()
		promhttp.Handler().ServeHTTP(w, r)
	})

	g.svr.RegisterPostRoute("/-/logger", func(w http.ResponseWriter, r *http.Request) {
		level := r.FormValue("level")
		logger.SetLoggerLevel(level)
		w.Write([]byte(`{"status": "success"}`))
	})
}

func (g *Gateway) recordMetrics() {
	uptime.Set(float64(time.Now().Unix() - common.Started()))
	buildInfo.WithLabelValues(g.buildInfo.Version, g.buildInfo.GitHash, g.buildInfo.Time).Inc()
	cacheEntries.Set(float64(g.cache.Len()))
}
