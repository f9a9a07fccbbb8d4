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

package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/prismcache/prismcache/common"
	"github.com/prismcache/prismcache/confengine"
	"github.com/prismcache/prismcache/gateway"
	"github.com/prismcache/prismcache/internal/sigs"
	"github.com/prismcache/prismcache/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the caching gateway",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := confengine.LoadConfigPathWithEnv(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
			os.Exit(1)
		}

		gw, err := gateway.New(cfg, common.BuildInfo{Version: version, GitHash: gitHash, Time: buildTime})
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to create gateway: %v\n", err)
			os.Exit(1)
		}
		if err := gw.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "failed to start gateway: %v\n", err)
			os.Exit(1)
		}

		var reloadTotal int
		for {
			select {
			case <-sigs.Terminate():
				gw.Stop()
				return

			case <-sigs.Reload():
				reloadTotal++

				// 需要重新加载配置文件 reload 失败则保持原配置运行
				cfg, err := confengine.LoadConfigPathWithEnv(configPath)
				if err != nil {
					fmt.Fprintf(os.Stderr, "failed to load config (count=%d): %v\n", reloadTotal, err)
					continue
				}

				start := time.Now()
				if err := gw.Reload(cfg); err != nil {
					logger.Errorf("failed to reload config: %v", err)
				}
				logger.Infof("reload (count=%d) take %s", reloadTotal, time.Since(start))
			}
		}
	},
	Example: "# prismcache serve --config prismcache.yaml",
}

var configPath string

func init() {
	serveCmd.Flags().StringVar(&configPath, "config", "prismcache.yaml", "Configuration file path")
	rootCmd.AddCommand(serveCmd)
}
