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

// Package cmd implements the prismcache command-line entry points on top
// of github.com/spf13/cobra, in the same shape as the teacher's cmd
// package (one file per subcommand, build info resolved through
// common.GetBuildInfo, whose three package vars are set by -ldflags at
// build time).
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/prismcache/prismcache/common"
)

var (
	version   = common.GetBuildInfo().Version
	gitHash   = common.GetBuildInfo().GitHash
	buildTime = common.GetBuildInfo().Time
)

var rootCmd = &cobra.Command{
	Use:   "prismcache",
	Short: "A read-through caching gateway speaking the Redis wire protocol",
	Long: "prismcache accepts RESP2 GET/HGET/PING/SET commands and serves JSON " +
		"records from an in-process TTL+LRU cache, populating it on miss from " +
		"one or more configured backend providers (mock, postgres, azdelta).",
	Version: fmt.Sprintf("%s (%s, built %s)", version, gitHash, buildTime),
}

// Execute 是 main 的唯一入口
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
