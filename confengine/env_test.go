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

package confengine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyEnvOverlayOverridesYAMLValue(t *testing.T) {
	cfg, err := LoadContent([]byte("cache:\n  ttl_seconds: 300\n"))
	require.NoError(t, err)

	cfg, err = applyEnvOverlay(cfg, DefaultEnvPrefix, []string{
		DefaultEnvPrefix + "CACHE__TTL_SECONDS=60",
		"UNRELATED_VAR=ignored",
	})
	require.NoError(t, err)

	cache, err := cfg.Child("cache")
	require.NoError(t, err)
	v, err := cache.conf.Int("ttl_seconds", -1)
	require.NoError(t, err)
	assert.EqualValues(t, 60, v)
}

func TestApplyEnvOverlayNoMatchingVarsIsNoop(t *testing.T) {
	cfg, err := LoadContent([]byte("cache:\n  ttl_seconds: 300\n"))
	require.NoError(t, err)

	cfg, err = applyEnvOverlay(cfg, DefaultEnvPrefix, []string{"UNRELATED_VAR=ignored"})
	require.NoError(t, err)

	cache, err := cfg.Child("cache")
	require.NoError(t, err)
	v, err := cache.conf.Int("ttl_seconds", -1)
	require.NoError(t, err)
	assert.EqualValues(t, 300, v)
}

func TestSetNestedValue(t *testing.T) {
	root := map[string]any{}
	setNestedValue(root, []string{"DATABASE", "PROVIDERS"}, "x")
	inner, ok := root["database"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "x", inner["providers"])
}
