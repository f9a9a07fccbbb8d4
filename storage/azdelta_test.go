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

package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAzDeltaAdapterMissingSettings(t *testing.T) {
	for _, key := range azDeltaRequiredSettings {
		t.Run(key, func(t *testing.T) {
			settings := map[string]string{
				"delta_table_name":   "users",
				"delta_table_path":   "https://account.blob.core.windows.net",
				"delta_record_query": "SELECT * FROM users WHERE id = {}",
			}
			delete(settings, key)

			_, err := NewAzDeltaAdapter(settings)
			assert.Error(t, err)
		})
	}
}

func TestNewAzDeltaAdapterWithExplicitToken(t *testing.T) {
	a, err := NewAzDeltaAdapter(map[string]string{
		"delta_table_name":   "users",
		"delta_table_path":   "https://account.blob.core.windows.net",
		"delta_record_query": "SELECT * FROM users WHERE id = {}",
		"azure_bearer_token": "test-token",
	})
	require.NoError(t, err)
	assert.Equal(t, "users", a.container)
}
