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

func TestNewPostgresAdapterMissingSettings(t *testing.T) {
	for _, key := range postgresRequiredSettings {
		t.Run(key, func(t *testing.T) {
			settings := map[string]string{
				"user": "u", "password": "p", "host": "h",
				"port": "5432", "dbname": "d", "fields": "id,name",
			}
			delete(settings, key)

			_, err := NewPostgresAdapter(settings)
			assert.Error(t, err)
		})
	}
}

func TestNewPostgresAdapterDefaults(t *testing.T) {
	a, err := NewPostgresAdapter(map[string]string{
		"user": "u", "password": "p", "host": "h",
		"port": "5432", "dbname": "d", "fields": "id,name",
	})
	require.NoError(t, err)
	assert.Equal(t, "id", a.idColumn)
}

func TestNewPostgresAdapterCustomIDColumn(t *testing.T) {
	a, err := NewPostgresAdapter(map[string]string{
		"user": "u", "password": "p", "host": "h",
		"port": "5432", "dbname": "d", "fields": "id,name",
		"id_column": "user_id",
	})
	require.NoError(t, err)
	assert.Equal(t, "user_id", a.idColumn)
}
