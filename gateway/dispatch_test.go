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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prismcache/prismcache/resp"
	"github.com/prismcache/prismcache/storage"
)

func newTestGateway(t *testing.T) *Gateway {
	t.Helper()
	reg, err := storage.NewRegistry([]storage.ProviderConfig{
		{Name: "users", Provider: storage.KindMock},
	})
	require.NoError(t, err)
	return &Gateway{storage: storage.NewService(storage.NewCache(100, time.Minute), reg)}
}

func TestDispatchPing(t *testing.T) {
	g := newTestGateway(t)
	got := g.dispatch(context.Background(), resp.Command{Name: "PING"})
	assert.Equal(t, resp.SimpleString("PONG"), got)
}

func TestDispatchSetIsNoop(t *testing.T) {
	g := newTestGateway(t)
	got := g.dispatch(context.Background(), resp.Command{Name: "SET", Args: []string{"users:1", "ignored"}})
	assert.Equal(t, resp.SimpleString("OK"), got)

	// A GET across the SET must still resolve to whatever was there before.
	before := g.dispatch(context.Background(), resp.Command{Name: "GET", Args: []string{"users:1"}})
	g.dispatch(context.Background(), resp.Command{Name: "SET", Args: []string{"users:1", "ignored"}})
	after := g.dispatch(context.Background(), resp.Command{Name: "GET", Args: []string{"users:1"}})
	assert.Equal(t, before, after)
}

func TestDispatchGetHit(t *testing.T) {
	g := newTestGateway(t)
	got := g.dispatch(context.Background(), resp.Command{Name: "GET", Args: []string{"users:1"}})
	require.Equal(t, resp.KindBulkString, got.Kind)
	assert.Contains(t, string(got.Bulk), `"John Doe"`)
}

func TestDispatchGetMiss(t *testing.T) {
	g := newTestGateway(t)
	got := g.dispatch(context.Background(), resp.Command{Name: "GET", Args: []string{"users:99"}})
	assert.True(t, got.IsNull())
}

func TestDispatchGetMalformedKey(t *testing.T) {
	g := newTestGateway(t)
	got := g.dispatch(context.Background(), resp.Command{Name: "GET", Args: []string{"nocolon"}})
	assert.Equal(t, resp.KindError, got.Kind)
}

func TestDispatchGetUnknownProvider(t *testing.T) {
	g := newTestGateway(t)
	got := g.dispatch(context.Background(), resp.Command{Name: "GET", Args: []string{"accounts:1"}})
	assert.True(t, got.IsNull())
}

func TestDispatchHGetSingleField(t *testing.T) {
	g := newTestGateway(t)
	got := g.dispatch(context.Background(), resp.Command{Name: "HGET", Args: []string{"users:1", "name"}})
	require.Equal(t, resp.KindBulkString, got.Kind)
	assert.Equal(t, `"John Doe"`, string(got.Bulk))
}

func TestDispatchHGetMultiFieldWithMissing(t *testing.T) {
	g := newTestGateway(t)
	got := g.dispatch(context.Background(), resp.Command{Name: "HGET", Args: []string{"users:1", "name", "missing"}})
	require.Equal(t, resp.KindArray, got.Kind)
	require.Len(t, got.Items, 2)
	assert.Equal(t, `"John Doe"`, string(got.Items[0].Bulk))
	assert.True(t, got.Items[1].IsNull())
}

func TestDispatchHGetMissingRecord(t *testing.T) {
	g := newTestGateway(t)
	got := g.dispatch(context.Background(), resp.Command{Name: "HGET", Args: []string{"users:99", "name"}})
	assert.True(t, got.IsNull())
}

func TestDispatchUnknownCommand(t *testing.T) {
	g := newTestGateway(t)
	got := g.dispatch(context.Background(), resp.Command{Name: "FOO"})
	require.Equal(t, resp.KindError, got.Kind)
	assert.Contains(t, got.Str, "unknown command")
	assert.Contains(t, got.Str, "FOO")
}

func TestDispatchWrongArity(t *testing.T) {
	g := newTestGateway(t)
	got := g.dispatch(context.Background(), resp.Command{Name: "SET", Args: []string{"onlykey"}})
	require.Equal(t, resp.KindError, got.Kind)
	assert.Contains(t, got.Str, "wrong number of arguments")
}
