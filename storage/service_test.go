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
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingAdapter wraps a fixed record set and counts FetchRecord calls so
// tests can assert the read-through invariant: a cache hit must not call
// the backend again.
type countingAdapter struct {
	calls   atomic.Int64
	records map[string]Record
}

func (a *countingAdapter) FetchRecord(_ context.Context, _ string, id string) ([]Record, error) {
	a.calls.Add(1)
	rec, ok := a.records[id]
	if !ok {
		return nil, ErrRecordNotFound
	}
	return []Record{rec}, nil
}

func newTestService(t *testing.T, adapter Adapter, ttl time.Duration) (*Service, *Registry) {
	t.Helper()
	reg := &Registry{adapters: map[string]Adapter{"users": adapter}}
	return NewService(NewCache(100, ttl), reg), reg
}

func TestServiceFetchReadThrough(t *testing.T) {
	adapter := &countingAdapter{records: map[string]Record{"1": {"id": "1", "name": "John Doe"}}}
	svc, _ := newTestService(t, adapter, time.Minute)

	rec, err := svc.Fetch(context.Background(), "users", "1")
	require.NoError(t, err)
	assert.Equal(t, "John Doe", rec["name"])
	assert.EqualValues(t, 1, adapter.calls.Load())

	rec, err = svc.Fetch(context.Background(), "users", "1")
	require.NoError(t, err)
	assert.Equal(t, "John Doe", rec["name"])
	assert.EqualValues(t, 1, adapter.calls.Load(), "second fetch within TTL must be served from cache")
}

func TestServiceFetchRecordNotFound(t *testing.T) {
	adapter := &countingAdapter{records: map[string]Record{}}
	svc, _ := newTestService(t, adapter, time.Minute)

	_, err := svc.Fetch(context.Background(), "users", "99")
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestServiceFetchProviderNotFound(t *testing.T) {
	adapter := &countingAdapter{records: map[string]Record{}}
	svc, _ := newTestService(t, adapter, time.Minute)

	_, err := svc.Fetch(context.Background(), "accounts", "1")
	assert.ErrorIs(t, err, ErrProviderNotFound)
}

func TestServiceFetchBackendError(t *testing.T) {
	adapter := &erroringAdapter{}
	svc, _ := newTestService(t, adapter, time.Minute)

	_, err := svc.Fetch(context.Background(), "users", "1")
	assert.ErrorIs(t, err, ErrBackend)
}

type erroringAdapter struct{}

func (erroringAdapter) FetchRecord(context.Context, string, string) ([]Record, error) {
	return nil, newBackendError("boom")
}

func TestServiceFetchTTLExpiryTriggersReFetch(t *testing.T) {
	adapter := &countingAdapter{records: map[string]Record{"1": {"id": "1"}}}
	svc, _ := newTestService(t, adapter, 10*time.Millisecond)

	_, err := svc.Fetch(context.Background(), "users", "1")
	require.NoError(t, err)
	assert.EqualValues(t, 1, adapter.calls.Load())

	time.Sleep(30 * time.Millisecond)

	_, err = svc.Fetch(context.Background(), "users", "1")
	require.NoError(t, err)
	assert.EqualValues(t, 2, adapter.calls.Load(), "expired entry must re-query the backend")
}
