// Copyright 2025 Magnus Pierre
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package roster

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const offlineDoc = "name,Rank\nAda,Recruit\n"
const remoteDoc = "name,Rank,Staff\nMara,Captain,True\n"

// fakeFetcher is a controllable Fetch collaborator.
type fakeFetcher struct {
	text    string
	err     error
	calls   atomic.Int32
	release chan struct{} // when non-nil, Fetch blocks until closed
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string) (string, error) {
	f.calls.Add(1)
	if f.release != nil {
		<-f.release
	}
	return f.text, f.err
}

func waitReady(t *testing.T, svc *Service) {
	t.Helper()
	done := make(chan struct{})
	svc.OnReady("test-wait", func() { close(done) })
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("service never became ready")
	}
}

func TestInitializeOffline(t *testing.T) {
	cfg := DefaultConfig()
	cfg.OfflineText = offlineDoc
	svc, err := New(cfg)
	require.NoError(t, err)

	assert.Equal(t, StateIdle, svc.State())

	fired := false
	svc.OnReady("listener", func() { fired = true })

	svc.Initialize(context.Background())

	// the offline path completes synchronously
	assert.True(t, fired)
	assert.Equal(t, StateReady, svc.State())
	assert.True(t, svc.Ready())
	assert.True(t, svc.LoadSucceeded())
	assert.False(t, svc.LoadedFromRemote())
	assert.True(t, svc.Store().IsKnown("Ada"))
}

func TestInitializeRemoteSuccess(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Source = SourceRemote
	cfg.URL = "https://example.test/roster.csv"
	cfg.OfflineText = offlineDoc

	fetcher := &fakeFetcher{text: remoteDoc}
	svc, err := New(cfg, WithFetcher(fetcher))
	require.NoError(t, err)

	svc.Initialize(context.Background())
	waitReady(t, svc)

	assert.True(t, svc.LoadSucceeded())
	assert.True(t, svc.LoadedFromRemote())
	assert.True(t, svc.Store().IsKnown("Mara"), "roster must come from the fetched document")
	assert.False(t, svc.Store().IsKnown("Ada"))
	assert.Equal(t, int32(1), fetcher.calls.Load())
}

func TestInitializeRemoteFailureFallsBack(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Source = SourceRemote
	cfg.URL = "https://example.test/roster.csv"
	cfg.OfflineText = offlineDoc

	fetcher := &fakeFetcher{err: errors.New("connection refused")}
	svc, err := New(cfg, WithFetcher(fetcher))
	require.NoError(t, err)

	svc.Initialize(context.Background())
	waitReady(t, svc)

	// graceful degradation: Ready is reached, success flag cleared, roster
	// built from the offline text
	assert.True(t, svc.Ready())
	assert.False(t, svc.LoadSucceeded())
	assert.False(t, svc.LoadedFromRemote())
	assert.True(t, svc.Store().IsKnown("Ada"))
}

func TestInitializeRemoteFailureWithEmptyOffline(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Source = SourceRemote
	cfg.URL = "https://example.test/roster.csv"

	fetcher := &fakeFetcher{err: errors.New("boom")}
	svc, err := New(cfg, WithFetcher(fetcher))
	require.NoError(t, err)

	svc.Initialize(context.Background())
	waitReady(t, svc)

	assert.True(t, svc.Ready())
	assert.False(t, svc.LoadSucceeded())
	assert.Equal(t, 0, svc.Store().Len())
}

func TestInitializeWhileInitializingIsIgnored(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Source = SourceRemote
	cfg.URL = "https://example.test/roster.csv"
	cfg.OfflineText = offlineDoc

	fetcher := &fakeFetcher{text: remoteDoc, release: make(chan struct{})}
	svc, err := New(cfg, WithFetcher(fetcher))
	require.NoError(t, err)

	svc.Initialize(context.Background())

	// wait for the fetch goroutine to be in flight
	require.Eventually(t, func() bool { return fetcher.calls.Load() == 1 },
		time.Second, time.Millisecond)
	assert.Equal(t, StateInitializing, svc.State())

	// a second call while outstanding is a no-op: no second fetch
	svc.Initialize(context.Background())
	assert.Equal(t, StateInitializing, svc.State())

	close(fetcher.release)
	waitReady(t, svc)
	assert.Equal(t, int32(1), fetcher.calls.Load())
}

func TestReinitializeRebuildsRoster(t *testing.T) {
	cfg := DefaultConfig()
	cfg.OfflineText = offlineDoc
	svc, err := New(cfg)
	require.NoError(t, err)

	svc.Initialize(context.Background())
	require.True(t, svc.Store().IsKnown("Ada"))

	svc.Initialize(context.Background())
	assert.True(t, svc.Ready())
	assert.True(t, svc.Store().IsKnown("Ada"))
	assert.Equal(t, 1, svc.Store().Len())
}

func TestOnReadyAfterReadyFiresImmediately(t *testing.T) {
	cfg := DefaultConfig()
	cfg.OfflineText = offlineDoc
	svc, err := New(cfg)
	require.NoError(t, err)
	svc.Initialize(context.Background())

	fired := 0
	svc.OnReady("late", func() { fired++ })
	assert.Equal(t, 1, fired, "subscription after ready fires synchronously")

	svc.mu.Lock()
	registered := len(svc.listeners)
	svc.mu.Unlock()
	assert.Zero(t, registered, "late subscription must not grow the registry")
}

func TestOnReadyDuplicateRejected(t *testing.T) {
	cfg := DefaultConfig()
	cfg.OfflineText = offlineDoc
	svc, err := New(cfg)
	require.NoError(t, err)

	calls := 0
	svc.OnReady("dup", func() { calls++ })
	svc.OnReady("dup", func() { calls += 100 })

	svc.Initialize(context.Background())
	assert.Equal(t, 1, calls, "only the first registration for an id fires")
}

func TestOnReadyFiresInRegistrationOrder(t *testing.T) {
	cfg := DefaultConfig()
	cfg.OfflineText = offlineDoc
	svc, err := New(cfg)
	require.NoError(t, err)

	var order []string
	svc.OnReady("a", func() { order = append(order, "a") })
	svc.OnReady("b", func() { order = append(order, "b") })
	svc.OnReady("c", func() { order = append(order, "c") })

	svc.Initialize(context.Background())
	assert.Equal(t, []string{"a", "b", "c"}, order)
}

// Listeners are cleared once fired; a later re-initialization must not fire
// them again.
func TestListenersDoNotRefireOnReinitialize(t *testing.T) {
	cfg := DefaultConfig()
	cfg.OfflineText = offlineDoc
	svc, err := New(cfg)
	require.NoError(t, err)

	calls := 0
	svc.OnReady("once", func() { calls++ })

	svc.Initialize(context.Background())
	svc.Initialize(context.Background())
	assert.Equal(t, 1, calls)
}

func TestRemoveOnReady(t *testing.T) {
	cfg := DefaultConfig()
	cfg.OfflineText = offlineDoc
	svc, err := New(cfg)
	require.NoError(t, err)

	fired := false
	svc.OnReady("gone", func() { fired = true })
	svc.RemoveOnReady("gone")
	svc.RemoveOnReady("never-there") // logged no-op

	svc.Initialize(context.Background())
	assert.False(t, fired)
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Source = "carrier-pigeon"
	_, err := New(cfg)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
