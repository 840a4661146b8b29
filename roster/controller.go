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
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"
)

// State is the initialization state of the service.
type State int

const (
	// StateIdle means Initialize has never been called.
	StateIdle State = iota
	// StateInitializing means an initialization is in flight.
	StateInitializing
	// StateReady means the roster is populated and queryable, whether or
	// not the remote fetch succeeded.
	StateReady
)

// String returns the string representation of a State.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateInitializing:
		return "initializing"
	case StateReady:
		return "ready"
	default:
		return fmt.Sprintf("unknown(%d)", s)
	}
}

// Service coordinates roster acquisition, parsing, and ready notification.
// It is the single writer of the store; everything handed out to callers is
// a read-only view.
type Service struct {
	mu        sync.Mutex
	cfg       Config
	fetcher   Fetcher
	logger    *zap.Logger
	store     *Store
	state     State
	loadOK    bool
	remote    bool
	rawText   string
	listeners []readyListener
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger. The default is a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithFetcher sets the remote fetch collaborator. The default is an
// HTTPFetcher bounded by the configured fetch timeout.
func WithFetcher(f Fetcher) Option {
	return func(s *Service) { s.fetcher = f }
}

// New creates a roster service. The offline document is resolved here:
// OfflinePath when set (a read failure degrades to OfflineText with a
// warning), OfflineText otherwise.
func New(cfg Config, opts ...Option) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Service{
		cfg:    cfg,
		logger: zap.NewNop(),
		state:  StateIdle,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.fetcher == nil {
		s.fetcher = &HTTPFetcher{Timeout: cfg.fetchTimeout()}
	}
	s.store = newStore(s.logger)

	s.rawText = cfg.OfflineText
	if cfg.OfflinePath != "" {
		data, err := os.ReadFile(cfg.OfflinePath)
		if err != nil {
			s.logger.Warn("offline roster file unreadable; using configured text",
				zap.String("path", cfg.OfflinePath), zap.Error(err))
		} else {
			s.rawText = string(data)
		}
	}

	return s, nil
}

// Store returns the read-only roster view. It is empty until the first
// initialization completes.
func (s *Service) Store() *Store {
	return s.store
}

// State returns the current initialization state.
func (s *Service) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Ready reports whether the roster is populated and queryable.
func (s *Service) Ready() bool {
	return s.State() == StateReady
}

// LoadSucceeded reports whether the last completed initialization fully
// succeeded. A failed remote fetch still reaches Ready, but with this flag
// cleared.
func (s *Service) LoadSucceeded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadOK
}

// LoadedFromRemote reports whether the current roster was built from a
// fetched document rather than the offline one.
func (s *Service) LoadedFromRemote() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remote
}

// Initialize starts an initialization cycle. With the offline source it
// completes synchronously; with the remote source it issues exactly one
// fetch and completes from the fetch goroutine. Calling Initialize while a
// cycle is in flight is a logged no-op; calling it again after completion
// discards the roster and rebuilds it.
func (s *Service) Initialize(ctx context.Context) {
	s.mu.Lock()
	if s.state == StateInitializing {
		s.logger.Warn("initialization already in progress; request ignored")
		s.mu.Unlock()
		return
	}
	s.state = StateInitializing
	s.loadOK = false
	s.remote = false
	source := s.cfg.Source
	url := s.cfg.URL
	s.mu.Unlock()

	if source == SourceRemote {
		go s.fetchAndFinish(ctx, url)
		return
	}

	s.mu.Lock()
	raw := s.rawText
	s.mu.Unlock()
	s.finish(raw, true, false)
}

func (s *Service) fetchAndFinish(ctx context.Context, url string) {
	text, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		s.logger.Warn("remote roster fetch failed; falling back to offline data",
			zap.String("url", url), zap.Error(err))
		s.mu.Lock()
		raw := s.rawText
		s.mu.Unlock()
		s.finish(raw, false, false)
		return
	}
	s.finish(text, true, true)
}

// finish is the terminal transition: parse whichever document is current,
// swap the store wholesale, mark Ready, and drain the listeners in
// registration order. The registry is cleared so a later re-initialization
// never re-fires stale listeners.
func (s *Service) finish(raw string, ok, remote bool) {
	records, roles := parseDocument(raw, s.cfg.Format, s.logger)
	s.store.swap(records, roles)

	s.mu.Lock()
	if remote {
		// The fetched document replaces the offline one for the rest of
		// the process lifetime.
		s.rawText = raw
	}
	s.state = StateReady
	s.loadOK = ok
	s.remote = remote
	fired := s.listeners
	s.listeners = nil
	s.mu.Unlock()

	s.logger.Info("roster ready",
		zap.Int("records", len(records)),
		zap.Int("roles", len(roles)),
		zap.Bool("remote", remote),
		zap.Bool("success", ok))

	for _, l := range fired {
		l.fn()
	}
}
