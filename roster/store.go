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
	"sort"
	"sync"

	"go.uber.org/zap"
)

// Store owns the current roster and the role-name list. It is safe for
// concurrent reads; the initialization controller is the only writer and
// replaces the contents wholesale, so readers never observe a partially
// built roster.
type Store struct {
	mu      sync.RWMutex
	records map[string]*Record
	roles   []string
	logger  *zap.Logger
}

func newStore(logger *zap.Logger) *Store {
	return &Store{
		records: make(map[string]*Record),
		logger:  logger,
	}
}

// swap replaces the roster and role-name list in one step.
func (s *Store) swap(records map[string]*Record, roles []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = records
	s.roles = roles
}

// Lookup returns the record with the given name.
func (s *Store) Lookup(name string) (*Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[name]
	return rec, ok
}

// IsKnown reports whether a record exists, regardless of its roles.
func (s *Store) IsKnown(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.records[name]
	return ok
}

// Names returns all record names, sorted.
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.records))
	for name := range s.records {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// RoleNames returns all column headers except the name column, in header
// order. A role is listed even if no record currently carries it. Note that
// the list says nothing about which roles a given record has.
func (s *Store) RoleNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.roles...)
}

// Len returns the number of records in the roster.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
