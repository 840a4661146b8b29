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

import "fmt"

// Filter decides whether a record belongs in a selection.
// Implementations live in internal/filter; hosts may supply their own.
type Filter interface {
	// Evaluate reports whether the record passes the filter.
	Evaluate(rec *Record) (bool, error)

	// Description returns a human-readable description of the filter.
	Description() string
}

// RoleDict returns recordName -> value for every record that carries the
// role. An unknown role name is not an error; the result is simply empty.
// This is a full scan of the roster, so it is not cheap; do not call it
// every frame.
func (s *Store) RoleDict(role string) map[string]Value {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]Value)
	for name, rec := range s.records {
		if v, ok := rec.Role(role); ok {
			out[name] = v
		}
	}
	return out
}

// FilteredRoleDict returns recordName -> value for every record whose value
// for the role satisfies "value op comparison". Records lacking the role are
// always excluded, whatever the operator: a record without the role never
// matches, not even NotEqualTo. Unknown role names yield an empty result.
// Full scan, same cost warning as RoleDict.
func (s *Store) FilteredRoleDict(role string, op Comparator, comparison Value) map[string]Value {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]Value)
	for name, rec := range s.records {
		v, ok := rec.Role(role)
		if !ok {
			continue
		}
		if v.Satisfies(op, comparison) {
			out[name] = v
		}
	}
	return out
}

// Select returns every record that passes the filter, keyed by name. A nil
// filter selects the whole roster.
func (s *Store) Select(f Filter) (map[string]*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]*Record)
	for name, rec := range s.records {
		if f == nil {
			out[name] = rec
			continue
		}
		passes, err := f.Evaluate(rec)
		if err != nil {
			return nil, fmt.Errorf("selecting with %s: %w", f.Description(), err)
		}
		if passes {
			out[name] = rec
		}
	}
	return out, nil
}
