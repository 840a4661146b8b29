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

import "sort"

// Record is one named roster entry with its role values. Records are built
// once per initialization cycle and never mutated afterwards, so they are
// safe to hand out to concurrent readers.
type Record struct {
	name  string
	roles map[string]Value
}

// Name returns the record name (the row key).
func (r *Record) Name() string {
	return r.name
}

// Role returns the raw value stored for a role. ok is false when the record
// does not carry the role; a cell that parsed as boolean false is suppressed
// at parse time, so "role absent" and "role explicitly false" are the same
// observation for flag columns.
func (r *Record) Role(role string) (Value, bool) {
	v, ok := r.roles[role]
	return v, ok
}

// HasRole reports whether the record carries a role.
func (r *Record) HasRole(role string) bool {
	_, ok := r.roles[role]
	return ok
}

// Roles returns the names of the roles the record carries, sorted.
func (r *Record) Roles() []string {
	out := make([]string, 0, len(r.roles))
	for role := range r.roles {
		out = append(out, role)
	}
	sort.Strings(out)
	return out
}
