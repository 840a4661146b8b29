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

// Package filter provides roster filters: single-role conditions,
// AND/OR composites, and a small query-string language.
package filter

import (
	"fmt"
	"strings"

	"rosterkit/roster"
)

// Condition filters records on a single role with a relational operator.
// Records that do not carry the role never pass, whatever the operator.
type Condition struct {
	// Role is the role name the condition reads.
	Role string

	// Op is the relational operator.
	Op roster.Comparator

	// Value is the right-hand side of the comparison.
	Value roster.Value
}

// Evaluate implements the roster.Filter interface.
func (c *Condition) Evaluate(rec *roster.Record) (bool, error) {
	v, ok := rec.Role(c.Role)
	if !ok {
		return false, nil
	}
	return v.Satisfies(c.Op, c.Value), nil
}

// Description implements the roster.Filter interface.
func (c *Condition) Description() string {
	return fmt.Sprintf("%s %s %s", c.Role, c.Op, c.Value)
}

// Contains filters records whose value for a role contains a substring,
// case-insensitively.
type Contains struct {
	Role string
	Term string
}

// Evaluate implements the roster.Filter interface.
func (c *Contains) Evaluate(rec *roster.Record) (bool, error) {
	v, ok := rec.Role(c.Role)
	if !ok {
		return false, nil
	}
	return strings.Contains(strings.ToLower(v.String()), strings.ToLower(c.Term)), nil
}

// Description implements the roster.Filter interface.
func (c *Contains) Description() string {
	return fmt.Sprintf("%s ~ %s", c.Role, c.Term)
}

// AnyRole filters records where any carried role value contains a substring,
// case-insensitively. It backs the bare-term form of the query language.
type AnyRole struct {
	Term string
}

// Evaluate implements the roster.Filter interface.
func (a *AnyRole) Evaluate(rec *roster.Record) (bool, error) {
	term := strings.ToLower(a.Term)
	for _, role := range rec.Roles() {
		v, _ := rec.Role(role)
		if strings.Contains(strings.ToLower(v.String()), term) {
			return true, nil
		}
	}
	return false, nil
}

// Description implements the roster.Filter interface.
func (a *AnyRole) Description() string {
	return fmt.Sprintf("any role ~ %s", a.Term)
}
