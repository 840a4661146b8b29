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

// Package roster loads a named-record roster from an offline blob or a
// remotely fetched document, parses it into a queryable in-memory structure,
// and serves typed lookups and comparator-filtered subsets to consumers.
package roster

import (
	"fmt"
	"strconv"
	"strings"
)

// Value is a scalar roster cell. Values are always stored as text and
// interpreted as string, bool, int, or float on demand; interpretation never
// mutates storage. Any column can hold any type.
type Value string

// String returns the stored text verbatim.
func (v Value) String() string {
	return string(v)
}

// boolLiteral reports the boolean reading of a cell. Only the literals
// "true" and "false" (case-insensitive, surrounding whitespace ignored)
// count as booleans; numeric forms such as "0" and "1" do not, so numeric
// columns are never mistaken for flag columns.
func boolLiteral(s string) (value, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	return false, false
}

// Bool interprets the value as a boolean.
func (v Value) Bool() (bool, error) {
	b, ok := boolLiteral(string(v))
	if !ok {
		return false, fmt.Errorf("%w: %q is not a boolean literal", ErrTypeMismatch, string(v))
	}
	return b, nil
}

// Int interprets the value as an integer.
func (v Value) Int() (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(string(v)))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", ErrTypeMismatch, string(v))
	}
	return n, nil
}

// Float interprets the value as a 64-bit float.
func (v Value) Float() (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(string(v)), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrTypeMismatch, string(v))
	}
	return f, nil
}
