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
	"fmt"
	"strings"
)

// Comparator is a relational operator applied to two roster values.
type Comparator int

const (
	EqualTo Comparator = iota
	NotEqualTo
	GreaterThan
	LessThan
	GreaterOrEqual
	LessOrEqual
)

// String returns the string representation of a Comparator.
func (c Comparator) String() string {
	switch c {
	case EqualTo:
		return "="
	case NotEqualTo:
		return "!="
	case GreaterThan:
		return ">"
	case LessThan:
		return "<"
	case GreaterOrEqual:
		return ">="
	case LessOrEqual:
		return "<="
	default:
		return fmt.Sprintf("unknown(%d)", c)
	}
}

// Satisfies reports whether "v op other" holds. When both sides parse as
// numbers the comparison is numeric, so "10" > "5" even though "10" sorts
// before "5" as text. Otherwise equality is exact text equality and the
// ordering operators compare lexicographically.
func (v Value) Satisfies(op Comparator, other Value) bool {
	a, errA := v.Float()
	b, errB := other.Float()
	numeric := errA == nil && errB == nil

	switch op {
	case EqualTo:
		if numeric {
			return a == b
		}
		return string(v) == string(other)
	case NotEqualTo:
		if numeric {
			return a != b
		}
		return string(v) != string(other)
	}

	if numeric {
		switch op {
		case GreaterThan:
			return a > b
		case LessThan:
			return a < b
		case GreaterOrEqual:
			return a >= b
		case LessOrEqual:
			return a <= b
		}
		return false
	}

	cmp := strings.Compare(string(v), string(other))
	switch op {
	case GreaterThan:
		return cmp > 0
	case LessThan:
		return cmp < 0
	case GreaterOrEqual:
		return cmp >= 0
	case LessOrEqual:
		return cmp <= 0
	}

	return false
}
