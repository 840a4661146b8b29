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

	"go.uber.org/zap"
)

// RoleValue returns the raw value a record stores for a role. The error
// wraps ErrRecordNotFound or ErrRoleNotFound, so a missing key is always
// distinguishable from a legitimately stored value.
func (s *Store) RoleValue(name, role string) (Value, error) {
	rec, ok := s.Lookup(name)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrRecordNotFound, name)
	}
	v, ok := rec.Role(role)
	if !ok {
		return "", fmt.Errorf("%w: %q has no %q", ErrRoleNotFound, name, role)
	}
	return v, nil
}

// GetString returns the value as a string, or "" when the record or role is
// missing.
func (s *Store) GetString(name, role string) string {
	v, err := s.RoleValue(name, role)
	if err != nil {
		s.warnLookup("string", name, role, err)
		return ""
	}
	return v.String()
}

// GetBool returns the value as a bool, or false when the record or role is
// missing or the value is not a boolean literal.
func (s *Store) GetBool(name, role string) bool {
	v, err := s.RoleValue(name, role)
	if err != nil {
		s.warnLookup("bool", name, role, err)
		return false
	}
	b, err := v.Bool()
	if err != nil {
		s.warnLookup("bool", name, role, err)
		return false
	}
	return b
}

// GetInt returns the value as an int, or 0 when the record or role is
// missing or the value is not an integer.
func (s *Store) GetInt(name, role string) int {
	v, err := s.RoleValue(name, role)
	if err != nil {
		s.warnLookup("int", name, role, err)
		return 0
	}
	n, err := v.Int()
	if err != nil {
		s.warnLookup("int", name, role, err)
		return 0
	}
	return n
}

// GetFloat returns the value as a float64, or 0.0 when the record or role is
// missing or the value is not a number.
func (s *Store) GetFloat(name, role string) float64 {
	v, err := s.RoleValue(name, role)
	if err != nil {
		s.warnLookup("float", name, role, err)
		return 0
	}
	f, err := v.Float()
	if err != nil {
		s.warnLookup("float", name, role, err)
		return 0
	}
	return f
}

func (s *Store) warnLookup(kind, name, role string, err error) {
	s.logger.Warn("typed roster lookup degraded to default",
		zap.String("kind", kind),
		zap.String("record", name),
		zap.String("role", role),
		zap.Error(err))
}
