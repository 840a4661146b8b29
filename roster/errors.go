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

import "errors"

// Common errors returned by the roster package.
var (
	// ErrRecordNotFound is returned when a record name is not in the roster.
	ErrRecordNotFound = errors.New("record not found")

	// ErrRoleNotFound is returned when a record does not carry a role.
	ErrRoleNotFound = errors.New("role not found")

	// ErrTypeMismatch is returned when a value cannot be read as the
	// requested type.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrInvalidFilter is returned when a filter expression is invalid.
	ErrInvalidFilter = errors.New("invalid filter expression")

	// ErrInvalidConfig is returned when the service configuration is
	// incomplete or inconsistent.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrUnexpectedStatus is returned by the HTTP fetcher for any non-200
	// response.
	ErrUnexpectedStatus = errors.New("unexpected HTTP status")
)
