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

import "go.uber.org/zap"

type readyListener struct {
	id string
	fn func()
}

// OnReady registers a callback fired exactly once, in registration order,
// when the current initialization cycle completes. Subscribing while the
// service is already ready invokes the callback synchronously without
// registering it. A duplicate id is rejected with a warning.
func (s *Service) OnReady(id string, fn func()) {
	s.mu.Lock()
	if s.state == StateReady {
		s.mu.Unlock()
		fn()
		return
	}
	for _, l := range s.listeners {
		if l.id == id {
			s.logger.Warn("ready listener already registered; request ignored",
				zap.String("id", id))
			s.mu.Unlock()
			return
		}
	}
	s.listeners = append(s.listeners, readyListener{id: id, fn: fn})
	s.mu.Unlock()
}

// RemoveOnReady drops a registered callback. Removing an id that is not
// registered is a logged no-op.
func (s *Service) RemoveOnReady(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, l := range s.listeners {
		if l.id == id {
			s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
			return
		}
	}
	s.logger.Warn("ready listener not registered; nothing to remove",
		zap.String("id", id))
}
