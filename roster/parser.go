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
	"strings"

	"go.uber.org/zap"
)

// parseTable turns a comma-separated roster document into records plus the
// role-name list. Line 0 is the header; its column 0 is the name column and
// is not a role. Rows shorter than the header are leniently under-populated,
// cells beyond the header are ignored, and a duplicate record name is won by
// the later row.
func parseTable(raw string) (map[string]*Record, []string) {
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		if line != "" {
			lines = append(lines, line)
		}
	}

	records := make(map[string]*Record)
	if len(lines) == 0 {
		return records, nil
	}

	header := strings.Split(lines[0], ",")
	roles := append([]string(nil), header[1:]...)

	for _, line := range lines[1:] {
		cells := strings.Split(line, ",")
		rec := &Record{
			name:  cells[0],
			roles: make(map[string]Value),
		}
		for j := 1; j < len(cells) && j < len(header); j++ {
			// A cell that reads as boolean false is suppressed: for flag
			// columns, absence and explicit false are the same thing.
			if b, ok := boolLiteral(cells[j]); ok && !b {
				continue
			}
			rec.roles[header[j]] = Value(cells[j])
		}
		records[rec.name] = rec
	}

	return records, roles
}

// parseDocument dispatches on the configured document format. The JSON
// branch is a recognized stub: it logs a warning and yields an empty roster.
func parseDocument(raw string, format Format, logger *zap.Logger) (map[string]*Record, []string) {
	switch format {
	case FormatJSON:
		logger.Warn("json roster format is not implemented; loading an empty roster")
		return make(map[string]*Record), nil
	default:
		return parseTable(raw)
	}
}
