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

// Package export writes a roster back out as CSV or JSON. Output is
// deterministic: records sorted by name, roles in header order.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"

	"rosterkit/roster"
)

// Format represents the supported export formats.
type Format int

const (
	FormatCSV Format = iota
	FormatJSON
)

// ToCSV writes the roster as comma-separated values. The header is the name
// column followed by the role names in header order; a role a record does
// not carry is written as an empty cell.
func ToCSV(st *roster.Store, w io.Writer) error {
	writer := csv.NewWriter(w)

	roles := st.RoleNames()
	header := append([]string{"name"}, roles...)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, name := range st.Names() {
		rec, ok := st.Lookup(name)
		if !ok {
			continue
		}
		row := make([]string, 0, len(header))
		row = append(row, name)
		for _, role := range roles {
			v, _ := rec.Role(role)
			row = append(row, v.String())
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// ToJSON writes the roster as an indented JSON object keyed by record name,
// each record an object of role -> stored text.
func ToJSON(st *roster.Store, w io.Writer) error {
	out := make(map[string]map[string]string, st.Len())
	for _, name := range st.Names() {
		rec, ok := st.Lookup(name)
		if !ok {
			continue
		}
		entry := make(map[string]string)
		for _, role := range rec.Roles() {
			v, _ := rec.Role(role)
			entry[role] = v.String()
		}
		out[name] = entry
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(out); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// ToFile exports the roster to a file in the given format.
func ToFile(st *roster.Store, format Format, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer file.Close()

	switch format {
	case FormatCSV:
		return ToCSV(st, file)
	case FormatJSON:
		return ToJSON(st, file)
	default:
		return fmt.Errorf("unsupported export format %d", format)
	}
}
