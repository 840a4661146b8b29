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

// Package arrowconv converts between Arrow record batches and roster
// documents, for hosts that already hold their roster in columnar form.
package arrowconv

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"rosterkit/roster"
)

// Errors returned by the arrowconv package.
var (
	// ErrNoColumns is returned when a record batch has no columns to use
	// as the name column.
	ErrNoColumns = errors.New("record batch has no columns")

	// ErrUnsupportedType is returned for Arrow column types the roster
	// document cannot carry.
	ErrUnsupportedType = errors.New("unsupported arrow column type")

	// ErrUnrepresentableCell is returned when a cell contains the column
	// or line delimiter; the roster format has no quoting.
	ErrUnrepresentableCell = errors.New("cell not representable in roster document")
)

// Document renders an Arrow record batch as a roster document: column 0
// becomes the name column, the remaining columns become roles. The result is
// meant to be fed through the service's tabular parser so the
// boolean-suppression rule is applied in exactly one place. Null cells
// render empty.
func Document(rec arrow.Record) (string, error) {
	if rec.NumCols() == 0 {
		return "", ErrNoColumns
	}

	schema := rec.Schema()
	var b strings.Builder

	for i := 0; i < int(rec.NumCols()); i++ {
		if i > 0 {
			b.WriteByte(',')
		}
		name := schema.Field(i).Name
		if strings.ContainsAny(name, ",\n") {
			return "", fmt.Errorf("%w: column name %q", ErrUnrepresentableCell, name)
		}
		b.WriteString(name)
	}
	b.WriteByte('\n')

	for row := 0; row < int(rec.NumRows()); row++ {
		for i := 0; i < int(rec.NumCols()); i++ {
			if i > 0 {
				b.WriteByte(',')
			}
			cell, err := formatCell(rec.Column(i), row)
			if err != nil {
				return "", err
			}
			if strings.ContainsAny(cell, ",\n") {
				return "", fmt.Errorf("%w: %q", ErrUnrepresentableCell, cell)
			}
			b.WriteString(cell)
		}
		b.WriteByte('\n')
	}

	return b.String(), nil
}

// formatCell converts an Arrow column value at a specific position to the
// text stored in a roster cell.
func formatCell(col arrow.Array, pos int) (string, error) {
	if col.IsNull(pos) {
		return "", nil
	}

	switch col.DataType().ID() {
	case arrow.STRING:
		s := col.(*array.String)
		return s.Value(pos), nil

	case arrow.BOOL:
		b := col.(*array.Boolean)
		return strconv.FormatBool(b.Value(pos)), nil

	case arrow.INT32:
		i32 := col.(*array.Int32)
		return strconv.FormatInt(int64(i32.Value(pos)), 10), nil

	case arrow.INT64:
		i64 := col.(*array.Int64)
		return strconv.FormatInt(i64.Value(pos), 10), nil

	case arrow.FLOAT32:
		f32 := col.(*array.Float32)
		return strconv.FormatFloat(float64(f32.Value(pos)), 'g', -1, 32), nil

	case arrow.FLOAT64:
		f64 := col.(*array.Float64)
		return strconv.FormatFloat(f64.Value(pos), 'g', -1, 64), nil

	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, col.DataType().Name())
	}
}

// NewRecord builds an all-string Arrow record batch from a roster: a name
// column plus one nullable column per role in header order, records sorted
// by name, absent roles as nulls. The caller owns the returned record and
// must Release it.
func NewRecord(st *roster.Store) arrow.Record {
	roles := st.RoleNames()
	fields := make([]arrow.Field, 0, len(roles)+1)
	fields = append(fields, arrow.Field{Name: "name", Type: arrow.BinaryTypes.String})
	for _, role := range roles {
		fields = append(fields, arrow.Field{Name: role, Type: arrow.BinaryTypes.String, Nullable: true})
	}
	schema := arrow.NewSchema(fields, nil)

	pool := memory.NewGoAllocator()
	builder := array.NewRecordBuilder(pool, schema)
	defer builder.Release()

	for _, name := range st.Names() {
		rec, ok := st.Lookup(name)
		if !ok {
			continue
		}
		builder.Field(0).(*array.StringBuilder).Append(name)
		for i, role := range roles {
			fb := builder.Field(i + 1).(*array.StringBuilder)
			if v, carried := rec.Role(role); carried {
				fb.Append(v.String())
			} else {
				fb.AppendNull()
			}
		}
	}

	return builder.NewRecord()
}
