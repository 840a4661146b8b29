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

package filter

import (
	"fmt"
	"strings"

	"rosterkit/roster"
)

// Parser turns query strings such as
//
//	Rank = Recruit AND Level > 5
//
// into roster filters. Role names are matched case-insensitively against the
// role-name list the parser was built with. A term without an operator is a
// contains-search across all roles; "~" is an explicit contains.
type Parser struct {
	roles map[string]string // lowercased role name -> canonical role name
}

// New creates a parser for the given role names.
func New(roleNames []string) *Parser {
	roles := make(map[string]string, len(roleNames))
	for _, role := range roleNames {
		roles[strings.ToLower(role)] = role
	}
	return &Parser{roles: roles}
}

// Query is a parsed query string: expressions joined by AND/OR, evaluated
// left to right without precedence.
type Query struct {
	Filters []roster.Filter
	Ops     []LogicOp
}

// Evaluate implements the roster.Filter interface.
func (q *Query) Evaluate(rec *roster.Record) (bool, error) {
	if len(q.Filters) == 0 {
		return true, nil
	}

	result, err := q.Filters[0].Evaluate(rec)
	if err != nil {
		return false, err
	}
	for i, op := range q.Ops {
		next, err := q.Filters[i+1].Evaluate(rec)
		if err != nil {
			return false, err
		}
		switch op {
		case LogicAND:
			result = result && next
		case LogicOR:
			result = result || next
		}
	}
	return result, nil
}

// Description implements the roster.Filter interface.
func (q *Query) Description() string {
	if len(q.Filters) == 0 {
		return "empty query"
	}
	var b strings.Builder
	for i, f := range q.Filters {
		if i > 0 {
			b.WriteString(" " + q.Ops[i-1].String() + " ")
		}
		b.WriteString(f.Description())
	}
	return b.String()
}

// Parse parses a query string. An empty or blank query yields a nil filter,
// which selects everything.
func (p *Parser) Parse(queryStr string) (roster.Filter, error) {
	if strings.TrimSpace(queryStr) == "" {
		return nil, nil
	}

	query := &Query{}
	for _, part := range splitByLogicOps(queryStr) {
		if part.isOperator {
			if strings.EqualFold(part.text, "AND") {
				query.Ops = append(query.Ops, LogicAND)
			} else {
				query.Ops = append(query.Ops, LogicOR)
			}
			continue
		}
		f, err := p.parseExpression(part.text)
		if err != nil {
			return nil, err
		}
		query.Filters = append(query.Filters, f)
	}

	if len(query.Ops) != len(query.Filters)-1 {
		return nil, fmt.Errorf("%w: mismatched expressions and operators", roster.ErrInvalidFilter)
	}

	return query, nil
}

type queryPart struct {
	text       string
	isOperator bool
}

// splitByLogicOps splits the query by AND/OR words while preserving the
// operators. Word boundaries are whitespace, so a role or value containing
// "and" is left intact.
func splitByLogicOps(query string) []queryPart {
	var parts []queryPart
	var current strings.Builder

	flush := func() {
		if text := strings.TrimSpace(current.String()); text != "" {
			parts = append(parts, queryPart{text: text})
		}
		current.Reset()
	}

	i := 0
	for i < len(query) {
		matched := false
		for _, word := range []string{"AND", "OR"} {
			if i+len(word) > len(query) || !strings.EqualFold(query[i:i+len(word)], word) {
				continue
			}
			leftBoundary := i == 0 || isWhitespace(query[i-1])
			rightBoundary := i+len(word) >= len(query) || isWhitespace(query[i+len(word)])
			if leftBoundary && rightBoundary {
				flush()
				parts = append(parts, queryPart{text: word, isOperator: true})
				i += len(word)
				matched = true
				break
			}
		}
		if matched {
			continue
		}
		current.WriteByte(query[i])
		i++
	}
	flush()

	return parts
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// comparison operators, longest symbols first so ">=" wins over ">"
var operators = []struct {
	symbol string
	op     roster.Comparator
}{
	{">=", roster.GreaterOrEqual},
	{"<=", roster.LessOrEqual},
	{"!=", roster.NotEqualTo},
	{"=", roster.EqualTo},
	{">", roster.GreaterThan},
	{"<", roster.LessThan},
}

// parseExpression parses a single expression like "role = value".
func (p *Parser) parseExpression(exprStr string) (roster.Filter, error) {
	exprStr = strings.TrimSpace(exprStr)

	resolve := func(name string) (string, error) {
		canonical, ok := p.roles[strings.ToLower(name)]
		if !ok {
			return "", fmt.Errorf("%w: unknown role %q", roster.ErrInvalidFilter, name)
		}
		return canonical, nil
	}

	if idx := strings.Index(exprStr, "~"); idx > 0 {
		role, err := resolve(strings.TrimSpace(exprStr[:idx]))
		if err != nil {
			return nil, err
		}
		term := strings.Trim(strings.TrimSpace(exprStr[idx+1:]), "\"'")
		return &Contains{Role: role, Term: term}, nil
	}

	for _, opInfo := range operators {
		idx := strings.Index(exprStr, opInfo.symbol)
		if idx <= 0 {
			continue
		}
		role, err := resolve(strings.TrimSpace(exprStr[:idx]))
		if err != nil {
			return nil, err
		}
		value := strings.TrimSpace(exprStr[idx+len(opInfo.symbol):])
		value = strings.Trim(value, "\"'")
		return &Condition{Role: role, Op: opInfo.op, Value: roster.Value(value)}, nil
	}

	// No operator: contains-search across all roles.
	return &AnyRole{Term: strings.Trim(exprStr, "\"'")}, nil
}
