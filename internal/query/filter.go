// Package query parses attribute-filter search expressions of the form
// "<op><value>" and evaluates them against record field values. The grammar
// is a public, stable surface: an operator from {>, <, >=, <=, ==} followed
// immediately by an optionally-quoted literal.
package query

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mesh-intelligence/warehouse/pkg/types"
)

// Op is a comparison operator.
type Op int

// Comparison operators, in the order they are matched (two-character
// tokens first, so ">=" never parses as ">" plus a stray "=").
const (
	OpGE Op = iota
	OpLE
	OpEQ
	OpGT
	OpLT
)

var opTokens = []struct {
	token string
	op    Op
}{
	{">=", OpGE},
	{"<=", OpLE},
	{"==", OpEQ},
	{">", OpGT},
	{"<", OpLT},
}

// String returns the operator token.
func (o Op) String() string {
	for _, t := range opTokens {
		if t.op == o {
			return t.token
		}
	}
	return "?"
}

// ErrBadExpression reports an expression that does not start with a known
// operator token.
var ErrBadExpression = errors.New("malformed filter expression")

// Filter is a parsed comparison: an operator and a typed literal.
type Filter struct {
	Op      Op
	Literal any
}

// Parse splits expr into its operator and literal. The literal resolves as
// a structured literal (int, float, bool, quoted string, nested tuple or
// list) first, then as a timestamp, then falls back to the raw string.
// No check is made that the operator suits the resolved type; ">" on a
// string compares lexicographically and that is the caller's business.
func Parse(expr string) (Filter, error) {
	for _, t := range opTokens {
		if strings.HasPrefix(expr, t.token) {
			raw := expr[len(t.token):]
			return Filter{Op: t.op, Literal: resolveLiteral(raw)}, nil
		}
	}
	return Filter{}, fmt.Errorf("%w: %q", ErrBadExpression, expr)
}

// timeLayouts are the timestamp forms accepted by literal resolution.
var timeLayouts = []string{
	"2006-01-02T15:04:05.000000",
	"2006-01-02 15:04:05.000000",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02",
}

// resolveLiteral typecasts a value token. First successful parse wins.
func resolveLiteral(raw string) any {
	if v, ok := parseStructured(strings.TrimSpace(raw)); ok {
		return v
	}
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, strings.TrimSpace(raw)); err == nil {
			return ts
		}
	}
	return raw
}

// parseStructured attempts the structured-literal kinds: quoted string,
// int, float, bool, and nested tuple/list of structured literals.
func parseStructured(s string) (any, bool) {
	if len(s) >= 2 {
		if (s[0] == '\'' && s[len(s)-1] == '\'') || (s[0] == '"' && s[len(s)-1] == '"') {
			return s[1 : len(s)-1], true
		}
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i, true
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f, true
	}
	switch s {
	case "True", "true":
		return true, true
	case "False", "false":
		return false, true
	}
	if len(s) >= 2 {
		if (s[0] == '(' && s[len(s)-1] == ')') || (s[0] == '[' && s[len(s)-1] == ']') {
			return parseSequence(s[1 : len(s)-1])
		}
	}
	return nil, false
}

// parseSequence parses a comma-separated list of structured literals,
// honoring nesting and quotes. Every element must resolve or the whole
// sequence fails.
func parseSequence(body string) (any, bool) {
	if strings.TrimSpace(body) == "" {
		return []any{}, true
	}
	var (
		items []any
		depth int
		quote byte
		start int
	)
	flush := func(end int) bool {
		v, ok := parseStructured(strings.TrimSpace(body[start:end]))
		if !ok {
			return false
		}
		items = append(items, v)
		return true
	}
	for i := 0; i < len(body); i++ {
		c := body[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == '(' || c == '[':
			depth++
		case c == ')' || c == ']':
			depth--
		case c == ',' && depth == 0:
			if !flush(i) {
				return nil, false
			}
			start = i + 1
		}
	}
	if !flush(len(body)) {
		return nil, false
	}
	return items, true
}

// Match evaluates the filter against a field value. Incomparable kinds
// never match.
func (f Filter) Match(v any) bool {
	c, ok := compare(v, f.Literal)
	if !ok {
		return false
	}
	switch f.Op {
	case OpGT:
		return c > 0
	case OpLT:
		return c < 0
	case OpGE:
		return c >= 0
	case OpLE:
		return c <= 0
	case OpEQ:
		return c == 0
	}
	return false
}

// EvalField looks up field on rec and evaluates the filter against it. An
// absent field is a non-match, not an error: absence silently excludes the
// record from a result set.
func (f Filter) EvalField(rec types.Record, field string) bool {
	v, err := rec.Get(field)
	if err != nil {
		return false
	}
	return f.Match(v)
}

// compare orders a against b, reporting -1/0/1 and whether the two kinds
// are comparable at all. Numeric kinds cross-compare; strings compare
// lexicographically; timestamps by instant; sequences element-wise.
func compare(a, b any) (int, bool) {
	if fa, aok := toFloat(a); aok {
		fb, bok := toFloat(b)
		if !bok {
			return 0, false
		}
		switch {
		case fa < fb:
			return -1, true
		case fa > fb:
			return 1, true
		}
		return 0, true
	}
	switch x := a.(type) {
	case string:
		y, ok := b.(string)
		if !ok {
			return 0, false
		}
		return strings.Compare(x, y), true
	case bool:
		y, ok := b.(bool)
		if !ok {
			return 0, false
		}
		if x == y {
			return 0, true
		}
		if !x {
			return -1, true
		}
		return 1, true
	case time.Time:
		y, ok := b.(time.Time)
		if !ok {
			return 0, false
		}
		return x.Compare(y), true
	case []any:
		y, ok := b.([]any)
		if !ok {
			return 0, false
		}
		return compareSequences(x, y)
	}
	return 0, false
}

func compareSequences(a, b []any) (int, bool) {
	for i := 0; i < len(a) && i < len(b); i++ {
		c, ok := compare(a[i], b[i])
		if !ok {
			return 0, false
		}
		if c != 0 {
			return c, true
		}
	}
	switch {
	case len(a) < len(b):
		return -1, true
	case len(a) > len(b):
		return 1, true
	}
	return 0, true
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case int:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint64:
		return float64(x), true
	case float32:
		return float64(x), true
	case float64:
		return x, true
	}
	return 0, false
}
