// Package filter implements the query expression evaluated against stored
// trade documents: dot-separated field paths, per-field operator conditions,
// AND semantics across all conditions.
package filter

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/kestrelfin/tradestore/internal/document"
)

// ErrInvalid is returned for malformed filters: a non-object condition
// set, an unknown operator, an invalid regex pattern, or a wrong operand
// type for in/nin.
var ErrInvalid = errors.New("invalid filter")

// Expr maps dot-separated field paths to operator conditions, e.g.
//
//	{"data.trade_type": {"eq": "IR_SWAP"}, "data.notional": {"gte": 1000000}}
//
// Supported operators: eq, ne, gt, gte, lt, lte, regex, in, nin.
type Expr map[string]any

// Matches reports whether doc satisfies every condition in the expression.
// An empty or nil expression matches every document. Evaluation is free of
// side effects and safe to run concurrently over a store snapshot.
func Matches(doc document.Document, expr Expr) (bool, error) {
	if len(expr) == 0 {
		return true, nil
	}

	for fieldPath, raw := range expr {
		conditions, ok := raw.(map[string]any)
		if !ok {
			return false, fmt.Errorf("%w: conditions for %q must be an object", ErrInvalid, fieldPath)
		}

		value := doc.Lookup(fieldPath)

		for operator, operand := range conditions {
			ok, err := apply(operator, value, operand)
			if err != nil {
				return false, err
			}
			if !ok {
				return false, nil
			}
		}
	}

	return true, nil
}

func apply(operator string, value, operand any) (bool, error) {
	switch operator {
	case "eq":
		return equal(value, operand), nil
	case "ne":
		return !equal(value, operand), nil
	case "gt":
		cmp, ok := compare(value, operand)
		return ok && cmp > 0, nil
	case "gte":
		cmp, ok := compare(value, operand)
		return ok && cmp >= 0, nil
	case "lt":
		cmp, ok := compare(value, operand)
		return ok && cmp < 0, nil
	case "lte":
		cmp, ok := compare(value, operand)
		return ok && cmp <= 0, nil
	case "regex":
		pattern, ok := operand.(string)
		if !ok {
			return false, fmt.Errorf("%w: regex operator requires a string pattern, got %T", ErrInvalid, operand)
		}
		re, err := regexp.Compile(pattern)
		if err != nil {
			return false, fmt.Errorf("%w: invalid regex pattern %q: %v", ErrInvalid, pattern, err)
		}
		s, ok := value.(string)
		if !ok {
			return false, nil
		}
		return re.MatchString(s), nil
	case "in":
		list, ok := operand.([]any)
		if !ok {
			return false, fmt.Errorf("%w: in operator requires a list, got %T", ErrInvalid, operand)
		}
		return contains(list, value), nil
	case "nin":
		list, ok := operand.([]any)
		if !ok {
			return false, fmt.Errorf("%w: nin operator requires a list, got %T", ErrInvalid, operand)
		}
		return !contains(list, value), nil
	default:
		return false, fmt.Errorf("%w: unknown operator %q", ErrInvalid, operator)
	}
}

func contains(list []any, value any) bool {
	for _, e := range list {
		if equal(e, value) {
			return true
		}
	}
	return false
}

// equal compares two JSON values structurally. Numbers compare by value
// regardless of their Go type, so documents built in code with ints match
// operands decoded from JSON as float64.
func equal(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	if af, ok := asFloat(a); ok {
		bf, ok := asFloat(b)
		return ok && af == bf
	}

	switch at := a.(type) {
	case string:
		bs, ok := b.(string)
		return ok && at == bs
	case bool:
		bb, ok := b.(bool)
		return ok && at == bb
	case []any:
		bl, ok := b.([]any)
		if !ok || len(at) != len(bl) {
			return false
		}
		for i := range at {
			if !equal(at[i], bl[i]) {
				return false
			}
		}
		return true
	case map[string]any:
		bm, ok := b.(map[string]any)
		if !ok || len(at) != len(bm) {
			return false
		}
		for k, av := range at {
			bv, present := bm[k]
			if !present || !equal(av, bv) {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}

// compare orders two values when both are numbers or both are strings.
// A nil or incomparable value reports not-ok, which fails gt/gte/lt/lte
// conditions without raising an error.
func compare(a, b any) (int, bool) {
	af, aok := asFloat(a)
	bf, bok := asFloat(b)
	if aok && bok {
		switch {
		case af < bf:
			return -1, true
		case af > bf:
			return 1, true
		default:
			return 0, true
		}
	}

	as, aok := a.(string)
	bs, bok := b.(string)
	if aok && bok {
		switch {
		case as < bs:
			return -1, true
		case as > bs:
			return 1, true
		default:
			return 0, true
		}
	}

	return 0, false
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}
