package server

import (
	"fmt"
	"sort"

	"github.com/chazu/rvec/vec"
)

// lengthPredicates take a length constraint only.
var lengthPredicates = map[string]func(vec.Value, int) bool{
	"vector":    vec.IsVector,
	"atomic":    vec.IsAtomic,
	"logical":   vec.IsLogical,
	"character": vec.IsCharacter,
	"raw":       vec.IsRaw,
	"list":      vec.IsList,
}

// numericPredicates also take a finiteness requirement.
var numericPredicates = map[string]func(vec.Value, int, vec.Finite) bool{
	"integer":    vec.IsInteger,
	"double":     vec.IsDouble,
	"complex":    vec.IsComplex,
	"integerish": vec.IsIntegerish,
}

// Predicates returns the names Check accepts, sorted.
func Predicates() []string {
	names := []string{"finite"}
	for name := range lengthPredicates {
		names = append(names, name)
	}
	for name := range numericPredicates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseFinite parses "any", "true" or "false". The empty string is "any".
func ParseFinite(s string) (vec.Finite, error) {
	switch s {
	case "", "any":
		return vec.FiniteAny, nil
	case "true":
		return vec.FiniteTrue, nil
	case "false":
		return vec.FiniteFalse, nil
	default:
		return vec.FiniteAny, fmt.Errorf("invalid finite requirement %q", s)
	}
}

// Check evaluates the named predicate against x. Finiteness of a
// non-numeric vector is reported as an error rather than a false result.
func Check(x vec.Value, predicate string, n int, finite vec.Finite) (bool, error) {
	if p, ok := lengthPredicates[predicate]; ok {
		if finite != vec.FiniteAny {
			return false, fmt.Errorf("predicate %q takes no finite requirement", predicate)
		}
		return p(x, n), nil
	}
	if p, ok := numericPredicates[predicate]; ok {
		return p(x, n, finite), nil
	}
	if predicate == "finite" {
		if !x.Kind().IsNumeric() {
			return false, fmt.Errorf("finiteness is undefined for %s vectors", x.Kind())
		}
		return vec.IsFinite(x), nil
	}
	return false, fmt.Errorf("unknown predicate %q", predicate)
}
