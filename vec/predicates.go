package vec

import (
	"fmt"
	"math"
)

// maxDoubleInt is the largest magnitude a double may have and still count
// as integer-ish. It matches the longest vector length the host supports.
const maxDoubleInt = 1 << 52

func hasLength(x Value, n int) bool {
	return n < 0 || x.Len() == n
}

// ---------------------------------------------------------------------------
// Kind and length predicates
// ---------------------------------------------------------------------------

// IsVector reports whether x is an atomic vector or a list of length n.
// A negative n accepts any length.
func IsVector(x Value, n int) bool {
	return x.Kind().IsVector() && hasLength(x, n)
}

// IsAtomic is IsVector without lists.
func IsAtomic(x Value, n int) bool {
	return x.Kind().IsAtomic() && hasLength(x, n)
}

// IsLogical reports whether x is a logical vector of length n.
func IsLogical(x Value, n int) bool {
	return x.Kind() == KindLogical && hasLength(x, n)
}

// IsCharacter reports whether x is a character vector of length n.
func IsCharacter(x Value, n int) bool {
	return x.Kind() == KindCharacter && hasLength(x, n)
}

// IsRaw reports whether x is a raw vector of length n.
func IsRaw(x Value, n int) bool {
	return x.Kind() == KindRaw && hasLength(x, n)
}

// IsList reports whether x is a list of length n.
func IsList(x Value, n int) bool {
	return x.Kind() == KindList && hasLength(x, n)
}

// ---------------------------------------------------------------------------
// Numeric predicates
// ---------------------------------------------------------------------------

// IsInteger reports whether x is an integer vector of length n whose
// finiteness meets finite.
func IsInteger(x Value, n int, finite Finite) bool {
	return isNumeric(x, KindInteger, n, finite)
}

// IsDouble reports whether x is a double vector of length n whose finiteness
// meets finite.
func IsDouble(x Value, n int, finite Finite) bool {
	return isNumeric(x, KindDouble, n, finite)
}

// IsComplex reports whether x is a complex vector of length n whose
// finiteness meets finite.
func IsComplex(x Value, n int, finite Finite) bool {
	return isNumeric(x, KindComplex, n, finite)
}

func isNumeric(x Value, kind Kind, n int, finite Finite) bool {
	if x.Kind() != kind || !hasLength(x, n) {
		return false
	}
	if finite != FiniteAny && !finite.allows(IsFinite(x)) {
		return false
	}
	return true
}

// IsIntegerish reports whether x holds whole numbers. Integer vectors are
// checked as by IsInteger. A double vector qualifies when each finite
// element is a whole number of magnitude at most 2^52. Non-finite elements
// only count against the finite requirement.
func IsIntegerish(x Value, n int, finite Finite) bool {
	if x.Kind() == KindInteger {
		return IsInteger(x, n, finite)
	}
	if x.Kind() != KindDouble || !hasLength(x, n) {
		return false
	}

	actualFinite := true
	for _, elt := range float64s(x) {
		if math.IsNaN(elt) || math.IsInf(elt, 0) {
			actualFinite = false
			continue
		}
		if math.Abs(elt) > maxDoubleInt {
			return false
		}
		if elt != float64(int64(elt)) {
			return false
		}
	}

	return finite.allows(actualFinite)
}

// IsFinite reports whether no element of x is missing, NaN or infinite. For
// complex vectors both parts of every element are checked. An empty vector
// is finite.
//
// x must be an integer, double or complex vector. Any other kind is a
// contract violation and panics with a *ContractError.
func IsFinite(x Value) bool {
	switch x.Kind() {
	case KindInteger:
		for _, elt := range int32s(x) {
			if elt == NAInteger {
				return false
			}
		}
	case KindDouble:
		for _, elt := range float64s(x) {
			if math.IsNaN(elt) || math.IsInf(elt, 0) {
				return false
			}
		}
	case KindComplex:
		for _, elt := range complex128s(x) {
			re, im := real(elt), imag(elt)
			if math.IsNaN(re) || math.IsInf(re, 0) || math.IsNaN(im) || math.IsInf(im, 0) {
				return false
			}
		}
	default:
		panic(&ContractError{Op: "IsFinite", Msg: fmt.Sprintf("expected a numeric vector, got %s", x.Kind())})
	}
	return true
}

// ---------------------------------------------------------------------------
// Buffer access
// ---------------------------------------------------------------------------

func int32s(x Value) []int32 {
	r, ok := x.(Int32Reader)
	if !ok {
		panic(&ContractError{Op: "read", Msg: fmt.Sprintf("%T has kind %s but no int32 buffer", x, x.Kind())})
	}
	return r.Int32s()
}

func float64s(x Value) []float64 {
	r, ok := x.(Float64Reader)
	if !ok {
		panic(&ContractError{Op: "read", Msg: fmt.Sprintf("%T has kind %s but no float64 buffer", x, x.Kind())})
	}
	return r.Float64s()
}

func complex128s(x Value) []complex128 {
	r, ok := x.(Complex128Reader)
	if !ok {
		panic(&ContractError{Op: "read", Msg: fmt.Sprintf("%T has kind %s but no complex128 buffer", x, x.Kind())})
	}
	return r.Complex128s()
}
