package vec

import "math"

// ---------------------------------------------------------------------------
// Value contract
// ---------------------------------------------------------------------------

// Value is a vector owned by a storage engine. The package only reads its
// metadata and, for numeric kinds, its element buffer.
type Value interface {
	// Kind returns the element representation.
	Kind() Kind
	// Len returns the element count. It is never negative.
	Len() int
	// IsObject reports whether the value carries class semantics that a
	// raw coercion must not bypass.
	IsObject() bool
}

// Int32Reader exposes the buffer of a logical or integer vector.
type Int32Reader interface {
	Int32s() []int32
}

// Float64Reader exposes the buffer of a double vector.
type Float64Reader interface {
	Float64s() []float64
}

// Complex128Reader exposes the buffer of a complex vector.
type Complex128Reader interface {
	Complex128s() []complex128
}

// StringReader exposes the buffer of a character vector.
type StringReader interface {
	Strings() []string
}

// ByteReader exposes the buffer of a raw vector.
type ByteReader interface {
	Bytes() []byte
}

// ListReader exposes the elements of a list.
type ListReader interface {
	Elems() []Value
}

// Releaser is implemented by values whose storage must be given back to the
// engine once the holder is done with them.
type Releaser interface {
	Release()
}

// ---------------------------------------------------------------------------
// Sentinels
// ---------------------------------------------------------------------------

// NAInteger is the missing value of integer buffers. It is never a valid
// datum.
const NAInteger int32 = math.MinInt32

// NALogical is the missing value of logical buffers.
const NALogical = NAInteger

// AnyLength disables the exact length constraint of a predicate. Any
// negative length has the same effect.
const AnyLength = -1

// Finite is a tri-state finiteness requirement.
type Finite int8

const (
	// FiniteAny places no requirement on finiteness.
	FiniteAny Finite = iota
	// FiniteTrue requires every element to be finite.
	FiniteTrue
	// FiniteFalse requires at least one non-finite element.
	FiniteFalse
)

// FiniteOf converts a boolean requirement to a Finite.
func FiniteOf(b bool) Finite {
	if b {
		return FiniteTrue
	}
	return FiniteFalse
}

// String returns "any", "true" or "false".
func (f Finite) String() string {
	switch f {
	case FiniteTrue:
		return "true"
	case FiniteFalse:
		return "false"
	default:
		return "any"
	}
}

// allows reports whether a vector with the given actual finiteness meets the
// requirement.
func (f Finite) allows(actual bool) bool {
	switch f {
	case FiniteTrue:
		return actual
	case FiniteFalse:
		return !actual
	default:
		return true
	}
}
