package vec

import "fmt"

// NACharacter is the missing value of character buffers. Host strings never
// contain NUL bytes, so the pattern cannot collide with a datum.
const NACharacter = "\x00NA"

// Vector is the in-memory vector value used by MemEngine. Exactly one buffer
// is populated, selected by kind.
type Vector struct {
	kind  Kind
	ints  []int32 // logical and integer
	dbls  []float64
	cpls  []complex128
	strs  []string
	raw   []byte
	elems []Value
	class []string
}

// NewLogical creates a logical vector. TRUE is 1, FALSE is 0 and NALogical
// is missing. The vector takes ownership of xs.
func NewLogical(xs ...int32) *Vector {
	if xs == nil {
		xs = []int32{}
	}
	return &Vector{kind: KindLogical, ints: xs}
}

// NewBool creates a logical vector from Go booleans.
func NewBool(bs ...bool) *Vector {
	xs := make([]int32, len(bs))
	for i, b := range bs {
		if b {
			xs[i] = 1
		}
	}
	return &Vector{kind: KindLogical, ints: xs}
}

// NewInteger creates an integer vector. The vector takes ownership of xs.
func NewInteger(xs ...int32) *Vector {
	if xs == nil {
		xs = []int32{}
	}
	return &Vector{kind: KindInteger, ints: xs}
}

// NewDouble creates a double vector. The vector takes ownership of xs.
func NewDouble(xs ...float64) *Vector {
	if xs == nil {
		xs = []float64{}
	}
	return &Vector{kind: KindDouble, dbls: xs}
}

// NewComplex creates a complex vector. The vector takes ownership of xs.
func NewComplex(xs ...complex128) *Vector {
	if xs == nil {
		xs = []complex128{}
	}
	return &Vector{kind: KindComplex, cpls: xs}
}

// NewCharacter creates a character vector. The vector takes ownership of xs.
func NewCharacter(xs ...string) *Vector {
	if xs == nil {
		xs = []string{}
	}
	return &Vector{kind: KindCharacter, strs: xs}
}

// NewRaw creates a raw vector. The vector takes ownership of xs.
func NewRaw(xs ...byte) *Vector {
	if xs == nil {
		xs = []byte{}
	}
	return &Vector{kind: KindRaw, raw: xs}
}

// NewList creates a generic list. The vector takes ownership of xs.
func NewList(xs ...Value) *Vector {
	if xs == nil {
		xs = []Value{}
	}
	return &Vector{kind: KindList, elems: xs}
}

// NewVector allocates a zero-filled vector of the given kind and length.
// List elements start as empty logical vectors.
func NewVector(kind Kind, n int) *Vector {
	if n < 0 {
		panic(fmt.Sprintf("vec: negative length %d", n))
	}
	switch kind {
	case KindLogical, KindInteger:
		return &Vector{kind: kind, ints: make([]int32, n)}
	case KindDouble:
		return NewDouble(make([]float64, n)...)
	case KindComplex:
		return NewComplex(make([]complex128, n)...)
	case KindCharacter:
		return NewCharacter(make([]string, n)...)
	case KindRaw:
		return NewRaw(make([]byte, n)...)
	case KindList:
		elems := make([]Value, n)
		for i := range elems {
			elems[i] = NewLogical()
		}
		return NewList(elems...)
	default:
		panic(fmt.Sprintf("vec: cannot allocate a vector of kind %s", kind))
	}
}

// Kind implements Value.
func (v *Vector) Kind() Kind { return v.kind }

// Len implements Value.
func (v *Vector) Len() int {
	switch v.kind {
	case KindLogical, KindInteger:
		return len(v.ints)
	case KindDouble:
		return len(v.dbls)
	case KindComplex:
		return len(v.cpls)
	case KindCharacter:
		return len(v.strs)
	case KindRaw:
		return len(v.raw)
	case KindList:
		return len(v.elems)
	}
	return 0
}

// IsObject implements Value. A vector is an object once it has a class.
func (v *Vector) IsObject() bool { return len(v.class) > 0 }

// Class returns the class names of the vector, or nil.
func (v *Vector) Class() []string { return v.class }

// SetClass sets the class names. Passing no names clears the object flag.
func (v *Vector) SetClass(names ...string) *Vector {
	if len(names) == 0 {
		v.class = nil
	} else {
		v.class = append([]string(nil), names...)
	}
	return v
}

// Int32s returns the logical or integer buffer.
func (v *Vector) Int32s() []int32 { return v.ints }

// Float64s returns the double buffer.
func (v *Vector) Float64s() []float64 { return v.dbls }

// Complex128s returns the complex buffer.
func (v *Vector) Complex128s() []complex128 { return v.cpls }

// Strings returns the character buffer.
func (v *Vector) Strings() []string { return v.strs }

// Bytes returns the raw buffer.
func (v *Vector) Bytes() []byte { return v.raw }

// Elems returns the list buffer.
func (v *Vector) Elems() []Value { return v.elems }

// Clone returns a copy of the vector with its own buffer. List elements are
// shared, not cloned.
func (v *Vector) Clone() *Vector {
	c := &Vector{kind: v.kind}
	switch v.kind {
	case KindLogical, KindInteger:
		c.ints = append([]int32{}, v.ints...)
	case KindDouble:
		c.dbls = append([]float64{}, v.dbls...)
	case KindComplex:
		c.cpls = append([]complex128{}, v.cpls...)
	case KindCharacter:
		c.strs = append([]string{}, v.strs...)
	case KindRaw:
		c.raw = append([]byte{}, v.raw...)
	case KindList:
		c.elems = append([]Value{}, v.elems...)
	}
	if v.class != nil {
		c.class = append([]string(nil), v.class...)
	}
	return c
}

// String returns a short description such as "double[3]".
func (v *Vector) String() string {
	if v.IsObject() {
		return fmt.Sprintf("%s[%d] <%s>", v.kind, v.Len(), v.class[0])
	}
	return fmt.Sprintf("%s[%d]", v.kind, v.Len())
}
