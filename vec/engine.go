package vec

import "fmt"

// Engine is the storage engine primitive the Copier writes through.
//
// CopyRange copies n elements of src starting at from into dst starting at
// offset. Both values have the same kind. Bounds are a precondition: the
// engine is not required to check them.
type Engine interface {
	CopyRange(dst Value, offset int, src Value, from, n int)
}

// MemEngine is the Engine for *Vector values.
type MemEngine struct{}

// CopyRange implements Engine. Violated preconditions panic.
func (MemEngine) CopyRange(dst Value, offset int, src Value, from, n int) {
	d, ok := dst.(*Vector)
	if !ok {
		panic(fmt.Sprintf("vec: MemEngine cannot write to %T", dst))
	}
	s, ok := src.(*Vector)
	if !ok {
		panic(fmt.Sprintf("vec: MemEngine cannot read from %T", src))
	}
	if d.kind != s.kind {
		panic(fmt.Sprintf("vec: MemEngine copy from %s into %s", s.kind, d.kind))
	}
	if n <= 0 {
		return
	}

	switch d.kind {
	case KindLogical, KindInteger:
		copy(d.ints[offset:offset+n], s.ints[from:from+n])
	case KindDouble:
		copy(d.dbls[offset:offset+n], s.dbls[from:from+n])
	case KindComplex:
		copy(d.cpls[offset:offset+n], s.cpls[from:from+n])
	case KindCharacter:
		copy(d.strs[offset:offset+n], s.strs[from:from+n])
	case KindRaw:
		copy(d.raw[offset:offset+n], s.raw[from:from+n])
	case KindList:
		copy(d.elems[offset:offset+n], s.elems[from:from+n])
	default:
		panic(fmt.Sprintf("vec: MemEngine cannot copy kind %s", d.kind))
	}
}
