package vec

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// Test coercers
// ---------------------------------------------------------------------------

// intsToDouble widens integer vectors; anything else fails.
func intsToDouble(v Value) (Value, error) {
	ints, ok := v.(Int32Reader)
	if !ok || v.Kind() != KindInteger {
		return nil, fmt.Errorf("cannot convert %s", v.Kind())
	}
	out := make([]float64, v.Len())
	for i, x := range ints.Int32s() {
		if x == NAInteger {
			out[i] = math.NaN()
			continue
		}
		out[i] = float64(x)
	}
	return NewDouble(out...), nil
}

// releasedVector records Release calls.
type releasedVector struct {
	*Vector
	released *int
}

func (r releasedVector) Release() { *r.released++ }

// countingEngine records calls before delegating to MemEngine.
type countingEngine struct {
	calls int
	last  Value
}

func (e *countingEngine) CopyRange(dst Value, offset int, src Value, from, n int) {
	e.calls++
	e.last = src
	MemEngine{}.CopyRange(dst, offset, src, from, n)
}

func newTestCopier(engine Engine) *Copier {
	return NewCopier(engine, Coercers{KindDouble: intsToDouble})
}

// ---------------------------------------------------------------------------
// Same-kind copies
// ---------------------------------------------------------------------------

func TestPokeCoerceSameKind(t *testing.T) {
	engine := &countingEngine{}
	c := NewCopier(engine, nil)

	dst := NewInteger(0, 0, 0, 0)
	src := NewInteger(7, 8, 9)
	if err := c.PokeCoerce(dst, 1, src, 1, 2); err != nil {
		t.Fatalf("PokeCoerce: %v", err)
	}

	want := []int32{0, 8, 9, 0}
	for i, x := range dst.Int32s() {
		if x != want[i] {
			t.Errorf("dst[%d] = %d, want %d", i, x, want[i])
		}
	}
	if engine.calls != 1 || engine.last != Value(src) {
		t.Error("same-kind poke should copy straight from the source")
	}
}

func TestPokeCoerceSameKindObject(t *testing.T) {
	c := NewCopier(MemEngine{}, nil)
	dst := NewInteger(0, 0)
	src := NewInteger(3, 4).SetClass("factor")

	if err := c.PokeCoerce(dst, 0, src, 0, 2); err != nil {
		t.Fatalf("same-kind object poke should succeed: %v", err)
	}
	if dst.Int32s()[1] != 4 {
		t.Errorf("dst[1] = %d, want 4", dst.Int32s()[1])
	}
}

func TestPokeCoerceEveryKind(t *testing.T) {
	c := NewCopier(MemEngine{}, nil)
	for _, src := range allVectors() {
		dst := NewVector(src.Kind(), 3)
		if err := c.PokeCoerce(dst, 1, src, 0, 2); err != nil {
			t.Errorf("PokeCoerce(%s): %v", src, err)
		}
	}
	l := NewVector(KindList, 2)
	x := NewRaw(1)
	if err := c.PokeCoerce(l, 1, NewList(x), 0, 1); err != nil {
		t.Fatalf("list poke: %v", err)
	}
	if l.Elems()[1] != Value(x) {
		t.Error("list poke should share the element")
	}
}

// ---------------------------------------------------------------------------
// Cross-kind copies
// ---------------------------------------------------------------------------

func TestPokeCoerceIntegerIntoDouble(t *testing.T) {
	c := newTestCopier(MemEngine{})

	dst := NewDouble(-1, -1, -1, -1, -1)
	src := NewInteger(10, 20, 30)
	if err := c.PokeCoerce(dst, 1, src, 0, 2); err != nil {
		t.Fatalf("PokeCoerce: %v", err)
	}

	want := []float64{-1, 10, 20, -1, -1}
	for i, x := range dst.Float64s() {
		if x != want[i] {
			t.Errorf("dst[%d] = %v, want %v", i, x, want[i])
		}
	}
}

func TestPokeCoerceRangeIsInclusive(t *testing.T) {
	c := newTestCopier(MemEngine{})

	a := NewDouble(0, 0, 0, 0)
	b := NewDouble(0, 0, 0, 0)
	src := NewInteger(1, 2, 3, 4)

	if err := c.PokeCoerceRange(a, 0, src, 1, 3); err != nil {
		t.Fatalf("PokeCoerceRange: %v", err)
	}
	if err := c.PokeCoerce(b, 0, src, 1, 3); err != nil {
		t.Fatalf("PokeCoerce: %v", err)
	}

	want := []float64{2, 3, 4, 0}
	for i := range want {
		if a.Float64s()[i] != want[i] {
			t.Errorf("range dst[%d] = %v, want %v", i, a.Float64s()[i], want[i])
		}
		if a.Float64s()[i] != b.Float64s()[i] {
			t.Errorf("range and count disagree at %d: %v vs %v", i, a.Float64s()[i], b.Float64s()[i])
		}
	}
}

func TestPokeCoerceConvertsWholeSource(t *testing.T) {
	var seen int
	c := NewCopier(MemEngine{}, Coercers{KindDouble: func(v Value) (Value, error) {
		seen = v.Len()
		return intsToDouble(v)
	}})

	dst := NewDouble(0)
	if err := c.PokeCoerce(dst, 0, NewInteger(1, 2, 3, 4, 5), 4, 1); err != nil {
		t.Fatalf("PokeCoerce: %v", err)
	}
	if seen != 5 {
		t.Errorf("coercer saw %d elements, want 5", seen)
	}
	if dst.Float64s()[0] != 5 {
		t.Errorf("dst[0] = %v, want 5", dst.Float64s()[0])
	}
}

func TestPokeCoerceReleasesTransient(t *testing.T) {
	var released int
	c := NewCopier(MemEngine{}, Coercers{KindDouble: func(v Value) (Value, error) {
		d, err := intsToDouble(v)
		if err != nil {
			return nil, err
		}
		return releasedVector{Vector: d.(*Vector), released: &released}, nil
	}})

	// MemEngine needs a *Vector, so unwrap through an engine shim.
	engine := engineFunc(func(dst Value, offset int, src Value, from, n int) {
		if r, ok := src.(releasedVector); ok {
			src = r.Vector
		}
		MemEngine{}.CopyRange(dst, offset, src, from, n)
	})
	c.engine = engine

	dst := NewDouble(0, 0)
	if err := c.PokeCoerce(dst, 0, NewInteger(1, 2), 0, 2); err != nil {
		t.Fatalf("PokeCoerce: %v", err)
	}
	if released != 1 {
		t.Errorf("transient released %d times, want 1", released)
	}
}

type engineFunc func(dst Value, offset int, src Value, from, n int)

func (f engineFunc) CopyRange(dst Value, offset int, src Value, from, n int) {
	f(dst, offset, src, from, n)
}

// ---------------------------------------------------------------------------
// Failures
// ---------------------------------------------------------------------------

func TestPokeCoerceRefusesObjects(t *testing.T) {
	engine := &countingEngine{}
	called := false
	c := NewCopier(engine, Coercers{KindDouble: func(v Value) (Value, error) {
		called = true
		return intsToDouble(v)
	}})

	dst := NewDouble(1, 2, 3)
	src := NewInteger(1, 2, 3).SetClass("factor")
	err := c.PokeCoerce(dst, 0, src, 0, 3)
	if !errors.Is(err, ErrObjectSplice) {
		t.Fatalf("err = %v, want ErrObjectSplice", err)
	}
	if called || engine.calls != 0 {
		t.Error("object poke should fail before coercing or copying")
	}
	want := []float64{1, 2, 3}
	for i, x := range dst.Float64s() {
		if x != want[i] {
			t.Errorf("dst[%d] = %v, want untouched %v", i, x, want[i])
		}
	}
}

func TestPokeCoerceNoCoercion(t *testing.T) {
	c := newTestCopier(MemEngine{})

	tests := []struct {
		name string
		dst  Value
	}{
		{"list", NewList(NewInteger(1))},
		{"integer without coercer", NewInteger(0)},
		{"other", opaque{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := c.PokeCoerce(tt.dst, 0, NewCharacter("1"), 0, 1)
			if !errors.Is(err, ErrNoCoercion) {
				t.Fatalf("err = %v, want ErrNoCoercion", err)
			}
			if !strings.Contains(err.Error(), "`"+tt.dst.Kind().String()+"`") {
				t.Errorf("error %q should name kind %s", err, tt.dst.Kind())
			}
		})
	}
}

func TestPokeCoerceListTableEntryIgnored(t *testing.T) {
	c := NewCopier(MemEngine{}, Coercers{KindList: func(v Value) (Value, error) {
		return NewList(v), nil
	}})
	if _, err := c.Coercer(KindList); !errors.Is(err, ErrNoCoercion) {
		t.Errorf("Coercer(list) err = %v, want ErrNoCoercion", err)
	}
}

func TestPokeCoerceCoercerFailure(t *testing.T) {
	boom := errors.New("boom")
	c := NewCopier(MemEngine{}, Coercers{KindDouble: func(Value) (Value, error) { return nil, boom }})

	err := c.PokeCoerce(NewDouble(0), 0, NewInteger(1), 0, 1)
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped boom", err)
	}
}

func TestPokeCoerceCoercerWrongKind(t *testing.T) {
	c := NewCopier(MemEngine{}, Coercers{KindDouble: func(v Value) (Value, error) { return NewCharacter("x"), nil }})

	dst := NewDouble(0)
	err := c.PokeCoerce(dst, 0, NewInteger(1), 0, 1)
	if !errors.Is(err, ErrCoercerKind) {
		t.Fatalf("err = %v, want ErrCoercerKind", err)
	}
	if dst.Float64s()[0] != 0 {
		t.Error("dst should be untouched")
	}
}

func TestPokeCoerceCoercerNilResult(t *testing.T) {
	c := NewCopier(MemEngine{}, Coercers{KindDouble: func(Value) (Value, error) { return nil, nil }})

	dst := NewDouble(4)
	err := c.PokeCoerce(dst, 0, NewInteger(1), 0, 1)
	if !errors.Is(err, ErrCoercerKind) {
		t.Fatalf("err = %v, want ErrCoercerKind", err)
	}
	if dst.Float64s()[0] != 4 {
		t.Error("dst should be untouched")
	}
}

// ---------------------------------------------------------------------------
// Namespace resolution
// ---------------------------------------------------------------------------

func TestResolveCoercers(t *testing.T) {
	ns := NewNamespace()
	ns.Define("as_double", intsToDouble)

	table, err := ResolveCoercers(ns, map[Kind]string{KindDouble: "as_double"})
	if err != nil {
		t.Fatalf("ResolveCoercers: %v", err)
	}
	if table[KindDouble] == nil {
		t.Fatal("double coercer not resolved")
	}

	if _, err := ResolveCoercers(ns, DefaultCoercerNames()); err == nil {
		t.Error("missing names should fail to resolve")
	}
	if _, err := ResolveCoercers(ns, map[Kind]string{KindList: "as_double"}); !errors.Is(err, ErrNoCoercion) {
		t.Errorf("list entry err = %v, want ErrNoCoercion", err)
	}
}

func TestNamespaceNames(t *testing.T) {
	ns := NewNamespace()
	ns.Define("b", intsToDouble)
	ns.Define("a", intsToDouble)
	ns.Define("b", intsToDouble)

	names := ns.Names()
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("Names() = %v, want [a b]", names)
	}
	if _, ok := ns.Lookup("c"); ok {
		t.Error("Lookup of unbound name should fail")
	}
}

func TestDefaultCoercerNamesCoverAtomicKinds(t *testing.T) {
	names := DefaultCoercerNames()
	for _, k := range Kinds() {
		_, ok := names[k]
		if ok != k.IsAtomic() {
			t.Errorf("default name for %s present = %v, want %v", k, ok, k.IsAtomic())
		}
	}
	if names[KindRaw] != "as_bytes" {
		t.Errorf("raw coercer = %q, want as_bytes", names[KindRaw])
	}
}
