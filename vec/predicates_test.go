package vec

import (
	"errors"
	"math"
	"testing"
)

// opaque is a non-vector host value.
type opaque struct{}

func (opaque) Kind() Kind     { return KindOther }
func (opaque) Len() int       { return 1 }
func (opaque) IsObject() bool { return false }

func allVectors() []*Vector {
	return []*Vector{
		NewBool(true, false),
		NewInteger(1, 2),
		NewDouble(1.5, 2),
		NewComplex(1+2i, 3),
		NewCharacter("a", "b"),
		NewRaw(0x01, 0x02),
		NewList(NewInteger(1), NewDouble(2)),
	}
}

// ---------------------------------------------------------------------------
// Kind and length predicates
// ---------------------------------------------------------------------------

func TestIsVectorAcceptsEveryKind(t *testing.T) {
	for _, v := range allVectors() {
		if !IsVector(v, AnyLength) {
			t.Errorf("IsVector(%s, any) = false, want true", v)
		}
		if !IsVector(v, 2) {
			t.Errorf("IsVector(%s, 2) = false, want true", v)
		}
		if IsVector(v, 3) {
			t.Errorf("IsVector(%s, 3) = true, want false", v)
		}
	}
	if IsVector(opaque{}, AnyLength) {
		t.Error("IsVector should reject non-vector values")
	}
}

func TestNegativeLengthIsUnconstrained(t *testing.T) {
	v := NewDouble(1, 2, 3)
	for _, n := range []int{-1, -2, math.MinInt} {
		if !IsVector(v, n) {
			t.Errorf("IsVector(%s, %d) = false, want true", v, n)
		}
		if !IsDouble(v, n, FiniteAny) {
			t.Errorf("IsDouble(%s, %d) = false, want true", v, n)
		}
	}
}

func TestIsAtomicRejectsLists(t *testing.T) {
	lists := []*Vector{NewList(), NewList(NewInteger(1)), NewList(NewRaw(1), NewRaw(2))}
	for _, l := range lists {
		for n := 0; n < 3; n++ {
			if IsAtomic(l, n) {
				t.Errorf("IsAtomic(%s, %d) = true, want false", l, n)
			}
		}
		if IsAtomic(l, AnyLength) {
			t.Errorf("IsAtomic(%s, any) = true, want false", l)
		}
	}
	for _, v := range allVectors()[:6] {
		if !IsAtomic(v, 2) {
			t.Errorf("IsAtomic(%s, 2) = false, want true", v)
		}
	}
	if IsAtomic(opaque{}, AnyLength) {
		t.Error("IsAtomic should reject non-vector values")
	}
}

func TestExactKindPredicates(t *testing.T) {
	tests := []struct {
		name string
		pred func(Value, int) bool
		kind Kind
	}{
		{"IsLogical", IsLogical, KindLogical},
		{"IsCharacter", IsCharacter, KindCharacter},
		{"IsRaw", IsRaw, KindRaw},
		{"IsList", IsList, KindList},
	}

	for _, tt := range tests {
		for _, v := range allVectors() {
			want := v.Kind() == tt.kind
			if got := tt.pred(v, AnyLength); got != want {
				t.Errorf("%s(%s) = %v, want %v", tt.name, v, got, want)
			}
			if tt.pred(v, 5) {
				t.Errorf("%s(%s, 5) = true, want false", tt.name, v)
			}
		}
		if tt.pred(opaque{}, AnyLength) {
			t.Errorf("%s should reject non-vector values", tt.name)
		}
	}
}

func TestPredicatesIgnoreObjectFlag(t *testing.T) {
	f := NewInteger(1, 2, 1).SetClass("factor")
	if !IsInteger(f, 3, FiniteTrue) {
		t.Error("IsInteger should accept an integer object")
	}
	if !IsAtomic(f, AnyLength) {
		t.Error("IsAtomic should accept an integer object")
	}
}

// ---------------------------------------------------------------------------
// Finiteness
// ---------------------------------------------------------------------------

func TestIsFinite(t *testing.T) {
	nan := math.NaN()
	inf := math.Inf(1)

	tests := []struct {
		name string
		v    *Vector
		want bool
	}{
		{"empty integer", NewInteger(), true},
		{"integer", NewInteger(1, -2, math.MaxInt32), true},
		{"integer with NA", NewInteger(1, NAInteger), false},
		{"only NA", NewInteger(NAInteger), false},
		{"empty double", NewDouble(), true},
		{"double", NewDouble(1.5, -1e300), true},
		{"double NaN", NewDouble(1, nan), false},
		{"double Inf", NewDouble(inf), false},
		{"double -Inf", NewDouble(math.Inf(-1), 0), false},
		{"complex", NewComplex(1+1i, -2), true},
		{"complex NaN real", NewComplex(complex(nan, 0)), false},
		{"complex Inf imaginary", NewComplex(1, complex(0, inf)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsFinite(tt.v); got != tt.want {
				t.Errorf("IsFinite(%v) = %v, want %v", tt.v, got, tt.want)
			}
		})
	}
}

func TestIsFinitePanicsOnNonNumeric(t *testing.T) {
	for _, v := range []Value{NewBool(true), NewCharacter("x"), NewRaw(1), NewList(), opaque{}} {
		func() {
			defer func() {
				r := recover()
				if r == nil {
					t.Errorf("IsFinite(%v) should panic", v)
					return
				}
				var ce *ContractError
				err, ok := r.(error)
				if !ok || !errors.As(err, &ce) {
					t.Errorf("IsFinite(%v) panicked with %v, want *ContractError", v, r)
				}
			}()
			IsFinite(v)
		}()
	}
}

func TestNumericPredicates(t *testing.T) {
	ints := NewInteger(1, 2, 3)
	intsNA := NewInteger(1, NAInteger)
	dbls := NewDouble(1, 2.5)
	dblsNaN := NewDouble(math.NaN())
	cpls := NewComplex(1i)

	tests := []struct {
		name string
		got  bool
		want bool
	}{
		{"integer any", IsInteger(ints, AnyLength, FiniteAny), true},
		{"integer length", IsInteger(ints, 3, FiniteAny), true},
		{"integer wrong length", IsInteger(ints, 2, FiniteAny), false},
		{"integer finite", IsInteger(ints, AnyLength, FiniteTrue), true},
		{"integer not finite", IsInteger(ints, AnyLength, FiniteFalse), false},
		{"integer NA finite", IsInteger(intsNA, AnyLength, FiniteTrue), false},
		{"integer NA not finite", IsInteger(intsNA, AnyLength, FiniteFalse), true},
		{"integer rejects double", IsInteger(dbls, AnyLength, FiniteAny), false},
		{"integer rejects logical", IsInteger(NewBool(true), AnyLength, FiniteAny), false},
		{"double any", IsDouble(dbls, 2, FiniteAny), true},
		{"double finite", IsDouble(dbls, AnyLength, FiniteTrue), true},
		{"double NaN finite", IsDouble(dblsNaN, AnyLength, FiniteTrue), false},
		{"double NaN not finite", IsDouble(dblsNaN, AnyLength, FiniteFalse), true},
		{"double rejects integer", IsDouble(ints, AnyLength, FiniteAny), false},
		{"complex", IsComplex(cpls, 1, FiniteTrue), true},
		{"complex rejects double", IsComplex(dbls, AnyLength, FiniteAny), false},
	}

	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestFiniteRequirementSkipsNonNumeric(t *testing.T) {
	// Kind is checked first, so a finiteness requirement never reaches
	// IsFinite with a non-numeric vector.
	if IsDouble(NewCharacter("1"), AnyLength, FiniteTrue) {
		t.Error("IsDouble should reject a character vector")
	}
	if IsIntegerish(NewList(), AnyLength, FiniteFalse) {
		t.Error("IsIntegerish should reject a list")
	}
}

// ---------------------------------------------------------------------------
// Integer-ish
// ---------------------------------------------------------------------------

func TestIsIntegerish(t *testing.T) {
	nan := math.NaN()
	inf := math.Inf(1)

	tests := []struct {
		name   string
		v      *Vector
		n      int
		finite Finite
		want   bool
	}{
		{"whole doubles", NewDouble(1, 2, 3), AnyLength, FiniteAny, true},
		{"fraction", NewDouble(1.5), AnyLength, FiniteAny, false},
		{"fraction after whole", NewDouble(1, 2, 2.25), AnyLength, FiniteAny, false},
		{"NaN", NewDouble(nan), AnyLength, FiniteAny, true},
		{"NaN finite", NewDouble(nan), AnyLength, FiniteTrue, false},
		{"NaN not finite", NewDouble(nan), AnyLength, FiniteFalse, true},
		{"Inf", NewDouble(1, inf), AnyLength, FiniteAny, true},
		{"whole finite", NewDouble(4, -4), AnyLength, FiniteTrue, true},
		{"whole not finite", NewDouble(4, -4), AnyLength, FiniteFalse, false},
		{"2^52", NewDouble(1 << 52), AnyLength, FiniteAny, true},
		{"-2^52", NewDouble(-(1 << 52)), AnyLength, FiniteAny, true},
		{"2^53", NewDouble(1 << 53), AnyLength, FiniteAny, false},
		{"-2^53", NewDouble(-(1 << 53)), AnyLength, FiniteAny, false},
		{"out of range beside NaN", NewDouble(1e300, nan), AnyLength, FiniteAny, false},
		{"negative zero", NewDouble(math.Copysign(0, -1)), AnyLength, FiniteAny, true},
		{"empty", NewDouble(), AnyLength, FiniteTrue, true},
		{"length", NewDouble(1, 2), 2, FiniteAny, true},
		{"wrong length", NewDouble(1, 2), 3, FiniteAny, false},
		{"integer", NewInteger(1, 2), AnyLength, FiniteAny, true},
		{"integer NA finite", NewInteger(NAInteger), AnyLength, FiniteTrue, false},
		{"integer wrong length", NewInteger(1), 2, FiniteAny, false},
		{"logical", NewBool(true), AnyLength, FiniteAny, false},
		{"complex", NewComplex(1), AnyLength, FiniteAny, false},
		{"character", NewCharacter("1"), AnyLength, FiniteAny, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsIntegerish(tt.v, tt.n, tt.finite); got != tt.want {
				t.Errorf("IsIntegerish(%v, %d, %s) = %v, want %v", tt.v.Float64s(), tt.n, tt.finite, got, tt.want)
			}
		})
	}
}

func TestFiniteOf(t *testing.T) {
	if FiniteOf(true) != FiniteTrue {
		t.Error("FiniteOf(true) should be FiniteTrue")
	}
	if FiniteOf(false) != FiniteFalse {
		t.Error("FiniteOf(false) should be FiniteFalse")
	}
	var zero Finite
	if zero != FiniteAny {
		t.Error("zero Finite should be FiniteAny")
	}
}
