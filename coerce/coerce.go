// Package coerce provides the host's reference coercion routines.
//
// Each routine converts a whole vector to one atomic kind, propagating
// missing values. Register binds them in a vec.Namespace under the default
// capability names so a vec.Copier can resolve them.
package coerce

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/chazu/rvec/vec"
)

// ErrUnsupported is returned for sources a routine cannot convert.
var ErrUnsupported = errors.New("unsupported source")

// Register defines all six routines in ns under vec.DefaultCoercerNames.
func Register(ns *vec.Namespace) {
	names := vec.DefaultCoercerNames()
	ns.Define(names[vec.KindLogical], AsLogical)
	ns.Define(names[vec.KindInteger], AsInteger)
	ns.Define(names[vec.KindDouble], AsDouble)
	ns.Define(names[vec.KindComplex], AsComplex)
	ns.Define(names[vec.KindCharacter], AsCharacter)
	ns.Define(names[vec.KindRaw], AsBytes)
}

// Table returns a capability table holding all six routines.
func Table() vec.Coercers {
	return vec.Coercers{
		vec.KindLogical:   AsLogical,
		vec.KindInteger:   AsInteger,
		vec.KindDouble:    AsDouble,
		vec.KindComplex:   AsComplex,
		vec.KindCharacter: AsCharacter,
		vec.KindRaw:       AsBytes,
	}
}

// ---------------------------------------------------------------------------
// Routines
// ---------------------------------------------------------------------------

// AsLogical converts x to a logical vector. Non-zero numbers are TRUE;
// strings must spell a logical constant or become NA.
func AsLogical(x vec.Value) (vec.Value, error) {
	if x.IsObject() {
		return nil, unsupported(x, vec.KindLogical)
	}
	n := x.Len()
	out := make([]int32, n)
	switch x.Kind() {
	case vec.KindLogical:
		copy(out, ints(x))
	case vec.KindInteger:
		for i, e := range ints(x) {
			out[i] = logicalOf(e == vec.NAInteger, e != 0)
		}
	case vec.KindDouble:
		for i, e := range dbls(x) {
			out[i] = logicalOf(math.IsNaN(e), e != 0)
		}
	case vec.KindComplex:
		for i, e := range cpls(x) {
			out[i] = logicalOf(isNACplx(e), e != 0)
		}
	case vec.KindCharacter:
		for i, s := range strs(x) {
			out[i] = parseLogical(s)
		}
	case vec.KindRaw:
		for i, b := range raw(x) {
			out[i] = logicalOf(false, b != 0)
		}
	default:
		return nil, unsupported(x, vec.KindLogical)
	}
	return vec.NewLogical(out...), nil
}

// AsInteger converts x to an integer vector. Doubles truncate toward zero;
// non-finite values and values outside the int32 range become NA.
func AsInteger(x vec.Value) (vec.Value, error) {
	if x.IsObject() {
		return nil, unsupported(x, vec.KindInteger)
	}
	n := x.Len()
	out := make([]int32, n)
	switch x.Kind() {
	case vec.KindLogical, vec.KindInteger:
		copy(out, ints(x))
	case vec.KindDouble:
		for i, e := range dbls(x) {
			out[i] = intOf(e)
		}
	case vec.KindComplex:
		for i, e := range cpls(x) {
			if isNACplx(e) {
				out[i] = vec.NAInteger
				continue
			}
			out[i] = intOf(real(e))
		}
	case vec.KindCharacter:
		for i, s := range strs(x) {
			out[i] = intOf(parseDouble(s))
		}
	case vec.KindRaw:
		for i, b := range raw(x) {
			out[i] = int32(b)
		}
	default:
		return nil, unsupported(x, vec.KindInteger)
	}
	return vec.NewInteger(out...), nil
}

// AsDouble converts x to a double vector. Missing values become NaN.
func AsDouble(x vec.Value) (vec.Value, error) {
	if x.IsObject() {
		return nil, unsupported(x, vec.KindDouble)
	}
	n := x.Len()
	out := make([]float64, n)
	switch x.Kind() {
	case vec.KindLogical, vec.KindInteger:
		for i, e := range ints(x) {
			out[i] = doubleOf(e)
		}
	case vec.KindDouble:
		copy(out, dbls(x))
	case vec.KindComplex:
		for i, e := range cpls(x) {
			if isNACplx(e) {
				out[i] = math.NaN()
				continue
			}
			out[i] = real(e)
		}
	case vec.KindCharacter:
		for i, s := range strs(x) {
			out[i] = parseDouble(s)
		}
	case vec.KindRaw:
		for i, b := range raw(x) {
			out[i] = float64(b)
		}
	default:
		return nil, unsupported(x, vec.KindDouble)
	}
	return vec.NewDouble(out...), nil
}

// AsComplex converts x to a complex vector with zero imaginary parts.
// Missing values become NaN in both parts.
func AsComplex(x vec.Value) (vec.Value, error) {
	if x.IsObject() {
		return nil, unsupported(x, vec.KindComplex)
	}
	n := x.Len()
	out := make([]complex128, n)
	switch x.Kind() {
	case vec.KindLogical, vec.KindInteger:
		for i, e := range ints(x) {
			out[i] = complexOf(doubleOf(e))
		}
	case vec.KindDouble:
		for i, e := range dbls(x) {
			out[i] = complexOf(e)
		}
	case vec.KindComplex:
		copy(out, cpls(x))
	case vec.KindCharacter:
		for i, s := range strs(x) {
			out[i] = parseComplex(s)
		}
	case vec.KindRaw:
		for i, b := range raw(x) {
			out[i] = complex(float64(b), 0)
		}
	default:
		return nil, unsupported(x, vec.KindComplex)
	}
	return vec.NewComplex(out...), nil
}

// AsCharacter converts x to a character vector. Numbers are printed in
// their shortest round-trip form; missing values become vec.NACharacter.
func AsCharacter(x vec.Value) (vec.Value, error) {
	if x.IsObject() {
		return nil, unsupported(x, vec.KindCharacter)
	}
	n := x.Len()
	out := make([]string, n)
	switch x.Kind() {
	case vec.KindLogical:
		for i, e := range ints(x) {
			switch e {
			case vec.NALogical:
				out[i] = vec.NACharacter
			case 0:
				out[i] = "FALSE"
			default:
				out[i] = "TRUE"
			}
		}
	case vec.KindInteger:
		for i, e := range ints(x) {
			if e == vec.NAInteger {
				out[i] = vec.NACharacter
				continue
			}
			out[i] = strconv.FormatInt(int64(e), 10)
		}
	case vec.KindDouble:
		for i, e := range dbls(x) {
			out[i] = formatDouble(e)
		}
	case vec.KindComplex:
		for i, e := range cpls(x) {
			out[i] = formatComplex(e)
		}
	case vec.KindCharacter:
		copy(out, strs(x))
	case vec.KindRaw:
		for i, b := range raw(x) {
			out[i] = fmt.Sprintf("%02x", b)
		}
	default:
		return nil, unsupported(x, vec.KindCharacter)
	}
	return vec.NewCharacter(out...), nil
}

// AsBytes converts x to a raw vector. Every element must be a whole number
// in [0, 255]; missing values are an error.
func AsBytes(x vec.Value) (vec.Value, error) {
	if x.IsObject() {
		return nil, unsupported(x, vec.KindRaw)
	}
	n := x.Len()
	out := make([]byte, n)
	switch x.Kind() {
	case vec.KindLogical, vec.KindInteger:
		for i, e := range ints(x) {
			b, err := byteOf(doubleOf(e), i)
			if err != nil {
				return nil, err
			}
			out[i] = b
		}
	case vec.KindDouble:
		for i, e := range dbls(x) {
			b, err := byteOf(e, i)
			if err != nil {
				return nil, err
			}
			out[i] = b
		}
	case vec.KindComplex:
		for i, e := range cpls(x) {
			if imag(e) != 0 {
				return nil, fmt.Errorf("coerce: element %d has an imaginary part", i+1)
			}
			b, err := byteOf(real(e), i)
			if err != nil {
				return nil, err
			}
			out[i] = b
		}
	case vec.KindCharacter:
		for i, s := range strs(x) {
			b, err := byteOf(parseDouble(s), i)
			if err != nil {
				return nil, err
			}
			out[i] = b
		}
	case vec.KindRaw:
		copy(out, raw(x))
	default:
		return nil, unsupported(x, vec.KindRaw)
	}
	return vec.NewRaw(out...), nil
}

// ---------------------------------------------------------------------------
// Element conversions
// ---------------------------------------------------------------------------

func logicalOf(na, truth bool) int32 {
	switch {
	case na:
		return vec.NALogical
	case truth:
		return 1
	default:
		return 0
	}
}

func intOf(f float64) int32 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return vec.NAInteger
	}
	t := math.Trunc(f)
	if t > math.MaxInt32 || t <= math.MinInt32 {
		return vec.NAInteger
	}
	return int32(t)
}

func doubleOf(e int32) float64 {
	if e == vec.NAInteger {
		return math.NaN()
	}
	return float64(e)
}

func complexOf(f float64) complex128 {
	if math.IsNaN(f) {
		return complex(math.NaN(), math.NaN())
	}
	return complex(f, 0)
}

func byteOf(f float64, i int) (byte, error) {
	if math.IsNaN(f) {
		return 0, fmt.Errorf("coerce: element %d is missing", i+1)
	}
	if f < 0 || f > 255 || f != math.Trunc(f) {
		return 0, fmt.Errorf("coerce: element %d (%v) is not a byte", i+1, f)
	}
	return byte(f), nil
}

func isNACplx(c complex128) bool {
	return math.IsNaN(real(c)) || math.IsNaN(imag(c))
}

func parseLogical(s string) int32 {
	switch strings.TrimSpace(s) {
	case "TRUE", "true", "True", "T":
		return 1
	case "FALSE", "false", "False", "F":
		return 0
	default:
		return vec.NALogical
	}
}

func parseDouble(s string) float64 {
	if s == vec.NACharacter {
		return math.NaN()
	}
	s = strings.TrimSpace(s)
	if s == "NA" || s == "" {
		return math.NaN()
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	if i, err := strconv.ParseInt(s, 0, 64); err == nil {
		return float64(i)
	}
	return math.NaN()
}

func parseComplex(s string) complex128 {
	if s == vec.NACharacter {
		return complex(math.NaN(), math.NaN())
	}
	t := strings.TrimSpace(s)
	if c, err := strconv.ParseComplex(t, 128); err == nil {
		return c
	}
	return complexOf(parseDouble(t))
}

func formatDouble(f float64) string {
	switch {
	case math.IsNaN(f):
		return vec.NACharacter
	case math.IsInf(f, 1):
		return "Inf"
	case math.IsInf(f, -1):
		return "-Inf"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func formatComplex(c complex128) string {
	if isNACplx(c) {
		return vec.NACharacter
	}
	re := formatDouble(real(c))
	im := imag(c)
	if im < 0 || (im == 0 && math.Signbit(im)) {
		return re + "-" + formatDouble(-im) + "i"
	}
	return re + "+" + formatDouble(im) + "i"
}

// ---------------------------------------------------------------------------
// Buffer access
// ---------------------------------------------------------------------------

func unsupported(x vec.Value, to vec.Kind) error {
	if x.IsObject() {
		return fmt.Errorf("coerce: %w: can't convert an object of kind %s to %s", ErrUnsupported, x.Kind(), to)
	}
	return fmt.Errorf("coerce: %w: can't convert %s to %s", ErrUnsupported, x.Kind(), to)
}

func ints(x vec.Value) []int32 {
	if r, ok := x.(vec.Int32Reader); ok {
		return r.Int32s()
	}
	return nil
}

func dbls(x vec.Value) []float64 {
	if r, ok := x.(vec.Float64Reader); ok {
		return r.Float64s()
	}
	return nil
}

func cpls(x vec.Value) []complex128 {
	if r, ok := x.(vec.Complex128Reader); ok {
		return r.Complex128s()
	}
	return nil
}

func strs(x vec.Value) []string {
	if r, ok := x.(vec.StringReader); ok {
		return r.Strings()
	}
	return nil
}

func raw(x vec.Value) []byte {
	if r, ok := x.(vec.ByteReader); ok {
		return r.Bytes()
	}
	return nil
}
