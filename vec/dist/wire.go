package dist

import (
	"fmt"

	"github.com/chazu/rvec/vec"
	"github.com/fxamacker/cbor/v2"
)

// cborEncMode uses canonical encoding so equal vectors encode to equal
// bytes.
var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("dist: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// Marshal serializes any wire message to CBOR bytes.
func Marshal(v any) ([]byte, error) {
	return cborEncMode.Marshal(v)
}

// Unmarshal deserializes CBOR bytes into a wire message.
func Unmarshal(data []byte, v any) error {
	if err := cbor.Unmarshal(data, v); err != nil {
		return fmt.Errorf("dist: unmarshal %T: %w", v, err)
	}
	return nil
}

// MarshalVector serializes a vector to CBOR bytes.
func MarshalVector(v vec.Value) ([]byte, error) {
	w, err := FromValue(v)
	if err != nil {
		return nil, err
	}
	return cborEncMode.Marshal(w)
}

// UnmarshalVector deserializes a vector from CBOR bytes.
func UnmarshalVector(data []byte) (*vec.Vector, error) {
	var w Vector
	if err := cbor.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("dist: unmarshal vector: %w", err)
	}
	return w.ToVector()
}

// classer is implemented by values that expose their class names.
type classer interface {
	Class() []string
}

// FromValue converts a vector to its wire form, sharing its buffers. Values
// of kind other are rejected, as are buffers the value does not expose.
func FromValue(v vec.Value) (Vector, error) {
	w := Vector{Kind: v.Kind().String()}
	if c, ok := v.(classer); ok {
		w.Class = c.Class()
	}

	missing := func() (Vector, error) {
		return Vector{}, fmt.Errorf("dist: %T does not expose its %s buffer", v, v.Kind())
	}

	switch v.Kind() {
	case vec.KindLogical, vec.KindInteger:
		r, ok := v.(vec.Int32Reader)
		if !ok {
			return missing()
		}
		w.Int32s = r.Int32s()
	case vec.KindDouble:
		r, ok := v.(vec.Float64Reader)
		if !ok {
			return missing()
		}
		w.Float64s = r.Float64s()
	case vec.KindComplex:
		r, ok := v.(vec.Complex128Reader)
		if !ok {
			return missing()
		}
		for _, c := range r.Complex128s() {
			w.Complex = append(w.Complex, [2]float64{real(c), imag(c)})
		}
	case vec.KindCharacter:
		r, ok := v.(vec.StringReader)
		if !ok {
			return missing()
		}
		w.Strings = r.Strings()
	case vec.KindRaw:
		r, ok := v.(vec.ByteReader)
		if !ok {
			return missing()
		}
		w.Bytes = r.Bytes()
	case vec.KindList:
		r, ok := v.(vec.ListReader)
		if !ok {
			return missing()
		}
		for i, e := range r.Elems() {
			ew, err := FromValue(e)
			if err != nil {
				return Vector{}, fmt.Errorf("dist: list element %d: %w", i, err)
			}
			w.Elems = append(w.Elems, ew)
		}
	default:
		return Vector{}, fmt.Errorf("dist: cannot encode a value of kind %s", v.Kind())
	}
	return w, nil
}

// ToVector converts the wire form back into an in-memory vector.
func (w Vector) ToVector() (*vec.Vector, error) {
	kind, err := vec.ParseKind(w.Kind)
	if err != nil {
		return nil, fmt.Errorf("dist: %w", err)
	}

	var v *vec.Vector
	switch kind {
	case vec.KindLogical:
		v = vec.NewLogical(w.Int32s...)
	case vec.KindInteger:
		v = vec.NewInteger(w.Int32s...)
	case vec.KindDouble:
		v = vec.NewDouble(w.Float64s...)
	case vec.KindComplex:
		cs := make([]complex128, len(w.Complex))
		for i, p := range w.Complex {
			cs[i] = complex(p[0], p[1])
		}
		v = vec.NewComplex(cs...)
	case vec.KindCharacter:
		v = vec.NewCharacter(w.Strings...)
	case vec.KindRaw:
		v = vec.NewRaw(w.Bytes...)
	case vec.KindList:
		elems := make([]vec.Value, len(w.Elems))
		for i, ew := range w.Elems {
			e, err := ew.ToVector()
			if err != nil {
				return nil, fmt.Errorf("dist: list element %d: %w", i, err)
			}
			elems[i] = e
		}
		v = vec.NewList(elems...)
	}
	return v.SetClass(w.Class...), nil
}
