// Package dist implements the CBOR wire form of vectors and the messages
// exchanged by the vector service.
package dist

// Vector is the wire form of a vector. Exactly one buffer field is set,
// selected by Kind.
type Vector struct {
	Kind     string       `cbor:"1,keyasint"`
	Class    []string     `cbor:"2,keyasint,omitempty"`
	Int32s   []int32      `cbor:"3,keyasint,omitempty"` // logical and integer
	Float64s []float64    `cbor:"4,keyasint,omitempty"`
	Complex  [][2]float64 `cbor:"5,keyasint,omitempty"` // [re, im]
	Strings  []string     `cbor:"6,keyasint,omitempty"`
	Bytes    []byte       `cbor:"7,keyasint,omitempty"`
	Elems    []Vector     `cbor:"8,keyasint,omitempty"`
}

// PutRequest stores a vector under a name.
type PutRequest struct {
	Name   string `cbor:"1,keyasint"`
	Vector Vector `cbor:"2,keyasint"`
}

// PutResponse acknowledges a PutRequest.
type PutResponse struct {
	Length int `cbor:"1,keyasint"`
}

// GetRequest fetches a stored vector.
type GetRequest struct {
	Name string `cbor:"1,keyasint"`
}

// GetResponse carries the fetched vector.
type GetResponse struct {
	Vector Vector `cbor:"1,keyasint"`
}

// CheckRequest runs a predicate against a stored vector. Length -1 and
// Finite "any" leave those constraints off.
type CheckRequest struct {
	Name      string `cbor:"1,keyasint"`
	Predicate string `cbor:"2,keyasint"` // e.g. "integerish", "atomic"
	Length    int    `cbor:"3,keyasint"`
	Finite    string `cbor:"4,keyasint,omitempty"` // "any", "true", "false"
}

// CheckResponse carries the predicate result.
type CheckResponse struct {
	Result bool `cbor:"1,keyasint"`
}

// PokeRequest copies Count elements of Source starting at From into Dest
// starting at Offset, coercing when kinds differ. When To is set it is the
// inclusive end of the source range and Count is ignored.
type PokeRequest struct {
	Dest   string `cbor:"1,keyasint"`
	Offset int    `cbor:"2,keyasint"`
	Source string `cbor:"3,keyasint"`
	From   int    `cbor:"4,keyasint"`
	Count  int    `cbor:"5,keyasint"`
	To     *int   `cbor:"6,keyasint,omitempty"`
}

// PokeResponse carries the destination after the poke.
type PokeResponse struct {
	Vector Vector `cbor:"1,keyasint"`
}
