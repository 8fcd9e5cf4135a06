package vec

import "fmt"

// Kind identifies the element representation of a vector.
type Kind uint8

const (
	// KindOther is any value that is not a vector. It satisfies no
	// predicate.
	KindOther Kind = iota
	KindLogical
	KindInteger
	KindDouble
	KindComplex
	KindCharacter
	KindRaw
	KindList
)

// kindNames maps each kind to its host type name.
var kindNames = [...]string{
	KindOther:     "other",
	KindLogical:   "logical",
	KindInteger:   "integer",
	KindDouble:    "double",
	KindComplex:   "complex",
	KindCharacter: "character",
	KindRaw:       "raw",
	KindList:      "list",
}

// String returns the host type name of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// ParseKind returns the kind named by s.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s && Kind(k) != KindOther {
			return Kind(k), nil
		}
	}
	return KindOther, fmt.Errorf("vec: unknown kind %q", s)
}

// IsAtomic returns true for the six atomic kinds.
func (k Kind) IsAtomic() bool {
	switch k {
	case KindLogical, KindInteger, KindDouble, KindComplex, KindCharacter, KindRaw:
		return true
	default:
		return false
	}
}

// IsVector returns true for the atomic kinds and lists.
func (k Kind) IsVector() bool {
	return k.IsAtomic() || k == KindList
}

// IsNumeric returns true for kinds with a defined finiteness.
func (k Kind) IsNumeric() bool {
	switch k {
	case KindInteger, KindDouble, KindComplex:
		return true
	default:
		return false
	}
}

// Kinds lists every vector kind in declaration order.
func Kinds() []Kind {
	return []Kind{KindLogical, KindInteger, KindDouble, KindComplex, KindCharacter, KindRaw, KindList}
}
