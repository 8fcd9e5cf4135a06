package vec

import "errors"

var (
	// ErrObjectSplice is returned when a cross-kind copy would bypass the
	// class semantics of an object source.
	ErrObjectSplice = errors.New("can't splice objects")

	// ErrNoCoercion is returned when the destination kind has no coercion
	// capability.
	ErrNoCoercion = errors.New("no coercion implemented")

	// ErrCoercerKind is returned when a coercer produced a value of a kind
	// other than the one it was resolved for.
	ErrCoercerKind = errors.New("coercer returned the wrong kind")
)

// ContractError is the panic value of a misused predicate or accessor. It
// signals a programming error in the caller and is never returned.
type ContractError struct {
	Op  string
	Msg string
}

func (e *ContractError) Error() string {
	return "vec: internal error: " + e.Op + ": " + e.Msg
}
