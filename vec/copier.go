package vec

import (
	"fmt"

	"github.com/tliron/commonlog"
)

// Copier pokes element ranges between vectors, coercing the source when its
// kind differs from the destination's.
//
// A Copier holds no mutable state, but the vectors it writes to must not be
// shared with concurrent writers.
type Copier struct {
	engine   Engine
	coercers Coercers
	log      commonlog.Logger
}

// CopierOption configures a Copier.
type CopierOption func(*Copier)

// WithLogger sets the logger coercion events are reported to.
func WithLogger(log commonlog.Logger) CopierOption {
	return func(c *Copier) { c.log = log }
}

// NewCopier creates a Copier writing through engine and converting with the
// given capability table.
func NewCopier(engine Engine, coercers Coercers, opts ...CopierOption) *Copier {
	c := &Copier{
		engine:   engine,
		coercers: coercers,
		log:      commonlog.GetLogger("rvec.copier"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Coercer returns the capability converting values to kind. Lists and
// unknown kinds have none.
func (c *Copier) Coercer(kind Kind) (Coercer, error) {
	if !kind.IsAtomic() {
		return nil, fmt.Errorf("vec: %w for `%s`", ErrNoCoercion, kind)
	}
	fn, ok := c.coercers[kind]
	if !ok || fn == nil {
		return nil, fmt.Errorf("vec: %w for `%s`", ErrNoCoercion, kind)
	}
	return fn, nil
}

// PokeCoerce copies n elements of src starting at from into dst starting at
// offset.
//
// When the kinds match the engine copies directly. Otherwise the whole of
// src is converted with the coercer for dst's kind and the range is copied
// from the converted vector, which is released afterwards. Object sources
// are refused with ErrObjectSplice and kinds without a coercer with
// ErrNoCoercion; dst is untouched in both cases.
//
// The ranges [offset, offset+n) of dst and [from, from+n) of src must be in
// bounds.
func (c *Copier) PokeCoerce(dst Value, offset int, src Value, from, n int) error {
	if src.Kind() == dst.Kind() {
		c.engine.CopyRange(dst, offset, src, from, n)
		return nil
	}
	if src.IsObject() {
		return fmt.Errorf("vec: %w: %s object into %s", ErrObjectSplice, src.Kind(), dst.Kind())
	}

	coerce, err := c.Coercer(dst.Kind())
	if err != nil {
		return err
	}
	coerced, err := coerce(src)
	if err != nil {
		return fmt.Errorf("vec: coercing %s to %s: %w", src.Kind(), dst.Kind(), err)
	}
	if coerced == nil {
		return fmt.Errorf("vec: %w: wanted %s, got no value", ErrCoercerKind, dst.Kind())
	}
	if r, ok := coerced.(Releaser); ok {
		defer r.Release()
	}
	if coerced.Kind() != dst.Kind() {
		return fmt.Errorf("vec: %w: wanted %s, got %s", ErrCoercerKind, dst.Kind(), coerced.Kind())
	}

	c.log.Debugf("coerced %s[%d] to %s for poke at %d", src.Kind(), src.Len(), dst.Kind(), offset)
	c.engine.CopyRange(dst, offset, coerced, from, n)
	return nil
}

// PokeCoerceRange is PokeCoerce over the inclusive source range [from, to].
func (c *Copier) PokeCoerceRange(dst Value, offset int, src Value, from, to int) error {
	return c.PokeCoerce(dst, offset, src, from, to-from+1)
}
