// Package vec implements runtime type checking and coercing element copies
// for tagged vector values.
//
// This package contains:
//   - The closed Kind enumeration and the Value contract vectors satisfy
//   - Kind, length and finiteness predicates (IsVector, IsIntegerish, ...)
//   - The Copier, which pokes an element range from one vector into
//     another, delegating to a host coercion routine when kinds differ
//   - Vector and MemEngine, an in-memory storage engine
//
// The package never converts elements itself. Conversion is delegated to
// the Coercers table supplied when a Copier is built.
package vec
