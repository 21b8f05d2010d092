package ast

import (
	"github.com/graphql-toolkit/core/pkg/position"
	"github.com/pkg/errors"
)

// TypeRefKind tags a TypeRef's shape.
type TypeRefKind uint8

const (
	TypeRefNamed TypeRefKind = iota
	TypeRefList
	TypeRefNonNull
)

// TypeRef is a recursive type reference: a Named leaf, wrapped in List by
// `[...]`, wrapped in NonNull by a trailing `!`. It carries a resolvable
// handle to a definition that starts unbound and is bound exactly once by
// the resolver. Binding a second time is a programmer error and panics
// rather than returning a recoverable error.
type TypeRef struct {
	Kind   TypeRefKind
	Name   string // valid only when Kind == TypeRefNamed
	OfType *TypeRef
	Span   position.Span

	bound      bool
	definition Definition
}

// IsBound reports whether the reference has been resolved to a definition.
func (t *TypeRef) IsBound() bool {
	return t != nil && t.bound
}

// Definition returns the bound definition, if any.
func (t *TypeRef) Definition() (Definition, bool) {
	if t == nil || !t.bound {
		return nil, false
	}
	return t.definition, true
}

// Bind resolves the reference to def. Calling Bind on an already-bound
// reference is a programmer error: the binding pass (pkg/astresolve) visits
// every reference exactly once by construction, so a second call means the
// resolver itself has a bug.
func (t *TypeRef) Bind(def Definition) {
	if t.bound {
		panic(errors.Errorf("type reference %q already bound to %q", t.InnermostName(), t.definition.DefName()))
	}
	t.definition = def
	t.bound = true
}

// InnermostName returns the Name of the innermost Named type, unwrapping any
// List/NonNull wrappers.
func (t *TypeRef) InnermostName() string {
	cur := t
	for cur.Kind != TypeRefNamed {
		cur = cur.OfType
	}
	return cur.Name
}

// IsNonNull reports whether the outermost wrapper is NonNull.
func (t *TypeRef) IsNonNull() bool {
	return t.Kind == TypeRefNonNull
}

// IsList reports whether the outermost wrapper is List (possibly itself
// wrapped in NonNull, e.g. `[Foo]!`).
func (t *TypeRef) IsList() bool {
	if t.Kind == TypeRefNonNull {
		return t.OfType.Kind == TypeRefList
	}
	return t.Kind == TypeRefList
}

// String renders the reference in GraphQL type-reference syntax, e.g.
// `[String!]!`.
func (t *TypeRef) String() string {
	switch t.Kind {
	case TypeRefNamed:
		return t.Name
	case TypeRefList:
		return "[" + t.OfType.String() + "]"
	case TypeRefNonNull:
		return t.OfType.String() + "!"
	default:
		return "?"
	}
}

// NamedTypeRef constructs an unbound named reference.
func NamedTypeRef(name string, span position.Span) *TypeRef {
	return &TypeRef{Kind: TypeRefNamed, Name: name, Span: span}
}

// ListTypeRef wraps inner in a List reference.
func ListTypeRef(inner *TypeRef, span position.Span) *TypeRef {
	return &TypeRef{Kind: TypeRefList, OfType: inner, Span: span}
}

// NonNullTypeRef wraps inner in a NonNull reference.
func NonNullTypeRef(inner *TypeRef, span position.Span) *TypeRef {
	return &TypeRef{Kind: TypeRefNonNull, OfType: inner, Span: span}
}
