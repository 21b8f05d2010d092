package ast

import (
	"github.com/google/uuid"

	"github.com/graphql-toolkit/core/pkg/position"
)

// VariableDefinition is one `$name: Type = default` entry of an operation's
// variable list.
type VariableDefinition struct {
	Name         string
	Type         *TypeRef
	DefaultValue *Value
	Directives   DirectiveList
	Span         position.Span
}

// Field is a selected field: an optional alias, a name, optional arguments,
// optional directives, and an optional nested selection set.
type Field struct {
	Alias        string
	Name         string
	Arguments    ArgumentList
	Directives   DirectiveList
	SelectionSet *SelectionSet // nil for leaf fields
	Span         position.Span

	// FieldDefinition is populated by the validation walker (§4.H) once the
	// scoped type is known; nil until then.
	FieldDefinition *FieldDefinition
}

// ResponseKey is the alias if present, otherwise the field name — the key
// under which the field's result appears in a response.
func (f *Field) ResponseKey() string {
	if f.Alias != "" {
		return f.Alias
	}
	return f.Name
}

// FragmentSpread is a `...Name` selection.
type FragmentSpread struct {
	FragmentName string
	Directives   DirectiveList
	Span         position.Span
}

// InlineFragment is a `... on Type? { ... }` selection.
type InlineFragment struct {
	TypeCondition string // empty if omitted
	Directives    DirectiveList
	SelectionSet  *SelectionSet
	Span          position.Span
}

// SelectionKind tags which variant a Selection holds.
type SelectionKind uint8

const (
	SelectionField SelectionKind = iota
	SelectionFragmentSpread
	SelectionInlineFragment
)

// Selection is one member of a SelectionSet: a field, a fragment spread, or
// an inline fragment.
type Selection struct {
	Kind           SelectionKind
	Field          *Field
	FragmentSpread *FragmentSpread
	InlineFragment *InlineFragment
}

// SelectionSet is an ordered, non-empty (after parsing) list of selections.
type SelectionSet struct {
	Selections []*Selection
	Span       position.Span
}

// OperationDefinition is an executable operation: explicit (with
// query|mutation|subscription keyword, optional name) or implicit (a bare
// selection set, which is always an anonymous query).
type OperationDefinition struct {
	// ID is the operation's span, used downstream as a stable key (spec
	// §4.G: "assigned a unique identifier (its span)").
	ID position.Span

	OperationType       OperationType
	Name                string // empty for anonymous/implicit operations
	VariableDefinitions []*VariableDefinition
	Directives          DirectiveList
	SelectionSet        *SelectionSet
	Span                position.Span
}

// IsAnonymous reports whether the operation has no explicit name.
func (o *OperationDefinition) IsAnonymous() bool {
	return o.Name == ""
}

// FragmentDefinition declares a named, reusable selection set scoped to a
// type condition.
type FragmentDefinition struct {
	Name          string
	TypeCondition string
	Directives    DirectiveList
	SelectionSet  *SelectionSet
	Span          position.Span
}

// ExecutableDocument is the parsed executable (query) document: an ordered
// list of operations and fragment definitions.
type ExecutableDocument struct {
	Source string
	Index  *position.Index

	// ID tags this parsed document for correlation across an external
	// request-tracing boundary; distinct from any one operation's own
	// position span.
	ID uuid.UUID

	Operations []*OperationDefinition
	Fragments  []*FragmentDefinition
}

// NewExecutableDocument creates an empty ExecutableDocument over source.
func NewExecutableDocument(source string) *ExecutableDocument {
	return &ExecutableDocument{
		Source: source,
		Index:  position.NewIndex(source),
		ID:     uuid.New(),
	}
}

// FragmentByName returns the fragment definition with the given name, if
// any. Callers on a validation hot path should prefer the precomputed index
// in astvisitor.Cache instead of calling this repeatedly.
func (e *ExecutableDocument) FragmentByName(name string) (*FragmentDefinition, bool) {
	for _, f := range e.Fragments {
		if f.Name == name {
			return f, true
		}
	}
	return nil, false
}

// OperationByName returns the named operation, if any.
func (e *ExecutableDocument) OperationByName(name string) (*OperationDefinition, bool) {
	for _, o := range e.Operations {
		if o.Name == name {
			return o, true
		}
	}
	return nil, false
}
