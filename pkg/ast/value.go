// Package ast defines the shared AST nodes: values, arguments, directives,
// type references, and the schema/executable document containers built by
// pkg/astparser.
package ast

import "github.com/graphql-toolkit/core/pkg/position"

// ValueKind tags the variant a Value holds. A single enum covers both
// const and non-const contexts; the parser threads a constOnly bool and
// rejects KindVariable contextually (see astparser.parseValue) rather than
// modeling the distinction in the type system.
type ValueKind uint8

const (
	KindVariable ValueKind = iota
	KindInteger
	KindFloat
	KindString
	KindBoolean
	KindNull
	KindEnum
	KindList
	KindObject
)

func (k ValueKind) String() string {
	names := [...]string{"Variable", "Integer", "Float", "String", "Boolean", "Null", "Enum", "List", "Object"}
	if int(k) < len(names) {
		return names[k]
	}
	return "Unknown"
}

// ObjectField is one key-value pair of an Object value, preserving input
// order (GraphQL object literals are ordered).
type ObjectField struct {
	Name  string
	Value *Value
}

// Value is a tagged union over every literal value kind a GraphQL document
// can contain. Only the field matching Kind is meaningful.
type Value struct {
	ValueKind ValueKind
	Span      position.Span

	VariableName string
	IntValue     int32
	FloatValue   float64
	StringValue  string
	BooleanValue bool
	EnumValue    string
	ListValue    []*Value
	ObjectValue  []ObjectField
}

// IsNull reports whether the value is the Null literal.
func (v *Value) IsNull() bool {
	return v != nil && v.ValueKind == KindNull
}

// Argument is one name: value pair within an argument list.
type Argument struct {
	Name  string
	Value *Value
	Span  position.Span
}

// ArgumentList is an ordered sequence of arguments, as carried by fields and
// directives alike.
type ArgumentList struct {
	Args []*Argument
}

// ByName returns the first argument with the given name, if any.
func (l ArgumentList) ByName(name string) (*Argument, bool) {
	for _, a := range l.Args {
		if a.Name == name {
			return a, true
		}
	}
	return nil, false
}
