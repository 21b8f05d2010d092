package ast

import "github.com/graphql-toolkit/core/pkg/position"

// Document is the schema-definition AST produced by astparser's schema
// parser: a heterogeneous collection of definitions whose type references
// begin unresolved. Document is immutable after parsing except for the
// one-shot TypeRef.Bind calls performed by pkg/astresolve.
type Document struct {
	Source string
	Index  *position.Index

	Scalars      []*ScalarTypeDefinition
	Objects      []*ObjectTypeDefinition
	Interfaces   []*InterfaceTypeDefinition
	Unions       []*UnionTypeDefinition
	Enums        []*EnumTypeDefinition
	InputObjects []*InputObjectTypeDefinition
	Directives   []*DirectiveDefinition

	// SchemaBlocks holds every explicit `schema { ... }` block encountered;
	// more than one is a DuplicateExplicitSchemaDefinitions error (§4.F).
	SchemaBlocks []*SchemaDefinitionBlock
}

// NewDocument creates an empty Document over source.
func NewDocument(source string) *Document {
	return &Document{Source: source, Index: position.NewIndex(source)}
}

// AllTypeDefinitions returns every type-level definition in the document, in
// the order each kind was appended. Callers needing a name-indexed lookup
// should use pkg/schema.Schema.GetTypeDefinition instead; this is the raw,
// pre-resolution view.
func (d *Document) AllTypeDefinitions() []Definition {
	defs := make([]Definition, 0, len(d.Scalars)+len(d.Objects)+len(d.Interfaces)+len(d.Unions)+len(d.Enums)+len(d.InputObjects))
	for _, s := range d.Scalars {
		defs = append(defs, s)
	}
	for _, o := range d.Objects {
		defs = append(defs, o)
	}
	for _, i := range d.Interfaces {
		defs = append(defs, i)
	}
	for _, u := range d.Unions {
		defs = append(defs, u)
	}
	for _, e := range d.Enums {
		defs = append(defs, e)
	}
	for _, io := range d.InputObjects {
		defs = append(defs, io)
	}
	return defs
}

// ObjectByName returns the first Object type definition with the given name.
func (d *Document) ObjectByName(name string) (*ObjectTypeDefinition, bool) {
	for _, o := range d.Objects {
		if o.Name == name {
			return o, true
		}
	}
	return nil, false
}
