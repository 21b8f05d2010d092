// Package schema holds the resolved, read-only schema model produced by
// pkg/astresolve: a SchemaDefinition over a Document whose type references
// are all bound.
package schema

import (
	"sort"

	"github.com/graphql-toolkit/core/pkg/ast"
)

// namedDef is a name-sortable view over ast.Definition, kept in a slice
// sorted by name so GetTypeDefinition can binary-search it in O(log n)
// rather than hash the name into a map.
type namedDef struct {
	name string
	def  ast.Definition
}

// Schema is the fully resolved model: every type reference in doc has been
// bound by the time a Schema is constructed. Schema holds read-only borrows
// into doc; it never mutates it.
type Schema struct {
	doc *ast.Document

	types      []namedDef
	directives []namedDirective

	query        *ast.ObjectTypeDefinition
	mutation     *ast.ObjectTypeDefinition
	subscription *ast.ObjectTypeDefinition
}

type namedDirective struct {
	name string
	def  *ast.DirectiveDefinition
}

// New builds a Schema over doc's definitions and the given root object
// types. mutation and subscription may be nil; query must not be.
func New(doc *ast.Document, query, mutation, subscription *ast.ObjectTypeDefinition) *Schema {
	s := &Schema{doc: doc, query: query, mutation: mutation, subscription: subscription}

	for _, d := range doc.AllTypeDefinitions() {
		s.types = append(s.types, namedDef{name: d.DefName(), def: d})
	}
	sort.Slice(s.types, func(i, j int) bool { return s.types[i].name < s.types[j].name })

	for _, d := range doc.Directives {
		s.directives = append(s.directives, namedDirective{name: d.Name, def: d})
	}
	sort.Slice(s.directives, func(i, j int) bool { return s.directives[i].name < s.directives[j].name })

	return s
}

// TypeDefinitions returns every type definition, including built-ins, in
// sorted-by-name order.
func (s *Schema) TypeDefinitions() []ast.Definition {
	out := make([]ast.Definition, len(s.types))
	for i, nd := range s.types {
		out[i] = nd.def
	}
	return out
}

// GetTypeDefinition looks up a type definition by name in O(log n).
func (s *Schema) GetTypeDefinition(name string) (ast.Definition, bool) {
	i := sort.Search(len(s.types), func(i int) bool { return s.types[i].name >= name })
	if i < len(s.types) && s.types[i].name == name {
		return s.types[i].def, true
	}
	return nil, false
}

// DirectiveDefinitions returns every directive definition, including
// built-ins, in sorted-by-name order.
func (s *Schema) DirectiveDefinitions() []*ast.DirectiveDefinition {
	out := make([]*ast.DirectiveDefinition, len(s.directives))
	for i, nd := range s.directives {
		out[i] = nd.def
	}
	return out
}

// GetDirectiveDefinition looks up a directive definition by name in
// O(log n).
func (s *Schema) GetDirectiveDefinition(name string) (*ast.DirectiveDefinition, bool) {
	i := sort.Search(len(s.directives), func(i int) bool { return s.directives[i].name >= name })
	if i < len(s.directives) && s.directives[i].name == name {
		return s.directives[i].def, true
	}
	return nil, false
}

// Query returns the query root type. Always non-nil on a successfully
// resolved Schema.
func (s *Schema) Query() *ast.ObjectTypeDefinition { return s.query }

// Mutation returns the mutation root type, or nil if the schema has none.
func (s *Schema) Mutation() *ast.ObjectTypeDefinition { return s.mutation }

// Subscription returns the subscription root type, or nil if the schema has
// none.
func (s *Schema) Subscription() *ast.ObjectTypeDefinition { return s.subscription }

// Document returns the underlying AST the schema was resolved over.
func (s *Schema) Document() *ast.Document { return s.doc }
