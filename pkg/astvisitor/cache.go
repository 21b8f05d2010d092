package astvisitor

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/graphql-toolkit/core/pkg/ast"
	"github.com/graphql-toolkit/core/pkg/operationreport"
	"github.com/graphql-toolkit/core/pkg/schema"
)

// Cache precomputes the two document-wide lookups every rule in a fan-out
// walk needs, so each rule reuses them instead of re-deriving them: resolved
// variable input types, and a name→fragment-definition index. The fragment
// index is a bounded LRU (capacity sized to the fragment count) rather than
// a plain map, sized so eviction never actually triggers in normal use.
type Cache struct {
	fragments *lru.Cache[string, *ast.FragmentDefinition]
}

// NewCache builds a Cache over doc, binding every variable-type reference to
// its resolved input-type definition via the same write-once TypeRef.Bind
// used by pkg/astresolve, and indexing fragments by name.
func NewCache(doc *ast.ExecutableDocument, s *schema.Schema, report *operationreport.Report) *Cache {
	capacity := len(doc.Fragments)
	if capacity == 0 {
		capacity = 1
	}
	fragmentCache, _ := lru.New[string, *ast.FragmentDefinition](capacity)

	for _, op := range doc.Operations {
		for _, v := range op.VariableDefinitions {
			bindVariableType(v.Type, s, report)
		}
	}
	for _, f := range doc.Fragments {
		fragmentCache.Add(f.Name, f)
	}

	return &Cache{fragments: fragmentCache}
}

func bindVariableType(ref *ast.TypeRef, s *schema.Schema, report *operationreport.Report) {
	if ref.IsBound() {
		return
	}
	name := ref.InnermostName()
	def, ok := s.GetTypeDefinition(name)
	if !ok {
		report.AddExecutableError(operationreport.NewExecutableValidationError(
			operationreport.VariableNotInputType, "VariablesAreInputTypes", ref.Span,
			"type \""+name+"\" is not defined",
		))
		return
	}
	switch def.DefKind() {
	case ast.DefinitionScalar, ast.DefinitionEnum, ast.DefinitionInputObject:
		ref.Bind(def)
	default:
		report.AddExecutableError(operationreport.NewExecutableValidationError(
			operationreport.VariableNotInputType, "VariablesAreInputTypes", ref.Span,
			"\""+name+"\" is not an input type",
		))
	}
}

// FragmentByName returns the cached fragment definition, if any.
func (c *Cache) FragmentByName(name string) (*ast.FragmentDefinition, bool) {
	return c.fragments.Get(name)
}
