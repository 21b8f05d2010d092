package astvisitor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graphql-toolkit/core/pkg/astparser"
	"github.com/graphql-toolkit/core/pkg/astresolve"
	"github.com/graphql-toolkit/core/pkg/astvisitor"
	"github.com/graphql-toolkit/core/pkg/operationreport"
)

func TestCache_FragmentByNameFindsAndMissesCleanly(t *testing.T) {
	var schemaReport operationreport.Report
	schemaDoc := astparser.NewSchemaParser(`
type Query {
  hello: String
}
`, &schemaReport).Parse()
	require.False(t, schemaReport.HasLexOrParseErrors())
	s := astresolve.Resolve(schemaDoc, &schemaReport)
	require.False(t, schemaReport.HasErrors())

	var report operationreport.Report
	doc := astparser.NewExecutableParser(`
{
  ...Frag
}

fragment Frag on Query {
  hello
}
`, &report).Parse()
	require.False(t, report.HasLexOrParseErrors())

	cache := astvisitor.NewCache(doc, s, &report)
	require.False(t, report.HasErrors())

	f, ok := cache.FragmentByName("Frag")
	require.True(t, ok)
	assert.Equal(t, "Frag", f.Name)

	_, ok = cache.FragmentByName("Nope")
	assert.False(t, ok)
}

func TestCache_BindsVariableTypesToInputDefinitions(t *testing.T) {
	var schemaReport operationreport.Report
	schemaDoc := astparser.NewSchemaParser(`
input Filter {
  term: String
}

type Query {
  search(filter: Filter): Boolean
}
`, &schemaReport).Parse()
	require.False(t, schemaReport.HasLexOrParseErrors())
	s := astresolve.Resolve(schemaDoc, &schemaReport)
	require.False(t, schemaReport.HasErrors())

	var report operationreport.Report
	doc := astparser.NewExecutableParser(`
query ($f: Filter) {
  search(filter: $f)
}
`, &report).Parse()
	require.False(t, report.HasLexOrParseErrors())

	astvisitor.NewCache(doc, s, &report)
	require.False(t, report.HasErrors(), "%v", report.ExecutableErrors)

	v := doc.Operations[0].VariableDefinitions[0]
	def, bound := v.Type.Definition()
	require.True(t, bound)
	assert.Equal(t, "Filter", def.DefName())
}

func TestCache_RejectsVariableOfOutputType(t *testing.T) {
	var schemaReport operationreport.Report
	schemaDoc := astparser.NewSchemaParser(`
type Author {
  name: String
}

type Query {
  author: Author
}
`, &schemaReport).Parse()
	require.False(t, schemaReport.HasLexOrParseErrors())
	s := astresolve.Resolve(schemaDoc, &schemaReport)
	require.False(t, schemaReport.HasErrors())

	var report operationreport.Report
	doc := astparser.NewExecutableParser(`
query ($a: Author) {
  author {
    name
  }
}
`, &report).Parse()
	require.False(t, report.HasLexOrParseErrors())

	astvisitor.NewCache(doc, s, &report)
	require.Len(t, report.ExecutableErrors, 1)
	assert.Equal(t, operationreport.VariableNotInputType, report.ExecutableErrors[0].Kind)
}
