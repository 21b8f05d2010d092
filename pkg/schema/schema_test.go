package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graphql-toolkit/core/pkg/astparser"
	"github.com/graphql-toolkit/core/pkg/astresolve"
	"github.com/graphql-toolkit/core/pkg/operationreport"
)

func TestSchema_GetTypeDefinitionNotFound(t *testing.T) {
	var report operationreport.Report
	doc := astparser.NewSchemaParser(`
type Query {
  hello: String
}
`, &report).Parse()
	require.False(t, report.HasLexOrParseErrors())
	s := astresolve.Resolve(doc, &report)
	require.False(t, report.HasErrors(), "%v", report.ResolutionErrors)

	_, ok := s.GetTypeDefinition("DoesNotExist")
	assert.False(t, ok)

	def, ok := s.GetTypeDefinition("Query")
	require.True(t, ok)
	assert.Equal(t, "Query", def.DefName())
}

func TestSchema_GetDirectiveDefinitionIncludesBuiltins(t *testing.T) {
	var report operationreport.Report
	doc := astparser.NewSchemaParser(`
type Query {
  hello: String
}
`, &report).Parse()
	require.False(t, report.HasLexOrParseErrors())
	s := astresolve.Resolve(doc, &report)
	require.False(t, report.HasErrors(), "%v", report.ResolutionErrors)

	def, ok := s.GetDirectiveDefinition("skip")
	require.True(t, ok)
	assert.Equal(t, "skip", def.Name)

	_, ok = s.GetDirectiveDefinition("bogus")
	assert.False(t, ok)
}

func TestSchema_DocumentReturnsUnderlyingAST(t *testing.T) {
	var report operationreport.Report
	doc := astparser.NewSchemaParser(`
type Query {
  hello: String
}
`, &report).Parse()
	require.False(t, report.HasLexOrParseErrors())
	s := astresolve.Resolve(doc, &report)
	require.False(t, report.HasErrors())

	assert.Same(t, doc, s.Document())
}

func TestSchema_NoMutationOrSubscriptionIsNil(t *testing.T) {
	var report operationreport.Report
	doc := astparser.NewSchemaParser(`
type Query {
  hello: String
}
`, &report).Parse()
	require.False(t, report.HasLexOrParseErrors())
	s := astresolve.Resolve(doc, &report)
	require.False(t, report.HasErrors())

	assert.Nil(t, s.Mutation())
	assert.Nil(t, s.Subscription())
}
