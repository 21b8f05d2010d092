package astvisitor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graphql-toolkit/core/pkg/ast"
	"github.com/graphql-toolkit/core/pkg/astparser"
	"github.com/graphql-toolkit/core/pkg/astresolve"
	"github.com/graphql-toolkit/core/pkg/astvisitor"
	"github.com/graphql-toolkit/core/pkg/operationreport"
)

func parseAll(t *testing.T, schemaSrc, execSrc string) (*astvisitor.Cache, *astvisitor.Walker, *ast.ExecutableDocument, *operationreport.Report) {
	t.Helper()
	var schemaReport operationreport.Report
	schemaDoc := astparser.NewSchemaParser(schemaSrc, &schemaReport).Parse()
	require.False(t, schemaReport.HasLexOrParseErrors(), "%v", schemaReport.ParseErrors)
	s := astresolve.Resolve(schemaDoc, &schemaReport)
	require.False(t, schemaReport.HasErrors(), "%v", schemaReport.ResolutionErrors)

	var report operationreport.Report
	doc := astparser.NewExecutableParser(execSrc, &report).Parse()
	require.False(t, report.HasLexOrParseErrors(), "%v", report.ParseErrors)

	cache := astvisitor.NewCache(doc, s, &report)
	w := astvisitor.NewWalker(s, cache, &report)
	return cache, w, doc, &report
}

func TestWalker_VisitsEveryFieldOnce(t *testing.T) {
	_, w, doc, _ := parseAll(t, `
type Author {
  name: String
}

type Query {
  author: Author
}
`, `
{
  author {
    name
  }
}
`)
	var seen []string
	w.RegisterEnterFieldVisitor(func(field *ast.Field, currentType ast.Definition, fieldDef *ast.FieldDefinition) {
		seen = append(seen, field.Name)
	})
	w.Walk(doc)
	assert.Equal(t, []string{"author", "name"}, seen)
}

func TestWalker_ResolvesFieldDefinitionOnEntry(t *testing.T) {
	_, w, doc, _ := parseAll(t, `
type Query {
  hello: String
}
`, `
{
  hello
}
`)
	var defSeen *ast.FieldDefinition
	w.RegisterEnterFieldVisitor(func(field *ast.Field, currentType ast.Definition, fieldDef *ast.FieldDefinition) {
		if field.Name == "hello" {
			defSeen = fieldDef
		}
	})
	w.Walk(doc)
	require.NotNil(t, defSeen)
	assert.Equal(t, "hello", defSeen.Name)
}

func TestWalker_UnknownFieldYieldsNilDefinitionWithoutPanicking(t *testing.T) {
	_, w, doc, _ := parseAll(t, `
type Query {
  hello: String
}
`, `
{
  bogus
}
`)
	var sawNil bool
	w.RegisterEnterFieldVisitor(func(field *ast.Field, currentType ast.Definition, fieldDef *ast.FieldDefinition) {
		if field.Name == "bogus" {
			sawNil = fieldDef == nil
		}
	})
	assert.NotPanics(t, func() { w.Walk(doc) })
	assert.True(t, sawNil)
}

func TestWalker_FragmentSpreadCycleDoesNotRecurseForever(t *testing.T) {
	_, w, doc, _ := parseAll(t, `
type Query {
  hello: String
}
`, `
{
  ...A
}

fragment A on Query {
  ...B
}

fragment B on Query {
  ...A
}
`)
	var spreadCount int
	w.RegisterEnterFragmentSpreadVisitor(func(spread *ast.FragmentSpread, enclosingType ast.Definition) {
		spreadCount++
	})
	assert.NotPanics(t, func() { w.Walk(doc) })
	assert.Less(t, spreadCount, 100, "fragment cycle must not expand unboundedly")
}
