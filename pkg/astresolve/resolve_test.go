package astresolve_test

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graphql-toolkit/core/pkg/astparser"
	"github.com/graphql-toolkit/core/pkg/astresolve"
	"github.com/graphql-toolkit/core/pkg/operationreport"
	"github.com/graphql-toolkit/core/pkg/schema"
)

func parseAndResolve(t *testing.T, src string) (*operationreport.Report, *schema.Schema) {
	t.Helper()
	var report operationreport.Report
	doc := astparser.NewSchemaParser(src, &report).Parse()
	require.False(t, report.HasLexOrParseErrors(), "%v", report.ParseErrors)
	s := astresolve.Resolve(doc, &report)
	return &report, s
}

func TestResolve_ImplicitQueryRoot(t *testing.T) {
	report, s := parseAndResolve(t, `
type Query {
  hello: String
}
`)
	require.False(t, report.HasErrors(), "%v", report.ResolutionErrors)
	require.NotNil(t, s)
	assert.Equal(t, "Query", s.Query().Name)
	assert.Nil(t, s.Mutation())
}

func TestResolve_BindsFieldTypeToDefinition(t *testing.T) {
	report, s := parseAndResolve(t, `
type Author {
  name: String!
}

type Query {
  author: Author
}
`)
	require.False(t, report.HasErrors(), "%v", report.ResolutionErrors)
	query := s.Query()
	field, ok := query.DefHasField("author")
	require.True(t, ok)
	def, bound := field.Type.Definition()
	require.True(t, bound)
	assert.Equal(t, "Author", def.DefName())
}

func TestResolve_UnknownTypeIsError(t *testing.T) {
	report, s := parseAndResolve(t, `
type Query {
  author: Author
}
`)
	assert.Nil(t, s)
	require.Len(t, report.ResolutionErrors, 1)
	assert.Equal(t, operationreport.ReferencedTypeDoesNotExist, report.ResolutionErrors[0].Kind)
}

func TestResolve_InputObjectCannotBeOutputType(t *testing.T) {
	report, s := parseAndResolve(t, `
input Filter {
  term: String
}

type Query {
  search: Filter
}
`)
	assert.Nil(t, s)
	require.Len(t, report.ResolutionErrors, 1)
	assert.Equal(t, operationreport.ReferencedTypeIsNotAnOutputType, report.ResolutionErrors[0].Kind)
}

func TestResolve_ObjectCannotBeInputType(t *testing.T) {
	report, s := parseAndResolve(t, `
type Author {
  name: String!
}

type Query {
  author(filter: Author): String
}
`)
	assert.Nil(t, s)
	require.Len(t, report.ResolutionErrors, 1)
	assert.Equal(t, operationreport.ReferencedTypeIsNotAnInputType, report.ResolutionErrors[0].Kind)
}

func TestResolve_UnionMemberMustBeObject(t *testing.T) {
	report, s := parseAndResolve(t, `
scalar Weird

union Result = Weird

type Query {
  result: Result
}
`)
	assert.Nil(t, s)
	require.Len(t, report.ResolutionErrors, 1)
	assert.Equal(t, operationreport.ReferencedUnionMemberTypeIsNotAnObject, report.ResolutionErrors[0].Kind)
}

func TestResolve_DuplicateTypeDefinition(t *testing.T) {
	report, s := parseAndResolve(t, `
type Author {
  name: String!
}

type Author {
  id: ID!
}

type Query {
  author: Author
}
`)
	assert.Nil(t, s)
	require.Len(t, report.ResolutionErrors, 1)
	assert.Equal(t, operationreport.DuplicateTypeDefinitions, report.ResolutionErrors[0].Kind)
}

func TestResolve_ExplicitSchemaBlockSelectsRoot(t *testing.T) {
	report, s := parseAndResolve(t, `
type RootQuery {
  ping: String
}

type RootMutation {
  noop: Boolean
}

schema {
  query: RootQuery
  mutation: RootMutation
}
`)
	require.False(t, report.HasErrors(), "%v", report.ResolutionErrors)
	require.NotNil(t, s)
	assert.Equal(t, "RootQuery", s.Query().Name)
	require.NotNil(t, s.Mutation())
	assert.Equal(t, "RootMutation", s.Mutation().Name)
}

func TestResolve_ReservedIntrospectionName(t *testing.T) {
	report, s := parseAndResolve(t, `
type __Bogus {
  x: String
}

type Query {
  hello: String
}
`)
	assert.Nil(t, s)
	require.Len(t, report.ResolutionErrors, 1)
	assert.Equal(t, operationreport.ReservedIntrospectionTypeName, report.ResolutionErrors[0].Kind)
}

func TestResolve_GetTypeDefinitionIncludesBuiltins(t *testing.T) {
	_, s := parseAndResolve(t, `
type Query {
  hello: String
}
`)
	require.NotNil(t, s)
	def, ok := s.GetTypeDefinition("Int")
	require.True(t, ok)
	assert.Equal(t, "Int", def.DefName())
	_, ok = s.GetTypeDefinition("__Schema")
	assert.True(t, ok)
}

func TestResolve_TypeDefinitionsAreSortedByName(t *testing.T) {
	_, s := parseAndResolve(t, `
type Zebra {
  x: String
}
type Apple {
  x: String
}
type Query {
  hello: String
}
`)
	require.NotNil(t, s)

	var names []string
	for _, d := range s.TypeDefinitions() {
		names = append(names, d.DefName())
	}
	wantSorted := append([]string(nil), names...)
	sort.Strings(wantSorted)

	if diff := cmp.Diff(wantSorted, names); diff != "" {
		t.Fatalf("TypeDefinitions() not sorted by name (-want +got):\n%s", diff)
	}
}
