package coercion_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wundergraph/astjson"

	"github.com/graphql-toolkit/core/pkg/ast"
	"github.com/graphql-toolkit/core/pkg/astparser"
	"github.com/graphql-toolkit/core/pkg/astresolve"
	"github.com/graphql-toolkit/core/pkg/coercion"
	"github.com/graphql-toolkit/core/pkg/operationreport"
)

func TestCoerce_ScalarsAndLists(t *testing.T) {
	var report operationreport.Report
	doc := astparser.NewSchemaParser(`
type Query {
  a(x: Int!): Boolean
  b(x: [String!]!): Boolean
}
`, &report).Parse()
	require.False(t, report.HasLexOrParseErrors())
	s := astresolve.Resolve(doc, &report)
	require.False(t, report.HasErrors(), "%v", report.ResolutionErrors)

	query, _ := doc.ObjectByName("Query")
	aField, _ := query.DefHasField("a")
	bField, _ := query.DefHasField("b")

	c := coercion.NewCoercer(s)

	var r operationreport.Report
	ok := c.Coerce(&ast.Value{ValueKind: ast.KindInteger, IntValue: 3}, aField.Arguments[0].Type, nil, &r)
	assert.True(t, ok)
	assert.False(t, r.HasErrors())

	var r2 operationreport.Report
	ok = c.Coerce(&ast.Value{ValueKind: ast.KindNull}, aField.Arguments[0].Type, nil, &r2)
	assert.False(t, ok)
	require.Len(t, r2.CoercionErrors, 1)
	assert.Equal(t, operationreport.CoercionNullNotAllowed, r2.CoercionErrors[0].Kind)

	// single value coerces into a one-element list.
	var r3 operationreport.Report
	ok = c.Coerce(&ast.Value{ValueKind: ast.KindString, StringValue: "x"}, bField.Arguments[0].Type, nil, &r3)
	assert.True(t, ok)
	assert.False(t, r3.HasErrors())

	var r4 operationreport.Report
	ok = c.Coerce(&ast.Value{ValueKind: ast.KindBoolean, BooleanValue: true}, bField.Arguments[0].Type, nil, &r4)
	assert.False(t, ok)
	require.Len(t, r4.CoercionErrors, 1)
	assert.Equal(t, operationreport.CoercionWrongScalarType, r4.CoercionErrors[0].Kind)
}

func TestCoerce_InputObjectRequiredAndUnknownFields(t *testing.T) {
	var report operationreport.Report
	doc := astparser.NewSchemaParser(`
input Filter {
  term: String!
  limit: Int = 10
}

type Query {
  search(filter: Filter!): Boolean
}
`, &report).Parse()
	require.False(t, report.HasLexOrParseErrors())
	s := astresolve.Resolve(doc, &report)
	require.False(t, report.HasErrors(), "%v", report.ResolutionErrors)

	query, _ := doc.ObjectByName("Query")
	searchField, _ := query.DefHasField("search")
	filterType := searchField.Arguments[0].Type

	c := coercion.NewCoercer(s)

	var r operationreport.Report
	ok := c.Coerce(&ast.Value{
		ValueKind: ast.KindObject,
		ObjectValue: []ast.ObjectField{
			{Name: "bogus", Value: &ast.Value{ValueKind: ast.KindInteger, IntValue: 1}},
		},
	}, filterType, nil, &r)
	assert.False(t, ok)
	require.Len(t, r.CoercionErrors, 2) // unknown key + missing required field
	kinds := []operationreport.CoercionErrorKind{r.CoercionErrors[0].Kind, r.CoercionErrors[1].Kind}
	assert.Contains(t, kinds, operationreport.CoercionUnknownObjectKey)
	assert.Contains(t, kinds, operationreport.CoercionMissingRequiredField)

	var r2 operationreport.Report
	ok = c.Coerce(&ast.Value{
		ValueKind: ast.KindObject,
		ObjectValue: []ast.ObjectField{
			{Name: "term", Value: &ast.Value{ValueKind: ast.KindString, StringValue: "hello"}},
		},
	}, filterType, nil, &r2)
	assert.True(t, ok)
	assert.False(t, r2.HasErrors())
}

func TestCoerce_OneOfInputObject(t *testing.T) {
	var report operationreport.Report
	doc := astparser.NewSchemaParser(`
input SearchBy @oneOf {
  id: ID
  name: String
}

type Query {
  search(by: SearchBy!): Boolean
}
`, &report).Parse()
	require.False(t, report.HasLexOrParseErrors())
	s := astresolve.Resolve(doc, &report)
	require.False(t, report.HasErrors(), "%v", report.ResolutionErrors)

	query, _ := doc.ObjectByName("Query")
	searchField, _ := query.DefHasField("search")
	byType := searchField.Arguments[0].Type

	c := coercion.NewCoercer(s)

	var r operationreport.Report
	ok := c.Coerce(&ast.Value{
		ValueKind: ast.KindObject,
		ObjectValue: []ast.ObjectField{
			{Name: "id", Value: &ast.Value{ValueKind: ast.KindString, StringValue: "1"}},
			{Name: "name", Value: &ast.Value{ValueKind: ast.KindString, StringValue: "a"}},
		},
	}, byType, nil, &r)
	assert.False(t, ok)
	require.Len(t, r.CoercionErrors, 1)
	assert.Equal(t, operationreport.CoercionOneOfNotExactlyOneField, r.CoercionErrors[0].Kind)

	var r2 operationreport.Report
	ok = c.Coerce(&ast.Value{
		ValueKind: ast.KindObject,
		ObjectValue: []ast.ObjectField{
			{Name: "id", Value: &ast.Value{ValueKind: ast.KindNull}},
		},
	}, byType, nil, &r2)
	assert.False(t, ok)
	require.Len(t, r2.CoercionErrors, 1)
	assert.Equal(t, operationreport.CoercionOneOfNullValue, r2.CoercionErrors[0].Kind)
}

func TestCoerce_EnumLiteral(t *testing.T) {
	var report operationreport.Report
	doc := astparser.NewSchemaParser(`
enum Color { RED GREEN BLUE }

type Query {
  paint(c: Color!): Boolean
}
`, &report).Parse()
	require.False(t, report.HasLexOrParseErrors())
	s := astresolve.Resolve(doc, &report)
	require.False(t, report.HasErrors())

	query, _ := doc.ObjectByName("Query")
	paintField, _ := query.DefHasField("paint")
	colorType := paintField.Arguments[0].Type

	c := coercion.NewCoercer(s)

	var r operationreport.Report
	ok := c.Coerce(&ast.Value{ValueKind: ast.KindEnum, EnumValue: "GREEN"}, colorType, nil, &r)
	assert.True(t, ok)
	assert.False(t, r.HasErrors())

	var r2 operationreport.Report
	ok = c.Coerce(&ast.Value{ValueKind: ast.KindEnum, EnumValue: "PURPLE"}, colorType, nil, &r2)
	assert.False(t, ok)
	require.Len(t, r2.CoercionErrors, 1)
	assert.Equal(t, operationreport.CoercionEnumValueUnknown, r2.CoercionErrors[0].Kind)
}

func TestCoerceAndMaterialize_BuildsJSONTree(t *testing.T) {
	var report operationreport.Report
	doc := astparser.NewSchemaParser(`
input Filter {
  term: String!
  limit: Int = 10
}

type Query {
  search(filter: Filter!): Boolean
}
`, &report).Parse()
	require.False(t, report.HasLexOrParseErrors())
	s := astresolve.Resolve(doc, &report)
	require.False(t, report.HasErrors(), "%v", report.ResolutionErrors)

	query, _ := doc.ObjectByName("Query")
	searchField, _ := query.DefHasField("search")
	filterType := searchField.Arguments[0].Type

	c := coercion.NewCoercer(s)
	var arena astjson.Arena
	var r operationreport.Report
	v, ok := c.CoerceAndMaterialize(&arena, &ast.Value{
		ValueKind: ast.KindObject,
		ObjectValue: []ast.ObjectField{
			{Name: "term", Value: &ast.Value{ValueKind: ast.KindString, StringValue: "hello"}},
			{Name: "limit", Value: &ast.Value{ValueKind: ast.KindInteger, IntValue: 5}},
		},
	}, filterType, nil, &r)
	require.True(t, ok)
	require.False(t, r.HasErrors())
	require.NotNil(t, v)
	assert.Equal(t, "hello", string(v.Get("term").GetStringBytes()))
	assert.Equal(t, int64(5), v.Get("limit").GetInt64())
}

func TestCoerceAndMaterialize_FailsValidationWithoutMaterializing(t *testing.T) {
	var report operationreport.Report
	doc := astparser.NewSchemaParser(`
type Query {
  a(x: Int!): Boolean
}
`, &report).Parse()
	require.False(t, report.HasLexOrParseErrors())
	s := astresolve.Resolve(doc, &report)
	require.False(t, report.HasErrors())

	query, _ := doc.ObjectByName("Query")
	aField, _ := query.DefHasField("a")

	c := coercion.NewCoercer(s)
	var arena astjson.Arena
	var r operationreport.Report
	v, ok := c.CoerceAndMaterialize(&arena, &ast.Value{ValueKind: ast.KindNull}, aField.Arguments[0].Type, nil, &r)
	assert.False(t, ok)
	assert.Nil(t, v)
	assert.True(t, r.HasErrors())
}
