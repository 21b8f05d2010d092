package executablevalidation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graphql-toolkit/core/pkg/astparser"
	"github.com/graphql-toolkit/core/pkg/astresolve"
	"github.com/graphql-toolkit/core/pkg/astvalidation/executablevalidation"
	"github.com/graphql-toolkit/core/pkg/operationreport"
)

const testSchema = `
interface Pet {
  name: String!
}

type Dog implements Pet {
  name: String!
  barks: Boolean!
}

type Cat implements Pet {
  name: String!
  meows: Boolean!
}

union CatOrDog = Cat | Dog

input Filter {
  term: String!
}

type Query {
  pet(id: ID!): Pet
  pets(filter: Filter): [Pet!]!
  catOrDog: CatOrDog
}

type Mutation {
  noop: Boolean
}

type Subscription {
  petUpdated: Pet
}
`

func validate(t *testing.T, doc string) *operationreport.Report {
	t.Helper()
	var report operationreport.Report
	schemaDoc := astparser.NewSchemaParser(testSchema, &report).Parse()
	require.False(t, report.HasLexOrParseErrors(), "%v", report.ParseErrors)
	s := astresolve.Resolve(schemaDoc, &report)
	require.False(t, report.HasErrors(), "%v", report.ResolutionErrors)
	require.NotNil(t, s)

	var execReport operationreport.Report
	execDoc := astparser.NewExecutableParser(doc, &execReport).Parse()
	require.False(t, execReport.HasLexOrParseErrors(), "%v", execReport.ParseErrors)

	executablevalidation.Validate(execDoc, s, &execReport)
	return &execReport
}

func TestValidate_ValidQueryProducesNoErrors(t *testing.T) {
	report := validate(t, `
query GetPet($id: ID!) {
  pet(id: $id) {
    name
    ... on Dog {
      barks
    }
  }
}
`)
	assert.False(t, report.HasErrors(), "%v", report.ExecutableErrors)
}

func TestValidate_UnknownField(t *testing.T) {
	report := validate(t, `
{
  pet(id: "1") {
    nam
  }
}
`)
	require.NotEmpty(t, report.ExecutableErrors)
	assert.Equal(t, operationreport.FieldDoesNotExist, report.ExecutableErrors[0].Kind)
}

func TestValidate_LeafFieldMustNotHaveSelectionSet(t *testing.T) {
	report := validate(t, `
{
  pet(id: "1") {
    name {
      nope
    }
  }
}
`)
	require.NotEmpty(t, report.ExecutableErrors)
	found := false
	for _, e := range report.ExecutableErrors {
		if e.Kind == operationreport.LeafFieldSelectionInvalid {
			found = true
		}
	}
	assert.True(t, found)
}

func TestValidate_CompositeFieldRequiresSelectionSet(t *testing.T) {
	report := validate(t, `
{
  pet(id: "1")
}
`)
	require.NotEmpty(t, report.ExecutableErrors)
	assert.Equal(t, operationreport.LeafFieldSelectionInvalid, report.ExecutableErrors[0].Kind)
}

func TestValidate_UndefinedVariable(t *testing.T) {
	report := validate(t, `
{
  pet(id: $missing) {
    name
  }
}
`)
	require.NotEmpty(t, report.ExecutableErrors)
	assert.Equal(t, operationreport.UndefinedVariable, report.ExecutableErrors[0].Kind)
}

func TestValidate_UnusedVariable(t *testing.T) {
	report := validate(t, `
query Q($id: ID!) {
  pet(id: "1") {
    name
  }
}
`)
	require.NotEmpty(t, report.ExecutableErrors)
	assert.Equal(t, operationreport.UnusedVariable, report.ExecutableErrors[0].Kind)
}

func TestValidate_VariableUsageNullabilityMismatch(t *testing.T) {
	report := validate(t, `
query Q($id: ID) {
  pet(id: $id) {
    name
  }
}
`)
	require.NotEmpty(t, report.ExecutableErrors)
	assert.Equal(t, operationreport.VariableUsageNotAllowed, report.ExecutableErrors[0].Kind)
}

func TestValidate_DuplicateVariableName(t *testing.T) {
	report := validate(t, `
query Q($id: ID!, $id: ID!) {
  pet(id: $id) {
    name
  }
}
`)
	require.NotEmpty(t, report.ExecutableErrors)
	assert.Equal(t, operationreport.DuplicateVariableName, report.ExecutableErrors[0].Kind)
}

func TestValidate_MissingRequiredArgument(t *testing.T) {
	report := validate(t, `
{
  pet {
    name
  }
}
`)
	require.NotEmpty(t, report.ExecutableErrors)
	assert.Equal(t, operationreport.MissingRequiredArgument, report.ExecutableErrors[0].Kind)
}

func TestValidate_UnknownArgument(t *testing.T) {
	report := validate(t, `
{
  pet(id: "1", bogus: "x") {
    name
  }
}
`)
	require.NotEmpty(t, report.ExecutableErrors)
	found := false
	for _, e := range report.ExecutableErrors {
		if e.Kind == operationreport.UnknownArgument {
			found = true
		}
	}
	assert.True(t, found)
}

func TestValidate_FragmentSpreadNotPossible(t *testing.T) {
	report := validate(t, `
{
  catOrDog {
    ... on Dog {
      ...CatOnlyFields
    }
  }
}

fragment CatOnlyFields on Cat {
  meows
}
`)
	require.NotEmpty(t, report.ExecutableErrors)
	found := false
	for _, e := range report.ExecutableErrors {
		if e.Kind == operationreport.FragmentSpreadNotPossible {
			found = true
		}
	}
	assert.True(t, found)
}

func TestValidate_FragmentSpreadPossibleAcrossUnionMember(t *testing.T) {
	report := validate(t, `
{
  catOrDog {
    ...DogFields
  }
}

fragment DogFields on Dog {
  barks
}
`)
	assert.False(t, report.HasErrors(), "%v", report.ExecutableErrors)
}

func TestValidate_UnusedFragment(t *testing.T) {
	report := validate(t, `
{
  pet(id: "1") {
    name
  }
}

fragment Unused on Dog {
  barks
}
`)
	require.NotEmpty(t, report.ExecutableErrors)
	found := false
	for _, e := range report.ExecutableErrors {
		if e.Kind == operationreport.UnusedFragment {
			found = true
		}
	}
	assert.True(t, found)
}

func TestValidate_FragmentSpreadCycle(t *testing.T) {
	report := validate(t, `
{
  pet(id: "1") {
    ...A
  }
}

fragment A on Pet {
  ...B
}

fragment B on Pet {
  ...A
}
`)
	found := false
	for _, e := range report.ExecutableErrors {
		if e.Kind == operationreport.FragmentSpreadCycle {
			found = true
		}
	}
	assert.True(t, found)
}

func TestValidate_SubscriptionMustSelectOneRootField(t *testing.T) {
	report := validate(t, `
subscription {
  petUpdated {
    name
  }
  __typename
}
`)
	assert.False(t, report.HasErrors(), "%v", report.ExecutableErrors)

	report2 := validate(t, `
subscription Sub {
  __typename
}
`)
	require.NotEmpty(t, report2.ExecutableErrors)
	assert.Equal(t, operationreport.SubscriptionMustSelectOneRootField, report2.ExecutableErrors[0].Kind)
}

func TestValidate_DuplicateOperationName(t *testing.T) {
	report := validate(t, `
query Q {
  pet(id: "1") {
    name
  }
}

query Q {
  pet(id: "2") {
    name
  }
}
`)
	require.NotEmpty(t, report.ExecutableErrors)
	assert.Equal(t, operationreport.DuplicateOperationName, report.ExecutableErrors[0].Kind)
}

func TestValidate_UnknownDirective(t *testing.T) {
	report := validate(t, `
{
  pet(id: "1") {
    name @bogusDirective
  }
}
`)
	require.NotEmpty(t, report.ExecutableErrors)
	assert.Equal(t, operationreport.UnknownDirective, report.ExecutableErrors[0].Kind)
}

func TestValidate_DirectiveNotAllowedAtLocation(t *testing.T) {
	report := validate(t, `
query Q @skip(if: true) {
  pet(id: "1") {
    name
  }
}
`)
	require.NotEmpty(t, report.ExecutableErrors)
	assert.Equal(t, operationreport.DirectiveNotAllowedAtLocation, report.ExecutableErrors[0].Kind)
}
