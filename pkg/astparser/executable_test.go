package astparser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graphql-toolkit/core/pkg/ast"
	"github.com/graphql-toolkit/core/pkg/astparser"
	"github.com/graphql-toolkit/core/pkg/operationreport"
)

func TestParseExecutable_ImplicitAnonymousQuery(t *testing.T) {
	var report operationreport.Report
	doc := astparser.NewExecutableParser(`{ hero { name } }`, &report).Parse()
	require.False(t, report.HasLexOrParseErrors(), "%v", report.ParseErrors)
	require.Len(t, doc.Operations, 1)

	op := doc.Operations[0]
	assert.True(t, op.IsAnonymous())
	assert.Equal(t, ast.OperationTypeQuery, op.OperationType)
	require.Len(t, op.SelectionSet.Selections, 1)

	hero := op.SelectionSet.Selections[0]
	require.Equal(t, ast.SelectionField, hero.Kind)
	assert.Equal(t, "hero", hero.Field.Name)
	require.NotNil(t, hero.Field.SelectionSet)
	assert.Len(t, hero.Field.SelectionSet.Selections, 1)
}

func TestParseExecutable_NamedOperationWithVariablesAndAlias(t *testing.T) {
	src := `query HeroForEpisode($ep: Episode!, $withFriends: Boolean = false) {
  character: hero(episode: $ep) {
    name
    friends @include(if: $withFriends) {
      name
    }
  }
}`
	var report operationreport.Report
	doc := astparser.NewExecutableParser(src, &report).Parse()
	require.False(t, report.HasLexOrParseErrors(), "%v", report.ParseErrors)
	require.Len(t, doc.Operations, 1)

	op := doc.Operations[0]
	assert.Equal(t, "HeroForEpisode", op.Name)
	assert.Equal(t, ast.OperationTypeQuery, op.OperationType)
	require.Len(t, op.VariableDefinitions, 2)
	assert.Equal(t, "ep", op.VariableDefinitions[0].Name)
	assert.True(t, op.VariableDefinitions[0].Type.IsNonNull())
	assert.Equal(t, "withFriends", op.VariableDefinitions[1].Name)
	require.NotNil(t, op.VariableDefinitions[1].DefaultValue)
	assert.Equal(t, ast.KindBoolean, op.VariableDefinitions[1].DefaultValue.ValueKind)

	field := op.SelectionSet.Selections[0].Field
	assert.Equal(t, "character", field.Alias)
	assert.Equal(t, "hero", field.Name)
	assert.Equal(t, "character", field.ResponseKey())

	friends := field.SelectionSet.Selections[1].Field
	assert.Equal(t, "friends", friends.Name)
	require.Len(t, friends.Directives.Directives, 1)
	assert.Equal(t, "include", friends.Directives.Directives[0].Name)
}

func TestParseExecutable_FragmentSpreadAndInlineFragment(t *testing.T) {
	src := `query {
  hero {
    ...HeroFields
    ... on Droid {
      primaryFunction
    }
    ... @skip(if: true) {
      secret
    }
  }
}

fragment HeroFields on Character {
  name
}`
	var report operationreport.Report
	doc := astparser.NewExecutableParser(src, &report).Parse()
	require.False(t, report.HasLexOrParseErrors(), "%v", report.ParseErrors)
	require.Len(t, doc.Fragments, 1)
	assert.Equal(t, "HeroFields", doc.Fragments[0].Name)
	assert.Equal(t, "Character", doc.Fragments[0].TypeCondition)

	hero := doc.Operations[0].SelectionSet.Selections[0].Field
	require.Len(t, hero.SelectionSet.Selections, 3)

	spread := hero.SelectionSet.Selections[0]
	assert.Equal(t, ast.SelectionFragmentSpread, spread.Kind)
	assert.Equal(t, "HeroFields", spread.FragmentSpread.FragmentName)

	inline := hero.SelectionSet.Selections[1]
	assert.Equal(t, ast.SelectionInlineFragment, inline.Kind)
	assert.Equal(t, "Droid", inline.InlineFragment.TypeCondition)

	bare := hero.SelectionSet.Selections[2]
	assert.Equal(t, ast.SelectionInlineFragment, bare.Kind)
	assert.Empty(t, bare.InlineFragment.TypeCondition)
	require.Len(t, bare.InlineFragment.Directives.Directives, 1)
}

func TestParseExecutable_FragmentNamedOnIsError(t *testing.T) {
	var report operationreport.Report
	astparser.NewExecutableParser(`fragment on on Character { name }`, &report).Parse()
	require.True(t, report.HasLexOrParseErrors())
}

func TestParseExecutable_MutationKeyword(t *testing.T) {
	src := `mutation CreateReview {
  createReview {
    stars
  }
}`
	var report operationreport.Report
	doc := astparser.NewExecutableParser(src, &report).Parse()
	require.False(t, report.HasLexOrParseErrors())
	require.Len(t, doc.Operations, 1)
	assert.Equal(t, ast.OperationTypeMutation, doc.Operations[0].OperationType)
	assert.Equal(t, "CreateReview", doc.Operations[0].Name)
}
