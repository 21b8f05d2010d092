// Package executablevalidation implements the executable-document
// validation rules: some register hooks on a single astvisitor.Walker
// traversal (the ones needing the scoped type the walker threads through
// selection sets), the rest run as standalone passes over the
// already-walked document, since Walker.Walk leaves every ast.Field's
// FieldDefinition populated in place — a second pass can read it directly
// instead of re-deriving it. Wires pkg/coercion for value coercion and
// github.com/agnivade/levenshtein for "did you mean" suggestions.
package executablevalidation

import (
	"github.com/agnivade/levenshtein"

	"github.com/graphql-toolkit/core/pkg/ast"
	"github.com/graphql-toolkit/core/pkg/astvisitor"
	"github.com/graphql-toolkit/core/pkg/coercion"
	"github.com/graphql-toolkit/core/pkg/operationreport"
	"github.com/graphql-toolkit/core/pkg/schema"
)

// suggestionThreshold bounds how far (in edit distance) a candidate name may
// be from the unknown name before it stops being worth suggesting.
const suggestionThreshold = 3

// didYouMean returns a "did you mean X?" suffix for the candidate closest to
// name, or "" if none is within suggestionThreshold.
func didYouMean(name string, candidates []string) string {
	best := ""
	bestDist := suggestionThreshold + 1
	for _, c := range candidates {
		d := levenshtein.ComputeDistance(name, c)
		if d < bestDist {
			bestDist = d
			best = c
		}
	}
	if best == "" {
		return ""
	}
	return " (did you mean \"" + best + "\"?)"
}

// Validate runs every executable validation rule over doc against s. Errors
// accumulate into report; callers should check report.HasErrors()
// afterward.
func Validate(doc *ast.ExecutableDocument, s *schema.Schema, report *operationreport.Report) {
	cache := astvisitor.NewCache(doc, s, report)
	w := astvisitor.NewWalker(s, cache, report)
	coercer := coercion.NewCoercer(s)

	registerFieldSelectionRules(w, report)
	registerArgumentRules(w, coercer, report)
	registerFragmentSpreadPossibleRule(w, doc, s, report)

	w.Walk(doc)

	checkDirectives(doc, s, coercer, report)
	checkFragmentDefinitions(doc, s, report)
	checkFragmentsUsed(doc, report)
	checkFragmentSpreadCycles(doc, report)
	checkOperationNames(doc, report)
	checkSubscriptionSingleRootField(doc, report)
	checkVariables(doc, s, report)
	checkDefaultValuesCoerce(doc, coercer, report)
}
