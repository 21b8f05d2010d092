package executablevalidation

import (
	"github.com/graphql-toolkit/core/pkg/ast"
	"github.com/graphql-toolkit/core/pkg/coercion"
	"github.com/graphql-toolkit/core/pkg/operationreport"
	"github.com/graphql-toolkit/core/pkg/schema"
)

// directiveSite is one physical appearance of a directive list in the
// document, paired with the location it was applied at.
type directiveSite struct {
	list     ast.DirectiveList
	location ast.DirectiveLocation
}

// collectDirectiveSites walks doc once, visiting every directive list
// exactly where it's written — operations, variable definitions, fields,
// fragment spreads, inline fragments, and fragment definitions — without
// following spreads into their target fragment (that body is already
// visited once via doc.Fragments).
func collectDirectiveSites(doc *ast.ExecutableDocument) []directiveSite {
	var sites []directiveSite

	var walkSet func(set *ast.SelectionSet)
	walkSet = func(set *ast.SelectionSet) {
		if set == nil {
			return
		}
		for _, sel := range set.Selections {
			switch sel.Kind {
			case ast.SelectionField:
				sites = append(sites, directiveSite{sel.Field.Directives, ast.LocationField})
				walkSet(sel.Field.SelectionSet)
			case ast.SelectionFragmentSpread:
				sites = append(sites, directiveSite{sel.FragmentSpread.Directives, ast.LocationFragmentSpread})
			case ast.SelectionInlineFragment:
				sites = append(sites, directiveSite{sel.InlineFragment.Directives, ast.LocationInlineFragment})
				walkSet(sel.InlineFragment.SelectionSet)
			}
		}
	}

	for _, op := range doc.Operations {
		loc := ast.LocationQuery
		switch op.OperationType {
		case ast.OperationTypeMutation:
			loc = ast.LocationMutation
		case ast.OperationTypeSubscription:
			loc = ast.LocationSubscription
		}
		sites = append(sites, directiveSite{op.Directives, loc})
		for _, v := range op.VariableDefinitions {
			sites = append(sites, directiveSite{v.Directives, ast.LocationVariableDefinition})
		}
		walkSet(op.SelectionSet)
	}
	for _, f := range doc.Fragments {
		sites = append(sites, directiveSite{f.Directives, ast.LocationFragmentDefinition})
		walkSet(f.SelectionSet)
	}
	return sites
}

// checkDirectives validates every directive application in doc: the
// directive must be declared, allowed at the location it's used, applied at
// most once unless repeatable, and its arguments must satisfy the
// directive's own argument signature.
func checkDirectives(doc *ast.ExecutableDocument, s *schema.Schema, coercer *coercion.Coercer, report *operationreport.Report) {
	for _, site := range collectDirectiveSites(doc) {
		counts := map[string]int{}
		for _, d := range site.list.Directives {
			counts[d.Name]++

			dd, ok := s.GetDirectiveDefinition(d.Name)
			if !ok {
				var candidates []string
				for _, existing := range s.DirectiveDefinitions() {
					candidates = append(candidates, existing.Name)
				}
				report.AddExecutableError(operationreport.NewExecutableValidationError(
					operationreport.UnknownDirective, "KnownDirectives", d.Span,
					"unknown directive \"@"+d.Name+"\""+didYouMean(d.Name, candidates),
				))
				continue
			}
			if !site.location.MatchesAny(dd.Locations...) {
				report.AddExecutableError(operationreport.NewExecutableValidationError(
					operationreport.DirectiveNotAllowedAtLocation, "DirectivesInValidLocations", d.Span,
					"directive \"@"+d.Name+"\" is not allowed at "+string(site.location),
				))
				continue
			}
			checkArguments(d.Arguments, dd.Arguments, d.Span, "directive \"@"+d.Name+"\"", coercer, report)

			if counts[d.Name] > 1 && !dd.Repeatable {
				report.AddExecutableError(operationreport.NewExecutableValidationError(
					operationreport.DuplicateNonRepeatableDirective, "UniqueDirectivesPerLocation", d.Span,
					"directive \"@"+d.Name+"\" is not repeatable but applied more than once",
				))
			}
		}
	}
}
