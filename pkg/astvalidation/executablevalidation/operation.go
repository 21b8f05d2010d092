package executablevalidation

import (
	"github.com/graphql-toolkit/core/pkg/ast"
	"github.com/graphql-toolkit/core/pkg/operationreport"
)

// checkOperationNames validates operation name uniqueness and that at most
// one anonymous operation exists in the document.
func checkOperationNames(doc *ast.ExecutableDocument, report *operationreport.Report) {
	seen := map[string]bool{}
	anonymousCount := 0
	for _, op := range doc.Operations {
		if op.IsAnonymous() {
			anonymousCount++
			if anonymousCount > 1 {
				report.AddExecutableError(operationreport.NewExecutableValidationError(
					operationreport.MultipleAnonymousOperations, "LoneAnonymousOperation", op.Span,
					"a document may contain at most one anonymous operation",
				))
			}
			continue
		}
		if seen[op.Name] {
			report.AddExecutableError(operationreport.NewExecutableValidationError(
				operationreport.DuplicateOperationName, "UniqueOperationNames", op.Span,
				"duplicate operation name \""+op.Name+"\"",
			))
			continue
		}
		seen[op.Name] = true
	}
}

// checkSubscriptionSingleRootField enforces that a subscription selects
// exactly one root field, excluding __typename.
func checkSubscriptionSingleRootField(doc *ast.ExecutableDocument, report *operationreport.Report) {
	for _, op := range doc.Operations {
		if op.OperationType != ast.OperationTypeSubscription || op.SelectionSet == nil {
			continue
		}
		count := 0
		for _, sel := range op.SelectionSet.Selections {
			if sel.Kind == ast.SelectionField && sel.Field.Name != "__typename" {
				count++
			}
		}
		if count != 1 {
			report.AddExecutableError(operationreport.NewExecutableValidationError(
				operationreport.SubscriptionMustSelectOneRootField, "SingleFieldSubscriptions", op.Span,
				"a subscription operation must select exactly one root field",
			))
		}
	}
}
