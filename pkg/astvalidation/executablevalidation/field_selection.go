package executablevalidation

import (
	"github.com/graphql-toolkit/core/pkg/ast"
	"github.com/graphql-toolkit/core/pkg/astvisitor"
	"github.com/graphql-toolkit/core/pkg/operationreport"
)

func registerFieldSelectionRules(w *astvisitor.Walker, report *operationreport.Report) {
	w.RegisterEnterFieldVisitor(func(field *ast.Field, currentType ast.Definition, fieldDef *ast.FieldDefinition) {
		if fieldDef == nil {
			checkFieldDoesNotExist(field, currentType, report)
			return
		}
		checkLeafFieldSelection(field, fieldDef, report)
	})
}

func checkFieldDoesNotExist(field *ast.Field, currentType ast.Definition, report *operationreport.Report) {
	if currentType == nil {
		// The enclosing type itself failed to resolve; that root cause was
		// already reported elsewhere (resolution, or an unresolvable fragment
		// type condition).
		return
	}
	var candidates []string
	if hf, ok := currentType.(ast.HasFields); ok {
		for _, f := range hf.DefFields() {
			candidates = append(candidates, f.Name)
		}
	}
	report.AddExecutableError(operationreport.NewExecutableValidationError(
		operationreport.FieldDoesNotExist, "FieldsOnCorrectType", field.Span,
		"field \""+field.Name+"\" does not exist on type \""+currentType.DefName()+"\""+didYouMean(field.Name, candidates),
	))
}

func checkLeafFieldSelection(field *ast.Field, fieldDef *ast.FieldDefinition, report *operationreport.Report) {
	def, bound := fieldDef.Type.Definition()
	if !bound {
		return
	}
	isLeaf := def.DefKind() == ast.DefinitionScalar || def.DefKind() == ast.DefinitionEnum

	if isLeaf && field.SelectionSet != nil {
		report.AddExecutableError(operationreport.NewExecutableValidationError(
			operationreport.LeafFieldSelectionInvalid, "ScalarLeafs", field.SelectionSet.Span,
			"field \""+field.Name+"\" of leaf type \""+def.DefName()+"\" must not have a selection set",
		))
		return
	}
	if !isLeaf && field.SelectionSet == nil {
		report.AddExecutableError(operationreport.NewExecutableValidationError(
			operationreport.LeafFieldSelectionInvalid, "ScalarLeafs", field.Span,
			"field \""+field.Name+"\" of composite type \""+def.DefName()+"\" must have a selection set",
		))
	}
}
