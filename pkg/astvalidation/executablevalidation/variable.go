package executablevalidation

import (
	"github.com/graphql-toolkit/core/pkg/ast"
	"github.com/graphql-toolkit/core/pkg/coercion"
	"github.com/graphql-toolkit/core/pkg/operationreport"
	"github.com/graphql-toolkit/core/pkg/position"
	"github.com/graphql-toolkit/core/pkg/schema"
)

// checkVariables runs every variable rule for which the resolved
// FieldDefinition already populated by astvisitor.Walker is enough context:
// uniqueness, used-and-defined, and usage-allowed-in-position. It relies on
// Validate having already called Walker.Walk so every field's
// FieldDefinition is set.
func checkVariables(doc *ast.ExecutableDocument, s *schema.Schema, report *operationreport.Report) {
	for _, op := range doc.Operations {
		declared := map[string]*ast.VariableDefinition{}
		seenNames := map[string]bool{}
		for _, v := range op.VariableDefinitions {
			if seenNames[v.Name] {
				report.AddExecutableError(operationreport.NewExecutableValidationError(
					operationreport.DuplicateVariableName, "UniqueVariableNames", v.Span,
					"duplicate variable \"$"+v.Name+"\"",
				))
				continue
			}
			seenNames[v.Name] = true
			declared[v.Name] = v
		}

		used := map[string]bool{}
		emit := func(varName string, locType *ast.TypeRef, span position.Span) {
			varDef, ok := declared[varName]
			if !ok {
				report.AddExecutableError(operationreport.NewExecutableValidationError(
					operationreport.UndefinedVariable, "NoUndefinedVariables", span,
					"variable \"$"+varName+"\" is not defined",
				))
				return
			}
			used[varName] = true
			if locType == nil {
				return
			}
			if !isVariableUsageAllowed(varDef, locType) {
				report.AddExecutableError(operationreport.NewExecutableValidationError(
					operationreport.VariableUsageNotAllowed, "VariablesInAllowedPosition", span,
					"variable \"$"+varName+"\" of type \""+varDef.Type.String()+"\" cannot be used where \""+locType.String()+"\" is expected",
				))
			}
		}

		visitedFragments := map[string]bool{}
		collectVariableUsages(op.SelectionSet, doc, s, visitedFragments, emit)
		checkDirectiveListUsages(op.Directives, s, emit)
		for _, v := range op.VariableDefinitions {
			checkDirectiveListUsages(v.Directives, s, emit)
		}

		for _, v := range op.VariableDefinitions {
			if !used[v.Name] {
				report.AddExecutableError(operationreport.NewExecutableValidationError(
					operationreport.UnusedVariable, "NoUnusedVariables", v.Span,
					"variable \"$"+v.Name+"\" is never used",
				))
			}
		}
	}
}

type usageEmitter func(varName string, locType *ast.TypeRef, span position.Span)

func collectVariableUsages(set *ast.SelectionSet, doc *ast.ExecutableDocument, s *schema.Schema, visitedFragments map[string]bool, emit usageEmitter) {
	if set == nil {
		return
	}
	for _, sel := range set.Selections {
		switch sel.Kind {
		case ast.SelectionField:
			f := sel.Field
			if f.FieldDefinition != nil {
				for _, a := range f.Arguments.Args {
					if a.Value.ValueKind != ast.KindVariable {
						continue
					}
					if argDef := findArgDef(f.FieldDefinition.Arguments, a.Name); argDef != nil {
						emit(a.Value.VariableName, argDef.Type, a.Value.Span)
					}
				}
			}
			checkDirectiveListUsages(f.Directives, s, emit)
			collectVariableUsages(f.SelectionSet, doc, s, visitedFragments, emit)
		case ast.SelectionInlineFragment:
			checkDirectiveListUsages(sel.InlineFragment.Directives, s, emit)
			collectVariableUsages(sel.InlineFragment.SelectionSet, doc, s, visitedFragments, emit)
		case ast.SelectionFragmentSpread:
			checkDirectiveListUsages(sel.FragmentSpread.Directives, s, emit)
			name := sel.FragmentSpread.FragmentName
			if visitedFragments[name] {
				continue // cycle; already reported by checkFragmentSpreadCycles
			}
			visitedFragments[name] = true
			if f, ok := doc.FragmentByName(name); ok {
				checkDirectiveListUsages(f.Directives, s, emit)
				collectVariableUsages(f.SelectionSet, doc, s, visitedFragments, emit)
			}
		}
	}
}

func checkDirectiveListUsages(list ast.DirectiveList, s *schema.Schema, emit usageEmitter) {
	for _, d := range list.Directives {
		dd, ok := s.GetDirectiveDefinition(d.Name)
		if !ok {
			continue
		}
		for _, a := range d.Arguments.Args {
			if a.Value.ValueKind != ast.KindVariable {
				continue
			}
			if argDef := findArgDef(dd.Arguments, a.Name); argDef != nil {
				emit(a.Value.VariableName, argDef.Type, a.Value.Span)
			}
		}
	}
}

// isVariableUsageAllowed implements a simplified IsVariableUsageAllowed: the
// variable's declared type must be assignable to the location's expected
// type, where a nullable variable may still satisfy a non-null location if a
// non-null default value is supplied. A default value declared on the
// argument at the usage location is not consulted.
func isVariableUsageAllowed(varDef *ast.VariableDefinition, locationType *ast.TypeRef) bool {
	varType := varDef.Type
	if locationType.IsNonNull() && !varType.IsNonNull() {
		hasNonNullDefault := varDef.DefaultValue != nil && !varDef.DefaultValue.IsNull()
		if !hasNonNullDefault {
			return false
		}
		return typeIsSubType(varType, locationType.OfType)
	}
	return typeIsSubType(varType, locationType)
}

// typeIsSubType reports whether a value of type sub is always acceptable
// where super is expected, per GraphQL's structural type compatibility:
// matching list/non-null wrappers, with a non-null sub-type freely
// substituting for a nullable super-type.
func typeIsSubType(sub, super *ast.TypeRef) bool {
	if super.IsNonNull() {
		if !sub.IsNonNull() {
			return false
		}
		return typeIsSubType(sub.OfType, super.OfType)
	}
	if sub.IsNonNull() {
		return typeIsSubType(sub.OfType, super)
	}
	if super.Kind == ast.TypeRefList {
		if sub.Kind != ast.TypeRefList {
			return false
		}
		return typeIsSubType(sub.OfType, super.OfType)
	}
	if sub.Kind == ast.TypeRefList {
		return false
	}
	return sub.Name == super.Name
}

// checkDefaultValuesCoerce validates every variable's default literal
// against its declared type.
func checkDefaultValuesCoerce(doc *ast.ExecutableDocument, coercer *coercion.Coercer, report *operationreport.Report) {
	for _, op := range doc.Operations {
		for _, v := range op.VariableDefinitions {
			if v.DefaultValue == nil || !v.Type.IsBound() {
				continue
			}
			if !coercer.Coerce(v.DefaultValue, v.Type, nil, report) {
				report.AddExecutableError(operationreport.NewExecutableValidationError(
					operationreport.VariableDefaultValueInvalid, "DefaultValuesOfCorrectType", v.DefaultValue.Span,
					"default value for variable \"$"+v.Name+"\" is not valid for type "+v.Type.String(),
				))
			}
		}
	}
}
