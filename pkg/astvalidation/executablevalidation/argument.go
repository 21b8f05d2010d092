package executablevalidation

import (
	"github.com/graphql-toolkit/core/pkg/ast"
	"github.com/graphql-toolkit/core/pkg/astvisitor"
	"github.com/graphql-toolkit/core/pkg/coercion"
	"github.com/graphql-toolkit/core/pkg/operationreport"
	"github.com/graphql-toolkit/core/pkg/position"
)

func registerArgumentRules(w *astvisitor.Walker, coercer *coercion.Coercer, report *operationreport.Report) {
	w.RegisterEnterFieldVisitor(func(field *ast.Field, currentType ast.Definition, fieldDef *ast.FieldDefinition) {
		if fieldDef == nil {
			return
		}
		checkArguments(field.Arguments, fieldDef.Arguments, field.Span, "field \""+field.Name+"\"", coercer, report)
	})
}

// checkArguments validates one argument list (of a field or directive
// application) against its declared signature: uniqueness, known names,
// required-argument presence, and value coercion. ownerSpan locates a
// missing-required-argument error, since the list itself carries no span
// when empty.
func checkArguments(args ast.ArgumentList, decl []*ast.InputValueDefinition, ownerSpan position.Span, owner string, coercer *coercion.Coercer, report *operationreport.Report) {
	seen := map[string]bool{}
	for _, a := range args.Args {
		if seen[a.Name] {
			report.AddExecutableError(operationreport.NewExecutableValidationError(
				operationreport.DuplicateArgumentName, "UniqueArgumentNames", a.Span,
				"duplicate argument \""+a.Name+"\" on "+owner,
			))
			continue
		}
		seen[a.Name] = true

		def := findArgDef(decl, a.Name)
		if def == nil {
			var candidates []string
			for _, d := range decl {
				candidates = append(candidates, d.Name)
			}
			report.AddExecutableError(operationreport.NewExecutableValidationError(
				operationreport.UnknownArgument, "KnownArgumentNames", a.Span,
				"unknown argument \""+a.Name+"\" on "+owner+didYouMean(a.Name, candidates),
			))
			continue
		}
		if !coercer.Coerce(a.Value, def.Type, nil, report) {
			report.AddExecutableError(operationreport.NewExecutableValidationError(
				operationreport.ArgumentValueInvalid, "ValuesOfCorrectType", a.Value.Span,
				"value of argument \""+a.Name+"\" on "+owner+" is not valid for type "+def.Type.String(),
			))
		}
	}

	for _, d := range decl {
		if d.IsRequired() && !seen[d.Name] {
			report.AddExecutableError(operationreport.NewExecutableValidationError(
				operationreport.MissingRequiredArgument, "ProvidedRequiredArguments", ownerSpan,
				"missing required argument \""+d.Name+"\" on "+owner,
			))
		}
	}
}

func findArgDef(decl []*ast.InputValueDefinition, name string) *ast.InputValueDefinition {
	for _, d := range decl {
		if d.Name == name {
			return d
		}
	}
	return nil
}
