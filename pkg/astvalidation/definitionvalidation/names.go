// Package definitionvalidation implements schema-level validation: name
// uniqueness among sibling input values / enum values, and the
// input-object circular-reference detector. One rule per file, same shape
// as pkg/astvalidation/executablevalidation.
package definitionvalidation

import (
	"github.com/graphql-toolkit/core/pkg/ast"
	"github.com/graphql-toolkit/core/pkg/operationreport"
)

// Validate runs every schema-level validation rule over doc. Errors
// accumulate into report; callers should check report.HasErrors()
// afterward.
func Validate(doc *ast.Document, report *operationreport.Report) {
	checkNameUniqueness(doc, report)
	checkInputObjectCycles(doc, report)
}

func checkNameUniqueness(doc *ast.Document, report *operationreport.Report) {
	for _, o := range doc.Objects {
		for _, f := range o.Fields {
			checkInputValueNamesUnique(f.Arguments, report)
		}
	}
	for _, i := range doc.Interfaces {
		for _, f := range i.Fields {
			checkInputValueNamesUnique(f.Arguments, report)
		}
	}
	for _, d := range doc.Directives {
		checkInputValueNamesUnique(d.Arguments, report)
	}
	for _, io := range doc.InputObjects {
		checkInputValueNamesUnique(io.Fields, report)
	}
	for _, e := range doc.Enums {
		seen := map[string]bool{}
		for _, v := range e.Values {
			if seen[v.Name] {
				report.AddSchemaValidationError(operationreport.NewSchemaValidationError(
					operationreport.DuplicateEnumValueName, v.Span,
					"duplicate enum value \""+v.Name+"\" on enum \""+e.Name+"\"",
				))
				continue
			}
			seen[v.Name] = true
		}
	}
}

func checkInputValueNamesUnique(values []*ast.InputValueDefinition, report *operationreport.Report) {
	seen := map[string]bool{}
	for _, v := range values {
		if seen[v.Name] {
			report.AddSchemaValidationError(operationreport.NewSchemaValidationError(
				operationreport.DuplicateInputValueName, v.Span,
				"duplicate input value name \""+v.Name+"\"",
			))
			continue
		}
		seen[v.Name] = true
	}
}
