package executablevalidation

import (
	"github.com/graphql-toolkit/core/pkg/ast"
	"github.com/graphql-toolkit/core/pkg/astvisitor"
	"github.com/graphql-toolkit/core/pkg/operationreport"
	"github.com/graphql-toolkit/core/pkg/position"
	"github.com/graphql-toolkit/core/pkg/schema"
)

func isComposite(def ast.Definition) bool {
	if def == nil {
		return false
	}
	switch def.DefKind() {
	case ast.DefinitionObject, ast.DefinitionInterface, ast.DefinitionUnion:
		return true
	default:
		return false
	}
}

// checkFragmentDefinitions validates name uniqueness and that every
// fragment's type condition resolves to an existing composite type.
func checkFragmentDefinitions(doc *ast.ExecutableDocument, s *schema.Schema, report *operationreport.Report) {
	seen := map[string]bool{}
	for _, f := range doc.Fragments {
		if seen[f.Name] {
			report.AddExecutableError(operationreport.NewExecutableValidationError(
				operationreport.DuplicateFragmentName, "UniqueFragmentNames", f.Span,
				"duplicate fragment name \""+f.Name+"\"",
			))
			continue
		}
		seen[f.Name] = true

		def, ok := s.GetTypeDefinition(f.TypeCondition)
		if !ok {
			report.AddExecutableError(operationreport.NewExecutableValidationError(
				operationreport.FragmentTargetTypeDoesNotExist, "FragmentsOnCompositeTypes", f.Span,
				"fragment \""+f.Name+"\" targets unknown type \""+f.TypeCondition+"\"",
			))
			continue
		}
		if !isComposite(def) {
			report.AddExecutableError(operationreport.NewExecutableValidationError(
				operationreport.FragmentTargetTypeNotComposite, "FragmentsOnCompositeTypes", f.Span,
				"fragment \""+f.Name+"\" targets non-composite type \""+f.TypeCondition+"\"",
			))
		}
	}
}

// checkFragmentsUsed flags a fragment definition that no operation, directly
// or transitively through another used fragment, ever spreads.
func checkFragmentsUsed(doc *ast.ExecutableDocument, report *operationreport.Report) {
	used := map[string]bool{}
	var markSet func(set *ast.SelectionSet)
	markSet = func(set *ast.SelectionSet) {
		if set == nil {
			return
		}
		for _, sel := range set.Selections {
			switch sel.Kind {
			case ast.SelectionField:
				markSet(sel.Field.SelectionSet)
			case ast.SelectionInlineFragment:
				markSet(sel.InlineFragment.SelectionSet)
			case ast.SelectionFragmentSpread:
				name := sel.FragmentSpread.FragmentName
				if used[name] {
					continue
				}
				used[name] = true
				if f, ok := doc.FragmentByName(name); ok {
					markSet(f.SelectionSet)
				}
			}
		}
	}
	for _, op := range doc.Operations {
		markSet(op.SelectionSet)
	}
	for _, f := range doc.Fragments {
		if !used[f.Name] {
			report.AddExecutableError(operationreport.NewExecutableValidationError(
				operationreport.UnusedFragment, "NoUnusedFragments", f.Span,
				"fragment \""+f.Name+"\" is never used",
			))
		}
	}
}

// checkFragmentSpreadCycles runs a DFS with a visited/on-stack set from
// every fragment as an entry point, reporting a back-edge as a spread cycle.
func checkFragmentSpreadCycles(doc *ast.ExecutableDocument, report *operationreport.Report) {
	onStack := map[string]bool{}
	reported := map[string]bool{}

	var visit func(name string, path []string)
	visit = func(name string, path []string) {
		if onStack[name] {
			if !reported[name] {
				reported[name] = true
				f, _ := doc.FragmentByName(path[0])
				report.AddExecutableError(operationreport.NewExecutableValidationError(
					operationreport.FragmentSpreadCycle, "NoFragmentCycles", f.Span,
					"fragment spread cycle: "+joinCycle(append(path, name)),
				))
			}
			return
		}
		f, ok := doc.FragmentByName(name)
		if !ok {
			return
		}
		onStack[name] = true
		path = append(path, name)
		forEachSpreadName(f.SelectionSet, func(spreadName string) {
			visit(spreadName, path)
		})
		onStack[name] = false
	}

	for _, f := range doc.Fragments {
		visit(f.Name, nil)
	}
}

func forEachSpreadName(set *ast.SelectionSet, fn func(name string)) {
	if set == nil {
		return
	}
	for _, sel := range set.Selections {
		switch sel.Kind {
		case ast.SelectionField:
			forEachSpreadName(sel.Field.SelectionSet, fn)
		case ast.SelectionInlineFragment:
			forEachSpreadName(sel.InlineFragment.SelectionSet, fn)
		case ast.SelectionFragmentSpread:
			fn(sel.FragmentSpread.FragmentName)
		}
	}
}

func joinCycle(names []string) string {
	out := ""
	for i, n := range names {
		if i > 0 {
			out += " -> "
		}
		out += n
	}
	return out
}

// registerFragmentSpreadPossibleRule checks, at every spread or typed inline
// fragment site, that the spread's type condition overlaps with the
// selection set's scoped type — i.e. some concrete object type could satisfy
// both.
func registerFragmentSpreadPossibleRule(w *astvisitor.Walker, doc *ast.ExecutableDocument, s *schema.Schema, report *operationreport.Report) {
	conditionType := make(map[string]ast.Definition, len(doc.Fragments))
	for _, f := range doc.Fragments {
		if d, ok := s.GetTypeDefinition(f.TypeCondition); ok {
			conditionType[f.Name] = d
		}
	}

	w.RegisterEnterSelectionSetVisitor(func(set *ast.SelectionSet, currentType ast.Definition) {
		if currentType == nil {
			return
		}
		for _, sel := range set.Selections {
			switch sel.Kind {
			case ast.SelectionFragmentSpread:
				target, ok := conditionType[sel.FragmentSpread.FragmentName]
				if !ok {
					continue
				}
				checkSpreadPossible(currentType, target, sel.FragmentSpread.Span, sel.FragmentSpread.FragmentName, s, report)
			case ast.SelectionInlineFragment:
				if sel.InlineFragment.TypeCondition == "" {
					continue
				}
				target, ok := s.GetTypeDefinition(sel.InlineFragment.TypeCondition)
				if !ok {
					continue
				}
				checkSpreadPossible(currentType, target, sel.InlineFragment.Span, sel.InlineFragment.TypeCondition, s, report)
			}
		}
	})
}

// checkSpreadPossible reports an error when no concrete object type can
// simultaneously satisfy scoped (the enclosing selection set's type) and
// target (the spread's type condition) — e.g. spreading a fragment on
// "Dog" inside a selection set scoped to "Cat".
func checkSpreadPossible(scoped, target ast.Definition, span position.Span, label string, s *schema.Schema, report *operationreport.Report) {
	scopedTypes := possibleTypes(scoped, s)
	targetTypes := possibleTypes(target, s)
	for _, a := range scopedTypes {
		for _, b := range targetTypes {
			if a.Name == b.Name {
				return
			}
		}
	}
	report.AddExecutableError(operationreport.NewExecutableValidationError(
		operationreport.FragmentSpreadNotPossible, "PossibleFragmentSpreads", span,
		"fragment on \""+target.DefName()+"\" can never apply within type \""+scoped.DefName()+"\" ("+label+")",
	))
}

// possibleTypes returns the concrete object types def could apply to: itself
// for an object, every implementing object for an interface, every member
// for a union.
func possibleTypes(def ast.Definition, s *schema.Schema) []*ast.ObjectTypeDefinition {
	switch d := def.(type) {
	case *ast.ObjectTypeDefinition:
		return []*ast.ObjectTypeDefinition{d}
	case *ast.UnionTypeDefinition:
		var out []*ast.ObjectTypeDefinition
		for _, m := range d.Members {
			if md, ok := m.Definition(); ok {
				if obj, ok := md.(*ast.ObjectTypeDefinition); ok {
					out = append(out, obj)
				}
			}
		}
		return out
	case *ast.InterfaceTypeDefinition:
		var out []*ast.ObjectTypeDefinition
		for _, t := range s.TypeDefinitions() {
			obj, ok := t.(*ast.ObjectTypeDefinition)
			if !ok {
				continue
			}
			for _, iface := range obj.Interfaces {
				if iface.InnermostName() == d.Name {
					out = append(out, obj)
					break
				}
			}
		}
		return out
	default:
		return nil
	}
}
