// Package astvisitor implements the single-pass validation framework: a
// Walker performs exactly one traversal of an executable document,
// threading the current scoped composite type through selection sets and
// fanning out to every registered rule's hooks, so adding a rule never
// costs another traversal.
package astvisitor

import (
	"github.com/jensneuse/abstractlogger"

	"github.com/graphql-toolkit/core/pkg/ast"
	"github.com/graphql-toolkit/core/pkg/logging"
	"github.com/graphql-toolkit/core/pkg/operationreport"
	"github.com/graphql-toolkit/core/pkg/position"
	"github.com/graphql-toolkit/core/pkg/schema"
)

// typenameField is the synthetic field definition every composite type
// exposes even when the schema's own field list doesn't carry it (only the
// three root types get __typename physically injected by astparser; every
// other composite type still answers __typename per GraphQL's meta-field
// convention).
var typenameField = &ast.FieldDefinition{Name: "__typename", Type: ast.NonNullTypeRef(ast.NamedTypeRef("String", position.Span{}), position.Span{})}

// EnterOperationFunc is invoked once per operation, before its selection set.
type EnterOperationFunc func(op *ast.OperationDefinition, rootType ast.Definition)

// EnterSelectionSetFunc is invoked for every selection set, with the
// composite type it is scoped to (nil if the scoped type could not be
// determined, e.g. a prior field resolution failure).
type EnterSelectionSetFunc func(set *ast.SelectionSet, currentType ast.Definition)

// EnterFieldFunc is invoked for every field selection, with its resolved
// FieldDefinition (nil if the field does not exist on currentType).
type EnterFieldFunc func(field *ast.Field, currentType ast.Definition, fieldDef *ast.FieldDefinition)

// EnterVariableDefinitionFunc is invoked for every variable definition of an
// operation.
type EnterVariableDefinitionFunc func(op *ast.OperationDefinition, v *ast.VariableDefinition)

// EnterDirectiveFunc is invoked for every directive application, with the
// location it was applied at.
type EnterDirectiveFunc func(d *ast.Directive, location ast.DirectiveLocation)

// EnterFragmentDefinitionFunc is invoked once per fragment definition, with
// its type-condition definition (nil if unresolved).
type EnterFragmentDefinitionFunc func(f *ast.FragmentDefinition, conditionType ast.Definition)

// EnterInlineFragmentFunc is invoked for every inline fragment, with its
// effective scoped type (the type condition's definition, or the enclosing
// scoped type if the condition was omitted).
type EnterInlineFragmentFunc func(f *ast.InlineFragment, scopedType ast.Definition)

// EnterFragmentSpreadFunc is invoked for every fragment spread.
type EnterFragmentSpreadFunc func(spread *ast.FragmentSpread, enclosingType ast.Definition)

// Walker performs the single traversal and fans hooks out to every
// registered rule. Register hooks, then call Walk exactly once.
type Walker struct {
	enterOperation           []EnterOperationFunc
	enterSelectionSet        []EnterSelectionSetFunc
	enterField               []EnterFieldFunc
	enterVariableDefinition  []EnterVariableDefinitionFunc
	enterDirective           []EnterDirectiveFunc
	enterFragmentDefinition  []EnterFragmentDefinitionFunc
	enterInlineFragment      []EnterInlineFragmentFunc
	enterFragmentSpread      []EnterFragmentSpreadFunc

	schema *schema.Schema
	cache  *Cache
	report *operationreport.Report
	logger abstractlogger.Logger

	// activeSpreads tracks the fragments currently being expanded on the
	// path from the operation root, so a genuine spread cycle terminates the
	// traversal instead of recursing forever. Reporting the cycle as an
	// error is FragmentSpreadCycle's job (executablevalidation); this only
	// keeps Walk itself from never returning.
	activeSpreads map[string]bool
}

// NewWalker creates a Walker over schema s, using cache (built once per
// document by NewCache) and accumulating errors into report.
func NewWalker(s *schema.Schema, cache *Cache, report *operationreport.Report) *Walker {
	return &Walker{schema: s, cache: cache, report: report, logger: logging.Noop()}
}

// WithLogger routes this Walker's rule-registration and traversal debug logs
// to logger instead of the default no-op.
func (w *Walker) WithLogger(logger abstractlogger.Logger) *Walker {
	w.logger = logger
	return w
}

func (w *Walker) RegisterEnterOperationVisitor(fn EnterOperationFunc) {
	w.logger.Debug("registering EnterOperation visitor")
	w.enterOperation = append(w.enterOperation, fn)
}
func (w *Walker) RegisterEnterSelectionSetVisitor(fn EnterSelectionSetFunc) {
	w.enterSelectionSet = append(w.enterSelectionSet, fn)
}
func (w *Walker) RegisterEnterFieldVisitor(fn EnterFieldFunc) {
	w.enterField = append(w.enterField, fn)
}
func (w *Walker) RegisterEnterVariableDefinitionVisitor(fn EnterVariableDefinitionFunc) {
	w.enterVariableDefinition = append(w.enterVariableDefinition, fn)
}
func (w *Walker) RegisterEnterDirectiveVisitor(fn EnterDirectiveFunc) {
	w.enterDirective = append(w.enterDirective, fn)
}
func (w *Walker) RegisterEnterFragmentDefinitionVisitor(fn EnterFragmentDefinitionFunc) {
	w.enterFragmentDefinition = append(w.enterFragmentDefinition, fn)
}
func (w *Walker) RegisterEnterInlineFragmentVisitor(fn EnterInlineFragmentFunc) {
	w.enterInlineFragment = append(w.enterInlineFragment, fn)
}
func (w *Walker) RegisterEnterFragmentSpreadVisitor(fn EnterFragmentSpreadFunc) {
	w.enterFragmentSpread = append(w.enterFragmentSpread, fn)
}

// Walk performs the single traversal over doc.
func (w *Walker) Walk(doc *ast.ExecutableDocument) {
	w.logger.Debug("walk starting", abstractlogger.Int("operations", len(doc.Operations)), abstractlogger.Int("fragments", len(doc.Fragments)))
	defer w.logger.Debug("walk complete")

	for _, f := range doc.Fragments {
		var condType ast.Definition
		if d, ok := w.schema.GetTypeDefinition(f.TypeCondition); ok {
			condType = d
		}
		for _, fn := range w.enterFragmentDefinition {
			fn(f, condType)
		}
	}

	for _, op := range doc.Operations {
		w.activeSpreads = map[string]bool{}
		root := w.rootTypeFor(op.OperationType)
		for _, fn := range w.enterOperation {
			fn(op, root)
		}
		for _, v := range op.VariableDefinitions {
			for _, fn := range w.enterVariableDefinition {
				fn(op, v)
			}
			w.walkDirectives(v.Directives, ast.LocationVariableDefinition)
		}
		loc := ast.LocationQuery
		switch op.OperationType {
		case ast.OperationTypeMutation:
			loc = ast.LocationMutation
		case ast.OperationTypeSubscription:
			loc = ast.LocationSubscription
		}
		w.walkDirectives(op.Directives, loc)
		w.walkSelectionSet(op.SelectionSet, root)
	}
}

func (w *Walker) rootTypeFor(opType ast.OperationType) ast.Definition {
	switch opType {
	case ast.OperationTypeMutation:
		if m := w.schema.Mutation(); m != nil {
			return m
		}
		return nil
	case ast.OperationTypeSubscription:
		if s := w.schema.Subscription(); s != nil {
			return s
		}
		return nil
	default:
		return w.schema.Query()
	}
}

func (w *Walker) walkSelectionSet(set *ast.SelectionSet, currentType ast.Definition) {
	if set == nil {
		return
	}
	for _, fn := range w.enterSelectionSet {
		fn(set, currentType)
	}
	for _, sel := range set.Selections {
		switch sel.Kind {
		case ast.SelectionField:
			w.walkField(sel.Field, currentType)
		case ast.SelectionFragmentSpread:
			w.walkFragmentSpread(sel.FragmentSpread, currentType)
		case ast.SelectionInlineFragment:
			w.walkInlineFragment(sel.InlineFragment, currentType)
		}
	}
}

func (w *Walker) walkField(field *ast.Field, currentType ast.Definition) {
	fieldDef := resolveField(currentType, field.Name)
	field.FieldDefinition = fieldDef
	for _, fn := range w.enterField {
		fn(field, currentType, fieldDef)
	}
	w.walkDirectives(field.Directives, ast.LocationField)

	var nextType ast.Definition
	if fieldDef != nil {
		if def, ok := fieldDef.Type.Definition(); ok {
			nextType = def
		}
	}
	w.walkSelectionSet(field.SelectionSet, nextType)
}

func resolveField(currentType ast.Definition, name string) *ast.FieldDefinition {
	if currentType != nil {
		if hf, ok := currentType.(ast.HasFields); ok {
			if f, ok := hf.DefHasField(name); ok {
				return f
			}
		}
	}
	if name == "__typename" {
		return typenameField
	}
	return nil
}

func (w *Walker) walkFragmentSpread(spread *ast.FragmentSpread, enclosingType ast.Definition) {
	for _, fn := range w.enterFragmentSpread {
		fn(spread, enclosingType)
	}
	w.walkDirectives(spread.Directives, ast.LocationFragmentSpread)

	frag, ok := w.cache.FragmentByName(spread.FragmentName)
	if !ok {
		return
	}
	if w.activeSpreads[spread.FragmentName] {
		// A genuine spread cycle; stop expanding so Walk terminates.
		// Reporting it as invalid is FragmentSpreadCycle's job
		// (executablevalidation), not the walker's.
		return
	}
	var condType ast.Definition
	if d, ok := w.schema.GetTypeDefinition(frag.TypeCondition); ok {
		condType = d
	}
	w.activeSpreads[spread.FragmentName] = true
	w.walkSelectionSet(frag.SelectionSet, condType)
	w.activeSpreads[spread.FragmentName] = false
}

func (w *Walker) walkInlineFragment(inline *ast.InlineFragment, enclosingType ast.Definition) {
	scoped := enclosingType
	if inline.TypeCondition != "" {
		if d, ok := w.schema.GetTypeDefinition(inline.TypeCondition); ok {
			scoped = d
		} else {
			scoped = nil
		}
	}
	for _, fn := range w.enterInlineFragment {
		fn(inline, scoped)
	}
	w.walkDirectives(inline.Directives, ast.LocationInlineFragment)
	w.walkSelectionSet(inline.SelectionSet, scoped)
}

func (w *Walker) walkDirectives(list ast.DirectiveList, location ast.DirectiveLocation) {
	for _, d := range list.Directives {
		for _, fn := range w.enterDirective {
			fn(d, location)
		}
	}
}
