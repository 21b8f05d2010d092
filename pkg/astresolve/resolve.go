// Package astresolve builds the name indices over a parsed schema Document,
// binds every unresolved TypeRef to its definition, and resolves the three
// schema root operation types.
package astresolve

import (
	"sort"
	"strings"

	"github.com/jensneuse/abstractlogger"

	"github.com/graphql-toolkit/core/pkg/ast"
	"github.com/graphql-toolkit/core/pkg/logging"
	"github.com/graphql-toolkit/core/pkg/operationreport"
	"github.com/graphql-toolkit/core/pkg/position"
	"github.com/graphql-toolkit/core/pkg/schema"
)

// Option configures a Resolve call. The zero value of Resolve's option set
// logs nothing, defaulting to abstractlogger.Noop{}.
type Option func(*resolveOptions)

type resolveOptions struct {
	logger abstractlogger.Logger
}

// WithLogger routes Resolve's pass start/end logs to logger instead of the
// default no-op.
func WithLogger(logger abstractlogger.Logger) Option {
	return func(o *resolveOptions) { o.logger = logger }
}

// reservedIntrospectionNames are the only "__"-prefixed type names a
// document may contain; they are the ones astparser.InjectBuiltins adds.
// Any other "__"-prefixed user definition is reserved-name misuse (spec
// §4.E's open question on `__`-prefixed names), independent of whether it
// also happens to collide with a built-in.
var reservedIntrospectionNames = map[string]bool{
	"__Schema": true, "__Type": true, "__Field": true, "__InputValue": true,
	"__EnumValue": true, "__Directive": true, "__TypeKind": true, "__DirectiveLocation": true,
}

// Resolve builds the type/directive indices, binds every TypeRef in doc, and
// resolves the schema's root operation types. It returns nil if resolution
// failed (errors are recorded in report); callers must check
// report.HasErrors() before trusting a nil return is the only failure mode.
func Resolve(doc *ast.Document, report *operationreport.Report, opts ...Option) *schema.Schema {
	ro := resolveOptions{logger: logging.Noop()}
	for _, opt := range opts {
		opt(&ro)
	}
	ro.logger.Debug("resolve pass starting", abstractlogger.Int("objects", len(doc.Objects)), abstractlogger.Int("inputObjects", len(doc.InputObjects)))

	typeIndex, _ := buildIndices(doc, report)

	for _, obj := range doc.Objects {
		bindInterfaces(obj, typeIndex, report)
		bindFields(obj.Fields, typeIndex, report)
	}
	for _, i := range doc.Interfaces {
		bindFields(i.Fields, typeIndex, report)
	}
	for _, u := range doc.Unions {
		bindMembers(u, typeIndex, report)
	}
	for _, io := range doc.InputObjects {
		bindInputFields(io.Fields, typeIndex, report)
	}
	for _, d := range doc.Directives {
		bindInputFields(d.Arguments, typeIndex, report)
	}

	query, mutation, subscription := resolveRoots(doc, typeIndex, report)
	if report.HasErrors() {
		ro.logger.Debug("resolve pass failed", abstractlogger.Int("errors", len(report.ResolutionErrors)))
		return nil
	}
	ro.logger.Debug("resolve pass complete")
	return schema.New(doc, query, mutation, subscription)
}

func buildIndices(doc *ast.Document, report *operationreport.Report) (map[string]ast.Definition, map[string]*ast.DirectiveDefinition) {
	types := map[string]ast.Definition{}
	seenTypeNames := map[string]bool{}
	for _, d := range doc.AllTypeDefinitions() {
		name := d.DefName()
		if strings.HasPrefix(name, "__") && !reservedIntrospectionNames[name] {
			report.AddResolutionError(operationreport.NewResolutionError(
				operationreport.ReservedIntrospectionTypeName, d.DefSpan(), name,
				"type names starting with \"__\" are reserved for introspection",
			))
			continue
		}
		if seenTypeNames[name] {
			report.AddResolutionError(operationreport.NewResolutionError(
				operationreport.DuplicateTypeDefinitions, d.DefSpan(), name,
				"type \""+name+"\" is defined more than once",
			))
			continue
		}
		seenTypeNames[name] = true
		types[name] = d
	}

	directives := map[string]*ast.DirectiveDefinition{}
	seenDirectiveNames := map[string]bool{}
	for _, d := range doc.Directives {
		if seenDirectiveNames[d.Name] {
			report.AddResolutionError(operationreport.NewResolutionError(
				operationreport.DuplicateDirectiveDefinitions, d.Span, d.Name,
				"directive \"@"+d.Name+"\" is defined more than once",
			))
			continue
		}
		seenDirectiveNames[d.Name] = true
		directives[d.Name] = d
	}

	return types, directives
}

func lookup(name string, index map[string]ast.Definition, ref *ast.TypeRef, report *operationreport.Report) (ast.Definition, bool) {
	def, ok := index[name]
	if !ok {
		report.AddResolutionError(operationreport.NewResolutionError(
			operationreport.ReferencedTypeDoesNotExist, ref.Span, name,
			"type \""+name+"\" is not defined",
		))
		return nil, false
	}
	return def, true
}

func bindOutputType(ref *ast.TypeRef, index map[string]ast.Definition, report *operationreport.Report) {
	name := ref.InnermostName()
	def, ok := lookup(name, index, ref, report)
	if !ok {
		return
	}
	if def.DefKind() == ast.DefinitionInputObject {
		report.AddResolutionError(operationreport.NewResolutionError(
			operationreport.ReferencedTypeIsNotAnOutputType, ref.Span, name,
			"\""+name+"\" is an input object and cannot be used as a field type",
		))
		return
	}
	ref.Bind(def)
}

func bindInputType(ref *ast.TypeRef, index map[string]ast.Definition, report *operationreport.Report) {
	name := ref.InnermostName()
	def, ok := lookup(name, index, ref, report)
	if !ok {
		return
	}
	switch def.DefKind() {
	case ast.DefinitionScalar, ast.DefinitionEnum, ast.DefinitionInputObject:
		ref.Bind(def)
	default:
		report.AddResolutionError(operationreport.NewResolutionError(
			operationreport.ReferencedTypeIsNotAnInputType, ref.Span, name,
			"\""+name+"\" cannot be used as an input type",
		))
	}
}

func bindFields(fields []*ast.FieldDefinition, index map[string]ast.Definition, report *operationreport.Report) {
	for _, f := range fields {
		bindOutputType(f.Type, index, report)
		bindInputFields(f.Arguments, index, report)
	}
}

func bindInputFields(fields []*ast.InputValueDefinition, index map[string]ast.Definition, report *operationreport.Report) {
	for _, f := range fields {
		bindInputType(f.Type, index, report)
	}
}

func bindInterfaces(o *ast.ObjectTypeDefinition, index map[string]ast.Definition, report *operationreport.Report) {
	for _, ref := range o.Interfaces {
		name := ref.InnermostName()
		def, ok := lookup(name, index, ref, report)
		if !ok {
			continue
		}
		if def.DefKind() != ast.DefinitionInterface {
			report.AddResolutionError(operationreport.NewResolutionError(
				operationreport.ReferencedTypeIsNotAnInterface, ref.Span, name,
				"\""+name+"\" is not an interface",
			))
			continue
		}
		ref.Bind(def)
	}
}

func bindMembers(u *ast.UnionTypeDefinition, index map[string]ast.Definition, report *operationreport.Report) {
	for _, ref := range u.Members {
		name := ref.InnermostName()
		def, ok := lookup(name, index, ref, report)
		if !ok {
			continue
		}
		if def.DefKind() != ast.DefinitionObject {
			report.AddResolutionError(operationreport.NewResolutionError(
				operationreport.ReferencedUnionMemberTypeIsNotAnObject, ref.Span, name,
				"\""+name+"\" is not an object type and cannot be a union member",
			))
			continue
		}
		ref.Bind(def)
	}
}

// resolveRoots implements the root-resolution rule: an explicit schema
// block (exactly one) takes precedence; otherwise the conventional
// Query/Mutation/Subscription names are used.
func resolveRoots(doc *ast.Document, index map[string]ast.Definition, report *operationreport.Report) (query, mutation, subscription *ast.ObjectTypeDefinition) {
	if len(doc.SchemaBlocks) > 1 {
		sorted := append([]*ast.SchemaDefinitionBlock(nil), doc.SchemaBlocks...)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].Span.Start < sorted[j].Span.Start })
		for _, b := range sorted[1:] {
			report.AddResolutionError(operationreport.NewResolutionError(
				operationreport.DuplicateExplicitSchemaDefinitions, b.Span, "",
				"a schema document may declare at most one schema block",
			))
		}
		return nil, nil, nil
	}

	if len(doc.SchemaBlocks) == 1 {
		return resolveExplicitRoots(doc.SchemaBlocks[0], index, report)
	}

	return resolveImplicitRoots(index, report)
}

func resolveExplicitRoots(block *ast.SchemaDefinitionBlock, index map[string]ast.Definition, report *operationreport.Report) (query, mutation, subscription *ast.ObjectTypeDefinition) {
	seen := map[ast.OperationType]bool{}
	for _, root := range block.RootOperationTypes {
		if seen[root.OperationType] {
			report.AddResolutionError(operationreport.NewResolutionError(
				operationreport.DuplicateExplicitRootOperationDefinitions, root.Span, root.NamedType.Name,
				"root operation type \""+root.OperationType.String()+"\" is declared more than once",
			))
			continue
		}
		seen[root.OperationType] = true

		name := root.NamedType.Name
		def, ok := index[name]
		if !ok {
			report.AddResolutionError(operationreport.NewResolutionError(
				operationreport.ExplicitRootOperationTypeDoesNotExist, root.Span, name,
				"root operation type \""+name+"\" is not defined",
			))
			continue
		}
		obj, ok := def.(*ast.ObjectTypeDefinition)
		if !ok {
			report.AddResolutionError(operationreport.NewResolutionError(
				operationreport.ExplicitRootOperationTypeNotAnObject, root.Span, name,
				"root operation type \""+name+"\" must be an object type",
			))
			continue
		}
		root.NamedType.Bind(obj)
		switch root.OperationType {
		case ast.OperationTypeQuery:
			query = obj
		case ast.OperationTypeMutation:
			mutation = obj
		case ast.OperationTypeSubscription:
			subscription = obj
		}
	}
	if query == nil {
		report.AddResolutionError(operationreport.NewResolutionError(
			operationreport.ExplicitSchemaDefinitionMissingQuery, block.Span, "",
			"a schema block must declare a query root",
		))
	}
	return
}

func resolveImplicitRoots(index map[string]ast.Definition, report *operationreport.Report) (query, mutation, subscription *ast.ObjectTypeDefinition) {
	query = implicitRoot("Query", index, report, operationreport.ImplicitRootOperationTypeNotAnObject)
	mutation = implicitRoot("Mutation", index, report, operationreport.ImplicitRootOperationTypeNotAnObject)
	subscription = implicitRoot("Subscription", index, report, operationreport.ImplicitRootOperationTypeNotAnObject)
	if query == nil {
		report.AddResolutionError(operationreport.NewResolutionError(
			operationreport.ImplicitSchemaDefinitionMissingQuery, position.Span{}, "",
			"no schema block and no \"Query\" object type: a schema must have a query root",
		))
	}
	return
}

func implicitRoot(name string, index map[string]ast.Definition, report *operationreport.Report, kindIfWrong operationreport.ResolutionErrorKind) *ast.ObjectTypeDefinition {
	def, ok := index[name]
	if !ok {
		return nil
	}
	obj, ok := def.(*ast.ObjectTypeDefinition)
	if !ok {
		report.AddResolutionError(operationreport.NewResolutionError(
			kindIfWrong, def.DefSpan(), name,
			"\""+name+"\" must be an object type to serve as an implicit root",
		))
		return nil
	}
	return obj
}
