package astparser

import (
	"github.com/graphql-toolkit/core/pkg/ast"
	"github.com/graphql-toolkit/core/pkg/position"
)

// builtinSpan is used for every synthesized node: built-ins have no source
// location of their own, so they share the zero span. Consumers that render
// snippets treat a zero span as "no source to point at".
var builtinSpan = position.Span{}

var builtinScalarNames = []string{"Int", "Float", "String", "Boolean", "ID"}

// InjectBuiltins adds the built-in scalars (for any name not already taken
// by a user definition), the built-in directives, the introspection types,
// and the `__typename`/`__schema`/`__type` root fields. It builds the AST
// nodes directly rather than reparsing an appended source string.
func InjectBuiltins(doc *ast.Document) {
	addMissingBuiltinScalars(doc)
	addBuiltinDirectives(doc)
	addIntrospectionTypes(doc)
	augmentRootFields(doc)
}

func addMissingBuiltinScalars(doc *ast.Document) {
	existing := map[string]bool{}
	for _, d := range doc.AllTypeDefinitions() {
		existing[d.DefName()] = true
	}
	for _, name := range builtinScalarNames {
		if existing[name] {
			continue
		}
		doc.Scalars = append(doc.Scalars, &ast.ScalarTypeDefinition{
			CommonDef: ast.CommonDef{Name: name, Span: builtinSpan},
			IsBuiltin: true,
		})
	}
}

func namedArg(name, typeName string, nonNull bool, def *ast.Value) *ast.InputValueDefinition {
	typ := ast.NamedTypeRef(typeName, builtinSpan)
	var t *ast.TypeRef = typ
	if nonNull {
		t = ast.NonNullTypeRef(typ, builtinSpan)
	}
	return &ast.InputValueDefinition{Name: name, Type: t, DefaultValue: def, Span: builtinSpan}
}

func namedField(name string, typeRef *ast.TypeRef, args ...*ast.InputValueDefinition) *ast.FieldDefinition {
	return &ast.FieldDefinition{Name: name, Type: typeRef, Arguments: args, Span: builtinSpan}
}

func nn(name string) *ast.TypeRef  { return ast.NonNullTypeRef(ast.NamedTypeRef(name, builtinSpan), builtinSpan) }
func nullable(name string) *ast.TypeRef { return ast.NamedTypeRef(name, builtinSpan) }
func listNN(name string) *ast.TypeRef {
	return ast.NonNullTypeRef(ast.ListTypeRef(nn(name), builtinSpan), builtinSpan)
}
func listNullable(name string) *ast.TypeRef {
	return ast.ListTypeRef(nn(name), builtinSpan)
}

func addBuiltinDirectives(doc *ast.Document) {
	doc.Directives = append(doc.Directives,
		&ast.DirectiveDefinition{
			Name: "include",
			Arguments: []*ast.InputValueDefinition{
				namedArg("if", "Boolean", true, nil),
			},
			Locations: []ast.DirectiveLocation{ast.LocationField, ast.LocationFragmentSpread, ast.LocationInlineFragment},
			Span:      builtinSpan,
		},
		&ast.DirectiveDefinition{
			Name: "skip",
			Arguments: []*ast.InputValueDefinition{
				namedArg("if", "Boolean", true, nil),
			},
			Locations: []ast.DirectiveLocation{ast.LocationField, ast.LocationFragmentSpread, ast.LocationInlineFragment},
			Span:      builtinSpan,
		},
		&ast.DirectiveDefinition{
			Name: "deprecated",
			Arguments: []*ast.InputValueDefinition{
				namedArg("reason", "String", false, &ast.Value{ValueKind: ast.KindString, StringValue: "No longer supported"}),
			},
			Locations: []ast.DirectiveLocation{ast.LocationFieldDefinition, ast.LocationArgumentDefinition, ast.LocationInputFieldDefinition, ast.LocationEnumValue},
			Span:      builtinSpan,
		},
		&ast.DirectiveDefinition{
			Name: "specifiedBy",
			Arguments: []*ast.InputValueDefinition{
				namedArg("url", "String", true, nil),
			},
			Locations: []ast.DirectiveLocation{ast.LocationScalar},
			Span:      builtinSpan,
		},
	)
}

func addIntrospectionTypes(doc *ast.Document) {
	doc.Enums = append(doc.Enums,
		&ast.EnumTypeDefinition{
			CommonDef: ast.CommonDef{Name: "__TypeKind", Span: builtinSpan},
			Values: enumValues(
				"SCALAR", "OBJECT", "INTERFACE", "UNION", "ENUM", "INPUT_OBJECT", "LIST", "NON_NULL",
			),
		},
		&ast.EnumTypeDefinition{
			CommonDef: ast.CommonDef{Name: "__DirectiveLocation", Span: builtinSpan},
			Values: enumValues(
				"QUERY", "MUTATION", "SUBSCRIPTION", "FIELD", "FRAGMENT_DEFINITION",
				"FRAGMENT_SPREAD", "INLINE_FRAGMENT", "VARIABLE_DEFINITION", "SCHEMA",
				"SCALAR", "OBJECT", "FIELD_DEFINITION", "ARGUMENT_DEFINITION", "INTERFACE",
				"UNION", "ENUM", "ENUM_VALUE", "INPUT_OBJECT", "INPUT_FIELD_DEFINITION",
			),
		},
	)

	includeDeprecatedArg := namedArg("includeDeprecated", "Boolean", false, &ast.Value{ValueKind: ast.KindBoolean, BooleanValue: false})

	doc.Objects = append(doc.Objects,
		&ast.ObjectTypeDefinition{
			CommonDef: ast.CommonDef{Name: "__EnumValue", Span: builtinSpan},
			Fields: []*ast.FieldDefinition{
				namedField("name", nn("String")),
				namedField("description", nullable("String")),
				namedField("isDeprecated", nn("Boolean")),
				namedField("deprecationReason", nullable("String")),
			},
		},
		&ast.ObjectTypeDefinition{
			CommonDef: ast.CommonDef{Name: "__InputValue", Span: builtinSpan},
			Fields: []*ast.FieldDefinition{
				namedField("name", nn("String")),
				namedField("description", nullable("String")),
				namedField("type", nn("__Type")),
				namedField("defaultValue", nullable("String")),
				namedField("isDeprecated", nn("Boolean")),
				namedField("deprecationReason", nullable("String")),
			},
		},
		&ast.ObjectTypeDefinition{
			CommonDef: ast.CommonDef{Name: "__Field", Span: builtinSpan},
			Fields: []*ast.FieldDefinition{
				namedField("name", nn("String")),
				namedField("description", nullable("String")),
				namedField("args", listNN("__InputValue"), includeDeprecatedArg),
				namedField("type", nn("__Type")),
				namedField("isDeprecated", nn("Boolean")),
				namedField("deprecationReason", nullable("String")),
			},
		},
		&ast.ObjectTypeDefinition{
			CommonDef: ast.CommonDef{Name: "__Directive", Span: builtinSpan},
			Fields: []*ast.FieldDefinition{
				namedField("name", nn("String")),
				namedField("description", nullable("String")),
				namedField("locations", listNN("__DirectiveLocation")),
				namedField("args", listNN("__InputValue"), includeDeprecatedArg),
				namedField("isRepeatable", nn("Boolean")),
			},
		},
		&ast.ObjectTypeDefinition{
			CommonDef: ast.CommonDef{Name: "__Type", Span: builtinSpan},
			Fields: []*ast.FieldDefinition{
				namedField("kind", nn("__TypeKind")),
				namedField("name", nullable("String")),
				namedField("description", nullable("String")),
				namedField("fields", listNullable("__Field"), includeDeprecatedArg),
				namedField("interfaces", listNullable("__Type")),
				namedField("possibleTypes", listNullable("__Type")),
				namedField("enumValues", listNullable("__EnumValue"), includeDeprecatedArg),
				namedField("inputFields", listNullable("__InputValue"), includeDeprecatedArg),
				namedField("ofType", nullable("__Type")),
				namedField("specifiedByURL", nullable("String")),
			},
		},
		&ast.ObjectTypeDefinition{
			CommonDef: ast.CommonDef{Name: "__Schema", Span: builtinSpan},
			Fields: []*ast.FieldDefinition{
				namedField("description", nullable("String")),
				namedField("types", listNN("__Type")),
				namedField("queryType", nn("__Type")),
				namedField("mutationType", nullable("__Type")),
				namedField("subscriptionType", nullable("__Type")),
				namedField("directives", listNN("__Directive")),
			},
		},
	)
}

func enumValues(names ...string) []*ast.EnumValueDefinition {
	out := make([]*ast.EnumValueDefinition, len(names))
	for i, n := range names {
		out[i] = &ast.EnumValueDefinition{Name: n, Span: builtinSpan}
	}
	return out
}

// augmentRootFields adds __typename/__schema/__type to the query root and
// __typename to the mutation/subscription roots. The root is identified by
// preferring an explicit schema block's root entries, falling back to the
// conventional Query/Mutation/Subscription names.
func augmentRootFields(doc *ast.Document) {
	queryName, mutationName, subscriptionName := "Query", "Mutation", "Subscription"
	for _, block := range doc.SchemaBlocks {
		for _, root := range block.RootOperationTypes {
			switch root.OperationType {
			case ast.OperationTypeQuery:
				queryName = root.NamedType.Name
			case ast.OperationTypeMutation:
				mutationName = root.NamedType.Name
			case ast.OperationTypeSubscription:
				subscriptionName = root.NamedType.Name
			}
		}
	}

	if q, ok := doc.ObjectByName(queryName); ok {
		addFieldIfMissing(q, namedField("__typename", nn("String")))
		addFieldIfMissing(q, namedField("__schema", nn("__Schema")))
		addFieldIfMissing(q, namedField("__type", nullable("__Type"), namedArg("name", "String", true, nil)))
	}
	if m, ok := doc.ObjectByName(mutationName); ok {
		addFieldIfMissing(m, namedField("__typename", nn("String")))
	}
	if s, ok := doc.ObjectByName(subscriptionName); ok {
		addFieldIfMissing(s, namedField("__typename", nn("String")))
	}
}

func addFieldIfMissing(o *ast.ObjectTypeDefinition, f *ast.FieldDefinition) {
	if _, ok := o.DefHasField(f.Name); ok {
		return
	}
	o.Fields = append(o.Fields, f)
}
