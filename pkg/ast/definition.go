package ast

import "github.com/graphql-toolkit/core/pkg/position"

// DefinitionKind tags the six schema-level definition variants.
type DefinitionKind uint8

const (
	DefinitionScalar DefinitionKind = iota
	DefinitionObject
	DefinitionInterface
	DefinitionUnion
	DefinitionEnum
	DefinitionInputObject
)

func (k DefinitionKind) String() string {
	names := [...]string{"Scalar", "Object", "Interface", "Union", "Enum", "InputObject"}
	if int(k) < len(names) {
		return names[k]
	}
	return "Unknown"
}

// Definition is the capability every schema-level type definition exposes,
// regardless of kind. Kind-specific behavior lives behind the narrower
// capability interfaces below (HasFields, HasInterfaces, ...) rather than an
// inheritance hierarchy.
type Definition interface {
	DefName() string
	DefKind() DefinitionKind
	DefDescription() *string
	DefDirectives() DirectiveList
	DefSpan() position.Span
}

// HasFields is implemented by definitions that expose object fields: Object
// and Interface.
type HasFields interface {
	Definition
	DefFields() []*FieldDefinition
	DefHasField(name string) (*FieldDefinition, bool)
}

// HasInterfaces is implemented by Object (the interfaces it claims to
// implement).
type HasInterfaces interface {
	Definition
	DefInterfaces() []*TypeRef
}

// HasMembers is implemented by Union.
type HasMembers interface {
	Definition
	DefMembers() []*TypeRef
}

// HasEnumValues is implemented by Enum.
type HasEnumValues interface {
	Definition
	DefEnumValues() []*EnumValueDefinition
}

// HasInputFields is implemented by InputObject.
type HasInputFields interface {
	Definition
	DefInputFields() []*InputValueDefinition
}

// --- FieldDefinition / InputValueDefinition / EnumValueDefinition ----------

// FieldDefinition is one field of an Object or Interface type.
type FieldDefinition struct {
	Name        string
	Description *string
	Arguments   []*InputValueDefinition
	Type        *TypeRef
	Directives  DirectiveList
	Span        position.Span
}

// InputValueDefinition is an argument or input-object field definition.
type InputValueDefinition struct {
	Name         string
	Description  *string
	Type         *TypeRef
	DefaultValue *Value
	Directives   DirectiveList
	Span         position.Span
}

// IsRequired reports whether the input value must be provided: non-null type
// with no default value.
func (i *InputValueDefinition) IsRequired() bool {
	return i.Type.IsNonNull() && i.DefaultValue == nil
}

// EnumValueDefinition is one member of an Enum type.
type EnumValueDefinition struct {
	Name        string
	Description *string
	Directives  DirectiveList
	Span        position.Span
}

// --- concrete definitions ---------------------------------------------------

type CommonDef struct {
	Name        string
	Description *string
	Directives  DirectiveList
	Span        position.Span
}

func (c *CommonDef) DefName() string              { return c.Name }
func (c *CommonDef) DefDescription() *string       { return c.Description }
func (c *CommonDef) DefDirectives() DirectiveList { return c.Directives }
func (c *CommonDef) DefSpan() position.Span        { return c.Span }

// ScalarTypeDefinition covers both the five built-in scalars and custom
// scalars; IsBuiltin distinguishes them, so a user scalar definition of the
// same name overrides the built-in rather than constituting a separate kind.
type ScalarTypeDefinition struct {
	CommonDef
	IsBuiltin bool
	// SpecifiedByURL is populated from an `@specifiedBy(url: ...)`
	// application at parse time.
	SpecifiedByURL *string
}

func (s *ScalarTypeDefinition) DefKind() DefinitionKind { return DefinitionScalar }

type ObjectTypeDefinition struct {
	CommonDef
	Interfaces []*TypeRef
	Fields     []*FieldDefinition
}

func (o *ObjectTypeDefinition) DefKind() DefinitionKind    { return DefinitionObject }
func (o *ObjectTypeDefinition) DefFields() []*FieldDefinition { return o.Fields }
func (o *ObjectTypeDefinition) DefInterfaces() []*TypeRef  { return o.Interfaces }
func (o *ObjectTypeDefinition) DefHasField(name string) (*FieldDefinition, bool) {
	return findField(o.Fields, name)
}

type InterfaceTypeDefinition struct {
	CommonDef
	Fields []*FieldDefinition
}

func (i *InterfaceTypeDefinition) DefKind() DefinitionKind       { return DefinitionInterface }
func (i *InterfaceTypeDefinition) DefFields() []*FieldDefinition { return i.Fields }
func (i *InterfaceTypeDefinition) DefHasField(name string) (*FieldDefinition, bool) {
	return findField(i.Fields, name)
}

func findField(fields []*FieldDefinition, name string) (*FieldDefinition, bool) {
	for _, f := range fields {
		if f.Name == name {
			return f, true
		}
	}
	return nil, false
}

type UnionTypeDefinition struct {
	CommonDef
	Members []*TypeRef
}

func (u *UnionTypeDefinition) DefKind() DefinitionKind { return DefinitionUnion }
func (u *UnionTypeDefinition) DefMembers() []*TypeRef  { return u.Members }

type EnumTypeDefinition struct {
	CommonDef
	Values []*EnumValueDefinition
}

func (e *EnumTypeDefinition) DefKind() DefinitionKind              { return DefinitionEnum }
func (e *EnumTypeDefinition) DefEnumValues() []*EnumValueDefinition { return e.Values }

type InputObjectTypeDefinition struct {
	CommonDef
	Fields []*InputValueDefinition
}

func (i *InputObjectTypeDefinition) DefKind() DefinitionKind                { return DefinitionInputObject }
func (i *InputObjectTypeDefinition) DefInputFields() []*InputValueDefinition { return i.Fields }
func (i *InputObjectTypeDefinition) DefFieldByName(name string) (*InputValueDefinition, bool) {
	for _, f := range i.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return nil, false
}

// --- directive definitions ---------------------------------------------------

// DirectiveLocation names one place a directive may be applied, per the
// `__DirectiveLocation` introspection enum.
type DirectiveLocation string

const (
	LocationQuery               DirectiveLocation = "QUERY"
	LocationMutation             DirectiveLocation = "MUTATION"
	LocationSubscription         DirectiveLocation = "SUBSCRIPTION"
	LocationField                DirectiveLocation = "FIELD"
	LocationFragmentDefinition   DirectiveLocation = "FRAGMENT_DEFINITION"
	LocationFragmentSpread       DirectiveLocation = "FRAGMENT_SPREAD"
	LocationInlineFragment       DirectiveLocation = "INLINE_FRAGMENT"
	LocationVariableDefinition   DirectiveLocation = "VARIABLE_DEFINITION"
	LocationSchema               DirectiveLocation = "SCHEMA"
	LocationScalar                DirectiveLocation = "SCALAR"
	LocationObject                DirectiveLocation = "OBJECT"
	LocationFieldDefinition       DirectiveLocation = "FIELD_DEFINITION"
	LocationArgumentDefinition    DirectiveLocation = "ARGUMENT_DEFINITION"
	LocationInterface             DirectiveLocation = "INTERFACE"
	LocationUnion                 DirectiveLocation = "UNION"
	LocationEnum                  DirectiveLocation = "ENUM"
	LocationEnumValue             DirectiveLocation = "ENUM_VALUE"
	LocationInputObject           DirectiveLocation = "INPUT_OBJECT"
	LocationInputFieldDefinition  DirectiveLocation = "INPUT_FIELD_DEFINITION"
)

// MatchesAny reports whether loc equals any of candidates, so the
// "directives allowed at location" rule reads as a single call instead of an
// inline loop.
func (loc DirectiveLocation) MatchesAny(candidates ...DirectiveLocation) bool {
	for _, c := range candidates {
		if loc == c {
			return true
		}
	}
	return false
}

// DirectiveDefinition declares a directive's argument signature and the
// locations it may be applied at.
type DirectiveDefinition struct {
	Name        string
	Description *string
	Arguments   []*InputValueDefinition
	Locations   []DirectiveLocation
	Repeatable  bool
	Span        position.Span
}

// --- explicit schema block ---------------------------------------------------

// OperationType distinguishes the three root operation kinds.
type OperationType uint8

const (
	OperationTypeQuery OperationType = iota
	OperationTypeMutation
	OperationTypeSubscription
)

func (o OperationType) String() string {
	switch o {
	case OperationTypeQuery:
		return "query"
	case OperationTypeMutation:
		return "mutation"
	case OperationTypeSubscription:
		return "subscription"
	default:
		return "unknown"
	}
}

// RootOperationTypeDefinition is one `query: TypeName` entry of an explicit
// schema block.
type RootOperationTypeDefinition struct {
	OperationType OperationType
	NamedType     *TypeRef
	Span          position.Span
}

// SchemaDefinitionBlock is an explicit `schema { ... }` block as parsed (not
// to be confused with the resolved pkg/schema.Schema model).
type SchemaDefinitionBlock struct {
	Description          *string
	Directives           DirectiveList
	RootOperationTypes    []*RootOperationTypeDefinition
	Span                  position.Span
}
