// Package operationreport defines the error taxonomy and the Report type
// that batches errors across a scan/parse/resolve/validate pipeline.
package operationreport

import (
	"fmt"

	"github.com/graphql-toolkit/core/pkg/position"
)

// ExternalError is the common shape every taxonomy member satisfies: a
// message plus the span it refers to. Concrete error types embed this.
type ExternalError struct {
	Message string
	Span    position.Span
}

func (e ExternalError) Error() string {
	return e.Message
}

// --- 1. Scan errors -------------------------------------------------------

type ScanErrorKind uint8

const (
	UnrecognizedToken ScanErrorKind = iota
	IntegerValueTooLarge
	FloatValueTooLarge
	StringInvalidEscapedUnicode
	UnterminatedString
	UnterminatedBlockString
)

func (k ScanErrorKind) String() string {
	switch k {
	case UnrecognizedToken:
		return "UnrecognizedToken"
	case IntegerValueTooLarge:
		return "IntegerValueTooLarge"
	case FloatValueTooLarge:
		return "FloatValueTooLarge"
	case StringInvalidEscapedUnicode:
		return "StringInvalidEscapedUnicode"
	case UnterminatedString:
		return "UnterminatedString"
	case UnterminatedBlockString:
		return "UnterminatedBlockString"
	default:
		return "UnknownScanError"
	}
}

// ScanError is produced by pkg/lexer. It never halts scanning; the scanner
// resynchronizes and keeps producing tokens so a caller sees every lex error
// in one pass.
type ScanError struct {
	ExternalError
	Kind ScanErrorKind
}

func NewScanError(kind ScanErrorKind, span position.Span, message string) ScanError {
	return ScanError{ExternalError: ExternalError{Message: message, Span: span}, Kind: kind}
}

// --- 2. Parse errors -------------------------------------------------------

type ParseErrorKind uint8

const (
	UnexpectedToken ParseErrorKind = iota
	ExpectedOneOf
	EmptyDocument
	DepthLimitExceeded
)

func (k ParseErrorKind) String() string {
	switch k {
	case UnexpectedToken:
		return "UnexpectedToken"
	case ExpectedOneOf:
		return "ExpectedOneOf"
	case EmptyDocument:
		return "EmptyDocument"
	case DepthLimitExceeded:
		return "DepthLimitExceeded"
	default:
		return "UnknownParseError"
	}
}

type ParseError struct {
	ExternalError
	Kind ParseErrorKind
}

func NewParseError(kind ParseErrorKind, span position.Span, message string) ParseError {
	return ParseError{ExternalError: ExternalError{Message: message, Span: span}, Kind: kind}
}

// --- 3. Resolution errors ---------------------------------------------------

type ResolutionErrorKind uint8

const (
	DuplicateTypeDefinitions ResolutionErrorKind = iota
	DuplicateDirectiveDefinitions
	ReferencedTypeDoesNotExist
	ReferencedTypeIsNotAnOutputType
	ReferencedTypeIsNotAnInputType
	ReferencedUnionMemberTypeIsNotAnObject
	ReferencedTypeIsNotAnInterface
	DuplicateExplicitSchemaDefinitions
	DuplicateExplicitRootOperationDefinitions
	ExplicitRootOperationTypeNotAnObject
	ExplicitRootOperationTypeDoesNotExist
	ExplicitSchemaDefinitionMissingQuery
	ImplicitSchemaDefinitionMissingQuery
	ImplicitRootOperationTypeNotAnObject
	NoSchemaDefinition
	ReservedIntrospectionTypeName
)

func (k ResolutionErrorKind) String() string {
	names := [...]string{
		"DuplicateTypeDefinitions",
		"DuplicateDirectiveDefinitions",
		"ReferencedTypeDoesNotExist",
		"ReferencedTypeIsNotAnOutputType",
		"ReferencedTypeIsNotAnInputType",
		"ReferencedUnionMemberTypeIsNotAnObject",
		"ReferencedTypeIsNotAnInterface",
		"DuplicateExplicitSchemaDefinitions",
		"DuplicateExplicitRootOperationDefinitions",
		"ExplicitRootOperationTypeNotAnObject",
		"ExplicitRootOperationTypeDoesNotExist",
		"ExplicitSchemaDefinitionMissingQuery",
		"ImplicitSchemaDefinitionMissingQuery",
		"ImplicitRootOperationTypeNotAnObject",
		"NoSchemaDefinition",
		"ReservedIntrospectionTypeName",
	}
	if int(k) < len(names) {
		return names[k]
	}
	return "UnknownResolutionError"
}

type ResolutionError struct {
	ExternalError
	Kind ResolutionErrorKind
	Name string
}

func NewResolutionError(kind ResolutionErrorKind, span position.Span, name, message string) ResolutionError {
	return ResolutionError{ExternalError: ExternalError{Message: message, Span: span}, Kind: kind, Name: name}
}

// --- 4. Schema-validation errors --------------------------------------------

type SchemaValidationErrorKind uint8

const (
	DuplicateInputValueName SchemaValidationErrorKind = iota
	DuplicateEnumValueName
	InputObjectTypeDefinitionCircularReferences
)

func (k SchemaValidationErrorKind) String() string {
	switch k {
	case DuplicateInputValueName:
		return "DuplicateInputValueName"
	case DuplicateEnumValueName:
		return "DuplicateEnumValueName"
	case InputObjectTypeDefinitionCircularReferences:
		return "InputObjectTypeDefinitionCircularReferences"
	default:
		return "UnknownSchemaValidationError"
	}
}

type SchemaValidationError struct {
	ExternalError
	Kind SchemaValidationErrorKind
	// Cycle records the sequence of field references forming the cycle, for
	// InputObjectTypeDefinitionCircularReferences.
	Cycle []string
}

func NewSchemaValidationError(kind SchemaValidationErrorKind, span position.Span, message string) SchemaValidationError {
	return SchemaValidationError{ExternalError: ExternalError{Message: message, Span: span}, Kind: kind}
}

// --- 5. Executable-validation errors -----------------------------------------

type ExecutableValidationErrorKind uint8

const (
	FieldDoesNotExist ExecutableValidationErrorKind = iota
	LeafFieldSelectionInvalid
	DuplicateArgumentName
	UnknownArgument
	MissingRequiredArgument
	ArgumentValueInvalid
	DuplicateVariableName
	VariableNotInputType
	VariableDefaultValueInvalid
	UnusedVariable
	UndefinedVariable
	VariableUsageNotAllowed
	DuplicateFragmentName
	FragmentTargetTypeDoesNotExist
	FragmentTargetTypeNotComposite
	UnusedFragment
	FragmentSpreadCycle
	FragmentSpreadNotPossible
	UnknownDirective
	DirectiveNotAllowedAtLocation
	DuplicateNonRepeatableDirective
	DuplicateOperationName
	MultipleAnonymousOperations
	SubscriptionMustSelectOneRootField
)

func (k ExecutableValidationErrorKind) String() string {
	names := [...]string{
		"FieldDoesNotExist",
		"LeafFieldSelectionInvalid",
		"DuplicateArgumentName",
		"UnknownArgument",
		"MissingRequiredArgument",
		"ArgumentValueInvalid",
		"DuplicateVariableName",
		"VariableNotInputType",
		"VariableDefaultValueInvalid",
		"UnusedVariable",
		"UndefinedVariable",
		"VariableUsageNotAllowed",
		"DuplicateFragmentName",
		"FragmentTargetTypeDoesNotExist",
		"FragmentTargetTypeNotComposite",
		"UnusedFragment",
		"FragmentSpreadCycle",
		"FragmentSpreadNotPossible",
		"UnknownDirective",
		"DirectiveNotAllowedAtLocation",
		"DuplicateNonRepeatableDirective",
		"DuplicateOperationName",
		"MultipleAnonymousOperations",
		"SubscriptionMustSelectOneRootField",
	}
	if int(k) < len(names) {
		return names[k]
	}
	return "UnknownExecutableValidationError"
}

type ExecutableValidationError struct {
	ExternalError
	Kind ExecutableValidationErrorKind
	Rule string
}

func NewExecutableValidationError(kind ExecutableValidationErrorKind, rule string, span position.Span, message string) ExecutableValidationError {
	return ExecutableValidationError{ExternalError: ExternalError{Message: message, Span: span}, Kind: kind, Rule: rule}
}

// --- 6. Coercion errors ------------------------------------------------------

// PathSegment is one element of a coercion error's location path: either a
// field name or a list index. Modeled as a small persistent stack (Parent
// pointer) so deep nesting does not allocate per frame beyond the single
// segment being pushed.
type PathSegment struct {
	Field  string
	Index  int
	IsField bool
	Parent *PathSegment
}

// Path renders the segment chain as a slice of segments, root first.
func (p *PathSegment) Path() []PathSegment {
	if p == nil {
		return nil
	}
	var rev []PathSegment
	for cur := p; cur != nil; cur = cur.Parent {
		rev = append(rev, *cur)
	}
	out := make([]PathSegment, len(rev))
	for i, seg := range rev {
		out[len(rev)-1-i] = seg
	}
	return out
}

func (p *PathSegment) String() string {
	var b []byte
	for _, seg := range p.Path() {
		if seg.IsField {
			b = append(b, '.')
			b = append(b, seg.Field...)
		} else {
			b = append(b, '[')
			b = append(b, []byte(fmt.Sprintf("%d", seg.Index))...)
			b = append(b, ']')
		}
	}
	return string(b)
}

// PushField returns a new path with a field segment appended.
func (p *PathSegment) PushField(name string) *PathSegment {
	return &PathSegment{Field: name, IsField: true, Parent: p}
}

// PushIndex returns a new path with a list-index segment appended.
func (p *PathSegment) PushIndex(i int) *PathSegment {
	return &PathSegment{Index: i, IsField: false, Parent: p}
}

type CoercionErrorKind uint8

const (
	CoercionNullNotAllowed CoercionErrorKind = iota
	CoercionWrongScalarType
	CoercionCustomScalarRejected
	CoercionEnumValueUnknown
	CoercionNotAnObject
	CoercionDuplicateObjectKey
	CoercionUnknownObjectKey
	CoercionMissingRequiredField
	CoercionOneOfNotExactlyOneField
	CoercionOneOfNullValue
)

func (k CoercionErrorKind) String() string {
	names := [...]string{
		"CoercionNullNotAllowed",
		"CoercionWrongScalarType",
		"CoercionCustomScalarRejected",
		"CoercionEnumValueUnknown",
		"CoercionNotAnObject",
		"CoercionDuplicateObjectKey",
		"CoercionUnknownObjectKey",
		"CoercionMissingRequiredField",
		"CoercionOneOfNotExactlyOneField",
		"CoercionOneOfNullValue",
	}
	if int(k) < len(names) {
		return names[k]
	}
	return "UnknownCoercionError"
}

type CoercionError struct {
	ExternalError
	Kind         CoercionErrorKind
	Path         *PathSegment
	ExpectedType string
}

func NewCoercionError(kind CoercionErrorKind, span position.Span, path *PathSegment, expectedType, message string) CoercionError {
	return CoercionError{
		ExternalError: ExternalError{Message: message, Span: span},
		Kind:          kind,
		Path:          path,
		ExpectedType:  expectedType,
	}
}

func (e CoercionError) Error() string {
	if e.Path == nil {
		return fmt.Sprintf("%s (expected %s)", e.Message, e.ExpectedType)
	}
	return fmt.Sprintf("%s%s: %s (expected %s)", "$", e.Path.String(), e.Message, e.ExpectedType)
}
