// Package coercion coerces a literal AST value against a declared input
// type, producing a structured path-carrying error on failure. The
// persistent-stack path (operationreport.PathSegment) avoids a per-frame
// allocation on deep nesting.
package coercion

import (
	"github.com/graphql-toolkit/core/pkg/ast"
	"github.com/graphql-toolkit/core/pkg/operationreport"
	"github.com/graphql-toolkit/core/pkg/schema"
)

// CustomScalarValidator is the host-provided hook for custom scalar
// literals: ok is true when the literal is acceptable; message is used as
// the error text when ok is false.
type CustomScalarValidator func(scalarName string, value *ast.Value) (ok bool, message string)

// Coercer coerces literal values against a resolved schema's input types.
type Coercer struct {
	Schema *schema.Schema

	// CustomScalar validates literals against non-built-in scalars. A nil
	// CustomScalar accepts every literal — no host is wired into this
	// standalone library, so the permissive default lets callers that don't
	// care about custom scalar semantics validate everything else.
	CustomScalar CustomScalarValidator

	// AllowEnumFromString permits a String literal to coerce against an enum
	// type when it names a declared value. Off by default (strict
	// Enum-literal-only).
	AllowEnumFromString bool
}

// NewCoercer creates a Coercer over s with defaults (no custom scalar hook,
// strict enum literals).
func NewCoercer(s *schema.Schema) *Coercer {
	return &Coercer{Schema: s}
}

// Coerce validates value against t, recording any error (with its path)
// into report. It returns true on success. A Variable value always
// succeeds here — its runtime-bound value is checked by the variable-usage
// rule (pkg/astvalidation/executablevalidation), not by literal coercion.
func (c *Coercer) Coerce(value *ast.Value, t *ast.TypeRef, path *operationreport.PathSegment, report *operationreport.Report) bool {
	if value.ValueKind == ast.KindVariable {
		return true
	}

	if t.IsNonNull() {
		if value.IsNull() {
			report.AddCoercionError(operationreport.NewCoercionError(
				operationreport.CoercionNullNotAllowed, value.Span, path, t.String(),
				"null is not allowed here",
			))
			return false
		}
		return c.Coerce(value, t.OfType, path, report)
	}

	if value.IsNull() {
		return true
	}

	if t.Kind == ast.TypeRefList {
		if value.ValueKind == ast.KindList {
			ok := true
			for i, elem := range value.ListValue {
				if !c.Coerce(elem, t.OfType, path.PushIndex(i), report) {
					ok = false
				}
			}
			return ok
		}
		return c.Coerce(value, t.OfType, path, report)
	}

	def, bound := t.Definition()
	if !bound {
		return true // unresolved reference; resolution already reported the root cause
	}

	switch d := def.(type) {
	case *ast.ScalarTypeDefinition:
		return c.coerceScalar(d, value, path, report)
	case *ast.EnumTypeDefinition:
		return c.coerceEnum(d, value, path, report)
	case *ast.InputObjectTypeDefinition:
		return c.coerceInputObject(d, value, path, report)
	default:
		return true
	}
}

func (c *Coercer) coerceScalar(s *ast.ScalarTypeDefinition, value *ast.Value, path *operationreport.PathSegment, report *operationreport.Report) bool {
	switch s.Name {
	case "Int":
		if value.ValueKind == ast.KindInteger {
			return true
		}
	case "Float":
		if value.ValueKind == ast.KindInteger || value.ValueKind == ast.KindFloat {
			return true
		}
	case "String":
		if value.ValueKind == ast.KindString {
			return true
		}
	case "Boolean":
		if value.ValueKind == ast.KindBoolean {
			return true
		}
	case "ID":
		if value.ValueKind == ast.KindString || value.ValueKind == ast.KindInteger {
			return true
		}
	default:
		if c.CustomScalar == nil {
			return true
		}
		if ok, msg := c.CustomScalar(s.Name, value); !ok {
			report.AddCoercionError(operationreport.NewCoercionError(
				operationreport.CoercionCustomScalarRejected, value.Span, path, s.Name, msg,
			))
			return false
		}
		return true
	}
	report.AddCoercionError(operationreport.NewCoercionError(
		operationreport.CoercionWrongScalarType, value.Span, path, s.Name,
		"value is not a valid "+s.Name,
	))
	return false
}

func (c *Coercer) coerceEnum(e *ast.EnumTypeDefinition, value *ast.Value, path *operationreport.PathSegment, report *operationreport.Report) bool {
	var name string
	switch {
	case value.ValueKind == ast.KindEnum:
		name = value.EnumValue
	case value.ValueKind == ast.KindString && c.AllowEnumFromString:
		name = value.StringValue
	default:
		report.AddCoercionError(operationreport.NewCoercionError(
			operationreport.CoercionEnumValueUnknown, value.Span, path, e.Name,
			"value is not a valid enum literal for "+e.Name,
		))
		return false
	}
	for _, v := range e.Values {
		if v.Name == name {
			return true
		}
	}
	report.AddCoercionError(operationreport.NewCoercionError(
		operationreport.CoercionEnumValueUnknown, value.Span, path, e.Name,
		"\""+name+"\" is not a value of enum "+e.Name,
	))
	return false
}

func (c *Coercer) coerceInputObject(io *ast.InputObjectTypeDefinition, value *ast.Value, path *operationreport.PathSegment, report *operationreport.Report) bool {
	if value.ValueKind != ast.KindObject {
		report.AddCoercionError(operationreport.NewCoercionError(
			operationreport.CoercionNotAnObject, value.Span, path, io.Name,
			"value is not an object literal",
		))
		return false
	}

	ok := true
	seen := map[string]bool{}
	provided := map[string]*ast.Value{}
	for _, f := range value.ObjectValue {
		if seen[f.Name] {
			report.AddCoercionError(operationreport.NewCoercionError(
				operationreport.CoercionDuplicateObjectKey, value.Span, path.PushField(f.Name), io.Name,
				"duplicate field \""+f.Name+"\"",
			))
			ok = false
			continue
		}
		seen[f.Name] = true
		provided[f.Name] = f.Value

		def, known := io.DefFieldByName(f.Name)
		if !known {
			report.AddCoercionError(operationreport.NewCoercionError(
				operationreport.CoercionUnknownObjectKey, f.Value.Span, path.PushField(f.Name), io.Name,
				"\""+f.Name+"\" is not a field of "+io.Name,
			))
			ok = false
			continue
		}
		if !c.Coerce(f.Value, def.Type, path.PushField(f.Name), report) {
			ok = false
		}
	}

	isOneOf := len(io.Directives.ByName("oneOf")) > 0
	if isOneOf {
		if len(provided) != 1 {
			report.AddCoercionError(operationreport.NewCoercionError(
				operationreport.CoercionOneOfNotExactlyOneField, value.Span, path, io.Name,
				"exactly one field must be provided for a oneOf input object",
			))
			return false
		}
		for _, v := range provided {
			if v.IsNull() {
				report.AddCoercionError(operationreport.NewCoercionError(
					operationreport.CoercionOneOfNullValue, v.Span, path, io.Name,
					"a oneOf input object field must not be null",
				))
				return false
			}
		}
		return ok
	}

	for _, f := range io.Fields {
		if f.IsRequired() && provided[f.Name] == nil {
			report.AddCoercionError(operationreport.NewCoercionError(
				operationreport.CoercionMissingRequiredField, value.Span, path.PushField(f.Name), io.Name,
				"missing required field \""+f.Name+"\"",
			))
			ok = false
		}
	}
	return ok
}
