package astparser

import (
	"github.com/graphql-toolkit/core/pkg/ast"
	"github.com/graphql-toolkit/core/pkg/operationreport"
	"github.com/graphql-toolkit/core/pkg/token"
	"github.com/graphql-toolkit/core/pkg/tokenstream"
)

// parseValue parses a single Value. When constOnly is true, a Variable
// value is rejected with a parse error, checked at the call site rather than
// as a generic type parameter (see the doc comment on ast.ValueKind for why).
func parseValue(s *tokenstream.Stream, report *operationreport.Report, depth int, constOnly bool) (*ast.Value, bool) {
	if depthExceeded(s, report, depth) {
		return nil, false
	}
	cur := s.Current()
	switch cur.Kind {
	case token.KindPunctuator:
		switch cur.Punctuator {
		case token.PunctuatorDollar:
			if constOnly {
				report.AddParseError(operationreport.NewParseError(
					operationreport.UnexpectedToken, cur.Span, "variables are not allowed in a constant context",
				))
				return nil, false
			}
			s.Advance()
			name, ok := s.ExpectName()
			if !ok {
				return nil, false
			}
			return &ast.Value{ValueKind: ast.KindVariable, VariableName: name.Name, Span: cur.Span.Merge(name.Span)}, true
		case token.PunctuatorBracketOpen:
			s.Advance()
			var elems []*ast.Value
			for {
				if _, ok := s.NextIfPunctuator(token.PunctuatorBracketClose); ok {
					return &ast.Value{ValueKind: ast.KindList, ListValue: elems, Span: cur.Span}, true
				}
				v, ok := parseValue(s, report, depth-1, constOnly)
				if !ok {
					return nil, false
				}
				elems = append(elems, v)
			}
		case token.PunctuatorBraceOpen:
			s.Advance()
			var fields []ast.ObjectField
			for {
				if _, ok := s.NextIfPunctuator(token.PunctuatorBraceClose); ok {
					return &ast.Value{ValueKind: ast.KindObject, ObjectValue: fields, Span: cur.Span}, true
				}
				name, ok := s.ExpectName()
				if !ok {
					return nil, false
				}
				if _, ok := s.ExpectPunctuator(token.PunctuatorColon); !ok {
					return nil, false
				}
				v, ok := parseValue(s, report, depth-1, constOnly)
				if !ok {
					return nil, false
				}
				fields = append(fields, ast.ObjectField{Name: name.Name, Value: v})
			}
		default:
			report.AddParseError(operationreport.NewParseError(
				operationreport.UnexpectedToken, cur.Span, "expected a value",
			))
			return nil, false
		}
	case token.KindIntValue:
		s.Advance()
		return &ast.Value{ValueKind: ast.KindInteger, IntValue: cur.IntValue, Span: cur.Span}, true
	case token.KindFloatValue:
		s.Advance()
		return &ast.Value{ValueKind: ast.KindFloat, FloatValue: cur.FloatValue, Span: cur.Span}, true
	case token.KindStringValue:
		s.Advance()
		return &ast.Value{ValueKind: ast.KindString, StringValue: cur.StringValue, Span: cur.Span}, true
	case token.KindName:
		switch cur.Name {
		case "true":
			s.Advance()
			return &ast.Value{ValueKind: ast.KindBoolean, BooleanValue: true, Span: cur.Span}, true
		case "false":
			s.Advance()
			return &ast.Value{ValueKind: ast.KindBoolean, BooleanValue: false, Span: cur.Span}, true
		case "null":
			s.Advance()
			return &ast.Value{ValueKind: ast.KindNull, Span: cur.Span}, true
		default:
			s.Advance()
			return &ast.Value{ValueKind: ast.KindEnum, EnumValue: cur.Name, Span: cur.Span}, true
		}
	default:
		report.AddParseError(operationreport.NewParseError(
			operationreport.UnexpectedToken, cur.Span, "expected a value",
		))
		return nil, false
	}
}
