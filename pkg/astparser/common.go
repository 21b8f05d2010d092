package astparser

import (
	"github.com/graphql-toolkit/core/pkg/ast"
	"github.com/graphql-toolkit/core/pkg/operationreport"
	"github.com/graphql-toolkit/core/pkg/token"
	"github.com/graphql-toolkit/core/pkg/tokenstream"
)

func depthExceeded(s *tokenstream.Stream, report *operationreport.Report, depth int) bool {
	if depth <= 0 {
		report.AddParseError(operationreport.NewParseError(
			operationreport.DepthLimitExceeded, s.Current().Span, "maximum nesting depth exceeded",
		))
		return true
	}
	return false
}

// --- directives --------------------------------------------------------

func (p *SchemaParser) parseDirectives(depth int) (ast.DirectiveList, bool) {
	return parseDirectives(p.s, p.report, depth)
}

func parseDirectives(s *tokenstream.Stream, report *operationreport.Report, depth int) (ast.DirectiveList, bool) {
	var list ast.DirectiveList
	for {
		cur := s.Current()
		if cur.Kind != token.KindPunctuator || cur.Punctuator != token.PunctuatorAt {
			return list, true
		}
		if depthExceeded(s, report, depth) {
			return list, false
		}
		s.Advance()
		name, ok := s.ExpectName()
		if !ok {
			return list, false
		}
		args, ok := parseArguments(s, report, depth-1)
		if !ok {
			return list, false
		}
		list.Directives = append(list.Directives, &ast.Directive{
			Name:      name.Name,
			Arguments: args,
			Span:      name.Span,
		})
	}
}

// --- arguments -----------------------------------------------------------

func parseArguments(s *tokenstream.Stream, report *operationreport.Report, depth int) (ast.ArgumentList, bool) {
	var list ast.ArgumentList
	cur := s.Current()
	if cur.Kind != token.KindPunctuator || cur.Punctuator != token.PunctuatorParenOpen {
		return list, true
	}
	s.Advance()
	for {
		if _, ok := s.NextIfPunctuator(token.PunctuatorParenClose); ok {
			return list, true
		}
		name, ok := s.ExpectName()
		if !ok {
			return list, false
		}
		if _, ok := s.ExpectPunctuator(token.PunctuatorColon); !ok {
			return list, false
		}
		val, ok := parseValue(s, report, depth-1, false)
		if !ok {
			return list, false
		}
		list.Args = append(list.Args, &ast.Argument{Name: name.Name, Value: val, Span: name.Span})
	}
}

// --- input value definitions (arguments / input-object fields) -----------

func (p *SchemaParser) parseInputValueDefinition(depth int) (*ast.InputValueDefinition, bool) {
	return parseInputValueDefinition(p.s, p.report, depth)
}

func parseInputValueDefinition(s *tokenstream.Stream, report *operationreport.Report, depth int) (*ast.InputValueDefinition, bool) {
	if depthExceeded(s, report, depth) {
		return nil, false
	}
	var description *string
	if str, ok := s.PeekStringValue(0); ok {
		description = &str
		s.Advance()
	}
	name, ok := s.ExpectName()
	if !ok {
		return nil, false
	}
	if _, ok := s.ExpectPunctuator(token.PunctuatorColon); !ok {
		return nil, false
	}
	typ, ok := parseTypeRef(s, report, depth-1)
	if !ok {
		return nil, false
	}
	var def *ast.Value
	if _, ok := s.NextIfPunctuator(token.PunctuatorEquals); ok {
		def, ok = parseValue(s, report, depth-1, true)
		if !ok {
			return nil, false
		}
	}
	directives, ok := parseDirectives(s, report, depth-1)
	if !ok {
		return nil, false
	}
	return &ast.InputValueDefinition{
		Name:         name.Name,
		Description:  description,
		Type:         typ,
		DefaultValue: def,
		Directives:   directives,
		Span:         name.Span,
	}, true
}

// --- fields definition -----------------------------------------------------

func (p *SchemaParser) parseFieldsDefinition(depth int) ([]*ast.FieldDefinition, bool) {
	var fields []*ast.FieldDefinition
	if _, ok := p.s.NextIfPunctuator(token.PunctuatorBraceOpen); !ok {
		return nil, true // fields block is optional (e.g. empty interface extension points)
	}
	for {
		if _, ok := p.s.NextIfPunctuator(token.PunctuatorBraceClose); ok {
			return fields, true
		}
		f, ok := p.parseFieldDefinition(depth)
		if !ok {
			return nil, false
		}
		fields = append(fields, f)
	}
}

func (p *SchemaParser) parseFieldDefinition(depth int) (*ast.FieldDefinition, bool) {
	if depthExceeded(p.s, p.report, depth) {
		return nil, false
	}
	var description *string
	if str, ok := p.s.PeekStringValue(0); ok {
		description = &str
		p.s.Advance()
	}
	name, ok := p.s.ExpectName()
	if !ok {
		return nil, false
	}
	var args []*ast.InputValueDefinition
	if cur := p.s.Current(); cur.Kind == token.KindPunctuator && cur.Punctuator == token.PunctuatorParenOpen {
		p.s.Advance()
		for {
			if _, ok := p.s.NextIfPunctuator(token.PunctuatorParenClose); ok {
				break
			}
			a, ok := p.parseInputValueDefinition(depth - 1)
			if !ok {
				return nil, false
			}
			args = append(args, a)
		}
	}
	if _, ok := p.s.ExpectPunctuator(token.PunctuatorColon); !ok {
		return nil, false
	}
	typ, ok := parseTypeRef(p.s, p.report, depth-1)
	if !ok {
		return nil, false
	}
	directives, ok := p.parseDirectives(depth - 1)
	if !ok {
		return nil, false
	}
	return &ast.FieldDefinition{
		Name:        name.Name,
		Description: description,
		Arguments:   args,
		Type:        typ,
		Directives:  directives,
		Span:        name.Span,
	}, true
}

// --- type references -------------------------------------------------------

func parseTypeRef(s *tokenstream.Stream, report *operationreport.Report, depth int) (*ast.TypeRef, bool) {
	if depthExceeded(s, report, depth) {
		return nil, false
	}
	var inner *ast.TypeRef
	cur := s.Current()
	switch {
	case cur.Kind == token.KindPunctuator && cur.Punctuator == token.PunctuatorBracketOpen:
		s.Advance()
		elem, ok := parseTypeRef(s, report, depth-1)
		if !ok {
			return nil, false
		}
		if _, ok := s.ExpectPunctuator(token.PunctuatorBracketClose); !ok {
			return nil, false
		}
		inner = ast.ListTypeRef(elem, cur.Span)
	case cur.Kind == token.KindName:
		s.Advance()
		inner = ast.NamedTypeRef(cur.Name, cur.Span)
	default:
		report.AddParseError(operationreport.NewParseError(
			operationreport.UnexpectedToken, cur.Span, "expected a type reference",
		))
		return nil, false
	}

	if bang, ok := s.NextIfPunctuator(token.PunctuatorBang); ok {
		return ast.NonNullTypeRef(inner, bang.Span), true
	}
	return inner, true
}
