package astparser

import (
	"github.com/jensneuse/abstractlogger"

	"github.com/graphql-toolkit/core/pkg/ast"
	"github.com/graphql-toolkit/core/pkg/operationreport"
	"github.com/graphql-toolkit/core/pkg/token"
	"github.com/graphql-toolkit/core/pkg/tokenstream"
)

// ExecutableParser parses an executable (query) document into an
// ast.ExecutableDocument. It mirrors SchemaParser's recovery strategy
// (consecutive-failure avalanche suppression, boundary skipping).
type ExecutableParser struct {
	s      *tokenstream.Stream
	report *operationreport.Report
	doc    *ast.ExecutableDocument
	logger abstractlogger.Logger

	lastPassFailed bool
}

// NewExecutableParser creates a parser over source. Scan/parse errors
// accumulate into report.
func NewExecutableParser(source string, report *operationreport.Report, opts ...Option) *ExecutableParser {
	o := buildParserOptions(opts)
	return &ExecutableParser{
		s:      tokenstream.New(source, report),
		report: report,
		doc:    ast.NewExecutableDocument(source),
		logger: o.logger,
	}
}

// Parse runs the top-level definition loop and returns the resulting
// document. The caller should check report.HasLexOrParseErrors before
// trusting the result.
func (p *ExecutableParser) Parse() *ast.ExecutableDocument {
	p.logger.Debug("executable parse starting")
	sawAnyDefinition := false

	for p.s.Current().Kind != token.KindEOF {
		before := len(p.report.ParseErrors)
		ok := p.parseTopLevelDefinition()
		sawAnyDefinition = sawAnyDefinition || ok
		if !ok {
			if p.lastPassFailed {
				p.report.ParseErrors = p.report.ParseErrors[:before]
			}
			p.lastPassFailed = true
			p.s.SkipToNextDefinitionBoundary()
		} else {
			p.lastPassFailed = false
		}
	}

	if !sawAnyDefinition && !p.report.HasLexOrParseErrors() {
		p.report.AddParseError(operationreport.NewParseError(
			operationreport.EmptyDocument, p.s.Current().Span, "document contains no definitions",
		))
	}

	p.logger.Debug("executable parse complete", abstractlogger.Int("operations", len(p.doc.Operations)))
	return p.doc
}

func (p *ExecutableParser) parseTopLevelDefinition() bool {
	cur := p.s.Current()

	// An implicit anonymous query is a bare selection set: `{ ... }`.
	if cur.Kind == token.KindPunctuator && cur.Punctuator == token.PunctuatorBraceOpen {
		return p.parseOperationDefinition("")
	}

	if cur.Kind != token.KindName {
		p.report.AddParseError(operationreport.NewParseError(
			operationreport.ExpectedOneOf, cur.Span, "expected query, mutation, subscription, fragment, or a selection set",
		))
		return false
	}

	switch cur.Name {
	case "query", "mutation", "subscription":
		return p.parseOperationDefinition(cur.Name)
	case "fragment":
		return p.parseFragmentDefinition()
	default:
		p.report.AddParseError(operationreport.NewParseError(
			operationreport.ExpectedOneOf, cur.Span, "expected query, mutation, subscription, fragment, or a selection set",
		))
		return false
	}
}

func (p *ExecutableParser) parseOperationDefinition(keyword string) bool {
	start := p.s.Current().Span
	opType := ast.OperationTypeQuery

	if keyword != "" {
		p.s.Advance()
		switch keyword {
		case "mutation":
			opType = ast.OperationTypeMutation
		case "subscription":
			opType = ast.OperationTypeSubscription
		}
	}

	var name string
	if keyword != "" {
		if cur := p.s.Current(); cur.Kind == token.KindName {
			name = cur.Name
			p.s.Advance()
		}
	}

	var varDefs []*ast.VariableDefinition
	if keyword != "" {
		var ok bool
		varDefs, ok = p.parseVariableDefinitions()
		if !ok {
			return false
		}
	}

	directives, ok := parseDirectives(p.s, p.report, MaxDepth)
	if !ok {
		return false
	}

	set, ok := p.parseSelectionSet(MaxDepth)
	if !ok {
		return false
	}

	p.doc.Operations = append(p.doc.Operations, &ast.OperationDefinition{
		ID:                  start,
		OperationType:       opType,
		Name:                name,
		VariableDefinitions: varDefs,
		Directives:          directives,
		SelectionSet:        set,
		Span:                start.Merge(set.Span),
	})
	return true
}

func (p *ExecutableParser) parseVariableDefinitions() ([]*ast.VariableDefinition, bool) {
	if _, ok := p.s.NextIfPunctuator(token.PunctuatorParenOpen); !ok {
		return nil, true
	}
	var defs []*ast.VariableDefinition
	for {
		if _, ok := p.s.NextIfPunctuator(token.PunctuatorParenClose); ok {
			return defs, true
		}
		if _, ok := p.s.ExpectPunctuator(token.PunctuatorDollar); !ok {
			return nil, false
		}
		name, ok := p.s.ExpectName()
		if !ok {
			return nil, false
		}
		if _, ok := p.s.ExpectPunctuator(token.PunctuatorColon); !ok {
			return nil, false
		}
		typ, ok := parseTypeRef(p.s, p.report, MaxDepth)
		if !ok {
			return nil, false
		}
		var def *ast.Value
		if _, ok := p.s.NextIfPunctuator(token.PunctuatorEquals); ok {
			def, ok = parseValue(p.s, p.report, MaxDepth, true)
			if !ok {
				return nil, false
			}
		}
		directives, ok := parseDirectives(p.s, p.report, MaxDepth)
		if !ok {
			return nil, false
		}
		defs = append(defs, &ast.VariableDefinition{
			Name:         name.Name,
			Type:         typ,
			DefaultValue: def,
			Directives:   directives,
			Span:         name.Span,
		})
	}
}

func (p *ExecutableParser) parseFragmentDefinition() bool {
	start := p.s.Current().Span
	p.s.Advance() // 'fragment'

	name, ok := p.s.ExpectName()
	if !ok {
		return false
	}
	if name.Name == "on" {
		p.report.AddParseError(operationreport.NewParseError(
			operationreport.UnexpectedToken, name.Span, "fragment name must not be 'on'",
		))
		return false
	}
	if _, ok := p.s.ExpectNameValue("on"); !ok {
		return false
	}
	typeCondition, ok := p.s.ExpectName()
	if !ok {
		return false
	}
	directives, ok := parseDirectives(p.s, p.report, MaxDepth)
	if !ok {
		return false
	}
	set, ok := p.parseSelectionSet(MaxDepth)
	if !ok {
		return false
	}
	p.doc.Fragments = append(p.doc.Fragments, &ast.FragmentDefinition{
		Name:          name.Name,
		TypeCondition: typeCondition.Name,
		Directives:    directives,
		SelectionSet:  set,
		Span:          start.Merge(set.Span),
	})
	return true
}

func (p *ExecutableParser) parseSelectionSet(depth int) (*ast.SelectionSet, bool) {
	if depthExceeded(p.s, p.report, depth) {
		return nil, false
	}
	open, ok := p.s.ExpectPunctuator(token.PunctuatorBraceOpen)
	if !ok {
		return nil, false
	}
	var selections []*ast.Selection
	for {
		if close, ok := p.s.NextIfPunctuator(token.PunctuatorBraceClose); ok {
			return &ast.SelectionSet{Selections: selections, Span: open.Span.Merge(close.Span)}, true
		}
		sel, ok := p.parseSelection(depth - 1)
		if !ok {
			return nil, false
		}
		selections = append(selections, sel)
	}
}

func (p *ExecutableParser) parseSelection(depth int) (*ast.Selection, bool) {
	cur := p.s.Current()
	if cur.Kind == token.KindPunctuator && cur.Punctuator == token.PunctuatorSpread {
		return p.parseFragmentSelection(depth)
	}
	return p.parseFieldSelection(depth)
}

func (p *ExecutableParser) parseFieldSelection(depth int) (*ast.Selection, bool) {
	first, ok := p.s.ExpectName()
	if !ok {
		return nil, false
	}
	alias := ""
	name := first
	if _, ok := p.s.NextIfPunctuator(token.PunctuatorColon); ok {
		alias = first.Name
		name, ok = p.s.ExpectName()
		if !ok {
			return nil, false
		}
	}
	args, ok := parseArguments(p.s, p.report, depth-1)
	if !ok {
		return nil, false
	}
	directives, ok := parseDirectives(p.s, p.report, depth-1)
	if !ok {
		return nil, false
	}
	var set *ast.SelectionSet
	if cur := p.s.Current(); cur.Kind == token.KindPunctuator && cur.Punctuator == token.PunctuatorBraceOpen {
		set, ok = p.parseSelectionSet(depth - 1)
		if !ok {
			return nil, false
		}
	}
	span := first.Span
	if set != nil {
		span = span.Merge(set.Span)
	}
	return &ast.Selection{
		Kind: ast.SelectionField,
		Field: &ast.Field{
			Alias:        alias,
			Name:         name.Name,
			Arguments:    args,
			Directives:   directives,
			SelectionSet: set,
			Span:         span,
		},
	}, true
}

func (p *ExecutableParser) parseFragmentSelection(depth int) (*ast.Selection, bool) {
	spread := p.s.Current()
	p.s.Advance() // '...'

	if n, ok := p.s.PeekName(0); ok && n == "on" {
		p.s.Advance() // 'on'
		typeCondition, ok := p.s.ExpectName()
		if !ok {
			return nil, false
		}
		directives, ok := parseDirectives(p.s, p.report, depth-1)
		if !ok {
			return nil, false
		}
		set, ok := p.parseSelectionSet(depth - 1)
		if !ok {
			return nil, false
		}
		return &ast.Selection{
			Kind: ast.SelectionInlineFragment,
			InlineFragment: &ast.InlineFragment{
				TypeCondition: typeCondition.Name,
				Directives:    directives,
				SelectionSet:  set,
				Span:          spread.Span.Merge(set.Span),
			},
		}, true
	}

	// An inline fragment may also omit the type condition entirely.
	if cur := p.s.Current(); cur.Kind == token.KindPunctuator && cur.Punctuator == token.PunctuatorAt {
		directives, ok := parseDirectives(p.s, p.report, depth-1)
		if !ok {
			return nil, false
		}
		set, ok := p.parseSelectionSet(depth - 1)
		if !ok {
			return nil, false
		}
		return &ast.Selection{
			Kind: ast.SelectionInlineFragment,
			InlineFragment: &ast.InlineFragment{
				Directives:   directives,
				SelectionSet: set,
				Span:         spread.Span.Merge(set.Span),
			},
		}, true
	}
	if cur := p.s.Current(); cur.Kind == token.KindPunctuator && cur.Punctuator == token.PunctuatorBraceOpen {
		set, ok := p.parseSelectionSet(depth - 1)
		if !ok {
			return nil, false
		}
		return &ast.Selection{
			Kind: ast.SelectionInlineFragment,
			InlineFragment: &ast.InlineFragment{
				SelectionSet: set,
				Span:         spread.Span.Merge(set.Span),
			},
		}, true
	}

	fragmentName, ok := p.s.ExpectName()
	if !ok {
		return nil, false
	}
	directives, ok := parseDirectives(p.s, p.report, depth-1)
	if !ok {
		return nil, false
	}
	return &ast.Selection{
		Kind: ast.SelectionFragmentSpread,
		FragmentSpread: &ast.FragmentSpread{
			FragmentName: fragmentName.Name,
			Directives:   directives,
			Span:         spread.Span.Merge(fragmentName.Span),
		},
	}, true
}
