// Package astparser implements the recursive-descent parsers for
// schema-definition documents and executable documents, sharing a depth
// limiter and the pkg/tokenstream adapter.
package astparser

import (
	"github.com/jensneuse/abstractlogger"

	"github.com/graphql-toolkit/core/pkg/ast"
	"github.com/graphql-toolkit/core/pkg/logging"
	"github.com/graphql-toolkit/core/pkg/operationreport"
	"github.com/graphql-toolkit/core/pkg/token"
	"github.com/graphql-toolkit/core/pkg/tokenstream"
)

// MaxDepth bounds recursive production nesting: the sole defense against
// adversarial inputs that could blow the stack.
const MaxDepth = 64

// Option configures a parser constructor. Shared between SchemaParser and
// ExecutableParser so callers write the same WithLogger regardless of which
// document kind they parse.
type Option func(*parserOptions)

type parserOptions struct {
	logger abstractlogger.Logger
}

// WithLogger routes a parser's entry/exit debug logs to logger instead of
// the default no-op.
func WithLogger(logger abstractlogger.Logger) Option {
	return func(o *parserOptions) { o.logger = logger }
}

func buildParserOptions(opts []Option) parserOptions {
	o := parserOptions{logger: logging.Noop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// SchemaParser parses a schema-definition document into an ast.Document
// whose type references are unbound until pkg/astresolve runs.
type SchemaParser struct {
	s      *tokenstream.Stream
	report *operationreport.Report
	doc    *ast.Document
	logger abstractlogger.Logger

	lastPassFailed bool
}

// NewSchemaParser creates a parser over source. Scan/parse errors accumulate
// into report.
func NewSchemaParser(source string, report *operationreport.Report, opts ...Option) *SchemaParser {
	o := buildParserOptions(opts)
	return &SchemaParser{
		s:      tokenstream.New(source, report),
		report: report,
		doc:    ast.NewDocument(source),
		logger: o.logger,
	}
}

// Parse runs the top-level definition loop, injects built-ins, and returns
// the resulting document. The caller should check report.HasLexOrParseErrors
// before trusting the result.
func (p *SchemaParser) Parse() *ast.Document {
	p.logger.Debug("schema parse starting")
	sawAnyDefinition := false

	for p.s.Current().Kind != token.KindEOF {
		before := len(p.report.ParseErrors)
		ok := p.parseTopLevelDefinition()
		sawAnyDefinition = sawAnyDefinition || ok
		if !ok {
			if p.lastPassFailed {
				// Consecutive failure: suppress the avalanche, keep only
				// the first pass's error.
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

	InjectBuiltins(p.doc)
	p.logger.Debug("schema parse complete", abstractlogger.Int("objects", len(p.doc.Objects)))
	return p.doc
}

func (p *SchemaParser) parseTopLevelDefinition() bool {
	var description *string
	if s, ok := p.s.PeekStringValue(0); ok {
		description = &s
		p.s.Advance()
	}

	name, ok := p.s.ExpectName()
	if !ok {
		return false
	}

	switch name.Name {
	case "scalar":
		return p.parseScalarTypeDefinition(description)
	case "type":
		return p.parseObjectTypeDefinition(description)
	case "interface":
		return p.parseInterfaceTypeDefinition(description)
	case "union":
		return p.parseUnionTypeDefinition(description)
	case "enum":
		return p.parseEnumTypeDefinition(description)
	case "input":
		return p.parseInputObjectTypeDefinition(description)
	case "schema":
		return p.parseSchemaBlock(description)
	case "directive":
		return p.parseDirectiveDefinition(description)
	default:
		p.report.AddParseError(operationreport.NewParseError(
			operationreport.ExpectedOneOf, name.Span,
			"expected one of scalar, type, interface, union, enum, input, schema, directive",
		))
		return false
	}
}

func (p *SchemaParser) parseScalarTypeDefinition(description *string) bool {
	name, ok := p.s.ExpectName()
	if !ok {
		return false
	}
	directives, ok := p.parseDirectives(MaxDepth)
	if !ok {
		return false
	}
	scalar := &ast.ScalarTypeDefinition{
		CommonDef: ast.CommonDef{Name: name.Name, Description: description, Directives: directives, Span: name.Span},
	}
	for _, d := range directives.ByName("specifiedBy") {
		if arg, ok := d.Arguments.ByName("url"); ok && arg.Value.ValueKind == ast.KindString {
			url := arg.Value.StringValue
			scalar.SpecifiedByURL = &url
		}
	}
	p.doc.Scalars = append(p.doc.Scalars, scalar)
	return true
}

func (p *SchemaParser) parseObjectTypeDefinition(description *string) bool {
	name, ok := p.s.ExpectName()
	if !ok {
		return false
	}
	var interfaces []*ast.TypeRef
	if n, ok := p.s.PeekName(0); ok && n == "implements" {
		p.s.Advance()
		for {
			p.s.NextIfPunctuator(token.PunctuatorAmp)
			itName, ok := p.s.ExpectName()
			if !ok {
				return false
			}
			interfaces = append(interfaces, ast.NamedTypeRef(itName.Name, itName.Span))
			if cur := p.s.Current(); cur.Kind == token.KindPunctuator && cur.Punctuator == token.PunctuatorAmp {
				continue
			}
			break
		}
	}
	directives, ok := p.parseDirectives(MaxDepth)
	if !ok {
		return false
	}
	fields, ok := p.parseFieldsDefinition(MaxDepth)
	if !ok {
		return false
	}
	p.doc.Objects = append(p.doc.Objects, &ast.ObjectTypeDefinition{
		CommonDef:  ast.CommonDef{Name: name.Name, Description: description, Directives: directives, Span: name.Span},
		Interfaces: interfaces,
		Fields:     fields,
	})
	return true
}

func (p *SchemaParser) parseInterfaceTypeDefinition(description *string) bool {
	name, ok := p.s.ExpectName()
	if !ok {
		return false
	}
	directives, ok := p.parseDirectives(MaxDepth)
	if !ok {
		return false
	}
	fields, ok := p.parseFieldsDefinition(MaxDepth)
	if !ok {
		return false
	}
	p.doc.Interfaces = append(p.doc.Interfaces, &ast.InterfaceTypeDefinition{
		CommonDef: ast.CommonDef{Name: name.Name, Description: description, Directives: directives, Span: name.Span},
		Fields:    fields,
	})
	return true
}

func (p *SchemaParser) parseUnionTypeDefinition(description *string) bool {
	name, ok := p.s.ExpectName()
	if !ok {
		return false
	}
	directives, ok := p.parseDirectives(MaxDepth)
	if !ok {
		return false
	}
	var members []*ast.TypeRef
	if _, ok := p.s.ExpectPunctuator(token.PunctuatorEquals); ok {
		p.s.NextIfPunctuator(token.PunctuatorPipe)
		for {
			mName, ok := p.s.ExpectName()
			if !ok {
				return false
			}
			members = append(members, ast.NamedTypeRef(mName.Name, mName.Span))
			if _, ok := p.s.NextIfPunctuator(token.PunctuatorPipe); ok {
				continue
			}
			break
		}
	}
	p.doc.Unions = append(p.doc.Unions, &ast.UnionTypeDefinition{
		CommonDef: ast.CommonDef{Name: name.Name, Description: description, Directives: directives, Span: name.Span},
		Members:   members,
	})
	return true
}

func (p *SchemaParser) parseEnumTypeDefinition(description *string) bool {
	name, ok := p.s.ExpectName()
	if !ok {
		return false
	}
	directives, ok := p.parseDirectives(MaxDepth)
	if !ok {
		return false
	}
	var values []*ast.EnumValueDefinition
	if _, ok := p.s.NextIfPunctuator(token.PunctuatorBraceOpen); ok {
		for {
			if _, ok := p.s.NextIfPunctuator(token.PunctuatorBraceClose); ok {
				break
			}
			var valDesc *string
			if s, ok := p.s.PeekStringValue(0); ok {
				valDesc = &s
				p.s.Advance()
			}
			valName, ok := p.s.ExpectName()
			if !ok {
				return false
			}
			valDirectives, ok := p.parseDirectives(MaxDepth)
			if !ok {
				return false
			}
			values = append(values, &ast.EnumValueDefinition{
				Name:        valName.Name,
				Description: valDesc,
				Directives:  valDirectives,
				Span:        valName.Span,
			})
		}
	}
	p.doc.Enums = append(p.doc.Enums, &ast.EnumTypeDefinition{
		CommonDef: ast.CommonDef{Name: name.Name, Description: description, Directives: directives, Span: name.Span},
		Values:    values,
	})
	return true
}

func (p *SchemaParser) parseInputObjectTypeDefinition(description *string) bool {
	name, ok := p.s.ExpectName()
	if !ok {
		return false
	}
	directives, ok := p.parseDirectives(MaxDepth)
	if !ok {
		return false
	}
	var fields []*ast.InputValueDefinition
	if _, ok := p.s.NextIfPunctuator(token.PunctuatorBraceOpen); ok {
		for {
			if _, ok := p.s.NextIfPunctuator(token.PunctuatorBraceClose); ok {
				break
			}
			f, ok := p.parseInputValueDefinition(MaxDepth)
			if !ok {
				return false
			}
			fields = append(fields, f)
		}
	}
	p.doc.InputObjects = append(p.doc.InputObjects, &ast.InputObjectTypeDefinition{
		CommonDef: ast.CommonDef{Name: name.Name, Description: description, Directives: directives, Span: name.Span},
		Fields:    fields,
	})
	return true
}

func (p *SchemaParser) parseSchemaBlock(description *string) bool {
	start := p.s.Current().Span
	directives, ok := p.parseDirectives(MaxDepth)
	if !ok {
		return false
	}
	var roots []*ast.RootOperationTypeDefinition
	if _, ok := p.s.ExpectPunctuator(token.PunctuatorBraceOpen); !ok {
		return false
	}
	for {
		if _, ok := p.s.NextIfPunctuator(token.PunctuatorBraceClose); ok {
			break
		}
		opName, ok := p.s.ExpectName()
		if !ok {
			return false
		}
		var opType ast.OperationType
		switch opName.Name {
		case "query":
			opType = ast.OperationTypeQuery
		case "mutation":
			opType = ast.OperationTypeMutation
		case "subscription":
			opType = ast.OperationTypeSubscription
		default:
			p.report.AddParseError(operationreport.NewParseError(
				operationreport.ExpectedOneOf, opName.Span, "expected one of query, mutation, subscription",
			))
			return false
		}
		if _, ok := p.s.ExpectPunctuator(token.PunctuatorColon); !ok {
			return false
		}
		typeName, ok := p.s.ExpectName()
		if !ok {
			return false
		}
		roots = append(roots, &ast.RootOperationTypeDefinition{
			OperationType: opType,
			NamedType:     ast.NamedTypeRef(typeName.Name, typeName.Span),
			Span:          opName.Span,
		})
	}
	p.doc.SchemaBlocks = append(p.doc.SchemaBlocks, &ast.SchemaDefinitionBlock{
		Description:       description,
		Directives:        directives,
		RootOperationTypes: roots,
		Span:              start,
	})
	return true
}

func (p *SchemaParser) parseDirectiveDefinition(description *string) bool {
	if _, ok := p.s.ExpectPunctuator(token.PunctuatorAt); !ok {
		return false
	}
	name, ok := p.s.ExpectName()
	if !ok {
		return false
	}
	var args []*ast.InputValueDefinition
	if cur := p.s.Current(); cur.Kind == token.KindPunctuator && cur.Punctuator == token.PunctuatorParenOpen {
		p.s.Advance()
		for {
			if _, ok := p.s.NextIfPunctuator(token.PunctuatorParenClose); ok {
				break
			}
			a, ok := p.parseInputValueDefinition(MaxDepth)
			if !ok {
				return false
			}
			args = append(args, a)
		}
	}
	repeatable := false
	if n, ok := p.s.PeekName(0); ok && n == "repeatable" {
		p.s.Advance()
		repeatable = true
	}
	if _, ok := p.s.ExpectNameValue("on"); !ok {
		return false
	}
	p.s.NextIfPunctuator(token.PunctuatorPipe)
	var locations []ast.DirectiveLocation
	for {
		locName, ok := p.s.ExpectName()
		if !ok {
			return false
		}
		locations = append(locations, ast.DirectiveLocation(locName.Name))
		if _, ok := p.s.NextIfPunctuator(token.PunctuatorPipe); ok {
			continue
		}
		break
	}
	p.doc.Directives = append(p.doc.Directives, &ast.DirectiveDefinition{
		Name:        name.Name,
		Description: description,
		Arguments:   args,
		Locations:   locations,
		Repeatable:  repeatable,
		Span:        name.Span,
	})
	return true
}

