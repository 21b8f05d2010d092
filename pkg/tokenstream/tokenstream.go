// Package tokenstream wraps pkg/lexer with a small lookahead buffer and the
// expectation helpers the parser needs.
package tokenstream

import (
	"fmt"

	"github.com/graphql-toolkit/core/pkg/lexer"
	"github.com/graphql-toolkit/core/pkg/operationreport"
	"github.com/graphql-toolkit/core/pkg/token"
)

// Stream adapts a Lexer with peek(k) lookahead. Scan errors encountered while
// filling the lookahead buffer are accumulated into Report and consulted once
// parsing completes.
type Stream struct {
	lex    *lexer.Lexer
	report *operationreport.Report
	buf    []token.Token
}

// New creates a Stream over src, recording any scan errors into report.
func New(src string, report *operationreport.Report) *Stream {
	return &Stream{lex: lexer.New(src), report: report}
}

func (s *Stream) fillTo(k int) {
	for len(s.buf) <= k {
		tok, err := s.lex.Next()
		if err != nil {
			s.report.AddScanError(*err)
		}
		s.buf = append(s.buf, tok)
		if tok.Kind == token.KindEOF {
			// Keep the buffer padded with EOF so further peeks are safe.
			for len(s.buf) <= k {
				s.buf = append(s.buf, tok)
			}
			break
		}
	}
}

// Peek returns the token k positions ahead of the cursor (0 is the current
// token) without consuming it.
func (s *Stream) Peek(k int) token.Token {
	s.fillTo(k)
	return s.buf[k]
}

// PeekName returns the Name text of the token k ahead if it is a Name token.
func (s *Stream) PeekName(k int) (string, bool) {
	tok := s.Peek(k)
	if tok.Kind != token.KindName {
		return "", false
	}
	return tok.Name, true
}

// PeekStringValue returns the decoded string of the token k ahead if it is a
// StringValue token.
func (s *Stream) PeekStringValue(k int) (string, bool) {
	tok := s.Peek(k)
	if tok.Kind != token.KindStringValue {
		return "", false
	}
	return tok.StringValue, true
}

// Current returns the token at the cursor.
func (s *Stream) Current() token.Token {
	return s.Peek(0)
}

// Advance consumes the current token and returns it.
func (s *Stream) Advance() token.Token {
	tok := s.Peek(0)
	s.buf = s.buf[1:]
	return tok
}

// NextIfPunctuator consumes and returns the current token if it is the given
// punctuator.
func (s *Stream) NextIfPunctuator(p token.Punctuator) (token.Token, bool) {
	if cur := s.Current(); cur.Kind == token.KindPunctuator && cur.Punctuator == p {
		return s.Advance(), true
	}
	return token.Token{}, false
}

// NextIfName consumes and returns the current token if it is a Name token.
func (s *Stream) NextIfName() (token.Token, bool) {
	if s.Current().Kind == token.KindName {
		return s.Advance(), true
	}
	return token.Token{}, false
}

// ExpectPunctuator consumes the current token if it is the given punctuator,
// otherwise records an UnexpectedToken parse error.
func (s *Stream) ExpectPunctuator(p token.Punctuator) (token.Token, bool) {
	if tok, ok := s.NextIfPunctuator(p); ok {
		return tok, true
	}
	cur := s.Current()
	s.report.AddParseError(operationreport.NewParseError(
		operationreport.UnexpectedToken, cur.Span,
		fmt.Sprintf("expected %q, found %s", p.String(), cur.String()),
	))
	return token.Token{}, false
}

// ExpectName consumes the current token if it is a Name, otherwise records an
// UnexpectedToken parse error.
func (s *Stream) ExpectName() (token.Token, bool) {
	if tok, ok := s.NextIfName(); ok {
		return tok, true
	}
	cur := s.Current()
	s.report.AddParseError(operationreport.NewParseError(
		operationreport.UnexpectedToken, cur.Span,
		fmt.Sprintf("expected Name, found %s", cur.String()),
	))
	return token.Token{}, false
}

// ExpectNameValue consumes the current token if it is a Name equal to value,
// otherwise records an UnexpectedToken parse error.
func (s *Stream) ExpectNameValue(value string) (token.Token, bool) {
	if cur := s.Current(); cur.Kind == token.KindName && cur.Name == value {
		return s.Advance(), true
	}
	cur := s.Current()
	s.report.AddParseError(operationreport.NewParseError(
		operationreport.UnexpectedToken, cur.Span,
		fmt.Sprintf("expected %q, found %s", value, cur.String()),
	))
	return token.Token{}, false
}

// SkipToNextDefinitionBoundary consumes the current token, then advances the
// cursor until it reaches EOF or a Name token that is a definition keyword
// (scalar, type, input, enum, union, interface, schema, directive, query,
// mutation, subscription, fragment).
func (s *Stream) SkipToNextDefinitionBoundary() {
	s.Advance()
	for {
		cur := s.Current()
		if cur.Kind == token.KindEOF {
			return
		}
		if cur.Kind == token.KindName && isDefinitionKeyword(cur.Name) {
			return
		}
		s.Advance()
	}
}

func isDefinitionKeyword(name string) bool {
	switch name {
	case "scalar", "type", "input", "enum", "union", "interface", "schema", "directive",
		"query", "mutation", "subscription", "fragment":
		return true
	default:
		return false
	}
}
