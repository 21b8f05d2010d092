// Package lexer implements the streaming GraphQL tokenizer: it turns a
// source string into a lazy sequence of tokens, decoding string escapes
// (including surrogate pairs and block strings) and recovering from errors
// so a single pass surfaces every lexical problem in the document.
package lexer

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/graphql-toolkit/core/pkg/operationreport"
	"github.com/graphql-toolkit/core/pkg/position"
	"github.com/graphql-toolkit/core/pkg/token"
	"go.uber.org/atomic"
)

// Lexer scans a single source string. It is not safe for concurrent use by
// multiple goroutines, but independent Lexer values over independent sources
// may run on independent call stacks concurrently.
type Lexer struct {
	src string
	pos int // next unread byte offset

	// tokensEmitted is an aggregate counter exposed for metrics scraping; it
	// is safe to read concurrently with scanning in-flight elsewhere because
	// each Lexer owns its own counter instance.
	tokensEmitted atomic.Uint64
}

// New creates a Lexer over src.
func New(src string) *Lexer {
	return &Lexer{src: src}
}

// TokensEmitted returns the number of tokens produced so far.
func (l *Lexer) TokensEmitted() uint64 {
	return l.tokensEmitted.Load()
}

// Next scans and returns the next token. When scanning encounters a lexical
// problem, scanErr is non-nil; the lexer has already resynchronized and a
// subsequent call to Next continues from the next boundary. Next returns a
// KindEOF token forever once the input is exhausted.
func (l *Lexer) Next() (tok token.Token, scanErr *operationreport.ScanError) {
	l.skipIgnored()

	if l.pos >= len(l.src) {
		return token.Token{Kind: token.KindEOF, Span: position.NewSpan(uint32(l.pos), uint32(l.pos))}, nil
	}

	start := l.pos
	c := l.src[l.pos]

	switch {
	case isNameStart(c):
		tok = l.scanName(start)
	case c == '-' || isDigit(c):
		tok, scanErr = l.scanNumber(start)
	case c == '"':
		tok, scanErr = l.scanString(start)
	default:
		if p, ok := scanPunctuator(l.src, l.pos); ok {
			l.pos += len(p.text)
			tok = token.Token{Kind: token.KindPunctuator, Punctuator: p.kind, Span: position.NewSpan(uint32(start), uint32(l.pos))}
		} else {
			r, size := utf8.DecodeRuneInString(l.src[l.pos:])
			if r == utf8.RuneError && size <= 1 {
				size = 1
			}
			l.pos += size
			span := position.NewSpan(uint32(start), uint32(l.pos))
			e := operationreport.NewScanError(operationreport.UnrecognizedToken, span, "unrecognized token")
			scanErr = &e
			l.resync()
			tok = token.Token{Kind: token.KindInvalid, Span: position.NewSpan(uint32(start), uint32(l.pos))}
		}
	}

	l.tokensEmitted.Add(1)
	return tok, scanErr
}

// resync advances to the next whitespace or punctuator boundary so the
// caller keeps seeing further tokens after an error.
func (l *Lexer) resync() {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if isIgnoredWhitespace(c) {
			return
		}
		if _, ok := scanPunctuator(l.src, l.pos); ok {
			return
		}
		l.pos++
	}
}

func isIgnoredWhitespace(c byte) bool {
	return c == '\t' || c == ' ' || c == '\n' || c == '\r' || c == ','
}

func (l *Lexer) skipIgnored() {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case isIgnoredWhitespace(c):
			l.pos++
		case c == '#':
			for l.pos < len(l.src) && l.src[l.pos] != '\n' {
				l.pos++
			}
		default:
			// U+FEFF byte order mark, encoded as EF BB BF in UTF-8.
			if strings.HasPrefix(l.src[l.pos:], "﻿") {
				l.pos += len("﻿")
				continue
			}
			return
		}
	}
}

func isNameStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isNameContinue(c byte) bool {
	return isNameStart(c) || isDigit(c)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func (l *Lexer) scanName(start int) token.Token {
	l.pos++
	for l.pos < len(l.src) && isNameContinue(l.src[l.pos]) {
		l.pos++
	}
	return token.Token{Kind: token.KindName, Name: l.src[start:l.pos], Span: position.NewSpan(uint32(start), uint32(l.pos))}
}

// --- numbers -----------------------------------------------------------

func (l *Lexer) scanNumber(start int) (token.Token, *operationreport.ScanError) {
	if l.src[l.pos] == '-' {
		l.pos++
	}
	if l.pos >= len(l.src) || !isDigit(l.src[l.pos]) {
		span := position.NewSpan(uint32(start), uint32(l.pos))
		e := operationreport.NewScanError(operationreport.UnrecognizedToken, span, "invalid number literal")
		l.resync()
		return token.Token{Kind: token.KindInvalid, Span: span}, &e
	}
	if l.src[l.pos] == '0' {
		l.pos++
	} else {
		for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			l.pos++
		}
	}

	isFloat := false
	if l.pos < len(l.src) && l.src[l.pos] == '.' {
		if l.pos+1 < len(l.src) && isDigit(l.src[l.pos+1]) {
			isFloat = true
			l.pos++
			for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
				l.pos++
			}
		}
	}
	if l.pos < len(l.src) && (l.src[l.pos] == 'e' || l.src[l.pos] == 'E') {
		save := l.pos
		p := l.pos + 1
		if p < len(l.src) && (l.src[p] == '+' || l.src[p] == '-') {
			p++
		}
		if p < len(l.src) && isDigit(l.src[p]) {
			isFloat = true
			l.pos = p
			for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
				l.pos++
			}
		} else {
			l.pos = save
		}
	}

	// Trailing character rule: a following alphanumeric, '_', or '.' makes
	// the whole run an invalid token (catches `1.` and `123abc`).
	if l.pos < len(l.src) {
		c := l.src[l.pos]
		if isNameContinue(c) || c == '.' {
			for l.pos < len(l.src) && (isNameContinue(l.src[l.pos]) || l.src[l.pos] == '.') {
				l.pos++
			}
			span := position.NewSpan(uint32(start), uint32(l.pos))
			e := operationreport.NewScanError(operationreport.UnrecognizedToken, span, "invalid number literal: unexpected trailing character")
			l.resync()
			return token.Token{Kind: token.KindInvalid, Span: span}, &e
		}
	}

	text := l.src[start:l.pos]
	span := position.NewSpan(uint32(start), uint32(l.pos))
	if isFloat {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			e := operationreport.NewScanError(operationreport.FloatValueTooLarge, span, "float value too large")
			return token.Token{Kind: token.KindInvalid, Span: span}, &e
		}
		return token.Token{Kind: token.KindFloatValue, FloatValue: f, Span: span}, nil
	}
	i, err := strconv.ParseInt(text, 10, 32)
	if err != nil {
		e := operationreport.NewScanError(operationreport.IntegerValueTooLarge, span, "integer value too large")
		return token.Token{Kind: token.KindInvalid, Span: span}, &e
	}
	return token.Token{Kind: token.KindIntValue, IntValue: int32(i), Span: span}, nil
}

// --- punctuators ---------------------------------------------------------

type punctMatch struct {
	text string
	kind token.Punctuator
}

// Longest-match-first; only "..." is multi-byte.
var punctuators = []punctMatch{
	{"...", token.PunctuatorSpread},
	{"!", token.PunctuatorBang},
	{"$", token.PunctuatorDollar},
	{"&", token.PunctuatorAmp},
	{"(", token.PunctuatorParenOpen},
	{")", token.PunctuatorParenClose},
	{":", token.PunctuatorColon},
	{"=", token.PunctuatorEquals},
	{"@", token.PunctuatorAt},
	{"[", token.PunctuatorBracketOpen},
	{"]", token.PunctuatorBracketClose},
	{"{", token.PunctuatorBraceOpen},
	{"}", token.PunctuatorBraceClose},
	{"|", token.PunctuatorPipe},
}

func scanPunctuator(src string, pos int) (punctMatch, bool) {
	for _, p := range punctuators {
		if strings.HasPrefix(src[pos:], p.text) {
			return p, true
		}
	}
	return punctMatch{}, false
}
