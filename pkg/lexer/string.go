package lexer

import (
	"strings"

	"github.com/graphql-toolkit/core/pkg/operationreport"
	"github.com/graphql-toolkit/core/pkg/position"
	"github.com/graphql-toolkit/core/pkg/token"
)

const (
	highSurrogateStart = 0xD800
	highSurrogateEnd   = 0xDBFF
	lowSurrogateStart  = 0xDC00
	lowSurrogateEnd    = 0xDFFF
)

func (l *Lexer) scanString(start int) (token.Token, *operationreport.ScanError) {
	if strings.HasPrefix(l.src[l.pos:], `"""`) {
		return l.scanBlockString(start)
	}
	return l.scanSimpleString(start)
}

func (l *Lexer) scanSimpleString(start int) (token.Token, *operationreport.ScanError) {
	l.pos++ // consume opening quote
	contentStart := l.pos

	// The common case (no escapes) never allocates: the decoded value is
	// just the raw slice. buf is only materialized once an escape forces
	// owned-buffer decoding.
	var buf []byte
	usingBuf := false
	segStart := l.pos

	for {
		if l.pos >= len(l.src) {
			span := position.NewSpan(uint32(start), uint32(l.pos))
			e := operationreport.NewScanError(operationreport.UnterminatedString, span, "unterminated string")
			return token.Token{Kind: token.KindInvalid, Span: span}, &e
		}
		c := l.src[l.pos]
		switch {
		case c == '"':
			var value string
			if usingBuf {
				buf = append(buf, l.src[segStart:l.pos]...)
				value = string(buf)
			} else {
				value = l.src[contentStart:l.pos]
			}
			l.pos++
			span := position.NewSpan(uint32(start), uint32(l.pos))
			return token.Token{Kind: token.KindStringValue, StringValue: value, Span: span}, nil
		case c == '\n' || c == '\r':
			span := position.NewSpan(uint32(start), uint32(l.pos))
			e := operationreport.NewScanError(operationreport.UnterminatedString, span, "unterminated string: raw newline in simple string")
			l.resync()
			return token.Token{Kind: token.KindInvalid, Span: span}, &e
		case c == '\\':
			if !usingBuf {
				usingBuf = true
				buf = append(buf, l.src[contentStart:l.pos]...)
			} else {
				buf = append(buf, l.src[segStart:l.pos]...)
			}
			decoded, scanErr := l.decodeEscape()
			if scanErr != nil {
				l.resync()
				return token.Token{Kind: token.KindInvalid, Span: position.NewSpan(uint32(start), uint32(l.pos))}, scanErr
			}
			buf = append(buf, decoded...)
			segStart = l.pos
		default:
			l.pos++
		}
	}
}

// decodeEscape consumes a backslash escape sequence (the caller has verified
// l.src[l.pos] == '\\') and returns its decoded UTF-8 bytes.
func (l *Lexer) decodeEscape() ([]byte, *operationreport.ScanError) {
	escStart := l.pos
	l.pos++ // consume backslash
	if l.pos >= len(l.src) {
		span := position.NewSpan(uint32(escStart), uint32(l.pos))
		e := operationreport.NewScanError(operationreport.UnterminatedString, span, "unterminated escape sequence")
		return nil, &e
	}
	c := l.src[l.pos]
	switch c {
	case '"':
		l.pos++
		return []byte(`"`), nil
	case '\\':
		l.pos++
		return []byte(`\`), nil
	case '/':
		l.pos++
		return []byte(`/`), nil
	case 'b':
		l.pos++
		return []byte{'\b'}, nil
	case 'f':
		l.pos++
		return []byte{'\f'}, nil
	case 'n':
		l.pos++
		return []byte{'\n'}, nil
	case 'r':
		l.pos++
		return []byte{'\r'}, nil
	case 't':
		l.pos++
		return []byte{'\t'}, nil
	case 'u':
		return l.decodeUnicodeEscape(escStart)
	default:
		l.pos++
		span := position.NewSpan(uint32(escStart), uint32(l.pos))
		e := operationreport.NewScanError(operationreport.StringInvalidEscapedUnicode, span, "invalid escape sequence")
		return nil, &e
	}
}

// decodeUnicodeEscape handles both \uXXXX (fixed width) and \u{X+} (variable
// width) forms, including UTF-16 surrogate-pair combination.
func (l *Lexer) decodeUnicodeEscape(escStart int) ([]byte, *operationreport.ScanError) {
	l.pos++ // consume 'u'

	if l.pos < len(l.src) && l.src[l.pos] == '{' {
		return l.decodeVariableWidthUnicodeEscape(escStart)
	}

	cp, ok := l.readFixedHex4()
	if !ok {
		span := position.NewSpan(uint32(escStart), uint32(l.pos))
		e := operationreport.NewScanError(operationreport.StringInvalidEscapedUnicode, span, "invalid unicode escape")
		return nil, &e
	}

	if cp >= highSurrogateStart && cp <= highSurrogateEnd {
		// Possible surrogate pair: look for \uXXXX immediately following.
		save := l.pos
		if l.pos+1 < len(l.src) && l.src[l.pos] == '\\' && l.src[l.pos+1] == 'u' {
			l.pos += 2
			lo, ok := l.readFixedHex4()
			if ok && lo >= lowSurrogateStart && lo <= lowSurrogateEnd {
				combined := (cp-highSurrogateStart)*0x400 + (lo - lowSurrogateStart) + 0x10000
				return []byte(string(rune(combined))), nil
			}
		}
		l.pos = save
		span := position.NewSpan(uint32(escStart), uint32(l.pos))
		e := operationreport.NewScanError(operationreport.StringInvalidEscapedUnicode, span, "unpaired UTF-16 surrogate")
		return nil, &e
	}
	if cp >= lowSurrogateStart && cp <= lowSurrogateEnd {
		span := position.NewSpan(uint32(escStart), uint32(l.pos))
		e := operationreport.NewScanError(operationreport.StringInvalidEscapedUnicode, span, "unpaired UTF-16 surrogate")
		return nil, &e
	}
	return []byte(string(rune(cp))), nil
}

func (l *Lexer) readFixedHex4() (rune, bool) {
	if l.pos+4 > len(l.src) {
		l.pos = len(l.src)
		return 0, false
	}
	var v rune
	for i := 0; i < 4; i++ {
		d, ok := hexDigit(l.src[l.pos])
		if !ok {
			return 0, false
		}
		v = v<<4 | rune(d)
		l.pos++
	}
	return v, true
}

func (l *Lexer) decodeVariableWidthUnicodeEscape(escStart int) ([]byte, *operationreport.ScanError) {
	l.pos++ // consume '{'
	digitsStart := l.pos
	for l.pos < len(l.src) && isHex(l.src[l.pos]) {
		l.pos++
	}
	if l.pos == digitsStart || l.pos >= len(l.src) || l.src[l.pos] != '}' {
		span := position.NewSpan(uint32(escStart), uint32(l.pos))
		e := operationreport.NewScanError(operationreport.StringInvalidEscapedUnicode, span, "invalid variable-width unicode escape")
		return nil, &e
	}
	digits := l.src[digitsStart:l.pos]
	l.pos++ // consume '}'

	var v int64
	for i := 0; i < len(digits); i++ {
		d, _ := hexDigit(digits[i])
		v = v<<4 | int64(d)
		if v > 0x10FFFF {
			span := position.NewSpan(uint32(escStart), uint32(l.pos))
			e := operationreport.NewScanError(operationreport.StringInvalidEscapedUnicode, span, "unicode escape out of range")
			return nil, &e
		}
	}
	if (v >= highSurrogateStart && v <= lowSurrogateEnd) || v > 0x10FFFF {
		span := position.NewSpan(uint32(escStart), uint32(l.pos))
		e := operationreport.NewScanError(operationreport.StringInvalidEscapedUnicode, span, "unicode escape is a lone surrogate")
		return nil, &e
	}
	return []byte(string(rune(v))), nil
}

func hexDigit(c byte) (int, bool) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), true
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10, true
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10, true
	default:
		return 0, false
	}
}

func isHex(c byte) bool {
	_, ok := hexDigit(c)
	return ok
}

// --- block strings -------------------------------------------------------

func (l *Lexer) scanBlockString(start int) (token.Token, *operationreport.ScanError) {
	l.pos += 3 // consume opening """
	contentStart := l.pos

	for {
		if l.pos >= len(l.src) {
			span := position.NewSpan(uint32(start), uint32(l.pos))
			e := operationreport.NewScanError(operationreport.UnterminatedBlockString, span, "unterminated block string")
			return token.Token{Kind: token.KindInvalid, Span: span}, &e
		}
		if l.src[l.pos] == '\\' && strings.HasPrefix(l.src[l.pos:], `\"""`) {
			l.pos += 4
			continue
		}
		if strings.HasPrefix(l.src[l.pos:], `"""`) {
			raw := l.src[contentStart:l.pos]
			l.pos += 3
			span := position.NewSpan(uint32(start), uint32(l.pos))
			decoded := DecodeBlockString(raw)
			return token.Token{Kind: token.KindStringValue, StringValue: decoded, BlockString: true, Span: span}, nil
		}
		l.pos++
	}
}

// DecodeBlockString applies the GraphQL block-string algorithm: normalize
// line endings, unescape `\"""`, strip common indentation from non-first
// lines, and trim leading/trailing blank lines. Exported so the parser's
// description-string handling can reuse it, and so it is independently
// testable for idempotency: a string with no leading or trailing blank line
// and no indentation shared by all of its non-blank later lines decodes to
// itself. Other decoded output can change on a second pass ("a\n  b" loses
// its indent).
func DecodeBlockString(raw string) string {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	raw = strings.ReplaceAll(raw, "\r", "\n")
	raw = strings.ReplaceAll(raw, `\"""`, `"""`)

	lines := strings.Split(raw, "\n")

	commonIndent := -1
	for i, line := range lines {
		if i == 0 {
			continue
		}
		indent := leadingWhitespaceLen(line)
		if indent == len(line) {
			continue // blank line, ignored for indent computation
		}
		if commonIndent == -1 || indent < commonIndent {
			commonIndent = indent
		}
	}

	if commonIndent > 0 {
		for i := 1; i < len(lines); i++ {
			if len(lines[i]) >= commonIndent {
				lines[i] = lines[i][commonIndent:]
			} else {
				lines[i] = ""
			}
		}
	}

	for len(lines) > 0 && isBlank(lines[0]) {
		lines = lines[1:]
	}
	for len(lines) > 0 && isBlank(lines[len(lines)-1]) {
		lines = lines[:len(lines)-1]
	}

	return strings.Join(lines, "\n")
}

func leadingWhitespaceLen(s string) int {
	n := 0
	for n < len(s) && (s[n] == ' ' || s[n] == '\t') {
		n++
	}
	return n
}

func isBlank(s string) bool {
	return leadingWhitespaceLen(s) == len(s)
}
