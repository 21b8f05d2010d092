// Package token defines the lexical token alphabet produced by pkg/lexer.
package token

import "github.com/graphql-toolkit/core/pkg/position"

// Kind tags the variant a Token holds.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindPunctuator
	KindName
	KindIntValue
	KindFloatValue
	KindStringValue
	KindEOF
)

func (k Kind) String() string {
	switch k {
	case KindPunctuator:
		return "Punctuator"
	case KindName:
		return "Name"
	case KindIntValue:
		return "IntValue"
	case KindFloatValue:
		return "FloatValue"
	case KindStringValue:
		return "StringValue"
	case KindEOF:
		return "EOF"
	default:
		return "Invalid"
	}
}

// Punctuator is one member of the fixed punctuator alphabet.
type Punctuator uint8

const (
	PunctuatorBang Punctuator = iota
	PunctuatorDollar
	PunctuatorAmp
	PunctuatorParenOpen
	PunctuatorParenClose
	PunctuatorSpread // ...
	PunctuatorColon
	PunctuatorEquals
	PunctuatorAt
	PunctuatorBracketOpen
	PunctuatorBracketClose
	PunctuatorBraceOpen
	PunctuatorBraceClose
	PunctuatorPipe
)

var punctuatorText = map[Punctuator]string{
	PunctuatorBang:         "!",
	PunctuatorDollar:       "$",
	PunctuatorAmp:          "&",
	PunctuatorParenOpen:    "(",
	PunctuatorParenClose:   ")",
	PunctuatorSpread:       "...",
	PunctuatorColon:        ":",
	PunctuatorEquals:       "=",
	PunctuatorAt:           "@",
	PunctuatorBracketOpen:  "[",
	PunctuatorBracketClose: "]",
	PunctuatorBraceOpen:    "{",
	PunctuatorBraceClose:   "}",
	PunctuatorPipe:         "|",
}

func (p Punctuator) String() string {
	if s, ok := punctuatorText[p]; ok {
		return s
	}
	return "?"
}

// Token is a tagged union over the lexical alphabet of §3. Only the fields
// relevant to Kind are populated; the rest are zero.
type Token struct {
	Kind Kind
	Span position.Span

	Punctuator Punctuator
	Name       string
	IntValue   int32
	FloatValue float64
	StringValue string
	// BlockString records whether a StringValue token was written using the
	// triple-quote block form, which some downstream printers care about
	// even though the decoded value is identical either way.
	BlockString bool
}

func (t Token) String() string {
	switch t.Kind {
	case KindPunctuator:
		return t.Punctuator.String()
	case KindName:
		return t.Name
	case KindStringValue:
		return t.StringValue
	default:
		return t.Kind.String()
	}
}
