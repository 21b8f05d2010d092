package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graphql-toolkit/core/pkg/lexer"
	"github.com/graphql-toolkit/core/pkg/token"
)

func scanAll(t *testing.T, src string) ([]token.Token, []string) {
	t.Helper()
	l := lexer.New(src)
	var toks []token.Token
	var errs []string
	for {
		tok, err := l.Next()
		if err != nil {
			errs = append(errs, err.Kind.String())
		}
		if tok.Kind == token.KindEOF {
			break
		}
		toks = append(toks, tok)
	}
	return toks, errs
}

func TestSurrogatePairDecoding(t *testing.T) {
	toks, errs := scanAll(t, "\"\\uD83D\\uDD25\"")
	require.Empty(t, errs)
	require.Len(t, toks, 1)
	assert.Equal(t, "\U0001F525", toks[0].StringValue)
}

func TestUnpairedSurrogateIsError(t *testing.T) {
	_, errs := scanAll(t, `"\uD800"`)
	require.Len(t, errs, 1)
	assert.Equal(t, "StringInvalidEscapedUnicode", errs[0])
}

func TestNumberTrailingCharacterRule(t *testing.T) {
	for _, src := range []string{"1.", "123abc"} {
		toks, errs := scanAll(t, src)
		require.NotEmpty(t, errs, "source %q should be invalid", src)
		for _, tok := range toks {
			assert.NotEqual(t, token.KindIntValue, tok.Kind, "source %q must not yield a plain int token", src)
			assert.NotEqual(t, token.KindFloatValue, tok.Kind, "source %q must not yield a plain float token", src)
		}
	}
}

func TestIntegerOutOfRange(t *testing.T) {
	_, errs := scanAll(t, "99999999999")
	require.Len(t, errs, 1)
	assert.Equal(t, "IntegerValueTooLarge", errs[0])
}

func TestFloatValues(t *testing.T) {
	toks, errs := scanAll(t, "1.5 1e10 1.5e-10")
	require.Empty(t, errs)
	require.Len(t, toks, 3)
	for _, tok := range toks {
		assert.Equal(t, token.KindFloatValue, tok.Kind)
	}
}

func TestBlockStringDedent(t *testing.T) {
	toks, errs := scanAll(t, "\"\"\"\n    Hello,\n      World!\n\n    Yours,\n      GraphQL.\n  \"\"\"")
	require.Empty(t, errs)
	require.Len(t, toks, 1)
	assert.Equal(t, "Hello,\n  World!\n\nYours,\n  GraphQL.", toks[0].StringValue)
}

func TestBlockStringDecodingIsIdempotent(t *testing.T) {
	once := lexer.DecodeBlockString("Hello,\n  World!")
	twice := lexer.DecodeBlockString(once)
	assert.Equal(t, once, twice)
}

func TestIgnoredInputIncludesCommasAndComments(t *testing.T) {
	toks, errs := scanAll(t, "foo, # a comment\n bar")
	require.Empty(t, errs)
	require.Len(t, toks, 2)
	assert.Equal(t, "foo", toks[0].Name)
	assert.Equal(t, "bar", toks[1].Name)
}

func TestRawNewlineInSimpleStringIsError(t *testing.T) {
	_, errs := scanAll(t, "\"a\nb\"")
	require.NotEmpty(t, errs)
}

func TestScannerResynchronizesAfterError(t *testing.T) {
	toks, errs := scanAll(t, "foo ~ bar")
	require.Len(t, errs, 1)
	require.Len(t, toks, 3)
	assert.Equal(t, "foo", toks[0].Name)
	assert.Equal(t, token.KindInvalid, toks[1].Kind)
	assert.Equal(t, "bar", toks[2].Name)
}
