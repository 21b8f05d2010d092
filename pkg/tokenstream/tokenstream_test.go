package tokenstream_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graphql-toolkit/core/pkg/operationreport"
	"github.com/graphql-toolkit/core/pkg/token"
	"github.com/graphql-toolkit/core/pkg/tokenstream"
)

func TestStream_PeekDoesNotConsume(t *testing.T) {
	var report operationreport.Report
	s := tokenstream.New(`foo bar`, &report)

	tok := s.Peek(0)
	assert.Equal(t, token.KindName, tok.Kind)
	assert.Equal(t, "foo", tok.Name)

	// Peeking again returns the same token; the cursor hasn't moved.
	tok = s.Peek(0)
	assert.Equal(t, "foo", tok.Name)

	name, ok := s.PeekName(1)
	require.True(t, ok)
	assert.Equal(t, "bar", name)
}

func TestStream_AdvanceConsumesInOrder(t *testing.T) {
	var report operationreport.Report
	s := tokenstream.New(`foo bar`, &report)

	first := s.Advance()
	assert.Equal(t, "foo", first.Name)
	second := s.Advance()
	assert.Equal(t, "bar", second.Name)
	assert.Equal(t, token.KindEOF, s.Current().Kind)
}

func TestStream_NextIfPunctuatorMatchesAndFails(t *testing.T) {
	var report operationreport.Report
	s := tokenstream.New(`{ foo`, &report)

	_, ok := s.NextIfPunctuator(token.PunctuatorBang)
	assert.False(t, ok)

	tok, ok := s.NextIfPunctuator(token.PunctuatorBraceOpen)
	require.True(t, ok)
	assert.Equal(t, token.PunctuatorBraceOpen, tok.Punctuator)
}

func TestStream_ExpectPunctuatorRecordsParseError(t *testing.T) {
	var report operationreport.Report
	s := tokenstream.New(`foo`, &report)

	_, ok := s.ExpectPunctuator(token.PunctuatorBraceOpen)
	assert.False(t, ok)
	require.Len(t, report.ParseErrors, 1)
	assert.Equal(t, operationreport.UnexpectedToken, report.ParseErrors[0].Kind)
}

func TestStream_ExpectNameValueMatchesAndFails(t *testing.T) {
	var report operationreport.Report
	s := tokenstream.New(`query`, &report)

	_, ok := s.ExpectNameValue("query")
	assert.True(t, ok)
	require.Empty(t, report.ParseErrors)

	var report2 operationreport.Report
	s2 := tokenstream.New(`mutation`, &report2)
	_, ok = s2.ExpectNameValue("query")
	assert.False(t, ok)
	require.Len(t, report2.ParseErrors, 1)
}

func TestStream_SkipToNextDefinitionBoundary(t *testing.T) {
	var report operationreport.Report
	s := tokenstream.New(`garbage more garbage type Foo`, &report)

	s.SkipToNextDefinitionBoundary()
	name, ok := s.PeekName(0)
	require.True(t, ok)
	assert.Equal(t, "type", name)
}
