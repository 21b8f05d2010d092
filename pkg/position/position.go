// Package position provides byte-range spans over GraphQL source text and a
// lazily built line/column index.
package position

import "sort"

// Span is a half-open byte range [Start, End) over a single source document.
type Span struct {
	Start uint32
	End   uint32
}

// NewSpan builds a Span from a start/end byte offset pair.
func NewSpan(start, end uint32) Span {
	return Span{Start: start, End: end}
}

// Merge returns the smallest span covering both s and other.
func (s Span) Merge(other Span) Span {
	start := s.Start
	if other.Start < start {
		start = other.Start
	}
	end := s.End
	if other.End > end {
		end = other.End
	}
	return Span{Start: start, End: end}
}

// Contains reports whether offset falls within the span.
func (s Span) Contains(offset uint32) bool {
	return offset >= s.Start && offset < s.End
}

// Len returns the number of bytes the span covers.
func (s Span) Len() uint32 {
	if s.End < s.Start {
		return 0
	}
	return s.End - s.Start
}

// IsZero reports whether the span is the zero value.
func (s Span) IsZero() bool {
	return s.Start == 0 && s.End == 0
}

// Position is a 1-indexed line/column pair.
type Position struct {
	Line   uint32
	Column uint32
}

// Index maps byte offsets within a source string to line/column pairs. It is
// built lazily the first time a caller needs line/column information — most
// callers (the scanner, the parser) only ever need spans, so documents that
// are never rendered through an error formatter never pay the indexing cost.
type Index struct {
	source      string
	lineStarts  []uint32
	charOffsets []uint32 // not built or read; LineColumn counts the runes of the line prefix directly
	built       bool
}

// NewIndex creates an unbuilt index over source. build is invoked lazily by
// LineColumn.
func NewIndex(source string) *Index {
	return &Index{source: source}
}

func (idx *Index) build() {
	if idx.built {
		return
	}
	idx.lineStarts = append(idx.lineStarts, 0)
	for i := 0; i < len(idx.source); i++ {
		if idx.source[i] == '\n' {
			idx.lineStarts = append(idx.lineStarts, uint32(i+1))
		}
	}
	idx.built = true
}

// LineColumn converts a byte offset into a 1-indexed (line, column) pair. The
// column is a character count, not a byte count, since external consumers
// (error formatters) count characters when rendering source snippets.
func (idx *Index) LineColumn(byteOffset uint32) Position {
	idx.build()
	line := sort.Search(len(idx.lineStarts), func(i int) bool {
		return idx.lineStarts[i] > byteOffset
	}) - 1
	if line < 0 {
		line = 0
	}
	lineStart := idx.lineStarts[line]
	column := uint32(len([]rune(idx.source[lineStart:byteOffset]))) + 1
	return Position{Line: uint32(line) + 1, Column: column}
}

// LineColumnOfSpan returns the position of the span's start offset.
func (idx *Index) LineColumnOfSpan(s Span) Position {
	return idx.LineColumn(s.Start)
}
