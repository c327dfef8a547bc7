package text

import (
	"fmt"
	"slices"
)

// LineIndex maps byte offsets to 1-based line/column locations over a UTF-8 source buffer.
// Columns are byte columns, matching the span model used throughout the compiler.
type LineIndex struct {
	src        []byte
	lineStarts []ByteOffset
}

// NewLineIndex builds an index over src.
func NewLineIndex(src []byte) *LineIndex {
	starts := []ByteOffset{0}
	for i, b := range src {
		if b == '\n' {
			starts = append(starts, ByteOffset(i+1))
		}
	}
	return &LineIndex{src: src, lineStarts: starts}
}

// SourceLen returns the source length in bytes.
func (li *LineIndex) SourceLen() ByteOffset {
	if li == nil {
		return 0
	}
	return ByteOffset(len(li.src))
}

// LineCount returns the number of logical lines in the source.
func (li *LineIndex) LineCount() int {
	if li == nil {
		return 0
	}
	return len(li.lineStarts)
}

// OffsetToPosition converts a byte offset to a 1-based line/column position.
func (li *LineIndex) OffsetToPosition(off ByteOffset) (Position, error) {
	if li == nil {
		return Position{}, fmt.Errorf("nil LineIndex")
	}
	if !off.IsValid() || off > ByteOffset(len(li.src)) {
		return Position{}, fmt.Errorf("offset out of range: %d", off)
	}

	line := li.lineForOffset(off)
	start := li.lineStarts[line]
	return Position{
		Line:   line + 1,
		Column: int(off-start) + 1,
	}, nil
}

func (li *LineIndex) lineForOffset(off ByteOffset) int {
	i, found := slices.BinarySearch(li.lineStarts, off)
	if found {
		return i
	}
	return i - 1
}
