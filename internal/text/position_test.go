package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpanIsValid(t *testing.T) {
	valid := Span{File: "a.slice", Start: Position{1, 1}, End: Position{1, 5}}
	assert.True(t, valid.IsValid())

	noFile := valid
	noFile.File = ""
	assert.False(t, noFile.IsValid())

	backwards := Span{File: "a.slice", Start: Position{2, 1}, End: Position{1, 1}}
	assert.False(t, backwards.IsValid())
}

func TestLineIndexOffsetToPosition(t *testing.T) {
	src := []byte("module Demo\ncompact struct Point {\n  x: int32,\n}\n")
	li := NewLineIndex(src)

	cases := []struct {
		off  ByteOffset
		want Position
	}{
		{0, Position{1, 1}},
		{7, Position{1, 8}},
		{12, Position{2, 1}},
		{37, Position{3, 3}},
	}
	for _, c := range cases {
		got, err := li.OffsetToPosition(c.off)
		assert.NoError(t, err)
		assert.Equal(t, c.want, got)
	}
}

func TestLineIndexOffsetOutOfRange(t *testing.T) {
	li := NewLineIndex([]byte("abc"))
	_, err := li.OffsetToPosition(100)
	assert.Error(t, err)
}

func TestPositionLess(t *testing.T) {
	assert.True(t, (Position{1, 5}).Less(Position{2, 1}))
	assert.True(t, (Position{3, 1}).Less(Position{3, 2}))
}
