package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocCommentSanitizeTrimsFields(t *testing.T) {
	d := &DocComment{
		Overview: "  does a thing  ",
		SeeAlso:  []SeeAlsoDoc{{Identifier: "  Other "}},
		Params:   []ParamDoc{{Name: "x", Description: " the x value "}},
		Returns:  " the result ",
		Throws:   []ThrowsDoc{{ExceptionName: "Err", Description: " bad input "}},
	}
	d.Sanitize()

	assert.Equal(t, "does a thing", d.Overview)
	assert.Equal(t, "Other", d.SeeAlso[0].Identifier)
	assert.Equal(t, "the x value", d.Params[0].Description)
	assert.Equal(t, "the result", d.Returns)
	assert.Equal(t, "bad input", d.Throws[0].Description)
}

func TestDocCommentSanitizeNilIsNoop(t *testing.T) {
	var d *DocComment
	assert.NotPanics(t, func() { d.Sanitize() })
}

func TestLinkTagTarget(t *testing.T) {
	tag := &LinkTag{Raw: "Point"}
	assert.Nil(t, tag.Target())

	target := &Struct{base: base{identifier: "Point"}}
	tag.SetTarget(target)
	assert.Equal(t, Entity(target), tag.Target())
}
