package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIDStreamsAreMonotonicAndIndependent(t *testing.T) {
	assert := assert.New(t)

	var g IDGen
	assert.Equal(0, g.NextNoteID())
	assert.Equal(1, g.NextNoteID())
	assert.Equal(0, g.NextHiSpeedID())
	assert.Equal(2, g.NextNoteID())
	assert.Equal(1, g.NextHiSpeedID())

	// A fresh generator starts over
	var h IDGen
	assert.Equal(0, h.NextNoteID())
}
