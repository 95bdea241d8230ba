package cpu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrace(t *testing.T) {
	assert := assert.New(t)

	var tr Trace
	tr.Printf("hidden %d", 1)
	tr.Warn("careful")
	tr.Error(errors.New("broken"))
	assert.Equal("careful\nError! broken\n", tr.String())
	assert.Equal(1, tr.Warnings())

	tr.Reset()
	assert.Equal("", tr.String())
	assert.Equal(0, tr.Warnings())

	tr.Enabled = true
	tr.Printf("shown %d", 2)
	assert.Equal("shown 2\n", tr.String())

	tr.Reset()
	assert.True(tr.Enabled)
}
