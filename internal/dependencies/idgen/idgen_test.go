package idgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewIDIsValidAndUnique(t *testing.T) {
	g := New()

	a, b := g.NewID(), g.NewID()

	assert.True(t, Valid(a))
	assert.True(t, Valid(b))
	assert.NotEqual(t, a, b)
}

func TestValidRejectsOtherShapes(t *testing.T) {
	assert.False(t, Valid(""))
	assert.False(t, Valid("65f1c2a9e4b0a1b2c3d4e5f6"))
	assert.False(t, Valid("not-an-id"))
}
