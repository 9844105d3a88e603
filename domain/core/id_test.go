package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRunID(t *testing.T) {
	a := NewRunID()
	b := NewRunID()

	assert.NotEqual(t, a, b)
	assert.Equal(t, 7, int(a.Version()))
	assert.LessOrEqual(t, a.String(), b.String())
}
