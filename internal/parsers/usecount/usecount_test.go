package usecount

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Parse(t *testing.T) {
	count, err := Parse(0)
	assert.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = Parse(5)
	assert.NoError(t, err)
	assert.Equal(t, 5, count)

	_, err = Parse(-1)
	assert.ErrorIs(t, err, ErrInvalidUseCount)
}
