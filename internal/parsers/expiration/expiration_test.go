package expiration

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func Test_Calculate(t *testing.T) {
	expire, err := Calculate(0, time.Hour, 86400)
	assert.NoError(t, err)
	assert.Equal(t, time.Hour, expire)

	expire, err = Calculate(600, time.Hour, 86400)
	assert.NoError(t, err)
	assert.Equal(t, 10*time.Minute, expire)

	_, err = Calculate(-1, time.Hour, 86400)
	assert.ErrorIs(t, err, ErrInvalidExpiration)

	_, err = Calculate(86401, time.Hour, 86400)
	assert.ErrorIs(t, err, ErrInvalidExpiration)

	expire, err = Calculate(86400, time.Hour, 86400)
	assert.NoError(t, err)
	assert.Equal(t, 24*time.Hour, expire)
}
