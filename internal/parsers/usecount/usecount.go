package usecount

import (
	"errors"
)

// ErrInvalidUseCount request parse error happens when the user use count is
// not a positive number
var ErrInvalidUseCount = errors.New("invalid use count")

// Parse returns the number of times a link may be consumed. Zero means the
// field was omitted and yields the minimum of one use.
func Parse(val int) (int, error) {
	const minUseCount int = 1
	if val == 0 {
		return minUseCount, nil
	}

	if val < minUseCount {
		return 0, ErrInvalidUseCount
	}

	return val, nil
}
