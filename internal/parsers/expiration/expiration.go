package expiration

import (
	"errors"
	"time"
)

// ErrInvalidExpiration request parse error happens when the user set
// expiration is not positive or larger than the system maximum
var ErrInvalidExpiration = errors.New("invalid expiration")

// Calculate converts the user supplied expiresIn seconds into a duration.
// Zero means the field was omitted and yields the default.
func Calculate(expiresIn int, defaultExpire time.Duration, maxExpireSeconds int) (time.Duration, error) {
	if expiresIn == 0 {
		return defaultExpire, nil
	}

	if expiresIn < 0 || expiresIn > maxExpireSeconds {
		return 0, ErrInvalidExpiration
	}

	return time.Duration(expiresIn) * time.Second, nil
}
