// Package api contains the http.Handler implementations for the api endpoints
package api

import (
	"errors"
)

// ErrRequestParseError request parse error happens if the request data can not be accepted
var ErrRequestParseError = errors.New("request parse error")
