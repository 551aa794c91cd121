package parsers

import (
	"errors"
)

// ErrInvalidData request parse error happens if the post data can not be accepted
var ErrInvalidData = errors.New("invalid data")

// ErrInvalidEmail is returned when a notification address does not parse
var ErrInvalidEmail = errors.New("invalid email address")

// ErrInvalidKey is returned when the decryption key is not a hex string of a
// supported key size
var ErrInvalidKey = errors.New("invalid decryption key")

// ErrInvalidLinkID is returned when the link id is not 8 hex-encoded bytes
var ErrInvalidLinkID = errors.New("invalid link id")

// ErrInvalidUUID is returned when the note id is not a UUID
var ErrInvalidUUID = errors.New("invalid UUID")
