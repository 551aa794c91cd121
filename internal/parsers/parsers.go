// Package parsers turns HTTP requests into validated request data for the
// handlers. Each parser owns the defaults and limits of one endpoint.
package parsers

import (
	"encoding/json"
	"errors"
	"net/http"
)

type Parser[T any] interface {
	Parse(r *http.Request) (T, error)
}

func decodeJSON(r *http.Request, into any) error {
	if err := json.NewDecoder(r.Body).Decode(into); err != nil {
		return errors.Join(ErrInvalidData, err)
	}

	return nil
}
