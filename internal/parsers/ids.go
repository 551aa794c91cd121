package parsers

import (
	"encoding/hex"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const linkIDBytes = 8

// ParseLinkID extracts and validates the ephemeral link id path parameter
func ParseLinkID(r *http.Request) (string, error) {
	id := chi.URLParam(r, "id")
	raw, err := hex.DecodeString(id)
	if err != nil || len(raw) != linkIDBytes {
		return "", ErrInvalidLinkID
	}

	return id, nil
}

// ParseNoteID extracts and validates the secure note id path parameter
func ParseNoteID(r *http.Request) (string, error) {
	UUID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return "", ErrInvalidUUID
	}

	return UUID.String(), nil
}
