package parsers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requestWithID(id string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "http://example.com/", nil)
	routeContext := chi.NewRouteContext()
	routeContext.URLParams.Add("id", id)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, routeContext))
}

func Test_ParseLinkID(t *testing.T) {
	id, err := ParseLinkID(requestWithID("0123456789abcdef"))
	require.NoError(t, err)
	assert.Equal(t, "0123456789abcdef", id)

	for _, invalid := range []string{"", "abc", "0123456789abcdeg", "0123456789abcdef00"} {
		_, err := ParseLinkID(requestWithID(invalid))
		assert.ErrorIs(t, err, ErrInvalidLinkID)
	}
}

func Test_ParseNoteID(t *testing.T) {
	noteID := uuid.New().String()

	id, err := ParseNoteID(requestWithID(noteID))
	require.NoError(t, err)
	assert.Equal(t, noteID, id)

	_, err = ParseNoteID(requestWithID("not-a-uuid"))
	assert.ErrorIs(t, err, ErrInvalidUUID)
}
