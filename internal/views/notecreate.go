package views

import (
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/sealnote/sealnote/internal/envelope"
	"github.com/sealnote/sealnote/internal/parsers"
	"github.com/sealnote/sealnote/internal/parsers/expiration"
	"github.com/sealnote/sealnote/internal/urls"
)

type NoteCreatedData struct {
	ID        string
	Key       string
	ExpiresAt time.Time
}

type NoteCreatedResponse struct {
	NoteID    string    `json:"noteId"`
	NoteURL   string    `json:"noteUrl"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type NoteCreateView struct {
	webExternalURL *url.URL
}

func NewNoteCreateView(webExternalURL *url.URL) NoteCreateView {
	return NoteCreateView{webExternalURL: webExternalURL}
}

func (v NoteCreateView) Render(w http.ResponseWriter, r *http.Request, data NoteCreatedData) {
	noteURL, err := urls.NoteURL(v.webExternalURL, data.ID, data.Key)
	if err != nil {
		renderJSONError(w, http.StatusInternalServerError, "Internal error")
		return
	}

	renderJSON(w, http.StatusCreated, NoteCreatedResponse{
		NoteID:    data.ID,
		NoteURL:   noteURL.String(),
		ExpiresAt: data.ExpiresAt,
	})
}

func (v NoteCreateView) RenderError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, envelope.ErrUnsupportedAlgorithm) {
		renderJSONError(w, http.StatusBadRequest, "Unsupported encryption algorithm")
		return
	}

	if errors.Is(err, expiration.ErrInvalidExpiration) {
		renderJSONError(w, http.StatusBadRequest, "Invalid expiration")
		return
	}

	if errors.Is(err, parsers.ErrInvalidEmail) {
		renderJSONError(w, http.StatusBadRequest, "Invalid email address")
		return
	}

	if errors.Is(err, parsers.ErrInvalidData) {
		renderJSONError(w, http.StatusBadRequest, "Invalid data")
		return
	}

	if isBodyTooLarge(err) {
		renderJSONError(w, http.StatusRequestEntityTooLarge, "Too large")
		return
	}

	renderJSONError(w, http.StatusInternalServerError, "Internal error")
}
