package views

import (
	"errors"
	"net/http"
	"time"

	"github.com/sealnote/sealnote/internal/envelope"
	"github.com/sealnote/sealnote/internal/parsers"
	"github.com/sealnote/sealnote/internal/services"
)

type NoteStatusResponse struct {
	ID               string    `json:"id"`
	RequiresPassword bool      `json:"requiresPassword"`
	ExpiresAt        time.Time `json:"expiresAt"`
	RemainingViews   int       `json:"remainingViews"`
	ExpireOnView     bool      `json:"expireOnView"`
}

func BuildNoteStatusResponse(status *services.NoteStatus) NoteStatusResponse {
	return NoteStatusResponse{
		ID:               status.ID,
		RequiresPassword: status.RequiresPassword,
		ExpiresAt:        status.ExpiresAt,
		RemainingViews:   status.RemainingViews,
		ExpireOnView:     status.ExpireOnView,
	}
}

type NoteStatusView struct{}

func NewNoteStatusView() NoteStatusView {
	return NoteStatusView{}
}

func (v NoteStatusView) Render(w http.ResponseWriter, r *http.Request, response NoteStatusResponse) {
	renderJSON(w, http.StatusOK, response)
}

func (v NoteStatusView) RenderError(w http.ResponseWriter, r *http.Request, err error) {
	renderNoteLookupError(w, err)
}

type NoteDecryptedResponse struct {
	Success        bool   `json:"success"`
	Content        string `json:"content"`
	RemainingViews int    `json:"remainingViews"`
	ExpireOnView   bool   `json:"expireOnView"`
	SenderEmail    string `json:"senderEmail,omitempty"`
	EmailSubject   string `json:"emailSubject,omitempty"`
}

func BuildNoteDecryptedResponse(note *services.DecryptedNote) NoteDecryptedResponse {
	return NoteDecryptedResponse{
		Success:        true,
		Content:        note.Content,
		RemainingViews: note.RemainingViews,
		ExpireOnView:   note.ExpireOnView,
		SenderEmail:    note.SenderEmail,
		EmailSubject:   note.EmailSubject,
	}
}

type NoteDecryptView struct{}

func NewNoteDecryptView() NoteDecryptView {
	return NoteDecryptView{}
}

func (v NoteDecryptView) Render(w http.ResponseWriter, r *http.Request, response NoteDecryptedResponse) {
	renderJSON(w, http.StatusOK, response)
}

func (v NoteDecryptView) RenderError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, services.ErrWrongPassword) {
		renderJSONError(w, http.StatusUnauthorized, "Wrong password")
		return
	}

	if errors.Is(err, envelope.ErrDecryptFailed) {
		renderJSONError(w, http.StatusBadRequest, "Decryption failed")
		return
	}

	if errors.Is(err, envelope.ErrInvalidKeySize) || errors.Is(err, parsers.ErrInvalidKey) {
		renderJSONError(w, http.StatusBadRequest, "Invalid decryption key")
		return
	}

	if errors.Is(err, envelope.ErrMalformedEnvelope) {
		renderJSONError(w, http.StatusBadRequest, "Invalid data")
		return
	}

	renderNoteLookupError(w, err)
}

type NoteDeletedResponse struct {
	Success bool `json:"success"`
}

type NoteDeleteView struct{}

func NewNoteDeleteView() NoteDeleteView {
	return NoteDeleteView{}
}

func (v NoteDeleteView) Render(w http.ResponseWriter, r *http.Request, _ struct{}) {
	renderJSON(w, http.StatusOK, NoteDeletedResponse{Success: true})
}

func (v NoteDeleteView) RenderError(w http.ResponseWriter, r *http.Request, err error) {
	renderNoteLookupError(w, err)
}

func renderNoteLookupError(w http.ResponseWriter, err error) {
	if errors.Is(err, services.ErrNoteExpired) {
		renderJSONError(w, http.StatusGone, "Gone")
		return
	}

	if errors.Is(err, services.ErrNoteNotFound) {
		renderJSONError(w, http.StatusNotFound, "Not found")
		return
	}

	if errors.Is(err, parsers.ErrInvalidUUID) {
		renderJSONError(w, http.StatusBadRequest, "Invalid note id")
		return
	}

	if errors.Is(err, parsers.ErrInvalidData) {
		renderJSONError(w, http.StatusBadRequest, "Invalid data")
		return
	}

	renderJSONError(w, http.StatusInternalServerError, "Internal error")
}
