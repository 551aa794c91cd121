package views

import (
	"errors"
	"net/http"
	"time"

	"github.com/sealnote/sealnote/internal/envelope"
	"github.com/sealnote/sealnote/internal/linkstore"
	"github.com/sealnote/sealnote/internal/parsers"
)

type ShareReadResponse struct {
	ID            string             `json:"id"`
	EncryptedData *envelope.Envelope `json:"encryptedData"`
	ExpiresAt     time.Time          `json:"expiresAt"`
	RemainingUses int                `json:"remainingUses"`
}

func BuildShareReadResponse(link *linkstore.Link) ShareReadResponse {
	return ShareReadResponse{
		ID:            link.ID,
		EncryptedData: link.Envelope,
		ExpiresAt:     link.ExpiresAt,
		RemainingUses: link.RemainingUses,
	}
}

type ShareReadView struct{}

func NewShareReadView() ShareReadView {
	return ShareReadView{}
}

func (v ShareReadView) Render(w http.ResponseWriter, r *http.Request, response ShareReadResponse) {
	renderJSON(w, http.StatusOK, response)
}

func (v ShareReadView) RenderError(w http.ResponseWriter, r *http.Request, err error) {
	renderShareLookupError(w, err)
}

type ShareConsumedResponse struct {
	Success       bool `json:"success"`
	RemainingUses int  `json:"remainingUses"`
}

type ShareConsumeView struct{}

func NewShareConsumeView() ShareConsumeView {
	return ShareConsumeView{}
}

func (v ShareConsumeView) Render(w http.ResponseWriter, r *http.Request, remainingUses int) {
	renderJSON(w, http.StatusOK, ShareConsumedResponse{
		Success:       true,
		RemainingUses: remainingUses,
	})
}

func (v ShareConsumeView) RenderError(w http.ResponseWriter, r *http.Request, err error) {
	renderShareLookupError(w, err)
}

func renderShareLookupError(w http.ResponseWriter, err error) {
	if errors.Is(err, linkstore.ErrLinkGone) {
		renderJSONError(w, http.StatusGone, "Gone")
		return
	}

	if errors.Is(err, linkstore.ErrLinkNotFound) {
		renderJSONError(w, http.StatusNotFound, "Not found")
		return
	}

	if errors.Is(err, parsers.ErrInvalidLinkID) {
		renderJSONError(w, http.StatusBadRequest, "Invalid link id")
		return
	}

	renderJSONError(w, http.StatusInternalServerError, "Internal error")
}
