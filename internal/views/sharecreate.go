package views

import (
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/sealnote/sealnote/internal/parsers"
	"github.com/sealnote/sealnote/internal/parsers/expiration"
	"github.com/sealnote/sealnote/internal/parsers/usecount"
	"github.com/sealnote/sealnote/internal/urls"
)

// ShareCreatedData carries the created link and its key to the view. The key
// only ever leaves the server inside the URL fragment.
type ShareCreatedData struct {
	ID        string
	Key       string
	ExpiresAt time.Time
	ExpiresIn time.Duration
}

type ShareCreatedResponse struct {
	ID        string    `json:"id"`
	ShareURL  string    `json:"shareUrl"`
	ExpiresAt time.Time `json:"expiresAt"`
	ExpiresIn int       `json:"expiresIn"`
}

type ShareCreateView struct {
	webExternalURL *url.URL
}

func NewShareCreateView(webExternalURL *url.URL) ShareCreateView {
	return ShareCreateView{webExternalURL: webExternalURL}
}

func (v ShareCreateView) Render(w http.ResponseWriter, r *http.Request, data ShareCreatedData) {
	shareURL, err := urls.ShareURL(v.webExternalURL, data.ID, data.Key)
	if err != nil {
		renderJSONError(w, http.StatusInternalServerError, "Internal error")
		return
	}

	renderJSON(w, http.StatusCreated, ShareCreatedResponse{
		ID:        data.ID,
		ShareURL:  shareURL.String(),
		ExpiresAt: data.ExpiresAt,
		ExpiresIn: int(data.ExpiresIn.Seconds()),
	})
}

func (v ShareCreateView) RenderError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, expiration.ErrInvalidExpiration) {
		renderJSONError(w, http.StatusBadRequest, "Invalid expiration")
		return
	}

	if errors.Is(err, usecount.ErrInvalidUseCount) {
		renderJSONError(w, http.StatusBadRequest, "Invalid use count")
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
