package api

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/sealnote/sealnote/internal/linkstore"
	"github.com/sealnote/sealnote/internal/parsers"
	"github.com/sealnote/sealnote/internal/views"
)

// LinkReader is the part of the link store used to look up a link without
// spending a use
type LinkReader interface {
	Get(id string) (*linkstore.Link, error)
}

// ShareGetHandler is the handler for reading a sharing link
type ShareGetHandler struct {
	store  LinkReader
	view   views.View[views.ShareReadResponse]
	logger *zap.Logger
}

// NewShareGetHandler creates a new ShareGetHandler instance
func NewShareGetHandler(store LinkReader, view views.View[views.ShareReadResponse], logger *zap.Logger) ShareGetHandler {
	return ShareGetHandler{
		store:  store,
		view:   view,
		logger: logger,
	}
}

func (g ShareGetHandler) handle(w http.ResponseWriter, r *http.Request) error {
	id, err := parsers.ParseLinkID(r)
	if err != nil {
		return errors.Join(ErrRequestParseError, err)
	}

	link, err := g.store.Get(id)
	if err != nil {
		return err
	}

	g.view.Render(w, r, views.BuildShareReadResponse(link))

	return nil
}

// Handle handles http requests to read a sharing link
func (g ShareGetHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if err := g.handle(w, r); err != nil {
		g.logger.Error("get share failed", zap.Error(err))
		g.view.RenderError(w, r, err)
	}
}
