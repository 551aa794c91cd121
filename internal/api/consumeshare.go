package api

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/sealnote/sealnote/internal/parsers"
	"github.com/sealnote/sealnote/internal/views"
)

// LinkConsumer is the part of the link store used to spend a link use
type LinkConsumer interface {
	Consume(id string) (int, error)
}

// ShareConsumeHandler is the handler for spending a use of a sharing link
type ShareConsumeHandler struct {
	store  LinkConsumer
	view   views.View[int]
	logger *zap.Logger
}

// NewShareConsumeHandler creates a new ShareConsumeHandler instance
func NewShareConsumeHandler(store LinkConsumer, view views.View[int], logger *zap.Logger) ShareConsumeHandler {
	return ShareConsumeHandler{
		store:  store,
		view:   view,
		logger: logger,
	}
}

func (c ShareConsumeHandler) handle(w http.ResponseWriter, r *http.Request) error {
	id, err := parsers.ParseLinkID(r)
	if err != nil {
		return errors.Join(ErrRequestParseError, err)
	}

	remainingUses, err := c.store.Consume(id)
	if err != nil {
		return err
	}

	c.view.Render(w, r, remainingUses)

	return nil
}

// Handle handles http requests to consume a sharing link
func (c ShareConsumeHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if err := c.handle(w, r); err != nil {
		c.logger.Error("consume share failed", zap.Error(err))
		c.view.RenderError(w, r, err)
	}
}
