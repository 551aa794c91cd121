package api

import (
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/sealnote/sealnote/internal/key"
	"github.com/sealnote/sealnote/internal/linkstore"
	"github.com/sealnote/sealnote/internal/parsers"
	"github.com/sealnote/sealnote/internal/views"
)

// LinkCreator is the part of the link store used to create sharing links
type LinkCreator interface {
	Create(password string, note string, expire time.Duration, useCount int) (*linkstore.Link, key.Key, error)
}

// ShareCreateHandler is an http.Handler implementation which creates sharing links
type ShareCreateHandler struct {
	maxDataSize int64
	parser      parsers.Parser[*parsers.CreateShareRequestData]
	store       LinkCreator
	view        views.View[views.ShareCreatedData]
	logger      *zap.Logger
}

// NewShareCreateHandler creates a new ShareCreateHandler
func NewShareCreateHandler(
	maxDataSize int64,
	parser parsers.Parser[*parsers.CreateShareRequestData],
	store LinkCreator,
	view views.View[views.ShareCreatedData],
	logger *zap.Logger,
) ShareCreateHandler {
	return ShareCreateHandler{
		maxDataSize: maxDataSize,
		parser:      parser,
		store:       store,
		view:        view,
		logger:      logger,
	}
}

func (c ShareCreateHandler) handle(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, c.maxDataSize)

	data, err := c.parser.Parse(r)
	if err != nil {
		return errors.Join(ErrRequestParseError, err)
	}

	link, k, err := c.store.Create(data.Password, data.Note, data.Expiration, data.UseCount)
	if err != nil {
		return err
	}

	c.view.Render(w, r, views.ShareCreatedData{
		ID:        link.ID,
		Key:       k.String(),
		ExpiresAt: link.ExpiresAt,
		ExpiresIn: data.Expiration,
	})

	return nil
}

// Handle handles http requests to create a sharing link
func (c ShareCreateHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if err := c.handle(w, r); err != nil {
		c.logger.Error("create share failed", zap.Error(err))
		c.view.RenderError(w, r, err)
	}
}
