package api

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/sealnote/sealnote/internal/key"
	"github.com/sealnote/sealnote/internal/parsers"
	"github.com/sealnote/sealnote/internal/services"
	"github.com/sealnote/sealnote/internal/views"
)

// NoteCreator is the part of the note manager used to create secure notes
type NoteCreator interface {
	CreateNote(ctx context.Context, req services.CreateNoteRequest) (*services.NoteMeta, key.Key, error)
}

// NoteCreateHandler is an http.Handler implementation which creates secure notes
type NoteCreateHandler struct {
	maxDataSize int64
	parser      parsers.Parser[*parsers.CreateNoteRequestData]
	manager     NoteCreator
	view        views.View[views.NoteCreatedData]
	logger      *zap.Logger
}

// NewNoteCreateHandler creates a new NoteCreateHandler
func NewNoteCreateHandler(
	maxDataSize int64,
	parser parsers.Parser[*parsers.CreateNoteRequestData],
	manager NoteCreator,
	view views.View[views.NoteCreatedData],
	logger *zap.Logger,
) NoteCreateHandler {
	return NoteCreateHandler{
		maxDataSize: maxDataSize,
		parser:      parser,
		manager:     manager,
		view:        view,
		logger:      logger,
	}
}

func (c NoteCreateHandler) handle(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, c.maxDataSize)

	data, err := c.parser.Parse(r)
	if err != nil {
		return errors.Join(ErrRequestParseError, err)
	}

	meta, k, err := c.manager.CreateNote(r.Context(), services.CreateNoteRequest{
		Content:        data.Content,
		Algorithm:      data.Algorithm,
		Password:       data.Password,
		Expire:         data.Expiration,
		ExpireOnView:   data.ExpireOnView,
		RecipientEmail: data.RecipientEmail,
		SenderEmail:    data.SenderEmail,
		EmailSubject:   data.EmailSubject,
	})
	if err != nil {
		return err
	}

	c.view.Render(w, r, views.NoteCreatedData{
		ID:        meta.ID,
		Key:       k.String(),
		ExpiresAt: meta.ExpiresAt,
	})

	return nil
}

// Handle handles http requests to create a secure note
func (c NoteCreateHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if err := c.handle(w, r); err != nil {
		c.logger.Error("create note failed", zap.Error(err))
		c.view.RenderError(w, r, err)
	}
}
