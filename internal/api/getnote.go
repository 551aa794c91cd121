package api

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/sealnote/sealnote/internal/parsers"
	"github.com/sealnote/sealnote/internal/services"
	"github.com/sealnote/sealnote/internal/views"
)

// NoteStatusReader is the part of the note manager used to look up a note
// without revealing or spending it
type NoteStatusReader interface {
	GetNoteStatus(ctx context.Context, id string) (*services.NoteStatus, error)
}

// NoteStatusHandler is the handler for reading the metadata of a secure note
type NoteStatusHandler struct {
	manager NoteStatusReader
	view    views.View[views.NoteStatusResponse]
	logger  *zap.Logger
}

// NewNoteStatusHandler creates a new NoteStatusHandler instance
func NewNoteStatusHandler(manager NoteStatusReader, view views.View[views.NoteStatusResponse], logger *zap.Logger) NoteStatusHandler {
	return NoteStatusHandler{
		manager: manager,
		view:    view,
		logger:  logger,
	}
}

func (g NoteStatusHandler) handle(w http.ResponseWriter, r *http.Request) error {
	id, err := parsers.ParseNoteID(r)
	if err != nil {
		return errors.Join(ErrRequestParseError, err)
	}

	status, err := g.manager.GetNoteStatus(r.Context(), id)
	if err != nil {
		return err
	}

	g.view.Render(w, r, views.BuildNoteStatusResponse(status))

	return nil
}

// Handle handles http requests to read the metadata of a secure note
func (g NoteStatusHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if err := g.handle(w, r); err != nil {
		g.logger.Error("get note status failed", zap.Error(err))
		g.view.RenderError(w, r, err)
	}
}
