package api

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/sealnote/sealnote/internal/parsers"
	"github.com/sealnote/sealnote/internal/views"
)

// NoteDeleter is the part of the note manager used to remove a note
type NoteDeleter interface {
	DeleteNote(ctx context.Context, id string) error
}

// NoteDeleteHandler is the handler for deleting a secure note
type NoteDeleteHandler struct {
	manager NoteDeleter
	view    views.View[struct{}]
	logger  *zap.Logger
}

// NewNoteDeleteHandler creates a new NoteDeleteHandler instance
func NewNoteDeleteHandler(manager NoteDeleter, view views.View[struct{}], logger *zap.Logger) NoteDeleteHandler {
	return NoteDeleteHandler{
		manager: manager,
		view:    view,
		logger:  logger,
	}
}

func (d NoteDeleteHandler) handle(w http.ResponseWriter, r *http.Request) error {
	id, err := parsers.ParseNoteID(r)
	if err != nil {
		return errors.Join(ErrRequestParseError, err)
	}

	if err := d.manager.DeleteNote(r.Context(), id); err != nil {
		return err
	}

	d.view.Render(w, r, struct{}{})

	return nil
}

// Handle handles http requests to delete a secure note
func (d NoteDeleteHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if err := d.handle(w, r); err != nil {
		d.logger.Error("delete note failed", zap.Error(err))
		d.view.RenderError(w, r, err)
	}
}
