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

// NoteDecrypter is the part of the note manager used to reveal a note
type NoteDecrypter interface {
	DecryptNote(ctx context.Context, id string, password string, k key.Key) (*services.DecryptedNote, error)
}

// NoteDecryptHandler is the handler for revealing the content of a secure note
type NoteDecryptHandler struct {
	maxDataSize int64
	parser      parsers.Parser[*parsers.DecryptNoteRequestData]
	manager     NoteDecrypter
	view        views.View[views.NoteDecryptedResponse]
	logger      *zap.Logger
}

// NewNoteDecryptHandler creates a new NoteDecryptHandler instance
func NewNoteDecryptHandler(
	maxDataSize int64,
	parser parsers.Parser[*parsers.DecryptNoteRequestData],
	manager NoteDecrypter,
	view views.View[views.NoteDecryptedResponse],
	logger *zap.Logger,
) NoteDecryptHandler {
	return NoteDecryptHandler{
		maxDataSize: maxDataSize,
		parser:      parser,
		manager:     manager,
		view:        view,
		logger:      logger,
	}
}

func (d NoteDecryptHandler) handle(w http.ResponseWriter, r *http.Request) error {
	id, err := parsers.ParseNoteID(r)
	if err != nil {
		return errors.Join(ErrRequestParseError, err)
	}

	r.Body = http.MaxBytesReader(w, r.Body, d.maxDataSize)

	data, err := d.parser.Parse(r)
	if err != nil {
		return errors.Join(ErrRequestParseError, err)
	}

	note, err := d.manager.DecryptNote(r.Context(), id, data.Password, data.Key)
	if err != nil {
		return err
	}

	d.view.Render(w, r, views.BuildNoteDecryptedResponse(note))

	return nil
}

// Handle handles http requests to reveal a secure note
func (d NoteDecryptHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if err := d.handle(w, r); err != nil {
		d.logger.Error("decrypt note failed", zap.Error(err))
		d.view.RenderError(w, r, err)
	}
}
