package services

import (
	"context"
	"database/sql"

	"github.com/sealnote/sealnote/internal/models"
)

// NoteModel is the interface for the secure note model
// It is used to create, read, spend and delete notes
type NoteModel interface {
	CreateNote(ctx context.Context, tx *sql.Tx, note *models.Note) error
	ReadNote(ctx context.Context, tx *sql.Tx, id string) (*models.Note, error)
	UseView(ctx context.Context, tx *sql.Tx, id string) (int, error)
	DeleteNote(ctx context.Context, tx *sql.Tx, id string) error
	DeleteExpired(ctx context.Context, tx *sql.Tx) error
}

// Notifier dispatches the creation notice of a secure note. Delivery is best
// effort, a failure never fails the note creation.
type Notifier interface {
	NoteCreated(notification NoteNotification) error
}
