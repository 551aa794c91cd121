package services

import (
	"time"

	"github.com/sealnote/sealnote/internal/models"
)

func validateNote(note *models.Note) error {
	if note == nil {
		return ErrNoteNotFound
	}

	if note.ExpiresAt.Before(time.Now()) {
		return ErrNoteExpired
	}

	if note.RemainingViews <= 0 {
		return ErrNoteExpired
	}

	return nil
}
