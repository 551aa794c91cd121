package services

import (
	"context"
	"database/sql"
	"errors"
)

var ErrDeleteExpiredFailed = errors.New("delete expired failed")

type ExpiredNoteModel interface {
	DeleteExpired(ctx context.Context, tx *sql.Tx) error
}

// ExpiredNoteManager removes expired notes in bulk, driven by the scheduler.
// Reads enforce expiry on their own, this only reclaims storage.
type ExpiredNoteManager struct {
	db    *sql.DB
	model ExpiredNoteModel
}

func NewExpiredNoteManager(db *sql.DB, model ExpiredNoteModel) *ExpiredNoteManager {
	return &ExpiredNoteManager{
		db:    db,
		model: model,
	}
}

func (d *ExpiredNoteManager) DeleteExpired(ctx context.Context) error {
	tx, err := d.db.Begin()
	if err != nil {
		return errors.Join(ErrDeleteExpiredFailed, err)
	}

	if err := d.model.DeleteExpired(ctx, tx); err != nil {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			return errors.Join(ErrDeleteExpiredFailed, err, rollbackErr)
		}

		return errors.Join(ErrDeleteExpiredFailed, err)
	}

	if err := tx.Commit(); err != nil {
		return errors.Join(ErrDeleteExpiredFailed, err)
	}

	return nil
}
