package models

import (
	"context"
	"database/sql"
	"errors"
	"time"

	// import postgresql driver
	_ "github.com/lib/pq"
)

var ErrNoteNotFound = errors.New("note not found")
var ErrCreateNote = errors.New("failed to create note")

// Note is a secure_notes row. EncryptedData holds the serialized envelope,
// the decryption key is never stored.
//
// id uuid PRIMARY KEY,
// encrypted_data JSONB NOT NULL,
// requires_password BOOLEAN,
// password_hash TEXT,
// expires_at TIMESTAMPTZ,
// remaining_views SMALLINT DEFAULT 1,
// expire_on_view BOOLEAN,
// sender_email TEXT,
// email_subject TEXT,
// created_at TIMESTAMPTZ,
// updated_at TIMESTAMPTZ
type Note struct {
	ID               string
	EncryptedData    []byte
	RequiresPassword bool
	PasswordHash     sql.NullString
	ExpiresAt        time.Time
	RemainingViews   int
	ExpireOnView     bool
	SenderEmail      sql.NullString
	EmailSubject     sql.NullString
	Created          time.Time
	Updated          time.Time
}

type NoteModel struct {
}

// CreateNote inserts a new note row
func (m *NoteModel) CreateNote(ctx context.Context, tx *sql.Tx, note *Note) error {
	now := time.Now()
	res, err := tx.ExecContext(ctx, `INSERT INTO secure_notes
		(id, encrypted_data, requires_password, password_hash, expires_at, remaining_views, expire_on_view, sender_email, email_subject, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10);`,
		note.ID,
		note.EncryptedData,
		note.RequiresPassword,
		note.PasswordHash,
		note.ExpiresAt,
		note.RemainingViews,
		note.ExpireOnView,
		note.SenderEmail,
		note.EmailSubject,
		now,
	)

	if err != nil {
		return errors.Join(err, ErrCreateNote)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return errors.Join(err, ErrCreateNote)
	}

	if rows != 1 {
		return ErrCreateNote
	}

	note.Created = now
	note.Updated = now

	return nil
}

// ReadNote reads a note row by id
func (m *NoteModel) ReadNote(ctx context.Context, tx *sql.Tx, id string) (*Note, error) {
	row := tx.QueryRowContext(ctx, `SELECT id, encrypted_data, requires_password, password_hash, expires_at, remaining_views, expire_on_view, sender_email, email_subject, created_at, updated_at
		FROM secure_notes WHERE id=$1 LIMIT 1`, id)

	var n Note
	err := row.Scan(
		&n.ID,
		&n.EncryptedData,
		&n.RequiresPassword,
		&n.PasswordHash,
		&n.ExpiresAt,
		&n.RemainingViews,
		&n.ExpireOnView,
		&n.SenderEmail,
		&n.EmailSubject,
		&n.Created,
		&n.Updated,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}

	return &n, nil
}

// UseView decrements remaining_views only while it is still positive, so two
// concurrent reads can not both spend the last view. Returns the new count.
func (m *NoteModel) UseView(ctx context.Context, tx *sql.Tx, id string) (int, error) {
	row := tx.QueryRowContext(ctx, "UPDATE secure_notes SET remaining_views = remaining_views - 1, updated_at = NOW() WHERE id = $1 AND remaining_views > 0 RETURNING remaining_views", id)

	var remaining int
	if err := row.Scan(&remaining); err != nil {
		if err == sql.ErrNoRows {
			return 0, ErrNoteNotFound
		}
		return 0, err
	}

	return remaining, nil
}

// DeleteNote deletes a note row, returns ErrNoteNotFound if no row matched
func (m *NoteModel) DeleteNote(ctx context.Context, tx *sql.Tx, id string) error {
	res, err := tx.ExecContext(ctx, "DELETE FROM secure_notes WHERE id=$1", id)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrNoteNotFound
	}

	return nil
}

// DeleteExpired removes every note whose expiry passed
func (m *NoteModel) DeleteExpired(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, "DELETE FROM secure_notes WHERE expires_at < NOW()")

	return err
}
