package migrate

import (
	"context"
	"database/sql"
	"fmt"
)

type NoteMigration struct{}

func NewNoteMigration() *NoteMigration {
	return &NoteMigration{}
}

func (*NoteMigration) Create(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS secure_notes (
		id uuid PRIMARY KEY,
		encrypted_data JSONB NOT NULL,
		requires_password BOOLEAN NOT NULL DEFAULT FALSE,
		password_hash TEXT,
		expires_at TIMESTAMPTZ NOT NULL,
		remaining_views SMALLINT NOT NULL DEFAULT 1,
		expire_on_view BOOLEAN NOT NULL DEFAULT FALSE,
		sender_email TEXT,
		email_subject TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`)

	if err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}

	return nil
}

func (*NoteMigration) Alter(ctx context.Context, tx *sql.Tx) error {
	// expiry sweeps scan by expires_at
	_, err := tx.ExecContext(ctx, "CREATE INDEX IF NOT EXISTS idx_secure_notes_expires_at ON secure_notes (expires_at);")
	if err != nil {
		return fmt.Errorf("failed to create expires_at index: %w", err)
	}

	return nil
}
