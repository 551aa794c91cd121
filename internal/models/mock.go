package models

import (
	"context"
	"database/sql"

	"github.com/stretchr/testify/mock"
)

type MockNoteModel struct {
	mock.Mock
}

func (m *MockNoteModel) CreateNote(ctx context.Context, tx *sql.Tx, note *Note) error {
	args := m.Called(ctx, tx, note)
	return args.Error(0)
}

func (m *MockNoteModel) ReadNote(ctx context.Context, tx *sql.Tx, id string) (*Note, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Note), args.Error(1)
}

func (m *MockNoteModel) UseView(ctx context.Context, tx *sql.Tx, id string) (int, error) {
	args := m.Called(ctx, tx, id)
	return args.Int(0), args.Error(1)
}

func (m *MockNoteModel) DeleteNote(ctx context.Context, tx *sql.Tx, id string) error {
	args := m.Called(ctx, tx, id)
	return args.Error(0)
}

func (m *MockNoteModel) DeleteExpired(ctx context.Context, tx *sql.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}
