package api

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/sealnote/sealnote/internal/key"
	"github.com/sealnote/sealnote/internal/services"
)

type MockNoteService struct {
	mock.Mock
}

func (m *MockNoteService) CreateNote(ctx context.Context, req services.CreateNoteRequest) (*services.NoteMeta, key.Key, error) {
	args := m.Called(ctx, req)
	var meta *services.NoteMeta
	if args.Get(0) != nil {
		meta = args.Get(0).(*services.NoteMeta)
	}
	var k key.Key
	if args.Get(1) != nil {
		k = args.Get(1).(key.Key)
	}
	return meta, k, args.Error(2)
}

func (m *MockNoteService) GetNoteStatus(ctx context.Context, id string) (*services.NoteStatus, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.NoteStatus), args.Error(1)
}

func (m *MockNoteService) DecryptNote(ctx context.Context, id string, password string, k key.Key) (*services.DecryptedNote, error) {
	args := m.Called(ctx, id, password, k)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.DecryptedNote), args.Error(1)
}

func (m *MockNoteService) DeleteNote(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
