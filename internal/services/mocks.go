package services

import (
	"github.com/stretchr/testify/mock"
	"gopkg.in/gomail.v2"
)

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NoteCreated(notification NoteNotification) error {
	args := m.Called(notification)
	return args.Error(0)
}

type MockMessageSender struct {
	mock.Mock
}

func (m *MockMessageSender) DialAndSend(msg ...*gomail.Message) error {
	args := m.Called(msg)
	return args.Error(0)
}

type MockPasswordHasher struct {
	mock.Mock
}

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Compare(hash string, password string) error {
	args := m.Called(hash, password)
	return args.Error(0)
}
