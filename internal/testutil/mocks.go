package testutil

import (
	"context"

	"wordbot/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockTranslator is a mock for provider.Translator
type MockTranslator struct {
	mock.Mock
	ProviderName string
}

func (m *MockTranslator) Name() string {
	return m.ProviderName
}

func (m *MockTranslator) Translate(ctx context.Context, text string, src, dest domain.Lang) (string, error) {
	args := m.Called(ctx, text, src, dest)
	return args.String(0), args.Error(1)
}

// MockDictionary is a mock for provider.Dictionary
type MockDictionary struct {
	mock.Mock
}

func (m *MockDictionary) Name() string {
	return "MockDictionary"
}

func (m *MockDictionary) Lookup(ctx context.Context, word string) (string, error) {
	args := m.Called(ctx, word)
	return args.String(0), args.Error(1)
}

// MockVocabularyRepository is a mock for VocabularyRepository
type MockVocabularyRepository struct {
	mock.Mock
}

func (m *MockVocabularyRepository) Save(ctx context.Context, entry domain.VocabularyEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockVocabularyRepository) List(ctx context.Context, userID int64, theme string) ([]domain.VocabularyEntry, error) {
	args := m.Called(ctx, userID, theme)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.VocabularyEntry), args.Error(1)
}

// MockChatRepository is a mock for ChatRepository
type MockChatRepository struct {
	mock.Mock
}

func (m *MockChatRepository) Register(ctx context.Context, chatID int64) error {
	args := m.Called(ctx, chatID)
	return args.Error(0)
}

func (m *MockChatRepository) ListChats(ctx context.Context) ([]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}
