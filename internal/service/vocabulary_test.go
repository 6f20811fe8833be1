package service

import (
	"context"
	"testing"
	"time"

	"wordbot/internal/domain"
	"wordbot/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestVocabularyService_Submit(t *testing.T) {
	tests := []struct {
		name          string
		entry         domain.VocabularyEntry
		mockError     error
		expectCall    bool
		expectedError error
	}{
		{
			name:       "saved",
			entry:      testutil.NewTestEntry(1, "cat", "кошка", "a small animal"),
			expectCall: true,
		},
		{
			name:          "unauthorized",
			entry:         testutil.NewTestEntry(1, "cat", "кошка", "a small animal"),
			mockError:     domain.ErrUnauthorized,
			expectCall:    true,
			expectedError: domain.ErrUnauthorized,
		},
		{
			name:          "unavailable",
			entry:         testutil.NewTestEntry(1, "cat", "кошка", ""),
			mockError:     domain.ErrStoreUnavailable,
			expectCall:    true,
			expectedError: domain.ErrStoreUnavailable,
		},
		{
			name:       "empty translation",
			entry:      testutil.NewTestEntry(1, "cat", "", ""),
			expectCall: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(testutil.MockVocabularyRepository)
			if tt.expectCall {
				repo.On("Save", mock.Anything, tt.entry).Return(tt.mockError).Once()
			}

			svc := NewVocabularyService(repo, time.Second, nil, testutil.NewTestLogger())

			err := svc.Submit(context.Background(), tt.entry)

			switch {
			case !tt.expectCall:
				assert.Error(t, err)
			case tt.expectedError != nil:
				assert.ErrorIs(t, err, tt.expectedError)
			default:
				assert.NoError(t, err)
			}
			repo.AssertExpectations(t)
			if !tt.expectCall {
				repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestVocabularyService_Submit_RejectedIsReturned(t *testing.T) {
	repo := new(testutil.MockVocabularyRepository)
	rejected := &domain.RejectedError{Status: 400, Body: "bad"}
	repo.On("Save", mock.Anything, mock.Anything).Return(rejected).Once()

	svc := NewVocabularyService(repo, time.Second, nil, testutil.NewTestLogger())

	err := svc.Submit(context.Background(), testutil.NewTestEntry(1, "cat", "кошка", ""))

	var got *domain.RejectedError
	assert.ErrorAs(t, err, &got)
	assert.Equal(t, 400, got.Status)
	repo.AssertNumberOfCalls(t, "Save", 1)
}
