package postgres

import (
	"context"
	"fmt"
	"testing"

	"wordbot/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestVocabularyRepo_Save(t *testing.T) {
	tests := []struct {
		name          string
		mockError     error
		expectedError bool
	}{
		{
			name:          "saved",
			mockError:     nil,
			expectedError: false,
		},
		{
			name:          "database error",
			mockError:     fmt.Errorf("connection reset"),
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			assert.NoError(t, err)
			defer db.Close()

			repo := NewVocabularyRepo(db)
			entry := domain.NewVocabularyEntry(123, "hello", "привет", "used as a greeting", domain.DefinitionEnglish)

			exp := mock.ExpectExec("INSERT INTO vocabulary").
				WithArgs(int64(123), "General", "hello", "привет", "used as a greeting", "en")
			if tt.mockError != nil {
				exp.WillReturnError(tt.mockError)
			} else {
				exp.WillReturnResult(sqlmock.NewResult(1, 1))
			}

			err = repo.Save(context.Background(), entry)

			if tt.expectedError {
				assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestVocabularyRepo_List(t *testing.T) {
	tests := []struct {
		name          string
		mockRows      *sqlmock.Rows
		mockError     error
		expectedCount int
		expectedError bool
	}{
		{
			name: "entries found",
			mockRows: sqlmock.NewRows([]string{"user_id", "theme", "word", "translation", "definition", "definition_lang"}).
				AddRow(123, "General", "hello", "привет", "used as a greeting", "en").
				AddRow(123, "General", "cat", "кошка", "", "custom"),
			expectedCount: 2,
		},
		{
			name:          "no entries",
			mockRows:      sqlmock.NewRows([]string{"user_id", "theme", "word", "translation", "definition", "definition_lang"}),
			expectedCount: 0,
		},
		{
			name:          "query error",
			mockError:     fmt.Errorf("database error"),
			expectedError: true,
		},
		{
			name: "scan error",
			mockRows: sqlmock.NewRows([]string{"user_id", "theme", "word", "translation", "definition", "definition_lang"}).
				AddRow("invalid", "General", "hello", "привет", "", "en"),
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			assert.NoError(t, err)
			defer db.Close()

			repo := NewVocabularyRepo(db)

			exp := mock.ExpectQuery("SELECT (.+) FROM vocabulary").WithArgs(int64(123), "General")
			if tt.mockError != nil {
				exp.WillReturnError(tt.mockError)
			} else {
				exp.WillReturnRows(tt.mockRows)
			}

			entries, err := repo.List(context.Background(), 123, domain.DefaultTheme)

			if tt.expectedError {
				assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
			} else {
				assert.NoError(t, err)
				assert.Len(t, entries, tt.expectedCount)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestVocabularyRepo_List_MapsColumns(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM vocabulary").
		WithArgs(int64(5), "General").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "theme", "word", "translation", "definition", "definition_lang"}).
			AddRow(5, "General", "house", "дом", "здание для жилья", "ru"))

	entries, err := NewVocabularyRepo(db).List(context.Background(), 5, domain.DefaultTheme)

	assert.NoError(t, err)
	assert.Equal(t, []domain.VocabularyEntry{
		domain.NewVocabularyEntry(5, "house", "дом", "здание для жилья", domain.DefinitionRussian),
	}, entries)
}
