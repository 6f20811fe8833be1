package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"wordbot/internal/domain"
)

// VocabularyRepo implements repository.VocabularyRepository
type VocabularyRepo struct {
	db *sql.DB
}

// NewVocabularyRepo creates a new vocabulary repository
func NewVocabularyRepo(db *sql.DB) *VocabularyRepo {
	return &VocabularyRepo{db: db}
}

// Save inserts a single entry
func (r *VocabularyRepo) Save(ctx context.Context, entry domain.VocabularyEntry) error {
	query := `
		INSERT INTO vocabulary (user_id, theme, word, translation, definition, definition_lang)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query,
		entry.UserID, entry.Theme, entry.WordEn, entry.WordRu, entry.Definition, string(entry.DefinitionLang),
	)
	if err != nil {
		return fmt.Errorf("insert vocabulary: %w: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// List returns the user's entries for a theme, oldest first
func (r *VocabularyRepo) List(ctx context.Context, userID int64, theme string) ([]domain.VocabularyEntry, error) {
	query := `
		SELECT user_id, theme, word, translation, definition, definition_lang
		FROM vocabulary
		WHERE user_id = $1 AND theme = $2
		ORDER BY created_at, id
	`
	rows, err := r.db.QueryContext(ctx, query, userID, theme)
	if err != nil {
		return nil, fmt.Errorf("query vocabulary: %w: %v", domain.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var entries []domain.VocabularyEntry
	for rows.Next() {
		var e domain.VocabularyEntry
		var lang string
		if err := rows.Scan(&e.UserID, &e.Theme, &e.WordEn, &e.WordRu, &e.Definition, &lang); err != nil {
			return nil, fmt.Errorf("scan vocabulary: %w: %v", domain.ErrStoreUnavailable, err)
		}
		e.DefinitionLang = domain.DefinitionLang(lang)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate vocabulary: %w: %v", domain.ErrStoreUnavailable, err)
	}
	return entries, nil
}
