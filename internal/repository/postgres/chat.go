package postgres

import (
	"context"
	"database/sql"
)

// ChatRepo implements repository.ChatRepository
type ChatRepo struct {
	db *sql.DB
}

// NewChatRepo creates a new chat repository
func NewChatRepo(db *sql.DB) *ChatRepo {
	return &ChatRepo{db: db}
}

// Register records the chat if it is not known yet
func (r *ChatRepo) Register(ctx context.Context, chatID int64) error {
	query := `
		INSERT INTO chats (chat_id)
		VALUES ($1)
		ON CONFLICT (chat_id) DO NOTHING
	`
	_, err := r.db.ExecContext(ctx, query, chatID)
	return err
}

// ListChats returns every registered chat id
func (r *ChatRepo) ListChats(ctx context.Context) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT chat_id FROM chats ORDER BY chat_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}
