package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

func (db *DB) SaveConversation(ctx context.Context, userID, question, answer, subject string) error {
	query := `
		INSERT INTO conversations (id, user_id, question, answer, subject, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())`

	_, err := db.Pool.Exec(ctx, query, uuid.New().String(), userID, question, answer, subject)
	if err != nil {
		return fmt.Errorf("failed to save conversation: %w", err)
	}

	return nil
}

func (db *DB) RecentConversations(ctx context.Context, userID string, limit int) ([]Conversation, error) {
	query := `
		SELECT id, user_id, question, answer, subject, created_at
		FROM conversations
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := db.Pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch conversations: %w", err)
	}
	defer rows.Close()

	var conversations []Conversation
	for rows.Next() {
		var c Conversation
		if err := rows.Scan(&c.ID, &c.UserID, &c.Question, &c.Answer, &c.Subject, &c.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan conversation: %w", err)
		}
		conversations = append(conversations, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return conversations, nil
}

func (db *DB) LogAPICall(ctx context.Context, call APICall) error {
	query := `
		INSERT INTO api_calls (user_id, input_tokens, output_tokens, estimated_cost, model, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())`

	_, err := db.Pool.Exec(ctx, query, call.UserID, call.InputTokens, call.OutputTokens, call.EstimatedCost, call.Model)
	if err != nil {
		return fmt.Errorf("failed to log api call: %w", err)
	}

	return nil
}
