package usage

import (
	"context"

	"github.com/guyhitalk/educapp-backend/internal/database"
	"github.com/rs/zerolog/log"
)

// Tracker records token usage for a user. Implementations are best-effort
// collaborators: callers log and swallow their errors.
type Tracker interface {
	TrackAPICall(ctx context.Context, userID string, inputTokens, outputTokens int, model string) error
}

// PostgresTracker logs API calls with their estimated cost.
type PostgresTracker struct {
	db *database.DB
}

func NewPostgresTracker(db *database.DB) *PostgresTracker {
	return &PostgresTracker{db: db}
}

func (t *PostgresTracker) TrackAPICall(ctx context.Context, userID string, inputTokens, outputTokens int, model string) error {
	cost := EstimateCost(inputTokens, outputTokens, model)

	err := t.db.LogAPICall(ctx, database.APICall{
		UserID:        userID,
		InputTokens:   inputTokens,
		OutputTokens:  outputTokens,
		EstimatedCost: cost,
		Model:         model,
	})
	if err != nil {
		return err
	}

	log.Info().
		Str("user_id", userID).
		Int("input_tokens", inputTokens).
		Int("output_tokens", outputTokens).
		Float64("cost_usd", cost).
		Msg("API call tracked")

	return nil
}

// NopTracker is used when no usage database is configured.
type NopTracker struct{}

func (NopTracker) TrackAPICall(ctx context.Context, userID string, inputTokens, outputTokens int, model string) error {
	return nil
}
