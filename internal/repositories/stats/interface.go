package stats

import (
	"context"

	"github.com/ashveil/oathsandashes/internal/models"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/ashveil/oathsandashes/internal/repositories/stats Repository

// Repository defines the interface for persisted cross-game statistics
type Repository interface {
	// RecordOutcome folds one outcome into a player's counters
	RecordOutcome(ctx context.Context, input *RecordOutcomeInput) error

	// GetStats retrieves a player's counters
	GetStats(ctx context.Context, input *GetStatsInput) (*models.PlayerStats, error)

	// GetLeaderboard retrieves the top players by wins
	GetLeaderboard(ctx context.Context, input *GetLeaderboardInput) (*GetLeaderboardOutput, error)
}
