package stats

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/ashveil/oathsandashes/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	statsKeyPrefix = "stats:"

	// leaderboardKey is the wins-ordered sorted set of player IDs
	leaderboardKey = "stats_leaderboard"
)

// ErrStatsNotFound is returned when a player has no recorded stats
var ErrStatsNotFound = errors.New("stats not found")

// Config holds configuration for the Redis stats repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed stats repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	// Validate config
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

// RecordOutcome folds one outcome into a player's counters
func (r *redisRepository) RecordOutcome(ctx context.Context, input *RecordOutcomeInput) error {
	if input == nil || input.PlayerID == "" {
		return errors.New("input and player ID cannot be empty")
	}

	statsKey := fmt.Sprintf("%s%s", statsKeyPrefix, input.PlayerID)

	// Create a Redis transaction
	pipe := r.client.Pipeline()

	pipe.HSet(ctx, statsKey, "name", input.Name)
	pipe.HIncrBy(ctx, statsKey, "games", 1)

	if input.Trusts > 0 {
		pipe.HIncrBy(ctx, statsKey, "trusts", int64(input.Trusts))
	}
	if input.Betrays > 0 {
		pipe.HIncrBy(ctx, statsKey, "betrays", int64(input.Betrays))
	}

	if input.Won {
		pipe.HIncrBy(ctx, statsKey, "wins", 1)
		pipe.ZIncrBy(ctx, leaderboardKey, 1, input.PlayerID)
	}

	// Execute the transaction
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to record outcome: %w", err)
	}

	return nil
}

// GetStats retrieves a player's counters from Redis
func (r *redisRepository) GetStats(ctx context.Context, input *GetStatsInput) (*models.PlayerStats, error) {
	if input == nil || input.PlayerID == "" {
		return nil, errors.New("input and player ID cannot be empty")
	}

	statsKey := fmt.Sprintf("%s%s", statsKeyPrefix, input.PlayerID)
	fields, err := r.client.HGetAll(ctx, statsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}

	if len(fields) == 0 {
		return nil, ErrStatsNotFound
	}

	return &models.PlayerStats{
		PlayerID: input.PlayerID,
		Name:     fields["name"],
		Games:    atoiField(fields, "games"),
		Wins:     atoiField(fields, "wins"),
		Trusts:   atoiField(fields, "trusts"),
		Betrays:  atoiField(fields, "betrays"),
	}, nil
}

// GetLeaderboard retrieves the top players by wins
func (r *redisRepository) GetLeaderboard(ctx context.Context, input *GetLeaderboardInput) (*GetLeaderboardOutput, error) {
	if input == nil || input.Limit <= 0 {
		return nil, errors.New("input and limit cannot be empty")
	}

	members, err := r.client.ZRevRangeWithScores(ctx, leaderboardKey, 0, int64(input.Limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard: %w", err)
	}

	if len(members) == 0 {
		return &GetLeaderboardOutput{Entries: []LeaderboardEntry{}}, nil
	}

	// Fetch display names in one pipeline
	pipe := r.client.Pipeline()
	nameCommands := make([]*redis.StringCmd, len(members))
	for i, member := range members {
		playerID := member.Member.(string)
		statsKey := fmt.Sprintf("%s%s", statsKeyPrefix, playerID)
		nameCommands[i] = pipe.HGet(ctx, statsKey, "name")
	}

	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to get leaderboard names: %w", err)
	}

	entries := make([]LeaderboardEntry, 0, len(members))
	for i, member := range members {
		name, err := nameCommands[i].Result()
		if err != nil && err != redis.Nil {
			return nil, fmt.Errorf("failed to get leaderboard name: %w", err)
		}

		entries = append(entries, LeaderboardEntry{
			PlayerID: member.Member.(string),
			Name:     name,
			Wins:     int(member.Score),
		})
	}

	return &GetLeaderboardOutput{Entries: entries}, nil
}

func atoiField(fields map[string]string, key string) int {
	value, err := strconv.Atoi(fields[key])
	if err != nil {
		return 0
	}
	return value
}
