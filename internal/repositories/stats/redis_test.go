package stats

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	mr     *miniredis.Miniredis
	client *redis.Client
	repo   Repository
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	// Create a new miniredis server for each test
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	// Create a Redis client connected to the miniredis server
	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	// Create the repository
	repo, err := NewRedis(&Config{
		RedisClient: s.client,
	})
	s.Require().NoError(err)
	s.repo = repo
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) TestRecordOutcomeAccumulates() {
	ctx := context.Background()

	err := s.repo.RecordOutcome(ctx, &RecordOutcomeInput{
		PlayerID: "player-1",
		Name:     "Ana",
		Trusts:   1,
	})
	s.Require().NoError(err)

	err = s.repo.RecordOutcome(ctx, &RecordOutcomeInput{
		PlayerID: "player-1",
		Name:     "Ana",
		Betrays:  1,
	})
	s.Require().NoError(err)

	stats, err := s.repo.GetStats(ctx, &GetStatsInput{PlayerID: "player-1"})
	s.Require().NoError(err)

	s.Equal("Ana", stats.Name)
	s.Equal(2, stats.Games)
	s.Equal(0, stats.Wins)
	s.Equal(1, stats.Trusts)
	s.Equal(1, stats.Betrays)
}

func (s *RedisRepositoryTestSuite) TestRecordOutcomeWin() {
	ctx := context.Background()

	err := s.repo.RecordOutcome(ctx, &RecordOutcomeInput{
		PlayerID: "player-1",
		Name:     "Ana",
		Won:      true,
	})
	s.Require().NoError(err)

	stats, err := s.repo.GetStats(ctx, &GetStatsInput{PlayerID: "player-1"})
	s.Require().NoError(err)
	s.Equal(1, stats.Wins)
	s.Equal(1, stats.Games)
}

func (s *RedisRepositoryTestSuite) TestRecordOutcomeUpdatesName() {
	ctx := context.Background()

	err := s.repo.RecordOutcome(ctx, &RecordOutcomeInput{
		PlayerID: "player-1",
		Name:     "Ana",
	})
	s.Require().NoError(err)

	err = s.repo.RecordOutcome(ctx, &RecordOutcomeInput{
		PlayerID: "player-1",
		Name:     "Ana the Pale",
	})
	s.Require().NoError(err)

	stats, err := s.repo.GetStats(ctx, &GetStatsInput{PlayerID: "player-1"})
	s.Require().NoError(err)
	s.Equal("Ana the Pale", stats.Name)
}

func (s *RedisRepositoryTestSuite) TestGetStatsNotFound() {
	_, err := s.repo.GetStats(context.Background(), &GetStatsInput{
		PlayerID: "nobody",
	})
	s.Require().ErrorIs(err, ErrStatsNotFound)
}

func (s *RedisRepositoryTestSuite) TestGetLeaderboardOrdering() {
	ctx := context.Background()

	wins := map[string]int{"player-1": 1, "player-2": 3, "player-3": 2}
	names := map[string]string{"player-1": "Ana", "player-2": "Bram", "player-3": "Cato"}

	for playerID, count := range wins {
		for i := 0; i < count; i++ {
			err := s.repo.RecordOutcome(ctx, &RecordOutcomeInput{
				PlayerID: playerID,
				Name:     names[playerID],
				Won:      true,
			})
			s.Require().NoError(err)
		}
	}

	output, err := s.repo.GetLeaderboard(ctx, &GetLeaderboardInput{Limit: 10})
	s.Require().NoError(err)
	s.Require().Len(output.Entries, 3)

	s.Equal("player-2", output.Entries[0].PlayerID)
	s.Equal("Bram", output.Entries[0].Name)
	s.Equal(3, output.Entries[0].Wins)
	s.Equal("player-3", output.Entries[1].PlayerID)
	s.Equal("player-1", output.Entries[2].PlayerID)
}

func (s *RedisRepositoryTestSuite) TestGetLeaderboardLimit() {
	ctx := context.Background()

	for _, playerID := range []string{"a", "b", "c"} {
		err := s.repo.RecordOutcome(ctx, &RecordOutcomeInput{
			PlayerID: playerID,
			Name:     playerID,
			Won:      true,
		})
		s.Require().NoError(err)
	}

	output, err := s.repo.GetLeaderboard(ctx, &GetLeaderboardInput{Limit: 2})
	s.Require().NoError(err)
	s.Len(output.Entries, 2)
}

func (s *RedisRepositoryTestSuite) TestGetLeaderboardEmpty() {
	output, err := s.repo.GetLeaderboard(context.Background(), &GetLeaderboardInput{Limit: 10})
	s.Require().NoError(err)
	s.Empty(output.Entries)
}
