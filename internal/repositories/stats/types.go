package stats

// RecordOutcomeInput contains one outcome to fold into a player's counters.
// Trusts and Betrays carry the round's committed-action tally; Won is set
// only by the end-of-game record.
type RecordOutcomeInput struct {
	// PlayerID is the chat-platform user ID of the player
	PlayerID string

	// Name is the player's current display name
	Name string

	// Won indicates the player won the game this record closes
	Won bool

	// Trusts is the number of trust commitments to add
	Trusts int

	// Betrays is the number of betray commitments to add
	Betrays int
}

// GetStatsInput contains parameters for retrieving a player's counters
type GetStatsInput struct {
	PlayerID string
}

// GetLeaderboardInput contains parameters for retrieving the leaderboard
type GetLeaderboardInput struct {
	// Limit caps the number of entries returned
	Limit int
}

// LeaderboardEntry represents a single entry in the leaderboard
type LeaderboardEntry struct {
	PlayerID string
	Name     string
	Wins     int
}

// GetLeaderboardOutput contains the retrieved leaderboard entries, ordered
// by wins descending
type GetLeaderboardOutput struct {
	Entries []LeaderboardEntry
}
