package models

// PlayerStats holds a player's persisted cross-game counters
type PlayerStats struct {
	// PlayerID is the chat-platform user ID of the player
	PlayerID string

	// Name is the display name last seen for the player
	Name string

	// Games is the number of round outcomes recorded for the player
	Games int

	// Wins is the number of games the player has won
	Wins int

	// Trusts is the number of rounds the player committed trust
	Trusts int

	// Betrays is the number of rounds the player committed betray
	Betrays int
}
