package narration

import (
	"github.com/ashveil/oathsandashes/internal/engine"
	"github.com/ashveil/oathsandashes/internal/models"
)

// RosterEvent distinguishes the public roster announcements
type RosterEvent string

const (
	// RosterEventJoined announces a lobby join
	RosterEventJoined RosterEvent = "joined"

	// RosterEventFled announces a lobby departure
	RosterEventFled RosterEvent = "fled"

	// RosterEventSelfEliminated announces a mid-game departure
	RosterEventSelfEliminated RosterEvent = "self_eliminated"
)

// ServiceConfig holds configuration for the narration service
type ServiceConfig struct {
	// Optional seed for deterministic text selection in tests
	Seed int64
}

// GetPhaseAnnouncementInput contains the phase being opened
type GetPhaseAnnouncementInput struct {
	// Phase is the phase being announced
	Phase models.Phase

	// Round is the current round number
	Round int

	// Seconds is the phase duration shown to the room
	Seconds int
}

// GetPhaseAnnouncementOutput contains the rendered announcement
type GetPhaseAnnouncementOutput struct {
	Message string
}

// GetPromptInput selects the commitment or curse prompt
type GetPromptInput struct {
	// Dead selects the curse prompt over the commitment prompt
	Dead bool
}

// GetPromptOutput contains the rendered prompt
type GetPromptOutput struct {
	Message string
}

// GetRosterEventInput contains a roster announcement to render
type GetRosterEventInput struct {
	Event RosterEvent
	Name  string
}

// GetRosterEventOutput contains the rendered announcement
type GetRosterEventOutput struct {
	Message string
}

// GetChronicleLineInput contains one resolved pair's public classification
type GetChronicleLineInput struct {
	// Category is the public outcome classification
	Category engine.NarrationCategory

	// SubjectName leads the line; ObjectName follows
	SubjectName string
	ObjectName  string

	// SubjectAction distinguishes placeholder narration variants
	SubjectAction models.Action
}

// GetChronicleLineOutput contains the rendered history line
type GetChronicleLineOutput struct {
	Message string
}

// GetWhisperInput contains one side's private classification
type GetWhisperInput struct {
	Category engine.WhisperCategory
}

// GetWhisperOutput contains the selected dread line
type GetWhisperOutput struct {
	Message string
}

// GetIntelInput contains a Veil Scribe reveal to render
type GetIntelInput struct {
	OpponentName   string
	OpponentAction models.Action
}

// GetIntelOutput contains the rendered reveal
type GetIntelOutput struct {
	Message string
}

// GetAnchorOutput contains the post-hold beat
type GetAnchorOutput struct {
	Message string
}

// StandingEntry is one row of the aftermath standings board
type StandingEntry struct {
	Name     string
	Vitality int
	Alive    bool
}

// GetAftermathInput contains the round's deaths and standings
type GetAftermathInput struct {
	// Deaths holds display names of participants claimed this round
	Deaths []string

	// Standings holds every participant, ordered by vitality descending
	Standings []StandingEntry
}

// GetAftermathOutput contains the rendered aftermath broadcast
type GetAftermathOutput struct {
	Message string
}

// GetGameOverInput describes how the session ended
type GetGameOverInput struct {
	// WinnerName is empty when no one survived
	WinnerName string

	// Aborted marks a lobby that never reached the minimum count
	Aborted bool

	// Faulted marks a session the driver had to stop mid-game
	Faulted bool
}

// GetGameOverOutput contains the terminal broadcast
type GetGameOverOutput struct {
	Message string
}

// GetTitleInput contains the stats a title is derived from
type GetTitleInput struct {
	Stats *models.PlayerStats
}

// GetTitleOutput contains the derived honorific
type GetTitleOutput struct {
	Title string
}

// RenderStatsInput contains a player's stats card data
type RenderStatsInput struct {
	Stats *models.PlayerStats
}

// RenderStatsOutput contains the rendered card
type RenderStatsOutput struct {
	Message string
}

// LeaderboardRow is one rendered leaderboard entry
type LeaderboardRow struct {
	Name string
	Wins int
}

// RenderLeaderboardInput contains the rows to render, best first
type RenderLeaderboardInput struct {
	Rows []LeaderboardRow
}

// RenderLeaderboardOutput contains the rendered board
type RenderLeaderboardOutput struct {
	Message string
}
