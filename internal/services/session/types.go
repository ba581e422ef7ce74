package session

import (
	"time"

	"github.com/ashveil/oathsandashes/internal/common/clock"
	"github.com/ashveil/oathsandashes/internal/common/uuid"
	"github.com/ashveil/oathsandashes/internal/models"
	statsRepo "github.com/ashveil/oathsandashes/internal/repositories/stats"
	"github.com/ashveil/oathsandashes/internal/services/narration"
)

// Defaults for the session configuration
const (
	DefaultMinPlayers       = 2
	DefaultStartingVitality = 50
	DefaultLobbyWait        = 60 * time.Second
	DefaultDiscussionWait   = 90 * time.Second
	DefaultDecisionWait     = 45 * time.Second
	DefaultTensionHold      = 4 * time.Second
	DefaultAnchorHold       = 1500 * time.Millisecond
	DefaultLeaderboardSize  = 10
)

// Config holds configuration for the session service
type Config struct {
	// Transport delivers broadcasts and private messages
	Transport Transport

	// StatsRepo persists cross-game statistics
	StatsRepo statsRepo.Repository

	// Narrator turns outcome classifications into prose
	Narrator narration.Service

	// Clock and UUIDGenerator are mockable seams
	Clock         clock.Clock
	UUIDGenerator uuid.UUID

	// Seed makes every room's shuffle source reproducible when non-zero
	Seed int64

	// MinPlayers is the lobby minimum below which the session aborts
	MinPlayers int

	// StartingVitality is every participant's initial vitality
	StartingVitality int

	// Phase durations
	LobbyWait      time.Duration
	DiscussionWait time.Duration
	DecisionWait   time.Duration

	// TensionHold is the post-chronicle silence during which whispers land
	TensionHold time.Duration

	// AnchorHold is the pause between the anchor beat and the aftermath
	AnchorHold time.Duration

	// LeaderboardSize caps GetLeaderboard results
	LeaderboardSize int
}

// CurseTarget is one selectable target on a dead participant's curse menu
type CurseTarget struct {
	ID   string
	Name string
}

// CreateSessionInput contains parameters for starting a session
type CreateSessionInput struct {
	// RoomID is the chat-platform room the session is bound to
	RoomID string

	// CreatorID and CreatorName identify the participant who opened the
	// session; they are joined into the lobby immediately
	CreatorID   string
	CreatorName string
}

// CreateSessionOutput contains the result of starting a session
type CreateSessionOutput struct {
	// InstanceID identifies this run of the room for log correlation
	InstanceID string
}

// JoinSessionInput contains parameters for joining a session
type JoinSessionInput struct {
	RoomID          string
	ParticipantID   string
	ParticipantName string
}

// JoinSessionOutput contains the result of joining a session
type JoinSessionOutput struct {
	// Success indicates the participant is in the lobby
	Success bool

	// AlreadyJoined indicates the participant was already present
	AlreadyJoined bool
}

// LeaveSessionInput contains parameters for leaving a session
type LeaveSessionInput struct {
	RoomID        string
	ParticipantID string
}

// LeaveSessionOutput contains the result of leaving a session
type LeaveSessionOutput struct {
	// Success indicates the request changed the session's state
	Success bool

	// SelfEliminated indicates the roster was frozen, so the participant
	// was eliminated in place instead of removed
	SelfEliminated bool
}

// CommitActionInput contains a participant's choice for the round
type CommitActionInput struct {
	RoomID        string
	ParticipantID string
	Action        models.Action
}

// CommitActionOutput contains the result of committing an action
type CommitActionOutput struct {
	// Accepted indicates the commitment latched
	Accepted bool
}

// CastCurseInput contains a dead participant's curse
type CastCurseInput struct {
	RoomID   string
	CasterID string
	TargetID string
}

// CastCurseOutput contains the result of casting a curse
type CastCurseOutput struct {
	// Accepted indicates the curse was recorded
	Accepted bool

	// TargetName is the cursed participant's display name
	TargetName string
}

// ResolveParticipantSessionInput identifies the participant to look up
type ResolveParticipantSessionInput struct {
	ParticipantID string
}

// ResolveParticipantSessionOutput names the room waiting on the participant
type ResolveParticipantSessionOutput struct {
	RoomID string

	// Alive reports the participant's state, which selects between the
	// commitment and curse interactions
	Alive bool
}

// RosterEntry is one participant in a roster snapshot
type RosterEntry struct {
	ID       string
	Name     string
	Vitality int
	Alive    bool
}

// GetRosterInput contains parameters for retrieving a roster
type GetRosterInput struct {
	RoomID string
}

// GetRosterOutput contains the roster in join order
type GetRosterOutput struct {
	Phase   models.Phase
	Round   int
	Entries []RosterEntry
}

// GetStatsSummaryInput contains parameters for retrieving player stats
type GetStatsSummaryInput struct {
	PlayerID string
}

// GetStatsSummaryOutput contains the retrieved stats
type GetStatsSummaryOutput struct {
	Stats *models.PlayerStats
}

// LeaderboardEntry represents a single entry in the leaderboard
type LeaderboardEntry struct {
	PlayerID string
	Name     string
	Wins     int
}

// GetLeaderboardInput contains parameters for retrieving the leaderboard
type GetLeaderboardInput struct{}

// GetLeaderboardOutput contains the leaderboard, best first
type GetLeaderboardOutput struct {
	Entries []LeaderboardEntry
}

// AbandonSessionInput contains parameters for force-stopping a session
type AbandonSessionInput struct {
	RoomID string
}

// AbandonSessionOutput contains the result of force-stopping a session
type AbandonSessionOutput struct {
	Success bool
}
