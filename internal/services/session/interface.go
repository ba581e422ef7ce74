package session

import (
	"context"

	"github.com/ashveil/oathsandashes/internal/models"
)

// Service defines the interface for session operations
type Service interface {
	// CreateSession starts a new game session in a room and joins the creator
	CreateSession(ctx context.Context, input *CreateSessionInput) (*CreateSessionOutput, error)

	// JoinSession adds a participant to a session still in its lobby
	JoinSession(ctx context.Context, input *JoinSessionInput) (*JoinSessionOutput, error)

	// LeaveSession removes a participant from the lobby, or self-eliminates
	// them once the roster is frozen
	LeaveSession(ctx context.Context, input *LeaveSessionInput) (*LeaveSessionOutput, error)

	// CommitAction latches a living participant's choice for the round
	CommitAction(ctx context.Context, input *CommitActionInput) (*CommitActionOutput, error)

	// CastCurse records a dead participant's curse on a living target
	CastCurse(ctx context.Context, input *CastCurseInput) (*CastCurseOutput, error)

	// ResolveParticipantSession finds the room whose decision phase is
	// currently waiting on the given participant
	ResolveParticipantSession(ctx context.Context, input *ResolveParticipantSessionInput) (*ResolveParticipantSessionOutput, error)

	// GetRoster returns the session's participants in join order
	GetRoster(ctx context.Context, input *GetRosterInput) (*GetRosterOutput, error)

	// GetStatsSummary returns a player's persisted cross-game stats
	GetStatsSummary(ctx context.Context, input *GetStatsSummaryInput) (*GetStatsSummaryOutput, error)

	// GetLeaderboard returns the top players by wins
	GetLeaderboard(ctx context.Context, input *GetLeaderboardInput) (*GetLeaderboardOutput, error)

	// AbandonSession force-stops a running session
	AbandonSession(ctx context.Context, input *AbandonSessionInput) (*AbandonSessionOutput, error)
}

//go:generate mockgen -package=mocks -destination=mocks/mock_transport.go github.com/ashveil/oathsandashes/internal/services/session Transport

// Transport delivers messages to the room and its participants. Every
// delivery is best-effort: implementations report errors, the session
// logs them and moves on.
type Transport interface {
	// Broadcast sends a public message to the room
	Broadcast(ctx context.Context, roomID, text string) error

	// SendPrivate sends a private message to one participant
	SendPrivate(ctx context.Context, participantID, text string) error

	// PresentChoice renders the commitment menu to a living participant
	PresentChoice(ctx context.Context, participantID, prompt string, choices []models.Action) error

	// PresentCurseTargets renders the curse menu to a dead participant
	PresentCurseTargets(ctx context.Context, participantID, prompt string, targets []CurseTarget) error
}
