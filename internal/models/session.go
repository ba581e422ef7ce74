package models

// Phase represents the current stage of a game session
type Phase string

const (
	// PhaseLobby indicates the session is gathering participants
	PhaseLobby Phase = "lobby"

	// PhaseDiscussion indicates the timed open-table phase
	PhaseDiscussion Phase = "discussion"

	// PhaseDecision indicates commitments and curses are being accepted
	PhaseDecision Phase = "decision"

	// PhaseResolution indicates the round is being resolved
	PhaseResolution Phase = "resolution"

	// PhaseEnded indicates the session is terminal
	PhaseEnded Phase = "ended"
)

// IsLobby returns true if the phase is lobby
func (p Phase) IsLobby() bool {
	return p == PhaseLobby
}

// IsEnded returns true if the phase is terminal
func (p Phase) IsEnded() bool {
	return p == PhaseEnded
}
