package session

// SessionError is a custom error type for session-related errors
type SessionError string

// Error implements the error interface
func (e SessionError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrSessionNotFound     SessionError = "session not found"
	ErrSessionActive       SessionError = "a session is already running in this room"
	ErrParticipantNotFound SessionError = "participant not found"
	ErrInvalidPhase        SessionError = "operation not allowed in the current phase"
	ErrAlreadyCommitted    SessionError = "commitment already latched for this round"
	ErrInvalidAction       SessionError = "action cannot be committed"
	ErrCasterAlive         SessionError = "only the dead may curse"
	ErrTargetNotAlive      SessionError = "curse target is not among the living"
	ErrNilConfig           SessionError = "config cannot be nil"
	ErrNilTransport        SessionError = "transport cannot be nil"
	ErrNilStatsRepo        SessionError = "stats repository cannot be nil"
	ErrNilNarrator         SessionError = "narration service cannot be nil"
)
