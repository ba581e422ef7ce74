package models

// Action is a participant's committed choice for a round
type Action string

const (
	// ActionTrust offers the hand
	ActionTrust Action = "trust"

	// ActionBetray offers the blade
	ActionBetray Action = "betray"

	// ActionSleep is the AFK default when no commitment arrived in time
	ActionSleep Action = "sleep"
)

// RoleID identifies a role in the role table
type RoleID string

const (
	RoleCinderOracle   RoleID = "cinder_oracle"
	RoleBlackBanner    RoleID = "black_banner"
	RoleGravewarden    RoleID = "gravewarden"
	RoleVeilScribe     RoleID = "veil_scribe"
	RoleIronVanguard   RoleID = "iron_vanguard"
	RoleCrimsonDuelist RoleID = "crimson_duelist"
	RolePaleJester     RoleID = "pale_jester"
	RoleHollowKing     RoleID = "hollow_king"
	RoleVerdantHealer  RoleID = "verdant_healer"
	RoleSilentShadow   RoleID = "silent_shadow"
)

// Participant represents a player bound to a single game session.
// Created on join during the lobby and never destroyed; once the lobby
// closes only Vitality, Alive, CommittedAction and CursesReceived change.
type Participant struct {
	// ID is the chat-platform user ID of the participant
	ID string

	// Name is the display name of the participant
	Name string

	// Vitality is the integer resource lost on the way to elimination
	Vitality int

	// Role is assigned once when the lobby closes and never changes
	Role RoleID

	// Alive is false once a post-round death check has claimed the participant
	Alive bool

	// CommittedAction is the latched choice for the current round.
	// Empty until a commitment arrives; resolution treats empty as sleep.
	CommittedAction Action

	// CursesReceived holds the caster IDs of curses cast on this participant
	// during the current decision phase. Duplicates allowed.
	CursesReceived []string
}

// Cursed reports whether at least one curse is recorded for the current round
func (p *Participant) Cursed() bool {
	return len(p.CursesReceived) > 0
}
