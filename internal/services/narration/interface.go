package narration

import "context"

// Service is the interface for the narration service. It owns every piece
// of displayed prose; the session driver only ever hands it outcome
// categories and names.
type Service interface {
	// GetPhaseAnnouncement returns the public message opening a phase
	GetPhaseAnnouncement(ctx context.Context, input *GetPhaseAnnouncementInput) (*GetPhaseAnnouncementOutput, error)

	// GetPrompt returns the private text accompanying a choice or curse menu
	GetPrompt(ctx context.Context, input *GetPromptInput) (*GetPromptOutput, error)

	// GetRosterEvent returns the public line for a join, flee or self-elimination
	GetRosterEvent(ctx context.Context, input *GetRosterEventInput) (*GetRosterEventOutput, error)

	// GetChronicleLine returns the public history line for one resolved pair
	GetChronicleLine(ctx context.Context, input *GetChronicleLineInput) (*GetChronicleLineOutput, error)

	// GetWhisper returns the private dread line for one side of a pair
	GetWhisper(ctx context.Context, input *GetWhisperInput) (*GetWhisperOutput, error)

	// GetIntel returns a Veil Scribe's private reveal of the opponent's action
	GetIntel(ctx context.Context, input *GetIntelInput) (*GetIntelOutput, error)

	// GetAnchor returns the single beat broadcast after the tension hold
	GetAnchor(ctx context.Context) (*GetAnchorOutput, error)

	// GetAftermath renders death notices and the standings board
	GetAftermath(ctx context.Context, input *GetAftermathInput) (*GetAftermathOutput, error)

	// GetGameOver returns the terminal broadcast for a session
	GetGameOver(ctx context.Context, input *GetGameOverInput) (*GetGameOverOutput, error)

	// GetTitle derives a player's honorific from their persisted stats
	GetTitle(ctx context.Context, input *GetTitleInput) (*GetTitleOutput, error)

	// RenderStats renders a player's stats card
	RenderStats(ctx context.Context, input *RenderStatsInput) (*RenderStatsOutput, error)

	// RenderLeaderboard renders the hall of sovereigns
	RenderLeaderboard(ctx context.Context, input *RenderLeaderboardInput) (*RenderLeaderboardOutput, error)
}
