package narration

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/ashveil/oathsandashes/internal/engine"
	"github.com/ashveil/oathsandashes/internal/models"
)

// Titles derived from persisted stats
const (
	TitleInitiate  = "The Initiate"
	TitleSovereign = "THE SOVEREIGN"
	TitleSaint     = "The Saint"
	TitleSerpent   = "The Serpent"
	TitleOathbound = "The Oathbound"
)

// service implements the Service interface
type service struct {
	// Random number generator for selecting random messages. Whispers are
	// dispatched from concurrent goroutines and rand.Rand is not safe for
	// concurrent use, so every draw holds the mutex.
	mu   sync.Mutex
	rand *rand.Rand
}

// NewService creates a new narration service
func NewService(config *ServiceConfig) (Service, error) {
	var seed int64
	if config != nil && config.Seed != 0 {
		seed = config.Seed
	} else {
		seed = time.Now().UnixNano()
	}

	return &service{
		rand: rand.New(rand.NewSource(seed)),
	}, nil
}

// GetPhaseAnnouncement returns the public message opening a phase
func (s *service) GetPhaseAnnouncement(ctx context.Context, input *GetPhaseAnnouncementInput) (*GetPhaseAnnouncementOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	var message string
	switch input.Phase {
	case models.PhaseLobby:
		message = "📜 **The Archive Opens.**\n\nWe await the names of those who would be Sovereign.\n*Step forward to bind your fate.*"
	case models.PhaseDiscussion:
		message = fmt.Sprintf(
			"⚖️ **The scales tip.**\nWords are cheap, yet they are all you possess. Forge your alliances now, for soon words will fail.\n\n*The court listens. (%ds)*",
			input.Seconds,
		)
	case models.PhaseDecision:
		message = "⏳ **The sands fall.**\nCheck your private messages. The choice is yours alone."
	case models.PhaseResolution:
		message = "📜 **THE CHRONICLE UPDATES**"
	default:
		return nil, fmt.Errorf("no announcement for phase %q", input.Phase)
	}

	return &GetPhaseAnnouncementOutput{Message: message}, nil
}

// GetPrompt returns the private text accompanying a choice or curse menu
func (s *service) GetPrompt(ctx context.Context, input *GetPromptInput) (*GetPromptOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if input.Dead {
		return &GetPromptOutput{
			Message: "💀 **The Afterlife**\nReach out from the dark. Touch the living and turn their blood to ice.",
		}, nil
	}

	return &GetPromptOutput{
		Message: "The world turns its back. No eyes are upon you save your own.\n\nWill you offer your hand, or your blade?",
	}, nil
}

// GetRosterEvent returns the public line for a join, flee or self-elimination
func (s *service) GetRosterEvent(ctx context.Context, input *GetRosterEventInput) (*GetRosterEventOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	var message string
	switch input.Event {
	case RosterEventJoined:
		message = fmt.Sprintf("⚔️ %s steps from the dark.", input.Name)
	case RosterEventFled:
		message = fmt.Sprintf("🏃 %s returns to the shadows.", input.Name)
	case RosterEventSelfEliminated:
		message = fmt.Sprintf("💀 %s chose to end their own suffering.", input.Name)
	default:
		return nil, fmt.Errorf("unknown roster event %q", input.Event)
	}

	return &GetRosterEventOutput{Message: message}, nil
}

// GetChronicleLine returns the public history line for one resolved pair
func (s *service) GetChronicleLine(ctx context.Context, input *GetChronicleLineInput) (*GetChronicleLineOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	var message string
	switch input.Category {
	case engine.NarrationPlaceholder:
		if input.SubjectAction == models.ActionTrust {
			message = fmt.Sprintf("🌑 %s reached into the emptiness... and found nothing.", input.SubjectName)
		} else {
			message = fmt.Sprintf("🌑 %s struck at the shadows, but the Void does not bleed.", input.SubjectName)
		}
	case engine.NarrationBothAsleep:
		message = fmt.Sprintf("💤 Neither %s nor %s could bear to speak. Silence reigned.", input.SubjectName, input.ObjectName)
	case engine.NarrationOneAsleep:
		message = fmt.Sprintf("💤 %s was absent when the moment came. %s stood alone in the ash.", input.SubjectName, input.ObjectName)
	case engine.NarrationMutualTrust:
		message = fmt.Sprintf("🤝 %s and %s bound themselves in faith.", input.SubjectName, input.ObjectName)
	case engine.NarrationMutualBetray:
		message = fmt.Sprintf("⚔️ %s and %s met blade to blade.", input.SubjectName, input.ObjectName)
	case engine.NarrationBetrayed, engine.NarrationBetrayer:
		// the subject is always the victim
		message = fmt.Sprintf("🗡️ %s offered loyalty, but %s answered with steel.", input.SubjectName, input.ObjectName)
	default:
		message = fmt.Sprintf("❓ The chronicle is unclear regarding %s and %s.", input.SubjectName, input.ObjectName)
	}

	return &GetChronicleLineOutput{Message: message}, nil
}

// GetWhisper returns the private dread line for one side of a pair
func (s *service) GetWhisper(ctx context.Context, input *GetWhisperInput) (*GetWhisperOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	var messages []string
	switch input.Category {
	case engine.WhisperVictim:
		messages = []string{
			"It cuts deep, does it not?",
			"They smiled as they did it.",
			"Remember this pain. Let it harden you.",
			"Loyalty is a wound waiting to open.",
		}
	case engine.WhisperTraitor:
		messages = []string{
			"Your hands are stained.",
			"Power requires sacrifice.",
			"They trusted you. That was their mistake.",
			"Wash the blood, but keep the gold.",
		}
	case engine.WhisperClash:
		messages = []string{
			"Violence begets violence.",
			"A jagged reflection.",
			"You deserve each other.",
		}
	case engine.WhisperBond:
		messages = []string{
			"A rare mercy.",
			"Breathe. You are safe... for now.",
			"Do not get used to this warmth.",
		}
	default:
		messages = []string{"The darkness is indifferent to you."}
	}

	s.mu.Lock()
	pick := s.rand.Intn(len(messages))
	s.mu.Unlock()

	return &GetWhisperOutput{
		Message: fmt.Sprintf("_%s_", messages[pick]),
	}, nil
}

// GetIntel returns a Veil Scribe's private reveal of the opponent's action
func (s *service) GetIntel(ctx context.Context, input *GetIntelInput) (*GetIntelOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	return &GetIntelOutput{
		Message: fmt.Sprintf("📜 **Intel:** %s chose %s", input.OpponentName, strings.ToUpper(string(input.OpponentAction))),
	}, nil
}

// GetAnchor returns the single beat broadcast after the tension hold
func (s *service) GetAnchor(ctx context.Context) (*GetAnchorOutput, error) {
	return &GetAnchorOutput{Message: "⋯"}, nil
}

// GetAftermath renders death notices and the standings board
func (s *service) GetAftermath(ctx context.Context, input *GetAftermathInput) (*GetAftermathOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	var b strings.Builder

	if len(input.Deaths) > 0 {
		for _, name := range input.Deaths {
			fmt.Fprintf(&b, "💀 **%s** has fallen.\n", name)
		}
		b.WriteString("\n────────────────────\n")
	}

	b.WriteString("**The Standing:**\n")
	for _, entry := range input.Standings {
		icon := "🟢"
		status := fmt.Sprintf("%d HP", entry.Vitality)
		if !entry.Alive {
			icon = "⚫"
			status = "ASH"
		}
		fmt.Fprintf(&b, "%s %s: %s\n", icon, entry.Name, status)
	}

	return &GetAftermathOutput{Message: b.String()}, nil
}

// GetGameOver returns the terminal broadcast for a session
func (s *service) GetGameOver(ctx context.Context, input *GetGameOverInput) (*GetGameOverOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if input.Aborted {
		return &GetGameOverOutput{
			Message: "❌ The hearth is cold. Not enough souls to kindle the fire.",
		}, nil
	}

	if input.Faulted {
		return &GetGameOverOutput{
			Message: "🕯️ **THE THREAD SNAPS**\n\nSomething beyond the veil gave way. This tale ends unfinished.\n*The ash settles where it will.*",
		}, nil
	}

	if input.WinnerName != "" {
		return &GetGameOverOutput{
			Message: fmt.Sprintf(
				"👑 **A NEW SOVEREIGN RISES**\n\nThe dust settles. Only **%s** remains to breathe the air.\n*The history is closed.*",
				input.WinnerName,
			),
		}, nil
	}

	return &GetGameOverOutput{
		Message: "🌑 **SILENCE**\n\nThe fire has consumed everything. No soul remains to claim the throne.\n*All is Ash.*",
	}, nil
}

// GetTitle derives a player's honorific from their persisted stats
func (s *service) GetTitle(ctx context.Context, input *GetTitleInput) (*GetTitleOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	stats := input.Stats
	if stats == nil || stats.Games == 0 {
		return &GetTitleOutput{Title: TitleInitiate}, nil
	}

	totalVotes := stats.Trusts + stats.Betrays
	if totalVotes == 0 {
		return &GetTitleOutput{Title: TitleInitiate}, nil
	}

	if stats.Wins > 50 {
		return &GetTitleOutput{Title: TitleSovereign}, nil
	}

	ratio := float64(stats.Trusts) / float64(totalVotes)
	switch {
	case ratio > 0.8:
		return &GetTitleOutput{Title: TitleSaint}, nil
	case ratio < 0.3:
		return &GetTitleOutput{Title: TitleSerpent}, nil
	default:
		return &GetTitleOutput{Title: TitleOathbound}, nil
	}
}

// RenderStats renders a player's stats card
func (s *service) RenderStats(ctx context.Context, input *RenderStatsInput) (*RenderStatsOutput, error) {
	if input == nil || input.Stats == nil {
		return nil, errors.New("input and stats cannot be nil")
	}

	title, err := s.GetTitle(ctx, &GetTitleInput{Stats: input.Stats})
	if err != nil {
		return nil, err
	}

	stats := input.Stats
	message := fmt.Sprintf(
		"📜 **%s** - %s\nGames: %d | Wins: %d\nTrusts: %d | Betrays: %d",
		stats.Name, title.Title, stats.Games, stats.Wins, stats.Trusts, stats.Betrays,
	)

	return &RenderStatsOutput{Message: message}, nil
}

// RenderLeaderboard renders the hall of sovereigns
func (s *service) RenderLeaderboard(ctx context.Context, input *RenderLeaderboardInput) (*RenderLeaderboardOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	var b strings.Builder
	b.WriteString("🏆 **HALL OF SOVEREIGNS** 🏆\n\n")
	for i, row := range input.Rows {
		fmt.Fprintf(&b, "%d. %s - %d Wins\n", i+1, row.Name, row.Wins)
	}

	return &RenderLeaderboardOutput{Message: b.String()}, nil
}
