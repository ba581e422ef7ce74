package session

import (
	"context"
	"log"
	"sync"

	"github.com/ashveil/oathsandashes/internal/common/clock"
	"github.com/ashveil/oathsandashes/internal/common/uuid"
	"github.com/ashveil/oathsandashes/internal/models"
	"github.com/ashveil/oathsandashes/internal/rng"
	statsRepo "github.com/ashveil/oathsandashes/internal/repositories/stats"
	"github.com/ashveil/oathsandashes/internal/services/narration"
)

// service implements the Service interface. It owns the room-id → instance
// registry; the rooms themselves never see it.
type service struct {
	config    *Config
	transport Transport
	statsRepo statsRepo.Repository
	narrator  narration.Service
	clock     clock.Clock
	uuider    uuid.UUID

	mu    sync.Mutex
	rooms map[string]*room
}

// New creates a new session service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.Transport == nil {
		return nil, ErrNilTransport
	}
	if cfg.StatsRepo == nil {
		return nil, ErrNilStatsRepo
	}
	if cfg.Narrator == nil {
		return nil, ErrNilNarrator
	}

	if cfg.Clock == nil {
		cfg.Clock = &clock.DefaultClock{}
	}
	if cfg.UUIDGenerator == nil {
		cfg.UUIDGenerator = uuid.New()
	}
	if cfg.MinPlayers == 0 {
		cfg.MinPlayers = DefaultMinPlayers
	}
	if cfg.StartingVitality == 0 {
		cfg.StartingVitality = DefaultStartingVitality
	}
	if cfg.LobbyWait == 0 {
		cfg.LobbyWait = DefaultLobbyWait
	}
	if cfg.DiscussionWait == 0 {
		cfg.DiscussionWait = DefaultDiscussionWait
	}
	if cfg.DecisionWait == 0 {
		cfg.DecisionWait = DefaultDecisionWait
	}
	if cfg.TensionHold == 0 {
		cfg.TensionHold = DefaultTensionHold
	}
	if cfg.AnchorHold == 0 {
		cfg.AnchorHold = DefaultAnchorHold
	}
	if cfg.LeaderboardSize == 0 {
		cfg.LeaderboardSize = DefaultLeaderboardSize
	}

	return &service{
		config:    cfg,
		transport: cfg.Transport,
		statsRepo: cfg.StatsRepo,
		narrator:  cfg.Narrator,
		clock:     cfg.Clock,
		uuider:    cfg.UUIDGenerator,
		rooms:     make(map[string]*room),
	}, nil
}

// CreateSession starts a new game session in a room and joins the creator.
// A room whose previous session has ended can be re-created; a room with a
// live session cannot.
func (s *service) CreateSession(ctx context.Context, input *CreateSessionInput) (*CreateSessionOutput, error) {
	if input == nil || input.RoomID == "" {
		return nil, ErrSessionNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.rooms[input.RoomID]; ok && !existing.currentPhase().IsEnded() {
		return nil, ErrSessionActive
	}

	r := newRoom(&roomConfig{
		id:         input.RoomID,
		instanceID: s.uuider.NewUUID(),
		cfg:        s.config,
		transport:  s.transport,
		statsRepo:  s.statsRepo,
		narrator:   s.narrator,
		clock:      s.clock,
		source:     rng.New(&rng.Config{Seed: s.config.Seed}),
	})

	if input.CreatorID != "" {
		r.join(input.CreatorID, input.CreatorName)
	}

	s.rooms[input.RoomID] = r

	runCtx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	r.done = func() { s.removeRoom(input.RoomID, r) }
	go r.run(runCtx)

	log.Printf("session %s: created (instance %s)", input.RoomID, r.instanceID)

	return &CreateSessionOutput{InstanceID: r.instanceID}, nil
}

// JoinSession adds a participant to a session still in its lobby
func (s *service) JoinSession(ctx context.Context, input *JoinSessionInput) (*JoinSessionOutput, error) {
	r, err := s.lookup(input.RoomID)
	if err != nil {
		return nil, err
	}

	joined, already := r.join(input.ParticipantID, input.ParticipantName)
	if !joined {
		return &JoinSessionOutput{}, ErrInvalidPhase
	}

	if !already {
		r.announceRosterEvent(ctx, narration.RosterEventJoined, input.ParticipantName)
	}

	return &JoinSessionOutput{Success: true, AlreadyJoined: already}, nil
}

// LeaveSession removes a participant from the lobby, or self-eliminates
// them once the roster is frozen
func (s *service) LeaveSession(ctx context.Context, input *LeaveSessionInput) (*LeaveSessionOutput, error) {
	r, err := s.lookup(input.RoomID)
	if err != nil {
		return nil, err
	}

	removed, eliminated, name := r.leave(input.ParticipantID)
	if !removed && !eliminated {
		return &LeaveSessionOutput{}, ErrParticipantNotFound
	}

	if removed {
		r.announceRosterEvent(ctx, narration.RosterEventFled, name)
	} else {
		r.announceRosterEvent(ctx, narration.RosterEventSelfEliminated, name)
	}

	return &LeaveSessionOutput{Success: true, SelfEliminated: eliminated}, nil
}

// CommitAction latches a living participant's choice for the round
func (s *service) CommitAction(ctx context.Context, input *CommitActionInput) (*CommitActionOutput, error) {
	if input.Action != models.ActionTrust && input.Action != models.ActionBetray {
		return &CommitActionOutput{}, ErrInvalidAction
	}

	r, err := s.lookup(input.RoomID)
	if err != nil {
		return nil, err
	}

	if err := r.commit(input.ParticipantID, input.Action); err != nil {
		return &CommitActionOutput{}, err
	}

	return &CommitActionOutput{Accepted: true}, nil
}

// CastCurse records a dead participant's curse on a living target
func (s *service) CastCurse(ctx context.Context, input *CastCurseInput) (*CastCurseOutput, error) {
	r, err := s.lookup(input.RoomID)
	if err != nil {
		return nil, err
	}

	targetName, err := r.curse(input.CasterID, input.TargetID)
	if err != nil {
		return &CastCurseOutput{}, err
	}

	return &CastCurseOutput{Accepted: true, TargetName: targetName}, nil
}

// ResolveParticipantSession finds the room whose decision phase is
// currently waiting on the given participant
func (s *service) ResolveParticipantSession(ctx context.Context, input *ResolveParticipantSessionInput) (*ResolveParticipantSessionOutput, error) {
	if input == nil || input.ParticipantID == "" {
		return nil, ErrParticipantNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for roomID, r := range s.rooms {
		if alive, ok := r.awaitingDecisionFrom(input.ParticipantID); ok {
			return &ResolveParticipantSessionOutput{RoomID: roomID, Alive: alive}, nil
		}
	}

	return nil, ErrSessionNotFound
}

// GetRoster returns the session's participants in join order
func (s *service) GetRoster(ctx context.Context, input *GetRosterInput) (*GetRosterOutput, error) {
	r, err := s.lookup(input.RoomID)
	if err != nil {
		return nil, err
	}

	phase, round, entries := r.roster()

	return &GetRosterOutput{Phase: phase, Round: round, Entries: entries}, nil
}

// GetStatsSummary returns a player's persisted cross-game stats
func (s *service) GetStatsSummary(ctx context.Context, input *GetStatsSummaryInput) (*GetStatsSummaryOutput, error) {
	if input == nil || input.PlayerID == "" {
		return nil, ErrParticipantNotFound
	}

	stats, err := s.statsRepo.GetStats(ctx, &statsRepo.GetStatsInput{
		PlayerID: input.PlayerID,
	})
	if err != nil {
		return nil, err
	}

	return &GetStatsSummaryOutput{Stats: stats}, nil
}

// GetLeaderboard returns the top players by wins
func (s *service) GetLeaderboard(ctx context.Context, input *GetLeaderboardInput) (*GetLeaderboardOutput, error) {
	output, err := s.statsRepo.GetLeaderboard(ctx, &statsRepo.GetLeaderboardInput{
		Limit: s.config.LeaderboardSize,
	})
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(output.Entries))
	for _, entry := range output.Entries {
		entries = append(entries, LeaderboardEntry{
			PlayerID: entry.PlayerID,
			Name:     entry.Name,
			Wins:     entry.Wins,
		})
	}

	return &GetLeaderboardOutput{Entries: entries}, nil
}

// AbandonSession force-stops a running session. The driver honors the
// cancellation at its next timed wait; no partial round is left behind.
func (s *service) AbandonSession(ctx context.Context, input *AbandonSessionInput) (*AbandonSessionOutput, error) {
	r, err := s.lookup(input.RoomID)
	if err != nil {
		return nil, err
	}

	if r.cancel != nil {
		r.cancel()
	}

	log.Printf("session %s: abandon requested (instance %s)", r.id, r.instanceID)

	return &AbandonSessionOutput{Success: true}, nil
}

// removeRoom drops an ended session from the registry. The pointer check
// guards against dropping a newer session created in the same room.
func (s *service) removeRoom(roomID string, r *room) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if current, ok := s.rooms[roomID]; ok && current == r {
		delete(s.rooms, roomID)
		log.Printf("session %s: disposed (instance %s)", roomID, r.instanceID)
	}
}

func (s *service) lookup(roomID string) (*room, error) {
	if roomID == "" {
		return nil, ErrSessionNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.rooms[roomID]
	if !ok {
		return nil, ErrSessionNotFound
	}

	return r, nil
}
