package session

import (
	"context"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ashveil/oathsandashes/internal/common/clock"
	"github.com/ashveil/oathsandashes/internal/engine"
	"github.com/ashveil/oathsandashes/internal/models"
	"github.com/ashveil/oathsandashes/internal/rng"
	statsRepo "github.com/ashveil/oathsandashes/internal/repositories/stats"
	"github.com/ashveil/oathsandashes/internal/services/narration"
)

// roomConfig holds everything a room needs from the service
type roomConfig struct {
	id         string
	instanceID string
	cfg        *Config
	transport  Transport
	statsRepo  statsRepo.Repository
	narrator   narration.Service
	clock      clock.Clock
	source     *rng.Source
}

// room is one session bound to a chat room. The driver goroutine owns the
// phase progression; intake methods only mutate state under the mutex and
// never block on the transport.
type room struct {
	id         string
	instanceID string
	cfg        *Config
	transport  Transport
	statsRepo  statsRepo.Repository
	narrator   narration.Service
	clock      clock.Clock
	source     *rng.Source
	cancel     context.CancelFunc
	done       func()

	mu           sync.Mutex
	phase        models.Phase
	round        int
	order        []string
	participants map[string]*models.Participant
	startedAt    time.Time
}

func newRoom(cfg *roomConfig) *room {
	return &room{
		id:           cfg.id,
		instanceID:   cfg.instanceID,
		cfg:          cfg.cfg,
		transport:    cfg.transport,
		statsRepo:    cfg.statsRepo,
		narrator:     cfg.narrator,
		clock:        cfg.clock,
		source:       cfg.source,
		phase:        models.PhaseLobby,
		participants: make(map[string]*models.Participant),
		startedAt:    cfg.clock.Now(),
	}
}

// ---- intake, called from the service ----

func (r *room) currentPhase() models.Phase {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.phase
}

// join adds a participant while the lobby is open. The second return is
// true when the participant was already present.
func (r *room) join(id, name string) (joined, already bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.phase.IsLobby() {
		return false, false
	}

	if _, ok := r.participants[id]; ok {
		return true, true
	}

	r.participants[id] = &models.Participant{
		ID:       id,
		Name:     name,
		Vitality: r.cfg.StartingVitality,
		Alive:    true,
	}
	r.order = append(r.order, id)

	return true, false
}

// leave removes a lobby participant outright; once the roster is frozen it
// eliminates them in place instead.
func (r *room) leave(id string) (removed, eliminated bool, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.participants[id]
	if !ok {
		return false, false, ""
	}

	if r.phase.IsLobby() {
		delete(r.participants, id)
		for i, pid := range r.order {
			if pid == id {
				r.order = append(r.order[:i], r.order[i+1:]...)
				break
			}
		}
		return true, false, p.Name
	}

	if !p.Alive || r.phase.IsEnded() {
		return false, false, p.Name
	}

	p.Alive = false
	p.Vitality = 0

	return false, true, p.Name
}

// commit latches a living participant's choice; the first commitment wins
func (r *room) commit(id string, action models.Action) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.phase != models.PhaseDecision {
		return ErrInvalidPhase
	}

	p, ok := r.participants[id]
	if !ok {
		return ErrParticipantNotFound
	}
	if !p.Alive {
		return ErrInvalidAction
	}
	if p.CommittedAction != "" {
		return ErrAlreadyCommitted
	}

	p.CommittedAction = action

	return nil
}

// curse records a dead caster's curse on a living target
func (r *room) curse(casterID, targetID string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.phase != models.PhaseDecision {
		return "", ErrInvalidPhase
	}

	caster, ok := r.participants[casterID]
	if !ok {
		return "", ErrParticipantNotFound
	}
	if caster.Alive {
		return "", ErrCasterAlive
	}

	target, ok := r.participants[targetID]
	if !ok || !target.Alive {
		return "", ErrTargetNotAlive
	}

	target.CursesReceived = append(target.CursesReceived, casterID)

	return target.Name, nil
}

// awaitingDecisionFrom reports whether this room's decision phase is
// currently open for the given participant
func (r *room) awaitingDecisionFrom(id string) (alive, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.phase != models.PhaseDecision {
		return false, false
	}

	p, found := r.participants[id]
	if !found {
		return false, false
	}

	return p.Alive, true
}

// roster snapshots the participants in join order
func (r *room) roster() (models.Phase, int, []RosterEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries := make([]RosterEntry, 0, len(r.order))
	for _, id := range r.order {
		p := r.participants[id]
		entries = append(entries, RosterEntry{
			ID:       p.ID,
			Name:     p.Name,
			Vitality: p.Vitality,
			Alive:    p.Alive,
		})
	}

	return r.phase, r.round, entries
}

func (r *room) announceRosterEvent(ctx context.Context, event narration.RosterEvent, name string) {
	line, err := r.narrator.GetRosterEvent(ctx, &narration.GetRosterEventInput{
		Event: event,
		Name:  name,
	})
	if err != nil {
		log.Printf("session %s: failed to render roster event: %v", r.id, err)
		return
	}

	if err := r.transport.Broadcast(ctx, r.id, line.Message); err != nil {
		log.Printf("session %s: failed to broadcast roster event: %v", r.id, err)
	}
}

// ---- driver, owned by the run goroutine ----

// run drives the room from lobby to its terminal phase. Cancellation is
// honored only during timed waits, so a round never half-resolves.
func (r *room) run(ctx context.Context) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("session %s: driver panic: %v", r.id, rec)
			r.setPhase(models.PhaseEnded)
			// run's context may already be gone; the room still owes
			// its terminal line.
			r.broadcastFault(context.Background())
		}
		if r.done != nil {
			r.done()
		}
	}()

	r.broadcastPhase(ctx, models.PhaseLobby, r.cfg.LobbyWait)
	if !r.wait(ctx, r.cfg.LobbyWait) {
		r.halt()
		return
	}

	r.mu.Lock()
	count := len(r.participants)
	if count < r.cfg.MinPlayers {
		r.phase = models.PhaseEnded
		r.mu.Unlock()
		r.broadcastGameOver(ctx, "", true)
		log.Printf("session %s: aborted with %d of %d players", r.id, count, r.cfg.MinPlayers)
		return
	}
	r.assignRoles()
	r.phase = models.PhaseDiscussion
	r.mu.Unlock()

	log.Printf("session %s: started with %d players (instance %s)", r.id, count, r.instanceID)

	for {
		r.mu.Lock()
		r.round++
		r.mu.Unlock()

		if !r.runRound(ctx) {
			r.halt()
			return
		}

		living := r.livingSnapshot()
		if len(living) <= 1 {
			var winner *models.Participant
			if len(living) == 1 {
				winner = living[0]
			}
			r.finish(ctx, winner)
			return
		}
	}
}

// runRound walks one discussion / decision / resolution cycle. It returns
// false when the context was cancelled mid-round.
func (r *room) runRound(ctx context.Context) bool {
	r.setPhase(models.PhaseDiscussion)
	r.broadcastPhase(ctx, models.PhaseDiscussion, r.cfg.DiscussionWait)
	if !r.wait(ctx, r.cfg.DiscussionWait) {
		return false
	}

	r.mu.Lock()
	r.phase = models.PhaseDecision
	for _, p := range r.participants {
		p.CommittedAction = ""
		p.CursesReceived = nil
	}
	everyone := r.snapshotLocked()
	living := livingOf(everyone)
	r.mu.Unlock()

	r.distributeControls(ctx, everyone, living)
	r.broadcastPhase(ctx, models.PhaseDecision, r.cfg.DecisionWait)
	if !r.wait(ctx, r.cfg.DecisionWait) {
		return false
	}

	r.mu.Lock()
	r.phase = models.PhaseResolution
	result := engine.ResolveRound(livingOf(r.snapshotLocked()), r.source)
	standings := r.standingsLocked()
	r.mu.Unlock()

	r.recordRoundStats(ctx, result)

	return r.publishRound(ctx, result, standings)
}

// distributeControls sends every participant their private decision
// surface. Deliveries are best-effort; a blocked inbox never stalls the
// round.
func (r *room) distributeControls(ctx context.Context, everyone, living []*models.Participant) {
	targets := make([]CurseTarget, 0, len(living))
	for _, p := range living {
		targets = append(targets, CurseTarget{ID: p.ID, Name: p.Name})
	}

	for _, p := range everyone {
		if p.Alive {
			prompt, err := r.narrator.GetPrompt(ctx, &narration.GetPromptInput{Dead: false})
			if err != nil {
				log.Printf("session %s: failed to render choice prompt: %v", r.id, err)
				continue
			}
			if err := r.transport.PresentChoice(ctx, p.ID, prompt.Message, []models.Action{models.ActionTrust, models.ActionBetray}); err != nil {
				log.Printf("session %s: failed to present choice to %s: %v", r.id, p.ID, err)
			}
			continue
		}

		if len(targets) == 0 {
			continue
		}
		prompt, err := r.narrator.GetPrompt(ctx, &narration.GetPromptInput{Dead: true})
		if err != nil {
			log.Printf("session %s: failed to render curse prompt: %v", r.id, err)
			continue
		}
		if err := r.transport.PresentCurseTargets(ctx, p.ID, prompt.Message, targets); err != nil {
			log.Printf("session %s: failed to present curse menu to %s: %v", r.id, p.ID, err)
		}
	}
}

// publishRound delivers the resolution beats in order: the chronicle, the
// silence with its whispers, the anchor, then the aftermath.
func (r *room) publishRound(ctx context.Context, result *engine.RoundResult, standings []narration.StandingEntry) bool {
	header, err := r.narrator.GetPhaseAnnouncement(ctx, &narration.GetPhaseAnnouncementInput{
		Phase: models.PhaseResolution,
	})
	if err != nil {
		log.Printf("session %s: failed to render chronicle header: %v", r.id, err)
		return true
	}

	lines := []string{header.Message, ""}
	for _, pair := range result.Pairs {
		line, err := r.narrator.GetChronicleLine(ctx, &narration.GetChronicleLineInput{
			Category:      pair.Category,
			SubjectName:   pair.SubjectName,
			ObjectName:    pair.ObjectName,
			SubjectAction: pair.SubjectAction,
		})
		if err != nil {
			log.Printf("session %s: failed to render chronicle line: %v", r.id, err)
			continue
		}
		lines = append(lines, line.Message)
	}

	// the chronicle lands before the silence begins
	if err := r.transport.Broadcast(ctx, r.id, strings.Join(lines, "\n")); err != nil {
		log.Printf("session %s: failed to broadcast chronicle: %v", r.id, err)
	}

	// whispers arrive during the hold, not after it
	for _, pair := range result.Pairs {
		go r.whisper(ctx, pair.A, pair.WhisperA, pair.IntelForA, pair.B, pair.ActionB)
		if !pair.PlaceholderInvolved {
			go r.whisper(ctx, pair.B, pair.WhisperB, pair.IntelForB, pair.A, pair.ActionA)
		}
	}

	if !r.wait(ctx, r.cfg.TensionHold) {
		return false
	}

	anchor, err := r.narrator.GetAnchor(ctx)
	if err == nil {
		if err := r.transport.Broadcast(ctx, r.id, anchor.Message); err != nil {
			log.Printf("session %s: failed to broadcast anchor: %v", r.id, err)
		}
	}

	if !r.wait(ctx, r.cfg.AnchorHold) {
		return false
	}

	deaths := make([]string, 0, len(result.Deaths))
	for _, p := range result.Deaths {
		deaths = append(deaths, p.Name)
	}

	aftermath, err := r.narrator.GetAftermath(ctx, &narration.GetAftermathInput{
		Deaths:    deaths,
		Standings: standings,
	})
	if err != nil {
		log.Printf("session %s: failed to render aftermath: %v", r.id, err)
		return true
	}

	if err := r.transport.Broadcast(ctx, r.id, aftermath.Message); err != nil {
		log.Printf("session %s: failed to broadcast aftermath: %v", r.id, err)
	}

	return true
}

// whisper sends one side's dread line, plus the Veil Scribe reveal when
// the role earned it
func (r *room) whisper(ctx context.Context, to *models.Participant, category engine.WhisperCategory, intel bool, opponent *models.Participant, opponentAction models.Action) {
	line, err := r.narrator.GetWhisper(ctx, &narration.GetWhisperInput{Category: category})
	if err != nil {
		log.Printf("session %s: failed to render whisper: %v", r.id, err)
		return
	}

	if err := r.transport.SendPrivate(ctx, to.ID, line.Message); err != nil {
		log.Printf("session %s: failed to whisper to %s: %v", r.id, to.ID, err)
	}

	if !intel {
		return
	}

	reveal, err := r.narrator.GetIntel(ctx, &narration.GetIntelInput{
		OpponentName:   opponent.Name,
		OpponentAction: opponentAction,
	})
	if err != nil {
		log.Printf("session %s: failed to render intel: %v", r.id, err)
		return
	}

	if err := r.transport.SendPrivate(ctx, to.ID, reveal.Message); err != nil {
		log.Printf("session %s: failed to send intel to %s: %v", r.id, to.ID, err)
	}
}

// recordRoundStats folds each real participant's committed action into the
// persisted counters
func (r *room) recordRoundStats(ctx context.Context, result *engine.RoundResult) {
	for _, pair := range result.Pairs {
		r.recordAction(ctx, pair.A, pair.ActionA)
		if !pair.PlaceholderInvolved {
			r.recordAction(ctx, pair.B, pair.ActionB)
		}
	}
}

func (r *room) recordAction(ctx context.Context, p *models.Participant, action models.Action) {
	input := &statsRepo.RecordOutcomeInput{
		PlayerID: p.ID,
		Name:     p.Name,
	}
	switch action {
	case models.ActionTrust:
		input.Trusts = 1
	case models.ActionBetray:
		input.Betrays = 1
	}

	if err := r.statsRepo.RecordOutcome(ctx, input); err != nil {
		log.Printf("session %s: failed to record outcome for %s: %v", r.id, p.ID, err)
	}
}

// finish closes the session with its terminal broadcast and, when someone
// survived, the winner's persisted record
func (r *room) finish(ctx context.Context, winner *models.Participant) {
	r.setPhase(models.PhaseEnded)

	winnerName := ""
	if winner != nil {
		winnerName = winner.Name
		if err := r.statsRepo.RecordOutcome(ctx, &statsRepo.RecordOutcomeInput{
			PlayerID: winner.ID,
			Name:     winner.Name,
			Won:      true,
		}); err != nil {
			log.Printf("session %s: failed to record win for %s: %v", r.id, winner.ID, err)
		}
	}

	r.broadcastGameOver(ctx, winnerName, false)

	log.Printf("session %s: ended after %d rounds in %s (winner=%q)",
		r.id, r.roundCount(), r.clock.Now().Sub(r.startedAt).Round(time.Second), winnerName)
}

// halt marks a cancelled session terminal without ceremony
func (r *room) halt() {
	r.setPhase(models.PhaseEnded)
	log.Printf("session %s: cancelled in round %d", r.id, r.roundCount())
}

func (r *room) broadcastPhase(ctx context.Context, phase models.Phase, duration time.Duration) {
	announcement, err := r.narrator.GetPhaseAnnouncement(ctx, &narration.GetPhaseAnnouncementInput{
		Phase:   phase,
		Round:   r.roundCount(),
		Seconds: int(duration / time.Second),
	})
	if err != nil {
		log.Printf("session %s: failed to render %s announcement: %v", r.id, phase, err)
		return
	}

	if err := r.transport.Broadcast(ctx, r.id, announcement.Message); err != nil {
		log.Printf("session %s: failed to broadcast %s announcement: %v", r.id, phase, err)
	}
}

func (r *room) broadcastGameOver(ctx context.Context, winnerName string, aborted bool) {
	message, err := r.narrator.GetGameOver(ctx, &narration.GetGameOverInput{
		WinnerName: winnerName,
		Aborted:    aborted,
	})
	if err != nil {
		log.Printf("session %s: failed to render game over: %v", r.id, err)
		return
	}

	if err := r.transport.Broadcast(ctx, r.id, message.Message); err != nil {
		log.Printf("session %s: failed to broadcast game over: %v", r.id, err)
	}
}

// broadcastFault tells the room the driver had to stop mid-game
func (r *room) broadcastFault(ctx context.Context) {
	message, err := r.narrator.GetGameOver(ctx, &narration.GetGameOverInput{Faulted: true})
	if err != nil {
		log.Printf("session %s: failed to render fault notice: %v", r.id, err)
		return
	}

	if err := r.transport.Broadcast(ctx, r.id, message.Message); err != nil {
		log.Printf("session %s: failed to broadcast fault notice: %v", r.id, err)
	}
}

// wait blocks for the given duration. It returns false when the context
// was cancelled first.
func (r *room) wait(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}

// assignRoles deals the shuffled role pool over the roster, cycling when
// the roster outnumbers the pool. Caller holds the mutex.
func (r *room) assignRoles() {
	pool := engine.RolePool()
	r.source.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	for i, id := range r.order {
		r.participants[id].Role = pool[i%len(pool)]
	}
}

func (r *room) setPhase(phase models.Phase) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.phase = phase
}

func (r *room) roundCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.round
}

// snapshotLocked returns the participants in join order. Caller holds the
// mutex; the pointers stay shared with the room.
func (r *room) snapshotLocked() []*models.Participant {
	out := make([]*models.Participant, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.participants[id])
	}
	return out
}

func (r *room) livingSnapshot() []*models.Participant {
	r.mu.Lock()
	defer r.mu.Unlock()
	return livingOf(r.snapshotLocked())
}

// standingsLocked builds the aftermath board, vitality descending. Caller
// holds the mutex.
func (r *room) standingsLocked() []narration.StandingEntry {
	entries := make([]narration.StandingEntry, 0, len(r.order))
	for _, id := range r.order {
		p := r.participants[id]
		entries = append(entries, narration.StandingEntry{
			Name:     p.Name,
			Vitality: p.Vitality,
			Alive:    p.Alive,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Vitality > entries[j].Vitality
	})

	return entries
}

func livingOf(participants []*models.Participant) []*models.Participant {
	out := make([]*models.Participant, 0, len(participants))
	for _, p := range participants {
		if p.Alive {
			out = append(out, p)
		}
	}
	return out
}
