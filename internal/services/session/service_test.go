package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	uuidMocks "github.com/ashveil/oathsandashes/internal/common/uuid/mocks"
	"github.com/ashveil/oathsandashes/internal/models"
	statsRepo "github.com/ashveil/oathsandashes/internal/repositories/stats"
	statsMocks "github.com/ashveil/oathsandashes/internal/repositories/stats/mocks"
	"github.com/ashveil/oathsandashes/internal/services/narration"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

// fakeTransport records deliveries and signals decision surfaces through
// channels so tests can react to the driver's timing.
type fakeTransport struct {
	mu         sync.Mutex
	broadcasts []string
	privates   []string

	choiceCh chan string
	curseCh  chan string
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{
		choiceCh: make(chan string, 32),
		curseCh:  make(chan string, 32),
	}
}

func (t *fakeTransport) Broadcast(ctx context.Context, roomID, text string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.broadcasts = append(t.broadcasts, text)
	return nil
}

func (t *fakeTransport) SendPrivate(ctx context.Context, participantID, text string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.privates = append(t.privates, text)
	return nil
}

func (t *fakeTransport) PresentChoice(ctx context.Context, participantID, prompt string, choices []models.Action) error {
	select {
	case t.choiceCh <- participantID:
	default:
	}
	return nil
}

func (t *fakeTransport) PresentCurseTargets(ctx context.Context, participantID, prompt string, targets []CurseTarget) error {
	select {
	case t.curseCh <- participantID:
	default:
	}
	return nil
}

func (t *fakeTransport) broadcastLog() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return strings.Join(t.broadcasts, "\n")
}

type SessionServiceTestSuite struct {
	suite.Suite
	mockCtrl  *gomock.Controller
	mockStats *statsMocks.MockRepository
	mockUUID  *uuidMocks.MockUUID
	transport *fakeTransport
	narrator  narration.Service
	ctx       context.Context

	testRoomID      string
	testCreatorID   string
	testCreatorName string
	testPlayerID    string
	testPlayerName  string
}

func (s *SessionServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockStats = statsMocks.NewMockRepository(s.mockCtrl)
	s.mockUUID = uuidMocks.NewMockUUID(s.mockCtrl)
	s.transport = newFakeTransport()
	s.ctx = context.Background()

	narrator, err := narration.NewService(&narration.ServiceConfig{Seed: 42})
	s.Require().NoError(err)
	s.narrator = narrator

	s.mockUUID.EXPECT().NewUUID().Return("test-instance-id").AnyTimes()

	s.testRoomID = "test-room-id"
	s.testCreatorID = "creator-id"
	s.testCreatorName = "Ana"
	s.testPlayerID = "player-id"
	s.testPlayerName = "Bram"
}

func (s *SessionServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

// newService builds a service whose lobby stays open long enough for the
// test to drive intake by hand
func (s *SessionServiceTestSuite) newService(lobbyWait time.Duration) *service {
	svc, err := New(&Config{
		Transport:     s.transport,
		StatsRepo:     s.mockStats,
		Narrator:      s.narrator,
		UUIDGenerator: s.mockUUID,
		Seed:          7,
		LobbyWait:     lobbyWait,
		DiscussionWait: 20 * time.Millisecond,
		DecisionWait:   300 * time.Millisecond,
		TensionHold:    10 * time.Millisecond,
		AnchorHold:     10 * time.Millisecond,
	})
	s.Require().NoError(err)
	return svc
}

func (s *SessionServiceTestSuite) createSession(svc *service) {
	output, err := svc.CreateSession(s.ctx, &CreateSessionInput{
		RoomID:      s.testRoomID,
		CreatorID:   s.testCreatorID,
		CreatorName: s.testCreatorName,
	})
	s.Require().NoError(err)
	s.Equal("test-instance-id", output.InstanceID)
}

// roomGone reports whether the registry has disposed of the test room
func (s *SessionServiceTestSuite) roomGone(svc *service) bool {
	_, err := svc.GetRoster(s.ctx, &GetRosterInput{RoomID: s.testRoomID})
	return errors.Is(err, ErrSessionNotFound)
}

func (s *SessionServiceTestSuite) TestNewValidation() {
	_, err := New(nil)
	s.ErrorIs(err, ErrNilConfig)

	_, err = New(&Config{StatsRepo: s.mockStats, Narrator: s.narrator})
	s.ErrorIs(err, ErrNilTransport)

	_, err = New(&Config{Transport: s.transport, Narrator: s.narrator})
	s.ErrorIs(err, ErrNilStatsRepo)

	_, err = New(&Config{Transport: s.transport, StatsRepo: s.mockStats})
	s.ErrorIs(err, ErrNilNarrator)
}

func (s *SessionServiceTestSuite) TestNewAppliesDefaults() {
	svc := s.newService(0)

	s.Equal(DefaultLobbyWait, svc.config.LobbyWait)
	s.Equal(DefaultMinPlayers, svc.config.MinPlayers)
	s.Equal(DefaultStartingVitality, svc.config.StartingVitality)
	s.Equal(DefaultLeaderboardSize, svc.config.LeaderboardSize)
}

func (s *SessionServiceTestSuite) TestCreateSessionRejectsLiveRoom() {
	svc := s.newService(time.Hour)
	s.createSession(svc)

	_, err := svc.CreateSession(s.ctx, &CreateSessionInput{
		RoomID:      s.testRoomID,
		CreatorID:   s.testPlayerID,
		CreatorName: s.testPlayerName,
	})
	s.ErrorIs(err, ErrSessionActive)
}

func (s *SessionServiceTestSuite) TestAbandonThenRecreate() {
	svc := s.newService(time.Hour)
	s.createSession(svc)

	abandonOutput, err := svc.AbandonSession(s.ctx, &AbandonSessionInput{RoomID: s.testRoomID})
	s.Require().NoError(err)
	s.True(abandonOutput.Success)

	// The ended session is dropped from the registry, freeing the room
	s.Eventually(func() bool {
		return s.roomGone(svc)
	}, 5*time.Second, 10*time.Millisecond)
	svc.mu.Lock()
	s.Empty(svc.rooms)
	svc.mu.Unlock()

	s.createSession(svc)
}

func (s *SessionServiceTestSuite) TestJoinAndLeaveLobby() {
	svc := s.newService(time.Hour)
	s.createSession(svc)

	joinOutput, err := svc.JoinSession(s.ctx, &JoinSessionInput{
		RoomID:          s.testRoomID,
		ParticipantID:   s.testPlayerID,
		ParticipantName: s.testPlayerName,
	})
	s.Require().NoError(err)
	s.True(joinOutput.Success)
	s.False(joinOutput.AlreadyJoined)

	// A second join is acknowledged, not duplicated
	joinOutput, err = svc.JoinSession(s.ctx, &JoinSessionInput{
		RoomID:          s.testRoomID,
		ParticipantID:   s.testPlayerID,
		ParticipantName: s.testPlayerName,
	})
	s.Require().NoError(err)
	s.True(joinOutput.AlreadyJoined)

	rosterOutput, err := svc.GetRoster(s.ctx, &GetRosterInput{RoomID: s.testRoomID})
	s.Require().NoError(err)
	s.Len(rosterOutput.Entries, 2)
	s.Equal(s.testCreatorName, rosterOutput.Entries[0].Name)
	s.Equal(DefaultStartingVitality, rosterOutput.Entries[0].Vitality)

	leaveOutput, err := svc.LeaveSession(s.ctx, &LeaveSessionInput{
		RoomID:        s.testRoomID,
		ParticipantID: s.testPlayerID,
	})
	s.Require().NoError(err)
	s.True(leaveOutput.Success)
	s.False(leaveOutput.SelfEliminated)

	rosterOutput, err = svc.GetRoster(s.ctx, &GetRosterInput{RoomID: s.testRoomID})
	s.Require().NoError(err)
	s.Len(rosterOutput.Entries, 1)

	log := s.transport.broadcastLog()
	s.Contains(log, "Bram steps from the dark.")
	s.Contains(log, "Bram returns to the shadows.")
}

func (s *SessionServiceTestSuite) TestUnknownRoom() {
	svc := s.newService(time.Hour)

	_, err := svc.JoinSession(s.ctx, &JoinSessionInput{
		RoomID:        "no-such-room",
		ParticipantID: s.testPlayerID,
	})
	s.ErrorIs(err, ErrSessionNotFound)

	_, err = svc.GetRoster(s.ctx, &GetRosterInput{RoomID: "no-such-room"})
	s.ErrorIs(err, ErrSessionNotFound)
}

func (s *SessionServiceTestSuite) TestCommitActionGating() {
	svc := s.newService(time.Hour)
	s.createSession(svc)

	// Sleep can never be committed; it is only ever a timeout default
	_, err := svc.CommitAction(s.ctx, &CommitActionInput{
		RoomID:        s.testRoomID,
		ParticipantID: s.testCreatorID,
		Action:        models.ActionSleep,
	})
	s.ErrorIs(err, ErrInvalidAction)

	// The lobby accepts no commitments
	_, err = svc.CommitAction(s.ctx, &CommitActionInput{
		RoomID:        s.testRoomID,
		ParticipantID: s.testCreatorID,
		Action:        models.ActionTrust,
	})
	s.ErrorIs(err, ErrInvalidPhase)
}

func (s *SessionServiceTestSuite) TestResolveParticipantSessionOutsideDecision() {
	svc := s.newService(time.Hour)
	s.createSession(svc)

	_, err := svc.ResolveParticipantSession(s.ctx, &ResolveParticipantSessionInput{
		ParticipantID: s.testCreatorID,
	})
	s.ErrorIs(err, ErrSessionNotFound)
}

func (s *SessionServiceTestSuite) TestGetStatsSummary() {
	svc := s.newService(time.Hour)

	expected := &models.PlayerStats{
		PlayerID: s.testPlayerID,
		Name:     s.testPlayerName,
		Games:    12,
		Wins:     3,
		Trusts:   20,
		Betrays:  4,
	}

	s.mockStats.EXPECT().
		GetStats(gomock.Any(), &statsRepo.GetStatsInput{PlayerID: s.testPlayerID}).
		Return(expected, nil)

	output, err := svc.GetStatsSummary(s.ctx, &GetStatsSummaryInput{PlayerID: s.testPlayerID})
	s.Require().NoError(err)
	s.Equal(expected, output.Stats)
}

func (s *SessionServiceTestSuite) TestGetStatsSummaryNotFound() {
	svc := s.newService(time.Hour)

	s.mockStats.EXPECT().
		GetStats(gomock.Any(), gomock.Any()).
		Return(nil, statsRepo.ErrStatsNotFound)

	_, err := svc.GetStatsSummary(s.ctx, &GetStatsSummaryInput{PlayerID: s.testPlayerID})
	s.ErrorIs(err, statsRepo.ErrStatsNotFound)
}

func (s *SessionServiceTestSuite) TestGetLeaderboard() {
	svc := s.newService(time.Hour)

	s.mockStats.EXPECT().
		GetLeaderboard(gomock.Any(), &statsRepo.GetLeaderboardInput{Limit: DefaultLeaderboardSize}).
		Return(&statsRepo.GetLeaderboardOutput{
			Entries: []statsRepo.LeaderboardEntry{
				{PlayerID: "p1", Name: "Ana", Wins: 9},
				{PlayerID: "p2", Name: "Bram", Wins: 4},
			},
		}, nil)

	output, err := svc.GetLeaderboard(s.ctx, &GetLeaderboardInput{})
	s.Require().NoError(err)
	s.Require().Len(output.Entries, 2)
	s.Equal("p1", output.Entries[0].PlayerID)
	s.Equal(9, output.Entries[0].Wins)
}

func (s *SessionServiceTestSuite) TestLobbyAbortsBelowMinimum() {
	svc := s.newService(20 * time.Millisecond)
	s.createSession(svc)

	s.Eventually(func() bool {
		return s.roomGone(svc)
	}, 5*time.Second, 10*time.Millisecond)

	s.Contains(s.transport.broadcastLog(), "The hearth is cold.")
}

// TestFullGame drives a two-player session to its terminal broadcast.
// Ana betrays every round while Bram keeps trusting, so whatever roles
// the shuffle dealt, Ana only gains and Bram only bleeds.
func (s *SessionServiceTestSuite) TestFullGame() {
	winCh := make(chan string, 1)
	s.mockStats.EXPECT().
		RecordOutcome(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, input *statsRepo.RecordOutcomeInput) error {
			if input.Won {
				select {
				case winCh <- input.PlayerID:
				default:
				}
			}
			return nil
		}).
		AnyTimes()

	svc := s.newService(100 * time.Millisecond)
	s.createSession(svc)

	_, err := svc.JoinSession(s.ctx, &JoinSessionInput{
		RoomID:          s.testRoomID,
		ParticipantID:   s.testPlayerID,
		ParticipantName: s.testPlayerName,
	})
	s.Require().NoError(err)

	done := make(chan struct{})
	defer close(done)

	// Answer every decision surface as soon as it lands
	go func() {
		for {
			select {
			case id := <-s.transport.choiceCh:
				action := models.ActionTrust
				if id == s.testCreatorID {
					action = models.ActionBetray
				}
				// late commits lose the race with resolution; that is fine
				_, _ = svc.CommitAction(s.ctx, &CommitActionInput{
					RoomID:        s.testRoomID,
					ParticipantID: id,
					Action:        action,
				})
			case <-done:
				return
			}
		}
	}()

	var winnerID string
	select {
	case winnerID = <-winCh:
	case <-time.After(30 * time.Second):
		s.FailNow("game never produced a winner")
	}
	s.Equal(s.testCreatorID, winnerID)

	s.Eventually(func() bool {
		return s.roomGone(svc)
	}, 5*time.Second, 10*time.Millisecond)

	log := s.transport.broadcastLog()
	s.Contains(log, "THE CHRONICLE UPDATES")
	s.Contains(log, "The Standing:")
	s.Contains(log, "⚫ Bram: ASH")
	s.Contains(log, "🟢 Ana:")
	s.Contains(log, "⋯")
	s.Contains(log, "A NEW SOVEREIGN RISES")
	s.Contains(log, "**Ana**")
}

// explodingNarrator fails loudly once the first discussion opens, the way
// an exhausted prose bank would surface mid-game
type explodingNarrator struct {
	narration.Service
}

func (n *explodingNarrator) GetPhaseAnnouncement(ctx context.Context, input *narration.GetPhaseAnnouncementInput) (*narration.GetPhaseAnnouncementOutput, error) {
	if input.Phase == models.PhaseDiscussion {
		panic("prose bank exhausted")
	}
	return n.Service.GetPhaseAnnouncement(ctx, input)
}

// TestDriverFaultAnnouncesAndDisposes covers the driver's recover path: a
// panic mid-game still leaves the room a terminal broadcast and releases
// the registry entry.
func (s *SessionServiceTestSuite) TestDriverFaultAnnouncesAndDisposes() {
	svc, err := New(&Config{
		Transport:      s.transport,
		StatsRepo:      s.mockStats,
		Narrator:       &explodingNarrator{Service: s.narrator},
		UUIDGenerator:  s.mockUUID,
		Seed:           7,
		LobbyWait:      50 * time.Millisecond,
		DiscussionWait: 20 * time.Millisecond,
		DecisionWait:   20 * time.Millisecond,
		TensionHold:    10 * time.Millisecond,
		AnchorHold:     10 * time.Millisecond,
	})
	s.Require().NoError(err)
	s.createSession(svc)

	_, err = svc.JoinSession(s.ctx, &JoinSessionInput{
		RoomID:          s.testRoomID,
		ParticipantID:   s.testPlayerID,
		ParticipantName: s.testPlayerName,
	})
	s.Require().NoError(err)

	s.Eventually(func() bool {
		return s.roomGone(svc)
	}, 5*time.Second, 10*time.Millisecond)

	s.Contains(s.transport.broadcastLog(), "THE THREAD SNAPS")
}

func TestSessionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SessionServiceTestSuite))
}
