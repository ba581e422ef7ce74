package session

import (
	"context"
	"testing"
	"time"

	clockMocks "github.com/ashveil/oathsandashes/internal/common/clock/mocks"
	"github.com/ashveil/oathsandashes/internal/engine"
	"github.com/ashveil/oathsandashes/internal/models"
	"github.com/ashveil/oathsandashes/internal/rng"
	statsMocks "github.com/ashveil/oathsandashes/internal/repositories/stats/mocks"
	"github.com/ashveil/oathsandashes/internal/services/narration"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type RoomTestSuite struct {
	suite.Suite
	mockCtrl *gomock.Controller
	room     *room
	ctx      context.Context
}

func (s *RoomTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.ctx = context.Background()

	narrator, err := narration.NewService(&narration.ServiceConfig{Seed: 42})
	s.Require().NoError(err)

	mockClock := clockMocks.NewMockClock(s.mockCtrl)
	mockClock.EXPECT().Now().
		Return(time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)).
		AnyTimes()

	cfg := &Config{
		MinPlayers:       DefaultMinPlayers,
		StartingVitality: DefaultStartingVitality,
	}

	s.room = newRoom(&roomConfig{
		id:         "test-room-id",
		instanceID: "test-instance-id",
		cfg:        cfg,
		transport:  newFakeTransport(),
		statsRepo:  statsMocks.NewMockRepository(s.mockCtrl),
		narrator:   narrator,
		clock:      mockClock,
		source:     rng.New(&rng.Config{Seed: 7}),
	})
}

func (s *RoomTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func (s *RoomTestSuite) joinAll(ids ...string) {
	for _, id := range ids {
		joined, already := s.room.join(id, "name-"+id)
		s.Require().True(joined)
		s.Require().False(already)
	}
}

func (s *RoomTestSuite) TestJoinOnlyInLobby() {
	s.joinAll("a")

	s.room.setPhase(models.PhaseDiscussion)

	joined, _ := s.room.join("b", "Bram")
	s.False(joined)
}

func (s *RoomTestSuite) TestJoinIsIdempotent() {
	s.joinAll("a")

	joined, already := s.room.join("a", "name-a")
	s.True(joined)
	s.True(already)

	_, _, entries := s.room.roster()
	s.Len(entries, 1)
}

func (s *RoomTestSuite) TestLeaveInLobbyRemoves() {
	s.joinAll("a", "b")

	removed, eliminated, name := s.room.leave("a")
	s.True(removed)
	s.False(eliminated)
	s.Equal("name-a", name)

	_, _, entries := s.room.roster()
	s.Require().Len(entries, 1)
	s.Equal("b", entries[0].ID)
}

func (s *RoomTestSuite) TestLeaveAfterLobbyEliminates() {
	s.joinAll("a", "b")
	s.room.setPhase(models.PhaseDiscussion)

	removed, eliminated, name := s.room.leave("a")
	s.False(removed)
	s.True(eliminated)
	s.Equal("name-a", name)

	_, _, entries := s.room.roster()
	s.Require().Len(entries, 2)
	s.False(entries[0].Alive)
	s.Equal(0, entries[0].Vitality)

	// A dead participant cannot leave twice
	removed, eliminated, _ = s.room.leave("a")
	s.False(removed)
	s.False(eliminated)
}

func (s *RoomTestSuite) TestLeaveUnknownParticipant() {
	removed, eliminated, _ := s.room.leave("ghost")
	s.False(removed)
	s.False(eliminated)
}

func (s *RoomTestSuite) TestCommitLatchesOnce() {
	s.joinAll("a", "b")
	s.room.setPhase(models.PhaseDecision)

	s.NoError(s.room.commit("a", models.ActionBetray))

	err := s.room.commit("a", models.ActionTrust)
	s.ErrorIs(err, ErrAlreadyCommitted)

	s.Equal(models.ActionBetray, s.room.participants["a"].CommittedAction)
}

func (s *RoomTestSuite) TestCommitGating() {
	s.joinAll("a", "b")

	err := s.room.commit("a", models.ActionTrust)
	s.ErrorIs(err, ErrInvalidPhase)

	s.room.setPhase(models.PhaseDecision)

	err = s.room.commit("ghost", models.ActionTrust)
	s.ErrorIs(err, ErrParticipantNotFound)

	s.room.participants["b"].Alive = false
	err = s.room.commit("b", models.ActionTrust)
	s.ErrorIs(err, ErrInvalidAction)
}

func (s *RoomTestSuite) TestCurse() {
	s.joinAll("a", "b", "c")
	s.room.setPhase(models.PhaseDecision)

	// Only the dead may curse
	_, err := s.room.curse("a", "b")
	s.ErrorIs(err, ErrCasterAlive)

	s.room.participants["a"].Alive = false

	name, err := s.room.curse("a", "b")
	s.Require().NoError(err)
	s.Equal("name-b", name)
	s.True(s.room.participants["b"].Cursed())

	// Curses stack
	_, err = s.room.curse("a", "b")
	s.Require().NoError(err)
	s.Len(s.room.participants["b"].CursesReceived, 2)

	// The dead are beyond reach
	s.room.participants["c"].Alive = false
	_, err = s.room.curse("a", "c")
	s.ErrorIs(err, ErrTargetNotAlive)
}

func (s *RoomTestSuite) TestCurseGating() {
	s.joinAll("a", "b")
	s.room.participants["a"].Alive = false

	_, err := s.room.curse("a", "b")
	s.ErrorIs(err, ErrInvalidPhase)

	s.room.setPhase(models.PhaseDecision)

	_, err = s.room.curse("ghost", "b")
	s.ErrorIs(err, ErrParticipantNotFound)

	_, err = s.room.curse("a", "ghost")
	s.ErrorIs(err, ErrTargetNotAlive)
}

func (s *RoomTestSuite) TestAwaitingDecisionFrom() {
	s.joinAll("a", "b")

	_, ok := s.room.awaitingDecisionFrom("a")
	s.False(ok)

	s.room.setPhase(models.PhaseDecision)

	alive, ok := s.room.awaitingDecisionFrom("a")
	s.True(ok)
	s.True(alive)

	s.room.participants["b"].Alive = false
	alive, ok = s.room.awaitingDecisionFrom("b")
	s.True(ok)
	s.False(alive)

	_, ok = s.room.awaitingDecisionFrom("ghost")
	s.False(ok)
}

func (s *RoomTestSuite) TestAssignRolesCoversRoster() {
	ids := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l"}
	s.joinAll(ids...)

	s.room.mu.Lock()
	s.room.assignRoles()
	s.room.mu.Unlock()

	counts := make(map[models.RoleID]int)
	for _, id := range ids {
		role := s.room.participants[id].Role
		s.NotEmpty(role)
		s.NotEmpty(engine.RoleName(role))
		counts[role]++
	}

	// Twelve participants over a pool of ten: the pool cycles, so every
	// role is dealt at least once and none more than twice
	s.Len(counts, len(engine.RolePool()))
	for _, n := range counts {
		s.LessOrEqual(n, 2)
	}
}

func (s *RoomTestSuite) TestStandingsOrderedByVitality() {
	s.joinAll("a", "b", "c")
	s.room.participants["a"].Vitality = 10
	s.room.participants["b"].Vitality = 65
	s.room.participants["c"].Alive = false
	s.room.participants["c"].Vitality = 0

	s.room.mu.Lock()
	standings := s.room.standingsLocked()
	s.room.mu.Unlock()

	s.Require().Len(standings, 3)
	s.Equal("name-b", standings[0].Name)
	s.Equal("name-a", standings[1].Name)
	s.Equal("name-c", standings[2].Name)
	s.False(standings[2].Alive)
}

func (s *RoomTestSuite) TestLivingSnapshotSkipsTheDead() {
	s.joinAll("a", "b", "c")
	s.room.participants["b"].Alive = false

	living := s.room.livingSnapshot()
	s.Require().Len(living, 2)
	s.Equal("a", living[0].ID)
	s.Equal("c", living[1].ID)
}

func TestRoomTestSuite(t *testing.T) {
	suite.Run(t, new(RoomTestSuite))
}
