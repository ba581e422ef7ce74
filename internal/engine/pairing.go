package engine

import (
	"github.com/ashveil/oathsandashes/internal/models"

	"github.com/ashveil/oathsandashes/internal/rng"
)

const (
	// PlaceholderID is the reserved sentinel ID of the placeholder opponent
	PlaceholderID = "__the_void__"

	// PlaceholderName is the display name of the placeholder opponent
	PlaceholderName = "The Void"
)

// Pair is an unordered pairing of two participants formed fresh every round.
// B may be the placeholder opponent when the living count is odd.
type Pair struct {
	A *models.Participant
	B *models.Participant
}

// IsPlaceholder reports whether the participant is the placeholder opponent
func IsPlaceholder(p *models.Participant) bool {
	return p != nil && p.ID == PlaceholderID
}

// PairUp partitions the living participants into disjoint pairs in a random
// order drawn from the injected source. An odd participant is paired against
// a fresh placeholder whose action is a coin flip between trust and betray.
func PairUp(living []*models.Participant, source *rng.Source) []Pair {
	shuffled := make([]*models.Participant, len(living))
	copy(shuffled, living)
	source.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	pairs := make([]Pair, 0, (len(shuffled)+1)/2)
	for len(shuffled) >= 2 {
		pairs = append(pairs, Pair{A: shuffled[0], B: shuffled[1]})
		shuffled = shuffled[2:]
	}

	if len(shuffled) == 1 {
		pairs = append(pairs, Pair{A: shuffled[0], B: newPlaceholder(source)})
	}

	return pairs
}

// newPlaceholder builds the non-scoring synthetic opponent for an odd round.
// It carries no role so the modifier pipeline ignores it, and its vitality
// is never read back.
func newPlaceholder(source *rng.Source) *models.Participant {
	action := models.ActionTrust
	if source.Intn(2) == 1 {
		action = models.ActionBetray
	}

	return &models.Participant{
		ID:              PlaceholderID,
		Name:            PlaceholderName,
		Vitality:        100,
		Alive:           true,
		CommittedAction: action,
	}
}
