package engine

import (
	"github.com/ashveil/oathsandashes/internal/models"

	"github.com/ashveil/oathsandashes/internal/rng"
)

// PairOutcome is the resolved result of a single pair
type PairOutcome struct {
	// A and B are the pair members; B may be the placeholder opponent
	A *models.Participant
	B *models.Participant

	// ActionA and ActionB are the effective actions after the sleep default
	ActionA models.Action
	ActionB models.Action

	// DeltaA and DeltaB are the final vitality deltas after the modifier
	// pipeline. DeltaB is discarded when B is the placeholder.
	DeltaA int
	DeltaB int

	// PlaceholderInvolved marks the odd participant's synthetic pairing
	PlaceholderInvolved bool

	// Category is the public outcome classification, from A's perspective
	Category NarrationCategory

	// SubjectName and ObjectName are the pair's display names ordered for
	// narration: sleeper first for one-asleep, victim first for betrayals,
	// the real participant first for placeholder pairs.
	SubjectName string
	ObjectName  string

	// SubjectAction is the subject's effective action, used by placeholder
	// narration to distinguish an offered hand from a drawn blade
	SubjectAction models.Action

	// WhisperA and WhisperB are the private outcome classifications.
	// WhisperB is unused when B is the placeholder.
	WhisperA WhisperCategory
	WhisperB WhisperCategory

	// IntelForA / IntelForB mark a Veil Scribe's reveal of the opponent's
	// action. Never set for or about the placeholder.
	IntelForA bool
	IntelForB bool
}

// RoundResult is the outcome bundle reported back to the session driver
type RoundResult struct {
	// Pairs holds every resolved pair in resolution order
	Pairs []PairOutcome

	// Deaths lists the participants claimed by this round's death check
	Deaths []*models.Participant
}

// ResolveRound runs one full round over the living participant set: sleep
// defaulting, pairing, per-pair payoff and modifiers, vitality mutation,
// outcome classification, and the single end-of-round death check.
func ResolveRound(living []*models.Participant, source *rng.Source) *RoundResult {
	// the default-on-timeout rule is enforced here, not at intake
	for _, p := range living {
		if p.CommittedAction == "" {
			p.CommittedAction = models.ActionSleep
		}
	}

	pairs := PairUp(living, source)

	result := &RoundResult{
		Pairs: make([]PairOutcome, 0, len(pairs)),
	}

	for _, pair := range pairs {
		result.Pairs = append(result.Pairs, resolvePair(pair))
	}

	// Death check runs exactly once, after every pair has resolved.
	for _, p := range living {
		if p.Alive && p.Vitality <= 0 {
			p.Alive = false
			p.Vitality = 0
			result.Deaths = append(result.Deaths, p)
		}
	}

	return result
}

func resolvePair(pair Pair) PairOutcome {
	placeholder := IsPlaceholder(pair.B)

	s1 := &side{participant: pair.A, action: pair.A.CommittedAction}
	s2 := &side{participant: pair.B, action: pair.B.CommittedAction, placeholder: placeholder}

	s1.delta, s2.delta = BasePayoff(s1.action, s2.action)
	applyModifiers(s1, s2)

	pair.A.Vitality += s1.delta
	if !placeholder {
		pair.B.Vitality += s2.delta
	}

	outcome := PairOutcome{
		A:                   pair.A,
		B:                   pair.B,
		ActionA:             s1.action,
		ActionB:             s2.action,
		DeltaA:              s1.delta,
		DeltaB:              s2.delta,
		PlaceholderInvolved: placeholder,
		Category:            ClassifyNarration(s1.action, s2.action, placeholder),
		WhisperA:            ClassifyWhisper(s1.action, s2.action),
		WhisperB:            ClassifyWhisper(s2.action, s1.action),
	}

	outcome.SubjectName, outcome.ObjectName, outcome.SubjectAction = narrationOrder(outcome)

	if !placeholder {
		outcome.IntelForA = LookupRole(pair.A.Role).Modifier.RevealsOpponent
		outcome.IntelForB = LookupRole(pair.B.Role).Modifier.RevealsOpponent
	}

	return outcome
}

// narrationOrder picks which side leads the public line for the pair
func narrationOrder(o PairOutcome) (subject, object string, action models.Action) {
	switch o.Category {
	case NarrationOneAsleep:
		if o.ActionA == models.ActionSleep {
			return o.A.Name, o.B.Name, o.ActionA
		}
		return o.B.Name, o.A.Name, o.ActionB
	case NarrationBetrayed:
		// victim leads
		return o.A.Name, o.B.Name, o.ActionA
	case NarrationBetrayer:
		return o.B.Name, o.A.Name, o.ActionB
	default:
		return o.A.Name, o.B.Name, o.ActionA
	}
}
