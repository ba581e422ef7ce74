package engine

import "github.com/ashveil/oathsandashes/internal/models"

// CurseMultiplier scales a cursed participant's positive delta, truncating
// toward zero
const CurseMultiplier = 0.5

// side is one half of a pair mid-resolution: the participant, their
// effective action, and the pending vitality delta the pipeline mutates.
type side struct {
	participant *models.Participant
	action      models.Action
	placeholder bool
	delta       int
}

func (s *side) modifier() Modifier {
	if s.placeholder {
		// the placeholder is excluded from all role bookkeeping
		return Modifier{}
	}
	return LookupRole(s.participant.Role).Modifier
}

// applyModifiers runs the role modifier pipeline over a pair's pending
// deltas. Order is load-bearing: the curse stage reads post-steal totals
// and the compensation stage reads post-curse totals.
func applyModifiers(s1, s2 *side) {
	applyPayoffBonuses(s1, s2)
	applyPayoffBonuses(s2, s1)

	applyImpactDoubling(s1)
	applyImpactDoubling(s2)

	// side one steals first; side two steals against the mutated deltas
	applySteal(s1, s2)
	applySteal(s2, s1)

	applyCurse(s1)
	applyCurse(s2)

	applyLossCompensation(s1)
	applyLossCompensation(s2)
}

// applyPayoffBonuses folds the role-conditional payoff adjustments into the
// base deltas: a duelist's bonus on a successful betrayal and a vanguard's
// guard on a mutual betrayal.
func applyPayoffBonuses(s, other *side) {
	mod := s.modifier()

	if mod.BetrayBonus > 0 && s.action == models.ActionBetray && other.action == models.ActionTrust {
		s.delta += mod.BetrayBonus
	}

	if mod.ClashGuard > 0 && s.action == models.ActionBetray && other.action == models.ActionBetray {
		s.delta += mod.ClashGuard
	}
}

func applyImpactDoubling(s *side) {
	if s.modifier().DoubleImpact {
		s.delta *= 2
	}
}

func applySteal(s, other *side) {
	mod := s.modifier()
	if mod.StealAmount > 0 && s.action == models.ActionBetray && other.delta > 0 {
		other.delta -= mod.StealAmount
		s.delta += mod.StealAmount
	}
}

// applyCurse dampens a positive delta when at least one curse landed this
// round. Curses never touch zero or negative deltas.
func applyCurse(s *side) {
	if s.placeholder {
		return
	}
	if s.delta > 0 && s.participant.Cursed() {
		s.delta = int(float64(s.delta) * CurseMultiplier)
	}
}

func applyLossCompensation(s *side) {
	mod := s.modifier()
	if mod.LossCompensation > 0 && s.delta < 0 {
		s.delta += mod.LossCompensation
	}
}
