package engine

import "github.com/ashveil/oathsandashes/internal/models"

// Payoff constants
const (
	// AFKPenalty is deducted from a sleeping participant facing an awake one
	AFKPenalty = 5

	// SleepExploitGain is granted for betraying a sleeping participant
	SleepExploitGain = 10

	// MutualTrustGain is granted to both sides of a mutual trust
	MutualTrustGain = 10

	// MutualBetrayLoss is deducted from both sides of a mutual betrayal
	MutualBetrayLoss = 10

	// BetrayalSwing is the magnitude of the trust-versus-betray outcome
	BetrayalSwing = 15
)

// BasePayoff maps a pair of committed actions to base vitality deltas.
// Symmetric: BasePayoff(a, b) is the swap of BasePayoff(b, a).
func BasePayoff(a1, a2 models.Action) (int, int) {
	// Sleep short-circuits everything else
	if a1 == models.ActionSleep && a2 == models.ActionSleep {
		return 0, 0
	}
	if a1 == models.ActionSleep {
		d2 := 0
		if a2 == models.ActionBetray {
			d2 = SleepExploitGain
		}
		return -AFKPenalty, d2
	}
	if a2 == models.ActionSleep {
		d1 := 0
		if a1 == models.ActionBetray {
			d1 = SleepExploitGain
		}
		return d1, -AFKPenalty
	}

	switch {
	case a1 == models.ActionTrust && a2 == models.ActionTrust:
		return MutualTrustGain, MutualTrustGain
	case a1 == models.ActionBetray && a2 == models.ActionBetray:
		return -MutualBetrayLoss, -MutualBetrayLoss
	case a1 == models.ActionTrust:
		return -BetrayalSwing, BetrayalSwing
	default:
		return BetrayalSwing, -BetrayalSwing
	}
}
