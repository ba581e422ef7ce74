package engine

import "github.com/ashveil/oathsandashes/internal/models"

// NarrationCategory classifies a pair's public outcome. The mapping from
// category to prose lives in the narration service.
type NarrationCategory string

const (
	// NarrationPlaceholder is any interaction with the placeholder opponent
	NarrationPlaceholder NarrationCategory = "placeholder"

	// NarrationBothAsleep is a pair where neither side acted
	NarrationBothAsleep NarrationCategory = "both_asleep"

	// NarrationOneAsleep is a pair where exactly one side slept
	NarrationOneAsleep NarrationCategory = "one_asleep"

	// NarrationMutualTrust is a pair where both sides trusted
	NarrationMutualTrust NarrationCategory = "mutual_trust"

	// NarrationMutualBetray is a pair where both sides betrayed
	NarrationMutualBetray NarrationCategory = "mutual_betray"

	// NarrationBetrayed means the first side trusted and was betrayed
	NarrationBetrayed NarrationCategory = "betrayed"

	// NarrationBetrayer means the first side betrayed a trusting opponent
	NarrationBetrayer NarrationCategory = "betrayer"
)

// WhisperCategory classifies the private outcome delivered to one side
type WhisperCategory string

const (
	// WhisperVictim : you trusted, they betrayed
	WhisperVictim WhisperCategory = "victim"

	// WhisperTraitor : you betrayed, they trusted
	WhisperTraitor WhisperCategory = "traitor"

	// WhisperClash : both betrayed
	WhisperClash WhisperCategory = "clash"

	// WhisperBond : both trusted
	WhisperBond WhisperCategory = "bond"

	// WhisperIndifferent : sleep or the void was involved
	WhisperIndifferent WhisperCategory = "indifferent"
)

// ClassifyNarration maps a pair's actions to the public outcome category.
// Deterministic on (a1, a2, isPlaceholder); a1 is the first side's action.
func ClassifyNarration(a1, a2 models.Action, isPlaceholder bool) NarrationCategory {
	if isPlaceholder {
		return NarrationPlaceholder
	}

	if a1 == models.ActionSleep && a2 == models.ActionSleep {
		return NarrationBothAsleep
	}
	if a1 == models.ActionSleep || a2 == models.ActionSleep {
		return NarrationOneAsleep
	}

	switch {
	case a1 == models.ActionTrust && a2 == models.ActionTrust:
		return NarrationMutualTrust
	case a1 == models.ActionBetray && a2 == models.ActionBetray:
		return NarrationMutualBetray
	case a1 == models.ActionTrust:
		return NarrationBetrayed
	default:
		return NarrationBetrayer
	}
}

// ClassifyWhisper maps one side's view of the pair to the private outcome
// category delivered to that side.
func ClassifyWhisper(own, opponent models.Action) WhisperCategory {
	switch {
	case own == models.ActionTrust && opponent == models.ActionBetray:
		return WhisperVictim
	case own == models.ActionBetray && opponent == models.ActionTrust:
		return WhisperTraitor
	case own == models.ActionBetray && opponent == models.ActionBetray:
		return WhisperClash
	case own == models.ActionTrust && opponent == models.ActionTrust:
		return WhisperBond
	default:
		return WhisperIndifferent
	}
}
