package engine

import "github.com/ashveil/oathsandashes/internal/models"

// Modifier describes the mechanical effect a role applies during resolution.
// A role with the zero Modifier is flavor only.
type Modifier struct {
	// DoubleImpact doubles the holder's own pending delta
	DoubleImpact bool

	// StealAmount is transferred from the opponent's positive delta when the
	// holder betrays
	StealAmount int

	// LossCompensation is added back when the holder's final delta is negative
	LossCompensation int

	// BetrayBonus is added when the holder betrays an opponent who trusted
	BetrayBonus int

	// ClashGuard is added back to the holder on a mutual betrayal
	ClashGuard int

	// RevealsOpponent discloses the opponent's committed action privately
	RevealsOpponent bool
}

// Role is a single row of the role table
type Role struct {
	ID       models.RoleID
	Name     string
	Modifier Modifier
}

// roleTable is the fixed catalog of roles. Adding a role means adding a row
// here; the pipeline stages read the descriptor, not the role identity.
var roleTable = map[models.RoleID]Role{
	models.RoleCinderOracle: {
		ID:       models.RoleCinderOracle,
		Name:     "Cinder Oracle",
		Modifier: Modifier{DoubleImpact: true},
	},
	models.RoleBlackBanner: {
		ID:       models.RoleBlackBanner,
		Name:     "Black Banner",
		Modifier: Modifier{StealAmount: 5},
	},
	models.RoleGravewarden: {
		ID:       models.RoleGravewarden,
		Name:     "Gravewarden",
		Modifier: Modifier{LossCompensation: 5},
	},
	models.RoleVeilScribe: {
		ID:       models.RoleVeilScribe,
		Name:     "Veil Scribe",
		Modifier: Modifier{RevealsOpponent: true},
	},
	models.RoleIronVanguard: {
		ID:       models.RoleIronVanguard,
		Name:     "Iron Vanguard",
		Modifier: Modifier{ClashGuard: 5},
	},
	models.RoleCrimsonDuelist: {
		ID:       models.RoleCrimsonDuelist,
		Name:     "Crimson Duelist",
		Modifier: Modifier{BetrayBonus: 5},
	},
	models.RolePaleJester: {
		ID:   models.RolePaleJester,
		Name: "Pale Jester",
	},
	models.RoleHollowKing: {
		ID:   models.RoleHollowKing,
		Name: "Hollow King",
	},
	models.RoleVerdantHealer: {
		ID:   models.RoleVerdantHealer,
		Name: "Verdant Healer",
	},
	models.RoleSilentShadow: {
		ID:   models.RoleSilentShadow,
		Name: "Silent Shadow",
	},
}

// rolePoolOrder is the fixed iteration order for building role pools
var rolePoolOrder = []models.RoleID{
	models.RoleCinderOracle,
	models.RoleBlackBanner,
	models.RoleGravewarden,
	models.RoleVeilScribe,
	models.RoleIronVanguard,
	models.RoleCrimsonDuelist,
	models.RolePaleJester,
	models.RoleHollowKing,
	models.RoleVerdantHealer,
	models.RoleSilentShadow,
}

// LookupRole returns the role table row for the given ID. Unknown IDs
// (including the placeholder's empty role) get a flavorless zero descriptor.
func LookupRole(id models.RoleID) Role {
	if role, ok := roleTable[id]; ok {
		return role
	}
	return Role{ID: id}
}

// RoleName returns the display name for a role ID
func RoleName(id models.RoleID) string {
	return LookupRole(id).Name
}

// RolePool returns a fresh slice of all role IDs in table order
func RolePool() []models.RoleID {
	pool := make([]models.RoleID, len(rolePoolOrder))
	copy(pool, rolePoolOrder)
	return pool
}
