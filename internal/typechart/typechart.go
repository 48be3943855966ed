// Package typechart provides the 18×18 type-effectiveness matrix. The table
// is immutable after construction, so a single instance is safely shared by
// every battle without locking.
package typechart

import "github.com/MrKumaPants/PokeNET-sub005/internal/game"

// Multipliers that can appear in a single-type lookup.
const (
	Immune           = 0.0
	NotVeryEffective = 0.5
	Neutral          = 1.0
	SuperEffective   = 2.0
)

// Table is the effectiveness matrix indexed [attacking][defending].
type Table struct {
	m [game.TypeCount][game.TypeCount]float64
}

// Override adjusts a sparse set of matchups after the canonical seed, for
// data-driven customization. Unlisted defending types keep their canonical
// value.
type Override struct {
	Attacking  game.Type
	Defending  []game.Type
	Multiplier float64
}

// New builds the canonical matchup table and merges any overrides on top.
func New(overrides ...Override) *Table {
	t := &Table{}
	for a := 0; a < game.TypeCount; a++ {
		for d := 0; d < game.TypeCount; d++ {
			t.m[a][d] = Neutral
		}
	}
	for a, row := range canonical {
		for d, mult := range row {
			t.m[a][d] = mult
		}
	}
	for _, o := range overrides {
		for _, d := range o.Defending {
			t.m[o.Attacking][d] = o.Multiplier
		}
	}
	return t
}

// Effectiveness returns the multiplier for a single-type matchup. O(1).
func (t *Table) Effectiveness(attacking, defending game.Type) float64 {
	return t.m[attacking][defending]
}

// DualEffectiveness is the product of the two single lookups; the second
// factor is omitted for single-typed defenders. Immunity dominates: a zero
// first factor short-circuits rather than multiplying.
func (t *Table) DualEffectiveness(attacking, defending1 game.Type, defending2 *game.Type) float64 {
	first := t.m[attacking][defending1]
	if first == Immune || defending2 == nil {
		return first
	}
	second := t.m[attacking][*defending2]
	if second == Immune {
		return Immune
	}
	return first * second
}

// Against folds a defender's full type set (one or two types).
func (t *Table) Against(attacking game.Type, defending []game.Type) float64 {
	switch len(defending) {
	case 0:
		return Neutral
	case 1:
		return t.DualEffectiveness(attacking, defending[0], nil)
	default:
		return t.DualEffectiveness(attacking, defending[0], &defending[1])
	}
}

// canonical holds only the non-neutral matchups; everything else is 1.0.
var canonical = map[game.Type]map[game.Type]float64{
	game.TypeNormal: {
		game.TypeRock: 0.5, game.TypeSteel: 0.5, game.TypeGhost: 0,
	},
	game.TypeFire: {
		game.TypeGrass: 2, game.TypeIce: 2, game.TypeBug: 2, game.TypeSteel: 2,
		game.TypeFire: 0.5, game.TypeWater: 0.5, game.TypeRock: 0.5, game.TypeDragon: 0.5,
	},
	game.TypeWater: {
		game.TypeFire: 2, game.TypeGround: 2, game.TypeRock: 2,
		game.TypeWater: 0.5, game.TypeGrass: 0.5, game.TypeDragon: 0.5,
	},
	game.TypeElectric: {
		game.TypeWater: 2, game.TypeFlying: 2,
		game.TypeElectric: 0.5, game.TypeGrass: 0.5, game.TypeDragon: 0.5,
		game.TypeGround: 0,
	},
	game.TypeGrass: {
		game.TypeWater: 2, game.TypeGround: 2, game.TypeRock: 2,
		game.TypeFire: 0.5, game.TypeGrass: 0.5, game.TypePoison: 0.5,
		game.TypeFlying: 0.5, game.TypeBug: 0.5, game.TypeDragon: 0.5, game.TypeSteel: 0.5,
	},
	game.TypeIce: {
		game.TypeGrass: 2, game.TypeGround: 2, game.TypeFlying: 2, game.TypeDragon: 2,
		game.TypeFire: 0.5, game.TypeWater: 0.5, game.TypeIce: 0.5, game.TypeSteel: 0.5,
	},
	game.TypeFighting: {
		game.TypeNormal: 2, game.TypeIce: 2, game.TypeRock: 2, game.TypeDark: 2, game.TypeSteel: 2,
		game.TypePoison: 0.5, game.TypeFlying: 0.5, game.TypePsychic: 0.5,
		game.TypeBug: 0.5, game.TypeFairy: 0.5,
		game.TypeGhost: 0,
	},
	game.TypePoison: {
		game.TypeGrass: 2, game.TypeFairy: 2,
		game.TypePoison: 0.5, game.TypeGround: 0.5, game.TypeRock: 0.5, game.TypeGhost: 0.5,
		game.TypeSteel: 0,
	},
	game.TypeGround: {
		game.TypeFire: 2, game.TypeElectric: 2, game.TypePoison: 2, game.TypeRock: 2, game.TypeSteel: 2,
		game.TypeGrass: 0.5, game.TypeBug: 0.5,
		game.TypeFlying: 0,
	},
	game.TypeFlying: {
		game.TypeGrass: 2, game.TypeFighting: 2, game.TypeBug: 2,
		game.TypeElectric: 0.5, game.TypeRock: 0.5, game.TypeSteel: 0.5,
	},
	game.TypePsychic: {
		game.TypeFighting: 2, game.TypePoison: 2,
		game.TypePsychic: 0.5, game.TypeSteel: 0.5,
		game.TypeDark: 0,
	},
	game.TypeBug: {
		game.TypeGrass: 2, game.TypePsychic: 2, game.TypeDark: 2,
		game.TypeFire: 0.5, game.TypeFighting: 0.5, game.TypePoison: 0.5,
		game.TypeFlying: 0.5, game.TypeGhost: 0.5, game.TypeSteel: 0.5, game.TypeFairy: 0.5,
	},
	game.TypeRock: {
		game.TypeFire: 2, game.TypeIce: 2, game.TypeFlying: 2, game.TypeBug: 2,
		game.TypeFighting: 0.5, game.TypeGround: 0.5, game.TypeSteel: 0.5,
	},
	game.TypeGhost: {
		game.TypePsychic: 2, game.TypeGhost: 2,
		game.TypeDark: 0.5,
		game.TypeNormal: 0,
	},
	game.TypeDragon: {
		game.TypeDragon: 2,
		game.TypeSteel: 0.5,
		game.TypeFairy: 0,
	},
	game.TypeDark: {
		game.TypePsychic: 2, game.TypeGhost: 2,
		game.TypeFighting: 0.5, game.TypeDark: 0.5, game.TypeFairy: 0.5,
	},
	game.TypeSteel: {
		game.TypeIce: 2, game.TypeRock: 2, game.TypeFairy: 2,
		game.TypeFire: 0.5, game.TypeWater: 0.5, game.TypeElectric: 0.5, game.TypeSteel: 0.5,
	},
	game.TypeFairy: {
		game.TypeFighting: 2, game.TypeDragon: 2, game.TypeDark: 2,
		game.TypeFire: 0.5, game.TypePoison: 0.5, game.TypeSteel: 0.5,
	},
}
