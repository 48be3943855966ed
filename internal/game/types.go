package game

// Type is an elemental type. The eighteen canonical types index the
// effectiveness matrix directly.
type Type uint8

const (
	TypeNormal Type = iota
	TypeFire
	TypeWater
	TypeElectric
	TypeGrass
	TypeIce
	TypeFighting
	TypePoison
	TypeGround
	TypeFlying
	TypePsychic
	TypeBug
	TypeRock
	TypeGhost
	TypeDragon
	TypeDark
	TypeSteel
	TypeFairy

	// TypeCount is the matrix dimension, not a real type.
	TypeCount = 18
)

var typeNames = [TypeCount]string{
	"normal", "fire", "water", "electric", "grass", "ice",
	"fighting", "poison", "ground", "flying", "psychic", "bug",
	"rock", "ghost", "dragon", "dark", "steel", "fairy",
}

func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "unknown"
}

// ParseType resolves a lowercase type name; the boolean is false for
// unrecognized names.
func ParseType(s string) (Type, bool) {
	for i, n := range typeNames {
		if n == s {
			return Type(i), true
		}
	}
	return 0, false
}

// StatKind identifies one of the five non-HP battle stats.
type StatKind uint8

const (
	StatAttack StatKind = iota
	StatDefense
	StatSpAttack
	StatSpDefense
	StatSpeed

	statKindCount = 5
)

func (k StatKind) String() string {
	switch k {
	case StatAttack:
		return "attack"
	case StatDefense:
		return "defense"
	case StatSpAttack:
		return "special_attack"
	case StatSpDefense:
		return "special_defense"
	case StatSpeed:
		return "speed"
	}
	return "unknown"
}

// MoveCategory splits moves into physical, special and pure status.
type MoveCategory uint8

const (
	CategoryPhysical MoveCategory = iota
	CategorySpecial
	CategoryStatus
)

// StatusKind is the non-volatile status condition set. A combatant carries
// at most one at a time.
type StatusKind uint8

const (
	StatusNone StatusKind = iota
	StatusPoison
	StatusBurn
	StatusParalysis
	StatusSleep
	StatusFreeze
)

func (s StatusKind) String() string {
	switch s {
	case StatusPoison:
		return "poison"
	case StatusBurn:
		return "burn"
	case StatusParalysis:
		return "paralysis"
	case StatusSleep:
		return "sleep"
	case StatusFreeze:
		return "freeze"
	}
	return "none"
}

// Participation describes whether a combatant currently takes part in a
// battle. Fainted is a state, not entity destruction: fainted combatants
// stay queryable for post-battle effects.
type Participation uint8

const (
	NotInBattle Participation = iota
	Active
	Fainted
)

// Gender of a combatant; cosmetic for this core but part of Identity.
type Gender uint8

const (
	GenderUnknown Gender = iota
	GenderMale
	GenderFemale
)
