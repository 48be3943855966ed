package game

// Static, immutable records served by the data provider. The engine treats
// lookups as synchronous and caches nothing itself.

// BaseStats are species-level stat seeds fed into the stat calculator.
type BaseStats struct {
	HP        int `json:"hp" yaml:"hp"`
	Attack    int `json:"attack" yaml:"attack"`
	Defense   int `json:"defense" yaml:"defense"`
	SpAttack  int `json:"special_attack" yaml:"special_attack"`
	SpDefense int `json:"special_defense" yaml:"special_defense"`
	Speed     int `json:"speed" yaml:"speed"`
}

// Species is an immutable species record.
type Species struct {
	ID    uint      `json:"id"`
	Name  string    `json:"name"`
	Types []Type    `json:"types"` // one or two entries
	Base  BaseStats `json:"base_stats"`
}

// EffectTarget selects who a move's secondary stage change applies to.
type EffectTarget uint8

const (
	TargetSelf EffectTarget = iota
	TargetOpponent
)

// StageChange is a secondary stat-stage effect carried by a move.
type StageChange struct {
	Stat   StatKind     `json:"stat"`
	Delta  int          `json:"delta"`
	Target EffectTarget `json:"target"`
}

// MoveEffect is the data-driven effect descriptor attached to a move.
// Chances are percentages in [0,100].
type MoveEffect struct {
	Ailment       StatusKind    `json:"ailment"`
	AilmentChance int           `json:"ailment_chance"`
	FlinchChance  int           `json:"flinch_chance"`
	StageChanges  []StageChange `json:"stage_changes"`
}

// Move is an immutable move record. Power 0 marks a non-damaging move;
// Accuracy 0 means the move never misses.
type Move struct {
	ID       uint         `json:"id"`
	Name     string       `json:"name"`
	Type     Type         `json:"type"`
	Category MoveCategory `json:"category"`
	Power    int          `json:"power"`
	Accuracy int          `json:"accuracy"`
	Priority int          `json:"priority"`
	MaxPP    int          `json:"max_pp"`
	Effect   MoveEffect   `json:"effect"`
}
