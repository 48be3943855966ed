package game

import "github.com/MrKumaPants/PokeNET-sub005/internal/stats"

// The combatant components. Each is plain data owned by a single entity
// store. The battle engine reads them every resolution step and
// mutates them only through the command buffer.

// Identity is immutable after creation except for level and friendship,
// which change through dedicated mutations.
type Identity struct {
	SpeciesID  uint   `json:"species_id"`
	Level      int    `json:"level"`
	Nature     Nature `json:"nature"`
	Friendship int    `json:"friendship"`
	Gender     Gender `json:"gender"`
	Shiny      bool   `json:"shiny"`
}

// BattleStats carries the derived, battle-usable stats. Hot data: read on
// every resolution step.
type BattleStats struct {
	HP        int `json:"hp"`
	MaxHP     int `json:"max_hp"`
	Attack    int `json:"attack"`
	Defense   int `json:"defense"`
	SpAttack  int `json:"special_attack"`
	SpDefense int `json:"special_defense"`
	Speed     int `json:"speed"`
}

// Stat returns the derived value for a stat kind.
func (b *BattleStats) Stat(k StatKind) int {
	switch k {
	case StatAttack:
		return b.Attack
	case StatDefense:
		return b.Defense
	case StatSpAttack:
		return b.SpAttack
	case StatSpDefense:
		return b.SpDefense
	case StatSpeed:
		return b.Speed
	}
	return 0
}

// ApplyDamage subtracts damage, clamping HP at zero in the same mutation.
// Returns true when the combatant drops to zero.
func (b *BattleStats) ApplyDamage(amount int) bool {
	if amount < 0 {
		amount = 0
	}
	b.HP -= amount
	if b.HP <= 0 {
		b.HP = 0
		return true
	}
	return false
}

// TrainingValues is cold data, read only when stats are recalculated.
// IVs range 0–31 per stat, EVs 0–252 per stat with a 510 total cap.
type TrainingValues struct {
	IVHP        int `json:"iv_hp"`
	IVAttack    int `json:"iv_attack"`
	IVDefense   int `json:"iv_defense"`
	IVSpAttack  int `json:"iv_special_attack"`
	IVSpDefense int `json:"iv_special_defense"`
	IVSpeed     int `json:"iv_speed"`

	EVHP        int `json:"ev_hp"`
	EVAttack    int `json:"ev_attack"`
	EVDefense   int `json:"ev_defense"`
	EVSpAttack  int `json:"ev_special_attack"`
	EVSpDefense int `json:"ev_special_defense"`
	EVSpeed     int `json:"ev_speed"`
}

func clampRange(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Normalize clamps every IV and EV into range and truncates EVs in field
// order so their sum never exceeds the 510 cap. Out-of-range inputs are
// repaired, never rejected.
func (t *TrainingValues) Normalize() {
	for _, iv := range []*int{&t.IVHP, &t.IVAttack, &t.IVDefense, &t.IVSpAttack, &t.IVSpDefense, &t.IVSpeed} {
		*iv = clampRange(*iv, 0, stats.MaxIV)
	}
	budget := stats.MaxEVTotal
	for _, ev := range []*int{&t.EVHP, &t.EVAttack, &t.EVDefense, &t.EVSpAttack, &t.EVSpDefense, &t.EVSpeed} {
		*ev = clampRange(*ev, 0, stats.MaxEV)
		if *ev > budget {
			*ev = budget
		}
		budget -= *ev
	}
}

// EVTotal returns the summed effort values.
func (t *TrainingValues) EVTotal() int {
	return t.EVHP + t.EVAttack + t.EVDefense + t.EVSpAttack + t.EVSpDefense + t.EVSpeed
}

// BattleState tracks participation, per-stat stage modifiers and volatile
// turn flags.
type BattleState struct {
	Participation Participation `json:"participation"`
	Stages        [5]int        `json:"stages"` // indexed by StatKind
	AccuracyStage int           `json:"accuracy_stage"`
	EvasionStage  int           `json:"evasion_stage"`
	Flinched      bool          `json:"flinched"`
	TurnsInBattle int           `json:"turns_in_battle"`
}

// ApplyStageChange shifts a stat stage by delta, clamped to [-6, +6].
// Returns the actually-applied delta (zero when already at the bound).
func (s *BattleState) ApplyStageChange(stat StatKind, delta int) int {
	old := s.Stages[stat]
	next := clampRange(old+delta, stats.MinStage, stats.MaxStage)
	s.Stages[stat] = next
	return next - old
}

// MoveSlot is a learned move with its remaining-use counter.
type MoveSlot struct {
	MoveID uint `json:"move_id"`
	PP     int  `json:"pp"`
	MaxPP  int  `json:"max_pp"`
}

// Spend consumes one use. Returns false when no uses remain; PP never goes
// negative.
func (m *MoveSlot) Spend() bool {
	if m.PP <= 0 {
		return false
	}
	m.PP--
	return true
}

// MoveSet holds up to four learned moves.
type MoveSet struct {
	Slots []MoveSlot `json:"slots"`
}

// Slot returns the indexed move slot, or nil when out of range.
func (m *MoveSet) Slot(i int) *MoveSlot {
	if i < 0 || i >= len(m.Slots) {
		return nil
	}
	return &m.Slots[i]
}

// StatusCondition is the single active non-volatile condition. Counter
// carries the remaining sleep turns where applicable.
type StatusCondition struct {
	Kind    StatusKind `json:"kind"`
	Counter int        `json:"counter"`
}
