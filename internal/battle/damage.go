package battle

import (
	"math"

	"github.com/MrKumaPants/PokeNET-sub005/internal/game"
	"github.com/MrKumaPants/PokeNET-sub005/internal/stats"
	"github.com/MrKumaPants/PokeNET-sub005/internal/typechart"
)

// combatantView is a read-only snapshot of everything the numeric
// resolution needs. Separating the snapshot from mutation emission keeps
// the damage formula pure and unit-testable without an entity store.
type combatantView struct {
	Level         int
	Types         []game.Type
	Stats         game.BattleStats
	Stages        [5]int
	AccuracyStage int
	EvasionStage  int
	Status        game.StatusKind
}

// hasType reports STAB eligibility.
func (v *combatantView) hasType(t game.Type) bool {
	for _, own := range v.Types {
		if own == t {
			return true
		}
	}
	return false
}

// effectiveSpeed applies the speed stage and the paralysis penalty.
func (v *combatantView) effectiveSpeed() int {
	spd := stats.ApplyStage(v.Stats.Speed, v.Stages[game.StatSpeed])
	if v.Status == game.StatusParalysis {
		spd /= 2
	}
	return spd
}

// offensiveStat picks the attacking stat for the move category, with its
// stage applied. A critical hit ignores the attacker's unfavorable
// (negative) stage.
func (v *combatantView) offensiveStat(cat game.MoveCategory, critical bool) int {
	kind := game.StatAttack
	if cat == game.CategorySpecial {
		kind = game.StatSpAttack
	}
	stage := v.Stages[kind]
	if critical && stage < 0 {
		stage = 0
	}
	return stats.ApplyStage(v.Stats.Stat(kind), stage)
}

// defensiveStat picks the defending stat for the move category. A critical
// hit ignores the defender's favorable (positive) stage.
func (v *combatantView) defensiveStat(cat game.MoveCategory, critical bool) int {
	kind := game.StatDefense
	if cat == game.CategorySpecial {
		kind = game.StatSpDefense
	}
	stage := v.Stages[kind]
	if critical && stage > 0 {
		stage = 0
	}
	return stats.ApplyStage(v.Stats.Stat(kind), stage)
}

// damageResult is the breakdown of one damage computation.
type damageResult struct {
	Damage        int
	Effectiveness float64
	STAB          bool
	Critical      bool
}

// computeDamage runs the full damage chain for a hit:
//
//	base = floor((floor((2*level/5 + 2) * power * attack / defense) / 50) + 2)
//
// then, in order: STAB ×1.5, type effectiveness, critical ×1.5, uniform
// random factor in [0.85, 1.0]. The floor lands after the whole
// multiplicative chain; the result clamps to a minimum of 1 unless the
// defender is immune (effectiveness 0, in which case nothing applies).
func computeDamage(chart *typechart.Table, attacker, defender *combatantView, move game.Move, critical bool, randFactor float64) damageResult {
	eff := chart.Against(move.Type, defender.Types)
	res := damageResult{Effectiveness: eff, Critical: critical}
	if eff == typechart.Immune {
		return res
	}

	atk := attacker.offensiveStat(move.Category, critical)
	def := defender.defensiveStat(move.Category, critical)
	if def < 1 {
		def = 1
	}
	levelFactor := 2*attacker.Level/5 + 2
	base := levelFactor*move.Power*atk/def/50 + 2

	dmg := float64(base)
	if attacker.hasType(move.Type) {
		dmg *= 1.5
		res.STAB = true
	}
	dmg *= eff
	if critical {
		dmg *= 1.5
	}
	dmg *= randFactor

	final := int(math.Floor(dmg))
	if final < 1 {
		final = 1
	}
	res.Damage = final
	return res
}

// accuracyThreshold adjusts a move's accuracy by the attacker's accuracy
// stage against the defender's evasion stage. Accuracy 0 marks a move that
// never misses.
func accuracyThreshold(moveAccuracy int, attacker, defender *combatantView) int {
	if moveAccuracy <= 0 {
		return 100
	}
	combined := attacker.AccuracyStage - defender.EvasionStage
	if combined < stats.MinStage {
		combined = stats.MinStage
	}
	if combined > stats.MaxStage {
		combined = stats.MaxStage
	}
	num, den := stats.AccuracyStageMultiplier(combined)
	threshold := moveAccuracy * num / den
	if threshold > 100 {
		threshold = 100
	}
	return threshold
}
