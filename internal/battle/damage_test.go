package battle

import (
	"testing"

	"github.com/MrKumaPants/PokeNET-sub005/internal/game"
	"github.com/MrKumaPants/PokeNET-sub005/internal/typechart"
)

func TestComputeDamage_FullChain(t *testing.T) {
	chart := typechart.New()
	attacker := &combatantView{
		Level: 5,
		Types: []game.Type{game.TypeFighting},
		Stats: game.BattleStats{Attack: 18},
	}
	defender := &combatantView{
		Types: []game.Type{game.TypeNormal},
		Stats: game.BattleStats{Defense: 20},
	}
	move := game.Move{Type: game.TypeFighting, Category: game.CategoryPhysical, Power: 40}

	// base = (2*5/5+2)*40*18/20/50 + 2 = 4, STAB 6, x2 effectiveness 12.
	res := computeDamage(chart, attacker, defender, move, false, 1.0)
	if res.Damage != 12 {
		t.Fatalf("expected 12 damage, got %d", res.Damage)
	}
	if !res.STAB {
		t.Fatalf("expected STAB to apply")
	}
	if res.Effectiveness != typechart.SuperEffective {
		t.Fatalf("expected 2x effectiveness, got %v", res.Effectiveness)
	}

	// The random factor lands before the final floor: 12 * 0.85 = 10.2 -> 10.
	res = computeDamage(chart, attacker, defender, move, false, 0.85)
	if res.Damage != 10 {
		t.Fatalf("expected 10 damage at low roll, got %d", res.Damage)
	}
}

func TestComputeDamage_ImmuneDealsNothing(t *testing.T) {
	chart := typechart.New()
	attacker := &combatantView{Level: 50, Stats: game.BattleStats{Attack: 100}}
	defender := &combatantView{
		Types: []game.Type{game.TypeGhost},
		Stats: game.BattleStats{Defense: 10},
	}
	move := game.Move{Type: game.TypeNormal, Category: game.CategoryPhysical, Power: 80}

	res := computeDamage(chart, attacker, defender, move, true, 1.0)
	if res.Damage != 0 {
		t.Fatalf("immune target took %d damage", res.Damage)
	}
	if res.Effectiveness != typechart.Immune {
		t.Fatalf("expected 0x effectiveness, got %v", res.Effectiveness)
	}
}

func TestComputeDamage_MinimumOne(t *testing.T) {
	chart := typechart.New()
	attacker := &combatantView{Level: 1, Stats: game.BattleStats{Attack: 1}}
	defender := &combatantView{
		Types: []game.Type{game.TypeRock},
		Stats: game.BattleStats{Defense: 500},
	}
	move := game.Move{Type: game.TypeNormal, Category: game.CategoryPhysical, Power: 1}

	res := computeDamage(chart, attacker, defender, move, false, 0.85)
	if res.Damage != 1 {
		t.Fatalf("non-immune hit must deal at least 1, got %d", res.Damage)
	}
}

func TestComputeDamage_CritIgnoresUnfavorableStages(t *testing.T) {
	chart := typechart.New()
	attacker := &combatantView{
		Level:  50,
		Stats:  game.BattleStats{Attack: 100},
		Stages: [5]int{game.StatAttack: -6},
	}
	defender := &combatantView{
		Types:  []game.Type{game.TypeRock},
		Stats:  game.BattleStats{Defense: 100},
		Stages: [5]int{game.StatDefense: 6},
	}
	move := game.Move{Type: game.TypeWater, Category: game.CategoryPhysical, Power: 80}

	normal := computeDamage(chart, attacker, defender, move, false, 1.0)
	crit := computeDamage(chart, attacker, defender, move, true, 1.0)
	if crit.Damage <= normal.Damage {
		t.Fatalf("crit should bypass -6 attack and +6 defense: crit=%d normal=%d", crit.Damage, normal.Damage)
	}
	if !crit.Critical {
		t.Fatalf("expected result to carry the crit flag")
	}
}

func TestEffectiveSpeed_ParalysisHalves(t *testing.T) {
	v := &combatantView{Stats: game.BattleStats{Speed: 100}}
	if got := v.effectiveSpeed(); got != 100 {
		t.Fatalf("unmodified speed = %d", got)
	}
	v.Status = game.StatusParalysis
	if got := v.effectiveSpeed(); got != 50 {
		t.Fatalf("paralyzed speed = %d, want 50", got)
	}
	v.Stages[game.StatSpeed] = 2
	if got := v.effectiveSpeed(); got != 100 {
		t.Fatalf("staged paralyzed speed = %d, want 100", got)
	}
}

func TestAccuracyThreshold(t *testing.T) {
	cases := []struct {
		name     string
		accuracy int
		accStage int
		evaStage int
		want     int
	}{
		{"flat", 100, 0, 0, 100},
		{"never misses", 0, 0, 0, 100},
		{"max evasion", 100, 0, 6, 33},
		{"max accuracy capped", 100, 6, 0, 100},
		{"boost on low accuracy", 50, 2, 0, 83},
		{"combined clamps", 100, -6, 6, 33},
	}
	for _, tc := range cases {
		attacker := &combatantView{AccuracyStage: tc.accStage}
		defender := &combatantView{EvasionStage: tc.evaStage}
		if got := accuracyThreshold(tc.accuracy, attacker, defender); got != tc.want {
			t.Errorf("%s: threshold = %d, want %d", tc.name, got, tc.want)
		}
	}
}
