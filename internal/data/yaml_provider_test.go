package data

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/MrKumaPants/PokeNET-sub005/internal/game"
	"github.com/MrKumaPants/PokeNET-sub005/internal/typechart"
)

const movesYAML = `moves:
  - id: 1
    name: tackle
    type: normal
    category: physical
    power: 40
    accuracy: 100
    max_pp: 35
  - id: 2
    name: growl
    type: normal
    category: status
    accuracy: 100
    max_pp: 40
    effect:
      stage_changes:
        - stat: attack
          delta: -1
          target: opponent
  - id: 3
    name: ember
    type: fire
    category: special
    power: 40
    accuracy: 100
    max_pp: 25
    effect:
      ailment: burn
      ailment_chance: 10
`

const speciesYAML = `id: 4
name: flaredrake
types: [fire, flying]
base_stats:
  hp: 78
  attack: 84
  defense: 78
  special_attack: 109
  special_defense: 85
  speed: 100
`

func writeTestData(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "moves.yaml"), []byte(movesYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(dir, "species"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "species", "4.yaml"), []byte(speciesYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestYAMLProvider_Moves(t *testing.T) {
	p, err := NewYAMLProvider(writeTestData(t))
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}

	m, err := p.Move(1)
	if err != nil {
		t.Fatalf("move 1: %v", err)
	}
	if m.Name != "tackle" || m.Type != game.TypeNormal || m.Category != game.CategoryPhysical || m.Power != 40 {
		t.Fatalf("tackle parsed wrong: %+v", m)
	}

	growl, err := p.Move(2)
	if err != nil {
		t.Fatalf("move 2: %v", err)
	}
	if growl.Power != 0 || growl.Category != game.CategoryStatus {
		t.Fatalf("growl should be a non-damaging status move: %+v", growl)
	}
	if len(growl.Effect.StageChanges) != 1 || growl.Effect.StageChanges[0].Delta != -1 ||
		growl.Effect.StageChanges[0].Stat != game.StatAttack ||
		growl.Effect.StageChanges[0].Target != game.TargetOpponent {
		t.Fatalf("growl effect parsed wrong: %+v", growl.Effect)
	}

	ember, err := p.Move(3)
	if err != nil {
		t.Fatalf("move 3: %v", err)
	}
	if ember.Effect.Ailment != game.StatusBurn || ember.Effect.AilmentChance != 10 {
		t.Fatalf("ember ailment parsed wrong: %+v", ember.Effect)
	}

	if _, err := p.Move(99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown move: %v", err)
	}
}

func TestYAMLProvider_SpeciesLazyLoad(t *testing.T) {
	p, err := NewYAMLProvider(writeTestData(t))
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}

	s, err := p.Species(4)
	if err != nil {
		t.Fatalf("species 4: %v", err)
	}
	if s.Name != "flaredrake" {
		t.Fatalf("name = %q", s.Name)
	}
	if len(s.Types) != 2 || s.Types[0] != game.TypeFire || s.Types[1] != game.TypeFlying {
		t.Fatalf("types = %v", s.Types)
	}
	if s.Base.SpAttack != 109 || s.Base.Speed != 100 {
		t.Fatalf("base stats = %+v", s.Base)
	}

	if _, err := p.Species(99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown species: %v", err)
	}
}

func TestYAMLProvider_ConcurrentSpeciesReads(t *testing.T) {
	p, err := NewYAMLProvider(writeTestData(t))
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := p.Species(4); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("concurrent species read: %v", err)
	}
}

func TestNewYAMLProvider_Validation(t *testing.T) {
	if _, err := NewYAMLProvider(t.TempDir()); err == nil {
		t.Fatalf("missing moves file must fail")
	}

	dir := t.TempDir()
	bad := "moves:\n  - id: 1\n    name: x\n    type: nope\n    category: physical\n"
	if err := os.WriteFile(filepath.Join(dir, "moves.yaml"), []byte(bad), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewYAMLProvider(dir); err == nil {
		t.Fatalf("unknown move type must fail")
	}
}

func TestLoadTypeChartOverrides(t *testing.T) {
	dir := t.TempDir()
	// Missing file means no overrides, not an error.
	ovs, err := LoadTypeChartOverrides(dir)
	if err != nil || ovs != nil {
		t.Fatalf("missing file: ovs=%v err=%v", ovs, err)
	}

	content := "overrides:\n  - attacking: normal\n    defending: [ghost]\n    multiplier: 0.5\n"
	if err := os.WriteFile(filepath.Join(dir, "typechart.yaml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	ovs, err = LoadTypeChartOverrides(dir)
	if err != nil {
		t.Fatalf("load overrides: %v", err)
	}
	if len(ovs) != 1 || ovs[0].Attacking != game.TypeNormal || ovs[0].Multiplier != 0.5 {
		t.Fatalf("overrides = %+v", ovs)
	}
	tbl := typechart.New(ovs...)
	if got := tbl.Effectiveness(game.TypeNormal, game.TypeGhost); got != 0.5 {
		t.Fatalf("override not effective in table: %v", got)
	}
}
