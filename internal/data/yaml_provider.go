package data

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"
	"gopkg.in/yaml.v3"

	"github.com/MrKumaPants/PokeNET-sub005/internal/game"
	"github.com/MrKumaPants/PokeNET-sub005/internal/typechart"
)

// moveEntry is the YAML shape of a move record.
type moveEntry struct {
	ID       uint   `yaml:"id"`
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`
	Category string `yaml:"category"`
	Power    int    `yaml:"power"`
	Accuracy int    `yaml:"accuracy"`
	Priority int    `yaml:"priority"`
	MaxPP    int    `yaml:"max_pp"`
	Effect   struct {
		Ailment       string `yaml:"ailment"`
		AilmentChance int    `yaml:"ailment_chance"`
		FlinchChance  int    `yaml:"flinch_chance"`
		StageChanges  []struct {
			Stat   string `yaml:"stat"`
			Delta  int    `yaml:"delta"`
			Target string `yaml:"target"`
		} `yaml:"stage_changes"`
	} `yaml:"effect"`
}

type movesFile struct {
	Moves []moveEntry `yaml:"moves"`
}

// speciesEntry is the YAML shape of a per-species file.
type speciesEntry struct {
	ID    uint           `yaml:"id"`
	Name  string         `yaml:"name"`
	Types []string       `yaml:"types"`
	Base  game.BaseStats `yaml:"base_stats"`
}

// YAMLProvider serves records from a data directory:
//
//	<dir>/moves.yaml          all move records, loaded eagerly
//	<dir>/species/<id>.yaml   one species per file, loaded lazily
//	<dir>/typechart.yaml      optional matchup overrides
//
// Species files are faulted in on first use; concurrent battles requesting
// the same species share one disk read via singleflight.
type YAMLProvider struct {
	dir   string
	moves map[uint]game.Move

	mu      sync.RWMutex
	species map[uint]game.Species
	sf      singleflight.Group
}

func NewYAMLProvider(dir string) (*YAMLProvider, error) {
	b, err := os.ReadFile(filepath.Join(dir, "moves.yaml"))
	if err != nil {
		return nil, fmt.Errorf("failed to read moves file: %w", err)
	}
	var mf movesFile
	if err := yaml.Unmarshal(b, &mf); err != nil {
		return nil, fmt.Errorf("failed to parse moves file: %w", err)
	}
	if len(mf.Moves) == 0 {
		return nil, fmt.Errorf("moves file in %s has no entries", dir)
	}
	moves := make(map[uint]game.Move, len(mf.Moves))
	for _, e := range mf.Moves {
		m, err := e.toMove()
		if err != nil {
			return nil, fmt.Errorf("move %q: %w", e.Name, err)
		}
		if _, dup := moves[m.ID]; dup {
			return nil, fmt.Errorf("duplicate move id %d", m.ID)
		}
		moves[m.ID] = m
	}
	return &YAMLProvider{
		dir:     dir,
		moves:   moves,
		species: make(map[uint]game.Species, 64),
	}, nil
}

func (p *YAMLProvider) Move(id uint) (game.Move, error) {
	m, ok := p.moves[id]
	if !ok {
		return game.Move{}, fmt.Errorf("move %d: %w", id, ErrNotFound)
	}
	return m, nil
}

func (p *YAMLProvider) Species(id uint) (game.Species, error) {
	p.mu.RLock()
	s, ok := p.species[id]
	p.mu.RUnlock()
	if ok {
		return s, nil
	}

	v, err, _ := p.sf.Do(strconv.FormatUint(uint64(id), 10), func() (interface{}, error) {
		loaded, err := p.loadSpecies(id)
		if err != nil {
			return nil, err
		}
		p.mu.Lock()
		p.species[id] = loaded
		p.mu.Unlock()
		return loaded, nil
	})
	if err != nil {
		return game.Species{}, err
	}
	return v.(game.Species), nil
}

func (p *YAMLProvider) loadSpecies(id uint) (game.Species, error) {
	path := filepath.Join(p.dir, "species", fmt.Sprintf("%d.yaml", id))
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return game.Species{}, fmt.Errorf("species %d: %w", id, ErrNotFound)
		}
		return game.Species{}, fmt.Errorf("failed to read species file %s: %w", path, err)
	}
	var e speciesEntry
	if err := yaml.Unmarshal(b, &e); err != nil {
		return game.Species{}, fmt.Errorf("failed to parse species file %s: %w", path, err)
	}
	if e.Name == "" {
		return game.Species{}, fmt.Errorf("species file %s: missing 'name'", path)
	}
	if len(e.Types) == 0 || len(e.Types) > 2 {
		return game.Species{}, fmt.Errorf("species file %s: expected one or two types", path)
	}
	types := make([]game.Type, 0, len(e.Types))
	for _, ts := range e.Types {
		t, ok := game.ParseType(ts)
		if !ok {
			return game.Species{}, fmt.Errorf("species file %s: unknown type %q", path, ts)
		}
		types = append(types, t)
	}
	return game.Species{ID: e.ID, Name: e.Name, Types: types, Base: e.Base}, nil
}

func (e moveEntry) toMove() (game.Move, error) {
	t, ok := game.ParseType(e.Type)
	if !ok {
		return game.Move{}, fmt.Errorf("unknown type %q", e.Type)
	}
	var cat game.MoveCategory
	switch e.Category {
	case "physical":
		cat = game.CategoryPhysical
	case "special":
		cat = game.CategorySpecial
	case "status":
		cat = game.CategoryStatus
	default:
		return game.Move{}, fmt.Errorf("unknown category %q", e.Category)
	}
	eff := game.MoveEffect{
		AilmentChance: e.Effect.AilmentChance,
		FlinchChance:  e.Effect.FlinchChance,
	}
	switch e.Effect.Ailment {
	case "", "none":
		eff.Ailment = game.StatusNone
	case "poison":
		eff.Ailment = game.StatusPoison
	case "burn":
		eff.Ailment = game.StatusBurn
	case "paralysis":
		eff.Ailment = game.StatusParalysis
	case "sleep":
		eff.Ailment = game.StatusSleep
	case "freeze":
		eff.Ailment = game.StatusFreeze
	default:
		return game.Move{}, fmt.Errorf("unknown ailment %q", e.Effect.Ailment)
	}
	for _, sc := range e.Effect.StageChanges {
		var stat game.StatKind
		switch sc.Stat {
		case "attack":
			stat = game.StatAttack
		case "defense":
			stat = game.StatDefense
		case "special_attack":
			stat = game.StatSpAttack
		case "special_defense":
			stat = game.StatSpDefense
		case "speed":
			stat = game.StatSpeed
		default:
			return game.Move{}, fmt.Errorf("unknown stat %q", sc.Stat)
		}
		target := game.TargetOpponent
		if sc.Target == "self" {
			target = game.TargetSelf
		}
		eff.StageChanges = append(eff.StageChanges, game.StageChange{Stat: stat, Delta: sc.Delta, Target: target})
	}
	return game.Move{
		ID:       e.ID,
		Name:     e.Name,
		Type:     t,
		Category: cat,
		Power:    e.Power,
		Accuracy: e.Accuracy,
		Priority: e.Priority,
		MaxPP:    e.MaxPP,
		Effect:   eff,
	}, nil
}

// overridesFile is the YAML shape of optional type-chart customization.
type overridesFile struct {
	Overrides []struct {
		Attacking  string   `yaml:"attacking"`
		Defending  []string `yaml:"defending"`
		Multiplier float64  `yaml:"multiplier"`
	} `yaml:"overrides"`
}

// LoadTypeChartOverrides reads <dir>/typechart.yaml if present. A missing
// file simply means no overrides.
func LoadTypeChartOverrides(dir string) ([]typechart.Override, error) {
	path := filepath.Join(dir, "typechart.yaml")
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read typechart overrides %s: %w", path, err)
	}
	var of overridesFile
	if err := yaml.Unmarshal(b, &of); err != nil {
		return nil, fmt.Errorf("failed to parse typechart overrides %s: %w", path, err)
	}
	out := make([]typechart.Override, 0, len(of.Overrides))
	for _, o := range of.Overrides {
		atk, ok := game.ParseType(o.Attacking)
		if !ok {
			return nil, fmt.Errorf("typechart overrides: unknown type %q", o.Attacking)
		}
		def := make([]game.Type, 0, len(o.Defending))
		for _, ds := range o.Defending {
			d, ok := game.ParseType(ds)
			if !ok {
				return nil, fmt.Errorf("typechart overrides: unknown type %q", ds)
			}
			def = append(def, d)
		}
		out = append(out, typechart.Override{Attacking: atk, Defending: def, Multiplier: o.Multiplier})
	}
	return out, nil
}
