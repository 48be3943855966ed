package service

import (
	"fmt"

	"github.com/MrKumaPants/PokeNET-sub005/internal/battle"
	"github.com/MrKumaPants/PokeNET-sub005/internal/constants"
	"github.com/MrKumaPants/PokeNET-sub005/internal/ecs"
	"github.com/MrKumaPants/PokeNET-sub005/internal/events"
	"github.com/MrKumaPants/PokeNET-sub005/internal/game"
	"github.com/MrKumaPants/PokeNET-sub005/internal/logging"
	"github.com/MrKumaPants/PokeNET-sub005/internal/stats"
	"github.com/MrKumaPants/PokeNET-sub005/internal/storage"
)

// CombatantSpec describes one combatant to build for a side.
type CombatantSpec struct {
	SpeciesID uint                `json:"species_id"`
	Nickname  string              `json:"nickname"`
	Level     int                 `json:"level"`
	Nature    game.Nature         `json:"nature"`
	Training  game.TrainingValues `json:"training"`
	MoveIDs   []uint              `json:"move_ids"`
}

func validateParty(trainer string, party []CombatantSpec) error {
	if trainer == "" {
		return ErrTrainerNameRequired
	}
	if len(party) == 0 {
		return ErrEmptyParty
	}
	if len(party) > MaxPartySize {
		return ErrPartyTooLarge
	}
	return nil
}

// CreateBattle builds side A's entities and registers a battle waiting for
// an opponent.
func (s *Service) CreateBattle(trainer string, party []CombatantSpec) (*LiveBattle, error) {
	if err := validateParty(trainer, party); err != nil {
		return nil, err
	}

	world := ecs.NewWorld()
	stores := battle.NewStores(world)
	buffer := ecs.NewCommandBuffer()

	lb := &LiveBattle{
		Hub:    events.NewHub(),
		world:  world,
		stores: stores,
		buffer: buffer,
	}
	lb.trainers[0] = trainer

	handles, err := s.buildCombatants(lb, party)
	if err != nil {
		return nil, err
	}
	lb.sides[0] = handles

	s.mu.Lock()
	lb.Code = s.newJoinCode()
	s.battles[lb.Code] = lb
	s.mu.Unlock()

	rec := &storage.BattleRecord{
		JoinCode:     lb.Code,
		Status:       storage.StatusWaiting,
		SideATrainer: trainer,
	}
	for i, spec := range party {
		rec.Combatants = append(rec.Combatants, storage.CombatantRecord{
			Side:      0,
			SpeciesID: spec.SpeciesID,
			Nickname:  party[i].Nickname,
			Level:     spec.Level,
		})
	}
	if err := s.repo.CreateBattle(rec); err != nil {
		s.mu.Lock()
		delete(s.battles, lb.Code)
		s.mu.Unlock()
		return nil, fmt.Errorf("failed to persist battle record: %w", err)
	}
	lb.record = rec

	logging.Info("battle created", logging.Fields{constants.LogFieldBattleCode: lb.Code, "trainer": trainer})
	return lb, nil
}

// JoinBattle builds side B in the waiting battle's world and starts the
// first turn.
func (s *Service) JoinBattle(code, trainer string, party []CombatantSpec) (*LiveBattle, error) {
	if err := validateParty(trainer, party); err != nil {
		return nil, err
	}
	lb, err := s.Get(code)
	if err != nil {
		return nil, err
	}

	lb.mu.Lock()
	defer lb.mu.Unlock()
	if lb.bt != nil {
		return nil, ErrBattleNotJoinable
	}

	handles, err := s.buildCombatants(lb, party)
	if err != nil {
		return nil, err
	}
	lb.sides[1] = handles
	lb.trainers[1] = trainer

	lb.bt = battle.New(battle.Config{
		World:    lb.world,
		Stores:   lb.stores,
		Buffer:   lb.buffer,
		Chart:    s.chart,
		Provider: s.provider,
		Sink:     lb.Hub,
		Seed:     s.battleSeed(),
	}, lb.sides[0], lb.sides[1])
	lb.bt.Begin()

	lb.record.Status = storage.StatusInProgress
	lb.record.SideBTrainer = trainer
	for i, spec := range party {
		lb.record.Combatants = append(lb.record.Combatants, storage.CombatantRecord{
			Side:      1,
			SpeciesID: spec.SpeciesID,
			Nickname:  party[i].Nickname,
			Level:     spec.Level,
		})
	}
	if err := s.repo.UpdateBattle(lb.record); err != nil {
		logging.Error("failed to persist battle join", err, logging.Fields{constants.LogFieldBattleCode: code})
	}

	logging.Info("battle started", logging.Fields{constants.LogFieldBattleCode: code, "trainer": trainer})
	return lb, nil
}

// buildCombatants creates a side's entities through the command buffer and
// plays it back, resolving the deferred handles.
func (s *Service) buildCombatants(lb *LiveBattle, party []CombatantSpec) ([]ecs.EntityID, error) {
	deferreds := make([]*ecs.Deferred, 0, len(party))
	for i := range party {
		spec := party[i]
		species, err := s.provider.Species(spec.SpeciesID)
		if err != nil {
			logging.Warn("species lookup failed", logging.Fields{constants.LogFieldSpeciesID: spec.SpeciesID})
			return nil, fmt.Errorf("species %d: %w", spec.SpeciesID, err)
		}
		slots := make([]game.MoveSlot, 0, len(spec.MoveIDs))
		for _, mid := range spec.MoveIDs {
			move, err := s.provider.Move(mid)
			if err != nil {
				return nil, fmt.Errorf("move %d: %w", mid, err)
			}
			slots = append(slots, game.MoveSlot{MoveID: move.ID, PP: move.MaxPP, MaxPP: move.MaxPP})
		}
		if len(slots) == 0 {
			return nil, fmt.Errorf("combatant %q: %w", spec.Nickname, ErrEmptyParty)
		}

		level := spec.Level
		if level < 1 {
			level = 1
		}
		if level > 100 {
			level = 100
		}
		tv := spec.Training
		tv.Normalize()
		derived := deriveStats(species.Base, tv, level, spec.Nature)

		stores := lb.stores
		d := lb.buffer.CreateEntity(func(w *ecs.World, id ecs.EntityID) {
			stores.Identity.Set(id, &game.Identity{SpeciesID: species.ID, Level: level, Nature: spec.Nature})
			stores.Stats.Set(id, &derived)
			stores.Training.Set(id, &tv)
			stores.State.Set(id, &game.BattleState{Participation: game.Active})
			stores.Moves.Set(id, &game.MoveSet{Slots: slots})
			stores.Status.Set(id, &game.StatusCondition{Kind: game.StatusNone})
		})
		deferreds = append(deferreds, d)
	}

	if _, err := lb.buffer.Playback(lb.world); err != nil {
		return nil, fmt.Errorf("failed to materialize combatants: %w", err)
	}
	handles := make([]ecs.EntityID, 0, len(deferreds))
	for _, d := range deferreds {
		id, err := d.Handle()
		if err != nil {
			return nil, err
		}
		handles = append(handles, id)
	}
	return handles, nil
}

// deriveStats computes battle stats from species base stats, normalized
// training values and nature.
func deriveStats(base game.BaseStats, tv game.TrainingValues, level int, nature game.Nature) game.BattleStats {
	hp := stats.HP(base.HP, tv.IVHP, tv.EVHP, level)
	return game.BattleStats{
		HP:        hp,
		MaxHP:     hp,
		Attack:    stats.Stat(base.Attack, tv.IVAttack, tv.EVAttack, level, nature.Multiplier(game.StatAttack)),
		Defense:   stats.Stat(base.Defense, tv.IVDefense, tv.EVDefense, level, nature.Multiplier(game.StatDefense)),
		SpAttack:  stats.Stat(base.SpAttack, tv.IVSpAttack, tv.EVSpAttack, level, nature.Multiplier(game.StatSpAttack)),
		SpDefense: stats.Stat(base.SpDefense, tv.IVSpDefense, tv.EVSpDefense, level, nature.Multiplier(game.StatSpDefense)),
		Speed:     stats.Stat(base.Speed, tv.IVSpeed, tv.EVSpeed, level, nature.Multiplier(game.StatSpeed)),
	}
}
