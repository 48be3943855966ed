package battle

import (
	"errors"

	"github.com/MrKumaPants/PokeNET-sub005/internal/constants"
	"github.com/MrKumaPants/PokeNET-sub005/internal/data"
	"github.com/MrKumaPants/PokeNET-sub005/internal/ecs"
	"github.com/MrKumaPants/PokeNET-sub005/internal/events"
	"github.com/MrKumaPants/PokeNET-sub005/internal/game"
	"github.com/MrKumaPants/PokeNET-sub005/internal/logging"
	"github.com/MrKumaPants/PokeNET-sub005/internal/typechart"
)

// view snapshots a combatant for numeric resolution. Callers hold b.mu.
func (b *Battle) view(id ecs.EntityID) *combatantView {
	v := &combatantView{}
	if ident, ok := b.stores.Identity.Get(id); ok {
		v.Level = ident.Level
		if sp, err := b.provider.Species(ident.SpeciesID); err == nil {
			v.Types = sp.Types
		}
	}
	if st, ok := b.stores.Stats.Get(id); ok {
		v.Stats = *st
	}
	if bs, ok := b.stores.State.Get(id); ok {
		v.Stages = bs.Stages
		v.AccuracyStage = bs.AccuracyStage
		v.EvasionStage = bs.EvasionStage
	}
	if sc, ok := b.stores.Status.Get(id); ok {
		v.Status = sc.Kind
	}
	return v
}

// firstAbleOpponent picks the default target: the first non-fainted
// combatant on the opposing side, re-read at execution time so a faint
// earlier in the turn redirects targeting.
func (b *Battle) firstAbleOpponent(side int) (ecs.EntityID, bool) {
	opp := (side + 1) % SideCount
	for _, id := range b.sides[opp] {
		if b.eligible(id) {
			return id, true
		}
	}
	return 0, false
}

// ResolveTurn runs one full turn: ordering, per-combatant resolution,
// end-of-turn status ticks, playback and termination check. It returns the
// aggregate playback error, if any, for telemetry; a playback failure never
// aborts the turn.
func (b *Battle) ResolveTurn() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state != TurnInProgress {
		return ErrNotInProgress
	}

	order := b.computeOrder()
	faintedThisTurn := make(map[ecs.EntityID]bool)
	acted := make(map[ecs.EntityID]bool)
	var playbackErr error

	for _, entry := range order {
		faint := b.resolveAction(entry, faintedThisTurn, acted)
		acted[entry.id] = true
		if faint {
			// A faint must be visible before the next combatant's
			// targeting resolves: play back immediately instead of
			// waiting for the turn boundary.
			if err := b.playback(); err != nil {
				playbackErr = err
			}
			if b.sweepFainted(faintedThisTurn) {
				if err := b.playback(); err != nil {
					playbackErr = err
				}
			}
		}
	}

	b.applyEndOfTurn(faintedThisTurn)
	if err := b.playback(); err != nil {
		playbackErr = err
	}
	if b.sweepFainted(faintedThisTurn) {
		if err := b.playback(); err != nil {
			playbackErr = err
		}
	}

	b.checkTermination()
	b.pending = make(map[ecs.EntityID]Action, len(b.pending))
	if b.state == TurnInProgress {
		b.turn++
	}
	return playbackErr
}

// playback drains the buffer into the world. Failures are logged and
// surfaced, not fatal.
func (b *Battle) playback() error {
	executed, err := b.buffer.Playback(b.world)
	if err != nil {
		var pe *ecs.PlaybackError
		if errors.As(err, &pe) {
			logging.Error("buffer playback completed with failures", err, logging.Fields{
				"executed": executed,
				"failed":   pe.Failed,
				"total":    pe.Total,
			})
		}
		return err
	}
	return nil
}

// resolveAction executes one combatant's submitted action. Returns true
// when the action fainted a combatant (which forces an immediate playback).
func (b *Battle) resolveAction(entry turnEntry, faintedThisTurn, acted map[ecs.EntityID]bool) bool {
	actor := entry.id
	if faintedThisTurn[actor] || !b.eligible(actor) {
		return false
	}
	if !b.checkCanAct(actor) {
		return false
	}

	// Spend PP on the attempt, hit or miss.
	ms, ok := b.stores.Moves.Get(actor)
	if !ok {
		return false
	}
	slot := ms.Slot(entry.action.MoveIndex)
	if slot == nil || slot.PP <= 0 {
		return false
	}
	moveID := slot.MoveID
	ecs.MutateComponent(b.buffer, b.stores.Moves, actor, func(m *game.MoveSet) {
		if s := m.Slot(entry.action.MoveIndex); s != nil {
			s.Spend()
		}
	})

	move, err := b.provider.Move(moveID)
	if err != nil {
		// Missing static data forfeits this single action (PP already
		// spent); resolution continues with the next combatant.
		logging.Error("move data not found; action skipped", err, logging.Fields{
			constants.LogFieldMoveID: moveID,
			constants.LogFieldTurn:   b.turn,
		})
		b.sink.Publish(events.Event{Kind: events.KindDataNotFound, Turn: b.turn, Actor: actor, MoveID: moveID})
		return false
	}

	target := entry.action.Target
	if target == 0 || !b.eligible(target) || faintedThisTurn[target] {
		side := b.sideOf(actor)
		t, ok := b.firstAbleOpponent(side)
		if !ok {
			return false
		}
		target = t
	}

	attacker := b.view(actor)
	defender := b.view(target)

	// Accuracy gate: miss ends the step, no damage and no secondary effect.
	threshold := accuracyThreshold(move.Accuracy, attacker, defender)
	if b.rng.Intn(100) >= threshold {
		b.sink.Publish(events.Event{Kind: events.KindMoveMissed, Turn: b.turn, Actor: actor, Target: target, MoveID: move.ID, MoveName: move.Name})
		return false
	}

	fainted := false
	if move.Power > 0 && move.Category != game.CategoryStatus {
		critical := b.rng.Intn(CritDenominator) == 0
		randFactor := 0.85 + b.rng.Float64()*0.15
		res := computeDamage(b.chart, attacker, defender, move, critical, randFactor)
		if res.Effectiveness == typechart.Immune {
			b.sink.Publish(events.Event{Kind: events.KindMoveNoEffect, Turn: b.turn, Actor: actor, Target: target, MoveID: move.ID, MoveName: move.Name})
			return false
		}
		ecs.MutateComponent(b.buffer, b.stores.Stats, target, func(s *game.BattleStats) {
			s.ApplyDamage(res.Damage)
		})
		b.sink.Publish(events.Event{
			Kind:           events.KindDamageDealt,
			Turn:           b.turn,
			Actor:          actor,
			Target:         target,
			MoveID:         move.ID,
			MoveName:       move.Name,
			Damage:         res.Damage,
			Critical:       res.Critical,
			TypeMultiplier: res.Effectiveness,
		})
		if defender.Stats.HP-res.Damage <= 0 {
			b.markFainted(target, faintedThisTurn)
			fainted = true
		}
	}

	if !fainted || hasSelfEffects(move) {
		b.applySecondaryEffects(actor, target, move, faintedThisTurn[target], acted)
	}
	return fainted
}

// checkCanAct runs the pre-action status gate: sleep countdown, freeze thaw
// roll and flinch. Returns false when the action is prevented.
func (b *Battle) checkCanAct(actor ecs.EntityID) bool {
	if bs, ok := b.stores.State.Get(actor); ok && bs.Flinched {
		ecs.MutateComponent(b.buffer, b.stores.State, actor, func(s *game.BattleState) {
			s.Flinched = false
		})
		b.sink.Publish(events.Event{Kind: events.KindFlinched, Turn: b.turn, Actor: actor})
		return false
	}

	sc, ok := b.stores.Status.Get(actor)
	if !ok || sc.Kind == game.StatusNone {
		return true
	}
	switch sc.Kind {
	case game.StatusSleep:
		if sc.Counter > 1 {
			ecs.MutateComponent(b.buffer, b.stores.Status, actor, func(s *game.StatusCondition) {
				s.Counter--
			})
			b.sink.Publish(events.Event{Kind: events.KindActionPrevented, Turn: b.turn, Actor: actor, Status: game.StatusSleep.String()})
			return false
		}
		// Wakes up and acts this turn.
		ecs.SetComponent(b.buffer, b.stores.Status, actor, game.StatusCondition{Kind: game.StatusNone})
		return true
	case game.StatusFreeze:
		if b.rng.Intn(100) < thawChancePercent {
			ecs.SetComponent(b.buffer, b.stores.Status, actor, game.StatusCondition{Kind: game.StatusNone})
			return true
		}
		b.sink.Publish(events.Event{Kind: events.KindActionPrevented, Turn: b.turn, Actor: actor, Status: game.StatusFreeze.String()})
		return false
	}
	return true
}

// hasSelfEffects reports whether a move carries stage changes aimed at the
// user, which still apply when the target faints.
func hasSelfEffects(move game.Move) bool {
	for _, sc := range move.Effect.StageChanges {
		if sc.Target == game.TargetSelf {
			return true
		}
	}
	return false
}

// applySecondaryEffects enqueues a hit move's non-damage consequences:
// ailment, stage changes and flinch.
func (b *Battle) applySecondaryEffects(actor, target ecs.EntityID, move game.Move, targetFainted bool, acted map[ecs.EntityID]bool) {
	eff := move.Effect

	if !targetFainted && eff.Ailment != game.StatusNone && b.rng.Intn(100) < eff.AilmentChance {
		if sc, ok := b.stores.Status.Get(target); !ok || sc.Kind == game.StatusNone {
			cond := game.StatusCondition{Kind: eff.Ailment}
			if eff.Ailment == game.StatusSleep {
				cond.Counter = 1 + b.rng.Intn(3)
			}
			ecs.SetComponent(b.buffer, b.stores.Status, target, cond)
			b.sink.Publish(events.Event{Kind: events.KindStatusApplied, Turn: b.turn, Actor: actor, Target: target, Status: eff.Ailment.String()})
		}
	}

	for _, sc := range eff.StageChanges {
		recipient := target
		if sc.Target == game.TargetSelf {
			recipient = actor
		} else if targetFainted {
			continue
		}
		stat, delta := sc.Stat, sc.Delta
		ecs.MutateComponent(b.buffer, b.stores.State, recipient, func(s *game.BattleState) {
			s.ApplyStageChange(stat, delta)
		})
		b.sink.Publish(events.Event{Kind: events.KindStageChanged, Turn: b.turn, Actor: actor, Target: recipient, Stat: stat.String(), Delta: delta})
	}

	// Flinch only matters for a target that has not acted yet this turn.
	if !targetFainted && eff.FlinchChance > 0 && !acted[target] && b.rng.Intn(100) < eff.FlinchChance {
		ecs.MutateComponent(b.buffer, b.stores.State, target, func(s *game.BattleState) {
			s.Flinched = true
		})
	}
}

// markFainted enqueues the fainted mark. Fainting is a state, not entity
// destruction: the combatant stays queryable for post-battle effects, and
// the iteration set is never mutated directly. Later actors in this turn
// are skipped via the fainted map.
func (b *Battle) markFainted(id ecs.EntityID, faintedThisTurn map[ecs.EntityID]bool) {
	ecs.MutateComponent(b.buffer, b.stores.State, id, func(s *game.BattleState) {
		s.Participation = game.Fainted
	})
	faintedThisTurn[id] = true
	b.sink.Publish(events.Event{Kind: events.KindFainted, Turn: b.turn, Target: id})
}

// sweepFainted marks any still-active combatant whose applied hit points
// reached zero. Damage buffered by separate steps only sums at playback, so
// the per-step knockout checks alone can miss a combined-lethal total.
// Reports whether any mark was enqueued.
func (b *Battle) sweepFainted(faintedThisTurn map[ecs.EntityID]bool) bool {
	marked := false
	for s := range b.sides {
		for _, id := range b.sides[s] {
			if faintedThisTurn[id] || !b.eligible(id) {
				continue
			}
			if st, ok := b.stores.Stats.Get(id); ok && st.HP <= 0 {
				b.markFainted(id, faintedThisTurn)
				marked = true
			}
		}
	}
	return marked
}

// applyEndOfTurn enqueues the turn-boundary work: poison/burn chip damage,
// flinch expiry and the per-combatant turn counter.
func (b *Battle) applyEndOfTurn(faintedThisTurn map[ecs.EntityID]bool) {
	for s := range b.sides {
		for _, id := range b.sides[s] {
			if faintedThisTurn[id] || !b.eligible(id) {
				continue
			}
			ecs.MutateComponent(b.buffer, b.stores.State, id, func(st *game.BattleState) {
				st.Flinched = false
				st.TurnsInBattle++
			})
			sc, ok := b.stores.Status.Get(id)
			if !ok || (sc.Kind != game.StatusPoison && sc.Kind != game.StatusBurn) {
				continue
			}
			st, ok := b.stores.Stats.Get(id)
			if !ok {
				continue
			}
			tick := st.MaxHP / statusTickDivisor
			if tick < 1 {
				tick = 1
			}
			ecs.MutateComponent(b.buffer, b.stores.Stats, id, func(bs *game.BattleStats) {
				bs.ApplyDamage(tick)
			})
			b.sink.Publish(events.Event{Kind: events.KindStatusDamage, Turn: b.turn, Target: id, Damage: tick, Status: sc.Kind.String()})
			if st.HP-tick <= 0 {
				b.markFainted(id, faintedThisTurn)
			}
		}
	}
}

// checkTermination concludes the battle when a side has no able combatants
// left. Both sides exhausted at once is a draw. Runs after playback so it
// sees applied state.
func (b *Battle) checkTermination() {
	exhausted := [SideCount]bool{}
	for s := range b.sides {
		exhausted[s] = true
		for _, id := range b.sides[s] {
			if b.eligible(id) {
				exhausted[s] = false
				break
			}
		}
	}
	switch {
	case exhausted[0] && exhausted[1]:
		b.concludeLocked(DrawSide, "both sides exhausted")
	case exhausted[0]:
		b.concludeLocked(1, "side exhausted")
	case exhausted[1]:
		b.concludeLocked(0, "side exhausted")
	}
}

// DataNotFound reports whether an error from resolution stems from missing
// static data.
func DataNotFound(err error) bool {
	return errors.Is(err, data.ErrNotFound)
}
