package service

import (
	"github.com/MrKumaPants/PokeNET-sub005/internal/battle"
	"github.com/MrKumaPants/PokeNET-sub005/internal/constants"
	"github.com/MrKumaPants/PokeNET-sub005/internal/ecs"
	"github.com/MrKumaPants/PokeNET-sub005/internal/logging"
	"github.com/MrKumaPants/PokeNET-sub005/internal/storage"
)

// SubmitAction stores one combatant's action and resolves the turn once
// every able combatant has submitted. Returns whether the turn resolved.
func (s *Service) SubmitAction(code string, action battle.Action) (bool, error) {
	lb, err := s.Get(code)
	if err != nil {
		return false, err
	}

	lb.mu.Lock()
	defer lb.mu.Unlock()
	if lb.bt == nil {
		return false, ErrBattleNotStarted
	}
	if err := lb.bt.SubmitAction(action); err != nil {
		return false, err
	}
	if !lb.bt.AllSubmitted() {
		return false, nil
	}

	// Playback failures are telemetry, not submission failures: by then
	// the turn has resolved.
	if err := lb.bt.ResolveTurn(); err != nil {
		logging.Error("turn resolved with playback failures", err, logging.Fields{
			constants.LogFieldBattleCode: code,
			constants.LogFieldTurn:       lb.bt.Turn(),
		})
	}
	s.persistProgress(lb)
	return true, nil
}

// Flee concludes the battle in the opposing side's favor. Fleeing is a
// terminal transition triggered from outside resolution, not derived from
// hit points.
func (s *Service) Flee(code string, combatant ecs.EntityID) error {
	lb, err := s.Get(code)
	if err != nil {
		return err
	}

	lb.mu.Lock()
	defer lb.mu.Unlock()
	if lb.bt == nil {
		return ErrBattleNotStarted
	}
	side := -1
	for i := range lb.sides {
		for _, id := range lb.sides[i] {
			if id == combatant {
				side = i
			}
		}
	}
	if side < 0 {
		return battle.ErrNotAParticipant
	}
	if lb.bt.State() != battle.TurnInProgress {
		return battle.ErrNotInProgress
	}
	lb.bt.Conclude((side+1)%battle.SideCount, "opponent fled")
	logging.Info("combatant fled", logging.Fields{
		constants.LogFieldBattleCode: code,
		constants.LogFieldEntityID:   uint64(combatant),
		constants.LogFieldSide:       side,
	})
	s.persistProgress(lb)
	return nil
}

// persistProgress syncs the battle record with the live state. Callers hold
// lb.mu.
func (s *Service) persistProgress(lb *LiveBattle) {
	lb.record.TurnCount = lb.bt.Turn()
	if lb.bt.State() == battle.Concluded {
		out := lb.bt.Outcome()
		lb.record.Status = storage.StatusConcluded
		lb.record.Reason = out.Reason
		switch out.Winner {
		case 0:
			lb.record.Winner = "side_a"
		case 1:
			lb.record.Winner = "side_b"
		default:
			lb.record.Winner = "draw"
		}
	}
	if err := s.repo.UpdateBattle(lb.record); err != nil {
		logging.Error("failed to persist battle progress", err, logging.Fields{constants.LogFieldBattleCode: lb.Code})
		return
	}
	if lb.record.Status == storage.StatusConcluded {
		if err := s.repo.UpdateStatsOnConclusion(lb.record); err != nil {
			logging.Error("failed to update trainer stats", err, logging.Fields{constants.LogFieldBattleCode: lb.Code})
		}
	}
}
