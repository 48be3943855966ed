package service

import (
	"github.com/MrKumaPants/PokeNET-sub005/internal/battle"
	"github.com/MrKumaPants/PokeNET-sub005/internal/ecs"
	"github.com/MrKumaPants/PokeNET-sub005/internal/game"
)

// MoveView is one move slot in an API response.
type MoveView struct {
	MoveID uint   `json:"move_id"`
	Name   string `json:"name"`
	PP     int    `json:"pp"`
	MaxPP  int    `json:"max_pp"`
}

// CombatantView is one combatant's public state.
type CombatantView struct {
	EntityID      ecs.EntityID `json:"entity_id"`
	SpeciesID     uint         `json:"species_id"`
	SpeciesName   string       `json:"species_name"`
	Nickname      string       `json:"nickname"`
	Level         int          `json:"level"`
	HP            int          `json:"hp"`
	MaxHP         int          `json:"max_hp"`
	Status        string       `json:"status"`
	Participation string       `json:"participation"`
	Moves         []MoveView   `json:"moves"`
}

// SideView is one side of a battle.
type SideView struct {
	Trainer    string          `json:"trainer"`
	Combatants []CombatantView `json:"combatants"`
}

// BattleView is the full read model served by the API.
type BattleView struct {
	Code   string     `json:"code"`
	Status string     `json:"status"`
	Turn   int        `json:"turn"`
	Sides  []SideView `json:"sides"`
	Winner string     `json:"winner,omitempty"`
	Reason string     `json:"reason,omitempty"`
}

func participationLabel(p game.Participation) string {
	switch p {
	case game.Active:
		return "active"
	case game.Fainted:
		return "fainted"
	}
	return "not_in_battle"
}

// View builds the read model for a battle.
func (s *Service) View(code string) (*BattleView, error) {
	lb, err := s.Get(code)
	if err != nil {
		return nil, err
	}

	lb.mu.Lock()
	defer lb.mu.Unlock()

	v := &BattleView{Code: lb.Code, Status: "waiting"}
	if lb.bt != nil {
		v.Turn = lb.bt.Turn()
		switch lb.bt.State() {
		case battle.TurnInProgress:
			v.Status = "in_progress"
		case battle.Concluded:
			v.Status = "concluded"
			if out := lb.bt.Outcome(); out != nil {
				v.Reason = out.Reason
				switch out.Winner {
				case 0:
					v.Winner = "side_a"
				case 1:
					v.Winner = "side_b"
				default:
					v.Winner = "draw"
				}
			}
		}
	}

	nicknames := make(map[ecs.EntityID]string)
	if lb.record != nil {
		// Records list side A's combatants first, then side B's, in
		// creation order, which matches the handle slices.
		idx := [battle.SideCount]int{}
		for _, cr := range lb.record.Combatants {
			if cr.Side < 0 || cr.Side >= battle.SideCount {
				continue
			}
			if idx[cr.Side] < len(lb.sides[cr.Side]) {
				nicknames[lb.sides[cr.Side][idx[cr.Side]]] = cr.Nickname
				idx[cr.Side]++
			}
		}
	}

	for side := 0; side < battle.SideCount; side++ {
		sv := SideView{Trainer: lb.trainers[side]}
		for _, id := range lb.sides[side] {
			sv.Combatants = append(sv.Combatants, s.combatantView(lb, id, nicknames[id]))
		}
		v.Sides = append(v.Sides, sv)
	}
	return v, nil
}

func (s *Service) combatantView(lb *LiveBattle, id ecs.EntityID, nickname string) CombatantView {
	cv := CombatantView{EntityID: id, Nickname: nickname}
	if ident, ok := lb.stores.Identity.Get(id); ok {
		cv.SpeciesID = ident.SpeciesID
		cv.Level = ident.Level
		if sp, err := s.provider.Species(ident.SpeciesID); err == nil {
			cv.SpeciesName = sp.Name
		}
	}
	if st, ok := lb.stores.Stats.Get(id); ok {
		cv.HP = st.HP
		cv.MaxHP = st.MaxHP
	}
	if bs, ok := lb.stores.State.Get(id); ok {
		cv.Participation = participationLabel(bs.Participation)
	}
	if sc, ok := lb.stores.Status.Get(id); ok {
		cv.Status = sc.Kind.String()
	}
	if ms, ok := lb.stores.Moves.Get(id); ok {
		for _, slot := range ms.Slots {
			mv := MoveView{MoveID: slot.MoveID, PP: slot.PP, MaxPP: slot.MaxPP}
			if m, err := s.provider.Move(slot.MoveID); err == nil {
				mv.Name = m.Name
			}
			cv.Moves = append(cv.Moves, mv)
		}
	}
	return cv
}
