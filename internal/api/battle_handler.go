package api

import (
	"github.com/MrKumaPants/PokeNET-sub005/internal/service"
)

// BattleHandler groups all battle-related HTTP handlers.
type BattleHandler struct {
	svc *service.Service
}

func NewBattleHandler(svc *service.Service) *BattleHandler {
	return &BattleHandler{svc: svc}
}
