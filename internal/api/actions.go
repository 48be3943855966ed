package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MrKumaPants/PokeNET-sub005/internal/battle"
	"github.com/MrKumaPants/PokeNET-sub005/internal/constants"
	"github.com/MrKumaPants/PokeNET-sub005/internal/ecs"
	"github.com/MrKumaPants/PokeNET-sub005/internal/logging"
	"github.com/MrKumaPants/PokeNET-sub005/internal/service"
)

// ActionRequest is one combatant's move selection for the current turn.
type ActionRequest struct {
	Combatant ecs.EntityID `json:"combatant"`
	MoveIndex int          `json:"move_index"`
	// Target is optional; omitted means the first able opponent.
	Target ecs.EntityID `json:"target"`
}

// FleeRequest concludes the battle in the opponent's favor.
type FleeRequest struct {
	Combatant ecs.EntityID `json:"combatant"`
}

// SubmitAction stores a combatant's action; the turn resolves once every
// able combatant has submitted.
func (h *BattleHandler) SubmitAction(c *gin.Context) {
	code := normalizeJoinCode(c.Param("battleCode"))
	if !joinCodeRegex.MatchString(code) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidBattleCode})
		return
	}
	var req ActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	resolved, err := h.svc.SubmitAction(code, battle.Action{
		Combatant: req.Combatant,
		MoveIndex: req.MoveIndex,
		Target:    req.Target,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBattleNotFound):
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
		case errors.Is(err, service.ErrBattleNotStarted), errors.Is(err, battle.ErrNotInProgress):
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrBattleConcluded})
		case errors.Is(err, battle.ErrAlreadySubmitted):
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: err.Error()})
		case errors.Is(err, battle.ErrNotAParticipant):
			c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrCombatantNotInBattle})
		case errors.Is(err, battle.ErrInvalidMoveSelection):
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidMoveSelection})
		default:
			logging.Error("failed to submit action", err, logging.Fields{constants.LogFieldBattleCode: code})
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedStoreAction})
		}
		return
	}

	view, err := h.svc.View(code)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedStoreAction})
		return
	}
	c.JSON(http.StatusOK, gin.H{"resolved": resolved, "battle": view})
}

// Flee ends the battle; the fleeing combatant's opponents win.
func (h *BattleHandler) Flee(c *gin.Context) {
	code := normalizeJoinCode(c.Param("battleCode"))
	if !joinCodeRegex.MatchString(code) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidBattleCode})
		return
	}
	var req FleeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	if err := h.svc.Flee(code, req.Combatant); err != nil {
		switch {
		case errors.Is(err, service.ErrBattleNotFound):
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
		case errors.Is(err, service.ErrBattleNotStarted), errors.Is(err, battle.ErrNotInProgress):
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrBattleConcluded})
		case errors.Is(err, battle.ErrNotAParticipant):
			c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrCombatantNotInBattle})
		default:
			logging.Error("failed to flee battle", err, logging.Fields{constants.LogFieldBattleCode: code})
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedStoreAction})
		}
		return
	}

	view, err := h.svc.View(code)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedStoreAction})
		return
	}
	c.JSON(http.StatusOK, view)
}
