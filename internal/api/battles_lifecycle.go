package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MrKumaPants/PokeNET-sub005/internal/constants"
	"github.com/MrKumaPants/PokeNET-sub005/internal/data"
	"github.com/MrKumaPants/PokeNET-sub005/internal/logging"
	"github.com/MrKumaPants/PokeNET-sub005/internal/service"
)

// CreateBattleRequest opens a battle with the caller's party as side A.
type CreateBattleRequest struct {
	Trainer string                  `json:"trainer"`
	Party   []service.CombatantSpec `json:"party"`
}

// JoinBattleRequest joins a waiting battle as side B.
type JoinBattleRequest struct {
	Code    string                  `json:"code"`
	Trainer string                  `json:"trainer"`
	Party   []service.CombatantSpec `json:"party"`
}

// CreateBattle opens a new battle waiting for an opponent.
func (h *BattleHandler) CreateBattle(c *gin.Context) {
	var req CreateBattleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	lb, err := h.svc.CreateBattle(req.Trainer, req.Party)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTrainerNameRequired),
			errors.Is(err, service.ErrEmptyParty),
			errors.Is(err, service.ErrPartyTooLarge),
			errors.Is(err, data.ErrNotFound):
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: err.Error()})
		default:
			logging.Error("failed to create battle", err, nil)
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedCreateBattle})
		}
		return
	}
	view, err := h.svc.View(lb.Code)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedCreateBattle})
		return
	}
	c.JSON(http.StatusCreated, view)
}

// JoinBattle attaches the caller's party to a waiting battle and starts it.
func (h *BattleHandler) JoinBattle(c *gin.Context) {
	var req JoinBattleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	code := normalizeJoinCode(req.Code)
	if !joinCodeRegex.MatchString(code) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidBattleCode})
		return
	}
	_, err := h.svc.JoinBattle(code, req.Trainer, req.Party)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBattleNotFound):
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
		case errors.Is(err, service.ErrBattleNotJoinable):
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: err.Error()})
		case errors.Is(err, service.ErrTrainerNameRequired),
			errors.Is(err, service.ErrEmptyParty),
			errors.Is(err, service.ErrPartyTooLarge),
			errors.Is(err, data.ErrNotFound):
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: err.Error()})
		default:
			logging.Error("failed to join battle", err, logging.Fields{constants.LogFieldBattleCode: code})
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedCreateBattle})
		}
		return
	}
	view, err := h.svc.View(code)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
		return
	}
	c.JSON(http.StatusOK, view)
}

// GetBattle returns the public read model for a battle.
func (h *BattleHandler) GetBattle(c *gin.Context) {
	code := normalizeJoinCode(c.Param("battleCode"))
	if !joinCodeRegex.MatchString(code) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidBattleCode})
		return
	}
	view, err := h.svc.View(code)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
		return
	}
	c.JSON(http.StatusOK, view)
}
