package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/MrKumaPants/PokeNET-sub005/internal/constants"
	"github.com/MrKumaPants/PokeNET-sub005/internal/logging"
)

// Leaderboard lists the top trainers by wins.
func (h *BattleHandler) Leaderboard(c *gin.Context) {
	limit := 10
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	top, err := h.svc.Leaderboard(limit)
	if err != nil {
		logging.Error("failed to load leaderboard", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	c.JSON(http.StatusOK, top)
}
