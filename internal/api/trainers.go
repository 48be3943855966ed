package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MrKumaPants/PokeNET-sub005/internal/constants"
	"github.com/MrKumaPants/PokeNET-sub005/internal/logging"
	"github.com/MrKumaPants/PokeNET-sub005/internal/service"
)

// Health reports process liveness for container probes.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyStatus: "ok"})
}

// GetTrainer returns one trainer's lifetime battle record.
func (h *BattleHandler) GetTrainer(c *gin.Context) {
	name := c.Param("trainerName")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	p, err := h.svc.Trainer(name)
	if err != nil {
		if errors.Is(err, service.ErrTrainerNotFound) {
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrTrainerNotFound})
			return
		}
		logging.Error("failed to load trainer", err, logging.Fields{"trainer": name})
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	c.JSON(http.StatusOK, p)
}
