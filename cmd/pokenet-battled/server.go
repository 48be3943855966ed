package main

import (
	"github.com/gin-gonic/gin"

	"github.com/MrKumaPants/PokeNET-sub005/internal/constants"
	"github.com/MrKumaPants/PokeNET-sub005/internal/logging"
)

func runServer(router *gin.Engine, addr, ver string) {
	logging.Info("Server started", logging.Fields{constants.LogFieldAddr: addr, "version": ver})
	if err := router.Run(addr); err != nil {
		logging.Fatal("Failed to start server", err, nil)
	}
}
