package api

import (
	"github.com/gin-gonic/gin"

	"github.com/MrKumaPants/PokeNET-sub005/internal/constants"
)

// NewRouter builds the gin engine with every battle route mounted under the
// API prefix.
func NewRouter(h *BattleHandler) *gin.Engine {
	router := gin.Default()

	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		apiRoutes.GET(constants.RouteHealth, Health)
		apiRoutes.GET(constants.RouteVersion, Version)
		apiRoutes.GET(constants.RouteLeaderboard, h.Leaderboard)
		apiRoutes.GET(constants.RouteTrainer, h.GetTrainer)

		apiRoutes.POST(constants.RouteBattles, h.CreateBattle)
		apiRoutes.POST(constants.RouteBattlesJoin, h.JoinBattle)
		apiRoutes.GET(constants.RouteBattleByID, h.GetBattle)
		apiRoutes.POST(constants.RouteBattleAct, h.SubmitAction)
		apiRoutes.POST(constants.RouteBattleFlee, h.Flee)
		apiRoutes.GET(constants.RouteBattleEvent, h.Events)
	}

	return router
}
