package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/MrKumaPants/PokeNET-sub005/internal/constants"
	"github.com/MrKumaPants/PokeNET-sub005/internal/logging"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The event stream is read-only and carries no credentials; any origin
	// may subscribe.
	CheckOrigin: func(*http.Request) bool { return true },
}

// Events upgrades the connection and streams the battle's events as JSON
// frames until the client disconnects.
func (h *BattleHandler) Events(c *gin.Context) {
	code := normalizeJoinCode(c.Param("battleCode"))
	if !joinCodeRegex.MatchString(code) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidBattleCode})
		return
	}
	lb, err := h.svc.Get(code)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logging.Error(constants.ErrFailedUpgrade, err, logging.Fields{constants.LogFieldBattleCode: code})
		return
	}
	lb.Hub.ServeConn(conn)
}
