package http

import (
	"net/http"

	"pickup-party/internal/api/ws"
	"pickup-party/internal/room"

	"github.com/gin-gonic/gin"
)

func SetupRouter(rm *room.Manager, hub *ws.Hub) *gin.Engine {
	r := gin.Default()

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Pick Up multiplayer server running")
	})

	// WebSocket gateway for live play
	r.GET("/ws", hub.HandleWS)

	// --- ROOM ENDPOINTS ---
	r.POST("/create-room", CreateRoomHandler(rm))
	r.POST("/join-room", JoinRoomHandler(rm))
	r.GET("/room", RoomHandler(rm))

	// --- GAME ENDPOINTS ---
	r.GET("/rulesets", RulesetsHandler(rm))

	return r
}
