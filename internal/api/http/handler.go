package http

import (
	"errors"
	"net/http"

	"pickup-party/internal/room"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, room.ErrRoomNotFound):
		return http.StatusNotFound
	case errors.Is(err, room.ErrRoomFull),
		errors.Is(err, room.ErrDuplicatePlayer),
		errors.Is(err, room.ErrInvalidState):
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

// @Summary Create or enter a room
// @Description Creates the room on first use of the id and adds the player; a server-side player id is returned
// @Tags Room
// @Accept json
// @Produce json
// @Param request body http.CreateRoomRequest true "Room and player info"
// @Success 200 {object} map[string]interface{}
// @Router /create-room [post]
func CreateRoomHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateRoomRequest
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid payload"})
			return
		}
		playerID := uuid.NewString()
		r, err := rm.CreateRoom(req.RoomID, playerID, req.PlayerName, req.Ruleset)
		if err != nil {
			c.JSON(statusFor(err), gin.H{"ok": false, "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "playerId": playerID, "room": r})
	}
}

// @Summary Join an existing room
// @Tags Room
// @Accept json
// @Produce json
// @Param request body http.JoinRoomRequest true "Room and player info"
// @Success 200 {object} map[string]interface{}
// @Router /join-room [post]
func JoinRoomHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req JoinRoomRequest
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid payload"})
			return
		}
		playerID := uuid.NewString()
		r, err := rm.JoinRoom(req.RoomID, playerID, req.PlayerName)
		if err != nil {
			c.JSON(statusFor(err), gin.H{"ok": false, "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "playerId": playerID, "room": r})
	}
}

// @Summary Get the current room projection
// @Tags Room
// @Produce json
// @Param roomId query string true "Room ID"
// @Success 200 {object} map[string]interface{}
// @Router /room [get]
func RoomHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		roomID := c.Query("roomId")
		raw, ok := rm.Snapshot(roomID)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
			return
		}
		c.Data(http.StatusOK, "application/json; charset=utf-8", raw)
	}
}

// @Summary List available rulesets
// @Tags Game
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /rulesets [get]
func RulesetsHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"rulesets": rm.Rulesets()})
	}
}
