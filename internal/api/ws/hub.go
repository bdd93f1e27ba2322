package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// client wraps a connection with a write mutex. gorilla/websocket allows
// only one concurrent writer per connection, and acks from the read loop
// can overlap with broadcasts driven by other connections.
type client struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *client) write(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

// Hub is the session gateway: it owns every live connection, routes
// client intents to the room manager and fans broadcasts back out to
// every subscriber of a room.
type Hub struct {
	mu          sync.RWMutex
	rooms       map[string]map[*client]struct{}
	roomManager RoomManager
}

func NewHub() *Hub {
	return &Hub{
		rooms: make(map[string]map[*client]struct{}),
	}
}

func (h *Hub) SetRoomManager(rm RoomManager) {
	h.roomManager = rm
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins
	},
}

type envelope struct {
	Action string          `json:"action"`
	Data   json.RawMessage `json:"data"`
}

type roomIntent struct {
	RoomID  string `json:"roomId"`
	Name    string `json:"name"`
	Ruleset string `json:"ruleset"`
	Index   int    `json:"index"`
	Combo   string `json:"comboName"`
	Symbol  string `json:"symbolKey"`
}

// HandleWS upgrades the connection, assigns it a player identity and runs
// the read loop until the client goes away. Intents from one connection
// are handled strictly in receipt order.
func (h *Hub) HandleWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade connection: %v", err)
		return
	}

	cl := &client{conn: conn}
	playerID := uuid.NewString()
	joined := map[string]struct{}{}

	defer func() {
		h.roomManager.Disconnect(playerID)
		h.mu.Lock()
		for roomID := range joined {
			delete(h.rooms[roomID], cl)
		}
		h.mu.Unlock()
		_ = conn.Close()
	}()

	if err := cl.write(map[string]interface{}{
		"action": "connected",
		"data":   map[string]string{"playerId": playerID},
	}); err != nil {
		return
	}

	for {
		var msg envelope
		if err := conn.ReadJSON(&msg); err != nil {
			break
		}

		var in roomIntent
		if len(msg.Data) > 0 {
			if err := json.Unmarshal(msg.Data, &in); err != nil {
				log.Printf("Invalid intent payload: %v", err)
				continue
			}
		}

		switch msg.Action {
		case "create-room", "join-room":
			h.handleEnter(cl, msg.Action, playerID, in, joined)
		case "start-game":
			if err := h.roomManager.StartGame(in.RoomID); err != nil {
				log.Printf("start-game rejected for room %s: %v", in.RoomID, err)
			}
		case "toggle-hold":
			if err := h.roomManager.ToggleHold(in.RoomID, playerID, in.Index); err != nil {
				log.Printf("toggle-hold rejected for %s: %v", playerID, err)
			}
		case "roll-reels":
			if err := h.roomManager.RollReels(in.RoomID, playerID); err != nil {
				log.Printf("roll-reels rejected for %s: %v", playerID, err)
			}
		case "choose-combo":
			if err := h.roomManager.ChooseCombo(in.RoomID, playerID, in.Combo); err != nil {
				log.Printf("choose-combo rejected for %s: %v", playerID, err)
			}
		case "choose-symbol":
			if err := h.roomManager.ChooseSymbol(in.RoomID, playerID, in.Symbol); err != nil {
				log.Printf("choose-symbol rejected for %s: %v", playerID, err)
			}
		case "restart-game":
			if err := h.roomManager.Restart(in.RoomID); err != nil {
				log.Printf("restart-game rejected for room %s: %v", in.RoomID, err)
			}
		case "leave-room":
			if err := h.roomManager.Leave(in.RoomID, playerID); err != nil {
				log.Printf("leave-room rejected for %s: %v", playerID, err)
			}
			h.unregister(in.RoomID, cl)
			delete(joined, in.RoomID)
		default:
			log.Printf("Unknown action: %s", msg.Action)
		}
	}
}

// handleEnter runs the create/join intents, which answer the initiating
// client with an ack. The connection subscribes to the room before the
// manager runs so the resulting room-data broadcast reaches it too.
func (h *Hub) handleEnter(cl *client, action, playerID string, in roomIntent, joined map[string]struct{}) {
	_, wasJoined := joined[in.RoomID]
	if in.RoomID != "" && !wasJoined {
		h.register(in.RoomID, cl)
	}

	var err error
	if action == "create-room" {
		_, err = h.roomManager.CreateRoom(in.RoomID, playerID, in.Name, in.Ruleset)
	} else {
		_, err = h.roomManager.JoinRoom(in.RoomID, playerID, in.Name)
	}

	ack := map[string]interface{}{"op": action, "ok": err == nil}
	if err != nil {
		ack["error"] = err.Error()
		if in.RoomID != "" && !wasJoined {
			h.unregister(in.RoomID, cl)
		}
	} else {
		joined[in.RoomID] = struct{}{}
	}
	if werr := cl.write(map[string]interface{}{"action": "ack", "data": ack}); werr != nil {
		log.Printf("Failed to send ack: %v", werr)
	}
}

func (h *Hub) register(roomID string, cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.rooms[roomID]; !ok {
		h.rooms[roomID] = make(map[*client]struct{})
	}
	h.rooms[roomID][cl] = struct{}{}
}

func (h *Hub) unregister(roomID string, cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if clients, ok := h.rooms[roomID]; ok {
		delete(clients, cl)
		if len(clients) == 0 {
			delete(h.rooms, roomID)
		}
	}
}

// Broadcast sends a full-state message to every subscriber of the room.
// The subscriber list is copied out of the read lock before writing, and
// dead connections are evicted under the write lock.
func (h *Hub) Broadcast(roomID string, action string, data interface{}) {
	h.mu.RLock()
	clients := make([]*client, 0, len(h.rooms[roomID]))
	for cl := range h.rooms[roomID] {
		clients = append(clients, cl)
	}
	h.mu.RUnlock()

	message := map[string]interface{}{
		"action": action,
		"data":   data,
	}
	for _, cl := range clients {
		if err := cl.write(message); err != nil {
			log.Printf("Failed to send message: %v", err)
			cl.conn.Close()
			h.unregister(roomID, cl)
		}
	}
}
