package room

import (
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"sort"
	"sync"
	"time"

	"pickup-party/internal/config"
	"pickup-party/internal/game"
	"pickup-party/internal/rules"

	"github.com/gin-gonic/gin"
)

type Store interface {
	GetRoom(id string) (*Room, bool)
	SaveRoom(r *Room)
	DeleteRoom(id string)
	Rooms() []*Room
}

// Manager owns every room in the process. All intents are serialized
// through its mutex, so a room is never mutated concurrently.
type Manager struct {
	mu       sync.Mutex
	store    Store
	cfg      config.Config
	rulesets map[string]rules.Ruleset
	hub      Broadcaster
	rng      *rand.Rand
}

func NewManager(s Store, cfg config.Config, rulesets map[string]rules.Ruleset) *Manager {
	return &Manager{
		store:    s,
		cfg:      cfg,
		rulesets: rulesets,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (m *Manager) SetHub(hub Broadcaster) {
	m.hub = hub
}

func (m *Manager) broadcast(roomID, action string, data interface{}) {
	if m.hub != nil {
		m.hub.Broadcast(roomID, action, data)
	}
}

// Rulesets lists the available rulesets sorted by name.
func (m *Manager) Rulesets() []rules.Ruleset {
	out := make([]rules.Ruleset, 0, len(m.rulesets))
	for _, rs := range m.rulesets {
		out = append(out, rs)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Get returns a room by id.
func (m *Manager) Get(roomID string) (*Room, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store.GetRoom(roomID)
}

// Snapshot marshals the room projection while the mutex is held, so
// HTTP reads never race with live intents mutating the same room.
func (m *Manager) Snapshot(roomID string) (json.RawMessage, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.store.GetRoom(roomID)
	if !ok {
		return nil, false
	}
	raw, err := json.Marshal(gin.H{"room": r, "standings": r.Standings()})
	if err != nil {
		log.Printf("snapshot room %s: %v", roomID, err)
		return nil, false
	}
	return raw, true
}

// CreateRoom creates the room on first use of the id, then adds the
// player. Creating with an id that is already in play joins that room, as
// long as there is capacity.
func (m *Manager) CreateRoom(roomID, playerID, playerName, rulesetName string) (*Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if roomID == "" || playerName == "" {
		return nil, ErrMissingField
	}
	r, ok := m.store.GetRoom(roomID)
	if !ok {
		if rulesetName == "" {
			rulesetName = m.cfg.DefaultRuleset
		}
		rs, ok := m.rulesets[rulesetName]
		if !ok {
			return nil, fmt.Errorf("unknown ruleset %q", rulesetName)
		}
		r = &Room{ID: roomID, Ruleset: rs, Round: 1, CreatedAt: time.Now()}
	}
	if err := m.addPlayer(r, playerID, playerName); err != nil {
		return nil, err
	}
	return r, nil
}

// JoinRoom adds the player to an existing room.
func (m *Manager) JoinRoom(roomID, playerID, playerName string) (*Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if roomID == "" || playerName == "" {
		return nil, ErrMissingField
	}
	r, ok := m.store.GetRoom(roomID)
	if !ok {
		return nil, ErrRoomNotFound
	}
	if err := m.addPlayer(r, playerID, playerName); err != nil {
		return nil, err
	}
	return r, nil
}

func (m *Manager) addPlayer(r *Room, playerID, playerName string) error {
	if len(r.Players) >= r.Ruleset.MaxPlayers {
		return ErrRoomFull
	}
	if r.Player(playerID) != nil {
		return ErrDuplicatePlayer
	}
	s := game.NewSession(playerID, playerName, r.Ruleset)
	s.Round = r.Round
	r.Players = append(r.Players, s)
	m.store.SaveRoom(r)
	m.broadcast(r.ID, "room-data", gin.H{"room": r})
	return nil
}

// Leave removes the player from the room. The last player leaving deletes
// the room; this is the only garbage collection rooms get.
func (m *Manager) Leave(roomID, playerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.store.GetRoom(roomID)
	if !ok {
		return ErrRoomNotFound
	}
	m.removePlayer(r, playerID)
	return nil
}

// Disconnect prunes the identity from every room it belongs to, exactly
// as an explicit leave would.
func (m *Manager) Disconnect(playerID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, r := range m.store.Rooms() {
		if r.Player(playerID) != nil {
			m.removePlayer(r, playerID)
		}
	}
}

func (m *Manager) removePlayer(r *Room, playerID string) {
	kept := r.Players[:0]
	for _, p := range r.Players {
		if p.ID != playerID {
			kept = append(kept, p)
		}
	}
	r.Players = kept
	if len(r.Players) == 0 {
		m.store.DeleteRoom(r.ID)
		return
	}
	if r.TurnIdx >= len(r.Players) {
		r.TurnIdx = 0
	}
	m.store.SaveRoom(r)
	m.broadcast(r.ID, "room-data", gin.H{"room": r})
	// A departure can leave everyone else finished.
	if r.Started && !r.Ended {
		m.settle(r)
	}
}

// StartGame moves the room from lobby into the first round.
func (m *Manager) StartGame(roomID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.store.GetRoom(roomID)
	if !ok {
		return ErrRoomNotFound
	}
	if r.Started && !r.Ended {
		return ErrInvalidState
	}
	if len(r.Players) < r.Ruleset.MinPlayers || len(r.Players) > r.Ruleset.MaxPlayers {
		return ErrInvalidState
	}
	r.Started = true
	r.Ended = false
	r.Round = 1
	r.TurnIdx = 0
	for _, p := range r.Players {
		p.ResetGame(r.Ruleset)
	}
	m.store.SaveRoom(r)
	m.broadcast(r.ID, "game-update", gin.H{"room": r})
	return nil
}

// Restart drops an ended (or running) game back into the lobby with
// fresh sessions.
func (m *Manager) Restart(roomID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.store.GetRoom(roomID)
	if !ok {
		return ErrRoomNotFound
	}
	r.Started = false
	r.Ended = false
	r.Round = 1
	r.TurnIdx = 0
	for _, p := range r.Players {
		p.ResetGame(r.Ruleset)
	}
	m.store.SaveRoom(r)
	m.broadcast(r.ID, "room-data", gin.H{"room": r})
	m.broadcast(r.ID, "game-update", gin.H{"room": r})
	return nil
}

// acting resolves the room and the session allowed to act right now. In
// turn-based rulesets only the active player may act.
func (m *Manager) acting(roomID, playerID string) (*Room, *game.Session, error) {
	r, ok := m.store.GetRoom(roomID)
	if !ok {
		return nil, nil, ErrRoomNotFound
	}
	if !r.Started || r.Ended {
		return nil, nil, ErrInvalidState
	}
	p := r.Player(playerID)
	if p == nil {
		return nil, nil, ErrInvalidState
	}
	if r.Ruleset.TurnBased && r.Players[r.TurnIdx].ID != playerID {
		return nil, nil, ErrInvalidState
	}
	return r, p, nil
}

// ToggleHold flips a hold flag for the player.
func (m *Manager) ToggleHold(roomID, playerID string, index int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, p, err := m.acting(roomID, playerID)
	if err != nil {
		return err
	}
	if err := p.ToggleHold(r.Ruleset, index); err != nil {
		return err
	}
	m.store.SaveRoom(r)
	m.broadcast(r.ID, "game-update", gin.H{"room": r})
	return nil
}

// RollReels spins the player's non-held reels.
func (m *Manager) RollReels(roomID, playerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, p, err := m.acting(roomID, playerID)
	if err != nil {
		return err
	}
	if err := p.Roll(r.Ruleset, m.rng); err != nil {
		return err
	}
	m.store.SaveRoom(r)
	m.broadcast(r.ID, "game-update", gin.H{"room": r})
	m.settle(r)
	return nil
}

// ChooseCombo claims a pending combination for the player.
func (m *Manager) ChooseCombo(roomID, playerID, comboName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, p, err := m.acting(roomID, playerID)
	if err != nil {
		return err
	}
	if err := p.ClaimCombo(r.Ruleset, comboName); err != nil {
		return err
	}
	m.store.SaveRoom(r)
	m.broadcast(r.ID, "game-update", gin.H{"room": r})
	m.settle(r)
	return nil
}

// ChooseSymbol claims a pending symbol tier for the player.
func (m *Manager) ChooseSymbol(roomID, playerID, symbolKey string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, p, err := m.acting(roomID, playerID)
	if err != nil {
		return err
	}
	if err := p.ClaimSymbol(r.Ruleset, symbolKey); err != nil {
		return err
	}
	m.store.SaveRoom(r)
	m.broadcast(r.ID, "game-update", gin.H{"room": r})
	m.settle(r)
	return nil
}

// settle runs the round/game end checks after a mutation. The cooperative
// goal ends the game mid-round; otherwise the round closes once every
// player (or, turn-based, the last player in the cycle) has finished.
func (m *Manager) settle(r *Room) {
	if r.Ended {
		return
	}
	if r.Ruleset.GoalScore > 0 && r.TotalScore() >= r.Ruleset.GoalScore {
		m.endGame(r)
		return
	}

	roundDone := false
	if r.Ruleset.TurnBased {
		for r.TurnIdx < len(r.Players) && r.Players[r.TurnIdx].Finished {
			r.TurnIdx++
		}
		if r.TurnIdx >= len(r.Players) {
			roundDone = true
		}
	} else {
		roundDone = r.allFinished()
	}
	if !roundDone {
		m.store.SaveRoom(r)
		return
	}

	if r.Round >= r.Ruleset.MaxRounds {
		m.endGame(r)
		return
	}
	r.Round++
	r.TurnIdx = 0
	for _, p := range r.Players {
		p.ResetRound(r.Ruleset, r.Round)
	}
	m.store.SaveRoom(r)
	m.broadcast(r.ID, "next-round", gin.H{"room": r})
}

func (m *Manager) endGame(r *Room) {
	r.Ended = true
	m.store.SaveRoom(r)
	log.Printf("room %s ended after round %d, total score %d", r.ID, r.Round, r.TotalScore())
	m.broadcast(r.ID, "game-ended", gin.H{
		"room":      r,
		"standings": r.Standings(),
		"winners":   r.Winners(),
	})
}
