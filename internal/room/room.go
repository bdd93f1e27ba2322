package room

import (
	"errors"
	"sort"
	"time"

	"pickup-party/internal/game"
	"pickup-party/internal/rules"
)

// Registry error taxonomy. Transport layers map these onto ack replies.
var (
	ErrRoomNotFound    = errors.New("room not found")
	ErrRoomFull        = errors.New("room is full")
	ErrDuplicatePlayer = errors.New("already in room")
	ErrMissingField    = errors.New("room id and player name required")
	ErrInvalidState    = game.ErrInvalidState
)

// Room is a named collection of player sessions plus the shared round
// state. Players keep their join order.
type Room struct {
	ID        string          `json:"id"`
	Players   []*game.Session `json:"players"`
	Started   bool            `json:"started"`
	Ended     bool            `json:"ended"`
	Round     int             `json:"round"`
	TurnIdx   int             `json:"turnIdx"` // turn-based rulesets only
	Ruleset   rules.Ruleset   `json:"ruleset"`
	CreatedAt time.Time       `json:"createdAt"`
}

// Player returns the session with the given id, or nil.
func (r *Room) Player(id string) *game.Session {
	for _, p := range r.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (r *Room) allFinished() bool {
	for _, p := range r.Players {
		if !p.Finished {
			return false
		}
	}
	return len(r.Players) > 0
}

// TotalScore sums every player's score, used by the cooperative goal.
func (r *Room) TotalScore() int {
	total := 0
	for _, p := range r.Players {
		total += p.Score
	}
	return total
}

// StandingRow is one line of the final (or running) scoreboard.
type StandingRow struct {
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
	Score    int    `json:"score"`
}

// Standings returns the players ordered by score, highest first.
func (r *Room) Standings() []StandingRow {
	out := make([]StandingRow, 0, len(r.Players))
	for _, p := range r.Players {
		out = append(out, StandingRow{PlayerID: p.ID, Name: p.Name, Score: p.Score})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

// Winners returns the ids of every player holding the maximum score.
// Ties produce multiple winners.
func (r *Room) Winners() []string {
	best := -1
	for _, p := range r.Players {
		if p.Score > best {
			best = p.Score
		}
	}
	var out []string
	for _, p := range r.Players {
		if p.Score == best {
			out = append(out, p.ID)
		}
	}
	return out
}
