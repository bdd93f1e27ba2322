package game

import (
	"errors"
	"fmt"
	"math/rand"

	"pickup-party/internal/rules"
)

const (
	// NumReels is the number of symbol slots per player.
	NumReels = 5
	// DrawsPerRound is how many rolls a player gets per turn.
	DrawsPerRound = 3
)

// ErrInvalidState rejects an action attempted outside the state that
// permits it (rolling with zero draws left, claiming a choice that is not
// offered, exceeding the hold cap).
var ErrInvalidState = errors.New("action not allowed in current state")

// Session is the per-player game state inside a room.
type Session struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Reels     []string `json:"reels"` // "" before the first roll
	Holds     []bool   `json:"holds"`
	DrawsLeft int      `json:"drawsLeft"`
	Score     int      `json:"score"`
	Round     int      `json:"round"`
	Finished  bool     `json:"finished"`
	Message   string   `json:"message"`

	UsedCombos  []string `json:"usedCombos"`
	UsedSymbols []string `json:"usedSymbols"`

	// Claimable right now, recomputed after every roll and every claim.
	PendingCombos  []rules.Combo        `json:"pendingCombos"`
	PendingSymbols []rules.SymbolResult `json:"pendingSymbols"`

	// Full per-symbol projection for rendering, including used entries.
	SymbolResults []rules.SymbolResult `json:"symbolResults"`
}

// NewSession creates a fresh session for one player.
func NewSession(id, name string, rs rules.Ruleset) *Session {
	s := &Session{ID: id, Name: name, Round: 1}
	s.reset(rs)
	return s
}

// reset clears the per-turn fields: empty reels, no holds, full draws.
func (s *Session) reset(rs rules.Ruleset) {
	s.Reels = make([]string, NumReels)
	s.Holds = make([]bool, NumReels)
	s.DrawsLeft = DrawsPerRound
	s.PendingCombos = nil
	s.PendingSymbols = nil
	s.SymbolResults = rs.SymbolResults(s.Reels, s.UsedSymbols)
}

// ResetRound prepares the session for the next round. Score and used sets
// are cumulative for the whole game unless the ruleset claims per round.
func (s *Session) ResetRound(rs rules.Ruleset, round int) {
	if rs.ClaimPerRound {
		s.UsedCombos = nil
		s.UsedSymbols = nil
	}
	s.Round = round
	s.Finished = false
	s.Message = ""
	s.reset(rs)
}

// ResetGame wipes the session back to a brand-new state.
func (s *Session) ResetGame(rs rules.Ruleset) {
	s.Score = 0
	s.UsedCombos = nil
	s.UsedSymbols = nil
	s.ResetRound(rs, 1)
}

func (s *Session) heldCount() int {
	n := 0
	for _, h := range s.Holds {
		if h {
			n++
		}
	}
	return n
}

// ToggleHold flips the hold flag of one reel. Holding is only meaningful
// while draws remain, and some rulesets cap the number of held reels.
func (s *Session) ToggleHold(rs rules.Ruleset, index int) error {
	if s.Finished || s.DrawsLeft == 0 {
		return ErrInvalidState
	}
	if index < 0 || index >= NumReels {
		return ErrInvalidState
	}
	if !s.Holds[index] && rs.HoldCap > 0 && s.heldCount() >= rs.HoldCap {
		return ErrInvalidState
	}
	s.Holds[index] = !s.Holds[index]
	return nil
}

// Roll randomizes every non-held reel, spends one draw and recomputes the
// claimable choices. A dead end (nothing claimable) finishes the player's
// round on the spot.
func (s *Session) Roll(rs rules.Ruleset, rng *rand.Rand) error {
	if s.Finished || s.DrawsLeft == 0 {
		return ErrInvalidState
	}
	for i := range s.Reels {
		if !s.Holds[i] {
			s.Reels[i] = rs.Symbols[rng.Intn(len(rs.Symbols))].Key
		}
	}
	s.DrawsLeft--
	s.refreshChoices(rs)
	if rs.NoChoiceLeft(s.Reels, s.UsedCombos, s.UsedSymbols) {
		s.Finished = true
		s.Message = "Nothing left to claim this round"
	}
	return nil
}

func (s *Session) refreshChoices(rs rules.Ruleset) {
	s.SymbolResults = rs.SymbolResults(s.Reels, s.UsedSymbols)
	s.PendingCombos = rs.MatchingCombos(s.Reels, s.UsedCombos)
	s.PendingSymbols = nil
	for _, r := range s.SymbolResults {
		if r.Points > 0 && !r.Used {
			s.PendingSymbols = append(s.PendingSymbols, r)
		}
	}
}

// ClaimCombo scores a pending combination by name.
func (s *Session) ClaimCombo(rs rules.Ruleset, name string) error {
	if s.Finished {
		return ErrInvalidState
	}
	for _, c := range s.PendingCombos {
		if c.Name == name {
			s.Score += c.Points
			s.UsedCombos = append(s.UsedCombos, c.Name)
			s.Message = fmt.Sprintf("Combination %q claimed! +%d points", c.Name, c.Points)
			s.afterClaim(rs)
			return nil
		}
	}
	return ErrInvalidState
}

// ClaimSymbol scores a pending symbol tier by key.
func (s *Session) ClaimSymbol(rs rules.Ruleset, key string) error {
	if s.Finished {
		return ErrInvalidState
	}
	for _, r := range s.PendingSymbols {
		if r.Key == key {
			s.Score += r.Points
			s.UsedSymbols = append(s.UsedSymbols, r.Key)
			s.Message = fmt.Sprintf("Symbol %q claimed! +%d points", r.Label, r.Points)
			s.afterClaim(rs)
			return nil
		}
	}
	return ErrInvalidState
}

// afterClaim decides whether the round continues. The check runs against
// the reels as they were when the claim was made: if they still offer an
// unclaimed choice the player gets a fresh set of draws, otherwise the
// round is over for them.
func (s *Session) afterClaim(rs rules.Ruleset) {
	s.PendingCombos = nil
	s.PendingSymbols = nil
	if rs.NoChoiceLeft(s.Reels, s.UsedCombos, s.UsedSymbols) {
		s.Finished = true
		s.SymbolResults = rs.SymbolResults(s.Reels, s.UsedSymbols)
		return
	}
	s.reset(rs)
}
