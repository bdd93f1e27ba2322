package rules

import "fmt"

// Ruleset bundles every variant axis of the game: which symbols and
// combinations exist, how many players a room takes, the round count,
// and the play model. A room is bound to one ruleset at creation.
type Ruleset struct {
	Name        string   `json:"name" yaml:"name"`
	Symbols     []Symbol `json:"symbols" yaml:"symbols"`
	Combos      []Combo  `json:"combos" yaml:"combos"`
	WildcardKey string   `json:"wildcardKey" yaml:"wildcard_key"`

	MinPlayers int `json:"minPlayers" yaml:"min_players"`
	MaxPlayers int `json:"maxPlayers" yaml:"max_players"`
	MaxRounds  int `json:"maxRounds" yaml:"max_rounds"`

	// HoldCap limits how many reels may be held at once; 0 means uncapped.
	HoldCap int `json:"holdCap" yaml:"hold_cap"`

	// ClaimPerRound resets the used combination/symbol sets at every round
	// boundary instead of consuming them for the whole game.
	ClaimPerRound bool `json:"claimPerRound" yaml:"claim_per_round"`

	// TurnBased switches from simultaneous play to one active player at a
	// time.
	TurnBased bool `json:"turnBased" yaml:"turn_based"`

	// ComboPayoutScale scales combination payouts; the duel ruleset pays
	// half (0.5). 0 is treated as 1.
	ComboPayoutScale float64 `json:"comboPayoutScale" yaml:"combo_payout_scale"`

	// GoalScore ends the game as soon as the summed score of all players
	// reaches it; 0 disables the goal and the game runs MaxRounds rounds.
	GoalScore int `json:"goalScore" yaml:"goal_score"`
}

func defaultSymbols() []Symbol {
	return []Symbol{
		{Key: "circle", Label: "Circle", Points3: 30, Points4: 60, Points5: 150},
		{Key: "triangle", Label: "Triangle", Points3: 40, Points4: 80, Points5: 200},
		{Key: "square", Label: "Square", Points3: 60, Points4: 120, Points5: 300},
		{Key: "heart", Label: "Heart", Points3: 80, Points4: 160, Points5: 400},
		{Key: "star", Label: "Star", Points3: 110, Points4: 220, Points5: 550},
		{Key: "joker", Label: "Joker", Points3: 200, Points4: 400, Points5: 1000},
	}
}

func defaultCombos() []Combo {
	return []Combo{
		{Name: "Five different", Points: 800, Kind: KindFiveDifferent},
		{Name: "Full House", Points: 600, Kind: KindFullHouse},
		{Name: "Four of a kind", Points: 400, Kind: KindNOfAKind, N: 4},
		{Name: "Five of a kind", Points: 900, Kind: KindNOfAKind, N: 5},
		{Name: "Joker", Points: 250, Kind: KindWildcard},
	}
}

// Classic is the reference ruleset: up to four players rolling
// simultaneously over five rounds, claims consumed for the whole game.
func Classic() Ruleset {
	return Ruleset{
		Name:        "classic",
		Symbols:     defaultSymbols(),
		Combos:      defaultCombos(),
		WildcardKey: "joker",
		MinPlayers:  2,
		MaxPlayers:  4,
		MaxRounds:   5,
	}
}

// Duel is the turn-based head-to-head ruleset: two players alternate,
// at most two reels may be held, and combination payouts are halved.
// The halved payout is a quirk of that ruleset and is kept as-is.
func Duel() Ruleset {
	rs := Classic()
	rs.Name = "duel"
	rs.MaxPlayers = 2
	rs.TurnBased = true
	rs.HoldCap = 2
	rs.ComboPayoutScale = 0.5
	rs.ClaimPerRound = true
	return rs
}

// Coop is the cooperative ruleset: all players pool their scores toward a
// shared goal and the game ends the moment the goal is reached.
func Coop() Ruleset {
	rs := Classic()
	rs.Name = "coop"
	rs.MaxRounds = 20
	rs.GoalScore = 220000
	rs.ClaimPerRound = true
	return rs
}

// Builtins returns the compiled-in rulesets keyed by name.
func Builtins() map[string]Ruleset {
	out := map[string]Ruleset{}
	for _, rs := range []Ruleset{Classic(), Duel(), Coop()} {
		out[rs.Name] = rs
	}
	return out
}

// Validate checks a ruleset for the structural requirements the engine
// relies on.
func (rs Ruleset) Validate() error {
	if rs.Name == "" {
		return fmt.Errorf("ruleset without a name")
	}
	if len(rs.Symbols) == 0 {
		return fmt.Errorf("ruleset %q has no symbols", rs.Name)
	}
	if rs.MinPlayers < 1 || rs.MaxPlayers < rs.MinPlayers {
		return fmt.Errorf("ruleset %q has invalid player bounds %d..%d", rs.Name, rs.MinPlayers, rs.MaxPlayers)
	}
	if rs.MaxRounds < 1 {
		return fmt.Errorf("ruleset %q needs at least one round", rs.Name)
	}
	seen := map[string]bool{}
	for _, c := range rs.Combos {
		if seen[c.Name] {
			return fmt.Errorf("ruleset %q has duplicate combination %q", rs.Name, c.Name)
		}
		seen[c.Name] = true
		if c.Kind == KindNOfAKind && c.N < 2 {
			return fmt.Errorf("ruleset %q: combination %q needs n >= 2", rs.Name, c.Name)
		}
	}
	return nil
}
