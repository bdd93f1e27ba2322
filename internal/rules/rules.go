package rules

// Symbol is one reel face together with its 3/4/5-of-a-kind payouts.
type Symbol struct {
	Key     string `json:"key" yaml:"key"`
	Label   string `json:"label" yaml:"label"`
	Points3 int    `json:"points3" yaml:"points3"`
	Points4 int    `json:"points4" yaml:"points4"`
	Points5 int    `json:"points5" yaml:"points5"`
}

// ComboKind selects the match predicate of a combination.
type ComboKind string

const (
	KindFiveDifferent ComboKind = "five_different"
	KindFullHouse     ComboKind = "full_house"
	KindNOfAKind      ComboKind = "n_of_a_kind"
	KindWildcard      ComboKind = "wildcard"
)

// Combo is a named pattern over the five reel values, worth fixed points
// and claimable once per game.
type Combo struct {
	Name   string    `json:"name" yaml:"name"`
	Points int       `json:"points" yaml:"points"`
	Kind   ComboKind `json:"kind" yaml:"kind"`
	N      int       `json:"n,omitempty" yaml:"n,omitempty"` // n_of_a_kind only
}

// SymbolResult is the per-symbol projection sent to clients after a roll:
// how often the symbol appears, what the current tier pays, and whether
// it has already been claimed.
type SymbolResult struct {
	Symbol
	Count       int    `json:"count"`
	Points      int    `json:"points"`
	PointsLabel string `json:"pointsLabel"`
	Used        bool   `json:"used"`
}

func countSymbols(reels []string) map[string]int {
	freq := make(map[string]int, len(reels))
	for _, s := range reels {
		if s != "" {
			freq[s]++
		}
	}
	return freq
}

// FiveDifferent reports whether all five reel values are pairwise distinct.
func FiveDifferent(reels []string) bool {
	freq := countSymbols(reels)
	return len(freq) == len(reels)
}

// FullHouse reports whether the reels hold exactly two distinct values
// with multiplicities 2 and 3. Empty slots never count, so a reel set
// with an unrolled slot and two pairs is not a full house.
func FullHouse(reels []string) bool {
	freq := countSymbols(reels)
	if len(freq) != 2 {
		return false
	}
	pair, triple := false, false
	for _, n := range freq {
		switch n {
		case 2:
			pair = true
		case 3:
			triple = true
		}
	}
	return pair && triple
}

// NOfAKind reports whether some value appears exactly n times.
func NOfAKind(reels []string, n int) bool {
	for _, c := range countSymbols(reels) {
		if c == n {
			return true
		}
	}
	return false
}

// HasWildcard reports whether the wildcard key appears at least once.
func HasWildcard(reels []string, key string) bool {
	for _, s := range reels {
		if s == key {
			return true
		}
	}
	return false
}

func (c Combo) matches(reels []string, wildcard string) bool {
	switch c.Kind {
	case KindFiveDifferent:
		return FiveDifferent(reels)
	case KindFullHouse:
		return FullHouse(reels)
	case KindNOfAKind:
		return NOfAKind(reels, c.N)
	case KindWildcard:
		return HasWildcard(reels, wildcard)
	}
	return false
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// ComboPoints is the payout for claiming c under this ruleset. Some
// rulesets scale combination payouts (the duel ruleset pays half).
func (rs Ruleset) ComboPoints(c Combo) int {
	if rs.ComboPayoutScale == 0 || rs.ComboPayoutScale == 1 {
		return c.Points
	}
	return int(float64(c.Points) * rs.ComboPayoutScale)
}

// MatchingCombos returns every combination whose predicate holds for the
// reels and whose name is not yet used. Returned entries carry the
// ruleset-scaled payout. A reel set may satisfy several combinations at
// once.
func (rs Ruleset) MatchingCombos(reels []string, usedNames []string) []Combo {
	var out []Combo
	for _, c := range rs.Combos {
		if contains(usedNames, c.Name) {
			continue
		}
		if c.matches(reels, rs.WildcardKey) {
			c.Points = rs.ComboPoints(c)
			out = append(out, c)
		}
	}
	return out
}

// SymbolResults projects every symbol of the ruleset against the reels,
// including already-used symbols (with zero points), mirroring what the
// client renders in its scoring table.
func (rs Ruleset) SymbolResults(reels []string, usedKeys []string) []SymbolResult {
	freq := countSymbols(reels)
	out := make([]SymbolResult, 0, len(rs.Symbols))
	for _, s := range rs.Symbols {
		r := SymbolResult{Symbol: s, Count: freq[s.Key], Used: contains(usedKeys, s.Key)}
		if !r.Used {
			switch r.Count {
			case 3:
				r.Points, r.PointsLabel = s.Points3, "3x"
			case 4:
				r.Points, r.PointsLabel = s.Points4, "4x"
			case 5:
				r.Points, r.PointsLabel = s.Points5, "5x"
			}
		}
		out = append(out, r)
	}
	return out
}

// SymbolScore is the tier payout for claiming key against the reels, or 0
// when the count is outside 3..5 or the symbol was already claimed.
func (rs Ruleset) SymbolScore(reels []string, key string, usedKeys []string) int {
	for _, r := range rs.SymbolResults(reels, usedKeys) {
		if r.Key == key {
			return r.Points
		}
	}
	return 0
}

// NoChoiceLeft reports whether the reels offer neither an unclaimed
// combination nor an unclaimed symbol tier. A player in this position has
// finished their round.
func (rs Ruleset) NoChoiceLeft(reels, usedCombos, usedSymbols []string) bool {
	if len(rs.MatchingCombos(reels, usedCombos)) > 0 {
		return false
	}
	for _, r := range rs.SymbolResults(reels, usedSymbols) {
		if r.Points > 0 && !r.Used {
			return false
		}
	}
	return true
}
