package rules

import (
	"os"
	"path/filepath"
	"testing"
)

func comboNames(combos []Combo) []string {
	out := make([]string, 0, len(combos))
	for _, c := range combos {
		out = append(out, c.Name)
	}
	return out
}

func hasName(combos []Combo, name string) bool {
	for _, c := range combos {
		if c.Name == name {
			return true
		}
	}
	return false
}

func TestPredicates(t *testing.T) {
	tcs := []struct {
		name  string
		reels []string
		pred  func([]string) bool
		want  bool
	}{
		{"five different", []string{"circle", "triangle", "square", "heart", "star"}, FiveDifferent, true},
		{"five different with pair", []string{"circle", "circle", "square", "heart", "star"}, FiveDifferent, false},
		{"full house", []string{"heart", "heart", "star", "star", "star"}, FullHouse, true},
		{"full house wrong split", []string{"heart", "heart", "heart", "heart", "star"}, FullHouse, false},
		{"full house three distinct", []string{"heart", "heart", "star", "star", "circle"}, FullHouse, false},
		{"two pairs and empty slot", []string{"", "circle", "circle", "heart", "heart"}, FullHouse, false},
		{"triple and empty slots", []string{"", "", "heart", "heart", "heart"}, FullHouse, false},
		{"four of a kind", []string{"star", "star", "star", "star", "circle"}, func(r []string) bool { return NOfAKind(r, 4) }, true},
		{"four of a kind is not five", []string{"star", "star", "star", "star", "star"}, func(r []string) bool { return NOfAKind(r, 4) }, false},
		{"five of a kind", []string{"star", "star", "star", "star", "star"}, func(r []string) bool { return NOfAKind(r, 5) }, true},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.pred(tc.reels); got != tc.want {
				t.Fatalf("%s(%v) = %v, want %v", tc.name, tc.reels, got, tc.want)
			}
		})
	}
}

func TestHasWildcard(t *testing.T) {
	if !HasWildcard([]string{"circle", "joker", "star", "star", "star"}, "joker") {
		t.Fatal("expected wildcard to be detected")
	}
	if HasWildcard([]string{"circle", "star", "star", "star", "star"}, "joker") {
		t.Fatal("did not expect wildcard")
	}
}

// TestMatchingCombosFullHouse checks that any a,a,b,b,b reel set offers
// Full House.
func TestMatchingCombosFullHouse(t *testing.T) {
	rs := Classic()
	got := rs.MatchingCombos([]string{"circle", "circle", "heart", "heart", "heart"}, nil)
	if !hasName(got, "Full House") {
		t.Fatalf("expected Full House in %v", comboNames(got))
	}
}

// TestMatchingCombosFiveDifferent checks that five distinct reels offer
// Five different and never an n-of-a-kind combination.
func TestMatchingCombosFiveDifferent(t *testing.T) {
	rs := Classic()
	got := rs.MatchingCombos([]string{"circle", "triangle", "square", "heart", "star"}, nil)
	if !hasName(got, "Five different") {
		t.Fatalf("expected Five different in %v", comboNames(got))
	}
	if hasName(got, "Four of a kind") || hasName(got, "Five of a kind") {
		t.Fatalf("n-of-a-kind must not match distinct reels: %v", comboNames(got))
	}
}

// TestMatchingCombosSkipsUsed checks that a used name never reappears.
func TestMatchingCombosSkipsUsed(t *testing.T) {
	rs := Classic()
	reels := []string{"circle", "circle", "heart", "heart", "heart"}
	got := rs.MatchingCombos(reels, []string{"Full House"})
	if hasName(got, "Full House") {
		t.Fatalf("used combination offered again: %v", comboNames(got))
	}
}

// TestSymbolResultsJokerTier checks the three-joker tier payout.
func TestSymbolResultsJokerTier(t *testing.T) {
	rs := Classic()
	reels := []string{"joker", "joker", "joker", "circle", "heart"}
	for _, r := range rs.SymbolResults(reels, nil) {
		if r.Key != "joker" {
			continue
		}
		if r.Count != 3 || r.Points != 200 || r.PointsLabel != "3x" {
			t.Fatalf("joker tier = count %d points %d label %q, want 3/200/3x", r.Count, r.Points, r.PointsLabel)
		}
		return
	}
	t.Fatal("joker missing from symbol results")
}

func TestSymbolScoreUsedSymbol(t *testing.T) {
	rs := Classic()
	reels := []string{"star", "star", "star", "circle", "heart"}
	if got := rs.SymbolScore(reels, "star", nil); got != 110 {
		t.Fatalf("star tier = %d, want 110", got)
	}
	if got := rs.SymbolScore(reels, "star", []string{"star"}); got != 0 {
		t.Fatalf("used star tier = %d, want 0", got)
	}
}

// TestDuelComboPayoutHalved checks the duel ruleset's halved combination
// payouts are preserved.
func TestDuelComboPayoutHalved(t *testing.T) {
	rs := Duel()
	got := rs.MatchingCombos([]string{"circle", "circle", "heart", "heart", "heart"}, nil)
	for _, c := range got {
		if c.Name == "Full House" {
			if c.Points != 300 {
				t.Fatalf("duel Full House pays %d, want 300", c.Points)
			}
			return
		}
	}
	t.Fatalf("Full House missing from %v", comboNames(got))
}

func TestNoChoiceLeft(t *testing.T) {
	rs := Classic()
	dead := []string{"circle", "circle", "triangle", "triangle", "star"}
	if !rs.NoChoiceLeft(dead, nil, nil) {
		t.Fatalf("expected no choice for %v", dead)
	}
	alive := []string{"circle", "circle", "triangle", "triangle", "joker"}
	if rs.NoChoiceLeft(alive, nil, nil) {
		t.Fatalf("joker should keep %v alive", alive)
	}
	if !rs.NoChoiceLeft(alive, []string{"Joker"}, nil) {
		t.Fatal("expected dead end once the Joker combination is used")
	}
}

func TestFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rulesets.yaml")
	data := []byte(`rulesets:
  - name: quick
    min_players: 2
    max_players: 3
    max_rounds: 2
    hold_cap: 2
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := FromYAML(path)
	if err != nil {
		t.Fatalf("FromYAML returned error: %v", err)
	}
	rs, ok := got["quick"]
	if !ok {
		t.Fatal("quick ruleset missing")
	}
	if rs.MaxRounds != 2 || rs.HoldCap != 2 {
		t.Fatalf("unexpected quick ruleset: %+v", rs)
	}
	if len(rs.Symbols) == 0 || len(rs.Combos) == 0 {
		t.Fatal("defaults not filled in")
	}
	if _, ok := got["classic"]; !ok {
		t.Fatal("built-ins must survive the merge")
	}
}

func TestValidate(t *testing.T) {
	rs := Classic()
	if err := rs.Validate(); err != nil {
		t.Fatalf("classic must validate: %v", err)
	}
	rs.Combos = append(rs.Combos, Combo{Name: "Full House", Points: 1, Kind: KindFullHouse})
	if err := rs.Validate(); err == nil {
		t.Fatal("duplicate combination name must fail validation")
	}
}
