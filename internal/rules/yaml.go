package rules

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type rulesetFile struct {
	Rulesets []Ruleset `yaml:"rulesets"`
}

// FromYAML loads extra rulesets from a yaml file and merges them over the
// built-ins. A file entry with a built-in name replaces that built-in.
func FromYAML(path string) (map[string]Ruleset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f rulesetFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	out := Builtins()
	for _, rs := range f.Rulesets {
		if len(rs.Symbols) == 0 {
			rs.Symbols = defaultSymbols()
		}
		if len(rs.Combos) == 0 {
			rs.Combos = defaultCombos()
		}
		if rs.WildcardKey == "" {
			rs.WildcardKey = "joker"
		}
		if err := rs.Validate(); err != nil {
			return nil, err
		}
		out[rs.Name] = rs
	}
	return out, nil
}
