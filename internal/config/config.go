package config

import (
	"os"
	"strconv"
)

type Config struct {
	HTTPAddr       string
	DefaultRuleset string
	RulesetsFile   string

	// Overrides applied to the default ruleset; 0 keeps the built-in value.
	MaxPlayers int
	MaxRounds  int
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func Load() Config {
	return Config{
		HTTPAddr:       getenv("HTTP_ADDR", ":3001"),
		DefaultRuleset: getenv("DEFAULT_RULESET", "classic"),
		RulesetsFile:   getenv("RULESETS_FILE", ""),
		MaxPlayers:     getenvInt("MAX_PLAYERS", 0),
		MaxRounds:      getenvInt("MAX_ROUNDS", 0),
	}
}
