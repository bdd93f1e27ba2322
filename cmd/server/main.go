package main

import (
	"log"

	httpapi "pickup-party/internal/api/http"
	"pickup-party/internal/api/ws"
	"pickup-party/internal/config"
	"pickup-party/internal/room"
	"pickup-party/internal/rules"
	"pickup-party/internal/store"
)

func main() {
	cfg := config.Load()

	rulesets := rules.Builtins()
	if cfg.RulesetsFile != "" {
		var err error
		rulesets, err = rules.FromYAML(cfg.RulesetsFile)
		if err != nil {
			log.Fatalf("load rulesets: %v", err)
		}
	}
	if rs, ok := rulesets[cfg.DefaultRuleset]; ok {
		if cfg.MaxPlayers > 0 {
			rs.MaxPlayers = cfg.MaxPlayers
		}
		if cfg.MaxRounds > 0 {
			rs.MaxRounds = cfg.MaxRounds
		}
		rulesets[cfg.DefaultRuleset] = rs
	} else {
		log.Fatalf("default ruleset %q not defined", cfg.DefaultRuleset)
	}

	mem := store.NewMemoryStore()
	rm := room.NewManager(mem, cfg, rulesets)
	hub := ws.NewHub()
	rm.SetHub(hub)
	hub.SetRoomManager(rm)

	r := httpapi.SetupRouter(rm, hub)

	log.Printf("listening on %s", cfg.HTTPAddr)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal(err)
	}
}
