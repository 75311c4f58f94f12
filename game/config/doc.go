// Package config provides content pack management for GeoQuest.
//
// The config package handles:
//   - Loading content packs from JSON files
//   - Pack validation and caching
//   - Building fresh engine pairs from a pack
//   - Default pack selection
//
// Pack Format:
//
// Content packs are stored as JSON files in the packs directory. Each
// pack bundles the data tables for both engines:
//
//	{
//	  "name": "classic",
//	  "description": "The standard world",
//	  "rpg": { "enemies": [...], "items": [...], "quests": [...] },
//	  "racing": { "vehicles": [...], "courses": [...] }
//	}
//
// Either section may be omitted; the omitted engine falls back to its
// built-in defaults. With no pack files at all, the manager serves a
// built-in "default" pack, so a fresh install works immediately.
//
// Usage:
//
//	manager, err := config.NewManager("packs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	rpgGame, racingGame, err := manager.BuildEngines(manager.DefaultName())
package config
