// Package rpg implements the exploration game engine for GeoQuest.
//
// The rpg package implements the game mechanics including:
//   - Distance-based experience from real map movement
//   - Random enemy encounters and turn-based battles
//   - Level progression with randomized stat gains and skill learning
//   - Item collection, quests, and points of interest
//
// Core Types:
//
// Game is the engine; one instance holds one player's complete RPG
// state. Content carries the data tables (enemies, items, skills,
// quests, POIs) the engine runs on, so packs can swap the world
// without touching the mechanics. Result records (MoveResult,
// BattleActionResult, VisitResult, ...) are what every operation
// returns.
//
// Error Convention:
//
// The engine never returns Go errors from gameplay operations. A
// request that cannot be honored (acting with no battle open, visiting
// a POI index that does not exist) comes back as a result record with
// its Error field set and no state changed. Go errors appear only at
// construction time, for invalid content.
//
// Usage:
//
//	game, err := rpg.New(nil) // nil content = built-in defaults
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result := game.MovePlayer(geo.Position{Lat: 35.68, Lng: 139.65})
//	if result.Encounter != nil {
//		outcome := game.BattleAction("attack", 0)
//		_ = outcome
//	}
//
// Determinism:
//
// All randomness flows through the *rand.Rand passed to NewWithRand,
// so tests can replay exact encounter rolls, damage spreads, and
// level-up gains.
package rpg
