// Package racing implements the checkpoint racing engine for GeoQuest.
//
// The racing package implements the game mechanics including:
//   - Checkpoint courses placed on real map coordinates
//   - Lap timing driven by position updates
//   - Per-course best times and record rewards
//   - A vehicle shop funded by prize money
//
// Core Types:
//
// Game is the engine; one instance holds one player's complete racing
// state. Content carries the vehicle roster and course catalog so
// packs can swap them. Checkpoints are either placed one at a time
// with SetCheckpoint or synthesized as a ring with GenerateCourse.
//
// Race Flow:
//
// StartRace begins timing. Position updates within the checkpoint
// radius register checkpoints; registering all of them completes a
// lap, and the final lap settles the race. While a race is running,
// StartRace doubles as a stop button and settles immediately. Beating
// the course best time pays the reward with a record bonus.
//
// Error Convention:
//
// Like the rpg engine, gameplay failures ride inside result records as
// Error fields; Go errors are reserved for invalid content at
// construction time.
//
// Usage:
//
//	game, err := racing.New(nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	game.GenerateCourse(geo.Position{Lat: 35.68, Lng: 139.65}, 1.0)
//	game.StartRace(0)
//	result := game.UpdatePosition(nextFix)
//	if result != nil && result.Finished != nil {
//		fmt.Println(result.Finished.FormattedTime)
//	}
package racing
