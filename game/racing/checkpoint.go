package racing

import (
	"fmt"

	"github.com/mizuojisan/geoquest/game/geo"
)

// SetCheckpoint appends a checkpoint with an auto-incremented id.
func (g *Game) SetCheckpoint(pos geo.Position) SetCheckpointResult {
	checkpoint := Checkpoint{
		ID:       len(g.checkpoints) + 1,
		Position: pos,
	}
	g.checkpoints = append(g.checkpoints, checkpoint)

	return SetCheckpointResult{
		Message:          fmt.Sprintf("Checkpoint %d set!", checkpoint.ID),
		Checkpoint:       checkpoint,
		TotalCheckpoints: len(g.checkpoints),
	}
}

// CheckCheckpoint scans checkpoints in list order for the first unhit
// one within range of pos and marks it hit. First match wins, not
// nearest. Hitting the last outstanding checkpoint completes the lap.
// Returns nil when not racing or nothing matched.
func (g *Game) CheckCheckpoint(pos geo.Position) *CheckpointResult {
	if !g.isRacing {
		return nil
	}

	for i := range g.checkpoints {
		checkpoint := &g.checkpoints[i]
		if checkpoint.Hit {
			continue
		}
		if geo.Distance(pos, checkpoint.Position) >= CheckpointRadiusKm {
			continue
		}

		checkpoint.Hit = true
		g.currentRace.CheckpointsHit++

		if g.currentRace.CheckpointsHit >= len(g.checkpoints) {
			return g.CompleteLap()
		}

		return &CheckpointResult{
			Message:              fmt.Sprintf("Passed checkpoint %d!", checkpoint.ID),
			CheckpointsRemaining: len(g.checkpoints) - g.currentRace.CheckpointsHit,
		}
	}
	return nil
}

// CompleteLap records the lap time, resets every checkpoint and the
// hit counter, and either restarts the lap timer or, past the final
// lap, finishes the race.
func (g *Game) CompleteLap() *CheckpointResult {
	lapTime := g.now().Sub(g.raceStartTime).Milliseconds()
	g.currentRace.LapTimes = append(g.currentRace.LapTimes, lapTime)
	g.currentLap++

	for i := range g.checkpoints {
		g.checkpoints[i].Hit = false
	}
	g.currentRace.CheckpointsHit = 0

	if g.currentLap > g.currentRace.TotalLaps {
		finished := g.FinishRace()
		return &CheckpointResult{
			Message:  finished.Message,
			Finished: &finished,
		}
	}

	g.currentRace.CurrentLap = g.currentLap
	g.raceStartTime = g.now() // lap timer restarts

	return &CheckpointResult{
		Message:    fmt.Sprintf("Lap %d complete! Time: %s", g.currentLap-1, FormatTime(lapTime)),
		LapTime:    lapTime,
		CurrentLap: g.currentLap,
		TotalLaps:  g.currentRace.TotalLaps,
	}
}
