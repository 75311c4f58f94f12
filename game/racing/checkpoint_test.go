package racing

import (
	"math"
	"testing"
	"time"

	"github.com/mizuojisan/geoquest/game/geo"
)

func TestSetCheckpointAutoIncrement(t *testing.T) {
	g := newTestGame(t, scriptRand())

	first := g.SetCheckpoint(geo.Position{Lat: 35.0, Lng: 139.0})
	if first.Checkpoint.ID != 1 || first.TotalCheckpoints != 1 {
		t.Errorf("first checkpoint = %+v", first)
	}
	if first.Message != "Checkpoint 1 set!" {
		t.Errorf("message = %q", first.Message)
	}

	second := g.SetCheckpoint(geo.Position{Lat: 35.1, Lng: 139.1})
	if second.Checkpoint.ID != 2 || second.TotalCheckpoints != 2 {
		t.Errorf("second checkpoint = %+v", second)
	}
}

func TestCheckCheckpointNotRacing(t *testing.T) {
	g := newTestGame(t, scriptRand())
	g.SetCheckpoint(geo.Position{Lat: 35.0, Lng: 139.0})

	if result := g.CheckCheckpoint(geo.Position{Lat: 35.0, Lng: 139.0}); result != nil {
		t.Errorf("checkpoint registered outside a race: %+v", result)
	}
}

func TestCheckCheckpointFirstMatchWins(t *testing.T) {
	g := newTestGame(t, scriptRand())
	pos := geo.Position{Lat: 35.0, Lng: 139.0}
	g.SetCheckpoint(pos)
	g.SetCheckpoint(pos) // same spot, both in range
	stubClock(g)
	g.StartRace(0)

	result := g.CheckCheckpoint(pos)
	if result == nil {
		t.Fatal("no checkpoint registered")
	}
	if result.Message != "Passed checkpoint 1!" {
		t.Errorf("message = %q", result.Message)
	}
	if !g.checkpoints[0].Hit || g.checkpoints[1].Hit {
		t.Errorf("hit flags = %v/%v, want true/false", g.checkpoints[0].Hit, g.checkpoints[1].Hit)
	}
}

func TestCheckCheckpointOutOfRange(t *testing.T) {
	g := newTestGame(t, scriptRand())
	g.SetCheckpoint(geo.Position{Lat: 35.0, Lng: 139.0})
	stubClock(g)
	g.StartRace(0)

	// A kilometer away is well outside the hit radius.
	far := geo.Offset(geo.Position{Lat: 35.0, Lng: 139.0}, 1.0, 0)
	if result := g.CheckCheckpoint(far); result != nil {
		t.Errorf("distant position registered: %+v", result)
	}
}

func TestRaceLapFlow(t *testing.T) {
	g := newTestGame(t, scriptRand())
	a := geo.Position{Lat: 35.0, Lng: 139.0}
	b := geo.Offset(a, 1.0, math.Pi/2)
	g.SetCheckpoint(a)
	g.SetCheckpoint(b)
	now := stubClock(g)

	g.StartRace(0) // City Street Circuit, 2 laps

	result := g.UpdatePosition(a)
	if result == nil || result.Message != "Passed checkpoint 1!" {
		t.Fatalf("first hit = %+v", result)
	}
	if result.CheckpointsRemaining != 1 {
		t.Errorf("remaining = %d, want 1", result.CheckpointsRemaining)
	}

	// Already hit; nothing further registers here.
	if result := g.UpdatePosition(a); result != nil {
		t.Errorf("re-hit registered: %+v", result)
	}

	*now = now.Add(30 * time.Second)
	result = g.UpdatePosition(b)
	if result == nil {
		t.Fatal("lap completion returned nil")
	}
	if result.LapTime != 30000 || result.CurrentLap != 2 || result.TotalLaps != 2 {
		t.Errorf("lap result = %+v", result)
	}
	if result.Message != "Lap 1 complete! Time: 00:30.00" {
		t.Errorf("message = %q", result.Message)
	}
	if g.checkpoints[0].Hit || g.checkpoints[1].Hit {
		t.Error("hit flags not reset after lap")
	}

	// Final lap; the race finishes on the last checkpoint.
	*now = now.Add(10 * time.Second)
	if result := g.UpdatePosition(a); result == nil {
		t.Fatal("no result on lap 2 first checkpoint")
	}
	*now = now.Add(15 * time.Second)
	result = g.UpdatePosition(b)
	if result == nil || result.Finished == nil {
		t.Fatalf("final checkpoint did not finish the race: %+v", result)
	}
	// The lap timer restarted at the lap boundary.
	if result.Finished.TotalTime != 25000 {
		t.Errorf("final time = %d, want 25000", result.Finished.TotalTime)
	}
	if g.IsRacing() {
		t.Error("still racing after finish")
	}
}

func TestUpdatePositionMovesWithoutRace(t *testing.T) {
	g := newTestGame(t, scriptRand())
	pos := geo.Position{Lat: 36.0, Lng: 140.0}

	if result := g.UpdatePosition(pos); result != nil {
		t.Errorf("got checkpoint result outside a race: %+v", result)
	}
	if g.player.Position != pos {
		t.Errorf("position = %+v, want %+v", g.player.Position, pos)
	}
}

func TestUpdatePositionRollsSpeed(t *testing.T) {
	// Speed roll 0.5: floor(0.5*120*0.8) + 24 = 72.
	g := newTestGame(t, scriptRand(floatRoll(0.5)))
	g.SetCheckpoint(geo.Position{Lat: 35.0, Lng: 139.0})
	stubClock(g)
	g.StartRace(0)

	g.UpdatePosition(geo.Offset(geo.Position{Lat: 35.0, Lng: 139.0}, 1.0, 0))
	if g.currentSpeed != 72 {
		t.Errorf("speed = %d, want 72", g.currentSpeed)
	}
}

func TestGenerateCourse(t *testing.T) {
	// Count roll 2 gives 6 checkpoints; distance rolls of 0.5 put
	// each at 75% of the radius.
	rolls := []int64{intnRoll(2)}
	for i := 0; i < 6; i++ {
		rolls = append(rolls, floatRoll(0.5))
	}
	g := newTestGame(t, scriptRand(rolls...))
	g.SetCheckpoint(geo.Position{Lat: 35.0, Lng: 139.0}) // cleared by generation

	center := geo.Position{Lat: 35.6762, Lng: 139.6503}
	result := g.GenerateCourse(center, 2.0)

	if result.Message != "Generated a course with 6 checkpoints!" {
		t.Errorf("message = %q", result.Message)
	}
	if len(g.checkpoints) != 6 {
		t.Fatalf("checkpoint count = %d, want 6", len(g.checkpoints))
	}
	for i, cp := range g.checkpoints {
		if cp.ID != i+1 {
			t.Errorf("checkpoint %d has id %d", i, cp.ID)
		}
		d := geo.Distance(center, cp.Position)
		if d < 1.4 || d > 1.6 {
			t.Errorf("checkpoint %d at %f km, want about 1.5", i, d)
		}
	}
}
