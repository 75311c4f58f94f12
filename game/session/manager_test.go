package session

import (
	"testing"
	"time"

	"github.com/mizuojisan/geoquest/game/racing"
	"github.com/mizuojisan/geoquest/game/rpg"
	"github.com/mizuojisan/geoquest/game/service"
)

func newEngines(t *testing.T) (*rpg.Game, *racing.Game) {
	t.Helper()
	rpgGame, err := rpg.New(nil)
	if err != nil {
		t.Fatalf("rpg.New failed: %v", err)
	}
	racingGame, err := racing.New(nil)
	if err != nil {
		t.Fatalf("racing.New failed: %v", err)
	}
	return rpgGame, racingGame
}

func TestCreateGeneratesID(t *testing.T) {
	m := NewManager()
	rpgGame, racingGame := newEngines(t)

	s, err := m.Create("", "default", rpgGame, racingGame)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if len(s.ID) != 4 {
		t.Errorf("id %q has length %d, want 4", s.ID, len(s.ID))
	}
	if s.Mode != service.ModeRPG {
		t.Errorf("mode = %q, want %q", s.Mode, service.ModeRPG)
	}
	if s.Pack != "default" {
		t.Errorf("pack = %q, want default", s.Pack)
	}
	if s.RPG == nil || s.Racing == nil {
		t.Error("session missing an engine")
	}
	if m.Count() != 1 {
		t.Errorf("count = %d, want 1", m.Count())
	}
}

func TestCreateGeneratedIDsAreUnique(t *testing.T) {
	m := NewManager()

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		rpgGame, racingGame := newEngines(t)
		s, err := m.Create("", "default", rpgGame, racingGame)
		if err != nil {
			t.Fatalf("Create %d failed: %v", i, err)
		}
		if seen[s.ID] {
			t.Fatalf("duplicate id %q", s.ID)
		}
		seen[s.ID] = true
	}
}

func TestCreateDuplicateCaseInsensitive(t *testing.T) {
	m := NewManager()
	rpgGame, racingGame := newEngines(t)

	if _, err := m.Create("ABCD", "default", rpgGame, racingGame); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := m.Create("abcd", "default", rpgGame, racingGame); err != ErrSessionAlreadyExists {
		t.Errorf("err = %v, want ErrSessionAlreadyExists", err)
	}
}

func TestGetCaseInsensitive(t *testing.T) {
	m := NewManager()
	rpgGame, racingGame := newEngines(t)
	created, err := m.Create("AbCd", "default", rpgGame, racingGame)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := m.Get("ABCD")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != created {
		t.Error("Get returned a different session")
	}

	if _, err := m.Get("zzzz"); err != ErrSessionNotFound {
		t.Errorf("err = %v, want ErrSessionNotFound", err)
	}
}

func TestDelete(t *testing.T) {
	m := NewManager()
	rpgGame, racingGame := newEngines(t)
	s, _ := m.Create("", "default", rpgGame, racingGame)

	if err := m.Delete(s.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := m.Get(s.ID); err != ErrSessionNotFound {
		t.Errorf("session still present after delete")
	}
	if err := m.Delete(s.ID); err != ErrSessionNotFound {
		t.Errorf("second delete err = %v, want ErrSessionNotFound", err)
	}
}

func TestUpdateLastAccessed(t *testing.T) {
	m := NewManager()
	rpgGame, racingGame := newEngines(t)
	s, _ := m.Create("", "default", rpgGame, racingGame)

	past := time.Now().Add(-time.Hour)
	s.LastAccessedAt = past

	if err := m.UpdateLastAccessed(s.ID); err != nil {
		t.Fatalf("UpdateLastAccessed failed: %v", err)
	}
	if !s.LastAccessedAt.After(past) {
		t.Error("last accessed time not advanced")
	}

	if err := m.UpdateLastAccessed("zzzz"); err != ErrSessionNotFound {
		t.Errorf("err = %v, want ErrSessionNotFound", err)
	}
}

func TestCleanupExpiredSessions(t *testing.T) {
	m := NewManager()

	rpgGame, racingGame := newEngines(t)
	stale, _ := m.Create("old1", "default", rpgGame, racingGame)
	stale.LastAccessedAt = time.Now().Add(-48 * time.Hour)

	rpgGame, racingGame = newEngines(t)
	fresh, _ := m.Create("new1", "default", rpgGame, racingGame)

	removed := m.CleanupExpiredSessions(24 * time.Hour)
	if removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}
	if _, err := m.Get(stale.ID); err != ErrSessionNotFound {
		t.Error("stale session survived cleanup")
	}
	if _, err := m.Get(fresh.ID); err != nil {
		t.Errorf("fresh session removed: %v", err)
	}
}

func TestList(t *testing.T) {
	m := NewManager()
	for i := 0; i < 3; i++ {
		rpgGame, racingGame := newEngines(t)
		if _, err := m.Create("", "default", rpgGame, racingGame); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	if got := len(m.List()); got != 3 {
		t.Errorf("list size = %d, want 3", got)
	}
}
