package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/mizuojisan/geoquest/game/geo"
	"github.com/mizuojisan/geoquest/game/racing"
	"github.com/mizuojisan/geoquest/game/rpg"
)

// gameServiceImpl implements the GameService interface.
type gameServiceImpl struct {
	sessions SessionManager
	content  ContentManager
	mu       sync.RWMutex
}

// NewGameService creates a new game service instance.
func NewGameService(sessions SessionManager, content ContentManager) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		content:  content,
	}
}

// CreateSession builds a fresh engine pair from the named content pack
// and registers a session around it. An empty pack name uses the
// default pack.
func (s *gameServiceImpl) CreateSession(ctx context.Context, packName string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if packName == "" {
		packName = s.content.DefaultName()
	}

	rpgGame, racingGame, err := s.content.BuildEngines(packName)
	if err != nil {
		return nil, fmt.Errorf("failed to build engines for pack %s: %w", packName, err)
	}

	// Let the session manager generate the ID.
	session, err := s.sessions.Create("", packName, rpgGame, racingGame)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return sessionInfo(session), nil
}

// GetSession retrieves session information.
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	return sessionInfo(session), nil
}

// ListSessions returns all active sessions.
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, sessionInfo(sess))
	}
	return result, nil
}

// DeleteSession removes a session.
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessions.Delete(sessionID)
}

// SetMode switches which engine the session's position updates drive.
func (s *gameServiceImpl) SetMode(ctx context.Context, sessionID string, mode Mode) (*ModeResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if mode != ModeRPG && mode != ModeRacing {
		return nil, fmt.Errorf("unknown mode %q", mode)
	}

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	session.Mode = mode
	return &ModeResult{
		Mode:    mode,
		Message: fmt.Sprintf("Switched to %s mode", mode),
	}, nil
}

// UpdatePosition forwards a position to the session's active engine.
// Both engines track position; only the active one reacts to the move.
func (s *gameServiceImpl) UpdatePosition(ctx context.Context, sessionID string, pos geo.Position) (*PositionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	result := &PositionResult{Mode: session.Mode}
	switch session.Mode {
	case ModeRacing:
		result.Racing = session.Racing.UpdatePosition(pos)
	default:
		moved := session.RPG.MovePlayer(pos)
		result.RPG = &moved
	}
	return result, nil
}

// BattleAction resolves one battle round in the session's RPG engine.
func (s *gameServiceImpl) BattleAction(ctx context.Context, sessionID, action string, skillIndex int) (*rpg.BattleActionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	result := session.RPG.BattleAction(action, skillIndex)
	return &result, nil
}

// CollectItem picks up a random item.
func (s *gameServiceImpl) CollectItem(ctx context.Context, sessionID string) (*rpg.CollectResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	result := session.RPG.CollectItem()
	return &result, nil
}

// VisitPOI visits a nearby point of interest by index.
func (s *gameServiceImpl) VisitPOI(ctx context.Context, sessionID string, index int) (*rpg.VisitResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	result := session.RPG.VisitPOI(index)
	return &result, nil
}

// RPGStatus returns the RPG snapshot.
func (s *gameServiceImpl) RPGStatus(ctx context.Context, sessionID string) (*rpg.Status, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	status := session.RPG.PlayerStatus()
	return &status, nil
}

// StartRace starts (or, while racing, stops) a race.
func (s *gameServiceImpl) StartRace(ctx context.Context, sessionID string, courseIndex int) (*racing.StartResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	result := session.Racing.StartRace(courseIndex)
	return &result, nil
}

// FinishRace settles the active race.
func (s *gameServiceImpl) FinishRace(ctx context.Context, sessionID string) (*racing.FinishResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	result := session.Racing.FinishRace()
	return &result, nil
}

// SelectCourse validates a course selection.
func (s *gameServiceImpl) SelectCourse(ctx context.Context, sessionID string, index int) (*racing.SelectResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	result := session.Racing.SelectCourse(index)
	return &result, nil
}

// SetCheckpoint places a checkpoint at the given position.
func (s *gameServiceImpl) SetCheckpoint(ctx context.Context, sessionID string, pos geo.Position) (*racing.SetCheckpointResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	result := session.Racing.SetCheckpoint(pos)
	return &result, nil
}

// GenerateCourse synthesizes a checkpoint ring around center.
func (s *gameServiceImpl) GenerateCourse(ctx context.Context, sessionID string, center geo.Position, radius float64) (*racing.GenerateResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	if radius <= 0 {
		radius = 1
	}
	result := session.Racing.GenerateCourse(center, radius)
	return &result, nil
}

// BuyVehicle purchases a shop vehicle by index.
func (s *gameServiceImpl) BuyVehicle(ctx context.Context, sessionID string, index int) (*racing.BuyResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	result := session.Racing.BuyVehicle(index)
	return &result, nil
}

// ChangeVehicle cycles to the next owned vehicle.
func (s *gameServiceImpl) ChangeVehicle(ctx context.Context, sessionID string) (*racing.ChangeVehicleResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	result := session.Racing.ChangeVehicle()
	return &result, nil
}

// VehicleShop lists the annotated vehicle roster.
func (s *gameServiceImpl) VehicleShop(ctx context.Context, sessionID string) ([]racing.ShopEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	return session.Racing.VehicleShop(), nil
}

// Leaderboard returns per-course top runs.
func (s *gameServiceImpl) Leaderboard(ctx context.Context, sessionID string) (map[string][]racing.LeaderboardEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	return session.Racing.Leaderboard(), nil
}

// RacingStatus returns the racing snapshot.
func (s *gameServiceImpl) RacingStatus(ctx context.Context, sessionID string) (*racing.Status, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	status := session.Racing.PlayerStatus()
	return &status, nil
}

// ListPacks returns available content packs.
func (s *gameServiceImpl) ListPacks(ctx context.Context) ([]*PackInfo, error) {
	return s.content.ListPacks()
}

// SavePack writes a content pack to the pack directory.
func (s *gameServiceImpl) SavePack(ctx context.Context, name string, raw []byte) error {
	return s.content.SavePack(name, raw)
}

// sessionInfo builds the display record for a session.
func sessionInfo(session *Session) *SessionInfo {
	rpgStatus := session.RPG.PlayerStatus()
	racingStatus := session.Racing.PlayerStatus()

	return &SessionInfo{
		ID:             session.ID,
		Pack:           session.Pack,
		Mode:           session.Mode,
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		RPG:            &rpgStatus,
		Racing:         &racingStatus,
	}
}
