package service

import (
	"context"
	"time"

	"github.com/mizuojisan/geoquest/game/geo"
	"github.com/mizuojisan/geoquest/game/racing"
	"github.com/mizuojisan/geoquest/game/rpg"
)

// Mode selects which engine a session's position updates drive.
type Mode string

const (
	ModeRPG    Mode = "rpg"
	ModeRacing Mode = "racing"
)

// GameService defines all game-related operations. Engine-level
// failures (bad index, no battle, not racing, insufficient funds) ride
// inside the returned result records as error fields; Go errors are
// reserved for session and content problems.
type GameService interface {
	// Session management
	CreateSession(ctx context.Context, packName string) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error
	SetMode(ctx context.Context, sessionID string, mode Mode) (*ModeResult, error)

	// Position updates route to the active engine
	UpdatePosition(ctx context.Context, sessionID string, pos geo.Position) (*PositionResult, error)

	// RPG operations
	BattleAction(ctx context.Context, sessionID, action string, skillIndex int) (*rpg.BattleActionResult, error)
	CollectItem(ctx context.Context, sessionID string) (*rpg.CollectResult, error)
	VisitPOI(ctx context.Context, sessionID string, index int) (*rpg.VisitResult, error)
	RPGStatus(ctx context.Context, sessionID string) (*rpg.Status, error)

	// Racing operations
	StartRace(ctx context.Context, sessionID string, courseIndex int) (*racing.StartResult, error)
	FinishRace(ctx context.Context, sessionID string) (*racing.FinishResult, error)
	SelectCourse(ctx context.Context, sessionID string, index int) (*racing.SelectResult, error)
	SetCheckpoint(ctx context.Context, sessionID string, pos geo.Position) (*racing.SetCheckpointResult, error)
	GenerateCourse(ctx context.Context, sessionID string, center geo.Position, radius float64) (*racing.GenerateResult, error)
	BuyVehicle(ctx context.Context, sessionID string, index int) (*racing.BuyResult, error)
	ChangeVehicle(ctx context.Context, sessionID string) (*racing.ChangeVehicleResult, error)
	VehicleShop(ctx context.Context, sessionID string) ([]racing.ShopEntry, error)
	Leaderboard(ctx context.Context, sessionID string) (map[string][]racing.LeaderboardEntry, error)
	RacingStatus(ctx context.Context, sessionID string) (*racing.Status, error)

	// Content packs
	ListPacks(ctx context.Context) ([]*PackInfo, error)
	SavePack(ctx context.Context, name string, raw []byte) error
}

// SessionManager defines session storage operations.
type SessionManager interface {
	Create(id, packName string, rpgGame *rpg.Game, racingGame *racing.Game) (*Session, error)
	Get(id string) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
	Count() int
}

// ContentManager loads named content packs and builds engine pairs
// from them.
type ContentManager interface {
	BuildEngines(packName string) (*rpg.Game, *racing.Game, error)
	ListPacks() ([]*PackInfo, error)
	SavePack(name string, raw []byte) error
	DefaultName() string
}

// Session is one player's pair of engines plus the mode flag deciding
// which engine position updates drive.
type Session struct {
	ID             string
	Mode           Mode
	Pack           string
	RPG            *rpg.Game
	Racing         *racing.Game
	CreatedAt      time.Time
	LastAccessedAt time.Time
}
