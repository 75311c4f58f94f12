package service

import (
	"time"

	"github.com/mizuojisan/geoquest/game/racing"
	"github.com/mizuojisan/geoquest/game/rpg"
)

// SessionInfo provides display information about a game session,
// including both engines' snapshots.
type SessionInfo struct {
	ID             string         `json:"id"`
	Pack           string         `json:"pack"`
	Mode           Mode           `json:"mode"`
	CreatedAt      time.Time      `json:"created_at"`
	LastAccessedAt time.Time      `json:"last_accessed_at"`
	RPG            *rpg.Status    `json:"rpg_status"`
	Racing         *racing.Status `json:"racing_status"`
}

// ModeResult reports a mode switch.
type ModeResult struct {
	Mode    Mode   `json:"mode"`
	Message string `json:"message"`
}

// PositionResult is a position update routed to the active engine:
// exactly one of the two engine fields is populated. Racing stays nil
// when the update satisfied no checkpoint.
type PositionResult struct {
	Mode   Mode                     `json:"mode"`
	RPG    *rpg.MoveResult          `json:"rpg,omitempty"`
	Racing *racing.CheckpointResult `json:"racing,omitempty"`
}

// PackInfo describes one loadable content pack.
type PackInfo struct {
	Filename    string `json:"filename"`
	PackID      string `json:"pack_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Enemies     int    `json:"enemies"`
	Vehicles    int    `json:"vehicles"`
	Courses     int    `json:"courses"`
}
