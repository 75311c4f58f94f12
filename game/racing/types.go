package racing

import (
	"time"

	"github.com/mizuojisan/geoquest/game/geo"
)

// Tuning constants for races and course generation.
const (
	CheckpointRadiusKm = 0.05
	MinCheckpoints     = 4
	ExtraCheckpoints   = 4
	RecordBonusScale   = 1.5
	ExpRewardDivisor   = 10
	MinSpeedShare      = 0.2
	HistoryWindow      = 10
	LeaderboardSize    = 5
)

// Profile is the racing player.
type Profile struct {
	Name           string       `json:"name"`
	Position       geo.Position `json:"position"`
	CurrentVehicle int          `json:"currentVehicle"`
	Money          int          `json:"money"`
	Experience     int          `json:"experience"`
	Level          int          `json:"level"`
}

// Vehicle is a roster entry; the owned flag is mutated only by
// purchase.
type Vehicle struct {
	Name         string  `json:"name"`
	MaxSpeed     int     `json:"maxSpeed"`
	Acceleration float64 `json:"acceleration"`
	Handling     float64 `json:"handling"`
	Price        int     `json:"price"`
	Owned        bool    `json:"owned"`
	Description  string  `json:"description"`
}

// Course is a fixed catalog entry, never mutated at runtime.
type Course struct {
	Name        string `json:"name"`
	Difficulty  string `json:"difficulty"`
	Laps        int    `json:"laps"`
	Description string `json:"description"`
	Reward      int    `json:"reward"`
}

// Checkpoint is a lap gate. Hit flags reset at the start of every lap.
type Checkpoint struct {
	ID       int          `json:"id"`
	Position geo.Position `json:"position"`
	Hit      bool         `json:"hit"`
}

// Race is the transient state of the active race; it exists only while
// isRacing and is destroyed on finish.
type Race struct {
	Course           Course    `json:"course"`
	StartTime        time.Time `json:"startTime"`
	LapTimes         []int64   `json:"lapTimes"`
	CurrentLap       int       `json:"currentLap"`
	TotalLaps        int       `json:"totalLaps"`
	CheckpointsHit   int       `json:"checkpointsHit"`
	TotalCheckpoints int       `json:"totalCheckpoints"`
}

// Record is one append-only race history entry.
type Record struct {
	ID      string    `json:"id"`
	Course  string    `json:"course"`
	TimeMs  int64     `json:"time"`
	Vehicle string    `json:"vehicle"`
	Reward  int       `json:"reward"`
	Date    time.Time `json:"date"`
}

// ChangeVehicleResult reports a vehicle switch. A soft failure (only
// one vehicle owned) carries just a message.
type ChangeVehicleResult struct {
	Message string   `json:"message"`
	Vehicle *Vehicle `json:"vehicle,omitempty"`
}

// BuyResult reports a shop purchase.
type BuyResult struct {
	Error          string   `json:"error,omitempty"`
	Message        string   `json:"message,omitempty"`
	Vehicle        *Vehicle `json:"vehicle,omitempty"`
	RemainingMoney int      `json:"remainingMoney,omitempty"`
}

// LevelUpResult reports a racing level-up.
type LevelUpResult struct {
	NewLevel int    `json:"newLevel"`
	Message  string `json:"message"`
}

// FinishResult reports a completed (or aborted) race.
type FinishResult struct {
	Error         string         `json:"error,omitempty"`
	Message       string         `json:"message,omitempty"`
	TotalTime     int64          `json:"totalTime,omitempty"`
	FormattedTime string         `json:"formattedTime,omitempty"`
	IsNewRecord   bool           `json:"isNewRecord,omitempty"`
	Reward        int            `json:"reward,omitempty"`
	ExpGain       int            `json:"expGain,omitempty"`
	LevelUp       *LevelUpResult `json:"levelUp,omitempty"`
}

// StartResult reports a race start. When a race was already running the
// call acts as "stop" and Finished carries the finish record instead.
type StartResult struct {
	Message  string        `json:"message,omitempty"`
	Course   *Course       `json:"course,omitempty"`
	Vehicle  *Vehicle      `json:"vehicle,omitempty"`
	Finished *FinishResult `json:"finished,omitempty"`
}

// CheckpointResult reports a checkpoint pass, a lap completion, or --
// on the final lap -- the race finish.
type CheckpointResult struct {
	Message              string        `json:"message"`
	CheckpointsRemaining int           `json:"checkpointsRemaining,omitempty"`
	LapTime              int64         `json:"lapTime,omitempty"`
	CurrentLap           int           `json:"currentLap,omitempty"`
	TotalLaps            int           `json:"totalLaps,omitempty"`
	Finished             *FinishResult `json:"finished,omitempty"`
}

// SetCheckpointResult reports a manually placed checkpoint.
type SetCheckpointResult struct {
	Message          string     `json:"message"`
	Checkpoint       Checkpoint `json:"checkpoint"`
	TotalCheckpoints int        `json:"totalCheckpoints"`
}

// GenerateResult reports a synthesized course.
type GenerateResult struct {
	Message     string       `json:"message"`
	Checkpoints []Checkpoint `json:"checkpoints"`
}

// SelectResult reports a course selection.
type SelectResult struct {
	Error   string  `json:"error,omitempty"`
	Message string  `json:"message,omitempty"`
	Course  *Course `json:"course,omitempty"`
}

// ShopEntry annotates a vehicle with its roster index and
// affordability.
type ShopEntry struct {
	Index int `json:"index"`
	Vehicle
	CanBuy bool `json:"canBuy"`
}

// LeaderboardEntry is one ranked run on a course.
type LeaderboardEntry struct {
	TimeMs  int64     `json:"time"`
	Vehicle string    `json:"vehicle"`
	Date    time.Time `json:"date"`
}

// Status is the read-only racing snapshot for display.
type Status struct {
	Name           string           `json:"name"`
	Level          int              `json:"level"`
	Experience     int              `json:"experience"`
	Money          int              `json:"money"`
	CurrentVehicle Vehicle          `json:"currentVehicle"`
	OwnedVehicles  []Vehicle        `json:"ownedVehicles"`
	IsRacing       bool             `json:"isRacing"`
	CurrentSpeed   int              `json:"currentSpeed"`
	CurrentRace    *Race            `json:"currentRace"`
	Checkpoints    []Checkpoint     `json:"checkpoints"`
	BestTimes      map[string]int64 `json:"bestTimes"`
	RaceHistory    []Record         `json:"raceHistory"`
	Position       geo.Position     `json:"position"`
}
