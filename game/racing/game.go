package racing

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/mizuojisan/geoquest/game/geo"
)

// Game is the racing engine. Like the RPG engine it runs synchronously
// and reports engine-level failures as Error fields on result records.
type Game struct {
	player        Profile
	vehicles      []Vehicle
	courses       []Course
	checkpoints   []Checkpoint
	currentRace   *Race
	raceHistory   []Record
	bestTimes     map[string]int64
	currentSpeed  int
	raceStartTime time.Time
	isRacing      bool
	currentLap    int
	totalLaps     int
	rng           *rand.Rand
	now           func() time.Time
}

// New creates an engine from the provided content. Passing nil uses
// the built-in defaults.
func New(content *Content) (*Game, error) {
	return NewWithRand(content, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewWithRand is New with an explicit random source.
func NewWithRand(content *Content, rng *rand.Rand) (*Game, error) {
	if content == nil {
		content = DefaultContent()
	}
	if err := ValidateContent(content); err != nil {
		return nil, err
	}

	player := defaultStartingProfile()
	if content.Start != nil {
		player = *content.Start
	}

	vehicles := make([]Vehicle, len(content.Vehicles))
	copy(vehicles, content.Vehicles)

	return &Game{
		player:    player,
		vehicles:  vehicles,
		courses:   content.Courses,
		bestTimes: make(map[string]int64),
		totalLaps: 3,
		rng:       rng,
		now:       time.Now,
	}, nil
}

// ChangeVehicle advances to the next owned vehicle in roster order,
// wrapping around. With at most one vehicle owned it fails softly.
func (g *Game) ChangeVehicle() ChangeVehicleResult {
	owned := 0
	for _, v := range g.vehicles {
		if v.Owned {
			owned++
		}
	}
	if owned <= 1 {
		return ChangeVehicleResult{Message: "You own no other vehicles. Visit the shop to buy one."}
	}

	g.player.CurrentVehicle = (g.player.CurrentVehicle + 1) % len(g.vehicles)
	for !g.vehicles[g.player.CurrentVehicle].Owned {
		g.player.CurrentVehicle = (g.player.CurrentVehicle + 1) % len(g.vehicles)
	}

	current := g.vehicles[g.player.CurrentVehicle]
	return ChangeVehicleResult{
		Message: fmt.Sprintf("Switched to %s!", current.Name),
		Vehicle: &current,
	}
}

// BuyVehicle purchases a roster entry by index.
func (g *Game) BuyVehicle(index int) BuyResult {
	if index < 0 || index >= len(g.vehicles) {
		return BuyResult{Error: "no such vehicle"}
	}

	vehicle := &g.vehicles[index]
	if vehicle.Owned {
		return BuyResult{Error: "you already own that vehicle"}
	}
	if g.player.Money < vehicle.Price {
		return BuyResult{Error: fmt.Sprintf("not enough money: need %d, have %d", vehicle.Price, g.player.Money)}
	}

	g.player.Money -= vehicle.Price
	vehicle.Owned = true

	bought := *vehicle
	return BuyResult{
		Message:        fmt.Sprintf("Bought %s!", bought.Name),
		Vehicle:        &bought,
		RemainingMoney: g.player.Money,
	}
}

// StartRace begins a race on the selected course. Called while already
// racing it acts as the stop action and finishes the current race
// instead. An out-of-range course index falls back to course 0.
func (g *Game) StartRace(courseIndex int) StartResult {
	if g.isRacing {
		finished := g.FinishRace()
		return StartResult{Message: finished.Message, Finished: &finished}
	}

	course := g.courses[0]
	if courseIndex >= 0 && courseIndex < len(g.courses) {
		course = g.courses[courseIndex]
	}

	g.currentRace = &Race{
		Course:           course,
		StartTime:        g.now(),
		LapTimes:         []int64{},
		CurrentLap:       1,
		TotalLaps:        course.Laps,
		TotalCheckpoints: len(g.checkpoints),
	}
	g.isRacing = true
	g.raceStartTime = g.now()
	g.currentLap = 1
	g.currentSpeed = 0

	vehicle := g.vehicles[g.player.CurrentVehicle]
	return StartResult{
		Message: fmt.Sprintf("Race started on %s! %d laps.", course.Name, course.Laps),
		Course:  &course,
		Vehicle: &vehicle,
	}
}

// FinishRace settles the active race: best-time check, reward with a
// new-record bonus, experience, a single level-up check, and a history
// entry.
func (g *Game) FinishRace() FinishResult {
	if !g.isRacing || g.currentRace == nil {
		return FinishResult{Error: "no race in progress"}
	}

	totalTime := g.now().Sub(g.raceStartTime).Milliseconds()
	course := g.currentRace.Course

	best, hasBest := g.bestTimes[course.Name]
	isNewRecord := !hasBest || totalTime < best
	if isNewRecord {
		g.bestTimes[course.Name] = totalTime
	}

	reward := course.Reward
	if isNewRecord {
		reward = int(float64(reward) * RecordBonusScale)
	}

	expGain := course.Reward / ExpRewardDivisor
	g.player.Money += reward
	g.player.Experience += expGain

	levelUp := g.checkLevelUp()

	g.raceHistory = append(g.raceHistory, Record{
		ID:      uuid.NewString(),
		Course:  course.Name,
		TimeMs:  totalTime,
		Vehicle: g.vehicles[g.player.CurrentVehicle].Name,
		Reward:  reward,
		Date:    g.now(),
	})

	g.isRacing = false
	g.currentRace = nil

	return FinishResult{
		Message:       fmt.Sprintf("Race complete! Time: %s", FormatTime(totalTime)),
		TotalTime:     totalTime,
		FormattedTime: FormatTime(totalTime),
		IsNewRecord:   isNewRecord,
		Reward:        reward,
		ExpGain:       expGain,
		LevelUp:       levelUp,
	}
}

// checkLevelUp applies at most one level-up step against the
// level*100 threshold. Unlike the RPG engine this deliberately does
// not loop.
func (g *Game) checkLevelUp() *LevelUpResult {
	expNeeded := g.player.Level * 100
	if g.player.Experience < expNeeded {
		return nil
	}

	g.player.Level++
	g.player.Experience -= expNeeded
	return &LevelUpResult{
		NewLevel: g.player.Level,
		Message:  fmt.Sprintf("Level up! You are now level %d!", g.player.Level),
	}
}

// SelectCourse validates a catalog index and returns the course.
func (g *Game) SelectCourse(index int) SelectResult {
	if index < 0 || index >= len(g.courses) {
		return SelectResult{Error: "no such course"}
	}

	course := g.courses[index]
	return SelectResult{
		Message: fmt.Sprintf("Selected %s. Difficulty: %s", course.Name, course.Difficulty),
		Course:  &course,
	}
}

// UpdatePosition moves the player. While racing it also rerolls the
// current speed for the active vehicle and scans checkpoints,
// returning the checkpoint result when one was satisfied.
func (g *Game) UpdatePosition(pos geo.Position) *CheckpointResult {
	g.player.Position = pos

	if !g.isRacing {
		return nil
	}

	vehicle := g.vehicles[g.player.CurrentVehicle]
	maxSpeed := float64(vehicle.MaxSpeed)
	g.currentSpeed = minInt(vehicle.MaxSpeed,
		int(math.Floor(g.rng.Float64()*maxSpeed*(1-MinSpeedShare)))+int(maxSpeed*MinSpeedShare))

	return g.CheckCheckpoint(pos)
}

// GenerateCourse clears the checkpoint list and synthesizes 4 to 7
// checkpoints evenly spaced in angle around center, each offset by
// 50-100% of radius (km).
func (g *Game) GenerateCourse(center geo.Position, radius float64) GenerateResult {
	g.checkpoints = nil

	count := MinCheckpoints + g.rng.Intn(ExtraCheckpoints)
	for i := 0; i < count; i++ {
		angle := float64(i) / float64(count) * 2 * math.Pi
		distance := radius * (0.5 + g.rng.Float64()*0.5)

		g.checkpoints = append(g.checkpoints, Checkpoint{
			ID:       i + 1,
			Position: geo.Offset(center, distance, angle),
		})
	}

	return GenerateResult{
		Message:     fmt.Sprintf("Generated a course with %d checkpoints!", count),
		Checkpoints: g.checkpoints,
	}
}

// Leaderboard groups race history by course, each group sorted by time
// ascending and cut to the top 5.
func (g *Game) Leaderboard() map[string][]LeaderboardEntry {
	rankings := make(map[string][]LeaderboardEntry)
	for _, record := range g.raceHistory {
		rankings[record.Course] = append(rankings[record.Course], LeaderboardEntry{
			TimeMs:  record.TimeMs,
			Vehicle: record.Vehicle,
			Date:    record.Date,
		})
	}

	for course, entries := range rankings {
		sort.Slice(entries, func(i, j int) bool { return entries[i].TimeMs < entries[j].TimeMs })
		if len(entries) > LeaderboardSize {
			entries = entries[:LeaderboardSize]
		}
		rankings[course] = entries
	}

	return rankings
}

// VehicleShop lists the roster annotated with affordability.
func (g *Game) VehicleShop() []ShopEntry {
	shop := make([]ShopEntry, 0, len(g.vehicles))
	for i, v := range g.vehicles {
		shop = append(shop, ShopEntry{
			Index:   i,
			Vehicle: v,
			CanBuy:  !v.Owned && g.player.Money >= v.Price,
		})
	}
	return shop
}

// PlayerStatus returns a display snapshot including the last ten
// history entries.
func (g *Game) PlayerStatus() Status {
	var owned []Vehicle
	for _, v := range g.vehicles {
		if v.Owned {
			owned = append(owned, v)
		}
	}

	history := g.raceHistory
	if len(history) > HistoryWindow {
		history = history[len(history)-HistoryWindow:]
	}

	return Status{
		Name:           g.player.Name,
		Level:          g.player.Level,
		Experience:     g.player.Experience,
		Money:          g.player.Money,
		CurrentVehicle: g.vehicles[g.player.CurrentVehicle],
		OwnedVehicles:  owned,
		IsRacing:       g.isRacing,
		CurrentSpeed:   g.currentSpeed,
		CurrentRace:    g.currentRace,
		Checkpoints:    g.checkpoints,
		BestTimes:      g.bestTimes,
		RaceHistory:    history,
		Position:       g.player.Position,
	}
}

// IsRacing reports whether a race is active.
func (g *Game) IsRacing() bool {
	return g.isRacing
}

// FormatTime renders milliseconds as MM:SS.cc.
func FormatTime(ms int64) string {
	seconds := ms / 1000
	minutes := seconds / 60
	return fmt.Sprintf("%02d:%02d.%02d", minutes, seconds%60, (ms%1000)/10)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
