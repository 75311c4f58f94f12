package rpg

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/mizuojisan/geoquest/game/geo"
)

// Game is the RPG exploration engine. Every method runs to completion
// synchronously and mutates internal state; failures are reported as
// Error fields on the returned records, never as panics or Go errors.
type Game struct {
	player        Player
	enemies       []Enemy
	items         []Item
	skillTable    map[int]string
	skillEffects  map[string]SkillEffect
	quests        []Quest
	poiTable      []POI
	nearbyPOIs    []POI
	currentBattle *Battle
	rng           *rand.Rand
}

// New creates an engine from the provided content tables. Passing nil
// uses the built-in defaults.
func New(content *Content) (*Game, error) {
	return NewWithRand(content, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewWithRand is New with an explicit random source, for deterministic
// tests and replays.
func NewWithRand(content *Content, rng *rand.Rand) (*Game, error) {
	if content == nil {
		content = DefaultContent()
	}
	if err := ValidateContent(content); err != nil {
		return nil, err
	}

	player := defaultStartingPlayer()
	if content.Start != nil {
		player = *content.Start
	}

	quests := make([]Quest, len(content.Quests))
	copy(quests, content.Quests)

	return &Game{
		player:       player,
		enemies:      content.Enemies,
		items:        content.Items,
		skillTable:   content.SkillTable,
		skillEffects: content.SkillEffects,
		quests:       quests,
		poiTable:     content.POIs,
		rng:          rng,
	}, nil
}

// MovePlayer relocates the player, grants distance exp, rolls a random
// encounter, and regenerates the nearby POI list.
func (g *Game) MovePlayer(pos geo.Position) MoveResult {
	distance := geo.Distance(g.player.Position, pos)
	g.player.Position = pos

	expGain := int(math.Floor(distance * ExpPerKm))
	levelUps := g.GainExperience(expGain)

	result := MoveResult{
		Message:  fmt.Sprintf("Traveled %.2f km. EXP +%d", distance, expGain),
		ExpGain:  expGain,
		LevelUps: levelUps,
	}

	if g.rng.Float64() < EncounterChance {
		enc := g.TriggerRandomEncounter()
		result.Encounter = &enc
	}

	g.FindNearbyPOIs(pos)

	return result
}

// GainExperience adds exp and applies level-up steps until the total
// falls below the threshold again. One large grant can produce several
// level-ups.
func (g *Game) GainExperience(exp int) []LevelUp {
	g.player.Exp += exp

	var ups []LevelUp
	for g.player.Exp >= g.player.ExpNeeded {
		ups = append(ups, g.levelUp())
	}
	return ups
}

// levelUp applies one level-up step: consume the threshold, roll stat
// gains, fully restore HP/MP, scale the next threshold by 1.5 (floored),
// and try to learn the skill keyed by the new level.
func (g *Game) levelUp() LevelUp {
	p := &g.player
	p.Exp -= p.ExpNeeded
	p.Level++

	gains := StatGains{
		HP:      g.rng.Intn(20) + 10,
		MP:      g.rng.Intn(10) + 5,
		Attack:  g.rng.Intn(5) + 2,
		Defense: g.rng.Intn(3) + 1,
	}

	p.MaxHP += gains.HP
	p.HP = p.MaxHP
	p.MaxMP += gains.MP
	p.MP = p.MaxMP
	p.Stats.Attack += gains.Attack
	p.Stats.Defense += gains.Defense

	p.ExpNeeded += p.ExpNeeded / 2

	up := LevelUp{
		Message: fmt.Sprintf("Level up! You are now level %d!", p.Level),
		Level:   p.Level,
		Stats:   gains,
	}
	if skill := g.learnNewSkill(); skill != "" {
		up.SkillLearned = skill
	}
	return up
}

// learnNewSkill appends the skill keyed by the current level, if any
// and not already known.
func (g *Game) learnNewSkill() string {
	skill, ok := g.skillTable[g.player.Level]
	if !ok {
		return ""
	}
	for _, s := range g.player.Skills {
		if s == skill {
			return ""
		}
	}
	g.player.Skills = append(g.player.Skills, skill)
	return skill
}

// CollectItem appends a uniformly random catalog copy to the inventory
// and advances item quests.
func (g *Game) CollectItem() CollectResult {
	item := g.items[g.rng.Intn(len(g.items))]
	g.player.Inventory = append(g.player.Inventory, item)

	g.updateQuests(TargetItem, "")

	return CollectResult{
		Message: fmt.Sprintf("Obtained %s!", item.Name),
		Item:    item.Name,
	}
}

// updateQuests advances every incomplete quest matching the target
// kind (and, for enemy quests, the exact name). Completion grants the
// reward exactly once, at the transition.
func (g *Game) updateQuests(target TargetKind, targetName string) {
	for i := range g.quests {
		quest := &g.quests[i]
		if quest.Completed || quest.Target != target {
			continue
		}
		if target == TargetEnemy && quest.TargetName != targetName {
			continue
		}

		quest.CurrentCount++
		if quest.CurrentCount >= quest.TargetCount {
			quest.Completed = true
			g.completeQuest(quest)
		}
	}
}

// completeQuest grants the quest reward.
func (g *Game) completeQuest(quest *Quest) {
	g.GainExperience(quest.Reward.Exp)
	g.player.Gold += quest.Reward.Gold
}

// FindNearbyPOIs replaces the nearby list with zero or one random POI.
// The position is not actually inspected; this is an approximation,
// not geofencing.
func (g *Game) FindNearbyPOIs(pos geo.Position) []POI {
	g.nearbyPOIs = nil
	if len(g.poiTable) > 0 && g.rng.Float64() < POIChance {
		g.nearbyPOIs = append(g.nearbyPOIs, g.poiTable[g.rng.Intn(len(g.poiTable))])
	}
	return g.nearbyPOIs
}

// VisitPOI applies a nearby POI's bonus and removes it from the list.
// Visiting shifts the indices of later entries.
func (g *Game) VisitPOI(index int) VisitResult {
	if index < 0 || index >= len(g.nearbyPOIs) {
		return VisitResult{Error: "no such place"}
	}

	poi := g.nearbyPOIs[index]
	var result VisitResult

	switch poi.Bonus {
	case BonusMPRecovery:
		g.player.MP = g.player.MaxMP
		result = VisitResult{Message: fmt.Sprintf("Visited %s. MP fully restored!", poi.Name)}

	case BonusItems:
		collected := g.CollectItem()
		result = VisitResult{Message: fmt.Sprintf("Picked up %s at %s!", collected.Item, poi.Name)}

	case BonusExp:
		expGain := g.rng.Intn(50) + 25
		g.GainExperience(expGain)
		result = VisitResult{Message: fmt.Sprintf("Trained at %s! EXP +%d", poi.Name, expGain)}

	case BonusGold:
		goldGain := g.rng.Intn(100) + 50
		g.player.Gold += goldGain
		result = VisitResult{Message: fmt.Sprintf("Found treasure at %s! Gold +%d", poi.Name, goldGain)}
	}

	g.nearbyPOIs = append(g.nearbyPOIs[:index], g.nearbyPOIs[index+1:]...)
	return result
}

// PlayerStatus returns a display snapshot with quests split by
// completion.
func (g *Game) PlayerStatus() Status {
	var open, done []Quest
	for _, q := range g.quests {
		if q.Completed {
			done = append(done, q)
		} else {
			open = append(open, q)
		}
	}

	return Status{
		Name:            g.player.Name,
		Level:           g.player.Level,
		Exp:             g.player.Exp,
		ExpNeeded:       g.player.ExpNeeded,
		HP:              g.player.HP,
		MaxHP:           g.player.MaxHP,
		MP:              g.player.MP,
		MaxMP:           g.player.MaxMP,
		Gold:            g.player.Gold,
		Stats:           g.player.Stats,
		Skills:          g.player.Skills,
		Inventory:       g.player.Inventory,
		Quests:          open,
		CompletedQuests: done,
		NearbyPOIs:      g.nearbyPOIs,
		InBattle:        g.currentBattle != nil,
		Position:        g.player.Position,
	}
}

// InBattle reports whether a battle is currently open.
func (g *Game) InBattle() bool {
	return g.currentBattle != nil
}
