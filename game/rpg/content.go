package rpg

import (
	"fmt"

	"github.com/mizuojisan/geoquest/game/geo"
)

// Content bundles every data table the engine draws from: bestiary,
// item catalog, level-keyed skill table, skill effects, quest list, and
// POI pool. New content needs no new code paths.
type Content struct {
	Enemies      []Enemy                `json:"enemies"`
	Items        []Item                 `json:"items"`
	SkillTable   map[int]string         `json:"skill_table"`
	SkillEffects map[string]SkillEffect `json:"skill_effects"`
	Quests       []Quest                `json:"quests"`
	POIs         []POI                  `json:"pois"`
	Start        *Player                `json:"start,omitempty"`
}

// DefaultContent returns the built-in tables.
func DefaultContent() *Content {
	return &Content{
		Enemies: []Enemy{
			{Name: "Slime", HP: 30, Attack: 8, Defense: 2, Exp: 15, Gold: 10},
			{Name: "Goblin", HP: 50, Attack: 12, Defense: 4, Exp: 25, Gold: 20},
			{Name: "Orc", HP: 80, Attack: 18, Defense: 8, Exp: 40, Gold: 35},
			{Name: "Dragon", HP: 200, Attack: 35, Defense: 15, Exp: 100, Gold: 100},
		},
		Items: []Item{
			{Name: "Healing Potion", Type: Consumable, Effect: "heal", Value: 50, Price: 25},
			{Name: "Mana Potion", Type: Consumable, Effect: "mp", Value: 30, Price: 20},
			{Name: "Iron Sword", Type: Weapon, Attack: 15, Price: 100},
			{Name: "Leather Armor", Type: Armor, Defense: 8, Price: 80},
			{Name: "Ring of Power", Type: Accessory, Attack: 5, Price: 150},
		},
		SkillTable: map[int]string{
			3:  "Fireball",
			5:  "Heal",
			7:  "Double Strike",
			10: "Meteor",
			15: "Final Art",
		},
		SkillEffects: map[string]SkillEffect{
			"Fireball": {MPCost: 10, DamageScale: 1.5},
			"Heal":     {MPCost: 15, Heal: 50},
		},
		Quests: []Quest{
			{
				ID:          1,
				Title:       "A Beginner's Adventure",
				Description: "Defeat 3 Slimes",
				Target:      TargetEnemy,
				TargetName:  "Slime",
				TargetCount: 3,
				Reward:      QuestReward{Exp: 50, Gold: 100},
			},
			{
				ID:          2,
				Title:       "Treasure Hunt",
				Description: "Collect 5 items in the field",
				Target:      TargetItem,
				TargetCount: 5,
				Reward:      QuestReward{Exp: 75, Gold: 150},
			},
		},
		POIs: []POI{
			{Name: "Old Shrine", Type: "shrine", Bonus: BonusMPRecovery},
			{Name: "General Store", Type: "shop", Bonus: BonusItems},
			{Name: "Training Ground", Type: "training", Bonus: BonusExp},
			{Name: "Treasure Chest", Type: "treasure", Bonus: BonusGold},
		},
	}
}

// defaultStartingPlayer is the level-1 character sheet.
func defaultStartingPlayer() Player {
	return Player{
		Name:      "Player",
		Level:     1,
		Exp:       0,
		ExpNeeded: 100,
		HP:        100,
		MaxHP:     100,
		MP:        50,
		MaxMP:     50,
		Gold:      100,
		Stats:     Stats{Attack: 10, Defense: 5, Speed: 8},
		Inventory: []Item{},
		Skills:    []string{"Strike"},
		Position:  geo.Position{Lat: 35.6762, Lng: 139.6503},
	}
}

// ValidateContent rejects tables the engine cannot run on.
func ValidateContent(c *Content) error {
	if c == nil {
		return fmt.Errorf("content cannot be nil")
	}
	if len(c.Enemies) == 0 {
		return fmt.Errorf("content must define at least one enemy")
	}
	for _, e := range c.Enemies {
		if e.Name == "" {
			return fmt.Errorf("enemy with empty name")
		}
		if e.HP <= 0 {
			return fmt.Errorf("enemy %s has nonpositive hp", e.Name)
		}
	}
	if len(c.Items) == 0 {
		return fmt.Errorf("content must define at least one item")
	}
	for _, it := range c.Items {
		if it.Name == "" {
			return fmt.Errorf("item with empty name")
		}
		switch it.Type {
		case Consumable, Weapon, Armor, Accessory:
		default:
			return fmt.Errorf("item %s has unknown type %q", it.Name, it.Type)
		}
	}
	for _, q := range c.Quests {
		switch q.Target {
		case TargetEnemy, TargetItem:
		default:
			return fmt.Errorf("quest %q has unknown target kind %q", q.Title, q.Target)
		}
		if q.TargetCount <= 0 {
			return fmt.Errorf("quest %q has nonpositive target count", q.Title)
		}
		if q.Target == TargetEnemy && q.TargetName == "" {
			return fmt.Errorf("quest %q targets enemies but names none", q.Title)
		}
	}
	for name, eff := range c.SkillEffects {
		if eff.MPCost < 0 {
			return fmt.Errorf("skill %q has negative mp cost", name)
		}
	}
	for _, p := range c.POIs {
		switch p.Bonus {
		case BonusMPRecovery, BonusItems, BonusExp, BonusGold:
		default:
			return fmt.Errorf("poi %q has unknown bonus kind %q", p.Name, p.Bonus)
		}
	}
	return nil
}
