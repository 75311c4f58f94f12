package rpg

import "github.com/mizuojisan/geoquest/game/geo"

// ItemType classifies catalog items.
type ItemType string

const (
	Consumable ItemType = "consumable"
	Weapon     ItemType = "weapon"
	Armor      ItemType = "armor"
	Accessory  ItemType = "accessory"
)

// TargetKind is what a quest counts: defeated enemies or collected items.
type TargetKind string

const (
	TargetEnemy TargetKind = "enemy"
	TargetItem  TargetKind = "item"
)

// BonusKind is the effect a point of interest grants on visit.
type BonusKind string

const (
	BonusMPRecovery BonusKind = "mp_recovery"
	BonusItems      BonusKind = "items"
	BonusExp        BonusKind = "exp"
	BonusGold       BonusKind = "gold"
)

// Tuning constants for exploration and battle.
const (
	EncounterChance = 0.2
	POIChance       = 0.4
	EscapeChance    = 0.7
	ExpPerKm        = 100
	DefeatGoldShare = 0.1
)

// Stats are the player's combat attributes.
type Stats struct {
	Attack  int `json:"attack"`
	Defense int `json:"defense"`
	Speed   int `json:"speed"`
}

// Equipment holds the three gear slots. The slots are carried on the
// player but no operation assigns to them yet.
type Equipment struct {
	Weapon    *Item `json:"weapon"`
	Armor     *Item `json:"armor"`
	Accessory *Item `json:"accessory"`
}

// Player is the full RPG character sheet.
type Player struct {
	Name      string       `json:"name"`
	Level     int          `json:"level"`
	Exp       int          `json:"exp"`
	ExpNeeded int          `json:"expNeeded"`
	HP        int          `json:"hp"`
	MaxHP     int          `json:"maxHp"`
	MP        int          `json:"mp"`
	MaxMP     int          `json:"maxMp"`
	Gold      int          `json:"gold"`
	Stats     Stats        `json:"stats"`
	Inventory []Item       `json:"inventory"`
	Equipment Equipment    `json:"equipment"`
	Skills    []string     `json:"skills"`
	Position  geo.Position `json:"position"`
}

// Enemy is both a template in the bestiary and, copied, a battle
// instance. Battles must never mutate the template.
type Enemy struct {
	Name    string `json:"name"`
	HP      int    `json:"hp"`
	Attack  int    `json:"attack"`
	Defense int    `json:"defense"`
	Exp     int    `json:"exp"`
	Gold    int    `json:"gold"`
}

// Item is a catalog entry. Inventory entries are independent copies.
type Item struct {
	Name    string   `json:"name"`
	Type    ItemType `json:"type"`
	Effect  string   `json:"effect,omitempty"`
	Value   int      `json:"value,omitempty"`
	Attack  int      `json:"attack,omitempty"`
	Defense int      `json:"defense,omitempty"`
	Price   int      `json:"price"`
}

// QuestReward is granted exactly once, when a quest completes.
type QuestReward struct {
	Exp  int `json:"exp"`
	Gold int `json:"gold"`
}

// Quest tracks progress toward a kill or collection target. Once
// Completed flips true it is never reset.
type Quest struct {
	ID           int         `json:"id"`
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	Target       TargetKind  `json:"target"`
	TargetName   string      `json:"targetName,omitempty"`
	TargetCount  int         `json:"targetCount"`
	CurrentCount int         `json:"currentCount"`
	Reward       QuestReward `json:"reward"`
	Completed    bool        `json:"completed"`
}

// POI is a transient exploitable location near the player. The nearby
// list is regenerated on every move and entries are consumed on visit.
type POI struct {
	Name  string    `json:"name"`
	Type  string    `json:"type"`
	Bonus BonusKind `json:"bonus"`
}

// SkillEffect describes what a named skill does in battle. A skill with
// no entry deals flat attack damage for free.
type SkillEffect struct {
	MPCost      int     `json:"mpCost"`
	DamageScale float64 `json:"damageScale,omitempty"`
	Heal        int     `json:"heal,omitempty"`
}

// Battle is the transient state of one encounter. It exists only while
// a battle is open and is destroyed on win, loss, or escape.
type Battle struct {
	Enemy      Enemy    `json:"enemy"`
	PlayerTurn bool     `json:"playerTurn"`
	Log        []string `json:"battleLog"`
}

// MoveResult reports one player movement.
type MoveResult struct {
	Message   string           `json:"message"`
	ExpGain   int              `json:"expGain"`
	LevelUps  []LevelUp        `json:"levelUps,omitempty"`
	Encounter *EncounterResult `json:"encounter,omitempty"`
}

// StatGains are the random increases applied by one level-up step.
type StatGains struct {
	HP      int `json:"hp"`
	MP      int `json:"mp"`
	Attack  int `json:"attack"`
	Defense int `json:"defense"`
}

// LevelUp reports one level-up step.
type LevelUp struct {
	Message      string    `json:"message"`
	Level        int       `json:"level"`
	Stats        StatGains `json:"stats"`
	SkillLearned string    `json:"skillLearned,omitempty"`
}

// EncounterResult reports a random encounter opening a battle.
type EncounterResult struct {
	Type    string `json:"type"`
	Enemy   string `json:"enemy"`
	Message string `json:"message"`
}

// BattleOutcome is the terminal record of a battle: victory spoils or
// defeat losses.
type BattleOutcome struct {
	Message   string `json:"message"`
	Exp       int    `json:"exp,omitempty"`
	Gold      int    `json:"gold,omitempty"`
	GoldLoss  int    `json:"goldLoss,omitempty"`
	BattleEnd bool   `json:"battleEnd"`
}

// BattleActionResult is returned by every battle action. Error is set
// when no battle is open; BattleResult is set when the action ended the
// battle.
type BattleActionResult struct {
	Error        string         `json:"error,omitempty"`
	Message      string         `json:"message,omitempty"`
	BattleEnd    bool           `json:"battleEnd,omitempty"`
	BattleLog    []string       `json:"battleLog,omitempty"`
	PlayerHP     int            `json:"playerHp"`
	EnemyHP      int            `json:"enemyHp"`
	BattleResult *BattleOutcome `json:"battleResult,omitempty"`
}

// CollectResult reports a random item pickup.
type CollectResult struct {
	Message string `json:"message"`
	Item    string `json:"item"`
}

// VisitResult reports a POI visit.
type VisitResult struct {
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// Status is the read-only snapshot of the whole RPG state for display.
type Status struct {
	Name            string       `json:"name"`
	Level           int          `json:"level"`
	Exp             int          `json:"exp"`
	ExpNeeded       int          `json:"expNeeded"`
	HP              int          `json:"hp"`
	MaxHP           int          `json:"maxHp"`
	MP              int          `json:"mp"`
	MaxMP           int          `json:"maxMp"`
	Gold            int          `json:"gold"`
	Stats           Stats        `json:"stats"`
	Skills          []string     `json:"skills"`
	Inventory       []Item       `json:"inventory"`
	Quests          []Quest      `json:"quests"`
	CompletedQuests []Quest      `json:"completedQuests"`
	NearbyPOIs      []POI        `json:"nearbyPOIs"`
	InBattle        bool         `json:"inBattle"`
	Position        geo.Position `json:"position"`
}
