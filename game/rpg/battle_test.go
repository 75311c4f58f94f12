package rpg

import (
	"strings"
	"testing"
)

func openBattle(g *Game, enemy Enemy) {
	g.currentBattle = &Battle{
		Enemy:      enemy,
		PlayerTurn: true,
		Log:        []string{},
	}
}

func TestBattleActionWithoutBattle(t *testing.T) {
	g := newTestGame(t, scriptRand())

	result := g.BattleAction("attack", 0)
	if result.Error != "no battle in progress" {
		t.Errorf("error = %q, want %q", result.Error, "no battle in progress")
	}
	if g.player.HP != 100 {
		t.Errorf("player hp changed to %d", g.player.HP)
	}
}

func TestTriggerRandomEncounterClonesTemplate(t *testing.T) {
	g := newTestGame(t, scriptRand(intnRoll(0), intnRoll(0)))

	g.TriggerRandomEncounter()
	g.currentBattle.Enemy.HP = 1

	// A second encounter replaces the battle with a fresh clone; the
	// bestiary template must be untouched.
	enc := g.TriggerRandomEncounter()
	if enc.Enemy != "Slime" {
		t.Fatalf("enemy = %q, want Slime", enc.Enemy)
	}
	if g.currentBattle.Enemy.HP != 30 {
		t.Errorf("battle enemy hp = %d, want 30", g.currentBattle.Enemy.HP)
	}
	if g.enemies[0].HP != 30 {
		t.Errorf("bestiary template hp = %d, want 30", g.enemies[0].HP)
	}
}

func TestAttackWinsBattle(t *testing.T) {
	// Damage roll 5: 10 attack - 2 defense + 5 - 5 = 8, enough for a
	// 1 HP slime. The enemy gets no retaliation turn.
	g := newTestGame(t, scriptRand(intnRoll(5)))
	openBattle(g, Enemy{Name: "Slime", HP: 1, Attack: 8, Defense: 2, Exp: 15, Gold: 10})

	result := g.BattleAction("attack", 0)

	if result.BattleResult == nil {
		t.Fatal("expected a battle outcome")
	}
	if !result.BattleResult.BattleEnd {
		t.Error("outcome not marked as battle end")
	}
	if result.BattleResult.Message != "Defeated Slime! EXP +15, Gold +10" {
		t.Errorf("message = %q", result.BattleResult.Message)
	}
	if result.BattleResult.Exp != 15 || result.BattleResult.Gold != 10 {
		t.Errorf("spoils = %d exp, %d gold, want 15, 10", result.BattleResult.Exp, result.BattleResult.Gold)
	}
	if g.player.Exp != 15 || g.player.Gold != 110 {
		t.Errorf("player exp/gold = %d/%d, want 15/110", g.player.Exp, g.player.Gold)
	}
	if g.player.HP != 100 {
		t.Errorf("player hp = %d, want 100 (no retaliation)", g.player.HP)
	}
	if g.InBattle() {
		t.Error("battle still open after win")
	}
	if g.quests[0].CurrentCount != 1 {
		t.Errorf("slime quest count = %d, want 1", g.quests[0].CurrentCount)
	}
}

func TestAttackDamageFloor(t *testing.T) {
	// Against overwhelming defense the hit still lands for 1. Rolls:
	// 0 for the player swing, 0 for the retaliation.
	g := newTestGame(t, scriptRand(intnRoll(0), intnRoll(0)))
	openBattle(g, Enemy{Name: "Golem", HP: 50, Attack: 1, Defense: 100})

	result := g.BattleAction("attack", 0)

	if result.EnemyHP != 49 {
		t.Errorf("enemy hp = %d, want 49", result.EnemyHP)
	}
	// Retaliation: max(1, 1-5+0-2) = 1.
	if result.PlayerHP != 99 {
		t.Errorf("player hp = %d, want 99", result.PlayerHP)
	}
	if !g.InBattle() {
		t.Error("battle closed early")
	}
}

func TestRunEscapes(t *testing.T) {
	g := newTestGame(t, scriptRand(floatRoll(0.1)))
	openBattle(g, Enemy{Name: "Slime", HP: 30, Attack: 8, Defense: 2, Exp: 15, Gold: 10})

	result := g.BattleAction("run", 0)

	if result.Message != "Got away safely!" {
		t.Errorf("message = %q", result.Message)
	}
	if !result.BattleEnd {
		t.Error("escape not marked as battle end")
	}
	if g.InBattle() {
		t.Error("battle still open after escape")
	}
	if g.player.Exp != 0 || g.player.Gold != 100 {
		t.Errorf("escape granted spoils: exp %d, gold %d", g.player.Exp, g.player.Gold)
	}
}

func TestRunFailsAndEnemyRetaliates(t *testing.T) {
	// Rolls: 0.9 escape check (fail), 0 retaliation damage.
	g := newTestGame(t, scriptRand(floatRoll(0.9), intnRoll(0)))
	openBattle(g, Enemy{Name: "Slime", HP: 30, Attack: 8, Defense: 2})

	result := g.BattleAction("run", 0)

	if !containsLog(result.BattleLog, "Couldn't escape!") {
		t.Errorf("log %v missing escape failure", result.BattleLog)
	}
	// Retaliation: max(1, 8-5+0-2) = 1.
	if result.PlayerHP != 99 {
		t.Errorf("player hp = %d, want 99", result.PlayerHP)
	}
	if !g.InBattle() {
		t.Error("battle closed after failed escape")
	}
}

func TestItemActionOnlyLogs(t *testing.T) {
	g := newTestGame(t, scriptRand(intnRoll(0)))
	openBattle(g, Enemy{Name: "Slime", HP: 30, Attack: 8, Defense: 2})

	result := g.BattleAction("item", 0)

	if !containsLog(result.BattleLog, "Used an item.") {
		t.Errorf("log %v missing item line", result.BattleLog)
	}
	if result.EnemyHP != 30 {
		t.Errorf("enemy hp = %d, want 30", result.EnemyHP)
	}
}

func TestSkillFireballDamage(t *testing.T) {
	g := newTestGame(t, scriptRand(intnRoll(0)))
	g.player.Skills = append(g.player.Skills, "Fireball")
	openBattle(g, Enemy{Name: "Goblin", HP: 50, Attack: 12, Defense: 4})

	result := g.BattleAction("skill", 1)

	// 10 attack * 1.5 scale = 15, ignoring defense.
	if result.EnemyHP != 35 {
		t.Errorf("enemy hp = %d, want 35", result.EnemyHP)
	}
	if g.player.MP != 40 {
		t.Errorf("mp = %d, want 40", g.player.MP)
	}
	if !containsLog(result.BattleLog, "Fireball! Goblin takes 15 damage!") {
		t.Errorf("log %v missing fireball line", result.BattleLog)
	}
}

func TestSkillNotEnoughMP(t *testing.T) {
	g := newTestGame(t, scriptRand(intnRoll(0)))
	g.player.Skills = append(g.player.Skills, "Fireball")
	g.player.MP = 5
	openBattle(g, Enemy{Name: "Goblin", HP: 50, Attack: 12, Defense: 4})

	result := g.BattleAction("skill", 1)

	if !containsLog(result.BattleLog, "Not enough MP!") {
		t.Errorf("log %v missing MP failure", result.BattleLog)
	}
	if result.EnemyHP != 50 {
		t.Errorf("enemy hp = %d, want 50", result.EnemyHP)
	}
	if g.player.MP != 5 {
		t.Errorf("mp = %d, want 5 (no cost on failure)", g.player.MP)
	}
}

func TestSkillHealCappedAtMaxHP(t *testing.T) {
	g := newTestGame(t, scriptRand(intnRoll(0)))
	g.player.Skills = append(g.player.Skills, "Heal")
	g.player.HP = 90
	openBattle(g, Enemy{Name: "Slime", HP: 30, Attack: 1, Defense: 2})

	result := g.BattleAction("skill", 1)

	if !containsLog(result.BattleLog, "Heal! Restored 50 HP!") {
		t.Errorf("log %v missing heal line", result.BattleLog)
	}
	// Healed to the 100 cap, then the retaliation lands for 1.
	if result.PlayerHP != 99 {
		t.Errorf("player hp = %d, want 99", result.PlayerHP)
	}
	if g.player.MP != 35 {
		t.Errorf("mp = %d, want 35", g.player.MP)
	}
}

func TestUnknownSkillDealsFlatDamage(t *testing.T) {
	g := newTestGame(t, scriptRand(intnRoll(0)))
	openBattle(g, Enemy{Name: "Goblin", HP: 50, Attack: 12, Defense: 4})

	// Index 0 is Strike, which has no effect table entry.
	result := g.BattleAction("skill", 0)

	if result.EnemyHP != 40 {
		t.Errorf("enemy hp = %d, want 40", result.EnemyHP)
	}
	if g.player.MP != 50 {
		t.Errorf("mp = %d, want 50 (flat skills are free)", g.player.MP)
	}
}

func TestLoseBattle(t *testing.T) {
	// Player swing: max(1, 10-15+0-5) = 1. Dragon retaliation:
	// max(1, 35-5+0-2) = 28, enough to fell a 5 HP player.
	g := newTestGame(t, scriptRand(intnRoll(0), intnRoll(0)))
	g.player.HP = 5
	openBattle(g, Enemy{Name: "Dragon", HP: 200, Attack: 35, Defense: 15, Exp: 100, Gold: 100})

	result := g.BattleAction("attack", 0)

	if result.BattleResult == nil {
		t.Fatal("expected a battle outcome")
	}
	if result.BattleResult.Message != "You fainted... Lost 10 gold." {
		t.Errorf("message = %q", result.BattleResult.Message)
	}
	if result.BattleResult.GoldLoss != 10 {
		t.Errorf("gold loss = %d, want 10", result.BattleResult.GoldLoss)
	}
	if g.player.HP != 1 {
		t.Errorf("player hp = %d, want 1", g.player.HP)
	}
	if g.player.Gold != 90 {
		t.Errorf("gold = %d, want 90", g.player.Gold)
	}
	if g.InBattle() {
		t.Error("battle still open after defeat")
	}
}

func containsLog(log []string, want string) bool {
	for _, line := range log {
		if strings.Contains(line, want) {
			return true
		}
	}
	return false
}
