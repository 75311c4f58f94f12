package rpg

import "fmt"

// TriggerRandomEncounter clones a random bestiary template and opens a
// battle against it. An already-open battle is silently replaced; the
// caller is expected to resolve battles promptly, not the engine.
func (g *Game) TriggerRandomEncounter() EncounterResult {
	enemy := g.enemies[g.rng.Intn(len(g.enemies))]

	g.currentBattle = &Battle{
		Enemy:      enemy,
		PlayerTurn: true,
		Log:        []string{},
	}

	return EncounterResult{
		Type:    "battle",
		Enemy:   enemy.Name,
		Message: fmt.Sprintf("A wild %s appeared!", enemy.Name),
	}
}

// BattleAction resolves one battle round: the player's chosen action,
// then the enemy's retaliation if the battle is still open. The enemy
// gets no turn when the player's action finished the battle.
func (g *Game) BattleAction(action string, skillIndex int) BattleActionResult {
	if g.currentBattle == nil || !g.currentBattle.PlayerTurn {
		return BattleActionResult{Error: "no battle in progress"}
	}

	battle := g.currentBattle
	enemy := &battle.Enemy
	var outcome *BattleOutcome

	switch action {
	case "attack":
		damage := maxInt(1, g.player.Stats.Attack-enemy.Defense+g.rng.Intn(10)-5)
		enemy.HP -= damage
		battle.Log = append(battle.Log,
			fmt.Sprintf("%s attacks! %s takes %d damage!", g.player.Name, enemy.Name, damage))
		if enemy.HP <= 0 {
			outcome = g.winBattle()
		}

	case "skill":
		skill := "Strike"
		if skillIndex >= 0 && skillIndex < len(g.player.Skills) {
			skill = g.player.Skills[skillIndex]
		}
		battle.Log = append(battle.Log, g.useSkill(skill, enemy))
		if enemy.HP <= 0 {
			outcome = g.winBattle()
		}

	case "item":
		// Inventory effects in battle are not implemented yet; the
		// action only logs.
		battle.Log = append(battle.Log, "Used an item.")

	case "run":
		if g.rng.Float64() < EscapeChance {
			g.currentBattle = nil
			return BattleActionResult{
				Message:   "Got away safely!",
				BattleEnd: true,
				PlayerHP:  g.player.HP,
				EnemyHP:   enemy.HP,
			}
		}
		battle.Log = append(battle.Log, "Couldn't escape!")
	}

	// Enemy phase, unless the player's action already ended the battle.
	if outcome == nil && enemy.HP > 0 {
		damage := maxInt(1, enemy.Attack-g.player.Stats.Defense+g.rng.Intn(5)-2)
		g.player.HP -= damage
		battle.Log = append(battle.Log,
			fmt.Sprintf("%s attacks! %s takes %d damage!", enemy.Name, g.player.Name, damage))
		if g.player.HP <= 0 {
			outcome = g.loseBattle()
		}
	}

	return BattleActionResult{
		BattleLog:    battle.Log,
		PlayerHP:     g.player.HP,
		EnemyHP:      enemy.HP,
		BattleResult: outcome,
	}
}

// useSkill resolves a named skill against the enemy via the skill
// effect table. Skills without an entry deal flat attack damage.
func (g *Game) useSkill(name string, enemy *Enemy) string {
	effect, ok := g.skillEffects[name]
	if !ok {
		damage := g.player.Stats.Attack
		enemy.HP -= damage
		return fmt.Sprintf("%s! %s takes %d damage!", name, enemy.Name, damage)
	}

	if g.player.MP < effect.MPCost {
		return "Not enough MP!"
	}
	g.player.MP -= effect.MPCost

	if effect.Heal > 0 {
		g.player.HP = minInt(g.player.MaxHP, g.player.HP+effect.Heal)
		return fmt.Sprintf("%s! Restored %d HP!", name, effect.Heal)
	}

	damage := int(float64(g.player.Stats.Attack) * effect.DamageScale)
	enemy.HP -= damage
	return fmt.Sprintf("%s! %s takes %d damage!", name, enemy.Name, damage)
}

// winBattle grants the spoils, advances enemy quests, and closes the
// battle.
func (g *Game) winBattle() *BattleOutcome {
	enemy := g.currentBattle.Enemy
	g.GainExperience(enemy.Exp)
	g.player.Gold += enemy.Gold

	g.updateQuests(TargetEnemy, enemy.Name)

	g.currentBattle = nil
	return &BattleOutcome{
		Message:   fmt.Sprintf("Defeated %s! EXP +%d, Gold +%d", enemy.Name, enemy.Exp, enemy.Gold),
		Exp:       enemy.Exp,
		Gold:      enemy.Gold,
		BattleEnd: true,
	}
}

// loseBattle leaves the player fainted at 1 HP, deducts a tenth of
// their gold, and closes the battle.
func (g *Game) loseBattle() *BattleOutcome {
	g.player.HP = 1
	goldLoss := int(float64(g.player.Gold) * DefeatGoldShare)
	g.player.Gold -= goldLoss

	g.currentBattle = nil
	return &BattleOutcome{
		Message:   fmt.Sprintf("You fainted... Lost %d gold.", goldLoss),
		GoldLoss:  goldLoss,
		BattleEnd: true,
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
