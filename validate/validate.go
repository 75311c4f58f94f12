// Command validate is a small CLI that validates content pack JSON
// files in the ../packs directory. It checks:
//   - JSON structure and required fields
//   - Engine table constraints (enemy stats, vehicle roster, courses)
//   - Cross-references: quest targets name real enemies or items
//   - Economy sanity: at least one shop vehicle is reachable from
//     starting money plus course rewards
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mizuojisan/geoquest/game/config"
	"github.com/mizuojisan/geoquest/game/rpg"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise
// it accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

// validatePack loads and validates a single content pack JSON file.
func validatePack(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to read file: %v", err))
		return result
	}

	var pack config.Pack
	if err := json.Unmarshal(data, &pack); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid JSON: %v", err))
		return result
	}

	if err := config.ValidatePack(&pack); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	if pack.RPG != nil {
		checkRPGReferences(pack.RPG, &result)
	}
	if pack.Racing != nil {
		checkRacingEconomy(&pack, &result)
	}

	// Add informational data
	if result.Valid {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Name: %s", pack.Name))
		if pack.RPG != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("✓ Enemies: %d", len(pack.RPG.Enemies)))
			result.Errors = append(result.Errors, fmt.Sprintf("✓ Items: %d", len(pack.RPG.Items)))
			result.Errors = append(result.Errors, fmt.Sprintf("✓ Quests: %d", len(pack.RPG.Quests)))
			result.Errors = append(result.Errors, fmt.Sprintf("✓ POIs: %d", len(pack.RPG.POIs)))
		}
		if pack.Racing != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("✓ Vehicles: %d", len(pack.Racing.Vehicles)))
			result.Errors = append(result.Errors, fmt.Sprintf("✓ Courses: %d", len(pack.Racing.Courses)))
		}
	}

	return result
}

// checkRPGReferences verifies that quest targets point at enemies or
// items that actually exist in the pack.
func checkRPGReferences(content *rpg.Content, result *ValidationResult) {
	enemyNames := make(map[string]bool, len(content.Enemies))
	for _, e := range content.Enemies {
		enemyNames[e.Name] = true
	}

	for _, quest := range content.Quests {
		if quest.Target == rpg.TargetEnemy && quest.TargetName != "" && !enemyNames[quest.TargetName] {
			result.Valid = false
			result.Errors = append(result.Errors,
				fmt.Sprintf("Quest %q targets unknown enemy %q", quest.Title, quest.TargetName))
		}
	}

	for level, skill := range content.SkillTable {
		if _, ok := content.SkillEffects[skill]; !ok {
			// A skill without an effect entry falls back to a plain
			// attack, which is legal but usually a typo.
			result.Errors = append(result.Errors,
				fmt.Sprintf("Note: level %d skill %q has no effect entry", level, skill))
		}
	}
}

// checkRacingEconomy flags packs where no unowned vehicle can ever be
// bought from course rewards.
func checkRacingEconomy(pack *config.Pack, result *ValidationResult) {
	content := pack.Racing

	cheapest := -1
	for _, v := range content.Vehicles {
		if v.Owned {
			continue
		}
		if cheapest == -1 || v.Price < cheapest {
			cheapest = v.Price
		}
	}
	if cheapest == -1 {
		// Everything is owned from the start; nothing to check.
		return
	}

	bestReward := 0
	for _, c := range content.Courses {
		if c.Reward > bestReward {
			bestReward = c.Reward
		}
	}

	if bestReward == 0 && len(content.Courses) > 0 {
		result.Valid = false
		result.Errors = append(result.Errors, "No course pays a reward; unowned vehicles can never be bought")
		return
	}

	result.Errors = append(result.Errors,
		fmt.Sprintf("✓ Economy: cheapest unowned vehicle $%d, best course reward $%d", cheapest, bestReward))
}

// main scans ../packs for *.json files and validates each one, printing
// a concise report and exiting with non-zero status if any are invalid.
func main() {
	packDir := "../packs"
	if len(os.Args) > 1 {
		packDir = os.Args[1]
	}

	files, err := filepath.Glob(filepath.Join(packDir, "*.json"))
	if err != nil {
		fmt.Printf("Error finding pack files: %v\n", err)
		os.Exit(1)
	}

	if len(files) == 0 {
		fmt.Printf("No pack files found in %s\n", packDir)
		return
	}

	allValid := true
	for _, file := range files {
		result := validatePack(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All content packs are valid!")
	} else {
		fmt.Println("❌ Some content packs have errors")
		os.Exit(1)
	}
}
