// Command validate provides a small CLI that validates game configuration JSON
// files in the ../configs directory. It checks:
//   - JSON structure and required fields
//   - Board size bounds and seeding counts
//   - Spawn range consistency (half-open, stored exponents)
//   - Win tile sanity, including whether it is reachable on the board at all
//   - Required message keys and their fmt templates
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Board size bounds accepted by the engine.
const (
	minBoardSize = 2
	maxBoardSize = 16
)

// Config mirrors the JSON schema for a game configuration.
type Config struct {
	Name         string            `json:"name"`
	Description  string            `json:"description"`
	BoardSize    int               `json:"board_size"`
	InitialTiles int               `json:"initial_tiles"`
	SpawnPerMove int               `json:"spawn_per_move"`
	SpawnMin     int               `json:"spawn_min"`
	SpawnMax     int               `json:"spawn_max"`
	WinExponent  int               `json:"win_exponent"`
	Messages     map[string]string `json:"messages"`
}

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

// validateConfig loads and validates a single configuration JSON file.
func validateConfig(filePath string) ValidationResult {
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

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid JSON: %v", err))
		return result
	}

	// Validate identity
	if config.Name == "" {
		result.Valid = false
		result.Errors = append(result.Errors, "name is required")
	}
	if config.Description == "" {
		result.Valid = false
		result.Errors = append(result.Errors, "description is required")
	}

	// Validate board geometry
	if config.BoardSize < minBoardSize || config.BoardSize > maxBoardSize {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("board_size must be between %d and %d, got %d", minBoardSize, maxBoardSize, config.BoardSize))
	}

	cells := config.BoardSize * config.BoardSize
	if cells > 0 {
		if config.InitialTiles < 1 || config.InitialTiles > cells {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("initial_tiles must be between 1 and %d, got %d", cells, config.InitialTiles))
		}
		if config.SpawnPerMove < 1 || config.SpawnPerMove >= cells {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("spawn_per_move must be between 1 and %d, got %d", cells-1, config.SpawnPerMove))
		}
	}

	// Validate spawn range (stored exponents, half-open)
	if config.SpawnMin < 1 {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("spawn_min must be at least 1, got %d", config.SpawnMin))
	}
	if config.SpawnMax <= config.SpawnMin {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("spawn_max must be greater than spawn_min, got [%d,%d)", config.SpawnMin, config.SpawnMax))
	}

	// Validate win condition
	if config.WinExponent < 0 {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("win_exponent must be >= 0, got %d", config.WinExponent))
	}
	if config.WinExponent > 0 && config.WinExponent < config.SpawnMax {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("win_exponent %d is reachable by spawning alone (spawn range [%d,%d))", config.WinExponent, config.SpawnMin, config.SpawnMax))
	}

	// Validate messages
	requiredMessages := []string{
		"welcome",
		"game_over",
		"invalid_move",
		"score_status",
	}
	if config.WinExponent > 0 {
		requiredMessages = append(requiredMessages, "victory")
	}
	for _, msg := range requiredMessages {
		if _, exists := config.Messages[msg]; !exists {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Missing required message: %s", msg))
		}
	}

	// Template messages must carry exactly one %d verb
	for _, tmpl := range []string{"victory", "score_status"} {
		if text, exists := config.Messages[tmpl]; exists {
			if strings.Count(text, "%d") != 1 {
				result.Valid = false
				result.Errors = append(result.Errors, fmt.Sprintf("Message %s must contain exactly one %%d placeholder", tmpl))
			}
		}
	}

	// Reachability: the win tile must be buildable on the board at all
	if result.Valid {
		reachability := validateWinReachable(config)
		if !reachability.Valid {
			result.Valid = false
			result.Errors = append(result.Errors, reachability.Errors...)
		} else {
			result.Errors = append(result.Errors, reachability.Errors...)
		}
	}

	// Add informational data
	if result.Valid {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Name: %s", config.Name))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Board: %dx%d", config.BoardSize, config.BoardSize))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Seeding: %d initial, %d per move, stored [%d,%d)", config.InitialTiles, config.SpawnPerMove, config.SpawnMin, config.SpawnMax))
		if config.WinExponent > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("✓ Win tile: %d", 1<<uint(config.WinExponent)))
		} else {
			result.Errors = append(result.Errors, "✓ Win tile: none (endless mode)")
		}
	}

	return result
}

// validateWinReachable checks that the win tile can in principle be built on
// the board. Every merge doubles a tile, so the largest exponent a full board
// of n*n cells can hold is (spawn_max - 1) + n*n when each cell in a perfect
// doubling chain is filled. A win exponent beyond that bound can never occur.
func validateWinReachable(config Config) ValidationResult {
	result := ValidationResult{
		Valid:  true,
		Errors: []string{},
	}

	if config.WinExponent == 0 {
		result.Errors = append(result.Errors, "✓ Reachability: endless mode, no win tile")
		return result
	}

	cells := config.BoardSize * config.BoardSize
	maxExponent := (config.SpawnMax - 1) + cells

	if config.WinExponent > maxExponent {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Reachability failure: win_exponent %d exceeds the board's ceiling of %d (%d cells, spawn max %d)", config.WinExponent, maxExponent, cells, config.SpawnMax))
	} else {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Reachability: win tile %d fits (ceiling exponent %d)", 1<<uint(config.WinExponent), maxExponent))
	}

	return result
}

// main scans ../configs for *.json files and validates each one, printing a
// concise report and exiting with non-zero status if any are invalid.
func main() {
	configDir := "../configs"
	if len(os.Args) > 1 {
		configDir = os.Args[1]
	}

	files, err := filepath.Glob(filepath.Join(configDir, "*.json"))
	if err != nil {
		fmt.Printf("Error finding config files: %v\n", err)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validateConfig(file)

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
		fmt.Println("✅ All configurations are valid!")
	} else {
		fmt.Println("❌ Some configurations have errors")
		os.Exit(1)
	}
}
