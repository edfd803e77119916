// Package config provides configuration management for the 2048 game.
//
// The config package handles:
//   - Loading game configurations from JSON files
//   - Configuration validation and verification
//   - Default configuration management
//   - Configuration discovery and listing
//
// Configuration Format:
//
// Game configurations are stored as JSON files in the configs directory.
// Each configuration defines:
//   - Board size and number of initial tiles
//   - Spawn parameters (tiles per move, exponent range)
//   - The winning tile exponent (0 for endless play)
//   - Game messages for various events
//
// Available Configurations:
//
// The package ships with several board variants:
//   - classic: The standard 4x4 board, win at 2048
//   - big: A roomy 6x6 board for longer games
//   - tiny: A cramped 3x3 board that ends quickly
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal().Err(err).Msg("config manager")
//	}
//
//	// Load specific configuration
//	gameConfig, err := manager.LoadConfig("big")
//
//	// Get default configuration
//	defaultConfig := manager.GetDefault()
//
//	// List available configurations
//	configs, err := manager.ListConfigs()
//
// Validation:
//
// All configurations are validated for:
//   - Board size within supported bounds
//   - Initial tile count that fits on the board
//   - A non-empty spawn exponent range
//   - A win exponent at or above the spawn range
package config
