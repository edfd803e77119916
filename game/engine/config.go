package engine

import "fmt"

const (
	// Validation constants
	MinBoardSize = 2
	MaxBoardSize = 16
	MaxBulkMoves = 50

	// DefaultWinExponent is the stored value of the classic winning tile
	// (2^11 = 2048).
	DefaultWinExponent Tile = 11
)

// GameConfig defines the rules of one game variant, loaded from JSON files.
type GameConfig struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	BoardSize   int    `json:"board_size"`

	// InitialTiles is the number of tiles seeded when a game starts.
	InitialTiles int `json:"initial_tiles"`

	// SpawnPerMove is the number of tiles seeded after each accepted move.
	SpawnPerMove int `json:"spawn_per_move"`

	// SpawnMin and SpawnMax bound the stored value of seeded tiles as the
	// half-open range [SpawnMin, SpawnMax). The classic game uses [1,3):
	// stored 1 or 2, displayed 2 or 4.
	SpawnMin Tile `json:"spawn_min"`
	SpawnMax Tile `json:"spawn_max"`

	// WinExponent is the stored tile value that marks the game as won.
	// Zero disables the win condition (endless mode).
	WinExponent Tile `json:"win_exponent"`

	Messages Messages `json:"messages"`
}

// Messages holds the player-facing strings for one game variant. Victory
// and ScoreStatus are fmt templates taking the displayed win tile and the
// current score respectively.
type Messages struct {
	Welcome     string `json:"welcome"`
	Victory     string `json:"victory"`
	GameOver    string `json:"game_over"`
	InvalidMove string `json:"invalid_move"`
	ScoreStatus string `json:"score_status"`
}

// ValidateGameConfig validates a game configuration for correctness and
// playability.
func ValidateGameConfig(config *GameConfig) error {
	if config.Name == "" {
		return fmt.Errorf("config validation: name is required")
	}
	if config.Description == "" {
		return fmt.Errorf("config validation: description is required")
	}

	if config.BoardSize < MinBoardSize || config.BoardSize > MaxBoardSize {
		return fmt.Errorf("config validation: board_size must be between %d and %d, got %d",
			MinBoardSize, MaxBoardSize, config.BoardSize)
	}

	cells := config.BoardSize * config.BoardSize
	if config.InitialTiles < 1 || config.InitialTiles > cells {
		return fmt.Errorf("config validation: initial_tiles must be between 1 and %d, got %d",
			cells, config.InitialTiles)
	}
	if config.SpawnPerMove < 1 || config.SpawnPerMove >= cells {
		return fmt.Errorf("config validation: spawn_per_move must be between 1 and %d, got %d",
			cells-1, config.SpawnPerMove)
	}

	if config.SpawnMin < 1 {
		return fmt.Errorf("config validation: spawn_min must be at least 1 (stored value), got %d", config.SpawnMin)
	}
	if config.SpawnMax <= config.SpawnMin {
		return fmt.Errorf("config validation: spawn_max must be greater than spawn_min, got [%d,%d)",
			config.SpawnMin, config.SpawnMax)
	}

	if config.WinExponent < 0 {
		return fmt.Errorf("config validation: win_exponent must be >= 0, got %d", config.WinExponent)
	}
	if config.WinExponent > 0 && config.WinExponent < config.SpawnMax {
		return fmt.Errorf("config validation: win_exponent %d is reachable by spawning alone (spawn range [%d,%d))",
			config.WinExponent, config.SpawnMin, config.SpawnMax)
	}

	if config.Messages.Welcome == "" {
		return fmt.Errorf("config validation: messages.welcome is required")
	}
	if config.WinExponent > 0 && config.Messages.Victory == "" {
		return fmt.Errorf("config validation: messages.victory is required when win_exponent is set")
	}
	if config.Messages.GameOver == "" {
		return fmt.Errorf("config validation: messages.game_over is required")
	}

	return nil
}

// DefaultConfig returns the classic 4×4 game: one tile seeded per accepted
// move with a stored value in [1,3), win at 2048.
func DefaultConfig() *GameConfig {
	config := &GameConfig{
		Name:         "classic",
		Description:  "Classic 4x4 2048",
		BoardSize:    4,
		InitialTiles: 1,
		SpawnPerMove: 1,
		SpawnMin:     1,
		SpawnMax:     3,
		WinExponent:  DefaultWinExponent,
	}
	config.Messages.Welcome = "Welcome to 2048! Slide tiles with up/down/left/right."
	config.Messages.Victory = "You reached %d!"
	config.Messages.GameOver = "No moves left. Game over!"
	config.Messages.InvalidMove = "Nothing moved. Try another direction."
	config.Messages.ScoreStatus = "Score: %d"
	return config
}
