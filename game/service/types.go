package service

import (
	"time"

	"game2048/game/engine"
)

// SessionInfo provides information about a game session.
type SessionInfo struct {
	ID             string             `json:"id"`
	ConfigName     string             `json:"config_name"`
	CreatedAt      time.Time          `json:"created_at"`
	LastAccessedAt time.Time          `json:"last_accessed_at"`
	GameState      *engine.GameState  `json:"game_state"`
	GameConfig     *engine.GameConfig `json:"game_config"`
}

// MoveResult contains the result of a move operation. Moved is false when
// the shift was a no-op; the driver should re-prompt without seeding a tile.
type MoveResult struct {
	Moved      bool              `json:"moved"`
	Traces     []engine.Trace    `json:"traces"`
	ScoreDelta int               `json:"score_delta"`
	Spawned    int               `json:"spawned"`
	GameState  *engine.GameState `json:"game_state"`
	Message    string            `json:"message"`
	Events     []GameEvent       `json:"events,omitempty"`
}

// StepInfo is a compact record for each executed move in a bulk call.
type StepInfo struct {
	Idx        int            `json:"idx"`
	Dir        string         `json:"dir"`
	Moved      bool           `json:"moved"`
	ScoreDelta int            `json:"score_delta"`
	Traces     []engine.Trace `json:"traces,omitempty"`
}

// BulkMoveResult contains the result of multiple moves.
type BulkMoveResult struct {
	RequestedMoves int               `json:"requested_moves"`
	MovesExecuted  int               `json:"moves_executed"`
	Success        bool              `json:"success"`
	GameState      *engine.GameState `json:"game_state"`
	Events         []GameEvent       `json:"events"`
	StoppedReason  string            `json:"stopped_reason,omitempty"`
	StopReasonCode string            `json:"stop_reason_code,omitempty"` // no_op|game_over
	StoppedOnMove  int               `json:"stopped_on_move,omitempty"`  // 1-based index
	Truncated      bool              `json:"truncated,omitempty"`
	Limit          int               `json:"limit,omitempty"`

	StartScore int `json:"start_score"`
	EndScore   int `json:"end_score"`
	ScoreDelta int `json:"score_delta"`

	Steps []StepInfo `json:"steps,omitempty"`

	GameOver bool   `json:"game_over"`
	Message  string `json:"message,omitempty"`
}

// GameEvent represents an event that occurred during gameplay.
type GameEvent struct {
	Type      string    `json:"type"` // "move", "invalid_move", "victory", "game_over", "reset"
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// HistoryOptions configures move history retrieval.
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated move history.
type HistoryResponse struct {
	Moves       []engine.MoveRecord `json:"moves"`
	TotalMoves  int                 `json:"total_moves"`
	Page        int                 `json:"page"`
	PageSize    int                 `json:"page_size"`
	TotalPages  int                 `json:"total_pages"`
	HasNext     bool                `json:"has_next"`
	HasPrevious bool                `json:"has_previous"`
}

// ConfigInfo provides information about a game configuration.
type ConfigInfo struct {
	Filename    string `json:"filename"`
	ConfigID    string `json:"config_id"` // identifier used for session creation
	Name        string `json:"name"`      // display name
	Description string `json:"description"`
	BoardSize   int    `json:"board_size"`
	WinTile     int    `json:"win_tile"` // displayed value, 0 for endless mode
}

// ScoreEntry is one finished game in the high-score table.
type ScoreEntry struct {
	ID        int       `json:"id"`
	SessionID string    `json:"session_id"`
	Score     int       `json:"score"`
	MaxTile   int       `json:"max_tile"` // displayed value
	Moves     int       `json:"moves"`
	CreatedAt time.Time `json:"created_at"`
}
