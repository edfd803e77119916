package engine

import (
	"fmt"
	"math/rand"
	"time"
)

// Status is the round-level state of a game.
type Status string

const (
	StatusPlaying  Status = "playing"
	StatusWon      Status = "won"
	StatusGameOver Status = "game_over"
)

// MoveRecord is one entry of a game's move history.
type MoveRecord struct {
	Direction  string  `json:"direction"`
	Moved      bool    `json:"moved"`
	ScoreDelta int     `json:"score_delta"`
	Traces     []Trace `json:"traces,omitempty"`
	Timestamp  int64   `json:"timestamp"`
	MoveNumber int     `json:"move_number"`
}

// GameState is the complete serializable state of a game.
type GameState struct {
	Board       *Board       `json:"board"`
	Status      Status       `json:"status"`
	Message     string       `json:"message"`
	MoveHistory []MoveRecord `json:"move_history"`
	TotalMoves  int          `json:"total_moves"`
}

// MoveOutcome describes the effect of a single Move call.
type MoveOutcome struct {
	Moved      bool    `json:"moved"`
	Traces     []Trace `json:"traces"`
	ScoreDelta int     `json:"score_delta"`
	Spawned    int     `json:"spawned"`
	Status     Status  `json:"status"`
}

// Game owns a board and drives the round-level state machine: shift, then
// seed new tiles on accepted moves, then check for win and terminal states.
// The shift/merge rules themselves live in Core, which stays stateless.
type Game struct {
	state  *GameState
	config *GameConfig
	core   Core
	rng    *rand.Rand
}

// NewGame creates a game from the given configuration and seeds the initial
// tiles.
func NewGame(config *GameConfig) (*Game, error) {
	return NewGameWithRand(config, nil)
}

// NewGameWithRand is NewGame with an explicit random source for
// deterministic play in tests and replays. A nil rng uses the shared source.
func NewGameWithRand(config *GameConfig, rng *rand.Rand) (*Game, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := ValidateGameConfig(config); err != nil {
		return nil, err
	}

	g := &Game{
		config: config,
		core:   NewCore(),
		rng:    rng,
	}
	g.state = g.initialState()
	return g, nil
}

// initialState builds a fresh board with the configured initial tiles.
func (g *Game) initialState() *GameState {
	board := NewBoard(g.config.BoardSize, nil, 0)
	if g.rng != nil {
		board.GenerateWith(g.rng, g.config.InitialTiles, g.config.SpawnMin, g.config.SpawnMax)
	} else {
		board.Generate(g.config.InitialTiles, g.config.SpawnMin, g.config.SpawnMax)
	}
	return &GameState{
		Board:       board,
		Status:      StatusPlaying,
		Message:     g.config.Messages.Welcome,
		MoveHistory: []MoveRecord{},
	}
}

// Move applies one shift. When nothing moves the call is a no-op: no tile is
// seeded and the caller should re-prompt. On accepted moves the configured
// number of tiles is seeded and the win/terminal status is updated.
func (g *Game) Move(dir Direction) *MoveOutcome {
	out := &MoveOutcome{Traces: []Trace{}, Status: g.state.Status}
	if g.state.Status == StatusGameOver {
		g.state.Message = g.config.Messages.GameOver
		return out
	}

	scoreBefore := g.state.Board.Score
	traces := g.core.Shift(g.state.Board, dir)
	out.Traces = traces
	out.ScoreDelta = g.state.Board.Score - scoreBefore

	if len(traces) == 0 {
		g.state.Message = g.config.Messages.InvalidMove
		g.record(dir, out)
		return out
	}

	out.Moved = true
	out.Spawned = g.spawn(g.config.SpawnPerMove)

	if g.config.Messages.ScoreStatus != "" {
		g.state.Message = fmt.Sprintf(g.config.Messages.ScoreStatus, g.state.Board.Score)
	}
	if g.config.WinExponent > 0 && g.state.Status == StatusPlaying && g.state.Board.MaxTile() >= g.config.WinExponent {
		g.state.Status = StatusWon
		g.state.Message = fmt.Sprintf(g.config.Messages.Victory, g.config.WinExponent.Displayed())
	}
	if g.core.IsGameOver(g.state.Board) {
		g.state.Status = StatusGameOver
		g.state.Message = g.config.Messages.GameOver
	}

	out.Status = g.state.Status
	g.record(dir, out)
	return out
}

// spawn seeds up to n tiles, capped by the number of empty cells so the
// rejection sampler in Generate always terminates. An accepted move vacates
// at least one cell, so the classic single-spawn game never hits the cap.
func (g *Game) spawn(n int) int {
	if free := g.state.Board.EmptyCount(); n > free {
		n = free
	}
	if n <= 0 {
		return 0
	}
	if g.rng != nil {
		g.state.Board.GenerateWith(g.rng, n, g.config.SpawnMin, g.config.SpawnMax)
	} else {
		g.state.Board.Generate(n, g.config.SpawnMin, g.config.SpawnMax)
	}
	return n
}

// record appends a move history entry, successful or not.
func (g *Game) record(dir Direction, out *MoveOutcome) {
	entry := MoveRecord{
		Direction:  dir.String(),
		Moved:      out.Moved,
		ScoreDelta: out.ScoreDelta,
		Traces:     out.Traces,
		Timestamp:  time.Now().Unix(),
		MoveNumber: g.state.TotalMoves + 1,
	}
	g.state.MoveHistory = append(g.state.MoveHistory, entry)
	g.state.TotalMoves++
}

// State returns the current game state. Callers must not mutate it outside
// the Game's methods.
func (g *Game) State() *GameState {
	return g.state
}

// SetState replaces the game state, used when loading persisted sessions.
func (g *Game) SetState(state *GameState) error {
	if state == nil {
		return fmt.Errorf("state cannot be nil")
	}
	if state.Board == nil {
		return fmt.Errorf("state board cannot be nil")
	}
	if err := state.Board.Validate(); err != nil {
		return fmt.Errorf("invalid board in state: %w", err)
	}
	if state.MoveHistory == nil {
		state.MoveHistory = []MoveRecord{}
	}
	g.state = state
	return nil
}

// Reset starts a fresh board while keeping the cumulative move history and
// total move count.
func (g *Game) Reset() *GameState {
	prevHistory := g.state.MoveHistory
	prevTotal := g.state.TotalMoves

	g.state = g.initialState()
	g.state.MoveHistory = prevHistory
	g.state.TotalMoves = prevTotal
	return g.state
}

// Config returns the game's configuration.
func (g *Game) Config() *GameConfig {
	return g.config
}

// IsGameOver reports whether the game has reached its terminal state.
func (g *Game) IsGameOver() bool {
	return g.state.Status == StatusGameOver
}

// IsWon reports whether the winning tile has been reached.
func (g *Game) IsWon() bool {
	return g.state.Status == StatusWon
}

// Score returns the current score.
func (g *Game) Score() int {
	return g.state.Board.Score
}

// MaxTile returns the largest stored tile value on the board.
func (g *Game) MaxTile() Tile {
	return g.state.Board.MaxTile()
}

// Board returns the underlying board.
func (g *Game) Board() *Board {
	return g.state.Board
}

// NewSeededGame is a convenience wrapper for deterministic games.
func NewSeededGame(config *GameConfig, seed int64) (*Game, error) {
	return NewGameWithRand(config, rand.New(rand.NewSource(seed)))
}
