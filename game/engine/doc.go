// Package engine provides the core game logic for the 2048 sliding-tile game.
//
// The engine package implements the game mechanics including:
//   - The N×N tile board with exponent-encoded tile values
//   - Directional shift-and-merge moves with per-tile movement traces
//   - Terminal-state detection and scoring
//   - Random tile seeding with an injectable random source
//   - JSON board snapshots and game state persistence
//
// Core Types:
//
// Board holds the grid, score and size and is mutated only through Set,
// Generate and Core.Shift. Core is a stateless operator that applies moves
// and detects game over. Game wraps both with the round-level state machine
// (spawn after accepted moves, win/terminal status, move history) that
// drivers such as the CLI, the HTTP API and the MCP tools consume.
//
// Usage:
//
//	game, err := engine.NewGame(engine.DefaultConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	outcome := game.Move(engine.Left)
//	if !outcome.Moved {
//		// no tile could move in that direction; ask for another input
//	}
//
// Tile Encoding:
//
// A tile stores the exponent of its displayed value: stored 1 displays as 2,
// stored 11 displays as 2048. Stored 0 marks an empty cell, which is safe
// because a displayed 1 is never a legal 2048 tile. Merging two tiles of
// stored value v produces one tile of v+1 and scores 2^(v+1) points.
package engine
