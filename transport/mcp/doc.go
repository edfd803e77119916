// Package mcp provides a Model Context Protocol interface for the 2048 game.
//
// The mcp package implements:
//   - MCP server for AI agent integration
//   - Tool definitions for game operations
//   - Session-aware command execution
//   - Stdio and HTTP transport modes
//
// MCP Tools:
//
// The package exposes the following tools for AI agents:
//   - game_state: Get current game state with board visualization
//   - move: Execute single directional shift
//   - bulk_move: Execute multiple moves in sequence
//   - reset_game: Reset game to initial state
//   - move_history: Retrieve move history with pagination
//   - create_session: Create new game session with config selection
//   - get_session: Get specific session details
//   - list_sessions: List all active sessions
//   - list_configs: List available game configurations
//   - high_scores: View the leaderboard of finished games
//   - game_instructions: Get comprehensive game rules
//
// Architecture:
//
// The client is a thin proxy: every tool call is translated into a REST
// request against the game server, so the MCP surface and the HTTP API
// always agree on behavior.
//
// AI Integration:
//
// The MCP interface enables AI agents to:
//   - Autonomously play the game
//   - Develop and test merge strategies
//   - Analyze board states and make decisions
//   - Manage multiple game sessions
//   - Learn from move history
package mcp
