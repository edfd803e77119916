// Package api provides HTTP REST API handlers for the 2048 game server.
//
// The api package implements:
//   - RESTful endpoints for game operations
//   - Session management endpoints
//   - Configuration listing and creation
//   - High-score leaderboard access
//   - WebSocket upgrade handling
//
// Endpoints:
//
// Session Management:
//   - POST /api/sessions - Create new session
//   - GET /api/sessions - List all sessions
//   - GET /api/sessions/{id} - Get specific session
//   - DELETE /api/sessions/{id} - Delete session
//
// Game Operations:
//   - GET /api/sessions/{id}/state - Get current game state
//   - POST /api/sessions/{id}/move - Execute a single move
//   - POST /api/sessions/{id}/bulk-move - Execute a sequence of moves
//   - POST /api/sessions/{id}/reset - Reset the game
//   - GET /api/sessions/{id}/history - Get move history with pagination
//
// Configuration:
//   - GET /api/configs - List available configurations
//   - POST /api/configs - Save a new configuration
//   - GET /api/configs/{name} - Get a specific configuration
//
// High Scores:
//   - GET /api/highscores - Paginated leaderboard of finished games
//
// Request/Response Format:
//
// All endpoints accept and return JSON. Moves are sent as POST with a JSON
// body:
//
//	{"direction": "up|down|left|right"}
//
// and bulk moves as:
//
//	{"moves": ["up", "left", "left"]}
//
// Move responses carry the tile traces of the move so clients can animate
// slides and merges, plus the full game state after seeding.
//
// Error Handling:
//
// Errors are returned as JSON with appropriate HTTP status codes:
//
//	{"error": "error message"}
package api
