// Package session provides session management for the 2048 game server.
//
// The session package implements:
//   - Thread-safe session storage and retrieval
//   - Unique session ID generation
//   - Session lifecycle management and expiry cleanup
//   - JSON file persistence of game snapshots
//
// Core Types:
//
// Manager is the main session manager that handles all session operations.
// Session (defined in the service package) represents an individual game
// with its own engine instance and metadata like creation time and last
// access time. FilePersistence stores each session as one JSON document
// embedding the board snapshot, status and move history.
//
// Session Identifiers:
//
// Sessions use 4-character hex IDs for easy reference. The manager ensures
// IDs are unique and generates them from cryptographic randomness.
//
// Concurrency:
//
// The session manager is thread-safe and supports concurrent operations.
// Multiple goroutines can safely create, retrieve, and modify different
// sessions simultaneously. Internal locking ensures data consistency.
package session
