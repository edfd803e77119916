package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"game2048/game/engine"
)

// gameServiceImpl implements the GameService interface.
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	scores   HighScoreRecorder // optional, may be nil
	mu       sync.RWMutex
}

// NewGameService creates a new game service instance. The high-score
// recorder may be nil, in which case finished games are not recorded.
func NewGameService(sessions SessionManager, configs ConfigManager, scores HighScoreRecorder) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
		scores:   scores,
	}
}

// getConfigID returns the config_id for a given config display name, used
// for consistent API responses.
func (s *gameServiceImpl) getConfigID(configName string) string {
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == configName {
				return cfg.ConfigID
			}
		}
	}
	if configName == "" {
		return "default"
	}
	return configName
}

// CreateSession creates a new game session.
func (s *gameServiceImpl) CreateSession(ctx context.Context, configName string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var config *engine.GameConfig
	var err error
	if configName != "" {
		config, err = s.configs.LoadConfig(configName)
		if err != nil {
			if strings.Contains(err.Error(), "configuration not found") {
				availableConfigs, listErr := s.configs.ListConfigs()
				if listErr == nil && len(availableConfigs) > 0 {
					var configIDs []string
					for _, cfg := range availableConfigs {
						configIDs = append(configIDs, cfg.ConfigID)
					}
					return nil, fmt.Errorf("config '%s' not found. Available configs: %v", configName, configIDs)
				}
				return nil, fmt.Errorf("config '%s' not found", configName)
			}
			return nil, fmt.Errorf("failed to load config %s: %w", configName, err)
		}
	} else {
		config = s.configs.GetDefault()
	}

	// Let the session manager generate a proper 4-character ID.
	session, err := s.sessions.Create("", config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	configID := configName
	if configID == "" {
		configID = s.getConfigID(config.Name)
	}

	log.Info().Str("session", session.ID).Str("config", configID).Msg("session created")

	return &SessionInfo{
		ID:             session.ID,
		ConfigName:     configID,
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		GameState:      session.Game.State(),
		GameConfig:     session.Config,
	}, nil
}

// GetSession retrieves session information.
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	return &SessionInfo{
		ID:             session.ID,
		ConfigName:     s.getConfigID(session.Config.Name),
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		GameState:      session.Game.State(),
		GameConfig:     session.Config,
	}, nil
}

// ListSessions returns all active sessions.
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))

	for _, sess := range sessions {
		result = append(result, &SessionInfo{
			ID:             sess.ID,
			ConfigName:     s.getConfigID(sess.Config.Name),
			CreatedAt:      sess.CreatedAt,
			LastAccessedAt: sess.LastAccessedAt,
			GameState:      sess.Game.State(),
			GameConfig:     sess.Config,
		})
	}

	return result, nil
}

// DeleteSession removes a session.
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessions.Delete(sessionID)
}

// Move executes a single move for a session. An unparseable direction is an
// error; a parseable direction that moves nothing is a valid no-op result.
func (s *gameServiceImpl) Move(ctx context.Context, sessionID, direction string) (*MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	dir, err := engine.ParseDirection(direction)
	if err != nil {
		return nil, err
	}

	s.sessions.UpdateLastAccessed(sessionID)

	result := s.applyMove(sess, dir)

	// Auto-save session after move
	if err := s.sessions.Save(sessionID); err != nil {
		log.Warn().Err(err).Str("session", sessionID).Msg("failed to persist session after move")
	}

	return result, nil
}

// applyMove runs one engine move and assembles the result, recording the
// high score when the game just ended.
func (s *gameServiceImpl) applyMove(sess *Session, dir engine.Direction) *MoveResult {
	wasOver := sess.Game.IsGameOver()
	wasWon := sess.Game.IsWon()

	outcome := sess.Game.Move(dir)
	state := sess.Game.State()

	result := &MoveResult{
		Moved:      outcome.Moved,
		Traces:     outcome.Traces,
		ScoreDelta: outcome.ScoreDelta,
		Spawned:    outcome.Spawned,
		GameState:  state,
		Message:    state.Message,
		Events:     []GameEvent{},
	}

	now := time.Now()
	if outcome.Moved {
		result.Events = append(result.Events, GameEvent{
			Type:      "move",
			Message:   fmt.Sprintf("moved %s, %d traces, +%d points", dir, len(outcome.Traces), outcome.ScoreDelta),
			Timestamp: now,
		})
	} else {
		result.Events = append(result.Events, GameEvent{
			Type:      "invalid_move",
			Message:   fmt.Sprintf("nothing moved %s", dir),
			Timestamp: now,
		})
	}
	if !wasWon && sess.Game.IsWon() {
		result.Events = append(result.Events, GameEvent{
			Type:      "victory",
			Message:   state.Message,
			Timestamp: now,
		})
		s.recordScore(sess)
	}
	if !wasOver && sess.Game.IsGameOver() {
		result.Events = append(result.Events, GameEvent{
			Type:      "game_over",
			Message:   state.Message,
			Timestamp: now,
		})
		s.recordScore(sess)
	}

	return result
}

// recordScore stores a finished game in the high-score table.
func (s *gameServiceImpl) recordScore(sess *Session) {
	if s.scores == nil {
		return
	}
	entry := ScoreEntry{
		SessionID: sess.ID,
		Score:     sess.Game.Score(),
		MaxTile:   sess.Game.MaxTile().Displayed(),
		Moves:     sess.Game.State().TotalMoves,
	}
	if err := s.scores.Record(entry); err != nil {
		log.Warn().Err(err).Str("session", sess.ID).Msg("failed to record high score")
		return
	}
	log.Info().Str("session", sess.ID).Int("score", entry.Score).Int("max_tile", entry.MaxTile).
		Msg("game over, high score recorded")
}

// BulkMove executes multiple moves in sequence, stopping at the first no-op
// or when the game ends.
func (s *gameServiceImpl) BulkMove(ctx context.Context, sessionID string, moves []string) (*BulkMoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	state := sess.Game.State()
	result := &BulkMoveResult{
		RequestedMoves: len(moves),
		Events:         make([]GameEvent, 0),
		Success:        true,
		StartScore:     state.Board.Score,
		GameOver:       sess.Game.IsGameOver(),
		Message:        state.Message,
	}

	// Limit moves to prevent abuse
	if len(moves) > engine.MaxBulkMoves {
		result.Truncated = true
		result.Limit = engine.MaxBulkMoves
		moves = moves[:engine.MaxBulkMoves]
	}

	for i, move := range moves {
		if sess.Game.IsGameOver() {
			result.StoppedReason = "the game is over"
			result.StopReasonCode = "game_over"
			result.StoppedOnMove = result.MovesExecuted + 1
			break
		}

		dir, err := engine.ParseDirection(move)
		if err != nil {
			return nil, fmt.Errorf("move %d: %w", i+1, err)
		}

		stepResult := s.applyMove(sess, dir)
		result.Events = append(result.Events, stepResult.Events...)
		result.Steps = append(result.Steps, StepInfo{
			Idx:        i + 1,
			Dir:        dir.String(),
			Moved:      stepResult.Moved,
			ScoreDelta: stepResult.ScoreDelta,
			Traces:     stepResult.Traces,
		})

		if !stepResult.Moved {
			result.Success = false
			result.StoppedReason = fmt.Sprintf("nothing moved %s", dir)
			result.StopReasonCode = "no_op"
			result.StoppedOnMove = i + 1
			break
		}
		result.MovesExecuted++
	}

	state = sess.Game.State()
	result.GameState = state
	result.EndScore = state.Board.Score
	result.ScoreDelta = result.EndScore - result.StartScore
	result.GameOver = sess.Game.IsGameOver()
	result.Message = state.Message

	if err := s.sessions.Save(sessionID); err != nil {
		log.Warn().Err(err).Str("session", sessionID).Msg("failed to persist session after bulk move")
	}

	return result, nil
}

// Reset resets a session's game to its initial state.
func (s *gameServiceImpl) Reset(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	state := sess.Game.Reset()

	if err := s.sessions.Save(sessionID); err != nil {
		log.Warn().Err(err).Str("session", sessionID).Msg("failed to persist session after reset")
	}

	return state, nil
}

// GetGameState returns the current state for a session.
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	return sess.Game.State(), nil
}

// GetMoveHistory returns paginated move history for a session.
func (s *gameServiceImpl) GetMoveHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	history := sess.Game.State().MoveHistory
	total := len(history)

	page := opts.Page
	if page < 1 {
		page = 1
	}
	limit := opts.Limit
	if limit < 1 {
		limit = 20
	}

	ordered := history
	if opts.Order == "desc" {
		ordered = make([]engine.MoveRecord, total)
		for i, record := range history {
			ordered[total-1-i] = record
		}
	}

	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	totalPages := (total + limit - 1) / limit
	if totalPages == 0 {
		totalPages = 1
	}

	return &HistoryResponse{
		Moves:       ordered[start:end],
		TotalMoves:  total,
		Page:        page,
		PageSize:    limit,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrevious: page > 1,
	}, nil
}

// ListConfigs returns information about all available configurations.
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a configuration by name.
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig validates and persists a configuration.
func (s *gameServiceImpl) SaveConfig(ctx context.Context, configName string, config *engine.GameConfig) error {
	return s.configs.SaveConfig(configName, config)
}

// TopScores returns the best finished games.
func (s *gameServiceImpl) TopScores(ctx context.Context, limit, offset int) ([]ScoreEntry, error) {
	if s.scores == nil {
		return []ScoreEntry{}, nil
	}
	if limit < 1 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}
	return s.scores.Top(limit, offset)
}
