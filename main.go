// Command game2048 starts the 2048 game server or plays a game in the
// terminal.
//
// It provides three subcommands:
//  1. "server" (default) – runs the HTTP server exposing REST API, WebSocket, and an /mcp HTTP endpoint
//  2. "mcp" – runs an MCP stdio server and spins up an internal HTTP API if none is available
//  3. "play" – plays an interactive game on stdin/stdout
//
// Flags control host/port, config directory, the high-score database path,
// debug logging, and optional ngrok tunneling for easy external access
// during development.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"

	"game2048/api"
	"game2048/game/config"
	"game2048/game/engine"
	"game2048/game/highscore"
	"game2048/game/service"
	"game2048/game/session"
	"game2048/transport/mcp"
	"game2048/transport/websocket"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "2048 Game Server"
)

// getConfigDirDefault returns the default configuration directory.
// It first honors the CONFIG_DIR environment variable, then falls back to "configs".
func getConfigDirDefault() string {
	if configDir := os.Getenv("CONFIG_DIR"); configDir != "" {
		return configDir
	}
	return "configs"
}

func main() {
	// Load .env file if it exists (ignore error if not found)
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Warning: error loading .env file: %v\n", err)
		}
	}

	cmd := &cli.Command{
		Name:           "game2048",
		Usage:          "2048 puzzle engine with HTTP, WebSocket, and MCP interfaces",
		Version:        Version,
		DefaultCommand: "server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config-dir",
				Value: getConfigDirDefault(),
				Usage: "directory containing game configurations",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "server",
				Usage: "run the HTTP server with REST API, WebSocket, and MCP endpoint",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "port",
						Value: 8080,
						Usage: "HTTP server port",
					},
					&cli.StringFlag{
						Name:  "host",
						Value: "localhost",
						Usage: "HTTP server host",
					},
					&cli.StringFlag{
						Name:  "scores-db",
						Value: "highscores.db",
						Usage: "path to the SQLite high-score database (empty disables)",
					},
					&cli.BoolFlag{
						Name:  "ngrok",
						Usage: "enable ngrok tunnel",
					},
					&cli.StringFlag{
						Name:  "ngrok-auth",
						Usage: "ngrok auth token (or use NGROK_AUTHTOKEN env var)",
					},
					&cli.StringFlag{
						Name:  "ngrok-domain",
						Usage: "custom ngrok domain (optional)",
					},
				},
				Action: runServer,
			},
			{
				Name:  "mcp",
				Usage: "run an MCP stdio server backed by an internal or external HTTP API",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "scores-db",
						Value: "highscores.db",
						Usage: "path to the SQLite high-score database (empty disables)",
					},
				},
				Action: runMCP,
			},
			{
				Name:  "play",
				Usage: "play an interactive game on the terminal",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "config",
						Value: "classic",
						Usage: "game configuration to play",
					},
					&cli.StringFlag{
						Name:  "save",
						Usage: "write the final board snapshot to this file",
					},
					&cli.IntFlag{
						Name:  "seed",
						Usage: "seed for reproducible tile spawns (0 uses a random seed)",
					},
				},
				Action: runPlay,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setupLogging configures the global zerolog logger for the selected command.
func setupLogging(cmd *cli.Command) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if cmd.Bool("debug") {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
}

// runServer starts the HTTP server with REST API, WebSocket hub, and an /mcp proxy endpoint.
// If ngrok is enabled (via flag or environment), it also provisions a public tunnel.
func runServer(ctx context.Context, cmd *cli.Command) error {
	setupLogging(cmd)
	log.Info().Str("version", Version).Msg("starting " + AppName)

	gameService, err := initializeServices(cmd.String("config-dir"), cmd.String("scores-db"))
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}

	// Create WebSocket hub
	hub := websocket.NewHub()
	go hub.Run()

	// Create API server
	apiServer := api.NewServer(gameService, hub)

	addr := fmt.Sprintf("%s:%d", cmd.String("host"), cmd.Int("port"))

	// Create MCP client for /mcp endpoint
	baseURL := fmt.Sprintf("http://%s", addr)
	mcpClient := mcp.NewClient(baseURL)

	// Create main router that combines API and MCP
	mainRouter := http.NewServeMux()

	// Mount API server at root
	mainRouter.Handle("/", apiServer)

	// Always add MCP endpoint for HTTP server
	mainRouter.HandleFunc("/mcp", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		response := mcpClient.GetMCPServer().HandleMessage(r.Context(), body)

		w.Header().Set("Content-Type", "application/json")
		responseData, err := json.Marshal(response)
		if err != nil {
			http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
			return
		}
		w.Write(responseData)
	})

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      mainRouter,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Setup graceful shutdown context
	serveCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Handle shutdown signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	var wg sync.WaitGroup

	// Start regular HTTP server
	wg.Add(1)
	go func() {
		defer wg.Done()

		log.Info().
			Str("addr", addr).
			Str("rest", fmt.Sprintf("http://%s/api", addr)).
			Str("websocket", fmt.Sprintf("ws://%s/ws?session=<session_id>", addr)).
			Str("mcp", fmt.Sprintf("http://%s/mcp", addr)).
			Msg("HTTP server listening")

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Check if ngrok should be enabled (from flag or environment)
	ngrokShouldRun := cmd.Bool("ngrok")
	if !ngrokShouldRun {
		if envEnabled := os.Getenv("NGROK_ENABLED"); envEnabled == "true" || envEnabled == "1" {
			ngrokShouldRun = true
		}
	}

	if ngrokShouldRun {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runNgrokTunnel(serveCtx, cmd, mainRouter)
		}()
	}

	// Wait for shutdown signal
	sig := <-stop
	log.Info().Str("signal", sig.String()).Msg("shutting down")
	cancel()

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	wg.Wait()
	log.Info().Msg("server stopped")
	return nil
}

// runNgrokTunnel establishes an ngrok tunnel and serves the router through it.
// The auth token and domain may come from flags or the NGROK_* environment variables.
func runNgrokTunnel(ctx context.Context, cmd *cli.Command, handler http.Handler) {
	authToken := cmd.String("ngrok-auth")
	if authToken == "" {
		authToken = os.Getenv("NGROK_AUTHTOKEN")
		if authToken == "" {
			authToken = os.Getenv("NGROK_AUTH_TOKEN")
		}
	}

	if authToken == "" {
		log.Warn().Msg("ngrok enabled but no auth token provided (use --ngrok-auth, NGROK_AUTHTOKEN, or NGROK_AUTH_TOKEN env var)")
		return
	}

	domain := cmd.String("ngrok-domain")
	if domain == "" {
		domain = os.Getenv("NGROK_DOMAIN")
	}

	var tunnel ngrokConfig.Tunnel
	if domain != "" {
		tunnel = ngrokConfig.HTTPEndpoint(ngrokConfig.WithDomain(domain))
		log.Info().Str("domain", domain).Msg("using custom ngrok domain")
	} else {
		tunnel = ngrokConfig.HTTPEndpoint()
	}

	tun, err := ngrok.Listen(ctx,
		tunnel,
		ngrok.WithAuthtoken(authToken),
	)
	if err != nil {
		log.Error().Err(err).Msg("failed to start ngrok tunnel")
		return
	}
	defer func() {
		if err := tun.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close ngrok tunnel")
		}
	}()

	ngrokURL := tun.URL()
	log.Info().
		Str("url", ngrokURL).
		Str("rest", ngrokURL+"/api").
		Str("websocket", ngrokURL+"/ws?session=<session_id>").
		Str("mcp", ngrokURL+"/mcp").
		Msg("ngrok tunnel established")

	if err := http.Serve(tun, handler); err != nil && err != http.ErrServerClosed {
		log.Error().Err(err).Msg("ngrok server error")
	}
	log.Info().Msg("ngrok tunnel closed")
}

// initializeServices wires config, session, and high-score storage into a game
// service. It also starts background routines that prune stale sessions and
// sync in-memory state with the session files on disk.
func initializeServices(configDir, scoresDB string) (service.GameService, error) {
	// Create config manager first (needed for persistence)
	configManager, err := config.NewManager(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create config manager: %w", err)
	}

	// Create session persistence
	sessionsDir := "sessions"
	persistence, err := session.NewFilePersistence(sessionsDir, configManager)
	if err != nil {
		return nil, fmt.Errorf("failed to create session persistence: %w", err)
	}

	// Create session manager with persistence
	sessionManager := session.NewManagerWithPersistence(persistence)

	// Load persisted sessions on startup
	if err := sessionManager.LoadPersistedSessions(); err != nil {
		log.Warn().Err(err).Msg("failed to load persisted sessions")
	}

	// Open the high-score store unless disabled
	var recorder service.HighScoreRecorder
	if scoresDB != "" {
		store, err := highscore.NewStore(scoresDB)
		if err != nil {
			return nil, fmt.Errorf("failed to open high-score store: %w", err)
		}
		recorder = store
	}

	gameService := service.NewGameService(sessionManager, configManager, recorder)

	// Start session cleanup routine
	go sessionCleanupRoutine(sessionManager)

	// Start filesystem sync routine
	go filesystemSyncRoutine(sessionManager, persistence)

	return gameService, nil
}

// sessionCleanupRoutine periodically removes sessions that have not been accessed
// within the provided retention window.
func sessionCleanupRoutine(manager *session.Manager) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		removed := manager.CleanupExpiredSessions(24 * time.Hour)
		if removed > 0 {
			log.Info().Int("removed", removed).Msg("cleaned up expired sessions")
		}
	}
}

// filesystemSyncRoutine periodically syncs in-memory sessions with filesystem state.
// It removes sessions from memory when their corresponding files are deleted.
func filesystemSyncRoutine(manager *session.Manager, persistence session.SessionPersistence) {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		if persistence == nil {
			continue
		}

		memorySessions := manager.List()

		pruned := 0
		for _, sess := range memorySessions {
			if !persistence.Exists(sess.ID) {
				// File deleted, remove from memory
				if err := manager.DeleteFromMemory(sess.ID); err == nil {
					pruned++
					log.Debug().Str("session_id", sess.ID).Msg("pruned session from memory (file deleted)")
				}
			}
		}

		if pruned > 0 {
			log.Info().Int("pruned", pruned).Msg("filesystem sync pruned orphaned sessions from memory")
		}
	}
}

// runMCP runs an MCP stdio server.
// It tries to reuse an external API at http://localhost:8080; if unavailable, it
// starts a minimal internal HTTP API bound to a random loopback port and targets that.
func runMCP(ctx context.Context, cmd *cli.Command) error {
	setupLogging(cmd)

	gameService, err := initializeServices(cmd.String("config-dir"), cmd.String("scores-db"))
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}

	var baseURL string

	// First, try to connect to external API server at localhost:8080
	externalURL := "http://localhost:8080"
	log.Debug().Str("url", externalURL).Msg("checking for external API server")

	testClient := &http.Client{Timeout: 2 * time.Second}
	resp, err := testClient.Get(externalURL + "/api/health")
	if err == nil && resp.StatusCode < 500 {
		resp.Body.Close()
		log.Info().Str("url", externalURL).Msg("external API server found, using it for MCP")
		baseURL = externalURL
	} else {
		// No external server found, start internal one
		listener, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			return fmt.Errorf("failed to get available port: %w", err)
		}

		internalAddr := listener.Addr().String()
		log.Info().Str("addr", internalAddr).Msg("starting internal HTTP server for MCP stdio")

		hub := websocket.NewHub()
		go hub.Run()

		apiServer := api.NewServer(gameService, hub)

		httpServer := &http.Server{
			Handler: apiServer,
		}

		go func() {
			if err := httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
				log.Error().Err(err).Msg("internal HTTP server error")
			}
		}()

		// Wait a moment for the server to be ready
		time.Sleep(100 * time.Millisecond)

		baseURL = fmt.Sprintf("http://%s", internalAddr)
	}

	mcpClient := mcp.NewClient(baseURL)

	log.Info().Str("base_url", baseURL).Msg("MCP stdio server ready")

	if err := server.ServeStdio(mcpClient.GetMCPServer()); err != nil {
		return fmt.Errorf("MCP stdio server error: %w", err)
	}
	return nil
}

// runPlay plays an interactive game on stdin/stdout. Moves are read one per
// line as w/a/s/d or up/left/down/right; invalid input and moves that change
// nothing are re-prompted. The command returns nil when the game reaches a
// terminal state or stdin is exhausted.
func runPlay(ctx context.Context, cmd *cli.Command) error {
	setupLogging(cmd)

	cfg := loadPlayConfig(cmd.String("config-dir"), cmd.String("config"))

	var (
		game *engine.Game
		err  error
	)
	if seed := int64(cmd.Int("seed")); seed != 0 {
		game, err = engine.NewSeededGame(cfg, seed)
	} else {
		game, err = engine.NewGame(cfg)
	}
	if err != nil {
		return fmt.Errorf("failed to start game: %w", err)
	}

	fmt.Println(cfg.Messages.Welcome)
	fmt.Println("Moves: w=up a=left s=down d=right (or up/left/down/right), q to quit.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Println()
		fmt.Println(game.Board().String())
		fmt.Printf(cfg.Messages.ScoreStatus+"\n", game.Score())

		if game.IsWon() {
			fmt.Printf(cfg.Messages.Victory+"\n", cfg.WinExponent.Displayed())
			break
		}
		if game.IsGameOver() {
			fmt.Println(cfg.Messages.GameOver)
			break
		}

		fmt.Print("> ")
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("failed to read input: %w", err)
			}
			// EOF ends the session cleanly
			break
		}

		input := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if input == "q" || input == "quit" || input == "exit" {
			break
		}

		dir, ok := parseMoveKey(input)
		if !ok {
			fmt.Println(cfg.Messages.InvalidMove)
			continue
		}

		outcome := game.Move(dir)
		if !outcome.Moved {
			fmt.Println(cfg.Messages.InvalidMove)
		}
	}

	if savePath := cmd.String("save"); savePath != "" {
		if err := game.Board().Save(savePath); err != nil {
			return fmt.Errorf("failed to save board snapshot: %w", err)
		}
		fmt.Printf("Saved board to %s\n", savePath)
	}

	return nil
}

// loadPlayConfig resolves the named config from the config directory, falling
// back to the built-in default when the directory or the name is unavailable.
func loadPlayConfig(configDir, name string) *engine.GameConfig {
	manager, err := config.NewManager(configDir)
	if err != nil {
		log.Debug().Err(err).Str("dir", configDir).Msg("config directory unavailable, using default config")
		return engine.DefaultConfig()
	}

	cfg, err := manager.LoadConfig(name)
	if err != nil {
		log.Warn().Err(err).Str("config", name).Msg("config not found, using default config")
		return engine.DefaultConfig()
	}
	return cfg
}

// parseMoveKey maps single-key and word forms of a move to a direction.
func parseMoveKey(input string) (engine.Direction, bool) {
	switch input {
	case "w":
		return engine.Up, true
	case "a":
		return engine.Left, true
	case "s":
		return engine.Down, true
	case "d":
		return engine.Right, true
	}

	dir, err := engine.ParseDirection(input)
	if err != nil {
		return engine.Up, false
	}
	return dir, true
}
