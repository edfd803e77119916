package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"game2048/game/engine"
)

func createValidConfig() *engine.GameConfig {
	return &engine.GameConfig{
		Name:         "Test Config",
		Description:  "Test configuration",
		BoardSize:    4,
		InitialTiles: 2,
		SpawnPerMove: 1,
		SpawnMin:     1,
		SpawnMax:     3,
		WinExponent:  11,
		Messages: engine.Messages{
			Welcome:     "Welcome!",
			Victory:     "You reached %d!",
			GameOver:    "Game over!",
			InvalidMove: "Nothing moved",
			ScoreStatus: "Score: %d",
		},
	}
}

func writeConfigFile(t *testing.T, dir, name string, config *engine.GameConfig) {
	t.Helper()

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal config: %v", err)
	}

	filename := name
	if filepath.Ext(filename) == "" {
		filename = name + ".json"
	}

	if err := os.WriteFile(filepath.Join(dir, filename), data, 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
}

func TestNewManager(t *testing.T) {
	t.Run("valid directory", func(t *testing.T) {
		dir := t.TempDir()

		defaultConfig := createValidConfig()
		defaultConfig.Name = "Classic"
		writeConfigFile(t, dir, "classic", defaultConfig)

		manager, err := NewManager(dir)
		if err != nil {
			t.Fatalf("Failed to create manager: %v", err)
		}
		if manager == nil {
			t.Error("Expected manager to be non-nil")
		}
		if manager.GetDefault().Name != "Classic" {
			t.Errorf("Expected default config 'Classic', got '%s'", manager.GetDefault().Name)
		}
	})

	t.Run("non-existent directory", func(t *testing.T) {
		_, err := NewManager("/non/existent/path")
		if err == nil {
			t.Error("Expected error for non-existent directory")
		}
	})

	t.Run("missing default config", func(t *testing.T) {
		dir := t.TempDir()

		manager, err := NewManager(dir)
		if err != nil {
			t.Errorf("NewManager should succeed even without config files, got error: %v", err)
		}
		if manager == nil {
			t.Fatal("Expected manager to be created")
		}

		// Falls back to the built-in default
		defaultConfig := manager.GetDefault()
		if defaultConfig == nil {
			t.Fatal("Expected default config to be available")
		}
		if err := engine.ValidateGameConfig(defaultConfig); err != nil {
			t.Errorf("Expected fallback default config to be valid: %v", err)
		}
	})
}

func TestManager_LoadConfig(t *testing.T) {
	dir := t.TempDir()

	defaultConfig := createValidConfig()
	defaultConfig.Name = "Classic"
	writeConfigFile(t, dir, "classic", defaultConfig)

	bigConfig := createValidConfig()
	bigConfig.Name = "Big"
	bigConfig.BoardSize = 6
	writeConfigFile(t, dir, "big", bigConfig)

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	t.Run("load existing config", func(t *testing.T) {
		config, err := manager.LoadConfig("big")
		if err != nil {
			t.Fatalf("Failed to load config: %v", err)
		}
		if config.Name != "Big" {
			t.Errorf("Expected config name 'Big', got '%s'", config.Name)
		}
		if config.BoardSize != 6 {
			t.Errorf("Expected board size 6, got %d", config.BoardSize)
		}
	})

	t.Run("load with .json extension", func(t *testing.T) {
		config, err := manager.LoadConfig("big.json")
		if err != nil {
			t.Fatalf("Failed to load config with extension: %v", err)
		}
		if config.Name != "Big" {
			t.Errorf("Expected config name 'Big', got '%s'", config.Name)
		}
	})

	t.Run("load from cache", func(t *testing.T) {
		config1, _ := manager.LoadConfig("big")
		config2, err := manager.LoadConfig("big")
		if err != nil {
			t.Fatalf("Failed to load config from cache: %v", err)
		}

		// Same pointer means it came from the cache
		if config1 != config2 {
			t.Error("Expected config to be loaded from cache")
		}
	})

	t.Run("load non-existent config", func(t *testing.T) {
		_, err := manager.LoadConfig("non-existent")
		if err != ErrConfigNotFound {
			t.Errorf("Expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("load invalid config", func(t *testing.T) {
		invalidData := []byte(`{"name": ""}`)
		if err := os.WriteFile(filepath.Join(dir, "invalid.json"), invalidData, 0644); err != nil {
			t.Fatalf("Failed to write invalid config: %v", err)
		}

		_, err := manager.LoadConfig("invalid")
		if err == nil {
			t.Error("Expected error for invalid config")
		}
	})

	t.Run("load malformed JSON", func(t *testing.T) {
		malformedData := []byte(`{"name": "Malformed", invalid json}`)
		if err := os.WriteFile(filepath.Join(dir, "malformed.json"), malformedData, 0644); err != nil {
			t.Fatalf("Failed to write malformed config: %v", err)
		}

		_, err := manager.LoadConfig("malformed")
		if err == nil {
			t.Error("Expected error for malformed JSON")
		}
	})
}

func TestManager_ListConfigs(t *testing.T) {
	dir := t.TempDir()

	configs := []struct {
		filename string
		name     string
	}{
		{"classic", "Classic"},
		{"big", "Big"},
		{"tiny", "Tiny"},
	}

	for _, cfg := range configs {
		config := createValidConfig()
		config.Name = cfg.name
		writeConfigFile(t, dir, cfg.filename, config)
	}

	// Non-JSON files are ignored
	os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("readme"), 0644)

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	configList, err := manager.ListConfigs()
	if err != nil {
		t.Fatalf("Failed to list configs: %v", err)
	}
	if len(configList) != 3 {
		t.Errorf("Expected 3 configs, got %d", len(configList))
	}

	found := make(map[string]bool)
	for _, info := range configList {
		found[info.Name] = true
		if info.WinTile != 2048 {
			t.Errorf("Expected win tile 2048 for '%s', got %d", info.Name, info.WinTile)
		}
	}

	for _, cfg := range configs {
		if !found[cfg.name] {
			t.Errorf("Config '%s' not found in list", cfg.name)
		}
	}
}

func TestManager_ReloadConfig(t *testing.T) {
	dir := t.TempDir()

	config := createValidConfig()
	config.Name = "Changeable"
	config.BoardSize = 4
	writeConfigFile(t, dir, "classic", config)
	writeConfigFile(t, dir, "changeable", config)

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	loaded, _ := manager.LoadConfig("changeable")
	if loaded.BoardSize != 4 {
		t.Errorf("Expected initial board size 4, got %d", loaded.BoardSize)
	}

	config.BoardSize = 5
	writeConfigFile(t, dir, "changeable", config)

	if err := manager.ReloadConfig("changeable"); err != nil {
		t.Fatalf("Failed to reload config: %v", err)
	}

	reloaded, _ := manager.LoadConfig("changeable")
	if reloaded.BoardSize != 5 {
		t.Errorf("Expected reloaded board size 5, got %d", reloaded.BoardSize)
	}
}

func TestManager_SaveConfig(t *testing.T) {
	dir := t.TempDir()

	writeConfigFile(t, dir, "classic", createValidConfig())

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	t.Run("save valid config", func(t *testing.T) {
		config := createValidConfig()
		config.Name = "Custom"
		config.BoardSize = 5

		if err := manager.SaveConfig("custom", config); err != nil {
			t.Fatalf("Failed to save config: %v", err)
		}

		if _, err := os.Stat(filepath.Join(dir, "custom.json")); err != nil {
			t.Errorf("Expected config file to exist: %v", err)
		}

		loaded, err := manager.LoadConfig("custom")
		if err != nil {
			t.Fatalf("Failed to load saved config: %v", err)
		}
		if loaded.Name != "Custom" {
			t.Errorf("Expected config name 'Custom', got '%s'", loaded.Name)
		}
	})

	t.Run("reject invalid config", func(t *testing.T) {
		config := createValidConfig()
		config.BoardSize = 0

		if err := manager.SaveConfig("broken", config); err == nil {
			t.Error("Expected error when saving invalid config")
		}
		if _, err := os.Stat(filepath.Join(dir, "broken.json")); err == nil {
			t.Error("Expected invalid config not to be written")
		}
	})
}

func TestManager_ValidateConfig(t *testing.T) {
	dir := t.TempDir()

	writeConfigFile(t, dir, "classic", createValidConfig())

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	t.Run("valid config", func(t *testing.T) {
		if err := manager.ValidateConfig(createValidConfig()); err != nil {
			t.Errorf("Expected valid config to pass validation: %v", err)
		}
	})

	t.Run("invalid config - missing name", func(t *testing.T) {
		config := createValidConfig()
		config.Name = ""
		if err := manager.ValidateConfig(config); err == nil {
			t.Error("Expected error for config missing name")
		}
	})

	t.Run("invalid config - board too small", func(t *testing.T) {
		config := createValidConfig()
		config.BoardSize = 1
		if err := manager.ValidateConfig(config); err == nil {
			t.Error("Expected error for invalid board size")
		}
	})

	t.Run("invalid config - empty spawn range", func(t *testing.T) {
		config := createValidConfig()
		config.SpawnMax = config.SpawnMin
		if err := manager.ValidateConfig(config); err == nil {
			t.Error("Expected error for empty spawn range")
		}
	})
}

func TestManager_ConcurrentAccess(t *testing.T) {
	dir := t.TempDir()

	writeConfigFile(t, dir, "classic", createValidConfig())

	for _, name := range []string{"a", "b", "c"} {
		config := createValidConfig()
		config.Name = name
		writeConfigFile(t, dir, name, config)
	}

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	var wg sync.WaitGroup
	errs := make(chan error, 300)

	for i := 0; i < 100; i++ {
		for _, name := range []string{"a", "b", "c"} {
			wg.Add(1)
			go func(name string) {
				defer wg.Done()
				if _, err := manager.LoadConfig(name); err != nil {
					errs <- err
				}
			}(name)
		}
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("Unexpected error during concurrent load: %v", err)
	}
}
