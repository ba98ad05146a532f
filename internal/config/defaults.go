package config

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/arthur-debert/nanotodo/nanotodo/query"
	"github.com/arthur-debert/nanotodo/nanotodo/storage"
	"github.com/arthur-debert/nanotodo/nanotodo/store"
	"github.com/arthur-debert/nanotodo/types"
)

// AppName names the config file, the env prefix and the XDG directories
const AppName = "nanotodo"

// Default returns the built-in configuration
func Default() *Config {
	view := types.DefaultViewOptions()
	return &Config{
		Backend: store.BackendFile,
		DataDir: DefaultDataDir(),
		Key:     storage.DefaultKey,
		Locale:  query.DefaultLocale,
		Format:  "table",
		View: ViewConfig{
			Filter: string(view.Filter),
			Sort:   string(view.SortBy),
			Order:  string(view.Order),
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// DefaultDataDir follows XDG_DATA_HOME, falling back to the platform default
func DefaultDataDir() string {
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return filepath.Join(xdgData, AppName)
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), AppName)
	}

	if runtime.GOOS == "darwin" {
		return filepath.Join(homeDir, "Library", "Application Support", AppName)
	}
	return filepath.Join(homeDir, ".local", "share", AppName)
}

// ConfigDir is where `config init` writes by default
func ConfigDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, AppName)
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(homeDir, ".config", AppName)
}
