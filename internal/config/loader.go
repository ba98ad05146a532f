package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment variable
const EnvPrefix = "NANOTODO"

// Setup configures v for config file discovery and NANOTODO_* environment
// variables and registers every default. It does not read anything.
func Setup(v *viper.Viper) {
	// NANOTODO_CONFIG names an explicit config file
	if configFile := os.Getenv(EnvPrefix + "_CONFIG"); configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(AppName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(ConfigDir())
		v.AddConfigPath("$HOME/." + AppName)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	d := Default()
	v.SetDefault("backend", d.Backend)
	v.SetDefault("data_dir", d.DataDir)
	v.SetDefault("key", d.Key)
	v.SetDefault("locale", d.Locale)
	v.SetDefault("format", d.Format)
	v.SetDefault("view.filter", d.View.Filter)
	v.SetDefault("view.sort", d.View.Sort)
	v.SetDefault("view.order", d.View.Order)
	v.SetDefault("log.level", d.Log.Level)
}

// LoadDotEnv loads .env files into the environment without overriding
// variables that are already set. Missing files are not an error.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	var existing []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("failed to load %s: %w", strings.Join(existing, ", "), err)
	}
	return nil
}

// Load reads the config file (if any) into v and returns the merged result.
// Flags must already be bound to v for them to take precedence.
func Load(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.DataDir = expandHome(cfg.DataDir)
	return cfg, nil
}

// UsedFile returns the config file that was read, or "".
func UsedFile(v *viper.Viper) string {
	return v.ConfigFileUsed()
}

// Marshal renders cfg as YAML
func Marshal(cfg *Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// WriteDefault writes the default configuration to path, refusing to
// overwrite an existing file unless force is set
func WriteDefault(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}
	data, err := Marshal(Default())
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// DefaultPath is where WriteDefault writes when no path is given
func DefaultPath() string {
	return filepath.Join(ConfigDir(), AppName+".yaml")
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
