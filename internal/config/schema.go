// Package config resolves nanotodo settings from defaults, a YAML config
// file, NANOTODO_* environment variables (optionally loaded from .env) and
// command line flags, in increasing order of precedence.
package config

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/nanotodo/nanotodo/store"
	"github.com/arthur-debert/nanotodo/types"
)

// Config is the resolved configuration
type Config struct {
	Backend string     `mapstructure:"backend" yaml:"backend"`
	DataDir string     `mapstructure:"data_dir" yaml:"data_dir"`
	Key     string     `mapstructure:"key" yaml:"key"`
	Locale  string     `mapstructure:"locale" yaml:"locale"`
	Format  string     `mapstructure:"format" yaml:"format"`
	View    ViewConfig `mapstructure:"view" yaml:"view"`
	Log     LogConfig  `mapstructure:"log" yaml:"log"`
}

// ViewConfig is the initial filter and ordering of listings
type ViewConfig struct {
	Filter string `mapstructure:"filter" yaml:"filter"`
	Sort   string `mapstructure:"sort" yaml:"sort"`
	Order  string `mapstructure:"order" yaml:"order"`
}

// LogConfig controls the log file
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
}

// ViewOptions parses the view section
func (c *Config) ViewOptions() (types.ViewOptions, error) {
	filter, err := types.ParseFilter(c.View.Filter)
	if err != nil {
		return types.ViewOptions{}, err
	}
	sortBy, err := types.ParseSortKey(c.View.Sort)
	if err != nil {
		return types.ViewOptions{}, err
	}
	order, err := types.ParseSortOrder(c.View.Order)
	if err != nil {
		return types.ViewOptions{}, err
	}
	return types.ViewOptions{Filter: filter, SortBy: sortBy, Order: order}, nil
}

// Validate reports the first invalid setting
func (c *Config) Validate() error {
	backend := strings.ToLower(strings.TrimSpace(c.Backend))
	valid := false
	for _, b := range store.Backends {
		if backend == b {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("invalid backend %q: must be one of %s", c.Backend, strings.Join(store.Backends, ", "))
	}
	if backend != store.BackendMemory && c.DataDir == "" {
		return fmt.Errorf("data_dir is required for the %s backend", backend)
	}
	if c.Key == "" {
		return fmt.Errorf("key must not be empty")
	}
	if _, err := c.ViewOptions(); err != nil {
		return err
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", c.Log.Level)
	}
	return nil
}
