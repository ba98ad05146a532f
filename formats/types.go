// Package formats renders task lists in named output formats.
package formats

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/arthur-debert/nanotodo/types"
)

// RenderOptions carries what renderers need besides the tasks
type RenderOptions struct {
	// Now is used for overdue markers and relative times
	Now time.Time
	// Location is used for timestamps; nil means time.Local
	Location *time.Location
}

func (o RenderOptions) location() *time.Location {
	if o.Location == nil {
		return time.Local
	}
	return o.Location
}

// TaskFormat defines how a task list is rendered
type TaskFormat struct {
	// Name is the format identifier (alphanumeric, dashes, underscores, lowercase)
	Name string

	// Extension is the file extension including the dot (e.g., ".md")
	Extension string

	// Render writes tasks to w in order
	Render func(w io.Writer, tasks []types.Task, opts RenderOptions) error
}

// registry holds all available formats
var registry = make(map[string]*TaskFormat)

// Register adds a new format to the registry
func Register(format *TaskFormat) error {
	if !isValidFormatName(format.Name) {
		return fmt.Errorf("invalid format name %q: must be lowercase alphanumeric with dashes and underscores only", format.Name)
	}
	if format.Render == nil {
		return fmt.Errorf("format %q has no renderer", format.Name)
	}

	if format.Extension != "" && !strings.HasPrefix(format.Extension, ".") {
		format.Extension = "." + format.Extension
	}

	if _, exists := registry[format.Name]; exists {
		return fmt.Errorf("format %q already registered", format.Name)
	}

	registry[format.Name] = format
	return nil
}

// Get returns a format by name
func Get(name string) (*TaskFormat, error) {
	format, exists := registry[strings.ToLower(name)]
	if !exists {
		return nil, fmt.Errorf("unknown format %q (available: %s)", name, strings.Join(List(), ", "))
	}
	return format, nil
}

// List returns all registered format names, sorted
func List() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func mustRegister(format *TaskFormat) {
	if err := Register(format); err != nil {
		panic(fmt.Sprintf("failed to register %s format: %v", format.Name, err))
	}
}

// isValidFormatName checks if a format name is valid
func isValidFormatName(name string) bool {
	if name == "" {
		return false
	}

	for _, r := range name {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '-' && r != '_' {
			return false
		}
	}
	return true
}
