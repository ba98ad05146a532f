package formats

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/nanotodo/types"
)

// JSON writes the tasks exactly as they are persisted, indented
var JSON = &TaskFormat{
	Name:      "json",
	Extension: ".json",
	Render: func(w io.Writer, tasks []types.Task, _ RenderOptions) error {
		if tasks == nil {
			tasks = []types.Task{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(tasks)
	},
}

// YAML writes the tasks as a YAML sequence
var YAML = &TaskFormat{
	Name:      "yaml",
	Extension: ".yaml",
	Render: func(w io.Writer, tasks []types.Task, _ RenderOptions) error {
		if tasks == nil {
			tasks = []types.Task{}
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(tasks); err != nil {
			return err
		}
		return enc.Close()
	},
}

func init() {
	mustRegister(JSON)
	mustRegister(YAML)
}
