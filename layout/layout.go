// Package layout loads the layered action table from a YAML layout file.
// The table and matrix packages are build-time-fixed; the layout is the
// one piece of configuration meant to be edited by an end user without
// recompiling firmware for a development host build.
package layout

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ardnew/ibmkbd/table"
)

// Row is one universal row of 16 action names, as written in YAML. Empty
// strings mean "no action" (table.NoAction).
type Row [table.ActionCols]string

// Config is the on-disk layout document: a list of layers, each an 8x16
// grid of action names.
type Config struct {
	Layers []Layer `yaml:"layers"`
}

// Layer is one named layer of the on-disk layout.
type Layer struct {
	Name string           `yaml:"name"`
	Keys [table.ActionRows]Row `yaml:"keys"`
}

// Load reads and parses a layout YAML file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read layout %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse layout %s: %w", path, err)
	}
	return &cfg, nil
}

// Build resolves a Config's named actions into a table.LayerMap using
// resolve to turn each action name into a table.Action. Unrecognized names
// resolve to table.NoAction via resolve's own contract; Build does not
// itself know what an action name means.
func Build(cfg *Config, resolve func(name string) table.Action) table.LayerMap {
	m := make(table.LayerMap, len(cfg.Layers))
	for li, layer := range cfg.Layers {
		for r := 0; r < table.ActionRows; r++ {
			for c := 0; c < table.ActionCols; c++ {
				name := layer.Keys[r][c]
				if name == "" {
					continue
				}
				m[li][r][c] = resolve(name)
			}
		}
	}
	return m
}
