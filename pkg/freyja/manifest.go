// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package freyja

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Manifest overlays presentation metadata onto a built tree: summaries,
// usage examples, and hidden markers, keyed by space-joined display
// path. It never adds or removes commands; a path that names nothing is
// a configuration error so stale manifests surface immediately.
type Manifest struct {
	Summary  string                     `toml:"summary"`
	Commands map[string]CommandManifest `toml:"command"`
	Groups   map[string]GroupManifest   `toml:"group"`
}

type CommandManifest struct {
	Summary  string   `toml:"summary"`
	Examples []string `toml:"examples"`
	Hidden   bool     `toml:"hidden"`
}

type GroupManifest struct {
	Summary string `toml:"summary"`
}

// LoadManifest reads a TOML manifest from path.
func LoadManifest(path string) (*Manifest, error) {
	var m Manifest
	meta, err := toml.DecodeFile(path, &m)
	if err != nil {
		return nil, err
	}
	if undec := meta.Undecoded(); len(undec) > 0 {
		return nil, fmt.Errorf("unknown manifest key %q", undec[0].String())
	}
	return &m, nil
}

func (m *Manifest) apply(t *CommandTree) error {
	if m.Summary != "" && t.Summary == "" {
		t.Summary = m.Summary
	}
	for key, cm := range m.Commands {
		cmd := findCommand(t, splitPathKey(key))
		if cmd == nil {
			return &ConfigError{Reason: fmt.Sprintf("manifest: no command at %q", key)}
		}
		if cm.Summary != "" {
			cmd.Summary = cm.Summary
		}
		if len(cm.Examples) > 0 {
			cmd.Examples = cm.Examples
		}
		if cm.Hidden {
			cmd.Hidden = true
		}
	}
	for key, gm := range m.Groups {
		g := t.groupAt(splitPathKey(key))
		if g == nil {
			return &ConfigError{Reason: fmt.Sprintf("manifest: no group at %q", key)}
		}
		if gm.Summary != "" {
			g.Summary = gm.Summary
		}
	}
	return nil
}

func findCommand(t *CommandTree, path []string) *CommandInfo {
	if len(path) == 0 {
		return nil
	}
	return t.childCommand(path[:len(path)-1], path[len(path)-1])
}
