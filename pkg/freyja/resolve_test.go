// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package freyja

import (
	"errors"
	"testing"
)

func TestResolve(t *testing.T) {
	tree := newTestTree(t)

	tests := []struct {
		name      string
		segments  []string
		wantCmd   string // space-joined command path, "" for none
		wantGroup string // space-joined group path, "" for none
	}{
		{"top-level command", []string{"collect"}, "collect", ""},
		{"group prefix", []string{"remote"}, "", "remote"},
		{"nested group", []string{"remote", "sync"}, "", "remote sync"},
		{"nested command", []string{"remote", "sync", "push"}, "remote sync push", ""},
		{"system command", []string{"tools", "version"}, "tools version", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, group, err := Resolve(tree, tt.segments)
			if err != nil {
				t.Fatalf("Resolve(%v) error = %v", tt.segments, err)
			}
			gotCmd, gotGroup := "", ""
			if cmd != nil {
				gotCmd = pathKey(cmd.Path)
			}
			if group != nil {
				gotGroup = pathKey(group.path)
			}
			if gotCmd != tt.wantCmd || gotGroup != tt.wantGroup {
				t.Errorf("Resolve(%v) = (%q, %q), want (%q, %q)",
					tt.segments, gotCmd, gotGroup, tt.wantCmd, tt.wantGroup)
			}
		})
	}
}

func TestResolveErrors(t *testing.T) {
	tree := newTestTree(t)

	tests := [][]string{
		{"nope"},
		{"remote", "nope"},
		{"collect", "trailing"},
		{},
	}
	for _, segments := range tests {
		if _, _, err := Resolve(tree, segments); err == nil {
			t.Errorf("Resolve(%v) succeeded, want error", segments)
		}
	}
}

func TestResolveSuggestion(t *testing.T) {
	tree := newTestTree(t)

	_, _, err := Resolve(tree, []string{"remote", "pong"})
	var re *ResolutionError
	if !errors.As(err, &re) {
		t.Fatalf("error = %v, want *ResolutionError", err)
	}
	if re.Suggestion != "ping" {
		t.Errorf("Suggestion = %q, want ping", re.Suggestion)
	}
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "abc", 0},
		{"abc", "", 3},
		{"kitten", "sitting", 3},
		{"status", "stats", 1},
		{"migrate", "migrte", 1},
	}
	for _, tt := range tests {
		if got := levenshtein(tt.a, tt.b); got != tt.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
