// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package freyja

import (
	"errors"
	"reflect"
	"testing"
)

func TestBuildTreeShape(t *testing.T) {
	tree := newTestTree(t)

	wantCommands := []string{"abort", "bail", "collect", "fail", "status"}
	if got := tree.CommandNames(); !reflect.DeepEqual(got, wantCommands) {
		t.Errorf("CommandNames() = %v, want %v", got, wantCommands)
	}

	// System groups list before user groups.
	wantGroups := []string{"tools", "database", "remote"}
	if got := tree.GroupNames(); !reflect.DeepEqual(got, wantGroups) {
		t.Errorf("GroupNames() = %v, want %v", got, wantGroups)
	}

	// The mounted class keeps its own groups as subgroups.
	remote := tree.Groups["remote"]
	if remote == nil {
		t.Fatal("remote group missing")
	}
	if got := remote.GroupNames(); !reflect.DeepEqual(got, []string{"sync"}) {
		t.Errorf("remote subgroups = %v, want [sync]", got)
	}
	if got := remote.CommandNames(); !reflect.DeepEqual(got, []string{"ping"}) {
		t.Errorf("remote commands = %v, want [ping]", got)
	}
	if len(remote.Params) != 1 || remote.Params[0].Name != "endpoint" {
		t.Errorf("remote params = %+v, want the endpoint flag", remote.Params)
	}

	push := tree.Groups["remote"].Groups["sync"].Commands["push"]
	if push == nil {
		t.Fatal("remote sync push missing")
	}
	if !reflect.DeepEqual(push.Path, []string{"remote", "sync", "push"}) {
		t.Errorf("push.Path = %v", push.Path)
	}
	if len(push.chain) != 2 {
		t.Fatalf("push chain has %d levels, want 2 (mounted class, then group)", len(push.chain))
	}
	if !reflect.DeepEqual(push.chain[0].path, []string{"remote"}) ||
		!reflect.DeepEqual(push.chain[1].path, []string{"remote", "sync"}) {
		t.Errorf("push chain paths = %v, %v", push.chain[0].path, push.chain[1].path)
	}
}

func TestBuildGlobalsFromPrimary(t *testing.T) {
	tree := newTestTree(t)
	var names []string
	for _, p := range tree.Globals {
		names = append(names, p.Name)
	}
	if !reflect.DeepEqual(names, []string{"verbose", "output"}) {
		t.Errorf("global flags = %v, want [verbose output]", names)
	}
}

type emptyClass struct {
	Level int `default:"0"`
}

func TestBuildSkipsEmptyMountedClass(t *testing.T) {
	tree, err := Build(Program{Name: "demo"}, Class(&emptyClass{}), Class(&demoApp{}))
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if _, ok := tree.Groups["empty-class"]; ok {
		t.Error("class without commands must not become a group")
	}
}

type Tools struct{}

func (r *Tools) List() {}

func TestBuildConfigErrors(t *testing.T) {
	type noDefault struct {
		Count int `help:"missing default"`
	}

	tests := []struct {
		name    string
		prog    Program
		classes []ClassSpec
	}{
		{"empty name", Program{}, []ClassSpec{Class(&demoApp{})}},
		{"bad version", Program{Name: "demo", Version: "not-semver"}, []ClassSpec{Class(&demoApp{})}},
		{"no classes", Program{Name: "demo"}, nil},
		{"non-pointer class", Program{Name: "demo"}, []ClassSpec{Class(demoApp{})}},
		{"field without default", Program{Name: "demo"}, []ClassSpec{Class(&noDefault{})}},
		{"reserved system name", Program{Name: "demo"}, []ClassSpec{Class(&Tools{}), Class(&demoApp{})}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := Build(tt.prog, tt.classes...)
			var cfg *ConfigError
			if !errors.As(err, &cfg) {
				t.Fatalf("Build() error = %v, want *ConfigError", err)
			}
			if tree != nil {
				t.Error("Build() returned a tree alongside a configuration error")
			}
		})
	}
}

func TestBuildReservedNameAllowedWithoutSystemGroup(t *testing.T) {
	tree, err := Build(
		Program{Name: "demo", NoSystemGroup: true},
		Class(&Tools{}),
		Class(&demoApp{}),
	)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if g := tree.Groups["tools"]; g == nil || g.System {
		t.Error("user group \"tools\" should stand when the system group is suppressed")
	}
}

type clashApp struct{}

func (c *clashApp) Database() {}

func TestBuildDuplicateName(t *testing.T) {
	_, err := Build(Program{Name: "demo"}, Class(&clashApp{}, Group(&Database{})))
	var cfg *ConfigError
	if !errors.As(err, &cfg) {
		t.Fatalf("Build() error = %v, want *ConfigError for method/group name clash", err)
	}
}
