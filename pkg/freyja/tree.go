// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package freyja

import (
	"reflect"
	"sort"
)

// chainLevel is one struct in a command's ownership chain, paired with
// the group path whose scope values construct it. An empty path means
// the global scope.
type chainLevel struct {
	typ  reflect.Type
	path []string
}

// CommandInfo is one terminal command in the tree. Built once at tree
// construction; read-only afterwards.
type CommandInfo struct {
	Name     string
	Path     []string // full display path, e.g. ["database", "migrate"]
	Summary  string
	Examples []string
	Hidden   bool
	Params   []ParameterSpec
	// PositionalIndex is the index into Params of the single positional
	// parameter, or -1 if every parameter has a default.
	PositionalIndex int

	chain      []chainLevel
	methodName string
	argsType   reflect.Type // nil when the method takes no argument struct
	run        builtinFunc  // set only for system-provided commands
}

type builtinFunc func(e *Executor, ctx *ExecutionContext) (int, error)

// PositionalParam returns the command's positional parameter, if any.
func (c *CommandInfo) PositionalParam() (ParameterSpec, bool) {
	if c.PositionalIndex < 0 {
		return ParameterSpec{}, false
	}
	return c.Params[c.PositionalIndex], true
}

// CommandGroup is a namespace of commands and subgroups. Its Params are
// the group's scope-local flags, available to every command beneath it.
type CommandGroup struct {
	Name     string
	Summary  string
	System   bool
	Params   []ParameterSpec
	Groups   map[string]*CommandGroup
	Commands map[string]*CommandInfo

	path  []string
	owner reflect.Type // nil for system groups
}

// GroupNames returns the group's child group names, sorted.
func (g *CommandGroup) GroupNames() []string { return sortedGroupNames(g.Groups) }

// CommandNames returns the group's child command names, sorted, with
// hidden commands omitted.
func (g *CommandGroup) CommandNames() []string { return sortedCommandNames(g.Commands) }

// CommandTree is the immutable result of Build: the full command
// surface plus the application's global flags. Callers may share it
// freely; nothing mutates it after construction.
type CommandTree struct {
	Prog     string
	Version  string
	Summary  string
	Globals  []ParameterSpec
	Groups   map[string]*CommandGroup
	Commands map[string]*CommandInfo

	appType reflect.Type
	flags   *FlagIndex
}

// FlagIndex returns the scoped flag index built alongside the tree.
func (t *CommandTree) FlagIndex() *FlagIndex { return t.flags }

// GroupNames returns top-level group names with system groups first,
// then user groups alphabetized.
func (t *CommandTree) GroupNames() []string {
	var system, user []string
	for name, g := range t.Groups {
		if g.System {
			system = append(system, name)
		} else {
			user = append(user, name)
		}
	}
	sort.Strings(system)
	sort.Strings(user)
	return append(system, user...)
}

// CommandNames returns top-level command names, sorted, with hidden
// commands omitted.
func (t *CommandTree) CommandNames() []string { return sortedCommandNames(t.Commands) }

// Walk visits every command in the tree in path order.
func (t *CommandTree) Walk(visit func(*CommandInfo)) {
	for _, name := range sortedAllCommandNames(t.Commands) {
		visit(t.Commands[name])
	}
	var walkGroup func(g *CommandGroup)
	walkGroup = func(g *CommandGroup) {
		for _, name := range sortedAllCommandNames(g.Commands) {
			visit(g.Commands[name])
		}
		for _, name := range sortedGroupNames(g.Groups) {
			walkGroup(g.Groups[name])
		}
	}
	for _, name := range t.GroupNames() {
		walkGroup(t.Groups[name])
	}
}

// childCommand and childGroup perform the per-level lookups used by
// both the preprocessor and the path resolver, so the two always agree.

func (t *CommandTree) childCommand(path []string, name string) *CommandInfo {
	if g := t.groupAt(path); g != nil {
		return g.Commands[name]
	}
	if len(path) == 0 {
		return t.Commands[name]
	}
	return nil
}

func (t *CommandTree) childGroup(path []string, name string) *CommandGroup {
	if g := t.groupAt(path); g != nil {
		return g.Groups[name]
	}
	if len(path) == 0 {
		return t.Groups[name]
	}
	return nil
}

// groupAt returns the group at the given path, or nil for the root or
// an unknown path.
func (t *CommandTree) groupAt(path []string) *CommandGroup {
	if len(path) == 0 {
		return nil
	}
	g, ok := t.Groups[path[0]]
	if !ok {
		return nil
	}
	for _, seg := range path[1:] {
		g, ok = g.Groups[seg]
		if !ok {
			return nil
		}
	}
	return g
}

// namespaceNames returns every addressable name (commands and groups)
// in the namespace at path. Used for ambiguity detection and for
// near-miss suggestions.
func (t *CommandTree) namespaceNames(path []string) []string {
	var names []string
	if g := t.groupAt(path); g != nil {
		for name := range g.Commands {
			names = append(names, name)
		}
		for name := range g.Groups {
			names = append(names, name)
		}
	} else if len(path) == 0 {
		for name := range t.Commands {
			names = append(names, name)
		}
		for name := range t.Groups {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func sortedGroupNames(m map[string]*CommandGroup) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func sortedCommandNames(m map[string]*CommandInfo) []string {
	names := make([]string, 0, len(m))
	for name, c := range m {
		if c.Hidden {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func sortedAllCommandNames(m map[string]*CommandInfo) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
