// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package freyja

// Built-in flags recognized at global scope regardless of the target
// classes.
const (
	flagHelp       = "help"
	flagHelpShort  = "h"
	flagNoColor    = "no-color"
	flagCompletion = "completion-script" // hidden; value is the shell name
)

// FlagScope identifies which scope a flag name resolved in.
type FlagScope int

const (
	ScopeGlobal FlagScope = iota
	ScopeSubGlobal
	ScopeCommand
	ScopeBuiltin
)

// FlagEntry is one resolved flag: its spec plus the scope and the group
// or command path that owns it.
type FlagEntry struct {
	Spec  ParameterSpec
	Scope FlagScope
	Path  []string
}

// ConsumesValue reports whether the flag takes a value token.
func (e FlagEntry) ConsumesValue() bool { return !e.Spec.IsBool() }

// FlagIndex is the scope-aware flag lookup table built once per tree.
type FlagIndex struct {
	global  map[string]FlagEntry
	sub     map[string]map[string]FlagEntry // keyed by group path
	cmd     map[string]map[string]FlagEntry // keyed by command path
	builtin map[string]FlagEntry

	// union maps every known flag name to a representative entry,
	// chosen by fixed precedence, for pre-classification scans.
	union map[string]FlagEntry

	// mixed marks names whose entries disagree on value arity across
	// scopes. Value binding for these waits until the path is known.
	mixed map[string]bool
}

func buildFlagIndex(t *CommandTree) *FlagIndex {
	x := &FlagIndex{
		global:  make(map[string]FlagEntry),
		sub:     make(map[string]map[string]FlagEntry),
		cmd:     make(map[string]map[string]FlagEntry),
		builtin: make(map[string]FlagEntry),
		union:   make(map[string]FlagEntry),
		mixed:   make(map[string]bool),
	}

	boolSpec := func(name, help string) ParameterSpec {
		return ParameterSpec{Name: name, Kind: KindPrimitive, Type: boolType, HasDefault: true, Default: "false", Help: help}
	}
	x.builtin[flagHelp] = FlagEntry{Spec: boolSpec(flagHelp, "Show help"), Scope: ScopeBuiltin}
	x.builtin[flagHelpShort] = FlagEntry{Spec: boolSpec(flagHelp, "Show help"), Scope: ScopeBuiltin}
	x.builtin[flagNoColor] = FlagEntry{Spec: boolSpec(flagNoColor, "Disable styled output"), Scope: ScopeBuiltin}
	x.builtin[flagCompletion] = FlagEntry{
		Spec:  ParameterSpec{Name: flagCompletion, Kind: KindChoice, Type: stringType, HasDefault: true, Choices: completionShells},
		Scope: ScopeBuiltin,
	}

	for _, spec := range t.Globals {
		x.global[spec.Name] = FlagEntry{Spec: spec, Scope: ScopeGlobal}
	}

	var addGroup func(g *CommandGroup)
	addGroup = func(g *CommandGroup) {
		key := pathKey(g.path)
		m := make(map[string]FlagEntry, len(g.Params))
		for _, spec := range g.Params {
			m[spec.Name] = FlagEntry{Spec: spec, Scope: ScopeSubGlobal, Path: g.path}
		}
		x.sub[key] = m
		for _, name := range sortedAllCommandNames(g.Commands) {
			x.addCommand(g.Commands[name])
		}
		for _, name := range sortedGroupNames(g.Groups) {
			addGroup(g.Groups[name])
		}
	}
	for _, name := range sortedAllCommandNames(t.Commands) {
		x.addCommand(t.Commands[name])
	}
	for _, name := range sortedGroupNames(t.Groups) {
		addGroup(t.Groups[name])
	}

	// Union precedence, lowest to highest: builtin, global, sub-global,
	// command. Later insertions win; iteration above is sorted, so the
	// representative for a contested name is deterministic.
	arity := make(map[string]uint8)
	unite := func(name string, e FlagEntry) {
		x.union[name] = e
		if e.ConsumesValue() {
			arity[name] |= 2
		} else {
			arity[name] |= 1
		}
	}
	for name, e := range x.builtin {
		unite(name, e)
	}
	for name, e := range x.global {
		unite(name, e)
	}
	for _, key := range sortedKeys(x.sub) {
		for name, e := range x.sub[key] {
			unite(name, e)
		}
	}
	for _, key := range sortedKeys(x.cmd) {
		for name, e := range x.cmd[key] {
			unite(name, e)
		}
	}
	for name, bits := range arity {
		if bits == 3 {
			x.mixed[name] = true
		}
	}
	return x
}

func (x *FlagIndex) addCommand(c *CommandInfo) {
	m := make(map[string]FlagEntry, len(c.Params))
	for _, spec := range c.Params {
		m[spec.Name] = FlagEntry{Spec: spec, Scope: ScopeCommand, Path: c.Path}
	}
	x.cmd[pathKey(c.Path)] = m
}

// Classify resolves a flag name for a given command context, checking
// command scope first, then sub-global scope for each matched group
// (innermost first), then global scope, then built-ins.
func (x *FlagIndex) Classify(name string, cmdPath, groupPath []string) (FlagEntry, bool) {
	if len(cmdPath) > 0 {
		if e, ok := x.cmd[pathKey(cmdPath)][name]; ok {
			return e, true
		}
	}
	for i := len(groupPath); i > 0; i-- {
		if e, ok := x.sub[pathKey(groupPath[:i])][name]; ok {
			return e, true
		}
	}
	if e, ok := x.global[name]; ok {
		return e, true
	}
	if e, ok := x.builtin[name]; ok {
		return e, true
	}
	return FlagEntry{}, false
}

// MixedArity reports whether a flag name resolves to entries with
// different value arities depending on scope.
func (x *FlagIndex) MixedArity(name string) bool { return x.mixed[name] }

// Lookup resolves a flag name in any scope, by the union precedence.
func (x *FlagIndex) Lookup(name string) (FlagEntry, bool) {
	e, ok := x.union[name]
	return e, ok
}

// Names returns every flag name known in any scope, sorted.
func (x *FlagIndex) Names() []string {
	return sortedKeys(x.union)
}
