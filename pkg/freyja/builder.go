// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package freyja

import (
	"fmt"
	"log"
	"reflect"

	"github.com/Masterminds/semver/v3"
)

// Program holds the application-level metadata for a build.
type Program struct {
	Name    string
	Version string // validated as semver when non-empty
	Summary string
	// Manifest is an optional path to a TOML file overlaying command
	// descriptions, examples, and hidden markers onto the tree.
	Manifest string
	// NoSystemGroup suppresses the built-in utility group.
	NoSystemGroup bool
}

// ClassSpec registers one target class for Build. The last class
// supplied is primary: its members are exposed unnamespaced. Every
// earlier class is mounted as a top-level group named after its type.
type ClassSpec struct {
	value  any
	groups []GroupSpec
}

// GroupSpec registers a grouping class under its parent ClassSpec.
type GroupSpec struct {
	value any
}

// Class registers a target class with its explicitly attached groups.
func Class(v any, groups ...GroupSpec) ClassSpec {
	return ClassSpec{value: v, groups: groups}
}

// Group attaches a grouping class to a Class registration. The group's
// name is derived from the struct type name.
func Group(v any) GroupSpec {
	return GroupSpec{value: v}
}

// Build constructs the immutable CommandTree for the supplied classes.
// All configuration problems are reported here; once Build succeeds,
// no command-time failure can stem from the registrations themselves.
func Build(prog Program, classes ...ClassSpec) (*CommandTree, error) {
	if prog.Name == "" {
		return nil, &ConfigError{Reason: "program name is required"}
	}
	if prog.Version != "" {
		if _, err := semver.NewVersion(prog.Version); err != nil {
			return nil, &ConfigError{Reason: fmt.Sprintf("invalid version %q: %v", prog.Version, err)}
		}
	}
	if len(classes) == 0 {
		return nil, &ConfigError{Reason: "at least one class is required"}
	}

	tree := &CommandTree{
		Prog:     prog.Name,
		Version:  prog.Version,
		Summary:  prog.Summary,
		Groups:   make(map[string]*CommandGroup),
		Commands: make(map[string]*CommandInfo),
	}

	primary := classes[len(classes)-1]
	primaryType, err := classType(primary.value)
	if err != nil {
		return nil, err
	}
	tree.appType = primaryType

	// The primary class's fields are the global scope.
	tree.Globals, err = paramSpecs(primaryType, true)
	if err != nil {
		return nil, err
	}
	rootChain := []chainLevel{{typ: primaryType, path: nil}}
	if err := addClassMembers(tree, nil, tree.Groups, tree.Commands, primaryType, rootChain, primary.groups); err != nil {
		return nil, err
	}

	// Earlier classes mount as named top-level groups; their own groups
	// become subgroups beneath them, never flattened into siblings.
	for _, cs := range classes[:len(classes)-1] {
		if err := mountClass(tree, cs); err != nil {
			return nil, err
		}
	}

	if !prog.NoSystemGroup {
		if err := injectSystemGroup(tree); err != nil {
			return nil, err
		}
	}

	if prog.Manifest != "" {
		m, err := LoadManifest(prog.Manifest)
		if err != nil {
			return nil, &ConfigError{Reason: fmt.Sprintf("manifest: %v", err)}
		}
		if err := m.apply(tree); err != nil {
			return nil, err
		}
	}

	tree.flags = buildFlagIndex(tree)
	return tree, nil
}

func classType(v any) (reflect.Type, error) {
	if v == nil {
		return nil, &ConfigError{Reason: "nil class value"}
	}
	t := reflect.TypeOf(v)
	if t.Kind() != reflect.Pointer || t.Elem().Kind() != reflect.Struct {
		return nil, &ConfigError{Class: t.String(), Reason: "class must be a pointer to a struct"}
	}
	return t.Elem(), nil
}

// mountClass turns a non-primary target class into a top-level group.
// Its constructor fields become that group's scope-local flags.
func mountClass(tree *CommandTree, cs ClassSpec) error {
	t, err := classType(cs.value)
	if err != nil {
		return err
	}
	name := displayName(t.Name())
	if err := checkNamespaceFree(tree, nil, name, t.Name()); err != nil {
		return err
	}
	params, err := paramSpecs(t, true)
	if err != nil {
		return err
	}
	group := &CommandGroup{
		Name:     name,
		Params:   params,
		Groups:   make(map[string]*CommandGroup),
		Commands: make(map[string]*CommandInfo),
		path:     []string{name},
		owner:    t,
	}
	chain := []chainLevel{{typ: t, path: group.path}}
	if err := addClassMembers(tree, group.path, group.Groups, group.Commands, t, chain, cs.groups); err != nil {
		return err
	}
	if len(group.Commands) == 0 && len(group.Groups) == 0 {
		log.Printf("freyja: class %s has no commands; skipping group %q", t.Name(), name)
		return nil
	}
	tree.Groups[name] = group
	return nil
}

// addClassMembers adds a class's method commands and registered groups
// into the given namespace maps.
func addClassMembers(tree *CommandTree, basePath []string, groups map[string]*CommandGroup, commands map[string]*CommandInfo, t reflect.Type, chain []chainLevel, specs []GroupSpec) error {
	if err := addMethodCommands(tree, basePath, groups, commands, t, chain); err != nil {
		return err
	}
	for _, gs := range specs {
		gt, err := classType(gs.value)
		if err != nil {
			return err
		}
		name := displayName(gt.Name())
		if err := checkNamespace(groups, commands, basePath, name, gt.Name()); err != nil {
			return err
		}
		params, err := paramSpecs(gt, true)
		if err != nil {
			return err
		}
		path := append(append([]string{}, basePath...), name)
		group := &CommandGroup{
			Name:     name,
			Params:   params,
			Groups:   make(map[string]*CommandGroup),
			Commands: make(map[string]*CommandInfo),
			path:     path,
			owner:    gt,
		}
		subChain := append(append([]chainLevel{}, chain...), chainLevel{typ: gt, path: path})
		if err := addMethodCommands(tree, path, group.Groups, group.Commands, gt, subChain); err != nil {
			return err
		}
		if len(group.Commands) == 0 {
			log.Printf("freyja: group class %s has no commands; skipping group %q", gt.Name(), name)
			continue
		}
		groups[name] = group
	}
	return nil
}

// addMethodCommands turns every exported method on *t into a command in
// the namespace. A method with an unsupported signature fails the whole
// build, naming the method.
func addMethodCommands(tree *CommandTree, basePath []string, groups map[string]*CommandGroup, commands map[string]*CommandInfo, t reflect.Type, chain []chainLevel) error {
	pt := reflect.PointerTo(t)
	for i := 0; i < pt.NumMethod(); i++ {
		m := pt.Method(i)
		argsType, params, err := methodSpec(t, m)
		if err != nil {
			return err
		}
		name := displayName(m.Name)
		if err := checkNamespace(groups, commands, basePath, name, t.Name()+"."+m.Name); err != nil {
			return err
		}
		cmd := &CommandInfo{
			Name:       name,
			Path:       append(append([]string{}, basePath...), name),
			Params:     params,
			chain:      chain,
			methodName: m.Name,
			argsType:   argsType,
		}
		resolvePositional(cmd)
		commands[name] = cmd
	}
	return nil
}

func checkNamespace(groups map[string]*CommandGroup, commands map[string]*CommandInfo, basePath []string, name, member string) error {
	if _, ok := commands[name]; ok {
		return dupErr(basePath, name, member)
	}
	if _, ok := groups[name]; ok {
		return dupErr(basePath, name, member)
	}
	return nil
}

func checkNamespaceFree(tree *CommandTree, basePath []string, name, member string) error {
	return checkNamespace(tree.Groups, tree.Commands, basePath, name, member)
}

func dupErr(basePath []string, name, member string) error {
	where := "top level"
	if len(basePath) > 0 {
		where = fmt.Sprintf("group %q", pathKey(basePath))
	}
	return &ConfigError{
		Reason: fmt.Sprintf("%s: duplicate name %q at %s", member, name, where),
	}
}
