// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package freyja

import (
	"fmt"
)

const systemGroupName = "tools"

// injectSystemGroup adds the framework's utility group. It shares the
// user namespace, so a user group or command with the same name is a
// configuration error rather than a silent shadow.
func injectSystemGroup(t *CommandTree) error {
	if _, ok := t.Groups[systemGroupName]; ok {
		return &ConfigError{Reason: fmt.Sprintf("group name %q is reserved for the built-in utility group", systemGroupName)}
	}
	if _, ok := t.Commands[systemGroupName]; ok {
		return &ConfigError{Reason: fmt.Sprintf("command name %q is reserved for the built-in utility group", systemGroupName)}
	}

	g := &CommandGroup{
		Name:     systemGroupName,
		Summary:  "Built-in utilities",
		System:   true,
		Groups:   make(map[string]*CommandGroup),
		Commands: make(map[string]*CommandInfo),
		path:     []string{systemGroupName},
	}

	add := func(name, summary string, params []ParameterSpec, run builtinFunc) {
		cmd := &CommandInfo{
			Name:    name,
			Path:    []string{systemGroupName, name},
			Summary: summary,
			Params:  params,
			run:     run,
		}
		resolvePositional(cmd)
		g.Commands[name] = cmd
	}

	add("schema", "Print the full command tree as YAML", nil, runSchema)
	add("version", "Print the program version", nil, runVersion)
	add("completion", "Print a shell completion script", []ParameterSpec{{
		Name:    "shell",
		Kind:    KindChoice,
		Type:    stringType,
		Choices: completionShells,
		Help:    "Target shell",
	}}, runCompletion)

	t.Groups[systemGroupName] = g
	return nil
}

func runVersion(e *Executor, _ *ExecutionContext) (int, error) {
	v := e.Tree.Version
	if v == "" {
		v = "unknown"
	}
	fmt.Fprintf(e.Stdout, "%s %s\n", e.Tree.Prog, v)
	return ExitSuccess, nil
}
