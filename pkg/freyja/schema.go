// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package freyja

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// schemaDoc is the machine-readable description of a tree, emitted by
// the "tools schema" command so wrappers and editors can introspect an
// application without parsing its help text.
type schemaDoc struct {
	Program  string          `yaml:"program"`
	Version  string          `yaml:"version,omitempty"`
	Summary  string          `yaml:"summary,omitempty"`
	Globals  []schemaFlag    `yaml:"globals,omitempty"`
	Commands []schemaCommand `yaml:"commands,omitempty"`
	Groups   []schemaGroup   `yaml:"groups,omitempty"`
}

type schemaFlag struct {
	Name       string   `yaml:"name"`
	Type       string   `yaml:"type"`
	Default    string   `yaml:"default,omitempty"`
	Required   bool     `yaml:"required,omitempty"`
	Positional bool     `yaml:"positional,omitempty"`
	Choices    []string `yaml:"choices,omitempty,flow"`
	Help       string   `yaml:"help,omitempty"`
}

type schemaCommand struct {
	Name    string       `yaml:"name"`
	Summary string       `yaml:"summary,omitempty"`
	Hidden  bool         `yaml:"hidden,omitempty"`
	Flags   []schemaFlag `yaml:"flags,omitempty"`
}

type schemaGroup struct {
	Name     string          `yaml:"name"`
	Summary  string          `yaml:"summary,omitempty"`
	System   bool            `yaml:"system,omitempty"`
	Flags    []schemaFlag    `yaml:"flags,omitempty"`
	Commands []schemaCommand `yaml:"commands,omitempty"`
	Groups   []schemaGroup   `yaml:"groups,omitempty"`
}

func runSchema(e *Executor, _ *ExecutionContext) (int, error) {
	out, err := yaml.Marshal(buildSchema(e.Tree))
	if err != nil {
		return ExitFailure, invocationErr([]string{systemGroupName, "schema"}, ExitFailure, err)
	}
	fmt.Fprint(e.Stdout, string(out))
	return ExitSuccess, nil
}

func buildSchema(t *CommandTree) schemaDoc {
	doc := schemaDoc{
		Program: t.Prog,
		Version: t.Version,
		Summary: t.Summary,
		Globals: schemaFlags(t.Globals),
	}
	for _, name := range sortedAllCommandNames(t.Commands) {
		doc.Commands = append(doc.Commands, schemaCmd(t.Commands[name]))
	}
	for _, name := range t.GroupNames() {
		doc.Groups = append(doc.Groups, schemaGrp(t.Groups[name]))
	}
	return doc
}

func schemaGrp(g *CommandGroup) schemaGroup {
	sg := schemaGroup{
		Name:    g.Name,
		Summary: g.Summary,
		System:  g.System,
		Flags:   schemaFlags(g.Params),
	}
	for _, name := range sortedAllCommandNames(g.Commands) {
		sg.Commands = append(sg.Commands, schemaCmd(g.Commands[name]))
	}
	for _, name := range sortedGroupNames(g.Groups) {
		sg.Groups = append(sg.Groups, schemaGrp(g.Groups[name]))
	}
	return sg
}

func schemaCmd(c *CommandInfo) schemaCommand {
	return schemaCommand{
		Name:    c.Name,
		Summary: c.Summary,
		Hidden:  c.Hidden,
		Flags:   schemaFlags(c.Params),
	}
}

func schemaFlags(specs []ParameterSpec) []schemaFlag {
	out := make([]schemaFlag, 0, len(specs))
	for _, p := range specs {
		out = append(out, schemaFlag{
			Name:       p.Name,
			Type:       schemaType(p),
			Default:    p.Default,
			Required:   p.Required(),
			Positional: p.Positional,
			Choices:    p.Choices,
			Help:       p.Help,
		})
	}
	return out
}

func schemaType(p ParameterSpec) string {
	switch p.Kind {
	case KindChoice, KindPath, KindCollection:
		return p.Kind.String()
	}
	if p.Type == durationType {
		return "duration"
	}
	return p.Type.Kind().String()
}
