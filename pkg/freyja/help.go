// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package freyja

import (
	"fmt"
	"strings"
)

// HelpRenderer produces the three help pages the CLI shows. The default
// renderer can be replaced wholesale via CLI.Renderer for applications
// that want their own layout.
type HelpRenderer interface {
	GlobalHelp(t *CommandTree, style *Style) string
	GroupHelp(t *CommandTree, g *CommandGroup, style *Style) string
	CommandHelp(t *CommandTree, c *CommandInfo, style *Style) string
}

type defaultRenderer struct{}

func (defaultRenderer) GlobalHelp(t *CommandTree, style *Style) string {
	var b strings.Builder

	b.WriteString(style.Heading(t.Prog))
	if t.Summary != "" {
		b.WriteString(" - ")
		b.WriteString(t.Summary)
	}
	b.WriteString("\n\n")

	b.WriteString(style.Heading("USAGE:") + "\n")
	fmt.Fprintf(&b, "    %s [OPTIONS] COMMAND [ARGS...]\n\n", t.Prog)

	if names := t.CommandNames(); len(names) > 0 {
		b.WriteString(style.Heading("COMMANDS:") + "\n")
		for _, name := range names {
			fmt.Fprintf(&b, "    %-14s %s\n", style.Command(name), t.Commands[name].Summary)
		}
		b.WriteString("\n")
	}

	if names := t.GroupNames(); len(names) > 0 {
		b.WriteString(style.Heading("COMMAND GROUPS:") + "\n")
		for _, name := range names {
			fmt.Fprintf(&b, "    %-14s %s\n", style.Command(name), t.Groups[name].Summary)
		}
		b.WriteString("\n")
	}

	writeFlagSection(&b, style, "GLOBAL OPTIONS:", t.Globals, true)

	if len(t.Groups) > 0 {
		fmt.Fprintf(&b, "Run '%s <group>' to see commands in a group.\n", t.Prog)
	}
	fmt.Fprintf(&b, "Run '%s COMMAND --help' for more information on a specific command.\n", t.Prog)
	return b.String()
}

func (defaultRenderer) GroupHelp(t *CommandTree, g *CommandGroup, style *Style) string {
	var b strings.Builder

	if g.Summary != "" {
		b.WriteString(g.Summary)
		b.WriteString("\n\n")
	}

	groupPath := pathKey(g.path)
	b.WriteString(style.Heading("USAGE:") + "\n")
	fmt.Fprintf(&b, "    %s [GLOBAL OPTIONS] %s COMMAND [ARGS...]\n\n", t.Prog, groupPath)

	if names := g.CommandNames(); len(names) > 0 {
		b.WriteString(style.Heading("COMMANDS:") + "\n")
		for _, name := range names {
			fmt.Fprintf(&b, "    %-14s %s\n", style.Command(name), g.Commands[name].Summary)
		}
		b.WriteString("\n")
	}

	if names := g.GroupNames(); len(names) > 0 {
		b.WriteString(style.Heading("SUBGROUPS:") + "\n")
		for _, name := range names {
			fmt.Fprintf(&b, "    %-14s %s\n", style.Command(name), g.Groups[name].Summary)
		}
		b.WriteString("\n")
	}

	writeFlagSection(&b, style, "GROUP OPTIONS:", g.Params, false)
	writeFlagSection(&b, style, "GLOBAL OPTIONS:", t.Globals, false)

	fmt.Fprintf(&b, "Run '%s %s COMMAND --help' for more information on a command.\n", t.Prog, groupPath)
	return b.String()
}

func (defaultRenderer) CommandHelp(t *CommandTree, c *CommandInfo, style *Style) string {
	var b strings.Builder

	if c.Summary != "" {
		b.WriteString(c.Summary)
		b.WriteString("\n\n")
	}

	b.WriteString(style.Heading("USAGE:") + "\n")
	usage := fmt.Sprintf("    %s %s", t.Prog, pathKey(c.Path))
	if pos, ok := c.PositionalParam(); ok {
		usage += fmt.Sprintf(" <%s>", pos.Name)
	}
	if len(c.Params) > 0 {
		usage += " [OPTIONS]"
	}
	b.WriteString(usage + "\n\n")

	if pos, ok := c.PositionalParam(); ok {
		b.WriteString(style.Heading("ARGUMENTS:") + "\n")
		desc := pos.Help
		if pos.Kind == KindChoice {
			desc = appendParen(desc, "one of: "+strings.Join(pos.Choices, ", "))
		}
		fmt.Fprintf(&b, "    %-14s %s\n\n", style.Flag("<"+pos.Name+">"), desc)
	}

	writeFlagSection(&b, style, "OPTIONS:", c.Params, false)
	writeFlagSection(&b, style, "GLOBAL OPTIONS:", t.Globals, false)

	if len(c.Examples) > 0 {
		b.WriteString(style.Heading("EXAMPLES:") + "\n")
		for _, ex := range c.Examples {
			fmt.Fprintf(&b, "    %s\n", ex)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// writeFlagSection renders one OPTIONS block. withBuiltins adds the
// flags the framework itself recognizes.
func writeFlagSection(b *strings.Builder, style *Style, heading string, specs []ParameterSpec, withBuiltins bool) {
	if len(specs) == 0 && !withBuiltins {
		return
	}
	b.WriteString(style.Heading(heading) + "\n")
	for _, p := range specs {
		flagStr := fmt.Sprintf("    --%s", p.Name)
		if !p.IsBool() {
			flagStr += " <value>"
		}
		desc := p.Help
		if p.Kind == KindChoice {
			desc = appendParen(desc, "one of: "+strings.Join(p.Choices, ", "))
		}
		if p.HasDefault && p.Default != "" {
			desc = appendParen(desc, "default: "+p.Default)
		} else if !p.HasDefault && !p.Positional {
			desc = appendParen(desc, "required")
		}
		if desc != "" {
			fmt.Fprintf(b, "%-30s %s\n", style.Flag(flagStr), desc)
		} else {
			b.WriteString(style.Flag(flagStr) + "\n")
		}
	}
	if withBuiltins {
		fmt.Fprintf(b, "%-30s %s\n", style.Flag("    -h, --help"), "Show help")
		fmt.Fprintf(b, "%-30s %s\n", style.Flag("    --no-color"), "Disable styled output")
	}
	b.WriteString("\n")
}

func appendParen(desc, note string) string {
	if desc == "" {
		return "(" + note + ")"
	}
	return desc + " (" + note + ")"
}
