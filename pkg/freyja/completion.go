// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package freyja

import (
	"fmt"
	"strings"
)

var completionShells = []string{"bash", "zsh"}

// CompletionScript returns a shell completion script covering the
// tree's full command surface. Hidden commands are omitted; flag
// completion covers the scope in effect at each path.
func CompletionScript(t *CommandTree, shell string) (string, error) {
	switch shell {
	case "bash":
		return bashCompletion(t), nil
	case "zsh":
		return zshCompletion(t), nil
	}
	return "", fmt.Errorf("unsupported shell %q: must be one of %s", shell, strings.Join(completionShells, ", "))
}

func runCompletion(e *Executor, ctx *ExecutionContext) (int, error) {
	shell := ctx.CommandFlags["shell"]
	script, err := CompletionScript(e.Tree, shell)
	if err != nil {
		return ExitUsage, invocationErr(ctx.Command.Path, ExitUsage, err)
	}
	fmt.Fprint(e.Stdout, script)
	return ExitSuccess, nil
}

// completionWords collects, per path key, the names completable after
// that path: child commands, child groups, and in-scope flags.
func completionWords(t *CommandTree) map[string][]string {
	words := make(map[string][]string)

	flagsFor := func(specs []ParameterSpec) []string {
		out := make([]string, 0, len(specs))
		for _, p := range specs {
			out = append(out, "--"+p.Name)
		}
		return out
	}

	root := append(t.CommandNames(), t.GroupNames()...)
	root = append(root, flagsFor(t.Globals)...)
	root = append(root, "--"+flagHelp, "--"+flagNoColor)
	words[""] = root

	var walk func(g *CommandGroup, inherited []string)
	walk = func(g *CommandGroup, inherited []string) {
		scope := append(append([]string{}, inherited...), flagsFor(g.Params)...)
		ws := append(g.CommandNames(), g.GroupNames()...)
		ws = append(ws, scope...)
		words[pathKey(g.path)] = ws
		for _, name := range sortedAllCommandNames(g.Commands) {
			c := g.Commands[name]
			words[pathKey(c.Path)] = append(flagsFor(c.Params), scope...)
		}
		for _, name := range g.GroupNames() {
			walk(g.Groups[name], scope)
		}
	}
	globalFlags := flagsFor(t.Globals)
	for _, name := range sortedAllCommandNames(t.Commands) {
		c := t.Commands[name]
		words[pathKey(c.Path)] = append(flagsFor(c.Params), globalFlags...)
	}
	for _, name := range t.GroupNames() {
		walk(t.Groups[name], globalFlags)
	}
	return words
}

func bashCompletion(t *CommandTree) string {
	words := completionWords(t)
	fn := "_" + shellIdent(t.Prog) + "_complete"

	var b strings.Builder
	fmt.Fprintf(&b, "# bash completion for %s\n", t.Prog)
	fmt.Fprintf(&b, "%s() {\n", fn)
	b.WriteString("    local cur path key\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    path=\"\"\n")
	b.WriteString("    for ((i=1; i < COMP_CWORD; i++)); do\n")
	b.WriteString("        case \"${COMP_WORDS[i]}\" in\n")
	b.WriteString("            -*) continue ;;\n")
	b.WriteString("            *) path=\"${path:+$path }${COMP_WORDS[i]}\" ;;\n")
	b.WriteString("        esac\n")
	b.WriteString("    done\n")
	b.WriteString("    case \"$path\" in\n")
	for _, key := range sortedKeys(words) {
		fmt.Fprintf(&b, "        %q)\n", key)
		fmt.Fprintf(&b, "            COMPREPLY=( $(compgen -W %q -- \"$cur\") ) ;;\n", strings.Join(words[key], " "))
	}
	b.WriteString("    esac\n")
	b.WriteString("}\n")
	fmt.Fprintf(&b, "complete -F %s %s\n", fn, t.Prog)
	return b.String()
}

func zshCompletion(t *CommandTree) string {
	words := completionWords(t)
	fn := "_" + shellIdent(t.Prog)

	var b strings.Builder
	fmt.Fprintf(&b, "#compdef %s\n", t.Prog)
	fmt.Fprintf(&b, "%s() {\n", fn)
	b.WriteString("    local -a completions\n")
	b.WriteString("    local path=\"\"\n")
	b.WriteString("    local w\n")
	b.WriteString("    for w in \"${words[@]:1:$((CURRENT-2))}\"; do\n")
	b.WriteString("        [[ $w == -* ]] && continue\n")
	b.WriteString("        path=\"${path:+$path }$w\"\n")
	b.WriteString("    done\n")
	b.WriteString("    case \"$path\" in\n")
	for _, key := range sortedKeys(words) {
		fmt.Fprintf(&b, "        %q)\n", key)
		fmt.Fprintf(&b, "            completions=(%s) ;;\n", strings.Join(words[key], " "))
	}
	b.WriteString("    esac\n")
	b.WriteString("    compadd -a completions\n")
	b.WriteString("}\n")
	fmt.Fprintf(&b, "compdef %s %s\n", fn, t.Prog)
	return b.String()
}

func shellIdent(name string) string {
	return strings.Map(func(r rune) rune {
		if r == '-' || r == '.' {
			return '_'
		}
		return r
	}, name)
}
