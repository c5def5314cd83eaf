// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package freyja

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// CLI is a built application ready to run. Zero-value writers default
// to the process streams; Renderer defaults to the standard layout.
type CLI struct {
	Tree     *CommandTree
	Renderer HelpRenderer
	Stdout   io.Writer
	Stderr   io.Writer
}

// New builds the command tree for the supplied classes and wraps it in
// a runnable CLI. The error is always a *ConfigError.
func New(prog Program, classes ...ClassSpec) (*CLI, error) {
	tree, err := Build(prog, classes...)
	if err != nil {
		return nil, err
	}
	return &CLI{Tree: tree}, nil
}

// Run executes one invocation and returns the process exit status. All
// output goes to the CLI's writers; Run never calls os.Exit.
func (c *CLI) Run(args []string) int {
	stdout, stderr := c.Stdout, c.Stderr
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	renderer := c.Renderer
	if renderer == nil {
		renderer = defaultRenderer{}
	}

	// "help <path>" reads as "<path> --help" unless the application
	// defines its own help command.
	if len(args) > 0 && args[0] == "help" {
		if _, _, err := Resolve(c.Tree, []string{"help"}); err != nil {
			args = append(append([]string{}, args[1:]...), "--help")
		}
	}

	can, err := Preprocess(args, c.Tree, c.Tree.FlagIndex())
	if err != nil {
		return c.reportError(stderr, NewStyle(stderr, false), err)
	}

	style := NewStyle(stdout, can.NoColor)

	if can.CompletionShell != "" {
		script, err := CompletionScript(c.Tree, can.CompletionShell)
		if err != nil {
			return c.reportError(stderr, style, invocationErr(nil, ExitUsage, err))
		}
		fmt.Fprint(stdout, script)
		return ExitSuccess
	}

	if can.Help || can.Command == nil {
		switch {
		case can.Command != nil:
			fmt.Fprint(stdout, renderer.CommandHelp(c.Tree, can.Command, style))
		case can.Group != nil:
			fmt.Fprint(stdout, renderer.GroupHelp(c.Tree, can.Group, style))
		default:
			fmt.Fprint(stdout, renderer.GlobalHelp(c.Tree, style))
		}
		return ExitSuccess
	}

	ctx, err := BindContext(can, c.Tree)
	if err != nil {
		return c.reportError(stderr, style, err)
	}

	exec := &Executor{Tree: c.Tree, Stdout: stdout, Stderr: stderr, Style: style}
	code, err := exec.Execute(ctx)
	if err != nil {
		return c.reportError(stderr, style, err)
	}
	return code
}

// reportError prints one invocation failure and returns its exit
// status. Unknown-command errors carry a near-miss suggestion when one
// is close enough.
func (c *CLI) reportError(w io.Writer, style *Style, err error) int {
	fmt.Fprintf(w, "%s %v\n", style.Error("Error:"), err)

	var res *ResolutionError
	if errors.As(err, &res) && res.Suggestion != "" {
		fmt.Fprintf(w, "Did you mean %q?\n", res.Suggestion)
	}
	fmt.Fprintf(w, "Try '%s --help' for more information\n", c.Tree.Prog)
	return exitStatus(err)
}

func exitStatus(err error) int {
	var pre *PreprocessError
	if errors.As(err, &pre) {
		return ExitUsage
	}
	var res *ResolutionError
	if errors.As(err, &res) {
		return ExitUnknownCommand
	}
	var inv *InvocationError
	if errors.As(err, &inv) {
		return inv.Code
	}
	return ExitFailure
}
