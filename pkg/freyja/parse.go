// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package freyja

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"
)

// BindContext parses the canonical buckets into an ExecutionContext for
// the resolved command. Each scope gets its own flag set, defaults are
// filled for every parameter that carries one, and required command
// parameters without a value fail here with a usage status.
func BindContext(can *Canonical, tree *CommandTree) (*ExecutionContext, error) {
	cmd := can.Command
	if cmd == nil {
		return nil, invocationErr(can.Path, ExitUsage, fmt.Errorf("no command to bind"))
	}
	ctx := newExecutionContext(cmd)
	ctx.Positional = can.Positional

	if err := bindScope(ctx, "", tree.Globals, can.GlobalFlags, ctx.Globals, nil); err != nil {
		return nil, invocationErr(cmd.Path, ExitUsage, err)
	}

	groupPath := cmd.Path[:len(cmd.Path)-1]
	for i := 1; i <= len(groupPath); i++ {
		prefix := groupPath[:i]
		g := tree.groupAt(prefix)
		if g == nil {
			return nil, invocationErr(cmd.Path, ExitUsage, fmt.Errorf("no group at %q", pathKey(prefix)))
		}
		key := pathKey(prefix)
		vals := make(map[string]string)
		if err := bindScope(ctx, key, g.Params, can.SubGlobalFlags[key], vals, nil); err != nil {
			return nil, invocationErr(cmd.Path, ExitUsage, err)
		}
		ctx.SubGlobals[key] = vals
	}

	cmdKey := pathKey(cmd.Path)
	if err := bindScope(ctx, cmdKey, cmd.Params, can.CommandFlags, ctx.CommandFlags, ctx.Provided); err != nil {
		return nil, invocationErr(cmd.Path, ExitUsage, err)
	}

	if err := checkCommandArgs(ctx, cmd); err != nil {
		return nil, invocationErr(cmd.Path, ExitUsage, err)
	}
	return ctx, nil
}

// bindScope parses one bucket of canonical tokens against one scope's
// parameter specs and writes raw values into dst, defaults included.
// provided, when non-nil, records which flags were set explicitly.
func bindScope(ctx *ExecutionContext, scopeKey string, specs []ParameterSpec, tokens []string, dst map[string]string, provided map[string]bool) error {
	fs := scopeFlagSet(scopeKey, specs)
	if err := fs.Parse(tokens); err != nil {
		return err
	}
	for _, p := range specs {
		f := fs.Lookup(p.Name)
		if f == nil {
			continue
		}
		switch {
		case f.Changed && p.Kind == KindCollection:
			vals, err := fs.GetStringArray(p.Name)
			if err != nil {
				return err
			}
			ctx.Collections[collectionKey(scopeKey, p.Name)] = vals
			dst[p.Name] = strings.Join(vals, ",")
		case f.Changed:
			dst[p.Name] = f.Value.String()
		case p.HasDefault:
			dst[p.Name] = p.Default
		}
		if f.Changed && provided != nil {
			provided[p.Name] = true
		}
		if v, ok := dst[p.Name]; ok && p.Kind == KindChoice && !containsString(p.Choices, v) {
			return fmt.Errorf("invalid value %q for --%s: must be one of %s",
				v, p.Name, strings.Join(p.Choices, ", "))
		}
	}
	return nil
}

// checkCommandArgs enforces the command's required parameters and the
// exclusivity of positional and flag forms of the same argument.
func checkCommandArgs(ctx *ExecutionContext, cmd *CommandInfo) error {
	pos, hasPos := cmd.PositionalParam()
	if hasPos && ctx.Positional != nil {
		if ctx.Provided[pos.Name] {
			return fmt.Errorf("argument %q given both positionally and as --%s", pos.Name, pos.Name)
		}
		ctx.CommandFlags[pos.Name] = *ctx.Positional
		if pos.Kind == KindChoice && !containsString(pos.Choices, *ctx.Positional) {
			return fmt.Errorf("invalid value %q for %s: must be one of %s",
				*ctx.Positional, pos.Name, strings.Join(pos.Choices, ", "))
		}
	}
	for _, p := range cmd.Params {
		if p.HasDefault {
			continue
		}
		if _, ok := ctx.CommandFlags[p.Name]; !ok {
			return fmt.Errorf("missing required argument %q", p.Name)
		}
	}
	return nil
}

// scopeFlagSet builds a pflag set for one scope. All non-bool values
// parse as strings; coercion to the field type happens when the class
// chain is populated.
func scopeFlagSet(name string, specs []ParameterSpec) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	for _, p := range specs {
		switch {
		case p.Kind == KindCollection:
			fs.StringArray(p.Name, nil, p.Help)
		case p.IsBool():
			fs.Bool(p.Name, false, p.Help)
		default:
			fs.String(p.Name, "", p.Help)
		}
	}
	// Built-in flags may sit in the global bucket; accept and ignore.
	if name == "" {
		fs.Bool(flagHelp, false, "")
		fs.Bool(flagNoColor, false, "")
		fs.String(flagCompletion, "", "")
	}
	return fs
}

func collectionKey(scopeKey, name string) string {
	if scopeKey == "" {
		return name
	}
	return scopeKey + " " + name
}
