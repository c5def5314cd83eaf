// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package freyja

import (
	"fmt"
	"strings"
)

// Canonical is the preprocessor's output: the same invocation re-stated
// in the fixed order the downstream parser expects, plus the resolved
// command or group the path named.
type Canonical struct {
	// Tokens is the full canonical stream:
	// [global flags] [group path] [sub-global flags] [positional] [command flags].
	Tokens []string

	GlobalFlags    []string
	Path           []string
	SubGlobalFlags map[string][]string // keyed by group path prefix
	Positional     *string
	CommandFlags   []string

	// Command is set when the path names a terminal command; Group is
	// set instead when it stops at a group (a help/listing request).
	Command *CommandInfo
	Group   *CommandGroup

	// Built-in flag results.
	Help            bool
	NoColor         bool
	CompletionShell string
}

type tokenRole int

const (
	roleFlag tokenRole = iota
	roleBare
)

type tokenRec struct {
	role     tokenRole
	name     string // flag name, dashes stripped, before alias mapping
	value    string
	hasValue bool
	bare     string // bare token text
	literal  bool   // bare token after "--"; never a path segment
	deferred bool   // flag whose value binding waits for the path
	raw      string
}

// Preprocess canonicalizes a raw token stream against the tree and its
// flag index. It is a pure function: no state survives between calls.
//
// Every flag token is classified (command scope for the matched path
// first, then each matched group's scope innermost-first, then global,
// then built-ins). The longest run of bare tokens matching a
// group-then-command path becomes the path; at most one remaining bare
// token is accepted as the positional value. A bare token that could be
// either a positional value or a path segment is rejected with both
// readings named.
func Preprocess(tokens []string, tree *CommandTree, idx *FlagIndex) (*Canonical, error) {
	recs, err := scanTokens(tokens, idx)
	if err != nil {
		return nil, err
	}

	can := &Canonical{SubGlobalFlags: make(map[string][]string)}

	cmd, group, leftovers, err := matchPath(recs, tree)
	if err != nil {
		return nil, err
	}
	can.Command = cmd
	can.Group = group

	var cmdPath, groupPath []string
	switch {
	case cmd != nil:
		cmdPath = cmd.Path
		groupPath = cmd.Path[:len(cmd.Path)-1]
		can.Path = cmd.Path
	case group != nil:
		groupPath = group.path
		can.Path = group.path
	}

	leftovers, err = resolveDeferred(recs, leftovers, idx, cmdPath, groupPath)
	if err != nil {
		return nil, err
	}

	providedCmd := make(map[string]bool)
	for i := range recs {
		rec := &recs[i]
		if rec.role != roleFlag {
			continue
		}
		entry, ok := idx.Classify(rec.name, cmdPath, groupPath)
		if !ok {
			reason := "unknown flag"
			if len(can.Path) > 0 {
				reason = fmt.Sprintf("unknown flag for %q", pathKey(can.Path))
			}
			return nil, &PreprocessError{Token: rec.raw, Reason: reason}
		}
		tok := canonicalFlagToken(entry, rec)
		switch entry.Scope {
		case ScopeBuiltin:
			switch entry.Spec.Name {
			case flagHelp:
				can.Help = true
			case flagNoColor:
				can.NoColor = true
			case flagCompletion:
				can.CompletionShell = rec.value
			}
			can.GlobalFlags = append(can.GlobalFlags, tok)
		case ScopeGlobal:
			can.GlobalFlags = append(can.GlobalFlags, tok)
		case ScopeSubGlobal:
			key := pathKey(entry.Path)
			can.SubGlobalFlags[key] = append(can.SubGlobalFlags[key], tok)
		case ScopeCommand:
			providedCmd[entry.Spec.Name] = true
			can.CommandFlags = append(can.CommandFlags, tok)
		}
	}

	if err := placePositional(can, cmd, leftovers, tree, providedCmd); err != nil {
		return nil, err
	}

	can.Tokens = assembleTokens(can, groupPath)
	return can, nil
}

// scanTokens splits the raw stream into flag and bare records, binding
// each value-consuming flag to its value token. Flags unknown in every
// scope fail here; scope fit is checked after the path is known.
func scanTokens(tokens []string, idx *FlagIndex) ([]tokenRec, error) {
	var recs []tokenRec
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		if tok == "--" {
			for _, rest := range tokens[i+1:] {
				recs = append(recs, tokenRec{role: roleBare, bare: rest, literal: true, raw: rest})
			}
			break
		}
		if !isFlagToken(tok) {
			recs = append(recs, tokenRec{role: roleBare, bare: tok, raw: tok})
			continue
		}
		name, value, hasValue := splitFlagToken(tok)
		entry, ok := idx.Lookup(name)
		if !ok {
			e := &PreprocessError{Token: tok, Reason: "unknown flag"}
			if s := suggestName(name, idx.Names()); s != "" {
				e.Reason = fmt.Sprintf("unknown flag (did you mean --%s?)", s)
			}
			return nil, e
		}
		if !hasValue && idx.MixedArity(name) {
			// The name reads as a value flag in one scope and a bare
			// flag in another. Binding waits until the command path
			// fixes which entry applies.
			recs = append(recs, tokenRec{role: roleFlag, name: name, deferred: true, raw: tok})
			continue
		}
		if !hasValue && entry.ConsumesValue() {
			if i+1 < len(tokens) && !isFlagToken(tokens[i+1]) {
				value = tokens[i+1]
				hasValue = true
				i++
			} else {
				return nil, &PreprocessError{Token: tok, Reason: "flag requires a value"}
			}
		}
		recs = append(recs, tokenRec{role: roleFlag, name: name, value: value, hasValue: hasValue, raw: tok})
	}
	return recs, nil
}

// resolveDeferred binds values for flags whose arity could not be
// decided before the path was known. When the scope-correct entry
// consumes a value, the following bare token becomes that value; a
// following token already consumed as a path segment admits two
// readings and is rejected.
func resolveDeferred(recs []tokenRec, leftovers []*tokenRec, idx *FlagIndex, cmdPath, groupPath []string) ([]*tokenRec, error) {
	for i := range recs {
		rec := &recs[i]
		if rec.role != roleFlag || !rec.deferred {
			continue
		}
		entry, ok := idx.Classify(rec.name, cmdPath, groupPath)
		if !ok || !entry.ConsumesValue() {
			// Unknown names fail in the classification pass.
			continue
		}
		if i+1 >= len(recs) || recs[i+1].role != roleBare || recs[i+1].literal {
			return nil, &PreprocessError{Token: rec.raw, Reason: "flag requires a value"}
		}
		next := &recs[i+1]
		at := -1
		for j, l := range leftovers {
			if l == next {
				at = j
				break
			}
		}
		if at < 0 {
			return nil, &PreprocessError{
				Token: next.bare,
				Interpretations: []string{
					fmt.Sprintf("the value for --%s", entry.Spec.Name),
					"a command path segment",
				},
			}
		}
		rec.value = next.bare
		rec.hasValue = true
		leftovers = append(leftovers[:at], leftovers[at+1:]...)
	}
	return leftovers, nil
}

// matchPath finds the longest run of bare tokens forming a valid
// group-then-command path, starting from the first bare token that
// begins one. Bare tokens not consumed by the path are returned as
// positional candidates.
func matchPath(recs []tokenRec, tree *CommandTree) (*CommandInfo, *CommandGroup, []*tokenRec, error) {
	var bares []*tokenRec
	for i := range recs {
		if recs[i].role == roleBare {
			bares = append(bares, &recs[i])
		}
	}

	start := -1
	for i, rec := range bares {
		if rec.literal {
			continue
		}
		if tree.childCommand(nil, rec.bare) != nil || tree.childGroup(nil, rec.bare) != nil {
			start = i
			break
		}
	}

	var cmd *CommandInfo
	var group *CommandGroup
	consumed := make(map[int]bool)
	if start >= 0 {
		var cur []string
		for i := start; i < len(bares); i++ {
			rec := bares[i]
			if rec.literal {
				break
			}
			if c := tree.childCommand(cur, rec.bare); c != nil {
				cmd = c
				consumed[i] = true
				break
			}
			if g := tree.childGroup(cur, rec.bare); g != nil {
				group = g
				consumed[i] = true
				cur = append(cur, rec.bare)
				continue
			}
			break
		}
	}

	var leftovers []*tokenRec
	for i, rec := range bares {
		if !consumed[i] {
			leftovers = append(leftovers, rec)
		}
	}

	if cmd == nil {
		if group != nil {
			if len(leftovers) > 0 {
				first := leftovers[0]
				return nil, nil, nil, &ResolutionError{
					Path:       group.path,
					Unknown:    first.bare,
					Suggestion: suggestName(first.bare, tree.namespaceNames(group.path)),
				}
			}
			return nil, group, nil, nil
		}
		if len(bares) > 0 {
			first := bares[0]
			return nil, nil, nil, &ResolutionError{
				Unknown:    first.bare,
				Suggestion: suggestName(first.bare, tree.namespaceNames(nil)),
			}
		}
	}
	return cmd, group, leftovers, nil
}

// placePositional validates the positional candidates against the
// resolved command and records the accepted value.
func placePositional(can *Canonical, cmd *CommandInfo, leftovers []*tokenRec, tree *CommandTree, providedCmd map[string]bool) error {
	// Help and completion requests tolerate an incomplete invocation.
	lenient := can.Help || can.CompletionShell != ""

	if cmd == nil {
		return nil
	}
	if len(leftovers) > 1 {
		var toks []string
		for _, rec := range leftovers {
			toks = append(toks, rec.bare)
		}
		return &PreprocessError{
			Token:  leftovers[1].bare,
			Reason: fmt.Sprintf("at most one positional argument is accepted, got %s", strings.Join(toks, ", ")),
		}
	}

	pos, hasPos := cmd.PositionalParam()
	if len(leftovers) == 1 {
		rec := leftovers[0]
		if !hasPos {
			return &PreprocessError{
				Token:  rec.bare,
				Reason: fmt.Sprintf("command %q takes no positional argument", pathKey(cmd.Path)),
			}
		}
		if !rec.literal {
			if others := competingRoles(rec.bare, cmd, tree); len(others) > 0 {
				return &PreprocessError{
					Token: rec.bare,
					Interpretations: append(
						[]string{fmt.Sprintf("the %s value for %q", pos.Name, pathKey(cmd.Path))},
						others...),
				}
			}
		}
		v := rec.bare
		can.Positional = &v
		return nil
	}

	if hasPos && !providedCmd[pos.Name] && !lenient {
		return &PreprocessError{
			Reason: fmt.Sprintf("missing required argument %q for command %q", pos.Name, pathKey(cmd.Path)),
		}
	}
	return nil
}

// competingRoles lists the non-positional readings of a bare token: a
// name addressable in the command's namespace or at the top level reads
// as a path segment.
func competingRoles(token string, cmd *CommandInfo, tree *CommandTree) []string {
	parent := cmd.Path[:len(cmd.Path)-1]
	var roles []string
	if len(parent) > 0 && containsString(tree.namespaceNames(parent), token) {
		roles = append(roles, fmt.Sprintf("a path segment in %q", pathKey(parent)))
	}
	if containsString(tree.namespaceNames(nil), token) {
		roles = append(roles, "a top-level path segment")
	}
	return roles
}

func canonicalFlagToken(entry FlagEntry, rec *tokenRec) string {
	name := entry.Spec.Name
	if entry.ConsumesValue() || rec.hasValue {
		return "--" + name + "=" + rec.value
	}
	return "--" + name
}

func assembleTokens(can *Canonical, groupPath []string) []string {
	out := make([]string, 0, len(can.GlobalFlags)+len(can.Path)+len(can.CommandFlags)+2)
	out = append(out, can.GlobalFlags...)
	out = append(out, can.Path...)
	for i := 1; i <= len(groupPath); i++ {
		out = append(out, can.SubGlobalFlags[pathKey(groupPath[:i])]...)
	}
	if can.Positional != nil {
		out = append(out, *can.Positional)
	}
	out = append(out, can.CommandFlags...)
	return out
}

// isFlagToken reports whether a token is a flag rather than a value. A
// lone "-" and negative numbers read as values.
func isFlagToken(tok string) bool {
	if !strings.HasPrefix(tok, "-") || tok == "-" || tok == "--" {
		return false
	}
	return !isNumeric(tok)
}

func splitFlagToken(tok string) (name, value string, hasValue bool) {
	name = strings.TrimLeft(tok, "-")
	if i := strings.Index(name, "="); i >= 0 {
		return name[:i], name[i+1:], true
	}
	return name, "", false
}

// isNumeric reports whether s is a plain or signed number, so that
// "-3.14" can be consumed as a flag value.
func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	start := 0
	if s[0] == '-' || s[0] == '+' {
		if len(s) == 1 {
			return false
		}
		start = 1
	}
	hasDigit, hasDot := false, false
	for i := start; i < len(s); i++ {
		switch {
		case s[i] >= '0' && s[i] <= '9':
			hasDigit = true
		case s[i] == '.' && !hasDot:
			hasDot = true
		default:
			return false
		}
	}
	return hasDigit
}
