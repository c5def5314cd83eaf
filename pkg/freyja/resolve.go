// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package freyja

// Resolve walks a canonical path through the tree and returns the
// command it names, or the group it stops at when the path is a prefix.
// Exactly one of the two results is non-nil on success. Matching is
// exact on display names; command names win over group names at the
// same level, though the builder never registers both.
func Resolve(tree *CommandTree, segments []string) (*CommandInfo, *CommandGroup, error) {
	var cur []string
	var group *CommandGroup
	for _, seg := range segments {
		if c := tree.childCommand(cur, seg); c != nil {
			if len(cur)+1 != len(segments) {
				extra := segments[len(cur)+1]
				return nil, nil, &ResolutionError{Path: c.Path, Unknown: extra}
			}
			return c, nil, nil
		}
		if g := tree.childGroup(cur, seg); g != nil {
			group = g
			cur = append(cur, seg)
			continue
		}
		return nil, nil, &ResolutionError{
			Path:       cur,
			Unknown:    seg,
			Suggestion: suggestName(seg, tree.namespaceNames(cur)),
		}
	}
	if group != nil {
		return nil, group, nil
	}
	return nil, nil, &ResolutionError{Unknown: ""}
}

// suggestName returns the candidate closest to name by edit distance,
// or "" when nothing is close enough to be a plausible typo.
func suggestName(name string, candidates []string) string {
	const maxDistance = 3
	best, bestDist := "", maxDistance+1
	for _, c := range candidates {
		if d := levenshtein(name, c); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

func levenshtein(a, b string) int {
	if a == b {
		return 0
	}
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	cur := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		cur[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, min(cur[j-1]+1, prev[j-1]+cost))
		}
		prev, cur = cur, prev
	}
	return prev[len(rb)]
}
