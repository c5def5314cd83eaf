// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package freyja

// resolvePositional marks the command's positional parameter: the first
// parameter in declaration order with no default. Every later
// no-default parameter stays a required flag; one positional per
// command is a deliberate limit, not a gap.
func resolvePositional(c *CommandInfo) {
	c.PositionalIndex = -1
	for i := range c.Params {
		if !c.Params[i].HasDefault {
			c.Params[i].Positional = true
			c.PositionalIndex = i
			return
		}
	}
}
