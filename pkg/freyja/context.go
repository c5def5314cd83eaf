// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package freyja

import "github.com/google/uuid"

// ExecutionContext carries one invocation's parsed values from the flag
// parser to the executor. All values are kept in their string form;
// coercion to field types happens at bind time so a coercion failure
// can name the exact flag and command.
type ExecutionContext struct {
	// ID tags log lines and error output for this invocation.
	ID uuid.UUID

	// Globals holds the primary class's constructor values, flag name
	// to raw value. Defaults are filled in, so every global parameter
	// has an entry.
	Globals map[string]string

	// SubGlobals holds each matched group's constructor values, keyed
	// by the group's space-joined path.
	SubGlobals map[string]map[string]string

	// Collections holds multi-value flags separately, preserving
	// repetition order.
	Collections map[string][]string

	Command    *CommandInfo
	Positional *string

	// CommandFlags holds the command-scope values, defaults included.
	CommandFlags map[string]string

	// Provided records which command-scope flags were set explicitly
	// rather than defaulted.
	Provided map[string]bool
}

func newExecutionContext(cmd *CommandInfo) *ExecutionContext {
	return &ExecutionContext{
		ID:           uuid.New(),
		Globals:      make(map[string]string),
		SubGlobals:   make(map[string]map[string]string),
		Collections:  make(map[string][]string),
		Command:      cmd,
		CommandFlags: make(map[string]string),
		Provided:     make(map[string]bool),
	}
}
