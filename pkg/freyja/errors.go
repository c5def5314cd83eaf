// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package freyja

import (
	"fmt"
	"strings"
)

// Exit statuses produced by CLI.Run. A command that returns an int (or
// an *ExitError) passes its own status through unchanged.
const (
	ExitSuccess        = 0
	ExitFailure        = 1
	ExitUnknownCommand = 2
	ExitUsage          = 3
)

// ConfigError reports a problem with the registered classes themselves:
// a field without a default, a duplicate name, an unsupported method
// signature. Configuration errors are fatal at build time; a tree is
// never returned alongside one.
type ConfigError struct {
	Class  string // Go type name of the offending class, if known
	Member string // method or field name within the class, if known
	Reason string
}

func (e *ConfigError) Error() string {
	switch {
	case e.Class != "" && e.Member != "":
		return fmt.Sprintf("configuration error: %s.%s: %s", e.Class, e.Member, e.Reason)
	case e.Class != "":
		return fmt.Sprintf("configuration error: %s: %s", e.Class, e.Reason)
	default:
		return fmt.Sprintf("configuration error: %s", e.Reason)
	}
}

// PreprocessError reports a raw token stream that cannot be
// canonicalized: an unknown flag, a flag without its value, more than
// one positional candidate, or a token whose role is ambiguous. When a
// token admits several readings, Interpretations lists all of them.
type PreprocessError struct {
	Token           string
	Reason          string
	Interpretations []string
}

func (e *PreprocessError) Error() string {
	if len(e.Interpretations) > 0 {
		return fmt.Sprintf("ambiguous argument %q: could be %s (use \"--\" to force a positional value)",
			e.Token, strings.Join(e.Interpretations, " or "))
	}
	if e.Token != "" {
		return fmt.Sprintf("%s: %q", e.Reason, e.Token)
	}
	return e.Reason
}

// ResolutionError reports a command path that does not name any command
// or group. Suggestion, when non-empty, is the closest known name.
type ResolutionError struct {
	Path       []string // segments resolved before the unknown one
	Unknown    string
	Suggestion string
}

func (e *ResolutionError) Error() string {
	if len(e.Path) > 0 {
		return fmt.Sprintf("unknown command %q in %q", e.Unknown, strings.Join(e.Path, " "))
	}
	return fmt.Sprintf("unknown command %q", e.Unknown)
}

// InvocationError reports a failure while binding arguments or running
// the command body. Code is the exit status the CLI should use.
type InvocationError struct {
	Command string // display path of the command, space-joined
	Code    int
	Err     error
}

func (e *InvocationError) Error() string {
	if e.Command != "" {
		return fmt.Sprintf("%s: %v", e.Command, e.Err)
	}
	return e.Err.Error()
}

func (e *InvocationError) Unwrap() error { return e.Err }

// ExitError signals a non-zero exit status without an extra error
// message. A command that has already written its own output can return
// one to set the process exit status directly.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// ExitCode returns the requested exit status.
func (e *ExitError) ExitCode() int { return e.Code }

func invocationErr(path []string, code int, err error) *InvocationError {
	return &InvocationError{Command: strings.Join(path, " "), Code: code, Err: err}
}
