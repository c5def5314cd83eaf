// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cmdutil holds small helpers for interactive commands.
package cmdutil

import (
	"fmt"
	"io"
	"strings"
)

// Confirm prompts on w and reads a yes/no answer from r. Anything other
// than "y" or "Y", including an empty line, declines.
func Confirm(r io.Reader, w io.Writer, msg string) (bool, error) {
	fmt.Fprintf(w, "%s [y/N]: ", msg)

	var confirm string
	_, err := fmt.Fscanln(r, &confirm)
	if err != nil && err.Error() != "unexpected newline" {
		return false, fmt.Errorf("failed to read confirmation: %w", err)
	}
	return strings.ToLower(confirm) == "y", nil
}
