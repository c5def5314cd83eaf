// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package freyja

import (
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Style renders the handful of text roles help output uses. A disabled
// Style passes text through unchanged.
type Style struct {
	Enabled bool

	heading *color.Color
	command *color.Color
	flag    *color.Color
	errText *color.Color
}

// NewStyle decides whether styling applies for out and returns the
// matching Style. Styling is off when disabled explicitly, when
// NO_COLOR is set, when TERM is empty or dumb, or when out is not a
// terminal.
func NewStyle(out io.Writer, disabled bool) *Style {
	s := &Style{
		heading: color.New(color.Bold),
		command: color.New(color.FgCyan),
		flag:    color.New(color.FgGreen),
		errText: color.New(color.FgRed),
	}
	if disabled || os.Getenv("NO_COLOR") != "" {
		return s
	}
	if t := os.Getenv("TERM"); t == "" || t == "dumb" {
		return s
	}
	f, ok := out.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return s
	}
	s.Enabled = true
	return s
}

func (s *Style) wrap(c *color.Color, text string) string {
	if s == nil || !s.Enabled {
		return text
	}
	return c.Sprint(text)
}

func (s *Style) Heading(text string) string { return s.wrap(s.heading, text) }
func (s *Style) Command(text string) string { return s.wrap(s.command, text) }
func (s *Style) Flag(text string) string    { return s.wrap(s.flag, text) }
func (s *Style) Error(text string) string   { return s.wrap(s.errText, text) }
