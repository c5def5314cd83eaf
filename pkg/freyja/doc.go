// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package freyja turns annotated struct hierarchies into command-line
// interfaces without a hand-written grammar.
//
// An application is a struct whose exported methods become commands and
// whose exported fields become global flags. Additional structs can be
// registered as command groups; their fields become group-local flags
// and their methods become the group's commands.
//
//	type App struct {
//	    Verbose bool `default:"false" help:"Enable verbose output"`
//	}
//
//	type Database struct {
//	    Timeout time.Duration `default:"30s" help:"Connection timeout"`
//	}
//
//	type MigrateArgs struct {
//	    Version string `help:"Target schema version"`
//	    DryRun  bool   `default:"false" help:"Print the plan without applying it"`
//	}
//
//	func (d *Database) Migrate(args MigrateArgs) error { ... }
//
//	func main() {
//	    cli, err := freyja.New(
//	        freyja.Program{Name: "todo", Version: "1.0.0"},
//	        freyja.Class(&App{}, freyja.Group(&Database{})),
//	    )
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    os.Exit(cli.Run(os.Args[1:]))
//	}
//
// # Field tags
//
// Fields use the same tag vocabulary on application structs, group
// structs, and command parameter structs:
//   - flag:"name"     overrides the derived flag name
//   - default:"v"     default value; required on app/group fields
//   - help:"..."      one-line description
//   - choices:"a,b"   restricts a string field to an enumerated set
//
// Names without a flag tag are derived from the Go identifier by a
// deterministic conversion to hyphenated lowercase ("DryRun" becomes
// "dry-run"). The same conversion produces command and group names from
// method and type names, so a name seen in help output always resolves
// back to the member that produced it.
//
// # Parameters
//
// A command method takes at most one struct parameter describing its
// flags. The first field without a default becomes the command's single
// positional argument; it may still be supplied as a flag. Later
// no-default fields remain required flags. Supported field types:
// string, bool, the int/uint families, float32/float64, time.Duration,
// []string, and Path (a string type given filesystem handling).
//
// # Invocation shape
//
//	prog [global-flags] <group>... <command> [group-flags] [positional] [command-flags]
//
// Flags may appear anywhere on the command line; the preprocessor
// reorders them into the canonical shape above before parsing. A token
// whose role is ambiguous (it could be a positional value or a path
// segment) is rejected rather than guessed; use "--" to force the
// remaining token to be read as the positional value.
//
// # Failure model
//
// Configuration problems (a field without a default, a duplicate
// command name, an unsupported method signature) fail at build time
// with a *ConfigError and never reach command execution. Per-invocation
// problems (unknown command, bad token ordering, coercion failure, an
// error returned by the command body) are reported with a message and a
// non-zero exit status.
package freyja
