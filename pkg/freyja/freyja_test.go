// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package freyja

import (
	"errors"
	"testing"
	"time"
)

// Shared fixture application. Command bodies record what they received
// into package variables so tests can assert on the bound values.

type demoApp struct {
	Verbose bool   `default:"false" help:"Verbose output"`
	Output  string `default:"text" choices:"text,json" help:"Output format"`
}

type CollectArgs struct {
	A float64 `help:"First operand"`
	B float64 `default:"0" help:"Second operand"`
}

var gotCollect struct {
	called bool
	app    demoApp
	args   CollectArgs
}

func (d *demoApp) Collect(a CollectArgs) {
	gotCollect.called = true
	gotCollect.app = *d
	gotCollect.args = a
}

func (d *demoApp) Status() int { return 0 }

func (d *demoApp) Fail() error { return errors.New("boom") }

func (d *demoApp) Bail() int { return 7 }

func (d *demoApp) Abort() error { return &ExitError{Code: 4} }

type Database struct {
	Retries int `default:"3" help:"Retry count"`
}

type MigrateArgs struct {
	Version string `help:"Target schema version"`
	DryRun  bool   `default:"false" help:"Plan only"`
}

var gotMigrate struct {
	called bool
	db     Database
	args   MigrateArgs
}

func (d *Database) Migrate(a MigrateArgs) {
	gotMigrate.called = true
	gotMigrate.db = *d
	gotMigrate.args = a
}

type Remote struct {
	Endpoint string `default:"localhost:8080" help:"Control endpoint"`
}

func (r *Remote) Ping() {}

type Sync struct {
	Timeout time.Duration `default:"30s" help:"Transfer deadline"`
}

type PushArgs struct {
	Target Path     `help:"Destination path"`
	Only   []string `default:"" help:"Limit to these entries"`
}

var gotPush struct {
	called bool
	sync   Sync
	args   PushArgs
}

func (s *Sync) Push(a PushArgs) {
	gotPush.called = true
	gotPush.sync = *s
	gotPush.args = a
}

func resetRecorded() {
	gotCollect.called = false
	gotCollect.app = demoApp{}
	gotCollect.args = CollectArgs{}
	gotMigrate.called = false
	gotMigrate.db = Database{}
	gotMigrate.args = MigrateArgs{}
	gotPush.called = false
	gotPush.sync = Sync{}
	gotPush.args = PushArgs{}
}

func newTestTree(t *testing.T) *CommandTree {
	t.Helper()
	resetRecorded()
	tree, err := Build(
		Program{Name: "demo", Version: "1.2.3", Summary: "Fixture application"},
		Class(&Remote{}, Group(&Sync{})),
		Class(&demoApp{}, Group(&Database{})),
	)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return tree
}
