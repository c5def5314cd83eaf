// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package freyja

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func execute(t *testing.T, tree *CommandTree, args []string) (int, error) {
	t.Helper()
	can, err := Preprocess(args, tree, tree.FlagIndex())
	if err != nil {
		t.Fatalf("Preprocess(%v) error = %v", args, err)
	}
	ctx, err := BindContext(can, tree)
	if err != nil {
		return exitStatus(err), err
	}
	exec := &Executor{Tree: tree, Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}
	return exec.Execute(ctx)
}

func TestExecuteBindsArguments(t *testing.T) {
	tree := newTestTree(t)

	code, err := execute(t, tree, []string{"--verbose", "collect", "5.0", "--b=3.0"})
	if err != nil || code != ExitSuccess {
		t.Fatalf("execute = (%d, %v)", code, err)
	}
	if !gotCollect.called {
		t.Fatal("command body never ran")
	}
	if gotCollect.args.A != 5.0 || gotCollect.args.B != 3.0 {
		t.Errorf("args = %+v, want A=5 B=3", gotCollect.args)
	}
	if !gotCollect.app.Verbose || gotCollect.app.Output != "text" {
		t.Errorf("receiver = %+v, want Verbose=true Output=text (default)", gotCollect.app)
	}
}

func TestExecutePositionalAsFlag(t *testing.T) {
	tree := newTestTree(t)

	code, err := execute(t, tree, []string{"collect", "--a=5.0"})
	if err != nil || code != ExitSuccess {
		t.Fatalf("execute = (%d, %v)", code, err)
	}
	if gotCollect.args.A != 5.0 {
		t.Errorf("args = %+v, want A=5 via flag form", gotCollect.args)
	}
}

func TestExecutePositionalBothForms(t *testing.T) {
	tree := newTestTree(t)

	code, err := execute(t, tree, []string{"collect", "5.0", "--a=6.0"})
	if err == nil {
		t.Fatal("want error when an argument arrives positionally and as a flag")
	}
	if code != ExitUsage {
		t.Errorf("exit = %d, want %d", code, ExitUsage)
	}
	if !strings.Contains(err.Error(), "both positionally") {
		t.Errorf("error = %v", err)
	}
}

func TestExecuteNestedChain(t *testing.T) {
	tree := newTestTree(t)

	code, err := execute(t, tree, []string{
		"remote", "sync", "push", "dest", "--timeout=2s", "--only=a", "--only=b",
	})
	if err != nil || code != ExitSuccess {
		t.Fatalf("execute = (%d, %v)", code, err)
	}
	if !gotPush.called {
		t.Fatal("push never ran")
	}
	if gotPush.sync.Timeout != 2*time.Second {
		t.Errorf("Timeout = %v, want 2s", gotPush.sync.Timeout)
	}
	if gotPush.args.Target != Path(filepath.Clean("dest")) {
		t.Errorf("Target = %q", gotPush.args.Target)
	}
	if !reflect.DeepEqual(gotPush.args.Only, []string{"a", "b"}) {
		t.Errorf("Only = %v, want [a b] in repetition order", gotPush.args.Only)
	}
}

func TestExecuteScopeDefaults(t *testing.T) {
	tree := newTestTree(t)

	code, err := execute(t, tree, []string{"database", "migrate", "v2"})
	if err != nil || code != ExitSuccess {
		t.Fatalf("execute = (%d, %v)", code, err)
	}
	if gotMigrate.db.Retries != 3 {
		t.Errorf("Retries = %d, want the declared default 3", gotMigrate.db.Retries)
	}
	if gotMigrate.args.Version != "v2" || gotMigrate.args.DryRun {
		t.Errorf("args = %+v", gotMigrate.args)
	}
}

func TestExecuteReturnShapes(t *testing.T) {
	tree := newTestTree(t)

	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantErr  bool
	}{
		{"int return passes through", []string{"bail"}, 7, false},
		{"error return exits 1", []string{"fail"}, ExitFailure, true},
		{"exit error is silent", []string{"abort"}, 4, false},
		{"zero int return", []string{"status"}, ExitSuccess, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, err := execute(t, tree, tt.args)
			if code != tt.wantCode {
				t.Errorf("code = %d, want %d", code, tt.wantCode)
			}
			if (err != nil) != tt.wantErr {
				t.Errorf("err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestExecuteCoercionFailures(t *testing.T) {
	tree := newTestTree(t)

	tests := []struct {
		name string
		args []string
	}{
		{"bad float", []string{"collect", "5.0", "--b=many"}},
		{"bad duration", []string{"remote", "sync", "push", "dest", "--timeout=later"}},
		{"bad choice", []string{"--output=xml", "collect", "5.0"}},
		{"bad int", []string{"database", "--retries=lots", "migrate", "v2"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, err := execute(t, tree, tt.args)
			if err == nil {
				t.Fatal("want a coercion error")
			}
			if code != ExitUsage {
				t.Errorf("code = %d, want %d", code, ExitUsage)
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home dir: %v", err)
	}
	tests := []struct {
		in   string
		want string
	}{
		{"~/data", filepath.Join(home, "data")},
		{"~", home},
		{"a//b/../c", filepath.Clean("a//b/../c")},
		{"~elsewhere", "~elsewhere"},
	}
	for _, tt := range tests {
		if got := expandPath(tt.in); got != tt.want {
			t.Errorf("expandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestExecuteFreshReceiverPerInvocation(t *testing.T) {
	tree := newTestTree(t)

	if _, err := execute(t, tree, []string{"--verbose", "collect", "5.0"}); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, tree, []string{"collect", "6.0"}); err != nil {
		t.Fatal(err)
	}
	if gotCollect.app.Verbose {
		t.Error("receiver state leaked between invocations")
	}
}
