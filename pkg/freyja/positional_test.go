// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package freyja

import "testing"

type pairApp struct{}

type LinkArgs struct {
	From string `help:"Source"`
	To   string `help:"Destination"`
}

func (p *pairApp) Link(a LinkArgs) {}

func TestResolvePositional(t *testing.T) {
	tests := []struct {
		name      string
		params    []ParameterSpec
		wantIndex int
	}{
		{
			name:      "no parameters",
			params:    nil,
			wantIndex: -1,
		},
		{
			name: "all defaulted",
			params: []ParameterSpec{
				{Name: "a", HasDefault: true},
				{Name: "b", HasDefault: true},
			},
			wantIndex: -1,
		},
		{
			name: "first without default wins",
			params: []ParameterSpec{
				{Name: "a", HasDefault: true},
				{Name: "b"},
				{Name: "c"},
			},
			wantIndex: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &CommandInfo{Params: tt.params}
			resolvePositional(c)
			if c.PositionalIndex != tt.wantIndex {
				t.Errorf("PositionalIndex = %d, want %d", c.PositionalIndex, tt.wantIndex)
			}
			for i, p := range c.Params {
				if p.Positional != (i == tt.wantIndex) {
					t.Errorf("param %d Positional = %v", i, p.Positional)
				}
			}
		})
	}
}

func TestPositionalLaterRequiredStaysFlag(t *testing.T) {
	// A second no-default parameter is a required flag, never a second
	// positional.
	tree, err := Build(Program{Name: "pair"}, Class(&pairApp{}))
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	link := tree.Commands["link"]
	if link.PositionalIndex != 0 {
		t.Fatalf("PositionalIndex = %d, want 0", link.PositionalIndex)
	}

	// Without the second value the invocation fails as a usage error.
	can, err := Preprocess([]string{"link", "src"}, tree, tree.FlagIndex())
	if err != nil {
		t.Fatalf("Preprocess() error = %v", err)
	}
	if _, err := BindContext(can, tree); err == nil {
		t.Fatal("want missing required flag error")
	}

	can, err = Preprocess([]string{"link", "src", "--to=dst"}, tree, tree.FlagIndex())
	if err != nil {
		t.Fatalf("Preprocess() error = %v", err)
	}
	ctx, err := BindContext(can, tree)
	if err != nil {
		t.Fatalf("BindContext() error = %v", err)
	}
	if ctx.CommandFlags["from"] != "src" || ctx.CommandFlags["to"] != "dst" {
		t.Errorf("CommandFlags = %v", ctx.CommandFlags)
	}
}
