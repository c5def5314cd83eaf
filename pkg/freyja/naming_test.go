// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package freyja

import "testing"

func TestDisplayName(t *testing.T) {
	tests := []struct {
		ident string
		want  string
	}{
		{"Migrate", "migrate"},
		{"DryRun", "dry-run"},
		{"HTTPServer", "http-server"},
		{"ParseURL", "parse-url"},
		{"S3Sync", "s3-sync"},
		{"A", "a"},
		{"NoColor", "no-color"},
		{"already", "already"},
	}
	for _, tt := range tests {
		if got := displayName(tt.ident); got != tt.want {
			t.Errorf("displayName(%q) = %q, want %q", tt.ident, got, tt.want)
		}
	}
}

func TestDisplayNameRoundTrip(t *testing.T) {
	// Every name in a built tree must resolve back through the same
	// conversion, so path resolution can use exact matching.
	tree := newTestTree(t)
	tree.Walk(func(c *CommandInfo) {
		if c.run != nil {
			return
		}
		if got := displayName(c.methodName); got != c.Name {
			t.Errorf("command %q from method %q: displayName = %q", c.Name, c.methodName, got)
		}
	})
}
