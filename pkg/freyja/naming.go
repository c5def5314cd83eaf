// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package freyja

import (
	"strings"
	"unicode"
)

// displayName converts a Go identifier to its hyphenated lowercase
// display form: "DryRun" -> "dry-run", "HTTPServer" -> "http-server",
// "S3Sync" -> "s3-sync". The conversion is the single source of command,
// group, and flag names, so a name printed in help output matches the
// tree exactly.
func displayName(ident string) string {
	runes := []rune(ident)
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) {
			boundary := false
			if i > 0 {
				prev := runes[i-1]
				if unicode.IsLower(prev) || unicode.IsDigit(prev) {
					boundary = true
				} else if unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1]) {
					// End of an acronym run: "HTTPServer" splits before "Server".
					boundary = true
				}
			}
			if boundary {
				b.WriteByte('-')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// pathKey joins path segments for use as a map key. Display paths are
// always joined with a space, the CLI's path separator.
func pathKey(path []string) string {
	return strings.Join(path, " ")
}

func splitPathKey(key string) []string {
	return strings.Fields(key)
}
