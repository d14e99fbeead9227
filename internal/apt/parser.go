package apt

import (
	"strings"

	"aptls/internal/model"
)

// diagnosticPrefixes mark lines that carry no package data: apt notices,
// warnings, and the "Listing..." progress line (bare or ellipsis form).
var diagnosticPrefixes = []string{"N:", "WARNING:", "Listing"}

// Sanitize strips empty and diagnostic lines from raw list output,
// preserving the relative order of everything else. Unrecognized lines pass
// through untouched so new output columns don't break parsing.
func Sanitize(raw string) []string {
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if isDiagnostic(line) {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

func isDiagnostic(line string) bool {
	for _, prefix := range diagnosticPrefixes {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

const tokenDelims = " /"

// Tokenize splits one sanitized line on runs of spaces and forward slashes.
// The first four tokens are name, source, version, and architecture; the
// remainder of the line is kept whole as the status segment, so a bracketed
// status with internal spaces ("[upgradable from: 1.9]") stays one field.
// No quoting or escaping: field values never contain the delimiters in the
// source data. Produces at most five fields; short lines produce fewer.
func Tokenize(line string) []string {
	var fields []string
	rest := line
	for len(fields) < model.FieldCount-1 {
		rest = strings.TrimLeft(rest, tokenDelims)
		if rest == "" {
			return fields
		}
		idx := strings.IndexAny(rest, tokenDelims)
		if idx < 0 {
			return append(fields, rest)
		}
		fields = append(fields, rest[:idx])
		rest = rest[idx:]
	}
	rest = strings.Trim(rest, tokenDelims)
	if rest != "" {
		fields = append(fields, rest)
	}
	return fields
}
