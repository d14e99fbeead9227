package model

// Version is the release version, overridden at build time via -ldflags.
var Version = "0.3.0"

// FieldCount is the canonical number of fields in a complete Record.
const FieldCount = 5

// Field indices into Record.Fields.
const (
	FieldName = iota
	FieldSource
	FieldVersion
	FieldArch
	FieldStatus
)

// StatusNone is the synthesized status for lines that carry no status segment.
const StatusNone = "none"

// Record is one parsed package-list row.
type Record struct {
	Ordinal int      `json:"ordinal"` // 1-based, assigned in input order, immutable
	Fields  []string `json:"fields"`  // Name, Source, Version, Architecture, Status
}

// Status returns the status field, or "" for a malformed short record.
func (r Record) Status() string {
	if len(r.Fields) > FieldStatus {
		return r.Fields[FieldStatus]
	}
	return ""
}

// Table is the full ordered record collection for one list invocation.
// It is replaced wholesale on every rebuild, never mutated in place.
type Table []Record

// Stats holds the aggregate counters derived from a Table.
type Stats struct {
	Installed     int `json:"installed"`
	Upgradable    int `json:"upgradable"`
	Residual      int `json:"residual"`
	AutoInstalled int `json:"auto_installed"`
}

// CommandContext records the exact command that produced the current Table,
// plus an optional user@host remote target. The command string is only ever
// inspected for the upgradable-filter marker, never otherwise interpreted.
type CommandContext struct {
	Command string `json:"command"`
	Target  string `json:"target,omitempty"`
}
