package apt

import (
	"strings"

	"aptls/internal/model"
)

// Mode selects how a statistics pass updates the snapshot.
type Mode int

const (
	// ModeFull replaces all four counters.
	ModeFull Mode = iota
	// ModeUpgradableOnly replaces only the upgradable counter. An
	// upgradable-filtered list omits installed/residual/auto packages
	// entirely, so recomputing those counters from it would zero out
	// valid prior counts.
	ModeUpgradableOnly
)

// upgradableMarker is the list-command flag that produces a filtered table.
const upgradableMarker = "--upgradable"

// ModeFor derives the aggregation mode from the command that produced the
// table. Derived once per rebuild, never re-parsed per row.
func ModeFor(ctx model.CommandContext) Mode {
	if strings.Contains(ctx.Command, upgradableMarker) {
		return ModeUpgradableOnly
	}
	return ModeFull
}

type category uint8

const (
	catUpgradable category = 1 << iota
	catInstalled
	catResidual
	catAuto
)

// classify maps a status field to the set of categories it matches.
// Keyword matching is substring-based and not mutually exclusive:
// "[installed,automatic]" is both installed and auto-installed.
func classify(status string) category {
	var cats category
	if strings.Contains(status, "upgradable") {
		cats |= catUpgradable
	}
	if strings.Contains(status, "installed") {
		cats |= catInstalled
	}
	if strings.Contains(status, "residual-config") {
		cats |= catResidual
	}
	if strings.Contains(status, "automatic") {
		cats |= catAuto
	}
	return cats
}

// Aggregate scans the table once and returns the new statistics snapshot.
// In ModeUpgradableOnly the installed, residual, and auto-installed counters
// are carried over from prev unchanged.
func Aggregate(table model.Table, mode Mode, prev model.Stats) model.Stats {
	var next model.Stats
	for _, rec := range table {
		cats := classify(rec.Status())
		if cats&catUpgradable != 0 {
			next.Upgradable++
		}
		if cats&catInstalled != 0 {
			next.Installed++
		}
		if cats&catResidual != 0 {
			next.Residual++
		}
		if cats&catAuto != 0 {
			next.AutoInstalled++
		}
	}
	if mode == ModeUpgradableOnly {
		prev.Upgradable = next.Upgradable
		return prev
	}
	return next
}
