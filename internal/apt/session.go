package apt

import (
	"fmt"

	"go.uber.org/zap"

	"aptls/internal/model"
)

// Session owns the current table, its command context, and the statistics
// snapshot derived from it. Rebuilds are serialized by the caller (one list
// operation runs to completion before the next), so no locking is needed;
// readers only ever see a fully built table.
type Session struct {
	runner Runner
	schema model.Schema
	log    *zap.Logger

	ctx   model.CommandContext
	table model.Table
	stats model.Stats
}

// NewSession wires a session to its command runner and column schema.
// A nil logger disables logging.
func NewSession(runner Runner, schema model.Schema, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	return &Session{runner: runner, schema: schema, log: log}
}

// RunList executes the list command (optionally on a remote target), rebuilds
// the table from its output, and recomputes statistics. The swap is atomic:
// if the runner fails, the session keeps its prior table, stats, and context
// and the error is returned to the caller.
func (s *Session) RunList(command, target string) error {
	ctx := model.CommandContext{Command: command, Target: target}

	raw, err := s.runner.Run(command, target)
	if err != nil {
		s.log.Warn("list command failed", zap.String("command", command), zap.Error(err))
		return fmt.Errorf("list: %w", err)
	}

	table := Parse(raw)
	stats := Aggregate(table, ModeFor(ctx), s.stats)

	s.ctx = ctx
	s.table = table
	s.stats = stats

	s.log.Info("table rebuilt",
		zap.String("command", command),
		zap.String("target", target),
		zap.Int("records", len(table)),
		zap.Int("upgradable", stats.Upgradable))
	return nil
}

// Table returns the current record collection. Callers must treat it as
// read-only; it is replaced wholesale on the next RunList.
func (s *Session) Table() model.Table { return s.table }

// Stats returns the current statistics snapshot.
func (s *Session) Stats() model.Stats { return s.stats }

// Context returns the command context of the current table.
func (s *Session) Context() model.CommandContext { return s.ctx }

// Schema returns the column schema handed to the display collaborator.
func (s *Session) Schema() model.Schema { return s.schema }

// Sorted returns a copy of the table ordered by the given sort key. The key
// is validated against the schema at configuration time, so an unknown
// column here falls back to input order rather than failing.
func (s *Session) Sorted(key model.SortKey) model.Table {
	col, ok := s.schema.ColumnByKey(key.Column)
	if !ok {
		return s.table
	}
	return SortTable(s.table, col, key.Descending)
}

// Snapshot is the JSON-facing view of a session, used by the --json mode and
// the web API.
type Snapshot struct {
	Context model.CommandContext `json:"context"`
	Records model.Table          `json:"records"`
	Stats   model.Stats          `json:"stats"`
	Version string               `json:"version"`
}

// Snapshot captures the session state for serialization.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Context: s.ctx,
		Records: s.table,
		Stats:   s.stats,
		Version: model.Version,
	}
}
