package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"aptls/internal/apt"
	"aptls/internal/model"
)

// MsgListReady indicates a rebuild completed and the session holds a new table.
type MsgListReady struct{}

// MsgError indicates a rebuild failed; the session kept its prior table.
type MsgError error

const markGlyph = "●"

// runListCmd performs the blocking list rebuild off the UI goroutine.
func runListCmd(session *apt.Session, command, target string) tea.Cmd {
	return func() tea.Msg {
		if err := session.RunList(command, target); err != nil {
			return MsgError(err)
		}
		return MsgListReady{}
	}
}

// Update handles events.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.WindowSize = msg
		m.Help.Width = msg.Width
		m.Table.SetWidth(msg.Width)
		height := msg.Height - 5 // title, status, help, table chrome
		if height < 3 {
			height = 3
		}
		m.Table.SetHeight(height)
		return m, nil

	case MsgListReady:
		m.Loading = false
		m.Err = nil
		// The table was replaced wholesale, so prior marks no longer
		// name valid ordinals.
		m.Marked = map[int]bool{}
		m.refreshRows()
		m.Table.SetCursor(0)
		if m.UpgradableOnly {
			m.Status = fmt.Sprintf("%d upgradable packages listed", m.Session.Stats().Upgradable)
		} else {
			m.Status = fmt.Sprintf("%d packages listed", len(m.Session.Table()))
		}
		return m, nil

	case MsgError:
		m.Loading = false
		m.Err = msg
		m.Status = fmt.Sprintf("list failed: %v (previous table kept)", error(msg))
		return m, nil

	case tea.KeyMsg:
		if m.Loading {
			if key.Matches(msg, m.Keys.Quit) {
				return m, tea.Quit
			}
			return m, nil
		}

		switch {
		case key.Matches(msg, m.Keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.Keys.Refresh):
			m.Loading = true
			m.Status = "refreshing..."
			return m, runListCmd(m.Session, m.listCommand(), m.Target)

		case key.Matches(msg, m.Keys.Upgradable):
			m.UpgradableOnly = !m.UpgradableOnly
			m.Loading = true
			m.Status = "refreshing..."
			return m, runListCmd(m.Session, m.listCommand(), m.Target)

		case key.Matches(msg, m.Keys.Mark):
			if rec, ok := m.selectedRecord(); ok {
				if m.Marked[rec.Ordinal] {
					delete(m.Marked, rec.Ordinal)
				} else {
					m.Marked[rec.Ordinal] = true
				}
				cursor := m.Table.Cursor()
				m.refreshRows()
				m.Table.SetCursor(cursor)
				m.Table.MoveDown(1)
			}
			return m, nil

		case key.Matches(msg, m.Keys.ClearMarks):
			m.Marked = map[int]bool{}
			cursor := m.Table.Cursor()
			m.refreshRows()
			m.Table.SetCursor(cursor)
			return m, nil

		case key.Matches(msg, m.Keys.Sort):
			m.Sort.Column = m.nextSortColumn()
			m.refreshRows()
			m.Table.SetCursor(0)
			return m, nil

		case key.Matches(msg, m.Keys.Reverse):
			m.Sort.Descending = !m.Sort.Descending
			m.refreshRows()
			m.Table.SetCursor(0)
			return m, nil
		}
	}

	m.Table, cmd = m.Table.Update(msg)
	return m, cmd
}

// selectedRecord returns the record under the cursor.
func (m AppModel) selectedRecord() (model.Record, bool) {
	idx := m.Table.Cursor()
	if idx < 0 || idx >= len(m.Visible) {
		return model.Record{}, false
	}
	return m.Visible[idx], true
}

// nextSortColumn cycles through the schema columns in order.
func (m AppModel) nextSortColumn() string {
	cols := m.Session.Schema().Columns
	for i, c := range cols {
		if c.Key == m.Sort.Column {
			return cols[(i+1)%len(cols)].Key
		}
	}
	return cols[0].Key
}

// refreshRows re-derives the widget rows from the session table, applying
// the current sort key and the mark gutter. Ordinals and field data pass
// through unmodified.
func (m *AppModel) refreshRows() {
	schema := m.Session.Schema()
	m.Visible = m.Session.Sorted(m.Sort)

	rows := make([]table.Row, 0, len(m.Visible))
	for _, rec := range m.Visible {
		row := make(table.Row, 0, len(schema.Columns)+1)
		if m.Marked[rec.Ordinal] {
			row = append(row, markGlyph)
		} else {
			row = append(row, " ")
		}
		for _, col := range schema.Columns {
			if col.Index < len(rec.Fields) {
				row = append(row, rec.Fields[col.Index])
			} else {
				row = append(row, "")
			}
		}
		rows = append(rows, row)
	}

	m.Table.SetColumns(widgetColumns(schema, m.Sort))
	m.Table.SetRows(rows)
}
