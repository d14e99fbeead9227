package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"aptls/internal/apt"
	"aptls/internal/model"
)

// AppModel holds the TUI state around a table session.
type AppModel struct {
	// Data
	Session     *apt.Session
	BaseCommand string // list command without view flags, from config
	Target      string // optional user@host
	Loading     bool
	Err         error
	Status      string

	// View state
	UpgradableOnly bool
	Sort           model.SortKey
	Marked         map[int]bool // ordinal -> marked
	Visible        model.Table  // rows in display order, parallel to the widget

	// Components
	Table      table.Model
	Keys       keyMap
	Help       help.Model
	WindowSize tea.WindowSizeMsg
}

type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	Mark       key.Binding
	ClearMarks key.Binding
	Sort       key.Binding
	Reverse    key.Binding
	Upgradable key.Binding
	Refresh    key.Binding
	Quit       key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Mark:       key.NewBinding(key.WithKeys(" ", "m"), key.WithHelp("space", "mark")),
		ClearMarks: key.NewBinding(key.WithKeys("M"), key.WithHelp("M", "clear marks")),
		Sort:       key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort column")),
		Reverse:    key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "reverse sort")),
		Upgradable: key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "upgradable only")),
		Refresh:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Mark, k.Sort, k.Upgradable, k.Refresh, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Mark, k.ClearMarks},
		{k.Sort, k.Reverse, k.Upgradable, k.Refresh, k.Quit},
	}
}

// InitialModel returns the initial state for one session.
func InitialModel(session *apt.Session, baseCommand, target string) AppModel {
	schema := session.Schema()

	t := table.New(
		table.WithColumns(widgetColumns(schema, schema.Sort)),
		table.WithFocused(true),
		table.WithHeight(20),
	)
	t.SetStyles(tableStyles())

	return AppModel{
		Session:     session,
		BaseCommand: baseCommand,
		Target:      target,
		Loading:     true,
		Sort:        schema.Sort,
		Marked:      map[int]bool{},
		Table:       t,
		Keys:        newKeyMap(),
		Help:        help.New(),
	}
}

// Init kicks off the first list run.
func (m AppModel) Init() tea.Cmd {
	return runListCmd(m.Session, m.listCommand(), m.Target)
}

// listCommand is the base command plus the active view flag.
func (m AppModel) listCommand() string {
	if m.UpgradableOnly {
		return m.BaseCommand + " --upgradable"
	}
	return m.BaseCommand
}

// widgetColumns maps the schema onto bubbles table columns, with a leading
// mark gutter and a direction indicator on the sorted column.
func widgetColumns(schema model.Schema, sort model.SortKey) []table.Column {
	cols := make([]table.Column, 0, len(schema.Columns)+1)
	cols = append(cols, table.Column{Title: " ", Width: 1})
	for _, c := range schema.Columns {
		title := c.Title
		if c.Key == sort.Column {
			if sort.Descending {
				title += " ▼"
			} else {
				title += " ▲"
			}
		}
		cols = append(cols, table.Column{Title: title, Width: c.Width})
	}
	return cols
}
