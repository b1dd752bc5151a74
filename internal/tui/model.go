// Package tui is the interactive terminal front end. It renders store
// snapshots and runs every mutation inside a tea.Cmd so that subscriber
// callbacks never block the event loop.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/zenith/internal/constants"
	"github.com/julianstephens/zenith/internal/state"
)

// snapshotMsg carries a committed snapshot from the store subscription
type snapshotMsg state.Snapshot

// opDoneMsg reports the outcome of a store mutation
type opDoneMsg struct {
	status string
	err    error
}

// authDoneMsg reports the outcome of a login or registration attempt
type authDoneMsg struct {
	ok  bool
	err error
}

var tabs = []struct {
	state constants.SessionState
	name  string
}{
	{constants.StateTasks, "Tasks"},
	{constants.StateHabits, "Habits"},
	{constants.StateBudget, "Budget"},
	{constants.StateNotifications, "Notifications"},
	{constants.StateActivity, "Activity"},
}

type Model struct {
	store *state.Store
	snap  state.Snapshot
	clock func() time.Time

	state     constants.SessionState
	lastTab   constants.SessionState
	tasks     list.Model
	habits    list.Model
	notes     list.Model
	login     *loginForm
	addTask   *taskForm
	form      *huh.Form
	keys      KeyMap
	help      help.Model
	status    string
	statusErr bool

	authPending bool
	width       int
	height      int
	quitting    bool
}

func newList(title string) list.Model {
	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = title
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	return l
}

// NewModel builds the root model around store. Anonymous sessions start on
// the sign-in form.
func NewModel(store *state.Store) Model {
	m := Model{
		store:  store,
		clock:  time.Now,
		state:  constants.StateTasks,
		tasks:  newList("Tasks"),
		habits: newList("Habits"),
		notes:  newList("Notifications"),
		keys:   DefaultKeyMap(),
		help:   help.New(),
	}
	m.applySnapshot(store.Snapshot())
	return m
}

func (m Model) Init() tea.Cmd {
	if m.form != nil {
		return m.form.Init()
	}
	return nil
}

// ShortHelp implements help.KeyMap for the active view
func (m Model) ShortHelp() []key.Binding {
	b := []key.Binding{m.keys.Tab}
	switch m.state {
	case constants.StateTasks:
		b = append(b, m.keys.Add, m.keys.Advance)
	case constants.StateHabits:
		b = append(b, m.keys.Toggle)
	case constants.StateNotifications:
		b = append(b, m.keys.Read, m.keys.Clear)
	}
	return append(b, m.keys.Logout, m.keys.Help, m.keys.Quit)
}

func (m Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Tab, m.keys.ShiftTab, m.keys.Up, m.keys.Down},
		{m.keys.Add, m.keys.Advance, m.keys.Toggle},
		{m.keys.Read, m.keys.Clear},
		{m.keys.Logout, m.keys.Help, m.keys.Quit},
	}
}

// Run starts the program and feeds it every committed snapshot until the
// user quits. Mutations only happen inside commands, off the event loop, so
// the blocking Send keeps snapshots in commit order.
func Run(store *state.Store) error {
	p := tea.NewProgram(NewModel(store), tea.WithAltScreen())
	unsubscribe := store.Subscribe(func(s state.Snapshot) {
		p.Send(snapshotMsg(s))
	})
	defer unsubscribe()

	_, err := p.Run()
	return err
}
