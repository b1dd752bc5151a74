package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/zenith/internal/cli"
	"github.com/julianstephens/zenith/internal/constants"
	"github.com/julianstephens/zenith/internal/errors"
	"github.com/julianstephens/zenith/internal/logger"
	"github.com/julianstephens/zenith/internal/state"
)

var errSignIn = fmt.Errorf("sign in failed: check your email and password")

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
	case snapshotMsg:
		wasLogin := m.state == constants.StateLogin
		m.applySnapshot(state.Snapshot(msg))
		if !wasLogin && m.state == constants.StateLogin {
			return m, m.form.Init()
		}
		return m, nil
	case opDoneMsg:
		m.setStatus(msg.status, msg.err)
		return m, nil
	case authDoneMsg:
		m.authPending = false
		switch {
		case msg.err != nil:
			m.setStatus("", msg.err)
		case !msg.ok:
			m.setStatus("", errSignIn)
		default:
			m.setStatus("Signed in", nil)
		}
		if !m.snap.IsAuthenticated {
			m.openLogin()
			return m, m.form.Init()
		}
		return m, nil
	}

	if m.state == constants.StateLogin || m.state == constants.StateAddTask {
		return m.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		if model, cmd, handled := m.handleKey(msg); handled {
			return model, cmd
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case constants.StateTasks:
		m.tasks, cmd = m.tasks.Update(msg)
	case constants.StateHabits:
		m.habits, cmd = m.habits.Update(msg)
	case constants.StateNotifications:
		m.notes, cmd = m.notes.Update(msg)
	}
	return m, cmd
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		return m.submitForm()
	case huh.StateAborted:
		if m.state == constants.StateLogin {
			m.quitting = true
			return m, tea.Quit
		}
		m.closeForm()
		return m, nil
	}
	return m, cmd
}

func (m Model) submitForm() (tea.Model, tea.Cmd) {
	switch m.state {
	case constants.StateLogin:
		lf := m.login
		m.closeForm()
		m.authPending = true
		m.setStatus("Signing in…", nil)
		return m, m.authCmd(lf)
	case constants.StateAddTask:
		task := m.addTask.task()
		m.closeForm()
		return m, m.mutate("Task added", func(s *state.Store) error {
			return s.AddTask(task)
		})
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit, true
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil, true
	case key.Matches(msg, m.keys.Tab):
		m.state = cycleTab(m.state, 1)
		return m, nil, true
	case key.Matches(msg, m.keys.ShiftTab):
		m.state = cycleTab(m.state, -1)
		return m, nil, true
	case key.Matches(msg, m.keys.Logout):
		return m, m.mutate("Signed out", (*state.Store).Logout), true
	}

	switch m.state {
	case constants.StateTasks:
		switch {
		case key.Matches(msg, m.keys.Add):
			m.lastTab = m.state
			m.addTask, m.form = newTaskForm()
			m.state = constants.StateAddTask
			return m, m.form.Init(), true
		case key.Matches(msg, m.keys.Advance):
			item, ok := m.tasks.SelectedItem().(taskItem)
			if !ok {
				return m, nil, true
			}
			next := item.task.Status.Next()
			return m, m.mutate("Moved to "+string(next), func(s *state.Store) error {
				return s.UpdateTaskStatus(item.task.ID, next)
			}), true
		}
	case constants.StateHabits:
		if key.Matches(msg, m.keys.Toggle) {
			item, ok := m.habits.SelectedItem().(habitItem)
			if !ok {
				return m, nil, true
			}
			date := cli.Today(m.snap, m.clock())
			return m, m.mutate("Toggled "+item.habit.Name, func(s *state.Store) error {
				return s.ToggleHabit(item.habit.ID, date)
			}), true
		}
	case constants.StateNotifications:
		switch {
		case key.Matches(msg, m.keys.Read):
			item, ok := m.notes.SelectedItem().(notificationItem)
			if !ok || item.n.Read {
				return m, nil, true
			}
			return m, m.mutate("Marked as read", func(s *state.Store) error {
				return s.MarkNotificationRead(item.n.ID)
			}), true
		case key.Matches(msg, m.keys.Clear):
			return m, m.mutate("Notifications cleared", (*state.Store).ClearNotifications), true
		}
	}
	return m, nil, false
}

// mutate runs fn against the store off the event loop
func (m Model) mutate(status string, fn func(*state.Store) error) tea.Cmd {
	store := m.store
	return func() tea.Msg {
		if err := fn(store); err != nil {
			logger.Error("TUI operation failed", "error", err)
			return opDoneMsg{err: err}
		}
		return opDoneMsg{status: status}
	}
}

func (m Model) authCmd(lf *loginForm) tea.Cmd {
	store := m.store
	return func() tea.Msg {
		var (
			ok  bool
			err error
		)
		if lf.mode == modeRegister {
			ok, err = store.Register(lf.name, lf.email, lf.password)
		} else {
			ok, err = store.Login(lf.email, lf.password)
		}
		return authDoneMsg{ok: ok, err: err}
	}
}

func (m *Model) applySnapshot(snap state.Snapshot) {
	m.snap = snap
	now := m.clock()
	today := cli.Today(snap, now)

	tasks := make([]list.Item, len(snap.Tasks))
	for i, t := range snap.Tasks {
		tasks[i] = taskItem{task: t}
	}
	m.tasks.SetItems(tasks)

	habits := make([]list.Item, len(snap.Habits))
	for i, h := range snap.Habits {
		habits[i] = habitItem{habit: h, doneToday: h.IsCompleted(today)}
	}
	m.habits.SetItems(habits)

	notes := make([]list.Item, len(snap.Notifications))
	for i, n := range snap.Notifications {
		notes[i] = notificationItem{n: n, now: now}
	}
	m.notes.SetItems(notes)

	switch {
	case !snap.IsAuthenticated && !m.authPending && m.state != constants.StateLogin:
		m.openLogin()
	case snap.IsAuthenticated && m.state == constants.StateLogin:
		m.closeForm()
	}
}

func (m *Model) openLogin() {
	if m.state != constants.StateLogin && m.state != constants.StateAddTask {
		m.lastTab = m.state
	}
	m.login, m.form = newLoginForm()
	m.addTask = nil
	m.state = constants.StateLogin
}

func (m *Model) closeForm() {
	m.form = nil
	m.login = nil
	m.addTask = nil
	m.state = m.lastTab
}

func (m *Model) setStatus(status string, err error) {
	if err != nil {
		m.status = errors.Format(err)
		m.statusErr = true
		return
	}
	m.status = status
	m.statusErr = false
}

func (m *Model) resize() {
	h, v := docStyle.GetFrameSize()
	// tabs, header, status and help lines
	height := max(m.height-v-6, 3)
	width := max(m.width-h, 10)
	m.tasks.SetSize(width, height)
	m.habits.SetSize(width, height)
	m.notes.SetSize(width, height)
	m.help.Width = width
	if m.form != nil {
		m.form = m.form.WithWidth(width)
	}
}

func cycleTab(cur constants.SessionState, step int) constants.SessionState {
	idx := 0
	for i, t := range tabs {
		if t.state == cur {
			idx = i
			break
		}
	}
	idx = (idx + step + len(tabs)) % len(tabs)
	return tabs[idx].state
}
