package state

import (
	"bytes"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/zenith/internal/constants"
	"github.com/julianstephens/zenith/internal/errors"
	"github.com/julianstephens/zenith/internal/locale"
	"github.com/julianstephens/zenith/internal/logger"
	"github.com/julianstephens/zenith/internal/models"
	"github.com/julianstephens/zenith/internal/storage"
)

var fixedNow = time.Date(2024, 1, 5, 9, 30, 0, 0, time.UTC)

type fakeTokens struct{}

func (fakeTokens) Issue(u models.User) (string, error) { return "token-" + u.ID, nil }

func testOptions(p Persister) Options {
	var mu sync.Mutex
	n := 0
	return Options{
		Persister: p,
		Locale:    locale.Static{TZ: "America/New_York", City: "New York", Country: "USA"},
		Device:    func() string { return "Desktop - test" },
		Tokens:    fakeTokens{},
		Clock:     func() time.Time { return fixedNow },
		NewID: func() string {
			mu.Lock()
			defer mu.Unlock()
			n++
			return fmt.Sprintf("id-%d", n)
		},
		Sleep: func(time.Duration) {},
	}
}

func newTestStore(t *testing.T, p Persister) *Store {
	t.Helper()
	s, err := New(testOptions(p))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func login(t *testing.T, s *Store) {
	t.Helper()
	ok, err := s.Login("a@b.com", "x")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestNewSeedsSampleData(t *testing.T) {
	s := newTestStore(t, &MemoryPersister{})
	snap := s.Snapshot()

	assert.Nil(t, snap.User)
	assert.False(t, snap.IsAuthenticated)
	require.Len(t, snap.Tasks, 2)
	assert.Equal(t, "Design system update", snap.Tasks[0].Title)
	assert.Equal(t, models.StatusInProgress, snap.Tasks[0].Status)
	assert.Equal(t, "Q4 Budget Review", snap.Tasks[1].Title)
	require.Len(t, snap.Habits, 1)
	assert.Equal(t, 12, snap.Habits[0].Streak)
	assert.Equal(t, []string{"2024-01-05"}, snap.Habits[0].CompletedDates)
	require.Len(t, snap.Transactions, 1)
	assert.Equal(t, 1500.0, snap.Transactions[0].Amount)
	assert.Empty(t, snap.Logs)
	assert.Empty(t, snap.Notifications)
	assert.Equal(t, Anonymous, s.Phase())
}

func TestLoginScenario(t *testing.T) {
	s := newTestStore(t, nil)

	ok, err := s.Login("a@b.com", "x")
	require.NoError(t, err)
	assert.True(t, ok)

	snap := s.Snapshot()
	require.NotNil(t, snap.User)
	assert.True(t, snap.IsAuthenticated)
	assert.Equal(t, "a", snap.User.Name)
	assert.Equal(t, "a@b.com", snap.User.Email)
	assert.Equal(t, constants.AvatarURLPrefix+"a@b.com", snap.User.Avatar)
	assert.Equal(t, "America/New_York", snap.User.Timezone)
	assert.Equal(t, "New York, USA", snap.User.DisplayLocation())
	assert.Equal(t, constants.DefaultTheme, snap.User.Preferences.Theme)
	assert.True(t, snap.User.Preferences.EmailNotifications)
	assert.Equal(t, "token-"+snap.User.ID, snap.Token)
	assert.Equal(t, Authenticated, s.Phase())

	require.Len(t, snap.Logs, 1)
	assert.Equal(t, constants.ActionLogin, snap.Logs[0].Action)
	assert.Equal(t, snap.User.ID, snap.Logs[0].UserID)
	assert.Equal(t, "Desktop - test", snap.Logs[0].Device)

	require.Len(t, snap.Notifications, 1)
	assert.Equal(t, models.NotificationSuccess, snap.Notifications[0].Kind)
	assert.Equal(t, "Welcome Back!", snap.Notifications[0].Title)
	assert.Equal(t, "Good to see you, a.", snap.Notifications[0].Message)
	assert.False(t, snap.Notifications[0].Read)
}

func TestLoginUserIDIsStable(t *testing.T) {
	assert.Equal(t, loginUserID("a@b.com"), loginUserID("A@B.com"))
	assert.NotEqual(t, loginUserID("a@b.com"), loginUserID("c@d.com"))
}

func TestLoginRejectsEmptyInput(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"empty email", "", "x"},
		{"blank email", "   ", "x"},
		{"empty password", "a@b.com", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &MemoryPersister{}
			s := newTestStore(t, p)

			ok, err := s.Login(tt.email, tt.password)
			require.NoError(t, err)
			assert.False(t, ok)

			snap := s.Snapshot()
			assert.Nil(t, snap.User)
			assert.False(t, snap.IsAuthenticated)
			assert.Empty(t, snap.Logs)
			assert.Zero(t, p.Saves)
		})
	}
}

func TestRegister(t *testing.T) {
	s := newTestStore(t, nil)

	ok, err := s.Register("Ada", "ada@example.com", "pw")
	require.NoError(t, err)
	assert.True(t, ok)

	snap := s.Snapshot()
	require.NotNil(t, snap.User)
	assert.True(t, snap.IsAuthenticated)
	assert.Equal(t, "Ada", snap.User.Name)
	assert.Equal(t, constants.AvatarURLPrefix+"Ada", snap.User.Avatar)
	assert.Equal(t, fixedNow, snap.User.CreatedAt)

	require.Len(t, snap.Logs, 1)
	assert.Equal(t, constants.ActionRegister, snap.Logs[0].Action)
	assert.Equal(t, "Account created", snap.Logs[0].Details)
	require.Len(t, snap.Notifications, 1)
	assert.Equal(t, models.NotificationInfo, snap.Notifications[0].Kind)
	assert.Equal(t, "Welcome to Zenith", snap.Notifications[0].Title)
}

func TestRegisterRequiresFields(t *testing.T) {
	s := newTestStore(t, nil)
	ok, err := s.Register("", "ada@example.com", "pw")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, s.Snapshot().User)
}

func TestExactlyOneUserAfterRepeatedAuth(t *testing.T) {
	s := newTestStore(t, nil)
	login(t, s)
	ok, err := s.Register("Ada", "ada@example.com", "pw")
	require.NoError(t, err)
	require.True(t, ok)

	snap := s.Snapshot()
	require.NotNil(t, snap.User)
	assert.Equal(t, "Ada", snap.User.Name)
	assert.True(t, snap.IsAuthenticated)
}

func TestForgotPasswordDoesNotChangeState(t *testing.T) {
	p := &MemoryPersister{}
	s := newTestStore(t, p)
	before := s.Snapshot()

	msg, err := s.ForgotPassword("a@b.com")
	require.NoError(t, err)
	assert.Contains(t, msg, "a@b.com")
	assert.Equal(t, before, s.Snapshot())
	assert.Zero(t, p.Saves)
}

func TestLogoutIsIdempotent(t *testing.T) {
	s := newTestStore(t, nil)
	login(t, s)
	userID := s.Snapshot().User.ID

	require.NoError(t, s.Logout())
	require.NoError(t, s.Logout())

	snap := s.Snapshot()
	assert.Nil(t, snap.User)
	assert.False(t, snap.IsAuthenticated)
	assert.Empty(t, snap.Token)
	assert.Equal(t, Anonymous, s.Phase())

	require.Len(t, snap.Logs, 3)
	assert.Equal(t, constants.ActionLogout, snap.Logs[0].Action)
	assert.Equal(t, constants.UnknownUserID, snap.Logs[0].UserID)
	assert.Equal(t, constants.ActionLogout, snap.Logs[1].Action)
	assert.Equal(t, userID, snap.Logs[1].UserID)
	assert.Equal(t, "User logged out", snap.Logs[1].Details)
}

func TestUpdateProfile(t *testing.T) {
	s := newTestStore(t, nil)
	login(t, s)

	name := "Alice"
	prefs := models.Preferences{Theme: "dark"}
	require.NoError(t, s.UpdateProfile(models.ProfileUpdate{Name: &name, Preferences: &prefs}))

	snap := s.Snapshot()
	assert.Equal(t, "Alice", snap.User.Name)
	assert.Equal(t, "a@b.com", snap.User.Email)
	assert.Equal(t, "dark", snap.User.Preferences.Theme)
	assert.False(t, snap.User.Preferences.EmailNotifications)

	assert.Equal(t, constants.ActionProfileUpdate, snap.Logs[0].Action)
	assert.Equal(t, "Updated: name, preferences", snap.Logs[0].Details)
	assert.Equal(t, "Profile Updated", snap.Notifications[0].Title)
	assert.Equal(t, models.NotificationInfo, snap.Notifications[0].Kind)
}

func TestUpdateProfileAnonymousIsNoop(t *testing.T) {
	p := &MemoryPersister{}
	s := newTestStore(t, p)
	name := "Alice"

	require.NoError(t, s.UpdateProfile(models.ProfileUpdate{Name: &name}))

	snap := s.Snapshot()
	assert.Nil(t, snap.User)
	assert.Empty(t, snap.Logs)
	assert.Empty(t, snap.Notifications)
	assert.Zero(t, p.Saves)
}

func TestUpdateProfileWithoutFieldsIsNoop(t *testing.T) {
	p := &MemoryPersister{}
	s := newTestStore(t, p)
	login(t, s)
	before := s.Snapshot()
	saves := p.Saves

	require.NoError(t, s.UpdateProfile(models.ProfileUpdate{}))

	after := s.Snapshot()
	assert.Len(t, after.Logs, len(before.Logs))
	assert.Len(t, after.Notifications, len(before.Notifications))
	assert.Equal(t, saves, p.Saves)
}

func TestMutationsLogOnlyWhenAuthenticated(t *testing.T) {
	name := "Alice"
	ops := map[string]func(s *Store) error{
		"add task": func(s *Store) error {
			return s.AddTask(models.Task{ID: "3", Title: "Write tests", Status: models.StatusTodo, Priority: models.PriorityLow})
		},
		"add transaction": func(s *Store) error {
			return s.AddTransaction(models.Transaction{ID: "2", Description: "Coffee", Amount: 4.5, Type: models.TransactionExpense, Category: "Food"})
		},
		"update profile": func(s *Store) error {
			return s.UpdateProfile(models.ProfileUpdate{Name: &name})
		},
	}

	for opName, op := range ops {
		t.Run(opName+" authenticated", func(t *testing.T) {
			s := newTestStore(t, nil)
			login(t, s)
			before := len(s.Snapshot().Logs)

			require.NoError(t, op(s))
			assert.Len(t, s.Snapshot().Logs, before+1)
		})

		t.Run(opName+" anonymous", func(t *testing.T) {
			s := newTestStore(t, nil)
			require.NoError(t, op(s))
			assert.Empty(t, s.Snapshot().Logs)
		})
	}
}

func TestAddTaskAppendsAsGiven(t *testing.T) {
	s := newTestStore(t, nil)
	login(t, s)
	task := models.Task{ID: "1", Title: "Duplicate id", Status: models.StatusTodo, Priority: models.PriorityLow, DueDate: "2024-02-01"}

	require.NoError(t, s.AddTask(task))

	snap := s.Snapshot()
	require.Len(t, snap.Tasks, 3)
	assert.Equal(t, task, snap.Tasks[2])
	assert.Equal(t, constants.ActionCreateTask, snap.Logs[0].Action)
	assert.Equal(t, "Duplicate id", snap.Logs[0].Details)
}

func TestUpdateTaskStatus(t *testing.T) {
	s := newTestStore(t, nil)
	login(t, s)

	require.NoError(t, s.UpdateTaskStatus("2", models.StatusDone))

	snap := s.Snapshot()
	task, ok := snap.FindTask("2")
	require.True(t, ok)
	assert.Equal(t, models.StatusDone, task.Status)
	assert.Equal(t, constants.ActionUpdateTask, snap.Logs[0].Action)
	assert.Equal(t, "Task 2 moved to Done", snap.Logs[0].Details)
}

func TestUpdateTaskStatusUnknownID(t *testing.T) {
	p := &MemoryPersister{}
	s := newTestStore(t, p)
	login(t, s)
	before := s.Snapshot()
	saves := p.Saves

	require.NoError(t, s.UpdateTaskStatus("999", models.StatusDone))

	after := s.Snapshot()
	assert.Equal(t, before.Tasks, after.Tasks)
	assert.Equal(t, before.Logs, after.Logs)
	assert.Equal(t, saves, p.Saves)
}

func TestToggleHabitMilestone(t *testing.T) {
	s := newTestStore(t, nil)
	require.NoError(t, s.Reset())
	require.NoError(t, s.commit(func(st *Snapshot) bool {
		st.Habits = []models.Habit{{ID: "1", Name: "Read", Streak: 4, CompletedDates: []string{}}}
		return true
	}))

	require.NoError(t, s.ToggleHabit("1", "2024-01-05"))

	snap := s.Snapshot()
	h, ok := snap.FindHabit("1")
	require.True(t, ok)
	assert.Equal(t, 5, h.Streak)
	assert.Equal(t, []string{"2024-01-05"}, h.CompletedDates)
	require.Len(t, snap.Notifications, 1)
	assert.Equal(t, models.NotificationSuccess, snap.Notifications[0].Kind)
	assert.Equal(t, "You've hit a 5 day streak on Read!", snap.Notifications[0].Message)
}

func TestToggleHabitIsItsOwnInverse(t *testing.T) {
	s := newTestStore(t, nil)
	login(t, s)
	before, _ := s.Snapshot().FindHabit("1")

	for _, date := range []string{"2024-01-04", "2024-01-05"} {
		require.NoError(t, s.ToggleHabit("1", date))
		require.NoError(t, s.ToggleHabit("1", date))

		after, _ := s.Snapshot().FindHabit("1")
		assert.Equal(t, before.Streak, after.Streak, date)
		assert.ElementsMatch(t, before.CompletedDates, after.CompletedDates, date)
	}
}

func TestToggleHabitStreakNeverNegative(t *testing.T) {
	s := newTestStore(t, nil)
	require.NoError(t, s.commit(func(st *Snapshot) bool {
		st.Habits = []models.Habit{{ID: "h", Name: "Run", Streak: 0, CompletedDates: []string{"2024-01-01", "2024-01-02"}}}
		return true
	}))

	sequence := []string{"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-01", "2024-01-03", "2024-01-03"}
	for _, date := range sequence {
		require.NoError(t, s.ToggleHabit("h", date))
		h, _ := s.Snapshot().FindHabit("h")
		assert.GreaterOrEqual(t, h.Streak, 0)
	}
}

func TestToggleHabitUnknownID(t *testing.T) {
	s := newTestStore(t, nil)
	login(t, s)
	before := s.Snapshot()

	require.NoError(t, s.ToggleHabit("nope", "2024-01-05"))
	assert.Equal(t, before, s.Snapshot())
}

func TestAddTransactionLogDetails(t *testing.T) {
	s := newTestStore(t, nil)
	login(t, s)

	require.NoError(t, s.AddTransaction(models.Transaction{ID: "2", Description: "Coffee", Amount: 4.5, Type: models.TransactionExpense, Category: "Food", Date: "2024-01-05"}))

	snap := s.Snapshot()
	require.Len(t, snap.Transactions, 2)
	assert.Equal(t, "EXPENSE: $4.5 - Coffee", snap.Logs[0].Details)
}

func TestNotifications(t *testing.T) {
	s := newTestStore(t, nil)
	login(t, s)

	require.NoError(t, s.AddNotification("Heads up", "Something happened", models.NotificationWarning))
	at := time.Date(2024, 1, 6, 8, 0, 0, 0, time.UTC)
	require.NoError(t, s.CreateReminder("Standup", "Daily sync", at))

	snap := s.Snapshot()
	require.Len(t, snap.Notifications, 3)
	reminder := snap.Notifications[0]
	assert.Equal(t, "Reminder: Standup", reminder.Title)
	assert.Equal(t, models.NotificationReminder, reminder.Kind)
	require.NotNil(t, reminder.ScheduledFor)
	assert.True(t, reminder.ScheduledFor.Equal(at))
	assert.Equal(t, constants.ActionCreateReminder, snap.Logs[0].Action)
	assert.Equal(t, "Standup set for 2024-01-06T08:00:00Z", snap.Logs[0].Details)
	assert.Equal(t, "Heads up", snap.Notifications[1].Title)

	require.NoError(t, s.MarkNotificationRead(reminder.ID))
	require.NoError(t, s.MarkNotificationRead("missing"))
	snap = s.Snapshot()
	assert.True(t, snap.Notifications[0].Read)
	assert.False(t, snap.Notifications[1].Read)
	assert.Equal(t, 2, snap.UnreadCount())

	require.NoError(t, s.ClearNotifications())
	assert.Empty(t, s.Snapshot().Notifications)
}

func TestCreateReminderAnonymousSkipsLog(t *testing.T) {
	s := newTestStore(t, nil)
	require.NoError(t, s.CreateReminder("Standup", "Daily sync", fixedNow.Add(time.Hour)))

	snap := s.Snapshot()
	assert.Len(t, snap.Notifications, 1)
	assert.Empty(t, snap.Logs)
}

func TestSnapshotIsDetached(t *testing.T) {
	s := newTestStore(t, nil)
	login(t, s)

	snap := s.Snapshot()
	snap.Tasks[0].Title = "mutated"
	snap.Habits[0].CompletedDates[0] = "1999-01-01"
	snap.User.Name = "mutated"

	fresh := s.Snapshot()
	assert.Equal(t, "Design system update", fresh.Tasks[0].Title)
	assert.Equal(t, "2024-01-05", fresh.Habits[0].CompletedDates[0])
	assert.Equal(t, "a", fresh.User.Name)
}

func TestPersistenceFailureLeavesStateUntouched(t *testing.T) {
	p := &MemoryPersister{}
	s := newTestStore(t, p)
	var published int
	s.Subscribe(func(Snapshot) { published++ })

	p.Err = fmt.Errorf("disk full")
	err := s.AddTask(models.Task{ID: "3", Title: "Lost", Status: models.StatusTodo, Priority: models.PriorityLow})

	require.Error(t, err)
	assert.True(t, errors.IsPersistence(err))
	assert.Len(t, s.Snapshot().Tasks, 2)
	assert.Zero(t, published)

	ok, err := s.Login("a@b.com", "x")
	assert.False(t, ok)
	assert.True(t, errors.IsPersistence(err))
	assert.Nil(t, s.Snapshot().User)
}

func TestLoadFailureIsPersistenceError(t *testing.T) {
	_, err := New(testOptions(failingLoader{}))
	require.Error(t, err)
	assert.True(t, errors.IsPersistence(err))
}

type failingLoader struct{}

func (failingLoader) Load() (Record, bool, error) { return Record{}, false, fmt.Errorf("corrupt") }
func (failingLoader) Save(Record) error          { return nil }

func TestSubscribersReceiveCommits(t *testing.T) {
	s := newTestStore(t, nil)
	var got []int
	unsubscribe := s.Subscribe(func(snap Snapshot) { got = append(got, len(snap.Tasks)) })

	require.NoError(t, s.AddTask(models.Task{ID: "3", Title: "a", Status: models.StatusTodo, Priority: models.PriorityLow}))
	require.NoError(t, s.UpdateTaskStatus("999", models.StatusDone))
	unsubscribe()
	unsubscribe()
	require.NoError(t, s.AddTask(models.Task{ID: "4", Title: "b", Status: models.StatusTodo, Priority: models.PriorityLow}))

	assert.Equal(t, []int{3}, got)
}

func TestSubscriberMayReadStoreDuringConcurrentCommits(t *testing.T) {
	s := newTestStore(t, &MemoryPersister{})

	var (
		mu   sync.Mutex
		seen []int
	)
	s.Subscribe(func(snap Snapshot) {
		time.Sleep(time.Millisecond)
		current := s.Snapshot()
		_ = s.Phase()
		mu.Lock()
		seen = append(seen, len(snap.Tasks))
		mu.Unlock()
		assert.GreaterOrEqual(t, len(current.Tasks), len(snap.Tasks))
	})

	const workers, perWorker = 4, 5
	done := make(chan struct{})
	go func() {
		var wg sync.WaitGroup
		for w := range workers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range perWorker {
					id := fmt.Sprintf("w%d-%d", w, i)
					assert.NoError(t, s.AddTask(models.Task{ID: id, Title: id, Status: models.StatusTodo, Priority: models.PriorityLow}))
				}
			}()
		}
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("commits did not finish; subscriber reads deadlocked the store")
	}

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, seen, workers*perWorker)
	for i, n := range seen {
		// Snapshots arrive in commit order
		assert.Equal(t, 3+i, n)
	}
}

func TestSubscriberMayUnsubscribeItself(t *testing.T) {
	s := newTestStore(t, nil)
	calls := 0
	var unsubscribe func()
	unsubscribe = s.Subscribe(func(Snapshot) {
		calls++
		unsubscribe()
	})

	require.NoError(t, s.AddTask(models.Task{ID: "3", Title: "a", Status: models.StatusTodo, Priority: models.PriorityLow}))
	require.NoError(t, s.AddTask(models.Task{ID: "4", Title: "b", Status: models.StatusTodo, Priority: models.PriorityLow}))
	assert.Equal(t, 1, calls)
}

func TestCommitLogsOperationAtDebug(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, logger.Init(logger.Config{Debug: true, Output: &buf}))
	t.Cleanup(func() { logger.Logger = nil })

	s := newTestStore(t, nil)
	require.NoError(t, s.AddTask(models.Task{ID: "3", Title: "a", Status: models.StatusTodo, Priority: models.PriorityLow}))

	out := buf.String()
	assert.Contains(t, out, "Committed state")
	assert.Contains(t, out, "op=add_task")
	assert.Contains(t, out, "tasks=3")
}

func TestCloseRejectsMutations(t *testing.T) {
	s, err := New(testOptions(nil))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	err = s.AddTask(models.Task{ID: "3", Title: "late"})
	assert.ErrorIs(t, err, errors.ErrClosed)
	_, err = s.ForgotPassword("a@b.com")
	assert.ErrorIs(t, err, errors.ErrClosed)
}

func TestPhaseDuringLogin(t *testing.T) {
	opts := testOptions(nil)
	entered := make(chan struct{})
	release := make(chan struct{})
	opts.Sleep = func(time.Duration) {
		close(entered)
		<-release
	}
	s, err := New(opts)
	require.NoError(t, err)

	done := make(chan bool)
	go func() {
		ok, _ := s.Login("a@b.com", "x")
		done <- ok
	}()

	<-entered
	assert.Equal(t, Authenticating, s.Phase())
	close(release)
	assert.True(t, <-done)
	assert.Equal(t, Authenticated, s.Phase())
}

func TestLoginWaitsConfiguredDelay(t *testing.T) {
	opts := testOptions(nil)
	var waited time.Duration
	opts.Sleep = func(d time.Duration) { waited = d }
	s, err := New(opts)
	require.NoError(t, err)

	login(t, s)
	assert.Equal(t, constants.DefaultLoginDelay, waited)
	_, _ = s.ForgotPassword("a@b.com")
	assert.Equal(t, constants.DefaultForgotDelay, waited)
}

func TestNoDelaySkipsSimulatedLatency(t *testing.T) {
	opts := testOptions(nil)
	slept := 0
	opts.Sleep = func(time.Duration) { slept++ }
	opts.LoginDelay = Delay(0)
	opts.ForgotDelay = NoDelay
	s, err := New(opts)
	require.NoError(t, err)

	login(t, s)
	_, err = s.ForgotPassword("a@b.com")
	require.NoError(t, err)
	assert.Zero(t, slept)
	assert.Equal(t, Authenticated, s.Phase())
}

func TestDelay(t *testing.T) {
	assert.Equal(t, NoDelay, Delay(0))
	assert.Equal(t, NoDelay, Delay(-time.Second))
	assert.Equal(t, 250*time.Millisecond, Delay(250*time.Millisecond))
}

func TestRoundTripThroughPersister(t *testing.T) {
	p := &MemoryPersister{}
	s := newTestStore(t, p)
	login(t, s)
	require.NoError(t, s.AddTask(models.Task{ID: "3", Title: "Ship", Status: models.StatusTodo, Priority: models.PriorityHigh, DueDate: "2024-02-01"}))
	require.NoError(t, s.ToggleHabit("1", "2024-01-04"))
	require.NoError(t, s.CreateReminder("Standup", "Daily sync", fixedNow.Add(time.Hour)))
	before := s.Snapshot()

	reloaded := newTestStore(t, p)
	after := reloaded.Snapshot()

	assert.Empty(t, after.Token)
	before.Token = ""
	assert.Equal(t, before, after)
}

func TestRoundTripThroughStorage(t *testing.T) {
	for _, name := range []string{"zenith.json", "zenith.db"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			provider, err := storage.Open(path)
			require.NoError(t, err)
			require.NoError(t, provider.Init())
			defer provider.Close()

			s := newTestStore(t, NewRecordPersister(provider, ""))
			login(t, s)
			require.NoError(t, s.AddTransaction(models.Transaction{ID: "2", Description: "Rent", Amount: 1200, Type: models.TransactionExpense, Category: "Housing", Date: "2024-01-01"}))
			before := s.Snapshot()

			reloaded := newTestStore(t, NewRecordPersister(provider, constants.RecordName))
			after := reloaded.Snapshot()

			before.Token = ""
			assert.Equal(t, before, after)
		})
	}
}

func TestMergeKeepsDefaultsForAbsentFields(t *testing.T) {
	rec, found, err := DecodeRecord([]byte(`{"version":1,"state":{"tasks":[]}}`))
	require.NoError(t, err)
	require.True(t, found)

	p := &MemoryPersister{Rec: &rec}
	snap := newTestStore(t, p).Snapshot()

	assert.Empty(t, snap.Tasks)
	assert.Len(t, snap.Habits, 1)
	assert.Len(t, snap.Transactions, 1)
	assert.Nil(t, snap.User)
}

func TestMergeDropsSessionWithoutUser(t *testing.T) {
	rec, _, err := DecodeRecord([]byte(`{"version":1,"state":{"user":null,"is_authenticated":true}}`))
	require.NoError(t, err)

	s := newTestStore(t, &MemoryPersister{Rec: &rec})
	assert.False(t, s.Snapshot().IsAuthenticated)
	assert.Equal(t, Anonymous, s.Phase())
}

func TestDecodeRecord(t *testing.T) {
	_, found, err := DecodeRecord(nil)
	require.NoError(t, err)
	assert.False(t, found)

	_, _, err = DecodeRecord([]byte("{"))
	assert.Error(t, err)

	_, _, err = DecodeRecord([]byte(`{"version":99,"state":{}}`))
	assert.Error(t, err)
}

func TestResetRestoresSampleData(t *testing.T) {
	s := newTestStore(t, nil)
	login(t, s)
	require.NoError(t, s.ClearNotifications())
	require.NoError(t, s.AddTask(models.Task{ID: "3", Title: "x", Status: models.StatusTodo, Priority: models.PriorityLow}))

	require.NoError(t, s.Reset())

	snap := s.Snapshot()
	assert.Len(t, snap.Tasks, 2)
	assert.Nil(t, snap.User)
	assert.Empty(t, snap.Logs)
}
