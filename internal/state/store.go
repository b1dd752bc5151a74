package state

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/zenith/internal/constants"
	"github.com/julianstephens/zenith/internal/errors"
	"github.com/julianstephens/zenith/internal/locale"
	"github.com/julianstephens/zenith/internal/logger"
	"github.com/julianstephens/zenith/internal/models"
)

// Phase is the session lifecycle state
type Phase int

const (
	Anonymous Phase = iota
	Authenticating
	Authenticated
)

func (p Phase) String() string {
	switch p {
	case Authenticating:
		return "authenticating"
	case Authenticated:
		return "authenticated"
	default:
		return "anonymous"
	}
}

// TokenIssuer creates the opaque session token handed out on sign-in
type TokenIssuer interface {
	Issue(user models.User) (string, error)
}

type Options struct {
	Persister   Persister // nil keeps state in memory only
	Locale      locale.Provider
	Device      func() string
	Tokens      TokenIssuer
	Clock       func() time.Time
	NewID       func() string
	// Zero selects the default latency; NoDelay disables it
	LoginDelay  time.Duration
	ForgotDelay time.Duration
	// Sleep waits out the simulated network latency; tests replace it
	Sleep func(time.Duration)
}

// NoDelay turns off a simulated auth latency in Options
const NoDelay time.Duration = -1

// Delay maps a configured latency, where zero means none, to an Options value
func Delay(d time.Duration) time.Duration {
	if d <= 0 {
		return NoDelay
	}
	return d
}

// Store owns all mutable application data. Every mutation is committed to the
// Persister before it becomes visible through Snapshot or to subscribers.
type Store struct {
	mu     sync.Mutex
	state  Snapshot
	closed bool
	seq    uint64 // last committed sequence number, guarded by mu

	// publication order: commit n delivers only after commit n-1 finished
	pubMu     sync.Mutex
	pubCond   *sync.Cond
	published uint64

	observers []*observer
	pending   atomic.Int32

	persister   Persister
	locale      locale.Provider
	device      func() string
	tokens      TokenIssuer
	clock       func() time.Time
	newID       func() string
	sleep       func(time.Duration)
	loginDelay  time.Duration
	forgotDelay time.Duration
}

type observer struct {
	fn func(Snapshot)
}

// New builds a Store, loading the persisted record when one exists and
// falling back to the sample data otherwise.
func New(opts Options) (*Store, error) {
	s := &Store{
		persister:   opts.Persister,
		locale:      opts.Locale,
		device:      opts.Device,
		tokens:      opts.Tokens,
		clock:       opts.Clock,
		newID:       opts.NewID,
		sleep:       opts.Sleep,
		loginDelay:  opts.LoginDelay,
		forgotDelay: opts.ForgotDelay,
	}
	s.pubCond = sync.NewCond(&s.pubMu)
	if s.locale == nil {
		s.locale = locale.System{}
	}
	if s.device == nil {
		s.device = func() string { return "Desktop - unknown" }
	}
	if s.clock == nil {
		s.clock = time.Now
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	if s.sleep == nil {
		s.sleep = time.Sleep
	}
	if s.loginDelay == 0 {
		s.loginDelay = constants.DefaultLoginDelay
	}
	if s.forgotDelay == 0 {
		s.forgotDelay = constants.DefaultForgotDelay
	}

	s.state = seed(s.now())
	if s.persister != nil {
		rec, found, err := s.persister.Load()
		if err != nil {
			return nil, errors.Persistence("load", err)
		}
		if found {
			s.state = rec.mergeOnto(s.state)
			logger.Debug("Loaded persisted state", "tasks", len(s.state.Tasks), "logs", len(s.state.Logs))
		} else {
			logger.Debug("No persisted state found, using sample data")
		}
	}

	return s, nil
}

func (s *Store) now() time.Time {
	return s.clock().UTC()
}

// Snapshot returns a copy of the current state
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Phase reports where the session lifecycle currently stands
func (s *Store) Phase() Phase {
	if s.pending.Load() > 0 {
		return Authenticating
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.IsAuthenticated && s.state.User != nil {
		return Authenticated
	}
	return Anonymous
}

// Subscribe registers fn to receive every committed snapshot. Callbacks run in
// commit order on the committing goroutine after the store lock is released.
// They may read the store but must not call mutating Store methods.
func (s *Store) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	o := &observer{fn: fn}
	s.mu.Lock()
	s.observers = append(s.observers, o)
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, cur := range s.observers {
				if cur == o {
					s.observers = append(s.observers[:i:i], s.observers[i+1:]...)
					return
				}
			}
		})
	}
}

// Close drops all subscribers. Mutations after Close fail with ErrClosed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.observers = nil
	return nil
}

// Reset replaces the state with the sample data
func (s *Store) Reset() error {
	return s.commit("reset", func(st *Snapshot) bool {
		*st = seed(s.now())
		return true
	})
}

// commit applies fn to a copy of the state. When fn reports a change, the
// copy is saved and then swapped in and published. A failed save leaves the
// current state untouched.
func (s *Store) commit(op string, fn func(st *Snapshot) bool) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return errors.ErrClosed
	}

	next := s.state.clone()
	if !fn(&next) {
		s.mu.Unlock()
		return nil
	}

	if s.persister != nil {
		if err := s.persister.Save(recordOf(next)); err != nil {
			s.mu.Unlock()
			logger.Error("Failed to persist state", "op", op, "error", err)
			return errors.Persistence("save", err)
		}
	}

	s.state = next
	s.seq++
	seq := s.seq
	observers := append([]*observer(nil), s.observers...)
	s.mu.Unlock()

	logger.Debug("Committed state", "op", op, "seq", seq,
		"tasks", len(next.Tasks), "habits", len(next.Habits), "transactions", len(next.Transactions),
		"logs", len(next.Logs), "notifications", len(next.Notifications))

	s.publish(seq, observers, next)
	return nil
}

// publish delivers snapshot seq once every earlier commit has been delivered.
// No store lock is held while callbacks run.
func (s *Store) publish(seq uint64, observers []*observer, snap Snapshot) {
	s.pubMu.Lock()
	for s.published != seq-1 {
		s.pubCond.Wait()
	}
	s.pubMu.Unlock()

	defer func() {
		s.pubMu.Lock()
		s.published = seq
		s.pubCond.Broadcast()
		s.pubMu.Unlock()
	}()

	for _, o := range observers {
		o.fn(snap.clone())
	}
}

// appendLog prepends an activity entry for the signed-in user. Nothing is
// written while anonymous.
func (s *Store) appendLog(st *Snapshot, action, details string) {
	userID := st.UserID()
	if userID == "" {
		return
	}
	s.appendLogAs(st, userID, action, details)
}

func (s *Store) appendLogAs(st *Snapshot, userID, action, details string) {
	entry := models.ActivityLog{
		ID:        s.newID(),
		UserID:    userID,
		Action:    action,
		Details:   details,
		Timestamp: s.now(),
		Device:    s.device(),
	}
	st.Logs = append([]models.ActivityLog{entry}, st.Logs...)
}

func (s *Store) pushNotification(st *Snapshot, n models.Notification) {
	n.ID = s.newID()
	n.Timestamp = s.now()
	n.Read = false
	st.Notifications = append([]models.Notification{n}, st.Notifications...)
}
