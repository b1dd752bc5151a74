package state

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/zenith/internal/constants"
	"github.com/julianstephens/zenith/internal/models"
	"github.com/julianstephens/zenith/internal/storage"
)

// Persister stores and retrieves the persisted subset of the state
type Persister interface {
	// Load returns found=false when nothing has been saved yet
	Load() (rec Record, found bool, err error)
	Save(rec Record) error
}

// Record is the durable document. The session token is not part of it.
type Record struct {
	Version int         `json:"version"`
	State   RecordState `json:"state"`
}

// RecordState holds the persisted fields. Pointer fields distinguish "absent
// from the document" (keep the default) from an explicit value.
type RecordState struct {
	User            *models.User           `json:"user"`
	IsAuthenticated *bool                  `json:"is_authenticated,omitempty"`
	Tasks           *[]models.Task         `json:"tasks,omitempty"`
	Habits          *[]models.Habit        `json:"habits,omitempty"`
	Transactions    *[]models.Transaction  `json:"transactions,omitempty"`
	Logs            *[]models.ActivityLog  `json:"logs,omitempty"`
	Notifications   *[]models.Notification `json:"notifications,omitempty"`
}

func recordOf(s Snapshot) Record {
	c := s.clone()
	return Record{
		Version: constants.RecordVersion,
		State: RecordState{
			User:            c.User,
			IsAuthenticated: &c.IsAuthenticated,
			Tasks:           orEmpty(c.Tasks),
			Habits:          orEmpty(c.Habits),
			Transactions:    orEmpty(c.Transactions),
			Logs:            orEmpty(c.Logs),
			Notifications:   orEmpty(c.Notifications),
		},
	}
}

func orEmpty[T any](v []T) *[]T {
	if v == nil {
		v = []T{}
	}
	return &v
}

// mergeOnto overlays the fields present in the record onto base
func (r Record) mergeOnto(base Snapshot) Snapshot {
	out := base
	// user is always written, so its absence and null both mean "no user"
	out.User = r.State.User
	if r.State.IsAuthenticated != nil {
		out.IsAuthenticated = *r.State.IsAuthenticated
	}
	if r.State.Tasks != nil {
		out.Tasks = *r.State.Tasks
	}
	if r.State.Habits != nil {
		out.Habits = *r.State.Habits
	}
	if r.State.Transactions != nil {
		out.Transactions = *r.State.Transactions
	}
	if r.State.Logs != nil {
		out.Logs = *r.State.Logs
	}
	if r.State.Notifications != nil {
		out.Notifications = *r.State.Notifications
	}
	// a session flag without a user cannot be honored
	if out.User == nil {
		out.IsAuthenticated = false
	}
	return out.clone()
}

// RecordPersister keeps the Record as JSON under a named entry of a
// storage.Provider.
type RecordPersister struct {
	provider storage.Provider
	name     string
}

func NewRecordPersister(provider storage.Provider, name string) *RecordPersister {
	if name == "" {
		name = constants.RecordName
	}
	return &RecordPersister{provider: provider, name: name}
}

func (p *RecordPersister) Load() (Record, bool, error) {
	data, found, err := p.provider.ReadRecord(p.name)
	if err != nil || !found {
		return Record{}, false, err
	}
	return DecodeRecord(data)
}

func (p *RecordPersister) Save(rec Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}
	return p.provider.WriteRecord(p.name, data)
}

// DecodeRecord parses a persisted document. An empty payload is reported as
// not found.
func DecodeRecord(data []byte) (Record, bool, error) {
	if len(data) == 0 {
		return Record{}, false, nil
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, false, fmt.Errorf("failed to decode record: %w", err)
	}
	if rec.Version > constants.RecordVersion {
		return Record{}, false, fmt.Errorf("record version %d is newer than supported version %d", rec.Version, constants.RecordVersion)
	}
	return rec, true, nil
}

// MemoryPersister keeps the last saved Record in memory. Err, when set, is
// returned from Save without storing anything.
type MemoryPersister struct {
	Rec   *Record
	Err   error
	Saves int
}

func (m *MemoryPersister) Load() (Record, bool, error) {
	if m.Rec == nil {
		return Record{}, false, nil
	}
	return *m.Rec, true, nil
}

func (m *MemoryPersister) Save(rec Record) error {
	if m.Err != nil {
		return m.Err
	}
	m.Rec = &rec
	m.Saves++
	return nil
}
