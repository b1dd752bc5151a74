package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/julianstephens/zenith/internal/models"
)

type jsonRecord struct {
	Value     json.RawMessage `json:"value"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type jsonFile struct {
	Version int                   `json:"version"`
	Records map[string]jsonRecord `json:"records"`
}

// JSONStore keeps every record in a single JSON document on disk, the way a
// browser keeps named entries in local storage.
type JSONStore struct {
	path string
	file *jsonFile
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return s.Load()
	}

	s.file = &jsonFile{
		Version: 1,
		Records: make(map[string]jsonRecord),
	}
	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'zenith init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	file := &jsonFile{}
	if err := json.Unmarshal(data, file); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}
	if file.Records == nil {
		file.Records = make(map[string]jsonRecord)
	}
	s.file = file

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

// save writes to a sibling temp file and renames it over the original so a
// crash mid-write never leaves a truncated document behind.
func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.file, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace storage: %w", err)
	}

	return nil
}

func (s *JSONStore) ReadRecord(name string) ([]byte, bool, error) {
	if s.file == nil {
		return nil, false, fmt.Errorf("storage not loaded")
	}

	rec, ok := s.file.Records[name]
	if !ok {
		return nil, false, nil
	}
	return []byte(rec.Value), true, nil
}

func (s *JSONStore) WriteRecord(name string, data []byte) error {
	if s.file == nil {
		return fmt.Errorf("storage not loaded")
	}
	if !json.Valid(data) {
		return fmt.Errorf("record %s is not valid JSON", name)
	}

	prev, existed := s.file.Records[name]
	s.file.Records[name] = jsonRecord{
		Value:     json.RawMessage(append([]byte(nil), data...)),
		UpdatedAt: time.Now().UTC(),
	}
	if err := s.save(); err != nil {
		// Keep memory consistent with what is on disk
		if existed {
			s.file.Records[name] = prev
		} else {
			delete(s.file.Records, name)
		}
		return err
	}
	return nil
}

func (s *JSONStore) DeleteRecord(name string) error {
	if s.file == nil {
		return fmt.Errorf("storage not loaded")
	}

	if _, ok := s.file.Records[name]; !ok {
		return nil
	}
	delete(s.file.Records, name)
	return s.save()
}

func (s *JSONStore) ListRecords() ([]models.RecordInfo, error) {
	if s.file == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	infos := make([]models.RecordInfo, 0, len(s.file.Records))
	for name, rec := range s.file.Records {
		infos = append(infos, models.RecordInfo{
			Name:      name,
			Size:      len(rec.Value),
			UpdatedAt: rec.UpdatedAt,
		})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos, nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
