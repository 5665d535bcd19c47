package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"appintake/internal/models"
)

// SubmissionStore holds the submission collection: a JSON array on disk.
// All writes go through one mutex so concurrent submissions cannot lose
// each other's records, and each write lands via temp file + rename so a
// crash mid-write cannot corrupt the collection.
type SubmissionStore struct {
	mu   sync.Mutex
	path string
}

func NewSubmissionStore(path string) (*SubmissionStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}
	return &SubmissionStore{path: path}, nil
}

// Append adds one record to the collection. Existing records are never
// rewritten; a collection that fails to parse is a hard error so prior
// submissions are never silently discarded.
func (s *SubmissionStore) Append(rec *models.ApplicationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return err
	}
	records = append(records, *rec)

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode submissions: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write submissions: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("write submissions: %w", err)
	}
	return nil
}

// All returns a copy of every record in submission order.
func (s *SubmissionStore) All() ([]models.ApplicationRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *SubmissionStore) Count() (int, error) {
	records, err := s.All()
	if err != nil {
		return 0, err
	}
	return len(records), nil
}

func (s *SubmissionStore) load() ([]models.ApplicationRecord, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read submissions: %w", err)
	}
	var records []models.ApplicationRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("submissions file corrupted: %w", err)
	}
	return records, nil
}
