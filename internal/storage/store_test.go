package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"appintake/internal/models"
)

func newTestStore(t *testing.T) *SubmissionStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data", "submissions.json")
	s, err := NewSubmissionStore(path)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return s
}

func record(id string) *models.ApplicationRecord {
	return &models.ApplicationRecord{
		ID: id,
		PersonalInfo: models.PersonalInfo{
			FirstName: "Ana",
			LastName:  "Lee",
			Email:     "ana@example.com",
		},
		SubmittedAt: "2026-08-30T12:00:00Z",
	}
}

func TestAppendAndAll(t *testing.T) {
	s := newTestStore(t)

	if err := s.Append(record("one")); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := s.Append(record("two")); err != nil {
		t.Fatalf("append: %v", err)
	}

	records, err := s.All()
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].ID != "one" || records[1].ID != "two" {
		t.Fatalf("records out of order: %q, %q", records[0].ID, records[1].ID)
	}
	if records[0].PersonalInfo.FirstName != "Ana" {
		t.Fatalf("record fields lost: %+v", records[0])
	}
}

func TestAppendConcurrent(t *testing.T) {
	s := newTestStore(t)

	const writers = 25
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if err := s.Append(record(fmt.Sprintf("rec-%d", i))); err != nil {
				t.Errorf("append %d: %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	count, err := s.Count()
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != writers {
		t.Fatalf("lost updates: expected %d records, got %d", writers, count)
	}
}

func TestCorruptCollectionFailsLoudly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "submissions.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("seed corrupt file: %v", err)
	}
	s, err := NewSubmissionStore(path)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	if err := s.Append(record("x")); err == nil {
		t.Fatal("expected append to a corrupt collection to fail")
	}

	// Prior contents must be untouched by the failed append.
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "{not json" {
		t.Fatalf("corrupt collection was overwritten: %q", data)
	}
}

func TestMissingCollectionIsEmpty(t *testing.T) {
	s := newTestStore(t)
	count, err := s.Count()
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected empty store, got %d", count)
	}
}
