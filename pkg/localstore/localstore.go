// Package localstore is the client-side persistence layer: a small
// schema'd key-value store backed by a single JSON file. It replaces the
// ad hoc browser localStorage usage with one explicit interface injected
// into the CLI, one accessor pair per key family.
package localstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const (
	keyLastStudent = "last_student"
	keyRoster      = "lab_students"
	keyLeadQueue   = "interest_submissions"
)

// Draft is in-progress report content for one (student, date) pair. It is
// overwritten on every change and removed on successful submission; it
// never reaches the server.
type Draft struct {
	Tags         []string `json:"selectedTags"`
	Supplement   string   `json:"supplement"`
	Problems     string   `json:"problems"`
	PlanTomorrow string   `json:"planTomorrow"`
}

// QueuedLead is a trial-interest submission saved while the API was
// unreachable, flushed on the next successful contact.
type QueuedLead struct {
	Name      string `json:"name"`
	LabSize   string `json:"lab_size"`
	Contact   string `json:"contact"`
	Timestamp string `json:"timestamp"`
}

// Store persists client state under a single file. All methods are safe
// for concurrent use within one process; the file is rewritten on every
// mutation, which is fine at interactive keystroke rates.
type Store struct {
	mu   sync.Mutex
	path string
	data map[string]json.RawMessage
}

// Open loads the store file, creating an empty store when it is missing
// or unreadable (corrupted state falls back to defaults, it never blocks
// the client from starting).
func Open(path string) (*Store, error) {
	s := &Store{path: path, data: map[string]json.RawMessage{}}
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("read local store: %w", err)
	}
	if err := json.Unmarshal(raw, &s.data); err != nil {
		s.data = map[string]json.RawMessage{}
	}
	return s, nil
}

func draftKey(student, date string) string {
	return fmt.Sprintf("draft_%s_%s", student, date)
}

// Draft returns the saved draft for the pair, or nil when none exists.
func (s *Store) Draft(student, date string) (*Draft, error) {
	var d Draft
	ok, err := s.get(draftKey(student, date), &d)
	if err != nil || !ok {
		return nil, err
	}
	return &d, nil
}

// SaveDraft overwrites the draft for the pair.
func (s *Store) SaveDraft(student, date string, d Draft) error {
	return s.set(draftKey(student, date), d)
}

// ClearDraft removes the draft after a successful submission.
func (s *Store) ClearDraft(student, date string) error {
	return s.delete(draftKey(student, date))
}

// LastStudent returns the most recently selected student name.
func (s *Store) LastStudent() string {
	var name string
	if ok, err := s.get(keyLastStudent, &name); err != nil || !ok {
		return ""
	}
	return name
}

// SetLastStudent remembers the selected student for the next session.
func (s *Store) SetLastStudent(name string) error {
	return s.set(keyLastStudent, name)
}

// Roster returns the locally customised roster, or nil when the client
// follows the server roster.
func (s *Store) Roster() []string {
	var names []string
	if ok, err := s.get(keyRoster, &names); err != nil || !ok || len(names) == 0 {
		return nil
	}
	return names
}

// SetRoster persists a local roster override. It diverges from the server
// roster by design; there is no reconciliation.
func (s *Store) SetRoster(names []string) error {
	return s.set(keyRoster, names)
}

// ResetRoster drops the override, reverting to the server roster.
func (s *Store) ResetRoster() error {
	return s.delete(keyRoster)
}

// QueueLead appends a lead to the offline queue.
func (s *Store) QueueLead(lead QueuedLead) error {
	queue := s.QueuedLeads()
	return s.set(keyLeadQueue, append(queue, lead))
}

// QueuedLeads returns pending offline lead submissions, oldest first.
func (s *Store) QueuedLeads() []QueuedLead {
	var queue []QueuedLead
	if ok, err := s.get(keyLeadQueue, &queue); err != nil || !ok {
		return nil
	}
	return queue
}

// ReplaceLeadQueue overwrites the offline queue with the leads that are
// still undelivered. Passing an empty slice clears it.
func (s *Store) ReplaceLeadQueue(queue []QueuedLead) error {
	if len(queue) == 0 {
		return s.delete(keyLeadQueue)
	}
	return s.set(keyLeadQueue, queue)
}

func (s *Store) get(key string, dest interface{}) (bool, error) {
	s.mu.Lock()
	raw, ok := s.data[key]
	s.mu.Unlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func (s *Store) set(key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = raw
	return s.flushLocked()
}

func (s *Store) delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[key]; !ok {
		return nil
	}
	delete(s.data, key)
	return s.flushLocked()
}

func (s *Store) flushLocked() error {
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("encode local store: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("prepare state directory: %w", err)
		}
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return fmt.Errorf("write local store: %w", err)
	}
	return nil
}
