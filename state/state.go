// Package state persists the client state keys (token, user, cart) that the
// site keeps between sessions.
package state

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the state file relative to the working directory.
const DefaultPath = ".draugr/state.yml"

// State is the persisted key/value map.
type State map[string]string

// Store is a durable string key/value store.
type Store interface {
	// GetItem returns the value and whether the key was present.
	GetItem(key string) (string, bool, error)
	SetItem(key, value string) error
	// RemoveItem is a no-op for absent keys.
	RemoveItem(key string) error
}

// FileStore keeps the state in a yaml file. Every call loads and saves the
// whole file, so concurrent processes see each other's writes.
type FileStore struct {
	Path string
}

// NewFileStore returns a store at path, or DefaultPath under the working
// directory when path is empty.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get current directory: %w", err)
		}
		path = filepath.Join(cwd, DefaultPath)
	}
	return &FileStore{Path: path}, nil
}

// Load loads the state from the state file.
// Returns an empty state if the file doesn't exist.
func (s *FileStore) Load() (State, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(State), nil
		}
		return nil, fmt.Errorf("read state file: %w", err)
	}

	var state State
	if err := yaml.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("parse state file: %w", err)
	}

	if state == nil {
		state = make(State)
	}

	return state, nil
}

// Save saves the state to the state file.
func (s *FileStore) Save(state State) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}

	data, err := yaml.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	if err := os.WriteFile(s.Path, data, 0o600); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}

	return nil
}

func (s *FileStore) GetItem(key string) (string, bool, error) {
	state, err := s.Load()
	if err != nil {
		return "", false, err
	}
	val, ok := state[key]
	return val, ok, nil
}

func (s *FileStore) SetItem(key, value string) error {
	state, err := s.Load()
	if err != nil {
		return err
	}
	state[key] = value
	return s.Save(state)
}

func (s *FileStore) RemoveItem(key string) error {
	state, err := s.Load()
	if err != nil {
		return err
	}
	if _, ok := state[key]; !ok {
		return nil
	}
	delete(state, key)
	return s.Save(state)
}

// Entry is one key of a snapshot.
type Entry struct {
	Key   string
	Value string
}

// Snapshot returns the stored keys in sorted order.
func (s *FileStore) Snapshot() ([]Entry, error) {
	state, err := s.Load()
	if err != nil {
		return nil, err
	}
	return sortedEntries(state), nil
}

// MemoryStore is a Store held in process memory.
type MemoryStore struct {
	mu    sync.Mutex
	items State
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(State)}
}

func (s *MemoryStore) GetItem(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	val, ok := s.items[key]
	return val, ok, nil
}

func (s *MemoryStore) SetItem(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = value
	return nil
}

func (s *MemoryStore) RemoveItem(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, key)
	return nil
}

func (s *MemoryStore) Snapshot() ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedEntries(s.items), nil
}

func sortedEntries(state State) []Entry {
	entries := make([]Entry, 0, len(state))
	for k, v := range state {
		entries = append(entries, Entry{Key: k, Value: v})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
	return entries
}
