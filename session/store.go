// Package session provides the small key/value store capability the editor
// uses for session flags, replacing the browser-local storage of the
// original console with an injectable interface.
package session

import (
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// Store persists small string flags across editor sessions.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Delete(key string) error
}

// MemoryStore keeps flags in memory for the lifetime of the process.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string]string)}
}

// Get returns the value for key.
func (s *MemoryStore) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.items[key]
	return v, ok
}

// Set stores the value for key.
func (s *MemoryStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = value
	return nil
}

// Delete removes the key.
func (s *MemoryStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, key)
	return nil
}

// FileStore persists flags to a YAML file, written through on every change.
type FileStore struct {
	mu    sync.Mutex
	path  string
	items map[string]string
}

// NewFileStore loads (or initializes) a file-backed store at path.
func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{path: path, items: make(map[string]string)}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read session store: %w", err)
	}
	if err := yaml.Unmarshal(data, &s.items); err != nil {
		return nil, fmt.Errorf("failed to parse session store: %w", err)
	}
	if s.items == nil {
		s.items = make(map[string]string)
	}
	return s, nil
}

// Get returns the value for key.
func (s *FileStore) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.items[key]
	return v, ok
}

// Set stores the value for key and persists the store.
func (s *FileStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = value
	return s.flush()
}

// Delete removes the key and persists the store.
func (s *FileStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, key)
	return s.flush()
}

func (s *FileStore) flush() error {
	data, err := yaml.Marshal(s.items)
	if err != nil {
		return fmt.Errorf("failed to marshal session store: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session store: %w", err)
	}
	return nil
}
