// Package localstore implements the client's durable key-value storage:
// a single JSON object kept in a file under the data directory. It plays the
// role a browser's localStorage plays for the web build — small string
// values (token, mode flag, serialized mock collection) under fixed keys.
//
// Every operation is a full read-modify-write of the backing file. There is
// no locking and no transactional isolation: last writer wins. That is an
// accepted limitation of the single-user, single-process scope.
package localstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Well-known keys.
const (
	KeyToken        = "token"
	KeyOfflineMode  = "offline_mode"
	KeyMockDiagrams = "mock_diagrams"
)

// OfflineModeEnabled is the only value of KeyOfflineMode that turns offline
// mode on; anything else (including absence) means online.
const OfflineModeEnabled = "true"

// Store is the durable string key-value store.
type Store interface {
	// Get returns the value for key and whether it was present.
	Get(key string) (string, bool, error)
	// Set writes the value for key.
	Set(key, value string) error
	// Remove deletes the key. Removing an absent key is not an error.
	Remove(key string) error
}

// FileStore keeps the key-value map as one JSON object in a file. A missing
// file reads as an empty store and is created on first write.
type FileStore struct {
	path string
}

// NewFileStore returns a FileStore backed by the file at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) load() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	if len(data) == 0 {
		return map[string]string{}, nil
	}

	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.path, err)
	}
	if m == nil {
		m = map[string]string{}
	}
	return m, nil
}

func (s *FileStore) save(m map[string]string) error {
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode store: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	return nil
}

func (s *FileStore) Get(key string) (string, bool, error) {
	m, err := s.load()
	if err != nil {
		return "", false, err
	}
	v, ok := m[key]
	return v, ok, nil
}

func (s *FileStore) Set(key, value string) error {
	m, err := s.load()
	if err != nil {
		return err
	}
	m[key] = value
	return s.save(m)
}

func (s *FileStore) Remove(key string) error {
	m, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := m[key]; !ok {
		return nil
	}
	delete(m, key)
	return s.save(m)
}

// OfflineMode reports whether the persisted mode flag turns offline mode on.
// Read errors are treated as "online": the flag is advisory input, not a
// gate that may block startup.
func OfflineMode(s Store) bool {
	v, ok, err := s.Get(KeyOfflineMode)
	return err == nil && ok && v == OfflineModeEnabled
}
