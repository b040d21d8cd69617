// Package store persists the ordered folder configuration as a JSON
// document. Every mutation is flushed to disk immediately; a malformed
// file at load time degrades to an empty configuration instead of failing
// startup.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/mqzhang/stabwatch/internal/log"
	"github.com/mqzhang/stabwatch/internal/model"
)

// ErrMissingFolders is returned by Import when the document lacks the
// top-level "folders" key. No state change happens in that case.
var ErrMissingFolders = errors.New(`configuration document has no "folders" key`)

// document is the wire schema shared by the persisted store, export and
// import. A rule's end_column serializes as null when unset.
type document struct {
	Folders *[]entry `json:"folders"`
}

type entry struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Rule rule   `json:"rule"`
}

type rule struct {
	StartColumn   string  `json:"start_column"`
	EndColumn     *string `json:"end_column"`
	WarningDays   int     `json:"warning_days"`
	StabilityDays int     `json:"stability_days"`
}

// Store manages the ordered folder entries backed by one JSON file.
type Store struct {
	path    string
	entries []model.FolderEntry
	mu      sync.RWMutex
}

// DefaultPath returns the well-known location of the folder configuration.
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".stabwatch", "folders.json")
	}
	return filepath.Join(configDir, "stabwatch", "folders.json")
}

// New loads the store at path. When the file exists but cannot be read or
// parsed, the returned store is empty and usable, and the error describes
// the problem so callers can report it. A missing file is not an error.
func New(path string) (*Store, error) {
	s := &Store{path: path}
	if err := s.load(); err != nil {
		log.Debug("folder configuration unreadable, starting empty", "path", path, "error", err)
		return s, fmt.Errorf("load folder configuration %s: %w", path, err)
	}
	return s, nil
}

func (s *Store) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	if doc.Folders == nil {
		return ErrMissingFolders
	}
	s.entries = fromWire(*doc.Folders)
	return nil
}

// save writes the entries atomically: marshal, write to a temp file in the
// same directory, then rename over the target.
func (s *Store) save() error {
	data, err := marshal(s.entries)
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "folders-*.json")
	if err != nil {
		return fmt.Errorf("create temp config file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write folder configuration: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close temp config file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace folder configuration: %w", err)
	}
	return nil
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// All returns a copy of the entries in configuration order.
func (s *Store) All() []model.FolderEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.FolderEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Count returns the number of configured folders.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.entries)
}

// Add validates the entry, appends it and flushes to disk.
func (s *Store) Add(e model.FolderEntry) error {
	if err := e.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append(s.entries, e)
	return s.save()
}

// Remove deletes the entry at the given zero-based position and flushes.
// Entries are addressed by position, not name, since names may repeat.
func (s *Store) Remove(index int) (model.FolderEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.entries) {
		return model.FolderEntry{}, fmt.Errorf("no folder at position %d (have %d)", index, len(s.entries))
	}
	removed := s.entries[index]
	s.entries = append(s.entries[:index], s.entries[index+1:]...)
	if err := s.save(); err != nil {
		return model.FolderEntry{}, err
	}
	return removed, nil
}

// Clear removes every entry and flushes.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = nil
	return s.save()
}

// Export writes the current configuration document to w using the same
// schema the store persists, so an export can be imported back unchanged.
func (s *Store) Export(w io.Writer) error {
	s.mu.RLock()
	data, err := marshal(s.entries)
	s.mu.RUnlock()
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Import replaces the configuration with the document read from r. The
// document must carry the top-level "folders" key; otherwise
// ErrMissingFolders is returned and the store is untouched.
func (s *Store) Import(r io.Reader) (int, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, fmt.Errorf("read configuration document: %w", err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return 0, fmt.Errorf("parse configuration document: %w", err)
	}
	if doc.Folders == nil {
		return 0, ErrMissingFolders
	}
	entries := fromWire(*doc.Folders)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = entries
	if err := s.save(); err != nil {
		return 0, err
	}
	return len(entries), nil
}

func marshal(entries []model.FolderEntry) ([]byte, error) {
	doc := document{Folders: toWire(entries)}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal folder configuration: %w", err)
	}
	return append(data, '\n'), nil
}

func toWire(entries []model.FolderEntry) *[]entry {
	out := make([]entry, 0, len(entries))
	for _, e := range entries {
		var end *string
		if e.Rule.EndColumn != "" {
			v := e.Rule.EndColumn
			end = &v
		}
		out = append(out, entry{
			Name: e.Name,
			Path: e.Path,
			Rule: rule{
				StartColumn:   e.Rule.StartColumn,
				EndColumn:     end,
				WarningDays:   e.Rule.WarningDays,
				StabilityDays: e.Rule.StabilityDays,
			},
		})
	}
	return &out
}

func fromWire(wire []entry) []model.FolderEntry {
	out := make([]model.FolderEntry, 0, len(wire))
	for _, e := range wire {
		end := ""
		if e.Rule.EndColumn != nil {
			end = *e.Rule.EndColumn
		}
		out = append(out, model.FolderEntry{
			Name: e.Name,
			Path: e.Path,
			Rule: model.Rule{
				StartColumn:   e.Rule.StartColumn,
				EndColumn:     end,
				WarningDays:   e.Rule.WarningDays,
				StabilityDays: e.Rule.StabilityDays,
			},
		})
	}
	return out
}
