// Package history persists a short log of past run summaries as JSON
// Lines, so the operator can see how the warning counts move over time.
package history

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/mqzhang/stabwatch/internal/log"
)

// maxRecords is the maximum number of snapshots retained in the store.
const maxRecords = 500

// Snapshot captures the aggregate outcome of a single pipeline run.
type Snapshot struct {
	Timestamp     time.Time `json:"ts"`
	Folders       int       `json:"folders"`
	Success       int       `json:"success"`
	Empty         int       `json:"empty"`
	Errors        int       `json:"errors"`
	FilesFailed   int       `json:"filesFailed"`
	Rows          int       `json:"rows"`
	Overdue       int       `json:"overdue"`
	Near          int       `json:"near"`
	Warnings      int       `json:"warnings"`
	ParseFailures int       `json:"parseFailures"`
}

// Store manages persistence of run snapshots as JSON Lines.
type Store struct {
	path string
	mu   sync.Mutex
}

// NewStore creates a store at ~/.cache/stabwatch/history.jsonl.
func NewStore() (*Store, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return nil, err
	}

	dir := filepath.Join(cacheDir, "stabwatch")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	return &Store{path: filepath.Join(dir, "history.jsonl")}, nil
}

// NewStoreWithPath creates a store at the given path (for testing).
func NewStoreWithPath(path string) *Store {
	return &Store{path: path}
}

// Append adds a snapshot and prunes to the last maxRecords entries.
func (s *Store) Append(snap Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.readAll()
	if err != nil {
		log.Debug("could not read run history, starting fresh", "error", err)
		records = nil
	}

	records = append(records, snap)
	if len(records) > maxRecords {
		records = records[len(records)-maxRecords:]
	}
	return s.writeAll(records)
}

// Recent returns the last n snapshots (or fewer if not enough exist).
func (s *Store) Recent(n int) []Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.readAll()
	if err != nil {
		return nil
	}
	if len(records) <= n {
		return records
	}
	return records[len(records)-n:]
}

func (s *Store) readAll() ([]Snapshot, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var records []Snapshot
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var snap Snapshot
		if err := json.Unmarshal(line, &snap); err != nil {
			log.Debug("skipping malformed history line", "error", err)
			continue
		}
		records = append(records, snap)
	}
	return records, scanner.Err()
}

func (s *Store) writeAll(records []Snapshot) error {
	f, err := os.Create(s.path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	for _, snap := range records {
		if err := enc.Encode(snap); err != nil {
			return err
		}
	}
	return w.Flush()
}
