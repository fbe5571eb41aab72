// The metadata store is a JSON-file-backed overlay mapping a manga's
// logical ID to a free-form attribute record (title override, read
// count, pin state, collections, and whatever else clients attach).
// The file is the whole truth: every save rewrites it atomically.

package metadata

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// Record is one manga's attribute record. Unknown keys written by
// clients are preserved verbatim.
type Record map[string]any

// Store provides locked read-modify-write access to the metadata file.
// A single process-wide mutex guards the full read-merge-write
// sequence so concurrent writers never clobber each other's keys.
type Store struct {
	mu   sync.Mutex
	path string
}

// NewStore creates a store backed by the JSON file at path. The file
// does not need to exist yet.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load returns a point-in-time snapshot of all records. A missing or
// unparsable file reads as an empty mapping; the parse failure is
// logged, never fatal.
func (s *Store) Load() map[string]Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

func (s *Store) loadLocked() map[string]Record {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Error reading metadata file %s: %v", s.path, err)
		}
		return map[string]Record{}
	}
	var all map[string]Record
	if err := json.Unmarshal(data, &all); err != nil {
		log.Printf("Error parsing metadata file %s: %v", s.path, err)
		return map[string]Record{}
	}
	if all == nil {
		all = map[string]Record{}
	}
	return all
}

// Save replaces the file contents with the given mapping.
func (s *Store) Save(all map[string]Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(all)
}

// saveLocked writes to a temp file and renames it into place so a
// crash mid-write never leaves a truncated metadata file behind.
func (s *Store) saveLocked(all map[string]Record) error {
	data, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode metadata: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".metadata-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp metadata file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write metadata: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp metadata file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace metadata file: %w", err)
	}
	return nil
}

// Get returns the record for id, or an empty record when absent. The
// store is a total mapping; a missing ID is never an error.
func (s *Store) Get(id string) Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec, ok := s.loadLocked()[id]; ok {
		return rec
	}
	return Record{}
}

// Upsert merges attrs into the record for id (creating it if absent),
// last write wins per key, and persists. The "id" key itself is never
// stored inside the record.
func (s *Store) Upsert(id string, attrs Record) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := s.loadLocked()
	rec := all[id]
	if rec == nil {
		rec = Record{}
	}
	for k, v := range attrs {
		if k == "id" {
			continue
		}
		rec[k] = v
	}
	all[id] = rec
	if err := s.saveLocked(all); err != nil {
		return nil, err
	}
	return rec, nil
}

// UpsertBatch applies each update (a record carrying its own "id" key)
// within one locked section and persists once. Updates without an "id"
// are skipped and excluded from the returned count.
func (s *Store) UpsertBatch(updates []Record) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := s.loadLocked()
	count := 0
	for _, update := range updates {
		id, ok := update["id"].(string)
		if !ok || id == "" {
			continue
		}
		rec := all[id]
		if rec == nil {
			rec = Record{}
		}
		for k, v := range update {
			if k == "id" {
				continue
			}
			rec[k] = v
		}
		all[id] = rec
		count++
	}
	if err := s.saveLocked(all); err != nil {
		return 0, err
	}
	return count, nil
}
