package kebab

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	stateDirName    = ".kebab"
	journalFileName = "journal.json"
)

// Record is one applied rename. Paths are absolute so undo can reconstruct
// the exact locations regardless of the directory it is invoked from.
type Record struct {
	OldPath   string    `json:"from"`
	NewPath   string    `json:"to"`
	IsDir     bool      `json:"is_dir"`
	Timestamp time.Time `json:"timestamp"`
}

// Journal is the single-slot durable log of the most recent run. Each
// non-dry run overwrites it, and undo consumes it.
type Journal struct {
	path string
}

// NewJournal places the journal under dir in a ".kebab" state directory.
// The directory is created on first Save, so dry runs and lookups leave no
// trace.
func NewJournal(dir string) *Journal {
	return &Journal{path: filepath.Join(dir, stateDirName, journalFileName)}
}

// Save replaces any previously persisted journal. The write goes through a
// temporary file in the same directory so a crash mid-write cannot leave a
// partial journal behind.
func (j *Journal) Save(records []Record) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(j.path), 0755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(j.path), "journal-*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), j.path)
}

// Load reads the persisted records. It returns ErrNothingToUndo when no
// journal exists or the journal holds no renames.
func (j *Journal) Load() ([]Record, error) {
	data, err := os.ReadFile(j.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNothingToUndo
	}
	if err != nil {
		return nil, err
	}

	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("journal %s is corrupt: %w", j.path, err)
	}
	if len(records) == 0 {
		return nil, ErrNothingToUndo
	}
	return records, nil
}

// Consume removes the journal so a repeated undo finds nothing to do.
func (j *Journal) Consume() error {
	err := os.Remove(j.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
