package kebab

import (
	"fmt"
	"os"
)

// ReplayReverse undoes journal records newest-first, renaming each NewPath
// back to its OldPath. Reverse order guarantees a renamed parent directory
// is restored only after all records for its contents, mirroring the
// forward bottom-up order.
//
// A record whose NewPath no longer exists, or whose OldPath is now occupied
// by something else, is reported as unresolvable and skipped; the replay
// continues with the remaining records.
func ReplayReverse(records []Record) (restored []Record, unresolvable []EntryError) {
	for i := len(records) - 1; i >= 0; i-- {
		rec := records[i]
		if err := undoOne(rec); err != nil {
			unresolvable = append(unresolvable, EntryError{Path: rec.NewPath, Err: err})
			continue
		}
		restored = append(restored, rec)
	}
	return restored, unresolvable
}

func undoOne(rec Record) error {
	info, err := os.Lstat(rec.NewPath)
	if err != nil {
		return fmt.Errorf("no longer exists")
	}
	if oldInfo, err := os.Lstat(rec.OldPath); err == nil && !os.SameFile(info, oldInfo) {
		return fmt.Errorf("original path %s is occupied", rec.OldPath)
	}
	if err := os.Rename(rec.NewPath, rec.OldPath); err != nil {
		return err
	}
	return nil
}
