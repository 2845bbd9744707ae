package kebab

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// PlannedRename is one computed rename. Plans are ordered bottom-up: the
// contents of a directory always come before the directory itself, so no
// rename ever invalidates the path of a later plan entry.
type PlannedRename struct {
	OldPath string
	NewPath string
	IsDir   bool
}

// EntryError is a per-entry failure that did not abort the run.
type EntryError struct {
	Path string
	Err  error
}

func (e EntryError) String() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

// Engine walks a root directory and renames every entry whose name is not
// already in normalized form. The root itself is never renamed.
type Engine struct {
	root          string
	includeHidden bool

	// claimed tracks target paths already assigned during planning, so two
	// entries normalizing to the same name never collide on disk.
	claimed map[string]bool
	skipped int

	// planErrs holds traversal failures (unreadable directories) so they
	// surface in the final summary alongside apply failures.
	planErrs []EntryError
}

func NewEngine(root string, includeHidden bool) *Engine {
	return &Engine{
		root:          root,
		includeHidden: includeHidden,
		claimed:       make(map[string]bool),
	}
}

// Plan traverses the tree bottom-up and computes every rename, resolving
// name collisions as it goes. Unreadable directories are recorded in
// PlanErrors and skipped; the traversal continues.
func (e *Engine) Plan() []PlannedRename {
	var plan []PlannedRename
	e.walk(e.root, &plan, &e.planErrs)
	return plan
}

// PlanErrors returns traversal failures encountered by Plan.
func (e *Engine) PlanErrors() []EntryError {
	return e.planErrs
}

func (e *Engine) walk(dir string, plan *[]PlannedRename, failed *[]EntryError) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		*failed = append(*failed, EntryError{Path: dir, Err: err})
		return
	}

	// Descend first so children are planned before their directory.
	for _, entry := range entries {
		if e.skip(entry) {
			continue
		}
		if entry.IsDir() {
			e.walk(filepath.Join(dir, entry.Name()), plan, failed)
		}
	}

	for _, entry := range entries {
		if e.skip(entry) {
			continue
		}
		name := entry.Name()
		normalized := Normalize(name)
		if normalized == name {
			e.skipped++
			continue
		}
		oldPath := filepath.Join(dir, name)
		*plan = append(*plan, PlannedRename{
			OldPath: oldPath,
			NewPath: e.resolveTarget(dir, normalized, oldPath),
			IsDir:   entry.IsDir(),
		})
	}
}

// Skipped returns how many visited entries were already normalized.
func (e *Engine) Skipped() int {
	return e.skipped
}

func (e *Engine) skip(entry os.DirEntry) bool {
	if isSymlink(entry) {
		return true
	}
	return !e.includeHidden && isHidden(entry.Name())
}

// resolveTarget returns dir/base, appending "-2", "-3", ... before the
// extension until the candidate neither exists on disk nor is claimed by an
// earlier planned rename. It always terminates: each iteration tries a path
// not tried before, and only finitely many are taken.
func (e *Engine) resolveTarget(dir, base, self string) string {
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	candidate := filepath.Join(dir, base)
	for n := 2; e.taken(candidate, self); n++ {
		candidate = filepath.Join(dir, fmt.Sprintf("%s-%d%s", stem, n, ext))
	}
	e.claimed[candidate] = true
	return candidate
}

// taken reports whether candidate is unavailable as a rename target. The
// entry itself does not block its own candidate, which matters on
// case-insensitive filesystems where the lowercased name stats to the same
// file.
func (e *Engine) taken(candidate, self string) bool {
	if e.claimed[candidate] {
		return true
	}
	info, err := os.Lstat(candidate)
	if err != nil {
		return false
	}
	if selfInfo, err := os.Lstat(self); err == nil && os.SameFile(info, selfInfo) {
		return false
	}
	return true
}

// Apply performs the planned renames in order. Failures are recorded and
// skipped; every successful rename yields a journal Record. onProgress, if
// non-nil, is called after each entry.
func (e *Engine) Apply(plan []PlannedRename, onProgress func(current, total int)) ([]Record, []EntryError) {
	var records []Record
	var failed []EntryError

	for i, p := range plan {
		if err := applyRename(p); err != nil {
			failed = append(failed, EntryError{Path: p.OldPath, Err: err})
		} else {
			records = append(records, Record{
				OldPath:   p.OldPath,
				NewPath:   p.NewPath,
				IsDir:     p.IsDir,
				Timestamp: time.Now().UTC(),
			})
		}
		if onProgress != nil {
			onProgress(i+1, len(plan))
		}
	}
	return records, failed
}

// applyRename refuses to overwrite a target that appeared after planning.
func applyRename(p PlannedRename) error {
	if info, err := os.Lstat(p.NewPath); err == nil {
		selfInfo, serr := os.Lstat(p.OldPath)
		if serr != nil || !os.SameFile(info, selfInfo) {
			return fmt.Errorf("target %s appeared since planning", p.NewPath)
		}
	}
	return os.Rename(p.OldPath, p.NewPath)
}
